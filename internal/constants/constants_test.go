package constants

import (
	"testing"
	"time"
)

func TestDefaultValues(t *testing.T) {
	if DefaultPort != "5000" {
		t.Errorf("Expected DefaultPort to be '5000', got '%s'", DefaultPort)
	}

	if DefaultDBPath != "catalog.db" {
		t.Errorf("Expected DefaultDBPath to be 'catalog.db', got '%s'", DefaultDBPath)
	}

	if DefaultDBDriver != DriverSQLite {
		t.Errorf("Expected DefaultDBDriver to be '%s', got '%s'", DriverSQLite, DefaultDBDriver)
	}

	if DefaultShutdownTimeout != 5*time.Second {
		t.Errorf("Expected DefaultShutdownTimeout to be 5s, got %v", DefaultShutdownTimeout)
	}
}

func TestReleaseTypeTitles(t *testing.T) {
	titles := []string{
		ReleaseTypeSingle,
		ReleaseTypeEP,
		ReleaseTypeAlbum,
	}

	seen := make(map[string]bool)
	for _, title := range titles {
		if title == "" {
			t.Error("Release type title should not be empty")
		}
		if seen[title] {
			t.Errorf("Duplicate release type title %q", title)
		}
		seen[title] = true
	}
}

func TestClassificationThresholds(t *testing.T) {
	if SingleMaxTracks >= EPMaxTracks {
		t.Errorf("SingleMaxTracks (%d) must be below EPMaxTracks (%d)", SingleMaxTracks, EPMaxTracks)
	}
}

func TestPagination(t *testing.T) {
	if DefaultPageLimit <= 0 || DefaultPageLimit > MaxPageLimit {
		t.Errorf("DefaultPageLimit %d outside (0, %d]", DefaultPageLimit, MaxPageLimit)
	}
	if TopTracksLimit != 10 {
		t.Errorf("Expected TopTracksLimit to be 10, got %d", TopTracksLimit)
	}
}

func TestPermissions(t *testing.T) {
	if DirPermissions != 0755 {
		t.Errorf("Expected DirPermissions to be 0755, got %o", DirPermissions)
	}
	if FilePermissions != 0644 {
		t.Errorf("Expected FilePermissions to be 0644, got %o", FilePermissions)
	}
}

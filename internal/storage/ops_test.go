package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Normal Name", "Normal Name"},
		{"Slash/Name", "SlashName"},
		{"Colon:Name", "ColonName"},
		{"Trailing Dot.", "Trailing Dot"},
		{"AC/DC", "ACDC"},
		{"<Invalid>", "Invalid"},
	}

	for _, tt := range tests {
		got := Sanitize(tt.input)
		if got != tt.expected {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestParseExtension(t *testing.T) {
	tests := map[string]string{
		"":      "",
		"mp3":   ".mp3",
		".FLAC": ".flac",
		".png":  ".png",
	}
	for in, want := range tests {
		if got := ParseExtension(in); got != want {
			t.Errorf("ParseExtension(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRemoveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := RemoveFile(path); err != nil {
		t.Fatalf("RemoveFile() error = %v", err)
	}
	if err := RemoveFile(path); err != nil {
		t.Errorf("RemoveFile() on missing file error = %v", err)
	}
}

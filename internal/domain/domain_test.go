package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"
)

func TestReleaseTypeTitle(t *testing.T) {
	tests := []struct {
		count  int
		want   string
		wantOK bool
	}{
		{0, "", false},
		{-1, "", false},
		{1, "Single", true},
		{2, "EP", true},
		{4, "EP", true},
		{5, "Album", true},
		{12, "Album", true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d tracks", tt.count), func(t *testing.T) {
			got, ok := ReleaseTypeTitle(tt.count)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ReleaseTypeTitle(%d) = (%q, %v), want (%q, %v)", tt.count, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestUniqueIDs(t *testing.T) {
	got := UniqueIDs([]int{7, 5, 7, 0, -2, 5, 9})
	want := []int{7, 5, 9}
	if len(got) != len(want) {
		t.Fatalf("UniqueIDs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("UniqueIDs()[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	if UniqueIDs(nil) != nil {
		t.Error("UniqueIDs(nil) should stay nil")
	}
	if empty := UniqueIDs([]int{}); empty == nil || len(empty) != 0 {
		t.Errorf("UniqueIDs([]) = %#v, want empty non-nil slice", empty)
	}
}

func TestNewPageRequest(t *testing.T) {
	tests := []struct {
		name                string
		limit, offset       int
		wantLimit, wantOffs int
	}{
		{"defaults", 0, 0, 10, 0},
		{"negative offset", 5, -3, 5, 0},
		{"capped", 1000, 20, 100, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewPageRequest(tt.limit, tt.offset)
			if req.Limit != tt.wantLimit || req.Offset != tt.wantOffs {
				t.Errorf("NewPageRequest(%d, %d) = %+v", tt.limit, tt.offset, req)
			}
		})
	}
}

func TestPageFromNumber(t *testing.T) {
	req := PageFromNumber(3, 20)
	if req.Offset != 40 || req.Limit != 20 {
		t.Errorf("PageFromNumber(3, 20) = %+v, want offset 40 limit 20", req)
	}
	if req := PageFromNumber(0, 20); req.Offset != 0 {
		t.Errorf("PageFromNumber(0, 20).Offset = %d, want 0", req.Offset)
	}
	huge := PageFromNumber(math.MaxInt, 20)
	if huge.Offset < 0 || huge.Offset != (math.MaxInt/20-1)*20 {
		t.Errorf("PageFromNumber(MaxInt, 20).Offset = %d, want clamped non-negative offset", huge.Offset)
	}
}

func TestNewPage(t *testing.T) {
	page := NewPage([]int{1, 2, 3}, 21, PageRequest{Limit: 10})
	if page.MaxPages != 3 {
		t.Errorf("MaxPages = %d, want 3", page.MaxPages)
	}
	if page.TotalCount != 21 {
		t.Errorf("TotalCount = %d, want 21", page.TotalCount)
	}

	empty := NewPage[Artist](nil, 0, PageRequest{Limit: 10})
	if empty.Items == nil || empty.MaxPages != 0 {
		t.Errorf("empty page = %+v, want non-nil items and 0 pages", empty)
	}

	data, err := json.Marshal(empty)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"items":[],"total_count":0,"max_pages":0}` {
		t.Errorf("unexpected page JSON: %s", data)
	}
}

func TestDateScan(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"string", "2024-03-09", "2024-03-09"},
		{"bytes", []byte("2024-03-09"), "2024-03-09"},
		{"timestamp string", "2024-03-09T00:00:00Z", "2024-03-09"},
		{"time", time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC), "2024-03-09"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := d.Scan(tt.value); err != nil {
				t.Fatalf("Scan(%v) error: %v", tt.value, err)
			}
			if d.String() != tt.want {
				t.Errorf("Scan(%v) = %q, want %q", tt.value, d.String(), tt.want)
			}
		})
	}

	var d Date
	if err := d.Scan(42); err == nil {
		t.Error("Scan(int) should fail")
	}
	if err := d.Scan("not-a-date"); err == nil {
		t.Error("Scan(garbage) should fail")
	}
}

func TestDateValueAndJSON(t *testing.T) {
	d, err := ParseDate("2023-12-31")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}

	v, err := d.Value()
	if err != nil || v != "2023-12-31" {
		t.Errorf("Value() = %v, %v", v, err)
	}

	data, err := json.Marshal(struct {
		D Date `json:"d"`
	}{d})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"d":"2023-12-31"}` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var back Date
	if err := json.Unmarshal([]byte(`"2023-12-31"`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip = %v, want %v", back, d)
	}

	if v, _ := (Date{}).Value(); v != nil {
		t.Errorf("zero Date Value() = %v, want nil", v)
	}
}

func TestErrors(t *testing.T) {
	err := NotFoundError("track", 3)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("NotFoundError should wrap ErrNotFound, got %v", err)
	}
	if err.Error() != "track 3: not found" {
		t.Errorf("unexpected message %q", err.Error())
	}

	verr := &ValidationError{}
	if verr.OrNil() != nil {
		t.Error("empty ValidationError should be nil")
	}
	verr.Add("title", "is required")
	err = verr.OrNil()
	if !errors.Is(err, ErrValidation) {
		t.Errorf("ValidationError should unwrap to ErrValidation, got %v", err)
	}
	var target *ValidationError
	if !errors.As(fmt.Errorf("create: %w", err), &target) || len(target.Fields) != 1 {
		t.Errorf("errors.As failed for wrapped ValidationError")
	}
}

func TestUserPasswordNotSerialized(t *testing.T) {
	u := User{ID: 1, Login: "alice1", Nickname: "Alice", Password: "$2a$10$hash", RoleID: 2}
	data, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"id":1,"login":"alice1","nickname":"Alice","role_id":2}` {
		t.Errorf("unexpected user JSON: %s", data)
	}
}

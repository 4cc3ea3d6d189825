package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMinute_Text(t *testing.T) {
	tests := []struct {
		in   string
		want Minute
	}{
		{"09:00", 540},
		{"00:00", 0},
		{"23:59", 23*60 + 59},
		{"24:00", 24 * 60},
	}
	for _, tc := range tests {
		var m Minute
		if err := m.UnmarshalText([]byte(tc.in)); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", tc.in, err)
		}
		if m != tc.want {
			t.Fatalf("UnmarshalText(%q) = %d, want %d", tc.in, m, tc.want)
		}
		if m.String() != tc.in {
			t.Fatalf("String() = %q, want %q", m.String(), tc.in)
		}
	}

	var m Minute
	for _, bad := range []string{"", "9", "25:00", "24:30", "09:75", "abc"} {
		if err := m.UnmarshalText([]byte(bad)); err == nil {
			t.Fatalf("UnmarshalText(%q) accepted", bad)
		}
	}
}

func TestEntry_DurationHours(t *testing.T) {
	e := Entry{Start: 9 * 60, End: 10*60 + 30}
	if got := e.DurationHours(); got != 1.5 {
		t.Fatalf("DurationHours = %v, want 1.5", got)
	}

	// Reversed or zero ranges never go negative.
	e = Entry{Start: 10 * 60, End: 9 * 60}
	if got := e.DurationHours(); got != 0 {
		t.Fatalf("DurationHours = %v, want 0", got)
	}
}

func TestEntry_FieldVisible(t *testing.T) {
	toggles := DefaultFieldToggles()
	e := Entry{Title: "Math", Location: "B12", Hidden: []string{FieldLocation}}

	if !e.FieldVisible(FieldTitle, toggles) {
		t.Fatal("title must always be visible")
	}
	if e.FieldVisible(FieldLocation, toggles) {
		t.Fatal("per-entry hidden field still visible")
	}
	if e.FieldVisible(FieldNotes, toggles) {
		t.Fatal("globally disabled field still visible")
	}
	if !e.FieldVisible(FieldTime, toggles) {
		t.Fatal("time should be visible by default")
	}
}

func TestLoadEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.json")
	data := `[
		{"title": "Math", "day": 1, "start": "09:00", "end": "10:30"},
		{"id": "fixed", "title": "Lab", "day": 9, "start": "15:00", "end": "14:00"}
	]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := LoadEntries(path)
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	if entries[0].ID == "" {
		t.Fatal("missing ID not filled")
	}
	if entries[0].Start != 540 || entries[0].End != 630 {
		t.Fatalf("times parsed as %d..%d", entries[0].Start, entries[0].End)
	}

	if entries[1].ID != "fixed" {
		t.Fatalf("explicit ID rewritten to %q", entries[1].ID)
	}
	if entries[1].Day != 6 {
		t.Fatalf("day not clamped: %d", entries[1].Day)
	}
	if entries[1].Start > entries[1].End {
		t.Fatal("reversed time range not normalized")
	}
}

package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Field names used for visibility toggles. Title is always rendered and has
// no toggle of its own.
const (
	FieldTitle     = "title"
	FieldClassType = "class_type"
	FieldTime      = "time"
	FieldLocation  = "location"
	FieldNotes     = "notes"
)

// Minute is a time of day expressed as minutes from midnight. It marshals to
// and from "HH:MM" so schedule files stay human-editable.
type Minute int

func (m Minute) Hour() int { return int(m) / 60 }

// Hours returns the time of day as a fractional hour count.
func (m Minute) Hours() float64 { return float64(m) / 60 }

func (m Minute) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

func (m Minute) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Minute) UnmarshalText(b []byte) error {
	var h, mm int
	if _, err := fmt.Sscanf(string(b), "%d:%d", &h, &mm); err != nil {
		return fmt.Errorf("model: invalid time %q: %w", string(b), err)
	}
	if h < 0 || h > 24 || mm < 0 || mm > 59 || (h == 24 && mm > 0) {
		return fmt.Errorf("model: time %q out of range", string(b))
	}
	*m = Minute(h*60 + mm)
	return nil
}

// Entry is one class/event occurrence on the weekly grid.
//
// Entries are produced by the external editor/state layer (OCR import or
// manual add) and only read here; the layout engine never mutates them.
type Entry struct {
	// ID uniquely identifies the entry. Manually added entries get a UUID.
	ID string `json:"id"`

	Title string `json:"title"`

	// ClassType is the category/color key (e.g. "lecture", "lab").
	ClassType string `json:"class_type,omitempty"`

	// Day is the weekday column index, 0 (Monday) through 6 (Sunday).
	Day int `json:"day"`

	Start Minute `json:"start"`
	End   Minute `json:"end"`

	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`

	// Hidden lists field names suppressed for this entry only, on top of the
	// global toggles.
	Hidden []string `json:"hidden,omitempty"`
}

// NewEntry creates a manually added entry with a fresh UUID.
func NewEntry(title string, day int, start, end Minute) Entry {
	return Entry{
		ID:    uuid.NewString(),
		Title: title,
		Day:   day,
		Start: start,
		End:   end,
	}
}

// TimeLabel returns the rendered time range, e.g. "09:00 - 10:30".
func (e Entry) TimeLabel() string {
	return e.Start.String() + " - " + e.End.String()
}

// DurationHours returns the entry duration in hours, never negative.
func (e Entry) DurationHours() float64 {
	if e.End <= e.Start {
		return 0
	}
	return float64(e.End-e.Start) / 60
}

func (e Entry) hides(field string) bool {
	for _, h := range e.Hidden {
		if h == field {
			return true
		}
	}
	return false
}

// FieldVisible reports whether a content field should be rendered for this
// entry: the global toggle must allow it and the entry must not hide it.
// The title is always visible.
func (e Entry) FieldVisible(field string, t FieldToggles) bool {
	if field == FieldTitle {
		return true
	}
	if e.hides(field) {
		return false
	}
	switch field {
	case FieldClassType:
		return t.ClassType
	case FieldTime:
		return t.Time
	case FieldLocation:
		return t.Location
	case FieldNotes:
		return t.Notes
	default:
		return false
	}
}

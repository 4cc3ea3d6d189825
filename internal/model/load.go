package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// LoadEntries reads a schedule file: a JSON array of entries. This is the
// narrow interface to the external editor/state layer; anything smarter
// (OCR import, recurrence expansion) lives outside this tool.
func LoadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("model: parse schedule %s: %w", path, err)
	}

	for i := range entries {
		normalize(&entries[i])
	}
	return entries, nil
}

// normalize fills in missing IDs and clamps the day index so a hand-edited
// file cannot place an entry off the grid.
func normalize(e *Entry) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Day < 0 {
		e.Day = 0
	}
	if e.Day > 6 {
		e.Day = 6
	}
	if e.End < e.Start {
		e.Start, e.End = e.End, e.Start
	}
}

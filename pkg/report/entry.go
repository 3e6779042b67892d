package report

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// EntryKind categorizes a report entry.
type EntryKind string

const (
	KindStep    EntryKind = "step"
	KindTest    EntryKind = "test"
	KindCommand EntryKind = "command"
	KindSession EntryKind = "session"
)

// Entry is a single buffered report item. Entries are ordered by stash
// insertion; the ULID makes that ordering reconstructable server-side.
type Entry struct {
	ID          string         `json:"id"`
	Kind        EntryKind      `json:"kind"`
	Description string         `json:"description"`
	Passed      bool           `json:"passed"`
	Message     string         `json:"message,omitempty"`
	Screenshot  bool           `json:"screenshot,omitempty"`
	Fields      map[string]any `json:"fields,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

// NewEntry creates an entry with a fresh ULID and timestamp.
func NewEntry(kind EntryKind, description string, passed bool) Entry {
	return Entry{
		ID:          ulid.Make().String(),
		Kind:        kind,
		Description: description,
		Passed:      passed,
		Timestamp:   time.Now().UTC(),
	}
}

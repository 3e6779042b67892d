package report

import "sync"

// Stash buffers report entries for one session until teardown flushes them.
// A stash belongs to exactly one command router and is never shared across
// sessions.
type Stash struct {
	mu      sync.Mutex
	entries []Entry
}

// NewStash creates an empty stash.
func NewStash() *Stash {
	return &Stash{}
}

// Append adds an entry, preserving insertion order.
func (s *Stash) Append(entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

// Len returns the number of pending entries.
func (s *Stash) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Drain removes and returns all pending entries in insertion order.
func (s *Stash) Drain() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.entries
	s.entries = nil
	return out
}

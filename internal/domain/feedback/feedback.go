// Package feedback stores employee-to-HR feedback and admin policy
// announcements. Both collections are append-only: entries are never
// edited or removed.
package feedback

import (
	"sync"
	"time"
)

// Entry keeps the employee name as a denormalized snapshot, not an id
// reference, so later renames or removals do not rewrite history.
type Entry struct {
	EmpName     string    `json:"from"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type Store struct {
	mu      sync.Mutex
	entries []Entry
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Submit(empName, message string) Entry {
	entry := Entry{EmpName: empName, Message: message, SubmittedAt: time.Now()}
	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()
	return entry
}

// All returns the entries in submission order.
func (s *Store) All() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

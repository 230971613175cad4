package feedback

import (
	"sync"
	"time"
)

type Announcement struct {
	By          string    `json:"by"`
	Message     string    `json:"message"`
	AnnouncedAt time.Time `json:"announcedAt"`
}

// Announcements is the append-only list of policy updates posted by admins.
type Announcements struct {
	mu      sync.Mutex
	entries []Announcement
}

func NewAnnouncements() *Announcements {
	return &Announcements{}
}

func (a *Announcements) Post(by, message string) Announcement {
	entry := Announcement{By: by, Message: message, AnnouncedAt: time.Now()}
	a.mu.Lock()
	a.entries = append(a.entries, entry)
	a.mu.Unlock()
	return entry
}

func (a *Announcements) All() []Announcement {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Announcement, len(a.entries))
	copy(out, a.entries)
	return out
}

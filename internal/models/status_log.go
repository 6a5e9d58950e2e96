package models

import (
	"sync"
	"time"
)

// StatusLog is a bounded, newest-first ring of human readable status lines.
// Writers prepend, readers get a point-in-time copy, the oldest entries are
// silently dropped at capacity.
type StatusLog struct {
	mu       sync.Mutex
	capacity int
	entries  []string
	now      func() time.Time
}

func NewStatusLog(capacity int, now func() time.Time) *StatusLog {
	if capacity <= 0 {
		capacity = 80
	}
	return &StatusLog{
		capacity: capacity,
		entries:  make([]string, 0, capacity),
		now:      now,
	}
}

func (s *StatusLog) Append(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := s.now().Format("15:04:05") + " " + msg
	s.entries = append([]string{line}, s.entries...)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[:s.capacity]
	}
}

func (s *StatusLog) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.entries...)
}

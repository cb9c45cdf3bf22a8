package mock

import (
	"sync"
	"time"
)

// Time is a controllable clock for scenarios that assert on decision
// timestamps. Until SetCurrentTime is called it follows the wall clock.
type Time struct {
	mu      sync.Mutex
	current time.Time
}

func NewTime() *Time {
	return &Time{}
}

// SetCurrentTime freezes the clock at the given instant.
func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = currentTime
}

// Reset returns the clock to wall-clock time.
func (t *Time) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = time.Time{}
}

func (t *Time) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current.IsZero() {
		return time.Now().UTC()
	}
	return t.current
}

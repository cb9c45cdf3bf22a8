package reconciliation

import (
	"time"

	"github.com/concilia/backend/internal/domain/entity"
)

// dayOf truncates a timestamp to its calendar day at midnight UTC.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dateDistanceDays returns the absolute distance between two calendar days.
func dateDistanceDays(a, b time.Time) int {
	d := int(dayOf(a).Sub(dayOf(b)).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}

// runSpan returns the smallest [start, end] day range covering every dated
// movement, and false when no movement carries a date.
func runSpan(movements []*entity.BankMovement) (time.Time, time.Time, bool) {
	var start, end time.Time
	found := false

	for _, m := range movements {
		if m.Date.IsZero() {
			continue
		}
		day := m.Day()
		if !found {
			start, end = day, day
			found = true
			continue
		}
		if day.Before(start) {
			start = day
		}
		if day.After(end) {
			end = day
		}
	}

	return start, end, found
}

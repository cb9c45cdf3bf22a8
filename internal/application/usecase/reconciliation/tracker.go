package reconciliation

import "github.com/google/uuid"

// AssignmentTracker records which documents a run has already consumed, so
// no two movements ever settle against the same one. Each run owns its own
// tracker; it is never shared across runs and needs no locking because a run
// processes movements sequentially.
type AssignmentTracker struct {
	used map[uuid.UUID]struct{}
}

// NewAssignmentTracker creates an empty tracker for one run.
func NewAssignmentTracker() *AssignmentTracker {
	return &AssignmentTracker{
		used: make(map[uuid.UUID]struct{}),
	}
}

// Reserve marks a document as consumed. Reserving twice is a no-op.
func (t *AssignmentTracker) Reserve(documentID uuid.UUID) {
	t.used[documentID] = struct{}{}
}

// Used reports whether the document was already consumed in this run.
func (t *AssignmentTracker) Used(documentID uuid.UUID) bool {
	_, ok := t.used[documentID]
	return ok
}

// Count returns the number of distinct documents consumed so far.
func (t *AssignmentTracker) Count() int {
	return len(t.used)
}

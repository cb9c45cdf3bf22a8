package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/concilia/backend/internal/domain/valueobject"
)

// OutcomeRepository persists the per-movement verdicts of a reconciliation run.
type OutcomeRepository interface {
	// SaveRun stores all outcomes of one run under its run identifier.
	SaveRun(
		ctx context.Context,
		companyID uuid.UUID,
		runID uuid.UUID,
		outcomes []valueobject.ReconciliationOutcome,
	) error

	// ListByRun retrieves the outcomes of a run, in insertion order.
	ListByRun(ctx context.Context, runID uuid.UUID) ([]valueobject.ReconciliationOutcome, error)
}

// ReportCache stores the most recent reconciliation report per company so the
// report endpoint does not recompute or re-read a full run.
type ReportCache interface {
	StoreLatest(ctx context.Context, companyID uuid.UUID, report *valueobject.ReconciliationReport, ttl time.Duration) error

	// GetLatest returns nil without error on a cache miss.
	GetLatest(ctx context.Context, companyID uuid.UUID) (*valueobject.ReconciliationReport, error)
}

// Clock abstracts time for deterministic decision timestamps in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock reading the wall clock in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

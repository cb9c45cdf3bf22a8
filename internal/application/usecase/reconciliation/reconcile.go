package reconciliation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/concilia/backend/internal/application/adapter"
	"github.com/concilia/backend/internal/domain/entity"
	"github.com/concilia/backend/internal/domain/valueobject"
)

// Engine runs one reconciliation pass over a batch of bank movements.
//
// The engine is strictly sequential: the assignment tracker's at-most-one
// guarantee depends on movements being processed one at a time against the
// shared invoice pool. Parallel callers must shard by company and give each
// shard its own Engine; an Engine must not be shared across concurrent runs.
type Engine struct {
	docs    adapter.DocumentRepository
	company *entity.Company
	policy  valueobject.ReconciliationPolicy
	clock   adapter.Clock
}

// NewEngine creates an engine for one company under one policy.
func NewEngine(
	docs adapter.DocumentRepository,
	company *entity.Company,
	policy valueobject.ReconciliationPolicy,
	clock adapter.Clock,
) *Engine {
	return &Engine{
		docs:    docs,
		company: company,
		policy:  policy,
		clock:   clock,
	}
}

// Reconcile decides an outcome for every movement: exact pass, then the
// optional complement and fuzzy passes, then the two ambiguity post-passes,
// and finally the aggregated report. Every input movement receives exactly
// one outcome, in input order; identical inputs produce identical outputs.
//
// Records missing a date or amount are skipped by the matchers with a logged
// warning but still receive a Pending outcome. Collaborator failures abort
// the run and are returned unmodified.
func (e *Engine) Reconcile(
	ctx context.Context,
	movements []*entity.BankMovement,
) ([]valueobject.ReconciliationOutcome, *valueobject.ReconciliationReport, error) {
	tracker := NewAssignmentTracker()
	outcomes := make([]valueobject.ReconciliationOutcome, 0, len(movements))

	for _, movement := range movements {
		outcome, err := e.decide(ctx, movement, tracker)
		if err != nil {
			return nil, nil, err
		}
		outcomes = append(outcomes, outcome)
	}

	outcomes = flagDuplicateMovements(outcomes, movements)

	outcomes, err := e.flagNonUniqueInvoices(ctx, outcomes, movements)
	if err != nil {
		return nil, nil, err
	}

	report, err := e.buildReport(ctx, movements, outcomes)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("reconciliation run completed",
		"company_id", e.company.ID,
		"movements", report.Summary.TotalMovements,
		"exact", report.Summary.Exact,
		"fuzzy", report.Summary.Fuzzy,
		"pending", report.Summary.Pending,
		"duplicate_review", report.Summary.DuplicateReview,
		"assigned_invoices", tracker.Count(),
	)

	return outcomes, report, nil
}

// decide runs the matching passes for a single movement.
func (e *Engine) decide(
	ctx context.Context,
	movement *entity.BankMovement,
	tracker *AssignmentTracker,
) (valueobject.ReconciliationOutcome, error) {
	if reason, ok := validateMovement(movement); !ok {
		slog.Warn("skipping unmatchable movement",
			"movement_id", movement.ID,
			"reason", reason,
		)
		return e.pending(movement, reason), nil
	}

	outcome, err := e.matchExact(ctx, movement, tracker)
	if err != nil {
		return valueobject.ReconciliationOutcome{}, err
	}
	if outcome != nil {
		return *outcome, nil
	}

	if e.policy.IncludeComplements {
		outcome, err = e.matchComplement(ctx, movement, tracker)
		if err != nil {
			return valueobject.ReconciliationOutcome{}, err
		}
		if outcome != nil {
			return *outcome, nil
		}
	}

	if e.policy.EnableFuzzy {
		outcome, err = e.matchFuzzy(ctx, movement, tracker)
		if err != nil {
			return valueobject.ReconciliationOutcome{}, err
		}
		if outcome != nil {
			return *outcome, nil
		}
	}

	return e.pending(movement, "no eligible invoice matched in any enabled pass"), nil
}

// validateMovement checks the minimal fields the matchers require.
func validateMovement(movement *entity.BankMovement) (string, bool) {
	if movement.Date.IsZero() {
		return "movement has no date", false
	}
	if movement.Amount.IsZero() {
		return "movement has no amount", false
	}
	return "", true
}

func (e *Engine) pending(movement *entity.BankMovement, reason string) valueobject.ReconciliationOutcome {
	return valueobject.ReconciliationOutcome{
		MovementID: movement.ID,
		Kind:       valueobject.OutcomePending,
		Reason:     fmt.Sprintf("pending manual review: %s", reason),
		DecidedAt:  e.clock.Now(),
	}
}

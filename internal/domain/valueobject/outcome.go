package valueobject

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OutcomeKind classifies the engine's verdict for one movement.
type OutcomeKind string

const (
	// OutcomeExact means an invoice matched by amount and date (or through a
	// payment complement, which is treated as a strict match).
	OutcomeExact OutcomeKind = "exact"
	// OutcomeFuzzy means an invoice matched through text similarity.
	OutcomeFuzzy OutcomeKind = "fuzzy"
	// OutcomePending means no automatic decision was possible.
	OutcomePending OutcomeKind = "pending"
	// OutcomeDuplicateReview means the movement or its chosen invoice is
	// ambiguous and must be resolved manually.
	OutcomeDuplicateReview OutcomeKind = "duplicate_review"
)

// ReconciliationOutcome is the engine's verdict for one movement in one run.
// Outcomes are values; the detector passes derive new outcomes instead of
// mutating shared state.
type ReconciliationOutcome struct {
	MovementID uuid.UUID
	DocumentID *uuid.UUID // matched invoice, nil unless Exact/Fuzzy (or disputed)
	Kind       OutcomeKind
	Score      *int // similarity score, only for Fuzzy
	Reason     string
	DecidedAt  time.Time

	// SiblingMovementIDs lists the other movements of a duplicate group,
	// sorted ascending. Only set for DuplicateReview raised by the duplicate
	// movement detector.
	SiblingMovementIDs []uuid.UUID
}

// Automated reports whether the outcome was decided without human review.
func (o ReconciliationOutcome) Automated() bool {
	return o.Kind == OutcomeExact || o.Kind == OutcomeFuzzy
}

// WithReview returns a copy of the outcome downgraded to DuplicateReview,
// keeping the previously chosen document (now disputed) for audit trail.
func (o ReconciliationOutcome) WithReview(reason string, siblings []uuid.UUID) ReconciliationOutcome {
	o.Kind = OutcomeDuplicateReview
	o.Reason = reason
	o.Score = nil
	o.SiblingMovementIDs = siblings
	return o
}

// CentKey builds a deterministic grouping key from a calendar day and an
// amount rounded to cents. Used by both detector passes.
func CentKey(day time.Time, amount decimal.Decimal) string {
	return day.Format("2006-01-02") + "|" + amount.Round(2).String()
}

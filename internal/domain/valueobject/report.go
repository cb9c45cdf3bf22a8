package valueobject

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconciliationSummary holds the per-kind counts of one run.
type ReconciliationSummary struct {
	TotalMovements      int
	Exact               int
	Fuzzy               int
	Pending             int
	DuplicateReview     int
	AutomatedPercentage float64 // (Exact + Fuzzy) / Total * 100, 0 when empty
}

// ReportDetail is one row of the run report: the movement merged with its
// outcome and, when matched, the chosen invoice.
type ReportDetail struct {
	MovementID          uuid.UUID
	MovementDate        time.Time
	MovementDescription string
	MovementAmount      decimal.Decimal

	Kind   OutcomeKind
	Score  *int
	Reason string

	DocumentID       *uuid.UUID
	DocumentTotal    *decimal.Decimal
	CounterpartyName string
}

// ReconciliationReport aggregates the per-movement outcomes of one run.
type ReconciliationReport struct {
	Summary ReconciliationSummary
	Details []ReportDetail
}

// AmountGroupRow is one row of the side-by-side per-amount summary: how many
// movements and how many documents carry (nearly) the same amount in a period.
// Amounts closer than the cent tolerance collapse into one row keyed by the
// smallest member.
type AmountGroupRow struct {
	Amount        decimal.Decimal
	DocumentCount int
	MovementCount int
}

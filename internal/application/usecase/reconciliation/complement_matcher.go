package reconciliation

import (
	"context"
	"fmt"
	"sort"

	"github.com/concilia/backend/internal/domain/entity"
	"github.com/concilia/backend/internal/domain/valueobject"
)

// matchComplement matches a movement against payment-complement records by
// amount within the complement date window. First match wins, in payment-date
// ascending order; complements are a strict match, so the outcome kind is
// Exact and references the owning invoice.
//
// The owning invoice is reserved like any other match: without that, two
// movements could settle against the same invoice through its complements and
// break the one-assignment-per-invoice guarantee.
func (e *Engine) matchComplement(
	ctx context.Context,
	movement *entity.BankMovement,
	tracker *AssignmentTracker,
) (*valueobject.ReconciliationOutcome, error) {
	complements, err := e.docs.PaymentComplementsNear(
		ctx, e.company.ID, movement.Date, e.policy.ComplementWindowDays,
	)
	if err != nil {
		return nil, err
	}

	sort.Slice(complements, func(i, j int) bool {
		if !complements[i].PaidAt.Equal(complements[j].PaidAt) {
			return complements[i].PaidAt.Before(complements[j].PaidAt)
		}
		return complements[i].ID.String() < complements[j].ID.String()
	})

	for _, comp := range complements {
		if tracker.Used(comp.DocumentID) {
			continue
		}
		if !valueobject.AmountsEqual(comp.Amount, movement.Amount) {
			continue
		}

		tracker.Reserve(comp.DocumentID)

		docID := comp.DocumentID
		outcome := valueobject.ReconciliationOutcome{
			MovementID: movement.ID,
			DocumentID: &docID,
			Kind:       valueobject.OutcomeExact,
			Reason: fmt.Sprintf("amount %s matched payment complement of %s (±%d day window)",
				movement.Amount.StringFixed(2), comp.PaidAt.Format("2006-01-02"),
				e.policy.ComplementWindowDays),
			DecidedAt: e.clock.Now(),
		}
		return &outcome, nil
	}

	return nil, nil
}

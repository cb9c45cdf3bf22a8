package reconciliation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/concilia/backend/internal/domain/entity"
	"github.com/concilia/backend/internal/domain/valueobject"
)

// matchExact finds an eligible invoice whose total matches the movement
// amount within the cent tolerance, searching the movement's calendar day
// first and a ±1-day window second. Returns nil when neither window yields a
// candidate; collaborator errors are propagated unmodified.
func (e *Engine) matchExact(
	ctx context.Context,
	movement *entity.BankMovement,
	tracker *AssignmentTracker,
) (*valueobject.ReconciliationOutcome, error) {
	windows := []struct {
		days  int
		label string
	}{
		{0, "same day"},
		{1, "±1 day"},
	}

	for _, w := range windows {
		pool, err := e.docs.InvoicesOnOrNear(ctx, e.company.ID, movement.Date, w.days)
		if err != nil {
			return nil, err
		}

		var candidates []*entity.FiscalDocument
		for _, doc := range eligibleInvoices(pool, e.policy, tracker) {
			if valueobject.AmountsEqual(doc.Total, movement.Amount) {
				candidates = append(candidates, doc)
			}
		}
		if len(candidates) == 0 {
			continue
		}

		chosen := closestInvoice(candidates, movement.Day())
		tracker.Reserve(chosen.ID)

		docID := chosen.ID
		outcome := valueobject.ReconciliationOutcome{
			MovementID: movement.ID,
			DocumentID: &docID,
			Kind:       valueobject.OutcomeExact,
			Reason: fmt.Sprintf("amount %s matched invoice %s (%s window)",
				movement.Amount.StringFixed(2), chosen.TaxUUID, w.label),
			DecidedAt: e.clock.Now(),
		}
		return &outcome, nil
	}

	return nil, nil
}

// closestInvoice selects the single best candidate deterministically:
// minimal date-distance to the movement day, then earliest issuance date,
// then external code as a stable last resort. The result does not depend on
// the input ordering.
func closestInvoice(candidates []*entity.FiscalDocument, movementDay time.Time) *entity.FiscalDocument {
	sorted := make([]*entity.FiscalDocument, len(candidates))
	copy(sorted, candidates)

	sort.Slice(sorted, func(i, j int) bool {
		di := dateDistanceDays(sorted[i].EffectiveDate(), movementDay)
		dj := dateDistanceDays(sorted[j].EffectiveDate(), movementDay)
		if di != dj {
			return di < dj
		}
		if !sorted[i].EffectiveDate().Equal(sorted[j].EffectiveDate()) {
			return sorted[i].EffectiveDate().Before(sorted[j].EffectiveDate())
		}
		return sorted[i].TaxUUID < sorted[j].TaxUUID
	})

	return sorted[0]
}

package reconciliation

import (
	"context"
	"fmt"
	"sort"

	"github.com/concilia/backend/internal/domain/entity"
	"github.com/concilia/backend/internal/domain/valueobject"
)

// fuzzyCandidate is one (invoice, field, score) triple that cleared the
// similarity threshold.
type fuzzyCandidate struct {
	doc        *entity.FiscalDocument
	fieldName  string
	fieldValue string
	score      int
}

// identifyingFields lists the invoice text fields the fuzzy pass compares
// against the movement description, in a fixed order so scoring is
// reproducible.
func identifyingFields(doc *entity.FiscalDocument) []struct{ name, value string } {
	return []struct{ name, value string }{
		{"series", doc.Series},
		{"folio", doc.Folio},
		{"issuer", doc.IssuerName},
		{"receiver", doc.ReceiverName},
		{"tax uuid", doc.TaxUUID},
	}
}

// matchFuzzy scores the movement description against the identifying text
// fields of every remaining eligible invoice in the fuzzy window and selects
// the best triple at or above the policy threshold. Tie-break: highest score,
// then minimal date-distance, then earliest issuance date.
func (e *Engine) matchFuzzy(
	ctx context.Context,
	movement *entity.BankMovement,
	tracker *AssignmentTracker,
) (*valueobject.ReconciliationOutcome, error) {
	description := Normalize(movement.Description)
	if description == "" {
		return nil, nil
	}

	pool, err := e.docs.InvoicesOnOrNear(ctx, e.company.ID, movement.Date, e.policy.FuzzyWindowDays)
	if err != nil {
		return nil, err
	}

	var candidates []fuzzyCandidate
	for _, doc := range eligibleInvoices(pool, e.policy, tracker) {
		for _, field := range identifyingFields(doc) {
			normalized := Normalize(field.value)
			if normalized == "" {
				continue
			}
			score := PartialRatio(description, normalized)
			if score >= e.policy.FuzzyThreshold {
				candidates = append(candidates, fuzzyCandidate{
					doc:        doc,
					fieldName:  field.name,
					fieldValue: field.value,
					score:      score,
				})
			}
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	movementDay := movement.Day()
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		di := dateDistanceDays(candidates[i].doc.EffectiveDate(), movementDay)
		dj := dateDistanceDays(candidates[j].doc.EffectiveDate(), movementDay)
		if di != dj {
			return di < dj
		}
		if !candidates[i].doc.EffectiveDate().Equal(candidates[j].doc.EffectiveDate()) {
			return candidates[i].doc.EffectiveDate().Before(candidates[j].doc.EffectiveDate())
		}
		return candidates[i].doc.TaxUUID < candidates[j].doc.TaxUUID
	})

	best := candidates[0]
	tracker.Reserve(best.doc.ID)

	docID := best.doc.ID
	score := best.score
	outcome := valueobject.ReconciliationOutcome{
		MovementID: movement.ID,
		DocumentID: &docID,
		Kind:       valueobject.OutcomeFuzzy,
		Score:      &score,
		Reason: fmt.Sprintf("description matched %s %q with similarity %d",
			best.fieldName, best.fieldValue, best.score),
		DecidedAt: e.clock.Now(),
	}
	return &outcome, nil
}

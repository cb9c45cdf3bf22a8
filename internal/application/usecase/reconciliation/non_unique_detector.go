package reconciliation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/concilia/backend/internal/domain/entity"
	"github.com/concilia/backend/internal/domain/valueobject"
)

// flagNonUniqueInvoices is the second post-pass: an Exact outcome whose
// invoice shares its (issuance day, amount-in-cents) pair with another
// eligible invoice is ambiguous for audit purposes even though the matcher
// picked one, so it is downgraded to DuplicateReview. Returns a new outcome
// list.
//
// The count table covers the full eligible pool for the run's date span,
// widened by the largest active matching window, under the same
// payment-method policy the candidate filter applies.
func (e *Engine) flagNonUniqueInvoices(
	ctx context.Context,
	outcomes []valueobject.ReconciliationOutcome,
	movements []*entity.BankMovement,
) ([]valueobject.ReconciliationOutcome, error) {
	start, end, ok := runSpan(movements)
	if !ok {
		return outcomes, nil
	}

	widen := e.poolWindowDays()
	pool, err := e.docs.InvoicesInRange(
		ctx, e.company.ID,
		start.AddDate(0, 0, -widen),
		end.AddDate(0, 0, widen),
	)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	byID := make(map[uuid.UUID]*entity.FiscalDocument, len(pool))
	for _, doc := range pool {
		if !invoiceEligible(doc, e.policy) {
			continue
		}
		counts[valueobject.CentKey(doc.Day(), doc.Total)]++
		byID[doc.ID] = doc
	}

	result := make([]valueobject.ReconciliationOutcome, len(outcomes))
	for i, outcome := range outcomes {
		result[i] = outcome

		if outcome.Kind != valueobject.OutcomeExact || outcome.DocumentID == nil {
			continue
		}
		doc, found := byID[*outcome.DocumentID]
		if !found {
			// Matched through a payment complement: the ambiguity key is the
			// complement amount, which the duplicate-movement pass already
			// covers.
			continue
		}

		if n := counts[valueobject.CentKey(doc.Day(), doc.Total)]; n > 1 {
			reason := fmt.Sprintf("%d eligible invoices share amount %s on %s; match is ambiguous",
				n, doc.Total.Round(2).StringFixed(2), doc.Day().Format("2006-01-02"))
			result[i] = outcome.WithReview(reason, nil)
		}
	}

	return result, nil
}

// poolWindowDays returns the widest date window any active pass may have
// reached outside the movement span.
func (e *Engine) poolWindowDays() int {
	widest := 1 // exact matcher's ±1-day fallback
	if e.policy.EnableFuzzy && e.policy.FuzzyWindowDays > widest {
		widest = e.policy.FuzzyWindowDays
	}
	if e.policy.IncludeComplements && e.policy.ComplementWindowDays > widest {
		widest = e.policy.ComplementWindowDays
	}
	return widest
}

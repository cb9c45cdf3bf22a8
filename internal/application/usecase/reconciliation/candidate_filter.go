package reconciliation

import (
	"github.com/concilia/backend/internal/domain/entity"
	"github.com/concilia/backend/internal/domain/valueobject"
)

// invoiceEligible reports whether a document may participate in automatic
// reconciliation under the policy, ignoring prior assignments.
//
// A sales invoice qualifies when its payment method satisfies the policy:
// restrict-to-immediate requires the immediate method, otherwise anything but
// the deferred method passes (a missing method passes too, mirroring source
// documents that omit it). A payment-complement document qualifies only when
// the policy includes complements. Invalid documents never qualify.
func invoiceEligible(doc *entity.FiscalDocument, policy valueobject.ReconciliationPolicy) bool {
	if !doc.Valid {
		return false
	}

	switch doc.Kind {
	case entity.DocumentKindInvoice:
		if policy.RestrictToImmediate {
			return doc.PaymentMethod == entity.PaymentMethodImmediate
		}
		return doc.PaymentMethod != entity.PaymentMethodDeferred
	case entity.DocumentKindPayment:
		return policy.IncludeComplements
	default:
		return false
	}
}

// eligibleInvoices returns the subset of documents eligible for automatic
// reconciliation: policy-eligible and not yet consumed by this run.
func eligibleInvoices(
	docs []*entity.FiscalDocument,
	policy valueobject.ReconciliationPolicy,
	tracker *AssignmentTracker,
) []*entity.FiscalDocument {
	eligible := make([]*entity.FiscalDocument, 0, len(docs))
	for _, doc := range docs {
		if !invoiceEligible(doc, policy) {
			continue
		}
		if tracker.Used(doc.ID) {
			continue
		}
		eligible = append(eligible, doc)
	}
	return eligible
}

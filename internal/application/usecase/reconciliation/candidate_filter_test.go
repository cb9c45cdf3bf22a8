package reconciliation

import (
	"testing"
	"time"

	"github.com/concilia/backend/internal/domain/entity"
	"github.com/concilia/backend/internal/domain/valueobject"
)

func TestInvoiceEligible(t *testing.T) {
	issued := day(2024, time.March, 1)

	invoice := func(method entity.PaymentMethod) *entity.FiscalDocument {
		d := newInvoice("UUID-1", issued, "100.00")
		d.PaymentMethod = method
		return d
	}

	t.Run("immediate invoice passes restricted policy", func(t *testing.T) {
		policy := valueobject.DefaultReconciliationPolicy()
		if !invoiceEligible(invoice(entity.PaymentMethodImmediate), policy) {
			t.Error("expected immediate invoice to be eligible")
		}
	})

	t.Run("deferred invoice fails restricted policy", func(t *testing.T) {
		policy := valueobject.DefaultReconciliationPolicy()
		if invoiceEligible(invoice(entity.PaymentMethodDeferred), policy) {
			t.Error("expected deferred invoice to be ineligible")
		}
	})

	t.Run("missing method fails restricted policy", func(t *testing.T) {
		policy := valueobject.DefaultReconciliationPolicy()
		if invoiceEligible(invoice(""), policy) {
			t.Error("expected invoice without method to be ineligible when restricted")
		}
	})

	t.Run("missing method passes unrestricted policy", func(t *testing.T) {
		policy := valueobject.DefaultReconciliationPolicy()
		policy.RestrictToImmediate = false
		if !invoiceEligible(invoice(""), policy) {
			t.Error("expected invoice without method to be eligible when unrestricted")
		}
	})

	t.Run("deferred invoice fails unrestricted policy too", func(t *testing.T) {
		policy := valueobject.DefaultReconciliationPolicy()
		policy.RestrictToImmediate = false
		if invoiceEligible(invoice(entity.PaymentMethodDeferred), policy) {
			t.Error("expected deferred invoice to always be ineligible")
		}
	})

	t.Run("invalid document never passes", func(t *testing.T) {
		policy := valueobject.DefaultReconciliationPolicy()
		d := invoice(entity.PaymentMethodImmediate)
		d.Valid = false
		if invoiceEligible(d, policy) {
			t.Error("expected invalid document to be ineligible")
		}
	})

	t.Run("payment document follows the complement toggle", func(t *testing.T) {
		d := newInvoice("UUID-P", issued, "0")
		d.Kind = entity.DocumentKindPayment

		policy := valueobject.DefaultReconciliationPolicy()
		if invoiceEligible(d, policy) {
			t.Error("expected payment document to be ineligible without the toggle")
		}
		policy.IncludeComplements = true
		if !invoiceEligible(d, policy) {
			t.Error("expected payment document to be eligible with the toggle")
		}
	})

	t.Run("other kinds never pass", func(t *testing.T) {
		d := newInvoice("UUID-O", issued, "100.00")
		d.Kind = entity.DocumentKindOther
		if invoiceEligible(d, valueobject.DefaultReconciliationPolicy()) {
			t.Error("expected other document kinds to be ineligible")
		}
	})
}

func TestEligibleInvoicesExcludesAssigned(t *testing.T) {
	policy := valueobject.DefaultReconciliationPolicy()
	a := newInvoice("UUID-A", day(2024, time.March, 1), "100.00")
	b := newInvoice("UUID-B", day(2024, time.March, 1), "200.00")

	tracker := NewAssignmentTracker()
	tracker.Reserve(a.ID)

	eligible := eligibleInvoices([]*entity.FiscalDocument{a, b}, policy, tracker)
	if len(eligible) != 1 || eligible[0].ID != b.ID {
		t.Fatalf("expected only the unassigned invoice, got %d entries", len(eligible))
	}
}

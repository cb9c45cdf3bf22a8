package reconciliation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/concilia/backend/internal/domain/entity"
	"github.com/concilia/backend/internal/domain/valueobject"
)

func newComplement(docID uuid.UUID, paidAt time.Time, amount string) *entity.PaymentComplement {
	return &entity.PaymentComplement{
		ID:         uuid.New(),
		DocumentID: docID,
		PaidAt:     paidAt,
		Amount:     amt(amount),
	}
}

func TestMatchComplement(t *testing.T) {
	ctx := context.Background()
	policy := valueobject.DefaultReconciliationPolicy()
	policy.IncludeComplements = true

	t.Run("first complement by payment date wins", func(t *testing.T) {
		invoiceA, invoiceB := uuid.New(), uuid.New()
		later := newComplement(invoiceB, day(2024, time.April, 12), "900.00")
		earlier := newComplement(invoiceA, day(2024, time.April, 9), "900.00")
		engine := newTestEngine(&stubDocs{complements: []*entity.PaymentComplement{later, earlier}}, policy)

		movement := newMovement(day(2024, time.April, 10), "SPEI", "900.00")
		outcome, err := engine.matchComplement(ctx, movement, NewAssignmentTracker())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome == nil {
			t.Fatal("expected a match")
		}
		if outcome.Kind != valueobject.OutcomeExact {
			t.Errorf("expected complement matches to be exact, got %s", outcome.Kind)
		}
		if *outcome.DocumentID != invoiceA {
			t.Error("expected the earliest complement's invoice to be chosen")
		}
	})

	t.Run("complement outside the window is ignored", func(t *testing.T) {
		comp := newComplement(uuid.New(), day(2024, time.April, 20), "900.00")
		engine := newTestEngine(&stubDocs{complements: []*entity.PaymentComplement{comp}}, policy)

		movement := newMovement(day(2024, time.April, 10), "SPEI", "900.00")
		outcome, err := engine.matchComplement(ctx, movement, NewAssignmentTracker())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != nil {
			t.Error("expected no match outside the ±7 day window")
		}
	})

	t.Run("reserved owning invoice is skipped", func(t *testing.T) {
		invoiceID := uuid.New()
		comp := newComplement(invoiceID, day(2024, time.April, 10), "900.00")
		engine := newTestEngine(&stubDocs{complements: []*entity.PaymentComplement{comp}}, policy)

		tracker := NewAssignmentTracker()
		tracker.Reserve(invoiceID)

		movement := newMovement(day(2024, time.April, 10), "SPEI", "900.00")
		outcome, err := engine.matchComplement(ctx, movement, tracker)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != nil {
			t.Error("expected a complement of a consumed invoice to be skipped")
		}
	})
}

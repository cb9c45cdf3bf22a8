package reconciliation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/concilia/backend/internal/domain/entity"
	"github.com/concilia/backend/internal/domain/valueobject"
)

func TestMatchFuzzy(t *testing.T) {
	ctx := context.Background()
	policy := valueobject.DefaultReconciliationPolicy()
	policy.EnableFuzzy = true

	t.Run("external code in the description matches", func(t *testing.T) {
		invoice := newInvoice("A000123456", day(2024, time.May, 10), "320.00")
		engine := newTestEngine(&stubDocs{docs: []*entity.FiscalDocument{invoice}}, policy)

		movement := newMovement(day(2024, time.May, 12), "PAGO FACT A000123456", "999.00")
		outcome, err := engine.matchFuzzy(ctx, movement, NewAssignmentTracker())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome == nil {
			t.Fatal("expected a fuzzy match")
		}
		if outcome.Kind != valueobject.OutcomeFuzzy {
			t.Errorf("expected fuzzy outcome, got %s", outcome.Kind)
		}
		if outcome.Score == nil || *outcome.Score < 90 {
			t.Errorf("expected score >= 90, got %v", outcome.Score)
		}
		if !strings.Contains(outcome.Reason, "A000123456") {
			t.Errorf("expected reason to cite the matched field text, got %q", outcome.Reason)
		}
	})

	t.Run("scores below threshold do not match", func(t *testing.T) {
		invoice := newInvoice("Z999999999", day(2024, time.May, 10), "320.00")
		engine := newTestEngine(&stubDocs{docs: []*entity.FiscalDocument{invoice}}, policy)

		movement := newMovement(day(2024, time.May, 12), "COMISION MENSUAL", "999.00")
		outcome, err := engine.matchFuzzy(ctx, movement, NewAssignmentTracker())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != nil {
			t.Error("expected no match below the threshold")
		}
	})

	t.Run("score ties break by date proximity", func(t *testing.T) {
		near := newInvoice("A000123456", day(2024, time.May, 12), "100.00")
		far := newInvoice("A000123456", day(2024, time.May, 6), "200.00")
		engine := newTestEngine(&stubDocs{docs: []*entity.FiscalDocument{far, near}}, policy)

		movement := newMovement(day(2024, time.May, 12), "PAGO A000123456", "999.00")
		outcome, err := engine.matchFuzzy(ctx, movement, NewAssignmentTracker())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome == nil {
			t.Fatal("expected a fuzzy match")
		}
		if *outcome.DocumentID != near.ID {
			t.Error("expected the closer invoice to win a score tie")
		}
	})

	t.Run("assigned invoices are excluded", func(t *testing.T) {
		invoice := newInvoice("A000123456", day(2024, time.May, 10), "320.00")
		engine := newTestEngine(&stubDocs{docs: []*entity.FiscalDocument{invoice}}, policy)

		tracker := NewAssignmentTracker()
		tracker.Reserve(invoice.ID)

		movement := newMovement(day(2024, time.May, 12), "PAGO FACT A000123456", "999.00")
		outcome, err := engine.matchFuzzy(ctx, movement, tracker)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != nil {
			t.Error("expected a consumed invoice to be excluded from the fuzzy pool")
		}
	})

	t.Run("empty description never matches", func(t *testing.T) {
		invoice := newInvoice("A000123456", day(2024, time.May, 10), "320.00")
		engine := newTestEngine(&stubDocs{docs: []*entity.FiscalDocument{invoice}}, policy)

		movement := newMovement(day(2024, time.May, 12), "---", "999.00")
		outcome, err := engine.matchFuzzy(ctx, movement, NewAssignmentTracker())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != nil {
			t.Error("expected a separator-only description to normalize away and not match")
		}
	})
}

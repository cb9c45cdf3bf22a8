package reconciliation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/concilia/backend/internal/domain/entity"
	"github.com/concilia/backend/internal/domain/valueobject"
)

func TestFlagDuplicateMovements(t *testing.T) {
	clock := testClock()

	t.Run("movements sharing day and amount are all flagged", func(t *testing.T) {
		m1 := newMovement(day(2024, time.February, 1), "PAGO A", "500.00")
		m2 := newMovement(day(2024, time.February, 1), "PAGO B", "500.00")
		movements := []*entity.BankMovement{m1, m2}

		docID := m1.ID // any non-nil reference; an exact match being overridden
		outcomes := []valueobject.ReconciliationOutcome{
			{MovementID: m1.ID, DocumentID: &docID, Kind: valueobject.OutcomeExact, DecidedAt: clock.Now()},
			{MovementID: m2.ID, Kind: valueobject.OutcomePending, DecidedAt: clock.Now()},
		}

		flagged := flagDuplicateMovements(outcomes, movements)

		for i, o := range flagged {
			if o.Kind != valueobject.OutcomeDuplicateReview {
				t.Errorf("outcome %d: expected duplicate_review, got %s", i, o.Kind)
			}
		}
		if !strings.Contains(flagged[0].Reason, m2.ID.String()) {
			t.Errorf("expected reason to list the sibling id, got %q", flagged[0].Reason)
		}
		if !strings.Contains(flagged[0].Reason, "500.00") || !strings.Contains(flagged[0].Reason, "2024-02-01") {
			t.Errorf("expected reason to state shared amount and date, got %q", flagged[0].Reason)
		}
		// The disputed invoice reference is kept for the audit trail.
		if flagged[0].DocumentID == nil {
			t.Error("expected the disputed document reference to survive the override")
		}
	})

	t.Run("different amounts stay untouched", func(t *testing.T) {
		m1 := newMovement(day(2024, time.February, 1), "PAGO A", "500.00")
		m2 := newMovement(day(2024, time.February, 1), "PAGO B", "501.00")
		movements := []*entity.BankMovement{m1, m2}

		outcomes := []valueobject.ReconciliationOutcome{
			{MovementID: m1.ID, Kind: valueobject.OutcomePending},
			{MovementID: m2.ID, Kind: valueobject.OutcomePending},
		}

		for _, o := range flagDuplicateMovements(outcomes, movements) {
			if o.Kind != valueobject.OutcomePending {
				t.Errorf("expected pending to survive, got %s", o.Kind)
			}
		}
	})

	t.Run("sibling ids are sorted ascending", func(t *testing.T) {
		m1 := newMovement(day(2024, time.February, 1), "A", "500.00")
		m2 := newMovement(day(2024, time.February, 1), "B", "500.00")
		m3 := newMovement(day(2024, time.February, 1), "C", "500.00")
		movements := []*entity.BankMovement{m3, m1, m2}

		outcomes := []valueobject.ReconciliationOutcome{
			{MovementID: m3.ID, Kind: valueobject.OutcomePending},
			{MovementID: m1.ID, Kind: valueobject.OutcomePending},
			{MovementID: m2.ID, Kind: valueobject.OutcomePending},
		}

		flagged := flagDuplicateMovements(outcomes, movements)
		for _, o := range flagged {
			siblings := o.SiblingMovementIDs
			if len(siblings) != 2 {
				t.Fatalf("expected 2 siblings, got %d", len(siblings))
			}
			if siblings[0].String() > siblings[1].String() {
				t.Error("expected sibling ids sorted ascending")
			}
		}
	})
}

func TestFlagNonUniqueInvoices(t *testing.T) {
	ctx := context.Background()
	policy := valueobject.DefaultReconciliationPolicy()

	t.Run("exact match on a non-unique day amount is downgraded", func(t *testing.T) {
		twinA := newInvoice("UUID-TWIN-A", day(2024, time.March, 1), "750.00")
		twinB := newInvoice("UUID-TWIN-B", day(2024, time.March, 1), "750.00")
		engine := newTestEngine(&stubDocs{docs: []*entity.FiscalDocument{twinA, twinB}}, policy)

		movement := newMovement(day(2024, time.March, 1), "PAGO", "750.00")
		docID := twinA.ID
		outcomes := []valueobject.ReconciliationOutcome{
			{MovementID: movement.ID, DocumentID: &docID, Kind: valueobject.OutcomeExact},
		}

		flagged, err := engine.flagNonUniqueInvoices(ctx, outcomes, []*entity.BankMovement{movement})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if flagged[0].Kind != valueobject.OutcomeDuplicateReview {
			t.Errorf("expected duplicate_review, got %s", flagged[0].Kind)
		}
		if !strings.Contains(flagged[0].Reason, "ambiguous") {
			t.Errorf("expected reason to state the ambiguity, got %q", flagged[0].Reason)
		}
	})

	t.Run("unique day amount stays exact", func(t *testing.T) {
		only := newInvoice("UUID-ONLY", day(2024, time.March, 1), "750.00")
		other := newInvoice("UUID-OTHER", day(2024, time.March, 1), "990.00")
		engine := newTestEngine(&stubDocs{docs: []*entity.FiscalDocument{only, other}}, policy)

		movement := newMovement(day(2024, time.March, 1), "PAGO", "750.00")
		docID := only.ID
		outcomes := []valueobject.ReconciliationOutcome{
			{MovementID: movement.ID, DocumentID: &docID, Kind: valueobject.OutcomeExact},
		}

		flagged, err := engine.flagNonUniqueInvoices(ctx, outcomes, []*entity.BankMovement{movement})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if flagged[0].Kind != valueobject.OutcomeExact {
			t.Errorf("expected exact to survive, got %s", flagged[0].Kind)
		}
	})

	t.Run("ineligible twins do not count", func(t *testing.T) {
		chosen := newInvoice("UUID-CHOSEN", day(2024, time.March, 1), "750.00")
		deferred := newInvoice("UUID-PPD", day(2024, time.March, 1), "750.00")
		deferred.PaymentMethod = entity.PaymentMethodDeferred
		engine := newTestEngine(&stubDocs{docs: []*entity.FiscalDocument{chosen, deferred}}, policy)

		movement := newMovement(day(2024, time.March, 1), "PAGO", "750.00")
		docID := chosen.ID
		outcomes := []valueobject.ReconciliationOutcome{
			{MovementID: movement.ID, DocumentID: &docID, Kind: valueobject.OutcomeExact},
		}

		flagged, err := engine.flagNonUniqueInvoices(ctx, outcomes, []*entity.BankMovement{movement})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if flagged[0].Kind != valueobject.OutcomeExact {
			t.Errorf("expected exact to survive a policy-ineligible twin, got %s", flagged[0].Kind)
		}
	})

	t.Run("fuzzy and pending outcomes are ignored", func(t *testing.T) {
		twinA := newInvoice("UUID-TWIN-A", day(2024, time.March, 1), "750.00")
		twinB := newInvoice("UUID-TWIN-B", day(2024, time.March, 1), "750.00")
		engine := newTestEngine(&stubDocs{docs: []*entity.FiscalDocument{twinA, twinB}}, policy)

		movement := newMovement(day(2024, time.March, 1), "PAGO", "750.00")
		docID := twinA.ID
		score := 95
		outcomes := []valueobject.ReconciliationOutcome{
			{MovementID: movement.ID, DocumentID: &docID, Kind: valueobject.OutcomeFuzzy, Score: &score},
		}

		flagged, err := engine.flagNonUniqueInvoices(ctx, outcomes, []*entity.BankMovement{movement})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if flagged[0].Kind != valueobject.OutcomeFuzzy {
			t.Errorf("expected fuzzy outcomes to pass through, got %s", flagged[0].Kind)
		}
	})
}

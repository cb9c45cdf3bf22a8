package reconciliation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/concilia/backend/internal/domain/entity"
	"github.com/concilia/backend/internal/domain/valueobject"
)

// stubMovements is an in-memory MovementRepository for the summary tests.
type stubMovements struct {
	movements []*entity.BankMovement
}

func (s *stubMovements) ListByPeriod(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]*entity.BankMovement, error) {
	return s.movements, nil
}

func (s *stubMovements) List(_ context.Context, _ uuid.UUID, _, _ int) ([]*entity.BankMovement, int64, error) {
	return s.movements, int64(len(s.movements)), nil
}

func (s *stubMovements) ApplyOutcome(_ context.Context, _ uuid.UUID, _ entity.MovementStatus, _ *uuid.UUID, _ *time.Time) error {
	return nil
}

func amountGroupsInput() GetAmountGroupsInput {
	return GetAmountGroupsInput{
		CompanyID: testCompany().ID,
		Start:     day(2024, time.March, 1),
		End:       day(2024, time.March, 31),
		Policy:    valueobject.DefaultReconciliationPolicy(),
	}
}

func TestGetAmountGroups(t *testing.T) {
	ctx := context.Background()

	t.Run("movements and documents with the same amount share a row", func(t *testing.T) {
		movements := &stubMovements{movements: []*entity.BankMovement{
			newMovement(day(2024, time.March, 5), "DEPOSITO", "1500.00"),
		}}
		docs := &stubDocs{docs: []*entity.FiscalDocument{
			newInvoice("UUID-1", day(2024, time.March, 4), "1500.00"),
			newInvoice("UUID-2", day(2024, time.March, 6), "1500.00"),
		}}

		uc := NewGetAmountGroupsUseCase(movements, docs)
		rows, err := uc.Execute(ctx, amountGroupsInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(rows))
		}
		if rows[0].MovementCount != 1 || rows[0].DocumentCount != 2 {
			t.Errorf("expected counts 1/2, got %d/%d", rows[0].MovementCount, rows[0].DocumentCount)
		}
		if !rows[0].Amount.Equal(amt("1500.00")) {
			t.Errorf("expected row amount 1500.00, got %s", rows[0].Amount)
		}
	})

	t.Run("cent-apart amounts collapse into the smaller member", func(t *testing.T) {
		movements := &stubMovements{movements: []*entity.BankMovement{
			newMovement(day(2024, time.March, 5), "DEPOSITO", "100.00"),
		}}
		docs := &stubDocs{docs: []*entity.FiscalDocument{
			newInvoice("UUID-1", day(2024, time.March, 5), "100.01"),
		}}

		uc := NewGetAmountGroupsUseCase(movements, docs)
		rows, err := uc.Execute(ctx, amountGroupsInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(rows))
		}
		if !rows[0].Amount.Equal(amt("100.00")) {
			t.Errorf("expected row keyed by 100.00, got %s", rows[0].Amount)
		}
		if rows[0].MovementCount != 1 || rows[0].DocumentCount != 1 {
			t.Errorf("expected counts 1/1, got %d/%d", rows[0].MovementCount, rows[0].DocumentCount)
		}
	})

	t.Run("a chain of cent-apart amounts does not collapse transitively", func(t *testing.T) {
		movements := &stubMovements{movements: []*entity.BankMovement{
			newMovement(day(2024, time.March, 5), "DEPOSITO A", "100.00"),
			newMovement(day(2024, time.March, 6), "DEPOSITO B", "100.01"),
			newMovement(day(2024, time.March, 7), "DEPOSITO C", "100.02"),
		}}

		uc := NewGetAmountGroupsUseCase(movements, &stubDocs{})
		rows, err := uc.Execute(ctx, amountGroupsInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		// Busiest cluster first: 100.00 absorbs 100.01, and 100.02 is more
		// than a cent away from the cluster anchor.
		if !rows[0].Amount.Equal(amt("100.00")) || rows[0].MovementCount != 2 {
			t.Errorf("expected first row 100.00 with 2 movements, got %s with %d",
				rows[0].Amount, rows[0].MovementCount)
		}
		if !rows[1].Amount.Equal(amt("100.02")) || rows[1].MovementCount != 1 {
			t.Errorf("expected second row 100.02 with 1 movement, got %s with %d",
				rows[1].Amount, rows[1].MovementCount)
		}
	})

	t.Run("deferred invoices are excluded under the default policy", func(t *testing.T) {
		deferred := newInvoice("UUID-1", day(2024, time.March, 5), "200.00")
		deferred.PaymentMethod = entity.PaymentMethodDeferred
		docs := &stubDocs{docs: []*entity.FiscalDocument{deferred}}

		uc := NewGetAmountGroupsUseCase(&stubMovements{}, docs)
		rows, err := uc.Execute(ctx, amountGroupsInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 0 {
			t.Fatalf("expected no rows, got %d", len(rows))
		}
	})

	t.Run("rows are ordered by combined activity", func(t *testing.T) {
		movements := &stubMovements{movements: []*entity.BankMovement{
			newMovement(day(2024, time.March, 5), "DEPOSITO A", "500.00"),
			newMovement(day(2024, time.March, 6), "DEPOSITO B", "500.00"),
			newMovement(day(2024, time.March, 7), "DEPOSITO C", "900.00"),
		}}

		uc := NewGetAmountGroupsUseCase(movements, &stubDocs{})
		rows, err := uc.Execute(ctx, amountGroupsInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		if !rows[0].Amount.Equal(amt("500.00")) {
			t.Errorf("expected busiest amount 500.00 first, got %s", rows[0].Amount)
		}
	})
}

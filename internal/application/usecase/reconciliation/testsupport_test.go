package reconciliation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/concilia/backend/internal/domain/entity"
)

// stubDocs is an in-memory DocumentRepository for engine tests.
type stubDocs struct {
	docs        []*entity.FiscalDocument
	complements []*entity.PaymentComplement
	err         error
}

func (s *stubDocs) InvoicesOnOrNear(_ context.Context, _ uuid.UUID, date time.Time, windowDays int) ([]*entity.FiscalDocument, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.FiscalDocument
	for _, d := range s.docs {
		if dateDistanceDays(d.EffectiveDate(), date) <= windowDays {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *stubDocs) InvoicesInRange(_ context.Context, _ uuid.UUID, start, end time.Time) ([]*entity.FiscalDocument, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.FiscalDocument
	for _, d := range s.docs {
		day := d.Day()
		if !day.Before(start) && !day.After(end) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *stubDocs) PaymentComplementsNear(_ context.Context, _ uuid.UUID, date time.Time, windowDays int) ([]*entity.PaymentComplement, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.PaymentComplement
	for _, c := range s.complements {
		if dateDistanceDays(c.PaidAt, date) <= windowDays {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubDocs) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.FiscalDocument, error) {
	if s.err != nil {
		return nil, s.err
	}
	want := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []*entity.FiscalDocument
	for _, d := range s.docs {
		if _, ok := want[d.ID]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

// fixedClock returns a constant time for reproducible outcomes.
type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

func testClock() fixedClock {
	return fixedClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func testCompany() *entity.Company {
	return &entity.Company{
		ID:        uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		TaxID:     "AAA010101AAA",
		LegalName: "Acme SA de CV",
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amt(v string) decimal.Decimal {
	a, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return a
}

func newInvoice(taxUUID string, issued time.Time, total string) *entity.FiscalDocument {
	return &entity.FiscalDocument{
		ID:            uuid.New(),
		TaxUUID:       taxUUID,
		IssuedAt:      issued,
		Total:         amt(total),
		Kind:          entity.DocumentKindInvoice,
		PaymentMethod: entity.PaymentMethodImmediate,
		Valid:         true,
		IssuerName:    "Acme SA de CV",
		IssuerTaxID:   "AAA010101AAA",
		ReceiverName:  "Cliente SA",
		ReceiverTaxID: "BBB020202BBB",
	}
}

func newMovement(date time.Time, description, amount string) *entity.BankMovement {
	return &entity.BankMovement{
		ID:          uuid.New(),
		Date:        date,
		Description: description,
		Amount:      amt(amount),
		Type:        entity.MovementTypeDeposit,
	}
}

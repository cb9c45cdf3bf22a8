package reconciliation

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/concilia/backend/internal/application/adapter"
	"github.com/concilia/backend/internal/domain/valueobject"
)

// GetAmountGroupsInput represents the input for the per-amount summary.
type GetAmountGroupsInput struct {
	CompanyID uuid.UUID
	Start     time.Time
	End       time.Time
	Policy    valueobject.ReconciliationPolicy
}

// GetAmountGroupsUseCase builds the side-by-side per-amount view: for every
// amount present in the period, how many movements and how many eligible
// documents carry it. Amounts closer than the cent tolerance collapse into
// one row keyed by the smallest member, so near-equal OCR artifacts show up
// together.
type GetAmountGroupsUseCase struct {
	movementRepo adapter.MovementRepository
	docRepo      adapter.DocumentRepository
}

// NewGetAmountGroupsUseCase creates a new GetAmountGroupsUseCase instance.
func NewGetAmountGroupsUseCase(
	movementRepo adapter.MovementRepository,
	docRepo adapter.DocumentRepository,
) *GetAmountGroupsUseCase {
	return &GetAmountGroupsUseCase{
		movementRepo: movementRepo,
		docRepo:      docRepo,
	}
}

// Execute computes the per-amount rows, most active amounts first.
func (uc *GetAmountGroupsUseCase) Execute(ctx context.Context, input GetAmountGroupsInput) ([]valueobject.AmountGroupRow, error) {
	movements, err := uc.movementRepo.ListByPeriod(ctx, input.CompanyID, input.Start, input.End)
	if err != nil {
		return nil, err
	}

	docs, err := uc.docRepo.InvoicesInRange(ctx, input.CompanyID, input.Start, input.End)
	if err != nil {
		return nil, err
	}

	movementCounts := make(map[string]int)
	docCounts := make(map[string]int)
	amountByKey := make(map[string]decimal.Decimal)

	record := func(counts map[string]int, amount decimal.Decimal) {
		rounded := amount.Round(2)
		key := rounded.String()
		counts[key]++
		amountByKey[key] = rounded
	}

	for _, m := range movements {
		if m.Amount.IsZero() {
			continue
		}
		record(movementCounts, m.Amount)
	}
	for _, d := range docs {
		if !invoiceEligible(d, input.Policy) || d.Total.IsZero() {
			continue
		}
		record(docCounts, d.Total)
	}

	amounts := make([]decimal.Decimal, 0, len(amountByKey))
	for _, a := range amountByKey {
		amounts = append(amounts, a)
	}
	sort.Slice(amounts, func(i, j int) bool {
		return amounts[i].LessThan(amounts[j])
	})

	// Cluster amounts within the cent tolerance of the cluster's smallest
	// member, which also keys the row. Anchoring on the first member keeps a
	// chain of cent-apart amounts from collapsing into a single row.
	var rows []valueobject.AmountGroupRow
	for i := 0; i < len(amounts); {
		j := i + 1
		for j < len(amounts) && amounts[j].Sub(amounts[i]).LessThanOrEqual(valueobject.AmountTolerance) {
			j++
		}

		row := valueobject.AmountGroupRow{Amount: amounts[i]}
		for _, a := range amounts[i:j] {
			key := a.String()
			row.MovementCount += movementCounts[key]
			row.DocumentCount += docCounts[key]
		}
		rows = append(rows, row)
		i = j
	}

	sort.Slice(rows, func(i, j int) bool {
		ai := rows[i].MovementCount + rows[i].DocumentCount
		aj := rows[j].MovementCount + rows[j].DocumentCount
		if ai != aj {
			return ai > aj
		}
		return rows[i].Amount.GreaterThan(rows[j].Amount)
	})

	return rows, nil
}

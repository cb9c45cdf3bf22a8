package reconciliation

import (
	"context"

	"github.com/google/uuid"

	"github.com/concilia/backend/internal/domain/entity"
	"github.com/concilia/backend/internal/domain/valueobject"
)

// buildReport aggregates final outcomes into summary counts and one detail
// row per movement, enriched with the matched invoice's total and
// counterparty name when a document was chosen.
func (e *Engine) buildReport(
	ctx context.Context,
	movements []*entity.BankMovement,
	outcomes []valueobject.ReconciliationOutcome,
) (*valueobject.ReconciliationReport, error) {
	byMovement := make(map[uuid.UUID]*entity.BankMovement, len(movements))
	for _, m := range movements {
		byMovement[m.ID] = m
	}

	var docIDs []uuid.UUID
	seen := make(map[uuid.UUID]struct{})
	for _, o := range outcomes {
		if o.DocumentID != nil {
			if _, dup := seen[*o.DocumentID]; !dup {
				seen[*o.DocumentID] = struct{}{}
				docIDs = append(docIDs, *o.DocumentID)
			}
		}
	}

	docsByID := make(map[uuid.UUID]*entity.FiscalDocument)
	if len(docIDs) > 0 {
		docs, err := e.docs.GetByIDs(ctx, docIDs)
		if err != nil {
			return nil, err
		}
		for _, d := range docs {
			docsByID[d.ID] = d
		}
	}

	report := &valueobject.ReconciliationReport{
		Details: make([]valueobject.ReportDetail, 0, len(outcomes)),
	}
	report.Summary.TotalMovements = len(outcomes)

	for _, o := range outcomes {
		switch o.Kind {
		case valueobject.OutcomeExact:
			report.Summary.Exact++
		case valueobject.OutcomeFuzzy:
			report.Summary.Fuzzy++
		case valueobject.OutcomePending:
			report.Summary.Pending++
		case valueobject.OutcomeDuplicateReview:
			report.Summary.DuplicateReview++
		}

		detail := valueobject.ReportDetail{
			MovementID: o.MovementID,
			Kind:       o.Kind,
			Score:      o.Score,
			Reason:     o.Reason,
			DocumentID: o.DocumentID,
		}
		if m, ok := byMovement[o.MovementID]; ok {
			detail.MovementDate = m.Date
			detail.MovementDescription = m.Description
			detail.MovementAmount = m.Amount
		}
		if o.DocumentID != nil {
			if doc, ok := docsByID[*o.DocumentID]; ok {
				total := doc.Total
				detail.DocumentTotal = &total
				detail.CounterpartyName = doc.CounterpartyName(e.company.TaxID)
			}
		}

		report.Details = append(report.Details, detail)
	}

	if report.Summary.TotalMovements > 0 {
		automated := report.Summary.Exact + report.Summary.Fuzzy
		report.Summary.AutomatedPercentage =
			float64(automated) / float64(report.Summary.TotalMovements) * 100
	}

	return report, nil
}

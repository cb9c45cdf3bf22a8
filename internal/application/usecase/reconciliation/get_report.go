package reconciliation

import (
	"context"

	"github.com/google/uuid"

	"github.com/concilia/backend/internal/application/adapter"
	domainerror "github.com/concilia/backend/internal/domain/error"
	"github.com/concilia/backend/internal/domain/valueobject"
)

// GetReportUseCase returns the most recent reconciliation report of a company.
type GetReportUseCase struct {
	reportCache adapter.ReportCache
}

// NewGetReportUseCase creates a new GetReportUseCase instance.
func NewGetReportUseCase(reportCache adapter.ReportCache) *GetReportUseCase {
	return &GetReportUseCase{
		reportCache: reportCache,
	}
}

// Execute retrieves the latest cached report for the company.
func (uc *GetReportUseCase) Execute(ctx context.Context, companyID uuid.UUID) (*valueobject.ReconciliationReport, error) {
	report, err := uc.reportCache.GetLatest(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domainerror.NewReconciliationError(
			domainerror.ErrCodeReportNotFound,
			"no reconciliation report available for this company",
			domainerror.ErrReportNotFound,
		)
	}
	return report, nil
}

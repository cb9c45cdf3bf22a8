// Package company contains company catalog use cases.
package company

import (
	"context"

	"github.com/concilia/backend/internal/application/adapter"
	"github.com/concilia/backend/internal/domain/entity"
)

// ListCompaniesUseCase handles listing the companies available for reconciliation.
type ListCompaniesUseCase struct {
	companyRepo adapter.CompanyRepository
}

// NewListCompaniesUseCase creates a new ListCompaniesUseCase instance.
func NewListCompaniesUseCase(companyRepo adapter.CompanyRepository) *ListCompaniesUseCase {
	return &ListCompaniesUseCase{
		companyRepo: companyRepo,
	}
}

// Execute retrieves all companies ordered by legal name.
func (uc *ListCompaniesUseCase) Execute(ctx context.Context) ([]*entity.Company, error) {
	return uc.companyRepo.List(ctx)
}

package dto

import (
	"github.com/concilia/backend/internal/domain/entity"
)

// CompanyResponse represents a company in API responses.
type CompanyResponse struct {
	ID        string `json:"id"`
	TaxID     string `json:"tax_id"`
	LegalName string `json:"legal_name"`
}

// CompanyListResponse represents the response for listing companies.
type CompanyListResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// ToCompanyResponse converts a Company entity to a CompanyResponse DTO.
func ToCompanyResponse(company *entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:        company.ID.String(),
		TaxID:     company.TaxID,
		LegalName: company.LegalName,
	}
}

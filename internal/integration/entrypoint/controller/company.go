package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/concilia/backend/internal/application/usecase/company"
	"github.com/concilia/backend/internal/integration/entrypoint/dto"
)

// CompanyController handles company catalog endpoints.
type CompanyController struct {
	listCompaniesUseCase *company.ListCompaniesUseCase
}

// NewCompanyController creates a new company controller instance.
func NewCompanyController(listCompaniesUseCase *company.ListCompaniesUseCase) *CompanyController {
	return &CompanyController{
		listCompaniesUseCase: listCompaniesUseCase,
	}
}

// List handles GET /companies requests.
func (c *CompanyController) List(ctx *gin.Context) {
	companies, err := c.listCompaniesUseCase.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	responses := make([]dto.CompanyResponse, len(companies))
	for i, comp := range companies {
		responses[i] = dto.ToCompanyResponse(comp)
	}

	ctx.JSON(http.StatusOK, dto.CompanyListResponse{Companies: responses})
}

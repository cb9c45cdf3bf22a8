// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/concilia/backend/internal/application/usecase/reconciliation"
	domainerror "github.com/concilia/backend/internal/domain/error"
	"github.com/concilia/backend/internal/domain/valueobject"
	"github.com/concilia/backend/internal/integration/entrypoint/dto"
)

// ReconciliationController handles reconciliation endpoints.
type ReconciliationController struct {
	triggerRunUseCase      *reconciliation.TriggerRunUseCase
	getReportUseCase       *reconciliation.GetReportUseCase
	getAmountGroupsUseCase *reconciliation.GetAmountGroupsUseCase
}

// NewReconciliationController creates a new reconciliation controller instance.
func NewReconciliationController(
	triggerRunUseCase *reconciliation.TriggerRunUseCase,
	getReportUseCase *reconciliation.GetReportUseCase,
	getAmountGroupsUseCase *reconciliation.GetAmountGroupsUseCase,
) *ReconciliationController {
	return &ReconciliationController{
		triggerRunUseCase:      triggerRunUseCase,
		getReportUseCase:       getReportUseCase,
		getAmountGroupsUseCase: getAmountGroupsUseCase,
	}
}

// TriggerRun handles POST /companies/:companyId/reconciliation requests.
func (c *ReconciliationController) TriggerRun(ctx *gin.Context) {
	companyID, ok := parseCompanyID(ctx)
	if !ok {
		return
	}

	var req dto.TriggerReconciliationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start_date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidPeriod),
		})
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid end_date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidPeriod),
		})
		return
	}

	input := reconciliation.TriggerRunInput{
		CompanyID: companyID,
		Start:     start,
		End:       end,
		Policy:    req.ToPolicy(),
	}

	output, err := c.triggerRunUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReconciliationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTriggerReconciliationResponse(output))
}

// GetReport handles GET /companies/:companyId/reconciliation/report requests.
func (c *ReconciliationController) GetReport(ctx *gin.Context) {
	companyID, ok := parseCompanyID(ctx)
	if !ok {
		return
	}

	report, err := c.getReportUseCase.Execute(ctx.Request.Context(), companyID)
	if err != nil {
		c.handleReconciliationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReportResponse(report))
}

// GetAmountGroups handles GET /companies/:companyId/reconciliation/amounts requests.
func (c *ReconciliationController) GetAmountGroups(ctx *gin.Context) {
	companyID, ok := parseCompanyID(ctx)
	if !ok {
		return
	}

	start, err := time.Parse("2006-01-02", ctx.Query("start_date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid or missing start_date query parameter",
			Code:  string(domainerror.ErrCodeInvalidPeriod),
		})
		return
	}
	end, err := time.Parse("2006-01-02", ctx.Query("end_date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid or missing end_date query parameter",
			Code:  string(domainerror.ErrCodeInvalidPeriod),
		})
		return
	}

	input := reconciliation.GetAmountGroupsInput{
		CompanyID: companyID,
		Start:     start,
		End:       end,
		Policy:    valueobject.DefaultReconciliationPolicy(),
	}

	rows, err := c.getAmountGroupsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReconciliationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"amounts": dto.ToAmountGroupResponses(rows)})
}

// handleReconciliationError maps domain errors to HTTP responses.
func (c *ReconciliationController) handleReconciliationError(ctx *gin.Context, err error) {
	var recErr *domainerror.ReconciliationError
	if errors.As(err, &recErr) {
		ctx.JSON(statusCodeForReconciliationError(recErr.Code), dto.ErrorResponse{
			Error: recErr.Message,
			Code:  string(recErr.Code),
		})
		return
	}

	if errors.Is(err, domainerror.ErrCompanyNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Company not found",
			Code:  string(domainerror.ErrCodeCompanyNotFound),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeStorageFailure),
	})
}

// statusCodeForReconciliationError maps error codes to HTTP status codes.
func statusCodeForReconciliationError(code domainerror.ReconciliationErrorCode) int {
	switch code {
	case domainerror.ErrCodeCompanyNotFound,
		domainerror.ErrCodeNoMovementsInPeriod,
		domainerror.ErrCodeReportNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidPeriod,
		domainerror.ErrCodeInvalidFuzzyThreshold:
		return http.StatusBadRequest
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// parseCompanyID extracts and validates the companyId path parameter.
func parseCompanyID(ctx *gin.Context) (uuid.UUID, bool) {
	companyID, err := uuid.Parse(ctx.Param("companyId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid company ID format",
		})
		return uuid.Nil, false
	}
	return companyID, true
}

package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/concilia/backend/internal/application/usecase/movement"
	"github.com/concilia/backend/internal/integration/entrypoint/dto"
)

// MovementController handles bank movement endpoints.
type MovementController struct {
	listMovementsUseCase *movement.ListMovementsUseCase
}

// NewMovementController creates a new movement controller instance.
func NewMovementController(listMovementsUseCase *movement.ListMovementsUseCase) *MovementController {
	return &MovementController{
		listMovementsUseCase: listMovementsUseCase,
	}
}

// List handles GET /companies/:companyId/movements requests.
func (c *MovementController) List(ctx *gin.Context) {
	companyID, ok := parseCompanyID(ctx)
	if !ok {
		return
	}

	page := 1
	limit := 50
	if pageStr := ctx.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	input := movement.ListMovementsInput{
		CompanyID: companyID,
		Page:      page,
		Limit:     limit,
	}

	output, err := c.listMovementsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	movements := make([]dto.MovementResponse, len(output.Movements))
	for i, m := range output.Movements {
		movements[i] = dto.ToMovementResponse(m)
	}

	ctx.JSON(http.StatusOK, dto.MovementListResponse{
		Movements: movements,
		Pagination: dto.MovementPaginationResponse{
			Page:       output.Page,
			Limit:      output.Limit,
			Total:      output.Total,
			TotalPages: output.TotalPages,
		},
	})
}

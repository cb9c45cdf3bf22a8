// Package movement contains bank movement query use cases.
package movement

import (
	"context"

	"github.com/google/uuid"

	"github.com/concilia/backend/internal/application/adapter"
	"github.com/concilia/backend/internal/domain/entity"
)

// ListMovementsInput represents the input for listing bank movements.
type ListMovementsInput struct {
	CompanyID uuid.UUID
	Page      int
	Limit     int
}

// ListMovementsOutput represents a page of bank movements.
type ListMovementsOutput struct {
	Movements  []*entity.BankMovement
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ListMovementsUseCase handles listing a company's bank movements.
type ListMovementsUseCase struct {
	movementRepo adapter.MovementRepository
}

// NewListMovementsUseCase creates a new ListMovementsUseCase instance.
func NewListMovementsUseCase(movementRepo adapter.MovementRepository) *ListMovementsUseCase {
	return &ListMovementsUseCase{
		movementRepo: movementRepo,
	}
}

// Execute retrieves a page of movements, newest first.
func (uc *ListMovementsUseCase) Execute(ctx context.Context, input ListMovementsInput) (*ListMovementsOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	movements, total, err := uc.movementRepo.List(ctx, input.CompanyID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return &ListMovementsOutput{
		Movements:  movements,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

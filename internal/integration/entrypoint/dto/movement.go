package dto

import (
	"time"

	"github.com/concilia/backend/internal/domain/entity"
)

// MovementResponse represents a single bank movement in API responses.
type MovementResponse struct {
	ID                string     `json:"id"`
	CompanyID         string     `json:"company_id"`
	Date              string     `json:"date"`
	Description       string     `json:"description"`
	Amount            string     `json:"amount"`
	Type              string     `json:"type"`
	Reference         string     `json:"reference,omitempty"`
	Status            string     `json:"status"`
	MatchedDocumentID *string    `json:"matched_document_id,omitempty"`
	ReconciledAt      *time.Time `json:"reconciled_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// MovementPaginationResponse represents pagination information in API responses.
type MovementPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// MovementListResponse represents the response for listing bank movements.
type MovementListResponse struct {
	Movements  []MovementResponse         `json:"movements"`
	Pagination MovementPaginationResponse `json:"pagination"`
}

// ToMovementResponse converts a BankMovement entity to a MovementResponse DTO.
func ToMovementResponse(movement *entity.BankMovement) MovementResponse {
	response := MovementResponse{
		ID:           movement.ID.String(),
		CompanyID:    movement.CompanyID.String(),
		Date:         movement.Date.Format("2006-01-02"),
		Description:  movement.Description,
		Amount:       movement.Amount.StringFixed(2),
		Type:         string(movement.Type),
		Reference:    movement.Reference,
		Status:       string(movement.Status),
		ReconciledAt: movement.ReconciledAt,
		CreatedAt:    movement.CreatedAt,
		UpdatedAt:    movement.UpdatedAt,
	}
	if movement.MatchedDocumentID != nil {
		id := movement.MatchedDocumentID.String()
		response.MatchedDocumentID = &id
	}
	return response
}

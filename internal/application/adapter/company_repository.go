package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/concilia/backend/internal/domain/entity"
)

// CompanyRepository defines persistence operations for companies.
type CompanyRepository interface {
	// GetByID retrieves a company by identifier.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)

	// List retrieves all companies ordered by legal name.
	List(ctx context.Context) ([]*entity.Company, error)
}

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/concilia/backend/internal/application/adapter"
	"github.com/concilia/backend/internal/domain/entity"
	domainerror "github.com/concilia/backend/internal/domain/error"
	"github.com/concilia/backend/internal/integration/persistence/model"
)

// companyRepository implements the adapter.CompanyRepository interface.
type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository instance.
func NewCompanyRepository(db *gorm.DB) adapter.CompanyRepository {
	return &companyRepository{
		db: db,
	}
}

// GetByID retrieves a company by its ID.
func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	var companyModel model.CompanyModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&companyModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCompanyNotFound
		}
		return nil, result.Error
	}
	return companyModel.ToEntity(), nil
}

// List retrieves all companies ordered by legal name.
func (r *companyRepository) List(ctx context.Context) ([]*entity.Company, error) {
	var companyModels []model.CompanyModel
	result := r.db.WithContext(ctx).
		Order("legal_name ASC").
		Find(&companyModels)
	if result.Error != nil {
		return nil, result.Error
	}

	companies := make([]*entity.Company, len(companyModels))
	for i, cm := range companyModels {
		companies[i] = cm.ToEntity()
	}
	return companies, nil
}

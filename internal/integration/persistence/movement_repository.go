// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/concilia/backend/internal/application/adapter"
	"github.com/concilia/backend/internal/domain/entity"
	domainerror "github.com/concilia/backend/internal/domain/error"
	"github.com/concilia/backend/internal/integration/persistence/model"
)

// movementRepository implements the adapter.MovementRepository interface.
type movementRepository struct {
	db *gorm.DB
}

// NewMovementRepository creates a new bank movement repository instance.
func NewMovementRepository(db *gorm.DB) adapter.MovementRepository {
	return &movementRepository{
		db: db,
	}
}

// ListByPeriod retrieves a company's movements with dates inside [start, end].
// Ordered by date then id so two runs over the same period see the same
// sequence.
func (r *movementRepository) ListByPeriod(
	ctx context.Context,
	companyID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]*entity.BankMovement, error) {
	var movementModels []model.BankMovementModel
	result := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC, id ASC").
		Find(&movementModels)
	if result.Error != nil {
		return nil, result.Error
	}

	movements := make([]*entity.BankMovement, len(movementModels))
	for i, mm := range movementModels {
		movements[i] = mm.ToEntity()
	}
	return movements, nil
}

// List retrieves a page of a company's movements, newest first.
func (r *movementRepository) List(
	ctx context.Context,
	companyID uuid.UUID,
	limit int,
	offset int,
) ([]*entity.BankMovement, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&model.BankMovementModel{}).
		Where("company_id = ?", companyID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var movementModels []model.BankMovementModel
	result := query.
		Order("date DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&movementModels)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	movements := make([]*entity.BankMovement, len(movementModels))
	for i, mm := range movementModels {
		movements[i] = mm.ToEntity()
	}
	return movements, total, nil
}

// ApplyOutcome persists the reconciliation state decided for a movement.
func (r *movementRepository) ApplyOutcome(
	ctx context.Context,
	movementID uuid.UUID,
	status entity.MovementStatus,
	documentID *uuid.UUID,
	reconciledAt *time.Time,
) error {
	result := r.db.WithContext(ctx).
		Model(&model.BankMovementModel{}).
		Where("id = ?", movementID).
		Updates(map[string]interface{}{
			"status":              string(status),
			"matched_document_id": documentID,
			"reconciled_at":       reconciledAt,
			"updated_at":          time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrMovementNotFound
	}
	return nil
}

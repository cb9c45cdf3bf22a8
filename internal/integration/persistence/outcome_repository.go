package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/concilia/backend/internal/application/adapter"
	"github.com/concilia/backend/internal/domain/valueobject"
	"github.com/concilia/backend/internal/integration/persistence/model"
)

// outcomeRepository implements the adapter.OutcomeRepository interface.
type outcomeRepository struct {
	db *gorm.DB
}

// NewOutcomeRepository creates a new reconciliation outcome repository instance.
func NewOutcomeRepository(db *gorm.DB) adapter.OutcomeRepository {
	return &outcomeRepository{
		db: db,
	}
}

// SaveRun stores all outcomes of one run atomically.
func (r *outcomeRepository) SaveRun(
	ctx context.Context,
	companyID uuid.UUID,
	runID uuid.UUID,
	outcomes []valueobject.ReconciliationOutcome,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, outcome := range outcomes {
			outcomeModel := model.ReconciliationOutcomeFromValue(companyID, runID, i, outcome)
			if err := tx.Create(outcomeModel).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByRun retrieves the outcomes of a run, in insertion order.
func (r *outcomeRepository) ListByRun(ctx context.Context, runID uuid.UUID) ([]valueobject.ReconciliationOutcome, error) {
	var outcomeModels []model.ReconciliationOutcomeModel
	result := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("position ASC").
		Find(&outcomeModels)
	if result.Error != nil {
		return nil, result.Error
	}

	outcomes := make([]valueobject.ReconciliationOutcome, len(outcomeModels))
	for i, om := range outcomeModels {
		outcome, err := om.ToValue()
		if err != nil {
			return nil, err
		}
		outcomes[i] = outcome
	}
	return outcomes, nil
}

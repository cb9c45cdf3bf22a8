package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/concilia/backend/internal/domain/valueobject"
)

// ReconciliationOutcomeModel represents the reconciliation_outcomes table in
// the database. One row per movement per run; Position preserves the run's
// input order.
type ReconciliationOutcomeModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RunID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	MovementID uuid.UUID  `gorm:"type:uuid;not null;index"`
	DocumentID *uuid.UUID `gorm:"type:uuid;index"`

	Kind               string         `gorm:"type:varchar(20);not null;index"`
	Score              *int           `gorm:"type:integer"`
	Reason             string         `gorm:"type:text;not null"`
	DecidedAt          time.Time      `gorm:"type:timestamp;not null"`
	SiblingMovementIDs pq.StringArray `gorm:"type:uuid[]"`

	Position  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	Movement *BankMovementModel   `gorm:"foreignKey:MovementID;references:ID"`
	Document *FiscalDocumentModel `gorm:"foreignKey:DocumentID;references:ID"`
}

// TableName returns the table name for the ReconciliationOutcomeModel.
func (ReconciliationOutcomeModel) TableName() string {
	return "reconciliation_outcomes"
}

// ToValue converts a ReconciliationOutcomeModel to a domain outcome value.
func (m *ReconciliationOutcomeModel) ToValue() (valueobject.ReconciliationOutcome, error) {
	outcome := valueobject.ReconciliationOutcome{
		MovementID: m.MovementID,
		DocumentID: m.DocumentID,
		Kind:       valueobject.OutcomeKind(m.Kind),
		Score:      m.Score,
		Reason:     m.Reason,
		DecidedAt:  m.DecidedAt,
	}

	if len(m.SiblingMovementIDs) > 0 {
		siblings := make([]uuid.UUID, len(m.SiblingMovementIDs))
		for i, raw := range m.SiblingMovementIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				return valueobject.ReconciliationOutcome{}, err
			}
			siblings[i] = id
		}
		outcome.SiblingMovementIDs = siblings
	}

	return outcome, nil
}

// ReconciliationOutcomeFromValue creates a ReconciliationOutcomeModel from a
// domain outcome value.
func ReconciliationOutcomeFromValue(
	companyID uuid.UUID,
	runID uuid.UUID,
	position int,
	outcome valueobject.ReconciliationOutcome,
) *ReconciliationOutcomeModel {
	var siblings pq.StringArray
	for _, id := range outcome.SiblingMovementIDs {
		siblings = append(siblings, id.String())
	}

	return &ReconciliationOutcomeModel{
		ID:                 uuid.New(),
		RunID:              runID,
		CompanyID:          companyID,
		MovementID:         outcome.MovementID,
		DocumentID:         outcome.DocumentID,
		Kind:               string(outcome.Kind),
		Score:              outcome.Score,
		Reason:             outcome.Reason,
		DecidedAt:          outcome.DecidedAt,
		SiblingMovementIDs: siblings,
		Position:           position,
		CreatedAt:          time.Now().UTC(),
	}
}

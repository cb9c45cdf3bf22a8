// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/concilia/backend/internal/domain/entity"
)

// BankMovementModel represents the bank_movements table in the database.
type BankMovementModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date        time.Time       `gorm:"type:date;not null;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type        string          `gorm:"type:varchar(10);not null"`
	Reference   string          `gorm:"type:varchar(100)"`

	Status            string     `gorm:"type:varchar(15);not null;default:'pending';index"`
	MatchedDocumentID *uuid.UUID `gorm:"type:uuid;index"`
	ReconciledAt      *time.Time `gorm:"type:timestamp"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Company         *CompanyModel        `gorm:"foreignKey:CompanyID;references:ID"`
	MatchedDocument *FiscalDocumentModel `gorm:"foreignKey:MatchedDocumentID;references:ID"`
}

// TableName returns the table name for the BankMovementModel.
func (BankMovementModel) TableName() string {
	return "bank_movements"
}

// ToEntity converts a BankMovementModel to a domain BankMovement entity.
func (m *BankMovementModel) ToEntity() *entity.BankMovement {
	return &entity.BankMovement{
		ID:                m.ID,
		CompanyID:         m.CompanyID,
		Date:              m.Date,
		Description:       m.Description,
		Amount:            m.Amount,
		Type:              entity.MovementType(m.Type),
		Reference:         m.Reference,
		Status:            entity.MovementStatus(m.Status),
		MatchedDocumentID: m.MatchedDocumentID,
		ReconciledAt:      m.ReconciledAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// BankMovementFromEntity creates a BankMovementModel from a domain BankMovement entity.
func BankMovementFromEntity(movement *entity.BankMovement) *BankMovementModel {
	return &BankMovementModel{
		ID:                movement.ID,
		CompanyID:         movement.CompanyID,
		Date:              movement.Date,
		Description:       movement.Description,
		Amount:            movement.Amount,
		Type:              string(movement.Type),
		Reference:         movement.Reference,
		Status:            string(movement.Status),
		MatchedDocumentID: movement.MatchedDocumentID,
		ReconciledAt:      movement.ReconciledAt,
		CreatedAt:         movement.CreatedAt,
		UpdatedAt:         movement.UpdatedAt,
	}
}

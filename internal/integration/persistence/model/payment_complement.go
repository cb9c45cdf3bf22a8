package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/concilia/backend/internal/domain/entity"
)

// PaymentComplementModel represents the payment_complements table in the database.
type PaymentComplementModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DocumentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaidAt     time.Time       `gorm:"type:date;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt  time.Time       `gorm:"not null"`

	Document *FiscalDocumentModel `gorm:"foreignKey:DocumentID;references:ID"`
}

// TableName returns the table name for the PaymentComplementModel.
func (PaymentComplementModel) TableName() string {
	return "payment_complements"
}

// ToEntity converts a PaymentComplementModel to a domain PaymentComplement entity.
func (m *PaymentComplementModel) ToEntity() *entity.PaymentComplement {
	return &entity.PaymentComplement{
		ID:         m.ID,
		DocumentID: m.DocumentID,
		PaidAt:     m.PaidAt,
		Amount:     m.Amount,
	}
}

// PaymentComplementFromEntity creates a PaymentComplementModel from a domain PaymentComplement entity.
func PaymentComplementFromEntity(complement *entity.PaymentComplement) *PaymentComplementModel {
	return &PaymentComplementModel{
		ID:         complement.ID,
		DocumentID: complement.DocumentID,
		PaidAt:     complement.PaidAt,
		Amount:     complement.Amount,
	}
}

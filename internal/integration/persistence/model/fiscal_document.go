package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/concilia/backend/internal/domain/entity"
)

// FiscalDocumentModel represents the fiscal_documents table in the database.
type FiscalDocumentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	TaxUUID   string    `gorm:"type:varchar(40);uniqueIndex;not null"`

	Series string `gorm:"type:varchar(25)"`
	Folio  string `gorm:"type:varchar(40)"`

	IssuedAt  time.Time  `gorm:"type:date;index"`
	StampedAt *time.Time `gorm:"type:timestamp"`

	Total         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Kind          string          `gorm:"type:varchar(10);not null;index"`
	PaymentMethod string          `gorm:"type:varchar(3)"`
	Valid         bool            `gorm:"not null;default:true;index"`

	IssuerName    string `gorm:"type:varchar(255)"`
	ReceiverName  string `gorm:"type:varchar(255)"`
	IssuerTaxID   string `gorm:"type:varchar(13);index"`
	ReceiverTaxID string `gorm:"type:varchar(13);index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Company     *CompanyModel            `gorm:"foreignKey:CompanyID;references:ID"`
	Complements []PaymentComplementModel `gorm:"foreignKey:DocumentID;references:ID"`
}

// TableName returns the table name for the FiscalDocumentModel.
func (FiscalDocumentModel) TableName() string {
	return "fiscal_documents"
}

// ToEntity converts a FiscalDocumentModel to a domain FiscalDocument entity.
func (m *FiscalDocumentModel) ToEntity() *entity.FiscalDocument {
	return &entity.FiscalDocument{
		ID:            m.ID,
		CompanyID:     m.CompanyID,
		TaxUUID:       m.TaxUUID,
		Series:        m.Series,
		Folio:         m.Folio,
		IssuedAt:      m.IssuedAt,
		StampedAt:     m.StampedAt,
		Total:         m.Total,
		Kind:          entity.DocumentKind(m.Kind),
		PaymentMethod: entity.PaymentMethod(m.PaymentMethod),
		Valid:         m.Valid,
		IssuerName:    m.IssuerName,
		ReceiverName:  m.ReceiverName,
		IssuerTaxID:   m.IssuerTaxID,
		ReceiverTaxID: m.ReceiverTaxID,
	}
}

// FiscalDocumentFromEntity creates a FiscalDocumentModel from a domain FiscalDocument entity.
func FiscalDocumentFromEntity(document *entity.FiscalDocument) *FiscalDocumentModel {
	return &FiscalDocumentModel{
		ID:            document.ID,
		CompanyID:     document.CompanyID,
		TaxUUID:       document.TaxUUID,
		Series:        document.Series,
		Folio:         document.Folio,
		IssuedAt:      document.IssuedAt,
		StampedAt:     document.StampedAt,
		Total:         document.Total,
		Kind:          string(document.Kind),
		PaymentMethod: string(document.PaymentMethod),
		Valid:         document.Valid,
		IssuerName:    document.IssuerName,
		ReceiverName:  document.ReceiverName,
		IssuerTaxID:   document.IssuerTaxID,
		ReceiverTaxID: document.ReceiverTaxID,
	}
}

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/concilia/backend/internal/domain/entity"
)

// CompanyModel represents the companies table in the database.
type CompanyModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaxID     string    `gorm:"type:varchar(13);uniqueIndex;not null"`
	LegalName string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the CompanyModel.
func (CompanyModel) TableName() string {
	return "companies"
}

// ToEntity converts a CompanyModel to a domain Company entity.
func (m *CompanyModel) ToEntity() *entity.Company {
	return &entity.Company{
		ID:        m.ID,
		TaxID:     m.TaxID,
		LegalName: m.LegalName,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CompanyFromEntity creates a CompanyModel from a domain Company entity.
func CompanyFromEntity(company *entity.Company) *CompanyModel {
	return &CompanyModel{
		ID:        company.ID,
		TaxID:     company.TaxID,
		LegalName: company.LegalName,
		CreatedAt: company.CreatedAt,
		UpdatedAt: company.UpdatedAt,
	}
}

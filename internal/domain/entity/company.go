package entity

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a taxpaying business whose movements are reconciled.
// Every repository query is scoped to one company.
type Company struct {
	ID        uuid.UUID
	TaxID     string // RFC
	LegalName string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCompany creates a new Company entity.
func NewCompany(taxID, legalName string) *Company {
	now := time.Now().UTC()

	return &Company{
		ID:        uuid.New(),
		TaxID:     taxID,
		LegalName: legalName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

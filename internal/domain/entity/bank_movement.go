// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType represents the direction of a bank movement.
type MovementType string

const (
	MovementTypeCharge  MovementType = "charge"
	MovementTypeDeposit MovementType = "deposit"
)

// MovementStatus represents the reconciliation state of a bank movement.
type MovementStatus string

const (
	MovementStatusPending    MovementStatus = "pending"
	MovementStatusReconciled MovementStatus = "reconciled"
	MovementStatusManual     MovementStatus = "manual"
	MovementStatusDiscarded  MovementStatus = "discarded"
)

// BankMovement represents a single transaction line from a bank statement.
// Movements are produced by the statement import pipeline and are read-only
// to the matching engine; only the caller persists outcome state back.
type BankMovement struct {
	ID          uuid.UUID
	CompanyID   uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal // positive magnitude; direction is in Type
	Type        MovementType
	Reference   string // optional bank reference code

	Status            MovementStatus
	MatchedDocumentID *uuid.UUID
	ReconciledAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBankMovement creates a new BankMovement entity.
func NewBankMovement(
	companyID uuid.UUID,
	date time.Time,
	description string,
	amount decimal.Decimal,
	movementType MovementType,
	reference string,
) *BankMovement {
	now := time.Now().UTC()

	return &BankMovement{
		ID:          uuid.New(),
		CompanyID:   companyID,
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        movementType,
		Reference:   reference,
		Status:      MovementStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Day returns the calendar day of the movement, truncated to midnight UTC.
func (m *BankMovement) Day() time.Time {
	return time.Date(m.Date.Year(), m.Date.Month(), m.Date.Day(), 0, 0, 0, 0, time.UTC)
}

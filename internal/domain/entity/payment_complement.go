package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentComplement records an actual payment event settling one or more
// deferred invoices. Only consulted when the complement pass is enabled.
type PaymentComplement struct {
	ID         uuid.UUID
	DocumentID uuid.UUID // owning fiscal document
	PaidAt     time.Time
	Amount     decimal.Decimal
}

package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/concilia/backend/internal/domain/entity"
)

// MovementRepository defines persistence operations for bank movements.
type MovementRepository interface {
	// ListByPeriod retrieves a company's movements with dates inside
	// [start, end], ordered by date then identifier for deterministic runs.
	ListByPeriod(
		ctx context.Context,
		companyID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]*entity.BankMovement, error)

	// List retrieves a page of a company's movements, newest first.
	List(
		ctx context.Context,
		companyID uuid.UUID,
		limit int,
		offset int,
	) ([]*entity.BankMovement, int64, error)

	// ApplyOutcome persists the reconciliation state decided for a movement.
	// documentID is nil unless the movement was matched.
	ApplyOutcome(
		ctx context.Context,
		movementID uuid.UUID,
		status entity.MovementStatus,
		documentID *uuid.UUID,
		reconciledAt *time.Time,
	) error
}

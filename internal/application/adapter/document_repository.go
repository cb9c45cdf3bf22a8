// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/concilia/backend/internal/domain/entity"
)

// DocumentRepository is the engine's data-access collaborator for fiscal
// documents. Implementations scope every query to the given company and
// return only documents still valid with the tax authority; eligibility
// beyond that (payment method, kind, prior assignment) is the candidate
// filter's job.
type DocumentRepository interface {
	// InvoicesOnOrNear retrieves documents whose effective date falls within
	// [date - windowDays, date + windowDays]. windowDays 0 means the single
	// calendar day of date.
	InvoicesOnOrNear(
		ctx context.Context,
		companyID uuid.UUID,
		date time.Time,
		windowDays int,
	) ([]*entity.FiscalDocument, error)

	// InvoicesInRange retrieves documents whose effective date falls within
	// [start, end]. Used to build the run-wide pool for the uniqueness pass
	// and the per-amount summary.
	InvoicesInRange(
		ctx context.Context,
		companyID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]*entity.FiscalDocument, error)

	// PaymentComplementsNear retrieves payment complements whose payment date
	// falls within [date - windowDays, date + windowDays], ordered by payment
	// date ascending.
	PaymentComplementsNear(
		ctx context.Context,
		companyID uuid.UUID,
		date time.Time,
		windowDays int,
	) ([]*entity.PaymentComplement, error)

	// GetByIDs retrieves documents by identifier, for report enrichment.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.FiscalDocument, error)
}

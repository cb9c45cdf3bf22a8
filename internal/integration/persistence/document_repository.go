package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/concilia/backend/internal/application/adapter"
	"github.com/concilia/backend/internal/domain/entity"
	"github.com/concilia/backend/internal/integration/persistence/model"
)

// documentRepository implements the adapter.DocumentRepository interface.
//
// Every query is scoped to one company and to documents still valid with the
// tax authority; invalidated documents never reach the matching passes.
type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new fiscal document repository instance.
func NewDocumentRepository(db *gorm.DB) adapter.DocumentRepository {
	return &documentRepository{
		db: db,
	}
}

// InvoicesOnOrNear retrieves documents whose effective date falls within
// [date - windowDays, date + windowDays].
func (r *documentRepository) InvoicesOnOrNear(
	ctx context.Context,
	companyID uuid.UUID,
	date time.Time,
	windowDays int,
) ([]*entity.FiscalDocument, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return r.findInRange(ctx, companyID, day.AddDate(0, 0, -windowDays), day.AddDate(0, 0, windowDays))
}

// InvoicesInRange retrieves documents whose effective date falls within
// [start, end].
func (r *documentRepository) InvoicesInRange(
	ctx context.Context,
	companyID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]*entity.FiscalDocument, error) {
	return r.findInRange(ctx, companyID, start, end)
}

func (r *documentRepository) findInRange(
	ctx context.Context,
	companyID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]*entity.FiscalDocument, error) {
	// Day bounds, upper exclusive of the next day, so a timestamped
	// issued_at on the last day still falls inside the range.
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endExclusive := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	var documentModels []model.FiscalDocumentModel
	result := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("valid = ?", true).
		Where("issued_at >= ? AND issued_at < ?", startDay, endExclusive).
		Order("issued_at ASC, tax_uuid ASC").
		Find(&documentModels)
	if result.Error != nil {
		return nil, result.Error
	}

	documents := make([]*entity.FiscalDocument, len(documentModels))
	for i, dm := range documentModels {
		documents[i] = dm.ToEntity()
	}
	return documents, nil
}

// PaymentComplementsNear retrieves payment complements whose payment date
// falls within [date - windowDays, date + windowDays], ordered by payment
// date ascending.
func (r *documentRepository) PaymentComplementsNear(
	ctx context.Context,
	companyID uuid.UUID,
	date time.Time,
	windowDays int,
) ([]*entity.PaymentComplement, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	var complementModels []model.PaymentComplementModel
	result := r.db.WithContext(ctx).
		Joins("JOIN fiscal_documents ON fiscal_documents.id = payment_complements.document_id").
		Where("fiscal_documents.company_id = ?", companyID).
		Where("fiscal_documents.valid = ?", true).
		Where("payment_complements.paid_at >= ? AND payment_complements.paid_at < ?",
			day.AddDate(0, 0, -windowDays), day.AddDate(0, 0, windowDays+1)).
		Order("payment_complements.paid_at ASC, payment_complements.id ASC").
		Find(&complementModels)
	if result.Error != nil {
		return nil, result.Error
	}

	complements := make([]*entity.PaymentComplement, len(complementModels))
	for i, cm := range complementModels {
		complements[i] = cm.ToEntity()
	}
	return complements, nil
}

// GetByIDs retrieves documents by identifier, for report enrichment.
func (r *documentRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.FiscalDocument, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var documentModels []model.FiscalDocumentModel
	result := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&documentModels)
	if result.Error != nil {
		return nil, result.Error
	}

	documents := make([]*entity.FiscalDocument, len(documentModels))
	for i, dm := range documentModels {
		documents[i] = dm.ToEntity()
	}
	return documents, nil
}

package persistence

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/concilia/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&model.CompanyModel{},
		&model.FiscalDocumentModel{},
		&model.PaymentComplementModel{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedInvoice(t *testing.T, db *gorm.DB, companyID uuid.UUID, issuedAt time.Time, total string) model.FiscalDocumentModel {
	t.Helper()
	doc := model.FiscalDocumentModel{
		ID:            uuid.New(),
		CompanyID:     companyID,
		TaxUUID:       strings.ToUpper(uuid.New().String()),
		IssuedAt:      issuedAt,
		Total:         decimal.RequireFromString(total),
		Kind:          "invoice",
		PaymentMethod: "PUE",
		Valid:         true,
	}
	if err := db.Create(&doc).Error; err != nil {
		t.Fatalf("failed to seed invoice: %v", err)
	}
	return doc
}

func TestDocumentRepositoryDateWindows(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("same-day window keeps a timestamped issuance", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewDocumentRepository(db)
		issued := time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC)
		doc := seedInvoice(t, db, companyID, issued, "1500.00")

		docs, err := repo.InvoicesOnOrNear(ctx, companyID, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(docs) != 1 || docs[0].ID != doc.ID {
			t.Fatalf("expected the same-day invoice, got %d documents", len(docs))
		}
	})

	t.Run("same-day window excludes the following day", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewDocumentRepository(db)
		seedInvoice(t, db, companyID, time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC), "1500.00")

		docs, err := repo.InvoicesOnOrNear(ctx, companyID, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(docs) != 0 {
			t.Fatalf("expected no documents outside the window, got %d", len(docs))
		}
	})

	t.Run("one-day window reaches the adjacent days", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewDocumentRepository(db)
		seedInvoice(t, db, companyID, time.Date(2024, time.March, 4, 23, 59, 0, 0, time.UTC), "100.00")
		seedInvoice(t, db, companyID, time.Date(2024, time.March, 6, 8, 0, 0, 0, time.UTC), "200.00")
		seedInvoice(t, db, companyID, time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC), "300.00")

		docs, err := repo.InvoicesOnOrNear(ctx, companyID, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(docs) != 2 {
			t.Fatalf("expected the two adjacent-day invoices, got %d", len(docs))
		}
	})

	t.Run("period range includes timestamps on its last day", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewDocumentRepository(db)
		seedInvoice(t, db, companyID, time.Date(2024, time.March, 31, 16, 45, 0, 0, time.UTC), "750.00")

		docs, err := repo.InvoicesInRange(ctx, companyID,
			time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(docs) != 1 {
			t.Fatalf("expected the last-day invoice, got %d documents", len(docs))
		}
	})

	t.Run("complement window keeps a timestamped payment date", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewDocumentRepository(db)
		doc := seedInvoice(t, db, companyID, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), "1000.00")
		complement := model.PaymentComplementModel{
			ID:         uuid.New(),
			DocumentID: doc.ID,
			PaidAt:     time.Date(2024, time.March, 12, 9, 15, 0, 0, time.UTC),
			Amount:     decimal.RequireFromString("1000.00"),
		}
		if err := db.Create(&complement).Error; err != nil {
			t.Fatalf("failed to seed complement: %v", err)
		}

		complements, err := repo.PaymentComplementsNear(ctx, companyID, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(complements) != 1 || complements[0].ID != complement.ID {
			t.Fatalf("expected the complement inside the window, got %d", len(complements))
		}
	})
}

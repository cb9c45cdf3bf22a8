package steps

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/concilia/backend/internal/integration/persistence/model"
)

// receiverTaxID is the fixed tax id used for seeded counterparties.
const receiverTaxID = "XAXX010101000"

func (t *testContext) aCompanyExistsWithTaxID(legalName, taxID string) error {
	companyID := uuid.New()
	now := time.Now().UTC()

	companyModel := &model.CompanyModel{
		ID:        companyID,
		TaxID:     taxID,
		LegalName: legalName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.db.DbConn.Create(companyModel).Error; err != nil {
		return err
	}

	t.currentCompanyID = companyID
	t.companyIDs[legalName] = companyID
	return nil
}

func (t *testContext) anImmediateInvoice(folio, total, issuedOn, receiverName string) error {
	return t.createInvoice(folio, total, issuedOn, receiverName, "PUE", true)
}

func (t *testContext) aDeferredInvoice(folio, total, issuedOn, receiverName string) error {
	return t.createInvoice(folio, total, issuedOn, receiverName, "PPD", true)
}

func (t *testContext) aCancelledInvoice(folio, total, issuedOn, receiverName string) error {
	return t.createInvoice(folio, total, issuedOn, receiverName, "PUE", false)
}

func (t *testContext) createInvoice(folio, total, issuedOn, receiverName, paymentMethod string, valid bool) error {
	if t.currentCompanyID == uuid.Nil {
		return fmt.Errorf("no company seeded yet")
	}

	issuedAt, err := time.Parse("2006-01-02", issuedOn)
	if err != nil {
		return fmt.Errorf("invalid issue date %q: %w", issuedOn, err)
	}
	amount, err := decimal.NewFromString(total)
	if err != nil {
		return fmt.Errorf("invalid total %q: %w", total, err)
	}

	var companyModel model.CompanyModel
	if err := t.db.DbConn.First(&companyModel, "id = ?", t.currentCompanyID).Error; err != nil {
		return err
	}

	documentID := uuid.New()
	now := time.Now().UTC()

	documentModel := &model.FiscalDocumentModel{
		ID:            documentID,
		CompanyID:     t.currentCompanyID,
		TaxUUID:       strings.ToUpper(uuid.New().String()),
		Series:        "A",
		Folio:         folio,
		IssuedAt:      issuedAt,
		Total:         amount,
		Kind:          "invoice",
		PaymentMethod: paymentMethod,
		Valid:         valid,
		IssuerName:    companyModel.LegalName,
		IssuerTaxID:   companyModel.TaxID,
		ReceiverName:  receiverName,
		ReceiverTaxID: receiverTaxID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := t.db.DbConn.Create(documentModel).Error; err != nil {
		return err
	}

	t.documentIDs[folio] = documentID
	t.lastDocumentID = documentID
	return nil
}

func (t *testContext) aPaymentComplementFor(amount, paidOn, folio string) error {
	documentID, ok := t.documentIDs[folio]
	if !ok {
		return fmt.Errorf("no seeded invoice with folio %q", folio)
	}

	paidAt, err := time.Parse("2006-01-02", paidOn)
	if err != nil {
		return fmt.Errorf("invalid payment date %q: %w", paidOn, err)
	}
	paid, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	complementModel := &model.PaymentComplementModel{
		ID:         uuid.New(),
		DocumentID: documentID,
		PaidAt:     paidAt,
		Amount:     paid,
		CreatedAt:  time.Now().UTC(),
	}
	return t.db.DbConn.Create(complementModel).Error
}

func (t *testContext) aBankDeposit(amount, date, description string) error {
	return t.createMovement(amount, date, description, "deposit")
}

func (t *testContext) aBankCharge(amount, date, description string) error {
	return t.createMovement(amount, date, description, "charge")
}

func (t *testContext) createMovement(amount, date, description, movementType string) error {
	if t.currentCompanyID == uuid.Nil {
		return fmt.Errorf("no company seeded yet")
	}

	movementDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid movement date %q: %w", date, err)
	}
	movementAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	movementID := uuid.New()
	now := time.Now().UTC()

	movementModel := &model.BankMovementModel{
		ID:          movementID,
		CompanyID:   t.currentCompanyID,
		Date:        movementDate,
		Description: description,
		Amount:      movementAmount,
		Type:        movementType,
		Status:      "pending",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.db.DbConn.Create(movementModel).Error; err != nil {
		return err
	}

	t.lastMovementID = movementID
	t.movementIDsByDesc[description] = movementID
	return nil
}

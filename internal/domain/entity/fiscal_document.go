package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentKind represents the kind of fiscal document.
type DocumentKind string

const (
	// DocumentKindInvoice is a sales invoice (tipo I).
	DocumentKindInvoice DocumentKind = "invoice"
	// DocumentKindPayment is a payment-complement-bearing document (tipo P).
	DocumentKindPayment DocumentKind = "payment"
	// DocumentKindOther covers credit notes, payroll and anything else the
	// engine never matches automatically.
	DocumentKindOther DocumentKind = "other"
)

// PaymentMethod represents how a fiscal document is expected to be paid.
type PaymentMethod string

const (
	// PaymentMethodImmediate means paid in full at issuance (PUE).
	PaymentMethodImmediate PaymentMethod = "PUE"
	// PaymentMethodDeferred means paid over time via payment complements (PPD).
	PaymentMethodDeferred PaymentMethod = "PPD"
)

// FiscalDocument represents a tax document issued by or to the company.
// Documents are read-only to the matching engine.
type FiscalDocument struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	TaxUUID   string // external unique code assigned by the tax authority

	Series string
	Folio  string

	IssuedAt  time.Time
	StampedAt *time.Time // certification timestamp, when known

	Total         decimal.Decimal
	Kind          DocumentKind
	PaymentMethod PaymentMethod // empty when the source document omitted it
	Valid         bool          // still valid with the tax authority

	IssuerName   string
	ReceiverName string
	IssuerTaxID  string
	ReceiverTaxID string
}

// EffectiveDate returns the issuance date, falling back to the stamping date
// when the issuance date is missing.
func (d *FiscalDocument) EffectiveDate() time.Time {
	if d.IssuedAt.IsZero() && d.StampedAt != nil {
		return *d.StampedAt
	}
	return d.IssuedAt
}

// Day returns the document's effective calendar day, truncated to midnight UTC.
func (d *FiscalDocument) Day() time.Time {
	t := d.EffectiveDate()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CounterpartyName returns the display name of the party opposite the company.
// The company may appear as issuer or receiver depending on document flow.
func (d *FiscalDocument) CounterpartyName(companyTaxID string) string {
	if d.IssuerTaxID == companyTaxID {
		return d.ReceiverName
	}
	return d.IssuerName
}

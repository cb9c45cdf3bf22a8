// Package valueobject contains domain value objects for the reconciliation system.
package valueobject

import "github.com/shopspring/decimal"

// AmountTolerance is the exclusive cent tolerance for amount comparisons:
// two amounts are equal when their absolute difference is strictly below it.
var AmountTolerance = decimal.New(1, -2) // 0.01

// ReconciliationPolicy controls which passes run and how strict they are.
type ReconciliationPolicy struct {
	// RestrictToImmediate keeps only immediate-payment (PUE) invoices when
	// true; when false, any method except deferred (PPD) is eligible.
	RestrictToImmediate bool

	// IncludeComplements enables the payment-complement pass and makes
	// payment-type documents eligible candidates.
	IncludeComplements bool

	// EnableFuzzy enables the free-text fallback pass.
	EnableFuzzy bool

	// FuzzyThreshold is the minimum similarity score (0-100) a fuzzy match
	// must reach.
	FuzzyThreshold int

	// FuzzyWindowDays is the half-width in days of the fuzzy candidate window.
	FuzzyWindowDays int

	// ComplementWindowDays is the half-width in days of the complement window.
	ComplementWindowDays int
}

// DefaultReconciliationPolicy returns the default policy: strict exact
// matching over immediate-payment invoices only.
func DefaultReconciliationPolicy() ReconciliationPolicy {
	return ReconciliationPolicy{
		RestrictToImmediate:  true,
		IncludeComplements:   false,
		EnableFuzzy:          false,
		FuzzyThreshold:       90,
		FuzzyWindowDays:      7,
		ComplementWindowDays: 7,
	}
}

// AmountsEqual reports whether two amounts match within the cent tolerance.
func AmountsEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(AmountTolerance)
}

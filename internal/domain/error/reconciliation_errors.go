// Package error defines domain-specific errors for the reconciliation system.
package error

import "errors"

// Reconciliation domain errors.
var (
	// ErrCompanyNotFound is returned when the requested company does not exist.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrNoMovementsInPeriod is returned when a run is triggered for a period
	// without any bank movements.
	ErrNoMovementsInPeriod = errors.New("no bank movements in period")

	// ErrInvalidPeriod is returned when the requested date range is malformed.
	ErrInvalidPeriod = errors.New("invalid reconciliation period")

	// ErrInvalidFuzzyThreshold is returned when the fuzzy threshold is outside 0-100.
	ErrInvalidFuzzyThreshold = errors.New("fuzzy threshold must be between 0 and 100")

	// ErrReportNotFound is returned when no report has been produced yet for a company.
	ErrReportNotFound = errors.New("reconciliation report not found")
)

// ReconciliationErrorCode defines error codes for reconciliation errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type ReconciliationErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCompanyNotFound       ReconciliationErrorCode = "REC-010001"
	ErrCodeNoMovementsInPeriod   ReconciliationErrorCode = "REC-010002"
	ErrCodeInvalidPeriod         ReconciliationErrorCode = "REC-010003"
	ErrCodeInvalidFuzzyThreshold ReconciliationErrorCode = "REC-010004"
	ErrCodeReportNotFound        ReconciliationErrorCode = "REC-010005"

	// Infrastructure errors (02XXXX)
	ErrCodeStorageFailure ReconciliationErrorCode = "REC-020001"
	ErrCodeRateLimited    ReconciliationErrorCode = "REC-020002"
)

// ReconciliationError represents a reconciliation error with code and message.
type ReconciliationError struct {
	Code    ReconciliationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReconciliationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReconciliationError) Unwrap() error {
	return e.Err
}

// NewReconciliationError creates a new ReconciliationError with the given code and message.
func NewReconciliationError(code ReconciliationErrorCode, message string, err error) *ReconciliationError {
	return &ReconciliationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

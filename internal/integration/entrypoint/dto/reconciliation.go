// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/concilia/backend/internal/application/usecase/reconciliation"
	"github.com/concilia/backend/internal/domain/valueobject"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// TriggerReconciliationRequest represents the request body for triggering a run.
// Policy fields are optional; omitted fields keep their defaults.
type TriggerReconciliationRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`

	RestrictToImmediate  *bool `json:"restrict_to_immediate,omitempty"`
	IncludeComplements   *bool `json:"include_complements,omitempty"`
	EnableFuzzy          *bool `json:"enable_fuzzy,omitempty"`
	FuzzyThreshold       *int  `json:"fuzzy_threshold,omitempty"`
	FuzzyWindowDays      *int  `json:"fuzzy_window_days,omitempty"`
	ComplementWindowDays *int  `json:"complement_window_days,omitempty"`
}

// ToPolicy builds the run policy from the defaults overridden by the request.
func (r *TriggerReconciliationRequest) ToPolicy() valueobject.ReconciliationPolicy {
	policy := valueobject.DefaultReconciliationPolicy()
	if r.RestrictToImmediate != nil {
		policy.RestrictToImmediate = *r.RestrictToImmediate
	}
	if r.IncludeComplements != nil {
		policy.IncludeComplements = *r.IncludeComplements
	}
	if r.EnableFuzzy != nil {
		policy.EnableFuzzy = *r.EnableFuzzy
	}
	if r.FuzzyThreshold != nil {
		policy.FuzzyThreshold = *r.FuzzyThreshold
	}
	if r.FuzzyWindowDays != nil {
		policy.FuzzyWindowDays = *r.FuzzyWindowDays
	}
	if r.ComplementWindowDays != nil {
		policy.ComplementWindowDays = *r.ComplementWindowDays
	}
	return policy
}

// OutcomeResponse represents one movement's verdict in API responses.
type OutcomeResponse struct {
	MovementID         string    `json:"movement_id"`
	DocumentID         *string   `json:"document_id,omitempty"`
	Kind               string    `json:"kind"`
	Score              *int      `json:"score,omitempty"`
	Reason             string    `json:"reason"`
	DecidedAt          time.Time `json:"decided_at"`
	SiblingMovementIDs []string  `json:"sibling_movement_ids,omitempty"`
}

// ReconciliationSummaryResponse represents the per-kind counts of a run.
type ReconciliationSummaryResponse struct {
	TotalMovements      int     `json:"total_movements"`
	Exact               int     `json:"exact"`
	Fuzzy               int     `json:"fuzzy"`
	Pending             int     `json:"pending"`
	DuplicateReview     int     `json:"duplicate_review"`
	AutomatedPercentage float64 `json:"automated_percentage"`
}

// ReportDetailResponse represents one report row in API responses.
type ReportDetailResponse struct {
	MovementID          string  `json:"movement_id"`
	MovementDate        string  `json:"movement_date"`
	MovementDescription string  `json:"movement_description"`
	MovementAmount      string  `json:"movement_amount"`
	Kind                string  `json:"kind"`
	Score               *int    `json:"score,omitempty"`
	Reason              string  `json:"reason"`
	DocumentID          *string `json:"document_id,omitempty"`
	DocumentTotal       *string `json:"document_total,omitempty"`
	CounterpartyName    string  `json:"counterparty_name,omitempty"`
}

// ReportResponse represents a full reconciliation report.
type ReportResponse struct {
	Summary ReconciliationSummaryResponse `json:"summary"`
	Details []ReportDetailResponse        `json:"details"`
}

// TriggerReconciliationResponse represents the response for a completed run.
type TriggerReconciliationResponse struct {
	RunID    string                        `json:"run_id"`
	Summary  ReconciliationSummaryResponse `json:"summary"`
	Outcomes []OutcomeResponse             `json:"outcomes"`
}

// AmountGroupResponse represents one row of the per-amount summary.
type AmountGroupResponse struct {
	Amount        string `json:"amount"`
	MovementCount int    `json:"movement_count"`
	DocumentCount int    `json:"document_count"`
}

// ToOutcomeResponse converts a domain outcome to its DTO.
func ToOutcomeResponse(outcome valueobject.ReconciliationOutcome) OutcomeResponse {
	response := OutcomeResponse{
		MovementID: outcome.MovementID.String(),
		Kind:       string(outcome.Kind),
		Score:      outcome.Score,
		Reason:     outcome.Reason,
		DecidedAt:  outcome.DecidedAt,
	}
	if outcome.DocumentID != nil {
		id := outcome.DocumentID.String()
		response.DocumentID = &id
	}
	for _, sibling := range outcome.SiblingMovementIDs {
		response.SiblingMovementIDs = append(response.SiblingMovementIDs, sibling.String())
	}
	return response
}

// ToSummaryResponse converts a domain summary to its DTO.
func ToSummaryResponse(summary valueobject.ReconciliationSummary) ReconciliationSummaryResponse {
	return ReconciliationSummaryResponse{
		TotalMovements:      summary.TotalMovements,
		Exact:               summary.Exact,
		Fuzzy:               summary.Fuzzy,
		Pending:             summary.Pending,
		DuplicateReview:     summary.DuplicateReview,
		AutomatedPercentage: summary.AutomatedPercentage,
	}
}

// ToReportResponse converts a domain report to its DTO.
func ToReportResponse(report *valueobject.ReconciliationReport) ReportResponse {
	details := make([]ReportDetailResponse, len(report.Details))
	for i, detail := range report.Details {
		row := ReportDetailResponse{
			MovementID:          detail.MovementID.String(),
			MovementDate:        detail.MovementDate.Format("2006-01-02"),
			MovementDescription: detail.MovementDescription,
			MovementAmount:      detail.MovementAmount.StringFixed(2),
			Kind:                string(detail.Kind),
			Score:               detail.Score,
			Reason:              detail.Reason,
			CounterpartyName:    detail.CounterpartyName,
		}
		if detail.DocumentID != nil {
			id := detail.DocumentID.String()
			row.DocumentID = &id
		}
		if detail.DocumentTotal != nil {
			total := detail.DocumentTotal.StringFixed(2)
			row.DocumentTotal = &total
		}
		details[i] = row
	}

	return ReportResponse{
		Summary: ToSummaryResponse(report.Summary),
		Details: details,
	}
}

// ToTriggerReconciliationResponse converts a run result to its DTO.
func ToTriggerReconciliationResponse(output *reconciliation.TriggerRunOutput) TriggerReconciliationResponse {
	outcomes := make([]OutcomeResponse, len(output.Outcomes))
	for i, outcome := range output.Outcomes {
		outcomes[i] = ToOutcomeResponse(outcome)
	}
	return TriggerReconciliationResponse{
		RunID:    output.RunID.String(),
		Summary:  ToSummaryResponse(output.Report.Summary),
		Outcomes: outcomes,
	}
}

// ToAmountGroupResponses converts per-amount rows to their DTOs.
func ToAmountGroupResponses(rows []valueobject.AmountGroupRow) []AmountGroupResponse {
	responses := make([]AmountGroupResponse, len(rows))
	for i, row := range rows {
		responses[i] = AmountGroupResponse{
			Amount:        row.Amount.StringFixed(2),
			MovementCount: row.MovementCount,
			DocumentCount: row.DocumentCount,
		}
	}
	return responses
}

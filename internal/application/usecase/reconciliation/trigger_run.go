package reconciliation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/concilia/backend/internal/application/adapter"
	domainerror "github.com/concilia/backend/internal/domain/error"
	"github.com/concilia/backend/internal/domain/entity"
	"github.com/concilia/backend/internal/domain/valueobject"
)

// TriggerRunInput represents the input for triggering a reconciliation run.
type TriggerRunInput struct {
	CompanyID uuid.UUID
	Start     time.Time
	End       time.Time
	Policy    valueobject.ReconciliationPolicy
}

// TriggerRunOutput represents the result of a reconciliation run.
type TriggerRunOutput struct {
	RunID    uuid.UUID
	Outcomes []valueobject.ReconciliationOutcome
	Report   *valueobject.ReconciliationReport
}

// TriggerRunUseCase fetches a company's movements for a period, runs the
// matching engine over them and persists the resulting outcomes. The engine
// itself never touches storage; this use case is the caller the engine
// contract refers to.
type TriggerRunUseCase struct {
	companyRepo  adapter.CompanyRepository
	movementRepo adapter.MovementRepository
	docRepo      adapter.DocumentRepository
	outcomeRepo  adapter.OutcomeRepository
	reportCache  adapter.ReportCache
	clock        adapter.Clock
	reportTTL    time.Duration
}

// NewTriggerRunUseCase creates a new TriggerRunUseCase instance.
func NewTriggerRunUseCase(
	companyRepo adapter.CompanyRepository,
	movementRepo adapter.MovementRepository,
	docRepo adapter.DocumentRepository,
	outcomeRepo adapter.OutcomeRepository,
	reportCache adapter.ReportCache,
	clock adapter.Clock,
	reportTTL time.Duration,
) *TriggerRunUseCase {
	return &TriggerRunUseCase{
		companyRepo:  companyRepo,
		movementRepo: movementRepo,
		docRepo:      docRepo,
		outcomeRepo:  outcomeRepo,
		reportCache:  reportCache,
		clock:        clock,
		reportTTL:    reportTTL,
	}
}

// Execute runs reconciliation for the company and period.
func (uc *TriggerRunUseCase) Execute(ctx context.Context, input TriggerRunInput) (*TriggerRunOutput, error) {
	if input.Start.IsZero() || input.End.IsZero() || input.End.Before(input.Start) {
		return nil, domainerror.NewReconciliationError(
			domainerror.ErrCodeInvalidPeriod,
			"reconciliation period is invalid",
			domainerror.ErrInvalidPeriod,
		)
	}
	if input.Policy.FuzzyThreshold < 0 || input.Policy.FuzzyThreshold > 100 {
		return nil, domainerror.NewReconciliationError(
			domainerror.ErrCodeInvalidFuzzyThreshold,
			"fuzzy threshold is out of range",
			domainerror.ErrInvalidFuzzyThreshold,
		)
	}

	company, err := uc.companyRepo.GetByID(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	movements, err := uc.movementRepo.ListByPeriod(ctx, input.CompanyID, input.Start, input.End)
	if err != nil {
		return nil, err
	}
	if len(movements) == 0 {
		return nil, domainerror.NewReconciliationError(
			domainerror.ErrCodeNoMovementsInPeriod,
			"no bank movements found in the requested period",
			domainerror.ErrNoMovementsInPeriod,
		)
	}

	engine := NewEngine(uc.docRepo, company, input.Policy, uc.clock)
	outcomes, report, err := engine.Reconcile(ctx, movements)
	if err != nil {
		return nil, err
	}

	runID := uuid.New()
	if err := uc.outcomeRepo.SaveRun(ctx, input.CompanyID, runID, outcomes); err != nil {
		return nil, err
	}

	for _, outcome := range outcomes {
		if err := uc.applyOutcome(ctx, outcome); err != nil {
			return nil, err
		}
	}

	// The cached report is a convenience for the report endpoint; a cache
	// failure must not fail a run that already persisted its outcomes.
	if err := uc.reportCache.StoreLatest(ctx, input.CompanyID, report, uc.reportTTL); err != nil {
		slog.Warn("failed to cache reconciliation report",
			"company_id", input.CompanyID,
			"run_id", runID,
			"error", err,
		)
	}

	return &TriggerRunOutput{
		RunID:    runID,
		Outcomes: outcomes,
		Report:   report,
	}, nil
}

// applyOutcome writes the decided state back onto the movement.
func (uc *TriggerRunUseCase) applyOutcome(ctx context.Context, outcome valueobject.ReconciliationOutcome) error {
	var (
		status       entity.MovementStatus
		reconciledAt *time.Time
	)

	switch outcome.Kind {
	case valueobject.OutcomeExact, valueobject.OutcomeFuzzy:
		status = entity.MovementStatusReconciled
		at := outcome.DecidedAt
		reconciledAt = &at
	case valueobject.OutcomeDuplicateReview:
		status = entity.MovementStatusManual
	default:
		status = entity.MovementStatusPending
	}

	return uc.movementRepo.ApplyOutcome(ctx, outcome.MovementID, status, outcome.DocumentID, reconciledAt)
}

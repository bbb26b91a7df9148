package invoicing

import (
	"context"
	"errors"
	"time"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/infrastructure/logger"
	"github.com/faktura/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DunningServiceConfig holds configuration for dunning runs
type DunningServiceConfig struct {
	// LockTTL bounds how long a crashed run can block the tenant
	LockTTL time.Duration
	// IdempotencyTTL is how long a finished run key is remembered
	IdempotencyTTL time.Duration
}

// DefaultDunningServiceConfig returns the default configuration
func DefaultDunningServiceConfig() DunningServiceConfig {
	return DunningServiceConfig{
		LockTTL:        10 * time.Minute,
		IdempotencyTTL: 72 * time.Hour,
	}
}

// DunningService evaluates overdue invoices and issues reminders and notices
type DunningService struct {
	eventSupport
	invoiceRepo invoicing.InvoiceRepository
	noticeRepo  invoicing.DunningNoticeRepository
	runRepo     invoicing.DunningRunRepository
	companyRepo invoicing.CompanyRepository
	numbering   *NumberingService
	transactor  shared.Transactor
	locker      shared.Locker
	idempotency shared.IdempotencyStore
	config      DunningServiceConfig
	metrics     *telemetry.BusinessMetrics
	clock       Clock
}

// NewDunningService creates a new DunningService. idempotency may be nil,
// the unique run row alone then guards against repeated runs.
func NewDunningService(
	invoiceRepo invoicing.InvoiceRepository,
	noticeRepo invoicing.DunningNoticeRepository,
	runRepo invoicing.DunningRunRepository,
	companyRepo invoicing.CompanyRepository,
	numbering *NumberingService,
	transactor shared.Transactor,
	locker shared.Locker,
	idempotency shared.IdempotencyStore,
	config DunningServiceConfig,
) *DunningService {
	return &DunningService{
		invoiceRepo: invoiceRepo,
		noticeRepo:  noticeRepo,
		runRepo:     runRepo,
		companyRepo: companyRepo,
		numbering:   numbering,
		transactor:  transactor,
		locker:      locker,
		idempotency: idempotency,
		config:      config,
	}
}

// SetMetrics enables business metrics
func (s *DunningService) SetMetrics(m *telemetry.BusinessMetrics) {
	s.metrics = m
}

// SetClock overrides the time source
func (s *DunningService) SetClock(c Clock) {
	s.clock = c
}

// Today returns the service's current date
func (s *DunningService) Today() time.Time {
	return s.clock.today()
}

func runLockKey(tenantID uuid.UUID) string {
	return "dunning-lock:" + tenantID.String()
}

// RunForTenant evaluates every dunnable invoice of a tenant as of runDate.
// A tenant has one run per date: repeating a completed run returns its stored
// result, a failed or interrupted run is resumed.
func (s *DunningService) RunForTenant(ctx context.Context, tenantID uuid.UUID, runDate time.Time, trigger invoicing.DunningRunTrigger) (*DunningRunResponse, error) {
	runDate = invoicing.DateOnly(runDate)
	ctx, span := telemetry.StartSpan(ctx, "dunning", "run",
		telemetry.AttrTenantID.String(tenantID.String()),
		telemetry.AttrRunDate.String(runDate.Format("2006-01-02")),
		telemetry.AttrTrigger.String(string(trigger)),
	)
	defer span.End()

	key := invoicing.DunningRunKey(tenantID, runDate)
	if s.idempotency != nil {
		done, err := s.idempotency.IsProcessed(ctx, key)
		if err != nil {
			logger.L(ctx).Warn("idempotency check failed", zap.String("key", key), zap.Error(err))
		} else if done {
			if resp, err := s.replay(ctx, tenantID, runDate); err == nil {
				return resp, nil
			}
		}
	}

	lock, err := s.locker.Obtain(ctx, runLockKey(tenantID), s.config.LockTTL)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			logger.L(ctx).Warn("failed to release dunning lock", zap.Error(err))
		}
	}()

	run, replayed, err := s.startRun(ctx, tenantID, runDate, trigger)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if replayed {
		s.markProcessed(ctx, key)
		response := ToDunningRunResponse(run)
		response.Replayed = true
		return &response, nil
	}

	ctx = logger.WithRunID(ctx, run.ID.String())
	started := time.Now()
	runErr := s.execute(ctx, run)
	if runErr != nil {
		run.Fail(runErr)
		telemetry.RecordError(span, runErr)
	} else {
		run.Complete()
	}
	if err := s.runRepo.Update(context.WithoutCancel(ctx), run); err != nil {
		logger.L(ctx).Error("failed to store dunning run", zap.Error(err))
		if runErr == nil {
			runErr = err
		}
	}
	s.metrics.RecordDunningRun(ctx, tenantID.String(), string(trigger), string(run.Status), time.Since(started))

	log := logger.L(ctx).With(
		zap.String("run_date", runDate.Format("2006-01-02")),
		zap.String("trigger", string(trigger)),
		zap.Int("evaluated", run.Evaluated),
		zap.Int("escalated", run.Escalated),
		zap.Int("skipped", run.Skipped),
		zap.Int("failed", run.Failed),
	)
	if runErr != nil {
		log.Error("dunning run failed", zap.Error(runErr))
		return nil, runErr
	}
	log.Info("dunning run completed")
	s.markProcessed(ctx, key)

	response := ToDunningRunResponse(run)
	return &response, nil
}

// startRun loads or creates the run row. Completed runs are reported as
// replayed; unfinished and failed runs are picked up again with fresh counters.
func (s *DunningService) startRun(ctx context.Context, tenantID uuid.UUID, runDate time.Time, trigger invoicing.DunningRunTrigger) (*invoicing.DunningRun, bool, error) {
	existing, err := s.runRepo.FindByDate(ctx, tenantID, runDate)
	switch {
	case err == nil:
		if existing.Status == invoicing.DunningRunStatusCompleted {
			return existing, true, nil
		}
		logger.L(ctx).Info("resuming dunning run",
			zap.String("run_id", existing.ID.String()),
			zap.String("previous_status", string(existing.Status)),
		)
		existing.Status = invoicing.DunningRunStatusRunning
		existing.Evaluated, existing.Escalated, existing.Skipped, existing.Failed = 0, 0, 0, 0
		existing.FinishedAt = nil
		existing.Error = ""
		existing.StartedAt = time.Now().UTC()
		return existing, false, nil
	case !errors.Is(err, shared.ErrNotFound):
		return nil, false, err
	}

	run := invoicing.NewDunningRun(tenantID, runDate, trigger)
	if err := s.runRepo.Create(ctx, run); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			existing, findErr := s.runRepo.FindByDate(ctx, tenantID, runDate)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, true, nil
		}
		return nil, false, err
	}
	return run, false, nil
}

func (s *DunningService) execute(ctx context.Context, run *invoicing.DunningRun) error {
	company, err := s.companyRepo.FindByID(ctx, run.TenantID)
	if err != nil {
		return err
	}
	if !company.Active || !company.Dunning.Enabled {
		logger.L(ctx).Info("dunning skipped for company",
			zap.Bool("active", company.Active),
			zap.Bool("dunning_enabled", company.Dunning.Enabled),
		)
		return nil
	}

	policy := invoicing.NewDunningPolicy(company.Dunning)
	invoices, err := s.invoiceRepo.FindDunnable(ctx, run.TenantID, run.RunDate)
	if err != nil {
		return err
	}

	runID := run.ID
	for i := range invoices {
		if err := ctx.Err(); err != nil {
			return err
		}
		inv := &invoices[i]
		if d := policy.Evaluate(inv, run.RunDate); !d.Escalate {
			run.RecordSkipped()
			continue
		}

		notice, _, err := s.escalate(ctx, run.TenantID, inv.ID, policy, run.RunDate, &runID)
		switch {
		case err != nil:
			run.RecordFailed()
			s.metrics.RecordEscalationFailed(ctx, run.TenantID.String())
			logger.L(ctx).Warn("escalation failed",
				zap.String("invoice_id", inv.ID.String()),
				zap.String("invoice_number", inv.Number),
				zap.Error(err),
			)
		case notice == nil:
			// changed since it was listed, e.g. paid in the meantime
			run.RecordSkipped()
		default:
			run.RecordEscalated()
		}
	}
	return nil
}

// escalate applies one escalation in its own transaction: number draw,
// notice insert and invoice update. The decision is re-evaluated on the
// locked state; a nil notice means the invoice no longer escalates.
func (s *DunningService) escalate(ctx context.Context, tenantID, invoiceID uuid.UUID, policy *invoicing.DunningPolicy, asOf time.Time, runID *uuid.UUID) (*invoicing.DunningNotice, invoicing.DunningDecision, error) {
	ctx, span := telemetry.StartSpan(ctx, "dunning", "escalate",
		telemetry.AttrTenantID.String(tenantID.String()),
		telemetry.AttrInvoiceID.String(invoiceID.String()),
	)
	defer span.End()

	var (
		inv      *invoicing.Invoice
		notice   *invoicing.DunningNotice
		decision invoicing.DunningDecision
	)
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		inv, err = s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
		if err != nil {
			return err
		}
		decision = policy.Evaluate(inv, asOf)
		if !decision.Escalate {
			return nil
		}

		number, err := s.numbering.Next(ctx, tenantID, invoicing.DocumentTypeDunning, noticeKey(inv.ID, decision.NextLevel), asOf)
		if err != nil {
			return err
		}
		notice, err = inv.Escalate(decision, number, asOf, policy.Settings().PaymentDeadlineDays)
		if err != nil {
			return err
		}
		if runID != nil {
			notice.AttachToRun(*runID)
		}
		if err := s.noticeRepo.Create(ctx, notice); err != nil {
			return err
		}
		return s.invoiceRepo.SaveWithLock(ctx, inv)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, decision, err
	}
	if notice == nil {
		return nil, decision, nil
	}

	span.SetAttributes(telemetry.AttrDunningLevel.String(notice.Level.String()))
	s.metrics.RecordEscalation(ctx, tenantID.String(), notice.Level.String())
	logger.L(ctx).Info("invoice escalated",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.Number),
		zap.String("notice_number", notice.Number),
		zap.String("level", notice.Level.String()),
		zap.String("total_due", notice.TotalDue.StringFixed(2)),
	)
	s.publish(ctx, inv)
	return notice, decision, nil
}

// EscalateInvoice applies a single escalation outside of a run
func (s *DunningService) EscalateInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID, req EscalateInvoiceRequest) (*DunningNoticeResponse, error) {
	asOf := s.clock.today()
	if d := req.AsOf.timePtr(); d != nil {
		asOf = invoicing.DateOnly(*d)
	}
	company, err := requireActiveCompany(ctx, s.companyRepo, tenantID)
	if err != nil {
		return nil, err
	}

	notice, decision, err := s.escalate(ctx, tenantID, invoiceID, invoicing.NewDunningPolicy(company.Dunning), asOf, nil)
	if err != nil {
		return nil, err
	}
	if notice == nil {
		return nil, shared.NewDomainError("NOT_ESCALATABLE", "Invoice is not escalated: "+decision.Reason)
	}
	response := ToDunningNoticeResponse(notice)
	return &response, nil
}

// Preview evaluates an invoice as of a date without changing anything
func (s *DunningService) Preview(ctx context.Context, tenantID, invoiceID uuid.UUID, asOf *time.Time) (*DunningDecisionResponse, error) {
	date := s.clock.today()
	if asOf != nil {
		date = invoicing.DateOnly(*asOf)
	}
	company, err := s.companyRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	response := toDecisionResponse(inv.ID, date, invoicing.NewDunningPolicy(company.Dunning).Evaluate(inv, date))
	return &response, nil
}

// PreviewTenant evaluates every dunnable invoice of a tenant without side effects
func (s *DunningService) PreviewTenant(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]DunningDecisionResponse, error) {
	asOf = invoicing.DateOnly(asOf)
	company, err := s.companyRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.FindDunnable(ctx, tenantID, asOf)
	if err != nil {
		return nil, err
	}
	policy := invoicing.NewDunningPolicy(company.Dunning)
	responses := make([]DunningDecisionResponse, len(invoices))
	for i := range invoices {
		responses[i] = toDecisionResponse(invoices[i].ID, asOf, policy.Evaluate(&invoices[i], asOf))
	}
	return responses, nil
}

// ListRuns lists the runs of a tenant, newest first
func (s *DunningService) ListRuns(ctx context.Context, tenantID uuid.UUID, params ListParams) ([]DunningRunResponse, int64, error) {
	runs, total, err := s.runRepo.FindAllForTenant(ctx, tenantID, params.toFilter("run_date", "desc"))
	if err != nil {
		return nil, 0, err
	}
	responses := make([]DunningRunResponse, len(runs))
	for i := range runs {
		responses[i] = ToDunningRunResponse(&runs[i])
	}
	return responses, total, nil
}

// RunNotices lists the notices a run produced
func (s *DunningService) RunNotices(ctx context.Context, tenantID, runID uuid.UUID) ([]DunningNoticeResponse, error) {
	notices, err := s.noticeRepo.FindByRun(ctx, tenantID, runID)
	if err != nil {
		return nil, err
	}
	return ToDunningNoticeResponses(notices), nil
}

func (s *DunningService) replay(ctx context.Context, tenantID uuid.UUID, runDate time.Time) (*DunningRunResponse, error) {
	run, err := s.runRepo.FindByDate(ctx, tenantID, runDate)
	if err != nil {
		return nil, err
	}
	if run.Status != invoicing.DunningRunStatusCompleted {
		return nil, shared.ErrInvalidState
	}
	response := ToDunningRunResponse(run)
	response.Replayed = true
	return &response, nil
}

func (s *DunningService) markProcessed(ctx context.Context, key string) {
	if s.idempotency == nil {
		return
	}
	if _, err := s.idempotency.MarkProcessed(ctx, key, s.config.IdempotencyTTL); err != nil {
		logger.L(ctx).Warn("failed to mark dunning run processed", zap.String("key", key), zap.Error(err))
	}
}

package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TenantProvider lists the tenants a scheduled run covers
type TenantProvider interface {
	FindActiveIDs(ctx context.Context) ([]uuid.UUID, error)
}

// CronTriggerConfig holds configuration for the daily trigger
type CronTriggerConfig struct {
	Hour     int
	Minute   int
	Location *time.Location

	// CheckInterval is how often the clock is compared against Hour:Minute
	CheckInterval time.Duration
}

// DefaultCronTriggerConfig fires at 06:00 Berlin time
func DefaultCronTriggerConfig() CronTriggerConfig {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		loc = time.UTC
	}
	return CronTriggerConfig{
		Hour:          6,
		Minute:        0,
		Location:      loc,
		CheckInterval: time.Minute,
	}
}

// CronTrigger enqueues one dunning job per active tenant once a day. A trigger
// started after the configured time still fires for the current day; dunning
// runs are idempotent per tenant and date, so a restart never doubles a run.
type CronTrigger struct {
	config    CronTriggerConfig
	submitter JobSubmitter
	tenants   TenantProvider
	retries   int
	logger    *zap.Logger
	now       func() time.Time

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewCronTrigger creates a new cron trigger
func NewCronTrigger(cfg CronTriggerConfig, submitter JobSubmitter, tenants TenantProvider, retries int, logger *zap.Logger) *CronTrigger {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CronTrigger{
		config:    cfg,
		submitter: submitter,
		tenants:   tenants,
		retries:   retries,
		logger:    logger,
		now:       time.Now,
	}
}

// Start starts the trigger loop
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isRunning {
		return nil
	}
	c.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Dunning cron trigger started",
		zap.Int("hour", c.config.Hour),
		zap.Int("minute", c.config.Minute),
		zap.String("location", c.config.Location.String()),
		zap.Duration("check_interval", c.config.CheckInterval),
	)
	return nil
}

// Stop stops the trigger loop
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.cancel()
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Dunning cron trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger(ctx)
		}
	}
}

// shouldRun reports whether now is at or past today's run time and today has
// not been triggered yet
func (c *CronTrigger) shouldRun(now time.Time) bool {
	local := now.In(c.config.Location)
	if local.Format(time.DateOnly) == c.lastRunDate {
		return false
	}
	if local.Hour() != c.config.Hour {
		return local.Hour() > c.config.Hour
	}
	return local.Minute() >= c.config.Minute
}

func (c *CronTrigger) checkAndTrigger(ctx context.Context) {
	now := c.now()

	c.mu.Lock()
	due := c.shouldRun(now)
	c.mu.Unlock()
	if !due {
		return
	}

	// the day only counts as done once the tenants were enqueued; a failed
	// lookup is retried on the next check
	local := now.In(c.config.Location)
	runDate := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	if _, err := c.TriggerNow(ctx, runDate); err != nil {
		c.logger.Error("Failed to trigger daily dunning run", zap.Error(err))
		return
	}

	c.mu.Lock()
	c.lastRunDate = local.Format(time.DateOnly)
	c.mu.Unlock()
}

// TriggerNow enqueues a dunning job for every active tenant and returns how
// many were queued
func (c *CronTrigger) TriggerNow(ctx context.Context, runDate time.Time) (int, error) {
	tenantIDs, err := c.tenants.FindActiveIDs(ctx)
	if err != nil {
		return 0, err
	}

	c.logger.Info("Scheduling dunning runs",
		zap.Int("tenant_count", len(tenantIDs)),
		zap.String("run_date", runDate.Format(time.DateOnly)),
	)

	queued := 0
	for _, tenantID := range tenantIDs {
		job := NewJob(JobKindDunningRun, tenantID, runDate, c.retries)
		if err := c.submitter.Submit(job); err != nil {
			c.logger.Error("Failed to schedule dunning run for tenant",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
			continue
		}
		queued++
	}
	return queued, nil
}

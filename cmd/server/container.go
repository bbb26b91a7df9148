package main

import (
	"context"
	"fmt"
	"time"

	appinvoicing "github.com/faktura/backend/internal/application/invoicing"
	"github.com/faktura/backend/internal/application/report"
	domaininvoicing "github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/infrastructure/cache"
	"github.com/faktura/backend/internal/infrastructure/config"
	"github.com/faktura/backend/internal/infrastructure/event"
	"github.com/faktura/backend/internal/infrastructure/lock"
	"github.com/faktura/backend/internal/infrastructure/persistence"
	"github.com/faktura/backend/internal/infrastructure/scheduler"
	"github.com/faktura/backend/internal/infrastructure/storage"
	"github.com/faktura/backend/internal/infrastructure/telemetry"
	"github.com/faktura/backend/internal/interfaces/http/handler"
	"github.com/faktura/backend/internal/interfaces/http/middleware"
	"github.com/faktura/backend/internal/interfaces/http/router"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const archiveDedupTTL = 24 * time.Hour

// container holds the long-lived services of the server process
type container struct {
	db          *persistence.Database
	redis       *redis.Client
	idempotency shared.IdempotencyStore
	limiter     middleware.Limiter
	eventBus    *event.InMemoryEventBus

	companies *persistence.GormCompanyRepository

	companySvc  *appinvoicing.CompanyService
	customerSvc *appinvoicing.CustomerService
	productSvc  *appinvoicing.ProductService
	invoiceSvc  *appinvoicing.InvoiceService
	offerSvc    *appinvoicing.OfferService
	expenseSvc  *appinvoicing.ExpenseService
	dunningSvc  *appinvoicing.DunningService
	openItems   *report.OpenItemsService

	scheduler *scheduler.Scheduler
	cron      *scheduler.CronTrigger
}

func buildContainer(ctx context.Context, cfg *config.Config, db *persistence.Database, log *zap.Logger) (*container, error) {
	c := &container{db: db}

	if cfg.Redis.Host != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		c.redis = client
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// a typed nil client must not reach the factory
	var client redis.UniversalClient
	if c.redis != nil {
		client = c.redis
	}
	store, err := cache.NewIdempotencyStoreFactory(
		cache.WithLogger(log),
		cache.WithKeyPrefix("faktura:idempotency:"),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	).CreateStore(client)
	if err != nil {
		return nil, err
	}
	c.idempotency = store

	var locker shared.Locker = lock.NewMemoryLocker()
	if c.redis != nil {
		locker = lock.NewRedisLocker(c.redis)
	}

	if cfg.HTTP.RateLimitEnabled {
		if c.redis != nil {
			c.limiter = middleware.NewRedisRateLimiter(c.redis, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow, "faktura:ratelimit:")
		} else {
			c.limiter = middleware.NewMemoryRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		}
	}

	docs, err := newDocumentStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	metrics, err := telemetry.NewBusinessMetrics(nil)
	if err != nil {
		return nil, fmt.Errorf("business metrics: %w", err)
	}

	gdb := db.DB
	c.companies = persistence.NewGormCompanyRepository(gdb)
	customers := persistence.NewGormCustomerRepository(gdb)
	products := persistence.NewGormProductRepository(gdb)
	invoices := persistence.NewGormInvoiceRepository(gdb)
	notices := persistence.NewGormDunningNoticeRepository(gdb)
	runs := persistence.NewGormDunningRunRepository(gdb)
	offers := persistence.NewGormOfferRepository(gdb)
	expenses := persistence.NewGormExpenseRepository(gdb)
	transactor := persistence.NewGormTransactor(gdb)

	c.eventBus = event.NewInMemoryEventBus(log)

	numbering := appinvoicing.NewNumberingService(c.companies, persistence.NewGormNumberSequenceRepository(gdb), transactor)
	numbering.SetMetrics(metrics)

	c.companySvc = appinvoicing.NewCompanyService(c.companies)
	c.companySvc.SetEventPublisher(c.eventBus)
	c.customerSvc = appinvoicing.NewCustomerService(customers, invoices, numbering, transactor)
	c.customerSvc.SetEventPublisher(c.eventBus)
	c.productSvc = appinvoicing.NewProductService(products)
	c.invoiceSvc = appinvoicing.NewInvoiceService(invoices, customers, c.companies, products, notices, numbering, transactor)
	c.invoiceSvc.SetMetrics(metrics)
	c.invoiceSvc.SetEventPublisher(c.eventBus)
	c.offerSvc = appinvoicing.NewOfferService(offers, invoices, customers, c.companies, products, numbering, transactor)
	c.offerSvc.SetEventPublisher(c.eventBus)
	c.expenseSvc = appinvoicing.NewExpenseService(expenses, docs, appinvoicing.ExpenseServiceConfig{
		UploadURLExpiry:   cfg.Storage.PresignExpiration,
		DownloadURLExpiry: cfg.Storage.PresignExpiration,
	})
	c.dunningSvc = appinvoicing.NewDunningService(invoices, notices, runs, c.companies, numbering, transactor,
		locker, store, appinvoicing.DunningServiceConfig{
			LockTTL:        cfg.Dunning.LockTTL,
			IdempotencyTTL: cfg.Dunning.IdempotencyTTL,
		})
	c.dunningSvc.SetMetrics(metrics)
	c.dunningSvc.SetEventPublisher(c.eventBus)
	c.openItems = report.NewOpenItemsService(invoices)

	archive := appinvoicing.NewArchiveHandler(invoices, docs, log)
	c.eventBus.Subscribe(event.NewIdempotentHandler(archive, store, archiveDedupTTL, log), archive.EventTypes()...)

	if cfg.Scheduler.Enabled {
		c.scheduler = scheduler.NewScheduler(cfg.Scheduler, scheduler.NewDunningJobExecutor(c.runScheduledDunning), log)
		hour, minute, err := cfg.Dunning.ParseRunAt()
		if err != nil {
			return nil, err
		}
		loc, err := time.LoadLocation(cfg.Dunning.Location)
		if err != nil {
			return nil, err
		}
		c.cron = scheduler.NewCronTrigger(scheduler.CronTriggerConfig{
			Hour:          hour,
			Minute:        minute,
			Location:      loc,
			CheckInterval: time.Minute,
		}, c.scheduler, c.companies, c.scheduler.RetryAttempts(), log)
	}
	return c, nil
}

func newDocumentStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (appinvoicing.DocumentStorage, error) {
	if !cfg.Storage.Enabled() {
		if cfg.App.Env == "production" {
			return nil, fmt.Errorf("object storage must be configured in production")
		}
		log.Warn("Object storage not configured, documents are kept in memory")
		return storage.NewMemoryObjectStorage(), nil
	}
	s3, err := storage.NewS3ObjectStorage(&cfg.Storage,
		storage.WithLogger(log),
		storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
	)
	if err != nil {
		return nil, err
	}
	if err := s3.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	log.Info("Object storage ready", zap.String("bucket", s3.Bucket()))
	return s3, nil
}

func (c *container) runScheduledDunning(ctx context.Context, tenantID uuid.UUID, runDate time.Time) error {
	_, err := c.dunningSvc.RunForTenant(ctx, tenantID, runDate, domaininvoicing.DunningRunTriggerScheduled)
	return err
}

func (c *container) handlers(version string) router.Handlers {
	health := handler.NewHealthHandler(version)
	health.AddCheck("database", func(context.Context) error { return c.db.Ping() })
	if c.redis != nil {
		health.AddCheck("redis", func(ctx context.Context) error { return c.redis.Ping(ctx).Err() })
	}
	return router.Handlers{
		Health:   health,
		Company:  handler.NewCompanyHandler(c.companySvc),
		Customer: handler.NewCustomerHandler(c.customerSvc),
		Product:  handler.NewProductHandler(c.productSvc),
		Invoice:  handler.NewInvoiceHandler(c.invoiceSvc),
		Offer:    handler.NewOfferHandler(c.offerSvc),
		Expense:  handler.NewExpenseHandler(c.expenseSvc),
		Dunning:  handler.NewDunningHandler(c.dunningSvc),
		Report:   handler.NewReportHandler(c.openItems),
	}
}

// startBackground starts the job workers and the daily dunning trigger
func (c *container) startBackground(ctx context.Context, log *zap.Logger) error {
	if c.scheduler == nil {
		log.Info("Scheduler disabled, dunning runs only on request")
		return nil
	}
	if err := c.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	if err := c.cron.Start(ctx); err != nil {
		return fmt.Errorf("start dunning trigger: %w", err)
	}
	return nil
}

// stopBackground stops the trigger before the workers so no job is
// submitted to a stopped pool
func (c *container) stopBackground(ctx context.Context, log *zap.Logger) {
	if c.cron != nil {
		if err := c.cron.Stop(ctx); err != nil {
			log.Warn("Stopping dunning trigger failed", zap.Error(err))
		}
	}
	if c.scheduler != nil {
		if err := c.scheduler.Stop(ctx); err != nil {
			log.Warn("Stopping scheduler failed", zap.Error(err))
		}
	}
}

func (c *container) close(log *zap.Logger) {
	if stopper, ok := c.limiter.(interface{ Stop() }); ok {
		stopper.Stop()
	}
	if err := c.idempotency.Close(); err != nil {
		log.Warn("Closing idempotency store failed", zap.Error(err))
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warn("Closing Redis failed", zap.Error(err))
		}
	}
}

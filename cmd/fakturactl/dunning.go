package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	appinvoicing "github.com/faktura/backend/internal/application/invoicing"
	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/infrastructure/cache"
	"github.com/faktura/backend/internal/infrastructure/lock"
	"github.com/faktura/backend/internal/infrastructure/logger"
	"github.com/faktura/backend/internal/infrastructure/persistence"
	"github.com/redis/go-redis/v9"
)

// dunningEnv is the dunning service on top of the configured database. Redis
// is used for locks and run keys when configured so CLI runs and the server
// scheduler exclude each other.
type dunningEnv struct {
	service   *appinvoicing.DunningService
	companies invoicing.CompanyRepository
	location  *time.Location
	closers   []func() error
}

func (e *dunningEnv) close(log *zap.Logger) {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			log.Warn("Cleanup failed", zap.Error(err))
		}
	}
}

func (app *cli) openDunning(ctx context.Context) (*dunningEnv, error) {
	cfg := app.cfg
	loc, err := time.LoadLocation(cfg.Dunning.Location)
	if err != nil {
		return nil, err
	}
	env := &dunningEnv{location: loc}

	db, err := persistence.NewDatabase(&cfg.Database, app.log, persistence.Options{
		LogLevel: logger.MapGormLogLevel(app.logLevel),
	})
	if err != nil {
		return nil, err
	}
	env.closers = append(env.closers, db.Close)

	var locker shared.Locker = lock.NewMemoryLocker()
	var client redis.UniversalClient
	if cfg.Redis.Host != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			env.close(app.log)
			return nil, err
		}
		env.closers = append(env.closers, rdb.Close)
		client = rdb
		locker = lock.NewRedisLocker(rdb)
	}
	store, err := cache.NewIdempotencyStoreFactory(
		cache.WithLogger(app.log),
		cache.WithKeyPrefix("faktura:idempotency:"),
		cache.WithInMemoryFallback(true),
	).CreateStore(client)
	if err != nil {
		env.close(app.log)
		return nil, err
	}
	env.closers = append(env.closers, store.Close)

	gdb := db.DB
	companies := persistence.NewGormCompanyRepository(gdb)
	transactor := persistence.NewGormTransactor(gdb)
	numbering := appinvoicing.NewNumberingService(companies, persistence.NewGormNumberSequenceRepository(gdb), transactor)
	env.companies = companies
	env.service = appinvoicing.NewDunningService(
		persistence.NewGormInvoiceRepository(gdb),
		persistence.NewGormDunningNoticeRepository(gdb),
		persistence.NewGormDunningRunRepository(gdb),
		companies, numbering, transactor, locker, store,
		appinvoicing.DunningServiceConfig{
			LockTTL:        cfg.Dunning.LockTTL,
			IdempotencyTTL: cfg.Dunning.IdempotencyTTL,
		},
	)
	return env, nil
}

// parseDate reads a YYYY-MM-DD flag; empty means today in loc
func parseDate(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		now := time.Now().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

func newDunningCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dunning",
		Short: "Run or preview dunning",
	}
	cmd.AddCommand(newDunningRunCmd(app), newDunningPreviewCmd(app))
	return cmd
}

func newDunningRunCmd(app *cli) *cobra.Command {
	var (
		tenant string
		all    bool
		date   string
		output string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run dunning for one tenant or all active tenants",
		Long: `Escalates every overdue invoice that is due for its next dunning level.
A run is recorded once per tenant and date; repeating it prints the stored result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (tenant == "") == !all {
				return errors.New("pass either --tenant or --all")
			}
			ctx := cmd.Context()
			env, err := app.openDunning(ctx)
			if err != nil {
				return err
			}
			defer env.close(app.log)

			runDate, err := parseDate(date, env.location)
			if err != nil {
				return err
			}

			var tenants []uuid.UUID
			if all {
				if tenants, err = env.companies.FindActiveIDs(ctx); err != nil {
					return err
				}
			} else {
				id, err := uuid.Parse(tenant)
				if err != nil {
					return fmt.Errorf("invalid tenant id %q", tenant)
				}
				tenants = []uuid.UUID{id}
			}

			results := make([]runResult, 0, len(tenants))
			var failed int
			for _, id := range tenants {
				run, err := env.service.RunForTenant(ctx, id, runDate, invoicing.DunningRunTriggerManual)
				if err != nil {
					failed++
					app.log.Error("Dunning run failed", zap.String("tenant_id", id.String()), zap.Error(err))
					results = append(results, runResult{TenantID: id, Error: err.Error()})
					continue
				}
				results = append(results, runResult{TenantID: id, Run: run})
			}
			if err := writeRuns(cmd.OutOrStdout(), output, results); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d tenant runs failed", failed, len(tenants))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant (company) id")
	cmd.Flags().BoolVar(&all, "all", false, "run for every active tenant")
	cmd.Flags().StringVar(&date, "date", "", "run date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table or json")
	return cmd
}

func newDunningPreviewCmd(app *cli) *cobra.Command {
	var (
		tenant    string
		date      string
		output    string
		escalated bool
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show what a dunning run would do without changing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, err := uuid.Parse(tenant)
			if err != nil {
				return fmt.Errorf("invalid tenant id %q", tenant)
			}
			ctx := cmd.Context()
			env, err := app.openDunning(ctx)
			if err != nil {
				return err
			}
			defer env.close(app.log)

			asOf, err := parseDate(date, env.location)
			if err != nil {
				return err
			}
			decisions, err := env.service.PreviewTenant(ctx, tenantID, asOf)
			if err != nil {
				return err
			}
			if escalated {
				decisions = onlyEscalating(decisions)
			}
			return writeDecisions(cmd.OutOrStdout(), output, decisions)
		},
	}
	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant (company) id")
	cmd.Flags().StringVar(&date, "date", "", "evaluation date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table or json")
	cmd.Flags().BoolVar(&escalated, "escalating", false, "only list invoices that would be escalated")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}

func onlyEscalating(decisions []appinvoicing.DunningDecisionResponse) []appinvoicing.DunningDecisionResponse {
	out := decisions[:0]
	for _, d := range decisions {
		if d.Escalate {
			out = append(out, d)
		}
	}
	return out
}

package persistence

import (
	"context"
	"time"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDunningNoticeRepository implements invoicing.DunningNoticeRepository using GORM
type GormDunningNoticeRepository struct {
	db *gorm.DB
}

// NewGormDunningNoticeRepository creates a new GormDunningNoticeRepository
func NewGormDunningNoticeRepository(db *gorm.DB) *GormDunningNoticeRepository {
	return &GormDunningNoticeRepository{db: db}
}

var _ invoicing.DunningNoticeRepository = (*GormDunningNoticeRepository)(nil)

// FindByIDForTenant finds a notice by ID within a tenant
func (r *GormDunningNoticeRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*invoicing.DunningNotice, error) {
	var model models.DunningNoticeModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByInvoice returns the notices of an invoice in escalation order
func (r *GormDunningNoticeRepository) FindByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]invoicing.DunningNotice, error) {
	return r.find(ctx, "tenant_id = ? AND invoice_id = ?", tenantID, invoiceID)
}

// FindByRun returns the notices produced by a dunning run
func (r *GormDunningNoticeRepository) FindByRun(ctx context.Context, tenantID, runID uuid.UUID) ([]invoicing.DunningNotice, error) {
	return r.find(ctx, "tenant_id = ? AND run_id = ?", tenantID, runID)
}

func (r *GormDunningNoticeRepository) find(ctx context.Context, where string, args ...any) ([]invoicing.DunningNotice, error) {
	var rows []models.DunningNoticeModel
	if err := conn(ctx, r.db).
		Where(where, args...).
		Order("level ASC, issued_on ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	notices := make([]invoicing.DunningNotice, len(rows))
	for i := range rows {
		notices[i] = *rows[i].ToDomain()
	}
	return notices, nil
}

// Create inserts a notice
func (r *GormDunningNoticeRepository) Create(ctx context.Context, notice *invoicing.DunningNotice) error {
	return translateError(conn(ctx, r.db).Create(models.DunningNoticeModelFromDomain(notice)).Error)
}

// GormDunningRunRepository implements invoicing.DunningRunRepository using GORM
type GormDunningRunRepository struct {
	db *gorm.DB
}

// NewGormDunningRunRepository creates a new GormDunningRunRepository
func NewGormDunningRunRepository(db *gorm.DB) *GormDunningRunRepository {
	return &GormDunningRunRepository{db: db}
}

var _ invoicing.DunningRunRepository = (*GormDunningRunRepository)(nil)

// FindByDate finds the run of a tenant for runDate
func (r *GormDunningRunRepository) FindByDate(ctx context.Context, tenantID uuid.UUID, runDate time.Time) (*invoicing.DunningRun, error) {
	var model models.DunningRunModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND run_date = ?", tenantID, invoicing.DateOnly(runDate)).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists runs, newest first unless the filter says otherwise
func (r *GormDunningRunRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]invoicing.DunningRun, int64, error) {
	query := conn(ctx, r.db).Model(&models.DunningRunModel{}).Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.DunningRunModel
	if err := paginate(query, filter, DunningRunSortFields, "run_date").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	runs := make([]invoicing.DunningRun, len(rows))
	for i := range rows {
		runs[i] = *rows[i].ToDomain()
	}
	return runs, total, nil
}

// Create inserts a run
func (r *GormDunningRunRepository) Create(ctx context.Context, run *invoicing.DunningRun) error {
	return translateError(conn(ctx, r.db).Create(models.DunningRunModelFromDomain(run)).Error)
}

// Update stores the counters and status of a run
func (r *GormDunningRunRepository) Update(ctx context.Context, run *invoicing.DunningRun) error {
	result := conn(ctx, r.db).Model(&models.DunningRunModel{}).
		Where("id = ?", run.ID).
		Updates(map[string]any{
			"status":      run.Status,
			"evaluated":   run.Evaluated,
			"escalated":   run.Escalated,
			"skipped":     run.Skipped,
			"failed":      run.Failed,
			"finished_at": run.FinishedAt,
			"error":       run.Error,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

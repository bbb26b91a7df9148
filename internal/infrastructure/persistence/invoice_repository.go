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

// GormInvoiceRepository implements invoicing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

var _ invoicing.InvoiceRepository = (*GormInvoiceRepository)(nil)

var (
	dunnableStatuses = []invoicing.InvoiceStatus{invoicing.InvoiceStatusOpen, invoicing.InvoiceStatusPartiallyPaid}
	payableStatuses  = []invoicing.InvoiceStatus{
		invoicing.InvoiceStatusOpen, invoicing.InvoiceStatusPartiallyPaid, invoicing.InvoiceStatusInCollection,
	}
)

// FindByIDForTenant finds an invoice by ID within a tenant
func (r *GormInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*invoicing.Invoice, error) {
	var model models.InvoiceModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an issued invoice by its number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*invoicing.Invoice, error) {
	var model models.InvoiceModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND number = ?", tenantID, number).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindCorrection finds the replacement invoice created for a corrected invoice
func (r *GormInvoiceRepository) FindCorrection(ctx context.Context, tenantID, originalID uuid.UUID) (*invoicing.Invoice, error) {
	var model models.InvoiceModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND corrects_invoice_id = ?", tenantID, originalID).
		Order("created_at").
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists invoices matching the filter
func (r *GormInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter invoicing.InvoiceFilter) ([]invoicing.Invoice, int64, error) {
	query := conn(ctx, r.db).Model(&models.InvoiceModel{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		query = query.Where("LOWER(number) LIKE ?", searchPattern(filter.Search))
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.DunningLevel != nil {
		query = query.Where("dunning_level = ?", *filter.DunningLevel)
	}
	if filter.IssuedFrom != nil {
		query = query.Where("issue_date >= ?", invoicing.DateOnly(*filter.IssuedFrom))
	}
	if filter.IssuedTo != nil {
		query = query.Where("issue_date <= ?", invoicing.DateOnly(*filter.IssuedTo))
	}
	if filter.OverdueAsOf != nil {
		query = query.Where("status IN ? AND due_date < ?", payableStatuses, invoicing.DateOnly(*filter.OverdueAsOf))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.InvoiceModel
	if err := paginate(query, filter.Filter, InvoiceSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toInvoices(rows), total, nil
}

// FindDunnable returns standard invoices the dunning engine has to evaluate
func (r *GormInvoiceRepository) FindDunnable(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]invoicing.Invoice, error) {
	var rows []models.InvoiceModel
	err := conn(ctx, r.db).
		Where("tenant_id = ? AND type = ? AND status IN ? AND dunning_blocked = ? AND due_date < ?",
			tenantID, invoicing.InvoiceTypeStandard, dunnableStatuses, false, invoicing.DateOnly(asOf)).
		Order("due_date ASC, number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toInvoices(rows), nil
}

// FindOpenItems returns issued standard invoices that still carry a balance
func (r *GormInvoiceRepository) FindOpenItems(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]invoicing.Invoice, error) {
	var rows []models.InvoiceModel
	err := conn(ctx, r.db).
		Where("tenant_id = ? AND type = ? AND status IN ? AND issue_date <= ?",
			tenantID, invoicing.InvoiceTypeStandard, payableStatuses, invoicing.DateOnly(asOf)).
		Order("due_date ASC, number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toInvoices(rows), nil
}

// CountByCustomer counts invoices, drafts included, of a customer
func (r *GormInvoiceRepository) CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.InvoiceModel{}).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Count(&count).Error
	return count, err
}

// Create inserts a new invoice
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *invoicing.Invoice) error {
	return translateError(conn(ctx, r.db).Create(models.InvoiceModelFromDomain(invoice)).Error)
}

// SaveWithLock updates an invoice with optimistic locking
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, invoice *invoicing.Invoice) error {
	return saveWithLock(ctx, r.db, models.InvoiceModelFromDomain(invoice), invoice.ID, invoice.Version, "invoice")
}

// DeleteDraft removes a draft; rows in any other status are left untouched
func (r *GormInvoiceRepository) DeleteDraft(ctx context.Context, tenantID, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.InvoiceModel{},
		"tenant_id = ? AND id = ? AND status = ?", tenantID, id, invoicing.InvoiceStatusDraft)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toInvoices(rows []models.InvoiceModel) []invoicing.Invoice {
	invoices := make([]invoicing.Invoice, len(rows))
	for i := range rows {
		invoices[i] = *rows[i].ToDomain()
	}
	return invoices
}

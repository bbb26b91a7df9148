package persistence

import (
	"context"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCustomerRepository implements invoicing.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

var _ invoicing.CustomerRepository = (*GormCustomerRepository)(nil)

// FindByIDForTenant finds a customer by ID within a tenant
func (r *GormCustomerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*invoicing.Customer, error) {
	var model models.CustomerModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a customer by customer number within a tenant
func (r *GormCustomerRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*invoicing.Customer, error) {
	var model models.CustomerModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND number = ?", tenantID, number).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists customers of a tenant
func (r *GormCustomerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter invoicing.CustomerFilter) ([]invoicing.Customer, int64, error) {
	query := conn(ctx, r.db).Model(&models.CustomerModel{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		p := searchPattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(number) LIKE ? OR LOWER(email) LIKE ?", p, p, p)
	}
	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.CustomerModel
	if err := paginate(query, filter.Filter, CustomerSortFields, "name").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	customers := make([]invoicing.Customer, len(rows))
	for i := range rows {
		customers[i] = *rows[i].ToDomain()
	}
	return customers, total, nil
}

// Create inserts a new customer
func (r *GormCustomerRepository) Create(ctx context.Context, customer *invoicing.Customer) error {
	return translateError(conn(ctx, r.db).Create(models.CustomerModelFromDomain(customer)).Error)
}

// SaveWithLock updates a customer with optimistic locking
func (r *GormCustomerRepository) SaveWithLock(ctx context.Context, customer *invoicing.Customer) error {
	return saveWithLock(ctx, r.db, models.CustomerModelFromDomain(customer), customer.ID, customer.Version, "customer")
}

// DeleteForTenant removes a customer
func (r *GormCustomerRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.CustomerModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

package persistence

import (
	"context"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExpenseRepository implements invoicing.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

var _ invoicing.ExpenseRepository = (*GormExpenseRepository)(nil)

// FindByIDForTenant finds an expense by ID within a tenant
func (r *GormExpenseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*invoicing.Expense, error) {
	var model models.ExpenseModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists expenses of a tenant
func (r *GormExpenseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter invoicing.ExpenseFilter) ([]invoicing.Expense, int64, error) {
	query := conn(ctx, r.db).Model(&models.ExpenseModel{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		p := searchPattern(filter.Search)
		query = query.Where("LOWER(vendor) LIKE ? OR LOWER(description) LIKE ?", p, p)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", invoicing.DateOnly(*filter.From))
	}
	if filter.To != nil {
		query = query.Where("date <= ?", invoicing.DateOnly(*filter.To))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ExpenseModel
	if err := paginate(query, filter.Filter, ExpenseSortFields, "date").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	expenses := make([]invoicing.Expense, len(rows))
	for i := range rows {
		expenses[i] = *rows[i].ToDomain()
	}
	return expenses, total, nil
}

// Create inserts a new expense
func (r *GormExpenseRepository) Create(ctx context.Context, expense *invoicing.Expense) error {
	return translateError(conn(ctx, r.db).Create(models.ExpenseModelFromDomain(expense)).Error)
}

// SaveWithLock updates an expense with optimistic locking
func (r *GormExpenseRepository) SaveWithLock(ctx context.Context, expense *invoicing.Expense) error {
	return saveWithLock(ctx, r.db, models.ExpenseModelFromDomain(expense), expense.ID, expense.Version, "expense")
}

// DeleteForTenant removes an expense
func (r *GormExpenseRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.ExpenseModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

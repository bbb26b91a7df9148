package persistence

import (
	"context"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCompanyRepository implements invoicing.CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

var _ invoicing.CompanyRepository = (*GormCompanyRepository)(nil)

// FindByID finds a company by its ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.Company, error) {
	var model models.CompanyModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindActiveIDs returns the IDs of all active companies
func (r *GormCompanyRepository) FindActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := conn(ctx, r.db).Model(&models.CompanyModel{}).
		Where("active = ?", true).
		Order("created_at").
		Pluck("id", &ids).Error
	return ids, err
}

// Create inserts a new company
func (r *GormCompanyRepository) Create(ctx context.Context, company *invoicing.Company) error {
	return translateError(conn(ctx, r.db).Create(models.CompanyModelFromDomain(company)).Error)
}

// SaveWithLock updates a company with optimistic locking
func (r *GormCompanyRepository) SaveWithLock(ctx context.Context, company *invoicing.Company) error {
	return saveWithLock(ctx, r.db, models.CompanyModelFromDomain(company), company.ID, company.Version, "company")
}

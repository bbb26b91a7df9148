package persistence

import (
	"context"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOfferRepository implements invoicing.OfferRepository using GORM
type GormOfferRepository struct {
	db *gorm.DB
}

// NewGormOfferRepository creates a new GormOfferRepository
func NewGormOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{db: db}
}

var _ invoicing.OfferRepository = (*GormOfferRepository)(nil)

// FindByIDForTenant finds an offer by ID within a tenant
func (r *GormOfferRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*invoicing.Offer, error) {
	var model models.OfferModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists offers of a tenant
func (r *GormOfferRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter invoicing.OfferFilter) ([]invoicing.Offer, int64, error) {
	query := conn(ctx, r.db).Model(&models.OfferModel{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		p := searchPattern(filter.Search)
		query = query.Where("LOWER(number) LIKE ? OR LOWER(title) LIKE ?", p, p)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.OfferModel
	if err := paginate(query, filter.Filter, OfferSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	offers := make([]invoicing.Offer, len(rows))
	for i := range rows {
		offers[i] = *rows[i].ToDomain()
	}
	return offers, total, nil
}

// Create inserts a new offer
func (r *GormOfferRepository) Create(ctx context.Context, offer *invoicing.Offer) error {
	return translateError(conn(ctx, r.db).Create(models.OfferModelFromDomain(offer)).Error)
}

// SaveWithLock updates an offer with optimistic locking
func (r *GormOfferRepository) SaveWithLock(ctx context.Context, offer *invoicing.Offer) error {
	return saveWithLock(ctx, r.db, models.OfferModelFromDomain(offer), offer.ID, offer.Version, "offer")
}

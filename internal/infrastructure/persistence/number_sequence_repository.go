package persistence

import (
	"context"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNumberSequenceRepository implements invoicing.NumberSequenceRepository.
// Gaplessness relies on the row lock taken in LockSequence being held until
// the surrounding transaction commits.
type GormNumberSequenceRepository struct {
	db *gorm.DB
}

// NewGormNumberSequenceRepository creates a new GormNumberSequenceRepository
func NewGormNumberSequenceRepository(db *gorm.DB) *GormNumberSequenceRepository {
	return &GormNumberSequenceRepository{db: db}
}

var _ invoicing.NumberSequenceRepository = (*GormNumberSequenceRepository)(nil)

// FindAssignment returns the number an idempotency key already received
func (r *GormNumberSequenceRepository) FindAssignment(ctx context.Context, tenantID uuid.UUID, docType invoicing.DocumentType, key string) (*invoicing.NumberAssignment, error) {
	var model models.NumberAssignmentModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND document_type = ? AND idempotency_key = ?", tenantID, docType, key).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// LockSequence creates the range on first use and locks its row
func (r *GormNumberSequenceRepository) LockSequence(ctx context.Context, init *invoicing.NumberSequence) (*invoicing.NumberSequence, error) {
	db := conn(ctx, r.db)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(models.NumberSequenceModelFromDomain(init)).Error; err != nil {
		return nil, translateError(err)
	}

	var model models.NumberSequenceModel
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND document_type = ? AND year = ?", init.TenantID, init.DocumentType, init.Year).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// SaveSequence stores the advanced counter
func (r *GormNumberSequenceRepository) SaveSequence(ctx context.Context, seq *invoicing.NumberSequence) error {
	result := conn(ctx, r.db).Model(&models.NumberSequenceModel{}).
		Where("id = ?", seq.ID).
		Updates(map[string]any{
			"last_value": seq.LastValue,
			"prefix":     seq.Prefix,
			"updated_at": seq.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SaveAssignment records which number an idempotency key received
func (r *GormNumberSequenceRepository) SaveAssignment(ctx context.Context, a *invoicing.NumberAssignment) error {
	return translateError(conn(ctx, r.db).Create(models.NumberAssignmentModelFromDomain(a)).Error)
}

package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/faktura/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txKey struct{}

// GormTransactor implements shared.Transactor. The open transaction travels in
// the context; repositories pick it up through conn.
type GormTransactor struct {
	db *gorm.DB
}

// NewGormTransactor creates a transactor on db
func NewGormTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

var _ shared.Transactor = (*GormTransactor)(nil)

// WithinTransaction runs fn in a transaction. A nested call joins the
// surrounding transaction instead of opening a new one.
func (t *GormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction stored in ctx or db
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// translateError maps GORM errors to domain errors
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return shared.ErrAlreadyExists
	}
	return err
}

// isUniqueViolation catches drivers that do not implement error translation
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "SQLSTATE 23505")
}

// optimisticLockError is returned when a versioned update matched no row
func optimisticLockError(entity string) error {
	return shared.NewDomainError(shared.ErrConcurrencyConflict.Code,
		"The "+entity+" record has been modified by another transaction")
}

// saveWithLock updates every column of model if the stored version is the one
// the aggregate was loaded with. The domain has already incremented version.
func saveWithLock(ctx context.Context, db *gorm.DB, model any, id uuid.UUID, version int, entity string) error {
	result := conn(ctx, db).
		Model(model).
		Select("*").
		Omit("id", "created_at").
		Where("id = ? AND version = ?", id, version-1).
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return optimisticLockError(entity)
	}
	return nil
}

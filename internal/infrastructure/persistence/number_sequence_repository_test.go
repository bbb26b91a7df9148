package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormNumberSequenceRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormNumberSequenceRepository(db)
	tx := NewGormTransactor(db)
	tenantID := uuid.New()

	next := func(year int) string {
		var number string
		require.NoError(t, tx.WithinTransaction(ctx, func(ctx context.Context) error {
			seq, err := repo.LockSequence(ctx, invoicing.NewNumberSequence(tenantID, invoicing.DocumentTypeInvoice, year, "RE", 5))
			if err != nil {
				return err
			}
			number = seq.Advance()
			return repo.SaveSequence(ctx, seq)
		}))
		return number
	}

	t.Run("first use creates the range", func(t *testing.T) {
		assert.Equal(t, "RE-2026-00001", next(2026))
		assert.Equal(t, "RE-2026-00002", next(2026))
	})

	t.Run("years are separate ranges", func(t *testing.T) {
		assert.Equal(t, "RE-2027-00001", next(2027))
		assert.Equal(t, "RE-2026-00003", next(2026))
	})

	t.Run("existing range keeps its counter", func(t *testing.T) {
		seq, err := repo.LockSequence(ctx, invoicing.NewNumberSequence(tenantID, invoicing.DocumentTypeInvoice, 2026, "XX", 5))
		require.NoError(t, err)
		assert.Equal(t, int64(3), seq.LastValue)
		assert.Equal(t, "RE", seq.Prefix)
	})

	t.Run("rolled back advance leaves no gap", func(t *testing.T) {
		err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
			seq, err := repo.LockSequence(ctx, invoicing.NewNumberSequence(tenantID, invoicing.DocumentTypeInvoice, 2026, "RE", 5))
			require.NoError(t, err)
			seq.Advance()
			require.NoError(t, repo.SaveSequence(ctx, seq))
			return shared.ErrInvalidState
		})
		require.ErrorIs(t, err, shared.ErrInvalidState)
		assert.Equal(t, "RE-2026-00004", next(2026))
	})
}

func TestGormNumberSequenceRepository_Assignments(t *testing.T) {
	ctx := context.Background()
	repo := NewGormNumberSequenceRepository(newTestDB(t))
	tenantID := uuid.New()

	a := &invoicing.NumberAssignment{
		ID:             uuid.New(),
		TenantID:       tenantID,
		DocumentType:   invoicing.DocumentTypeInvoice,
		IdempotencyKey: "issue:123",
		Number:         "RE-2026-00001",
		AssignedAt:     time.Now().UTC(),
	}
	require.NoError(t, repo.SaveAssignment(ctx, a))

	t.Run("lookup by key", func(t *testing.T) {
		found, err := repo.FindAssignment(ctx, tenantID, invoicing.DocumentTypeInvoice, "issue:123")
		require.NoError(t, err)
		assert.Equal(t, "RE-2026-00001", found.Number)
	})

	t.Run("key is scoped to the document type", func(t *testing.T) {
		_, err := repo.FindAssignment(ctx, tenantID, invoicing.DocumentTypeOffer, "issue:123")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("duplicate key", func(t *testing.T) {
		dup := *a
		dup.ID = uuid.New()
		dup.Number = "RE-2026-00002"
		assert.ErrorIs(t, repo.SaveAssignment(ctx, &dup), shared.ErrAlreadyExists)
	})
}

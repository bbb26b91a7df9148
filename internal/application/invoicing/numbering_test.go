package invoicing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberingService_Next(t *testing.T) {
	ctx := context.Background()

	t.Run("draws consecutive numbers per type and year", func(t *testing.T) {
		env := newTestEnv(t)
		at := day(2024, time.March, 1)

		var got []string
		for i := 0; i < 3; i++ {
			n, err := env.numbering.Next(ctx, env.tenant(), invoicing.DocumentTypeInvoice, "", at)
			require.NoError(t, err)
			got = append(got, n)
		}
		assert.Equal(t, []string{"RE-2024-00001", "RE-2024-00002", "RE-2024-00003"}, got)

		n, err := env.numbering.Next(ctx, env.tenant(), invoicing.DocumentTypeDunning, "", at)
		require.NoError(t, err)
		assert.Equal(t, "MA-2024-00001", n)

		n, err = env.numbering.Next(ctx, env.tenant(), invoicing.DocumentTypeInvoice, "", day(2025, time.January, 2))
		require.NoError(t, err)
		assert.Equal(t, "RE-2025-00001", n, "yearly reset starts a new range")
	})

	t.Run("customer numbers never reset", func(t *testing.T) {
		env := newTestEnv(t)
		a, err := env.numbering.Next(ctx, env.tenant(), invoicing.DocumentTypeCustomer, "", day(2024, time.December, 31))
		require.NoError(t, err)
		b, err := env.numbering.Next(ctx, env.tenant(), invoicing.DocumentTypeCustomer, "", day(2025, time.January, 1))
		require.NoError(t, err)
		assert.Equal(t, "KD-00001", a)
		assert.Equal(t, "KD-00002", b)
	})

	t.Run("repeated key returns the same number", func(t *testing.T) {
		env := newTestEnv(t)
		key := issueKey(uuid.New())
		at := day(2024, time.March, 1)

		first, err := env.numbering.Next(ctx, env.tenant(), invoicing.DocumentTypeInvoice, key, at)
		require.NoError(t, err)
		again, err := env.numbering.Next(ctx, env.tenant(), invoicing.DocumentTypeInvoice, key, at)
		require.NoError(t, err)
		next, err := env.numbering.Next(ctx, env.tenant(), invoicing.DocumentTypeInvoice, "", at)
		require.NoError(t, err)

		assert.Equal(t, first, again)
		assert.Equal(t, "RE-2024-00002", next)
	})

	t.Run("rolled back transaction leaves no gap", func(t *testing.T) {
		env := newTestEnv(t)
		at := day(2024, time.March, 1)
		failure := errors.New("document insert failed")

		err := env.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			n, err := env.numbering.Next(ctx, env.tenant(), invoicing.DocumentTypeInvoice, issueKey(uuid.New()), at)
			require.NoError(t, err)
			assert.Equal(t, "RE-2024-00001", n)
			return failure
		})
		require.ErrorIs(t, err, failure)

		n, err := env.numbering.Next(ctx, env.tenant(), invoicing.DocumentTypeInvoice, "", at)
		require.NoError(t, err)
		assert.Equal(t, "RE-2024-00001", n)
	})

	t.Run("prefix change applies to the running range", func(t *testing.T) {
		env := newTestEnv(t)
		at := day(2024, time.March, 1)
		_, err := env.numbering.Next(ctx, env.tenant(), invoicing.DocumentTypeInvoice, "", at)
		require.NoError(t, err)

		env.company.Numbering.InvoicePrefix = "R"
		env.company.IncrementVersion()
		require.NoError(t, env.companies.SaveWithLock(ctx, env.company))

		n, err := env.numbering.Next(ctx, env.tenant(), invoicing.DocumentTypeInvoice, "", at)
		require.NoError(t, err)
		assert.Equal(t, "R-2024-00002", n)
	})

	t.Run("unknown document type", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.numbering.Next(ctx, env.tenant(), invoicing.DocumentType("credit_note"), "", time.Now())
		assert.Equal(t, "INVALID_DOCUMENT_TYPE", shared.ErrorCode(err))
	})

	t.Run("unknown company", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.numbering.Next(ctx, uuid.New(), invoicing.DocumentTypeInvoice, "", time.Now())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

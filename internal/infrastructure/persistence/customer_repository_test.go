package persistence

import (
	"context"
	"testing"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCompanyRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormCompanyRepository(db)

	active := testCompany(t, "Muster GmbH")
	other := testCompany(t, "Beispiel KG")
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, other))

	t.Run("find by id round trips settings", func(t *testing.T) {
		found, err := repo.FindByID(ctx, active.ID)
		require.NoError(t, err)
		assert.Equal(t, "Muster GmbH", found.Name)
		assert.Equal(t, "DE123456789", found.VATID)
		assert.Equal(t, active.Numbering, found.Numbering)
		assert.Equal(t, 1, found.Version)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("deactivated companies are not listed as active", func(t *testing.T) {
		require.NoError(t, other.Deactivate())
		require.NoError(t, repo.SaveWithLock(ctx, other))

		ids, err := repo.FindActiveIDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{active.ID}, ids)
	})

	t.Run("search by name", func(t *testing.T) {
		items, total, err := repo.FindAll(ctx, shared.Filter{Search: "muster"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, active.ID, items[0].ID)
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		stale, err := repo.FindByID(ctx, active.ID)
		require.NoError(t, err)

		require.NoError(t, active.Deactivate())
		require.NoError(t, repo.SaveWithLock(ctx, active))

		require.NoError(t, stale.Deactivate())
		err = repo.SaveWithLock(ctx, stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormCustomerRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormCustomerRepository(db)

	company := testCompany(t, "Muster GmbH")
	otherCompany := testCompany(t, "Beispiel KG")
	alpha := testCustomer(t, company, "KD-00001", "Alpha AG")
	beta := testCustomer(t, company, "KD-00002", "Beta GmbH")
	foreign := testCustomer(t, otherCompany, "KD-00001", "Alpha AG")
	for _, c := range []*invoicing.Customer{alpha, beta, foreign} {
		require.NoError(t, repo.Create(ctx, c))
	}

	t.Run("customer numbers are unique per company", func(t *testing.T) {
		dup := testCustomer(t, company, "KD-00001", "Doppelt AG")
		assert.ErrorIs(t, repo.Create(ctx, dup), shared.ErrAlreadyExists)
	})

	t.Run("lookups are scoped to the tenant", func(t *testing.T) {
		_, err := repo.FindByIDForTenant(ctx, otherCompany.ID, alpha.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		found, err := repo.FindByNumber(ctx, otherCompany.ID, "KD-00001")
		require.NoError(t, err)
		assert.Equal(t, foreign.ID, found.ID)
	})

	t.Run("address survives the round trip", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, company.ID, alpha.ID)
		require.NoError(t, err)
		assert.Equal(t, alpha.Address, found.Address)
		assert.True(t, found.Active)
	})

	t.Run("list filters", func(t *testing.T) {
		inactive := false
		require.NoError(t, beta.Deactivate())
		require.NoError(t, repo.SaveWithLock(ctx, beta))

		tests := []struct {
			name   string
			filter invoicing.CustomerFilter
			want   []uuid.UUID
		}{
			{"all of tenant", invoicing.CustomerFilter{Filter: shared.Filter{OrderBy: "number", OrderDir: "asc"}}, []uuid.UUID{alpha.ID, beta.ID}},
			{"search", invoicing.CustomerFilter{Filter: shared.Filter{Search: "beta"}}, []uuid.UUID{beta.ID}},
			{"inactive only", invoicing.CustomerFilter{Active: &inactive}, []uuid.UUID{beta.ID}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				items, total, err := repo.FindAllForTenant(ctx, company.ID, tt.filter)
				require.NoError(t, err)
				assert.Equal(t, int64(len(tt.want)), total)
				got := make([]uuid.UUID, len(items))
				for i := range items {
					got[i] = items[i].ID
				}
				assert.Equal(t, tt.want, got)
			})
		}
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteForTenant(ctx, company.ID, alpha.ID))
		assert.ErrorIs(t, repo.DeleteForTenant(ctx, company.ID, alpha.ID), shared.ErrNotFound)
	})
}

func TestGormProductRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	company := testCompany(t, "Muster GmbH")

	p, err := invoicing.NewProduct(company.ID, invoicing.ProductDetails{
		SKU:         "cons-01",
		Name:        "Beratungsstunde",
		Unit:        "h",
		UnitPrice:   decimal.RequireFromString("120.00"),
		TaxCategory: invoicing.TaxCategoryStandard,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p))

	t.Run("sku check ignores case", func(t *testing.T) {
		exists, err := repo.ExistsBySKU(ctx, company.ID, " cons-01 ")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsBySKU(ctx, uuid.New(), "CONS-01")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("find by ids skips unknown", func(t *testing.T) {
		items, err := repo.FindByIDsForTenant(ctx, company.ID, []uuid.UUID{p.ID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, decimal.RequireFromString("120").Equal(items[0].UnitPrice))
	})

	t.Run("empty id list", func(t *testing.T) {
		items, err := repo.FindByIDsForTenant(ctx, company.ID, nil)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("update price", func(t *testing.T) {
		require.NoError(t, p.Update(invoicing.ProductDetails{
			SKU:         "CONS-01",
			Name:        "Beratungsstunde",
			Unit:        "h",
			UnitPrice:   decimal.RequireFromString("135.50"),
			TaxCategory: invoicing.TaxCategoryStandard,
		}))
		require.NoError(t, repo.SaveWithLock(ctx, p))

		found, err := repo.FindByIDForTenant(ctx, company.ID, p.ID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("135.50").Equal(found.UnitPrice))
		assert.Equal(t, 2, found.Version)
	})
}

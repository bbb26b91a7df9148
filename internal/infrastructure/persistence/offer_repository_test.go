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

func TestGormOfferRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormOfferRepository(db)
	company := testCompany(t, "Muster GmbH")
	customer := testCustomer(t, company, "KD-00001", "Kunde AG")

	offer, err := invoicing.NewOffer(company, customer, "Website-Relaunch", invoicing.InvoiceLines{{
		Description: "Konzeption",
		Quantity:    decimal.NewFromInt(8),
		UnitPrice:   decimal.NewFromInt(95),
		TaxCategory: invoicing.TaxCategoryStandard,
	}}, day(2026, 4, 30))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, offer))

	t.Run("send assigns the number", func(t *testing.T) {
		require.NoError(t, offer.Send("AN-2026-00001", day(2026, 4, 1)))
		require.NoError(t, repo.SaveWithLock(ctx, offer))

		found, err := repo.FindByIDForTenant(ctx, company.ID, offer.ID)
		require.NoError(t, err)
		assert.Equal(t, "AN-2026-00001", found.Number)
		assert.Equal(t, invoicing.OfferStatusSent, found.Status)
		assert.Equal(t, day(2026, 4, 30), found.ValidUntil)
		assert.Equal(t, "Kunde AG", found.Buyer.Name)
	})

	t.Run("filter by status", func(t *testing.T) {
		sent := invoicing.OfferStatusSent
		draft := invoicing.OfferStatusDraft

		items, total, err := repo.FindAllForTenant(ctx, company.ID, invoicing.OfferFilter{Status: &sent})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, items, 1)

		_, total, err = repo.FindAllForTenant(ctx, company.ID, invoicing.OfferFilter{Status: &draft})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("other tenant", func(t *testing.T) {
		_, err := repo.FindByIDForTenant(ctx, uuid.New(), offer.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormExpenseRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormExpenseRepository(newTestDB(t))
	tenantID := uuid.New()

	book := func(vendor string, category invoicing.ExpenseCategory, on int) *invoicing.Expense {
		e, err := invoicing.NewExpense(tenantID, invoicing.ExpenseDetails{
			Date:      day(2026, 3, on),
			Vendor:    vendor,
			Category:  category,
			NetAmount: decimal.RequireFromString("100"),
			TaxRate:   decimal.RequireFromString("19"),
		})
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, e))
		return e
	}
	software := book("Hosting GmbH", invoicing.ExpenseCategorySoftware, 3)
	travel := book("Deutsche Bahn", invoicing.ExpenseCategoryTravel, 10)

	t.Run("date range", func(t *testing.T) {
		from := day(2026, 3, 5)
		items, total, err := repo.FindAllForTenant(ctx, tenantID, invoicing.ExpenseFilter{From: &from})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, travel.ID, items[0].ID)
		assert.True(t, decimal.RequireFromString("119").Equal(items[0].GrossAmount))
	})

	t.Run("category", func(t *testing.T) {
		cat := invoicing.ExpenseCategorySoftware
		items, _, err := repo.FindAllForTenant(ctx, tenantID, invoicing.ExpenseFilter{Category: &cat})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, software.ID, items[0].ID)
	})

	t.Run("attach receipt", func(t *testing.T) {
		require.NoError(t, software.AttachReceipt(software.ReceiptStorageKey("rechnung.PDF")))
		require.NoError(t, repo.SaveWithLock(ctx, software))

		found, err := repo.FindByIDForTenant(ctx, tenantID, software.ID)
		require.NoError(t, err)
		assert.Contains(t, found.ReceiptKey, "/receipts/2026/")
		assert.Equal(t, 2, found.Version)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteForTenant(ctx, tenantID, travel.ID))
		assert.ErrorIs(t, repo.DeleteForTenant(ctx, tenantID, travel.ID), shared.ErrNotFound)
	})
}

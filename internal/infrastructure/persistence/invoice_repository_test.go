package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type invoiceFixture struct {
	repo     *GormInvoiceRepository
	company  *invoicing.Company
	customer *invoicing.Customer
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()
	db := newTestDB(t)
	company := testCompany(t, "Muster GmbH")
	customer := testCustomer(t, company, "KD-00001", "Kunde AG")
	require.NoError(t, NewGormCompanyRepository(db).Create(context.Background(), company))
	require.NoError(t, NewGormCustomerRepository(db).Create(context.Background(), customer))
	return &invoiceFixture{repo: NewGormInvoiceRepository(db), company: company, customer: customer}
}

// issue stores a draft and issues it under number on the given date
func (f *invoiceFixture) issue(t *testing.T, number string, issued time.Time) *invoicing.Invoice {
	t.Helper()
	ctx := context.Background()
	inv := testInvoice(t, f.company, f.customer)
	require.NoError(t, f.repo.Create(ctx, inv))
	require.NoError(t, inv.Issue(number, issued))
	require.NoError(t, f.repo.SaveWithLock(ctx, inv))
	return inv
}

func TestGormInvoiceRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture(t)

	draft := testInvoice(t, f.company, f.customer)
	require.NoError(t, f.repo.Create(ctx, draft))

	t.Run("several drafts without number coexist", func(t *testing.T) {
		another := testInvoice(t, f.company, f.customer)
		require.NoError(t, f.repo.Create(ctx, another))
		require.NoError(t, f.repo.DeleteDraft(ctx, f.company.ID, another.ID))
	})

	t.Run("draft round trip keeps lines and totals", func(t *testing.T) {
		found, err := f.repo.FindByIDForTenant(ctx, f.company.ID, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, invoicing.InvoiceStatusDraft, found.Status)
		assert.Empty(t, found.Number)
		require.Len(t, found.Lines, 1)
		assert.Equal(t, "Beratung", found.Lines[0].Description)
		assert.True(t, decimal.RequireFromString("119").Equal(found.GrossTotal))
		assert.NotNil(t, found.Payments)
	})

	t.Run("issue and pay", func(t *testing.T) {
		require.NoError(t, draft.Issue("RE-2026-00001", day(2026, 1, 1)))
		require.NoError(t, f.repo.SaveWithLock(ctx, draft))

		_, err := draft.RecordPayment(decimal.RequireFromString("19"), day(2026, 1, 10), invoicing.PaymentMethodBankTransfer, "Teilzahlung")
		require.NoError(t, err)
		require.NoError(t, f.repo.SaveWithLock(ctx, draft))

		found, err := f.repo.FindByNumber(ctx, f.company.ID, "RE-2026-00001")
		require.NoError(t, err)
		assert.Equal(t, invoicing.InvoiceStatusPartiallyPaid, found.Status)
		require.Len(t, found.Payments, 1)
		assert.True(t, decimal.RequireFromString("100").Equal(found.OutstandingPrincipal()))
		assert.Equal(t, day(2026, 1, 15), *found.DueDate)
	})

	t.Run("issued invoices cannot be deleted", func(t *testing.T) {
		err := f.repo.DeleteDraft(ctx, f.company.ID, draft.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("invoice numbers are unique per company", func(t *testing.T) {
		dup := testInvoice(t, f.company, f.customer)
		require.NoError(t, dup.Issue("RE-2026-00001", day(2026, 1, 2)))
		assert.ErrorIs(t, f.repo.Create(ctx, dup), shared.ErrAlreadyExists)
	})

	t.Run("concurrent modification", func(t *testing.T) {
		stale, err := f.repo.FindByIDForTenant(ctx, f.company.ID, draft.ID)
		require.NoError(t, err)

		require.NoError(t, draft.BlockDunning("Reklamation"))
		require.NoError(t, f.repo.SaveWithLock(ctx, draft))

		require.NoError(t, stale.BlockDunning("Reklamation"))
		assert.ErrorIs(t, f.repo.SaveWithLock(ctx, stale), shared.ErrConcurrencyConflict)
	})

	t.Run("count by customer includes drafts", func(t *testing.T) {
		n, err := f.repo.CountByCustomer(ctx, f.company.ID, f.customer.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestGormInvoiceRepository_FindDunnable(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture(t)

	overdue := f.issue(t, "RE-2026-00001", day(2026, 1, 1))   // due 15.01.
	dueLater := f.issue(t, "RE-2026-00002", day(2026, 2, 20)) // due 06.03.
	blocked := f.issue(t, "RE-2026-00003", day(2026, 1, 2))
	require.NoError(t, blocked.BlockDunning("Klärung"))
	require.NoError(t, f.repo.SaveWithLock(ctx, blocked))
	paid := f.issue(t, "RE-2026-00004", day(2026, 1, 3))
	_, err := paid.RecordPayment(paid.GrossTotal, day(2026, 1, 5), invoicing.PaymentMethodBankTransfer, "")
	require.NoError(t, err)
	require.NoError(t, f.repo.SaveWithLock(ctx, paid))
	draft := testInvoice(t, f.company, f.customer)
	require.NoError(t, f.repo.Create(ctx, draft))

	items, err := f.repo.FindDunnable(ctx, f.company.ID, day(2026, 2, 1))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, overdue.ID, items[0].ID)

	t.Run("due date itself is not overdue", func(t *testing.T) {
		items, err := f.repo.FindDunnable(ctx, f.company.ID, day(2026, 1, 15))
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("ordered by due date", func(t *testing.T) {
		items, err := f.repo.FindDunnable(ctx, f.company.ID, day(2026, 4, 1))
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, overdue.ID, items[0].ID)
		assert.Equal(t, dueLater.ID, items[1].ID)
	})

	t.Run("other tenants see nothing", func(t *testing.T) {
		items, err := f.repo.FindDunnable(ctx, uuid.New(), day(2026, 4, 1))
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("open items include blocked invoices", func(t *testing.T) {
		items, err := f.repo.FindOpenItems(ctx, f.company.ID, day(2026, 2, 1))
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, overdue.ID, items[0].ID)
		assert.Equal(t, blocked.ID, items[1].ID)
	})
}

func TestGormInvoiceRepository_FindAllForTenant(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture(t)

	jan := f.issue(t, "RE-2026-00001", day(2026, 1, 1))
	feb := f.issue(t, "RE-2026-00002", day(2026, 2, 1))
	draft := testInvoice(t, f.company, f.customer)
	require.NoError(t, f.repo.Create(ctx, draft))

	from := day(2026, 1, 15)
	asOf := day(2026, 2, 1)

	tests := []struct {
		name   string
		filter invoicing.InvoiceFilter
		want   []uuid.UUID
	}{
		{
			name:   "by number ascending",
			filter: invoicing.InvoiceFilter{Filter: shared.Filter{OrderBy: "number", OrderDir: "asc", Search: "re-2026"}},
			want:   []uuid.UUID{jan.ID, feb.ID},
		},
		{
			name:   "issued from",
			filter: invoicing.InvoiceFilter{IssuedFrom: &from},
			want:   []uuid.UUID{feb.ID},
		},
		{
			name:   "overdue as of",
			filter: invoicing.InvoiceFilter{OverdueAsOf: &asOf},
			want:   []uuid.UUID{jan.ID},
		},
		{
			name:   "status",
			filter: invoicing.InvoiceFilter{Statuses: []invoicing.InvoiceStatus{invoicing.InvoiceStatusDraft}},
			want:   []uuid.UUID{draft.ID},
		},
		{
			name:   "page size",
			filter: invoicing.InvoiceFilter{Filter: shared.Filter{OrderBy: "number", OrderDir: "asc", Search: "re-", Page: 2, PageSize: 1}},
			want:   []uuid.UUID{feb.ID},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, _, err := f.repo.FindAllForTenant(ctx, f.company.ID, tt.filter)
			require.NoError(t, err)
			got := make([]uuid.UUID, len(items))
			for i := range items {
				got[i] = items[i].ID
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

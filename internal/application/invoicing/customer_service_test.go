package invoicing

import (
	"context"
	"testing"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerService_Create(t *testing.T) {
	env := newTestEnv(t)

	first := env.createCustomer(t, "business", "Kunde AG")
	second := env.createCustomer(t, "consumer", "Erika Muster")

	assert.Equal(t, "KD-00001", first.Number)
	assert.Equal(t, "KD-00002", second.Number)
	assert.True(t, first.Active)
	assert.Equal(t, 2, env.events.count(invoicing.EventTypeCustomerCreated))
}

func TestCustomerService_Create_InvalidAddress(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.customerService().Create(context.Background(), env.tenant(), CustomerRequest{
		Kind:    "business",
		Name:    "Kunde AG",
		Address: AddressDTO{Street: "Teststraße 5", PostalCode: "80331", City: "München", Country: "Deutschland"},
	})
	assert.Equal(t, "INVALID_ADDRESS", shared.ErrorCode(err))
}

func TestCustomerService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("customer without invoices", func(t *testing.T) {
		env := newTestEnv(t)
		customer := env.createCustomer(t, "business", "Kunde AG")
		svc := env.customerService()

		require.NoError(t, svc.Delete(ctx, env.tenant(), customer.ID))
		_, err := svc.Get(ctx, env.tenant(), customer.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("customer with invoices is kept", func(t *testing.T) {
		env := newTestEnv(t)
		customer := env.createCustomer(t, "business", "Kunde AG")
		_, err := env.invoiceService().CreateDraft(ctx, env.tenant(), CreateInvoiceRequest{CustomerID: customer.ID})
		require.NoError(t, err)

		err = env.customerService().Delete(ctx, env.tenant(), customer.ID)
		assert.Equal(t, "CUSTOMER_HAS_INVOICES", shared.ErrorCode(err))
	})
}

func TestCustomerService_List(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.createCustomer(t, "business", "Kunde AG")
	consumer := env.createCustomer(t, "consumer", "Erika Muster")
	svc := env.customerService()
	_, err := svc.Deactivate(ctx, env.tenant(), consumer.ID)
	require.NoError(t, err)

	active := true
	list, total, err := svc.List(ctx, env.tenant(), CustomerListFilter{Active: &active})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Kunde AG", list[0].Name)

	_, total, err = svc.List(ctx, env.tenant(), CustomerListFilter{Kind: "consumer"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestProductService_SKU(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewProductService(env.products)

	a, err := svc.Create(ctx, env.tenant(), ProductRequest{SKU: "web-1", Name: "Hosting", TaxCategory: "standard"})
	require.NoError(t, err)
	assert.Equal(t, "WEB-1", a.SKU)

	_, err = svc.Create(ctx, env.tenant(), ProductRequest{SKU: " WEB-1 ", Name: "Hosting 2"})
	assert.Equal(t, "ALREADY_EXISTS", shared.ErrorCode(err))

	b, err := svc.Create(ctx, env.tenant(), ProductRequest{SKU: "web-2", Name: "Domain"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, env.tenant(), b.ID, ProductRequest{SKU: "web-1", Name: "Domain"})
	assert.Equal(t, "ALREADY_EXISTS", shared.ErrorCode(err))

	renamed, err := svc.Update(ctx, env.tenant(), a.ID, ProductRequest{SKU: "web-1", Name: "Webhosting"})
	require.NoError(t, err)
	assert.Equal(t, "Webhosting", renamed.Name)

	deactivated, err := svc.Deactivate(ctx, env.tenant(), a.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)
}

package invoicing_test

import (
	"testing"
	"time"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newCompany(t *testing.T) *invoicing.Company {
	t.Helper()
	addr, err := valueobject.NewAddress("Hauptstraße 1", "10115", "Berlin", "DE")
	require.NoError(t, err)
	c, err := invoicing.NewCompany("Muster GmbH", addr)
	require.NoError(t, err)
	c.VATID = "DE123456789"
	return c
}

func newCustomer(t *testing.T, company *invoicing.Company, kind invoicing.CustomerKind, country, vatID string) *invoicing.Customer {
	t.Helper()
	postal := "80331"
	if country != "DE" {
		postal = "1000"
	}
	addr, err := valueobject.NewAddress("Teststraße 5", postal, "Teststadt", country)
	require.NoError(t, err)
	c, err := invoicing.NewCustomer(company.ID, "KD-00001", invoicing.CustomerDetails{
		Kind:    kind,
		Name:    "Kunde AG",
		Address: addr,
		VATID:   vatID,
	})
	require.NoError(t, err)
	return c
}

func line(desc, qty, price string, cat invoicing.TaxCategory) invoicing.InvoiceLine {
	return invoicing.InvoiceLine{
		Description: desc,
		Quantity:    decimal.RequireFromString(qty),
		UnitPrice:   decimal.RequireFromString(price),
		TaxCategory: cat,
	}
}

func draftInvoice(t *testing.T, company *invoicing.Company, customer *invoicing.Customer, lines ...invoicing.InvoiceLine) *invoicing.Invoice {
	t.Helper()
	inv, err := invoicing.NewDraftInvoice(company.ID, customer, 14)
	require.NoError(t, err)
	require.NoError(t, inv.UpdateDraft(invoicing.DraftChanges{Lines: lines, PaymentTermDays: 14}, company, customer))
	return inv
}

// issuedInvoice returns a 119.00 EUR invoice issued on 2026-01-01, due 2026-01-15
func issuedInvoice(t *testing.T, company *invoicing.Company, customer *invoicing.Customer) *invoicing.Invoice {
	t.Helper()
	inv := draftInvoice(t, company, customer, line("Beratung", "1", "100", invoicing.TaxCategoryStandard))
	require.NoError(t, inv.Issue("RE-2026-00001", date(2026, 1, 1)))
	inv.ClearDomainEvents()
	return inv
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

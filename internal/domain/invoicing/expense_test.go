package invoicing_test

import (
	"testing"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpense(t *testing.T) {
	tenantID := uuid.New()

	t.Run("computes VAT and gross", func(t *testing.T) {
		e, err := invoicing.NewExpense(tenantID, invoicing.ExpenseDetails{
			Date:      date(2026, 3, 4),
			Vendor:    "Bürobedarf Schmidt",
			Category:  invoicing.ExpenseCategoryOffice,
			NetAmount: dec("84.03"),
			TaxRate:   dec("19"),
		})
		require.NoError(t, err)
		assert.True(t, e.TaxAmount.Equal(dec("15.97")), e.TaxAmount.String())
		assert.True(t, e.GrossAmount.Equal(dec("100")), e.GrossAmount.String())

		key := e.ReceiptStorageKey("Beleg.PDF")
		assert.Equal(t, "tenants/"+tenantID.String()+"/receipts/2026/"+e.ID.String()+".pdf", key)
		require.NoError(t, e.AttachReceipt(key))
		assert.Equal(t, key, e.ReceiptKey)
	})

	tests := []struct {
		name string
		d    invoicing.ExpenseDetails
	}{
		{"missing vendor", invoicing.ExpenseDetails{Date: date(2026, 3, 4), NetAmount: dec("10"), TaxRate: dec("19")}},
		{"zero amount", invoicing.ExpenseDetails{Date: date(2026, 3, 4), Vendor: "X", NetAmount: dec("0"), TaxRate: dec("19")}},
		{"bad category", invoicing.ExpenseDetails{Date: date(2026, 3, 4), Vendor: "X", Category: "food", NetAmount: dec("10"), TaxRate: dec("19")}},
		{"bad rate", invoicing.ExpenseDetails{Date: date(2026, 3, 4), Vendor: "X", NetAmount: dec("10"), TaxRate: dec("120")}},
		{"missing date", invoicing.ExpenseDetails{Vendor: "X", NetAmount: dec("10"), TaxRate: dec("19")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := invoicing.NewExpense(tenantID, tt.d)
			assert.Error(t, err)
		})
	}
}

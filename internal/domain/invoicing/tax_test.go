package invoicing_test

import (
	"testing"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineTaxRegime(t *testing.T) {
	company := newCompany(t)

	tests := []struct {
		name     string
		small    bool
		buyer    invoicing.TaxParty
		override invoicing.TaxRegime
		expected invoicing.TaxRegime
	}{
		{
			name:     "domestic business",
			buyer:    invoicing.TaxParty{Kind: invoicing.CustomerKindBusiness, Country: "DE", VATID: "DE987654321"},
			expected: invoicing.TaxRegimeStandard,
		},
		{
			name:     "EU business with VAT ID",
			buyer:    invoicing.TaxParty{Kind: invoicing.CustomerKindBusiness, Country: "FR", VATID: "FR12345678901"},
			expected: invoicing.TaxRegimeReverseCharge,
		},
		{
			name:     "EU business without VAT ID",
			buyer:    invoicing.TaxParty{Kind: invoicing.CustomerKindBusiness, Country: "AT"},
			expected: invoicing.TaxRegimeStandard,
		},
		{
			name:     "EU consumer",
			buyer:    invoicing.TaxParty{Kind: invoicing.CustomerKindConsumer, Country: "NL"},
			expected: invoicing.TaxRegimeStandard,
		},
		{
			name:     "third country",
			buyer:    invoicing.TaxParty{Kind: invoicing.CustomerKindBusiness, Country: "CH"},
			expected: invoicing.TaxRegimeExport,
		},
		{
			name:     "override for domestic 13b service",
			buyer:    invoicing.TaxParty{Kind: invoicing.CustomerKindBusiness, Country: "DE", VATID: "DE987654321"},
			override: invoicing.TaxRegimeReverseCharge,
			expected: invoicing.TaxRegimeReverseCharge,
		},
		{
			name:     "small business beats everything",
			small:    true,
			buyer:    invoicing.TaxParty{Kind: invoicing.CustomerKindBusiness, Country: "CH"},
			override: invoicing.TaxRegimeReverseCharge,
			expected: invoicing.TaxRegimeSmallBusiness,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			company.SmallBusiness = tt.small
			assert.Equal(t, tt.expected, invoicing.DetermineTaxRegime(company, tt.buyer, tt.override))
		})
	}
}

func TestCalculateTotals(t *testing.T) {
	lines := invoicing.InvoiceLines{
		line("Beratung", "2", "100", invoicing.TaxCategoryStandard),
		{
			Description:     "Fachbuch",
			Quantity:        dec("1"),
			UnitPrice:       dec("50"),
			DiscountPercent: dec("10"),
			TaxCategory:     invoicing.TaxCategoryReduced,
		},
	}

	t.Run("standard regime groups by rate", func(t *testing.T) {
		priced, totals := invoicing.CalculateTotals(lines, invoicing.TaxRegimeStandard, invoicing.DefaultTaxRates())
		require.Len(t, priced, 2)
		assert.Equal(t, 1, priced[0].Position)
		assert.Equal(t, 2, priced[1].Position)
		assert.True(t, priced[1].NetAmount.Equal(dec("45")))

		assert.True(t, totals.Net.Equal(dec("245")), totals.Net.String())
		assert.True(t, totals.Tax.Equal(dec("41.15")), totals.Tax.String())
		assert.True(t, totals.Gross.Equal(dec("286.15")), totals.Gross.String())
		require.Len(t, totals.Breakdown, 2)
		assert.True(t, totals.Breakdown[0].Rate.Equal(decimal.NewFromInt(19)))
		assert.True(t, totals.Breakdown[1].Rate.Equal(decimal.NewFromInt(7)))
	})

	t.Run("reduced regime applies reduced rate to every line", func(t *testing.T) {
		_, totals := invoicing.CalculateTotals(lines, invoicing.TaxRegimeReduced, invoicing.DefaultTaxRates())
		assert.True(t, totals.Tax.Equal(dec("17.15")), totals.Tax.String())
		assert.Len(t, totals.Breakdown, 1)
	})

	for _, regime := range []invoicing.TaxRegime{invoicing.TaxRegimeReverseCharge, invoicing.TaxRegimeExport, invoicing.TaxRegimeSmallBusiness} {
		t.Run(string(regime)+" charges no VAT", func(t *testing.T) {
			priced, totals := invoicing.CalculateTotals(lines, regime, invoicing.DefaultTaxRates())
			assert.True(t, totals.Tax.IsZero())
			assert.True(t, totals.Gross.Equal(dec("245")))
			for _, l := range priced {
				assert.True(t, l.TaxRate.IsZero())
			}
			assert.NotEmpty(t, regime.LegalNote())
		})
	}
}

func TestTaxRates_Validate(t *testing.T) {
	assert.NoError(t, invoicing.DefaultTaxRates().Validate())
	assert.Error(t, invoicing.TaxRates{Standard: dec("101"), Reduced: dec("7")}.Validate())
	assert.Error(t, invoicing.TaxRates{Standard: dec("19"), Reduced: dec("-1")}.Validate())
}

func TestTaxBreakdown_ValueScan(t *testing.T) {
	in := invoicing.TaxBreakdown{{Rate: dec("19"), Net: dec("100"), Tax: dec("19")}}
	v, err := in.Value()
	require.NoError(t, err)

	var out invoicing.TaxBreakdown
	require.NoError(t, out.Scan(v))
	require.Len(t, out, 1)
	assert.True(t, out[0].Tax.Equal(dec("19")))
}

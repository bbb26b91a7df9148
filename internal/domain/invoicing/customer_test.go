package invoicing_test

import (
	"testing"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateVATID(t *testing.T) {
	tests := []struct {
		raw   string
		valid bool
	}{
		{"DE123456789", true},
		{"de 123.456.789", true},
		{"FR12345678901", true},
		{"ATU12345678", true},
		{"DE12345", false},
		{"123456789", false},
		{"D", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			err := invoicing.ValidateVATID(invoicing.NormalizeVATID(tt.raw))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNewCustomer(t *testing.T) {
	tenantID := uuid.New()
	addr, err := valueobject.NewAddress("Hauptstraße 1", "10115", "Berlin", "DE")
	require.NoError(t, err)

	t.Run("normalizes phone and VAT ID", func(t *testing.T) {
		c, err := invoicing.NewCustomer(tenantID, "KD-00001", invoicing.CustomerDetails{
			Name:    "  Beispiel KG ",
			Email:   "Buchhaltung@Beispiel.DE",
			Phone:   "030 1234567",
			Address: addr,
			VATID:   "de 123 456 789",
		})
		require.NoError(t, err)
		assert.Equal(t, "Beispiel KG", c.Name)
		assert.Equal(t, invoicing.CustomerKindBusiness, c.Kind)
		assert.Equal(t, "+49301234567", c.Phone)
		assert.Equal(t, "DE123456789", c.VATID)
		assert.Equal(t, "buchhaltung@beispiel.de", c.Email)
		assert.Equal(t, invoicing.EventTypeCustomerCreated, c.GetDomainEvents()[0].EventType())
	})

	t.Run("consumers cannot carry a VAT ID", func(t *testing.T) {
		_, err := invoicing.NewCustomer(tenantID, "KD-00002", invoicing.CustomerDetails{
			Kind:    invoicing.CustomerKindConsumer,
			Name:    "Erika Mustermann",
			Address: addr,
			VATID:   "DE123456789",
		})
		assert.Equal(t, "INVALID_VAT_ID", shared.ErrorCode(err))
	})

	t.Run("payment terms override", func(t *testing.T) {
		days := 30
		c, err := invoicing.NewCustomer(tenantID, "KD-00003", invoicing.CustomerDetails{Name: "X", Address: addr, PaymentTermDays: &days})
		require.NoError(t, err)
		assert.Equal(t, 30, c.EffectivePaymentTerms(14))

		c.PaymentTermDays = nil
		assert.Equal(t, 14, c.EffectivePaymentTerms(14))
	})

	t.Run("requires a number", func(t *testing.T) {
		_, err := invoicing.NewCustomer(tenantID, "", invoicing.CustomerDetails{Name: "X", Address: addr})
		assert.Error(t, err)
	})
}

func TestCompany_UpdateDunningSettings(t *testing.T) {
	c := newCompany(t)
	c.ClearDomainEvents()

	s := invoicing.DefaultDunningSettings()
	s.FirstNoticeFee = dec("7.50")
	require.NoError(t, c.UpdateDunningSettings(s))
	assert.True(t, c.Dunning.FirstNoticeFee.Equal(dec("7.50")))
	assert.Equal(t, invoicing.EventTypeDunningSettingsChanged, c.GetDomainEvents()[0].EventType())

	s.CollectionDays = 1
	assert.Error(t, c.UpdateDunningSettings(s))
	assert.True(t, c.Dunning.FirstNoticeFee.Equal(dec("7.50")))
}

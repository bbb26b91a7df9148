package invoicing_test

import (
	"testing"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDocumentNumber(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		year     int
		value    int64
		padding  int
		expected string
	}{
		{"yearly invoice", "RE", 2026, 1, 5, "RE-2026-00001"},
		{"cancellation", "ST", 2026, 42, 5, "ST-2026-00042"},
		{"no yearly reset", "KD", 0, 7, 5, "KD-00007"},
		{"overflowing padding", "RE", 2026, 123456, 5, "RE-2026-123456"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, invoicing.FormatDocumentNumber(tt.prefix, tt.year, tt.value, tt.padding))
		})
	}
}

func TestNumberSequence_Advance(t *testing.T) {
	seq := invoicing.NewNumberSequence(uuid.New(), invoicing.DocumentTypeInvoice, 2026, "RE", 5)
	assert.Equal(t, "RE-2026-00001", seq.Advance())
	assert.Equal(t, "RE-2026-00002", seq.Advance())
	assert.Equal(t, int64(2), seq.LastValue)
}

func TestSequenceYear(t *testing.T) {
	settings := invoicing.DefaultNumberingSettings()
	at := date(2026, 12, 31)

	assert.Equal(t, 2026, invoicing.SequenceYear(invoicing.DocumentTypeInvoice, settings, at))
	assert.Equal(t, 0, invoicing.SequenceYear(invoicing.DocumentTypeCustomer, settings, at))

	settings.YearlyReset = false
	assert.Equal(t, 0, invoicing.SequenceYear(invoicing.DocumentTypeInvoice, settings, at))
}

func TestNumberingSettings_Validate(t *testing.T) {
	s := invoicing.DefaultNumberingSettings()
	require.NoError(t, s.Validate())
	assert.Equal(t, "ST", s.PrefixFor(invoicing.DocumentTypeCancellation))

	dup := s
	dup.OfferPrefix = "RE"
	assert.Error(t, dup.Validate())

	pad := s
	pad.Padding = 0
	assert.Error(t, pad.Validate())
}

func TestNewNumberAssignment(t *testing.T) {
	_, err := invoicing.NewNumberAssignment(uuid.New(), invoicing.DocumentTypeInvoice, "", "RE-2026-00001")
	assert.Error(t, err)

	a, err := invoicing.NewNumberAssignment(uuid.New(), invoicing.DocumentTypeInvoice, "invoice:abc", "RE-2026-00001")
	require.NoError(t, err)
	assert.Equal(t, "invoice:abc", a.IdempotencyKey)
}

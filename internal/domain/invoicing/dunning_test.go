package invoicing_test

import (
	"testing"
	"time"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func escalate(t *testing.T, policy *invoicing.DunningPolicy, inv *invoicing.Invoice, asOf time.Time, number string) *invoicing.DunningNotice {
	t.Helper()
	d := policy.Evaluate(inv, asOf)
	require.True(t, d.Escalate, d.Reason)
	notice, err := inv.Escalate(d, number, asOf, policy.Settings().PaymentDeadlineDays)
	require.NoError(t, err)
	return notice
}

func TestDunningSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *invoicing.DunningSettings)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(s *invoicing.DunningSettings) {}},
		{
			name:    "thresholds must increase",
			mutate:  func(s *invoicing.DunningSettings) { s.SecondNoticeDays = s.FirstNoticeDays },
			wantErr: "INVALID_DUNNING_THRESHOLDS",
		},
		{
			name:    "thresholds must be positive",
			mutate:  func(s *invoicing.DunningSettings) { s.ReminderDays = 0 },
			wantErr: "INVALID_DUNNING_THRESHOLDS",
		},
		{
			name:    "fees cannot be negative",
			mutate:  func(s *invoicing.DunningSettings) { s.FirstNoticeFee = dec("-1") },
			wantErr: "INVALID_DUNNING_FEE",
		},
		{
			name:    "deadline at least one day",
			mutate:  func(s *invoicing.DunningSettings) { s.PaymentDeadlineDays = 0 },
			wantErr: "INVALID_PAYMENT_DEADLINE",
		},
		{
			name:    "negative effective rate",
			mutate:  func(s *invoicing.DunningSettings) { s.BaseInterestRate = dec("-10") },
			wantErr: "INVALID_INTEREST_RATE",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := invoicing.DefaultDunningSettings()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantErr, shared.ErrorCode(err))
		})
	}
}

func TestDunningSettings_TargetLevel(t *testing.T) {
	s := invoicing.DefaultDunningSettings()
	tests := []struct {
		days     int
		expected invoicing.DunningLevel
	}{
		{0, invoicing.DunningLevelNone},
		{6, invoicing.DunningLevelNone},
		{7, invoicing.DunningLevelReminder},
		{14, invoicing.DunningLevelFirst},
		{27, invoicing.DunningLevelFirst},
		{28, invoicing.DunningLevelSecond},
		{42, invoicing.DunningLevelThird},
		{56, invoicing.DunningLevelCollection},
		{400, invoicing.DunningLevelCollection},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, s.TargetLevel(tt.days), "days=%d", tt.days)
	}
}

func TestCalculateInterest(t *testing.T) {
	assert.True(t, invoicing.CalculateInterest(dec("119"), dec("10.27"), date(2026, 1, 15), date(2026, 1, 29)).Equal(dec("0.47")))
	assert.True(t, invoicing.CalculateInterest(dec("1000"), dec("10.27"), date(2026, 1, 1), date(2026, 1, 31)).Equal(dec("8.44")))
	assert.True(t, invoicing.CalculateInterest(dec("119"), dec("6.27"), date(2026, 1, 15), date(2026, 1, 29)).Equal(dec("0.29")))
	assert.True(t, invoicing.CalculateInterest(dec("119"), dec("10.27"), date(2026, 1, 29), date(2026, 1, 15)).IsZero())
	assert.True(t, invoicing.CalculateInterest(dec("0"), dec("10.27"), date(2026, 1, 1), date(2026, 2, 1)).IsZero())
}

func TestDunningPolicy_EscalationLadder(t *testing.T) {
	company := newCompany(t)
	customer := newCustomer(t, company, invoicing.CustomerKindBusiness, "DE", "")
	policy := invoicing.NewDunningPolicy(company.Dunning)
	inv := issuedInvoice(t, company, customer) // due 2026-01-15

	// 5 days overdue: nothing yet
	d := policy.Evaluate(inv, date(2026, 1, 20))
	assert.False(t, d.Escalate)
	assert.Equal(t, invoicing.SkipBelowThreshold, d.Reason)

	// 7 days: friendly reminder, free of charge and interest
	n := escalate(t, policy, inv, date(2026, 1, 22), "MA-2026-00001")
	assert.Equal(t, invoicing.DunningLevelReminder, n.Level)
	assert.True(t, n.Fee.IsZero())
	assert.True(t, n.Interest.IsZero())
	assert.Equal(t, date(2026, 2, 1), n.PaymentDeadline)
	assert.Equal(t, invoicing.DunningLevelReminder, inv.DunningLevel)

	// 10 days: reminder already sent
	d = policy.Evaluate(inv, date(2026, 1, 25))
	assert.False(t, d.Escalate)

	// 14 days: first notice with fee, flat fee and interest since the due date
	n = escalate(t, policy, inv, date(2026, 1, 29), "MA-2026-00002")
	assert.Equal(t, invoicing.DunningLevelFirst, n.Level)
	assert.True(t, n.Fee.Equal(dec("45")), n.Fee.String())
	assert.True(t, n.Interest.Equal(dec("0.47")), n.Interest.String())
	assert.True(t, n.InterestRate.Equal(dec("10.27")))
	assert.True(t, n.TotalDue.Equal(dec("164.47")), n.TotalDue.String())
	assert.True(t, inv.FlatFeeCharged)

	// 28 days: second notice, interest only for the new period, no second flat fee
	n = escalate(t, policy, inv, date(2026, 2, 12), "MA-2026-00003")
	assert.Equal(t, invoicing.DunningLevelSecond, n.Level)
	assert.True(t, n.Fee.Equal(dec("10")))
	assert.True(t, n.Interest.Equal(dec("0.47")))
	assert.True(t, inv.DunningFees.Equal(dec("55")))
	assert.True(t, inv.AccruedInterest.Equal(dec("0.94")))

	escalate(t, policy, inv, date(2026, 2, 26), "MA-2026-00004")
	assert.Equal(t, invoicing.DunningLevelThird, inv.DunningLevel)

	n = escalate(t, policy, inv, date(2026, 3, 12), "MA-2026-00005")
	assert.Equal(t, invoicing.DunningLevelCollection, n.Level)
	assert.Equal(t, invoicing.InvoiceStatusInCollection, inv.Status)

	d = policy.Evaluate(inv, date(2026, 6, 1))
	assert.False(t, d.Escalate)
	assert.Equal(t, invoicing.SkipFinalLevel, d.Reason)
}

func TestDunningPolicy_OneLevelPerRun(t *testing.T) {
	company := newCompany(t)
	customer := newCustomer(t, company, invoicing.CustomerKindBusiness, "DE", "")
	policy := invoicing.NewDunningPolicy(company.Dunning)
	inv := issuedInvoice(t, company, customer)

	// 60 days overdue and never dunned: still starts with the reminder
	n := escalate(t, policy, inv, date(2026, 3, 16), "MA-2026-00001")
	assert.Equal(t, invoicing.DunningLevelReminder, n.Level)

	d := policy.Evaluate(inv, date(2026, 3, 17))
	assert.False(t, d.Escalate)
	assert.Equal(t, invoicing.SkipTooSoon, d.Reason)
	assert.Equal(t, invoicing.DunningLevelCollection, d.TargetLevel)

	d = policy.Evaluate(inv, date(2026, 3, 23))
	assert.True(t, d.Escalate)
	assert.Equal(t, invoicing.DunningLevelFirst, d.NextLevel)
}

func TestDunningPolicy_Skips(t *testing.T) {
	company := newCompany(t)
	business := newCustomer(t, company, invoicing.CustomerKindBusiness, "DE", "")
	asOf := date(2026, 2, 1)

	t.Run("blocked", func(t *testing.T) {
		inv := issuedInvoice(t, company, business)
		require.NoError(t, inv.BlockDunning("Reklamation"))
		d := invoicing.NewDunningPolicy(company.Dunning).Evaluate(inv, asOf)
		assert.False(t, d.Escalate)
		assert.Equal(t, invoicing.SkipBlocked, d.Reason)
	})

	t.Run("paid", func(t *testing.T) {
		inv := issuedInvoice(t, company, business)
		_, err := inv.RecordPayment(dec("119"), date(2026, 1, 10), invoicing.PaymentMethodBankTransfer, "")
		require.NoError(t, err)
		d := invoicing.NewDunningPolicy(company.Dunning).Evaluate(inv, asOf)
		assert.Equal(t, invoicing.SkipNotDunnable, d.Reason)
	})

	t.Run("not due", func(t *testing.T) {
		inv := issuedInvoice(t, company, business)
		d := invoicing.NewDunningPolicy(company.Dunning).Evaluate(inv, date(2026, 1, 15))
		assert.Equal(t, invoicing.SkipNotDue, d.Reason)
	})

	t.Run("disabled", func(t *testing.T) {
		s := invoicing.DefaultDunningSettings()
		s.Enabled = false
		d := invoicing.NewDunningPolicy(s).Evaluate(issuedInvoice(t, company, business), asOf)
		assert.Equal(t, invoicing.SkipDunningDisabled, d.Reason)
	})

	t.Run("draft", func(t *testing.T) {
		inv := draftInvoice(t, company, business, line("X", "1", "10", invoicing.TaxCategoryStandard))
		d := invoicing.NewDunningPolicy(company.Dunning).Evaluate(inv, asOf)
		assert.Equal(t, invoicing.SkipNotDunnable, d.Reason)
	})
}

func TestDunningPolicy_ConsumerTerms(t *testing.T) {
	company := newCompany(t)
	consumer := newCustomer(t, company, invoicing.CustomerKindConsumer, "DE", "")
	policy := invoicing.NewDunningPolicy(company.Dunning)
	inv := issuedInvoice(t, company, consumer)

	escalate(t, policy, inv, date(2026, 1, 22), "MA-2026-00001")
	n := escalate(t, policy, inv, date(2026, 1, 29), "MA-2026-00002")
	assert.True(t, n.Fee.Equal(dec("5")), "consumers owe no flat fee")
	assert.True(t, n.InterestRate.Equal(dec("6.27")))
	assert.True(t, n.Interest.Equal(dec("0.29")))
}

func TestInvoice_EscalateGuards(t *testing.T) {
	company := newCompany(t)
	customer := newCustomer(t, company, invoicing.CustomerKindBusiness, "DE", "")
	policy := invoicing.NewDunningPolicy(company.Dunning)

	t.Run("rejects skipped decision", func(t *testing.T) {
		inv := issuedInvoice(t, company, customer)
		d := policy.Evaluate(inv, date(2026, 1, 16))
		_, err := inv.Escalate(d, "MA-2026-00001", date(2026, 1, 16), 10)
		assert.Error(t, err)
	})

	t.Run("rejects level jumps", func(t *testing.T) {
		inv := issuedInvoice(t, company, customer)
		d := policy.Evaluate(inv, date(2026, 1, 22))
		d.NextLevel = invoicing.DunningLevelSecond
		_, err := inv.Escalate(d, "MA-2026-00001", date(2026, 1, 22), 10)
		assert.Equal(t, "INVALID_DUNNING_LEVEL", shared.ErrorCode(err))
	})

	t.Run("raises escalated event with notice", func(t *testing.T) {
		inv := issuedInvoice(t, company, customer)
		n := escalate(t, policy, inv, date(2026, 1, 22), "MA-2026-00001")
		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		e, ok := events[0].(*invoicing.InvoiceEscalatedEvent)
		require.True(t, ok)
		assert.Equal(t, n.ID, e.NoticeID)
		assert.Equal(t, invoicing.DunningLevelNone, e.PreviousLevel)
	})
}

func TestParseDunningLevel(t *testing.T) {
	for _, l := range []invoicing.DunningLevel{
		invoicing.DunningLevelNone, invoicing.DunningLevelReminder, invoicing.DunningLevelFirst,
		invoicing.DunningLevelSecond, invoicing.DunningLevelThird, invoicing.DunningLevelCollection,
	} {
		parsed, err := invoicing.ParseDunningLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, parsed)
	}
	_, err := invoicing.ParseDunningLevel("fourth_notice")
	assert.Error(t, err)
}

func TestComposeDunningLetter(t *testing.T) {
	company := newCompany(t)
	customer := newCustomer(t, company, invoicing.CustomerKindBusiness, "DE", "")
	policy := invoicing.NewDunningPolicy(company.Dunning)
	inv := issuedInvoice(t, company, customer)

	escalate(t, policy, inv, date(2026, 1, 22), "MA-2026-00001")
	n := escalate(t, policy, inv, date(2026, 1, 29), "MA-2026-00002")

	assert.Equal(t, "1. Mahnung zu Rechnung RE-2026-00001 vom 01.01.2026", n.Subject)
	assert.Contains(t, n.Body, "Offener Rechnungsbetrag: 119,00 €")
	assert.Contains(t, n.Body, "Mahngebühren: 45,00 €")
	assert.Contains(t, n.Body, "Verzugszinsen: 0,47 €")
	assert.Contains(t, n.Body, "Gesamtbetrag: 164,47 €")
	assert.Contains(t, n.Body, "bis zum 08.02.2026")
	assert.Contains(t, n.Body, "Muster GmbH")
}

func TestFormatEuro(t *testing.T) {
	assert.Equal(t, "1.234,50 €", invoicing.FormatEuro(dec("1234.5")))
	assert.Equal(t, "0,47 €", invoicing.FormatEuro(dec("0.47")))
}

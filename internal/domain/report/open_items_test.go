package report_test

import (
	"testing"
	"time"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketFor(t *testing.T) {
	tests := []struct {
		days int
		want report.AgingBucket
	}{
		{-5, report.AgingCurrent},
		{0, report.AgingCurrent},
		{1, report.Aging1To30},
		{30, report.Aging1To30},
		{31, report.Aging31To60},
		{60, report.Aging31To60},
		{61, report.Aging61To90},
		{90, report.Aging61To90},
		{91, report.AgingOver90},
		{400, report.AgingOver90},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, report.BucketFor(tt.days), "days=%d", tt.days)
	}
}

func openInvoice(number string, due time.Time, gross, paid int64) invoicing.Invoice {
	issue := due.AddDate(0, 0, -14)
	inv := invoicing.Invoice{
		Number:        number,
		Type:          invoicing.InvoiceTypeStandard,
		Status:        invoicing.InvoiceStatusOpen,
		CustomerID:    uuid.New(),
		Buyer:         invoicing.PartySnapshot{Name: "Kunde " + number},
		IssueDate:     &issue,
		DueDate:       &due,
		GrossTotal:    decimal.NewFromInt(gross),
		PaidPrincipal: decimal.NewFromInt(paid),
	}
	inv.ID = uuid.New()
	return inv
}

func TestBuildOpenItems(t *testing.T) {
	asOf := time.Date(2024, time.June, 30, 15, 0, 0, 0, time.UTC)
	tenantID := uuid.New()

	dunned := openInvoice("RE-2024-00001", time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), 1000, 0)
	dunned.DunningLevel = invoicing.DunningLevelSecond
	dunned.DunningFees = decimal.NewFromInt(55)
	dunned.AccruedInterest = decimal.RequireFromString("12.34")

	invoices := []invoicing.Invoice{
		openInvoice("RE-2024-00004", time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC), 200, 0),
		openInvoice("RE-2024-00003", time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), 300, 100),
		dunned,
		openInvoice("RE-2024-00002", time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC), 50, 50),
	}

	r := report.BuildOpenItems(tenantID, asOf, invoices)

	assert.Equal(t, time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC), r.AsOf)
	require.Len(t, r.Items, 3, "settled invoices are left out")
	assert.Equal(t, 3, r.TotalCount)

	oldest := r.Items[0]
	assert.Equal(t, "RE-2024-00001", oldest.Number)
	assert.Equal(t, 150, oldest.DaysOverdue)
	assert.Equal(t, report.AgingOver90, oldest.Bucket)
	assert.Equal(t, "second_notice", oldest.DunningLevel)
	assert.True(t, decimal.RequireFromString("1067.34").Equal(oldest.OpenTotal))

	assert.Equal(t, "RE-2024-00003", r.Items[1].Number)
	assert.Equal(t, report.Aging1To30, r.Items[1].Bucket)
	assert.True(t, decimal.NewFromInt(200).Equal(r.Items[1].OpenPrincipal))

	assert.Equal(t, report.AgingCurrent, r.Items[2].Bucket)
	assert.Zero(t, r.Items[2].DaysOverdue)

	require.Len(t, r.Buckets, len(report.AgingBuckets))
	byBucket := map[report.AgingBucket]report.BucketTotal{}
	for _, b := range r.Buckets {
		byBucket[b.Bucket] = b
	}
	assert.Equal(t, 1, byBucket[report.AgingCurrent].Count)
	assert.True(t, decimal.NewFromInt(200).Equal(byBucket[report.AgingCurrent].Amount))
	assert.Zero(t, byBucket[report.Aging31To60].Count)
	assert.True(t, byBucket[report.Aging61To90].Amount.IsZero())
	assert.True(t, decimal.RequireFromString("1467.34").Equal(r.Total))
}

func TestBuildOpenItems_Empty(t *testing.T) {
	r := report.BuildOpenItems(uuid.New(), time.Now(), nil)
	assert.Empty(t, r.Items)
	assert.True(t, r.Total.IsZero())
	assert.Len(t, r.Buckets, 5)
}

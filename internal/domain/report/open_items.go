package report

import (
	"sort"
	"time"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AgingBucket groups open items by how long they are past due
type AgingBucket string

const (
	AgingCurrent AgingBucket = "current"
	Aging1To30   AgingBucket = "1-30"
	Aging31To60  AgingBucket = "31-60"
	Aging61To90  AgingBucket = "61-90"
	AgingOver90  AgingBucket = "90+"
)

// AgingBuckets lists all buckets in ascending age
var AgingBuckets = []AgingBucket{AgingCurrent, Aging1To30, Aging31To60, Aging61To90, AgingOver90}

// BucketFor returns the bucket of an item that is daysOverdue days past due.
// Items not yet due are current.
func BucketFor(daysOverdue int) AgingBucket {
	switch {
	case daysOverdue <= 0:
		return AgingCurrent
	case daysOverdue <= 30:
		return Aging1To30
	case daysOverdue <= 60:
		return Aging31To60
	case daysOverdue <= 90:
		return Aging61To90
	default:
		return AgingOver90
	}
}

// OpenItem is a read model for one unpaid invoice
type OpenItem struct {
	InvoiceID      uuid.UUID       `json:"invoice_id"`
	Number         string          `json:"number"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	IssueDate      time.Time       `json:"issue_date"`
	DueDate        time.Time       `json:"due_date"`
	DaysOverdue    int             `json:"days_overdue"`
	Bucket         AgingBucket     `json:"bucket"`
	DunningLevel   string          `json:"dunning_level"`
	DunningBlocked bool            `json:"dunning_blocked"`
	GrossTotal     decimal.Decimal `json:"gross_total"`
	OpenPrincipal  decimal.Decimal `json:"open_principal"`
	OpenFees       decimal.Decimal `json:"open_fees"`
	OpenInterest   decimal.Decimal `json:"open_interest"`
	OpenTotal      decimal.Decimal `json:"open_total"`
}

// BucketTotal sums the open amounts of one aging bucket
type BucketTotal struct {
	Bucket AgingBucket     `json:"bucket"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// OpenItemsReport is the aging report of a tenant at a given date
type OpenItemsReport struct {
	TenantID   uuid.UUID       `json:"tenant_id"`
	AsOf       time.Time       `json:"as_of"`
	Items      []OpenItem      `json:"items"`
	Buckets    []BucketTotal   `json:"buckets"`
	TotalCount int             `json:"total_count"`
	Total      decimal.Decimal `json:"total"`
}

// BuildOpenItems turns unpaid invoices into an aging report. Invoices without
// an outstanding amount are left out. Items are ordered oldest first.
func BuildOpenItems(tenantID uuid.UUID, asOf time.Time, invoices []invoicing.Invoice) *OpenItemsReport {
	asOf = invoicing.DateOnly(asOf)
	report := &OpenItemsReport{
		TenantID: tenantID,
		AsOf:     asOf,
		Items:    make([]OpenItem, 0, len(invoices)),
		Total:    decimal.Zero,
	}

	totals := make(map[AgingBucket]*BucketTotal, len(AgingBuckets))
	for _, b := range AgingBuckets {
		totals[b] = &BucketTotal{Bucket: b, Amount: decimal.Zero}
	}

	for i := range invoices {
		inv := &invoices[i]
		open := inv.OutstandingTotal()
		if !open.IsPositive() {
			continue
		}
		days := inv.DaysOverdue(asOf)
		item := OpenItem{
			InvoiceID:      inv.ID,
			Number:         inv.Number,
			CustomerID:     inv.CustomerID,
			CustomerName:   inv.Buyer.Name,
			DaysOverdue:    days,
			Bucket:         BucketFor(days),
			DunningLevel:   inv.DunningLevel.String(),
			DunningBlocked: inv.DunningBlocked,
			GrossTotal:     inv.GrossTotal,
			OpenPrincipal:  inv.OutstandingPrincipal(),
			OpenFees:       inv.OutstandingFees(),
			OpenInterest:   inv.OutstandingInterest(),
			OpenTotal:      open,
		}
		if inv.IssueDate != nil {
			item.IssueDate = *inv.IssueDate
		}
		if inv.DueDate != nil {
			item.DueDate = *inv.DueDate
		}
		report.Items = append(report.Items, item)

		t := totals[item.Bucket]
		t.Count++
		t.Amount = t.Amount.Add(open)
		report.Total = report.Total.Add(open)
	}

	sort.SliceStable(report.Items, func(a, b int) bool {
		if report.Items[a].DaysOverdue != report.Items[b].DaysOverdue {
			return report.Items[a].DaysOverdue > report.Items[b].DaysOverdue
		}
		return report.Items[a].Number < report.Items[b].Number
	})

	report.Buckets = make([]BucketTotal, len(AgingBuckets))
	for i, b := range AgingBuckets {
		report.Buckets[i] = *totals[b]
	}
	report.TotalCount = len(report.Items)
	return report
}

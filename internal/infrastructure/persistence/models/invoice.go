package models

import (
	"time"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate. Lines,
// payments, tax groups and party snapshots are frozen documents and live in
// jsonb columns; everything the dunning engine filters on is a plain column.
type InvoiceModel struct {
	AggregateModel
	TenantID        uuid.UUID                     `gorm:"type:uuid;not null;uniqueIndex:idx_invoice_tenant_number,priority:1;index:idx_invoice_dunnable,priority:1"`
	Number          *string                       `gorm:"type:varchar(40);uniqueIndex:idx_invoice_tenant_number,priority:2"`
	Type            invoicing.InvoiceType         `gorm:"type:varchar(20);not null;default:'standard'"`
	Status          invoicing.InvoiceStatus       `gorm:"type:varchar(20);not null;default:'draft';index:idx_invoice_dunnable,priority:2"`
	CustomerID      uuid.UUID                     `gorm:"type:uuid;not null;index"`
	Seller          JSON[invoicing.PartySnapshot] `gorm:"type:jsonb;not null"`
	Buyer           JSON[invoicing.PartySnapshot] `gorm:"type:jsonb;not null"`
	IssueDate       *time.Time                    `gorm:"type:date;index"`
	ServiceDate     *time.Time                    `gorm:"type:date"`
	DueDate         *time.Time                    `gorm:"type:date;index:idx_invoice_dunnable,priority:3"`
	PaymentTermDays int                           `gorm:"not null;default:14"`
	RequestedRegime invoicing.TaxRegime           `gorm:"type:varchar(20)"`
	TaxRegime       invoicing.TaxRegime           `gorm:"type:varchar(20)"`
	TaxNote         string                        `gorm:"type:varchar(200)"`
	Lines           invoicing.InvoiceLines        `gorm:"type:jsonb;not null"`
	NetTotal        decimal.Decimal               `gorm:"type:decimal(18,2);not null;default:0"`
	TaxTotal        decimal.Decimal               `gorm:"type:decimal(18,2);not null;default:0"`
	GrossTotal      decimal.Decimal               `gorm:"type:decimal(18,2);not null;default:0"`
	TaxBreakdown    invoicing.TaxBreakdown        `gorm:"type:jsonb;not null"`
	Notes           string                        `gorm:"type:text"`

	Payments      invoicing.Payments `gorm:"type:jsonb;not null"`
	PaidPrincipal decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	PaidFees      decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	PaidInterest  decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	PaidAt        *time.Time         `gorm:"type:date"`

	DunningLevel         invoicing.DunningLevel `gorm:"not null;default:0"`
	DunningFees          decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0"`
	AccruedInterest      decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0"`
	InterestAccruedUntil *time.Time             `gorm:"type:date"`
	FlatFeeCharged       bool                   `gorm:"not null;default:false"`
	LastDunnedAt         *time.Time             `gorm:"type:date"`
	DunningBlocked       bool                   `gorm:"not null;default:false"`
	DunningBlockReason   string                 `gorm:"type:varchar(500)"`

	CancelsInvoiceID     *uuid.UUID `gorm:"type:uuid;index"`
	CancelledByInvoiceID *uuid.UUID `gorm:"type:uuid"`
	CorrectsInvoiceID    *uuid.UUID `gorm:"type:uuid"`
	OfferID              *uuid.UUID `gorm:"type:uuid"`
	CancelReason         string     `gorm:"type:varchar(500)"`
	CancelledAt          *time.Time
	WriteOffReason       string `gorm:"type:varchar(500)"`
	WrittenOffAt         *time.Time
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *invoicing.Invoice {
	inv := &invoicing.Invoice{
		TenantAggregateRoot:  m.ToTenantRoot(m.TenantID),
		Number:               derefString(m.Number),
		Type:                 m.Type,
		Status:               m.Status,
		CustomerID:           m.CustomerID,
		Seller:               m.Seller.Data,
		Buyer:                m.Buyer.Data,
		IssueDate:            dateOnly(m.IssueDate),
		ServiceDate:          dateOnly(m.ServiceDate),
		DueDate:              dateOnly(m.DueDate),
		PaymentTermDays:      m.PaymentTermDays,
		RequestedRegime:      m.RequestedRegime,
		TaxRegime:            m.TaxRegime,
		TaxNote:              m.TaxNote,
		Lines:                m.Lines,
		NetTotal:             m.NetTotal,
		TaxTotal:             m.TaxTotal,
		GrossTotal:           m.GrossTotal,
		TaxBreakdown:         m.TaxBreakdown,
		Notes:                m.Notes,
		Payments:             m.Payments,
		PaidPrincipal:        m.PaidPrincipal,
		PaidFees:             m.PaidFees,
		PaidInterest:         m.PaidInterest,
		PaidAt:               dateOnly(m.PaidAt),
		DunningLevel:         m.DunningLevel,
		DunningFees:          m.DunningFees,
		AccruedInterest:      m.AccruedInterest,
		InterestAccruedUntil: dateOnly(m.InterestAccruedUntil),
		FlatFeeCharged:       m.FlatFeeCharged,
		LastDunnedAt:         dateOnly(m.LastDunnedAt),
		DunningBlocked:       m.DunningBlocked,
		DunningBlockReason:   m.DunningBlockReason,
		CancelsInvoiceID:     m.CancelsInvoiceID,
		CancelledByInvoiceID: m.CancelledByInvoiceID,
		CorrectsInvoiceID:    m.CorrectsInvoiceID,
		OfferID:              m.OfferID,
		CancelReason:         m.CancelReason,
		CancelledAt:          m.CancelledAt,
		WriteOffReason:       m.WriteOffReason,
		WrittenOffAt:         m.WrittenOffAt,
	}
	if inv.Lines == nil {
		inv.Lines = invoicing.InvoiceLines{}
	}
	if inv.Payments == nil {
		inv.Payments = invoicing.Payments{}
	}
	return inv
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(inv *invoicing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.TenantID = inv.TenantID
	m.Number = nullableString(inv.Number)
	m.Type = inv.Type
	m.Status = inv.Status
	m.CustomerID = inv.CustomerID
	m.Seller = NewJSON(inv.Seller)
	m.Buyer = NewJSON(inv.Buyer)
	m.IssueDate = inv.IssueDate
	m.ServiceDate = inv.ServiceDate
	m.DueDate = inv.DueDate
	m.PaymentTermDays = inv.PaymentTermDays
	m.RequestedRegime = inv.RequestedRegime
	m.TaxRegime = inv.TaxRegime
	m.TaxNote = inv.TaxNote
	m.Lines = inv.Lines
	m.NetTotal = inv.NetTotal
	m.TaxTotal = inv.TaxTotal
	m.GrossTotal = inv.GrossTotal
	m.TaxBreakdown = inv.TaxBreakdown
	m.Notes = inv.Notes
	m.Payments = inv.Payments
	m.PaidPrincipal = inv.PaidPrincipal
	m.PaidFees = inv.PaidFees
	m.PaidInterest = inv.PaidInterest
	m.PaidAt = inv.PaidAt
	m.DunningLevel = inv.DunningLevel
	m.DunningFees = inv.DunningFees
	m.AccruedInterest = inv.AccruedInterest
	m.InterestAccruedUntil = inv.InterestAccruedUntil
	m.FlatFeeCharged = inv.FlatFeeCharged
	m.LastDunnedAt = inv.LastDunnedAt
	m.DunningBlocked = inv.DunningBlocked
	m.DunningBlockReason = inv.DunningBlockReason
	m.CancelsInvoiceID = inv.CancelsInvoiceID
	m.CancelledByInvoiceID = inv.CancelledByInvoiceID
	m.CorrectsInvoiceID = inv.CorrectsInvoiceID
	m.OfferID = inv.OfferID
	m.CancelReason = inv.CancelReason
	m.CancelledAt = inv.CancelledAt
	m.WriteOffReason = inv.WriteOffReason
	m.WrittenOffAt = inv.WrittenOffAt
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice
func InvoiceModelFromDomain(inv *invoicing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// dateOnly normalizes a date column to midnight UTC; drivers return DATE
// values in varying locations.
func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := invoicing.DateOnly(*t)
	return &d
}

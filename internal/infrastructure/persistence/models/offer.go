package models

import (
	"time"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfferModel is the persistence model for the Offer aggregate
type OfferModel struct {
	AggregateModel
	TenantID     uuid.UUID                     `gorm:"type:uuid;not null;uniqueIndex:idx_offer_tenant_number,priority:1"`
	Number       *string                       `gorm:"type:varchar(40);uniqueIndex:idx_offer_tenant_number,priority:2"`
	CustomerID   uuid.UUID                     `gorm:"type:uuid;not null;index"`
	Buyer        JSON[invoicing.PartySnapshot] `gorm:"type:jsonb;not null"`
	Title        string                        `gorm:"type:varchar(200);not null"`
	Lines        invoicing.InvoiceLines        `gorm:"type:jsonb;not null"`
	TaxRegime    invoicing.TaxRegime           `gorm:"type:varchar(20);not null"`
	NetTotal     decimal.Decimal               `gorm:"type:decimal(18,2);not null"`
	TaxTotal     decimal.Decimal               `gorm:"type:decimal(18,2);not null"`
	GrossTotal   decimal.Decimal               `gorm:"type:decimal(18,2);not null"`
	ValidUntil   time.Time                     `gorm:"type:date;not null"`
	Status       invoicing.OfferStatus         `gorm:"type:varchar(20);not null;index"`
	SentAt       *time.Time                    `gorm:"type:date"`
	AcceptedAt   *time.Time                    `gorm:"type:date"`
	RejectedAt   *time.Time                    `gorm:"type:date"`
	RejectReason string                        `gorm:"type:varchar(500)"`
	InvoiceID    *uuid.UUID                    `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (OfferModel) TableName() string {
	return "offers"
}

// ToDomain converts the persistence model to a domain Offer
func (m *OfferModel) ToDomain() *invoicing.Offer {
	return &invoicing.Offer{
		TenantAggregateRoot: m.ToTenantRoot(m.TenantID),
		Number:              derefString(m.Number),
		CustomerID:          m.CustomerID,
		Buyer:               m.Buyer.Data,
		Title:               m.Title,
		Lines:               m.Lines,
		TaxRegime:           m.TaxRegime,
		NetTotal:            m.NetTotal,
		TaxTotal:            m.TaxTotal,
		GrossTotal:          m.GrossTotal,
		ValidUntil:          invoicing.DateOnly(m.ValidUntil),
		Status:              m.Status,
		SentAt:              dateOnly(m.SentAt),
		AcceptedAt:          dateOnly(m.AcceptedAt),
		RejectedAt:          dateOnly(m.RejectedAt),
		RejectReason:        m.RejectReason,
		InvoiceID:           m.InvoiceID,
	}
}

// FromDomain populates the persistence model from a domain Offer
func (m *OfferModel) FromDomain(o *invoicing.Offer) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.TenantID = o.TenantID
	m.Number = nullableString(o.Number)
	m.CustomerID = o.CustomerID
	m.Buyer = NewJSON(o.Buyer)
	m.Title = o.Title
	m.Lines = o.Lines
	m.TaxRegime = o.TaxRegime
	m.NetTotal = o.NetTotal
	m.TaxTotal = o.TaxTotal
	m.GrossTotal = o.GrossTotal
	m.ValidUntil = o.ValidUntil
	m.Status = o.Status
	m.SentAt = o.SentAt
	m.AcceptedAt = o.AcceptedAt
	m.RejectedAt = o.RejectedAt
	m.RejectReason = o.RejectReason
	m.InvoiceID = o.InvoiceID
}

// OfferModelFromDomain creates a new persistence model from a domain Offer
func OfferModelFromDomain(o *invoicing.Offer) *OfferModel {
	m := &OfferModel{}
	m.FromDomain(o)
	return m
}

// ExpenseModel is the persistence model for the Expense aggregate
type ExpenseModel struct {
	TenantAggregateModel
	Date        time.Time                 `gorm:"type:date;not null;index"`
	Vendor      string                    `gorm:"type:varchar(200);not null"`
	Category    invoicing.ExpenseCategory `gorm:"type:varchar(20);not null;index"`
	Description string                    `gorm:"type:text"`
	NetAmount   decimal.Decimal           `gorm:"type:decimal(18,2);not null"`
	TaxRate     decimal.Decimal           `gorm:"type:decimal(5,2);not null"`
	TaxAmount   decimal.Decimal           `gorm:"type:decimal(18,2);not null"`
	GrossAmount decimal.Decimal           `gorm:"type:decimal(18,2);not null"`
	ReceiptKey  string                    `gorm:"type:varchar(300)"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense
func (m *ExpenseModel) ToDomain() *invoicing.Expense {
	return &invoicing.Expense{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Date:                invoicing.DateOnly(m.Date),
		Vendor:              m.Vendor,
		Category:            m.Category,
		Description:         m.Description,
		NetAmount:           m.NetAmount,
		TaxRate:             m.TaxRate,
		TaxAmount:           m.TaxAmount,
		GrossAmount:         m.GrossAmount,
		ReceiptKey:          m.ReceiptKey,
	}
}

// FromDomain populates the persistence model from a domain Expense
func (m *ExpenseModel) FromDomain(e *invoicing.Expense) {
	m.FromDomainTenantAggregateRoot(e.TenantAggregateRoot)
	m.Date = e.Date
	m.Vendor = e.Vendor
	m.Category = e.Category
	m.Description = e.Description
	m.NetAmount = e.NetAmount
	m.TaxRate = e.TaxRate
	m.TaxAmount = e.TaxAmount
	m.GrossAmount = e.GrossAmount
	m.ReceiptKey = e.ReceiptKey
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense
func ExpenseModelFromDomain(e *invoicing.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}

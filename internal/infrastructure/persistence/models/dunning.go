package models

import (
	"time"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DunningNoticeModel is the persistence model for an issued dunning notice.
// Rows are insert-only.
type DunningNoticeModel struct {
	BaseModel
	TenantID             uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_notice_tenant_number,priority:1"`
	InvoiceID            uuid.UUID              `gorm:"type:uuid;not null;index"`
	InvoiceNumber        string                 `gorm:"type:varchar(40);not null"`
	CustomerID           uuid.UUID              `gorm:"type:uuid;not null"`
	RunID                *uuid.UUID             `gorm:"type:uuid;index"`
	Number               string                 `gorm:"type:varchar(40);not null;uniqueIndex:idx_notice_tenant_number,priority:2"`
	Level                invoicing.DunningLevel `gorm:"not null"`
	IssuedOn             time.Time              `gorm:"type:date;not null"`
	PaymentDeadline      time.Time              `gorm:"type:date;not null"`
	DaysOverdue          int                    `gorm:"not null"`
	OutstandingPrincipal decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	Fee                  decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	AccumulatedFees      decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	Interest             decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	AccruedInterest      decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	InterestRate         decimal.Decimal        `gorm:"type:decimal(6,3);not null"`
	TotalDue             decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	Subject              string                 `gorm:"type:varchar(300);not null"`
	Body                 string                 `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (DunningNoticeModel) TableName() string {
	return "dunning_notices"
}

// ToDomain converts the persistence model to a domain DunningNotice
func (m *DunningNoticeModel) ToDomain() *invoicing.DunningNotice {
	return &invoicing.DunningNotice{
		BaseEntity:           m.BaseModel.ToDomain(),
		TenantID:             m.TenantID,
		InvoiceID:            m.InvoiceID,
		InvoiceNumber:        m.InvoiceNumber,
		CustomerID:           m.CustomerID,
		RunID:                m.RunID,
		Number:               m.Number,
		Level:                m.Level,
		IssuedOn:             invoicing.DateOnly(m.IssuedOn),
		PaymentDeadline:      invoicing.DateOnly(m.PaymentDeadline),
		DaysOverdue:          m.DaysOverdue,
		OutstandingPrincipal: m.OutstandingPrincipal,
		Fee:                  m.Fee,
		AccumulatedFees:      m.AccumulatedFees,
		Interest:             m.Interest,
		AccruedInterest:      m.AccruedInterest,
		InterestRate:         m.InterestRate,
		TotalDue:             m.TotalDue,
		Subject:              m.Subject,
		Body:                 m.Body,
	}
}

// DunningNoticeModelFromDomain creates a new persistence model from a domain DunningNotice
func DunningNoticeModelFromDomain(n *invoicing.DunningNotice) *DunningNoticeModel {
	m := &DunningNoticeModel{
		TenantID:             n.TenantID,
		InvoiceID:            n.InvoiceID,
		InvoiceNumber:        n.InvoiceNumber,
		CustomerID:           n.CustomerID,
		RunID:                n.RunID,
		Number:               n.Number,
		Level:                n.Level,
		IssuedOn:             n.IssuedOn,
		PaymentDeadline:      n.PaymentDeadline,
		DaysOverdue:          n.DaysOverdue,
		OutstandingPrincipal: n.OutstandingPrincipal,
		Fee:                  n.Fee,
		AccumulatedFees:      n.AccumulatedFees,
		Interest:             n.Interest,
		AccruedInterest:      n.AccruedInterest,
		InterestRate:         n.InterestRate,
		TotalDue:             n.TotalDue,
		Subject:              n.Subject,
		Body:                 n.Body,
	}
	m.FromDomainBaseEntity(n.BaseEntity)
	return m
}

// DunningRunModel is the persistence model for a dunning run. The unique
// index on (tenant_id, run_date) guarantees one run per company and day.
type DunningRunModel struct {
	BaseModel
	TenantID   uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_dunning_run_tenant_date,priority:1"`
	RunDate    time.Time                   `gorm:"type:date;not null;uniqueIndex:idx_dunning_run_tenant_date,priority:2"`
	Trigger    invoicing.DunningRunTrigger `gorm:"type:varchar(20);not null"`
	Status     invoicing.DunningRunStatus  `gorm:"type:varchar(20);not null"`
	Evaluated  int                         `gorm:"not null;default:0"`
	Escalated  int                         `gorm:"not null;default:0"`
	Skipped    int                         `gorm:"not null;default:0"`
	Failed     int                         `gorm:"not null;default:0"`
	StartedAt  time.Time                   `gorm:"not null"`
	FinishedAt *time.Time
	Error      string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DunningRunModel) TableName() string {
	return "dunning_runs"
}

// ToDomain converts the persistence model to a domain DunningRun
func (m *DunningRunModel) ToDomain() *invoicing.DunningRun {
	return &invoicing.DunningRun{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		RunDate:    invoicing.DateOnly(m.RunDate),
		Trigger:    m.Trigger,
		Status:     m.Status,
		Evaluated:  m.Evaluated,
		Escalated:  m.Escalated,
		Skipped:    m.Skipped,
		Failed:     m.Failed,
		StartedAt:  m.StartedAt,
		FinishedAt: m.FinishedAt,
		Error:      m.Error,
	}
}

// DunningRunModelFromDomain creates a new persistence model from a domain DunningRun
func DunningRunModelFromDomain(r *invoicing.DunningRun) *DunningRunModel {
	m := &DunningRunModel{
		TenantID:   r.TenantID,
		RunDate:    r.RunDate,
		Trigger:    r.Trigger,
		Status:     r.Status,
		Evaluated:  r.Evaluated,
		Escalated:  r.Escalated,
		Skipped:    r.Skipped,
		Failed:     r.Failed,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Error:      r.Error,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

package invoicing

import (
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeCompany  = "Company"
	AggregateTypeCustomer = "Customer"
	AggregateTypeInvoice  = "Invoice"
	AggregateTypeOffer    = "Offer"
)

// Event type constants
const (
	EventTypeCompanyCreated         = "CompanyCreated"
	EventTypeDunningSettingsChanged = "DunningSettingsChanged"
	EventTypeCustomerCreated        = "CustomerCreated"
	EventTypeInvoiceIssued          = "InvoiceIssued"
	EventTypeInvoicePaymentRecorded = "InvoicePaymentRecorded"
	EventTypeInvoicePaid            = "InvoicePaid"
	EventTypeInvoiceCancelled       = "InvoiceCancelled"
	EventTypeInvoiceWrittenOff      = "InvoiceWrittenOff"
	EventTypeInvoiceEscalated       = "InvoiceEscalated"
	EventTypeOfferAccepted          = "OfferAccepted"
	EventTypeOfferConverted         = "OfferConverted"
)

// CompanyCreatedEvent is published when a company (tenant) is registered
type CompanyCreatedEvent struct {
	shared.BaseDomainEvent
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
}

// NewCompanyCreatedEvent creates a new CompanyCreatedEvent
func NewCompanyCreatedEvent(c *Company) *CompanyCreatedEvent {
	return &CompanyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyCreated, AggregateTypeCompany, c.ID, c.ID),
		CompanyID:       c.ID,
		Name:            c.Name,
	}
}

// DunningSettingsChangedEvent is published when a company changes its dunning configuration
type DunningSettingsChangedEvent struct {
	shared.BaseDomainEvent
	Settings DunningSettings `json:"settings"`
}

// NewDunningSettingsChangedEvent creates a new DunningSettingsChangedEvent
func NewDunningSettingsChangedEvent(c *Company) *DunningSettingsChangedEvent {
	return &DunningSettingsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDunningSettingsChanged, AggregateTypeCompany, c.ID, c.ID),
		Settings:        c.Dunning,
	}
}

// CustomerCreatedEvent is published when a customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID    `json:"customer_id"`
	Number     string       `json:"number"`
	Name       string       `json:"name"`
	Kind       CustomerKind `json:"kind"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, AggregateTypeCustomer, c.ID, c.TenantID),
		CustomerID:      c.ID,
		Number:          c.Number,
		Name:            c.Name,
		Kind:            c.Kind,
	}
}

// InvoiceIssuedEvent is published when an invoice or cancellation invoice receives its number
type InvoiceIssuedEvent struct {
	shared.BaseDomainEvent
	InvoiceID  uuid.UUID       `json:"invoice_id"`
	Number     string          `json:"number"`
	Type       InvoiceType     `json:"type"`
	CustomerID uuid.UUID       `json:"customer_id"`
	GrossTotal decimal.Decimal `json:"gross_total"`
	TaxRegime  TaxRegime       `json:"tax_regime"`
}

// NewInvoiceIssuedEvent creates a new InvoiceIssuedEvent
func NewInvoiceIssuedEvent(inv *Invoice) *InvoiceIssuedEvent {
	return &InvoiceIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceIssued, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceID:       inv.ID,
		Number:          inv.Number,
		Type:            inv.Type,
		CustomerID:      inv.CustomerID,
		GrossTotal:      inv.GrossTotal,
		TaxRegime:       inv.TaxRegime,
	}
}

// InvoicePaymentRecordedEvent is published for every booked payment
type InvoicePaymentRecordedEvent struct {
	shared.BaseDomainEvent
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	Number      string          `json:"number"`
	PaymentID   uuid.UUID       `json:"payment_id"`
	Amount      decimal.Decimal `json:"amount"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// NewInvoicePaymentRecordedEvent creates a new InvoicePaymentRecordedEvent
func NewInvoicePaymentRecordedEvent(inv *Invoice, p *Payment) *InvoicePaymentRecordedEvent {
	return &InvoicePaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaymentRecorded, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceID:       inv.ID,
		Number:          inv.Number,
		PaymentID:       p.ID,
		Amount:          p.Amount,
		Outstanding:     inv.OutstandingTotal(),
	}
}

// InvoicePaidEvent is published when nothing is owed any more
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Number    string          `json:"number"`
	PaidTotal decimal.Decimal `json:"paid_total"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(inv *Invoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceID:       inv.ID,
		Number:          inv.Number,
		PaidTotal:       inv.PaidTotal(),
	}
}

// InvoiceCancelledEvent is published when an invoice is cancelled by a Stornorechnung
type InvoiceCancelledEvent struct {
	shared.BaseDomainEvent
	InvoiceID      uuid.UUID `json:"invoice_id"`
	Number         string    `json:"number"`
	CancellationID uuid.UUID `json:"cancellation_id"`
	CancellationNo string    `json:"cancellation_number"`
	Reason         string    `json:"reason"`
}

// NewInvoiceCancelledEvent creates a new InvoiceCancelledEvent
func NewInvoiceCancelledEvent(inv, storno *Invoice) *InvoiceCancelledEvent {
	return &InvoiceCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCancelled, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceID:       inv.ID,
		Number:          inv.Number,
		CancellationID:  storno.ID,
		CancellationNo:  storno.Number,
		Reason:          inv.CancelReason,
	}
}

// InvoiceWrittenOffEvent is published when an open balance is written off
type InvoiceWrittenOffEvent struct {
	shared.BaseDomainEvent
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Number    string          `json:"number"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
}

// NewInvoiceWrittenOffEvent creates a new InvoiceWrittenOffEvent
func NewInvoiceWrittenOffEvent(inv *Invoice, amount decimal.Decimal) *InvoiceWrittenOffEvent {
	return &InvoiceWrittenOffEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceWrittenOff, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceID:       inv.ID,
		Number:          inv.Number,
		Amount:          amount,
		Reason:          inv.WriteOffReason,
	}
}

// InvoiceEscalatedEvent is published when a dunning notice is issued
type InvoiceEscalatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	Number        string          `json:"number"`
	PreviousLevel DunningLevel    `json:"previous_level"`
	Level         DunningLevel    `json:"level"`
	NoticeID      uuid.UUID       `json:"notice_id"`
	NoticeNumber  string          `json:"notice_number"`
	TotalDue      decimal.Decimal `json:"total_due"`
	Notice        *DunningNotice  `json:"-"`
}

// NewInvoiceEscalatedEvent creates a new InvoiceEscalatedEvent
func NewInvoiceEscalatedEvent(inv *Invoice, previous DunningLevel, notice *DunningNotice) *InvoiceEscalatedEvent {
	return &InvoiceEscalatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceEscalated, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceID:       inv.ID,
		Number:          inv.Number,
		PreviousLevel:   previous,
		Level:           notice.Level,
		NoticeID:        notice.ID,
		NoticeNumber:    notice.Number,
		TotalDue:        notice.TotalDue,
		Notice:          notice,
	}
}

// OfferAcceptedEvent is published when a customer accepts an offer
type OfferAcceptedEvent struct {
	shared.BaseDomainEvent
	OfferID    uuid.UUID       `json:"offer_id"`
	Number     string          `json:"number"`
	GrossTotal decimal.Decimal `json:"gross_total"`
}

// NewOfferAcceptedEvent creates a new OfferAcceptedEvent
func NewOfferAcceptedEvent(o *Offer) *OfferAcceptedEvent {
	return &OfferAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOfferAccepted, AggregateTypeOffer, o.ID, o.TenantID),
		OfferID:         o.ID,
		Number:          o.Number,
		GrossTotal:      o.GrossTotal,
	}
}

// OfferConvertedEvent is published when an offer becomes an invoice draft
type OfferConvertedEvent struct {
	shared.BaseDomainEvent
	OfferID   uuid.UUID `json:"offer_id"`
	Number    string    `json:"number"`
	InvoiceID uuid.UUID `json:"invoice_id"`
}

// NewOfferConvertedEvent creates a new OfferConvertedEvent
func NewOfferConvertedEvent(o *Offer) *OfferConvertedEvent {
	e := &OfferConvertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOfferConverted, AggregateTypeOffer, o.ID, o.TenantID),
		OfferID:         o.ID,
		Number:          o.Number,
	}
	if o.InvoiceID != nil {
		e.InvoiceID = *o.InvoiceID
	}
	return e
}

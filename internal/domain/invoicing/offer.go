package invoicing

import (
	"fmt"
	"strings"
	"time"

	"github.com/faktura/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfferStatus represents the lifecycle of a quote (Angebot)
type OfferStatus string

const (
	OfferStatusDraft     OfferStatus = "draft"
	OfferStatusSent      OfferStatus = "sent"
	OfferStatusAccepted  OfferStatus = "accepted"
	OfferStatusRejected  OfferStatus = "rejected"
	OfferStatusConverted OfferStatus = "converted"
)

// Offer is a quote that can be converted into an invoice
type Offer struct {
	shared.TenantAggregateRoot
	Number       string
	CustomerID   uuid.UUID
	Buyer        PartySnapshot
	Title        string
	Lines        InvoiceLines
	TaxRegime    TaxRegime
	NetTotal     decimal.Decimal
	TaxTotal     decimal.Decimal
	GrossTotal   decimal.Decimal
	ValidUntil   time.Time
	Status       OfferStatus
	SentAt       *time.Time
	AcceptedAt   *time.Time
	RejectedAt   *time.Time
	RejectReason string
	InvoiceID    *uuid.UUID
}

// NewOffer creates a draft offer priced for the customer
func NewOffer(company *Company, customer *Customer, title string, lines InvoiceLines, validUntil time.Time) (*Offer, error) {
	if customer == nil || customer.TenantID != company.ID {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer does not belong to the company")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_OFFER_TITLE", "Offer title cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("OFFER_EMPTY", "An offer needs at least one line")
	}
	valid, err := ValidateLines(lines)
	if err != nil {
		return nil, err
	}
	o := &Offer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(company.ID),
		CustomerID:          customer.ID,
		Buyer:               customer.Snapshot(),
		Title:               title,
		ValidUntil:          DateOnly(validUntil),
		Status:              OfferStatusDraft,
	}
	o.TaxRegime = DetermineTaxRegime(company, customer.TaxParty(), "")
	priced, totals := CalculateTotals(valid, o.TaxRegime, company.TaxRates)
	o.Lines = priced
	o.NetTotal = totals.Net
	o.TaxTotal = totals.Tax
	o.GrossTotal = totals.Gross
	return o, nil
}

// IsExpired reports whether asOf lies after the validity date
func (o *Offer) IsExpired(asOf time.Time) bool {
	return DateOnly(asOf).After(o.ValidUntil)
}

// EffectiveStatus reports expired for sent offers past their validity
func (o *Offer) EffectiveStatus(asOf time.Time) string {
	if o.Status == OfferStatusSent && o.IsExpired(asOf) {
		return "expired"
	}
	return string(o.Status)
}

// Send numbers the offer and marks it as sent
func (o *Offer) Send(number string, sentOn time.Time) error {
	if o.Status != OfferStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send offer in %s status", o.Status))
	}
	if strings.TrimSpace(number) == "" {
		return shared.NewDomainError("INVALID_OFFER_NUMBER", "Offer number cannot be empty")
	}
	if o.IsExpired(sentOn) {
		return shared.NewDomainError("OFFER_EXPIRED", "Offer validity date lies in the past")
	}
	sent := DateOnly(sentOn)
	o.Number = number
	o.Status = OfferStatusSent
	o.SentAt = &sent
	o.IncrementVersion()
	return nil
}

// Accept records the customer's acceptance
func (o *Offer) Accept(on time.Time) error {
	if o.Status != OfferStatusSent {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot accept offer in %s status", o.Status))
	}
	if o.IsExpired(on) {
		return shared.NewDomainError("OFFER_EXPIRED", "Offer has expired")
	}
	accepted := DateOnly(on)
	o.Status = OfferStatusAccepted
	o.AcceptedAt = &accepted
	o.IncrementVersion()
	o.AddDomainEvent(NewOfferAcceptedEvent(o))
	return nil
}

// Reject records the customer's rejection
func (o *Offer) Reject(on time.Time, reason string) error {
	if o.Status != OfferStatusSent {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject offer in %s status", o.Status))
	}
	rejected := DateOnly(on)
	o.Status = OfferStatusRejected
	o.RejectedAt = &rejected
	o.RejectReason = strings.TrimSpace(reason)
	o.IncrementVersion()
	return nil
}

// ConvertToInvoice creates a draft invoice from an accepted offer
func (o *Offer) ConvertToInvoice(company *Company, customer *Customer) (*Invoice, error) {
	if o.Status != OfferStatusAccepted {
		return nil, shared.NewDomainError("INVALID_STATE", "Only accepted offers can be converted")
	}
	inv, err := NewDraftInvoice(o.TenantID, customer, customer.EffectivePaymentTerms(company.DefaultPaymentTermDays))
	if err != nil {
		return nil, err
	}
	lines := make(InvoiceLines, len(o.Lines))
	copy(lines, o.Lines)
	inv.Lines = lines
	inv.Notes = fmt.Sprintf("Gemäß Angebot %s", o.Number)
	offerID := o.ID
	inv.OfferID = &offerID
	inv.Reprice(company, customer)

	invoiceID := inv.ID
	o.Status = OfferStatusConverted
	o.InvoiceID = &invoiceID
	o.IncrementVersion()
	o.AddDomainEvent(NewOfferConvertedEvent(o))
	return inv, nil
}

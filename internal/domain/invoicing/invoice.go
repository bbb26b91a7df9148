package invoicing

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes regular invoices from cancellation invoices
type InvoiceType string

const (
	InvoiceTypeStandard     InvoiceType = "standard"
	InvoiceTypeCancellation InvoiceType = "cancellation" // Stornorechnung
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusOpen          InvoiceStatus = "open"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusCancelled     InvoiceStatus = "cancelled"
	InvoiceStatusInCollection  InvoiceStatus = "in_collection"
	InvoiceStatusWrittenOff    InvoiceStatus = "written_off"
	InvoiceStatusSettled       InvoiceStatus = "settled" // cancellation invoices, nothing payable
)

// IsValid checks if the status is known
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusOpen, InvoiceStatusPartiallyPaid, InvoiceStatusPaid,
		InvoiceStatusCancelled, InvoiceStatusInCollection, InvoiceStatusWrittenOff, InvoiceStatusSettled:
		return true
	}
	return false
}

// String returns the string representation
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsIssued reports whether the invoice has left draft and is therefore immutable
func (s InvoiceStatus) IsIssued() bool {
	return s != InvoiceStatusDraft && s != ""
}

// IsTerminal returns true if no further transitions are possible
func (s InvoiceStatus) IsTerminal() bool {
	switch s {
	case InvoiceStatusPaid, InvoiceStatusCancelled, InvoiceStatusWrittenOff, InvoiceStatusSettled:
		return true
	}
	return false
}

// CanReceivePayment returns true if payments may be recorded
func (s InvoiceStatus) CanReceivePayment() bool {
	return s == InvoiceStatusOpen || s == InvoiceStatusPartiallyPaid || s == InvoiceStatusInCollection
}

// IsDunnable returns true if the dunning engine may escalate the invoice
func (s InvoiceStatus) IsDunnable() bool {
	return s == InvoiceStatusOpen || s == InvoiceStatusPartiallyPaid
}

// InvoiceLine is a single position of an invoice or offer
type InvoiceLine struct {
	Position        int             `json:"position"`
	ProductID       *uuid.UUID      `json:"product_id,omitempty"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxCategory     TaxCategory     `json:"tax_category"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	NetAmount       decimal.Decimal `json:"net_amount"`
}

func (l InvoiceLine) computeNet() decimal.Decimal {
	net := l.Quantity.Mul(l.UnitPrice)
	if !l.DiscountPercent.IsZero() {
		factor := decimal.NewFromInt(100).Sub(l.DiscountPercent).Div(decimal.NewFromInt(100))
		net = net.Mul(factor)
	}
	return net.Round(2)
}

func (l InvoiceLine) validate() error {
	if strings.TrimSpace(l.Description) == "" {
		return shared.NewDomainError("INVALID_LINE", "Line description cannot be empty")
	}
	if l.Quantity.IsZero() {
		return shared.NewDomainError("INVALID_LINE", "Line quantity cannot be zero")
	}
	if l.UnitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_LINE", "Line unit price cannot be negative")
	}
	if l.DiscountPercent.IsNegative() || l.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_LINE", "Line discount must be between 0 and 100 percent")
	}
	if l.TaxCategory != "" && !l.TaxCategory.IsValid() {
		return shared.NewDomainError("INVALID_TAX_CATEGORY", "Tax category must be standard or reduced")
	}
	return nil
}

// InvoiceLines is a slice of lines stored as JSON
type InvoiceLines []InvoiceLine

// Value implements driver.Valuer for JSON storage
func (l InvoiceLines) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for JSON storage
func (l *InvoiceLines) Scan(value any) error {
	return scanJSON(value, l, "InvoiceLines")
}

// ValidateLines checks every line and defaults missing tax categories
func ValidateLines(lines InvoiceLines) (InvoiceLines, error) {
	out := make(InvoiceLines, len(lines))
	for i, l := range lines {
		if err := l.validate(); err != nil {
			return nil, shared.NewDomainError("INVALID_LINE", fmt.Sprintf("Line %d: %s", i+1, err.Error()))
		}
		if l.TaxCategory == "" {
			l.TaxCategory = TaxCategoryStandard
		}
		out[i] = l
	}
	return out, nil
}

// PaymentMethod is how a payment was received
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodDirectDebit  PaymentMethod = "direct_debit"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodPayPal       PaymentMethod = "paypal"
)

// IsValid checks if the method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodDirectDebit, PaymentMethodCash, PaymentMethodCard, PaymentMethodPayPal:
		return true
	}
	return false
}

// Payment is a received amount and how it was allocated (§367 BGB: costs,
// then interest, then principal)
type Payment struct {
	ID                 uuid.UUID       `json:"id"`
	Amount             decimal.Decimal `json:"amount"`
	ReceivedOn         time.Time       `json:"received_on"`
	Method             PaymentMethod   `json:"method"`
	Reference          string          `json:"reference,omitempty"`
	AllocatedFees      decimal.Decimal `json:"allocated_fees"`
	AllocatedInterest  decimal.Decimal `json:"allocated_interest"`
	AllocatedPrincipal decimal.Decimal `json:"allocated_principal"`
	RecordedAt         time.Time       `json:"recorded_at"`
}

// Payments is a slice of payments stored as JSON
type Payments []Payment

// Value implements driver.Valuer for JSON storage
func (p Payments) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for JSON storage
func (p *Payments) Scan(value any) error {
	return scanJSON(value, p, "Payments")
}

// Invoice is the invoice aggregate root. Once issued it is immutable except for
// payment, dunning and settlement bookkeeping; corrections go through a
// cancellation invoice.
type Invoice struct {
	shared.TenantAggregateRoot
	Number          string
	Type            InvoiceType
	Status          InvoiceStatus
	CustomerID      uuid.UUID
	Seller          PartySnapshot
	Buyer           PartySnapshot
	IssueDate       *time.Time
	ServiceDate     *time.Time // Leistungsdatum
	DueDate         *time.Time
	PaymentTermDays int
	RequestedRegime TaxRegime // explicit override, empty for automatic
	TaxRegime       TaxRegime
	TaxNote         string
	Lines           InvoiceLines
	NetTotal        decimal.Decimal
	TaxTotal        decimal.Decimal
	GrossTotal      decimal.Decimal
	TaxBreakdown    TaxBreakdown
	Notes           string

	Payments      Payments
	PaidPrincipal decimal.Decimal
	PaidFees      decimal.Decimal
	PaidInterest  decimal.Decimal
	PaidAt        *time.Time

	DunningLevel         DunningLevel
	DunningFees          decimal.Decimal // accumulated over all notices
	AccruedInterest      decimal.Decimal
	InterestAccruedUntil *time.Time
	FlatFeeCharged       bool
	LastDunnedAt         *time.Time
	DunningBlocked       bool
	DunningBlockReason   string

	CancelsInvoiceID     *uuid.UUID // set on cancellation invoices
	CancelledByInvoiceID *uuid.UUID // set on the cancelled original
	CorrectsInvoiceID    *uuid.UUID // set on a corrected replacement draft
	OfferID              *uuid.UUID
	CancelReason         string
	CancelledAt          *time.Time
	WriteOffReason       string
	WrittenOffAt         *time.Time
}

// NewDraftInvoice creates an empty draft for a customer
func NewDraftInvoice(tenantID uuid.UUID, customer *Customer, paymentTermDays int) (*Invoice, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if customer == nil || customer.ID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer cannot be empty")
	}
	if customer.TenantID != tenantID {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer belongs to a different company")
	}
	if !customer.Active {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer is inactive")
	}
	if paymentTermDays < 0 {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TERMS", "Payment terms cannot be negative")
	}
	return &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Type:                InvoiceTypeStandard,
		Status:              InvoiceStatusDraft,
		CustomerID:          customer.ID,
		Buyer:               customer.Snapshot(),
		PaymentTermDays:     paymentTermDays,
		Lines:               InvoiceLines{},
		Payments:            Payments{},
		NetTotal:            decimal.Zero,
		TaxTotal:            decimal.Zero,
		GrossTotal:          decimal.Zero,
		PaidPrincipal:       decimal.Zero,
		PaidFees:            decimal.Zero,
		PaidInterest:        decimal.Zero,
		DunningFees:         decimal.Zero,
		AccruedInterest:     decimal.Zero,
	}, nil
}

// DraftChanges is the editable content of a draft
type DraftChanges struct {
	Lines           InvoiceLines
	ServiceDate     *time.Time
	PaymentTermDays int
	RequestedRegime TaxRegime
	Notes           string
}

func (inv *Invoice) ensureDraft() error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVOICE_IMMUTABLE", fmt.Sprintf("Invoice %s is issued and cannot be modified; issue a cancellation invoice instead", inv.Number))
	}
	return nil
}

// UpdateDraft replaces the draft content and re-prices it
func (inv *Invoice) UpdateDraft(c DraftChanges, company *Company, customer *Customer) error {
	if err := inv.ensureDraft(); err != nil {
		return err
	}
	if c.PaymentTermDays < 0 || c.PaymentTermDays > 365 {
		return shared.NewDomainError("INVALID_PAYMENT_TERMS", "Payment terms must be between 0 and 365 days")
	}
	if c.RequestedRegime != "" && !c.RequestedRegime.IsValid() {
		return shared.NewDomainError("INVALID_TAX_REGIME", "Unknown tax regime")
	}
	lines, err := ValidateLines(c.Lines)
	if err != nil {
		return err
	}
	inv.Lines = lines
	inv.ServiceDate = c.ServiceDate
	inv.PaymentTermDays = c.PaymentTermDays
	inv.RequestedRegime = c.RequestedRegime
	inv.Notes = c.Notes
	inv.Reprice(company, customer)
	inv.IncrementVersion()
	return nil
}

// Reprice refreshes the buyer snapshot, tax regime and totals of a draft
func (inv *Invoice) Reprice(company *Company, customer *Customer) {
	if customer != nil {
		inv.Buyer = customer.Snapshot()
	}
	inv.Seller = company.Seller()
	inv.TaxRegime = DetermineTaxRegime(company, inv.Buyer.TaxParty(), inv.RequestedRegime)
	inv.TaxNote = inv.TaxRegime.LegalNote()
	priced, totals := CalculateTotals(inv.Lines, inv.TaxRegime, company.TaxRates)
	inv.Lines = priced
	inv.NetTotal = totals.Net
	inv.TaxTotal = totals.Tax
	inv.GrossTotal = totals.Gross
	inv.TaxBreakdown = totals.Breakdown
}

// Issue assigns the final number and makes the invoice binding
func (inv *Invoice) Issue(number string, issueDate time.Time) error {
	if err := inv.ensureDraft(); err != nil {
		return err
	}
	if strings.TrimSpace(number) == "" {
		return shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(inv.Lines) == 0 {
		return shared.NewDomainError("INVOICE_EMPTY", "An invoice needs at least one line")
	}
	if !inv.GrossTotal.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Invoice total must be positive")
	}
	if !inv.TaxRegime.IsValid() {
		return shared.NewDomainError("INVALID_TAX_REGIME", "Tax regime has not been determined")
	}
	if inv.TaxRegime == TaxRegimeReverseCharge && inv.Buyer.VATID == "" {
		return shared.NewDomainError("VAT_ID_REQUIRED", "Reverse charge invoices require the customer's VAT ID")
	}

	issued := DateOnly(issueDate)
	due := AddDays(issued, inv.PaymentTermDays)
	inv.Number = number
	inv.IssueDate = &issued
	if inv.ServiceDate == nil {
		inv.ServiceDate = &issued
	}
	inv.DueDate = &due
	inv.Status = InvoiceStatusOpen
	inv.IncrementVersion()
	inv.AddDomainEvent(NewInvoiceIssuedEvent(inv))
	return nil
}

// OutstandingPrincipal is the unpaid part of the gross invoice amount
func (inv *Invoice) OutstandingPrincipal() decimal.Decimal {
	if inv.Type == InvoiceTypeCancellation {
		return decimal.Zero
	}
	return inv.GrossTotal.Sub(inv.PaidPrincipal)
}

// OutstandingFees is the unpaid part of accumulated dunning fees
func (inv *Invoice) OutstandingFees() decimal.Decimal {
	return inv.DunningFees.Sub(inv.PaidFees)
}

// OutstandingInterest is the unpaid part of accrued default interest
func (inv *Invoice) OutstandingInterest() decimal.Decimal {
	return inv.AccruedInterest.Sub(inv.PaidInterest)
}

// OutstandingTotal is everything the customer still owes on this invoice
func (inv *Invoice) OutstandingTotal() decimal.Decimal {
	return inv.OutstandingPrincipal().Add(inv.OutstandingFees()).Add(inv.OutstandingInterest())
}

// PaidTotal is the sum of all received payments
func (inv *Invoice) PaidTotal() decimal.Decimal {
	return inv.PaidPrincipal.Add(inv.PaidFees).Add(inv.PaidInterest)
}

// DaysOverdue returns how many days past the due date asOf lies (0 if not due)
func (inv *Invoice) DaysOverdue(asOf time.Time) int {
	if inv.DueDate == nil {
		return 0
	}
	days := DaysBetween(*inv.DueDate, asOf)
	if days < 0 {
		return 0
	}
	return days
}

// IsOverdue reports whether an unpaid issued invoice is past its due date
func (inv *Invoice) IsOverdue(asOf time.Time) bool {
	return inv.Status.CanReceivePayment() && inv.DaysOverdue(asOf) > 0
}

// RecordPayment books a received payment, allocating fees, then interest, then principal
func (inv *Invoice) RecordPayment(amount decimal.Decimal, receivedOn time.Time, method PaymentMethod, reference string) (*Payment, error) {
	if !inv.Status.CanReceivePayment() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot record payment for invoice in %s status", inv.Status))
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !valueobject.Euro(amount).IsWholeCents() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be in whole cents")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	outstanding := inv.OutstandingTotal()
	if amount.GreaterThan(outstanding) {
		return nil, shared.NewDomainError("PAYMENT_EXCEEDS_BALANCE",
			fmt.Sprintf("Payment of %s exceeds the outstanding balance of %s", valueobject.Euro(amount), valueobject.Euro(outstanding)))
	}

	remaining := amount
	take := func(open decimal.Decimal) decimal.Decimal {
		if !open.IsPositive() || !remaining.IsPositive() {
			return decimal.Zero
		}
		part := decimal.Min(open, remaining)
		remaining = remaining.Sub(part)
		return part
	}
	p := Payment{
		ID:                 uuid.New(),
		Amount:             amount,
		ReceivedOn:         DateOnly(receivedOn),
		Method:             method,
		Reference:          strings.TrimSpace(reference),
		AllocatedFees:      take(inv.OutstandingFees()),
		AllocatedInterest:  take(inv.OutstandingInterest()),
		AllocatedPrincipal: take(inv.OutstandingPrincipal()),
		RecordedAt:         time.Now().UTC(),
	}

	inv.PaidFees = inv.PaidFees.Add(p.AllocatedFees)
	inv.PaidInterest = inv.PaidInterest.Add(p.AllocatedInterest)
	inv.PaidPrincipal = inv.PaidPrincipal.Add(p.AllocatedPrincipal)
	inv.Payments = append(inv.Payments, p)
	inv.AddDomainEvent(NewInvoicePaymentRecordedEvent(inv, &p))

	if inv.OutstandingTotal().IsZero() {
		paidAt := p.ReceivedOn
		inv.Status = InvoiceStatusPaid
		inv.PaidAt = &paidAt
		inv.AddDomainEvent(NewInvoicePaidEvent(inv))
	} else if inv.Status == InvoiceStatusOpen {
		inv.Status = InvoiceStatusPartiallyPaid
	}
	inv.IncrementVersion()
	return &p, nil
}

// CreateCancellation cancels an unpaid issued invoice and returns the offsetting
// Stornorechnung with negated lines. The caller persists both documents together.
func (inv *Invoice) CreateCancellation(number string, issueDate time.Time, reason string) (*Invoice, error) {
	if inv.Type != InvoiceTypeStandard {
		return nil, shared.NewDomainError("INVALID_STATE", "A cancellation invoice cannot itself be cancelled")
	}
	if inv.Status == InvoiceStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Drafts are deleted, not cancelled")
	}
	if inv.Status != InvoiceStatusOpen {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel invoice in %s status", inv.Status))
	}
	if inv.PaidTotal().IsPositive() {
		return nil, shared.NewDomainError("INVOICE_HAS_PAYMENTS", "Cannot cancel an invoice with recorded payments")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Cancellation reason is required")
	}
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Cancellation number cannot be empty")
	}

	issued := DateOnly(issueDate)
	negated := make(InvoiceLines, len(inv.Lines))
	for i, l := range inv.Lines {
		l.Quantity = l.Quantity.Neg()
		l.NetAmount = l.NetAmount.Neg()
		negated[i] = l
	}
	breakdown := make(TaxBreakdown, len(inv.TaxBreakdown))
	for i, g := range inv.TaxBreakdown {
		breakdown[i] = TaxGroup{Rate: g.Rate, Net: g.Net.Neg(), Tax: g.Tax.Neg()}
	}
	originalID := inv.ID
	storno := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(inv.TenantID),
		Number:              number,
		Type:                InvoiceTypeCancellation,
		Status:              InvoiceStatusSettled,
		CustomerID:          inv.CustomerID,
		Seller:              inv.Seller,
		Buyer:               inv.Buyer,
		IssueDate:           &issued,
		ServiceDate:         inv.ServiceDate,
		DueDate:             &issued,
		TaxRegime:           inv.TaxRegime,
		TaxNote:             inv.TaxNote,
		Lines:               negated,
		NetTotal:            inv.NetTotal.Neg(),
		TaxTotal:            inv.TaxTotal.Neg(),
		GrossTotal:          inv.GrossTotal.Neg(),
		TaxBreakdown:        breakdown,
		Notes:               fmt.Sprintf("Stornorechnung zu Rechnung %s: %s", inv.Number, reason),
		Payments:            Payments{},
		PaidPrincipal:       decimal.Zero,
		PaidFees:            decimal.Zero,
		PaidInterest:        decimal.Zero,
		DunningFees:         decimal.Zero,
		AccruedInterest:     decimal.Zero,
		CancelsInvoiceID:    &originalID,
	}

	now := time.Now().UTC()
	stornoID := storno.ID
	inv.Status = InvoiceStatusCancelled
	inv.CancelReason = reason
	inv.CancelledAt = &now
	inv.CancelledByInvoiceID = &stornoID
	inv.IncrementVersion()
	inv.AddDomainEvent(NewInvoiceCancelledEvent(inv, storno))
	storno.AddDomainEvent(NewInvoiceIssuedEvent(storno))
	return storno, nil
}

// CorrectionDraft copies a cancelled invoice into a new draft that references it
func (inv *Invoice) CorrectionDraft() (*Invoice, error) {
	if inv.Status != InvoiceStatusCancelled {
		return nil, shared.NewDomainError("INVALID_STATE", "Only cancelled invoices can be corrected")
	}
	originalID := inv.ID
	lines := make(InvoiceLines, len(inv.Lines))
	copy(lines, inv.Lines)
	draft := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(inv.TenantID),
		Type:                InvoiceTypeStandard,
		Status:              InvoiceStatusDraft,
		CustomerID:          inv.CustomerID,
		Seller:              inv.Seller,
		Buyer:               inv.Buyer,
		ServiceDate:         inv.ServiceDate,
		PaymentTermDays:     inv.PaymentTermDays,
		RequestedRegime:     inv.RequestedRegime,
		TaxRegime:           inv.TaxRegime,
		TaxNote:             inv.TaxNote,
		Lines:               lines,
		NetTotal:            inv.NetTotal,
		TaxTotal:            inv.TaxTotal,
		GrossTotal:          inv.GrossTotal,
		TaxBreakdown:        inv.TaxBreakdown,
		Notes:               inv.Notes,
		Payments:            Payments{},
		PaidPrincipal:       decimal.Zero,
		PaidFees:            decimal.Zero,
		PaidInterest:        decimal.Zero,
		DunningFees:         decimal.Zero,
		AccruedInterest:     decimal.Zero,
		CorrectsInvoiceID:   &originalID,
	}
	return draft, nil
}

// WriteOff marks the remaining balance as uncollectible
func (inv *Invoice) WriteOff(reason string) error {
	if inv.Type != InvoiceTypeStandard || !inv.Status.CanReceivePayment() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot write off invoice in %s status", inv.Status))
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Write-off reason is required")
	}
	now := time.Now().UTC()
	written := inv.OutstandingTotal()
	inv.Status = InvoiceStatusWrittenOff
	inv.WriteOffReason = reason
	inv.WrittenOffAt = &now
	inv.IncrementVersion()
	inv.AddDomainEvent(NewInvoiceWrittenOffEvent(inv, written))
	return nil
}

// BlockDunning sets a Mahnsperre, e.g. while a complaint is open
func (inv *Invoice) BlockDunning(reason string) error {
	if inv.Type != InvoiceTypeStandard || inv.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot block dunning for invoice in %s status", inv.Status))
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Dunning block reason is required")
	}
	inv.DunningBlocked = true
	inv.DunningBlockReason = reason
	inv.IncrementVersion()
	return nil
}

// UnblockDunning lifts a Mahnsperre
func (inv *Invoice) UnblockDunning() error {
	if !inv.DunningBlocked {
		return shared.NewDomainError("INVALID_STATE", "Dunning is not blocked for this invoice")
	}
	inv.DunningBlocked = false
	inv.DunningBlockReason = ""
	inv.IncrementVersion()
	return nil
}

// Escalate applies a dunning decision: raises the level, accumulates the fee and
// interest, and returns the notice to send. Reaching collection hands the
// invoice over to Inkasso.
func (inv *Invoice) Escalate(d DunningDecision, noticeNumber string, issuedOn time.Time, paymentDeadlineDays int) (*DunningNotice, error) {
	if !d.Escalate {
		return nil, shared.NewDomainError("INVALID_STATE", "Dunning decision does not escalate: "+d.Reason)
	}
	if inv.Type != InvoiceTypeStandard || !inv.Status.IsDunnable() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot dun invoice in %s status", inv.Status))
	}
	if inv.DunningBlocked {
		return nil, shared.NewDomainError("DUNNING_BLOCKED", "Dunning is blocked for this invoice")
	}
	if d.NextLevel != inv.DunningLevel.Next() {
		return nil, shared.NewDomainError("INVALID_DUNNING_LEVEL",
			fmt.Sprintf("Invoice is at %s and cannot jump to %s", inv.DunningLevel, d.NextLevel))
	}
	if strings.TrimSpace(noticeNumber) == "" {
		return nil, shared.NewDomainError("INVALID_NOTICE_NUMBER", "Notice number cannot be empty")
	}

	issued := DateOnly(issuedOn)
	previous := inv.DunningLevel
	inv.DunningLevel = d.NextLevel
	inv.DunningFees = inv.DunningFees.Add(d.Fee).Add(d.FlatFee)
	if d.FlatFee.IsPositive() {
		inv.FlatFeeCharged = true
	}
	if d.Interest.IsPositive() || d.InterestUntil != nil {
		inv.AccruedInterest = inv.AccruedInterest.Add(d.Interest)
		inv.InterestAccruedUntil = d.InterestUntil
	}
	inv.LastDunnedAt = &issued
	if d.NextLevel == DunningLevelCollection {
		inv.Status = InvoiceStatusInCollection
	}

	notice := newDunningNotice(inv, d, noticeNumber, issued, paymentDeadlineDays)
	inv.IncrementVersion()
	inv.AddDomainEvent(NewInvoiceEscalatedEvent(inv, previous, notice))
	return notice, nil
}

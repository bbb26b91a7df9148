package invoicing

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Date is a calendar date in JSON. It accepts "2006-01-02" and RFC 3339 and
// always renders as "2006-01-02".
type Date struct {
	time.Time
}

// NewDate wraps t as a Date
func NewDate(t time.Time) Date {
	return Date{Time: invoicing.DateOnly(t)}
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, raw); err != nil {
			return shared.NewDomainError("INVALID_DATE", "Dates must be formatted as YYYY-MM-DD")
		}
	}
	d.Time = invoicing.DateOnly(t)
	return nil
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

func datePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := NewDate(*t)
	return &d
}

func (d *Date) timePtr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// ListParams are the paging and sorting query parameters shared by all lists
type ListParams struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (p ListParams) toFilter(defaultOrderBy, defaultOrderDir string) shared.Filter {
	f := shared.Filter{
		Page:     p.Page,
		PageSize: p.PageSize,
		OrderBy:  p.OrderBy,
		OrderDir: p.OrderDir,
		Search:   p.Search,
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	if f.OrderBy == "" {
		f.OrderBy = defaultOrderBy
	}
	if f.OrderDir == "" {
		f.OrderDir = defaultOrderDir
	}
	return f
}

// AddressDTO is a postal address in requests and responses
type AddressDTO struct {
	Street     string `json:"street" binding:"max=200"`
	PostalCode string `json:"postal_code" binding:"max=20"`
	City       string `json:"city" binding:"max=100"`
	Country    string `json:"country" binding:"omitempty,iso_country"`
}

func (a AddressDTO) toDomain() (valueobject.Address, error) {
	addr, err := valueobject.NewAddress(a.Street, a.PostalCode, a.City, a.Country)
	if err != nil {
		return valueobject.Address{}, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}
	return addr, nil
}

func toAddressDTO(a valueobject.Address) AddressDTO {
	return AddressDTO{Street: a.Street, PostalCode: a.PostalCode, City: a.City, Country: a.Country}
}

// ---------------------------------------------------------------------------
// Company

// CreateCompanyRequest registers a company (tenant)
type CreateCompanyRequest struct {
	Name                   string     `json:"name" binding:"required,min=1,max=200"`
	LegalForm              string     `json:"legal_form" binding:"max=50"`
	Address                AddressDTO `json:"address"`
	Email                  string     `json:"email" binding:"omitempty,email"`
	Phone                  string     `json:"phone" binding:"max=50"`
	VATID                  string     `json:"vat_id" binding:"omitempty,vat_id"`
	TaxNumber              string     `json:"tax_number" binding:"max=50"`
	IBAN                   string     `json:"iban" binding:"max=34"`
	BIC                    string     `json:"bic" binding:"max=11"`
	BankName               string     `json:"bank_name" binding:"max=100"`
	SmallBusiness          bool       `json:"small_business"`
	DefaultPaymentTermDays *int       `json:"default_payment_term_days" binding:"omitempty,min=0,max=365"`
}

// UpdateCompanyRequest replaces the master data of a company. Omitted tax
// rates and numbering settings keep their current values.
type UpdateCompanyRequest struct {
	Name                   string                       `json:"name" binding:"required,min=1,max=200"`
	LegalForm              string                       `json:"legal_form" binding:"max=50"`
	Address                AddressDTO                   `json:"address"`
	Email                  string                       `json:"email" binding:"omitempty,email"`
	Phone                  string                       `json:"phone" binding:"max=50"`
	VATID                  string                       `json:"vat_id" binding:"omitempty,vat_id"`
	TaxNumber              string                       `json:"tax_number" binding:"max=50"`
	IBAN                   string                       `json:"iban" binding:"max=34"`
	BIC                    string                       `json:"bic" binding:"max=11"`
	BankName               string                       `json:"bank_name" binding:"max=100"`
	SmallBusiness          bool                         `json:"small_business"`
	DefaultPaymentTermDays int                          `json:"default_payment_term_days" binding:"min=0,max=365"`
	TaxRates               *TaxRatesDTO                 `json:"tax_rates"`
	Numbering              *invoicing.NumberingSettings `json:"numbering"`
}

// TaxRatesDTO carries the VAT rates in percent
type TaxRatesDTO struct {
	Standard decimal.Decimal `json:"standard"`
	Reduced  decimal.Decimal `json:"reduced"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID                     uuid.UUID                   `json:"id"`
	Name                   string                      `json:"name"`
	LegalForm              string                      `json:"legal_form"`
	Address                AddressDTO                  `json:"address"`
	Email                  string                      `json:"email"`
	Phone                  string                      `json:"phone"`
	VATID                  string                      `json:"vat_id"`
	TaxNumber              string                      `json:"tax_number"`
	IBAN                   string                      `json:"iban"`
	BIC                    string                      `json:"bic"`
	BankName               string                      `json:"bank_name"`
	SmallBusiness          bool                        `json:"small_business"`
	DefaultPaymentTermDays int                         `json:"default_payment_term_days"`
	TaxRates               TaxRatesDTO                 `json:"tax_rates"`
	Numbering              invoicing.NumberingSettings `json:"numbering"`
	Dunning                invoicing.DunningSettings   `json:"dunning"`
	Active                 bool                        `json:"active"`
	CreatedAt              time.Time                   `json:"created_at"`
	UpdatedAt              time.Time                   `json:"updated_at"`
	Version                int                         `json:"version"`
}

// ToCompanyResponse converts a domain Company to CompanyResponse
func ToCompanyResponse(c *invoicing.Company) CompanyResponse {
	return CompanyResponse{
		ID:                     c.ID,
		Name:                   c.Name,
		LegalForm:              c.LegalForm,
		Address:                toAddressDTO(c.Address),
		Email:                  c.Email,
		Phone:                  c.Phone,
		VATID:                  c.VATID,
		TaxNumber:              c.TaxNumber,
		IBAN:                   c.IBAN,
		BIC:                    c.BIC,
		BankName:               c.BankName,
		SmallBusiness:          c.SmallBusiness,
		DefaultPaymentTermDays: c.DefaultPaymentTermDays,
		TaxRates:               TaxRatesDTO{Standard: c.TaxRates.Standard, Reduced: c.TaxRates.Reduced},
		Numbering:              c.Numbering,
		Dunning:                c.Dunning,
		Active:                 c.Active,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
		Version:                c.Version,
	}
}

// ---------------------------------------------------------------------------
// Customer

// CustomerRequest creates or replaces a customer
type CustomerRequest struct {
	Kind            string     `json:"kind" binding:"required,oneof=business consumer"`
	Name            string     `json:"name" binding:"required,min=1,max=200"`
	ContactPerson   string     `json:"contact_person" binding:"max=200"`
	Email           string     `json:"email" binding:"omitempty,email"`
	Phone           string     `json:"phone" binding:"max=50"`
	Address         AddressDTO `json:"address"`
	VATID           string     `json:"vat_id" binding:"omitempty,vat_id"`
	PaymentTermDays *int       `json:"payment_term_days" binding:"omitempty,min=0,max=365"`
	Notes           string     `json:"notes" binding:"max=2000"`
}

func (r CustomerRequest) toDetails() (invoicing.CustomerDetails, error) {
	addr, err := r.Address.toDomain()
	if err != nil {
		return invoicing.CustomerDetails{}, err
	}
	return invoicing.CustomerDetails{
		Kind:            invoicing.CustomerKind(r.Kind),
		Name:            r.Name,
		ContactPerson:   r.ContactPerson,
		Email:           r.Email,
		Phone:           r.Phone,
		Address:         addr,
		VATID:           r.VATID,
		PaymentTermDays: r.PaymentTermDays,
		Notes:           r.Notes,
	}, nil
}

// CustomerListFilter represents filter options for the customer list
type CustomerListFilter struct {
	ListParams
	Kind   string `form:"kind" binding:"omitempty,oneof=business consumer"`
	Active *bool  `form:"active"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID              uuid.UUID  `json:"id"`
	Number          string     `json:"number"`
	Kind            string     `json:"kind"`
	Name            string     `json:"name"`
	ContactPerson   string     `json:"contact_person"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Address         AddressDTO `json:"address"`
	VATID           string     `json:"vat_id"`
	PaymentTermDays *int       `json:"payment_term_days"`
	Notes           string     `json:"notes"`
	Active          bool       `json:"active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Version         int        `json:"version"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *invoicing.Customer) CustomerResponse {
	return CustomerResponse{
		ID:              c.ID,
		Number:          c.Number,
		Kind:            string(c.Kind),
		Name:            c.Name,
		ContactPerson:   c.ContactPerson,
		Email:           c.Email,
		Phone:           c.Phone,
		Address:         toAddressDTO(c.Address),
		VATID:           c.VATID,
		PaymentTermDays: c.PaymentTermDays,
		Notes:           c.Notes,
		Active:          c.Active,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		Version:         c.Version,
	}
}

// ---------------------------------------------------------------------------
// Product

// ProductRequest creates or replaces a product
type ProductRequest struct {
	SKU         string          `json:"sku" binding:"required,min=1,max=50"`
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Unit        string          `json:"unit" binding:"max=20"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxCategory string          `json:"tax_category" binding:"omitempty,oneof=standard reduced"`
}

func (r ProductRequest) toDetails() invoicing.ProductDetails {
	return invoicing.ProductDetails{
		SKU:         r.SKU,
		Name:        r.Name,
		Description: r.Description,
		Unit:        r.Unit,
		UnitPrice:   r.UnitPrice,
		TaxCategory: invoicing.TaxCategory(r.TaxCategory),
	}
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	ListParams
	Active *bool `form:"active"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxCategory string          `json:"tax_category"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *invoicing.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Unit:        p.Unit,
		UnitPrice:   p.UnitPrice,
		TaxCategory: string(p.TaxCategory),
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

// ---------------------------------------------------------------------------
// Invoice

// LineRequest is an invoice or offer position. With a product ID, empty
// description, unit, price and tax category are taken from the product.
type LineRequest struct {
	ProductID       *uuid.UUID       `json:"product_id"`
	Description     string           `json:"description" binding:"max=1000"`
	Quantity        decimal.Decimal  `json:"quantity"`
	Unit            string           `json:"unit" binding:"max=20"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	TaxCategory     string           `json:"tax_category" binding:"omitempty,oneof=standard reduced"`
}

// CreateInvoiceRequest creates a draft invoice
type CreateInvoiceRequest struct {
	CustomerID      uuid.UUID     `json:"customer_id" binding:"required"`
	Lines           []LineRequest `json:"lines" binding:"dive"`
	ServiceDate     *Date         `json:"service_date" swaggertype:"string" example:"2024-05-01"`
	PaymentTermDays *int          `json:"payment_term_days" binding:"omitempty,min=0,max=365"`
	TaxRegime       string        `json:"tax_regime" binding:"omitempty,oneof=standard reduced reverse_charge export small_business"`
	Notes           string        `json:"notes" binding:"max=2000"`
}

// UpdateInvoiceRequest replaces the content of a draft
type UpdateInvoiceRequest struct {
	Lines           []LineRequest `json:"lines" binding:"dive"`
	ServiceDate     *Date         `json:"service_date" swaggertype:"string" example:"2024-05-01"`
	PaymentTermDays *int          `json:"payment_term_days" binding:"omitempty,min=0,max=365"`
	TaxRegime       string        `json:"tax_regime" binding:"omitempty,oneof=standard reduced reverse_charge export small_business"`
	Notes           string        `json:"notes" binding:"max=2000"`
}

// IssueInvoiceRequest issues a draft. The issue date defaults to today.
type IssueInvoiceRequest struct {
	IssueDate *Date `json:"issue_date" swaggertype:"string" example:"2024-05-01"`
}

// RecordPaymentRequest books a received payment
type RecordPaymentRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	ReceivedOn *Date           `json:"received_on" swaggertype:"string" example:"2024-05-01"`
	Method     string          `json:"method" binding:"omitempty,oneof=bank_transfer direct_debit cash card paypal"`
	Reference  string          `json:"reference" binding:"max=200"`
}

// CancelInvoiceRequest cancels an issued invoice with a Stornorechnung
type CancelInvoiceRequest struct {
	Reason    string `json:"reason" binding:"required,min=1,max=500"`
	IssueDate *Date  `json:"issue_date" swaggertype:"string" example:"2024-05-01"`
}

// ReasonRequest carries the reason of a write-off or dunning block
type ReasonRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// InvoiceListFilter represents filter options for the invoice list
type InvoiceListFilter struct {
	ListParams
	CustomerID   *uuid.UUID `form:"customer_id"`
	Type         string     `form:"type" binding:"omitempty,oneof=standard cancellation"`
	Status       []string   `form:"status"`
	DunningLevel *int       `form:"dunning_level" binding:"omitempty,min=0,max=5"`
	IssuedFrom   *time.Time `form:"issued_from" time_format:"2006-01-02"`
	IssuedTo     *time.Time `form:"issued_to" time_format:"2006-01-02"`
	Overdue      bool       `form:"overdue"`
}

// PaymentResponse is a booked payment and its allocation
type PaymentResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Amount             decimal.Decimal `json:"amount"`
	ReceivedOn         Date            `json:"received_on" swaggertype:"string"`
	Method             string          `json:"method"`
	Reference          string          `json:"reference,omitempty"`
	AllocatedFees      decimal.Decimal `json:"allocated_fees"`
	AllocatedInterest  decimal.Decimal `json:"allocated_interest"`
	AllocatedPrincipal decimal.Decimal `json:"allocated_principal"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID                   uuid.UUID               `json:"id"`
	Number               string                  `json:"number"`
	Type                 string                  `json:"type"`
	Status               string                  `json:"status"`
	CustomerID           uuid.UUID               `json:"customer_id"`
	Seller               invoicing.PartySnapshot `json:"seller"`
	Buyer                invoicing.PartySnapshot `json:"buyer"`
	IssueDate            *Date                   `json:"issue_date" swaggertype:"string"`
	ServiceDate          *Date                   `json:"service_date" swaggertype:"string"`
	DueDate              *Date                   `json:"due_date" swaggertype:"string"`
	PaymentTermDays      int                     `json:"payment_term_days"`
	TaxRegime            string                  `json:"tax_regime"`
	TaxNote              string                  `json:"tax_note,omitempty"`
	Lines                []invoicing.InvoiceLine `json:"lines"`
	TaxBreakdown         []invoicing.TaxGroup    `json:"tax_breakdown"`
	NetTotal             decimal.Decimal         `json:"net_total"`
	TaxTotal             decimal.Decimal         `json:"tax_total"`
	GrossTotal           decimal.Decimal         `json:"gross_total"`
	Notes                string                  `json:"notes"`
	Payments             []PaymentResponse       `json:"payments"`
	PaidTotal            decimal.Decimal         `json:"paid_total"`
	OutstandingPrincipal decimal.Decimal         `json:"outstanding_principal"`
	OutstandingFees      decimal.Decimal         `json:"outstanding_fees"`
	OutstandingInterest  decimal.Decimal         `json:"outstanding_interest"`
	OutstandingTotal     decimal.Decimal         `json:"outstanding_total"`
	DunningLevel         string                  `json:"dunning_level"`
	DunningBlocked       bool                    `json:"dunning_blocked"`
	DunningBlockReason   string                  `json:"dunning_block_reason,omitempty"`
	LastDunnedAt         *Date                   `json:"last_dunned_at" swaggertype:"string"`
	CancelsInvoiceID     *uuid.UUID              `json:"cancels_invoice_id,omitempty"`
	CancelledByInvoiceID *uuid.UUID              `json:"cancelled_by_invoice_id,omitempty"`
	CorrectsInvoiceID    *uuid.UUID              `json:"corrects_invoice_id,omitempty"`
	OfferID              *uuid.UUID              `json:"offer_id,omitempty"`
	CancelReason         string                  `json:"cancel_reason,omitempty"`
	WriteOffReason       string                  `json:"write_off_reason,omitempty"`
	CreatedAt            time.Time               `json:"created_at"`
	UpdatedAt            time.Time               `json:"updated_at"`
	Version              int                     `json:"version"`
}

// InvoiceListItem represents a list entry for invoices
type InvoiceListItem struct {
	ID               uuid.UUID       `json:"id"`
	Number           string          `json:"number"`
	Type             string          `json:"type"`
	Status           string          `json:"status"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	IssueDate        *Date           `json:"issue_date" swaggertype:"string"`
	DueDate          *Date           `json:"due_date" swaggertype:"string"`
	GrossTotal       decimal.Decimal `json:"gross_total"`
	OutstandingTotal decimal.Decimal `json:"outstanding_total"`
	DunningLevel     string          `json:"dunning_level"`
	CreatedAt        time.Time       `json:"created_at"`
}

// CancelInvoiceResponse holds the cancelled invoice and its Stornorechnung
type CancelInvoiceResponse struct {
	Invoice      InvoiceResponse `json:"invoice"`
	Cancellation InvoiceResponse `json:"cancellation"`
}

// CorrectInvoiceResponse adds the replacement draft to a cancellation
type CorrectInvoiceResponse struct {
	CancelInvoiceResponse
	Draft InvoiceResponse `json:"draft"`
}

// ToInvoiceResponse converts a domain Invoice to InvoiceResponse
func ToInvoiceResponse(inv *invoicing.Invoice) InvoiceResponse {
	payments := make([]PaymentResponse, len(inv.Payments))
	for i, p := range inv.Payments {
		payments[i] = PaymentResponse{
			ID:                 p.ID,
			Amount:             p.Amount,
			ReceivedOn:         NewDate(p.ReceivedOn),
			Method:             string(p.Method),
			Reference:          p.Reference,
			AllocatedFees:      p.AllocatedFees,
			AllocatedInterest:  p.AllocatedInterest,
			AllocatedPrincipal: p.AllocatedPrincipal,
		}
	}
	lines := inv.Lines
	if lines == nil {
		lines = invoicing.InvoiceLines{}
	}
	breakdown := inv.TaxBreakdown
	if breakdown == nil {
		breakdown = invoicing.TaxBreakdown{}
	}
	return InvoiceResponse{
		ID:                   inv.ID,
		Number:               inv.Number,
		Type:                 string(inv.Type),
		Status:               string(inv.Status),
		CustomerID:           inv.CustomerID,
		Seller:               inv.Seller,
		Buyer:                inv.Buyer,
		IssueDate:            datePtr(inv.IssueDate),
		ServiceDate:          datePtr(inv.ServiceDate),
		DueDate:              datePtr(inv.DueDate),
		PaymentTermDays:      inv.PaymentTermDays,
		TaxRegime:            string(inv.TaxRegime),
		TaxNote:              inv.TaxNote,
		Lines:                lines,
		TaxBreakdown:         breakdown,
		NetTotal:             inv.NetTotal,
		TaxTotal:             inv.TaxTotal,
		GrossTotal:           inv.GrossTotal,
		Notes:                inv.Notes,
		Payments:             payments,
		PaidTotal:            inv.PaidTotal(),
		OutstandingPrincipal: inv.OutstandingPrincipal(),
		OutstandingFees:      inv.OutstandingFees(),
		OutstandingInterest:  inv.OutstandingInterest(),
		OutstandingTotal:     inv.OutstandingTotal(),
		DunningLevel:         inv.DunningLevel.String(),
		DunningBlocked:       inv.DunningBlocked,
		DunningBlockReason:   inv.DunningBlockReason,
		LastDunnedAt:         datePtr(inv.LastDunnedAt),
		CancelsInvoiceID:     inv.CancelsInvoiceID,
		CancelledByInvoiceID: inv.CancelledByInvoiceID,
		CorrectsInvoiceID:    inv.CorrectsInvoiceID,
		OfferID:              inv.OfferID,
		CancelReason:         inv.CancelReason,
		WriteOffReason:       inv.WriteOffReason,
		CreatedAt:            inv.CreatedAt,
		UpdatedAt:            inv.UpdatedAt,
		Version:              inv.Version,
	}
}

// ToInvoiceListItem converts a domain Invoice to InvoiceListItem
func ToInvoiceListItem(inv *invoicing.Invoice) InvoiceListItem {
	return InvoiceListItem{
		ID:               inv.ID,
		Number:           inv.Number,
		Type:             string(inv.Type),
		Status:           string(inv.Status),
		CustomerID:       inv.CustomerID,
		CustomerName:     inv.Buyer.Name,
		IssueDate:        datePtr(inv.IssueDate),
		DueDate:          datePtr(inv.DueDate),
		GrossTotal:       inv.GrossTotal,
		OutstandingTotal: inv.OutstandingTotal(),
		DunningLevel:     inv.DunningLevel.String(),
		CreatedAt:        inv.CreatedAt,
	}
}

// ---------------------------------------------------------------------------
// Dunning

// RunDunningRequest starts a manual dunning run. The run date defaults to today.
type RunDunningRequest struct {
	RunDate *Date `json:"run_date" swaggertype:"string" example:"2024-05-01"`
}

// EscalateInvoiceRequest escalates a single invoice as of a date
type EscalateInvoiceRequest struct {
	AsOf *Date `json:"as_of" swaggertype:"string" example:"2024-05-01"`
}

// DunningNoticeResponse represents an issued reminder or Mahnung
type DunningNoticeResponse struct {
	ID                   uuid.UUID       `json:"id"`
	Number               string          `json:"number"`
	InvoiceID            uuid.UUID       `json:"invoice_id"`
	InvoiceNumber        string          `json:"invoice_number"`
	CustomerID           uuid.UUID       `json:"customer_id"`
	RunID                *uuid.UUID      `json:"run_id,omitempty"`
	Level                string          `json:"level"`
	Title                string          `json:"title"`
	IssuedOn             Date            `json:"issued_on" swaggertype:"string"`
	PaymentDeadline      Date            `json:"payment_deadline" swaggertype:"string"`
	DaysOverdue          int             `json:"days_overdue"`
	OutstandingPrincipal decimal.Decimal `json:"outstanding_principal"`
	Fee                  decimal.Decimal `json:"fee"`
	AccumulatedFees      decimal.Decimal `json:"accumulated_fees"`
	Interest             decimal.Decimal `json:"interest"`
	AccruedInterest      decimal.Decimal `json:"accrued_interest"`
	InterestRate         decimal.Decimal `json:"interest_rate"`
	TotalDue             decimal.Decimal `json:"total_due"`
	Subject              string          `json:"subject"`
	Body                 string          `json:"body"`
}

// ToDunningNoticeResponse converts a domain DunningNotice to DunningNoticeResponse
func ToDunningNoticeResponse(n *invoicing.DunningNotice) DunningNoticeResponse {
	return DunningNoticeResponse{
		ID:                   n.ID,
		Number:               n.Number,
		InvoiceID:            n.InvoiceID,
		InvoiceNumber:        n.InvoiceNumber,
		CustomerID:           n.CustomerID,
		RunID:                n.RunID,
		Level:                n.Level.String(),
		Title:                n.Level.Title(),
		IssuedOn:             NewDate(n.IssuedOn),
		PaymentDeadline:      NewDate(n.PaymentDeadline),
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
}

// ToDunningNoticeResponses converts a slice of notices
func ToDunningNoticeResponses(notices []invoicing.DunningNotice) []DunningNoticeResponse {
	responses := make([]DunningNoticeResponse, len(notices))
	for i := range notices {
		responses[i] = ToDunningNoticeResponse(&notices[i])
	}
	return responses
}

// DunningDecisionResponse is the outcome of a dry-run evaluation
type DunningDecisionResponse struct {
	InvoiceID    uuid.UUID       `json:"invoice_id"`
	AsOf         Date            `json:"as_of" swaggertype:"string"`
	Escalate     bool            `json:"escalate"`
	CurrentLevel string          `json:"current_level"`
	NextLevel    string          `json:"next_level"`
	TargetLevel  string          `json:"target_level"`
	DaysOverdue  int             `json:"days_overdue"`
	Fee          decimal.Decimal `json:"fee"`
	FlatFee      decimal.Decimal `json:"flat_fee"`
	Interest     decimal.Decimal `json:"interest"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Reason       string          `json:"reason,omitempty"`
}

func toDecisionResponse(invoiceID uuid.UUID, asOf time.Time, d invoicing.DunningDecision) DunningDecisionResponse {
	return DunningDecisionResponse{
		InvoiceID:    invoiceID,
		AsOf:         NewDate(asOf),
		Escalate:     d.Escalate,
		CurrentLevel: d.CurrentLevel.String(),
		NextLevel:    d.NextLevel.String(),
		TargetLevel:  d.TargetLevel.String(),
		DaysOverdue:  d.DaysOverdue,
		Fee:          d.Fee,
		FlatFee:      d.FlatFee,
		Interest:     d.Interest,
		InterestRate: d.InterestRate,
		Reason:       d.Reason,
	}
}

// DunningRunResponse represents a dunning run and its counters
type DunningRunResponse struct {
	ID         uuid.UUID  `json:"id"`
	RunDate    Date       `json:"run_date" swaggertype:"string"`
	Trigger    string     `json:"trigger"`
	Status     string     `json:"status"`
	Evaluated  int        `json:"evaluated"`
	Escalated  int        `json:"escalated"`
	Skipped    int        `json:"skipped"`
	Failed     int        `json:"failed"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Error      string     `json:"error,omitempty"`
	// Replayed is true when the run had already happened and its stored
	// result is returned
	Replayed bool `json:"replayed"`
}

// ToDunningRunResponse converts a domain DunningRun to DunningRunResponse
func ToDunningRunResponse(r *invoicing.DunningRun) DunningRunResponse {
	return DunningRunResponse{
		ID:         r.ID,
		RunDate:    NewDate(r.RunDate),
		Trigger:    string(r.Trigger),
		Status:     string(r.Status),
		Evaluated:  r.Evaluated,
		Escalated:  r.Escalated,
		Skipped:    r.Skipped,
		Failed:     r.Failed,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Error:      r.Error,
	}
}

// ---------------------------------------------------------------------------
// Offer

// CreateOfferRequest creates a draft offer
type CreateOfferRequest struct {
	CustomerID uuid.UUID     `json:"customer_id" binding:"required"`
	Title      string        `json:"title" binding:"required,min=1,max=200"`
	Lines      []LineRequest `json:"lines" binding:"required,min=1,dive"`
	ValidUntil Date          `json:"valid_until" swaggertype:"string" example:"2024-06-30"`
}

// OfferListFilter represents filter options for the offer list
type OfferListFilter struct {
	ListParams
	CustomerID *uuid.UUID `form:"customer_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=draft sent accepted rejected converted"`
}

// OfferResponse represents an offer in API responses
type OfferResponse struct {
	ID           uuid.UUID               `json:"id"`
	Number       string                  `json:"number"`
	CustomerID   uuid.UUID               `json:"customer_id"`
	Buyer        invoicing.PartySnapshot `json:"buyer"`
	Title        string                  `json:"title"`
	Lines        []invoicing.InvoiceLine `json:"lines"`
	TaxRegime    string                  `json:"tax_regime"`
	NetTotal     decimal.Decimal         `json:"net_total"`
	TaxTotal     decimal.Decimal         `json:"tax_total"`
	GrossTotal   decimal.Decimal         `json:"gross_total"`
	ValidUntil   Date                    `json:"valid_until" swaggertype:"string"`
	Status       string                  `json:"status"`
	SentAt       *Date                   `json:"sent_at" swaggertype:"string"`
	AcceptedAt   *Date                   `json:"accepted_at" swaggertype:"string"`
	RejectedAt   *Date                   `json:"rejected_at" swaggertype:"string"`
	RejectReason string                  `json:"reject_reason,omitempty"`
	InvoiceID    *uuid.UUID              `json:"invoice_id,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
	Version      int                     `json:"version"`
}

// ToOfferResponse converts a domain Offer to OfferResponse. Sent offers past
// their validity are reported as expired.
func ToOfferResponse(o *invoicing.Offer, asOf time.Time) OfferResponse {
	return OfferResponse{
		ID:           o.ID,
		Number:       o.Number,
		CustomerID:   o.CustomerID,
		Buyer:        o.Buyer,
		Title:        o.Title,
		Lines:        o.Lines,
		TaxRegime:    string(o.TaxRegime),
		NetTotal:     o.NetTotal,
		TaxTotal:     o.TaxTotal,
		GrossTotal:   o.GrossTotal,
		ValidUntil:   NewDate(o.ValidUntil),
		Status:       o.EffectiveStatus(asOf),
		SentAt:       datePtr(o.SentAt),
		AcceptedAt:   datePtr(o.AcceptedAt),
		RejectedAt:   datePtr(o.RejectedAt),
		RejectReason: o.RejectReason,
		InvoiceID:    o.InvoiceID,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		Version:      o.Version,
	}
}

// ConvertOfferResponse holds the converted offer and its draft invoice
type ConvertOfferResponse struct {
	Offer   OfferResponse   `json:"offer"`
	Invoice InvoiceResponse `json:"invoice"`
}

// ---------------------------------------------------------------------------
// Expense

// CreateExpenseRequest books an expense. The VAT rate defaults to 19 percent.
type CreateExpenseRequest struct {
	Date        Date             `json:"date" swaggertype:"string" example:"2024-05-01"`
	Vendor      string           `json:"vendor" binding:"required,min=1,max=200"`
	Category    string           `json:"category" binding:"omitempty,oneof=office travel software rent marketing vehicle other"`
	Description string           `json:"description" binding:"max=2000"`
	NetAmount   decimal.Decimal  `json:"net_amount"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
}

// ExpenseListFilter represents filter options for the expense list
type ExpenseListFilter struct {
	ListParams
	Category string     `form:"category" binding:"omitempty,oneof=office travel software rent marketing vehicle other"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Date        Date            `json:"date" swaggertype:"string"`
	Vendor      string          `json:"vendor"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	NetAmount   decimal.Decimal `json:"net_amount"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	GrossAmount decimal.Decimal `json:"gross_amount"`
	HasReceipt  bool            `json:"has_receipt"`
	CreatedAt   time.Time       `json:"created_at"`
	Version     int             `json:"version"`
}

// ToExpenseResponse converts a domain Expense to ExpenseResponse
func ToExpenseResponse(e *invoicing.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Date:        NewDate(e.Date),
		Vendor:      e.Vendor,
		Category:    string(e.Category),
		Description: e.Description,
		NetAmount:   e.NetAmount,
		TaxRate:     e.TaxRate,
		TaxAmount:   e.TaxAmount,
		GrossAmount: e.GrossAmount,
		HasReceipt:  e.ReceiptKey != "",
		CreatedAt:   e.CreatedAt,
		Version:     e.Version,
	}
}

// ReceiptUploadRequest asks for a presigned upload URL
type ReceiptUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"required"`
}

// ReceiptUploadResponse carries the presigned PUT URL
type ReceiptUploadResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ReceiptDownloadResponse carries the presigned GET URL
type ReceiptDownloadResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

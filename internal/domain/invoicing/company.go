package invoicing

import (
	"strings"

	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// NumberingSettings controls the document number format of a company
type NumberingSettings struct {
	InvoicePrefix      string `json:"invoice_prefix"`
	CancellationPrefix string `json:"cancellation_prefix"`
	DunningPrefix      string `json:"dunning_prefix"`
	OfferPrefix        string `json:"offer_prefix"`
	CustomerPrefix     string `json:"customer_prefix"`
	YearlyReset        bool   `json:"yearly_reset"`
	Padding            int    `json:"padding"`
}

// DefaultNumberingSettings returns RE/ST/MA/AN/KD prefixes with a yearly reset
func DefaultNumberingSettings() NumberingSettings {
	return NumberingSettings{
		InvoicePrefix:      "RE",
		CancellationPrefix: "ST",
		DunningPrefix:      "MA",
		OfferPrefix:        "AN",
		CustomerPrefix:     "KD",
		YearlyReset:        true,
		Padding:            5,
	}
}

// PrefixFor returns the configured prefix for a document type
func (n NumberingSettings) PrefixFor(docType DocumentType) string {
	switch docType {
	case DocumentTypeInvoice:
		return n.InvoicePrefix
	case DocumentTypeCancellation:
		return n.CancellationPrefix
	case DocumentTypeDunning:
		return n.DunningPrefix
	case DocumentTypeOffer:
		return n.OfferPrefix
	case DocumentTypeCustomer:
		return n.CustomerPrefix
	}
	return ""
}

// Validate checks that prefixes are set and distinct
func (n NumberingSettings) Validate() error {
	seen := map[string]bool{}
	for _, p := range []string{n.InvoicePrefix, n.CancellationPrefix, n.DunningPrefix, n.OfferPrefix, n.CustomerPrefix} {
		p = strings.TrimSpace(p)
		if p == "" || len(p) > 10 {
			return shared.NewDomainError("INVALID_NUMBER_PREFIX", "Number prefixes must be 1 to 10 characters")
		}
		if seen[p] {
			return shared.NewDomainError("INVALID_NUMBER_PREFIX", "Number prefixes must be unique per document type")
		}
		seen[p] = true
	}
	if n.Padding < 1 || n.Padding > 10 {
		return shared.NewDomainError("INVALID_NUMBER_PADDING", "Number padding must be between 1 and 10")
	}
	return nil
}

// Company is the invoicing party and the tenant boundary: every other aggregate
// carries the company ID as its tenant ID.
type Company struct {
	shared.BaseAggregateRoot
	Name                   string
	LegalForm              string
	Address                valueobject.Address
	Email                  string
	Phone                  string
	VATID                  string // USt-IdNr.
	TaxNumber              string // Steuernummer
	IBAN                   string
	BIC                    string
	BankName               string
	SmallBusiness          bool // Kleinunternehmerregelung §19 UStG
	DefaultPaymentTermDays int
	TaxRates               TaxRates
	Numbering              NumberingSettings
	Dunning                DunningSettings
	Active                 bool
}

// NewCompany creates a company with German defaults for tax, numbering and dunning
func NewCompany(name string, address valueobject.Address) (*Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}

	c := &Company{
		BaseAggregateRoot:      shared.NewBaseAggregateRoot(),
		Name:                   name,
		Address:                address,
		DefaultPaymentTermDays: 14,
		TaxRates:               DefaultTaxRates(),
		Numbering:              DefaultNumberingSettings(),
		Dunning:                DefaultDunningSettings(),
		Active:                 true,
	}
	c.AddDomainEvent(NewCompanyCreatedEvent(c))
	return c, nil
}

// TenantID returns the tenant identifier, which is the company ID
func (c *Company) TenantID() uuid.UUID {
	return c.ID
}

// CompanyProfile is the editable master data of a company
type CompanyProfile struct {
	Name                   string
	LegalForm              string
	Address                valueobject.Address
	Email                  string
	Phone                  string
	VATID                  string
	TaxNumber              string
	IBAN                   string
	BIC                    string
	BankName               string
	SmallBusiness          bool
	DefaultPaymentTermDays int
	TaxRates               TaxRates
	Numbering              NumberingSettings
}

// UpdateProfile replaces the master data
func (c *Company) UpdateProfile(p CompanyProfile) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	if p.DefaultPaymentTermDays < 0 || p.DefaultPaymentTermDays > 365 {
		return shared.NewDomainError("INVALID_PAYMENT_TERMS", "Payment terms must be between 0 and 365 days")
	}
	vatID := NormalizeVATID(p.VATID)
	if vatID != "" {
		if err := ValidateVATID(vatID); err != nil {
			return err
		}
	}
	if err := p.TaxRates.Validate(); err != nil {
		return err
	}
	if err := p.Numbering.Validate(); err != nil {
		return err
	}

	c.Name = name
	c.LegalForm = strings.TrimSpace(p.LegalForm)
	c.Address = p.Address
	c.Email = strings.TrimSpace(p.Email)
	c.Phone = strings.TrimSpace(p.Phone)
	c.VATID = vatID
	c.TaxNumber = strings.TrimSpace(p.TaxNumber)
	c.IBAN = strings.ToUpper(strings.ReplaceAll(p.IBAN, " ", ""))
	c.BIC = strings.ToUpper(strings.TrimSpace(p.BIC))
	c.BankName = strings.TrimSpace(p.BankName)
	c.SmallBusiness = p.SmallBusiness
	c.DefaultPaymentTermDays = p.DefaultPaymentTermDays
	c.TaxRates = p.TaxRates
	c.Numbering = p.Numbering
	c.IncrementVersion()
	return nil
}

// UpdateDunningSettings replaces the dunning configuration after validating it
func (c *Company) UpdateDunningSettings(s DunningSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.Dunning = s
	c.IncrementVersion()
	c.AddDomainEvent(NewDunningSettingsChangedEvent(c))
	return nil
}

// Deactivate stops scheduled dunning runs and new invoices for the company
func (c *Company) Deactivate() error {
	if !c.Active {
		return shared.NewDomainError("INVALID_STATE", "Company is already inactive")
	}
	c.Active = false
	c.IncrementVersion()
	return nil
}

// Seller returns the seller data printed on documents
func (c *Company) Seller() PartySnapshot {
	return PartySnapshot{
		Name:    c.Name,
		Address: c.Address,
		VATID:   c.VATID,
		Email:   c.Email,
	}
}

package invoicing

import (
	"regexp"
	"strings"

	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CustomerKind distinguishes businesses from consumers; it drives reverse
// charge eligibility and the statutory default interest rate.
type CustomerKind string

const (
	CustomerKindBusiness CustomerKind = "business"
	CustomerKindConsumer CustomerKind = "consumer"
)

// IsValid checks if the kind is known
func (k CustomerKind) IsValid() bool {
	return k == CustomerKindBusiness || k == CustomerKindConsumer
}

var (
	vatIDPattern   = regexp.MustCompile(`^[A-Z]{2}[0-9A-Z+*]{2,12}$`)
	germanVATIDPat = regexp.MustCompile(`^DE[0-9]{9}$`)
)

// NormalizeVATID upper-cases and strips spaces and dots from a VAT ID
func NormalizeVATID(raw string) string {
	r := strings.NewReplacer(" ", "", ".", "", "-", "")
	return strings.ToUpper(r.Replace(strings.TrimSpace(raw)))
}

// ValidateVATID checks the syntactic shape of a normalized EU VAT ID
func ValidateVATID(vatID string) error {
	if !vatIDPattern.MatchString(vatID) {
		return shared.NewDomainError("INVALID_VAT_ID", "VAT ID must start with a country code followed by 2 to 12 characters")
	}
	if strings.HasPrefix(vatID, "DE") && !germanVATIDPat.MatchString(vatID) {
		return shared.NewDomainError("INVALID_VAT_ID", "German VAT IDs consist of DE and 9 digits")
	}
	return nil
}

// Customer is an invoice recipient
type Customer struct {
	shared.TenantAggregateRoot
	Number          string
	Kind            CustomerKind
	Name            string
	ContactPerson   string
	Email           string
	Phone           string // E.164
	Address         valueobject.Address
	VATID           string
	PaymentTermDays *int // overrides the company default when set
	Notes           string
	Active          bool
}

// CustomerDetails is the editable data of a customer
type CustomerDetails struct {
	Kind            CustomerKind
	Name            string
	ContactPerson   string
	Email           string
	Phone           string
	Address         valueobject.Address
	VATID           string
	PaymentTermDays *int
	Notes           string
}

// NewCustomer creates a customer with an already assigned customer number
func NewCustomer(tenantID uuid.UUID, number string, d CustomerDetails) (*Customer, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NUMBER", "Customer number cannot be empty")
	}
	c := &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		Active:              true,
	}
	if err := c.apply(d); err != nil {
		return nil, err
	}
	c.AddDomainEvent(NewCustomerCreatedEvent(c))
	return c, nil
}

// Update replaces the customer's details
func (c *Customer) Update(d CustomerDetails) error {
	if err := c.apply(d); err != nil {
		return err
	}
	c.IncrementVersion()
	return nil
}

func (c *Customer) apply(d CustomerDetails) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot exceed 200 characters")
	}
	if d.Kind == "" {
		d.Kind = CustomerKindBusiness
	}
	if !d.Kind.IsValid() {
		return shared.NewDomainError("INVALID_CUSTOMER_KIND", "Customer kind must be business or consumer")
	}
	vatID := NormalizeVATID(d.VATID)
	if vatID != "" {
		if d.Kind == CustomerKindConsumer {
			return shared.NewDomainError("INVALID_VAT_ID", "Consumers cannot carry a VAT ID")
		}
		if err := ValidateVATID(vatID); err != nil {
			return err
		}
	}
	phone, err := valueobject.NormalizePhone(d.Phone, d.Address.Country)
	if err != nil {
		return shared.NewDomainError("INVALID_PHONE", err.Error())
	}
	if d.PaymentTermDays != nil && (*d.PaymentTermDays < 0 || *d.PaymentTermDays > 365) {
		return shared.NewDomainError("INVALID_PAYMENT_TERMS", "Payment terms must be between 0 and 365 days")
	}

	c.Kind = d.Kind
	c.Name = name
	c.ContactPerson = strings.TrimSpace(d.ContactPerson)
	c.Email = strings.ToLower(strings.TrimSpace(d.Email))
	c.Phone = phone
	c.Address = d.Address
	c.VATID = vatID
	c.PaymentTermDays = d.PaymentTermDays
	c.Notes = d.Notes
	return nil
}

// Deactivate hides the customer from new invoices
func (c *Customer) Deactivate() error {
	if !c.Active {
		return shared.NewDomainError("INVALID_STATE", "Customer is already inactive")
	}
	c.Active = false
	c.IncrementVersion()
	return nil
}

// EffectivePaymentTerms returns the customer override or the company default
func (c *Customer) EffectivePaymentTerms(companyDefault int) int {
	if c.PaymentTermDays != nil {
		return *c.PaymentTermDays
	}
	return companyDefault
}

// TaxParty returns the VAT-relevant view of the customer
func (c *Customer) TaxParty() TaxParty {
	return TaxParty{Kind: c.Kind, Country: c.Address.Country, VATID: c.VATID}
}

// Snapshot freezes the customer data printed on a document
func (c *Customer) Snapshot() PartySnapshot {
	return PartySnapshot{
		Name:    c.Name,
		Address: c.Address,
		VATID:   c.VATID,
		Email:   c.Email,
		Kind:    c.Kind,
	}
}

// PartySnapshot is the seller or buyer data frozen on an issued document
type PartySnapshot struct {
	Name    string              `json:"name"`
	Address valueobject.Address `json:"address"`
	VATID   string              `json:"vat_id,omitempty"`
	Email   string              `json:"email,omitempty"`
	Kind    CustomerKind        `json:"kind,omitempty"`
}

// TaxParty returns the VAT-relevant view of the snapshot
func (p PartySnapshot) TaxParty() TaxParty {
	return TaxParty{Kind: p.Kind, Country: p.Address.Country, VATID: p.VATID}
}

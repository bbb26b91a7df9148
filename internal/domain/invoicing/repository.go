package invoicing

import (
	"context"
	"time"

	"github.com/faktura/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyRepository defines the interface for company persistence
type CompanyRepository interface {
	// FindByID finds a company by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)

	// FindActiveIDs returns the IDs of all active companies
	FindActiveIDs(ctx context.Context) ([]uuid.UUID, error)

	// Create inserts a new company
	Create(ctx context.Context, company *Company) error

	// SaveWithLock updates a company with optimistic locking
	SaveWithLock(ctx context.Context, company *Company) error
}

// CustomerFilter narrows customer listings
type CustomerFilter struct {
	shared.Filter
	Kind   *CustomerKind
	Active *bool
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*Customer, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter CustomerFilter) ([]Customer, int64, error)
	Create(ctx context.Context, customer *Customer) error
	SaveWithLock(ctx context.Context, customer *Customer) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// ProductFilter narrows product listings
type ProductFilter struct {
	shared.Filter
	Active *bool
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Product, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ProductFilter) ([]Product, int64, error)
	ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error)
	Create(ctx context.Context, product *Product) error
	SaveWithLock(ctx context.Context, product *Product) error
}

// InvoiceFilter narrows invoice listings
type InvoiceFilter struct {
	shared.Filter
	CustomerID   *uuid.UUID
	Type         *InvoiceType
	Statuses     []InvoiceStatus
	DunningLevel *DunningLevel
	IssuedFrom   *time.Time
	IssuedTo     *time.Time
	OverdueAsOf  *time.Time // only unpaid invoices due before this date
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByIDForTenant finds an invoice by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)

	// FindByNumber finds an issued invoice by its number
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*Invoice, error)

	// FindCorrection finds the replacement invoice created for a corrected invoice
	FindCorrection(ctx context.Context, tenantID, originalID uuid.UUID) (*Invoice, error)

	// FindAllForTenant lists invoices matching the filter
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter InvoiceFilter) ([]Invoice, int64, error)

	// FindDunnable returns standard invoices that are open or partially paid,
	// not blocked, and due before asOf, oldest due date first
	FindDunnable(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]Invoice, error)

	// FindOpenItems returns issued standard invoices with an outstanding balance
	FindOpenItems(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]Invoice, error)

	// CountByCustomer counts invoices, drafts included, of a customer
	CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error)

	// Create inserts a new invoice
	Create(ctx context.Context, invoice *Invoice) error

	// SaveWithLock updates an invoice with optimistic locking
	SaveWithLock(ctx context.Context, invoice *Invoice) error

	// DeleteDraft removes a draft; issued invoices are never deleted
	DeleteDraft(ctx context.Context, tenantID, id uuid.UUID) error
}

// DunningNoticeRepository defines the interface for dunning notice persistence
type DunningNoticeRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*DunningNotice, error)
	FindByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]DunningNotice, error)
	FindByRun(ctx context.Context, tenantID, runID uuid.UUID) ([]DunningNotice, error)
	Create(ctx context.Context, notice *DunningNotice) error
}

// DunningRunRepository defines the interface for dunning run persistence
type DunningRunRepository interface {
	// FindByDate finds the run of a tenant for a run date
	FindByDate(ctx context.Context, tenantID uuid.UUID, runDate time.Time) (*DunningRun, error)

	// FindAllForTenant lists runs, newest first
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]DunningRun, int64, error)

	// Create inserts a run; returns shared.ErrAlreadyExists when the tenant already has a run for that date
	Create(ctx context.Context, run *DunningRun) error

	// Update stores counters and status
	Update(ctx context.Context, run *DunningRun) error
}

// NumberSequenceRepository defines the persistence needed for gapless numbering.
// All methods must be called inside the transaction that stores the numbered document.
type NumberSequenceRepository interface {
	// FindAssignment returns the number previously assigned to an idempotency key
	FindAssignment(ctx context.Context, tenantID uuid.UUID, docType DocumentType, key string) (*NumberAssignment, error)

	// LockSequence loads the sequence row identified by init's tenant, type and
	// year for update, inserting init first when the row does not exist yet
	LockSequence(ctx context.Context, init *NumberSequence) (*NumberSequence, error)

	// SaveSequence stores the advanced counter of a locked sequence
	SaveSequence(ctx context.Context, seq *NumberSequence) error

	// SaveAssignment records an assignment
	SaveAssignment(ctx context.Context, a *NumberAssignment) error
}

// OfferFilter narrows offer listings
type OfferFilter struct {
	shared.Filter
	CustomerID *uuid.UUID
	Status     *OfferStatus
}

// OfferRepository defines the interface for offer persistence
type OfferRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Offer, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter OfferFilter) ([]Offer, int64, error)
	Create(ctx context.Context, offer *Offer) error
	SaveWithLock(ctx context.Context, offer *Offer) error
}

// ExpenseFilter narrows expense listings
type ExpenseFilter struct {
	shared.Filter
	Category *ExpenseCategory
	From     *time.Time
	To       *time.Time
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Expense, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ExpenseFilter) ([]Expense, int64, error)
	Create(ctx context.Context, expense *Expense) error
	SaveWithLock(ctx context.Context, expense *Expense) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

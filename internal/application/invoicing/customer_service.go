package invoicing

import (
	"context"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerService handles customer master data
type CustomerService struct {
	eventSupport
	customerRepo invoicing.CustomerRepository
	invoiceRepo  invoicing.InvoiceRepository
	numbering    *NumberingService
	transactor   shared.Transactor
	clock        Clock
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo invoicing.CustomerRepository,
	invoiceRepo invoicing.InvoiceRepository,
	numbering *NumberingService,
	transactor shared.Transactor,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		numbering:    numbering,
		transactor:   transactor,
	}
}

// SetClock overrides the time source
func (s *CustomerService) SetClock(c Clock) {
	s.clock = c
}

// Create creates a customer with the next KD number
func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, req CustomerRequest) (*CustomerResponse, error) {
	details, err := req.toDetails()
	if err != nil {
		return nil, err
	}

	var customer *invoicing.Customer
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		number, err := s.numbering.Next(ctx, tenantID, invoicing.DocumentTypeCustomer, "", s.clock.today())
		if err != nil {
			return err
		}
		customer, err = invoicing.NewCustomer(tenantID, number, details)
		if err != nil {
			return err
		}
		return s.customerRepo.Create(ctx, customer)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Get retrieves a customer by ID
func (s *CustomerService) Get(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	domainFilter := invoicing.CustomerFilter{
		Filter: filter.toFilter("name", "asc"),
		Active: filter.Active,
	}
	if filter.Kind != "" {
		kind := invoicing.CustomerKind(filter.Kind)
		domainFilter.Kind = &kind
	}

	customers, total, err := s.customerRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses, total, nil
}

// Update replaces a customer's details. Issued invoices keep their snapshot.
func (s *CustomerService) Update(ctx context.Context, tenantID, customerID uuid.UUID, req CustomerRequest) (*CustomerResponse, error) {
	details, err := req.toDetails()
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	if err := customer.Update(details); err != nil {
		return nil, err
	}
	if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// Deactivate hides a customer from new invoices and offers
func (s *CustomerService) Deactivate(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	if err := customer.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete removes a customer that never received an invoice. Customers with
// invoices are retained and can only be deactivated.
func (s *CustomerService) Delete(ctx context.Context, tenantID, customerID uuid.UUID) error {
	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID); err != nil {
			return err
		}
		count, err := s.invoiceRepo.CountByCustomer(ctx, tenantID, customerID)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.NewDomainError("CUSTOMER_HAS_INVOICES", "Customers with invoices cannot be deleted; deactivate them instead")
		}
		return s.customerRepo.DeleteForTenant(ctx, tenantID, customerID)
	})
}

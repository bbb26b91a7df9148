package invoicing

import (
	"context"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OfferService handles quotes and their conversion into invoices
type OfferService struct {
	eventSupport
	offerRepo    invoicing.OfferRepository
	invoiceRepo  invoicing.InvoiceRepository
	customerRepo invoicing.CustomerRepository
	companyRepo  invoicing.CompanyRepository
	numbering    *NumberingService
	transactor   shared.Transactor
	lines        lineBuilder
	clock        Clock
}

// NewOfferService creates a new OfferService
func NewOfferService(
	offerRepo invoicing.OfferRepository,
	invoiceRepo invoicing.InvoiceRepository,
	customerRepo invoicing.CustomerRepository,
	companyRepo invoicing.CompanyRepository,
	productRepo invoicing.ProductRepository,
	numbering *NumberingService,
	transactor shared.Transactor,
) *OfferService {
	return &OfferService{
		offerRepo:    offerRepo,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		numbering:    numbering,
		transactor:   transactor,
		lines:        lineBuilder{products: productRepo},
	}
}

// SetClock overrides the time source
func (s *OfferService) SetClock(c Clock) {
	s.clock = c
}

// Create creates a draft offer
func (s *OfferService) Create(ctx context.Context, tenantID uuid.UUID, req CreateOfferRequest) (*OfferResponse, error) {
	company, err := requireActiveCompany(ctx, s.companyRepo, tenantID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, req.CustomerID)
	if err != nil {
		if shared.ErrorCode(err) == shared.ErrNotFound.Code {
			return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer not found")
		}
		return nil, err
	}
	if !customer.Active {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer is inactive")
	}
	lines, err := s.lines.build(ctx, tenantID, req.Lines)
	if err != nil {
		return nil, err
	}

	offer, err := invoicing.NewOffer(company, customer, req.Title, lines, req.ValidUntil.Time)
	if err != nil {
		return nil, err
	}
	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, err
	}
	response := ToOfferResponse(offer, s.clock.today())
	return &response, nil
}

// Get retrieves an offer by ID
func (s *OfferService) Get(ctx context.Context, tenantID, offerID uuid.UUID) (*OfferResponse, error) {
	offer, err := s.offerRepo.FindByIDForTenant(ctx, tenantID, offerID)
	if err != nil {
		return nil, err
	}
	response := ToOfferResponse(offer, s.clock.today())
	return &response, nil
}

// List retrieves offers with filtering and pagination
func (s *OfferService) List(ctx context.Context, tenantID uuid.UUID, filter OfferListFilter) ([]OfferResponse, int64, error) {
	domainFilter := invoicing.OfferFilter{
		Filter:     filter.toFilter("created_at", "desc"),
		CustomerID: filter.CustomerID,
	}
	if filter.Status != "" {
		status := invoicing.OfferStatus(filter.Status)
		domainFilter.Status = &status
	}

	offers, total, err := s.offerRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	today := s.clock.today()
	responses := make([]OfferResponse, len(offers))
	for i := range offers {
		responses[i] = ToOfferResponse(&offers[i], today)
	}
	return responses, total, nil
}

// Send numbers a draft offer and marks it as sent
func (s *OfferService) Send(ctx context.Context, tenantID, offerID uuid.UUID) (*OfferResponse, error) {
	today := s.clock.today()
	var offer *invoicing.Offer
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		offer, err = s.offerRepo.FindByIDForTenant(ctx, tenantID, offerID)
		if err != nil {
			return err
		}
		if offer.Status == invoicing.OfferStatusDraft && offer.IsExpired(today) {
			return shared.NewDomainError("OFFER_EXPIRED", "Offer validity date lies in the past")
		}
		number, err := s.numbering.Next(ctx, tenantID, invoicing.DocumentTypeOffer, offerKey(offer.ID), today)
		if err != nil {
			return err
		}
		if err := offer.Send(number, today); err != nil {
			return err
		}
		return s.offerRepo.SaveWithLock(ctx, offer)
	})
	if err != nil {
		return nil, err
	}
	response := ToOfferResponse(offer, today)
	return &response, nil
}

// Accept records the customer's acceptance
func (s *OfferService) Accept(ctx context.Context, tenantID, offerID uuid.UUID) (*OfferResponse, error) {
	today := s.clock.today()
	offer, err := s.offerRepo.FindByIDForTenant(ctx, tenantID, offerID)
	if err != nil {
		return nil, err
	}
	if err := offer.Accept(today); err != nil {
		return nil, err
	}
	if err := s.offerRepo.SaveWithLock(ctx, offer); err != nil {
		return nil, err
	}
	s.publish(ctx, offer)
	response := ToOfferResponse(offer, today)
	return &response, nil
}

// Reject records the customer's rejection
func (s *OfferService) Reject(ctx context.Context, tenantID, offerID uuid.UUID, req ReasonRequest) (*OfferResponse, error) {
	today := s.clock.today()
	offer, err := s.offerRepo.FindByIDForTenant(ctx, tenantID, offerID)
	if err != nil {
		return nil, err
	}
	if err := offer.Reject(today, req.Reason); err != nil {
		return nil, err
	}
	if err := s.offerRepo.SaveWithLock(ctx, offer); err != nil {
		return nil, err
	}
	response := ToOfferResponse(offer, today)
	return &response, nil
}

// Convert turns an accepted offer into a draft invoice
func (s *OfferService) Convert(ctx context.Context, tenantID, offerID uuid.UUID) (*ConvertOfferResponse, error) {
	var (
		offer *invoicing.Offer
		draft *invoicing.Invoice
	)
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		offer, err = s.offerRepo.FindByIDForTenant(ctx, tenantID, offerID)
		if err != nil {
			return err
		}
		company, err := requireActiveCompany(ctx, s.companyRepo, tenantID)
		if err != nil {
			return err
		}
		customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, offer.CustomerID)
		if err != nil {
			return err
		}
		draft, err = offer.ConvertToInvoice(company, customer)
		if err != nil {
			return err
		}
		if err := s.invoiceRepo.Create(ctx, draft); err != nil {
			return err
		}
		return s.offerRepo.SaveWithLock(ctx, offer)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, offer)

	return &ConvertOfferResponse{
		Offer:   ToOfferResponse(offer, s.clock.today()),
		Invoice: ToInvoiceResponse(draft),
	}, nil
}

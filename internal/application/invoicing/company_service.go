package invoicing

import (
	"context"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyService handles company (tenant) master data
type CompanyService struct {
	eventSupport
	companyRepo invoicing.CompanyRepository
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo invoicing.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// Create registers a company with German defaults for tax, numbering and dunning
func (s *CompanyService) Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error) {
	addr, err := req.Address.toDomain()
	if err != nil {
		return nil, err
	}
	company, err := invoicing.NewCompany(req.Name, addr)
	if err != nil {
		return nil, err
	}

	terms := company.DefaultPaymentTermDays
	if req.DefaultPaymentTermDays != nil {
		terms = *req.DefaultPaymentTermDays
	}
	if err := company.UpdateProfile(invoicing.CompanyProfile{
		Name:                   req.Name,
		LegalForm:              req.LegalForm,
		Address:                addr,
		Email:                  req.Email,
		Phone:                  req.Phone,
		VATID:                  req.VATID,
		TaxNumber:              req.TaxNumber,
		IBAN:                   req.IBAN,
		BIC:                    req.BIC,
		BankName:               req.BankName,
		SmallBusiness:          req.SmallBusiness,
		DefaultPaymentTermDays: terms,
		TaxRates:               company.TaxRates,
		Numbering:              company.Numbering,
	}); err != nil {
		return nil, err
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	s.publish(ctx, company)

	response := ToCompanyResponse(company)
	return &response, nil
}

// Get retrieves a company by ID
func (s *CompanyService) Get(ctx context.Context, companyID uuid.UUID) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	response := ToCompanyResponse(company)
	return &response, nil
}

// ListForTenant returns the companies visible to a tenant, which is only its own
func (s *CompanyService) ListForTenant(ctx context.Context, tenantID uuid.UUID) ([]CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return []CompanyResponse{ToCompanyResponse(company)}, nil
}

// Update replaces the company's master data
func (s *CompanyService) Update(ctx context.Context, companyID uuid.UUID, req UpdateCompanyRequest) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	addr, err := req.Address.toDomain()
	if err != nil {
		return nil, err
	}

	rates := company.TaxRates
	if req.TaxRates != nil {
		rates = invoicing.TaxRates{Standard: req.TaxRates.Standard, Reduced: req.TaxRates.Reduced}
	}
	numbering := company.Numbering
	if req.Numbering != nil {
		numbering = *req.Numbering
	}
	if err := company.UpdateProfile(invoicing.CompanyProfile{
		Name:                   req.Name,
		LegalForm:              req.LegalForm,
		Address:                addr,
		Email:                  req.Email,
		Phone:                  req.Phone,
		VATID:                  req.VATID,
		TaxNumber:              req.TaxNumber,
		IBAN:                   req.IBAN,
		BIC:                    req.BIC,
		BankName:               req.BankName,
		SmallBusiness:          req.SmallBusiness,
		DefaultPaymentTermDays: req.DefaultPaymentTermDays,
		TaxRates:               rates,
		Numbering:              numbering,
	}); err != nil {
		return nil, err
	}

	if err := s.companyRepo.SaveWithLock(ctx, company); err != nil {
		return nil, err
	}
	response := ToCompanyResponse(company)
	return &response, nil
}

// UpdateDunningSettings replaces the escalation thresholds, fees and interest settings
func (s *CompanyService) UpdateDunningSettings(ctx context.Context, companyID uuid.UUID, settings invoicing.DunningSettings) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := company.UpdateDunningSettings(settings); err != nil {
		return nil, err
	}
	if err := s.companyRepo.SaveWithLock(ctx, company); err != nil {
		return nil, err
	}
	s.publish(ctx, company)

	response := ToCompanyResponse(company)
	return &response, nil
}

// Deactivate excludes the company from scheduled dunning runs
func (s *CompanyService) Deactivate(ctx context.Context, companyID uuid.UUID) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := company.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.companyRepo.SaveWithLock(ctx, company); err != nil {
		return nil, err
	}
	response := ToCompanyResponse(company)
	return &response, nil
}

// ActiveTenantIDs returns the companies the scheduler runs dunning for
func (s *CompanyService) ActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	return s.companyRepo.FindActiveIDs(ctx)
}

// requireActiveCompany loads the tenant's company and rejects deactivated ones
func requireActiveCompany(ctx context.Context, repo invoicing.CompanyRepository, tenantID uuid.UUID) (*invoicing.Company, error) {
	company, err := repo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !company.Active {
		return nil, shared.NewDomainError("COMPANY_INACTIVE", "Company is inactive")
	}
	return company, nil
}

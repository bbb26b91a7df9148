package invoicing

import (
	"context"
	"errors"
	"fmt"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/infrastructure/logger"
	"github.com/faktura/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceService handles the invoice lifecycle from draft to settlement.
// Numbered documents are written in the transaction that draws their number.
type InvoiceService struct {
	eventSupport
	invoiceRepo  invoicing.InvoiceRepository
	customerRepo invoicing.CustomerRepository
	companyRepo  invoicing.CompanyRepository
	noticeRepo   invoicing.DunningNoticeRepository
	numbering    *NumberingService
	transactor   shared.Transactor
	lines        lineBuilder
	metrics      *telemetry.BusinessMetrics
	clock        Clock
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo invoicing.InvoiceRepository,
	customerRepo invoicing.CustomerRepository,
	companyRepo invoicing.CompanyRepository,
	productRepo invoicing.ProductRepository,
	noticeRepo invoicing.DunningNoticeRepository,
	numbering *NumberingService,
	transactor shared.Transactor,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		noticeRepo:   noticeRepo,
		numbering:    numbering,
		transactor:   transactor,
		lines:        lineBuilder{products: productRepo},
	}
}

// SetMetrics enables business metrics
func (s *InvoiceService) SetMetrics(m *telemetry.BusinessMetrics) {
	s.metrics = m
}

// SetClock overrides the time source
func (s *InvoiceService) SetClock(c Clock) {
	s.clock = c
}

// CreateDraft creates a draft invoice for a customer
func (s *InvoiceService) CreateDraft(ctx context.Context, tenantID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	company, err := requireActiveCompany(ctx, s.companyRepo, tenantID)
	if err != nil {
		return nil, err
	}
	customer, err := s.findCustomer(ctx, tenantID, req.CustomerID)
	if err != nil {
		return nil, err
	}

	terms := customer.EffectivePaymentTerms(company.DefaultPaymentTermDays)
	if req.PaymentTermDays != nil {
		terms = *req.PaymentTermDays
	}
	inv, err := invoicing.NewDraftInvoice(tenantID, customer, terms)
	if err != nil {
		return nil, err
	}
	lines, err := s.lines.build(ctx, tenantID, req.Lines)
	if err != nil {
		return nil, err
	}
	if err := inv.UpdateDraft(invoicing.DraftChanges{
		Lines:           lines,
		ServiceDate:     req.ServiceDate.timePtr(),
		PaymentTermDays: terms,
		RequestedRegime: invoicing.TaxRegime(req.TaxRegime),
		Notes:           req.Notes,
	}, company, customer); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(inv)
	return &response, nil
}

// UpdateDraft replaces the lines, dates and notes of a draft
func (s *InvoiceService) UpdateDraft(ctx context.Context, tenantID, invoiceID uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status != invoicing.InvoiceStatusDraft {
		return nil, immutableError(inv)
	}
	company, err := requireActiveCompany(ctx, s.companyRepo, tenantID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, inv.CustomerID)
	if err != nil {
		return nil, err
	}

	terms := inv.PaymentTermDays
	if req.PaymentTermDays != nil {
		terms = *req.PaymentTermDays
	}
	lines, err := s.lines.build(ctx, tenantID, req.Lines)
	if err != nil {
		return nil, err
	}
	if err := inv.UpdateDraft(invoicing.DraftChanges{
		Lines:           lines,
		ServiceDate:     req.ServiceDate.timePtr(),
		PaymentTermDays: terms,
		RequestedRegime: invoicing.TaxRegime(req.TaxRegime),
		Notes:           req.Notes,
	}, company, customer); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(inv)
	return &response, nil
}

// DeleteDraft removes a draft. Issued invoices are never deleted.
func (s *InvoiceService) DeleteDraft(ctx context.Context, tenantID, invoiceID uuid.UUID) error {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return err
	}
	if inv.Status != invoicing.InvoiceStatusDraft {
		return immutableError(inv)
	}
	return s.invoiceRepo.DeleteDraft(ctx, tenantID, invoiceID)
}

// Issue numbers a draft and makes it binding. Issuing an invoice that is
// already issued returns it unchanged.
func (s *InvoiceService) Issue(ctx context.Context, tenantID, invoiceID uuid.UUID, req IssueInvoiceRequest) (*InvoiceResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "invoice", "issue",
		telemetry.AttrTenantID.String(tenantID.String()),
		telemetry.AttrInvoiceID.String(invoiceID.String()),
	)
	defer span.End()

	issueDate := s.clock.today()
	if d := req.IssueDate.timePtr(); d != nil {
		issueDate = *d
	}

	var (
		inv    *invoicing.Invoice
		issued bool
	)
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		inv, err = s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
		if err != nil {
			return err
		}
		if inv.Status.IsIssued() {
			return nil
		}

		company, err := requireActiveCompany(ctx, s.companyRepo, tenantID)
		if err != nil {
			return err
		}
		customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, inv.CustomerID)
		if err != nil {
			return err
		}
		// buyer, seller and tax regime are frozen as of the issue date
		inv.Reprice(company, customer)

		number, err := s.numbering.Next(ctx, tenantID, invoicing.DocumentTypeInvoice, issueKey(inv.ID), issueDate)
		if err != nil {
			return err
		}
		if err := inv.Issue(number, issueDate); err != nil {
			return err
		}
		issued = true
		return s.invoiceRepo.SaveWithLock(ctx, inv)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if issued {
		span.SetAttributes(telemetry.AttrInvoiceNumber.String(inv.Number))
		s.metrics.RecordInvoiceIssued(ctx, tenantID.String(), string(inv.TaxRegime), inv.GrossTotal)
		logger.L(ctx).Info("invoice issued",
			zap.String("invoice_id", inv.ID.String()),
			zap.String("number", inv.Number),
			zap.String("tax_regime", string(inv.TaxRegime)),
			zap.String("gross_total", inv.GrossTotal.StringFixed(2)),
		)
		s.publish(ctx, inv)
	}
	response := ToInvoiceResponse(inv)
	return &response, nil
}

// RecordPayment books a received payment against an issued invoice
func (s *InvoiceService) RecordPayment(ctx context.Context, tenantID, invoiceID uuid.UUID, req RecordPaymentRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	receivedOn := s.clock.today()
	if d := req.ReceivedOn.timePtr(); d != nil {
		receivedOn = *d
	}
	method := invoicing.PaymentMethodBankTransfer
	if req.Method != "" {
		method = invoicing.PaymentMethod(req.Method)
	}
	if _, err := inv.RecordPayment(req.Amount, receivedOn, method, req.Reference); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}

	s.metrics.RecordPayment(ctx, tenantID.String(), req.Amount)
	s.publish(ctx, inv)
	response := ToInvoiceResponse(inv)
	return &response, nil
}

// Cancel cancels an unpaid invoice by issuing a Stornorechnung. Repeating the
// call for an already cancelled invoice returns the existing pair.
func (s *InvoiceService) Cancel(ctx context.Context, tenantID, invoiceID uuid.UUID, req CancelInvoiceRequest) (*CancelInvoiceResponse, error) {
	var inv, storno *invoicing.Invoice
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		inv, storno, err = s.cancel(ctx, tenantID, invoiceID, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, inv, storno)

	return &CancelInvoiceResponse{
		Invoice:      ToInvoiceResponse(inv),
		Cancellation: ToInvoiceResponse(storno),
	}, nil
}

// Correct cancels an invoice and opens a draft copy linked to it, ready to
// be edited and issued under a new number. Repeating it returns the
// replacement created the first time.
func (s *InvoiceService) Correct(ctx context.Context, tenantID, invoiceID uuid.UUID, req CancelInvoiceRequest) (*CorrectInvoiceResponse, error) {
	var inv, storno, draft *invoicing.Invoice
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		inv, storno, err = s.cancel(ctx, tenantID, invoiceID, req)
		if err != nil {
			return err
		}
		draft, err = s.invoiceRepo.FindCorrection(ctx, tenantID, inv.ID)
		switch {
		case err == nil:
			return nil
		case !errors.Is(err, shared.ErrNotFound):
			return err
		}
		draft, err = inv.CorrectionDraft()
		if err != nil {
			return err
		}
		return s.invoiceRepo.Create(ctx, draft)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, inv, storno)

	return &CorrectInvoiceResponse{
		CancelInvoiceResponse: CancelInvoiceResponse{
			Invoice:      ToInvoiceResponse(inv),
			Cancellation: ToInvoiceResponse(storno),
		},
		Draft: ToInvoiceResponse(draft),
	}, nil
}

// cancel must run inside a transaction; a rejected cancellation rolls the
// drawn number back
func (s *InvoiceService) cancel(ctx context.Context, tenantID, invoiceID uuid.UUID, req CancelInvoiceRequest) (*invoicing.Invoice, *invoicing.Invoice, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	if inv.Status == invoicing.InvoiceStatusCancelled && inv.CancelledByInvoiceID != nil {
		storno, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, *inv.CancelledByInvoiceID)
		if err != nil {
			return nil, nil, err
		}
		return inv, storno, nil
	}

	issueDate := s.clock.today()
	if d := req.IssueDate.timePtr(); d != nil {
		issueDate = *d
	}
	number, err := s.numbering.Next(ctx, tenantID, invoicing.DocumentTypeCancellation, cancelKey(inv.ID), issueDate)
	if err != nil {
		return nil, nil, err
	}
	storno, err := inv.CreateCancellation(number, issueDate, req.Reason)
	if err != nil {
		return nil, nil, err
	}
	if err := s.invoiceRepo.Create(ctx, storno); err != nil {
		return nil, nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, nil, err
	}
	logger.L(ctx).Info("invoice cancelled",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("number", inv.Number),
		zap.String("cancellation_number", storno.Number),
	)
	return inv, storno, nil
}

// WriteOff marks the remaining balance of an invoice as uncollectible
func (s *InvoiceService) WriteOff(ctx context.Context, tenantID, invoiceID uuid.UUID, req ReasonRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, tenantID, invoiceID, func(inv *invoicing.Invoice) error {
		return inv.WriteOff(req.Reason)
	})
}

// BlockDunning sets a Mahnsperre on an invoice
func (s *InvoiceService) BlockDunning(ctx context.Context, tenantID, invoiceID uuid.UUID, req ReasonRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, tenantID, invoiceID, func(inv *invoicing.Invoice) error {
		return inv.BlockDunning(req.Reason)
	})
}

// UnblockDunning lifts a Mahnsperre
func (s *InvoiceService) UnblockDunning(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.mutate(ctx, tenantID, invoiceID, func(inv *invoicing.Invoice) error {
		return inv.UnblockDunning()
	})
}

func (s *InvoiceService) mutate(ctx context.Context, tenantID, invoiceID uuid.UUID, fn func(*invoicing.Invoice) error) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := fn(inv); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}
	s.publish(ctx, inv)
	response := ToInvoiceResponse(inv)
	return &response, nil
}

// Get retrieves an invoice by ID
func (s *InvoiceService) Get(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(inv)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, tenantID uuid.UUID, filter InvoiceListFilter) ([]InvoiceListItem, int64, error) {
	domainFilter := invoicing.InvoiceFilter{
		Filter:     filter.toFilter("created_at", "desc"),
		CustomerID: filter.CustomerID,
		IssuedFrom: filter.IssuedFrom,
		IssuedTo:   filter.IssuedTo,
	}
	if filter.Type != "" {
		t := invoicing.InvoiceType(filter.Type)
		domainFilter.Type = &t
	}
	for _, raw := range filter.Status {
		status := invoicing.InvoiceStatus(raw)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown invoice status %q", raw))
		}
		domainFilter.Statuses = append(domainFilter.Statuses, status)
	}
	if filter.DunningLevel != nil {
		level := invoicing.DunningLevel(*filter.DunningLevel)
		domainFilter.DunningLevel = &level
	}
	if filter.Overdue {
		today := s.clock.today()
		domainFilter.OverdueAsOf = &today
	}

	invoices, total, err := s.invoiceRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]InvoiceListItem, len(invoices))
	for i := range invoices {
		items[i] = ToInvoiceListItem(&invoices[i])
	}
	return items, total, nil
}

// ListNotices returns the dunning notices issued for an invoice
func (s *InvoiceService) ListNotices(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]DunningNoticeResponse, error) {
	if _, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID); err != nil {
		return nil, err
	}
	notices, err := s.noticeRepo.FindByInvoice(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	return ToDunningNoticeResponses(notices), nil
}

func (s *InvoiceService) findCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (*invoicing.Customer, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		if shared.ErrorCode(err) == shared.ErrNotFound.Code {
			return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer not found")
		}
		return nil, err
	}
	return customer, nil
}

func immutableError(inv *invoicing.Invoice) error {
	return shared.NewDomainError("INVOICE_IMMUTABLE",
		fmt.Sprintf("Invoice %s is issued and cannot be modified; issue a cancellation invoice instead", inv.Number))
}

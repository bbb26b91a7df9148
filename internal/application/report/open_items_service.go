package report

import (
	"context"
	"time"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/report"
	"github.com/faktura/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// OpenItemsFilter defines the request filter for the open-items report
type OpenItemsFilter struct {
	AsOf   *time.Time `form:"as_of" time_format:"2006-01-02"`
	Format string     `form:"format" binding:"omitempty,oneof=json xlsx"`
}

// OpenItemsService builds the open-items (aging) report
type OpenItemsService struct {
	invoiceRepo invoicing.InvoiceRepository
	clock       func() time.Time
}

// NewOpenItemsService creates a new OpenItemsService
func NewOpenItemsService(invoiceRepo invoicing.InvoiceRepository) *OpenItemsService {
	return &OpenItemsService{
		invoiceRepo: invoiceRepo,
		clock:       time.Now,
	}
}

// SetClock replaces the time source used when no reporting date is given
func (s *OpenItemsService) SetClock(clock func() time.Time) {
	s.clock = clock
}

// OpenItems returns the unpaid invoices of a tenant aged at asOf.
// A nil asOf reports as of today.
func (s *OpenItemsService) OpenItems(ctx context.Context, tenantID uuid.UUID, asOf *time.Time) (*report.OpenItemsReport, error) {
	ctx, span := telemetry.StartSpan(ctx, "report", "open_items",
		telemetry.AttrTenantID.String(tenantID.String()))
	defer span.End()

	date := invoicing.DateOnly(s.clock())
	if asOf != nil {
		date = invoicing.DateOnly(*asOf)
	}

	invoices, err := s.invoiceRepo.FindOpenItems(ctx, tenantID, date)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return report.BuildOpenItems(tenantID, date, invoices), nil
}

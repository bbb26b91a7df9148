package invoicing

import (
	"context"
	"errors"
	"time"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// NumberingService hands out gapless document numbers. A number is drawn
// inside the transaction that stores the numbered document, so a rollback
// returns it to the range.
type NumberingService struct {
	companies  invoicing.CompanyRepository
	sequences  invoicing.NumberSequenceRepository
	transactor shared.Transactor
	metrics    *telemetry.BusinessMetrics
}

// NewNumberingService creates a new NumberingService
func NewNumberingService(
	companies invoicing.CompanyRepository,
	sequences invoicing.NumberSequenceRepository,
	transactor shared.Transactor,
) *NumberingService {
	return &NumberingService{
		companies:  companies,
		sequences:  sequences,
		transactor: transactor,
	}
}

// SetMetrics enables the numbers-drawn counter
func (s *NumberingService) SetMetrics(m *telemetry.BusinessMetrics) {
	s.metrics = m
}

// Next returns the next number of docType for a document dated at. A repeated
// key returns the number it received before instead of drawing a new one.
// Called with a transactional context it joins that transaction.
func (s *NumberingService) Next(ctx context.Context, tenantID uuid.UUID, docType invoicing.DocumentType, key string, at time.Time) (string, error) {
	if !docType.IsValid() {
		return "", shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Unknown document type")
	}
	ctx, span := telemetry.StartSpan(ctx, "numbering", "next",
		telemetry.AttrTenantID.String(tenantID.String()),
		telemetry.AttrDocumentType.String(string(docType)),
	)
	defer span.End()

	var (
		number string
		drawn  bool
	)
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if key != "" {
			existing, err := s.sequences.FindAssignment(ctx, tenantID, docType, key)
			switch {
			case err == nil:
				number = existing.Number
				return nil
			case !errors.Is(err, shared.ErrNotFound):
				return err
			}
		}

		company, err := s.companies.FindByID(ctx, tenantID)
		if err != nil {
			return err
		}
		settings := company.Numbering
		year := invoicing.SequenceYear(docType, settings, at)
		seq, err := s.sequences.LockSequence(ctx,
			invoicing.NewNumberSequence(tenantID, docType, year, settings.PrefixFor(docType), settings.Padding))
		if err != nil {
			return err
		}
		// prefix changes apply to the next number of an existing range
		seq.Prefix = settings.PrefixFor(docType)
		number = seq.Advance()
		drawn = true
		if err := s.sequences.SaveSequence(ctx, seq); err != nil {
			return err
		}

		if key == "" {
			return nil
		}
		assignment, err := invoicing.NewNumberAssignment(tenantID, docType, key, number)
		if err != nil {
			return err
		}
		return s.sequences.SaveAssignment(ctx, assignment)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return "", err
	}

	if drawn {
		s.metrics.RecordNumberDrawn(ctx, tenantID.String(), string(docType))
	}
	return number, nil
}

// Idempotency keys of the numbered documents. Retrying an operation reuses
// the number its first attempt received.
func issueKey(invoiceID uuid.UUID) string  { return "issue:" + invoiceID.String() }
func cancelKey(invoiceID uuid.UUID) string { return "cancel:" + invoiceID.String() }
func offerKey(offerID uuid.UUID) string    { return "offer:" + offerID.String() }

func noticeKey(invoiceID uuid.UUID, level invoicing.DunningLevel) string {
	return "dunning:" + invoiceID.String() + ":" + level.String()
}

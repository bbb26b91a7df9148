package invoicing

import (
	"fmt"
	"time"

	"github.com/faktura/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentType identifies a number range
type DocumentType string

const (
	DocumentTypeInvoice      DocumentType = "invoice"
	DocumentTypeCancellation DocumentType = "cancellation"
	DocumentTypeDunning      DocumentType = "dunning"
	DocumentTypeOffer        DocumentType = "offer"
	DocumentTypeCustomer     DocumentType = "customer"
)

// IsValid checks if the document type is known
func (d DocumentType) IsValid() bool {
	switch d {
	case DocumentTypeInvoice, DocumentTypeCancellation, DocumentTypeDunning, DocumentTypeOffer, DocumentTypeCustomer:
		return true
	}
	return false
}

// IsYearScoped reports whether the type restarts every calendar year when the
// company enables yearly reset. Customer numbers never restart.
func (d DocumentType) IsYearScoped() bool {
	return d != DocumentTypeCustomer
}

// NumberSequence is the counter behind one number range. Year is 0 for ranges
// that never reset.
type NumberSequence struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	DocumentType DocumentType
	Year         int
	Prefix       string
	Padding      int
	LastValue    int64
	UpdatedAt    time.Time
}

// NewNumberSequence creates an unused range
func NewNumberSequence(tenantID uuid.UUID, docType DocumentType, year int, prefix string, padding int) *NumberSequence {
	if padding <= 0 {
		padding = 5
	}
	return &NumberSequence{
		ID:           uuid.New(),
		TenantID:     tenantID,
		DocumentType: docType,
		Year:         year,
		Prefix:       prefix,
		Padding:      padding,
		UpdatedAt:    time.Now().UTC(),
	}
}

// Advance increments the counter and returns the formatted number
func (s *NumberSequence) Advance() string {
	s.LastValue++
	s.UpdatedAt = time.Now().UTC()
	return FormatDocumentNumber(s.Prefix, s.Year, s.LastValue, s.Padding)
}

// FormatDocumentNumber renders PREFIX-YYYY-NNNNN, or PREFIX-NNNNN when year is 0
func FormatDocumentNumber(prefix string, year int, value int64, padding int) string {
	if year == 0 {
		return fmt.Sprintf("%s-%0*d", prefix, padding, value)
	}
	return fmt.Sprintf("%s-%04d-%0*d", prefix, year, padding, value)
}

// SequenceYear returns the range year for a document dated at
func SequenceYear(docType DocumentType, settings NumberingSettings, at time.Time) int {
	if !settings.YearlyReset || !docType.IsYearScoped() {
		return 0
	}
	return at.Year()
}

// NumberAssignment records which number an idempotency key received, so a
// retried request gets the same number instead of consuming a new one.
type NumberAssignment struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	DocumentType   DocumentType
	IdempotencyKey string
	Number         string
	AssignedAt     time.Time
}

// NewNumberAssignment creates an assignment record
func NewNumberAssignment(tenantID uuid.UUID, docType DocumentType, key, number string) (*NumberAssignment, error) {
	if key == "" {
		return nil, shared.NewDomainError("INVALID_IDEMPOTENCY_KEY", "Idempotency key cannot be empty")
	}
	return &NumberAssignment{
		ID:             uuid.New(),
		TenantID:       tenantID,
		DocumentType:   docType,
		IdempotencyKey: key,
		Number:         number,
		AssignedAt:     time.Now().UTC(),
	}, nil
}

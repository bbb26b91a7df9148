package invoicing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const archiveContentType = "application/json"

// ArchiveKey is the storage key of an archived document
func ArchiveKey(tenantID uuid.UUID, docType invoicing.DocumentType, number string) string {
	return fmt.Sprintf("tenants/%s/%s/%s.json", tenantID, docType, number)
}

// ArchiveHandler writes a JSON snapshot of every issued invoice, cancellation
// invoice and dunning notice to object storage. Archived documents are
// written once; a later delivery of the same document leaves the stored
// snapshot untouched.
type ArchiveHandler struct {
	invoiceRepo invoicing.InvoiceRepository
	storage     DocumentStorage
	logger      *zap.Logger
}

var _ shared.EventHandler = (*ArchiveHandler)(nil)

// NewArchiveHandler creates a new ArchiveHandler
func NewArchiveHandler(invoiceRepo invoicing.InvoiceRepository, storage DocumentStorage, log *zap.Logger) *ArchiveHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ArchiveHandler{
		invoiceRepo: invoiceRepo,
		storage:     storage,
		logger:      log.Named("archive"),
	}
}

// EventTypes returns the events that produce archived documents
func (h *ArchiveHandler) EventTypes() []string {
	return []string{invoicing.EventTypeInvoiceIssued, invoicing.EventTypeInvoiceEscalated}
}

// Handle archives the document behind the event
func (h *ArchiveHandler) Handle(ctx context.Context, ev shared.DomainEvent) error {
	switch e := ev.(type) {
	case *invoicing.InvoiceIssuedEvent:
		return h.archiveInvoice(ctx, e)
	case *invoicing.InvoiceEscalatedEvent:
		return h.archiveNotice(ctx, e)
	}
	return nil
}

func (h *ArchiveHandler) archiveInvoice(ctx context.Context, e *invoicing.InvoiceIssuedEvent) error {
	inv, err := h.invoiceRepo.FindByIDForTenant(ctx, e.TenantID(), e.InvoiceID)
	if err != nil {
		return fmt.Errorf("load invoice %s: %w", e.InvoiceID, err)
	}
	docType := invoicing.DocumentTypeInvoice
	if inv.Type == invoicing.InvoiceTypeCancellation {
		docType = invoicing.DocumentTypeCancellation
	}
	return h.write(ctx, ArchiveKey(inv.TenantID, docType, inv.Number), ToInvoiceResponse(inv))
}

func (h *ArchiveHandler) archiveNotice(ctx context.Context, e *invoicing.InvoiceEscalatedEvent) error {
	if e.Notice == nil {
		return fmt.Errorf("escalation event %s carries no notice", e.EventID())
	}
	return h.write(ctx, ArchiveKey(e.TenantID(), invoicing.DocumentTypeDunning, e.Notice.Number), ToDunningNoticeResponse(e.Notice))
}

func (h *ArchiveHandler) write(ctx context.Context, key string, doc any) error {
	log := logger.Enrich(ctx, h.logger).With(zap.String("key", key))

	exists, err := h.storage.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check archive %s: %w", key, err)
	}
	if exists {
		log.Debug("document already archived")
		return nil
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode archive %s: %w", key, err)
	}
	if err := h.storage.Put(ctx, key, data, archiveContentType); err != nil {
		return fmt.Errorf("write archive %s: %w", key, err)
	}
	log.Info("document archived", zap.Int("bytes", len(data)))
	return nil
}

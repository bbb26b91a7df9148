package invoicing

import (
	"context"
	"time"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllowedReceiptContentTypes is the whitelist for receipt uploads
var AllowedReceiptContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/tiff":      true,
	"image/heic":      true,
}

// ExpenseServiceConfig holds configuration for the expense service
type ExpenseServiceConfig struct {
	// UploadURLExpiry is the duration for which upload URLs are valid
	UploadURLExpiry time.Duration
	// DownloadURLExpiry is the duration for which download URLs are valid
	DownloadURLExpiry time.Duration
}

// DefaultExpenseServiceConfig returns the default configuration
func DefaultExpenseServiceConfig() ExpenseServiceConfig {
	return ExpenseServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: time.Hour,
	}
}

var defaultExpenseTaxRate = decimal.NewFromInt(19)

// ExpenseService books expenses and manages their receipts
type ExpenseService struct {
	expenseRepo invoicing.ExpenseRepository
	storage     DocumentStorage
	config      ExpenseServiceConfig
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo invoicing.ExpenseRepository, storage DocumentStorage, config ExpenseServiceConfig) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		storage:     storage,
		config:      config,
	}
}

// Create books an expense
func (s *ExpenseService) Create(ctx context.Context, tenantID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	rate := defaultExpenseTaxRate
	if req.TaxRate != nil {
		rate = *req.TaxRate
	}
	expense, err := invoicing.NewExpense(tenantID, invoicing.ExpenseDetails{
		Date:        req.Date.Time,
		Vendor:      req.Vendor,
		Category:    invoicing.ExpenseCategory(req.Category),
		Description: req.Description,
		NetAmount:   req.NetAmount,
		TaxRate:     rate,
	})
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	response := ToExpenseResponse(expense)
	return &response, nil
}

// Get retrieves an expense by ID
func (s *ExpenseService) Get(ctx context.Context, tenantID, expenseID uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, expenseID)
	if err != nil {
		return nil, err
	}
	response := ToExpenseResponse(expense)
	return &response, nil
}

// List retrieves expenses with filtering and pagination
func (s *ExpenseService) List(ctx context.Context, tenantID uuid.UUID, filter ExpenseListFilter) ([]ExpenseResponse, int64, error) {
	domainFilter := invoicing.ExpenseFilter{
		Filter: filter.toFilter("date", "desc"),
		From:   filter.From,
		To:     filter.To,
	}
	if filter.Category != "" {
		category := invoicing.ExpenseCategory(filter.Category)
		domainFilter.Category = &category
	}

	expenses, total, err := s.expenseRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses, total, nil
}

// Delete removes an expense together with its receipt
func (s *ExpenseService) Delete(ctx context.Context, tenantID, expenseID uuid.UUID) error {
	expense, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, expenseID)
	if err != nil {
		return err
	}
	if err := s.expenseRepo.DeleteForTenant(ctx, tenantID, expenseID); err != nil {
		return err
	}
	if expense.ReceiptKey != "" {
		// an orphaned receipt is harmless, the booking is gone either way
		_ = s.storage.Delete(ctx, expense.ReceiptKey)
	}
	return nil
}

// RequestReceiptUpload returns a presigned PUT URL for the receipt and
// records its storage key on the expense
func (s *ExpenseService) RequestReceiptUpload(ctx context.Context, tenantID, expenseID uuid.UUID, req ReceiptUploadRequest) (*ReceiptUploadResponse, error) {
	if !AllowedReceiptContentTypes[req.ContentType] {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Receipts must be PDF or image files")
	}
	expense, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, expenseID)
	if err != nil {
		return nil, err
	}

	key := expense.ReceiptStorageKey(req.FileName)
	url, expiresAt, err := s.storage.PresignUpload(ctx, key, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, err
	}
	if err := expense.AttachReceipt(key); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.SaveWithLock(ctx, expense); err != nil {
		return nil, err
	}

	return &ReceiptUploadResponse{
		UploadURL:  url,
		StorageKey: key,
		ExpiresAt:  expiresAt,
	}, nil
}

// ReceiptDownloadURL returns a presigned GET URL for an uploaded receipt
func (s *ExpenseService) ReceiptDownloadURL(ctx context.Context, tenantID, expenseID uuid.UUID) (*ReceiptDownloadResponse, error) {
	expense, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.ReceiptKey == "" {
		return nil, shared.NewDomainError("RECEIPT_NOT_FOUND", "No receipt has been attached to this expense")
	}
	exists, err := s.storage.Exists(ctx, expense.ReceiptKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("RECEIPT_NOT_FOUND", "The receipt has not been uploaded yet")
	}

	url, expiresAt, err := s.storage.PresignDownload(ctx, expense.ReceiptKey, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, err
	}
	return &ReceiptDownloadResponse{URL: url, ExpiresAt: expiresAt}, nil
}

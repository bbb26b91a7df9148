package invoicing

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/faktura/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newExpenseFixture(t *testing.T) (*testEnv, *ExpenseService, *MockDocumentStorage, *ExpenseResponse) {
	t.Helper()
	env := newTestEnv(t)
	storage := new(MockDocumentStorage)
	svc := NewExpenseService(env.expenses, storage, DefaultExpenseServiceConfig())

	expense, err := svc.Create(context.Background(), env.tenant(), CreateExpenseRequest{
		Date:      NewDate(day(2024, time.March, 12)),
		Vendor:    "Bürobedarf GmbH",
		Category:  "office",
		NetAmount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	return env, svc, storage, expense
}

func TestExpenseService_Create(t *testing.T) {
	_, _, _, expense := newExpenseFixture(t)

	assert.True(t, decimal.NewFromInt(19).Equal(expense.TaxRate))
	assert.True(t, decimal.NewFromInt(19).Equal(expense.TaxAmount))
	assert.True(t, decimal.NewFromInt(119).Equal(expense.GrossAmount))
	assert.False(t, expense.HasReceipt)
}

func TestExpenseService_RequestReceiptUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("presigns and records the key", func(t *testing.T) {
		env, svc, storage, expense := newExpenseFixture(t)
		expires := time.Now().Add(15 * time.Minute)
		storage.On("PresignUpload", mock.Anything, mock.AnythingOfType("string"), "application/pdf", 15*time.Minute).
			Return("https://s3.example/upload", expires, nil)

		resp, err := svc.RequestReceiptUpload(ctx, env.tenant(), expense.ID, ReceiptUploadRequest{
			FileName:    "Beleg.PDF",
			ContentType: "application/pdf",
		})
		require.NoError(t, err)

		assert.Equal(t, "https://s3.example/upload", resp.UploadURL)
		assert.True(t, strings.HasPrefix(resp.StorageKey, "tenants/"+env.tenant().String()+"/receipts/2024/"))
		assert.True(t, strings.HasSuffix(resp.StorageKey, ".pdf"))

		stored, err := svc.Get(ctx, env.tenant(), expense.ID)
		require.NoError(t, err)
		assert.True(t, stored.HasReceipt)
		storage.AssertExpectations(t)
	})

	t.Run("rejects other content types", func(t *testing.T) {
		env, svc, storage, expense := newExpenseFixture(t)

		_, err := svc.RequestReceiptUpload(ctx, env.tenant(), expense.ID, ReceiptUploadRequest{
			FileName:    "beleg.exe",
			ContentType: "application/octet-stream",
		})
		assert.Equal(t, "INVALID_CONTENT_TYPE", shared.ErrorCode(err))
		storage.AssertNotCalled(t, "PresignUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestExpenseService_ReceiptDownloadURL(t *testing.T) {
	ctx := context.Background()
	env, svc, storage, expense := newExpenseFixture(t)

	_, err := svc.ReceiptDownloadURL(ctx, env.tenant(), expense.ID)
	assert.Equal(t, "RECEIPT_NOT_FOUND", shared.ErrorCode(err), "no receipt attached")

	storage.On("PresignUpload", mock.Anything, mock.Anything, "image/png", mock.Anything).
		Return("https://s3.example/upload", time.Now(), nil)
	upload, err := svc.RequestReceiptUpload(ctx, env.tenant(), expense.ID, ReceiptUploadRequest{FileName: "scan.png", ContentType: "image/png"})
	require.NoError(t, err)

	storage.On("Exists", mock.Anything, upload.StorageKey).Return(false, nil).Once()
	_, err = svc.ReceiptDownloadURL(ctx, env.tenant(), expense.ID)
	assert.Equal(t, "RECEIPT_NOT_FOUND", shared.ErrorCode(err), "upload not finished")

	storage.On("Exists", mock.Anything, upload.StorageKey).Return(true, nil).Once()
	storage.On("PresignDownload", mock.Anything, upload.StorageKey, time.Hour).
		Return("https://s3.example/download", time.Now().Add(time.Hour), nil)
	resp, err := svc.ReceiptDownloadURL(ctx, env.tenant(), expense.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example/download", resp.URL)

	storage.On("Delete", mock.Anything, upload.StorageKey).Return(nil)
	require.NoError(t, svc.Delete(ctx, env.tenant(), expense.ID))
	storage.AssertExpectations(t)
}

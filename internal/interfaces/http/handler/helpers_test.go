package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appinvoicing "github.com/faktura/backend/internal/application/invoicing"
	"github.com/faktura/backend/internal/application/report"
	"github.com/faktura/backend/internal/infrastructure/cache"
	"github.com/faktura/backend/internal/infrastructure/lock"
	"github.com/faktura/backend/internal/infrastructure/persistence"
	"github.com/faktura/backend/internal/infrastructure/persistence/models"
	"github.com/faktura/backend/internal/infrastructure/storage"
	"github.com/faktura/backend/internal/interfaces/http/dto"
	"github.com/faktura/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testEnv serves the handlers over real services on an in-memory SQLite
// database. Requests carry the tenant in the X-Tenant-ID header.
type testEnv struct {
	engine  *gin.Engine
	storage *storage.MemoryObjectStorage
	tenant  uuid.UUID
	today   time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), persistence.GormConfig(gormlogger.Discard))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.CompanyModel{},
		&models.CustomerModel{},
		&models.ProductModel{},
		&models.InvoiceModel{},
		&models.DunningNoticeModel{},
		&models.DunningRunModel{},
		&models.NumberSequenceModel{},
		&models.NumberAssignmentModel{},
		&models.OfferModel{},
		&models.ExpenseModel{},
	))

	env := &testEnv{
		storage: storage.NewMemoryObjectStorage(),
		today:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	clock := appinvoicing.Clock(func() time.Time { return env.today })

	companies := persistence.NewGormCompanyRepository(db)
	customers := persistence.NewGormCustomerRepository(db)
	products := persistence.NewGormProductRepository(db)
	invoices := persistence.NewGormInvoiceRepository(db)
	notices := persistence.NewGormDunningNoticeRepository(db)
	runs := persistence.NewGormDunningRunRepository(db)
	offers := persistence.NewGormOfferRepository(db)
	expenses := persistence.NewGormExpenseRepository(db)
	transactor := persistence.NewGormTransactor(db)
	numbering := appinvoicing.NewNumberingService(companies, persistence.NewGormNumberSequenceRepository(db), transactor)

	customerSvc := appinvoicing.NewCustomerService(customers, invoices, numbering, transactor)
	customerSvc.SetClock(clock)
	invoiceSvc := appinvoicing.NewInvoiceService(invoices, customers, companies, products, notices, numbering, transactor)
	invoiceSvc.SetClock(clock)
	offerSvc := appinvoicing.NewOfferService(offers, invoices, customers, companies, products, numbering, transactor)
	offerSvc.SetClock(clock)
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })
	dunningSvc := appinvoicing.NewDunningService(invoices, notices, runs, companies, numbering, transactor,
		lock.NewMemoryLocker(), store, appinvoicing.DefaultDunningServiceConfig())
	dunningSvc.SetClock(clock)
	openItems := report.NewOpenItemsService(invoices)
	openItems.SetClock(clock)

	companyH := NewCompanyHandler(appinvoicing.NewCompanyService(companies))
	customerH := NewCustomerHandler(customerSvc)
	productH := NewProductHandler(appinvoicing.NewProductService(products))
	invoiceH := NewInvoiceHandler(invoiceSvc)
	offerH := NewOfferHandler(offerSvc)
	expenseH := NewExpenseHandler(appinvoicing.NewExpenseService(expenses, env.storage, appinvoicing.DefaultExpenseServiceConfig()))
	dunningH := NewDunningHandler(dunningSvc)
	reportH := NewReportHandler(openItems)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	api := engine.Group("/api/v1")
	api.POST("/companies", companyH.Create)

	scoped := api.Group("", middleware.TenantMiddleware(middleware.TenantMiddlewareConfig{HeaderEnabled: true}))
	scoped.GET("/companies", companyH.List)
	scoped.GET("/companies/:id", companyH.Get)
	scoped.PUT("/companies/:id", companyH.Update)
	scoped.PUT("/companies/:id/dunning-settings", companyH.UpdateDunningSettings)
	scoped.POST("/companies/:id/deactivate", companyH.Deactivate)

	scoped.POST("/customers", customerH.Create)
	scoped.GET("/customers", customerH.List)
	scoped.GET("/customers/:id", customerH.Get)
	scoped.PUT("/customers/:id", customerH.Update)
	scoped.DELETE("/customers/:id", customerH.Delete)
	scoped.POST("/customers/:id/deactivate", customerH.Deactivate)

	scoped.POST("/products", productH.Create)
	scoped.GET("/products", productH.List)
	scoped.GET("/products/:id", productH.Get)
	scoped.PUT("/products/:id", productH.Update)
	scoped.POST("/products/:id/deactivate", productH.Deactivate)

	scoped.POST("/invoices", invoiceH.Create)
	scoped.GET("/invoices", invoiceH.List)
	scoped.GET("/invoices/:id", invoiceH.Get)
	scoped.PUT("/invoices/:id", invoiceH.Update)
	scoped.DELETE("/invoices/:id", invoiceH.Delete)
	scoped.POST("/invoices/:id/issue", invoiceH.Issue)
	scoped.POST("/invoices/:id/payments", invoiceH.RecordPayment)
	scoped.POST("/invoices/:id/cancel", invoiceH.Cancel)
	scoped.POST("/invoices/:id/correct", invoiceH.Correct)
	scoped.POST("/invoices/:id/write-off", invoiceH.WriteOff)
	scoped.POST("/invoices/:id/dunning-block", invoiceH.BlockDunning)
	scoped.DELETE("/invoices/:id/dunning-block", invoiceH.UnblockDunning)
	scoped.GET("/invoices/:id/notices", invoiceH.ListNotices)
	scoped.GET("/invoices/:id/dunning-preview", dunningH.PreviewInvoice)
	scoped.POST("/invoices/:id/escalate", dunningH.EscalateInvoice)

	scoped.POST("/offers", offerH.Create)
	scoped.GET("/offers", offerH.List)
	scoped.GET("/offers/:id", offerH.Get)
	scoped.POST("/offers/:id/send", offerH.Send)
	scoped.POST("/offers/:id/accept", offerH.Accept)
	scoped.POST("/offers/:id/reject", offerH.Reject)
	scoped.POST("/offers/:id/convert", offerH.Convert)

	scoped.POST("/expenses", expenseH.Create)
	scoped.GET("/expenses", expenseH.List)
	scoped.GET("/expenses/:id", expenseH.Get)
	scoped.DELETE("/expenses/:id", expenseH.Delete)
	scoped.POST("/expenses/:id/receipt-upload", expenseH.RequestReceiptUpload)
	scoped.GET("/expenses/:id/receipt", expenseH.ReceiptDownloadURL)

	scoped.POST("/dunning/runs", dunningH.Run)
	scoped.GET("/dunning/runs", dunningH.ListRuns)
	scoped.GET("/dunning/runs/:id/notices", dunningH.RunNotices)
	scoped.GET("/dunning/preview", dunningH.PreviewTenant)

	scoped.GET("/reports/open-items", reportH.OpenItems)
	env.engine = engine

	company := decode[appinvoicing.CompanyResponse](t, env.do(t, http.MethodPost, "/api/v1/companies", map[string]any{
		"name":    "Muster GmbH",
		"vat_id":  "DE123456789",
		"iban":    "DE89370400440532013000",
		"address": map[string]any{"street": "Hauptstraße 1", "postal_code": "10115", "city": "Berlin", "country": "DE"},
	}), http.StatusCreated)
	env.tenant = company.ID
	return env
}

// do sends a JSON request as the env's tenant
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return e.doAs(t, e.tenant, method, path, body)
}

func (e *testEnv) doAs(t *testing.T, tenant uuid.UUID, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tenant != uuid.Nil {
		req.Header.Set(middleware.TenantHeader, tenant.String())
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// decode asserts the status and returns the data of a success envelope
func decode[T any](t *testing.T, w *httptest.ResponseRecorder, status int) T {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	var resp APIResponse[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	return resp.Data
}

// errorCode returns the error code of an error envelope
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func (e *testEnv) createCustomer(t *testing.T, kind, name string) appinvoicing.CustomerResponse {
	t.Helper()
	return decode[appinvoicing.CustomerResponse](t, e.do(t, http.MethodPost, "/api/v1/customers", map[string]any{
		"kind":    kind,
		"name":    name,
		"email":   "buchhaltung@example.de",
		"address": map[string]any{"street": "Teststraße 5", "postal_code": "80331", "city": "München", "country": "DE"},
	}), http.StatusCreated)
}

func line(description, price string) map[string]any {
	return map[string]any{
		"description":  description,
		"quantity":     "1",
		"unit_price":   price,
		"tax_category": "standard",
	}
}

// issueInvoice creates and issues a one-line invoice with a 14 day term
func (e *testEnv) issueInvoice(t *testing.T, customerID uuid.UUID, net string, issueDate string) appinvoicing.InvoiceResponse {
	t.Helper()
	draft := decode[appinvoicing.InvoiceResponse](t, e.do(t, http.MethodPost, "/api/v1/invoices", map[string]any{
		"customer_id":       customerID,
		"lines":             []any{line("Beratung", net)},
		"payment_term_days": 14,
	}), http.StatusCreated)
	return decode[appinvoicing.InvoiceResponse](t, e.do(t, http.MethodPost, "/api/v1/invoices/"+draft.ID.String()+"/issue",
		map[string]any{"issue_date": issueDate}), http.StatusOK)
}

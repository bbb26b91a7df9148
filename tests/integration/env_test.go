package integration

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appinvoicing "github.com/faktura/backend/internal/application/invoicing"
	"github.com/faktura/backend/internal/application/report"
	"github.com/faktura/backend/internal/infrastructure/auth"
	"github.com/faktura/backend/internal/infrastructure/cache"
	"github.com/faktura/backend/internal/infrastructure/config"
	"github.com/faktura/backend/internal/infrastructure/event"
	"github.com/faktura/backend/internal/infrastructure/lock"
	"github.com/faktura/backend/internal/infrastructure/persistence"
	"github.com/faktura/backend/internal/infrastructure/storage"
	"github.com/faktura/backend/internal/interfaces/http/handler"
	"github.com/faktura/backend/internal/interfaces/http/middleware"
	"github.com/faktura/backend/internal/interfaces/http/router"
	"github.com/faktura/backend/tests/testutil"
)

func TestMain(m *testing.M) {
	middleware.SetupValidator()
	code := m.Run()
	CleanupSharedContainer()
	os.Exit(code)
}

// apiEnv serves the complete API engine over PostgreSQL
type apiEnv struct {
	db        *TestDB
	jwt       *auth.JWTService
	engine    http.Handler
	storage   *storage.MemoryObjectStorage
	events    *testutil.EventRecorder
	dunning   *appinvoicing.DunningService
	numbers   *appinvoicing.NumberingService
	companies *persistence.GormCompanyRepository
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	tdb := NewSharedTestDB(t)
	db := tdb.DB
	log := zap.NewNop()

	env := &apiEnv{
		db: tdb,
		jwt: auth.NewJWTService(config.JWTConfig{
			Secret:                "integration-secret-of-at-least-32-characters",
			AccessTokenExpiration: time.Hour,
			Issuer:                "faktura",
		}),
		storage: storage.NewMemoryObjectStorage(),
		events:  testutil.NewEventRecorder(),
	}

	companies := persistence.NewGormCompanyRepository(db)
	customers := persistence.NewGormCustomerRepository(db)
	products := persistence.NewGormProductRepository(db)
	invoices := persistence.NewGormInvoiceRepository(db)
	notices := persistence.NewGormDunningNoticeRepository(db)
	runs := persistence.NewGormDunningRunRepository(db)
	transactor := persistence.NewGormTransactor(db)
	env.companies = companies

	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(env.events)
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })
	archive := appinvoicing.NewArchiveHandler(invoices, env.storage, log)
	bus.Subscribe(event.NewIdempotentHandler(archive, store, time.Hour, log), archive.EventTypes()...)

	env.numbers = appinvoicing.NewNumberingService(companies, persistence.NewGormNumberSequenceRepository(db), transactor)

	companySvc := appinvoicing.NewCompanyService(companies)
	companySvc.SetEventPublisher(bus)
	customerSvc := appinvoicing.NewCustomerService(customers, invoices, env.numbers, transactor)
	customerSvc.SetEventPublisher(bus)
	invoiceSvc := appinvoicing.NewInvoiceService(invoices, customers, companies, products, notices, env.numbers, transactor)
	invoiceSvc.SetEventPublisher(bus)
	offerSvc := appinvoicing.NewOfferService(persistence.NewGormOfferRepository(db), invoices, customers, companies, products, env.numbers, transactor)
	offerSvc.SetEventPublisher(bus)
	env.dunning = appinvoicing.NewDunningService(invoices, notices, runs, companies, env.numbers, transactor,
		lock.NewMemoryLocker(), store, appinvoicing.DefaultDunningServiceConfig())
	env.dunning.SetEventPublisher(bus)

	engine, err := router.NewEngine(router.Options{
		Logger:     log,
		JWTService: env.jwt,
		Tenant:     middleware.DefaultTenantConfig(),
		Security:   middleware.DefaultSecurityConfig(),
	}, router.Handlers{
		Health:   handler.NewHealthHandler("integration"),
		Company:  handler.NewCompanyHandler(companySvc),
		Customer: handler.NewCustomerHandler(customerSvc),
		Product:  handler.NewProductHandler(appinvoicing.NewProductService(products)),
		Invoice:  handler.NewInvoiceHandler(invoiceSvc),
		Offer:    handler.NewOfferHandler(offerSvc),
		Expense: handler.NewExpenseHandler(appinvoicing.NewExpenseService(persistence.NewGormExpenseRepository(db),
			env.storage, appinvoicing.DefaultExpenseServiceConfig())),
		Dunning: handler.NewDunningHandler(env.dunning),
		Report:  handler.NewReportHandler(report.NewOpenItemsService(invoices)),
	})
	require.NoError(t, err)
	env.engine = engine
	return env
}

// client returns an API client authenticated for tenant
func (e *apiEnv) client(t *testing.T, tenant uuid.UUID) *testutil.Client {
	t.Helper()
	tok, err := e.jwt.GenerateToken(tenant, "buchhaltung@example.de", "Buchhaltung", 0)
	require.NoError(t, err)
	return &testutil.Client{Handler: e.engine, Token: tok.AccessToken}
}

// onboard creates a company through the onboarding route and returns a
// client for the new tenant
func (e *apiEnv) onboard(t *testing.T, name string) (appinvoicing.CompanyResponse, *testutil.Client) {
	t.Helper()
	company := testutil.Data[appinvoicing.CompanyResponse](t, e.client(t, uuid.New()).Do(t, http.MethodPost, "/api/v1/companies", map[string]any{
		"name":    name,
		"vat_id":  "DE123456789",
		"iban":    "DE89370400440532013000",
		"address": map[string]any{"street": "Hauptstraße 1", "postal_code": "10115", "city": "Berlin", "country": "DE"},
	}), http.StatusCreated)
	return company, e.client(t, company.ID)
}

func createCustomer(t *testing.T, c *testutil.Client, kind, name string) appinvoicing.CustomerResponse {
	t.Helper()
	return testutil.Data[appinvoicing.CustomerResponse](t, c.Do(t, http.MethodPost, "/api/v1/customers", map[string]any{
		"kind":    kind,
		"name":    name,
		"email":   "rechnung@example.de",
		"address": map[string]any{"street": "Teststraße 5", "postal_code": "80331", "city": "München", "country": "DE"},
	}), http.StatusCreated)
}

func issueInvoice(t *testing.T, c *testutil.Client, customerID uuid.UUID, net, issueDate string) appinvoicing.InvoiceResponse {
	t.Helper()
	draft := testutil.Data[appinvoicing.InvoiceResponse](t, c.Do(t, http.MethodPost, "/api/v1/invoices", map[string]any{
		"customer_id": customerID,
		"lines": []any{map[string]any{
			"description":  "Beratung",
			"quantity":     "1",
			"unit_price":   net,
			"tax_category": "standard",
		}},
		"payment_term_days": 14,
	}), http.StatusCreated)
	return testutil.Data[appinvoicing.InvoiceResponse](t, c.Do(t, http.MethodPost, "/api/v1/invoices/"+draft.ID.String()+"/issue",
		map[string]any{"issue_date": issueDate}), http.StatusOK)
}

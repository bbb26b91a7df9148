package invoicing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/domain/shared/valueobject"
	"github.com/faktura/backend/internal/infrastructure/cache"
	"github.com/faktura/backend/internal/infrastructure/lock"
	"github.com/faktura/backend/internal/infrastructure/persistence"
	"github.com/faktura/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ============================================================================
// Test environment
// ============================================================================

// testEnv wires the services against real repositories on an in-memory
// SQLite database. The pool has a single connection, so everything inside a
// transaction must use the transaction's context.
type testEnv struct {
	db         *gorm.DB
	companies  *persistence.GormCompanyRepository
	customers  *persistence.GormCustomerRepository
	products   *persistence.GormProductRepository
	invoices   *persistence.GormInvoiceRepository
	notices    *persistence.GormDunningNoticeRepository
	runs       *persistence.GormDunningRunRepository
	sequences  *persistence.GormNumberSequenceRepository
	offers     *persistence.GormOfferRepository
	expenses   *persistence.GormExpenseRepository
	transactor shared.Transactor
	numbering  *NumberingService
	events     *recordingPublisher
	company    *invoicing.Company
	today      time.Time
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
		db:         db,
		companies:  persistence.NewGormCompanyRepository(db),
		customers:  persistence.NewGormCustomerRepository(db),
		products:   persistence.NewGormProductRepository(db),
		invoices:   persistence.NewGormInvoiceRepository(db),
		notices:    persistence.NewGormDunningNoticeRepository(db),
		runs:       persistence.NewGormDunningRunRepository(db),
		sequences:  persistence.NewGormNumberSequenceRepository(db),
		offers:     persistence.NewGormOfferRepository(db),
		expenses:   persistence.NewGormExpenseRepository(db),
		transactor: persistence.NewGormTransactor(db),
		events:     &recordingPublisher{},
		today:      day(2024, time.January, 1),
	}
	env.numbering = NewNumberingService(env.companies, env.sequences, env.transactor)

	addr, err := valueobject.NewAddress("Hauptstraße 1", "10115", "Berlin", "DE")
	require.NoError(t, err)
	company, err := invoicing.NewCompany("Muster GmbH", addr)
	require.NoError(t, err)
	company.VATID = "DE123456789"
	company.IBAN = "DE89370400440532013000"
	require.NoError(t, env.companies.Create(context.Background(), company))
	env.company = company
	return env
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (e *testEnv) tenant() uuid.UUID {
	return e.company.ID
}

// clock follows e.today so tests can move time forward
func (e *testEnv) clock() Clock {
	return func() time.Time { return e.today }
}

func (e *testEnv) customerService() *CustomerService {
	svc := NewCustomerService(e.customers, e.invoices, e.numbering, e.transactor)
	svc.SetClock(e.clock())
	svc.SetEventPublisher(e.events)
	return svc
}

func (e *testEnv) invoiceService() *InvoiceService {
	svc := NewInvoiceService(e.invoices, e.customers, e.companies, e.products, e.notices, e.numbering, e.transactor)
	svc.SetClock(e.clock())
	svc.SetEventPublisher(e.events)
	return svc
}

func (e *testEnv) offerService() *OfferService {
	svc := NewOfferService(e.offers, e.invoices, e.customers, e.companies, e.products, e.numbering, e.transactor)
	svc.SetClock(e.clock())
	svc.SetEventPublisher(e.events)
	return svc
}

func (e *testEnv) dunningService(t *testing.T, locker shared.Locker) (*DunningService, *cache.InMemoryIdempotencyStore) {
	t.Helper()
	if locker == nil {
		locker = lock.NewMemoryLocker()
	}
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	svc := NewDunningService(e.invoices, e.notices, e.runs, e.companies, e.numbering, e.transactor,
		locker, store, DefaultDunningServiceConfig())
	svc.SetClock(e.clock())
	svc.SetEventPublisher(e.events)
	return svc, store
}

func (e *testEnv) createCustomer(t *testing.T, kind, name string) *CustomerResponse {
	t.Helper()
	resp, err := e.customerService().Create(context.Background(), e.tenant(), CustomerRequest{
		Kind:  kind,
		Name:  name,
		Email: "rechnung@example.de",
		Address: AddressDTO{
			Street:     "Teststraße 5",
			PostalCode: "80331",
			City:       "München",
			Country:    "DE",
		},
	})
	require.NoError(t, err)
	return resp
}

func netLine(description string, net int64) LineRequest {
	price := decimal.NewFromInt(net)
	return LineRequest{
		Description: description,
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   &price,
		TaxCategory: "standard",
	}
}

// issueInvoice creates and issues a single-line invoice with a 14 day term
func (e *testEnv) issueInvoice(t *testing.T, customerID uuid.UUID, net int64, issueDate time.Time) *InvoiceResponse {
	t.Helper()
	ctx := context.Background()
	svc := e.invoiceService()
	terms := 14
	draft, err := svc.CreateDraft(ctx, e.tenant(), CreateInvoiceRequest{
		CustomerID:      customerID,
		Lines:           []LineRequest{netLine("Beratung", net)},
		PaymentTermDays: &terms,
	})
	require.NoError(t, err)
	date := NewDate(issueDate)
	issued, err := svc.Issue(ctx, e.tenant(), draft.ID, IssueInvoiceRequest{IssueDate: &date})
	require.NoError(t, err)
	return issued
}

// ============================================================================
// Fakes
// ============================================================================

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) count(eventType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, ev := range p.events {
		if ev.EventType() == eventType {
			n++
		}
	}
	return n
}

// MockDocumentStorage is a mock implementation of DocumentStorage
type MockDocumentStorage struct {
	mock.Mock
}

func (m *MockDocumentStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockDocumentStorage) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocumentStorage) PresignUpload(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockDocumentStorage) PresignDownload(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockDocumentStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

var _ DocumentStorage = (*MockDocumentStorage)(nil)

package persistence

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared/valueobject"
	"github.com/faktura/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema. The pool
// is pinned to one connection because every :memory: connection is a
// separate database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), GormConfig(gormlogger.Discard))
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
	return db
}

// newMockDB creates a GORM DB on top of sqlmock using the postgres dialect
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	cfg := GormConfig(gormlogger.Discard)
	cfg.DisableAutomaticPing = true
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), cfg)
	require.NoError(t, err)
	return db, mock
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testCompany(t *testing.T, name string) *invoicing.Company {
	t.Helper()
	addr, err := valueobject.NewAddress("Hauptstraße 1", "10115", "Berlin", "DE")
	require.NoError(t, err)
	c, err := invoicing.NewCompany(name, addr)
	require.NoError(t, err)
	c.VATID = "DE123456789"
	return c
}

func testCustomer(t *testing.T, company *invoicing.Company, number, name string) *invoicing.Customer {
	t.Helper()
	addr, err := valueobject.NewAddress("Teststraße 5", "80331", "München", "DE")
	require.NoError(t, err)
	c, err := invoicing.NewCustomer(company.ID, number, invoicing.CustomerDetails{
		Kind:    invoicing.CustomerKindBusiness,
		Name:    name,
		Email:   "buchhaltung@" + number + ".example",
		Address: addr,
	})
	require.NoError(t, err)
	return c
}

// testInvoice returns a draft with a single 100 EUR net line
func testInvoice(t *testing.T, company *invoicing.Company, customer *invoicing.Customer) *invoicing.Invoice {
	t.Helper()
	inv, err := invoicing.NewDraftInvoice(company.ID, customer, 14)
	require.NoError(t, err)
	require.NoError(t, inv.UpdateDraft(invoicing.DraftChanges{
		Lines: invoicing.InvoiceLines{{
			Description: "Beratung",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.NewFromInt(100),
			TaxCategory: invoicing.TaxCategoryStandard,
		}},
		PaymentTermDays: 14,
	}, company, customer))
	return inv
}

package invoicing

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory groups business expenses
type ExpenseCategory string

const (
	ExpenseCategoryOffice    ExpenseCategory = "office"
	ExpenseCategoryTravel    ExpenseCategory = "travel"
	ExpenseCategorySoftware  ExpenseCategory = "software"
	ExpenseCategoryRent      ExpenseCategory = "rent"
	ExpenseCategoryMarketing ExpenseCategory = "marketing"
	ExpenseCategoryVehicle   ExpenseCategory = "vehicle"
	ExpenseCategoryOther     ExpenseCategory = "other"
)

// IsValid checks if the category is known
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryOffice, ExpenseCategoryTravel, ExpenseCategorySoftware, ExpenseCategoryRent,
		ExpenseCategoryMarketing, ExpenseCategoryVehicle, ExpenseCategoryOther:
		return true
	}
	return false
}

// Expense is an incoming receipt booked as a business expense
type Expense struct {
	shared.TenantAggregateRoot
	Date        time.Time
	Vendor      string
	Category    ExpenseCategory
	Description string
	NetAmount   decimal.Decimal
	TaxRate     decimal.Decimal
	TaxAmount   decimal.Decimal
	GrossAmount decimal.Decimal
	ReceiptKey  string
}

// ExpenseDetails is the data needed to book an expense
type ExpenseDetails struct {
	Date        time.Time
	Vendor      string
	Category    ExpenseCategory
	Description string
	NetAmount   decimal.Decimal
	TaxRate     decimal.Decimal
}

// NewExpense books an expense, computing input VAT and gross amount
func NewExpense(tenantID uuid.UUID, d ExpenseDetails) (*Expense, error) {
	vendor := strings.TrimSpace(d.Vendor)
	if vendor == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor cannot be empty")
	}
	if d.Category == "" {
		d.Category = ExpenseCategoryOther
	}
	if !d.Category.IsValid() {
		return nil, shared.NewDomainError("INVALID_EXPENSE_CATEGORY", "Unknown expense category")
	}
	if !d.NetAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Net amount must be positive")
	}
	if d.TaxRate.IsNegative() || d.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100 percent")
	}
	if d.Date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Expense date is required")
	}
	net := valueobject.Euro(d.NetAmount).RoundCents()
	tax := net.Percent(d.TaxRate).RoundCents()
	return &Expense{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Date:                DateOnly(d.Date),
		Vendor:              vendor,
		Category:            d.Category,
		Description:         strings.TrimSpace(d.Description),
		NetAmount:           net.Amount(),
		TaxRate:             d.TaxRate,
		TaxAmount:           tax.Amount(),
		GrossAmount:         net.MustAdd(tax).Amount(),
	}, nil
}

// ReceiptStorageKey builds the object key for the receipt file
func (e *Expense) ReceiptStorageKey(fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("tenants/%s/receipts/%s/%s%s", e.TenantID, e.Date.Format("2006"), e.ID, ext)
}

// AttachReceipt records the storage key of the uploaded receipt
func (e *Expense) AttachReceipt(key string) error {
	if strings.TrimSpace(key) == "" {
		return shared.NewDomainError("INVALID_RECEIPT_KEY", "Receipt key cannot be empty")
	}
	e.ReceiptKey = key
	e.IncrementVersion()
	return nil
}

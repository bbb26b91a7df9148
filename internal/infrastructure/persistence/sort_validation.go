package persistence

import (
	"strings"

	"github.com/faktura/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"number":     true,
	"name":       true,
	"kind":       true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"sku":        true,
	"name":       true,
	"unit_price": true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"created_at":    true,
	"updated_at":    true,
	"number":        true,
	"issue_date":    true,
	"due_date":      true,
	"gross_total":   true,
	"status":        true,
	"dunning_level": true,
}

// OfferSortFields contains allowed sort fields for offers
var OfferSortFields = map[string]bool{
	"created_at":  true,
	"number":      true,
	"valid_until": true,
	"gross_total": true,
	"status":      true,
}

// ExpenseSortFields contains allowed sort fields for expenses
var ExpenseSortFields = map[string]bool{
	"created_at":   true,
	"date":         true,
	"vendor":       true,
	"category":     true,
	"gross_amount": true,
}

// DunningRunSortFields contains allowed sort fields for dunning runs
var DunningRunSortFields = map[string]bool{
	"run_date":   true,
	"started_at": true,
}

// paginate applies whitelisted ordering and page limits. Callers count before paginating.
func paginate(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	if field != "created_at" && allowed["created_at"] {
		query = query.Order("created_at DESC")
	}
	return query.Offset(filter.Offset()).Limit(filter.Limit())
}

// searchPattern builds a case-insensitive LIKE pattern
func searchPattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

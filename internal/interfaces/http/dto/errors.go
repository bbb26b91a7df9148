package dto

import (
	"net/http"
	"strings"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for request validation errors
	ErrCodeValidation = "ERR_VALIDATION"
)

// Authentication error codes
const (
	ErrCodeUnauthorized  = "ERR_UNAUTHORIZED"
	ErrCodeForbidden     = "ERR_FORBIDDEN"
	ErrCodeTokenExpired  = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid  = "ERR_TOKEN_INVALID"
	ErrCodeTenantMissing = "ERR_TENANT_MISSING"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	// ErrCodeLocked is returned while a dunning run for the tenant is in progress
	ErrCodeLocked = "ERR_LOCKED"
)

// Business rule error codes
const (
	ErrCodeInvalidState          = "ERR_INVALID_STATE"
	ErrCodeInvoiceImmutable      = "ERR_INVOICE_IMMUTABLE"
	ErrCodeInvoiceEmpty          = "ERR_INVOICE_EMPTY"
	ErrCodeInvoiceHasPayments    = "ERR_INVOICE_HAS_PAYMENTS"
	ErrCodePaymentExceedsBalance = "ERR_PAYMENT_EXCEEDS_BALANCE"
	ErrCodeNotEscalatable        = "ERR_NOT_ESCALATABLE"
	ErrCodeDunningBlocked        = "ERR_DUNNING_BLOCKED"
	ErrCodeOfferExpired          = "ERR_OFFER_EXPIRED"
	ErrCodeOfferEmpty            = "ERR_OFFER_EMPTY"
	ErrCodeCustomerHasInvoices   = "ERR_CUSTOMER_HAS_INVOICES"
	ErrCodeCompanyInactive       = "ERR_COMPANY_INACTIVE"
	ErrCodeVATIDRequired         = "ERR_VAT_ID_REQUIRED"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
	ErrCodeTooLarge     = "ERR_REQUEST_TOO_LARGE"
	ErrCodeRateLimited  = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation: http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized:  http.StatusUnauthorized,
	ErrCodeForbidden:     http.StatusForbidden,
	ErrCodeTokenExpired:  http.StatusUnauthorized,
	ErrCodeTokenInvalid:  http.StatusUnauthorized,
	ErrCodeTenantMissing: http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeLocked:              http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:          http.StatusUnprocessableEntity,
	ErrCodeInvoiceImmutable:      http.StatusUnprocessableEntity,
	ErrCodeInvoiceEmpty:          http.StatusUnprocessableEntity,
	ErrCodeInvoiceHasPayments:    http.StatusUnprocessableEntity,
	ErrCodePaymentExceedsBalance: http.StatusUnprocessableEntity,
	ErrCodeNotEscalatable:        http.StatusUnprocessableEntity,
	ErrCodeDunningBlocked:        http.StatusUnprocessableEntity,
	ErrCodeOfferExpired:          http.StatusUnprocessableEntity,
	ErrCodeOfferEmpty:            http.StatusUnprocessableEntity,
	ErrCodeCustomerHasInvoices:   http.StatusUnprocessableEntity,
	ErrCodeCompanyInactive:       http.StatusUnprocessableEntity,
	ErrCodeVATIDRequired:         http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unlisted ERR_INVALID_* codes are input errors and unlisted *_NOT_FOUND codes
// are missing resources; anything else is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasPrefix(code, "ERR_INVALID_"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// NormalizeErrorCode converts a domain error code to its API form.
// "INVOICE_IMMUTABLE" becomes "ERR_INVOICE_IMMUTABLE"; codes that already
// carry the prefix are returned as-is.
func NormalizeErrorCode(code string) string {
	if code == "" {
		return ErrCodeUnknown
	}
	if strings.HasPrefix(code, "ERR_") {
		return code
	}
	return "ERR_" + code
}

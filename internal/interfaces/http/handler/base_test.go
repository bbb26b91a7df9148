package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	return c, w
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		code     string
		contains string
	}{
		{
			name:   "not found",
			err:    shared.ErrNotFound,
			status: http.StatusNotFound,
			code:   dto.ErrCodeNotFound,
		},
		{
			name:   "wrapped concurrency conflict",
			err:    fmt.Errorf("save invoice: %w", shared.ErrConcurrencyConflict),
			status: http.StatusConflict,
			code:   dto.ErrCodeConcurrencyConflict,
		},
		{
			name:     "business rule",
			err:      shared.NewDomainError("INVOICE_IMMUTABLE", "Invoice RE-2024-00001 is issued"),
			status:   http.StatusUnprocessableEntity,
			code:     dto.ErrCodeInvoiceImmutable,
			contains: "RE-2024-00001",
		},
		{
			name:   "unlisted input error",
			err:    shared.NewDomainError("INVALID_DATE", "Dates must be formatted as YYYY-MM-DD"),
			status: http.StatusBadRequest,
			code:   "ERR_INVALID_DATE",
		},
		{
			name:     "unknown error hides details",
			err:      errors.New("pq: connection refused"),
			status:   http.StatusInternalServerError,
			code:     dto.ErrCodeInternal,
			contains: "unexpected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodGet, "/")
			h := &BaseHandler{}
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
			assert.NotContains(t, w.Body.String(), "pq:")
			if tt.contains != "" {
				assert.Contains(t, w.Body.String(), tt.contains)
			}
			require.Len(t, c.Errors, 1)
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/")
		(&BaseHandler{}).HandleError(c, nil)
		assert.False(t, c.Writer.Written())
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestBaseHandler_tenantID(t *testing.T) {
	h := &BaseHandler{}

	c, w := newTestContext(http.MethodGet, "/")
	_, ok := h.tenantID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeTenantMissing, errorCode(t, w))

	c, _ = newTestContext(http.MethodGet, "/")
	tenant := uuid.New()
	c.Set("tenant_id", tenant)
	got, ok := h.tenantID(c)
	assert.True(t, ok)
	assert.Equal(t, tenant, got)
}

func TestBaseHandler_pathID(t *testing.T) {
	h := &BaseHandler{}

	c, w := newTestContext(http.MethodGet, "/")
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	_, ok := h.pathID(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeBadRequest, errorCode(t, w))

	id := uuid.New()
	c, _ = newTestContext(http.MethodGet, "/")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	got, ok := h.pathID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestBaseHandler_SuccessWithMeta(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/")
	(&BaseHandler{}).SuccessWithMeta(c, []string{"a", "b"}, 45, 2, 20)

	resp := decode[[]string](t, w, http.StatusOK)
	assert.Equal(t, []string{"a", "b"}, resp)
	assert.Contains(t, w.Body.String(), `"total_pages":3`)
}

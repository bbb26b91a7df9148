package handler

import (
	"net/http"
	"testing"

	appinvoicing "github.com/faktura/backend/internal/application/invoicing"
	"github.com/faktura/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceHandler_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "business", "Kunde AG")

	draft := decode[appinvoicing.InvoiceResponse](t, env.do(t, http.MethodPost, "/api/v1/invoices", map[string]any{
		"customer_id": customer.ID,
	}), http.StatusCreated)
	path := "/api/v1/invoices/" + draft.ID.String()
	assert.Equal(t, "draft", draft.Status)
	assert.Empty(t, draft.Number)

	t.Run("empty draft cannot be issued", func(t *testing.T) {
		w := env.do(t, http.MethodPost, path+"/issue", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInvoiceEmpty, errorCode(t, w))
	})

	t.Run("update draft", func(t *testing.T) {
		updated := decode[appinvoicing.InvoiceResponse](t, env.do(t, http.MethodPut, path, map[string]any{
			"lines":             []any{line("Beratung", "100"), line("Reisekosten", "50")},
			"payment_term_days": 14,
		}), http.StatusOK)
		assert.True(t, decimal.NewFromInt(150).Equal(updated.NetTotal), updated.NetTotal.String())
		assert.True(t, decimal.RequireFromString("178.5").Equal(updated.GrossTotal), updated.GrossTotal.String())
	})

	var issued appinvoicing.InvoiceResponse
	t.Run("issue", func(t *testing.T) {
		issued = decode[appinvoicing.InvoiceResponse](t, env.do(t, http.MethodPost, path+"/issue",
			map[string]any{"issue_date": "2024-01-02"}), http.StatusOK)
		assert.Equal(t, "open", issued.Status)
		assert.NotEmpty(t, issued.Number)
		require.NotNil(t, issued.DueDate)
		assert.Equal(t, "2024-01-16", issued.DueDate.Format("2006-01-02"))
		assert.Equal(t, "Muster GmbH", issued.Seller.Name)
	})

	t.Run("issued invoices are immutable", func(t *testing.T) {
		w := env.do(t, http.MethodPut, path, map[string]any{"lines": []any{line("Neu", "1")}})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInvoiceImmutable, errorCode(t, w))

		w = env.do(t, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInvoiceImmutable, errorCode(t, w))
	})

	t.Run("overpayment is rejected", func(t *testing.T) {
		w := env.do(t, http.MethodPost, path+"/payments", map[string]any{"amount": "500", "received_on": "2024-01-10"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodePaymentExceedsBalance, errorCode(t, w))
	})

	t.Run("fractions of a cent are rejected", func(t *testing.T) {
		w := env.do(t, http.MethodPost, path+"/payments", map[string]any{"amount": "118.995", "received_on": "2024-01-10"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_INVALID_AMOUNT", errorCode(t, w))
	})

	t.Run("partial and full payment", func(t *testing.T) {
		partial := decode[appinvoicing.InvoiceResponse](t, env.do(t, http.MethodPost, path+"/payments",
			map[string]any{"amount": "78.50", "received_on": "2024-01-10", "method": "bank_transfer"}), http.StatusOK)
		assert.Equal(t, "partially_paid", partial.Status)
		assert.True(t, decimal.NewFromInt(100).Equal(partial.OutstandingTotal))

		paid := decode[appinvoicing.InvoiceResponse](t, env.do(t, http.MethodPost, path+"/payments",
			map[string]any{"amount": "100", "received_on": "2024-01-12"}), http.StatusOK)
		assert.Equal(t, "paid", paid.Status)
		assert.True(t, paid.OutstandingTotal.IsZero())
		assert.Len(t, paid.Payments, 2)
	})

	t.Run("list by status", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/invoices?status=paid", nil)
		items := decode[[]appinvoicing.InvoiceListItem](t, w, http.StatusOK)
		require.Len(t, items, 1)
		assert.Equal(t, issued.Number, items[0].Number)
		assert.Equal(t, "Kunde AG", items[0].CustomerName)
	})
}

func TestInvoiceHandler_CancelAndCorrect(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "business", "Kunde AG")

	t.Run("cancel issues a cancellation invoice", func(t *testing.T) {
		inv := env.issueInvoice(t, customer.ID, "200", "2024-01-02")
		w := env.do(t, http.MethodPost, "/api/v1/invoices/"+inv.ID.String()+"/cancel", map[string]any{"reason": "Doppelt berechnet"})
		resp := decode[appinvoicing.CancelInvoiceResponse](t, w, http.StatusOK)

		assert.Equal(t, "cancelled", resp.Invoice.Status)
		assert.Equal(t, "cancellation", resp.Cancellation.Type)
		require.NotNil(t, resp.Cancellation.CancelsInvoiceID)
		assert.Equal(t, inv.ID, *resp.Cancellation.CancelsInvoiceID)
		assert.True(t, resp.Cancellation.GrossTotal.Neg().Equal(inv.GrossTotal))
		assert.NotEqual(t, inv.Number, resp.Cancellation.Number)
	})

	t.Run("reason is required", func(t *testing.T) {
		inv := env.issueInvoice(t, customer.ID, "200", "2024-01-02")
		w := env.do(t, http.MethodPost, "/api/v1/invoices/"+inv.ID.String()+"/cancel", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, errorCode(t, w))
	})

	t.Run("correct opens a replacement draft", func(t *testing.T) {
		inv := env.issueInvoice(t, customer.ID, "300", "2024-01-02")
		w := env.do(t, http.MethodPost, "/api/v1/invoices/"+inv.ID.String()+"/correct", map[string]any{"reason": "Falscher Preis"})
		resp := decode[appinvoicing.CorrectInvoiceResponse](t, w, http.StatusOK)

		assert.Equal(t, "cancelled", resp.Invoice.Status)
		assert.Equal(t, "draft", resp.Draft.Status)
		require.NotNil(t, resp.Draft.CorrectsInvoiceID)
		assert.Equal(t, inv.ID, *resp.Draft.CorrectsInvoiceID)
		assert.True(t, resp.Draft.NetTotal.Equal(inv.NetTotal))
	})

	t.Run("partially paid invoices cannot be cancelled", func(t *testing.T) {
		inv := env.issueInvoice(t, customer.ID, "10", "2024-01-02")
		decode[appinvoicing.InvoiceResponse](t, env.do(t, http.MethodPost, "/api/v1/invoices/"+inv.ID.String()+"/payments",
			map[string]any{"amount": "5", "received_on": "2024-01-05"}), http.StatusOK)

		w := env.do(t, http.MethodPost, "/api/v1/invoices/"+inv.ID.String()+"/cancel", map[string]any{"reason": "Storno"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidState, errorCode(t, w))
	})
}

func TestInvoiceHandler_DunningBlockAndWriteOff(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "consumer", "Erika Mustermann")
	inv := env.issueInvoice(t, customer.ID, "100", "2024-01-02")
	path := "/api/v1/invoices/" + inv.ID.String()

	blocked := decode[appinvoicing.InvoiceResponse](t, env.do(t, http.MethodPost, path+"/dunning-block",
		map[string]any{"reason": "Reklamation offen"}), http.StatusOK)
	assert.True(t, blocked.DunningBlocked)
	assert.Equal(t, "Reklamation offen", blocked.DunningBlockReason)

	unblocked := decode[appinvoicing.InvoiceResponse](t, env.do(t, http.MethodDelete, path+"/dunning-block", nil), http.StatusOK)
	assert.False(t, unblocked.DunningBlocked)

	w := env.do(t, http.MethodDelete, path+"/dunning-block", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidState, errorCode(t, w))

	writtenOff := decode[appinvoicing.InvoiceResponse](t, env.do(t, http.MethodPost, path+"/write-off",
		map[string]any{"reason": "Insolvenz"}), http.StatusOK)
	assert.Equal(t, "written_off", writtenOff.Status)

	notices := decode[[]appinvoicing.DunningNoticeResponse](t, env.do(t, http.MethodGet, path+"/notices", nil), http.StatusOK)
	assert.Empty(t, notices)
}

package handler

import (
	"net/http"
	"testing"

	appinvoicing "github.com/faktura/backend/internal/application/invoicing"
	"github.com/faktura/backend/internal/interfaces/http/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findDecision(t *testing.T, decisions []appinvoicing.DunningDecisionResponse, invoiceID uuid.UUID) appinvoicing.DunningDecisionResponse {
	t.Helper()
	for _, d := range decisions {
		if d.InvoiceID == invoiceID {
			return d
		}
	}
	require.Failf(t, "decision missing", "no decision for invoice %s", invoiceID)
	return appinvoicing.DunningDecisionResponse{}
}

func TestDunningHandler(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "business", "Kunde AG")

	// both due on 2024-01-16
	overdue := env.issueInvoice(t, customer.ID, "100", "2024-01-02")
	blocked := env.issueInvoice(t, customer.ID, "250", "2024-01-02")
	decode[appinvoicing.InvoiceResponse](t, env.do(t, http.MethodPost, "/api/v1/invoices/"+blocked.ID.String()+"/dunning-block",
		map[string]any{"reason": "Reklamation"}), http.StatusOK)
	invoicePath := "/api/v1/invoices/" + overdue.ID.String()

	t.Run("preview before the due date", func(t *testing.T) {
		d := decode[appinvoicing.DunningDecisionResponse](t, env.do(t, http.MethodGet, invoicePath+"/dunning-preview?as_of=2024-01-10", nil), http.StatusOK)
		assert.False(t, d.Escalate)
		assert.Equal(t, "none", d.CurrentLevel)
		assert.Equal(t, 0, d.DaysOverdue)
	})

	t.Run("tenant preview", func(t *testing.T) {
		decisions := decode[[]appinvoicing.DunningDecisionResponse](t, env.do(t, http.MethodGet, "/api/v1/dunning/preview?as_of=2024-01-24", nil), http.StatusOK)
		d := findDecision(t, decisions, overdue.ID)
		assert.True(t, d.Escalate)
		assert.Equal(t, "reminder", d.NextLevel)
		assert.Equal(t, 8, d.DaysOverdue)
		assert.True(t, d.Fee.IsZero())

		for _, d := range decisions {
			if d.InvoiceID == blocked.ID {
				assert.False(t, d.Escalate)
			}
		}
	})

	t.Run("malformed as_of", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/dunning/preview?as_of=24.01.2024", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("escalate a single invoice", func(t *testing.T) {
		notice := decode[appinvoicing.DunningNoticeResponse](t, env.do(t, http.MethodPost, invoicePath+"/escalate",
			map[string]any{"as_of": "2024-01-24"}), http.StatusCreated)
		assert.Equal(t, "reminder", notice.Level)
		assert.Equal(t, overdue.Number, notice.InvoiceNumber)
		assert.Nil(t, notice.RunID)
		assert.Equal(t, "2024-02-03", notice.PaymentDeadline.Format("2006-01-02"))

		w := env.do(t, http.MethodPost, invoicePath+"/escalate", map[string]any{"as_of": "2024-01-24"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeNotEscalatable, errorCode(t, w))
	})

	t.Run("blocked invoices are not escalated", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/invoices/"+blocked.ID.String()+"/escalate", map[string]any{"as_of": "2024-01-24"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	var run appinvoicing.DunningRunResponse
	t.Run("run", func(t *testing.T) {
		run = decode[appinvoicing.DunningRunResponse](t, env.do(t, http.MethodPost, "/api/v1/dunning/runs",
			map[string]any{"run_date": "2024-02-05"}), http.StatusCreated)
		assert.Equal(t, "completed", run.Status)
		assert.Equal(t, "manual", run.Trigger)
		assert.Equal(t, 1, run.Escalated)
		assert.Equal(t, 0, run.Failed)
		assert.False(t, run.Replayed)
	})

	t.Run("repeating a run replays it", func(t *testing.T) {
		again := decode[appinvoicing.DunningRunResponse](t, env.do(t, http.MethodPost, "/api/v1/dunning/runs",
			map[string]any{"run_date": "2024-02-05"}), http.StatusOK)
		assert.True(t, again.Replayed)
		assert.Equal(t, run.ID, again.ID)
		assert.Equal(t, run.Escalated, again.Escalated)
	})

	t.Run("list runs", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/dunning/runs", nil)
		runs := decode[[]appinvoicing.DunningRunResponse](t, w, http.StatusOK)
		require.Len(t, runs, 1)
		assert.Equal(t, run.ID, runs[0].ID)
	})

	t.Run("run notices", func(t *testing.T) {
		notices := decode[[]appinvoicing.DunningNoticeResponse](t, env.do(t, http.MethodGet,
			"/api/v1/dunning/runs/"+run.ID.String()+"/notices", nil), http.StatusOK)
		require.Len(t, notices, 1)
		n := notices[0]
		assert.Equal(t, overdue.ID, n.InvoiceID)
		assert.Equal(t, "first_notice", n.Level)
		require.NotNil(t, n.RunID)
		assert.Equal(t, run.ID, *n.RunID)
		// Mahngebühr plus the 40 EUR flat fee for business customers
		assert.True(t, decimal.NewFromInt(45).Equal(n.Fee), n.Fee.String())
		assert.True(t, n.Interest.IsPositive())
	})

	t.Run("invoice notices", func(t *testing.T) {
		notices := decode[[]appinvoicing.DunningNoticeResponse](t, env.do(t, http.MethodGet, invoicePath+"/notices", nil), http.StatusOK)
		assert.Len(t, notices, 2)

		inv := decode[appinvoicing.InvoiceResponse](t, env.do(t, http.MethodGet, invoicePath, nil), http.StatusOK)
		assert.Equal(t, "first_notice", inv.DunningLevel)
		assert.True(t, inv.OutstandingTotal.GreaterThan(inv.GrossTotal))
	})
}

package handler

import (
	"bytes"
	"net/http"
	"testing"

	appinvoicing "github.com/faktura/backend/internal/application/invoicing"
	"github.com/faktura/backend/internal/application/report"
	domainreport "github.com/faktura/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReportHandler_OpenItems(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "business", "Kunde AG")
	open := env.issueInvoice(t, customer.ID, "100", "2024-01-02")
	paid := env.issueInvoice(t, customer.ID, "50", "2024-01-02")
	decode[appinvoicing.InvoiceResponse](t, env.do(t, http.MethodPost, "/api/v1/invoices/"+paid.ID.String()+"/payments",
		map[string]any{"amount": "59.50", "received_on": "2024-01-10"}), http.StatusOK)

	t.Run("json", func(t *testing.T) {
		r := decode[domainreport.OpenItemsReport](t, env.do(t, http.MethodGet, "/api/v1/reports/open-items?as_of=2024-02-20", nil), http.StatusOK)
		require.Len(t, r.Items, 1)
		item := r.Items[0]
		assert.Equal(t, open.Number, item.Number)
		assert.Equal(t, "Kunde AG", item.CustomerName)
		assert.Equal(t, 35, item.DaysOverdue)
		assert.Equal(t, domainreport.Aging31To60, item.Bucket)
		assert.True(t, decimal.NewFromInt(119).Equal(r.Total), r.Total.String())
		assert.Equal(t, 1, r.TotalCount)
	})

	t.Run("defaults to today", func(t *testing.T) {
		r := decode[domainreport.OpenItemsReport](t, env.do(t, http.MethodGet, "/api/v1/reports/open-items", nil), http.StatusOK)
		assert.Equal(t, "2024-01-01", r.AsOf.Format("2006-01-02"))
	})

	t.Run("xlsx", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/reports/open-items?as_of=2024-02-20&format=xlsx", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, report.XLSXContentType, w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="offene-posten-2024-02-20.xlsx"`, w.Header().Get("Content-Disposition"))

		f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
		require.NoError(t, err)
		defer func() { _ = f.Close() }()

		rows, err := f.GetRows("Offene Posten")
		require.NoError(t, err)
		require.Len(t, rows, 3, "heading, one item, total")
		assert.Equal(t, open.Number, rows[1][0])
		assert.Equal(t, "Kunde AG", rows[1][1])
	})

	t.Run("unknown format", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/reports/open-items?format=pdf", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

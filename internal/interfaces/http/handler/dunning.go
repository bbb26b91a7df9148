package handler

import (
	"time"

	appinvoicing "github.com/faktura/backend/internal/application/invoicing"
	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/gin-gonic/gin"
)

// asOfQuery is the optional evaluation date of dry runs
type asOfQuery struct {
	AsOf *time.Time `form:"as_of" time_format:"2006-01-02"`
}

// DunningHandler handles dunning runs, previews and single escalations
type DunningHandler struct {
	BaseHandler
	dunningService *appinvoicing.DunningService
}

// NewDunningHandler creates a new DunningHandler
func NewDunningHandler(dunningService *appinvoicing.DunningService) *DunningHandler {
	return &DunningHandler{dunningService: dunningService}
}

// Run godoc
// @ID           runDunning
// @Summary      Start a dunning run
// @Description  Evaluates every overdue invoice of the tenant as of the run date. A tenant has one run per date:
// @Description  repeating a completed run returns the stored result with replayed=true.
// @Tags         dunning
// @Accept       json
// @Produce      json
// @Param        request body appinvoicing.RunDunningRequest false "Run date, defaults to today"
// @Success      200 {object} APIResponse[appinvoicing.DunningRunResponse] "Replayed run"
// @Success      201 {object} APIResponse[appinvoicing.DunningRunResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse "A run for the tenant is in progress"
// @Security     BearerAuth
// @Router       /dunning/runs [post]
func (h *DunningHandler) Run(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appinvoicing.RunDunningRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	runDate := h.dunningService.Today()
	if req.RunDate != nil && !req.RunDate.IsZero() {
		runDate = req.RunDate.Time
	}

	run, err := h.dunningService.RunForTenant(c.Request.Context(), tenantID, runDate, invoicing.DunningRunTriggerManual)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if run.Replayed {
		h.Success(c, run)
		return
	}
	h.Created(c, run)
}

// ListRuns godoc
// @ID           listDunningRuns
// @Summary      List dunning runs
// @Tags         dunning
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(200)
// @Success      200 {object} APIResponse[[]appinvoicing.DunningRunResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /dunning/runs [get]
func (h *DunningHandler) ListRuns(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var params appinvoicing.ListParams
	if !h.bindQuery(c, &params) {
		return
	}

	runs, total, err := h.dunningService.ListRuns(c.Request.Context(), tenantID, params)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, runs, total, params.Page, params.PageSize)
}

// RunNotices godoc
// @ID           listDunningRunNotices
// @Summary      List the notices a run produced
// @Tags         dunning
// @Produce      json
// @Param        id path string true "Run ID" format(uuid)
// @Success      200 {object} APIResponse[[]appinvoicing.DunningNoticeResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /dunning/runs/{id}/notices [get]
func (h *DunningHandler) RunNotices(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	notices, err := h.dunningService.RunNotices(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, notices)
}

// PreviewTenant godoc
// @ID           previewDunning
// @Summary      Dry-run the dunning evaluation
// @Description  Shows what a run would do for every overdue invoice without issuing anything
// @Tags         dunning
// @Produce      json
// @Param        as_of query string false "Evaluation date, defaults to today" format(date)
// @Success      200 {object} APIResponse[[]appinvoicing.DunningDecisionResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /dunning/preview [get]
func (h *DunningHandler) PreviewTenant(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var q asOfQuery
	if !h.bindQuery(c, &q) {
		return
	}
	asOf := h.dunningService.Today()
	if q.AsOf != nil {
		asOf = *q.AsOf
	}

	decisions, err := h.dunningService.PreviewTenant(c.Request.Context(), tenantID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, decisions)
}

// PreviewInvoice godoc
// @ID           previewInvoiceDunning
// @Summary      Dry-run the dunning evaluation of one invoice
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        as_of query string false "Evaluation date, defaults to today" format(date)
// @Success      200 {object} APIResponse[appinvoicing.DunningDecisionResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id}/dunning-preview [get]
func (h *DunningHandler) PreviewInvoice(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	var q asOfQuery
	if !h.bindQuery(c, &q) {
		return
	}

	decision, err := h.dunningService.Preview(c.Request.Context(), tenantID, id, q.AsOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, decision)
}

// EscalateInvoice godoc
// @ID           escalateInvoice
// @Summary      Escalate one invoice outside of a run
// @Description  Issues the next reminder or notice if the invoice is due for it
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        request body appinvoicing.EscalateInvoiceRequest false "Evaluation date, defaults to today"
// @Success      201 {object} APIResponse[appinvoicing.DunningNoticeResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id}/escalate [post]
func (h *DunningHandler) EscalateInvoice(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	var req appinvoicing.EscalateInvoiceRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	notice, err := h.dunningService.EscalateInvoice(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, notice)
}

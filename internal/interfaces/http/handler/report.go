package handler

import (
	"bytes"
	"net/http"

	"github.com/faktura/backend/internal/application/report"
	domainreport "github.com/faktura/backend/internal/domain/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles report endpoints
type ReportHandler struct {
	BaseHandler
	openItemsService *report.OpenItemsService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(openItemsService *report.OpenItemsService) *ReportHandler {
	return &ReportHandler{openItemsService: openItemsService}
}

// OpenItems godoc
// @ID           getOpenItemsReport
// @Summary      Open items report
// @Description  Unpaid invoices with their outstanding principal, fees and interest, grouped into aging buckets.
// @Description  With format=xlsx the report is returned as an Excel workbook.
// @Tags         reports
// @Produce      json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        as_of query string false "Reporting date, defaults to today" format(date)
// @Param        format query string false "Output format" Enums(json, xlsx) default(json)
// @Success      200 {object} APIResponse[domainreport.OpenItemsReport]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reports/open-items [get]
func (h *ReportHandler) OpenItems(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var filter report.OpenItemsFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	r, err := h.openItemsService.OpenItems(c.Request.Context(), tenantID, filter.AsOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if filter.Format == "xlsx" {
		h.writeXLSX(c, r)
		return
	}
	h.Success(c, r)
}

func (h *ReportHandler) writeXLSX(c *gin.Context, r *domainreport.OpenItemsReport) {
	var buf bytes.Buffer
	if err := report.WriteOpenItemsXLSX(&buf, r); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+report.OpenItemsFileName(r)+`"`)
	c.Data(http.StatusOK, report.XLSXContentType, buf.Bytes())
}

package handler

import (
	appinvoicing "github.com/faktura/backend/internal/application/invoicing"
	"github.com/gin-gonic/gin"
)

// ExpenseHandler handles expense and receipt endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *appinvoicing.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *appinvoicing.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Create godoc
// @ID           createExpense
// @Summary      Book an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body appinvoicing.CreateExpenseRequest true "Expense data"
// @Success      201 {object} APIResponse[appinvoicing.ExpenseResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appinvoicing.CreateExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, expense)
}

// List godoc
// @ID           listExpenses
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Param        search query string false "Search by vendor or description"
// @Param        category query string false "Category" Enums(office, travel, software, rent, marketing, vehicle, other)
// @Param        from query string false "Booked on or after" format(date)
// @Param        to query string false "Booked on or before" format(date)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(200)
// @Success      200 {object} APIResponse[[]appinvoicing.ExpenseResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var filter appinvoicing.ExpenseListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	expenses, total, err := h.expenseService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, expenses, total, filter.Page, filter.PageSize)
}

// Get godoc
// @ID           getExpense
// @Summary      Get expense by ID
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Success      200 {object} APIResponse[appinvoicing.ExpenseResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// Delete godoc
// @ID           deleteExpense
// @Summary      Delete an expense
// @Tags         expenses
// @Param        id path string true "Expense ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RequestReceiptUpload godoc
// @ID           requestExpenseReceiptUpload
// @Summary      Get a receipt upload URL
// @Description  Returns a presigned PUT URL; the client uploads the receipt directly to object storage
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Param        request body appinvoicing.ReceiptUploadRequest true "File metadata"
// @Success      200 {object} APIResponse[appinvoicing.ReceiptUploadResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /expenses/{id}/receipt-upload [post]
func (h *ExpenseHandler) RequestReceiptUpload(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	var req appinvoicing.ReceiptUploadRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.expenseService.RequestReceiptUpload(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ReceiptDownloadURL godoc
// @ID           getExpenseReceipt
// @Summary      Get a receipt download URL
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Success      200 {object} APIResponse[appinvoicing.ReceiptDownloadResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /expenses/{id}/receipt [get]
func (h *ExpenseHandler) ReceiptDownloadURL(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	resp, err := h.expenseService.ReceiptDownloadURL(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

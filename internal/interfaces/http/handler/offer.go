package handler

import (
	appinvoicing "github.com/faktura/backend/internal/application/invoicing"
	"github.com/gin-gonic/gin"
)

// OfferHandler handles offer (Angebot) endpoints
type OfferHandler struct {
	BaseHandler
	offerService *appinvoicing.OfferService
}

// NewOfferHandler creates a new OfferHandler
func NewOfferHandler(offerService *appinvoicing.OfferService) *OfferHandler {
	return &OfferHandler{offerService: offerService}
}

// Create godoc
// @ID           createOffer
// @Summary      Create an offer
// @Tags         offers
// @Accept       json
// @Produce      json
// @Param        request body appinvoicing.CreateOfferRequest true "Offer data"
// @Success      201 {object} APIResponse[appinvoicing.OfferResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /offers [post]
func (h *OfferHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appinvoicing.CreateOfferRequest
	if !h.bindJSON(c, &req) {
		return
	}

	offer, err := h.offerService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, offer)
}

// List godoc
// @ID           listOffers
// @Summary      List offers
// @Tags         offers
// @Produce      json
// @Param        search query string false "Search by number or title"
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        status query string false "Status" Enums(draft, sent, accepted, rejected, converted)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(200)
// @Success      200 {object} APIResponse[[]appinvoicing.OfferResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /offers [get]
func (h *OfferHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var filter appinvoicing.OfferListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	offers, total, err := h.offerService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, offers, total, filter.Page, filter.PageSize)
}

// Get godoc
// @ID           getOffer
// @Summary      Get offer by ID
// @Tags         offers
// @Produce      json
// @Param        id path string true "Offer ID" format(uuid)
// @Success      200 {object} APIResponse[appinvoicing.OfferResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /offers/{id} [get]
func (h *OfferHandler) Get(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	offer, err := h.offerService.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, offer)
}

// Send godoc
// @ID           sendOffer
// @Summary      Mark an offer as sent
// @Tags         offers
// @Produce      json
// @Param        id path string true "Offer ID" format(uuid)
// @Success      200 {object} APIResponse[appinvoicing.OfferResponse]
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /offers/{id}/send [post]
func (h *OfferHandler) Send(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	offer, err := h.offerService.Send(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, offer)
}

// Accept godoc
// @ID           acceptOffer
// @Summary      Record the customer's acceptance
// @Tags         offers
// @Produce      json
// @Param        id path string true "Offer ID" format(uuid)
// @Success      200 {object} APIResponse[appinvoicing.OfferResponse]
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /offers/{id}/accept [post]
func (h *OfferHandler) Accept(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	offer, err := h.offerService.Accept(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, offer)
}

// Reject godoc
// @ID           rejectOffer
// @Summary      Record the customer's rejection
// @Tags         offers
// @Accept       json
// @Produce      json
// @Param        id path string true "Offer ID" format(uuid)
// @Param        request body appinvoicing.ReasonRequest true "Reason"
// @Success      200 {object} APIResponse[appinvoicing.OfferResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /offers/{id}/reject [post]
func (h *OfferHandler) Reject(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	var req appinvoicing.ReasonRequest
	if !h.bindJSON(c, &req) {
		return
	}

	offer, err := h.offerService.Reject(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, offer)
}

// Convert godoc
// @ID           convertOffer
// @Summary      Convert an accepted offer into a draft invoice
// @Tags         offers
// @Produce      json
// @Param        id path string true "Offer ID" format(uuid)
// @Success      201 {object} APIResponse[appinvoicing.ConvertOfferResponse]
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /offers/{id}/convert [post]
func (h *OfferHandler) Convert(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	resp, err := h.offerService.Convert(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

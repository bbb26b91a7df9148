package handler

import (
	appinvoicing "github.com/faktura/backend/internal/application/invoicing"
	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CompanyHandler handles company (tenant) endpoints
type CompanyHandler struct {
	BaseHandler
	companyService *appinvoicing.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *appinvoicing.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// ownCompany resolves the :id path parameter and rejects access to any
// company other than the caller's tenant
func (h *CompanyHandler) ownCompany(c *gin.Context) (uuid.UUID, bool) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return uuid.Nil, false
	}
	if id != tenantID {
		h.Forbidden(c, "Access to another company is not allowed")
		return uuid.Nil, false
	}
	return id, true
}

// Create godoc
// @ID           createCompany
// @Summary      Register a company
// @Description  Register a new company. The company ID becomes the tenant ID of its data.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        request body appinvoicing.CreateCompanyRequest true "Company data"
// @Success      201 {object} APIResponse[appinvoicing.CompanyResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	var req appinvoicing.CreateCompanyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, company)
}

// List godoc
// @ID           listCompanies
// @Summary      List companies
// @Description  Lists the companies visible to the caller, which is only its own tenant
// @Tags         companies
// @Produce      json
// @Success      200 {object} APIResponse[[]appinvoicing.CompanyResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	companies, err := h.companyService.ListForTenant(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, companies, int64(len(companies)), 1, len(companies))
}

// Get godoc
// @ID           getCompany
// @Summary      Get company by ID
// @Tags         companies
// @Produce      json
// @Param        id path string true "Company ID" format(uuid)
// @Success      200 {object} APIResponse[appinvoicing.CompanyResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{id} [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := h.ownCompany(c)
	if !ok {
		return
	}

	company, err := h.companyService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// Update godoc
// @ID           updateCompany
// @Summary      Update company master data
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id path string true "Company ID" format(uuid)
// @Param        request body appinvoicing.UpdateCompanyRequest true "Company data"
// @Success      200 {object} APIResponse[appinvoicing.CompanyResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{id} [put]
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := h.ownCompany(c)
	if !ok {
		return
	}
	var req appinvoicing.UpdateCompanyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// UpdateDunningSettings godoc
// @ID           updateCompanyDunningSettings
// @Summary      Update dunning settings
// @Description  Replace the grace periods, fees and deadlines used by dunning runs
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id path string true "Company ID" format(uuid)
// @Param        request body invoicing.DunningSettings true "Dunning settings"
// @Success      200 {object} APIResponse[appinvoicing.CompanyResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{id}/dunning-settings [put]
func (h *CompanyHandler) UpdateDunningSettings(c *gin.Context) {
	id, ok := h.ownCompany(c)
	if !ok {
		return
	}
	var settings invoicing.DunningSettings
	if !h.bindJSON(c, &settings) {
		return
	}

	company, err := h.companyService.UpdateDunningSettings(c.Request.Context(), id, settings)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// Deactivate godoc
// @ID           deactivateCompany
// @Summary      Deactivate a company
// @Description  Deactivated companies are skipped by scheduled dunning runs
// @Tags         companies
// @Produce      json
// @Param        id path string true "Company ID" format(uuid)
// @Success      200 {object} APIResponse[appinvoicing.CompanyResponse]
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{id}/deactivate [post]
func (h *CompanyHandler) Deactivate(c *gin.Context) {
	id, ok := h.ownCompany(c)
	if !ok {
		return
	}

	company, err := h.companyService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

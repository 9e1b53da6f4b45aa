package handler

import (
	"errors"
	"net/http"

	"vendorhub/internal/middleware"
	"vendorhub/internal/repository"
	"vendorhub/internal/service"
	"vendorhub/internal/workflow"
	"vendorhub/pkg/pagination"
	"vendorhub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VendorHandler struct {
	vendorService service.VendorService
}

func NewVendorHandler(vendorService service.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

func (h *VendorHandler) RegisterRoutes(router *gin.RouterGroup) {
	vendors := router.Group("/vendors")
	{
		// Public registration endpoints, no auth
		vendors.POST("/public-registration", h.Register)
		vendors.GET("/public-registration/agreements", h.PublicAgreements)

		vendors.GET("", middleware.RequirePermission("vendors.read"), h.ListVendors)
		vendors.GET("/:id", middleware.RequirePermission("vendors.read"), h.GetVendor)
		vendors.GET("/:id/visible-agreements", middleware.RequirePermission("vendors.read"), h.VisibleAgreements)
		vendors.PUT("/:id", middleware.RequirePermission("vendors.write"), h.UpdateVendor)
		vendors.DELETE("/:id", middleware.RequirePermission("vendors.delete"), h.DeleteVendor)

		vendors.GET("/:id/addresses", middleware.RequirePermission("vendors.read"), h.Addresses)
		vendors.POST("/:id/addresses", middleware.RequirePermission("vendors.write"), h.AddAddress)
		vendors.GET("/:id/bank-info", middleware.RequirePermission("vendors.read"), h.BankInfo)
		vendors.POST("/:id/bank-info", middleware.RequirePermission("vendors.write"), h.SetBankInfo)
		vendors.GET("/:id/compliance", middleware.RequirePermission("vendors.read"), h.Compliance)
		vendors.POST("/:id/compliance", middleware.RequirePermission("vendors.write"), h.SetCompliance)
		vendors.GET("/:id/agreements", middleware.RequirePermission("vendors.read"), h.Agreements)
		vendors.POST("/:id/agreements", middleware.RequirePermission("vendors.write"), h.SetAgreements)
	}
}

// detailError maps vendor detail failures onto HTTP statuses.
func detailError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVendorNotFound), errors.Is(err, service.ErrDetailNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	case errors.Is(err, service.ErrDetailExists):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
	default:
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	}
}

// actorID extracts the authenticated user id set by the auth middleware.
// Returns nil on public routes or malformed claims.
func actorID(c *gin.Context) *uuid.UUID {
	raw, exists := c.Get("userID")
	if !exists {
		return nil
	}
	idStr, ok := raw.(string)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil
	}
	return &id
}

// Register handles the public vendor registration submission
// @Summary      Submit vendor registration
// @Description  Validates the full six-step registration form and creates the vendor application
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        draft_token  query  string         false  "Draft token to clear after successful submission"
// @Param        payload      body   workflow.Form  true   "Registration form"
// @Success      201  {object}  response.Response{data=service.RegistrationResponse}
// @Failure      400  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/v1/vendors/public-registration [post]
func (h *VendorHandler) Register(c *gin.Context) {
	var form workflow.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	res, err := h.vendorService.Register(c.Request.Context(), form, c.Query("draft_token"))
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, response.ValidationFailed(http.StatusUnprocessableEntity, verr.Fields))
			return
		}
		if errors.Is(err, service.ErrEmailRegistered) {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}

// PublicAgreements resolves the agreement set for the registration wizard
// @Summary      Resolve visible agreements
// @Description  Returns the agreements an applicant must accept, given country of origin and supplier group
// @Tags         registration
// @Produce      json
// @Param        country         query  string  true   "Country of origin code"
// @Param        supplier_group  query  string  false  "Supplier group"
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/v1/vendors/public-registration/agreements [get]
func (h *VendorHandler) PublicAgreements(c *gin.Context) {
	country := c.Query("country")
	group := c.Query("supplier_group")
	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"agreements": workflow.VisibleAgreements(country, group),
	}))
}

// ListVendors returns paginated vendors with optional filters
// @Summary      List vendors
// @Tags         vendors
// @Security     BearerAuth
// @Produce      json
// @Param        page           query  int     false  "Page number (default 1)"
// @Param        limit          query  int     false  "Items per page (default 20)"
// @Param        search         query  string  false  "Search company name, contact, email or vendor code"
// @Param        status         query  string  false  "Filter by status"
// @Param        supplier_type  query  string  false  "Filter by supplier type"
// @Param        msme_status    query  string  false  "Filter by MSME status"
// @Param        category       query  string  false  "Filter by supplier category"
// @Param        country        query  string  false  "Filter by country of origin"
// @Success      200  {object}  response.Response{data=[]service.VendorSummary}
// @Router       /api/v1/vendors [get]
func (h *VendorHandler) ListVendors(c *gin.Context) {
	params := pagination.Parse(c)

	filter := repository.VendorFilter{
		Search:       c.Query("search"),
		Status:       c.Query("status"),
		SupplierType: c.Query("supplier_type"),
		MSMEStatus:   c.Query("msme_status"),
		Category:     c.Query("category"),
		Country:      c.Query("country"),
	}

	vendors, total, err := h.vendorService.List(c.Request.Context(), filter, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, vendors, params.Page, params.Limit, total))
}

// GetVendor returns one vendor with its full related graph
// @Summary      Get vendor
// @Tags         vendors
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Vendor ID"
// @Success      200  {object}  response.Response{data=model.Vendor}
// @Failure      404  {object}  response.Response
// @Router       /api/v1/vendors/{id} [get]
func (h *VendorHandler) GetVendor(c *gin.Context) {
	vendor, err := h.vendorService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrVendorNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, vendor))
}

// VisibleAgreements resolves the agreement set for an existing vendor
// @Summary      Get vendor visible agreements
// @Tags         vendors
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Vendor ID"
// @Success      200  {object}  response.Response{data=object}
// @Failure      404  {object}  response.Response
// @Router       /api/v1/vendors/{id}/visible-agreements [get]
func (h *VendorHandler) VisibleAgreements(c *gin.Context) {
	agreements, err := h.vendorService.VisibleAgreements(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrVendorNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"agreements": agreements,
	}))
}

// UpdateVendor edits vendor contact and profile fields
// @Summary      Update vendor
// @Tags         vendors
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                       true  "Vendor ID"
// @Param        payload  body  service.UpdateVendorRequest  true  "Update payload"
// @Success      200  {object}  response.Response{data=model.Vendor}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/v1/vendors/{id} [put]
func (h *VendorHandler) UpdateVendor(c *gin.Context) {
	var req service.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vendor, err := h.vendorService.Update(c.Request.Context(), c.Param("id"), req, actorID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVendorNotFound):
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		case errors.Is(err, service.ErrVendorNotEditable):
			c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
		default:
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, vendor))
}

// DeleteVendor soft deletes a vendor application
// @Summary      Delete vendor
// @Tags         vendors
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Vendor ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/v1/vendors/{id} [delete]
func (h *VendorHandler) DeleteVendor(c *gin.Context) {
	if err := h.vendorService.Delete(c.Request.Context(), c.Param("id"), actorID(c)); err != nil {
		if errors.Is(err, service.ErrVendorNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Vendor deleted successfully"))
}

// Addresses lists a vendor's address records
// @Summary      List vendor addresses
// @Tags         vendors
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Vendor ID"
// @Success      200  {object}  response.Response{data=[]model.VendorAddress}
// @Failure      404  {object}  response.Response
// @Router       /api/v1/vendors/{id}/addresses [get]
func (h *VendorHandler) Addresses(c *gin.Context) {
	addresses, err := h.vendorService.Addresses(c.Request.Context(), c.Param("id"))
	if err != nil {
		detailError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, addresses))
}

// AddAddress adds one address record to a vendor
// @Summary      Add vendor address
// @Tags         vendors
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                  true  "Vendor ID"
// @Param        payload  body  service.AddressRequest  true  "Address payload"
// @Success      201  {object}  response.Response{data=model.VendorAddress}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/v1/vendors/{id}/addresses [post]
func (h *VendorHandler) AddAddress(c *gin.Context) {
	var req service.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	addr, err := h.vendorService.AddAddress(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		detailError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, addr))
}

// BankInfo returns a vendor's bank record
// @Summary      Get vendor bank info
// @Tags         vendors
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Vendor ID"
// @Success      200  {object}  response.Response{data=model.VendorBankInfo}
// @Failure      404  {object}  response.Response
// @Router       /api/v1/vendors/{id}/bank-info [get]
func (h *VendorHandler) BankInfo(c *gin.Context) {
	info, err := h.vendorService.BankInfo(c.Request.Context(), c.Param("id"))
	if err != nil {
		detailError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, info))
}

// SetBankInfo creates a vendor's bank record. Conflicts when one exists.
// @Summary      Create vendor bank info
// @Tags         vendors
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                   true  "Vendor ID"
// @Param        payload  body  service.BankInfoRequest  true  "Bank info payload"
// @Success      201  {object}  response.Response{data=model.VendorBankInfo}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/v1/vendors/{id}/bank-info [post]
func (h *VendorHandler) SetBankInfo(c *gin.Context) {
	var req service.BankInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	info, err := h.vendorService.SetBankInfo(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		detailError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, info))
}

// Compliance returns a vendor's compliance record
// @Summary      Get vendor compliance
// @Tags         vendors
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Vendor ID"
// @Success      200  {object}  response.Response{data=model.VendorCompliance}
// @Failure      404  {object}  response.Response
// @Router       /api/v1/vendors/{id}/compliance [get]
func (h *VendorHandler) Compliance(c *gin.Context) {
	compliance, err := h.vendorService.Compliance(c.Request.Context(), c.Param("id"))
	if err != nil {
		detailError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, compliance))
}

// SetCompliance creates a vendor's compliance record. Conflicts when one exists.
// @Summary      Create vendor compliance
// @Tags         vendors
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                     true  "Vendor ID"
// @Param        payload  body  service.ComplianceRequest  true  "Compliance payload"
// @Success      201  {object}  response.Response{data=model.VendorCompliance}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/v1/vendors/{id}/compliance [post]
func (h *VendorHandler) SetCompliance(c *gin.Context) {
	var req service.ComplianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	compliance, err := h.vendorService.SetCompliance(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		detailError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, compliance))
}

// Agreements returns a vendor's accepted agreement record
// @Summary      Get vendor agreements
// @Tags         vendors
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Vendor ID"
// @Success      200  {object}  response.Response{data=model.VendorAgreement}
// @Failure      404  {object}  response.Response
// @Router       /api/v1/vendors/{id}/agreements [get]
func (h *VendorHandler) Agreements(c *gin.Context) {
	agreements, err := h.vendorService.Agreements(c.Request.Context(), c.Param("id"))
	if err != nil {
		detailError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, agreements))
}

// SetAgreements creates a vendor's agreement record. Conflicts when one exists.
// @Summary      Create vendor agreements
// @Tags         vendors
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                     true  "Vendor ID"
// @Param        payload  body  service.AgreementsRequest  true  "Agreements payload"
// @Success      201  {object}  response.Response{data=model.VendorAgreement}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/v1/vendors/{id}/agreements [post]
func (h *VendorHandler) SetAgreements(c *gin.Context) {
	var req service.AgreementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	agreements, err := h.vendorService.SetAgreements(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		detailError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, agreements))
}

package handler

import (
	"errors"
	"net/http"

	"vendorhub/internal/middleware"
	"vendorhub/internal/service"
	"vendorhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	documentService service.DocumentService
}

func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/document-types", middleware.RequirePermission("documents.read"), h.Types)

	vendorDocs := router.Group("/vendors/:id/documents")
	{
		vendorDocs.GET("", middleware.RequirePermission("documents.read"), h.ListForVendor)
		vendorDocs.GET("/stats", middleware.RequirePermission("documents.read"), h.StatsForVendor)
		vendorDocs.POST("", middleware.RequirePermission("documents.write"), h.Upload)
	}

	docs := router.Group("/documents")
	{
		docs.GET("/:id", middleware.RequirePermission("documents.read"), h.Get)
		docs.PUT("/:id/review", middleware.RequirePermission("documents.write"), h.Review)
		docs.DELETE("/:id", middleware.RequirePermission("documents.write"), h.Delete)
	}
}

func (h *DocumentHandler) writeDocumentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVendorNotFound), errors.Is(err, service.ErrDocumentNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	case errors.Is(err, service.ErrUnknownDocumentType), errors.Is(err, service.ErrInvalidReviewStatus):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
	}
}

// Upload attaches a supporting document to a vendor
// @Summary      Upload vendor document
// @Tags         documents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                         true  "Vendor ID"
// @Param        payload  body  service.UploadDocumentRequest  true  "Document metadata"
// @Success      201  {object}  response.Response{data=model.VendorDocument}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/v1/vendors/{id}/documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	var req service.UploadDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	doc, err := h.documentService.Upload(c.Request.Context(), c.Param("id"), req, actorID(c))
	if err != nil {
		h.writeDocumentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, doc))
}

// ListForVendor lists a vendor's documents, optionally filtered by type
// @Summary      List vendor documents
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id    path   string  true   "Vendor ID"
// @Param        type  query  string  false  "Filter by document type"
// @Success      200  {object}  response.Response{data=[]model.VendorDocument}
// @Router       /api/v1/vendors/{id}/documents [get]
func (h *DocumentHandler) ListForVendor(c *gin.Context) {
	docs, err := h.documentService.ListByVendor(c.Request.Context(), c.Param("id"), c.Query("type"))
	if err != nil {
		h.writeDocumentError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, docs))
}

// Get returns one document's metadata
// @Summary      Get document
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response{data=model.VendorDocument}
// @Failure      404  {object}  response.Response
// @Router       /api/v1/documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.documentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeDocumentError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, doc))
}

// StatsForVendor summarizes a vendor's documents by review status
// @Summary      Vendor document stats
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Vendor ID"
// @Success      200  {object}  response.Response{data=service.DocumentStats}
// @Router       /api/v1/vendors/{id}/documents/stats [get]
func (h *DocumentHandler) StatsForVendor(c *gin.Context) {
	stats, err := h.documentService.StatsByVendor(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeDocumentError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// Types lists the accepted document types
// @Summary      Document types
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]string}
// @Router       /api/v1/document-types [get]
func (h *DocumentHandler) Types(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.documentService.Types()))
}

// Review records a reviewer verdict on a document
// @Summary      Review document
// @Tags         documents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                         true  "Document ID"
// @Param        payload  body  service.ReviewDocumentRequest  true  "Review verdict"
// @Success      200  {object}  response.Response{data=model.VendorDocument}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/v1/documents/{id}/review [put]
func (h *DocumentHandler) Review(c *gin.Context) {
	var req service.ReviewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	doc, err := h.documentService.Review(c.Request.Context(), c.Param("id"), req, actorID(c))
	if err != nil {
		h.writeDocumentError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, doc))
}

// Delete removes a document record
// @Summary      Delete document
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/v1/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.documentService.Delete(c.Request.Context(), c.Param("id"), actorID(c)); err != nil {
		h.writeDocumentError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Document deleted successfully"))
}

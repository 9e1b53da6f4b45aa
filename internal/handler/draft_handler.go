package handler

import (
	"errors"
	"net/http"
	"strconv"

	"vendorhub/internal/service"
	"vendorhub/internal/workflow"
	"vendorhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type DraftHandler struct {
	draftService service.DraftService
}

func NewDraftHandler(draftService service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// Draft endpoints are public: applicants have no account while registering.
func (h *DraftHandler) RegisterRoutes(router *gin.RouterGroup) {
	drafts := router.Group("/registration-drafts")
	{
		drafts.PUT("/:token", h.Save)
		drafts.GET("/:token", h.Get)
		drafts.DELETE("/:token", h.Delete)
	}
}

// Save stores or replaces an in-progress registration draft
// @Summary      Save registration draft
// @Description  Persists the wizard state under an opaque client token. No validation is applied.
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        token  path   string         true   "Draft token"
// @Param        step   query  int            false  "Current wizard step (default 1)"
// @Param        payload body  workflow.Form  true   "Partial registration form"
// @Success      200  {object}  response.Response{data=service.DraftResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/v1/registration-drafts/{token} [put]
func (h *DraftHandler) Save(c *gin.Context) {
	var form workflow.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	step, _ := strconv.Atoi(c.DefaultQuery("step", "1"))

	draft, err := h.draftService.Save(c.Request.Context(), c.Param("token"), form, step)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, draft))
}

// Get restores a previously saved draft
// @Summary      Get registration draft
// @Tags         registration
// @Produce      json
// @Param        token  path  string  true  "Draft token"
// @Success      200  {object}  response.Response{data=service.DraftResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/v1/registration-drafts/{token} [get]
func (h *DraftHandler) Get(c *gin.Context) {
	draft, err := h.draftService.Get(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, draft))
}

// Delete discards a draft
// @Summary      Delete registration draft
// @Tags         registration
// @Produce      json
// @Param        token  path  string  true  "Draft token"
// @Success      200  {object}  response.Response
// @Router       /api/v1/registration-drafts/{token} [delete]
func (h *DraftHandler) Delete(c *gin.Context) {
	if err := h.draftService.Delete(c.Request.Context(), c.Param("token")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Draft deleted"))
}

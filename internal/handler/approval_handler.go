package handler

import (
	"errors"
	"net/http"

	"vendorhub/internal/middleware"
	"vendorhub/internal/model"
	"vendorhub/internal/service"
	"vendorhub/internal/workflow"
	"vendorhub/pkg/pagination"
	"vendorhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type ApprovalHandler struct {
	approvalService service.ApprovalService
}

func NewApprovalHandler(approvalService service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

func (h *ApprovalHandler) RegisterRoutes(router *gin.RouterGroup) {
	approvals := router.Group("/approvals")
	{
		// Applicants may poll their own application status without auth
		approvals.GET("/vendor/:id/public", h.PublicStatus)

		approvals.GET("/vendor/:id", middleware.RequirePermission("approvals.read"), h.ListForVendor)
		approvals.GET("/pending", middleware.RequirePermission("approvals.read"), h.PendingForMe)
		approvals.GET("/stats", middleware.RequirePermission("approvals.read"), h.StatsForMe)
		approvals.GET("/questionnaire-options", middleware.RequirePermission("approvals.read"), h.QuestionnaireOptions)
		approvals.GET("/rejection-reasons", middleware.RequirePermission("approvals.read"), h.RejectionReasons)

		approvals.POST("/vendor/:id", middleware.RequirePermission("approvals.decide"), h.Decide)
		approvals.POST("/vendor/:id/approve", middleware.RequirePermission("approvals.decide"), h.Approve)
		approvals.POST("/vendor/:id/reject", middleware.RequirePermission("approvals.decide"), h.Reject)
		approvals.POST("/vendor/:id/request-changes", middleware.RequirePermission("approvals.decide"), h.RequestChanges)
	}
}

// DecisionRequest is the combined decision payload, dispatched on status.
type DecisionRequest struct {
	Level         string                 `json:"level"`
	Status        string                 `json:"status" binding:"required"`
	Comments      string                 `json:"comments"`
	Reason        string                 `json:"reason"`
	CustomReason  string                 `json:"custom_reason"`
	Questionnaire workflow.Questionnaire `json:"questionnaire"`
}

// Decide records an approval decision from a single combined payload
// @Summary      Record approval decision
// @Description  Dispatches on status: approved, rejected or returned_for_revision.
// @Tags         approvals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                   true  "Vendor ID"
// @Param        payload  body  handler.DecisionRequest  true  "Decision payload"
// @Success      200  {object}  response.Response{data=service.DecisionResponse}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/v1/approvals/vendor/{id} [post]
func (h *ApprovalHandler) Decide(c *gin.Context) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vendorID := c.Param("id")
	approver := approverFromContext(c)

	var decision *service.DecisionResponse
	var err error
	switch req.Status {
	case model.ApprovalApproved:
		decision, err = h.approvalService.Approve(c.Request.Context(), vendorID, approver, service.ApproveVendorRequest{
			Level:         req.Level,
			Comments:      req.Comments,
			Questionnaire: req.Questionnaire,
		})
	case model.ApprovalRejected:
		decision, err = h.approvalService.Reject(c.Request.Context(), vendorID, approver, service.RejectVendorRequest{
			Level:        req.Level,
			Reason:       req.Reason,
			CustomReason: req.CustomReason,
			Remarks:      req.Comments,
		})
	case model.ApprovalReturnedForRevision:
		decision, err = h.approvalService.RequestChanges(c.Request.Context(), vendorID, approver, service.RequestChangesRequest{
			Level:    req.Level,
			Comments: req.Comments,
		})
	default:
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Unknown decision status: "+req.Status))
		return
	}
	if err != nil {
		h.writeDecisionError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, decision))
}

func (h *ApprovalHandler) writeDecisionError(c *gin.Context, err error) {
	var qerr *service.QuestionnaireError
	if errors.As(err, &qerr) {
		c.JSON(http.StatusUnprocessableEntity, response.ValidationFailed(http.StatusUnprocessableEntity, qerr.Fields))
		return
	}
	var rerr *service.RejectionError
	if errors.As(err, &rerr) {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, rerr.Error()))
		return
	}
	switch {
	case errors.Is(err, service.ErrVendorNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	case errors.Is(err, service.ErrVendorTerminal):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
	case errors.Is(err, service.ErrCommentRequired), errors.Is(err, service.ErrUnknownLevel):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
	}
}

// approverFromContext resolves the acting reviewer id from middleware claims.
func approverFromContext(c *gin.Context) string {
	if id := actorID(c); id != nil {
		return id.String()
	}
	return ""
}

// Approve records an approval decision for a vendor
// @Summary      Approve vendor
// @Description  Records an approval at the given level. The commercial questionnaire must be fully answered.
// @Tags         approvals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                        true  "Vendor ID"
// @Param        payload  body  service.ApproveVendorRequest  true  "Approval payload"
// @Success      200  {object}  response.Response{data=service.DecisionResponse}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/v1/approvals/vendor/{id}/approve [post]
func (h *ApprovalHandler) Approve(c *gin.Context) {
	var req service.ApproveVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	decision, err := h.approvalService.Approve(c.Request.Context(), c.Param("id"), approverFromContext(c), req)
	if err != nil {
		h.writeDecisionError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, decision))
}

// Reject records a rejection decision for a vendor
// @Summary      Reject vendor
// @Description  Rejects the vendor application. A reason code is mandatory; "other" requires free text.
// @Tags         approvals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                       true  "Vendor ID"
// @Param        payload  body  service.RejectVendorRequest  true  "Rejection payload"
// @Success      200  {object}  response.Response{data=service.DecisionResponse}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/v1/approvals/vendor/{id}/reject [post]
func (h *ApprovalHandler) Reject(c *gin.Context) {
	var req service.RejectVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	decision, err := h.approvalService.Reject(c.Request.Context(), c.Param("id"), approverFromContext(c), req)
	if err != nil {
		h.writeDecisionError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, decision))
}

// RequestChanges returns a vendor application for revision
// @Summary      Request changes
// @Description  Sends the application back to the vendor with mandatory comments.
// @Tags         approvals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                         true  "Vendor ID"
// @Param        payload  body  service.RequestChangesRequest  true  "Change request payload"
// @Success      200  {object}  response.Response{data=service.DecisionResponse}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/v1/approvals/vendor/{id}/request-changes [post]
func (h *ApprovalHandler) RequestChanges(c *gin.Context) {
	var req service.RequestChangesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	decision, err := h.approvalService.RequestChanges(c.Request.Context(), c.Param("id"), approverFromContext(c), req)
	if err != nil {
		h.writeDecisionError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, decision))
}

// ListForVendor returns the full decision history of a vendor
// @Summary      List vendor approvals
// @Tags         approvals
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Vendor ID"
// @Success      200  {object}  response.Response{data=[]model.VendorApproval}
// @Router       /api/v1/approvals/vendor/{id} [get]
func (h *ApprovalHandler) ListForVendor(c *gin.Context) {
	decisions, err := h.approvalService.ListForVendor(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, decisions))
}

// PublicStatus returns a reduced decision view for unauthenticated applicants
// @Summary      Public approval status
// @Description  Lets an applicant poll the level-by-level state of their application
// @Tags         approvals
// @Produce      json
// @Param        id   path      string  true  "Vendor ID"
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/v1/approvals/vendor/{id}/public [get]
func (h *ApprovalHandler) PublicStatus(c *gin.Context) {
	decisions, err := h.approvalService.ListForVendor(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	// Strip reviewer identity and internal comments from the public view
	levels := make([]map[string]string, 0, len(decisions))
	for _, d := range decisions {
		entry := map[string]string{
			"level":  d.Level,
			"status": d.Status,
		}
		if d.Status == model.ApprovalRejected {
			entry["rejection_reason"] = d.RejectionReason
		}
		levels = append(levels, entry)
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"levels": levels,
	}))
}

// PendingForMe lists the decisions awaiting the authenticated reviewer
// @Summary      List pending approvals
// @Tags         approvals
// @Security     BearerAuth
// @Produce      json
// @Param        page   query  int     false  "Page number (default 1)"
// @Param        limit  query  int     false  "Items per page (default 20)"
// @Param        level  query  string  false  "Filter by approval level"
// @Success      200  {object}  response.Response{data=[]model.VendorApproval}
// @Router       /api/v1/approvals/pending [get]
func (h *ApprovalHandler) PendingForMe(c *gin.Context) {
	params := pagination.Parse(c)

	approver := approverFromContext(c)
	if approver == "" {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	decisions, total, err := h.approvalService.PendingForApprover(c.Request.Context(), approver, c.Query("level"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, decisions, params.Page, params.Limit, total))
}

// StatsForMe summarizes the authenticated reviewer's decision workload
// @Summary      Approval stats
// @Tags         approvals
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.ApprovalStats}
// @Router       /api/v1/approvals/stats [get]
func (h *ApprovalHandler) StatsForMe(c *gin.Context) {
	approver := approverFromContext(c)
	if approver == "" {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	stats, err := h.approvalService.StatsForApprover(c.Request.Context(), approver)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// QuestionnaireOptions returns the reviewer questionnaire vocabularies
// @Summary      Questionnaire options
// @Description  Returns the selectable answers for the approval questionnaire, split by vendor country
// @Tags         approvals
// @Security     BearerAuth
// @Produce      json
// @Param        country  query  string  true  "Vendor country of origin code"
// @Success      200  {object}  response.Response{data=service.QuestionnaireOptionsResponse}
// @Router       /api/v1/approvals/questionnaire-options [get]
func (h *ApprovalHandler) QuestionnaireOptions(c *gin.Context) {
	options := h.approvalService.QuestionnaireOptions(c.Query("country"))
	c.JSON(http.StatusOK, response.Success(http.StatusOK, options))
}

// RejectionReasons returns the selectable rejection reason codes
// @Summary      Rejection reasons
// @Tags         approvals
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]workflow.Option}
// @Router       /api/v1/approvals/rejection-reasons [get]
func (h *ApprovalHandler) RejectionReasons(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.approvalService.RejectionReasons()))
}

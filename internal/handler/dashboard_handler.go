package handler

import (
	"net/http"
	"strconv"

	"vendorhub/internal/middleware"
	"vendorhub/internal/service"
	"vendorhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	dashboard.Use(middleware.RequirePermission("dashboard.read"))
	{
		dashboard.GET("/metrics", h.Metrics)
		dashboard.GET("/vendor-distribution", h.VendorDistribution)
		dashboard.GET("/onboarding-trends", h.OnboardingTrends)
		dashboard.GET("/approval-workflow-status", h.ApprovalWorkflowStatus)
		dashboard.GET("/recent-activities", h.RecentActivities)
	}
}

// Metrics returns the headline vendor pipeline counts
// @Summary      Dashboard metrics
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.DashboardMetrics}
// @Router       /api/v1/dashboard/metrics [get]
func (h *DashboardHandler) Metrics(c *gin.Context) {
	metrics, err := h.dashboardService.Metrics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, metrics))
}

// VendorDistribution breaks vendors down by status, country, type and category
// @Summary      Vendor distribution
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.VendorDistribution}
// @Router       /api/v1/dashboard/vendor-distribution [get]
func (h *DashboardHandler) VendorDistribution(c *gin.Context) {
	dist, err := h.dashboardService.VendorDistribution(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, dist))
}

// OnboardingTrends returns monthly registration and approval counts
// @Summary      Onboarding trends
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Param        months  query  int  false  "Number of months to cover (default 6)"
// @Success      200  {object}  response.Response{data=[]service.TrendPoint}
// @Router       /api/v1/dashboard/onboarding-trends [get]
func (h *DashboardHandler) OnboardingTrends(c *gin.Context) {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "6"))

	trends, err := h.dashboardService.OnboardingTrends(c.Request.Context(), months)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, trends))
}

// ApprovalWorkflowStatus summarizes decisions per approval level
// @Summary      Approval workflow status
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.WorkflowStatusEntry}
// @Router       /api/v1/dashboard/approval-workflow-status [get]
func (h *DashboardHandler) ApprovalWorkflowStatus(c *gin.Context) {
	entries, err := h.dashboardService.ApprovalWorkflowStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}

// RecentActivities returns the latest audit entries for the activity feed
// @Summary      Recent activities
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Param        limit  query  int  false  "Number of entries (default 10, max 50)"
// @Success      200  {object}  response.Response{data=[]service.RecentActivity}
// @Router       /api/v1/dashboard/recent-activities [get]
func (h *DashboardHandler) RecentActivities(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	activities, err := h.dashboardService.RecentActivities(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, activities))
}

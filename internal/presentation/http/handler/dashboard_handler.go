package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/nimeshjn/vendura-api/internal/application/service"
	"github.com/nimeshjn/vendura-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles the cashier home screen summary
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSummary handles fetching today's sales, register state and stock alerts
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	vendorID := GetVendorID(c)
	if vendorID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), *vendorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard summary retrieved successfully", summary)
}

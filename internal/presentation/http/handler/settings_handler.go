package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/nimeshjn/vendura-api/internal/application/service"
	"github.com/nimeshjn/vendura-api/internal/presentation/http/dto/request"
	"github.com/nimeshjn/vendura-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles vendor settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings handles fetching the vendor settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	vendorID := GetVendorID(c)
	if vendorID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	settings, err := h.settingsService.GetSettings(c.Request.Context(), *vendorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// UpdateSettings handles updating the vendor settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	vendorID := GetVendorID(c)
	if vendorID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		VendorID:       *vendorID,
		StoreName:      req.StoreName,
		Address:        req.Address,
		Phone:          req.Phone,
		TaxID:          req.TaxID,
		Currency:       req.Currency,
		DefaultTaxName: req.DefaultTaxName,
		DefaultTaxRate: req.DefaultTaxRate,
		ReceiptFooter:  req.ReceiptFooter,
		LowStockAlerts: req.LowStockAlerts,
		DailySummary:   req.DailySummary,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}

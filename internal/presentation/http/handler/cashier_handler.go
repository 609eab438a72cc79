package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nimeshjn/vendura-api/internal/application/service"
	"github.com/nimeshjn/vendura-api/internal/domain/enum"
	"github.com/nimeshjn/vendura-api/internal/presentation/http/dto/request"
	"github.com/nimeshjn/vendura-api/internal/presentation/http/dto/response"
	"github.com/nimeshjn/vendura-api/pkg/pagination"
)

// CashierHandler handles the counter-facing endpoints: register lifecycle,
// checkout and quick cash amounts.
type CashierHandler struct {
	registerService *service.RegisterService
	checkoutService *service.CheckoutService
}

// NewCashierHandler creates a new cashier handler
func NewCashierHandler(registerService *service.RegisterService, checkoutService *service.CheckoutService) *CashierHandler {
	return &CashierHandler{
		registerService: registerService,
		checkoutService: checkoutService,
	}
}

// OpenRegister handles opening a register session
func (h *CashierHandler) OpenRegister(c *gin.Context) {
	vendorID := GetVendorID(c)
	if vendorID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.OpenRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cashierName := req.CashierName
	if cashierName == "" {
		cashierName = GetUserEmail(c)
	}

	session, err := h.registerService.OpenRegister(c.Request.Context(), &service.OpenRegisterInput{
		VendorID:     *vendorID,
		RegisterName: req.RegisterName,
		CashierName:  cashierName,
		OpeningFloat: req.OpeningFloat,
		Notes:        req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Register opened successfully", session)
}

// CloseRegister handles closing the open register session
func (h *CashierHandler) CloseRegister(c *gin.Context) {
	vendorID := GetVendorID(c)
	if vendorID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CloseRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.registerService.CloseRegister(c.Request.Context(), &service.CloseRegisterInput{
		VendorID:      *vendorID,
		ClosingAmount: req.ClosingAmount,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Register closed successfully", output)
}

// GetRegisterStatus handles reporting whether a register session is open
func (h *CashierHandler) GetRegisterStatus(c *gin.Context) {
	vendorID := GetVendorID(c)
	if vendorID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	status, err := h.registerService.GetStatus(c.Request.Context(), *vendorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Register status retrieved successfully", status)
}

// ListSessions handles listing past register sessions
func (h *CashierHandler) ListSessions(c *gin.Context) {
	vendorID := GetVendorID(c)
	if vendorID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	result, err := h.registerService.ListSessions(c.Request.Context(), *vendorID, &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Register sessions retrieved successfully", result)
}

// Checkout handles completing a sale
func (h *CashierHandler) Checkout(c *gin.Context) {
	vendorID := GetVendorID(c)
	if vendorID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.CheckoutItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.CheckoutItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	payments := make([]service.CheckoutPaymentInput, len(req.Payments))
	for i, p := range req.Payments {
		method := enum.PaymentMethod(p.Method)
		if !method.IsValid() {
			response.BadRequest(c, "Unsupported payment method: "+p.Method)
			return
		}
		payments[i] = service.CheckoutPaymentInput{
			Method:      method,
			Amount:      p.Amount,
			AmountGiven: p.AmountGiven,
		}
	}

	taxes := make([]service.CheckoutTaxInput, len(req.Taxes))
	for i, t := range req.Taxes {
		taxes[i] = service.CheckoutTaxInput{
			Name: t.Name,
			Rate: t.Rate,
		}
	}

	input := &service.CheckoutInput{
		VendorID:      *vendorID,
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Items:         items,
		DiscountValue: req.DiscountValue,
		PromoCode:     req.PromoCode,
		Taxes:         taxes,
		Payments:      payments,
		Notes:         req.Notes,
	}

	if req.DiscountType != nil {
		discountType := enum.DiscountType(*req.DiscountType)
		if !discountType.IsValid() {
			response.BadRequest(c, "Unsupported discount type: "+*req.DiscountType)
			return
		}
		input.DiscountType = &discountType
	}

	order, err := h.checkoutService.Checkout(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed successfully", order)
}

// QuickAmounts suggests round cash amounts for the amount due
func (h *CashierHandler) QuickAmounts(c *gin.Context) {
	due, err := strconv.ParseFloat(c.Query("due"), 64)
	if err != nil || due < 0 {
		response.BadRequest(c, "Invalid due amount")
		return
	}

	response.OK(c, "Quick amounts retrieved successfully", gin.H{
		"due":     due,
		"amounts": h.checkoutService.QuickAmounts(due),
	})
}

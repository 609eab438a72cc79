package request

import "github.com/google/uuid"

// OpenRegisterRequest represents the open register payload.
// OpeningFloat is in rupees.
type OpenRegisterRequest struct {
	RegisterName string  `json:"register_name"`
	CashierName  string  `json:"cashier_name"`
	OpeningFloat float64 `json:"opening_float" binding:"gte=0"`
	Notes        *string `json:"notes"`
}

// CloseRegisterRequest represents the close register payload.
// ClosingAmount is the counted drawer cash in rupees.
type CloseRegisterRequest struct {
	ClosingAmount float64 `json:"closing_amount" binding:"gte=0"`
	Notes         *string `json:"notes"`
}

// CheckoutItemRequest represents one cart line in the checkout payload
type CheckoutItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// CheckoutPaymentRequest represents one tender towards the sale.
// Amounts are in rupees; AmountGiven is only meaningful for cash.
type CheckoutPaymentRequest struct {
	Method      string  `json:"method" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	AmountGiven float64 `json:"amount_given"`
}

// CheckoutTaxRequest represents a tax line applied to the sale
type CheckoutTaxRequest struct {
	Name string  `json:"name" binding:"required"`
	Rate float64 `json:"rate" binding:"gte=0"`
}

// CheckoutRequest represents the checkout payload
type CheckoutRequest struct {
	CustomerID    *uuid.UUID               `json:"customer_id"`
	CustomerName  *string                  `json:"customer_name"`
	CustomerPhone *string                  `json:"customer_phone"`
	Items         []CheckoutItemRequest    `json:"items" binding:"required,dive"`
	DiscountType  *string                  `json:"discount_type"`
	DiscountValue float64                  `json:"discount_value"`
	PromoCode     *string                  `json:"promo_code"`
	Taxes         []CheckoutTaxRequest     `json:"taxes" binding:"dive"`
	Payments      []CheckoutPaymentRequest `json:"payments" binding:"required,dive"`
	Notes         *string                  `json:"notes"`
}

// PrintUPISlipRequest represents the UPI QR slip payload.
// Amount is in rupees.
type PrintUPISlipRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

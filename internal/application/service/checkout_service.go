package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/entity"
	"github.com/nimeshjn/vendura-api/internal/domain/enum"
	"github.com/nimeshjn/vendura-api/internal/domain/pos"
	"github.com/nimeshjn/vendura-api/internal/domain/repository"
	"github.com/nimeshjn/vendura-api/pkg/apperror"
	"github.com/nimeshjn/vendura-api/pkg/pagination"
	"github.com/nimeshjn/vendura-api/pkg/utils"
)

// CheckoutService orchestrates the sale: it rebuilds the cart server-side,
// verifies the tendered payments cover the total, decrements stock
// atomically and persists the order with its payments against the open
// register session.
type CheckoutService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	registerRepo repository.RegisterSessionRepository
	settingsRepo repository.SettingsRepository
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	registerRepo repository.RegisterSessionRepository,
	settingsRepo repository.SettingsRepository,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		registerRepo: registerRepo,
		settingsRepo: settingsRepo,
	}
}

// CheckoutItemInput represents an item being sold
type CheckoutItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CheckoutPaymentInput represents one tender towards the sale.
// Amounts are in rupees.
type CheckoutPaymentInput struct {
	Method      enum.PaymentMethod
	Amount      float64
	AmountGiven float64
}

// CheckoutTaxInput represents a tax line applied to the sale
type CheckoutTaxInput struct {
	Name string
	Rate float64
}

// CheckoutInput represents the checkout input
type CheckoutInput struct {
	VendorID      uuid.UUID
	CustomerID    *uuid.UUID
	CustomerName  *string
	CustomerPhone *string
	Items         []CheckoutItemInput
	DiscountType  *enum.DiscountType
	DiscountValue float64
	PromoCode     *string
	Taxes         []CheckoutTaxInput
	Payments      []CheckoutPaymentInput
	Notes         *string
}

// Checkout completes a sale. The register must be open; the cart is rebuilt
// from the catalog so client-supplied prices are never trusted.
func (s *CheckoutService) Checkout(ctx context.Context, input *CheckoutInput) (*entity.Order, error) {
	session, err := s.registerRepo.GetOpenByVendor(ctx, input.VendorID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrRegisterNotOpen
	}

	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil || customer.VendorID != input.VendorID {
			return nil, apperror.NewNotFoundError("Customer")
		}
		if input.CustomerName == nil {
			input.CustomerName = &customer.Name
		}
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	// Rebuild the cart server-side so prices and stock ceilings come from
	// the catalog, not the request.
	cart := pos.NewCart()
	stockDecrements := make(map[uuid.UUID]int)
	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists || product.VendorID != input.VendorID {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Invalid quantity for %s", product.Name))
		}
		if err := cart.AddItem(*product); err != nil {
			return nil, stockError(err, product.Name)
		}
		if err := cart.SetQuantity(product.ID, item.Quantity); err != nil {
			return nil, stockError(err, product.Name)
		}
		stockDecrements[product.ID] = item.Quantity
	}

	if input.PromoCode != nil && *input.PromoCode != "" {
		if err := cart.ApplyPromo(*input.PromoCode); err != nil {
			return nil, apperror.NewBadRequestError("Unknown promo code")
		}
	} else if input.DiscountType != nil {
		d := pos.Discount{Type: *input.DiscountType, Value: input.DiscountValue}
		if err := cart.ApplyDiscount(d); err != nil {
			return nil, apperror.NewBadRequestError("Invalid discount")
		}
	}

	if len(input.Taxes) > 0 {
		for _, t := range input.Taxes {
			if err := cart.AddTaxLine(t.Name, t.Rate); err != nil {
				return nil, apperror.NewBadRequestError(fmt.Sprintf("Invalid tax rate for %s", t.Name))
			}
		}
	} else if rate := s.defaultTaxLine(ctx, input.VendorID); rate != nil {
		_ = cart.AddTaxLine(rate.Name, rate.Rate)
	}

	totals := cart.Totals()

	// A fully discounted sale owes nothing, so it may complete without a
	// payment. Anything with a balance needs at least one.
	if len(input.Payments) == 0 && totals.Total > 0 {
		return nil, apperror.NewBadRequestError("At least one payment is required")
	}

	// Replay the tendered payments against the computed total
	tender := pos.NewTender(totals.Total)
	for _, p := range input.Payments {
		amount := int64(p.Amount * 100)
		var err error
		switch p.Method {
		case enum.PaymentMethodCash:
			_, err = tender.AddCash(amount, int64(p.AmountGiven*100))
		case enum.PaymentMethodUPI:
			_, err = tender.AddUPI(amount)
		case enum.PaymentMethodCard:
			_, err = tender.AddCard(amount)
		default:
			return nil, apperror.NewBadRequestError("Unsupported payment method")
		}
		if err != nil {
			return nil, paymentError(err)
		}
	}
	if !tender.CanComplete() {
		return nil, apperror.NewBadRequestError(
			fmt.Sprintf("Payments do not cover the total, %.2f remaining", float64(tender.Remaining())/100))
	}

	// Atomically decrement stock; race-condition safe across terminals
	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			if product, exists := productMap[id]; exists {
				failedNames = append(failedNames, product.Name)
			}
		}
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Insufficient stock for: %v", failedNames))
	}

	details := make([]entity.OrderDetail, 0, len(cart.Lines()))
	for _, line := range cart.Lines() {
		details = append(details, entity.OrderDetail{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Total:     line.TotalPrice,
		})
	}

	var promoCode *string
	if cart.PromoCode() != "" {
		code := cart.PromoCode()
		promoCode = &code
	}

	order := &entity.Order{
		VendorID:          input.VendorID,
		RegisterSessionID: &session.ID,
		CustomerID:        input.CustomerID,
		CustomerName:      input.CustomerName,
		CustomerPhone:     input.CustomerPhone,
		OrderNumber:       utils.GenerateOrderNumber(),
		OrderStatus:       enum.OrderStatusComplete,
		ItemCount:         totals.ItemCount,
		SubTotal:          totals.SubTotal,
		Discount:          totals.Discount,
		Tax:               totals.Tax,
		Total:             totals.Total,
		Change:            tender.TotalChange(),
		PromoCode:         promoCode,
		PaymentMethod:     tender.DeclaredMethod(),
		Notes:             input.Notes,
		Details:           details,
		Payments:          tender.Payments(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		// Stock was already decremented; restore it
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	cash, card, digital := tender.MethodTotals()
	session.RecordSale(totals.Total, cash, card, digital)
	if err := s.registerRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithDetails(ctx, order.ID)
}

// defaultTaxLine resolves the vendor's configured default tax, if any
func (s *CheckoutService) defaultTaxLine(ctx context.Context, vendorID uuid.UUID) *pos.TaxLine {
	settings, err := s.settingsRepo.GetByVendorID(ctx, vendorID)
	if err != nil || settings == nil || settings.DefaultTaxRate <= 0 {
		return nil
	}
	return &pos.TaxLine{Name: settings.DefaultTaxName, Rate: float64(settings.DefaultTaxRate)}
}

// QuickAmounts suggests round cash amounts for an amount still due (rupees)
func (s *CheckoutService) QuickAmounts(due float64) []float64 {
	amounts := pos.QuickAmounts(int64(due * 100))
	out := make([]float64, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, float64(a)/100)
	}
	return out
}

// GetOrder retrieves an order with its details and payments
func (s *CheckoutService) GetOrder(ctx context.Context, vendorID, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil || order.VendorID != vendorID {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists the vendor's orders with filtering
func (s *CheckoutService) ListOrders(ctx context.Context, vendorID uuid.UUID, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	orders, total, err := s.orderRepo.List(ctx, vendorID, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(orders,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// CancelOrder cancels a completed order and restores its stock
func (s *CheckoutService) CancelOrder(ctx context.Context, vendorID, id uuid.UUID) (*entity.Order, error) {
	order, err := s.GetOrder(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}
	if order.OrderStatus == enum.OrderStatusCancel {
		return nil, apperror.NewConflictError("Order is already cancelled")
	}

	increments := make(map[uuid.UUID]int, len(order.Details))
	for _, d := range order.Details {
		increments[d.ProductID] = d.Quantity
	}
	if err := s.productRepo.AtomicIncrementBatch(ctx, increments); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, enum.OrderStatusCancel); err != nil {
		return nil, err
	}
	order.OrderStatus = enum.OrderStatusCancel
	return order, nil
}

func stockError(err error, productName string) error {
	switch {
	case errors.Is(err, pos.ErrOutOfStock):
		return apperror.NewBadRequestError(fmt.Sprintf("%s is out of stock", productName))
	case errors.Is(err, pos.ErrStockExceeded):
		return apperror.NewBadRequestError(fmt.Sprintf("Quantity for %s exceeds available stock", productName))
	default:
		return err
	}
}

func paymentError(err error) error {
	switch {
	case errors.Is(err, pos.ErrInsufficientCash):
		return apperror.NewBadRequestError("Cash given is less than the amount due")
	case errors.Is(err, pos.ErrInvalidAmount):
		return apperror.NewBadRequestError("Invalid payment amount")
	default:
		return err
	}
}

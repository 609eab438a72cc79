package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/entity"
	"github.com/nimeshjn/vendura-api/internal/domain/pos"
	"github.com/nimeshjn/vendura-api/internal/domain/repository"
	"github.com/nimeshjn/vendura-api/pkg/pagination"
)

// DashboardService provides the cashier dashboard summary
type DashboardService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	registerRepo repository.RegisterSessionRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	registerRepo repository.RegisterSessionRepository,
) *DashboardService {
	return &DashboardService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		registerRepo: registerRepo,
	}
}

// dashboardGridSize caps the product grid returned with the initial load;
// deeper catalogs page through the products endpoint.
const dashboardGridSize = 100

// DashboardSummary is the cashier home screen payload: the product grid,
// today's sales, register state and low-stock warnings.
type DashboardSummary struct {
	Products         []ProductWithStock      `json:"products"`
	Categories       []entity.Category       `json:"categories"`
	TodaySales       float64                 `json:"today_sales"`
	TodayOrders      int64                   `json:"today_orders"`
	TodayItemsSold   int64                   `json:"today_items_sold"`
	TodayCashSales   float64                 `json:"today_cash_sales"`
	TodayCardSales   float64                 `json:"today_card_sales"`
	TodayUPISales    float64                 `json:"today_upi_sales"`
	RegisterOpen     bool                    `json:"register_open"`
	Session          *entity.RegisterSession `json:"session,omitempty"`
	LowStockCount    int                     `json:"low_stock_count"`
	LowStockProducts []entity.Product        `json:"low_stock_products"`
}

// GetSummary returns the vendor's dashboard summary for the current day
func (s *DashboardService) GetSummary(ctx context.Context, vendorID uuid.UUID) (*DashboardSummary, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	sales, err := s.orderRepo.GetSalesSummary(ctx, vendorID, startOfDay, now)
	if err != nil {
		return nil, err
	}

	session, err := s.registerRepo.GetOpenByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	products, _, err := s.productRepo.List(ctx, vendorID, &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: dashboardGridSize},
	})
	if err != nil {
		return nil, err
	}

	grid := make([]ProductWithStock, 0, len(products))
	for _, p := range products {
		grid = append(grid, ProductWithStock{
			Product:      p,
			StockDisplay: pos.ClassifyStock(p.Stock),
		})
	}

	categories, err := s.categoryRepo.List(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.GetLowStock(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		Products:         grid,
		Categories:       categories,
		TodaySales:       float64(sales.TotalSales) / 100,
		TodayOrders:      sales.OrderCount,
		TodayItemsSold:   sales.ItemsSold,
		TodayCashSales:   float64(sales.CashSales) / 100,
		TodayCardSales:   float64(sales.CardSales) / 100,
		TodayUPISales:    float64(sales.DigitalSales) / 100,
		RegisterOpen:     session != nil,
		Session:          session,
		LowStockCount:    len(lowStock),
		LowStockProducts: lowStock,
	}, nil
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/entity"
	"github.com/nimeshjn/vendura-api/internal/domain/enum"
	"github.com/nimeshjn/vendura-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// Create persists the order together with its details and payments
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByOrderNumber(ctx context.Context, vendorID uuid.UUID, orderNumber string) (*entity.Order, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
	List(ctx context.Context, vendorID uuid.UUID, params *OrderFilterParams) ([]entity.Order, int64, error)
	// GetSalesSummary aggregates totals for the vendor between two instants
	GetSalesSummary(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (*SalesSummary, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	CustomerID *uuid.UUID
	SessionID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// SalesSummary is the aggregate row behind the cashier dashboard
type SalesSummary struct {
	TotalSales   int64 `json:"total_sales"`
	OrderCount   int64 `json:"order_count"`
	ItemsSold    int64 `json:"items_sold"`
	CashSales    int64 `json:"cash_sales"`
	CardSales    int64 `json:"card_sales"`
	DigitalSales int64 `json:"digital_sales"`
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/entity"
	"github.com/nimeshjn/vendura-api/internal/domain/enum"
	domainRepo "github.com/nimeshjn/vendura-api/internal/domain/repository"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

// Create persists the order with its details and payments in one transaction
func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetByOrderNumber(ctx context.Context, vendorID uuid.UUID, orderNumber string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		First(&order, "vendor_id = ? AND order_number = ?", vendorID, orderNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Details").
		Preload("Details.Product").
		Preload("Payments").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Update("order_status", status).Error
}

func (r *orderRepository) List(ctx context.Context, vendorID uuid.UUID, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("vendor_id = ?", vendorID)

	if params.Search != "" {
		query = query.Where("order_number ILIKE ? OR customer_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("order_status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.SessionID != nil {
		query = query.Where("register_session_id = ?", *params.SessionID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Preload("Payments").
		Order(sortBy + " " + sortOrder).
		Find(&orders).Error

	return orders, total, err
}

// GetSalesSummary aggregates completed sales for the vendor between two
// instants. Method buckets come from the payment rows, so split tenders are
// attributed correctly.
func (r *orderRepository) GetSalesSummary(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (*domainRepo.SalesSummary, error) {
	var summary domainRepo.SalesSummary

	err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Select("COALESCE(SUM(total), 0) AS total_sales, COUNT(*) AS order_count, COALESCE(SUM(item_count), 0) AS items_sold").
		Where("vendor_id = ? AND order_status = ? AND created_at >= ? AND created_at <= ?",
			vendorID, enum.OrderStatusComplete, from, to).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&entity.Payment{}).
		Select(`COALESCE(SUM(CASE WHEN payments.method = 'cash' THEN payments.amount ELSE 0 END), 0) AS cash_sales,
			COALESCE(SUM(CASE WHEN payments.method = 'card' THEN payments.amount ELSE 0 END), 0) AS card_sales,
			COALESCE(SUM(CASE WHEN payments.method = 'upi' THEN payments.amount ELSE 0 END), 0) AS digital_sales`).
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("orders.vendor_id = ? AND orders.order_status = ? AND orders.created_at >= ? AND orders.created_at <= ?",
			vendorID, enum.OrderStatusComplete, from, to).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

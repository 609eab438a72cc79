package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Order represents a completed (or pending) point-of-sale transaction.
// All money fields are stored in paise.
type Order struct {
	ID                uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	VendorID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"vendor_id"`
	RegisterSessionID *uuid.UUID         `gorm:"type:uuid;index" json:"register_session_id,omitempty"`
	CustomerID        *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName      *string            `gorm:"size:255" json:"customer_name,omitempty"`
	CustomerPhone     *string            `gorm:"size:50" json:"customer_phone,omitempty"`
	OrderNumber       string             `gorm:"size:100;unique;not null" json:"order_number"`
	OrderStatus       enum.OrderStatus   `gorm:"default:0" json:"order_status"`
	ItemCount         int                `gorm:"default:0" json:"item_count"`
	SubTotal          int64              `gorm:"default:0" json:"-"`
	Discount          int64              `gorm:"default:0" json:"-"`
	Tax               int64              `gorm:"default:0" json:"-"`
	Total             int64              `gorm:"default:0" json:"-"`
	Change            int64              `gorm:"default:0" json:"-"`
	PromoCode         *string            `gorm:"size:50" json:"promo_code,omitempty"`
	PaymentMethod     enum.PaymentMethod `gorm:"size:20" json:"payment_method"`
	Notes             *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	DeletedAt         gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Details  []OrderDetail `gorm:"foreignKey:OrderID" json:"details,omitempty"`
	Payments []Payment     `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		SubTotal float64 `json:"sub_total"`
		Discount float64 `json:"discount"`
		Tax      float64 `json:"tax"`
		Total    float64 `json:"total"`
		Change   float64 `json:"change"`
	}{
		Alias:    Alias(o),
		SubTotal: float64(o.SubTotal) / 100,
		Discount: float64(o.Discount) / 100,
		Tax:      float64(o.Tax) / 100,
		Total:    float64(o.Total) / 100,
		Change:   float64(o.Change) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderDetail represents a line item in an order
type OrderDetail struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice int64          `gorm:"not null" json:"-"`
	Total     int64          `gorm:"not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (od OrderDetail) MarshalJSON() ([]byte, error) {
	type Alias OrderDetail
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(od),
		UnitPrice: float64(od.UnitPrice) / 100,
		Total:     float64(od.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order detail
func (od *OrderDetail) BeforeCreate(tx *gorm.DB) error {
	if od.ID == uuid.Nil {
		od.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderDetail model
func (OrderDetail) TableName() string {
	return "order_details"
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VendorSettings represents per-vendor store configuration: the receipt
// header, currency, and cashier defaults.
type VendorSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	VendorID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"vendor_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Receipt header
	StoreName string `gorm:"size:255;default:''" json:"store_name"`
	Address   string `gorm:"type:text;default:''" json:"address"`
	Phone     string `gorm:"size:50;default:''" json:"phone"`
	TaxID     string `gorm:"size:100;default:''" json:"tax_id"`

	// Cashier defaults
	Currency       string `gorm:"size:10;default:'INR'" json:"currency"`
	DefaultTaxName string `gorm:"size:100;default:'GST'" json:"default_tax_name"`
	DefaultTaxRate int    `gorm:"default:0" json:"default_tax_rate"` // percent
	ReceiptFooter  string `gorm:"type:text;default:'Thank you for shopping with us!'" json:"receipt_footer"`

	// Notifications
	LowStockAlerts bool `gorm:"default:true" json:"low_stock_alerts"`
	DailySummary   bool `gorm:"default:false" json:"daily_summary"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *VendorSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the VendorSettings model
func (VendorSettings) TableName() string {
	return "vendor_settings"
}

package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Payment represents a single tender towards an order's total.
// A split-tender sale accumulates multiple payments whose amounts sum to the
// order total. For cash tenders AmountGiven/Change record the physical
// exchange; UPI tenders are operator-attested confirmations.
type Payment struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"order_id"`
	Method      enum.PaymentMethod `gorm:"size:20;not null" json:"method"`
	Amount      int64              `gorm:"not null" json:"-"`
	AmountGiven int64              `gorm:"default:0" json:"-"`
	Change      int64              `gorm:"default:0" json:"-"`
	Status      string             `gorm:"size:20;default:'completed'" json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount      float64 `json:"amount"`
		AmountGiven float64 `json:"amount_given"`
		Change      float64 `json:"change"`
	}{
		Alias:       Alias(p),
		Amount:      float64(p.Amount) / 100,
		AmountGiven: float64(p.AmountGiven) / 100,
		Change:      float64(p.Change) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/enum"
	"gorm.io/gorm"
)

// RegisterSession represents a bounded period during which a cashier accepts
// payments at a till, from open to close. At most one session per vendor may
// be open at a time; no sale can complete without an open session.
type RegisterSession struct {
	ID                uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	VendorID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"vendor_id"`
	RegisterName      string             `gorm:"size:255;not null" json:"register_name"`
	CashierName       string             `gorm:"size:255;not null" json:"cashier_name"`
	OpeningFloat      int64              `gorm:"default:0" json:"-"`
	TotalSales        int64              `gorm:"default:0" json:"-"`
	TotalCashSales    int64              `gorm:"default:0" json:"-"`
	TotalCardSales    int64              `gorm:"default:0" json:"-"`
	TotalDigitalSales int64              `gorm:"default:0" json:"-"`
	TransactionCount  int                `gorm:"default:0" json:"transaction_count"`
	Status            enum.SessionStatus `gorm:"default:0" json:"status"`
	Notes             *string            `gorm:"type:text" json:"notes,omitempty"`
	OpenedAt          time.Time          `json:"opened_at"`
	ClosedAt          *time.Time         `json:"closed_at,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	DeletedAt         gorm.DeletedAt     `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert paise to decimal and expose the
// derived session duration.
func (s RegisterSession) MarshalJSON() ([]byte, error) {
	type Alias RegisterSession
	return json.Marshal(&struct {
		Alias
		OpeningFloat           float64 `json:"opening_float"`
		TotalSales             float64 `json:"total_sales"`
		TotalCashSales         float64 `json:"total_cash_sales"`
		TotalCardSales         float64 `json:"total_card_sales"`
		TotalDigitalSales      float64 `json:"total_digital_sales"`
		SessionDurationMinutes int     `json:"session_duration_minutes"`
	}{
		Alias:                  Alias(s),
		OpeningFloat:           float64(s.OpeningFloat) / 100,
		TotalSales:             float64(s.TotalSales) / 100,
		TotalCashSales:         float64(s.TotalCashSales) / 100,
		TotalCardSales:         float64(s.TotalCardSales) / 100,
		TotalDigitalSales:      float64(s.TotalDigitalSales) / 100,
		SessionDurationMinutes: s.DurationMinutes(),
	})
}

// BeforeCreate generates a UUID before creating a new session
func (s *RegisterSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RegisterSession model
func (RegisterSession) TableName() string {
	return "register_sessions"
}

// IsOpen reports whether the session is accepting sales
func (s *RegisterSession) IsOpen() bool {
	return s.Status == enum.SessionStatusOpen
}

// DurationMinutes returns how long the session has been (or was) open
func (s *RegisterSession) DurationMinutes() int {
	end := time.Now()
	if s.ClosedAt != nil {
		end = *s.ClosedAt
	}
	if end.Before(s.OpenedAt) {
		return 0
	}
	return int(end.Sub(s.OpenedAt).Minutes())
}

// ExpectedCash returns the cash that should be in the drawer:
// opening float plus recorded cash sales.
func (s *RegisterSession) ExpectedCash() int64 {
	return s.OpeningFloat + s.TotalCashSales
}

// CloseSummary is the expected-vs-actual cash reconciliation computed when a
// session closes.
type CloseSummary struct {
	ExpectedCash   int64               `json:"-"`
	ActualCash     int64               `json:"-"`
	Variance       int64               `json:"-"`
	VarianceStatus enum.VarianceStatus `json:"variance_status"`
}

// MarshalJSON converts the paise amounts to decimals
func (cs CloseSummary) MarshalJSON() ([]byte, error) {
	type Alias CloseSummary
	return json.Marshal(&struct {
		Alias
		ExpectedCash float64 `json:"expected_cash"`
		ActualCash   float64 `json:"actual_cash"`
		Variance     float64 `json:"variance"`
	}{
		Alias:        Alias(cs),
		ExpectedCash: float64(cs.ExpectedCash) / 100,
		ActualCash:   float64(cs.ActualCash) / 100,
		Variance:     float64(cs.Variance) / 100,
	})
}

// Reconcile computes the close summary for a counted drawer amount.
// variance = actual - expected; positive is over, negative is short.
func (s *RegisterSession) Reconcile(closingAmount int64) CloseSummary {
	expected := s.ExpectedCash()
	variance := closingAmount - expected
	return CloseSummary{
		ExpectedCash:   expected,
		ActualCash:     closingAmount,
		Variance:       variance,
		VarianceStatus: enum.ClassifyVariance(variance),
	}
}

// RecordSale adds a completed sale's totals to the session counters.
// cashAmount is the cash portion net of change; the remainder is split by
// the non-cash methods recorded on the order's payments.
func (s *RegisterSession) RecordSale(total, cashAmount, cardAmount, digitalAmount int64) {
	s.TotalSales += total
	s.TotalCashSales += cashAmount
	s.TotalCardSales += cardAmount
	s.TotalDigitalSales += digitalAmount
	s.TransactionCount++
}

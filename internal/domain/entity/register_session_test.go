package entity

import (
	"testing"
	"time"

	"github.com/nimeshjn/vendura-api/internal/domain/enum"
)

func TestRegisterSessionReconcile(t *testing.T) {
	tests := []struct {
		name         string
		openingFloat int64
		cashSales    int64
		closing      int64
		wantVariance int64
		wantStatus   enum.VarianceStatus
	}{
		{"drawer short", 20000, 30000, 48000, -2000, enum.VarianceStatusShort},
		{"drawer over", 20000, 30000, 51500, 1500, enum.VarianceStatusOver},
		{"exact", 20000, 30000, 50000, 0, enum.VarianceStatusExact},
		{"no sales", 10000, 0, 10000, 0, enum.VarianceStatusExact},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := RegisterSession{
				OpeningFloat:   tt.openingFloat,
				TotalCashSales: tt.cashSales,
				Status:         enum.SessionStatusOpen,
			}
			if got := s.ExpectedCash(); got != tt.openingFloat+tt.cashSales {
				t.Fatalf("expected cash = %d, want %d", got, tt.openingFloat+tt.cashSales)
			}
			sum := s.Reconcile(tt.closing)
			if sum.Variance != tt.wantVariance {
				t.Fatalf("variance = %d, want %d", sum.Variance, tt.wantVariance)
			}
			if sum.VarianceStatus != tt.wantStatus {
				t.Fatalf("status = %s, want %s", sum.VarianceStatus, tt.wantStatus)
			}
			if sum.ActualCash != tt.closing {
				t.Fatalf("actual cash = %d, want %d", sum.ActualCash, tt.closing)
			}
		})
	}
}

func TestRegisterSessionRecordSale(t *testing.T) {
	s := RegisterSession{OpeningFloat: 20000, Status: enum.SessionStatusOpen}

	s.RecordSale(15000, 10000, 0, 5000)
	s.RecordSale(8000, 8000, 0, 0)

	if s.TotalSales != 23000 {
		t.Fatalf("total sales = %d, want 23000", s.TotalSales)
	}
	if s.TotalCashSales != 18000 {
		t.Fatalf("cash sales = %d, want 18000", s.TotalCashSales)
	}
	if s.TotalDigitalSales != 5000 {
		t.Fatalf("digital sales = %d, want 5000", s.TotalDigitalSales)
	}
	if s.TransactionCount != 2 {
		t.Fatalf("transaction count = %d, want 2", s.TransactionCount)
	}
	if got := s.ExpectedCash(); got != 38000 {
		t.Fatalf("expected cash = %d, want 38000 (float + cash sales only)", got)
	}
}

func TestRegisterSessionDuration(t *testing.T) {
	opened := time.Now().Add(-90 * time.Minute)
	s := RegisterSession{Status: enum.SessionStatusOpen, OpenedAt: opened}
	if got := s.DurationMinutes(); got < 89 || got > 91 {
		t.Fatalf("open session duration = %d, want ~90", got)
	}

	closed := opened.Add(2 * time.Hour)
	s.Status = enum.SessionStatusClosed
	s.ClosedAt = &closed
	if got := s.DurationMinutes(); got != 120 {
		t.Fatalf("closed session duration = %d, want 120", got)
	}
}

func TestClassifyVariance(t *testing.T) {
	if got := enum.ClassifyVariance(-1); got != enum.VarianceStatusShort {
		t.Fatalf("variance -1 = %s, want short", got)
	}
	if got := enum.ClassifyVariance(1); got != enum.VarianceStatusOver {
		t.Fatalf("variance 1 = %s, want over", got)
	}
	if got := enum.ClassifyVariance(0); got != enum.VarianceStatusExact {
		t.Fatalf("variance 0 = %s, want exact", got)
	}
}

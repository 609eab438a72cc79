package pos

import (
	"errors"
	"testing"

	"github.com/nimeshjn/vendura-api/internal/domain/entity"
	"github.com/nimeshjn/vendura-api/internal/domain/enum"
)

func TestSubtotalAndTotalItems(t *testing.T) {
	lines := []Line{
		{Quantity: 2, UnitPrice: 10000, TotalPrice: 20000},
		{Quantity: 1, UnitPrice: 4550, TotalPrice: 4550},
		{Quantity: 3, UnitPrice: 100, TotalPrice: 300},
	}
	if got := Subtotal(lines); got != 24850 {
		t.Fatalf("subtotal = %d, want 24850", got)
	}
	if got := TotalItems(lines); got != 6 {
		t.Fatalf("total items = %d, want 6", got)
	}
	if got := Subtotal(nil); got != 0 {
		t.Fatalf("empty subtotal = %d, want 0", got)
	}
}

func TestDiscountAmount(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		discount Discount
		want     int64
	}{
		{"percentage", 100000, Discount{Type: enum.DiscountTypePercentage, Value: 10}, 10000},
		{"fixed", 100000, Discount{Type: enum.DiscountTypeFixedAmount, Value: 50}, 5000},
		{"fixed capped at subtotal", 3000, Discount{Type: enum.DiscountTypeFixedAmount, Value: 500}, 3000},
		{"zero discount", 100000, Discount{}, 0},
		{"zero subtotal", 0, Discount{Type: enum.DiscountTypePercentage, Value: 10}, 0},
		{"hundred percent", 100000, Discount{Type: enum.DiscountTypePercentage, Value: 100}, 100000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DiscountAmount(tt.subtotal, tt.discount); got != tt.want {
				t.Fatalf("DiscountAmount(%d, %+v) = %d, want %d", tt.subtotal, tt.discount, got, tt.want)
			}
		})
	}
}

func TestPromoDiscount(t *testing.T) {
	got, err := PromoDiscount("SAVE10", 100000)
	if err != nil || got != 10000 {
		t.Fatalf("SAVE10 on 100000 = %d, %v; want 10000, nil", got, err)
	}

	got, err = PromoDiscount("flat50", 100000)
	if err != nil || got != 5000 {
		t.Fatalf("FLAT50 on 100000 = %d, %v; want 5000, nil", got, err)
	}

	// FLAT50 never discounts past the subtotal
	got, err = PromoDiscount("FLAT50", 3000)
	if err != nil || got != 3000 {
		t.Fatalf("FLAT50 on 3000 = %d, %v; want 3000, nil", got, err)
	}

	if _, err := PromoDiscount("BOGUS", 100000); !errors.Is(err, ErrUnknownPromoCode) {
		t.Fatalf("expected ErrUnknownPromoCode, got %v", err)
	}
}

func TestTotalTaxStacksWithoutCompounding(t *testing.T) {
	taxes := []TaxLine{
		{Name: "CGST", Rate: 9},
		{Name: "SGST", Rate: 9},
	}
	// Each line computed against the same base, then summed.
	if got := TotalTax(100000, taxes); got != 18000 {
		t.Fatalf("TotalTax = %d, want 18000", got)
	}
	if got := TotalTax(0, taxes); got != 0 {
		t.Fatalf("TotalTax on zero base = %d, want 0", got)
	}
}

func TestFinalTotalClampsAtZero(t *testing.T) {
	if got := FinalTotal(20000, 0, 0); got != 20000 {
		t.Fatalf("FinalTotal = %d, want 20000", got)
	}
	if got := FinalTotal(10000, 1800, 5000); got != 6800 {
		t.Fatalf("FinalTotal = %d, want 6800", got)
	}
	// Discount exceeding subtotal+tax yields a free sale, never negative.
	if got := FinalTotal(1000, 0, 5000); got != 0 {
		t.Fatalf("FinalTotal = %d, want 0", got)
	}
}

// Basic sale: 2 x ₹100, no tax, no discount, paid exactly in cash.
func TestScenarioBasicSale(t *testing.T) {
	cart := NewCart()
	p := entity.Product{ID: newID(t), Name: "Widget", Price: 10000, Stock: 10}
	if err := cart.AddItem(p); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := cart.SetQuantity(p.ID, 2); err != nil {
		t.Fatalf("set quantity: %v", err)
	}

	totals := cart.Totals()
	if totals.SubTotal != 20000 || totals.Total != 20000 {
		t.Fatalf("totals = %+v, want subtotal/total 20000", totals)
	}

	tender := NewTender(totals.Total)
	pay, err := tender.AddCash(20000, 20000)
	if err != nil {
		t.Fatalf("add cash: %v", err)
	}
	if pay.Change != 0 {
		t.Fatalf("change = %d, want 0", pay.Change)
	}
	if !tender.CanComplete() {
		t.Fatal("sale should be completable")
	}
}

// Promo + tax: subtotal ₹1000, SAVE10, GST 18% on the discounted base.
func TestScenarioPromoWithTax(t *testing.T) {
	cart := NewCart()
	p := entity.Product{ID: newID(t), Name: "Hamper", Price: 100000, Stock: 3}
	if err := cart.AddItem(p); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := cart.ApplyPromo("SAVE10"); err != nil {
		t.Fatalf("apply promo: %v", err)
	}
	if err := cart.AddTaxLine("GST", 18); err != nil {
		t.Fatalf("add tax: %v", err)
	}

	totals := cart.Totals()
	if totals.Discount != 10000 {
		t.Fatalf("discount = %d, want 10000", totals.Discount)
	}
	if totals.Tax != 16200 {
		t.Fatalf("tax = %d, want 16200 (18%% of 90000)", totals.Tax)
	}
	if totals.Total != 106200 {
		t.Fatalf("total = %d, want 106200", totals.Total)
	}
}

package pos

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/entity"
	"github.com/nimeshjn/vendura-api/internal/domain/enum"
)

func newID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func testProduct(t *testing.T, price int64, stock int) entity.Product {
	t.Helper()
	return entity.Product{ID: newID(t), Name: "Test Product", Price: price, Stock: stock}
}

func TestAddItemMaintainsLineTotal(t *testing.T) {
	cart := NewCart()
	p := testProduct(t, 2500, 10)

	for i := 1; i <= 3; i++ {
		if err := cart.AddItem(p); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	lines := cart.Lines()
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("quantity = %d, want 3", lines[0].Quantity)
	}
	if lines[0].TotalPrice != lines[0].UnitPrice*int64(lines[0].Quantity) {
		t.Fatalf("line total %d != unit %d * qty %d", lines[0].TotalPrice, lines[0].UnitPrice, lines[0].Quantity)
	}
}

func TestAddItemRejectsOutOfStock(t *testing.T) {
	cart := NewCart()
	if err := cart.AddItem(testProduct(t, 1000, 0)); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
}

func TestAddItemNeverOversells(t *testing.T) {
	cart := NewCart()
	p := testProduct(t, 1000, 2)

	if err := cart.AddItem(p); err != nil {
		t.Fatalf("add 1: %v", err)
	}
	if err := cart.AddItem(p); err != nil {
		t.Fatalf("add 2: %v", err)
	}
	if err := cart.AddItem(p); !errors.Is(err, ErrStockExceeded) {
		t.Fatalf("expected ErrStockExceeded, got %v", err)
	}
	if got := cart.QuantityOf(p.ID); got != 2 {
		t.Fatalf("quantity = %d, want 2 (catalog stock)", got)
	}
	if got := cart.AvailableStock(p); got != 0 {
		t.Fatalf("available = %d, want 0", got)
	}
}

func TestSetQuantityEnforcesStockCeiling(t *testing.T) {
	cart := NewCart()
	p := testProduct(t, 1000, 5)
	if err := cart.AddItem(p); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Direct quantity updates go through the same ceiling as AddItem.
	if err := cart.SetQuantity(p.ID, 6); !errors.Is(err, ErrStockExceeded) {
		t.Fatalf("expected ErrStockExceeded, got %v", err)
	}
	if err := cart.SetQuantity(p.ID, 5); err != nil {
		t.Fatalf("set to stock limit: %v", err)
	}
	if got := cart.Lines()[0].TotalPrice; got != 5000 {
		t.Fatalf("line total = %d, want 5000", got)
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	cart := NewCart()
	p := testProduct(t, 1000, 5)
	if err := cart.AddItem(p); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := cart.SetQuantity(p.ID, 0); err != nil {
		t.Fatalf("set zero: %v", err)
	}
	if !cart.IsEmpty() {
		t.Fatal("cart should be empty")
	}
	if err := cart.SetQuantity(p.ID, 1); !errors.Is(err, ErrProductNotInCart) {
		t.Fatalf("expected ErrProductNotInCart, got %v", err)
	}
}

func TestClearResetsWholeSaleBundle(t *testing.T) {
	cart := NewCart()
	p := testProduct(t, 1000, 5)
	if err := cart.AddItem(p); err != nil {
		t.Fatalf("add: %v", err)
	}
	cart.SetCustomer(CustomerInfo{Name: "Asha", Phone: "9876500000"})
	if err := cart.ApplyPromo("SAVE10"); err != nil {
		t.Fatalf("promo: %v", err)
	}
	if err := cart.AddTaxLine("GST", 18); err != nil {
		t.Fatalf("tax: %v", err)
	}
	cart.SetNote("gift wrap")

	cart.Clear()

	if !cart.IsEmpty() {
		t.Fatal("lines not cleared")
	}
	if cart.Customer().Name != "" {
		t.Fatal("customer not cleared")
	}
	if cart.PromoCode() != "" || !cart.Discount().IsZero() {
		t.Fatal("discount state not cleared")
	}
	if len(cart.TaxLines()) != 0 {
		t.Fatal("tax lines not cleared")
	}
	if cart.Note() != "" {
		t.Fatal("note not cleared")
	}
	if got := cart.Totals(); got.Total != 0 || got.ItemCount != 0 {
		t.Fatalf("totals after clear = %+v, want zeroes", got)
	}
}

func TestDiscountAndPromoAreExclusive(t *testing.T) {
	cart := NewCart()
	p := testProduct(t, 100000, 5)
	if err := cart.AddItem(p); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := cart.ApplyDiscount(Discount{Type: enum.DiscountTypePercentage, Value: 20}); err != nil {
		t.Fatalf("discount: %v", err)
	}
	if err := cart.ApplyPromo("SAVE10"); err != nil {
		t.Fatalf("promo: %v", err)
	}
	if !cart.Discount().IsZero() {
		t.Fatal("manual discount should be cleared by promo")
	}
	if got := cart.Totals().Discount; got != 10000 {
		t.Fatalf("discount = %d, want promo 10000", got)
	}

	if err := cart.ApplyDiscount(Discount{Type: enum.DiscountTypeFixedAmount, Value: 100}); err != nil {
		t.Fatalf("discount: %v", err)
	}
	if cart.PromoCode() != "" {
		t.Fatal("promo should be cleared by manual discount")
	}
	if got := cart.Totals().Discount; got != 10000 {
		t.Fatalf("discount = %d, want fixed 10000", got)
	}
}

func TestApplyPromoRejectsUnknownCode(t *testing.T) {
	cart := NewCart()
	if err := cart.ApplyPromo("NOPE99"); !errors.Is(err, ErrUnknownPromoCode) {
		t.Fatalf("expected ErrUnknownPromoCode, got %v", err)
	}
	if cart.PromoCode() != "" {
		t.Fatal("rejected promo must not stick")
	}
}

func TestTotalsAreDerivedNotStored(t *testing.T) {
	cart := NewCart()
	p := testProduct(t, 10000, 10)
	if err := cart.AddItem(p); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := cart.ApplyPromo("SAVE10"); err != nil {
		t.Fatalf("promo: %v", err)
	}

	before := cart.Totals()
	if before.Discount != 1000 {
		t.Fatalf("discount = %d, want 1000", before.Discount)
	}

	// Growing the cart after applying the promo re-resolves the discount.
	if err := cart.SetQuantity(p.ID, 10); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	after := cart.Totals()
	if after.SubTotal != 100000 || after.Discount != 10000 {
		t.Fatalf("totals = %+v, want subtotal 100000 discount 10000", after)
	}
}

func TestClassifyStock(t *testing.T) {
	tests := []struct {
		available int
		level     StockLevel
		disabled  bool
	}{
		{-3, StockLevelOut, true},
		{0, StockLevelOut, true},
		{1, StockLevelLow, false},
		{5, StockLevelLow, false},
		{6, StockLevelIn, false},
		{100, StockLevelIn, false},
	}
	for _, tt := range tests {
		got := ClassifyStock(tt.available)
		if got.Level != tt.level || got.Disabled != tt.disabled {
			t.Fatalf("ClassifyStock(%d) = %+v, want level %s disabled %t", tt.available, got, tt.level, tt.disabled)
		}
		if got.Available < 0 {
			t.Fatalf("ClassifyStock(%d) reported negative availability", tt.available)
		}
	}
}

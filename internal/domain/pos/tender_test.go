package pos

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nimeshjn/vendura-api/internal/domain/enum"
)

func TestSplitTenderConverges(t *testing.T) {
	tender := NewTender(15000)

	if tender.CanComplete() {
		t.Fatal("empty tender must not be completable")
	}

	pay, err := tender.AddCash(10000, 10000)
	if err != nil {
		t.Fatalf("add cash: %v", err)
	}
	if pay.Change != 0 {
		t.Fatalf("change = %d, want 0", pay.Change)
	}
	if got := tender.Remaining(); got != 5000 {
		t.Fatalf("remaining = %d, want 5000", got)
	}
	if tender.CanComplete() {
		t.Fatal("partially paid tender must not be completable")
	}

	if _, err := tender.AddUPI(5000); err != nil {
		t.Fatalf("add upi: %v", err)
	}
	if got := tender.Remaining(); got != 0 {
		t.Fatalf("remaining = %d, want 0", got)
	}
	if !tender.CanComplete() {
		t.Fatal("fully paid tender must be completable")
	}

	cash, card, digital := tender.MethodTotals()
	if cash != 10000 || card != 0 || digital != 5000 {
		t.Fatalf("method totals = %d/%d/%d, want 10000/0/5000", cash, card, digital)
	}
	if got := tender.DeclaredMethod(); got != enum.PaymentMethodCash {
		t.Fatalf("declared method = %s, want cash", got)
	}
}

func TestAddCashGivesChange(t *testing.T) {
	tender := NewTender(7500)
	pay, err := tender.AddCash(7500, 10000)
	if err != nil {
		t.Fatalf("add cash: %v", err)
	}
	if pay.Change != 2500 {
		t.Fatalf("change = %d, want 2500", pay.Change)
	}
	if got := tender.TotalChange(); got != 2500 {
		t.Fatalf("total change = %d, want 2500", got)
	}
}

func TestAddCashRejectsShortAndOverPayments(t *testing.T) {
	tender := NewTender(10000)

	if _, err := tender.AddCash(10000, 9000); !errors.Is(err, ErrInsufficientCash) {
		t.Fatalf("expected ErrInsufficientCash, got %v", err)
	}
	if _, err := tender.AddCash(0, 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}
	if _, err := tender.AddCash(12000, 12000); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount above remaining, got %v", err)
	}
	if len(tender.Payments()) != 0 {
		t.Fatalf("rejected payments must not be recorded, have %d", len(tender.Payments()))
	}
}

func TestAttestedPaymentCannotExceedRemaining(t *testing.T) {
	tender := NewTender(10000)
	if _, err := tender.AddCash(6000, 6000); err != nil {
		t.Fatalf("add cash: %v", err)
	}
	if _, err := tender.AddUPI(5000); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := tender.AddCard(4000); err != nil {
		t.Fatalf("add card: %v", err)
	}
	if !tender.CanComplete() {
		t.Fatal("tender should be settled")
	}
}

func TestQuickAmounts(t *testing.T) {
	tests := []struct {
		name string
		due  int64
		want []int64
	}{
		{"non-round amount", 23700, []int64{23700, 24000, 25000, 30000}},
		{"round thousand", 20000, []int64{20000, 21000, 25000, 30000}},
		{"small amount", 500, []int64{500, 1000, 5000, 10000}},
		{"exact step collapses", 1000, []int64{1000, 2000, 5000, 10000}},
		{"zero due", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuickAmounts(tt.due)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("QuickAmounts(%d) = %v, want %v", tt.due, got, tt.want)
			}
			for i := 1; i < len(got); i++ {
				if got[i] <= got[i-1] {
					t.Fatalf("suggestions not strictly ascending: %v", got)
				}
			}
		})
	}
}

func TestUPIIntent(t *testing.T) {
	got := UPIIntent("store@okbank", "Vendura Store", 106200)
	want := "upi://pay?am=1062.00&cu=INR&pa=store%40okbank&pn=Vendura+Store"
	if got != want {
		t.Fatalf("UPIIntent = %q, want %q", got, want)
	}
}

package pos

import (
	"fmt"
	"net/url"

	"github.com/nimeshjn/vendura-api/internal/domain/entity"
	"github.com/nimeshjn/vendura-api/internal/domain/enum"
)

// Tender tracks the payments collected towards a sale total. A sale may be
// settled by a single payment or split across several cash/UPI/card tenders;
// completion is permitted only once the remaining amount reaches zero.
type Tender struct {
	total    int64
	payments []entity.Payment
}

// NewTender starts tendering for a sale total
func NewTender(total int64) *Tender {
	return &Tender{total: total}
}

// Total returns the sale total being tendered
func (t *Tender) Total() int64 {
	return t.total
}

// Payments returns the recorded payments in order
func (t *Tender) Payments() []entity.Payment {
	return t.payments
}

// Remaining returns the amount still owed: saleTotal - Σ payment amounts.
// It can go negative when the final portion overshoots; completion treats
// anything <= 0 as settled.
func (t *Tender) Remaining() int64 {
	remaining := t.total
	for _, p := range t.payments {
		remaining -= p.Amount
	}
	return remaining
}

// CanComplete reports whether the collected payments cover the total
func (t *Tender) CanComplete() bool {
	return t.Remaining() <= 0
}

// AddCash records a cash payment for a portion of the sale. The amount given
// must cover the portion; change is given - portion for this payment alone.
func (t *Tender) AddCash(amount, given int64) (*entity.Payment, error) {
	if amount <= 0 || amount > t.Remaining() {
		return nil, ErrInvalidAmount
	}
	if given < amount {
		return nil, ErrInsufficientCash
	}
	p := entity.Payment{
		Method:      enum.PaymentMethodCash,
		Amount:      amount,
		AmountGiven: given,
		Change:      given - amount,
		Status:      "completed",
	}
	t.payments = append(t.payments, p)
	return &t.payments[len(t.payments)-1], nil
}

// AddUPI records a UPI payment for a portion of the sale. Confirmation is
// operator-attested: the cashier presses "payment received" after checking
// their UPI app; there is no gateway callback in this flow.
func (t *Tender) AddUPI(amount int64) (*entity.Payment, error) {
	return t.addAttested(enum.PaymentMethodUPI, amount)
}

// AddCard records a card payment confirmed on an external terminal
func (t *Tender) AddCard(amount int64) (*entity.Payment, error) {
	return t.addAttested(enum.PaymentMethodCard, amount)
}

func (t *Tender) addAttested(method enum.PaymentMethod, amount int64) (*entity.Payment, error) {
	if amount <= 0 || amount > t.Remaining() {
		return nil, ErrInvalidAmount
	}
	p := entity.Payment{
		Method: method,
		Amount: amount,
		Status: "completed",
	}
	t.payments = append(t.payments, p)
	return &t.payments[len(t.payments)-1], nil
}

// DeclaredMethod returns the payment method recorded on the order. When
// methods mix across a split tender, the first payment's method is declared;
// the per-payment breakdown remains on the payment rows.
func (t *Tender) DeclaredMethod() enum.PaymentMethod {
	if len(t.payments) == 0 {
		return enum.PaymentMethodCash
	}
	return t.payments[0].Method
}

// TotalChange sums the change due across all cash payments
func (t *Tender) TotalChange() int64 {
	var change int64
	for _, p := range t.payments {
		change += p.Change
	}
	return change
}

// MethodTotals returns the amounts settled per method bucket, used to bump
// the register session counters. Cash is net of change.
func (t *Tender) MethodTotals() (cash, card, digital int64) {
	for _, p := range t.payments {
		switch p.Method {
		case enum.PaymentMethodCash:
			cash += p.Amount
		case enum.PaymentMethodCard:
			card += p.Amount
		case enum.PaymentMethodUPI:
			digital += p.Amount
		}
	}
	return cash, card, digital
}

// Quick-tender step sizes: ₹10, ₹50 and ₹100 in paise.
var quickSteps = [...]int64{1000, 5000, 10000}

// QuickAmounts suggests round cash amounts for a due portion: the exact
// amount plus the next multiple of each step strictly above it. Duplicates
// collapse, so at most four suggestions are returned, in ascending order.
func QuickAmounts(due int64) []int64 {
	if due <= 0 {
		return nil
	}
	suggestions := []int64{due}
	for _, step := range quickSteps {
		next := (due/step + 1) * step
		if next != suggestions[len(suggestions)-1] {
			suggestions = append(suggestions, next)
		}
	}
	return suggestions
}

// UPIIntent builds the upi:// deep link encoded into the payment QR code for
// a due portion.
func UPIIntent(payeeVPA, payeeName string, amount int64) string {
	q := url.Values{}
	q.Set("pa", payeeVPA)
	q.Set("pn", payeeName)
	q.Set("am", fmt.Sprintf("%.2f", float64(amount)/100))
	q.Set("cu", "INR")
	return "upi://pay?" + q.Encode()
}

package enum

// PaymentMethod identifies how a payment was tendered
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodCard PaymentMethod = "card"
)

// IsValid reports whether the method is one of the supported tender types
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodUPI, PaymentMethodCard:
		return true
	}
	return false
}

// IsCash reports whether the method settles in physical cash.
// Only cash tenders count towards the register's expected drawer amount.
func (m PaymentMethod) IsCash() bool {
	return m == PaymentMethodCash
}

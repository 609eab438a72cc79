package entity

// ReceiptHeader holds the store/business header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// ReceiptPayment represents a tender line on a receipt. Split-tender sales
// print one line per payment.
type ReceiptPayment struct {
	Method      string  `json:"method"`
	Amount      float64 `json:"amount"`
	AmountGiven float64 `json:"amount_given,omitempty"`
	Change      float64 `json:"change,omitempty"`
}

// Receipt is a value object representing a printable receipt.
// It is not a database entity, it is composed from order data at print time.
type Receipt struct {
	Header      ReceiptHeader    `json:"header"`
	OrderNumber string           `json:"order_number"`
	Date        string           `json:"date"`
	Cashier     string           `json:"cashier,omitempty"`
	Customer    string           `json:"customer,omitempty"`
	Items       []ReceiptItem    `json:"items"`
	SubTotal    float64          `json:"sub_total"`
	Discount    float64          `json:"discount"`
	Tax         float64          `json:"tax"`
	Total       float64          `json:"total"`
	Payments    []ReceiptPayment `json:"payments"`
	Change      float64          `json:"change"`
	Footer      string           `json:"footer,omitempty"`
}

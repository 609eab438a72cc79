package request

// UpdateSettingsRequest represents the update settings payload.
// DefaultTaxRate is a whole percentage.
type UpdateSettingsRequest struct {
	StoreName      string `json:"store_name" binding:"required"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	TaxID          string `json:"tax_id"`
	Currency       string `json:"currency"`
	DefaultTaxName string `json:"default_tax_name"`
	DefaultTaxRate int    `json:"default_tax_rate" binding:"gte=0,lte=100"`
	ReceiptFooter  string `json:"receipt_footer"`
	LowStockAlerts bool   `json:"low_stock_alerts"`
	DailySummary   bool   `json:"daily_summary"`
}

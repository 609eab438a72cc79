package pos

// LowStockThreshold is the quantity at or below which a product is flagged
// as running low on the cashier grid.
const LowStockThreshold = 5

// StockLevel classifies a product's availability for display
type StockLevel string

const (
	StockLevelOut StockLevel = "out-of-stock"
	StockLevelLow StockLevel = "low-stock"
	StockLevelIn  StockLevel = "in-stock"
)

// StockDisplay is the classification shown on the product grid. Disabled
// gates the add-to-cart and quantity-increment controls.
type StockDisplay struct {
	Level     StockLevel `json:"level"`
	Available int        `json:"available"`
	Disabled  bool       `json:"disabled"`
}

// ClassifyStock maps an available quantity to its display state.
// Negative availability (catalog shrank after the cart was populated) is
// treated as zero.
func ClassifyStock(available int) StockDisplay {
	if available < 0 {
		available = 0
	}
	switch {
	case available == 0:
		return StockDisplay{Level: StockLevelOut, Available: 0, Disabled: true}
	case available <= LowStockThreshold:
		return StockDisplay{Level: StockLevelLow, Available: available, Disabled: false}
	default:
		return StockDisplay{Level: StockLevelIn, Available: available, Disabled: false}
	}
}

package pos

import (
	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/entity"
)

// Line is a cart line item. TotalPrice is derived and kept equal to
// UnitPrice * Quantity by every mutation.
type Line struct {
	Product    entity.Product `json:"product"`
	Quantity   int            `json:"quantity"`
	UnitPrice  int64          `json:"unit_price"`
	TotalPrice int64          `json:"total_price"`
}

// CustomerInfo is the transient customer attached to an in-progress sale.
// It is sale-scoped only and cleared together with the cart.
type CustomerInfo struct {
	ID    *uuid.UUID `json:"id,omitempty"`
	Name  string     `json:"name,omitempty"`
	Email string     `json:"email,omitempty"`
	Phone string     `json:"phone,omitempty"`
}

// Totals is a derived snapshot of the cart's money math. It is recomputed on
// demand and never stored, so it cannot go stale.
type Totals struct {
	SubTotal  int64 `json:"sub_total"`
	Discount  int64 `json:"discount"`
	Tax       int64 `json:"tax"`
	Total     int64 `json:"total"`
	ItemCount int   `json:"item_count"`
}

// Cart owns the full sale-scoped state bundle: line items, customer,
// discount or promo (mutually exclusive), tax lines and note. All stock
// ceilings are enforced here, in one place, regardless of the caller.
type Cart struct {
	lines    []Line
	customer CustomerInfo
	discount Discount
	promo    string
	taxes    []TaxLine
	note     string
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{}
}

// Lines returns the cart lines in insertion order
func (c *Cart) Lines() []Line {
	return c.lines
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// QuantityOf returns the quantity currently reserved for a product
func (c *Cart) QuantityOf(productID uuid.UUID) int {
	for _, l := range c.lines {
		if l.Product.ID == productID {
			return l.Quantity
		}
	}
	return 0
}

// AvailableStock returns the catalog stock minus the quantity already
// reserved in this cart. The result can be negative when the catalog shrank
// after the cart was populated; callers treat negative as zero.
func (c *Cart) AvailableStock(p entity.Product) int {
	return p.Stock - c.QuantityOf(p.ID)
}

// AddItem adds one unit of a product, appending a new line or incrementing
// an existing one. The catalog stock ceiling is enforced here: an add that
// would exceed it fails with ErrStockExceeded rather than silently no-oping.
func (c *Cart) AddItem(p entity.Product) error {
	if p.Stock <= 0 {
		return ErrOutOfStock
	}
	if c.AvailableStock(p) <= 0 {
		return ErrStockExceeded
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity++
			c.lines[i].TotalPrice = c.lines[i].UnitPrice * int64(c.lines[i].Quantity)
			return nil
		}
	}
	c.lines = append(c.lines, Line{
		Product:    p,
		Quantity:   1,
		UnitPrice:  p.Price,
		TotalPrice: p.Price,
	})
	return nil
}

// SetQuantity sets a line's quantity directly. Zero or negative removes the
// line; quantities above the catalog stock fail with ErrStockExceeded.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		c.Remove(productID)
		return nil
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			if quantity > c.lines[i].Product.Stock {
				return ErrStockExceeded
			}
			c.lines[i].Quantity = quantity
			c.lines[i].TotalPrice = c.lines[i].UnitPrice * int64(quantity)
			return nil
		}
	}
	return ErrProductNotInCart
}

// Remove drops a line unconditionally
func (c *Cart) Remove(productID uuid.UUID) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear resets the entire sale-scoped bundle atomically: lines, customer,
// discount, promo, taxes and note. There is no partial reset.
func (c *Cart) Clear() {
	*c = Cart{}
}

// SetCustomer attaches the transient customer for this sale
func (c *Cart) SetCustomer(info CustomerInfo) {
	c.customer = info
}

// Customer returns the customer attached to this sale
func (c *Cart) Customer() CustomerInfo {
	return c.customer
}

// ApplyDiscount sets a manual discount and clears any promo code; at most
// one discount source is active at a time.
func (c *Cart) ApplyDiscount(d Discount) error {
	if !d.Type.IsValid() || d.Value < 0 {
		return ErrInvalidDiscount
	}
	c.discount = d
	c.promo = ""
	return nil
}

// ApplyPromo validates and sets a promo code, clearing any manual discount.
func (c *Cart) ApplyPromo(code string) error {
	code = NormalizePromoCode(code)
	if _, err := PromoDiscount(code, 0); err != nil {
		return err
	}
	c.promo = code
	c.discount = Discount{}
	return nil
}

// ClearDiscount removes both the manual discount and the promo code
func (c *Cart) ClearDiscount() {
	c.discount = Discount{}
	c.promo = ""
}

// Discount returns the active manual discount (zero if a promo is applied)
func (c *Cart) Discount() Discount {
	return c.discount
}

// PromoCode returns the active promo code, or "" when none is applied
func (c *Cart) PromoCode() string {
	return c.promo
}

// AddTaxLine appends a tax line applied to the discounted subtotal
func (c *Cart) AddTaxLine(name string, rate float64) error {
	if rate < 0 || rate > 100 {
		return ErrInvalidTaxRate
	}
	c.taxes = append(c.taxes, TaxLine{Name: name, Rate: rate})
	return nil
}

// RemoveTaxLine removes the first tax line with the given name
func (c *Cart) RemoveTaxLine(name string) {
	for i := range c.taxes {
		if c.taxes[i].Name == name {
			c.taxes = append(c.taxes[:i], c.taxes[i+1:]...)
			return
		}
	}
}

// TaxLines returns the stacked tax lines for this sale
func (c *Cart) TaxLines() []TaxLine {
	return c.taxes
}

// SetNote attaches a free-text note to the sale
func (c *Cart) SetNote(note string) {
	c.note = note
}

// Note returns the sale note
func (c *Cart) Note() string {
	return c.note
}

// Totals derives the money snapshot for the current cart state. The promo
// discount tracks the live subtotal, so a cart mutation after applying a
// promo is reflected automatically.
func (c *Cart) Totals() Totals {
	subtotal := Subtotal(c.lines)

	var discount int64
	if c.promo != "" {
		// Code was validated on apply; resolve against the live subtotal.
		discount, _ = PromoDiscount(c.promo, subtotal)
	} else {
		discount = DiscountAmount(subtotal, c.discount)
	}

	tax := TotalTax(subtotal-discount, c.taxes)

	return Totals{
		SubTotal:  subtotal,
		Discount:  discount,
		Tax:       tax,
		Total:     FinalTotal(subtotal, tax, discount),
		ItemCount: TotalItems(c.lines),
	}
}

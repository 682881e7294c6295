package domain

import "github.com/shopspring/decimal"

var (
	FreeDeliveryThreshold  = decimal.NewFromInt(999)
	StandardDeliveryCharge = decimal.NewFromInt(99)
)

// CartLine is one product in the cart.
type CartLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart keeps lines in insertion order, one line per product.
type Cart struct {
	lines []CartLine
}

// Add merges quantity into an existing line or appends a new one.
// A non-positive quantity counts as one.
func (c *Cart) Add(productID string, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity += quantity
			return
		}
	}
	c.lines = append(c.lines, CartLine{ProductID: productID, Quantity: quantity})
}

func (c *Cart) Remove(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Clear() { c.lines = nil }

// Lines returns a copy of the cart lines.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) TotalItems() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// UnitPrice returns the wholesale price when a wholesaler buys at least the
// minimum wholesale quantity, the retail price otherwise.
func UnitPrice(p *Product, quantity int, role Role) decimal.Decimal {
	if role == RoleWholesaler && p.WholesalePrice > 0 && p.MinWholesaleQty > 0 && quantity >= p.MinWholesaleQty {
		return decimal.NewFromFloat(p.WholesalePrice)
	}
	return decimal.NewFromFloat(p.RetailPrice)
}

// DeliveryCharge is free at or above FreeDeliveryThreshold.
func DeliveryCharge(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(FreeDeliveryThreshold) {
		return decimal.Zero
	}
	return StandardDeliveryCharge
}

// Quote is the priced view of a cart.
type Quote struct {
	Items          []OrderItem
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	DeliveryCharge decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
}

// PriceCart prices every line of the cart. products is keyed by id and must
// contain every line's product.
func PriceCart(c *Cart, products map[string]*Product, role Role) (*Quote, error) {
	q := &Quote{Discount: decimal.Zero, Tax: decimal.Zero, Subtotal: decimal.Zero}
	for _, l := range c.lines {
		p, ok := products[l.ProductID]
		if !ok || !p.IsPublished() {
			return nil, ErrProductNotFound
		}
		unit := UnitPrice(p, l.Quantity, role)
		lineTotal := unit.Mul(decimal.NewFromInt(int64(l.Quantity)))
		q.Subtotal = q.Subtotal.Add(lineTotal)
		q.Items = append(q.Items, OrderItem{
			ProductID:    p.ID,
			ProductName:  p.Name,
			ProductSKU:   p.SKU,
			ProductImage: p.PrimaryImage(),
			Quantity:     l.Quantity,
			UnitPrice:    money(unit),
			TotalPrice:   money(lineTotal),
		})
	}
	q.DeliveryCharge = DeliveryCharge(q.Subtotal)
	q.Total = q.Subtotal.Sub(q.Discount).Add(q.DeliveryCharge).Add(q.Tax)
	return q, nil
}

// Apply copies the quote totals onto o.
func (q *Quote) Apply(o *Order) {
	o.Items = q.Items
	o.Subtotal = money(q.Subtotal)
	o.DiscountAmount = money(q.Discount)
	o.DeliveryCharge = money(q.DeliveryCharge)
	o.TaxAmount = money(q.Tax)
	o.TotalAmount = money(q.Total)
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

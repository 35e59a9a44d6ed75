package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is a single requested (product, quantity) pair in an order.
type Line struct {
	Product  string
	Quantity int
}

// Receipt describes a committed order.
type Receipt struct {
	ID        string
	Lines     []ReceiptLine
	Total     decimal.Decimal
	Savings   decimal.Decimal
	CreatedAt time.Time
}

// ReceiptLine holds the pricing for one distinct product in an order.
// Quantities of repeated lines for the same product are combined.
type ReceiptLine struct {
	Product   string
	Quantity  int
	UnitPrice decimal.Decimal
	// Subtotal is the undiscounted UnitPrice * Quantity.
	Subtotal decimal.Decimal
	// Price is what the customer pays after the promotion.
	Price     decimal.Decimal
	Promotion string
}

// Units returns the total number of units across all receipt lines.
func (r *Receipt) Units() int {
	n := 0
	for _, l := range r.Lines {
		n += l.Quantity
	}
	return n
}

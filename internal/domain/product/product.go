package product

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/store-cli/internal/domain/promotion"
)

// Kind enumerates how a product's stock is tracked.
type Kind string

const (
	// KindStocked products have a finite stock that orders draw down.
	KindStocked Kind = "stocked"
	// KindNonStocked products are always available and never draw down stock.
	KindNonStocked Kind = "non_stocked"
	// KindLimited products are stocked and capped at Maximum units per order.
	KindLimited Kind = "limited"
)

// Sentinel errors for product validation.
var (
	ErrEmptyName        = errors.New("product name must have at least one letter")
	ErrNegativePrice    = errors.New("price must be 0 or positive")
	ErrNegativeQuantity = errors.New("quantity must be 0 or positive")
	ErrInvalidMaximum   = errors.New("limited product maximum must be greater than 0")
	ErrNonStockedStock  = errors.New("non-stocked products have no quantity")
)

// Product is a catalog item available for purchase.
type Product struct {
	Name      string
	Price     decimal.Decimal
	Quantity  int
	Kind      Kind
	Maximum   int
	Promotion promotion.Promotion
}

// Validate checks the invariants every catalog product must hold.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price.IsNegative() {
		return errors.Wrapf(ErrNegativePrice, "product %s", p.Name)
	}
	if p.Quantity < 0 {
		return errors.Wrapf(ErrNegativeQuantity, "product %s", p.Name)
	}
	switch p.Kind {
	case KindStocked, "":
	case KindNonStocked:
		if p.Quantity != 0 {
			return errors.Wrapf(ErrNonStockedStock, "product %s", p.Name)
		}
	case KindLimited:
		if p.Maximum <= 0 {
			return errors.Wrapf(ErrInvalidMaximum, "product %s", p.Name)
		}
	default:
		return errors.Errorf("product %s: unsupported kind %q", p.Name, p.Kind)
	}
	return nil
}

// Tracked reports whether orders draw down the product's stock.
func (p Product) Tracked() bool {
	return p.Kind != KindNonStocked
}

// Active reports whether the product can currently be ordered.
func (p Product) Active() bool {
	return !p.Tracked() || p.Quantity > 0
}

// Cost prices quantity units under the product's promotion.
func (p Product) Cost(quantity int) (decimal.Decimal, error) {
	return promotion.Apply(p.Promotion, p.Price, quantity)
}

// String renders the product the way the store menu lists it.
func (p Product) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, Price: %s", p.Name, p.Price)
	if p.Tracked() {
		fmt.Fprintf(&b, ", Quantity: %d", p.Quantity)
	}
	if p.Kind == KindLimited {
		fmt.Fprintf(&b, ", Maximum: %d", p.Maximum)
	}
	if p.Promotion != nil && p.Promotion.Kind() != promotion.KindNone {
		fmt.Fprintf(&b, ", Promotion: %s", p.Promotion.Name())
	}
	return b.String()
}

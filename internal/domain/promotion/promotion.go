package promotion

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Kind enumerates the supported promotion strategies.
type Kind string

const (
	// KindNone bills every unit at full price.
	KindNone Kind = "none"
	// KindSecondHalfPrice bills every second unit at half price.
	KindSecondHalfPrice Kind = "second_half_price"
	// KindThirdOneFree makes every third unit free.
	KindThirdOneFree Kind = "third_one_free"
	// KindPercentageDiscount takes a fixed percentage off the whole line.
	KindPercentageDiscount Kind = "percentage_discount"
)

var (
	// ErrInvalidQuantity is returned when a price is requested for a
	// non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
	// ErrInvalidPercent is returned when a percentage discount is outside [0, 100].
	ErrInvalidPercent = errors.New("percent must be between 0 and 100")
)

// Promotion is a pricing rule attached to a product. The set of
// implementations is closed: None, SecondHalfPrice, ThirdOneFree and
// PercentageDiscount.
type Promotion interface {
	// Name is the human-readable label shown next to the product.
	Name() string
	// Kind identifies the strategy.
	Kind() Kind
	// Price returns the total for quantity units at unitPrice, rounded to
	// two decimal places.
	Price(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error)

	sealed()
}

// Spec describes a promotion in catalog data.
type Spec struct {
	Kind    Kind
	Name    string
	Percent decimal.Decimal
}

// FromSpec builds the promotion described by spec. An empty Name falls back
// to the strategy's default label.
func FromSpec(spec Spec) (Promotion, error) {
	switch spec.Kind {
	case KindNone, "":
		return None{}, nil
	case KindSecondHalfPrice:
		return NewSecondHalfPrice(spec.Name), nil
	case KindThirdOneFree:
		return NewThirdOneFree(spec.Name), nil
	case KindPercentageDiscount:
		return NewPercentageDiscount(spec.Name, spec.Percent)
	default:
		return nil, errors.Errorf("unsupported promotion kind: %q", spec.Kind)
	}
}

// Apply prices quantity units under p. A nil promotion bills at full price.
func Apply(p Promotion, unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if p == nil {
		p = None{}
	}
	return p.Price(unitPrice, quantity)
}

package promotion

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.New(5, -1)
	two     = decimal.NewFromInt(2)
)

var (
	_ Promotion = None{}
	_ Promotion = SecondHalfPrice{}
	_ Promotion = ThirdOneFree{}
	_ Promotion = PercentageDiscount{}
)

// None bills every unit at full price.
type None struct{}

func (None) Name() string { return "" }
func (None) Kind() Kind   { return KindNone }
func (None) sealed()      {}

// Price returns unitPrice * quantity.
func (None) Price(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, ErrInvalidQuantity
	}
	return round(unitPrice.Mul(qty(quantity))), nil
}

// SecondHalfPrice bills the second unit of every pair at 50%.
type SecondHalfPrice struct {
	name string
}

// NewSecondHalfPrice returns a SecondHalfPrice labelled name.
func NewSecondHalfPrice(name string) SecondHalfPrice {
	if name == "" {
		name = "Second Half price!"
	}
	return SecondHalfPrice{name: name}
}

func (p SecondHalfPrice) Name() string { return p.name }
func (SecondHalfPrice) Kind() Kind     { return KindSecondHalfPrice }
func (SecondHalfPrice) sealed()        {}

// Price returns pairs*(1.5*unitPrice) + remainder*unitPrice.
func (SecondHalfPrice) Price(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, ErrInvalidQuantity
	}
	pairs, rem := quantity/2, quantity%2
	pair := unitPrice.Add(unitPrice.Mul(half))

	total := pair.Mul(qty(pairs)).Add(unitPrice.Mul(qty(rem)))
	return round(total), nil
}

// ThirdOneFree makes one unit of every group of three free.
type ThirdOneFree struct {
	name string
}

// NewThirdOneFree returns a ThirdOneFree labelled name.
func NewThirdOneFree(name string) ThirdOneFree {
	if name == "" {
		name = "Third One Free!"
	}
	return ThirdOneFree{name: name}
}

func (p ThirdOneFree) Name() string { return p.name }
func (ThirdOneFree) Kind() Kind     { return KindThirdOneFree }
func (ThirdOneFree) sealed()        {}

// Price returns groups*(2*unitPrice) + remainder*unitPrice.
func (ThirdOneFree) Price(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, ErrInvalidQuantity
	}
	groups, rem := quantity/3, quantity%3

	total := unitPrice.Mul(two).Mul(qty(groups)).Add(unitPrice.Mul(qty(rem)))
	return round(total), nil
}

// PercentageDiscount takes Percent off the undiscounted line total.
type PercentageDiscount struct {
	name    string
	percent decimal.Decimal
}

// NewPercentageDiscount returns a PercentageDiscount of percent. It returns
// ErrInvalidPercent when percent is outside [0, 100].
func NewPercentageDiscount(name string, percent decimal.Decimal) (PercentageDiscount, error) {
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return PercentageDiscount{}, ErrInvalidPercent
	}
	if name == "" {
		name = percent.String() + "% off!"
	}
	return PercentageDiscount{name: name, percent: percent}, nil
}

func (p PercentageDiscount) Name() string { return p.name }
func (PercentageDiscount) Kind() Kind     { return KindPercentageDiscount }
func (PercentageDiscount) sealed()        {}

// Percent returns the discount percentage.
func (p PercentageDiscount) Percent() decimal.Decimal { return p.percent }

// Price returns unitPrice * quantity * (100 - percent) / 100.
func (p PercentageDiscount) Price(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, ErrInvalidQuantity
	}
	total := unitPrice.Mul(qty(quantity)).Mul(hundred.Sub(p.percent)).Div(hundred)
	return round(total), nil
}

func qty(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// round rounds half away from zero to currency precision. Prices are never
// negative, so this is round-half-up.
func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

package store

import (
	"fmt"

	"github.com/go-faster/errors"

	"github.com/xenking/store-cli/internal/domain/promotion"
)

// Sentinel errors for order and catalog operations. The typed errors below
// match them with errors.Is.
var (
	ErrEmptyOrder        = errors.New("order has no lines")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrLimitExceeded     = errors.New("per-order maximum exceeded")
	ErrDuplicateProduct  = errors.New("product already exists")

	// ErrInvalidQuantity is shared with promotion pricing.
	ErrInvalidQuantity = promotion.ErrInvalidQuantity
)

// ProductNotFoundError indicates a requested product does not exist.
type ProductNotFoundError struct {
	Name string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %q not found", e.Name)
}

func (e *ProductNotFoundError) Is(target error) bool { return target == ErrProductNotFound }

// InvalidQuantityError indicates a line has a non-positive quantity, or one
// that would overflow the product's running total.
type InvalidQuantityError struct {
	Name     string
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	if e.Quantity > 0 {
		return fmt.Sprintf("quantity %d for product %q is too large", e.Quantity, e.Name)
	}
	return fmt.Sprintf("quantity must be greater than 0 for product %q, got %d", e.Name, e.Quantity)
}

func (e *InvalidQuantityError) Is(target error) bool { return target == ErrInvalidQuantity }

// InsufficientStockError indicates the combined quantity requested for a
// product exceeds its stock.
type InsufficientStockError struct {
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("quantity larger than what exists: requested %d of %q, %d in stock",
		e.Requested, e.Name, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// LimitExceededError indicates the combined quantity requested for a limited
// product exceeds its per-order maximum.
type LimitExceededError struct {
	Name      string
	Requested int
	Maximum   int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("cannot buy more than %d of %q in one order, requested %d",
		e.Maximum, e.Name, e.Requested)
}

func (e *LimitExceededError) Is(target error) bool { return target == ErrLimitExceeded }

// reason maps an order error to a short metric attribute value.
func reason(err error) string {
	switch {
	case errors.Is(err, ErrEmptyOrder):
		return "empty_order"
	case errors.Is(err, ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrLimitExceeded):
		return "limit_exceeded"
	default:
		return "internal"
	}
}

// Package store holds the product catalog and executes orders against it.
//
// An order is validated as a whole before anything is priced or committed:
// either every line passes and stock is decremented for all of them, or the
// first failing line (scanning left to right) is returned and no product is
// touched.
package store

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/xenking/store-cli/internal/domain/order"
	"github.com/xenking/store-cli/internal/domain/product"
)

// Option configures a Store.
type Option func(*options)

type options struct {
	lg    *zap.Logger
	mp    metric.MeterProvider
	newID func() string
	now   func() time.Time
}

// WithLogger sets the logger used for order events.
func WithLogger(lg *zap.Logger) Option {
	return func(o *options) { o.lg = lg }
}

// WithMeterProvider sets the provider for order counters.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.mp = mp }
}

// WithIDGenerator sets the function producing receipt IDs.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// WithClock sets the time source for receipt timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Store owns the catalog. Products live for the lifetime of the Store and
// their stock changes only through PlaceOrder and Restock.
type Store struct {
	mu       sync.Mutex
	products []*product.Product
	index    map[string]*product.Product

	lg      *zap.Logger
	metrics *metrics
	newID   func() string
	now     func() time.Time
}

// New creates a Store holding products in the given order. Every product is
// validated and names must be unique.
func New(products []product.Product, opts ...Option) (*Store, error) {
	o := options{
		lg:    zap.NewNop(),
		mp:    noop.NewMeterProvider(),
		newID: func() string { return uuid.New().String() },
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	m, err := newMetrics(o.mp)
	if err != nil {
		return nil, errors.Wrap(err, "create metrics")
	}

	s := &Store{
		products: make([]*product.Product, 0, len(products)),
		index:    make(map[string]*product.Product, len(products)),
		lg:       o.lg,
		metrics:  m,
		newID:    o.newID,
		now:      o.now,
	}
	for _, p := range products {
		if err := s.add(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) add(p product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Kind == "" {
		p.Kind = product.KindStocked
	}
	if _, ok := s.index[p.Name]; ok {
		return errors.Wrapf(ErrDuplicateProduct, "add %q", p.Name)
	}
	s.products = append(s.products, &p)
	s.index[p.Name] = &p
	return nil
}

// AddProduct appends p to the catalog.
func (s *Store) AddProduct(p product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.add(p)
}

// RemoveProduct drops the named product from the catalog.
func (s *Store) RemoveProduct(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[name]; !ok {
		return &ProductNotFoundError{Name: name}
	}
	delete(s.index, name)
	for i, p := range s.products {
		if p.Name == name {
			s.products = append(s.products[:i], s.products[i+1:]...)
			break
		}
	}
	return nil
}

// Product returns a snapshot of the named product.
func (s *Store) Product(name string) (product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.index[name]
	if !ok {
		return product.Product{}, &ProductNotFoundError{Name: name}
	}
	return *p, nil
}

// ListProducts returns snapshots of every product in catalog order.
func (s *Store) ListProducts() []product.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]product.Product, len(s.products))
	for i, p := range s.products {
		out[i] = *p
	}
	return out
}

// ActiveProducts returns snapshots of the products that can currently be
// ordered, in catalog order.
func (s *Store) ActiveProducts() []product.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]product.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.Active() {
			out = append(out, *p)
		}
	}
	return out
}

// TotalQuantity returns the sum of stock across the catalog. Non-stocked
// products contribute nothing.
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, p := range s.products {
		total += p.Quantity
	}
	return total
}

// Restock adds quantity units to the named product.
func (s *Store) Restock(name string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.index[name]
	if !ok {
		return &ProductNotFoundError{Name: name}
	}
	if quantity <= 0 || quantity > math.MaxInt-p.Quantity {
		return &InvalidQuantityError{Name: name, Quantity: quantity}
	}
	if !p.Tracked() {
		return errors.Wrapf(product.ErrNonStockedStock, "restock %q", name)
	}
	p.Quantity += quantity

	s.lg.Info("Restocked product",
		zap.String("product", name),
		zap.Int("added", quantity),
		zap.Int("quantity", p.Quantity),
	)
	return nil
}

// reservation is a validated demand for one distinct product.
type reservation struct {
	product  *product.Product
	quantity int
}

// PlaceOrder validates lines, prices them and commits the stock decrement as
// one unit. Lines naming the same product are combined before the stock
// check. On any error no stock is changed.
func (s *Store) PlaceOrder(ctx context.Context, lines []order.Line) (*order.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	receipt, removed, err := s.placeOrder(lines)
	if err != nil {
		s.metrics.recordRejected(ctx, err)
		s.lg.Debug("Order rejected", zap.Int("lines", len(lines)), zap.Error(err))
		return nil, err
	}

	s.metrics.recordPlaced(ctx, removed)
	s.lg.Info("Order placed",
		zap.String("order_id", receipt.ID),
		zap.Int("units", receipt.Units()),
		zap.Stringer("total", receipt.Total),
	)
	return receipt, nil
}

// placeOrder returns the receipt and the number of units taken from stock.
func (s *Store) placeOrder(lines []order.Line) (*order.Receipt, int64, error) {
	if len(lines) == 0 {
		return nil, 0, ErrEmptyOrder
	}

	reservations, err := s.validate(lines)
	if err != nil {
		return nil, 0, err
	}

	receipt, err := s.price(reservations)
	if err != nil {
		return nil, 0, err
	}

	// Commit. Nothing below can fail.
	var removed int64
	for _, r := range reservations {
		if r.product.Tracked() {
			r.product.Quantity -= r.quantity
			removed += int64(r.quantity)
		}
	}
	return receipt, removed, nil
}

// validate resolves every line and checks the running per-product demand
// against stock and per-order limits. The first failing line wins.
func (s *Store) validate(lines []order.Line) ([]*reservation, error) {
	reservations := make([]*reservation, 0, len(lines))
	byName := make(map[string]*reservation, len(lines))

	for _, line := range lines {
		p, ok := s.index[line.Product]
		if !ok {
			return nil, &ProductNotFoundError{Name: line.Product}
		}
		if line.Quantity <= 0 {
			return nil, &InvalidQuantityError{Name: line.Product, Quantity: line.Quantity}
		}

		r, ok := byName[p.Name]
		if !ok {
			r = &reservation{product: p}
			byName[p.Name] = r
			reservations = append(reservations, r)
		}

		// Compare against what remains; the running sum may overflow.
		if p.Tracked() && line.Quantity > p.Quantity-r.quantity {
			return nil, &InsufficientStockError{
				Name:      p.Name,
				Requested: addClamped(r.quantity, line.Quantity),
				Available: p.Quantity,
			}
		}
		if p.Kind == product.KindLimited && line.Quantity > p.Maximum-r.quantity {
			return nil, &LimitExceededError{
				Name:      p.Name,
				Requested: addClamped(r.quantity, line.Quantity),
				Maximum:   p.Maximum,
			}
		}
		if line.Quantity > math.MaxInt-r.quantity {
			return nil, &InvalidQuantityError{Name: line.Product, Quantity: line.Quantity}
		}
		r.quantity += line.Quantity
	}
	return reservations, nil
}

// addClamped returns a+b for non-negative operands, saturating at
// math.MaxInt.
func addClamped(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}

// price computes the receipt for validated reservations without touching
// stock.
func (s *Store) price(reservations []*reservation) (*order.Receipt, error) {
	receipt := &order.Receipt{
		ID:        s.newID(),
		Lines:     make([]order.ReceiptLine, 0, len(reservations)),
		Total:     decimal.Zero,
		Savings:   decimal.Zero,
		CreatedAt: s.now(),
	}

	for _, r := range reservations {
		p := r.product
		cost, err := p.Cost(r.quantity)
		if err != nil {
			return nil, errors.Wrapf(err, "price %q", p.Name)
		}
		subtotal := p.Price.Mul(decimal.NewFromInt(int64(r.quantity))).Round(2)

		line := order.ReceiptLine{
			Product:   p.Name,
			Quantity:  r.quantity,
			UnitPrice: p.Price,
			Subtotal:  subtotal,
			Price:     cost,
		}
		if p.Promotion != nil {
			line.Promotion = p.Promotion.Name()
		}
		receipt.Lines = append(receipt.Lines, line)
		receipt.Total = receipt.Total.Add(cost)
		receipt.Savings = receipt.Savings.Add(subtotal.Sub(cost))
	}
	return receipt, nil
}

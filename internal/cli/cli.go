// Package cli implements the interactive store menu.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/store-cli/internal/domain/order"
	"github.com/xenking/store-cli/internal/domain/product"
	"github.com/xenking/store-cli/internal/domain/store"
)

// Store is the subset of the ledger the menu drives.
type Store interface {
	ActiveProducts() []product.Product
	TotalQuantity() int
	PlaceOrder(ctx context.Context, lines []order.Line) (*order.Receipt, error)
}

var _ Store = (*store.Store)(nil)

// Config holds presentation settings for the Shell.
type Config struct {
	// Currency is printed in front of order totals.
	Currency string
}

// Shell runs the store menu over a line-oriented reader and writer.
type Shell struct {
	store    Store
	in       *bufio.Scanner
	out      io.Writer
	currency string
}

// New creates a Shell reading commands from in and writing to out.
func New(cfg Config, s Store, in io.Reader, out io.Writer) *Shell {
	currency := cfg.Currency
	if currency == "" {
		currency = "$"
	}
	return &Shell{
		store:    s,
		in:       bufio.NewScanner(in),
		out:      out,
		currency: currency,
	}
}

type command struct {
	title string
	run   func(ctx context.Context) error
}

// errQuit stops the menu loop without reporting an error.
var errQuit = errors.New("quit")

func (s *Shell) commands() []command {
	return []command{
		{title: "List all products in store", run: s.listProducts},
		{title: "Show total amount in store", run: s.totalQuantity},
		{title: "Make an order", run: s.makeOrder},
		{title: "Quit", run: func(context.Context) error { return errQuit }},
	}
}

// Run shows the menu until the user quits, input ends or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	commands := s.commands()
	for {
		s.printMenu(commands)

		choice, err := s.prompt(ctx, "Please choose a number: ")
		if err != nil {
			return ignoreEOF(err)
		}

		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(commands) {
			s.println("Error with your choice! Try again!")
			s.println()
			continue
		}

		if err := commands[n-1].run(ctx); err != nil {
			if errors.Is(err, errQuit) {
				s.println("Bye!")
				return nil
			}
			return ignoreEOF(err)
		}
		s.println()
	}
}

func (s *Shell) printMenu(commands []command) {
	s.println("\tStore Menu")
	s.println("\t----------")
	for i, c := range commands {
		s.printf("%d. %s\n", i+1, c.title)
	}
}

func (s *Shell) listProducts(context.Context) error {
	s.printProducts(s.store.ActiveProducts())
	return nil
}

func (s *Shell) printProducts(products []product.Product) {
	s.println("----------")
	for i, p := range products {
		s.printf("%d. %s\n", i+1, p)
	}
	s.println("----------")
}

func (s *Shell) totalQuantity(context.Context) error {
	s.printf("Total of %d items in store\n", s.store.TotalQuantity())
	return nil
}

func (s *Shell) makeOrder(ctx context.Context) error {
	products := s.store.ActiveProducts()
	if len(products) == 0 {
		s.println("There are no products available.")
		return nil
	}

	s.printProducts(products)
	s.println()
	s.println("When you want to finish order, enter empty text.")

	var lines []order.Line
	for {
		p, ok, err := s.askProduct(ctx, products)
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		quantity, ok, err := s.askQuantity(ctx)
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		lines = append(lines, order.Line{Product: p.Name, Quantity: quantity})
		s.println("Product added to list!")
		s.println()
	}

	if len(lines) == 0 {
		return nil
	}

	receipt, err := s.store.PlaceOrder(ctx, lines)
	if err != nil {
		s.printf("Error while making order! %s\n", orderErrorMessage(ctx, err))
		return nil
	}

	s.printf("Order cost: %s%s\n", s.currency, receipt.Total.StringFixed(2))
	if receipt.Savings.IsPositive() {
		s.printf("You saved: %s%s\n", s.currency, receipt.Savings.StringFixed(2))
	}
	return nil
}

// askProduct reads a 1-based product number. ok is false on empty input.
func (s *Shell) askProduct(ctx context.Context, products []product.Product) (product.Product, bool, error) {
	for {
		text, err := s.prompt(ctx, "Which product # do you want? ")
		if err != nil {
			return product.Product{}, false, err
		}
		if text == "" {
			return product.Product{}, false, nil
		}

		n, err := strconv.Atoi(text)
		switch {
		case err == nil && n <= 0:
			s.println("Only positive numbers are allowed")
		case err != nil || n > len(products):
			s.printf("Only numbers between 1-%d are allowed!\nPlease try again!\n", len(products))
		default:
			return products[n-1], true, nil
		}
	}
}

// askQuantity reads a positive quantity. ok is false on empty input.
func (s *Shell) askQuantity(ctx context.Context) (int, bool, error) {
	for {
		text, err := s.prompt(ctx, "What amount do you want? ")
		if err != nil {
			return 0, false, err
		}
		if text == "" {
			return 0, false, nil
		}

		n, err := strconv.Atoi(text)
		if err != nil || n <= 0 {
			s.println("Only positive numbers are allowed")
			continue
		}
		return n, true, nil
	}
}

// prompt writes message and returns the next trimmed input line. It returns
// io.EOF when input is exhausted.
func (s *Shell) prompt(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.printf("%s", message)

	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", errors.Wrap(err, "read input")
		}
		s.println()
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// orderErrorMessage converts a rejected order into text for the user.
func orderErrorMessage(ctx context.Context, err error) string {
	var (
		pnfErr *store.ProductNotFoundError
		iqErr  *store.InvalidQuantityError
		isErr  *store.InsufficientStockError
		leErr  *store.LimitExceededError
	)
	switch {
	case errors.As(err, &pnfErr):
		return fmt.Sprintf("Product %s is not in the store", pnfErr.Name)
	case errors.As(err, &iqErr) && iqErr.Quantity > 0:
		return fmt.Sprintf("Quantity of %s is too large", iqErr.Name)
	case errors.As(err, &iqErr):
		return fmt.Sprintf("Quantity of %s must be greater than 0", iqErr.Name)
	case errors.As(err, &isErr):
		return fmt.Sprintf("Quantity larger than what exists\nQuantity of %s: %d", isErr.Name, isErr.Available)
	case errors.As(err, &leErr):
		return fmt.Sprintf("Cannot buy more than %d %s's", leErr.Maximum, leErr.Name)
	default:
		zctx.From(ctx).Error("Order failed", zap.Error(err))
		return "internal error"
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Shell) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) println(args ...any) {
	_, _ = fmt.Fprintln(s.out, args...)
}

// Package catalog loads the products a store starts with.
package catalog

import (
	"os"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/xenking/store-cli/internal/domain/product"
	"github.com/xenking/store-cli/internal/domain/promotion"
)

// File is the on-disk catalog document.
type File struct {
	Products []Entry `yaml:"products" validate:"min=1,dive"`
}

// Entry describes one catalog product.
type Entry struct {
	Name      string          `yaml:"name" validate:"required"`
	Price     decimal.Decimal `yaml:"price"`
	Quantity  int             `yaml:"quantity,omitempty" validate:"gte=0"`
	Kind      product.Kind    `yaml:"kind,omitempty" validate:"omitempty,oneof=stocked non_stocked limited"`
	Maximum   int             `yaml:"maximum,omitempty" validate:"gte=0,required_if=Kind limited"`
	Promotion *PromotionEntry `yaml:"promotion,omitempty"`
}

// PromotionEntry describes the promotion attached to a catalog product.
type PromotionEntry struct {
	Type    promotion.Kind  `yaml:"type" validate:"required,oneof=none second_half_price third_one_free percentage_discount"`
	Name    string          `yaml:"name,omitempty"`
	Percent decimal.Decimal `yaml:"percent,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the demo catalog.
func Default() []Entry {
	return []Entry{
		{Name: "MacBook Air M2", Price: decimal.NewFromInt(1450), Quantity: 100},
		{Name: "Bose QuietComfort Earbuds", Price: decimal.NewFromInt(250), Quantity: 500},
		{
			Name: "Google Pixel 7", Price: decimal.NewFromInt(500), Quantity: 250,
			Promotion: &PromotionEntry{Type: promotion.KindSecondHalfPrice, Name: "Second Half price!"},
		},
		{
			Name: "Windows License", Price: decimal.NewFromInt(125), Kind: product.KindNonStocked,
			Promotion: &PromotionEntry{Type: promotion.KindThirdOneFree, Name: "Third One Free!"},
		},
		{
			Name: "Shipping", Price: decimal.NewFromInt(10), Quantity: 250, Kind: product.KindLimited, Maximum: 1,
			Promotion: &PromotionEntry{Type: promotion.KindPercentageDiscount, Name: "30% off!", Percent: decimal.NewFromInt(30)},
		},
	}
}

// Load reads and validates the YAML catalog at path.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog file")
	}
	entries, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return entries, nil
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) ([]Entry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	if err := validate.Struct(f); err != nil {
		return nil, errors.Wrap(err, "validate catalog")
	}
	return f.Products, nil
}

// Marshal encodes entries as a YAML catalog document readable by Parse.
func Marshal(entries []Entry) ([]byte, error) {
	data, err := yaml.Marshal(File{Products: entries})
	if err != nil {
		return nil, errors.Wrap(err, "encode catalog")
	}
	return data, nil
}

// Build converts entries into products, constructing their promotions.
func Build(entries []Entry) ([]product.Product, error) {
	products := make([]product.Product, 0, len(entries))
	for _, e := range entries {
		p := product.Product{
			Name:     e.Name,
			Price:    e.Price,
			Quantity: e.Quantity,
			Kind:     e.Kind,
			Maximum:  e.Maximum,
		}
		if e.Promotion != nil {
			promo, err := promotion.FromSpec(promotion.Spec{
				Kind:    e.Promotion.Type,
				Name:    e.Promotion.Name,
				Percent: e.Promotion.Percent,
			})
			if err != nil {
				return nil, errors.Wrapf(err, "promotion for %q", e.Name)
			}
			p.Promotion = promo
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

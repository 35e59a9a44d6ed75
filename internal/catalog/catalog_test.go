package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/store-cli/internal/domain/product"
	"github.com/xenking/store-cli/internal/domain/promotion"
)

const sampleCatalog = `
products:
  - name: Laptop
    price: 999.99
    quantity: 3
  - name: Phone
    price: "500"
    quantity: 10
    promotion:
      type: second_half_price
  - name: Gift Card
    price: 25
    kind: non_stocked
    promotion:
      type: percentage_discount
      name: Holiday
      percent: 12.5
  - name: Shipping
    price: 10
    quantity: 50
    kind: limited
    maximum: 1
`

func TestParse(t *testing.T) {
	entries, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, "Laptop", entries[0].Name)
	assert.True(t, decimal.RequireFromString("999.99").Equal(entries[0].Price))
	assert.Equal(t, 3, entries[0].Quantity)
	assert.Nil(t, entries[0].Promotion)

	require.NotNil(t, entries[1].Promotion)
	assert.Equal(t, promotion.KindSecondHalfPrice, entries[1].Promotion.Type)

	assert.Equal(t, product.KindNonStocked, entries[2].Kind)
	assert.True(t, decimal.RequireFromString("12.5").Equal(entries[2].Promotion.Percent))

	assert.Equal(t, product.KindLimited, entries[3].Kind)
	assert.Equal(t, 1, entries[3].Maximum)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "malformed yaml", doc: "products: [name: {"},
		{name: "no products", doc: "products: []"},
		{name: "missing name", doc: "products:\n  - price: 1\n    quantity: 1\n"},
		{name: "negative quantity", doc: "products:\n  - name: A\n    price: 1\n    quantity: -1\n"},
		{name: "unknown kind", doc: "products:\n  - name: A\n    price: 1\n    kind: bundle\n"},
		{name: "limited without maximum", doc: "products:\n  - name: A\n    price: 1\n    quantity: 1\n    kind: limited\n"},
		{name: "unknown promotion", doc: "products:\n  - name: A\n    price: 1\n    promotion:\n      type: bogo\n"},
		{name: "bad price", doc: "products:\n  - name: A\n    price: ten\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))

	entries, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, entries, 4)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read catalog file")
}

func TestBuild(t *testing.T) {
	entries, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	products, err := Build(entries)
	require.NoError(t, err)
	require.Len(t, products, 4)

	assert.Nil(t, products[0].Promotion)
	assert.Equal(t, "Second Half price!", products[1].Promotion.Name())
	assert.Equal(t, "Holiday", products[2].Promotion.Name())

	cost, err := products[2].Cost(2)
	require.NoError(t, err)
	// 25 * 2 * 0.875
	assert.True(t, decimal.RequireFromString("43.75").Equal(cost))
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build([]Entry{{
		Name: "A", Price: decimal.NewFromInt(1),
		Promotion: &PromotionEntry{Type: promotion.KindPercentageDiscount, Percent: decimal.NewFromInt(120)},
	}})
	require.ErrorIs(t, err, promotion.ErrInvalidPercent)

	_, err = Build([]Entry{{Name: "A", Price: decimal.NewFromInt(-1)}})
	require.ErrorIs(t, err, product.ErrNegativePrice)
}

func TestDefault(t *testing.T) {
	products, err := Build(Default())
	require.NoError(t, err)
	require.Len(t, products, 5)

	assert.Equal(t, "MacBook Air M2", products[0].Name)
	assert.Equal(t, "Google Pixel 7, Price: 500, Quantity: 250, Promotion: Second Half price!", products[2].String())
	assert.Equal(t, "Windows License, Price: 125, Promotion: Third One Free!", products[3].String())
	assert.Equal(t, "Shipping, Price: 10, Quantity: 250, Maximum: 1, Promotion: 30% off!", products[4].String())
}

func TestMarshal_DefaultParsesBack(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: MacBook Air M2")
	assert.NotContains(t, string(data), "percent: \"0\"")

	entries, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, entries, 5)

	assert.True(t, decimal.NewFromInt(1450).Equal(entries[0].Price))
	assert.Equal(t, product.KindLimited, entries[4].Kind)
	assert.Equal(t, 1, entries[4].Maximum)
	require.NotNil(t, entries[4].Promotion)
	assert.True(t, decimal.NewFromInt(30).Equal(entries[4].Promotion.Percent))
}

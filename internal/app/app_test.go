package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cristalhq/aconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap/zaptest"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runApp(t *testing.T, cfg *Config, input ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(input, "\n") + "\n")
	err := run(context.Background(), zaptest.NewLogger(t), noop.NewMeterProvider(), cfg, in, &out)
	return out.String(), err
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(aconfig.Config{SkipFlags: true, Files: []string{}})
	require.NoError(t, err)
	assert.Equal(t, "", cfg.CatalogFile)
	assert.Equal(t, "$", cfg.Currency)
}

func TestLoadConfig_EnvAndFile(t *testing.T) {
	path := writeFile(t, "store.yaml", "catalog_file: /tmp/catalog.yaml\n")
	t.Setenv("STORE_CURRENCY", "€")

	cfg, err := loadConfig(aconfig.Config{SkipFlags: true, Files: []string{path}})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/catalog.yaml", cfg.CatalogFile)
	assert.Equal(t, "€", cfg.Currency)
}

func TestRun_DefaultCatalog(t *testing.T) {
	out, err := runApp(t, &Config{Currency: "$"},
		"1",
		"3", "4", "3", "", // three Windows licenses, third one free
		"2",
		"4",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "1. MacBook Air M2, Price: 1450, Quantity: 100")
	assert.Contains(t, out, "5. Shipping, Price: 10, Quantity: 250, Maximum: 1, Promotion: 30% off!")
	assert.Contains(t, out, "Order cost: $250.00")
	assert.Contains(t, out, "Total of 1100 items in store")
}

func TestRun_CatalogFile(t *testing.T) {
	path := writeFile(t, "catalog.yaml", `
products:
  - name: Widget
    price: 10
    quantity: 10
    promotion:
      type: percentage_discount
      percent: 20
`)

	out, err := runApp(t, &Config{CatalogFile: path, Currency: "$"}, "3", "1", "5", "", "2", "4")
	require.NoError(t, err)

	assert.Contains(t, out, "1. Widget, Price: 10, Quantity: 10, Promotion: 20% off!")
	assert.Contains(t, out, "Order cost: $40.00")
	assert.Contains(t, out, "Total of 5 items in store")
}

func TestRun_BadCatalog(t *testing.T) {
	_, err := runApp(t, &Config{CatalogFile: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load catalog")

	path := writeFile(t, "catalog.yaml", `
products:
  - name: Widget
    price: 10
    quantity: 1
  - name: Widget
    price: 12
    quantity: 1
`)
	_, err = runApp(t, &Config{CatalogFile: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create store")
}

package app

import (
	"context"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/xenking/store-cli/internal/catalog"
	"github.com/xenking/store-cli/internal/cli"
	"github.com/xenking/store-cli/internal/domain/store"
)

// Run loads the catalog, builds the store and runs the interactive menu on
// the process's standard streams. It is the single wiring point for the
// application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config, in io.Reader, out io.Writer) error {
	return run(ctx, lg, m.MeterProvider(), cfg, in, out)
}

func run(ctx context.Context, lg *zap.Logger, mp metric.MeterProvider, cfg *Config, in io.Reader, out io.Writer) error {
	lg.Info("Initializing", zap.String("catalog", cfg.CatalogFile))

	entries := catalog.Default()
	if cfg.CatalogFile != "" {
		loaded, err := catalog.Load(cfg.CatalogFile)
		if err != nil {
			return errors.Wrap(err, "load catalog")
		}
		entries = loaded
	}

	products, err := catalog.Build(entries)
	if err != nil {
		return errors.Wrap(err, "build catalog")
	}

	s, err := store.New(products,
		store.WithLogger(lg.Named("store")),
		store.WithMeterProvider(mp),
	)
	if err != nil {
		return errors.Wrap(err, "create store")
	}
	lg.Info("Catalog loaded",
		zap.Int("products", len(products)),
		zap.Int("total_quantity", s.TotalQuantity()),
	)

	shell := cli.New(cli.Config{Currency: cfg.Currency}, s, in, out)
	if err := shell.Run(zctx.Base(ctx, lg)); err != nil {
		return errors.Wrap(err, "run shell")
	}
	return nil
}

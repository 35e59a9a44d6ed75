package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/go-faster/errors"

	"github.com/xenking/store-cli/internal/catalog"
)

func main() {
	var (
		outFile string
		force   bool
	)

	flag.StringVar(&outFile, "out", "catalog.yaml", "path of the catalog file to write")
	flag.BoolVar(&force, "force", false, "overwrite an existing catalog file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, outFile, force); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully", slog.String("path", outFile))
}

func run(ctx context.Context, outFile string, force bool) error {
	if !force {
		if _, err := os.Stat(outFile); err == nil {
			return errors.Errorf("%s already exists, pass --force to overwrite", outFile)
		}
	}

	entries := catalog.Default()

	// Refuse to write a catalog the store would not accept.
	if _, err := catalog.Build(entries); err != nil {
		return errors.Wrap(err, "build default catalog")
	}

	data, err := catalog.Marshal(entries)
	if err != nil {
		return errors.Wrap(err, "marshal catalog")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(outFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}
	if err := os.WriteFile(outFile, data, 0o644); err != nil {
		return errors.Wrap(err, "write catalog file")
	}

	for _, e := range entries {
		slog.Info("seeded product", slog.String("name", e.Name), slog.Int("quantity", e.Quantity))
	}
	return nil
}

package store

import (
	"context"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/xenking/store-cli/internal/domain/store"

// metrics holds the order counters recorded by the store.
type metrics struct {
	placed    metric.Int64Counter
	rejected  metric.Int64Counter
	unitsSold metric.Int64Counter
}

func newMetrics(mp metric.MeterProvider) (*metrics, error) {
	meter := mp.Meter(meterName)

	placed, err := meter.Int64Counter("store.orders.placed",
		metric.WithDescription("Orders committed"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "orders placed counter")
	}
	rejected, err := meter.Int64Counter("store.orders.rejected",
		metric.WithDescription("Orders rejected during validation"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "orders rejected counter")
	}
	unitsSold, err := meter.Int64Counter("store.units.sold",
		metric.WithDescription("Units removed from stock by committed orders"),
		metric.WithUnit("{unit}"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "units sold counter")
	}

	return &metrics{
		placed:    placed,
		rejected:  rejected,
		unitsSold: unitsSold,
	}, nil
}

func (m *metrics) recordPlaced(ctx context.Context, removed int64) {
	m.placed.Add(ctx, 1)
	if removed > 0 {
		m.unitsSold.Add(ctx, removed)
	}
}

func (m *metrics) recordRejected(ctx context.Context, err error) {
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason(err))))
}

package store

import (
	"context"
	"errors"
	"time"

	perrors "github.com/abgdnv/inventory/internal/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for store operations.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	rows       prometheus.Gauge
}

// NewMetrics creates the store collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Store operations by operation and result.",
		}, []string{"op", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "inventory",
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Store operation latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"op"}),
		rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "inventory",
			Subsystem: "store",
			Name:      "rows",
			Help:      "Row count returned by the last successful list.",
		}),
	}
	reg.MustRegister(m.operations, m.duration, m.rows)
	return m
}

// instrumented decorates a ProductStore with Prometheus metrics.
type instrumented struct {
	next    ProductStore
	metrics *Metrics
}

// Instrument wraps s so that every operation is counted and timed.
func Instrument(s ProductStore, m *Metrics) ProductStore {
	return &instrumented{next: s, metrics: m}
}

func (i *instrumented) observe(op string, start time.Time, err error) {
	i.metrics.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	i.metrics.operations.WithLabelValues(op, result(err)).Inc()
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, perrors.ErrProductNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func (i *instrumented) Initialize(ctx context.Context) error {
	start := time.Now()
	err := i.next.Initialize(ctx)
	i.observe("initialize", start, err)
	return err
}

func (i *instrumented) ListAll(ctx context.Context) ([]Record, error) {
	start := time.Now()
	records, err := i.next.ListAll(ctx)
	i.observe("list", start, err)
	if err == nil {
		i.metrics.rows.Set(float64(len(records)))
	}
	return records, err
}

func (i *instrumented) Insert(ctx context.Context, name string, price float64, quantity int64) error {
	start := time.Now()
	err := i.next.Insert(ctx, name, price, quantity)
	i.observe("insert", start, err)
	return err
}

func (i *instrumented) Update(ctx context.Context, id int64, name string, price float64, quantity int64) error {
	start := time.Now()
	err := i.next.Update(ctx, id, name, price, quantity)
	i.observe("update", start, err)
	return err
}

func (i *instrumented) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	err := i.next.Delete(ctx, id)
	i.observe("delete", start, err)
	return err
}

func (i *instrumented) Close() error {
	return i.next.Close()
}

package sql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// metrics holds the metric instruments for database operations.
type metrics struct {
	// Command latency histogram
	queryDuration metric.Float64Histogram

	// Connection open/close latency histogram
	connectionDuration metric.Float64Histogram

	// Connection pool gauges (set after pool metrics are registered)
	openConnections metric.Int64ObservableGauge
	idleConnections metric.Int64ObservableGauge
	maxConnections  metric.Int64ObservableGauge
	usedConnections metric.Int64ObservableGauge
	waitCount       metric.Int64ObservableCounter
	waitDuration    metric.Float64ObservableCounter
}

// durationBuckets are the recommended histogram buckets for database operations.
var durationBuckets = []float64{
	0.001, 0.005, 0.01, 0.025, 0.05, 0.075, 0.1, 0.25, 0.5, 0.75, 1, 2.5, 5, 10,
}

// newMetrics creates and registers metric instruments.
func newMetrics(meter metric.Meter) (*metrics, error) {
	m := &metrics{}
	var err error

	m.queryDuration, err = meter.Float64Histogram(
		"db.client.operation.duration",
		metric.WithDescription("Duration of database client operations in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, err
	}

	m.connectionDuration, err = meter.Float64Histogram(
		"db.client.connection.duration",
		metric.WithDescription("Duration of opening and closing database connections in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// MetricsHook implements Hooks by recording OpenTelemetry duration
// histograms for commands and connection open/close.
type MetricsHook[T any] struct {
	metrics *metrics
}

// Compile-time interface check.
var _ Hooks[any] = (*MetricsHook[any])(nil)

// MetricsOption configures a MetricsHook.
type MetricsOption func(*metricsConfig)

type metricsConfig struct {
	// MeterProvider is the meter provider to use.
	// If not set, uses the global provider via otel.GetMeterProvider().
	// When no global provider is configured, a no-op meter is used (safe, but no metrics).
	MeterProvider metric.MeterProvider
}

// WithMeterProvider sets a custom meter provider.
// If not called, the global provider from otel.GetMeterProvider() is used.
//
// Example:
//
//	mp := sdkmetric.NewMeterProvider(...)
//	hook, _ := sqllog.NewMetricsHook[string](sqllog.WithMeterProvider(mp))
func WithMeterProvider(mp metric.MeterProvider) MetricsOption {
	return func(cfg *metricsConfig) {
		cfg.MeterProvider = mp
	}
}

// NewMetricsHook creates a metrics hook and registers its instruments.
func NewMetricsHook[T any](opts ...MetricsOption) (*MetricsHook[T], error) {
	cfg := &metricsConfig{
		MeterProvider: otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	m, err := newMetrics(cfg.MeterProvider.Meter(scope))
	if err != nil {
		return nil, fmt.Errorf("failed to create metric instruments: %w", err)
	}
	return &MetricsHook[T]{metrics: m}, nil
}

// ConnectionOpened implements Hooks.
func (h *MetricsHook[T]) ConnectionOpened(
	ctx context.Context,
	conn *Conn[T],
	_ T,
	elapsed time.Duration,
	err error,
) {
	h.metrics.recordConnectionDuration(ctx, elapsed, "open", conn.Info().attributes(), err)
}

// ConnectionClosed implements Hooks.
func (h *MetricsHook[T]) ConnectionClosed(
	ctx context.Context,
	conn *Conn[T],
	_ T,
	elapsed time.Duration,
	err error,
) {
	h.metrics.recordConnectionDuration(ctx, elapsed, "close", conn.Info().attributes(), err)
}

// CommandExecuted implements Hooks.
func (h *MetricsHook[T]) CommandExecuted(
	ctx context.Context,
	cmd *Command[T],
	_ T,
	elapsed time.Duration,
	err error,
) {
	h.metrics.recordQueryDuration(
		ctx,
		elapsed,
		extractOperation(cmd.Text()),
		cmd.Conn().Info().attributes(),
		err,
	)
}

// registerPoolMetrics registers connection pool metrics with callbacks.
// These metrics are collected lazily when scraped.
//
// Why is this separate from query metrics?
// - Query metrics are recorded by MetricsHook as each operation completes
// - Pool metrics require *sql.DB.Stats() which is only available AFTER sql.Open() returns
// - At the driver level, we only see individual connections, not the connection pool
func (m *metrics) registerPoolMetrics(
	meter metric.Meter,
	db *sql.DB,
	attrs []attribute.KeyValue,
) error {
	var err error

	// Open connections (total connections in pool)
	m.openConnections, err = meter.Int64ObservableGauge(
		"db.client.connections.open",
		metric.WithDescription("Number of open connections in the pool"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return err
	}

	// Idle connections (connections not in use)
	m.idleConnections, err = meter.Int64ObservableGauge(
		"db.client.connections.idle",
		metric.WithDescription("Number of idle connections in the pool"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return err
	}

	// Max connections (connection pool limit)
	m.maxConnections, err = meter.Int64ObservableGauge(
		"db.client.connections.max",
		metric.WithDescription("Maximum number of connections allowed in the pool"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return err
	}

	// Used connections (connections currently in use)
	m.usedConnections, err = meter.Int64ObservableGauge(
		"db.client.connections.used",
		metric.WithDescription("Number of connections currently in use"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return err
	}

	// Wait count (total number of times waited for a connection)
	m.waitCount, err = meter.Int64ObservableCounter(
		"db.client.connections.wait_count",
		metric.WithDescription("Total number of times waited for a connection"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return err
	}

	// Wait duration (total time waited for connections)
	m.waitDuration, err = meter.Float64ObservableCounter(
		"db.client.connections.wait_duration",
		metric.WithDescription("Total time waited for connections in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	// Register callback to collect pool stats
	_, err = meter.RegisterCallback(
		func(_ context.Context, o metric.Observer) error {
			stats := db.Stats()

			o.ObserveInt64(m.openConnections, int64(stats.OpenConnections),
				metric.WithAttributes(attrs...))
			o.ObserveInt64(m.idleConnections, int64(stats.Idle),
				metric.WithAttributes(attrs...))
			o.ObserveInt64(m.maxConnections, int64(stats.MaxOpenConnections),
				metric.WithAttributes(attrs...))
			o.ObserveInt64(m.usedConnections, int64(stats.InUse),
				metric.WithAttributes(attrs...))
			o.ObserveInt64(m.waitCount, stats.WaitCount,
				metric.WithAttributes(attrs...))
			o.ObserveFloat64(m.waitDuration, stats.WaitDuration.Seconds(),
				metric.WithAttributes(attrs...))

			return nil
		},
		m.openConnections,
		m.idleConnections,
		m.maxConnections,
		m.usedConnections,
		m.waitCount,
		m.waitDuration,
	)

	return err
}

// recordQueryDuration records the duration of a query operation.
func (m *metrics) recordQueryDuration(
	ctx context.Context,
	duration time.Duration,
	operation string,
	attrs []attribute.KeyValue,
	err error,
) {
	if m == nil || m.queryDuration == nil {
		return
	}

	// Add operation and status attributes
	allAttrs := make([]attribute.KeyValue, 0, len(attrs)+2)
	allAttrs = append(allAttrs, attrs...)

	if operation != "" {
		allAttrs = append(allAttrs, attribute.String("db.operation", operation))
	}

	allAttrs = append(allAttrs, attribute.String("status", statusOf(err)))

	m.queryDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(allAttrs...))
}

// recordConnectionDuration records the duration of opening or closing a connection.
func (m *metrics) recordConnectionDuration(
	ctx context.Context,
	duration time.Duration,
	event string,
	attrs []attribute.KeyValue,
	err error,
) {
	if m == nil || m.connectionDuration == nil {
		return
	}

	allAttrs := make([]attribute.KeyValue, 0, len(attrs)+2)
	allAttrs = append(allAttrs, attrs...)
	allAttrs = append(allAttrs,
		attribute.String("db.connection.event", event),
		attribute.String("status", statusOf(err)),
	)

	m.connectionDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(allAttrs...))
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordPoolMetrics registers connection pool metrics for a database.
//
// When db was opened through this package, the db.system, db.name and
// db.instance attributes are detected from its driver. Additional
// attributes given here are appended to them.
//
// Example:
//
//	db, _ := sqllog.Open("postgres", dsn, hook, nil,
//	    sqllog.WithDBSystem("postgresql"),
//	    sqllog.WithDBName("mydb"),
//	)
//
//	// Register pool metrics (attributes are auto-detected!)
//	err := sqllog.RecordPoolMetrics(db, otel.GetMeterProvider().Meter("myapp"))
func RecordPoolMetrics(db *sql.DB, meter metric.Meter, attrs ...attribute.KeyValue) error {
	m := &metrics{}

	if drv, ok := db.Driver().(attributer); ok {
		attrs = append(drv.attributes(), attrs...)
	}

	return m.registerPoolMetrics(meter, db, attrs)
}

// attributer is implemented by every Driver[T], whatever T is.
type attributer interface {
	attributes() []attribute.KeyValue
}

func (d *Driver[T]) attributes() []attribute.KeyValue {
	return ConnectionInfo{
		DBSystem:     d.cfg.DBSystem,
		DBName:       d.cfg.DBName,
		InstanceName: d.cfg.InstanceName,
	}.attributes()
}

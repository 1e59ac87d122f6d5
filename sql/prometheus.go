package sql

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHook implements Hooks with native Prometheus collectors:
//
//   - sql_command_duration_seconds{db_system, db_name, db_instance, operation, status}
//   - sql_connection_duration_seconds{db_system, db_name, db_instance, event, status}
//   - sql_connection_events_total{db_system, db_name, db_instance, event, status}
//
// Use it when the service exposes a Prometheus registry directly instead of
// going through OpenTelemetry (see MetricsHook).
type PrometheusHook[T any] struct {
	commandDuration    *prometheus.HistogramVec
	connectionDuration *prometheus.HistogramVec
	connectionEvents   *prometheus.CounterVec
}

// Compile-time interface check.
var _ Hooks[any] = (*PrometheusHook[any])(nil)

// PrometheusOption configures a PrometheusHook.
type PrometheusOption func(*prometheusConfig)

type prometheusConfig struct {
	// Registerer receives the collectors. Default: prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer

	// Namespace is prepended to every metric name.
	Namespace string

	// Buckets are the histogram buckets in seconds.
	Buckets []float64
}

// WithRegisterer sets the registerer the collectors are registered with.
func WithRegisterer(r prometheus.Registerer) PrometheusOption {
	return func(cfg *prometheusConfig) {
		cfg.Registerer = r
	}
}

// WithNamespace prefixes every metric name, e.g. "myapp" gives
// myapp_sql_command_duration_seconds.
func WithNamespace(ns string) PrometheusOption {
	return func(cfg *prometheusConfig) {
		cfg.Namespace = ns
	}
}

// WithBuckets sets the histogram buckets in seconds.
func WithBuckets(buckets ...float64) PrometheusOption {
	return func(cfg *prometheusConfig) {
		cfg.Buckets = buckets
	}
}

// NewPrometheusHook creates the collectors and registers them.
// Collectors already registered by an identical hook are reused.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	hook, err := sqllog.NewPrometheusHook[string](sqllog.WithRegisterer(reg))
func NewPrometheusHook[T any](opts ...PrometheusOption) (*PrometheusHook[T], error) {
	cfg := &prometheusConfig{
		Registerer: prometheus.DefaultRegisterer,
		Buckets:    durationBuckets,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	baseLabels := []string{"db_system", "db_name", "db_instance"}

	commandDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Subsystem: "sql",
		Name:      "command_duration_seconds",
		Help:      "Duration of SQL command executions in seconds.",
		Buckets:   cfg.Buckets,
	}, append(baseLabels, "operation", "status"))

	connectionDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Subsystem: "sql",
		Name:      "connection_duration_seconds",
		Help:      "Duration of opening and closing SQL connections in seconds.",
		Buckets:   cfg.Buckets,
	}, append(baseLabels, "event", "status"))

	connectionEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: "sql",
		Name:      "connection_events_total",
		Help:      "Number of SQL connection open and close events.",
	}, append(baseLabels, "event", "status"))

	h := &PrometheusHook[T]{}
	var err error
	if h.commandDuration, err = register(cfg.Registerer, commandDuration); err != nil {
		return nil, err
	}
	if h.connectionDuration, err = register(cfg.Registerer, connectionDuration); err != nil {
		return nil, err
	}
	if h.connectionEvents, err = register(cfg.Registerer, connectionEvents); err != nil {
		return nil, err
	}
	return h, nil
}

// register registers c, returning the existing collector if an identical
// one is already registered.
func register[C prometheus.Collector](r prometheus.Registerer, c C) (C, error) {
	if err := r.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ConnectionOpened implements Hooks.
func (h *PrometheusHook[T]) ConnectionOpened(
	_ context.Context,
	conn *Conn[T],
	_ T,
	elapsed time.Duration,
	err error,
) {
	h.observeConnection(conn.Info(), "open", elapsed, err)
}

// ConnectionClosed implements Hooks.
func (h *PrometheusHook[T]) ConnectionClosed(
	_ context.Context,
	conn *Conn[T],
	_ T,
	elapsed time.Duration,
	err error,
) {
	h.observeConnection(conn.Info(), "close", elapsed, err)
}

// CommandExecuted implements Hooks.
func (h *PrometheusHook[T]) CommandExecuted(
	_ context.Context,
	cmd *Command[T],
	_ T,
	elapsed time.Duration,
	err error,
) {
	info := cmd.Conn().Info()
	h.commandDuration.
		WithLabelValues(info.DBSystem, info.DBName, info.InstanceName, spanName(cmd.Text()), statusOf(err)).
		Observe(elapsed.Seconds())
}

func (h *PrometheusHook[T]) observeConnection(info ConnectionInfo, event string, elapsed time.Duration, err error) {
	labels := []string{info.DBSystem, info.DBName, info.InstanceName, event, statusOf(err)}
	h.connectionDuration.WithLabelValues(labels...).Observe(elapsed.Seconds())
	h.connectionEvents.WithLabelValues(labels...).Inc()
}

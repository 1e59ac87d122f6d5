package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/kroma-labs/sqllog-go/cmd/sqllog/internal/diagnostics"
	"github.com/kroma-labs/sqllog-go/cmd/sqllog/internal/telemetry"
	sqllog "github.com/kroma-labs/sqllog-go/sql"
)

const shutdownTimeout = 5 * time.Second

// defaultLoggingConfig is used without --config. SQLLOG_* variables still
// override it.
const defaultLoggingConfig = "connection: summary\n"

// options are the resolved command line flags.
type options struct {
	Driver       string
	DSN          string
	ConfigPath   string
	Query        string
	Args         []string
	Repeat       int
	Concurrency  int
	Rate         float64
	Sensitive    bool
	OTLPEndpoint string
	MetricsAddr  string
}

// summary counts the outcome of a run.
type summary struct {
	Executions int64
	Failures   int64
	Rows       int64
}

func run(ctx context.Context, opts options, logger zerolog.Logger) error {
	if opts.Repeat < 1 {
		return fmt.Errorf("invalid repeat value %d: must be at least 1", opts.Repeat)
	}
	if opts.Concurrency < 1 {
		return fmt.Errorf("invalid concurrency value %d: must be at least 1", opts.Concurrency)
	}
	if opts.Rate < 0 {
		return fmt.Errorf("invalid rate value %g: must not be negative", opts.Rate)
	}

	provider, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		OTLPEndpoint:   opts.OTLPEndpoint,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("telemetry shutdown failed")
		}
	}()

	hooks, err := buildHooks(logger, opts, provider)
	if err != nil {
		return err
	}

	db, err := sqllog.Open(opts.Driver, opts.DSN, hooks, connectionID,
		sqllog.WithDBSystem("postgresql"),
		sqllog.WithInstanceName(serviceName),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn().Err(err).Msg("closing database failed")
		}
	}()
	db.SetMaxOpenConns(opts.Concurrency)
	db.SetMaxIdleConns(opts.Concurrency)

	if err := sqllog.RecordPoolMetrics(db, provider.MeterProvider().Meter(serviceName)); err != nil {
		return fmt.Errorf("failed to record pool metrics: %w", err)
	}

	if opts.MetricsAddr != "" {
		health := diagnostics.NewHealth(serviceName, Version)
		health.AddReadinessCheck("database", db.PingContext)

		srv, err := diagnostics.Start(opts.MetricsAddr,
			diagnostics.NewRouter(logger, provider.Handler(), health), logger)
		if err != nil {
			return fmt.Errorf("failed to start diagnostics server: %w", err)
		}
		defer srv.Shutdown()
	}

	start := time.Now()
	s, err := execute(ctx, db, opts)
	logger.Info().
		Int64("executions", s.Executions).
		Int64("failures", s.Failures).
		Int64("rows", s.Rows).
		Dur("duration", time.Since(start)).
		Msg("run complete")
	if err != nil {
		return err
	}
	if s.Failures > 0 {
		return fmt.Errorf("%d of %d executions failed", s.Failures, s.Executions)
	}
	return nil
}

// buildHooks composes the logging, tracing, metrics and Prometheus hooks.
func buildHooks(logger zerolog.Logger, opts options, provider *telemetry.Provider) (sqllog.Hooks[string], error) {
	var (
		loggingCfg sqllog.LoggingConfig
		err        error
	)
	if opts.ConfigPath != "" {
		loggingCfg, err = sqllog.LoadLoggingConfig(opts.ConfigPath)
	} else {
		loggingCfg, err = sqllog.ParseLoggingConfig([]byte(defaultLoggingConfig))
	}
	if err != nil {
		return nil, err
	}

	loggingOpts := []sqllog.LoggingOption{sqllog.WithLoggingConfig(loggingCfg)}
	if opts.Sensitive {
		loggingOpts = append(loggingOpts, sqllog.WithSensitiveDataLogging())
	}
	logging, err := sqllog.NewLoggingHook[string](logger, loggingOpts...)
	if err != nil {
		return nil, err
	}

	metrics, err := sqllog.NewMetricsHook[string](sqllog.WithMeterProvider(provider.MeterProvider()))
	if err != nil {
		return nil, err
	}

	prom, err := sqllog.NewPrometheusHook[string](sqllog.WithRegisterer(provider.Registerer()))
	if err != nil {
		return nil, fmt.Errorf("failed to register prometheus collectors: %w", err)
	}

	tracing := sqllog.NewTracingHook[string](
		sqllog.WithTracerProvider(provider.TracerProvider()),
		sqllog.WithQuerySanitizer(sqllog.DefaultQuerySanitizer),
	)

	return sqllog.ComposeHooks[string](logging, tracing, metrics, prom), nil
}

// connectionID gives every pooled connection its own correlation id.
func connectionID(context.Context) string {
	return uuid.NewString()
}

// execute runs the statement opts.Repeat times with at most
// opts.Concurrency executions in flight, started no faster than opts.Rate
// per second when it is set. Statement failures are counted, not returned;
// only cancellation stops the run early.
func execute(ctx context.Context, db *sql.DB, opts options) (summary, error) {
	args := make([]any, len(opts.Args))
	for i, a := range opts.Args {
		args[i] = a
	}
	returnsRows := isQuery(opts.Query)

	var executions, failures, rows atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	var limiter *rate.Limiter
	if opts.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), 1)
	}

	var waitErr error
	for range opts.Repeat {
		if ctx.Err() != nil {
			break
		}
		if limiter != nil {
			if waitErr = limiter.Wait(ctx); waitErr != nil {
				break
			}
		}
		g.Go(func() error {
			n, err := executeOnce(ctx, db, opts.Query, returnsRows, args)
			executions.Add(1)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				failures.Add(1)
				return nil
			}
			rows.Add(n)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = waitErr
	}
	return summary{
		Executions: executions.Load(),
		Failures:   failures.Load(),
		Rows:       rows.Load(),
	}, err
}

// executeOnce runs one execution and returns the number of rows read or
// affected.
func executeOnce(ctx context.Context, db *sql.DB, query string, returnsRows bool, args []any) (int64, error) {
	if !returnsRows {
		res, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}

	rs, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	defer rs.Close()

	var n int64
	for rs.Next() {
		n++
	}
	return n, rs.Err()
}

// isQuery reports whether the statement returns rows, judged by its first
// keyword.
func isQuery(query string) bool {
	fields := strings.Fields(strings.TrimLeft(strings.TrimSpace(query), "("))
	if len(fields) == 0 {
		return false
	}
	switch strings.ToUpper(fields[0]) {
	case "SELECT", "WITH", "SHOW", "EXPLAIN", "VALUES", "TABLE":
		return true
	}
	return false
}

package sqlx

import (
	"context"
	"database/sql/driver"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	sqllog "github.com/kroma-labs/sqllog-go/sql"
)

// Open opens an instrumented connection pool and wraps it with sqlx.
// Every connection and command of the pool, including the ones issued by
// Get, Select and the Named* helpers, is reported to hooks.
//
// driverName also selects the sqlx bind variable style, so pass the name
// the driver is registered under ("postgres", "pgx", "mysql", ...).
//
// Example:
//
//	db, err := sqllogx.Open("postgres", dsn, hook, sqllog.StaticValue("orders"),
//	    sqllogx.WithDBSystem("postgresql"),
//	    sqllogx.WithDBName("mydb"),
//	)
func Open[T any](
	driverName, dsn string,
	hooks sqllog.Hooks[T],
	value sqllog.ValueFunc[T],
	opts ...Option,
) (*sqlx.DB, error) {
	db, err := sqllog.Open(driverName, dsn, hooks, value, opts...)
	if err != nil {
		return nil, err
	}
	return sqlx.NewDb(db, driverName), nil
}

// Connect opens an instrumented pool and verifies it with a ping.
// The pool is closed again if the ping fails.
//
// Example:
//
//	db, err := sqllogx.Connect(ctx, "postgres", dsn, hook, nil,
//	    sqllogx.WithDBSystem("postgresql"),
//	)
func Connect[T any](
	ctx context.Context,
	driverName, dsn string,
	hooks sqllog.Hooks[T],
	value sqllog.ValueFunc[T],
	opts ...Option,
) (*sqlx.DB, error) {
	db, err := Open(driverName, dsn, hooks, value, opts...)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// NewDB builds an instrumented pool on an existing connector and wraps it
// with sqlx. driverName only selects the bind variable style.
//
// Example:
//
//	connector, _ := pq.NewConnector(dsn)
//	db := sqllogx.NewDB(connector, "postgres", hook, nil)
func NewDB[T any](
	connector driver.Connector,
	driverName string,
	hooks sqllog.Hooks[T],
	value sqllog.ValueFunc[T],
	opts ...Option,
) *sqlx.DB {
	return sqlx.NewDb(sqllog.OpenDB(connector, hooks, value, opts...), driverName)
}

// MustConnect is like Connect but panics on error.
func MustConnect[T any](
	ctx context.Context,
	driverName, dsn string,
	hooks sqllog.Hooks[T],
	value sqllog.ValueFunc[T],
	opts ...Option,
) *sqlx.DB {
	db, err := Connect(ctx, driverName, dsn, hooks, value, opts...)
	if err != nil {
		panic(err)
	}
	return db
}

// MustOpen is like Open but panics on error.
func MustOpen[T any](
	driverName, dsn string,
	hooks sqllog.Hooks[T],
	value sqllog.ValueFunc[T],
	opts ...Option,
) *sqlx.DB {
	db, err := Open(driverName, dsn, hooks, value, opts...)
	if err != nil {
		panic(err)
	}
	return db
}

// RecordPoolMetrics registers the connection pool gauges of db.
// See sqllog.RecordPoolMetrics.
func RecordPoolMetrics(db *sqlx.DB, meter metric.Meter, attrs ...attribute.KeyValue) error {
	return sqllog.RecordPoolMetrics(db.DB, meter, attrs...)
}

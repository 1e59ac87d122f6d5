// Package sql provides an instrumented database/sql driver wrapper that
// times connection lifecycle events and command executions and reports
// them to pluggable hooks.
//
// # Features
//
//   - One hook call per connection open, connection close and command
//     execution, including when the operation fails or panics
//   - A caller-supplied value (request id, tenant, ...) attached to every
//     connection and handed to every hook call
//   - Parameter capture with optional masking of values
//   - Ready-made hooks: zerolog logging, OpenTelemetry tracing and metrics,
//     Prometheus collectors
//   - Full compatibility with database/sql interface
//
// # Quick Start
//
//	import sqllog "github.com/kroma-labs/sqllog-go/sql"
//
//	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
//	hook, err := sqllog.NewLoggingHook[string](logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	db, err := sqllog.Open[string]("postgres", dsn, hook, sqllog.StaticValue("billing"),
//	    sqllog.WithDBSystem("postgresql"),
//	    sqllog.WithDBName("myapp"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	// Use like standard *sql.DB
//	rows, err := db.QueryContext(ctx, "SELECT * FROM users WHERE id = $1", 42)
//
// # Connection values
//
// The value attached to a connection is produced by a ValueFunc from the
// context of the call that made the pool open the connection:
//
//	value := func(ctx context.Context) string {
//	    return requestIDFromContext(ctx)
//	}
//	db, _ := sqllog.Open[string]("postgres", dsn, hook, value)
//
// # Hooks
//
// Implement Hooks, or embed NoopHooks and override what you need.
// Combine several with ComposeHooks:
//
//	hooks := sqllog.ComposeHooks[string](
//	    loggingHook,
//	    sqllog.NewTracingHook[string](sqllog.WithQuerySanitizer(sqllog.DefaultQuerySanitizer)),
//	    metricsHook,
//	)
//
// # Logging
//
// LoggingHook writes one event per call. Parameter values are replaced by
// Redacted unless WithSensitiveDataLogging is given:
//
//	{"level":"info","query":"SELECT * FROM users WHERE id = $1","params":{"$1":"?"},
//	 "elapsed":0.412,"context":"billing","connection":{},
//	 "message":"query SELECT * FROM users WHERE id = $1, params [$1=?], elapsed 0.412 ms, context billing, connection {}"}
//
// The configuration can also be loaded from YAML with LoadLoggingConfig.
package sql

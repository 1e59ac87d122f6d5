package sql

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// scope is the instrumentation scope name for OpenTelemetry.
	// This identifies the library in traces and metrics.
	scope = "github.com/kroma-labs/sqllog-go/sql"
)

// TracingHook implements Hooks by recording one client span per event.
//
// Hooks run after the operation finished, so each span is back-dated to
// the measured start of the operation and ended when the hook runs.
type TracingHook[T any] struct {
	tracer         trace.Tracer
	querySanitizer func(query string) string
	disableQuery   bool
}

// Compile-time interface check.
var _ Hooks[any] = (*TracingHook[any])(nil)

// TraceOption configures a TracingHook.
type TraceOption func(*traceConfig)

type traceConfig struct {
	// TracerProvider is the tracer provider to use.
	// If not set, uses the global provider via otel.GetTracerProvider().
	// When no global provider is configured, a no-op tracer is used (safe, but no traces).
	TracerProvider trace.TracerProvider

	// QuerySanitizer sanitizes SQL queries before adding to spans.
	// If nil, queries are included as-is (may expose sensitive data).
	QuerySanitizer func(query string) string

	// DisableQuery disables recording of SQL queries in spans.
	DisableQuery bool
}

// WithTracerProvider sets a custom tracer provider.
// If not called, the global provider from otel.GetTracerProvider() is used.
func WithTracerProvider(tp trace.TracerProvider) TraceOption {
	return func(cfg *traceConfig) {
		cfg.TracerProvider = tp
	}
}

// WithQuerySanitizer sets a custom query sanitizer function.
// The sanitizer receives the raw SQL query and should return a sanitized version
// with sensitive data (like literals) replaced with placeholders.
//
// Example:
//
//	hook := sqllog.NewTracingHook[string](
//	    sqllog.WithQuerySanitizer(sqllog.DefaultQuerySanitizer),
//	)
//	// Query: "SELECT * FROM users WHERE id = 123"
//	// Recorded as: "SELECT * FROM users WHERE id = ?"
func WithQuerySanitizer(fn func(string) string) TraceOption {
	return func(cfg *traceConfig) {
		cfg.QuerySanitizer = fn
	}
}

// WithDisableQuery disables recording of SQL queries in spans entirely.
//
// When enabled, the "db.statement" attribute will not be added to spans,
// but "db.operation" (SELECT, INSERT, etc.) will still be recorded.
func WithDisableQuery() TraceOption {
	return func(cfg *traceConfig) {
		cfg.DisableQuery = true
	}
}

// NewTracingHook creates a tracing hook.
func NewTracingHook[T any](opts ...TraceOption) *TracingHook[T] {
	cfg := &traceConfig{
		TracerProvider: otel.GetTracerProvider(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &TracingHook[T]{
		tracer:         cfg.TracerProvider.Tracer(scope),
		querySanitizer: cfg.QuerySanitizer,
		disableQuery:   cfg.DisableQuery,
	}
}

// ConnectionOpened implements Hooks.
func (h *TracingHook[T]) ConnectionOpened(
	ctx context.Context,
	conn *Conn[T],
	_ T,
	elapsed time.Duration,
	err error,
) {
	h.record(ctx, "CONNECT", elapsed, conn.Info().attributes(), err)
}

// ConnectionClosed implements Hooks.
func (h *TracingHook[T]) ConnectionClosed(
	ctx context.Context,
	conn *Conn[T],
	_ T,
	elapsed time.Duration,
	err error,
) {
	h.record(ctx, "CLOSE", elapsed, conn.Info().attributes(), err)
}

// CommandExecuted implements Hooks.
func (h *TracingHook[T]) CommandExecuted(
	ctx context.Context,
	cmd *Command[T],
	_ T,
	elapsed time.Duration,
	err error,
) {
	h.record(ctx, spanName(cmd.Text()), elapsed, h.queryAttributes(cmd.Conn().Info(), cmd.Text()), err)
}

func (h *TracingHook[T]) record(
	ctx context.Context,
	name string,
	elapsed time.Duration,
	attrs []attribute.KeyValue,
	err error,
) {
	end := time.Now()
	_, span := h.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithTimestamp(end.Add(-elapsed)),
		trace.WithAttributes(attrs...),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End(trace.WithTimestamp(end))
}

// queryAttributes returns attributes for command spans.
func (h *TracingHook[T]) queryAttributes(info ConnectionInfo, query string) []attribute.KeyValue {
	attrs := info.attributes()

	if !h.disableQuery && query != "" {
		sanitized := query
		if h.querySanitizer != nil {
			sanitized = h.querySanitizer(query)
		}
		attrs = append(attrs, attribute.String("db.statement", sanitized))
	}

	// Extract operation from query
	op := extractOperation(query)
	if op != "" {
		attrs = append(attrs, attribute.String("db.operation", op))
	}

	return attrs
}

// attributes returns the base attributes for all spans and metrics.
func (info ConnectionInfo) attributes() []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 3)
	if info.DBSystem != "" {
		attrs = append(attrs, attribute.String("db.system", info.DBSystem))
	}
	if info.DBName != "" {
		attrs = append(attrs, attribute.String("db.name", info.DBName))
	}
	if info.InstanceName != "" {
		attrs = append(attrs, attribute.String("db.instance", info.InstanceName))
	}
	return attrs
}

// Regex patterns for query sanitization.
var (
	// stringLiteralRegex matches single-quoted strings, handling escaped quotes.
	// Example matches: 'hello', 'it\'s', 'foo''bar'
	stringLiteralRegex = regexp.MustCompile(`'(?:[^'\\]|\\.)*'`)

	// numericLiteralRegex matches numeric literals (integers and floats).
	// Example matches: 123, 45.67, 0.5
	numericLiteralRegex = regexp.MustCompile(`\b\d+\.?\d*\b`)

	// hexLiteralRegex matches hex literals.
	// Example matches: 0xDEADBEEF, 0xFF, 0x1a2b
	hexLiteralRegex = regexp.MustCompile(`0[xX][0-9a-fA-F]+`)
)

// spanName returns a span name from a SQL query.
// Returns the SQL operation (SELECT, INSERT, etc.) or "SQL" for empty/unknown queries.
// This is used for OpenTelemetry span names which must not be empty.
//
// Example:
//
//	spanName("SELECT * FROM users") // returns "SELECT"
//	spanName("")                    // returns "SQL"
func spanName(query string) string {
	op := extractOperation(query)
	if op != "" {
		return op
	}
	return "SQL"
}

// extractOperation extracts the SQL operation (first word) from a query.
// Returns uppercase operation name or empty string if query is empty.
// This is used for the db.operation span attribute.
//
// Example:
//
//	extractOperation("SELECT * FROM users") // returns "SELECT"
//	extractOperation("insert into users")   // returns "INSERT"
//	extractOperation("")                    // returns ""
func extractOperation(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}

	// Find the first word (the SQL command)
	spaceIdx := strings.IndexAny(query, " \t\n\r")
	if spaceIdx == -1 {
		return strings.ToUpper(query)
	}

	return strings.ToUpper(query[:spaceIdx])
}

// DefaultQuerySanitizer is a basic query sanitizer that replaces
// literal values with placeholders to prevent sensitive data from
// appearing in traces.
//
// What it sanitizes:
//   - String literals: 'john' → '?'
//   - Numeric literals: 123, 45.67 → ?
//   - Hex literals: 0xDEADBEEF → ?
//
// Example:
//
//	DefaultQuerySanitizer("SELECT * FROM users WHERE id = 123")
//	// returns "SELECT * FROM users WHERE id = ?"
//
//	DefaultQuerySanitizer("SELECT * FROM users WHERE name = 'john'")
//	// returns "SELECT * FROM users WHERE name = '?'"
//
// Note: This is a simple regex-based implementation. For production use
// with complex queries, consider using a proper SQL parser.
func DefaultQuerySanitizer(query string) string {
	// Replace string literals (single quotes, handling escaped quotes)
	query = stringLiteralRegex.ReplaceAllString(query, "'?'")

	// Replace numeric literals (integers and floats)
	query = numericLiteralRegex.ReplaceAllString(query, "?")

	// Replace hex literals (0x...)
	query = hexLiteralRegex.ReplaceAllString(query, "?")

	return query
}

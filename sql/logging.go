package sql

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/valyala/fasttemplate"
)

// LoggingHook implements Hooks by writing one zerolog event per connection
// open, connection close and command execution.
//
// Message templates use {name} placeholders. Arguments are bound to the
// placeholders by position, not by name, in this order:
//
//	open, close: elapsed, context, connection
//	execute:     query, params, elapsed, context, connection
//
// where elapsed is in milliseconds, context is the connection value and
// connection is the result of the configured ConnectionProjector. Every
// bound placeholder is also added to the event as a field named after it.
type LoggingHook[T any] struct {
	logger  zerolog.Logger
	cfg     LoggingConfig
	open    *messageTemplate
	close   *messageTemplate
	execute *messageTemplate
}

// Compile-time interface check.
var _ Hooks[any] = (*LoggingHook[any])(nil)

// NewLoggingHook creates a logging hook writing to logger.
// It fails if a configured message template is malformed.
//
// Example:
//
//	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
//	hook, err := sqllog.NewLoggingHook[string](logger,
//	    sqllog.WithLogLevel(zerolog.DebugLevel),
//	    sqllog.WithSensitiveDataLogging(),
//	)
func NewLoggingHook[T any](logger zerolog.Logger, opts ...LoggingOption) (*LoggingHook[T], error) {
	cfg := DefaultLoggingConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ConnectionProjector == nil {
		cfg.ConnectionProjector = emptyProjector
	}

	h := &LoggingHook[T]{logger: logger, cfg: cfg}

	var err error
	if h.open, err = compileTemplate(cfg.OpenConnectionMessage); err != nil {
		return nil, fmt.Errorf("invalid open connection message: %w", err)
	}
	if h.close, err = compileTemplate(cfg.CloseConnectionMessage); err != nil {
		return nil, fmt.Errorf("invalid close connection message: %w", err)
	}
	if h.execute, err = compileTemplate(cfg.ExecuteQueryMessage); err != nil {
		return nil, fmt.Errorf("invalid execute query message: %w", err)
	}

	return h, nil
}

// ConnectionOpened implements Hooks.
func (h *LoggingHook[T]) ConnectionOpened(
	ctx context.Context,
	conn *Conn[T],
	value T,
	elapsed time.Duration,
	err error,
) {
	h.log(ctx, h.open, err, func() []any {
		return []any{
			millis(elapsed),
			value,
			h.cfg.ConnectionProjector(conn.Info()),
		}
	})
}

// ConnectionClosed implements Hooks.
func (h *LoggingHook[T]) ConnectionClosed(
	ctx context.Context,
	conn *Conn[T],
	value T,
	elapsed time.Duration,
	err error,
) {
	h.log(ctx, h.close, err, func() []any {
		return []any{
			millis(elapsed),
			value,
			h.cfg.ConnectionProjector(conn.Info()),
		}
	})
}

// CommandExecuted implements Hooks.
func (h *LoggingHook[T]) CommandExecuted(
	ctx context.Context,
	cmd *Command[T],
	value T,
	elapsed time.Duration,
	err error,
) {
	h.log(ctx, h.execute, err, func() []any {
		return []any{
			cmd.Text(),
			cmd.Params(!h.cfg.LogSensitiveData),
			millis(elapsed),
			value,
			h.cfg.ConnectionProjector(cmd.Conn().Info()),
		}
	})
}

// log writes one event. args is only evaluated when the level is enabled.
func (h *LoggingHook[T]) log(ctx context.Context, tmpl *messageTemplate, err error, args func() []any) {
	e := h.logger.WithLevel(h.cfg.Level)
	if !e.Enabled() {
		return
	}

	values := args()
	for i, name := range tmpl.fields {
		if i >= len(values) {
			break
		}
		addField(e, name, values[i])
	}
	if err != nil {
		e.Err(err)
	}

	e.Ctx(ctx).Msg(tmpl.render(values))
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func addField(e *zerolog.Event, name string, v any) {
	switch val := v.(type) {
	case zerolog.LogObjectMarshaler:
		e.Object(name, val)
	case string:
		e.Str(name, val)
	case float64:
		e.Float64(name, val)
	default:
		e.Interface(name, val)
	}
}

// messageTemplate is a compiled message template.
type messageTemplate struct {
	raw  string
	tmpl *fasttemplate.Template

	// fields holds the field name of each placeholder, in order.
	fields []string
}

func compileTemplate(s string) (*messageTemplate, error) {
	tmpl, err := fasttemplate.NewTemplate(s, "{", "}")
	if err != nil {
		return nil, err
	}

	m := &messageTemplate{raw: s, tmpl: tmpl}
	_, err = tmpl.ExecuteFuncStringWithErr(func(_ io.Writer, tag string) (int, error) {
		m.fields = append(m.fields, fieldName(tag))
		return 0, nil
	})
	if err != nil {
		return nil, err
	}

	for _, name := range m.fields {
		if name == "" {
			return nil, fmt.Errorf("empty placeholder in %q", s)
		}
	}
	return m, nil
}

// render substitutes values into the placeholders by position.
// Placeholders without a value are written back unchanged.
func (m *messageTemplate) render(values []any) string {
	i := 0
	s, err := m.tmpl.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		defer func() { i++ }()
		if i >= len(values) {
			return io.WriteString(w, "{"+tag+"}")
		}
		return io.WriteString(w, renderValue(values[i]))
	})
	if err != nil {
		return m.raw
	}
	return s
}

// fieldName strips formatting hints such as "@" from a placeholder.
func fieldName(tag string) string {
	return strings.TrimLeft(strings.TrimSpace(tag), "@$")
}

// renderValue formats a value for the message text.
func renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case error:
		return safeString(val.Error, val)
	case fmt.Stringer:
		return safeString(val.String, val)
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

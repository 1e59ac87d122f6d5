package sql

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Redacted replaces parameter values when sensitive data logging is disabled.
const Redacted = "?"

// Param is one bound parameter of a command, prepared for display.
type Param struct {
	// Name is the parameter name as bound by the caller (e.g. "@id").
	// Positional parameters are named "$<ordinal>".
	Name string

	// Value is the display value: the raw value, a best-effort
	// representation of it, or Redacted.
	Value any
}

// Params is the ordered list of parameters of one command execution.
// Duplicate names are kept as separate entries.
type Params []Param

// ExtractParams builds the display parameters of a command execution.
//
// The result keeps the order of args and is never nil. When hideValues is
// true every value is replaced by Redacted. Values that have no natural log
// representation are converted to a string instead of failing.
//
// Example:
//
//	args := []driver.NamedValue{{Name: "@id", Ordinal: 1, Value: "1"}}
//	ExtractParams(args, false) // [{@id 1}]
//	ExtractParams(args, true)  // [{@id ?}]
func ExtractParams(args []driver.NamedValue, hideValues bool) Params {
	params := make(Params, 0, len(args))
	for _, arg := range args {
		p := Param{Name: paramName(arg)}
		if hideValues {
			p.Value = Redacted
		} else {
			p.Value = displayValue(arg.Value)
		}
		params = append(params, p)
	}
	return params
}

// Map returns the parameters keyed by name. For duplicate names the last
// entry wins.
func (p Params) Map() map[string]any {
	m := make(map[string]any, len(p))
	for _, param := range p {
		m[param.Name] = param.Value
	}
	return m
}

// String renders the parameters as "[name=value, ...]".
func (p Params) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, param := range p {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(param.Name)
		b.WriteByte('=')
		switch v := param.Value.(type) {
		case nil:
			b.WriteString("<nil>")
		case []byte:
			fmt.Fprintf(&b, "0x%x", v)
		default:
			fmt.Fprint(&b, v)
		}
	}
	b.WriteByte(']')
	return b.String()
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
// Parameters are written in order, so duplicate names appear as repeated keys.
func (p Params) MarshalZerologObject(e *zerolog.Event) {
	for _, param := range p {
		switch v := param.Value.(type) {
		case nil:
			e.Interface(param.Name, nil)
		case string:
			e.Str(param.Name, v)
		case []byte:
			e.Hex(param.Name, v)
		case time.Time:
			e.Time(param.Name, v)
		default:
			e.Interface(param.Name, v)
		}
	}
}

func paramName(arg driver.NamedValue) string {
	if arg.Name != "" {
		return arg.Name
	}
	return "$" + strconv.Itoa(arg.Ordinal)
}

// displayValue converts a bound value into something a log sink can render.
func displayValue(v any) (out any) {
	switch val := v.(type) {
	case nil, string, bool, []byte, time.Time,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return val
	case error:
		return safeString(func() string { return val.Error() }, val)
	case driver.Valuer:
		return valuerValue(val)
	case fmt.Stringer:
		return safeString(val.String, val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// valuerValue resolves a driver.Valuer, degrading to its %v form when the
// Value method fails or panics.
func valuerValue(v driver.Valuer) (out any) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("%v", v)
		}
	}()

	resolved, err := v.Value()
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	if _, again := resolved.(driver.Valuer); again {
		return fmt.Sprintf("%v", resolved)
	}
	return displayValue(resolved)
}

func safeString(fn func() string, v any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("%T(PANIC=%v)", v, r)
		}
	}()
	return fn()
}

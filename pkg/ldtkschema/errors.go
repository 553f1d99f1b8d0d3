package ldtkschema

import "fmt"

// SchemaErrorKind classifies the ways schema compilation can fail.
type SchemaErrorKind int

const (
	// UnknownFieldKind means a field declared a kind string outside the
	// supported vocabulary, or referenced an enum that was never declared.
	UnknownFieldKind SchemaErrorKind = iota + 1
	// UnknownLayerKind means a layer declared a kind string that is not
	// one of IntGrid, Entities, Tiles or AutoLayer.
	UnknownLayerKind
	// MalformedColor means a color literal could not be parsed as "#rrggbb".
	MalformedColor
)

func (k SchemaErrorKind) String() string {
	switch k {
	case UnknownFieldKind:
		return "unknown field kind"
	case UnknownLayerKind:
		return "unknown layer kind"
	case MalformedColor:
		return "malformed color"
	default:
		return fmt.Sprintf("SchemaErrorKind(%d)", int(k))
	}
}

// SchemaError is a fail-fast compilation error. Compilation halts on
// the first one; there is no partial schema. Raw carries the rejected
// kind or color string; the offending definition is named by the
// wrapping error chain.
type SchemaError struct {
	Kind SchemaErrorKind
	Raw  string
	Err  error
}

func (e *SchemaError) Error() string {
	msg := e.Kind.String()
	if e.Raw != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Raw)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

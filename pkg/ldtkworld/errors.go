package ldtkworld

import "fmt"

// DecodeErrorKind classifies the ways instance loading can fail.
type DecodeErrorKind int

const (
	// MissingField means a non-nullable field had no instance value.
	MissingField DecodeErrorKind = iota + 1
	// UnmatchedEnumValue means an enum field held a string that matches
	// none of the compiled enum's value identifiers.
	UnmatchedEnumValue
	// UnknownEntityKind means an entity instance names an identifier
	// with no compiled entity type.
	UnknownEntityKind
	// UnknownLayerKind means a layer instance declared a kind string
	// that is not one of the four known kinds.
	UnknownLayerKind
	// MalformedColor means an instance color literal could not be
	// parsed as "#rrggbb".
	MalformedColor
	// UnsupportedSplitProject means the project stores levels in
	// external files, which this loader rejects outright.
	UnsupportedSplitProject
)

func (k DecodeErrorKind) String() string {
	switch k {
	case MissingField:
		return "missing required field"
	case UnmatchedEnumValue:
		return "unmatched enum value"
	case UnknownEntityKind:
		return "unknown entity kind"
	case UnknownLayerKind:
		return "unknown layer kind"
	case MalformedColor:
		return "malformed color"
	case UnsupportedSplitProject:
		return "unsupported split project"
	default:
		return fmt.Sprintf("DecodeErrorKind(%d)", int(k))
	}
}

// DecodeError is a fatal instance-loading error. It aborts the smallest
// enclosing unit and propagates; there is no partial World. Owner names
// the enclosing record where one exists (a level or entity), Ident the
// offending field/entity/layer identifier and Raw the rejected string.
type DecodeError struct {
	Kind  DecodeErrorKind
	Owner string
	Ident string
	Raw   string
	Err   error
}

func (e *DecodeError) Error() string {
	var msg string
	switch e.Kind {
	case MissingField:
		msg = fmt.Sprintf("%s: missing required field '%s'", e.Owner, e.Ident)
	case UnmatchedEnumValue:
		msg = fmt.Sprintf("%q is not a value of enum '%s'", e.Raw, e.Ident)
	case UnknownEntityKind:
		msg = fmt.Sprintf("unknown entity kind '%s'", e.Ident)
	case UnknownLayerKind:
		msg = fmt.Sprintf("unknown layer kind %q", e.Raw)
	case MalformedColor:
		msg = fmt.Sprintf("malformed color %q", e.Raw)
	case UnsupportedSplitProject:
		msg = "project stores levels in external files; split projects are not supported"
	default:
		msg = e.Kind.String()
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

package ldtkworld

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/TheNeikos/spicy-ldtk/pkg/geo"
	"github.com/TheNeikos/spicy-ldtk/pkg/ldtkjson"
	"github.com/TheNeikos/spicy-ldtk/pkg/ldtkschema"
)

// Fields is the decoded record of custom fields on a level or entity,
// keyed by raw identifier and ordered as declared in the schema.
type Fields struct {
	names []string
	vals  map[string]Value
}

// Names returns the field identifiers in declaration order.
func (f *Fields) Names() []string {
	return f.names
}

// Len returns the number of fields in the record.
func (f *Fields) Len() int {
	return len(f.names)
}

// Get looks up a decoded value by raw field identifier.
func (f *Fields) Get(ident string) (Value, bool) {
	v, ok := f.vals[ident]
	return v, ok
}

// Value is one decoded field value tagged with its compiled type. The
// accessors are comma-ok: they report false when the value is null or
// of a different kind, never a silent zero.
type Value struct {
	typ ldtkschema.FieldType
	raw any
}

// Type returns the compiled field type the value was decoded against.
func (v Value) Type() ldtkschema.FieldType {
	return v.typ
}

// IsNull reports whether the field held no value. Only possible on
// nullable fields; a missing non-nullable field fails the whole decode.
func (v Value) IsNull() bool {
	return v.raw == nil
}

// Int returns an Int field's value.
func (v Value) Int() (int, bool) {
	n, ok := v.raw.(int)
	return n, ok
}

// Float returns a Float field's value.
func (v Value) Float() (float64, bool) {
	f, ok := v.raw.(float64)
	return f, ok
}

// Text returns a String or FilePath field's value.
func (v Value) Text() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok
}

// Bool returns a Bool field's value.
func (v Value) Bool() (bool, bool) {
	b, ok := v.raw.(bool)
	return b, ok
}

// Color returns a Color field's value.
func (v Value) Color() (geo.Color, bool) {
	c, ok := v.raw.(geo.Color)
	return c, ok
}

// Point returns a Point field's value.
func (v Value) Point() (geo.Vec2, bool) {
	p, ok := v.raw.(geo.Vec2)
	return p, ok
}

// Enum returns an enum field's matched value.
func (v Value) Enum() (ldtkschema.EnumValue, bool) {
	e, ok := v.raw.(ldtkschema.EnumValue)
	return e, ok
}

// Array returns an array field's elements.
func (v Value) Array() ([]Value, bool) {
	a, ok := v.raw.([]Value)
	return a, ok
}

var jsonNull = []byte("null")

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}

// decodeFields decodes the field instances of one record against its
// compiled type, walking the declared fields in order. Instance values
// with no matching declaration are ignored; declared fields with no
// instance value go through the null path.
func decodeFields(owner string, rec *ldtkschema.RecordType, insts []ldtkjson.FieldInstance, schema *ldtkschema.Schema) (*Fields, error) {
	byIdent := make(map[string]json.RawMessage, len(insts))
	for _, inst := range insts {
		byIdent[inst.Identifier] = inst.Value
	}

	f := &Fields{vals: make(map[string]Value, len(rec.Fields))}
	for _, spec := range rec.Fields {
		v, err := decodeValue(owner, spec, byIdent[spec.Ident], schema)
		if err != nil {
			// Missing-field errors already name the owner.
			if de, ok := err.(*DecodeError); ok && de.Kind == MissingField {
				return nil, err
			}
			return nil, fmt.Errorf("%s: %w", owner, err)
		}
		f.names = append(f.names, spec.Ident)
		f.vals[spec.Ident] = v
	}
	return f, nil
}

func decodeValue(owner string, spec ldtkschema.FieldSpec, raw json.RawMessage, schema *ldtkschema.Schema) (Value, error) {
	if isNull(raw) {
		if !spec.Type.Nullable {
			return Value{}, &DecodeError{Kind: MissingField, Owner: owner, Ident: spec.Ident}
		}
		return Value{typ: spec.Type}, nil
	}

	if spec.Type.Array {
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return Value{}, fmt.Errorf("field '%s': decoding array: %w", spec.Ident, err)
		}
		elemType := spec.Type
		elemType.Array = false
		elemType.Nullable = false
		vals := make([]Value, 0, len(elems))
		for i, elem := range elems {
			if isNull(elem) {
				return Value{}, fmt.Errorf("field '%s': null element at index %d", spec.Ident, i)
			}
			ev, err := decodeScalar(elemType, elem, schema)
			if err != nil {
				return Value{}, fmt.Errorf("field '%s' element %d: %w", spec.Ident, i, err)
			}
			vals = append(vals, Value{typ: elemType, raw: ev})
		}
		return Value{typ: spec.Type, raw: vals}, nil
	}

	v, err := decodeScalar(spec.Type, raw, schema)
	if err != nil {
		return Value{}, fmt.Errorf("field '%s': %w", spec.Ident, err)
	}
	return Value{typ: spec.Type, raw: v}, nil
}

// decodeScalar decodes one JSON value per the declared kind, the
// reverse direction of the compiler's field-kind table.
func decodeScalar(t ldtkschema.FieldType, raw json.RawMessage, schema *ldtkschema.Schema) (any, error) {
	switch t.Kind {
	case ldtkschema.KindInt:
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, fmt.Errorf("decoding Int: %w", err)
		}
		return n, nil

	case ldtkschema.KindFloat:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("decoding Float: %w", err)
		}
		return f, nil

	case ldtkschema.KindString, ldtkschema.KindFilePath:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", t.Kind, err)
		}
		return s, nil

	case ldtkschema.KindBool:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, fmt.Errorf("decoding Bool: %w", err)
		}
		return b, nil

	case ldtkschema.KindColor:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decoding Color: %w", err)
		}
		c, err := geo.ParseHexColor(s)
		if err != nil {
			return nil, &DecodeError{Kind: MalformedColor, Raw: s, Err: err}
		}
		return c, nil

	case ldtkschema.KindPoint:
		return decodePoint(raw)

	case ldtkschema.KindEnum:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decoding enum value: %w", err)
		}
		e, ok := schema.Enum(t.Enum)
		if !ok {
			return nil, fmt.Errorf("enum '%s' is not part of the compiled schema", t.Enum)
		}
		v, ok := e.Value(s)
		if !ok {
			return nil, &DecodeError{Kind: UnmatchedEnumValue, Ident: t.Enum, Raw: s}
		}
		return v, nil

	default:
		return nil, fmt.Errorf("unhandled field kind %v", t.Kind)
	}
}

// decodePoint accepts both spellings the editor has used for point
// values: a {"cx": x, "cy": y} object and a bare [x, y] pair.
func decodePoint(raw json.RawMessage) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var pair []float64
		if err := json.Unmarshal(trimmed, &pair); err != nil {
			return nil, fmt.Errorf("decoding Point: %w", err)
		}
		if len(pair) != 2 {
			return nil, fmt.Errorf("decoding Point: want 2 components, got %d", len(pair))
		}
		return geo.V(pair[0], pair[1]), nil
	}

	var pt struct {
		Cx float64 `json:"cx"`
		Cy float64 `json:"cy"`
	}
	if err := json.Unmarshal(trimmed, &pt); err != nil {
		return nil, fmt.Errorf("decoding Point: %w", err)
	}
	return geo.V(pt.Cx, pt.Cy), nil
}

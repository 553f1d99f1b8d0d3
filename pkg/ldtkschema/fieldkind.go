package ldtkschema

import (
	"fmt"
	"strings"
)

// FieldKind enumerates the base field kinds the editor can declare.
type FieldKind int

const (
	KindInt FieldKind = iota + 1
	KindFloat
	KindString
	KindFilePath
	KindBool
	KindColor
	KindPoint
	KindEnum
)

func (k FieldKind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindFilePath:
		return "FilePath"
	case KindBool:
		return "Bool"
	case KindColor:
		return "Color"
	case KindPoint:
		return "Point"
	case KindEnum:
		return "LocalEnum"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

// FieldType is the compiled type of a declared field: a base kind plus
// array and nullability wrapping. The optional wraps outermost, so a
// nullable array field is either null or a sequence of non-null values.
type FieldType struct {
	Kind     FieldKind
	Enum     string // referenced enum identifier when Kind is KindEnum
	Array    bool
	Nullable bool
}

// String renders the type in the editor's own spelling.
func (t FieldType) String() string {
	base := t.Kind.String()
	if t.Kind == KindEnum {
		base = "LocalEnum." + t.Enum
	}
	if t.Array {
		base = "Array<" + base + ">"
	}
	if t.Nullable {
		base += "?"
	}
	return base
}

// ParseFieldType maps a declared kind string onto a compiled FieldType.
// This is the single field-kind table; the schema compiler, the world
// loader and the code generator all consult it, so the mapping cannot
// diverge between phases. An unrecognized kind is a *SchemaError, never
// a fallback.
func ParseFieldType(raw string, isArray, canBeNull bool) (FieldType, error) {
	t := FieldType{Array: isArray, Nullable: canBeNull}

	base := raw
	if inner, ok := cutWrapper(raw, "Array<", ">"); ok {
		base = inner
		t.Array = true
	}

	switch {
	case base == "Int":
		t.Kind = KindInt
	case base == "Float":
		t.Kind = KindFloat
	case base == "String":
		t.Kind = KindString
	case base == "FilePath":
		t.Kind = KindFilePath
	case base == "Bool":
		t.Kind = KindBool
	case base == "Color":
		t.Kind = KindColor
	case base == "Point":
		t.Kind = KindPoint
	case strings.HasPrefix(base, "LocalEnum."):
		t.Kind = KindEnum
		t.Enum = strings.TrimPrefix(base, "LocalEnum.")
	default:
		return FieldType{}, &SchemaError{Kind: UnknownFieldKind, Raw: raw}
	}
	return t, nil
}

func cutWrapper(s, prefix, suffix string) (string, bool) {
	if strings.HasPrefix(s, prefix) && strings.HasSuffix(s, suffix) {
		return s[len(prefix) : len(s)-len(suffix)], true
	}
	return "", false
}

// LayerKind enumerates the four known layer kinds.
type LayerKind int

const (
	LayerIntGrid LayerKind = iota + 1
	LayerEntities
	LayerTiles
	LayerAutoLayer
)

func (k LayerKind) String() string {
	switch k {
	case LayerIntGrid:
		return "IntGrid"
	case LayerEntities:
		return "Entities"
	case LayerTiles:
		return "Tiles"
	case LayerAutoLayer:
		return "AutoLayer"
	default:
		return fmt.Sprintf("LayerKind(%d)", int(k))
	}
}

// ParseLayerKind maps a declared layer kind string onto its LayerKind.
// Both the schema compiler and the world loader dispatch through this
// table; each wraps a miss in its own error taxonomy.
func ParseLayerKind(raw string) (LayerKind, bool) {
	switch raw {
	case "IntGrid":
		return LayerIntGrid, true
	case "Entities":
		return LayerEntities, true
	case "Tiles":
		return LayerTiles, true
	case "AutoLayer":
		return LayerAutoLayer, true
	default:
		return 0, false
	}
}

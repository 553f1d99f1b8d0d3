// Package ldtkschema compiles the definitions section of an LDtk
// project into an immutable type schema: one enum type per declared
// enum, one record type per entity kind (plus one for level fields),
// one layer descriptor per layer and a constant tileset table. The
// world loader decodes instance data against these descriptors using
// the same kind tables, so the two phases cannot disagree.
package ldtkschema

import "github.com/TheNeikos/spicy-ldtk/pkg/geo"

// Schema is the compiled type schema of one project document. Slices
// keep declaration order; lookups are by raw identifier or uid.
type Schema struct {
	Enums    []*EnumType
	Entities []*EntityType
	Level    *RecordType
	Layers   []*LayerType
	Tilesets []*TilesetInfo

	enumsByIdent    map[string]*EnumType
	entitiesByIdent map[string]*EntityType
	layersByIdent   map[string]*LayerType
	layersByUID     map[int]*LayerType
	tilesetsByUID   map[int]*TilesetInfo
}

// Enum looks up a compiled enum by its raw identifier.
func (s *Schema) Enum(ident string) (*EnumType, bool) {
	e, ok := s.enumsByIdent[ident]
	return e, ok
}

// Entity looks up a compiled entity type by its raw identifier.
func (s *Schema) Entity(ident string) (*EntityType, bool) {
	e, ok := s.entitiesByIdent[ident]
	return e, ok
}

// Layer looks up a layer descriptor by definition uid.
func (s *Schema) Layer(uid int) (*LayerType, bool) {
	l, ok := s.layersByUID[uid]
	return l, ok
}

// LayerByIdent looks up a layer descriptor by its raw identifier.
func (s *Schema) LayerByIdent(ident string) (*LayerType, bool) {
	l, ok := s.layersByIdent[ident]
	return l, ok
}

// Tileset looks up tileset metadata by definition uid.
func (s *Schema) Tileset(uid int) (*TilesetInfo, bool) {
	t, ok := s.tilesetsByUID[uid]
	return t, ok
}

// EnumType is one compiled enumeration. Name is the upper-camel
// rendering of Ident.
type EnumType struct {
	Ident  string
	Name   string
	Values []EnumValue

	valuesByIdent map[string]int
}

// Value matches a raw value identifier against the enum, exactly.
func (e *EnumType) Value(ident string) (EnumValue, bool) {
	i, ok := e.valuesByIdent[ident]
	if !ok {
		return EnumValue{}, false
	}
	return e.Values[i], true
}

// EnumValue is one value of a compiled enum. Index is its position in
// declaration order.
type EnumValue struct {
	Ident string
	Name  string
	Index int
}

// RecordType is the compiled field schema of an entity kind or of the
// level itself. Owner names the declaring definition for error messages.
type RecordType struct {
	Owner  string
	Fields []FieldSpec

	fieldsByIdent map[string]int
}

// Field looks up a field spec by its raw identifier.
func (r *RecordType) Field(ident string) (FieldSpec, bool) {
	i, ok := r.fieldsByIdent[ident]
	if !ok {
		return FieldSpec{}, false
	}
	return r.Fields[i], true
}

// FieldSpec is one compiled field declaration. Ident is the raw
// document identifier, Name its lower-snake member rendering.
type FieldSpec struct {
	Ident string
	Name  string
	Type  FieldType
}

// EntityType is one compiled entity kind.
type EntityType struct {
	Ident  string
	Name   string
	UID    int
	Fields *RecordType
}

// LayerType is one compiled layer descriptor. IntGrid carries the value
// palette (with display colors) for IntGrid layers and is empty for the
// other kinds.
type LayerType struct {
	Ident    string
	Name     string
	UID      int
	Kind     LayerKind
	GridSize int
	IntGrid  []IntGridValue
}

// IntGridValue is one declared IntGrid palette entry. Ident is empty
// when the editor assigned no name.
type IntGridValue struct {
	Value int
	Color geo.Color
	Ident string
}

// TilesetInfo is the compiled metadata of one tileset atlas, for the
// host's asset pipeline to resolve. CellSize is the atlas extent in
// cells; RelPath is relative to the project file.
type TilesetInfo struct {
	Ident    string
	Name     string
	UID      int
	GridSize int
	Padding  int
	Spacing  int
	CellSize geo.IVec2
	RelPath  string
}

package ldtkschema

import (
	"fmt"
	"log/slog"

	"github.com/TheNeikos/spicy-ldtk/internal/idents"
	"github.com/TheNeikos/spicy-ldtk/pkg/geo"
	"github.com/TheNeikos/spicy-ldtk/pkg/ldtkjson"
)

// Compiler turns a project's definitions into a Schema.
type Compiler struct {
	logger *slog.Logger
}

// NewCompiler creates a compiler. A nil logger falls back to slog.Default().
func NewCompiler(logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compiler{logger: logger}
}

// Compile compiles definitions with the default compiler.
func Compile(defs *ldtkjson.Definitions) (*Schema, error) {
	return NewCompiler(nil).Compile(defs)
}

// Compile walks every definition section and emits the compiled schema.
// The first error halts compilation entirely.
func (c *Compiler) Compile(defs *ldtkjson.Definitions) (*Schema, error) {
	s := &Schema{
		enumsByIdent:    make(map[string]*EnumType),
		entitiesByIdent: make(map[string]*EntityType),
		layersByIdent:   make(map[string]*LayerType),
		layersByUID:     make(map[int]*LayerType),
		tilesetsByUID:   make(map[int]*TilesetInfo),
	}

	// Enums first: field records resolve LocalEnum references against them.
	for _, def := range defs.Enums {
		e, err := c.compileEnum(def)
		if err != nil {
			return nil, fmt.Errorf("compiling enum '%s': %w", def.Identifier, err)
		}
		if _, dup := s.enumsByIdent[e.Ident]; dup {
			return nil, fmt.Errorf("compiling enum '%s': duplicate identifier", e.Ident)
		}
		s.Enums = append(s.Enums, e)
		s.enumsByIdent[e.Ident] = e
	}

	for _, def := range defs.Entities {
		rec, err := c.compileRecord("entity '"+def.Identifier+"'", def.FieldDefs, s)
		if err != nil {
			return nil, fmt.Errorf("compiling entity '%s': %w", def.Identifier, err)
		}
		if _, dup := s.entitiesByIdent[def.Identifier]; dup {
			return nil, fmt.Errorf("compiling entity '%s': duplicate identifier", def.Identifier)
		}
		e := &EntityType{
			Ident:  def.Identifier,
			Name:   idents.Pascal(def.Identifier),
			UID:    def.UID,
			Fields: rec,
		}
		s.Entities = append(s.Entities, e)
		s.entitiesByIdent[e.Ident] = e
	}

	level, err := c.compileRecord("level", defs.LevelFields, s)
	if err != nil {
		return nil, fmt.Errorf("compiling level fields: %w", err)
	}
	s.Level = level

	for _, def := range defs.Layers {
		l, err := c.compileLayer(def)
		if err != nil {
			return nil, fmt.Errorf("compiling layer '%s': %w", def.Identifier, err)
		}
		if _, dup := s.layersByIdent[l.Ident]; dup {
			return nil, fmt.Errorf("compiling layer '%s': duplicate identifier", l.Ident)
		}
		s.Layers = append(s.Layers, l)
		s.layersByIdent[l.Ident] = l
		s.layersByUID[l.UID] = l
	}

	for _, def := range defs.Tilesets {
		if _, dup := s.tilesetsByUID[def.UID]; dup {
			return nil, fmt.Errorf("compiling tileset '%s': duplicate uid %d", def.Identifier, def.UID)
		}
		t := &TilesetInfo{
			Ident:    def.Identifier,
			Name:     idents.Pascal(def.Identifier),
			UID:      def.UID,
			GridSize: def.TileGridSize,
			Padding:  def.Padding,
			Spacing:  def.Spacing,
			CellSize: geo.IV(def.CWid, def.CHei),
			RelPath:  def.RelPath,
		}
		s.Tilesets = append(s.Tilesets, t)
		s.tilesetsByUID[t.UID] = t
	}

	c.logger.Debug("compiled project schema",
		"enums", len(s.Enums),
		"entities", len(s.Entities),
		"level_fields", len(s.Level.Fields),
		"layers", len(s.Layers),
		"tilesets", len(s.Tilesets))

	return s, nil
}

func (c *Compiler) compileEnum(def ldtkjson.EnumDef) (*EnumType, error) {
	e := &EnumType{
		Ident:         def.Identifier,
		Name:          idents.Pascal(def.Identifier),
		valuesByIdent: make(map[string]int, len(def.Values)),
	}
	for i, v := range def.Values {
		if _, dup := e.valuesByIdent[v.ID]; dup {
			return nil, fmt.Errorf("duplicate value '%s'", v.ID)
		}
		e.Values = append(e.Values, EnumValue{
			Ident: v.ID,
			Name:  idents.Pascal(v.ID),
			Index: i,
		})
		e.valuesByIdent[v.ID] = i
	}
	return e, nil
}

// compileRecord maps field declarations onto FieldSpecs. LocalEnum
// references must resolve against the already-compiled enum set; a
// reference to a missing enum is the same failure as an unknown kind,
// since the declared type names a type that does not exist.
func (c *Compiler) compileRecord(owner string, defs []ldtkjson.FieldDef, s *Schema) (*RecordType, error) {
	rec := &RecordType{
		Owner:         owner,
		fieldsByIdent: make(map[string]int, len(defs)),
	}
	for i, def := range defs {
		ft, err := ParseFieldType(def.Type, def.IsArray, def.CanBeNull)
		if err != nil {
			return nil, fmt.Errorf("field '%s': %w", def.Identifier, err)
		}
		if ft.Kind == KindEnum {
			if _, ok := s.enumsByIdent[ft.Enum]; !ok {
				return nil, fmt.Errorf("field '%s': %w", def.Identifier,
					&SchemaError{Kind: UnknownFieldKind, Raw: def.Type})
			}
		}
		if _, dup := rec.fieldsByIdent[def.Identifier]; dup {
			return nil, fmt.Errorf("field '%s': duplicate identifier", def.Identifier)
		}
		rec.Fields = append(rec.Fields, FieldSpec{
			Ident: def.Identifier,
			Name:  idents.Snake(def.Identifier),
			Type:  ft,
		})
		rec.fieldsByIdent[def.Identifier] = i
	}
	return rec, nil
}

func (c *Compiler) compileLayer(def ldtkjson.LayerDef) (*LayerType, error) {
	kind, ok := ParseLayerKind(def.Type)
	if !ok {
		return nil, &SchemaError{Kind: UnknownLayerKind, Raw: def.Type}
	}
	l := &LayerType{
		Ident:    def.Identifier,
		Name:     idents.Pascal(def.Identifier),
		UID:      def.UID,
		Kind:     kind,
		GridSize: def.GridSize,
	}
	if kind == LayerIntGrid {
		for _, v := range def.IntGridValues {
			color, err := geo.ParseHexColor(v.Color)
			if err != nil {
				return nil, fmt.Errorf("intgrid value %d: %w", v.Value,
					&SchemaError{Kind: MalformedColor, Raw: v.Color, Err: err})
			}
			gv := IntGridValue{Value: v.Value, Color: color}
			if v.Identifier != nil {
				gv.Ident = *v.Identifier
			}
			l.IntGrid = append(l.IntGrid, gv)
		}
	}
	return l, nil
}

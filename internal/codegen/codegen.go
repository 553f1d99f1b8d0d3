// Package codegen renders a compiled schema as Go source: one enum type
// per project enum, one plain struct plus decode function per entity
// and for the level fields, and a constant table of tileset metadata.
// The output compiles against pkg/geo, pkg/ldtkschema and pkg/ldtkworld
// and gives consumers typed access without touching the dynamic Fields
// record at every call site.
package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	"github.com/TheNeikos/spicy-ldtk/internal/idents"
	"github.com/TheNeikos/spicy-ldtk/pkg/ldtkschema"
)

const modulePath = "github.com/TheNeikos/spicy-ldtk"

// Options controls the rendered output.
type Options struct {
	// Package is the package name of the generated file. Empty means
	// "ldtkgen".
	Package string
}

type fileData struct {
	Package     string
	ImportBlock string
	Enums       []enumData
	Records     []recordData
	Tilesets    []tilesetData
	HasTilesets bool
}

type enumData struct {
	Name   string
	Ident  string
	Values []enumValueData
}

type enumValueData struct {
	ConstName string
	ConstDecl string
	Ident     string
}

type recordData struct {
	Name    string
	Comment string
	Fields  []recordFieldData
}

type recordFieldData struct {
	Name   string
	GoType string
	Decode string
}

type tilesetData struct {
	VarName string
	Info    *ldtkschema.TilesetInfo
}

// Generate renders the schema as a single formatted Go source file.
func Generate(schema *ldtkschema.Schema, opts Options) ([]byte, error) {
	if schema == nil {
		return nil, errors.New("codegen: nil schema")
	}
	if opts.Package == "" {
		opts.Package = "ldtkgen"
	}

	g := &generator{schema: schema}
	data, err := g.build(opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := fileTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering bindings: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return src, nil
}

type generator struct {
	schema *ldtkschema.Schema

	needFmt bool
	needGeo bool
}

func (g *generator) build(opts Options) (*fileData, error) {
	data := &fileData{Package: opts.Package}

	for _, e := range g.schema.Enums {
		data.Enums = append(data.Enums, g.buildEnum(e))
	}

	level, err := g.buildRecord("LevelFields", "LevelFields holds the project's custom level fields.", g.schema.Level)
	if err != nil {
		return nil, fmt.Errorf("level fields: %w", err)
	}
	data.Records = append(data.Records, level)

	for _, e := range g.schema.Entities {
		name := e.Name + "Fields"
		comment := fmt.Sprintf("%s holds the custom fields of a '%s' entity.", name, e.Ident)
		rec, err := g.buildRecord(name, comment, e.Fields)
		if err != nil {
			return nil, fmt.Errorf("entity '%s': %w", e.Ident, err)
		}
		data.Records = append(data.Records, rec)
	}

	for _, t := range g.schema.Tilesets {
		data.Tilesets = append(data.Tilesets, tilesetData{
			VarName: "Tileset" + t.Name,
			Info:    t,
		})
	}
	data.HasTilesets = len(data.Tilesets) > 0
	if data.HasTilesets {
		g.needGeo = true
	}

	data.ImportBlock = g.importBlock(data.HasTilesets)
	return data, nil
}

func (g *generator) buildEnum(e *ldtkschema.EnumType) enumData {
	g.needFmt = true
	d := enumData{Name: e.Name, Ident: e.Ident}
	for i, v := range e.Values {
		constName := e.Name + v.Name
		decl := constName
		if i == 0 {
			decl = fmt.Sprintf("%s %s = iota", constName, e.Name)
		}
		d.Values = append(d.Values, enumValueData{
			ConstName: constName,
			ConstDecl: decl,
			Ident:     v.Ident,
		})
	}
	return d
}

func (g *generator) buildRecord(name, comment string, rec *ldtkschema.RecordType) (recordData, error) {
	d := recordData{Name: name, Comment: comment}
	for _, spec := range rec.Fields {
		g.needFmt = true
		goType, err := g.goType(spec.Type)
		if err != nil {
			return recordData{}, fmt.Errorf("field '%s': %w", spec.Ident, err)
		}
		d.Fields = append(d.Fields, recordFieldData{
			Name:   idents.Pascal(spec.Ident),
			GoType: goType,
			Decode: g.decodeBlock(spec),
		})
	}
	return d, nil
}

// goType maps a compiled field type onto the Go type of the generated
// struct field. Nullable scalars become pointers; nullable arrays stay
// plain slices, with nil standing in for null.
func (g *generator) goType(t ldtkschema.FieldType) (string, error) {
	base, err := g.baseType(t)
	if err != nil {
		return "", err
	}
	if t.Array {
		return "[]" + base, nil
	}
	if t.Nullable {
		return "*" + base, nil
	}
	return base, nil
}

func (g *generator) baseType(t ldtkschema.FieldType) (string, error) {
	switch t.Kind {
	case ldtkschema.KindInt:
		return "int", nil
	case ldtkschema.KindFloat:
		return "float64", nil
	case ldtkschema.KindString, ldtkschema.KindFilePath:
		return "string", nil
	case ldtkschema.KindBool:
		return "bool", nil
	case ldtkschema.KindColor:
		g.needGeo = true
		return "geo.Color", nil
	case ldtkschema.KindPoint:
		g.needGeo = true
		return "geo.Vec2", nil
	case ldtkschema.KindEnum:
		e, ok := g.schema.Enum(t.Enum)
		if !ok {
			return "", fmt.Errorf("enum '%s' is not part of the compiled schema", t.Enum)
		}
		return e.Name, nil
	default:
		return "", fmt.Errorf("unhandled field kind %v", t.Kind)
	}
}

// accessor names the Value method for a field kind and how to convert
// its result into the generated type.
func (g *generator) accessor(t ldtkschema.FieldType) (method string, conv func(string) string) {
	ident := func(v string) string { return v }
	switch t.Kind {
	case ldtkschema.KindInt:
		return "Int", ident
	case ldtkschema.KindFloat:
		return "Float", ident
	case ldtkschema.KindString, ldtkschema.KindFilePath:
		return "Text", ident
	case ldtkschema.KindBool:
		return "Bool", ident
	case ldtkschema.KindColor:
		return "Color", ident
	case ldtkschema.KindPoint:
		return "Point", ident
	case ldtkschema.KindEnum:
		name := t.Enum
		if e, ok := g.schema.Enum(t.Enum); ok {
			name = e.Name
		}
		return "Enum", func(v string) string { return fmt.Sprintf("%s(%s.Index)", name, v) }
	default:
		return "", ident
	}
}

// decodeBlock renders the statements that move one field out of a
// Fields record, ready for insertion into the decode function body.
func (g *generator) decodeBlock(spec ldtkschema.FieldSpec) string {
	goName := idents.Pascal(spec.Ident)
	method, conv := g.accessor(spec.Type)

	var b strings.Builder
	switch {
	case spec.Type.Array:
		elemType, _ := g.baseType(spec.Type)
		if spec.Type.Nullable {
			fmt.Fprintf(&b, "\tif v, ok := src.Get(%q); ok && !v.IsNull() {\n", spec.Ident)
		} else {
			fmt.Fprintf(&b, "\t{\n")
			fmt.Fprintf(&b, "\t\tv, ok := src.Get(%q)\n", spec.Ident)
			fmt.Fprintf(&b, "\t\tif !ok || v.IsNull() {\n")
			fmt.Fprintf(&b, "\t\t\treturn out, fmt.Errorf(\"field '%s': no value\")\n", spec.Ident)
			fmt.Fprintf(&b, "\t\t}\n")
		}
		fmt.Fprintf(&b, "\t\telems, ok := v.Array()\n")
		fmt.Fprintf(&b, "\t\tif !ok {\n")
		fmt.Fprintf(&b, "\t\t\treturn out, fmt.Errorf(\"field '%s': unexpected kind\")\n", spec.Ident)
		fmt.Fprintf(&b, "\t\t}\n")
		fmt.Fprintf(&b, "\t\tout.%s = make([]%s, 0, len(elems))\n", goName, elemType)
		fmt.Fprintf(&b, "\t\tfor _, e := range elems {\n")
		fmt.Fprintf(&b, "\t\t\traw, ok := e.%s()\n", method)
		fmt.Fprintf(&b, "\t\t\tif !ok {\n")
		fmt.Fprintf(&b, "\t\t\t\treturn out, fmt.Errorf(\"field '%s': unexpected element kind\")\n", spec.Ident)
		fmt.Fprintf(&b, "\t\t\t}\n")
		fmt.Fprintf(&b, "\t\t\tout.%s = append(out.%s, %s)\n", goName, goName, conv("raw"))
		fmt.Fprintf(&b, "\t\t}\n")
		fmt.Fprintf(&b, "\t}\n")

	case spec.Type.Nullable:
		fmt.Fprintf(&b, "\tif v, ok := src.Get(%q); ok && !v.IsNull() {\n", spec.Ident)
		fmt.Fprintf(&b, "\t\traw, ok := v.%s()\n", method)
		fmt.Fprintf(&b, "\t\tif !ok {\n")
		fmt.Fprintf(&b, "\t\t\treturn out, fmt.Errorf(\"field '%s': unexpected kind\")\n", spec.Ident)
		fmt.Fprintf(&b, "\t\t}\n")
		fmt.Fprintf(&b, "\t\tval := %s\n", conv("raw"))
		fmt.Fprintf(&b, "\t\tout.%s = &val\n", goName)
		fmt.Fprintf(&b, "\t}\n")

	default:
		fmt.Fprintf(&b, "\t{\n")
		fmt.Fprintf(&b, "\t\tv, ok := src.Get(%q)\n", spec.Ident)
		fmt.Fprintf(&b, "\t\tif !ok || v.IsNull() {\n")
		fmt.Fprintf(&b, "\t\t\treturn out, fmt.Errorf(\"field '%s': no value\")\n", spec.Ident)
		fmt.Fprintf(&b, "\t\t}\n")
		fmt.Fprintf(&b, "\t\traw, ok := v.%s()\n", method)
		fmt.Fprintf(&b, "\t\tif !ok {\n")
		fmt.Fprintf(&b, "\t\t\treturn out, fmt.Errorf(\"field '%s': unexpected kind\")\n", spec.Ident)
		fmt.Fprintf(&b, "\t\t}\n")
		fmt.Fprintf(&b, "\t\tout.%s = %s\n", goName, conv("raw"))
		fmt.Fprintf(&b, "\t}\n")
	}
	return b.String()
}

func (g *generator) importBlock(hasTilesets bool) string {
	var std, mod []string
	if g.needFmt {
		std = append(std, "fmt")
	}
	if g.needGeo {
		mod = append(mod, modulePath+"/pkg/geo")
	}
	if hasTilesets {
		mod = append(mod, modulePath+"/pkg/ldtkschema")
	}
	mod = append(mod, modulePath+"/pkg/ldtkworld")

	var b strings.Builder
	b.WriteString("import (\n")
	for _, p := range std {
		fmt.Fprintf(&b, "\t%q\n", p)
	}
	if len(std) > 0 {
		b.WriteString("\n")
	}
	for _, p := range mod {
		fmt.Fprintf(&b, "\t%q\n", p)
	}
	b.WriteString(")")
	return b.String()
}

var fileTmpl = template.Must(template.New("bindings").Parse(`// Code generated by ldtkgen. DO NOT EDIT.

package {{.Package}}

{{.ImportBlock}}
{{range .Enums}}{{$e := .}}
// {{$e.Name}} mirrors the project enum '{{$e.Ident}}'.
type {{$e.Name}} int

const (
{{- range $e.Values}}
	{{.ConstDecl}}
{{- end}}
)

// String returns the editor identifier of the value.
func (v {{$e.Name}}) String() string {
	switch v {
{{- range $e.Values}}
	case {{.ConstName}}:
		return {{printf "%q" .Ident}}
{{- end}}
	}
	return fmt.Sprintf("{{$e.Name}}(%d)", int(v))
}

// Parse{{$e.Name}} matches an editor value identifier against {{$e.Name}}.
func Parse{{$e.Name}}(s string) ({{$e.Name}}, bool) {
	switch s {
{{- range $e.Values}}
	case {{printf "%q" .Ident}}:
		return {{.ConstName}}, true
{{- end}}
	}
	return 0, false
}
{{end}}
{{- range .Records}}{{$r := .}}
// {{$r.Comment}}
type {{$r.Name}} struct {
{{- range $r.Fields}}
	{{.Name}} {{.GoType}}
{{- end}}
}

// Decode{{$r.Name}} reads a loaded field record into a {{$r.Name}}.
func Decode{{$r.Name}}(src *ldtkworld.Fields) ({{$r.Name}}, error) {
	var out {{$r.Name}}
{{range $r.Fields}}{{.Decode}}{{end}}	return out, nil
}
{{end}}
{{- if .HasTilesets}}
{{- range .Tilesets}}
// {{.VarName}} describes the '{{.Info.Ident}}' tileset atlas.
var {{.VarName}} = ldtkschema.TilesetInfo{
	Ident:    {{printf "%q" .Info.Ident}},
	Name:     {{printf "%q" .Info.Name}},
	UID:      {{.Info.UID}},
	GridSize: {{.Info.GridSize}},
	Padding:  {{.Info.Padding}},
	Spacing:  {{.Info.Spacing}},
	CellSize: geo.IVec2{X: {{.Info.CellSize.X}}, Y: {{.Info.CellSize.Y}}},
	RelPath:  {{printf "%q" .Info.RelPath}},
}
{{end}}
// AllTilesets lists every tileset of the project.
var AllTilesets = []ldtkschema.TilesetInfo{
{{- range .Tilesets}}
	{{.VarName}},
{{- end}}
}
{{end}}`))

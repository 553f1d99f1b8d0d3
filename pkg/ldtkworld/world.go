// Package ldtkworld loads the data section of an LDtk project into a
// validated, immutable World graph, decoding every instance against the
// compiled schema and converting all coordinates into the engine frame
// (origin bottom-left, Y up). A load either produces a complete World
// or fails with a single descriptive error; there is no partial result.
package ldtkworld

import (
	"github.com/TheNeikos/spicy-ldtk/pkg/geo"
	"github.com/TheNeikos/spicy-ldtk/pkg/ldtkschema"
)

// World is the root of a loaded project. It owns every level and holds
// the uid lookup tables for tileset and layer metadata so consumers can
// resolve the numeric references carried by layers. A dangling uid is a
// lookup miss, never a load error.
type World struct {
	Levels []*Level

	levelsByIdent  map[string]int
	tilesetOrder   []*ldtkschema.TilesetInfo
	layerDefOrder  []*ldtkschema.LayerType
	tilesetsByUID  map[int]*ldtkschema.TilesetInfo
	layerDefsByUID map[int]*ldtkschema.LayerType
}

// Level looks up a level by its raw identifier.
func (w *World) Level(ident string) (*Level, bool) {
	i, ok := w.levelsByIdent[ident]
	if !ok {
		return nil, false
	}
	return w.Levels[i], true
}

// Tileset resolves a tileset reference by definition uid.
func (w *World) Tileset(uid int) (*ldtkschema.TilesetInfo, bool) {
	t, ok := w.tilesetsByUID[uid]
	return t, ok
}

// Tilesets returns all tileset metadata in declaration order.
func (w *World) Tilesets() []*ldtkschema.TilesetInfo {
	return w.tilesetOrder
}

// LayerDef resolves a layer definition by uid, e.g. to read IntGrid
// value colors at consumption time.
func (w *World) LayerDef(uid int) (*ldtkschema.LayerType, bool) {
	l, ok := w.layerDefsByUID[uid]
	return l, ok
}

// LayerDefs returns all layer descriptors in declaration order.
func (w *World) LayerDefs() []*ldtkschema.LayerType {
	return w.layerDefOrder
}

// Level is one loaded level. WorldPx is the world-space position of the
// level in the engine frame; SizePx its pixel dimensions.
type Level struct {
	Ident      string
	UID        int
	SizePx     geo.IVec2
	WorldPx    geo.IVec2
	BgColor    geo.Color
	Background *Background
	Fields     *Fields
	Layers     []*Layer

	layersByIdent map[string]int
}

// Layer looks up a layer by its declared identifier.
func (l *Level) Layer(ident string) (*Layer, bool) {
	i, ok := l.layersByIdent[ident]
	if !ok {
		return nil, false
	}
	return l.Layers[i], true
}

// Background is a level's optional background image reference. The
// position is the image's raw top-left anchor as exported; it is an
// image-space offset and is not Y-inverted.
type Background struct {
	RelPath   string
	TopLeftPx geo.IVec2
}

// Layer is one loaded layer instance. The kind-specific data lives in
// Payload; everything else is common to all four kinds. TilesetUID is
// nil when the layer references no tileset.
type Layer struct {
	Ident         string
	Kind          ldtkschema.LayerKind
	SizeCells     geo.IVec2
	GridSize      int
	Opacity       float64
	TotalOffsetPx geo.IVec2
	Visible       bool
	TilesetUID    *int
	LayerDefUID   int
	Payload       Payload
}

// SizePx returns the layer extent in pixels.
func (l *Layer) SizePx() geo.IVec2 {
	return l.SizeCells.Scale(l.GridSize)
}

// IntGrid returns the payload of an IntGrid layer.
func (l *Layer) IntGrid() (*IntGridPayload, bool) {
	p, ok := l.Payload.(*IntGridPayload)
	return p, ok
}

// Entities returns the payload of an Entities layer.
func (l *Layer) Entities() (*EntitiesPayload, bool) {
	p, ok := l.Payload.(*EntitiesPayload)
	return p, ok
}

// Tiles returns the payload of a Tiles layer.
func (l *Layer) Tiles() (*TilesPayload, bool) {
	p, ok := l.Payload.(*TilesPayload)
	return p, ok
}

// AutoLayer returns the payload of an AutoLayer layer.
func (l *Layer) AutoLayer() (*AutoLayerPayload, bool) {
	p, ok := l.Payload.(*AutoLayerPayload)
	return p, ok
}

// Payload is the kind-tagged data of a layer. Exactly one concrete
// payload type exists per layer kind, and its tag always matches the
// layer's Kind field.
type Payload interface {
	Kind() ldtkschema.LayerKind
}

// IntGridPayload holds one palette value per cell, flat row-major with
// bottom-to-top rows, plus any rule-placed tiles for the layer.
type IntGridPayload struct {
	Values    []int
	AutoTiles []Tile
}

// Kind implements Payload.
func (*IntGridPayload) Kind() ldtkschema.LayerKind { return ldtkschema.LayerIntGrid }

// EntitiesPayload holds a layer's placed entities in document order.
type EntitiesPayload struct {
	Entities []*Entity
}

// Kind implements Payload.
func (*EntitiesPayload) Kind() ldtkschema.LayerKind { return ldtkschema.LayerEntities }

// TilesPayload holds hand-placed tiles and the uid of the tileset they
// source from, resolved lazily against World.Tileset.
type TilesPayload struct {
	TilesetUID *int
	Tiles      []Tile
}

// Kind implements Payload.
func (*TilesPayload) Kind() ldtkschema.LayerKind { return ldtkschema.LayerTiles }

// AutoLayerPayload holds rule-placed tiles only.
type AutoLayerPayload struct {
	AutoTiles []Tile
}

// Kind implements Payload.
func (*AutoLayerPayload) Kind() ldtkschema.LayerKind { return ldtkschema.LayerAutoLayer }

// Tile is one placed tile. PositionPx is layer-space in the engine
// frame; SrcPx is the source offset into the tileset atlas, which keeps
// the editor's orientation.
type Tile struct {
	FlipX      bool
	FlipY      bool
	PositionPx geo.IVec2
	SrcPx      geo.IVec2
	ID         int
}

// Entity is one placed entity. GridPos and PositionPx are relative to
// the owning layer in the engine frame; Pivot is the flipped fractional
// anchor.
type Entity struct {
	Ident      string
	SizePx     geo.IVec2
	GridPos    geo.IVec2
	PositionPx geo.IVec2
	Pivot      geo.Vec2
	Fields     *Fields
}

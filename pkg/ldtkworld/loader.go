package ldtkworld

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/TheNeikos/spicy-ldtk/pkg/geo"
	"github.com/TheNeikos/spicy-ldtk/pkg/ldtkjson"
	"github.com/TheNeikos/spicy-ldtk/pkg/ldtkschema"
)

// Loader decodes a project's instance data against a compiled schema.
// The same loader can decode any number of documents; it holds no
// per-load state.
type Loader struct {
	schema *ldtkschema.Schema
	logger *slog.Logger
}

// NewLoader creates a loader for the given schema. A nil logger falls
// back to slog.Default().
func NewLoader(schema *ldtkschema.Schema, logger *slog.Logger) (*Loader, error) {
	if schema == nil {
		return nil, errors.New("ldtkworld: nil schema")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{schema: schema, logger: logger}, nil
}

// Load decodes a project with a default loader.
func Load(ctx context.Context, p *ldtkjson.Project, schema *ldtkschema.Schema) (*World, error) {
	l, err := NewLoader(schema, nil)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, p)
}

// Load walks every level of the document and produces the World graph,
// or the first error. The error aborts the smallest enclosing unit and
// propagates; a failed load returns no World at all.
func (l *Loader) Load(ctx context.Context, p *ldtkjson.Project) (*World, error) {
	if p.ExternalLevels {
		return nil, &DecodeError{Kind: UnsupportedSplitProject}
	}

	w := &World{
		levelsByIdent:  make(map[string]int, len(p.Levels)),
		tilesetsByUID:  make(map[int]*ldtkschema.TilesetInfo, len(l.schema.Tilesets)),
		layerDefsByUID: make(map[int]*ldtkschema.LayerType, len(l.schema.Layers)),
	}
	for _, t := range l.schema.Tilesets {
		w.tilesetOrder = append(w.tilesetOrder, t)
		w.tilesetsByUID[t.UID] = t
	}
	for _, ld := range l.schema.Layers {
		w.layerDefOrder = append(w.layerDefOrder, ld)
		w.layerDefsByUID[ld.UID] = ld
	}

	for i := range p.Levels {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		level, err := l.loadLevel(&p.Levels[i])
		if err != nil {
			return nil, err
		}
		if _, dup := w.levelsByIdent[level.Ident]; dup {
			return nil, fmt.Errorf("loading level '%s': duplicate identifier", level.Ident)
		}
		w.levelsByIdent[level.Ident] = len(w.Levels)
		w.Levels = append(w.Levels, level)
		l.logger.DebugContext(ctx, "loaded level", "level", level.Ident, "layers", len(level.Layers))
	}

	l.logger.DebugContext(ctx, "loaded world",
		"levels", len(w.Levels),
		"tilesets", len(w.tilesetOrder),
		"layer_defs", len(w.layerDefOrder))
	return w, nil
}

func (l *Loader) loadLevel(raw *ldtkjson.Level) (*Level, error) {
	// A level without inline layer data belongs to a split project.
	if raw.LayerInstances == nil {
		return nil, fmt.Errorf("loading level '%s': %w", raw.Identifier,
			&DecodeError{Kind: UnsupportedSplitProject})
	}

	bg, err := geo.ParseHexColor(raw.BgColor)
	if err != nil {
		return nil, fmt.Errorf("loading level '%s': %w", raw.Identifier,
			&DecodeError{Kind: MalformedColor, Raw: raw.BgColor, Err: err})
	}

	fields, err := decodeFields("level '"+raw.Identifier+"'", l.schema.Level, raw.FieldInstances, l.schema)
	if err != nil {
		return nil, err
	}

	level := &Level{
		Ident:         raw.Identifier,
		UID:           raw.UID,
		SizePx:        geo.IV(raw.PxWid, raw.PxHei),
		WorldPx:       geo.IV(raw.WorldX, InvertY(raw.WorldY, raw.PxHei)),
		BgColor:       bg,
		Fields:        fields,
		layersByIdent: make(map[string]int, len(raw.LayerInstances)),
	}

	if raw.BgRelPath != nil {
		b := &Background{RelPath: *raw.BgRelPath}
		if raw.BgPos != nil && len(raw.BgPos.TopLeftPx) == 2 {
			b.TopLeftPx = geo.IV(raw.BgPos.TopLeftPx[0], raw.BgPos.TopLeftPx[1])
		}
		level.Background = b
	}

	for i := range raw.LayerInstances {
		inst := &raw.LayerInstances[i]
		layer, err := l.loadLayer(inst)
		if err != nil {
			return nil, fmt.Errorf("loading layer '%s' of level '%s': %w", inst.Identifier, raw.Identifier, err)
		}
		if _, dup := level.layersByIdent[layer.Ident]; dup {
			return nil, fmt.Errorf("loading layer '%s' of level '%s': duplicate identifier", layer.Ident, raw.Identifier)
		}
		level.layersByIdent[layer.Ident] = len(level.Layers)
		level.Layers = append(level.Layers, layer)
	}

	return level, nil
}

// loadLayer dispatches on the instance's declared kind string and
// builds the matching payload.
func (l *Loader) loadLayer(inst *ldtkjson.LayerInstance) (*Layer, error) {
	kind, ok := ldtkschema.ParseLayerKind(inst.Type)
	if !ok {
		return nil, &DecodeError{Kind: UnknownLayerKind, Ident: inst.Identifier, Raw: inst.Type}
	}

	pxHeight := inst.CHei * inst.GridSize
	layer := &Layer{
		Ident:         inst.Identifier,
		Kind:          kind,
		SizeCells:     geo.IV(inst.CWid, inst.CHei),
		GridSize:      inst.GridSize,
		Opacity:       inst.Opacity,
		TotalOffsetPx: geo.IV(inst.PxTotalOffsetX, InvertY(inst.PxTotalOffsetY, pxHeight)),
		Visible:       inst.Visible,
		TilesetUID:    copyIntPtr(inst.TilesetDefUID),
		LayerDefUID:   inst.LayerDefUID,
	}

	switch kind {
	case ldtkschema.LayerIntGrid:
		if want := inst.CWid * inst.CHei; len(inst.IntGridCSV) != want {
			return nil, fmt.Errorf("intgrid has %d values, want %d (%dx%d)",
				len(inst.IntGridCSV), want, inst.CWid, inst.CHei)
		}
		autoTiles, err := l.loadTiles(inst.AutoLayerTiles, inst.CWid, pxHeight)
		if err != nil {
			return nil, err
		}
		layer.Payload = &IntGridPayload{
			Values:    ReverseRows(inst.IntGridCSV, inst.CWid),
			AutoTiles: autoTiles,
		}

	case ldtkschema.LayerEntities:
		entities := make([]*Entity, 0, len(inst.EntityInstances))
		for i := range inst.EntityInstances {
			e, err := l.loadEntity(&inst.EntityInstances[i], inst.CHei, pxHeight)
			if err != nil {
				return nil, err
			}
			entities = append(entities, e)
		}
		layer.Payload = &EntitiesPayload{Entities: entities}

	case ldtkschema.LayerTiles:
		tiles, err := l.loadTiles(inst.GridTiles, inst.CWid, pxHeight)
		if err != nil {
			return nil, err
		}
		layer.Payload = &TilesPayload{
			TilesetUID: copyIntPtr(inst.TilesetDefUID),
			Tiles:      tiles,
		}

	case ldtkschema.LayerAutoLayer:
		autoTiles, err := l.loadTiles(inst.AutoLayerTiles, inst.CWid, pxHeight)
		if err != nil {
			return nil, err
		}
		layer.Payload = &AutoLayerPayload{AutoTiles: autoTiles}
	}

	return layer, nil
}

// loadTiles decodes one tile list and row-reverses it into
// bottom-to-top order.
func (l *Loader) loadTiles(raw []ldtkjson.TileInstance, width, layerPxHeight int) ([]Tile, error) {
	tiles := make([]Tile, 0, len(raw))
	for i, t := range raw {
		if len(t.Px) != 2 || len(t.Src) != 2 {
			return nil, fmt.Errorf("tile %d: malformed px/src coordinates", i)
		}
		tiles = append(tiles, Tile{
			FlipX:      t.F&1 != 0,
			FlipY:      t.F&2 != 0,
			PositionPx: geo.IV(t.Px[0], InvertY(t.Px[1], layerPxHeight)),
			SrcPx:      geo.IV(t.Src[0], t.Src[1]),
			ID:         t.T,
		})
	}
	return ReverseRows(tiles, width), nil
}

// loadEntity decodes one placed entity against its compiled type.
// Positions convert relative to the owning layer's extents.
func (l *Loader) loadEntity(raw *ldtkjson.EntityInstance, layerRows, layerPxHeight int) (*Entity, error) {
	et, ok := l.schema.Entity(raw.Identifier)
	if !ok {
		return nil, &DecodeError{Kind: UnknownEntityKind, Ident: raw.Identifier}
	}
	if len(raw.Grid) != 2 || len(raw.Px) != 2 || len(raw.Pivot) != 2 {
		return nil, fmt.Errorf("entity '%s': malformed grid/px/pivot coordinates", raw.Identifier)
	}

	fields, err := decodeFields("entity '"+raw.Identifier+"'", et.Fields, raw.FieldInstances, l.schema)
	if err != nil {
		return nil, err
	}

	return &Entity{
		Ident:      raw.Identifier,
		SizePx:     geo.IV(raw.Width, raw.Height),
		GridPos:    geo.IV(raw.Grid[0], InvertCell(raw.Grid[1], layerRows)),
		PositionPx: geo.IV(raw.Px[0], InvertY(raw.Px[1], layerPxHeight)),
		Pivot:      geo.V(raw.Pivot[0], InvertPivot(raw.Pivot[1])),
		Fields:     fields,
	}, nil
}

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

package ldtkworld

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheNeikos/spicy-ldtk/pkg/geo"
	"github.com/TheNeikos/spicy-ldtk/pkg/ldtkjson"
	"github.com/TheNeikos/spicy-ldtk/pkg/ldtkschema"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// testProject builds a small but complete project: one 32x48 px level,
// all four layer kinds on a 2x3 cell grid, and a placed entity
// exercising every field flavor.
func testProject() *ldtkjson.Project {
	return &ldtkjson.Project{
		JSONVersion: "1.5.3",
		BgColor:     "#40465b",
		Defs: ldtkjson.Definitions{
			Enums: []ldtkjson.EnumDef{
				{
					Identifier: "ItemType",
					UID:        20,
					Values: []ldtkjson.EnumValueDef{
						{ID: "Sword"}, {ID: "Potion"}, {ID: "Shield"},
					},
				},
			},
			Entities: []ldtkjson.EntityDef{
				{
					Identifier: "Player",
					UID:        30,
					FieldDefs: []ldtkjson.FieldDef{
						{Identifier: "hp", Type: "Int", UID: 31},
						{Identifier: "loot", Type: "Array<LocalEnum.ItemType>", IsArray: true, UID: 32},
						{Identifier: "target", Type: "Point", CanBeNull: true, UID: 33},
					},
				},
			},
			Layers: []ldtkjson.LayerDef{
				{
					Identifier: "Collisions", Type: "IntGrid", UID: 40, GridSize: 16,
					IntGridValues: []ldtkjson.IntGridValueDef{
						{Value: 1, Color: "#ff0000", Identifier: strPtr("Wall")},
					},
				},
				{Identifier: "Actors", Type: "Entities", UID: 41, GridSize: 16},
				{Identifier: "Ground", Type: "Tiles", UID: 42, GridSize: 16},
				{Identifier: "Decor", Type: "AutoLayer", UID: 43, GridSize: 16},
			},
			Tilesets: []ldtkjson.TilesetDef{
				{
					Identifier: "Dungeon", UID: 50, TileGridSize: 16, Padding: 1, Spacing: 2,
					CWid: 8, CHei: 8, RelPath: "tiles/dungeon.png",
				},
			},
			LevelFields: []ldtkjson.FieldDef{
				{Identifier: "music", Type: "String", CanBeNull: true, UID: 60},
				{Identifier: "theme", Type: "FilePath", UID: 61},
				{Identifier: "spawn", Type: "Point", UID: 62},
				{Identifier: "tint", Type: "Color", UID: 63},
				{Identifier: "darkness", Type: "Float", UID: 64},
				{Identifier: "indoor", Type: "Bool", UID: 65},
			},
		},
		Levels: []ldtkjson.Level{testLevel()},
	}
}

func testLevel() ldtkjson.Level {
	return ldtkjson.Level{
		Identifier: "Overworld",
		UID:        100,
		WorldX:     32,
		WorldY:     64,
		PxWid:      32,
		PxHei:      48,
		BgColor:    "#40465b",
		BgRelPath:  strPtr("bg/clouds.png"),
		BgPos:      &ldtkjson.BackgroundPosition{TopLeftPx: []int{4, 6}, Scale: []float64{1, 1}},
		FieldInstances: []ldtkjson.FieldInstance{
			{Identifier: "music", Type: "String", Value: json.RawMessage(`"overworld.ogg"`), DefUID: 60},
			{Identifier: "theme", Type: "FilePath", Value: json.RawMessage(`"themes/forest.lua"`), DefUID: 61},
			{Identifier: "spawn", Type: "Point", Value: json.RawMessage(`[8, 24]`), DefUID: 62},
			{Identifier: "tint", Type: "Color", Value: json.RawMessage(`"#12ab34"`), DefUID: 63},
			{Identifier: "darkness", Type: "Float", Value: json.RawMessage(`0.25`), DefUID: 64},
			{Identifier: "indoor", Type: "Bool", Value: json.RawMessage(`true`), DefUID: 65},
		},
		LayerInstances: []ldtkjson.LayerInstance{
			{
				Identifier: "Collisions", Type: "IntGrid",
				CWid: 2, CHei: 3, GridSize: 16, Opacity: 1, Visible: true,
				LayerDefUID: 40,
				IntGridCSV:  []int{1, 0, 0, 0, 0, 1},
				AutoLayerTiles: []ldtkjson.TileInstance{
					{F: 1, Px: []int{0, 32}, Src: []int{16, 0}, T: 3},
				},
			},
			{
				Identifier: "Actors", Type: "Entities",
				CWid: 2, CHei: 3, GridSize: 16, Opacity: 1, Visible: true,
				LayerDefUID: 41,
				EntityInstances: []ldtkjson.EntityInstance{
					{
						Identifier: "Player",
						Grid:       []int{1, 0},
						Pivot:      []float64{0, 1},
						DefUID:     30,
						Width:      16,
						Height:     16,
						Px:         []int{24, 0},
						FieldInstances: []ldtkjson.FieldInstance{
							{Identifier: "hp", Type: "Int", Value: json.RawMessage(`10`), DefUID: 31},
							{Identifier: "loot", Type: "Array<LocalEnum.ItemType>", Value: json.RawMessage(`["Sword", "Potion"]`), DefUID: 32},
							{Identifier: "target", Type: "Point", Value: json.RawMessage(`{"cx": 1, "cy": 2}`), DefUID: 33},
						},
					},
				},
			},
			{
				Identifier: "Ground", Type: "Tiles",
				CWid: 2, CHei: 3, GridSize: 16, Opacity: 1, Visible: true,
				PxTotalOffsetX: 2, PxTotalOffsetY: 4,
				TilesetDefUID:  intPtr(50),
				LayerDefUID:    42,
				GridTiles: []ldtkjson.TileInstance{
					{F: 0, Px: []int{0, 0}, Src: []int{0, 0}, T: 1},
					{F: 0, Px: []int{16, 0}, Src: []int{16, 0}, T: 2},
					{F: 2, Px: []int{0, 16}, Src: []int{32, 0}, T: 3},
					{F: 3, Px: []int{16, 16}, Src: []int{48, 0}, T: 4},
				},
			},
			{
				Identifier: "Decor", Type: "AutoLayer",
				CWid: 2, CHei: 3, GridSize: 16, Opacity: 0.8, Visible: false,
				LayerDefUID: 43,
				AutoLayerTiles: []ldtkjson.TileInstance{
					{F: 0, Px: []int{16, 0}, Src: []int{48, 16}, T: 9},
				},
			},
		},
	}
}

func loadWorld(t *testing.T, p *ldtkjson.Project) *World {
	t.Helper()
	schema, err := ldtkschema.Compile(&p.Defs)
	require.NoError(t, err)
	w, err := Load(context.Background(), p, schema)
	require.NoError(t, err)
	return w
}

func loadErr(t *testing.T, p *ldtkjson.Project) error {
	t.Helper()
	schema, err := ldtkschema.Compile(&p.Defs)
	require.NoError(t, err)
	w, err := Load(context.Background(), p, schema)
	require.Error(t, err)
	require.Nil(t, w)
	return err
}

func TestLoad(t *testing.T) {
	w := loadWorld(t, testProject())
	require.Len(t, w.Levels, 1)
	lvl := w.Levels[0]

	t.Run("level", func(t *testing.T) {
		assert.Equal(t, "Overworld", lvl.Ident)
		assert.Equal(t, 100, lvl.UID)
		assert.Equal(t, geo.IV(32, 48), lvl.SizePx)
		assert.Equal(t, geo.IV(32, -112), lvl.WorldPx)
		assert.Equal(t, "#40465b", lvl.BgColor.Hex())
		require.Len(t, lvl.Layers, 4)
	})

	t.Run("background", func(t *testing.T) {
		require.NotNil(t, lvl.Background)
		assert.Equal(t, "bg/clouds.png", lvl.Background.RelPath)
		// The anchor stays in image space; no Y inversion.
		assert.Equal(t, geo.IV(4, 6), lvl.Background.TopLeftPx)
	})

	t.Run("level fields", func(t *testing.T) {
		f := lvl.Fields
		assert.Equal(t, []string{"music", "theme", "spawn", "tint", "darkness", "indoor"}, f.Names())

		music, ok := f.Get("music")
		require.True(t, ok)
		s, ok := music.Text()
		require.True(t, ok)
		assert.Equal(t, "overworld.ogg", s)

		theme, _ := f.Get("theme")
		s, ok = theme.Text()
		require.True(t, ok)
		assert.Equal(t, "themes/forest.lua", s)

		spawn, _ := f.Get("spawn")
		pt, ok := spawn.Point()
		require.True(t, ok)
		assert.Equal(t, geo.V(8, 24), pt)

		tint, _ := f.Get("tint")
		c, ok := tint.Color()
		require.True(t, ok)
		assert.Equal(t, "#12ab34", c.Hex())

		darkness, _ := f.Get("darkness")
		fl, ok := darkness.Float()
		require.True(t, ok)
		assert.Equal(t, 0.25, fl)

		indoor, _ := f.Get("indoor")
		b, ok := indoor.Bool()
		require.True(t, ok)
		assert.True(t, b)
	})

	t.Run("intgrid layer", func(t *testing.T) {
		layer, ok := lvl.Layer("Collisions")
		require.True(t, ok)
		assert.Equal(t, ldtkschema.LayerIntGrid, layer.Kind)
		assert.Equal(t, geo.IV(2, 3), layer.SizeCells)
		assert.Equal(t, 16, layer.GridSize)
		assert.Equal(t, geo.IV(32, 48), layer.SizePx())
		assert.Equal(t, 40, layer.LayerDefUID)

		p, ok := layer.IntGrid()
		require.True(t, ok)
		// Rows swap top-to-bottom into bottom-to-top; cells within a
		// row keep their order.
		assert.Equal(t, []int{0, 1, 0, 0, 1, 0}, p.Values)

		require.Len(t, p.AutoTiles, 1)
		tile := p.AutoTiles[0]
		assert.True(t, tile.FlipX)
		assert.False(t, tile.FlipY)
		assert.Equal(t, geo.IV(0, -80), tile.PositionPx)
		assert.Equal(t, geo.IV(16, 0), tile.SrcPx)
		assert.Equal(t, 3, tile.ID)
	})

	t.Run("entities layer", func(t *testing.T) {
		layer, ok := lvl.Layer("Actors")
		require.True(t, ok)
		p, ok := layer.Entities()
		require.True(t, ok)
		require.Len(t, p.Entities, 1)

		e := p.Entities[0]
		assert.Equal(t, "Player", e.Ident)
		assert.Equal(t, geo.IV(16, 16), e.SizePx)
		assert.Equal(t, geo.IV(1, 2), e.GridPos)
		assert.Equal(t, geo.IV(24, -48), e.PositionPx)
		assert.Equal(t, geo.V(0, 0), e.Pivot)

		hp, ok := e.Fields.Get("hp")
		require.True(t, ok)
		n, ok := hp.Int()
		require.True(t, ok)
		assert.Equal(t, 10, n)

		loot, _ := e.Fields.Get("loot")
		items, ok := loot.Array()
		require.True(t, ok)
		require.Len(t, items, 2)
		sword, ok := items[0].Enum()
		require.True(t, ok)
		assert.Equal(t, "Sword", sword.Ident)
		assert.Equal(t, 0, sword.Index)
		potion, ok := items[1].Enum()
		require.True(t, ok)
		assert.Equal(t, "Potion", potion.Ident)
		assert.Equal(t, 1, potion.Index)

		target, _ := e.Fields.Get("target")
		pt, ok := target.Point()
		require.True(t, ok)
		assert.Equal(t, geo.V(1, 2), pt)
	})

	t.Run("tiles layer", func(t *testing.T) {
		layer, ok := lvl.Layer("Ground")
		require.True(t, ok)
		assert.Equal(t, geo.IV(2, -52), layer.TotalOffsetPx)
		require.NotNil(t, layer.TilesetUID)
		assert.Equal(t, 50, *layer.TilesetUID)

		p, ok := layer.Tiles()
		require.True(t, ok)
		require.NotNil(t, p.TilesetUID)
		assert.Equal(t, 50, *p.TilesetUID)

		require.Len(t, p.Tiles, 4)
		ids := []int{p.Tiles[0].ID, p.Tiles[1].ID, p.Tiles[2].ID, p.Tiles[3].ID}
		assert.Equal(t, []int{3, 4, 1, 2}, ids)

		assert.False(t, p.Tiles[0].FlipX)
		assert.True(t, p.Tiles[0].FlipY)
		assert.Equal(t, geo.IV(0, -64), p.Tiles[0].PositionPx)
		assert.Equal(t, geo.IV(32, 0), p.Tiles[0].SrcPx)

		assert.True(t, p.Tiles[1].FlipX)
		assert.True(t, p.Tiles[1].FlipY)

		assert.Equal(t, geo.IV(0, -48), p.Tiles[2].PositionPx)
		assert.Equal(t, geo.IV(0, 0), p.Tiles[2].SrcPx)
	})

	t.Run("autolayer", func(t *testing.T) {
		layer, ok := lvl.Layer("Decor")
		require.True(t, ok)
		assert.Equal(t, 0.8, layer.Opacity)
		assert.False(t, layer.Visible)

		p, ok := layer.AutoLayer()
		require.True(t, ok)
		require.Len(t, p.AutoTiles, 1)
		assert.Equal(t, 9, p.AutoTiles[0].ID)
		assert.Equal(t, geo.IV(16, -48), p.AutoTiles[0].PositionPx)
		assert.Equal(t, geo.IV(48, 16), p.AutoTiles[0].SrcPx)
	})

	t.Run("payload tags", func(t *testing.T) {
		for _, layer := range lvl.Layers {
			assert.Equal(t, layer.Kind, layer.Payload.Kind(), "layer %s", layer.Ident)
		}
	})

	t.Run("lookups", func(t *testing.T) {
		got, ok := w.Level("Overworld")
		require.True(t, ok)
		assert.Same(t, lvl, got)
		_, ok = w.Level("Nether")
		assert.False(t, ok)

		ts, ok := w.Tileset(50)
		require.True(t, ok)
		assert.Equal(t, "Dungeon", ts.Ident)
		assert.Equal(t, 16, ts.GridSize)
		assert.Equal(t, 1, ts.Padding)
		assert.Equal(t, 2, ts.Spacing)
		assert.Equal(t, geo.IV(8, 8), ts.CellSize)
		assert.Equal(t, "tiles/dungeon.png", ts.RelPath)
		_, ok = w.Tileset(99)
		assert.False(t, ok)
		assert.Len(t, w.Tilesets(), 1)

		ld, ok := w.LayerDef(40)
		require.True(t, ok)
		assert.Equal(t, "Collisions", ld.Ident)
		require.Len(t, ld.IntGrid, 1)
		assert.Equal(t, 1, ld.IntGrid[0].Value)
		assert.Equal(t, geo.RGB(1, 0, 0), ld.IntGrid[0].Color)
		assert.Equal(t, "Wall", ld.IntGrid[0].Ident)
		_, ok = w.LayerDef(99)
		assert.False(t, ok)
		assert.Len(t, w.LayerDefs(), 4)

		_, ok = lvl.Layer("Sky")
		assert.False(t, ok)
	})
}

// A raw document straight through the whole pipeline: parse, compile,
// load. The 2x2 grid [1,0 / 0,1] must come out with its rows swapped.
const intGridDoc = `{
	"jsonVersion": "1.5.3",
	"bgColor": "#000000",
	"externalLevels": false,
	"defs": {
		"enums": [],
		"entities": [],
		"layers": [
			{"identifier": "Walls", "__type": "IntGrid", "uid": 1, "gridSize": 8,
			 "intGridValues": [{"value": 1, "color": "#ff0000", "identifier": null}]}
		],
		"tilesets": [],
		"levelFields": []
	},
	"levels": [{
		"identifier": "Main",
		"uid": 2,
		"worldX": 0, "worldY": 0,
		"pxWid": 16, "pxHei": 16,
		"__bgColor": "#336699",
		"bgRelPath": null,
		"__bgPos": null,
		"fieldInstances": [],
		"layerInstances": [{
			"__identifier": "Walls", "__type": "IntGrid",
			"__cWid": 2, "__cHei": 2, "__gridSize": 8, "__opacity": 1,
			"__pxTotalOffsetX": 0, "__pxTotalOffsetY": 0,
			"__tilesetDefUid": null, "layerDefUid": 1, "visible": true,
			"intGridCsv": [1, 0, 0, 1],
			"autoLayerTiles": [], "gridTiles": [], "entityInstances": []
		}]
	}]
}`

func TestLoad_IntGridRowOrder(t *testing.T) {
	p, err := ldtkjson.Parse([]byte(intGridDoc))
	require.NoError(t, err)

	w := loadWorld(t, p)
	lvl, ok := w.Level("Main")
	require.True(t, ok)
	layer, ok := lvl.Layer("Walls")
	require.True(t, ok)
	grid, ok := layer.IntGrid()
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 1, 0}, grid.Values)
	assert.Nil(t, layer.TilesetUID)
}

func TestLoad_SplitProject(t *testing.T) {
	t.Run("external levels flag", func(t *testing.T) {
		p := testProject()
		p.ExternalLevels = true
		err := loadErr(t, p)

		var de *DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, UnsupportedSplitProject, de.Kind)
	})

	t.Run("level without layer data", func(t *testing.T) {
		p := testProject()
		p.Levels[0].LayerInstances = nil
		err := loadErr(t, p)

		var de *DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, UnsupportedSplitProject, de.Kind)
		assert.Contains(t, err.Error(), "loading level 'Overworld'")
	})
}

func TestLoad_MissingField(t *testing.T) {
	p := testProject()
	ent := &p.Levels[0].LayerInstances[1].EntityInstances[0]
	ent.FieldInstances = ent.FieldInstances[1:] // drop hp
	err := loadErr(t, p)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, MissingField, de.Kind)
	assert.Equal(t, "entity 'Player'", de.Owner)
	assert.Equal(t, "hp", de.Ident)
	assert.Contains(t, err.Error(), "missing required field 'hp'")
}

func TestLoad_MissingNullableField(t *testing.T) {
	p := testProject()
	lf := p.Levels[0].FieldInstances
	p.Levels[0].FieldInstances = lf[1:] // drop music, which can be null

	w := loadWorld(t, p)
	music, ok := w.Levels[0].Fields.Get("music")
	require.True(t, ok)
	assert.True(t, music.IsNull())
	_, ok = music.Text()
	assert.False(t, ok)
}

func TestLoad_UnmatchedEnumValue(t *testing.T) {
	p := testProject()
	ent := &p.Levels[0].LayerInstances[1].EntityInstances[0]
	ent.FieldInstances[1].Value = json.RawMessage(`["Sword", "Axe"]`)
	err := loadErr(t, p)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, UnmatchedEnumValue, de.Kind)
	assert.Equal(t, "Axe", de.Raw)
	assert.Equal(t, "ItemType", de.Ident)
	assert.Contains(t, err.Error(), `"Axe" is not a value of enum 'ItemType'`)
	assert.Contains(t, err.Error(), "entity 'Player'")
}

func TestLoad_UnknownEntityKind(t *testing.T) {
	p := testProject()
	actors := &p.Levels[0].LayerInstances[1]
	actors.EntityInstances = append(actors.EntityInstances, ldtkjson.EntityInstance{
		Identifier: "Goblin",
		Grid:       []int{0, 0},
		Pivot:      []float64{0.5, 0.5},
		Px:         []int{0, 0},
	})
	err := loadErr(t, p)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, UnknownEntityKind, de.Kind)
	assert.Equal(t, "Goblin", de.Ident)
	assert.Contains(t, err.Error(), "unknown entity kind 'Goblin'")
}

func TestLoad_UnknownLayerKind(t *testing.T) {
	p := testProject()
	p.Levels[0].LayerInstances[1].Type = "Fog"
	err := loadErr(t, p)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, UnknownLayerKind, de.Kind)
	assert.Equal(t, "Fog", de.Raw)
	assert.Contains(t, err.Error(), `unknown layer kind "Fog"`)
	assert.Contains(t, err.Error(), "loading layer 'Actors' of level 'Overworld'")
}

func TestLoad_MalformedColors(t *testing.T) {
	t.Run("level background", func(t *testing.T) {
		p := testProject()
		p.Levels[0].BgColor = "#xyzxyz"
		err := loadErr(t, p)

		var de *DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, MalformedColor, de.Kind)
		assert.Equal(t, "#xyzxyz", de.Raw)
	})

	t.Run("color field", func(t *testing.T) {
		p := testProject()
		p.Levels[0].FieldInstances[3].Value = json.RawMessage(`"#12"`)
		err := loadErr(t, p)

		var de *DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, MalformedColor, de.Kind)
		assert.Equal(t, "#12", de.Raw)
		assert.Contains(t, err.Error(), "field 'tint'")
	})
}

func TestLoad_IntGridSizeMismatch(t *testing.T) {
	p := testProject()
	grid := &p.Levels[0].LayerInstances[0]
	grid.IntGridCSV = grid.IntGridCSV[:5]
	err := loadErr(t, p)
	assert.Contains(t, err.Error(), "intgrid has 5 values, want 6")
	assert.Contains(t, err.Error(), "loading layer 'Collisions'")
}

func TestLoad_DuplicateIdentifiers(t *testing.T) {
	t.Run("layer", func(t *testing.T) {
		p := testProject()
		lis := p.Levels[0].LayerInstances
		p.Levels[0].LayerInstances = append(lis, lis[3])
		err := loadErr(t, p)
		assert.Contains(t, err.Error(), "loading layer 'Decor' of level 'Overworld': duplicate identifier")
	})

	t.Run("level", func(t *testing.T) {
		p := testProject()
		p.Levels = append(p.Levels, testLevel())
		err := loadErr(t, p)
		assert.Contains(t, err.Error(), "loading level 'Overworld': duplicate identifier")
	})
}

func TestLoad_MalformedCoordinates(t *testing.T) {
	t.Run("tile", func(t *testing.T) {
		p := testProject()
		p.Levels[0].LayerInstances[2].GridTiles[0].Px = []int{1}
		err := loadErr(t, p)
		assert.Contains(t, err.Error(), "tile 0: malformed px/src coordinates")
	})

	t.Run("entity", func(t *testing.T) {
		p := testProject()
		p.Levels[0].LayerInstances[1].EntityInstances[0].Grid = []int{1}
		err := loadErr(t, p)
		assert.Contains(t, err.Error(), "entity 'Player': malformed grid/px/pivot coordinates")
	})
}

func TestLoad_UndeclaredFieldIgnored(t *testing.T) {
	p := testProject()
	p.Levels[0].FieldInstances = append(p.Levels[0].FieldInstances, ldtkjson.FieldInstance{
		Identifier: "ghost",
		Type:       "Int",
		Value:      json.RawMessage(`1`),
	})

	w := loadWorld(t, p)
	_, ok := w.Levels[0].Fields.Get("ghost")
	assert.False(t, ok)
	assert.Equal(t, 6, w.Levels[0].Fields.Len())
}

func TestLoad_ContextCanceled(t *testing.T) {
	p := testProject()
	schema, err := ldtkschema.Compile(&p.Defs)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Load(ctx, p, schema)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewLoader(t *testing.T) {
	_, err := NewLoader(nil, nil)
	require.Error(t, err)

	p := testProject()
	schema, err := ldtkschema.Compile(&p.Defs)
	require.NoError(t, err)
	l, err := NewLoader(schema, nil)
	require.NoError(t, err)
	require.NotNil(t, l)
}

package ldtkjson

import "encoding/json"

// Level is one level's instance data. LayerInstances is nil when the
// project stores levels in external files, which this pipeline rejects.
type Level struct {
	Identifier     string              `json:"identifier"`
	UID            int                 `json:"uid"`
	WorldX         int                 `json:"worldX"`
	WorldY         int                 `json:"worldY"`
	PxWid          int                 `json:"pxWid"`
	PxHei          int                 `json:"pxHei"`
	BgColor        string              `json:"__bgColor"`
	BgRelPath      *string             `json:"bgRelPath"`
	BgPos          *BackgroundPosition `json:"__bgPos"`
	FieldInstances []FieldInstance     `json:"fieldInstances"`
	LayerInstances []LayerInstance     `json:"layerInstances"`
}

// BackgroundPosition describes where a level's background image lands.
type BackgroundPosition struct {
	TopLeftPx []int     `json:"topLeftPx"`
	Scale     []float64 `json:"scale"`
	CropRect  []float64 `json:"cropRect"`
}

// LayerInstance is one layer's instance data within a level. Exactly
// one of IntGridCSV+AutoLayerTiles, GridTiles, AutoLayerTiles or
// EntityInstances is meaningful depending on Type.
type LayerInstance struct {
	Identifier      string           `json:"__identifier"`
	Type            string           `json:"__type"`
	CWid            int              `json:"__cWid"`
	CHei            int              `json:"__cHei"`
	GridSize        int              `json:"__gridSize"`
	Opacity         float64          `json:"__opacity"`
	PxTotalOffsetX  int              `json:"__pxTotalOffsetX"`
	PxTotalOffsetY  int              `json:"__pxTotalOffsetY"`
	TilesetDefUID   *int             `json:"__tilesetDefUid"`
	LayerDefUID     int              `json:"layerDefUid"`
	Visible         bool             `json:"visible"`
	IntGridCSV      []int            `json:"intGridCsv"`
	AutoLayerTiles  []TileInstance   `json:"autoLayerTiles"`
	GridTiles       []TileInstance   `json:"gridTiles"`
	EntityInstances []EntityInstance `json:"entityInstances"`
}

// TileInstance is one placed tile. Px is the layer-space pixel position,
// Src the source position in the tileset atlas, F the flip bit field
// and T the tile id.
type TileInstance struct {
	F   int   `json:"f"`
	Px  []int `json:"px"`
	Src []int `json:"src"`
	T   int   `json:"t"`
}

// EntityInstance is one placed entity.
type EntityInstance struct {
	Identifier     string          `json:"__identifier"`
	Grid           []int           `json:"__grid"`
	Pivot          []float64       `json:"__pivot"`
	DefUID         int             `json:"defUid"`
	Width          int             `json:"width"`
	Height         int             `json:"height"`
	Px             []int           `json:"px"`
	FieldInstances []FieldInstance `json:"fieldInstances"`
}

// FieldInstance is one custom field value on a level or entity. Value
// stays raw; the loader decodes it against the compiled field type.
type FieldInstance struct {
	Identifier string          `json:"__identifier"`
	Type       string          `json:"__type"`
	Value      json.RawMessage `json:"__value"`
	DefUID     int             `json:"defUid"`
}

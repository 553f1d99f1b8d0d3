package ldtkjson

// Definitions is the schema section of a project document.
type Definitions struct {
	Enums       []EnumDef    `json:"enums"`
	Entities    []EntityDef  `json:"entities"`
	Layers      []LayerDef   `json:"layers"`
	Tilesets    []TilesetDef `json:"tilesets"`
	LevelFields []FieldDef   `json:"levelFields"`
}

// EnumDef declares a custom enumeration.
type EnumDef struct {
	Identifier string         `json:"identifier"`
	UID        int            `json:"uid"`
	Values     []EnumValueDef `json:"values"`
}

// EnumValueDef is a single enumeration value.
type EnumValueDef struct {
	ID string `json:"id"`
}

// FieldDef declares a custom field on an entity or level. Type carries
// the editor's kind string, e.g. "Int" or "Array<LocalEnum.ItemType>".
type FieldDef struct {
	Identifier string `json:"identifier"`
	Type       string `json:"__type"`
	IsArray    bool   `json:"isArray"`
	CanBeNull  bool   `json:"canBeNull"`
	UID        int    `json:"uid"`
}

// EntityDef declares an entity kind and its field schema.
type EntityDef struct {
	Identifier string     `json:"identifier"`
	UID        int        `json:"uid"`
	FieldDefs  []FieldDef `json:"fieldDefs"`
}

// LayerDef declares a layer and its kind ("IntGrid", "Entities",
// "Tiles" or "AutoLayer").
type LayerDef struct {
	Identifier    string            `json:"identifier"`
	Type          string            `json:"__type"`
	UID           int               `json:"uid"`
	GridSize      int               `json:"gridSize"`
	IntGridValues []IntGridValueDef `json:"intGridValues"`
}

// IntGridValueDef declares one value of an IntGrid palette, with its
// editor display color.
type IntGridValueDef struct {
	Value      int     `json:"value"`
	Color      string  `json:"color"`
	Identifier *string `json:"identifier"`
}

// TilesetDef declares a tileset atlas. CWid and CHei are the atlas
// dimensions in cells.
type TilesetDef struct {
	Identifier   string `json:"identifier"`
	UID          int    `json:"uid"`
	TileGridSize int    `json:"tileGridSize"`
	Padding      int    `json:"padding"`
	Spacing      int    `json:"spacing"`
	CWid         int    `json:"__cWid"`
	CHei         int    `json:"__cHei"`
	RelPath      string `json:"relPath"`
}

package encoding

// RawDocument is the serialized form of a document.
type RawDocument struct {
	Blocks    []RawBlock           `json:"blocks"`
	EntityMap map[string]RawEntity `json:"entityMap"`
}

// RawBlock is the serialized form of one block.
type RawBlock struct {
	Key               string                `json:"key"`
	Text              string                `json:"text"`
	Type              string                `json:"type"`
	Depth             int                   `json:"depth"`
	InlineStyleRanges []RawInlineStyleRange `json:"inlineStyleRanges"`
	EntityRanges      []RawEntityRange      `json:"entityRanges"`
	Data              map[string]any        `json:"data"`
}

// RawInlineStyleRange marks Length code points starting at Offset with
// Style.
type RawInlineStyleRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
}

// RawEntityRange marks Length code points starting at Offset with the
// entity stored under Key in the entity map.
type RawEntityRange struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
	Key    int `json:"key"`
}

// RawEntity is the serialized form of an entity.
type RawEntity struct {
	Type       string         `json:"type"`
	Mutability string         `json:"mutability"`
	Data       map[string]any `json:"data"`
}

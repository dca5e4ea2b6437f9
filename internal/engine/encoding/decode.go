package encoding

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/dshills/inkwell/internal/engine/content"
)

// Decode parses raw JSON into a RawDocument. Entity ranges that reference
// storage keys absent from the entity map are dropped, and storage keys
// are renumbered 0..n-1 in order of first reference, followed by any
// unreferenced entities.
func Decode(data []byte) (RawDocument, error) {
	if !gjson.ValidBytes(data) {
		return RawDocument{}, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	root := gjson.ParseBytes(data)
	blocks := root.Get("blocks")
	if !blocks.IsArray() {
		return RawDocument{}, fmt.Errorf("%w: missing blocks array", ErrMalformed)
	}

	entities := make(map[string]RawEntity)
	root.Get("entityMap").ForEach(func(k, v gjson.Result) bool {
		entities[k.String()] = RawEntity{
			Type:       v.Get("type").String(),
			Mutability: v.Get("mutability").String(),
			Data:       objectValue(v.Get("data")),
		}
		return true
	})

	doc := RawDocument{EntityMap: make(map[string]RawEntity)}
	renumber := make(map[string]int)
	assign := func(storageKey string) int {
		id, ok := renumber[storageKey]
		if !ok {
			id = len(renumber)
			renumber[storageKey] = id
			doc.EntityMap[strconv.Itoa(id)] = entities[storageKey]
		}
		return id
	}

	for _, b := range blocks.Array() {
		rb := RawBlock{
			Key:   b.Get("key").String(),
			Text:  b.Get("text").String(),
			Type:  b.Get("type").String(),
			Depth: int(b.Get("depth").Int()),
			Data:  objectValue(b.Get("data")),
		}
		for _, r := range b.Get("inlineStyleRanges").Array() {
			rb.InlineStyleRanges = append(rb.InlineStyleRanges, RawInlineStyleRange{
				Offset: int(r.Get("offset").Int()),
				Length: int(r.Get("length").Int()),
				Style:  r.Get("style").String(),
			})
		}
		for _, r := range b.Get("entityRanges").Array() {
			key := r.Get("key")
			if !key.Exists() {
				continue
			}
			if _, ok := entities[key.String()]; !ok {
				continue
			}
			rb.EntityRanges = append(rb.EntityRanges, RawEntityRange{
				Offset: int(r.Get("offset").Int()),
				Length: int(r.Get("length").Int()),
				Key:    assign(key.String()),
			})
		}
		doc.Blocks = append(doc.Blocks, rb)
	}

	for _, k := range sortedStorageKeys(entities) {
		assign(k)
	}
	return doc, nil
}

func objectValue(r gjson.Result) map[string]any {
	if !r.IsObject() {
		return nil
	}
	m, _ := r.Value().(map[string]any)
	return m
}

// sortedStorageKeys orders numeric keys by value, before any others.
func sortedStorageKeys[V any](m map[string]V) []string {
	return slices.SortedFunc(maps.Keys(m), func(a, b string) int {
		ai, aerr := strconv.Atoi(a)
		bi, berr := strconv.Atoi(b)
		switch {
		case aerr == nil && berr == nil:
			return cmp.Compare(ai, bi)
		case aerr == nil:
			return -1
		case berr == nil:
			return 1
		default:
			return cmp.Compare(a, b)
		}
	})
}

// FromRaw builds content from raw. Missing or duplicate block keys are
// replaced with fresh ones and entity ranges naming unknown storage keys
// are dropped.
func FromRaw(raw RawDocument) (*content.Content, error) {
	var entities content.EntityMap
	keys := make(map[string]string, len(raw.EntityMap))
	for _, sk := range sortedStorageKeys(raw.EntityMap) {
		re := raw.EntityMap[sk]
		m := content.Mutable
		if re.Mutability != "" {
			var err error
			if m, err = content.ParseMutability(re.Mutability); err != nil {
				return nil, fmt.Errorf("%w: entity %s: %w", ErrMalformed, sk, err)
			}
		}
		var key string
		entities, key = entities.Add(content.Entity{Type: re.Type, Mutability: m, Data: re.Data})
		keys[sk] = key
	}

	seen := make(map[string]struct{}, len(raw.Blocks))
	blocks := make([]*content.Block, 0, len(raw.Blocks))
	for i, rb := range raw.Blocks {
		key := rb.Key
		if _, dup := seen[key]; key == "" || dup {
			key = freshKey(seen)
		}
		seen[key] = struct{}{}

		text := []rune(rb.Text)
		chars := make([]content.CharMeta, len(text))
		for _, sr := range rb.InlineStyleRanges {
			if err := checkRange(i, sr.Offset, sr.Length, len(text)); err != nil {
				return nil, err
			}
			for j := sr.Offset; j < sr.Offset+sr.Length; j++ {
				chars[j].Style = chars[j].Style.Add(sr.Style)
			}
		}
		for _, er := range rb.EntityRanges {
			ek, ok := keys[strconv.Itoa(er.Key)]
			if !ok {
				continue
			}
			if err := checkRange(i, er.Offset, er.Length, len(text)); err != nil {
				return nil, err
			}
			for j := er.Offset; j < er.Offset+er.Length; j++ {
				chars[j].Entity = ek
			}
		}

		b, err := content.NewBlock(key, content.BlockType(rb.Type), rb.Text, chars, rb.Depth, emptyToNil(rb.Data))
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %w", ErrMalformed, i, err)
		}
		blocks = append(blocks, b)
	}

	return content.New(blocks, entities)
}

func checkRange(block, offset, length, textLen int) error {
	if offset < 0 || length < 0 || offset+length > textLen {
		return fmt.Errorf("%w: block %d: range [%d,%d) outside text of length %d",
			ErrMalformed, block, offset, offset+length, textLen)
	}
	return nil
}

func freshKey(seen map[string]struct{}) string {
	for {
		k := content.GenerateKey()
		if _, ok := seen[k]; !ok {
			return k
		}
	}
}

func emptyToNil(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	return m
}

// Unmarshal decodes raw JSON into content.
func Unmarshal(data []byte) (*content.Content, error) {
	raw, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return FromRaw(raw)
}

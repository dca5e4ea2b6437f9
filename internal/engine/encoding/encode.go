package encoding

import (
	"encoding/json"
	"slices"
	"strconv"

	"github.com/tidwall/pretty"

	"github.com/dshills/inkwell/internal/engine/content"
)

// ToRaw converts c into its canonical raw form. Only entities referenced
// by some block are emitted; they get storage keys 0..n-1 in order of
// first reference.
func ToRaw(c *content.Content) RawDocument {
	doc := RawDocument{
		Blocks:    make([]RawBlock, 0, c.Len()),
		EntityMap: make(map[string]RawEntity),
	}
	storage := make(map[string]int)

	for _, b := range c.Blocks() {
		rb := RawBlock{
			Key:               b.Key(),
			Text:              b.Text(),
			Type:              string(b.Type()),
			Depth:             b.Depth(),
			InlineStyleRanges: []RawInlineStyleRange{},
			EntityRanges:      []RawEntityRange{},
			Data:              b.Data(),
		}
		if rb.Data == nil {
			rb.Data = map[string]any{}
		}

		for _, name := range styleNames(b) {
			for _, r := range b.StyleRanges(name) {
				rb.InlineStyleRanges = append(rb.InlineStyleRanges, RawInlineStyleRange{
					Offset: r.Start,
					Length: r.Len(),
					Style:  name,
				})
			}
		}

		for _, er := range b.EntityRanges() {
			id, ok := storage[er.Key]
			if !ok {
				id = len(storage)
				storage[er.Key] = id
				doc.EntityMap[strconv.Itoa(id)] = rawEntity(c, er.Key)
			}
			rb.EntityRanges = append(rb.EntityRanges, RawEntityRange{
				Offset: er.Start,
				Length: er.Len(),
				Key:    id,
			})
		}

		doc.Blocks = append(doc.Blocks, rb)
	}
	return doc
}

func rawEntity(c *content.Content, key string) RawEntity {
	e, _ := c.Entity(key)
	data := e.Data
	if data == nil {
		data = map[string]any{}
	}
	return RawEntity{Type: e.Type, Mutability: e.Mutability.String(), Data: data}
}

// styleNames returns every style used in b, sorted.
func styleNames(b *content.Block) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, ch := range b.Chars() {
		for _, n := range ch.Style.Names() {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}
	slices.Sort(names)
	return names
}

// Marshal encodes c as compact canonical JSON.
func Marshal(c *content.Content) ([]byte, error) {
	return json.Marshal(ToRaw(c))
}

// MarshalIndent encodes c as indented canonical JSON.
func MarshalIndent(c *content.Content) ([]byte, error) {
	data, err := Marshal(c)
	if err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(data, &pretty.Options{Width: 80, Indent: "  "}), nil
}

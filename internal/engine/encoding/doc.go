// Package encoding converts documents to and from the raw JSON form.
//
// The raw form mirrors the content model: a list of blocks, each carrying
// its text, type, depth, data and range lists for inline styles and
// entities, plus an entity map keyed by storage key. All offsets and
// lengths count code points, not bytes or UTF-16 units.
//
// Encoding is canonical: style ranges are sorted by style name then
// offset, entity ranges by offset, and entity storage keys are assigned
// 0..n-1 in order of first reference. Encoding the decoded form of a
// canonical document reproduces it byte for byte.
//
// Decoding is tolerant. Entity keys may be numbers or strings, optional
// fields may be absent, and entity ranges that point at storage keys
// missing from the entity map are dropped. Structural problems (ranges
// outside the block text, unknown mutability names, malformed JSON) are
// reported as ErrMalformed.
package encoding

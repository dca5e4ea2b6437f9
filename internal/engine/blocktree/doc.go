// Package blocktree segments a block into the leaf structure a renderer
// produces for it, and derives the structural fingerprint used to decide
// whether the host surface may keep its own rendering after an edit.
//
// A block is split first by decorator: maximal runs of characters sharing a
// decorator key form a LeafSet. Each LeafSet is split again into Leaves,
// maximal runs of identical inline style. Every leaf is addressed on the
// host by an offset key "<blockKey>-<leafSetIndex>-<leafIndex>".
//
// Two blocks with equal fingerprints render to the same number of leaf sets
// and leaves with the same decorator assignment, so a host holding the
// rendering of one can represent the other by editing text in place.
package blocktree

package reconcile

import "errors"

// Errors describing why a host point could not be resolved.
var (
	// ErrUnknownNode indicates the host does not recognize the node.
	ErrUnknownNode = errors.New("host node is not rendered by the editor")

	// ErrUnknownBlock indicates the node's offset key names a missing block.
	ErrUnknownBlock = errors.New("offset key references unknown block")

	// ErrStaleLeaf indicates the leaf indices do not exist in the block tree.
	ErrStaleLeaf = errors.New("offset key references a leaf that no longer exists")

	// ErrOffsetOutOfRange indicates a host offset beyond its leaf.
	ErrOffsetOutOfRange = errors.New("host offset outside leaf")
)

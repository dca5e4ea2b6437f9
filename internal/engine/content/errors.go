package content

import "errors"

// Errors returned by content operations.
var (
	// ErrAnnotationLength indicates a block whose metadata list does not
	// match its text length.
	ErrAnnotationLength = errors.New("character metadata length does not match text length")

	// ErrDuplicateKey indicates two blocks share a key.
	ErrDuplicateKey = errors.New("duplicate block key")

	// ErrNegativeDepth indicates a block with depth < 0.
	ErrNegativeDepth = errors.New("block depth must be non-negative")

	// ErrEntityMissing indicates a block references an entity that is not in
	// the entity map. This is data corruption.
	ErrEntityMissing = errors.New("entity referenced by block is missing")

	// ErrUnknownMutability indicates an unrecognized mutability name.
	ErrUnknownMutability = errors.New("unknown entity mutability")
)

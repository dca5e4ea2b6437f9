package modifier

import (
	"errors"
	"fmt"

	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/selection"
)

// Errors returned by edit operations.
var (
	// ErrInvalidRange indicates a selection that cannot be applied to the
	// content (unknown block, offset out of bounds, bad direction).
	ErrInvalidRange = errors.New("invalid range")

	// ErrNewlineInText indicates insertion text containing a newline.
	ErrNewlineInText = errors.New("insertion text contains a newline")

	// ErrNoAdjacentBlock indicates a merge with no following block.
	ErrNoAdjacentBlock = errors.New("no adjacent block")

	// ErrUnknownEntity indicates an operation was given an entity key that
	// is not in the entity map.
	ErrUnknownEntity = errors.New("unknown entity")
)

// Direction is the removal direction, used to resolve segmented entities.
type Direction int

const (
	// Backward removes towards the start of the document (Backspace).
	Backward Direction = iota
	// Forward removes towards the end of the document (Delete).
	Forward
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

func validate(c *content.Content, sel selection.Selection) error {
	if err := c.ValidateSelection(sel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}
	return nil
}

func checkEntity(c *content.Content, key string) error {
	if key != "" && !c.Entities().Has(key) {
		return fmt.Errorf("%w: %q", ErrUnknownEntity, key)
	}
	return nil
}

// mustBlock returns a block known to exist after validation.
func mustBlock(c *content.Content, key string) *content.Block {
	b, ok := c.Block(key)
	if !ok {
		panic(fmt.Sprintf("modifier: block %q vanished after validation", key))
	}
	return b
}

package blocktree

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedOffsetKey indicates an offset key that cannot be decoded.
var ErrMalformedOffsetKey = errors.New("malformed offset key")

// OffsetKey addresses one rendered leaf of a block.
type OffsetKey struct {
	BlockKey  string
	SetIndex  int
	LeafIndex int
}

// String encodes the key as "<blockKey>-<setIndex>-<leafIndex>".
func (k OffsetKey) String() string {
	return k.BlockKey + "-" + strconv.Itoa(k.SetIndex) + "-" + strconv.Itoa(k.LeafIndex)
}

// ParseOffsetKey decodes an offset key. Block keys may themselves contain
// dashes; the last two fields are the indices.
func ParseOffsetKey(s string) (OffsetKey, error) {
	j := strings.LastIndexByte(s, '-')
	if j <= 0 {
		return OffsetKey{}, fmt.Errorf("%w: %q", ErrMalformedOffsetKey, s)
	}
	i := strings.LastIndexByte(s[:j], '-')
	if i <= 0 {
		return OffsetKey{}, fmt.Errorf("%w: %q", ErrMalformedOffsetKey, s)
	}
	set, err := strconv.Atoi(s[i+1 : j])
	if err != nil || set < 0 {
		return OffsetKey{}, fmt.Errorf("%w: %q", ErrMalformedOffsetKey, s)
	}
	leaf, err := strconv.Atoi(s[j+1:])
	if err != nil || leaf < 0 {
		return OffsetKey{}, fmt.Errorf("%w: %q", ErrMalformedOffsetKey, s)
	}
	return OffsetKey{BlockKey: s[:i], SetIndex: set, LeafIndex: leaf}, nil
}

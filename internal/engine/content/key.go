package content

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// GenerateKey returns a new random block key.
func GenerateKey() string {
	id := uuid.New()
	return hex.EncodeToString(id[:4])
}

// NewKey returns a random key that is not used by any block in c.
func (c *Content) NewKey() string {
	for {
		k := GenerateKey()
		if _, ok := c.index[k]; !ok {
			return k
		}
	}
}

package xcipher

import (
	"errors"
	"fmt"
)

// ErrEmptyKey is returned when a transform is requested with a zero-length
// key. Password-derived keys are never empty, but the check keeps the modulo
// arithmetic total.
var ErrEmptyKey = errors.New("cannot use an empty key")

// Transform XORs data against the repeating key: out[i] = data[i] ^
// key[i % len(key)]. The result always has the same length as data, and
// Transform(Transform(data, key), key) == data for any non-empty key.
// Nothing besides the two arguments influences the output.
func Transform(data []byte, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ key[i%len(key)]
	}
	return out, nil
}

type cursor struct {
	key  []byte
	init int
	pos  int
}

func newCursor(key []byte, offset ...int) (*cursor, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	c := &cursor{key: key}
	if len(offset) > 0 {
		if offset[0] < 0 || offset[0] >= len(key) {
			return nil, fmt.Errorf("offset %d out of range for key of len %d", offset[0], len(key))
		}
		c.init = offset[0]
		c.pos = c.init
	}
	return c, nil
}

func (c *cursor) apply(b byte) byte {
	b ^= c.key[c.pos]
	c.pos = (c.pos + 1) % len(c.key)
	return b
}

func (c *cursor) rewind() {
	c.pos = c.init
}

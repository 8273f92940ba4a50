package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// Short returns a truncated hash fragment suitable for display
func (h Hash) Short() string {
	if len(h) <= 8 {
		return string(h)
	}
	return string(h[:8])
}

// RowHash identifies a row by its full cell content
type RowHash Hash

func NewRowHash(data []byte) RowHash { return RowHash(NewHash(data)) }

func (h RowHash) String() string { return Hash(h).String() }
func (h RowHash) Short() string  { return Hash(h).Short() }

// HashFields computes a content hash over ordered field values. Values are
// joined with a unit separator so adjacent cells cannot collide.
func HashFields(values []string) RowHash {
	var data strings.Builder
	for i, v := range values {
		if i > 0 {
			data.WriteByte(0x1f)
		}
		data.WriteString(v)
	}
	return NewRowHash([]byte(data.String()))
}

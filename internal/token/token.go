// Package token generates invitation tokens.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// DefaultBytes is 256 bits of entropy.
const DefaultBytes = 32

// Generator produces unguessable invitation tokens.
type Generator interface {
	Generate() (string, error)
}

// Random reads tokens from a cryptographically secure source and hex encodes them.
type Random struct {
	size   int
	source io.Reader
}

// NewRandom returns a generator emitting size random bytes per token.
func NewRandom(size int) *Random {
	if size < DefaultBytes {
		size = DefaultBytes
	}
	return &Random{size: size, source: rand.Reader}
}

// Generate returns a fixed-length hex token.
func (r *Random) Generate() (string, error) {
	buf := make([]byte, r.size)
	if _, err := io.ReadFull(r.source, buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

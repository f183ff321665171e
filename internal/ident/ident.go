// ABOUTME: Collision-resistant identifier generation for points and features
// ABOUTME: Produces v4-UUID-shaped strings with a PRNG fallback of the same shape

package ident

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

const hexDigits = "0123456789abcdef"

// New returns a v4-UUID-shaped identifier (36 chars, hyphenated).
// It prefers the crypto-backed generator and falls back to a
// pseudo-random id with the identical textual shape, so callers never
// have to care which source produced it. Uniqueness is probabilistic,
// not guaranteed.
func New() string {
	id, err := uuid.NewRandom()
	if err == nil {
		return id.String()
	}
	return pseudoRandomID()
}

// pseudoRandomID builds a v4-shaped id from math/rand. Used only when
// the crypto source is unavailable.
func pseudoRandomID() string {
	buf := make([]byte, 0, 36)
	for _, c := range "xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx" {
		switch c {
		case 'x':
			buf = append(buf, hexDigits[rand.IntN(16)])
		case 'y':
			// Variant bits: one of 8, 9, a, b.
			buf = append(buf, hexDigits[8+rand.IntN(4)])
		default:
			buf = append(buf, byte(c))
		}
	}
	return string(buf)
}

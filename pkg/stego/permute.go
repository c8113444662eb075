package stego

import (
	"crypto/sha256"
	"encoding/hex"
	"math/bits"
)

// The pixel order is a wire-format contract: an image embedded by one
// implementation must extract with any other. Every operation below is
// unsigned 32-bit with wraparound, and the generator is seeded from the
// hex digest of the password, not the password itself, so permutation
// strength does not depend on password length.

// mixer is a 32-bit pseudo-random generator. Each call to next advances
// the state, so one mixer drives exactly one shuffle.
type mixer struct {
	h uint32
}

func newMixer(password string) *mixer {
	sum := sha256.Sum256([]byte(password))
	digest := hex.EncodeToString(sum[:])

	h := uint32(1779033703) ^ uint32(len(digest))
	for i := 0; i < len(digest); i++ {
		h = (h ^ uint32(digest[i])) * 3432918353
		h = bits.RotateLeft32(h, 13)
	}
	return &mixer{h: h}
}

// next returns a value in [0, 1).
func (m *mixer) next() float64 {
	h := m.h
	h ^= h >> 16
	h *= 2246822507
	h ^= h >> 13
	h *= 3266489909
	h ^= h >> 16
	m.h = h
	return float64(h) / 4294967296.0
}

// pixelOrder returns a permutation of [0, count) derived from the
// password. Same password and count, same order, always.
func pixelOrder(password string, count int) []int {
	order := make([]int, count)
	for i := range order {
		order[i] = i
	}

	m := newMixer(password)
	for i := count - 1; i >= 1; i-- {
		j := int(m.next() * float64(i+1))
		order[i], order[j] = order[j], order[i]
	}
	return order
}

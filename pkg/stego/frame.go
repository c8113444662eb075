package stego

import (
	"encoding/binary"
	"fmt"
)

// headerBits is the size of the big-endian bit-length prefix.
const headerBits = 32

// ciphertextBytes maps a ciphertext string to its 8-bit code points.
// The wire format has one byte per character, so anything outside the
// Latin-1 range is a defect in the cipher layer, not valid input.
func ciphertextBytes(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return nil, fmt.Errorf("ciphertext character %q does not fit in 8 bits", r)
		}
		out = append(out, byte(r))
	}
	return out, nil
}

// frame prefixes the body's bits with their count as a big-endian 32-bit
// header. Bits are most significant first, matching the header encoding.
func frame(body []byte) []uint8 {
	out := make([]uint8, 0, headerBits+len(body)*8)

	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(body)*8))
	for _, b := range header {
		out = appendBits(out, b)
	}
	for _, b := range body {
		out = appendBits(out, b)
	}
	return out
}

func appendBits(dst []uint8, b byte) []uint8 {
	for i := 7; i >= 0; i-- {
		dst = append(dst, (b>>uint(i))&1)
	}
	return dst
}

// parseHeader reads the first 32 bits as a big-endian unsigned integer.
// The caller guarantees at least headerBits entries.
func parseHeader(bits []uint8) uint32 {
	var v uint32
	for _, b := range bits[:headerBits] {
		v = v<<1 | uint32(b)
	}
	return v
}

// unframeBody converts length bits back into bytes, 8 bits per byte,
// most significant first. Leftover bits beyond the last full group are
// ignored; a length of 0 yields an empty body.
func unframeBody(bits []uint8, length uint32) ([]byte, error) {
	if uint32(len(bits)) < length {
		return nil, fmt.Errorf("body needs %d bits, have %d", length, len(bits))
	}
	out := make([]byte, 0, length/8)
	for i := uint32(0); i+8 <= length; i += 8 {
		var b byte
		for j := uint32(0); j < 8; j++ {
			b = b<<1 | bits[i+j]
		}
		out = append(out, b)
	}
	return out, nil
}

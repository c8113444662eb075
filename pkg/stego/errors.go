package stego

import "fmt"

// CapacityExceededError reports a payload that does not fit in the cover
// image. Both counts are in bits.
type CapacityExceededError struct {
	Required  int
	Available int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("payload of %d bits exceeds image capacity of %d bits", e.Required, e.Available)
}

// HeaderReadError reports an image too small to hold even the 32-bit
// length header.
type HeaderReadError struct {
	Available int
}

func (e *HeaderReadError) Error() string {
	return fmt.Sprintf("image holds %d bits, need at least %d for the header", e.Available, headerBits)
}

// InvalidLengthError reports a header length that no embedding could have
// produced. During extraction this is the usual symptom of a wrong
// password: the permuted header bits decode to an implausible value.
type InvalidLengthError struct {
	Length   uint32
	Capacity int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("header declares %d payload bits, image capacity is %d", e.Length, e.Capacity)
}

// TruncatedPayloadError reports a pixel order exhausted before the
// declared payload length was satisfied.
type TruncatedPayloadError struct {
	Expected int
	Read     int
}

func (e *TruncatedPayloadError) Error() string {
	return fmt.Sprintf("pixel order exhausted after %d of %d payload bits", e.Read, e.Expected)
}

// DecryptionError reports a ciphertext that could not be decrypted,
// typically a wrong password or corrupted stego image.
type DecryptionError struct {
	Reason string
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("decryption failed: %s", e.Reason)
}

// ImageDecodeError wraps a failure to read a cover or stego image.
type ImageDecodeError struct {
	Path string
	Err  error
}

func (e *ImageDecodeError) Error() string {
	return fmt.Sprintf("cannot decode image %s: %v", e.Path, e.Err)
}

func (e *ImageDecodeError) Unwrap() error { return e.Err }

// ImageEncodeError wraps a failure to write the output image.
type ImageEncodeError struct {
	Path string
	Err  error
}

func (e *ImageEncodeError) Error() string {
	return fmt.Sprintf("cannot encode image %s: %v", e.Path, e.Err)
}

func (e *ImageEncodeError) Unwrap() error { return e.Err }

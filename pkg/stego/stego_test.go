package stego

import (
	"crypto/rand"
	"errors"
	"image"
	"testing"
)

func testImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	rand.Read(img.Pix)
	// Opaque alpha so PNG round trips through other tooling cleanly.
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

// writeBits overwrites LSBs along the permuted order, bypassing the
// framer. Used to construct corrupt headers.
func writeBits(img *image.NRGBA, password string, bits []uint8) {
	width := img.Bounds().Dx()
	cur := newChannelCursor(pixelOrder(password, width*img.Bounds().Dy()))
	for _, b := range bits {
		pixel, channel, _ := cur.next()
		off := img.PixOffset(pixel%width, pixel/width) + channel
		img.Pix[off] = img.Pix[off]&0xFE | b
	}
}

func TestEmbedExtractRoundTrip(t *testing.T) {
	img := testImage(64, 64)
	message := "The quick brown fox jumps over the lazy dog"
	password := "correct-horse-battery-staple"

	if err := EmbedImage(img, message, password, Options{}); err != nil {
		t.Fatalf("EmbedImage failed: %v", err)
	}

	got, err := ExtractImage(img, password, Options{})
	if err != nil {
		t.Fatalf("ExtractImage failed: %v", err)
	}
	if got != message {
		t.Errorf("round trip mismatch:\ngot  %q\nwant %q", got, message)
	}
}

func TestEmbedExtractRoundTripECC(t *testing.T) {
	img := testImage(64, 64)
	message := "armored payload"
	password := "pw"
	opts := Options{ECC: true}

	if err := EmbedImage(img, message, password, opts); err != nil {
		t.Fatalf("EmbedImage with ECC failed: %v", err)
	}
	got, err := ExtractImage(img, password, opts)
	if err != nil {
		t.Fatalf("ExtractImage with ECC failed: %v", err)
	}
	if got != message {
		t.Errorf("ECC round trip mismatch: got %q, want %q", got, message)
	}
}

func TestEmbedLeavesAlphaUntouched(t *testing.T) {
	img := testImage(32, 32)
	before := make([]uint8, len(img.Pix))
	copy(before, img.Pix)

	if err := EmbedImage(img, "alpha check", "pw", Options{}); err != nil {
		t.Fatalf("EmbedImage failed: %v", err)
	}

	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != before[i] {
			t.Fatalf("alpha channel of pixel %d changed from %d to %d", i/4, before[i], img.Pix[i])
		}
	}
}

func TestEmbedOnlyTouchesLSBs(t *testing.T) {
	img := testImage(32, 32)
	before := make([]uint8, len(img.Pix))
	copy(before, img.Pix)

	if err := EmbedImage(img, "lsb check", "pw", Options{}); err != nil {
		t.Fatalf("EmbedImage failed: %v", err)
	}

	for i := range img.Pix {
		if img.Pix[i]&0xFE != before[i]&0xFE {
			t.Fatalf("byte %d changed above the LSB: %08b -> %08b", i, before[i], img.Pix[i])
		}
	}
}

func TestCapacityBoundary(t *testing.T) {
	// 8x8 image: capacity 192 bits, so a 20-byte body (160 bits + 32
	// header) fills it exactly.
	img := testImage(8, 8)
	exact := make([]byte, 20)

	if err := embedBody(img, exact, "pw", nil); err != nil {
		t.Fatalf("embedding a payload of exactly capacity failed: %v", err)
	}

	over := make([]byte, 21)
	err := embedBody(testImage(8, 8), over, "pw", nil)
	var capErr *CapacityExceededError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapacityExceededError, got %v", err)
	}
	if capErr.Required != 200 || capErr.Available != 192 {
		t.Errorf("got required=%d available=%d, want 200/192", capErr.Required, capErr.Available)
	}
}

func TestCapacityExceededScenario(t *testing.T) {
	// The canonical failure case: a 10x10 image holds 300 bits; a
	// 40-character ciphertext needs 320 body bits plus the 32-bit
	// header.
	img := testImage(10, 10)
	body := make([]byte, 40)

	err := embedBody(img, body, "pw", nil)
	var capErr *CapacityExceededError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapacityExceededError, got %v", err)
	}
	if capErr.Required != 352 || capErr.Available != 300 {
		t.Errorf("got required=%d available=%d, want 352/300", capErr.Required, capErr.Available)
	}
}

func TestCapacityExceededLeavesImageUntouched(t *testing.T) {
	img := testImage(10, 10)
	before := make([]uint8, len(img.Pix))
	copy(before, img.Pix)

	if err := embedBody(img, make([]byte, 40), "pw", nil); err == nil {
		t.Fatal("expected capacity error")
	}
	for i := range img.Pix {
		if img.Pix[i] != before[i] {
			t.Fatal("failed embed must not mutate any pixel")
		}
	}
}

func TestHeaderReadError(t *testing.T) {
	// 3x3 image: 27 bits of capacity cannot hold the 32-bit header.
	img := testImage(3, 3)

	_, err := extractBody(img, "pw", nil)
	var hdrErr *HeaderReadError
	if !errors.As(err, &hdrErr) {
		t.Fatalf("expected HeaderReadError, got %v", err)
	}
	if hdrErr.Available != 27 {
		t.Errorf("got available=%d, want 27", hdrErr.Available)
	}
}

func TestInvalidLengthError(t *testing.T) {
	// Declare 300 payload bits in a 192-bit image.
	img := testImage(8, 8)
	writeBits(img, "pw", headerFor(300))

	_, err := extractBody(img, "pw", nil)
	var lenErr *InvalidLengthError
	if !errors.As(err, &lenErr) {
		t.Fatalf("expected InvalidLengthError, got %v", err)
	}
	if lenErr.Length != 300 || lenErr.Capacity != 192 {
		t.Errorf("got length=%d capacity=%d, want 300/192", lenErr.Length, lenErr.Capacity)
	}
}

func TestTruncatedPayloadError(t *testing.T) {
	// Declare 192 bits, which fits capacity but not the 160 channels
	// that remain after the header.
	img := testImage(8, 8)
	writeBits(img, "pw", headerFor(192))

	_, err := extractBody(img, "pw", nil)
	var truncErr *TruncatedPayloadError
	if !errors.As(err, &truncErr) {
		t.Fatalf("expected TruncatedPayloadError, got %v", err)
	}
	if truncErr.Expected != 192 || truncErr.Read != 160 {
		t.Errorf("got expected=%d read=%d, want 192/160", truncErr.Expected, truncErr.Read)
	}
}

func TestExtractWrongPassword(t *testing.T) {
	img := testImage(64, 64)
	if err := EmbedImage(img, "Secret", "correct", Options{}); err != nil {
		t.Fatalf("EmbedImage failed: %v", err)
	}

	_, err := ExtractImage(img, "wrong", Options{})
	if err == nil {
		t.Fatal("expected error when extracting with wrong password, got nil")
	}

	// A wrong password almost always shows up as an implausible header
	// length; the rare survivors die at authentication.
	var lenErr *InvalidLengthError
	var truncErr *TruncatedPayloadError
	var decErr *DecryptionError
	if !errors.As(err, &lenErr) && !errors.As(err, &truncErr) && !errors.As(err, &decErr) {
		t.Errorf("unexpected error kind: %v", err)
	}
}

func TestTamperedBodyFailsDecryption(t *testing.T) {
	img := testImage(14, 14)
	password := "pw"
	if err := EmbedImage(img, "tamper", password, Options{}); err != nil {
		t.Fatalf("EmbedImage failed: %v", err)
	}

	// Flip the LSB carrying payload bit 40 (well inside the body).
	width := img.Bounds().Dx()
	cur := newChannelCursor(pixelOrder(password, width*img.Bounds().Dy()))
	var off int
	for i := 0; i <= 40; i++ {
		pixel, channel, _ := cur.next()
		off = img.PixOffset(pixel%width, pixel/width) + channel
	}
	img.Pix[off] ^= 1

	_, err := ExtractImage(img, password, Options{})
	var decErr *DecryptionError
	if !errors.As(err, &decErr) {
		t.Errorf("expected DecryptionError after tampering, got %v", err)
	}
}

func TestCapacity(t *testing.T) {
	tests := []struct {
		width, height, want int
	}{
		{10, 10, 300},
		{8, 8, 192},
		{1, 1, 3},
		{0, 5, 0},
	}
	for _, tt := range tests {
		if got := Capacity(tt.width, tt.height); got != tt.want {
			t.Errorf("Capacity(%d, %d) = %d, want %d", tt.width, tt.height, got, tt.want)
		}
	}
}

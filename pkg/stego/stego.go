package stego

import (
	"fmt"
	"image"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

// Options controls optional codec behavior shared by embed and extract.
type Options struct {
	// ECC wraps the ciphertext in Reed-Solomon parity before framing.
	// Both sides must agree on it: armored images do not interoperate
	// with plain decoders.
	ECC bool
}

// Capacity returns the number of payload bits an image of the given
// dimensions can carry: one bit per R, G and B channel of every pixel.
func Capacity(width, height int) int {
	return width * height * channelsPerPixel
}

// progressFn receives the running bit count during an embed or extract
// walk. It exists so the file-level commands can drive a progress bar
// without the codec knowing about terminals.
type progressFn func(done, total int)

// EmbedImage hides plaintext inside img's color channel LSBs, keyed by
// password. img is mutated in place and must have its origin at (0,0),
// as produced by copyImage. Nothing is written if the payload does not
// fit.
func EmbedImage(img *image.NRGBA, plaintext, password string, opts Options) error {
	ciphertext, err := encrypt(plaintext, password)
	if err != nil {
		return err
	}
	body, err := ciphertextBytes(ciphertext)
	if err != nil {
		return err
	}
	if opts.ECC {
		if body, err = armorProtect(body); err != nil {
			return err
		}
	}
	return embedBody(img, body, password, nil)
}

// ExtractImage recovers the plaintext hidden in img under password.
func ExtractImage(img *image.NRGBA, password string, opts Options) (string, error) {
	body, err := extractBody(img, password, nil)
	if err != nil {
		return "", err
	}
	if opts.ECC {
		if body, err = armorRecover(body); err != nil {
			return "", fmt.Errorf("error correction failed: %w", err)
		}
	}
	return decrypt(string(body), password)
}

func embedBody(img *image.NRGBA, body []byte, password string, progress progressFn) error {
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	payload := frame(body)
	capacity := Capacity(width, height)
	if len(payload) > capacity {
		return &CapacityExceededError{Required: len(payload), Available: capacity}
	}

	cur := newChannelCursor(pixelOrder(password, width*height))
	for i, bit := range payload {
		// The capacity check above guarantees the cursor outlasts the payload.
		pixel, channel, _ := cur.next()
		off := img.PixOffset(pixel%width, pixel/width) + channel
		img.Pix[off] = img.Pix[off]&0xFE | bit
		if progress != nil {
			progress(i+1, len(payload))
		}
	}
	return nil
}

func extractBody(img *image.NRGBA, password string, progress progressFn) ([]byte, error) {
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	capacity := Capacity(width, height)
	if capacity < headerBits {
		return nil, &HeaderReadError{Available: capacity}
	}

	cur := newChannelCursor(pixelOrder(password, width*height))

	header := make([]uint8, 0, headerBits)
	for len(header) < headerBits {
		pixel, channel, ok := cur.next()
		if !ok {
			return nil, &HeaderReadError{Available: capacity}
		}
		header = append(header, lsbAt(img, width, pixel, channel))
	}

	length := parseHeader(header)
	if int64(length) > int64(capacity) {
		return nil, &InvalidLengthError{Length: length, Capacity: capacity}
	}

	// The body continues from the cursor's current position, which after
	// 32 header bits sits mid-pixel. Re-reading or skipping a channel
	// here would desynchronize every following bit.
	body := make([]uint8, 0, length)
	for uint32(len(body)) < length {
		pixel, channel, ok := cur.next()
		if !ok {
			return nil, &TruncatedPayloadError{Expected: int(length), Read: len(body)}
		}
		body = append(body, lsbAt(img, width, pixel, channel))
		if progress != nil {
			progress(len(body), int(length))
		}
	}

	return unframeBody(body, length)
}

func lsbAt(img *image.NRGBA, width, pixel, channel int) uint8 {
	return img.Pix[img.PixOffset(pixel%width, pixel/width)+channel] & 1
}

// ConcealArgs are the inputs of the file-level Conceal operation.
type ConcealArgs struct {
	ImagePath string
	Password  string
	Message   string
	Output    string
	ECC       bool
	Verbose   bool
}

// RevealArgs are the inputs of the file-level Reveal operation.
type RevealArgs struct {
	ImagePath string
	Password  string
	ECC       bool
	Verbose   bool
}

// Conceal loads the cover image, embeds the message and writes the stego
// image as PNG. Lossy output would destroy the LSBs, so the output format
// is not configurable.
func Conceal(args *ConcealArgs) error {
	src, err := loadImage(args.ImagePath)
	if err != nil {
		return err
	}
	img := copyImage(src)
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	if args.Verbose {
		log.Debug().Int("width", width).Int("height", height).Msg("Image dimensions")
		log.Debug().Int("capacity", Capacity(width, height)).Msg("Payload capacity in bits")
	}

	ciphertext, err := encrypt(args.Message, args.Password)
	if err != nil {
		return err
	}
	body, err := ciphertextBytes(ciphertext)
	if err != nil {
		return err
	}
	if args.ECC {
		if body, err = armorProtect(body); err != nil {
			return err
		}
	}

	if args.Verbose {
		log.Debug().Int("required", headerBits+len(body)*8).Msg("Payload size in bits")
	}

	bar := progressbar.NewOptions(
		headerBits+len(body)*8,
		progressbar.OptionSetDescription("encoding"),
		progressbar.OptionSetWriter(os.Stderr),
	)
	progress := func(done, total int) {
		if done%256 == 0 || done == total {
			bar.Set(done)
		}
	}

	if err := embedBody(img, body, args.Password, progress); err != nil {
		return err
	}
	if err := saveImage(args.Output, img); err != nil {
		return err
	}

	if args.Verbose {
		log.Info().Str("output", args.Output).Msg("Embedded message into image")
	}
	return nil
}

// Reveal loads a stego image and recovers the hidden message.
func Reveal(args *RevealArgs) (string, error) {
	src, err := loadImage(args.ImagePath)
	if err != nil {
		return "", err
	}
	img := copyImage(src)

	if args.Verbose {
		bounds := img.Bounds()
		log.Debug().Int("width", bounds.Dx()).Int("height", bounds.Dy()).Msg("Image dimensions")
	}

	// The payload size is unknown until the header is read, so the bar
	// is created on the first progress callback.
	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(
				total,
				progressbar.OptionSetDescription("decoding"),
				progressbar.OptionSetWriter(os.Stderr),
			)
		}
		if done%256 == 0 || done == total {
			bar.Set(done)
		}
	}

	body, err := extractBody(img, args.Password, progress)
	if err != nil {
		return "", err
	}
	if args.ECC {
		if body, err = armorRecover(body); err != nil {
			return "", fmt.Errorf("error correction failed: %w", err)
		}
	}
	return decrypt(string(body), args.Password)
}

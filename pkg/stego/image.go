package stego

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
)

// loadImage decodes an image file. JPEG and GIF covers are accepted as
// input, but note that a stego image saved and re-compressed through a
// lossy format loses its payload.
func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ImageDecodeError{Path: path, Err: err}
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, &ImageDecodeError{Path: path, Err: err}
	}
	return img, nil
}

// copyImage normalizes any decoded image into an NRGBA buffer with its
// origin at (0,0), which is the only layout the codec operates on.
func copyImage(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			out.Set(x, y, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return out
}

// saveImage writes img as PNG, the lossless format the codec's guarantees
// depend on.
func saveImage(path string, img *image.NRGBA) error {
	file, err := os.Create(path)
	if err != nil {
		return &ImageEncodeError{Path: path, Err: err}
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return &ImageEncodeError{Path: path, Err: err}
	}
	return nil
}

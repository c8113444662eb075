package stego

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// AnalyzeArgs are the inputs of the Analyze operation.
type AnalyzeArgs struct {
	OriginalPath string
	StegoPath    string
	HeatmapPath  string
}

// AnalysisResult holds distortion metrics between a cover image and its
// stego counterpart.
type AnalysisResult struct {
	MSE  float64 // mean squared error over R, G, B
	PSNR float64 // peak signal-to-noise ratio in dB
}

// Analyze compares a cover image with a stego image and writes a
// difference heatmap. Only R, G and B are compared; this codec never
// touches alpha.
func Analyze(args *AnalyzeArgs) (*AnalysisResult, error) {
	coverRaw, err := loadImage(args.OriginalPath)
	if err != nil {
		return nil, err
	}
	stegoRaw, err := loadImage(args.StegoPath)
	if err != nil {
		return nil, err
	}

	cover := copyImage(coverRaw)
	encoded := copyImage(stegoRaw)

	bounds := cover.Bounds()
	if bounds != encoded.Bounds() {
		return nil, fmt.Errorf("image dimensions do not match: %v vs %v", bounds, encoded.Bounds())
	}

	width, height := bounds.Dx(), bounds.Dy()
	heatmap := image.NewNRGBA(bounds)
	var sumSquaredError float64

	bar := progressbar.NewOptions(
		width*height,
		progressbar.OptionSetDescription("analyzing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowCount(),
	)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			bar.Add(1)
			p1 := cover.PixOffset(x, y)
			p2 := encoded.PixOffset(x, y)

			var diffSum float64
			modified := false
			for i := 0; i < channelsPerPixel; i++ {
				diff := float64(cover.Pix[p1+i]) - float64(encoded.Pix[p2+i])
				sumSquaredError += diff * diff
				diffSum += math.Abs(diff)
				if diff != 0 {
					modified = true
				}
			}

			// Black for untouched pixels, green shading to red as the
			// difference grows. LSB flips show up as near-green dots.
			if modified {
				intensity := uint8(math.Min(255, diffSum*50))
				heatmap.Set(x, y, color.NRGBA{R: intensity, G: 255 - intensity, B: 0, A: 255})
			} else {
				heatmap.Set(x, y, color.NRGBA{A: 255})
			}
		}
	}

	totalPixels := float64(width * height)
	mse := sumSquaredError / (totalPixels * channelsPerPixel)
	psnr := 10 * math.Log10((255*255)/mse)

	if err := saveImage(args.HeatmapPath, heatmap); err != nil {
		return nil, err
	}
	return &AnalysisResult{MSE: mse, PSNR: psnr}, nil
}

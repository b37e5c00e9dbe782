package converter

import (
	"fmt"
	"image"
	"math"
	"pixbot/internal/core/domain"

	"golang.org/x/image/draw"
)

// Luminance is a row-major grid of brightness samples.
type Luminance struct {
	Samples []uint8
	Width   int
}

func (l Luminance) Height() int {
	if l.Width == 0 {
		return 0
	}
	return len(l.Samples) / l.Width
}

// Grayscale flattens img to luminance and resizes it to width columns. The row
// count is scaled by compression to make up for glyphs being taller than wide.
func Grayscale(img image.Image, width int, compression float64) (Luminance, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return Luminance{}, domain.ErrEmptyImage
	}

	if width < 1 {
		return Luminance{}, fmt.Errorf("invalid width %d", width)
	}

	height := int(math.Round(compression * float64(width) * float64(bounds.Dy()) / float64(bounds.Dx())))
	// very wide images would otherwise round down to nothing
	if height < 1 {
		height = 1
	}

	// scaling into a gray destination converts to luminance on the way,
	// no full-size copy of img is made
	resized := image.NewGray(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(resized, resized.Bounds(), img, bounds, draw.Src, nil)

	samples := make([]uint8, 0, width*height)
	for y := range height {
		offset := y * resized.Stride
		samples = append(samples, resized.Pix[offset:offset+width]...)
	}

	return Luminance{Samples: samples, Width: width}, nil
}

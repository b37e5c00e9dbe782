package converter

import (
	"fmt"
	"image"
	"pixbot/internal/core/domain"

	"golang.org/x/image/draw"
)

// PixelateImage shrinks img by blockSize with nearest-neighbour sampling and
// blows it back up the same way. Remainder pixels that do not fill a whole
// block are cut off, so the result can be slightly smaller than img.
func PixelateImage(img image.Image, blockSize int) (*image.RGBA, error) {
	if blockSize < 1 {
		return nil, fmt.Errorf("%w: block size %d", domain.ErrDegenerateSize, blockSize)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx()/blockSize, bounds.Dy()/blockSize
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: %dx%d image, %d px blocks", domain.ErrDegenerateSize,
			bounds.Dx(), bounds.Dy(), blockSize)
	}

	small := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(small, small.Bounds(), img, bounds, draw.Src, nil)

	out := image.NewRGBA(image.Rect(0, 0, w*blockSize, h*blockSize))
	draw.NearestNeighbor.Scale(out, out.Bounds(), small, small.Bounds(), draw.Src, nil)

	return out, nil
}

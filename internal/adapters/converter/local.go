package converter

import (
	"context"
	"fmt"
	"pixbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

const (
	DefaultWidth       = 40
	DefaultCompression = 0.55
	DefaultBlockSize   = 20
	DefaultJPEGQuality = 90
	DefaultMaxPixels   = 40_000_000
)

type Options struct {
	Width       int
	Compression float64
	BlockSize   int
	JPEGQuality int
	MaxPixels   int64
}

// Local runs all transforms in-process.
type Local struct {
	width       int
	compression float64
	blockSize   int
	jpegQuality int
	maxPixels   int64
}

func NewLocal(opts Options) (*Local, error) {
	if opts.Width < 1 || MaxRows(opts.Width) < 1 {
		return nil, fmt.Errorf("invalid ascii width %d", opts.Width)
	}

	if opts.Compression <= 0 {
		return nil, fmt.Errorf("invalid ascii compression %.2f", opts.Compression)
	}

	if opts.BlockSize < 1 {
		return nil, fmt.Errorf("invalid block size %d", opts.BlockSize)
	}

	if opts.JPEGQuality < 1 || opts.JPEGQuality > 100 {
		return nil, fmt.Errorf("invalid jpeg quality %d", opts.JPEGQuality)
	}

	if opts.MaxPixels < 1 {
		return nil, fmt.Errorf("invalid pixel limit %d", opts.MaxPixels)
	}

	log.Debug().
		Int("width", opts.Width).
		Float64("compression", opts.Compression).
		Int("blockSize", opts.BlockSize).
		Int("jpegQuality", opts.JPEGQuality).
		Int64("maxPixels", opts.MaxPixels).
		Msg("local converter configured")

	return &Local{
		width:       opts.Width,
		compression: opts.Compression,
		blockSize:   opts.BlockSize,
		jpegQuality: opts.JPEGQuality,
		maxPixels:   opts.MaxPixels,
	}, nil
}

func (c *Local) Pixelate(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, format, err := Decode(data, c.maxPixels)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("format", format).Stringer("bounds", img.Bounds()).Msg("pixelating image")

	pixelated, err := PixelateImage(img, c.blockSize)
	if err != nil {
		return nil, err
	}

	return EncodeJPEG(pixelated, c.jpegQuality)
}

func (c *Local) ASCII(ctx context.Context, data []byte, palette string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := domain.ValidatePalette(palette); err != nil {
		return "", err
	}

	img, format, err := Decode(data, c.maxPixels)
	if err != nil {
		return "", err
	}

	log.Debug().Str("format", format).Stringer("bounds", img.Bounds()).Msg("rendering ascii art")

	lum, err := Grayscale(img, c.width, c.compression)
	if err != nil {
		return "", err
	}

	return RenderASCII(lum, palette)
}

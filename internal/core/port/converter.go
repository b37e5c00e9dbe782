package port

import "context"

type ImageConverter interface {
	// Pixelate decodes an image, replaces it with uniform square blocks and returns the re-encoded result.
	Pixelate(ctx context.Context, data []byte) ([]byte, error)
	// ASCII decodes an image and renders it as a block of characters from palette, darkest first.
	ASCII(ctx context.Context, data []byte, palette string) (string, error)
}

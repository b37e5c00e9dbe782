package converter

import (
	"pixbot/internal/core/domain"
	"strings"
)

// PaletteIndex maps a luminance value linearly onto n buckets.
func PaletteIndex(v uint8, n int) int {
	i := int(v) * n / 256
	return min(max(i, 0), n-1)
}

// MaxRows is the number of rows of the given width that fit in one message,
// keeping one row of headroom.
func MaxRows(width int) int {
	return (domain.MaxMessageChars - (width + 1)) / (width + 1)
}

// RenderASCII lays out one palette character per sample, one line per row.
// Rows beyond MaxRows are dropped whole.
func RenderASCII(lum Luminance, palette string) (string, error) {
	chars := []rune(palette)
	if len(chars) < domain.MinPaletteLength {
		return "", domain.ErrInvalidPalette
	}

	if lum.Width < 1 || len(lum.Samples) < lum.Width {
		return "", domain.ErrEmptyImage
	}

	rows := min(lum.Height(), MaxRows(lum.Width))

	var sb strings.Builder
	sb.Grow(max(rows, 0) * (lum.Width + 1))

	for y := 0; y < rows; y++ {
		for _, v := range lum.Samples[y*lum.Width : (y+1)*lum.Width] {
			sb.WriteRune(chars[PaletteIndex(v, len(chars))])
		}
		sb.WriteByte('\n')
	}

	return sb.String(), nil
}

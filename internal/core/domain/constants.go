package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrDecode             = errors.New("image could not be decoded")
	ErrEmptyImage         = errors.New("image has no pixels")
	ErrDegenerateSize     = errors.New("image is smaller than the block size")
	ErrInvalidPalette     = errors.New("palette needs at least two characters")
	ErrNoImage            = errors.New("no image stored for this chat")
	ErrNotFound           = errors.New("image file not found")
	ErrUnknownChoice      = errors.New("unknown choice")
)

const (
	DefaultPalette   = "@%#*+=-:. "
	MinPaletteLength = 2
	// MaxMessageChars is the ceiling for a single outgoing text message.
	MaxMessageChars = 4000
)

const (
	WelcomeText        = "Send me an image, and I'll provide options for you!"
	ChooseOptionText   = "I got your photo! Choose an option:"
	PalettePromptText  = "Send me a set of characters to use for ASCII art, darkest first. Send /default to use " + DefaultPalette
	ConvertingText     = "Great! Now converting your image to ASCII art..."
	AwaitingModeText   = "Pick one of the options above, or send me a new image."
	DefaultPaletteText = "/default"
)

// Describe returns the text shown to the user for a failed request.
func Describe(err error) string {
	switch {
	case errors.Is(err, ErrNoImage):
		return "Error: No image found. Please send an image again."
	case errors.Is(err, ErrInvalidPalette):
		return "Please provide at least two characters for ASCII art."
	case errors.Is(err, ErrDecode):
		return "Sorry, I could not read that image. Please send a JPEG, PNG, GIF, BMP or WebP picture."
	case errors.Is(err, ErrEmptyImage):
		return "That image is empty, there is nothing to convert."
	case errors.Is(err, ErrDegenerateSize):
		return "That image is too small to pixelate. Please send a bigger one."
	case errors.Is(err, ErrNotFound):
		return "I could not download your image anymore. Please send it again."
	case errors.Is(err, ErrUnknownChoice):
		return "I don't know that option. Please use the buttons below your photo."
	default:
		return fmt.Sprintf("Something went wrong: %s", err.Error())
	}
}

package domain

// SessionKey identifies a single conversation, the Telegram chat ID.
type SessionKey int64

type Stage int

const (
	Idle Stage = iota
	AwaitingMode
	AwaitingPalette
)

func (s Stage) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingMode:
		return "awaiting_mode"
	case AwaitingPalette:
		return "awaiting_palette"
	default:
		return "unknown"
	}
}

type Mode string

const (
	Pixelate Mode = "pixelate"
	ASCII    Mode = "ascii"
)

// Choice is a single button offered to the user.
type Choice struct {
	Label string
	Value string
}

// ModeChoices are the options presented after every received image.
var ModeChoices = []Choice{
	{Label: "Pixelate", Value: string(Pixelate)},
	{Label: "ASCII Art", Value: string(ASCII)},
}

type Action string

const (
	Typing       Action = "typing"
	SendingPhoto Action = "upload_photo"
)

// TransformRequest is everything the dispatcher needs to run one transform.
type TransformRequest struct {
	Mode     Mode
	ImageRef string
	Palette  string
}

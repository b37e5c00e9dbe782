package domain

import (
	"strings"
	"unicode/utf8"
)

// Session is the per-chat interaction state. The zero value is an idle session.
type Session struct {
	ImageRef string
	Stage    Stage
	Palette  string
}

// EffectivePalette returns the stored palette or the default one.
func (s Session) EffectivePalette() string {
	if s.Palette == "" {
		return DefaultPalette
	}
	return s.Palette
}

type EventKind int

const (
	ImageReceived EventKind = iota
	ChoiceSelected
	TextReceived
)

func (k EventKind) String() string {
	switch k {
	case ImageReceived:
		return "image"
	case ChoiceSelected:
		return "choice"
	case TextReceived:
		return "text"
	default:
		return "unknown"
	}
}

// Event is one inbound occurrence for a session. Only the field matching Kind is set.
type Event struct {
	Kind     EventKind
	ImageRef string
	Choice   string
	Text     string
}

type EffectKind int

const (
	SendText EffectKind = iota
	PresentChoice
	Transform
)

// Effect is an outbound instruction produced by Apply and carried out by the relay.
type Effect struct {
	Kind    EffectKind
	Text    string
	Choices []Choice
	Request TransformRequest
}

func textEffect(text string) Effect {
	return Effect{Kind: SendText, Text: text}
}

// Apply advances the session by one event. It has no side effects; the
// returned effects describe what has to be sent or computed.
func (s Session) Apply(e Event) (Session, []Effect) {
	switch e.Kind {
	case ImageReceived:
		return s.onImage(e.ImageRef)
	case ChoiceSelected:
		return s.onChoice(e.Choice)
	case TextReceived:
		return s.onText(e.Text)
	default:
		return s, nil
	}
}

func (s Session) onImage(ref string) (Session, []Effect) {
	next := Session{ImageRef: ref, Stage: AwaitingMode}
	return next, []Effect{{Kind: PresentChoice, Text: ChooseOptionText, Choices: ModeChoices}}
}

func (s Session) onChoice(value string) (Session, []Effect) {
	mode := Mode(value)
	if mode != Pixelate && mode != ASCII {
		return s, []Effect{textEffect(Describe(ErrUnknownChoice))}
	}

	if s.ImageRef == "" {
		return s, []Effect{textEffect(Describe(ErrNoImage))}
	}

	if mode == ASCII {
		next := s
		next.Stage = AwaitingPalette
		return next, []Effect{textEffect(PalettePromptText)}
	}

	next := s
	next.Stage = AwaitingMode
	return next, []Effect{{Kind: Transform, Request: TransformRequest{Mode: Pixelate, ImageRef: s.ImageRef}}}
}

func (s Session) onText(text string) (Session, []Effect) {
	text = strings.TrimSpace(text)

	if IsHelpCommand(text) {
		return s, []Effect{textEffect(WelcomeText)}
	}

	switch s.Stage {
	case AwaitingPalette:
	case AwaitingMode:
		return s, []Effect{textEffect(AwaitingModeText)}
	default:
		return s, []Effect{textEffect(WelcomeText)}
	}

	palette := text
	if text == DefaultPaletteText {
		palette = DefaultPalette
	}

	if err := ValidatePalette(palette); err != nil {
		return s, []Effect{textEffect(Describe(err))}
	}

	next := s
	next.Stage = AwaitingMode
	next.Palette = palette

	req := TransformRequest{Mode: ASCII, ImageRef: s.ImageRef, Palette: next.EffectivePalette()}
	return next, []Effect{textEffect(ConvertingText), {Kind: Transform, Request: req}}
}

// ValidatePalette checks that a palette can encode contrast.
func ValidatePalette(palette string) error {
	if utf8.RuneCountInString(palette) < MinPaletteLength {
		return ErrInvalidPalette
	}
	return nil
}

// IsHelpCommand reports whether text is /start or /help, with or without a bot mention.
func IsHelpCommand(text string) bool {
	cmd := ParseCommand(text)
	return cmd == "/start" || cmd == "/help"
}

// ParseCommand returns the lower-cased first word of text with any @botname suffix removed.
func ParseCommand(text string) string {
	command := strings.Split(text, " ")
	cmd, _, _ := strings.Cut(command[0], "@")
	return strings.ToLower(cmd)
}

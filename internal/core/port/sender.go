package port

import (
	"context"
	"pixbot/internal/core/domain"
)

type TextSender interface {
	// SendText sends a plain text message to the chat.
	SendText(ctx context.Context, chatID domain.SessionKey, text string) error
	// SendPreformatted sends text that has to be displayed with a fixed-width font.
	SendPreformatted(ctx context.Context, chatID domain.SessionKey, text string) error
	// SendChatAction repeatedly signals activity in a chat until ctx is done.
	SendChatAction(ctx context.Context, chatID domain.SessionKey, action domain.Action)
	// NotifyAndReturnError sends a user-facing description of err to the chat and returns err.
	NotifyAndReturnError(ctx context.Context, chatID domain.SessionKey, err error) error
}

type ImageSender interface {
	// SendImage uploads an encoded image to the chat.
	SendImage(ctx context.Context, chatID domain.SessionKey, file []byte) error
}

type ChoicePresenter interface {
	// PresentChoice sends text with one button per choice.
	PresentChoice(ctx context.Context, chatID domain.SessionKey, text string, choices []domain.Choice) error
}

type ImageFetcher interface {
	// FetchImage returns the bytes of a previously received image.
	FetchImage(ctx context.Context, imageRef string) ([]byte, error)
}

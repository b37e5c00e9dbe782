package handler

import (
	"context"
	"pixbot/internal/core/domain"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// EventSink receives the events a conversation is made of.
type EventSink interface {
	OnImageReceived(ctx context.Context, chatID domain.SessionKey, imageRef string)
	OnChoiceSelected(ctx context.Context, chatID domain.SessionKey, value string)
	OnTextReceived(ctx context.Context, chatID domain.SessionKey, text string)
}

type CallbackAnswerer interface {
	AnswerCallback(ctx context.Context, queryID string, text string) error
}

// Update translates Telegram updates into events. It must be registered to run
// synchronously so events of one chat reach the sink in order.
type Update struct {
	sink     EventSink
	answerer CallbackAnswerer
}

func NewUpdate(sink EventSink, answerer CallbackAnswerer) *Update {
	return &Update{sink: sink, answerer: answerer}
}

func (u *Update) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.CallbackQuery != nil {
		u.handleCallback(ctx, update.CallbackQuery)
		return
	}

	message := update.Message
	if message == nil {
		log.Debug().Int64("updateId", update.ID).Msg("ignoring update without message")
		return
	}

	chatID := domain.SessionKey(message.Chat.ID)

	if imageRef := imageFileID(message); imageRef != "" {
		log.Debug().Int64("chatId", message.Chat.ID).Msg("received image")
		u.sink.OnImageReceived(ctx, chatID, imageRef)
		return
	}

	if message.Text != "" {
		log.Debug().Int64("chatId", message.Chat.ID).Msg("received text")
		u.sink.OnTextReceived(ctx, chatID, message.Text)
		return
	}

	log.Debug().Int64("chatId", message.Chat.ID).Msg("ignoring unsupported message")
}

func (u *Update) handleCallback(ctx context.Context, query *models.CallbackQuery) {
	chatID := callbackChatID(query)

	log.Debug().Int64("chatId", int64(chatID)).Str("data", query.Data).Msg("received choice")
	u.sink.OnChoiceSelected(ctx, chatID, query.Data)

	// the outcome, including a missing image, arrives as a chat message; the
	// answer only stops the button's loading indicator
	if err := u.answerer.AnswerCallback(ctx, query.ID, ""); err != nil {
		log.Warn().Err(err).Str("queryId", query.ID).Msg("failed to answer callback query")
	}
}

func callbackChatID(query *models.CallbackQuery) domain.SessionKey {
	switch {
	case query.Message.Message != nil:
		return domain.SessionKey(query.Message.Message.Chat.ID)
	case query.Message.InaccessibleMessage != nil:
		return domain.SessionKey(query.Message.InaccessibleMessage.Chat.ID)
	default:
		return domain.SessionKey(query.From.ID)
	}
}

// imageFileID picks the largest photo size, or an image sent as a document.
func imageFileID(message *models.Message) string {
	if len(message.Photo) > 0 {
		return message.Photo[len(message.Photo)-1].FileID
	}

	if message.Document != nil && strings.HasPrefix(message.Document.MimeType, "image/") {
		return message.Document.FileID
	}

	return ""
}

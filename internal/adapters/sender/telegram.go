package sender

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"pixbot/internal/adapters/file"
	"pixbot/internal/core/domain"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// TelegramBot is the subset of *bot.Bot used by the sender.
type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
	GetFile(ctx context.Context, params *bot.GetFileParams) (*models.File, error)
	FileDownloadLink(f *models.File) string
}

type Telegram struct {
	bot TelegramBot
}

func NewTelegram(bot TelegramBot) *Telegram {
	return &Telegram{bot: bot}
}

const TelegramMessageLimit = 4096

func (t *Telegram) SendText(ctx context.Context, chatID domain.SessionKey, text string) error {
	for _, chunk := range chunkText(text, TelegramMessageLimit) {
		_, err := t.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: int64(chatID),
			Text:   chunk,
		})
		if err != nil {
			log.Error().Err(err).Int64("chatId", int64(chatID)).Msg("failed to send message")
			return err
		}
	}

	return nil
}

func (t *Telegram) SendPreformatted(ctx context.Context, chatID domain.SessionKey, text string) error {
	_, err := t.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    int64(chatID),
		Text:      "<pre>" + html.EscapeString(text) + "</pre>",
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		log.Error().Err(err).Int64("chatId", int64(chatID)).Msg("failed to send preformatted message")
		return err
	}

	return nil
}

func (t *Telegram) SendImage(ctx context.Context, chatID domain.SessionKey, file []byte) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}

	params := &bot.SendPhotoParams{
		ChatID: int64(chatID),
		Photo: &models.InputFileUpload{Filename: fmt.Sprintf("%s.jpg", id.String()),
			Data: bytes.NewReader(file)},
	}

	_, err = t.bot.SendPhoto(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("failed to send photo response")
		return err
	}

	return nil
}

func (t *Telegram) PresentChoice(ctx context.Context, chatID domain.SessionKey, text string,
	choices []domain.Choice) error {
	row := make([]models.InlineKeyboardButton, 0, len(choices))
	for _, c := range choices {
		row = append(row, models.InlineKeyboardButton{Text: c.Label, CallbackData: c.Value})
	}

	_, err := t.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      int64(chatID),
		Text:        text,
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{row}},
	})

	return err
}

// AnswerCallback shows a short notification for a pressed button.
func (t *Telegram) AnswerCallback(ctx context.Context, queryID string, text string) error {
	_, err := t.bot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: queryID,
		Text:            text,
	})

	return err
}

// FetchImage resolves a Telegram file ID and downloads its content.
func (t *Telegram) FetchImage(ctx context.Context, imageRef string) ([]byte, error) {
	f, err := t.bot.GetFile(ctx, &bot.GetFileParams{FileID: imageRef})
	if err != nil {
		if errors.Is(err, bot.ErrorBadRequest) || errors.Is(err, bot.ErrorNotFound) {
			return nil, fmt.Errorf("%w: %w", domain.ErrNotFound, err)
		}
		return nil, fmt.Errorf("error getting file from telegram api %w", err)
	}

	return file.DownloadFile(ctx, t.bot.FileDownloadLink(f))
}

func (t *Telegram) NotifyAndReturnError(ctx context.Context, chatID domain.SessionKey, err error) error {
	log.Warn().Err(err).Int64("chatId", int64(chatID)).Msg("notifying chat about error")

	if sendErr := t.SendText(ctx, chatID, domain.Describe(err)); sendErr != nil {
		return errors.Join(err, fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, sendErr))
	}

	return err
}

const ChatActionRepeatSeconds = 5

func (t *Telegram) SendChatAction(ctx context.Context, chatID domain.SessionKey, action domain.Action) {
	log.Debug().Int64("chatId", int64(chatID)).Msg("starting action routine")

	var chatAction models.ChatAction
	switch action {
	case domain.SendingPhoto:
		chatAction = models.ChatActionUploadPhoto
	default:
		chatAction = models.ChatActionTyping
	}

	ticker := time.NewTicker(ChatActionRepeatSeconds * time.Second)
	defer ticker.Stop()

	for {
		log.Debug().Int64("chatId", int64(chatID)).Msg("transmitting action")
		_, err := t.bot.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: int64(chatID),
			Action: chatAction,
		})
		if err != nil {
			if ctx.Err() == nil {
				log.Err(err).Msg("error sending chat action")
			}
			return
		}

		select {
		case <-ctx.Done():
			log.Debug().Int64("chatId", int64(chatID)).Msg("done, stopping action routine")
			return
		case <-ticker.C:
		}
	}
}

func chunkText(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(runes) > 0 {
		n := min(limit, len(runes))
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}

	return chunks
}

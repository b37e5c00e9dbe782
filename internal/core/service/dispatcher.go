package service

import (
	"context"
	"fmt"
	"pixbot/internal/core/domain"
	"pixbot/internal/core/port"

	"github.com/rs/zerolog"
)

// Dispatcher runs a transform on a stored image and delivers the result.
type Dispatcher struct {
	fetcher     port.ImageFetcher
	converter   port.ImageConverter
	textSender  port.TextSender
	imageSender port.ImageSender
}

func NewDispatcher(fetcher port.ImageFetcher, converter port.ImageConverter, textSender port.TextSender,
	imageSender port.ImageSender) *Dispatcher {
	return &Dispatcher{fetcher: fetcher, converter: converter, textSender: textSender, imageSender: imageSender}
}

func (d *Dispatcher) Dispatch(ctx context.Context, chatID domain.SessionKey, req domain.TransformRequest) error {
	l := zerolog.Ctx(ctx).With().Str("mode", string(req.Mode)).Logger()

	if req.ImageRef == "" {
		return domain.ErrNoImage
	}

	if req.Mode != domain.Pixelate && req.Mode != domain.ASCII {
		return fmt.Errorf("%w: %s", domain.ErrUnknownChoice, req.Mode)
	}

	if req.Mode == domain.ASCII {
		if err := domain.ValidatePalette(req.Palette); err != nil {
			return err
		}
	}

	actionCtx, stopAction := context.WithCancel(ctx)
	defer stopAction()

	action := domain.Typing
	if req.Mode == domain.Pixelate {
		action = domain.SendingPhoto
	}
	go d.textSender.SendChatAction(actionCtx, chatID, action)

	data, err := d.fetcher.FetchImage(ctx, req.ImageRef)
	if err != nil {
		return fmt.Errorf("failed to fetch image: %w", err)
	}

	l.Debug().Int("bytes", len(data)).Msg("fetched image")

	if req.Mode == domain.Pixelate {
		pixelated, err := d.converter.Pixelate(ctx, data)
		if err != nil {
			return fmt.Errorf("failed to pixelate image: %w", err)
		}

		if err := d.imageSender.SendImage(ctx, chatID, pixelated); err != nil {
			return fmt.Errorf("failed to send pixelated image: %w", err)
		}

		l.Info().Int("bytes", len(pixelated)).Msg("sent pixelated image")
		return nil
	}

	art, err := d.converter.ASCII(ctx, data, req.Palette)
	if err != nil {
		return fmt.Errorf("failed to render ascii art: %w", err)
	}

	if err := d.textSender.SendPreformatted(ctx, chatID, art); err != nil {
		return fmt.Errorf("failed to send ascii art: %w", err)
	}

	l.Info().Int("chars", len([]rune(art))).Msg("sent ascii art")
	return nil
}

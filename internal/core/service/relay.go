package service

import (
	"context"
	"fmt"
	"pixbot/internal/core/domain"
	"pixbot/internal/core/port"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Relay turns inbound events into session transitions and carries out the
// resulting effects. Events for one chat are handled in arrival order.
type Relay struct {
	sessions   *SessionStore
	queue      *Serializer
	dispatcher *Dispatcher
	textSender port.TextSender
	presenter  port.ChoicePresenter
	timeout    time.Duration
}

type RelayParams struct {
	Sessions   *SessionStore
	Queue      *Serializer
	Dispatcher *Dispatcher
	TextSender port.TextSender
	Presenter  port.ChoicePresenter
	Timeout    time.Duration
}

func NewRelay(p RelayParams) *Relay {
	return &Relay{
		sessions:   p.Sessions,
		queue:      p.Queue,
		dispatcher: p.Dispatcher,
		textSender: p.TextSender,
		presenter:  p.Presenter,
		timeout:    p.Timeout,
	}
}

func (r *Relay) OnImageReceived(ctx context.Context, chatID domain.SessionKey, imageRef string) {
	r.submit(ctx, chatID, domain.Event{Kind: domain.ImageReceived, ImageRef: imageRef})
}

func (r *Relay) OnChoiceSelected(ctx context.Context, chatID domain.SessionKey, value string) {
	r.submit(ctx, chatID, domain.Event{Kind: domain.ChoiceSelected, Choice: value})
}

func (r *Relay) OnTextReceived(ctx context.Context, chatID domain.SessionKey, text string) {
	r.submit(ctx, chatID, domain.Event{Kind: domain.TextReceived, Text: text})
}

// Wait blocks until all submitted events have been handled.
func (r *Relay) Wait() {
	r.queue.Wait()
}

func (r *Relay) submit(ctx context.Context, chatID domain.SessionKey, event domain.Event) {
	r.queue.Submit(chatID, func() {
		ctx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		if err := r.Handle(ctx, chatID, event); err != nil {
			log.Warn().Err(err).Int64("chatId", int64(chatID)).Stringer("event", event.Kind).
				Msg("failed to handle event")
		}
	})
}

// Handle applies a single event synchronously. If any effect fails the session
// is put back to where it was before the event; failed transforms are also
// reported to the chat.
func (r *Relay) Handle(ctx context.Context, chatID domain.SessionKey, event domain.Event) error {
	requestID, err := uuid.NewV4()
	if err != nil {
		return err
	}

	l := log.With().
		Int64("chatId", int64(chatID)).
		Str("requestId", requestID.String()).
		Stringer("event", event.Kind).
		Logger()

	// sessions start with the first image, other events on unknown chats leave no trace
	prev, existed := r.sessions.Lookup(chatID)
	commit := existed
	if !existed && event.Kind == domain.ImageReceived {
		prev = r.sessions.Get(chatID)
		commit = true
	}

	next, effects := prev.Apply(event)
	if commit {
		r.sessions.Update(chatID, next)
	}

	restore := func() {
		if existed {
			r.sessions.Update(chatID, prev)
		} else {
			r.sessions.Clear(chatID)
		}
	}

	l.Debug().Stringer("from", prev.Stage).Object("session", (*sessionLog)(&next)).Int("effects", len(effects)).
		Bool("stored", commit).Msg("session transition")

	for _, effect := range effects {
		switch effect.Kind {
		case domain.SendText:
			if err := r.textSender.SendText(ctx, chatID, effect.Text); err != nil {
				restore()
				l.Error().Err(err).Msg("failed to send text, session restored")
				return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
			}
		case domain.PresentChoice:
			if err := r.presenter.PresentChoice(ctx, chatID, effect.Text, effect.Choices); err != nil {
				restore()
				l.Error().Err(err).Msg("failed to present choice, session restored")
				return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
			}
		case domain.Transform:
			if err := r.dispatcher.Dispatch(l.WithContext(ctx), chatID, effect.Request); err != nil {
				restore()
				l.Warn().Err(err).Stringer("stage", prev.Stage).Msg("transform failed, session restored")
				return r.textSender.NotifyAndReturnError(ctx, chatID, err)
			}
		}
	}

	return nil
}

// Session returns the current state for a chat, idle if it has none.
func (r *Relay) Session(chatID domain.SessionKey) domain.Session {
	session, _ := r.sessions.Lookup(chatID)
	return session
}

type sessionLog domain.Session

func (s *sessionLog) MarshalZerologObject(e *zerolog.Event) {
	e.Str("stage", s.Stage.String()).Bool("hasImage", s.ImageRef != "").Int("paletteLen", len([]rune(s.Palette)))
}

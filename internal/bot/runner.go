package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/IJTechs/namedu-backend/internal/logger"
)

// UpdateSource is the polling surface the runner consumes.
// *telegram.Client satisfies it.
type UpdateSource interface {
	Updates() tgbotapi.UpdatesChannel
	StopPolling()
}

// Runner pumps one bot's update stream into its dialogue engine. Updates
// are handled strictly in order; the dialogue relies on that for its
// per-chat state transitions.
type Runner struct {
	source   UpdateSource
	dialogue *Dialogue
	username string
}

// NewRunner wires a runner for one bot.
func NewRunner(source UpdateSource, dialogue *Dialogue, username string) *Runner {
	return &Runner{source: source, dialogue: dialogue, username: username}
}

// Run consumes updates until the context is canceled or polling stops.
func (r *Runner) Run(ctx context.Context) {
	log := logger.Default().With("bot", r.username)
	log.Info("bot polling started")

	updates := r.source.Updates()
	for {
		select {
		case <-ctx.Done():
			log.Info("bot polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				log.Info("bot update stream closed")
				return
			}
			r.handle(ctx, update)
		}
	}
}

// handle dispatches one update. A panic or error in a handler tears down
// that chat's session only; the polling loop keeps running.
func (r *Runner) handle(ctx context.Context, update tgbotapi.Update) {
	chatID, ok := updateChatID(update)
	if !ok {
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.WithChatID(chatID).Error("panic in update handler", "panic", rec)
			r.dialogue.Fail(chatID)
		}
	}()

	var err error
	switch {
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		err = r.dialogue.HandleCallback(ctx, chatID, cb.Message.MessageID, cb.ID, cb.Data)

	case update.Message != nil && update.Message.IsCommand():
		err = r.dialogue.HandleCommand(ctx, chatID, update.Message.Command())

	case update.Message != nil && len(update.Message.Photo) > 0:
		// The last size is the largest rendition Telegram offers.
		photos := update.Message.Photo
		err = r.dialogue.HandlePhoto(ctx, chatID, photos[len(photos)-1].FileID)

	case update.Message != nil && update.Message.Text != "":
		err = r.dialogue.HandleText(ctx, chatID, update.Message.Text)
	}

	if err != nil {
		logger.WithChatID(chatID).Error("update handling failed", "error", err)
		r.dialogue.Fail(chatID)
	}
}

// updateChatID extracts the originating chat of an update.
func updateChatID(update tgbotapi.Update) (int64, bool) {
	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return update.CallbackQuery.Message.Chat.ID, true
	case update.Message != nil:
		return update.Message.Chat.ID, true
	}
	return 0, false
}

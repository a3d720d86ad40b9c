// Package bot implements the conversational submission flow: one dialogue
// engine per bound admin bot walks the operator from /postnews through
// title, body, images and social links to a confirmed published article.
package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/IJTechs/namedu-backend/internal/domain"
	"github.com/IJTechs/namedu-backend/internal/format"
	"github.com/IJTechs/namedu-backend/internal/logger"
	"github.com/IJTechs/namedu-backend/internal/media"
	"github.com/IJTechs/namedu-backend/internal/metrics"
)

// Transport is the operator-chat surface the dialogue engine needs.
// *telegram.Client satisfies it.
type Transport interface {
	SendMessage(chatID int64, text string) error
	SendMessageWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) error
	SendPhotoPreview(chatID int64, photoURL, caption string, kb tgbotapi.InlineKeyboardMarkup) error
	EditReplyMarkup(chatID int64, messageID int, kb tgbotapi.InlineKeyboardMarkup) error
	AnswerCallback(callbackID string) error
	FileURL(fileID string) (string, error)
}

// Submitter turns a completed dialogue into a published article.
// *service.NewsService satisfies it.
type Submitter interface {
	SubmitFromDialogue(ctx context.Context, authorID string, session *domain.Session) (*domain.PublishOutcome, error)
}

// Dialogue drives the submission conversation for one bot. Each instance is
// bound to the admin who owns the bot token; everything submitted through it
// is attributed to that admin.
type Dialogue struct {
	transport Transport
	uploader  media.Uploader
	submitter Submitter
	sessions  *SessionStore
	authorID  string
}

// NewDialogue wires a dialogue engine for one admin's bot.
func NewDialogue(transport Transport, uploader media.Uploader, submitter Submitter, sessions *SessionStore, authorID string) *Dialogue {
	return &Dialogue{
		transport: transport,
		uploader:  uploader,
		submitter: submitter,
		sessions:  sessions,
		authorID:  authorID,
	}
}

// HandleCommand processes a slash command from the operator chat.
func (d *Dialogue) HandleCommand(ctx context.Context, chatID int64, command string) error {
	switch command {
	case "start":
		d.sessions.Delete(chatID)
		return d.transport.SendMessageWithKeyboard(chatID, msgGreeting, startKeyboard())
	case "postnews":
		return d.beginSubmission(chatID)
	case "help":
		return d.transport.SendMessage(chatID, msgHelp)
	default:
		return d.transport.SendMessage(chatID, msgHelpHint)
	}
}

// HandleText processes a plain text message. Which field it fills depends
// on the session's current step.
func (d *Dialogue) HandleText(ctx context.Context, chatID int64, text string) error {
	session, ok := d.sessions.Get(chatID)
	if !ok {
		// Stray text outside a dialogue is noise, not an error.
		return nil
	}

	switch session.Step {
	case domain.StepTitle:
		session.Title = strings.TrimSpace(text)
		session.Step = domain.StepBody
		return d.transport.SendMessage(chatID, msgAskBody)

	case domain.StepBody:
		session.Body = strings.TrimSpace(text)
		session.Step = domain.StepImage
		return d.transport.SendMessage(chatID, msgAskImage)

	case domain.StepImage:
		return d.transport.SendMessage(chatID, msgNotAnImage)

	case domain.StepSocial:
		if session.CurrentPlatform == "" {
			return d.transport.SendMessageWithKeyboard(chatID, msgAskSocial, socialKeyboard(session))
		}
		session.SetSocialLink(session.CurrentPlatform, strings.TrimSpace(text))
		session.CurrentPlatform = ""
		return d.transport.SendMessageWithKeyboard(chatID, msgAskMore, socialKeyboard(session))

	case domain.StepConfirm:
		return d.transport.SendMessage(chatID, msgWrongStep)

	default:
		// A step value outside the known set means corrupted state.
		d.sessions.Delete(chatID)
		return d.transport.SendMessage(chatID, msgErrorRestart)
	}
}

// HandlePhoto processes an incoming photo. The image is re-hosted through
// the uploader so channel posts never depend on Telegram file URLs. Upload
// failures keep the session where it is so the operator can retry.
func (d *Dialogue) HandlePhoto(ctx context.Context, chatID int64, fileID string) error {
	session, ok := d.sessions.Get(chatID)
	if !ok {
		return nil
	}

	switch session.Step {
	case domain.StepImage, domain.StepSocial:
	default:
		return d.transport.SendMessage(chatID, msgWrongStep)
	}

	if session.Step == domain.StepImage && !session.UploadNoticeSent {
		session.UploadNoticeSent = true
		if err := d.transport.SendMessage(chatID, msgUploading); err != nil {
			return err
		}
	}

	sourceURL, err := d.transport.FileURL(fileID)
	if err == nil {
		var hosted string
		hosted, err = d.uploader.Upload(ctx, sourceURL)
		if err == nil {
			session.Images = append(session.Images, hosted)
		}
	}
	if err != nil {
		metrics.ImageUploadsTotal.WithLabelValues("error").Inc()
		logger.WithChatID(chatID).Error("image upload failed", "error", err)
		return d.transport.SendMessage(chatID, msgUploadError)
	}
	metrics.ImageUploadsTotal.WithLabelValues("success").Inc()

	// Later photos of the same album arrive after the step moved on; they
	// join the article silently.
	if session.Step == domain.StepSocial {
		return nil
	}

	session.Step = domain.StepSocial
	return d.transport.SendMessageWithKeyboard(chatID, msgAskSocial, socialKeyboard(session))
}

// HandleCallback processes an inline button press. messageID is the message
// carrying the pressed keyboard, used to disarm the confirm buttons.
func (d *Dialogue) HandleCallback(ctx context.Context, chatID int64, messageID int, callbackID, action string) error {
	// Ack first so the client stops the spinner even if handling fails.
	if err := d.transport.AnswerCallback(callbackID); err != nil {
		logger.WithChatID(chatID).Warn("answer callback failed", "error", err)
	}

	switch {
	case action == actionStartPostNews:
		return d.beginSubmission(chatID)

	case action == actionGetHelp:
		return d.transport.SendMessage(chatID, msgHelp)

	case strings.HasPrefix(action, actionAddPrefix):
		return d.pickPlatform(chatID, strings.TrimPrefix(action, actionAddPrefix))

	case action == actionSkipSocial, action == actionFinishSocial:
		return d.showPreview(chatID)

	case action == actionConfirmPost:
		return d.confirm(ctx, chatID, messageID)

	case action == actionCancelPost:
		return d.cancel(chatID, messageID)

	case action == actionNoop:
		return nil

	default:
		return d.transport.SendMessage(chatID, msgHelpHint)
	}
}

func (d *Dialogue) beginSubmission(chatID int64) error {
	d.sessions.Begin(chatID)
	metrics.DialogueEventsTotal.WithLabelValues("started").Inc()
	return d.transport.SendMessage(chatID, msgAskTitle)
}

func (d *Dialogue) pickPlatform(chatID int64, platform string) error {
	session, ok := d.sessions.Get(chatID)
	if !ok || session.Step != domain.StepSocial {
		return d.transport.SendMessage(chatID, msgWrongStep)
	}
	session.CurrentPlatform = platform
	return d.transport.SendMessage(chatID, askPlatformURL(platform))
}

func (d *Dialogue) showPreview(chatID int64) error {
	session, ok := d.sessions.Get(chatID)
	if !ok || session.Step != domain.StepSocial {
		return d.transport.SendMessage(chatID, msgWrongStep)
	}
	session.CurrentPlatform = ""
	session.Step = domain.StepConfirm

	caption := format.Preview(session.Title, session.Body, session.SocialLinks)
	if len(session.Images) > 0 {
		return d.transport.SendPhotoPreview(chatID, session.Images[0], caption, confirmKeyboard())
	}
	return d.transport.SendMessageWithKeyboard(chatID, caption, confirmKeyboard())
}

func (d *Dialogue) confirm(ctx context.Context, chatID int64, messageID int) error {
	session, ok := d.sessions.Get(chatID)
	if !ok || session.Step != domain.StepConfirm {
		return d.transport.SendMessage(chatID, msgWrongStep)
	}

	if session.Title == "" || session.Body == "" || len(session.Images) == 0 {
		d.sessions.Delete(chatID)
		return d.transport.SendMessage(chatID, msgIncomplete)
	}

	outcome, err := d.submitter.SubmitFromDialogue(ctx, d.authorID, session)
	if err != nil {
		return err
	}

	// Disarming the buttons is cosmetic; the deleted session already
	// prevents a double submit.
	if err := d.transport.EditReplyMarkup(chatID, messageID, postedKeyboard()); err != nil {
		logger.WithChatID(chatID).Warn("edit reply markup failed", "error", err)
	}
	d.sessions.Delete(chatID)
	metrics.DialogueEventsTotal.WithLabelValues("submitted").Inc()

	confirmation := msgPosted
	if outcome.Status != domain.StatusPublished {
		confirmation = msgPostedNoChannel
	}
	return d.transport.SendMessage(chatID, confirmation)
}

func (d *Dialogue) cancel(chatID int64, messageID int) error {
	if _, ok := d.sessions.Get(chatID); !ok {
		return d.transport.SendMessage(chatID, msgWrongStep)
	}

	if err := d.transport.EditReplyMarkup(chatID, messageID, canceledKeyboard()); err != nil {
		logger.WithChatID(chatID).Warn("edit reply markup failed", "error", err)
	}
	d.sessions.Delete(chatID)
	metrics.DialogueEventsTotal.WithLabelValues("canceled").Inc()
	return d.transport.SendMessage(chatID, msgCanceled)
}

// Fail tears the chat's session down after an unrecoverable handler error
// and tells the operator to start over.
func (d *Dialogue) Fail(chatID int64) {
	d.sessions.Delete(chatID)
	metrics.DialogueEventsTotal.WithLabelValues("failed").Inc()
	if err := d.transport.SendMessage(chatID, msgErrorRestart); err != nil {
		logger.WithChatID(chatID).Error("failed to send restart notice", "error", err)
	}
}

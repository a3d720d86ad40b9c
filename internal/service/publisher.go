package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/IJTechs/namedu-backend/internal/domain"
	"github.com/IJTechs/namedu-backend/internal/format"
	"github.com/IJTechs/namedu-backend/internal/logger"
	"github.com/IJTechs/namedu-backend/internal/metrics"
	"github.com/IJTechs/namedu-backend/internal/repository"
	"github.com/IJTechs/namedu-backend/internal/telegram"
)

// Publisher mirrors news articles to Telegram channels and keeps the
// stored message-id/chat-id pair in sync with what is actually live.
//
// All three operations are safe to retry, but must not run concurrently
// for the same article; the service layer above calls them one at a time
// per record.
type Publisher struct {
	newsRepo    repository.NewsRepository
	channelRepo repository.ChannelRepository
	senders     SenderFactory
	websiteURL  string
}

// NewPublisher creates a Publisher.
func NewPublisher(newsRepo repository.NewsRepository, channelRepo repository.ChannelRepository, senders SenderFactory, websiteURL string) *Publisher {
	return &Publisher{
		newsRepo:    newsRepo,
		channelRepo: channelRepo,
		senders:     senders,
		websiteURL:  websiteURL,
	}
}

// Publish sends an already-stored article to its author's channel and
// persists the resulting message ids. A channel failure never rolls the
// article back: the website copy always survives.
func (p *Publisher) Publish(ctx context.Context, news *domain.News) *domain.PublishOutcome {
	binding, err := p.channelRepo.GetByAdminID(ctx, news.AuthorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.PublishTotal.WithLabelValues(string(domain.StatusPublishedWithoutChannel)).Inc()
			return &domain.PublishOutcome{
				News:    news,
				Status:  domain.StatusPublishedWithoutChannel,
				Message: "News was posted on the website but not sent to Telegram. Please connect your Telegram bot.",
			}
		}
		return p.failed(news, fmt.Errorf("resolve channel: %w", err))
	}

	sent, err := p.send(ctx, binding, news)
	if err != nil {
		logger.Error("Failed to send news to channel",
			slog.String("news_id", news.ID), slog.String("error", err.Error()))
		return p.failed(news, err)
	}

	if err := p.persistSent(ctx, news, sent); err != nil {
		return p.failed(news, err)
	}

	metrics.PublishTotal.WithLabelValues(string(domain.StatusPublished)).Inc()
	return &domain.PublishOutcome{
		News:    news,
		Status:  domain.StatusPublished,
		Message: "News was posted successfully on the website and sent to Telegram.",
	}
}

// Republish replaces the channel copy of an edited article: old messages
// are deleted best-effort, the updated content is sent fresh, and only a
// successful send updates the stored message ids. The field edits
// themselves are persisted even when the channel send fails, so the
// website always shows the newest text; the resulting stale id set is
// logged rather than hidden.
func (p *Publisher) Republish(ctx context.Context, id string, upd domain.NewsUpdate) (*domain.PublishOutcome, error) {
	news, err := p.newsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	binding, err := p.channelRepo.GetByAdminID(ctx, news.AuthorID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("resolve channel: %w", err)
	}

	if binding != nil && news.IsPublished() {
		p.deleteMessages(ctx, binding, *news.TelegramChatID, news.TelegramMessageIDs)
	}

	updated, err := p.newsRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	// Update does not touch channel state; carry the previous pair over so
	// a failed resend below leaves it visible.
	updated.TelegramMessageIDs = news.TelegramMessageIDs
	updated.TelegramChatID = news.TelegramChatID

	if binding == nil {
		metrics.PublishTotal.WithLabelValues(string(domain.StatusPublishedWithoutChannel)).Inc()
		return &domain.PublishOutcome{
			News:    updated,
			Status:  domain.StatusPublishedWithoutChannel,
			Message: "News was updated on the website but not sent to Telegram. Please connect your Telegram bot.",
		}, nil
	}

	sent, err := p.send(ctx, binding, updated)
	if err != nil {
		logger.Error("Failed to send updated news to channel",
			slog.String("news_id", updated.ID), slog.String("error", err.Error()))
		return p.failed(updated, err), nil
	}

	if err := p.persistSent(ctx, updated, sent); err != nil {
		return p.failed(updated, err), nil
	}

	metrics.PublishTotal.WithLabelValues(string(domain.StatusPublished)).Inc()
	return &domain.PublishOutcome{
		News:    updated,
		Status:  domain.StatusPublished,
		Message: "News was updated successfully and the Telegram post was replaced.",
	}, nil
}

// Retract deletes the channel copy best-effort and then removes the
// article from storage unconditionally: channel cleanup failure must not
// keep a deleted article alive on the website.
func (p *Publisher) Retract(ctx context.Context, id string) error {
	news, err := p.newsRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if news.IsPublished() {
		binding, err := p.channelRepo.GetByAdminID(ctx, news.AuthorID)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				logger.Error("Failed to resolve channel for retract",
					slog.String("news_id", id), slog.String("error", err.Error()))
			}
		} else {
			p.deleteMessages(ctx, binding, *news.TelegramChatID, news.TelegramMessageIDs)
		}
	}

	return p.newsRepo.Delete(ctx, id)
}

// send renders the caption and delivers it as a media group, single photo
// or plain message depending on the image count.
func (p *Publisher) send(ctx context.Context, binding *domain.ChannelBinding, news *domain.News) ([]telegram.SentMessage, error) {
	sender, err := p.senders(binding.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create sender: %w", err)
	}

	readMore := format.ReadMoreLink(p.websiteURL, news.Title, news.ID)
	caption := format.Post(news.Title, news.Body, readMore, news.SocialLinks)

	switch len(news.Images) {
	case 0:
		sent, err := sender.SendChannelMessage(ctx, binding.ChannelID, caption)
		if err != nil {
			return nil, err
		}
		return []telegram.SentMessage{sent}, nil
	case 1:
		sent, err := sender.SendChannelPhoto(ctx, binding.ChannelID, news.Images[0], caption)
		if err != nil {
			return nil, err
		}
		return []telegram.SentMessage{sent}, nil
	default:
		return sender.SendChannelMediaGroup(ctx, binding.ChannelID, news.Images, caption)
	}
}

// persistSent writes the delivered message ids onto the record.
func (p *Publisher) persistSent(ctx context.Context, news *domain.News, sent []telegram.SentMessage) error {
	ids := make([]int, len(sent))
	for i, m := range sent {
		ids[i] = m.MessageID
	}
	chatID := sent[0].ChatID

	if err := p.newsRepo.SetChannelMessages(ctx, news.ID, ids, chatID); err != nil {
		return fmt.Errorf("persist message ids: %w", err)
	}
	news.TelegramMessageIDs = ids
	news.TelegramChatID = &chatID
	return nil
}

// deleteMessages removes the old channel copy best-effort. The messages
// may already be gone; failures are logged and the operation continues.
func (p *Publisher) deleteMessages(ctx context.Context, binding *domain.ChannelBinding, chatID int64, messageIDs []int) {
	sender, err := p.senders(binding.BotToken)
	if err != nil {
		logger.Error("Failed to create sender for message cleanup",
			slog.String("error", err.Error()))
		return
	}
	for _, messageID := range messageIDs {
		if err := sender.DeleteMessage(ctx, chatID, messageID); err != nil {
			logger.Warn("Failed to delete channel message",
				slog.Int64("chat_id", chatID),
				slog.Int("message_id", messageID),
				slog.String("error", err.Error()))
		}
	}
}

func (p *Publisher) failed(news *domain.News, err error) *domain.PublishOutcome {
	metrics.PublishTotal.WithLabelValues(string(domain.StatusFailedChannelSend)).Inc()
	return &domain.PublishOutcome{
		News:    news,
		Status:  domain.StatusFailedChannelSend,
		Message: fmt.Sprintf("News was posted on the website but failed to send to Telegram: %v", err),
	}
}

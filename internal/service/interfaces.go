package service

import (
	"context"

	"github.com/IJTechs/namedu-backend/internal/domain"
	"github.com/IJTechs/namedu-backend/internal/telegram"
)

// ChannelSender is the outgoing channel surface the publisher needs from
// one bot token's connection.
type ChannelSender interface {
	SendChannelMessage(ctx context.Context, channel, text string) (telegram.SentMessage, error)
	SendChannelPhoto(ctx context.Context, channel, photoURL, caption string) (telegram.SentMessage, error)
	SendChannelMediaGroup(ctx context.Context, channel string, photoURLs []string, caption string) ([]telegram.SentMessage, error)
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}

// SenderFactory builds a ChannelSender for a bot token. The publisher
// resolves the token per article author, so senders are created on demand
// rather than injected up front.
type SenderFactory func(botToken string) (ChannelSender, error)

// NewsServiceInterface defines the news operations the HTTP handlers and
// the bot dialogue consume. Used for dependency injection and mocking in
// tests.
type NewsServiceInterface interface {
	// CreateAndPublish stores a new article and mirrors it to the author's
	// channel.
	CreateAndPublish(ctx context.Context, news *domain.News) (*domain.PublishOutcome, error)
	// SubmitFromDialogue turns a completed bot dialogue into a published article.
	SubmitFromDialogue(ctx context.Context, authorID string, session *domain.Session) (*domain.PublishOutcome, error)
	// GetNews fetches one article and counts the view.
	GetNews(ctx context.Context, id string) (*domain.News, error)
	// ListNews returns all articles, newest first.
	ListNews(ctx context.Context) ([]domain.News, error)
	// UpdateAndRepublish edits an article and replaces its channel copy.
	UpdateAndRepublish(ctx context.Context, id string, upd domain.NewsUpdate) (*domain.PublishOutcome, error)
	// DeleteAndRetract removes an article and its channel copy.
	DeleteAndRetract(ctx context.Context, id string) error
}

// AdminServiceInterface defines operator account management operations.
type AdminServiceInterface interface {
	Create(ctx context.Context, admin *domain.Admin, password string) error
	Get(ctx context.Context, id string) (*domain.Admin, error)
	ListActive(ctx context.Context) ([]domain.Admin, error)
}

// ChannelServiceInterface defines channel binding management operations.
type ChannelServiceInterface interface {
	Create(ctx context.Context, binding *domain.ChannelBinding) error
	Get(ctx context.Context, id string) (*domain.ChannelBinding, error)
	GetByAdmin(ctx context.Context, adminID string) (*domain.ChannelBinding, error)
	List(ctx context.Context) ([]domain.ChannelBinding, error)
	Update(ctx context.Context, binding *domain.ChannelBinding) error
	Delete(ctx context.Context, id string) error
}

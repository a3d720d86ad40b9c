package repository

import (
	"context"

	"github.com/IJTechs/namedu-backend/internal/domain"
)

// NewsRepository defines methods for news data access.
//
// The Telegram channel state is only mutable through the paired
// SetChannelMessages/ClearChannelMessages operations so the
// message-ids/chat-id invariant cannot be broken half-way.
type NewsRepository interface {
	Create(ctx context.Context, news *domain.News) error
	GetByID(ctx context.Context, id string) (*domain.News, error)
	List(ctx context.Context) ([]domain.News, error)
	Update(ctx context.Context, id string, upd domain.NewsUpdate) (*domain.News, error)
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error

	SetChannelMessages(ctx context.Context, id string, messageIDs []int, chatID int64) error
	ClearChannelMessages(ctx context.Context, id string) error
}

// AdminRepository defines methods for admin account data access.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	ListActive(ctx context.Context) ([]domain.Admin, error)
}

// ChannelRepository defines methods for channel binding data access.
type ChannelRepository interface {
	Create(ctx context.Context, binding *domain.ChannelBinding) error
	GetByID(ctx context.Context, id string) (*domain.ChannelBinding, error)
	GetByAdminID(ctx context.Context, adminID string) (*domain.ChannelBinding, error)
	List(ctx context.Context) ([]domain.ChannelBinding, error)
	Update(ctx context.Context, binding *domain.ChannelBinding) error
	Delete(ctx context.Context, id string) error
}

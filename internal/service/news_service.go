package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IJTechs/namedu-backend/internal/domain"
	"github.com/IJTechs/namedu-backend/internal/logger"
	"github.com/IJTechs/namedu-backend/internal/metrics"
	"github.com/IJTechs/namedu-backend/internal/repository"
	"github.com/IJTechs/namedu-backend/internal/validator"
)

// DefaultReadTime is assigned to articles submitted through the bot
// dialogue, which collects no read-time estimate.
const DefaultReadTime = 5

// NewsService implements the news operations for both the HTTP API and
// the bot dialogue.
type NewsService struct {
	newsRepo  repository.NewsRepository
	publisher *Publisher
	validator *validator.Validator
}

// NewNewsService creates a NewsService.
func NewNewsService(newsRepo repository.NewsRepository, publisher *Publisher, v *validator.Validator) *NewsService {
	return &NewsService{
		newsRepo:  newsRepo,
		publisher: publisher,
		validator: v,
	}
}

// CreateAndPublish validates and stores a new article, then mirrors it to
// the author's channel. The article is stored before the channel send, so
// a channel failure degrades the outcome instead of losing the article.
func (s *NewsService) CreateAndPublish(ctx context.Context, news *domain.News) (*domain.PublishOutcome, error) {
	if err := s.validator.ValidateNews(news); err != nil {
		return nil, err
	}

	if err := s.newsRepo.Create(ctx, news); err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}

	return s.publisher.Publish(ctx, news), nil
}

// SubmitFromDialogue turns a completed bot dialogue into a stored,
// published article.
func (s *NewsService) SubmitFromDialogue(ctx context.Context, authorID string, session *domain.Session) (*domain.PublishOutcome, error) {
	news := &domain.News{
		Title:       session.Title,
		Body:        session.Body,
		Images:      session.Images,
		SocialLinks: session.SocialLinks,
		ReadTime:    DefaultReadTime,
		AuthorID:    authorID,
	}

	outcome, err := s.CreateAndPublish(ctx, news)
	if err != nil {
		return nil, err
	}

	logger.Info("Dialogue submission published",
		slog.String("news_id", outcome.News.ID),
		slog.String("status", string(outcome.Status)))
	return outcome, nil
}

// GetNews fetches one article and counts the view. The counter bump is
// best-effort; a failed increment does not fail the read.
func (s *NewsService) GetNews(ctx context.Context, id string) (*domain.News, error) {
	news, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.newsRepo.IncrementViews(ctx, id); err != nil {
		logger.Warn("Failed to increment views",
			slog.String("news_id", id), slog.String("error", err.Error()))
	} else {
		news.Views++
	}

	return news, nil
}

// ListNews returns all articles, newest first.
func (s *NewsService) ListNews(ctx context.Context) ([]domain.News, error) {
	return s.newsRepo.List(ctx)
}

// UpdateAndRepublish validates the edit, persists it and replaces the
// channel copy via the publisher.
func (s *NewsService) UpdateAndRepublish(ctx context.Context, id string, upd domain.NewsUpdate) (*domain.PublishOutcome, error) {
	if err := s.validator.ValidateNewsUpdate(&upd); err != nil {
		return nil, err
	}
	return s.publisher.Republish(ctx, id, upd)
}

// DeleteAndRetract removes the article from the website and the channel.
func (s *NewsService) DeleteAndRetract(ctx context.Context, id string) error {
	if err := s.publisher.Retract(ctx, id); err != nil {
		return err
	}
	metrics.RetractTotal.Inc()
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/IJTechs/namedu-backend/internal/domain"
)

// PostgresNewsRepository implements NewsRepository using PostgreSQL.
type PostgresNewsRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresNewsRepository creates a new PostgresNewsRepository.
func NewPostgresNewsRepository(pool *pgxpool.Pool) *PostgresNewsRepository {
	return &PostgresNewsRepository{pool: pool}
}

const newsColumns = `id, title, body, images, read_time, views, social_links, author_id, telegram_message_ids, telegram_chat_id, created_at, updated_at`

// Create inserts a news record, assigning its id and timestamps.
func (r *PostgresNewsRepository) Create(ctx context.Context, news *domain.News) error {
	if news.ID == "" {
		news.ID = uuid.New().String()
	}

	socialJSON, err := json.Marshal(news.SocialLinks)
	if err != nil {
		return fmt.Errorf("marshal social links: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO news (id, title, body, images, read_time, views, social_links, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`, news.ID, news.Title, news.Body, news.Images, news.ReadTime, news.Views, socialJSON, news.AuthorID)

	if err := row.Scan(&news.CreatedAt, &news.UpdatedAt); err != nil {
		return fmt.Errorf("insert news: %w", err)
	}
	return nil
}

// GetByID fetches one news record.
func (r *PostgresNewsRepository) GetByID(ctx context.Context, id string) (*domain.News, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+newsColumns+` FROM news WHERE id = $1`, id)

	news, err := scanNews(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get news: %w", err)
	}
	return news, nil
}

// List returns all news, newest first.
func (r *PostgresNewsRepository) List(ctx context.Context) ([]domain.News, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+newsColumns+` FROM news ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query news: %w", err)
	}
	defer rows.Close()

	var out []domain.News
	for rows.Next() {
		news, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("scan news: %w", err)
		}
		out = append(out, *news)
	}
	return out, rows.Err()
}

// Update applies the non-nil fields of upd and returns the updated record.
// The channel message state is deliberately untouchable from here.
func (r *PostgresNewsRepository) Update(ctx context.Context, id string, upd domain.NewsUpdate) (*domain.News, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE news SET
			title = COALESCE($2, title),
			body = COALESCE($3, body),
			images = COALESCE($4, images),
			read_time = COALESCE($5, read_time),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+newsColumns,
		id, upd.Title, upd.Body, upd.Images, upd.ReadTime)

	news, err := scanNews(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update news: %w", err)
	}
	return news, nil
}

// Delete removes a news record.
func (r *PostgresNewsRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementViews bumps the view counter by one.
func (r *PostgresNewsRepository) IncrementViews(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE news SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetChannelMessages stores the message ids and chat id of the live channel
// copy in one statement, keeping the pair consistent.
func (r *PostgresNewsRepository) SetChannelMessages(ctx context.Context, id string, messageIDs []int, chatID int64) error {
	if len(messageIDs) == 0 {
		return fmt.Errorf("set channel messages: empty message id set")
	}

	ids := make([]int64, len(messageIDs))
	for i, m := range messageIDs {
		ids[i] = int64(m)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE news SET telegram_message_ids = $2, telegram_chat_id = $3, updated_at = NOW()
		WHERE id = $1
	`, id, ids, chatID)
	if err != nil {
		return fmt.Errorf("set channel messages: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearChannelMessages drops both halves of the channel state together.
func (r *PostgresNewsRepository) ClearChannelMessages(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE news SET telegram_message_ids = '{}', telegram_chat_id = NULL, updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("clear channel messages: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// scanNews reads one news row, converting array and jsonb columns.
func scanNews(row pgx.Row) (*domain.News, error) {
	var (
		n          domain.News
		socialJSON []byte
		messageIDs []int64
	)

	if err := row.Scan(&n.ID, &n.Title, &n.Body, &n.Images, &n.ReadTime, &n.Views,
		&socialJSON, &n.AuthorID, &messageIDs, &n.TelegramChatID, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}

	if len(socialJSON) > 0 {
		if err := json.Unmarshal(socialJSON, &n.SocialLinks); err != nil {
			return nil, fmt.Errorf("unmarshal social links: %w", err)
		}
	}

	if len(messageIDs) > 0 {
		n.TelegramMessageIDs = make([]int, len(messageIDs))
		for i, m := range messageIDs {
			n.TelegramMessageIDs[i] = int(m)
		}
	}

	return &n, nil
}

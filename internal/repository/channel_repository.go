package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/IJTechs/namedu-backend/internal/domain"
)

// PostgresChannelRepository implements ChannelRepository using PostgreSQL.
type PostgresChannelRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresChannelRepository creates a new PostgresChannelRepository.
func NewPostgresChannelRepository(pool *pgxpool.Pool) *PostgresChannelRepository {
	return &PostgresChannelRepository{pool: pool}
}

const channelColumns = `id, bot_token, channel_id, admin_chat_id, admin_id, created_at, updated_at`

// Create inserts a channel binding.
func (r *PostgresChannelRepository) Create(ctx context.Context, binding *domain.ChannelBinding) error {
	if binding.ID == "" {
		binding.ID = uuid.New().String()
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO channels (id, bot_token, channel_id, admin_chat_id, admin_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`, binding.ID, binding.BotToken, binding.ChannelID, binding.AdminChatID, binding.AdminID)

	if err := row.Scan(&binding.CreatedAt, &binding.UpdatedAt); err != nil {
		return fmt.Errorf("insert channel binding: %w", err)
	}
	return nil
}

// GetByID fetches one channel binding.
func (r *PostgresChannelRepository) GetByID(ctx context.Context, id string) (*domain.ChannelBinding, error) {
	return r.getOne(ctx, `SELECT `+channelColumns+` FROM channels WHERE id = $1`, id)
}

// GetByAdminID fetches the channel binding owned by an admin. ErrNotFound
// means the admin never linked a channel, which publish treats as a
// degraded success rather than a failure.
func (r *PostgresChannelRepository) GetByAdminID(ctx context.Context, adminID string) (*domain.ChannelBinding, error) {
	return r.getOne(ctx, `SELECT `+channelColumns+` FROM channels WHERE admin_id = $1`, adminID)
}

// List returns all channel bindings.
func (r *PostgresChannelRepository) List(ctx context.Context) ([]domain.ChannelBinding, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+channelColumns+` FROM channels ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query channel bindings: %w", err)
	}
	defer rows.Close()

	var out []domain.ChannelBinding
	for rows.Next() {
		var b domain.ChannelBinding
		if err := rows.Scan(&b.ID, &b.BotToken, &b.ChannelID, &b.AdminChatID, &b.AdminID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan channel binding: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Update overwrites a channel binding's mutable fields.
func (r *PostgresChannelRepository) Update(ctx context.Context, binding *domain.ChannelBinding) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE channels SET bot_token = $2, channel_id = $3, admin_chat_id = $4, updated_at = NOW()
		WHERE id = $1
	`, binding.ID, binding.BotToken, binding.ChannelID, binding.AdminChatID)
	if err != nil {
		return fmt.Errorf("update channel binding: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a channel binding.
func (r *PostgresChannelRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM channels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete channel binding: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresChannelRepository) getOne(ctx context.Context, query string, arg any) (*domain.ChannelBinding, error) {
	var b domain.ChannelBinding
	err := r.pool.QueryRow(ctx, query, arg).
		Scan(&b.ID, &b.BotToken, &b.ChannelID, &b.AdminChatID, &b.AdminID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get channel binding: %w", err)
	}
	return &b, nil
}

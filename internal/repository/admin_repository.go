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

// PostgresAdminRepository implements AdminRepository using PostgreSQL.
type PostgresAdminRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAdminRepository creates a new PostgresAdminRepository.
func NewPostgresAdminRepository(pool *pgxpool.Pool) *PostgresAdminRepository {
	return &PostgresAdminRepository{pool: pool}
}

const adminColumns = `id, full_name, username, password_hash, role, is_active, created_at, updated_at`

// Create inserts an admin account.
func (r *PostgresAdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	if admin.Role == "" {
		admin.Role = domain.RoleAdmin
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO admins (id, full_name, username, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`, admin.ID, admin.FullName, admin.Username, admin.PasswordHash, admin.Role, admin.IsActive)

	if err := row.Scan(&admin.CreatedAt, &admin.UpdatedAt); err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// GetByID fetches one admin account.
func (r *PostgresAdminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	return r.getOne(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id)
}

// GetByUsername fetches one admin account by its unique username.
func (r *PostgresAdminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	return r.getOne(ctx, `SELECT `+adminColumns+` FROM admins WHERE username = $1`, username)
}

// ListActive returns all active admin accounts. The bot initializer uses
// this at startup to decide which bots to run.
func (r *PostgresAdminRepository) ListActive(ctx context.Context) ([]domain.Admin, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+adminColumns+` FROM admins WHERE is_active ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query admins: %w", err)
	}
	defer rows.Close()

	var out []domain.Admin
	for rows.Next() {
		var a domain.Admin
		if err := rows.Scan(&a.ID, &a.FullName, &a.Username, &a.PasswordHash, &a.Role, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresAdminRepository) getOne(ctx context.Context, query string, arg any) (*domain.Admin, error) {
	var a domain.Admin
	err := r.pool.QueryRow(ctx, query, arg).
		Scan(&a.ID, &a.FullName, &a.Username, &a.PasswordHash, &a.Role, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &a, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"flightbook/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGAdminRepository struct {
	db *pgxpool.Pool
}

func NewPGAdminRepository(db *pgxpool.Pool) *PGAdminRepository {
	return &PGAdminRepository{db: db}
}

func (r *PGAdminRepository) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, password_hash, created_at, updated_at FROM admin_users WHERE username=$1`, username)
	var a domain.AdminUser
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch admin user: %w", err)
	}
	return &a, nil
}

func (r *PGAdminRepository) Upsert(ctx context.Context, admin *domain.AdminUser) error {
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	row := r.db.QueryRow(ctx, `INSERT INTO admin_users (id, username, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash, updated_at = now()
		RETURNING id, created_at, updated_at`,
		admin.ID, admin.Username, admin.PasswordHash)
	if err := row.Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert admin user: %w", err)
	}
	return nil
}

var _ AdminRepository = (*PGAdminRepository)(nil)

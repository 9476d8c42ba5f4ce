package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flightbook/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func adminKey(username string) string {
	return "admin:" + username
}

// storedAdmin is the persisted form; domain.AdminUser hides the hash from
// JSON, the store must not.
type storedAdmin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RedisAdminRepository struct {
	client *redis.Client
}

func NewRedisAdminRepository(client *redis.Client) *RedisAdminRepository {
	return &RedisAdminRepository{client: client}
}

func (r *RedisAdminRepository) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	raw, err := r.client.Get(ctx, adminKey(username)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch admin user: %w", err)
	}
	var stored storedAdmin
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode admin user: %w", err)
	}
	return &domain.AdminUser{
		ID:           stored.ID,
		Username:     stored.Username,
		PasswordHash: stored.PasswordHash,
		CreatedAt:    stored.CreatedAt,
		UpdatedAt:    stored.UpdatedAt,
	}, nil
}

func (r *RedisAdminRepository) Upsert(ctx context.Context, admin *domain.AdminUser) error {
	now := time.Now().UTC()
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = now
	}
	admin.UpdatedAt = now

	data, err := json.Marshal(storedAdmin{
		ID:           admin.ID,
		Username:     admin.Username,
		PasswordHash: admin.PasswordHash,
		CreatedAt:    admin.CreatedAt,
		UpdatedAt:    admin.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode admin user: %w", err)
	}
	if err := r.client.Set(ctx, adminKey(admin.Username), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store admin user: %w", err)
	}
	return nil
}

var _ AdminRepository = (*RedisAdminRepository)(nil)

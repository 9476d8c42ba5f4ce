package repository

import (
	"context"
	"testing"

	"flightbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisAdminRepository(t *testing.T) {
	repo := NewRedisAdminRepository(newTestRedis(t))
	ctx := context.Background()

	t.Run("UpsertAndGet", func(t *testing.T) {
		admin := &domain.AdminUser{Username: "admin", PasswordHash: "$2a$10$fakehash"}
		require.NoError(t, repo.Upsert(ctx, admin))
		assert.NotEmpty(t, admin.ID)

		got, err := repo.GetByUsername(ctx, "admin")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, admin.ID, got.ID)
		assert.Equal(t, "$2a$10$fakehash", got.PasswordHash)
	})

	t.Run("UpsertRotatesHash", func(t *testing.T) {
		admin := &domain.AdminUser{Username: "admin", PasswordHash: "$2a$10$otherhash"}
		require.NoError(t, repo.Upsert(ctx, admin))

		got, err := repo.GetByUsername(ctx, "admin")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "$2a$10$otherhash", got.PasswordHash)
	})

	t.Run("GetAbsent", func(t *testing.T) {
		got, err := repo.GetByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

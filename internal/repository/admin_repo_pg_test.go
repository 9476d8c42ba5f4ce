package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewPGAdminRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewPGAdminRepository(pool)
	assert.NotNil(t, repo)
}

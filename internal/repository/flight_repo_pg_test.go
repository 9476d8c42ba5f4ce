package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewPGFlightRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewPGFlightRepository(pool)
	assert.NotNil(t, repo)
}

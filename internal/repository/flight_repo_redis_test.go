package repository

import (
	"context"
	"testing"
	"time"

	"flightbook/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisFlightRepository(t *testing.T) {
	repo := NewRedisFlightRepository(newTestRedis(t))
	ctx := context.Background()

	t.Run("AddAndGet", func(t *testing.T) {
		flight := &domain.Flight{
			FlightNumber:   "FB101",
			FromCity:       "Delhi",
			ToCity:         "Mumbai",
			SeatsAvailable: 5,
			TotalSeats:     10,
			PriceCents:     10000,
			Airline:        "IndiGo",
			Duration:       "2h 10m",
		}
		require.NoError(t, repo.Add(ctx, flight))
		assert.NotEmpty(t, flight.ID)
		assert.False(t, flight.CreatedAt.IsZero())

		got, err := repo.GetByID(ctx, flight.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "FB101", got.FlightNumber)
		assert.Equal(t, 5, got.SeatsAvailable)
	})

	t.Run("GetAbsent", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("UpdateSeatsOverwrites", func(t *testing.T) {
		flight := &domain.Flight{FlightNumber: "FB102", FromCity: "Pune", ToCity: "Goa", SeatsAvailable: 3, TotalSeats: 5}
		require.NoError(t, repo.Add(ctx, flight))

		// No bounds check: even an out-of-range value persists.
		require.NoError(t, repo.UpdateSeats(ctx, flight.ID, 99))
		got, err := repo.GetByID(ctx, flight.ID)
		require.NoError(t, err)
		assert.Equal(t, 99, got.SeatsAvailable)
	})

	t.Run("UpdateSeatsUnknownIDIsNoop", func(t *testing.T) {
		require.NoError(t, repo.UpdateSeats(ctx, "missing", 1))
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		flight := &domain.Flight{FlightNumber: "FB103", FromCity: "A", ToCity: "B", SeatsAvailable: 1, TotalSeats: 1}
		require.NoError(t, repo.Add(ctx, flight))
		require.NoError(t, repo.Delete(ctx, flight.ID))
		require.NoError(t, repo.Delete(ctx, flight.ID))

		got, err := repo.GetByID(ctx, flight.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestRedisFlightRepository_ListOrder(t *testing.T) {
	repo := NewRedisFlightRepository(newTestRedis(t))
	ctx := context.Background()

	older := &domain.Flight{FlightNumber: "FB1", FromCity: "A", ToCity: "B", SeatsAvailable: 1, TotalSeats: 1,
		CreatedAt: time.Now().Add(-time.Hour)}
	newer := &domain.Flight{FlightNumber: "FB2", FromCity: "A", ToCity: "B", SeatsAvailable: 1, TotalSeats: 1,
		CreatedAt: time.Now()}
	require.NoError(t, repo.Add(ctx, older))
	require.NoError(t, repo.Add(ctx, newer))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "FB2", list[0].FlightNumber)
	assert.Equal(t, "FB1", list[1].FlightNumber)
}

func TestRedisFlightRepository_Search(t *testing.T) {
	repo := NewRedisFlightRepository(newTestRedis(t))
	ctx := context.Background()

	f1 := &domain.Flight{FlightNumber: "FB201", FromCity: "Delhi", ToCity: "Mumbai", SeatsAvailable: 5, TotalSeats: 10, PriceCents: 10000}
	cheaper := &domain.Flight{FlightNumber: "FB202", FromCity: "New Delhi", ToCity: "Mumbai", SeatsAvailable: 2, TotalSeats: 10, PriceCents: 5000}
	full := &domain.Flight{FlightNumber: "FB203", FromCity: "Delhi", ToCity: "Mumbai", SeatsAvailable: 0, TotalSeats: 10, PriceCents: 1000}
	elsewhere := &domain.Flight{FlightNumber: "FB204", FromCity: "Delhi", ToCity: "Chennai", SeatsAvailable: 5, TotalSeats: 10, PriceCents: 2000}
	for _, f := range []*domain.Flight{f1, cheaper, full, elsewhere} {
		require.NoError(t, repo.Add(ctx, f))
	}

	// Case-insensitive substring match, sold-out flights excluded, cheapest first.
	got, err := repo.Search(ctx, domain.SearchParams{FromCity: "del", ToCity: "mum"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "FB202", got[0].FlightNumber)
	assert.Equal(t, "FB201", got[1].FlightNumber)

	require.NoError(t, repo.UpdateSeats(ctx, f1.ID, 0))
	require.NoError(t, repo.UpdateSeats(ctx, cheaper.ID, 0))
	got, err = repo.Search(ctx, domain.SearchParams{FromCity: "del", ToCity: "mum"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

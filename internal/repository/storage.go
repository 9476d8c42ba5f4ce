package repository

import (
	"fmt"

	"flightbook/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Store bundles one repository per collection, all backed by the same
// adapter. The backend is picked once at startup; callers never see which
// store is behind the interfaces.
type Store struct {
	Flights  FlightRepository
	Bookings BookingRepository
	Admins   AdminRepository
}

func NewStore(cfg config.StorageConfig, pool *pgxpool.Pool, client *redis.Client) (*Store, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		if pool == nil {
			return nil, fmt.Errorf("postgres backend selected but no pool configured")
		}
		return &Store{
			Flights:  NewPGFlightRepository(pool),
			Bookings: NewPGBookingRepository(pool),
			Admins:   NewPGAdminRepository(pool),
		}, nil
	case config.BackendRedis:
		if client == nil {
			return nil, fmt.Errorf("redis backend selected but no client configured")
		}
		flights := NewRedisFlightRepository(client)
		return &Store{
			Flights:  flights,
			Bookings: NewRedisBookingRepository(client, flights),
			Admins:   NewRedisAdminRepository(client),
		}, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

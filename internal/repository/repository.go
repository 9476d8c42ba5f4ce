package repository

import (
	"context"
	"time"

	"flightbook/internal/domain"
)

// Repositories return (nil, nil) when a record is absent; an error always
// means the underlying store failed, never "not found".

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	Search(ctx context.Context, params domain.SearchParams) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	// UpdateSeats overwrites seats_available unconditionally. Bounds are the
	// caller's responsibility.
	UpdateSeats(ctx context.Context, id string, seatsAvailable int) error
	Add(ctx context.Context, flight *domain.Flight) error
	// Delete is a no-op for an unknown id.
	Delete(ctx context.Context, id string) error
}

type BookingRepository interface {
	// Create appends the booking and takes one seat on the referenced flight
	// in the same unit of work. Returns domain.ErrNoSeats when the flight has
	// no seats left.
	Create(ctx context.Context, booking *domain.Booking) error
	ExistsForFlightEmail(ctx context.Context, flightID, email string) (bool, error)
	List(ctx context.Context) ([]domain.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	// Cancel marks the booking cancelled and returns one seat to the flight
	// in the same unit of work. Idempotent for an already cancelled booking.
	Cancel(ctx context.Context, id string) (*domain.Booking, error)
	CountActiveByFlight(ctx context.Context, flightID string) (int, error)
	DeleteCancelledBefore(ctx context.Context, cutoff time.Time) (int, error)
}

type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
	Upsert(ctx context.Context, admin *domain.AdminUser) error
}

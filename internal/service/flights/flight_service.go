package flights

import (
	"context"
	"errors"

	"flightbook/internal/domain"
	"flightbook/internal/repository"

	"github.com/rs/zerolog"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	Search(ctx context.Context, params domain.SearchParams) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Add(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id string) error
	UpdateSeats(ctx context.Context, id string, seatsAvailable int) error
}

// Cache is the slice of the redis cache this service needs.
type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
	log   zerolog.Logger
}

func NewFlightService(repo repository.FlightRepository, cache Cache, log zerolog.Logger) *FlightService {
	return &FlightService{repo: repo, cache: cache, log: log}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.log.Debug().Err(err).Msg("failed to cache flights")
		}
	}
	return flights, nil
}

func (s *FlightService) Search(ctx context.Context, params domain.SearchParams) ([]domain.Flight, error) {
	return s.repo.Search(ctx, params)
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Add(ctx context.Context, flight *domain.Flight) error {
	if flight.FlightNumber == "" {
		return errors.New("flight number is required")
	}
	if flight.FromCity == "" || flight.ToCity == "" {
		return errors.New("origin and destination cities are required")
	}
	if flight.TotalSeats <= 0 {
		return errors.New("total seats must be positive")
	}
	if flight.SeatsAvailable < 0 || flight.SeatsAvailable > flight.TotalSeats {
		return errors.New("seats available must be between 0 and total seats")
	}
	if flight.PriceCents < 0 {
		return errors.New("price must not be negative")
	}

	if err := s.repo.Add(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// UpdateSeats overwrites the seat count as-is; callers own the bounds. The
// reconcile sweep corrects values that drift from active bookings.
func (s *FlightService) UpdateSeats(ctx context.Context, id string, seatsAvailable int) error {
	if err := s.repo.UpdateSeats(ctx, id, seatsAvailable); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.Debug().Err(err).Msg("failed to invalidate flights cache")
	}
}

var _ FlightUseCase = (*FlightService)(nil)

package booking

import (
	"context"
	"errors"
	"fmt"

	"flightbook/internal/domain"
	"flightbook/internal/kafka"
	"flightbook/internal/metrics"
	"flightbook/internal/repository"

	"github.com/rs/zerolog"
)

type BookingUseCase interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	Cancel(ctx context.Context, id string) (*domain.Booking, error)
	Reconcile(ctx context.Context) (int, error)
}

// Cache is the slice of the redis cache this service needs: booking writes
// change seat counts, so the cached flights list must go.
type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	rejectDuplicates   bool
	log                zerolog.Logger
}

type CreateBookingInput struct {
	FlightID      string               `json:"flight_id"`
	PassengerName string               `json:"passenger_name"`
	Email         string               `json:"email"`
	Status        domain.BookingStatus `json:"status"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithDuplicateRejection(enabled bool) BookingServiceOption {
	return func(s *BookingService) {
		s.rejectDuplicates = enabled
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	log zerolog.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		log:          log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.FlightID == "" {
		return nil, errors.New("flight id is required")
	}
	if input.PassengerName == "" {
		return nil, errors.New("passenger name is required")
	}
	if input.Email == "" {
		return nil, errors.New("email is required")
	}
	status := input.Status
	if status == "" {
		status = domain.BookingStatusPending
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if status == domain.BookingStatusCancelled {
		return nil, domain.ErrInvalidTransition
	}

	if s.rejectDuplicates {
		exists, err := s.bookings.ExistsForFlightEmail(ctx, input.FlightID, input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateBooking
		}
	}

	booking := &domain.Booking{
		FlightID:      input.FlightID,
		PassengerName: input.PassengerName,
		Email:         input.Email,
		Status:        status,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	s.invalidateFlights(ctx)
	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

func (s *BookingService) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *BookingService) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	return s.bookings.ListByEmail(ctx, email)
}

func (s *BookingService) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}
	if current.Status == status {
		return current, nil
	}
	if !current.Status.CanTransition(status) {
		return nil, domain.ErrInvalidTransition
	}

	if status == domain.BookingStatusCancelled {
		return s.Cancel(ctx, id)
	}

	updated, err := s.bookings.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}
	s.publish(ctx, fmt.Sprintf("booking_%s", status), updated)
	return updated, nil
}

func (s *BookingService) Cancel(ctx context.Context, id string) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}
	if current.Status == domain.BookingStatusCancelled {
		return current, nil
	}

	cancelled, err := s.bookings.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}
	if cancelled == nil {
		return nil, nil
	}

	metrics.IncBookingCancelled()
	s.invalidateFlights(ctx)
	s.publish(ctx, "booking_cancelled", cancelled)
	return cancelled, nil
}

// Reconcile recomputes each flight's available seats from its non-cancelled
// bookings and overwrites values that drifted. Returns the number of flights
// corrected.
func (s *BookingService) Reconcile(ctx context.Context) (int, error) {
	flights, err := s.flights.List(ctx)
	if err != nil {
		return 0, err
	}

	corrected := 0
	for _, f := range flights {
		active, err := s.bookings.CountActiveByFlight(ctx, f.ID)
		if err != nil {
			return corrected, err
		}
		want := f.TotalSeats - active
		if want < 0 {
			want = 0
		}
		if want == f.SeatsAvailable {
			continue
		}
		if err := s.flights.UpdateSeats(ctx, f.ID, want); err != nil {
			return corrected, err
		}
		s.log.Info().Str("flight_id", f.ID).Int("had", f.SeatsAvailable).Int("now", want).Msg("reconciled seat count")
		corrected++
	}
	if corrected > 0 {
		s.invalidateFlights(ctx)
	}
	return corrected, nil
}

func (s *BookingService) invalidateFlights(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.Debug().Err(err).Msg("failed to invalidate flights cache")
	}
}

// publish failures are logged, never surfaced: events are advisory, the
// store is authoritative.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		FlightID:      booking.FlightID,
		PassengerName: booking.PassengerName,
		Email:         booking.Email,
		Status:        string(booking.Status),
		BookingDate:   booking.BookingDate,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		s.log.Warn().Err(err).Str("booking_id", booking.ID).Str("event", eventType).Msg("failed to publish booking event")
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event); err != nil {
			s.log.Warn().Err(err).Str("booking_id", booking.ID).Str("event", eventType).Msg("failed to publish notification event")
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)

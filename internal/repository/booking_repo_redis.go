package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"flightbook/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const bookingIDsKey = "bookings:ids"

func bookingKey(id string) string {
	return "booking:" + id
}

type RedisBookingRepository struct {
	client  *redis.Client
	flights *RedisFlightRepository
}

func NewRedisBookingRepository(client *redis.Client, flights *RedisFlightRepository) *RedisBookingRepository {
	return &RedisBookingRepository{client: client, flights: flights}
}

func (r *RedisBookingRepository) loadAll(ctx context.Context) ([]domain.Booking, error) {
	ids, err := r.client.SMembers(ctx, bookingIDsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Booking{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, bookingKey(id))
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	bookings := make([]domain.Booking, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var b domain.Booking
		if err := json.Unmarshal([]byte(raw), &b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *RedisBookingRepository) save(ctx context.Context, booking *domain.Booking) error {
	data, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("failed to encode booking: %w", err)
	}
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, bookingKey(booking.ID), data, 0)
	pipe.SAdd(ctx, bookingIDsKey, booking.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store booking: %w", err)
	}
	return nil
}

// Create writes the flight and the booking as two separate keys; the pair is
// not atomic. The worker's reconcile sweep corrects seat drift.
func (r *RedisBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	flight, err := r.flights.GetByID(ctx, booking.FlightID)
	if err != nil {
		return err
	}
	if flight == nil || flight.SeatsAvailable <= 0 {
		return domain.ErrNoSeats
	}

	flight.SeatsAvailable--
	flight.UpdatedAt = time.Now().UTC()
	if err := r.flights.save(ctx, flight); err != nil {
		return err
	}

	now := time.Now().UTC()
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.BookingDate.IsZero() {
		booking.BookingDate = now
	}
	if booking.Status == "" {
		booking.Status = domain.BookingStatusPending
	}
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return r.save(ctx, booking)
}

func (r *RedisBookingRepository) ExistsForFlightEmail(ctx context.Context, flightID, email string) (bool, error) {
	bookings, err := r.loadAll(ctx)
	if err != nil {
		return false, err
	}
	for _, b := range bookings {
		if b.FlightID == flightID && b.Email == email && b.Status != domain.BookingStatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (r *RedisBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	sortByBookingDateDesc(bookings)
	return bookings, nil
}

func (r *RedisBookingRepository) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	bookings, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Booking, 0)
	for _, b := range bookings {
		if b.Email == email {
			matched = append(matched, b)
		}
	}
	sortByBookingDateDesc(matched)
	return matched, nil
}

func (r *RedisBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	raw, err := r.client.Get(ctx, bookingKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	var b domain.Booking
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return nil, fmt.Errorf("failed to decode booking: %w", err)
	}
	return &b, nil
}

func (r *RedisBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	booking, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, nil
	}
	booking.Status = status
	booking.UpdatedAt = time.Now().UTC()
	if err := r.save(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *RedisBookingRepository) Cancel(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, nil
	}
	if booking.Status == domain.BookingStatusCancelled {
		return booking, nil
	}

	booking.Status = domain.BookingStatusCancelled
	booking.UpdatedAt = time.Now().UTC()
	if err := r.save(ctx, booking); err != nil {
		return nil, err
	}

	flight, err := r.flights.GetByID(ctx, booking.FlightID)
	if err != nil {
		return nil, err
	}
	if flight != nil {
		if flight.SeatsAvailable < flight.TotalSeats {
			flight.SeatsAvailable++
		}
		flight.UpdatedAt = time.Now().UTC()
		if err := r.flights.save(ctx, flight); err != nil {
			return nil, err
		}
	}
	return booking, nil
}

func (r *RedisBookingRepository) CountActiveByFlight(ctx context.Context, flightID string) (int, error) {
	bookings, err := r.loadAll(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, b := range bookings {
		if b.FlightID == flightID && b.Status != domain.BookingStatusCancelled {
			count++
		}
	}
	return count, nil
}

func (r *RedisBookingRepository) DeleteCancelledBefore(ctx context.Context, cutoff time.Time) (int, error) {
	bookings, err := r.loadAll(ctx)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, b := range bookings {
		if b.Status != domain.BookingStatusCancelled || b.UpdatedAt.After(cutoff) {
			continue
		}
		pipe := r.client.TxPipeline()
		pipe.Del(ctx, bookingKey(b.ID))
		pipe.SRem(ctx, bookingIDsKey, b.ID)
		if _, err := pipe.Exec(ctx); err != nil {
			return deleted, fmt.Errorf("failed to delete cancelled bookings: %w", err)
		}
		deleted++
	}
	return deleted, nil
}

// Booking dates are stored as RFC3339, so descending time order matches the
// descending string order the clients expect.
func sortByBookingDateDesc(bookings []domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].BookingDate.After(bookings[j].BookingDate)
	})
}

var _ BookingRepository = (*RedisBookingRepository)(nil)

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flightbook/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, flight_id, passenger_name, email, booking_date, status, created_at, updated_at`

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewPGBookingRepository(db *pgxpool.Pool) *PGBookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	defer tx.Rollback(ctx)

	var available int
	err = tx.QueryRow(ctx, `UPDATE flights SET seats_available = seats_available - 1, updated_at = now()
		WHERE id=$1 AND seats_available > 0
		RETURNING seats_available`, booking.FlightID).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNoSeats
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.BookingDate.IsZero() {
		booking.BookingDate = time.Now().UTC()
	}
	if booking.Status == "" {
		booking.Status = domain.BookingStatusPending
	}
	err = tx.QueryRow(ctx, `INSERT INTO bookings (id, flight_id, passenger_name, email, booking_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		booking.ID, booking.FlightID, booking.PassengerName, booking.Email, booking.BookingDate, booking.Status).
		Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) ExistsForFlightEmail(ctx context.Context, flightID, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bookings WHERE flight_id=$1 AND email=$2 AND status <> $3)`,
		flightID, email, domain.BookingStatusCancelled).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existing booking: %w", err)
	}
	return exists, nil
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY booking_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *PGBookingRepository) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE email=$1 ORDER BY booking_date DESC`, email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &b, nil
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$2, updated_at=now() WHERE id=$1 RETURNING `+bookingColumns, id, status)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	return &b, nil
}

func (r *PGBookingRepository) Cancel(ctx context.Context, id string) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1 FOR UPDATE`, id)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	if b.Status == domain.BookingStatusCancelled {
		return &b, nil
	}

	row = tx.QueryRow(ctx, `UPDATE bookings SET status=$2, updated_at=now() WHERE id=$1 RETURNING `+bookingColumns,
		id, domain.BookingStatusCancelled)
	if err := scanBooking(row, &b); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	_, err = tx.Exec(ctx, `UPDATE flights SET seats_available = LEAST(seats_available + 1, total_seats), updated_at = now() WHERE id=$1`, b.FlightID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	return &b, nil
}

func (r *PGBookingRepository) CountActiveByFlight(ctx context.Context, flightID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM bookings WHERE flight_id=$1 AND status <> $2`,
		flightID, domain.BookingStatusCancelled).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func (r *PGBookingRepository) DeleteCancelledBefore(ctx context.Context, cutoff time.Time) (int, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE status=$1 AND updated_at <= $2`,
		domain.BookingStatusCancelled, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete cancelled bookings: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

func scanBooking(row pgx.Row, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.FlightID, &b.PassengerName, &b.Email, &b.BookingDate, &b.Status, &b.CreatedAt, &b.UpdatedAt)
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)

package repository

import (
	"context"
	"errors"
	"fmt"

	"flightbook/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const flightColumns = `id, flight_number, from_city, to_city, seats_available, total_seats, price_cents, airline, duration, created_at, updated_at`

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewPGFlightRepository(db *pgxpool.Pool) *PGFlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch flights: %w", err)
	}
	defer rows.Close()
	return scanFlights(rows)
}

func (r *PGFlightRepository) Search(ctx context.Context, params domain.SearchParams) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE from_city ILIKE '%' || $1 || '%'
		  AND to_city ILIKE '%' || $2 || '%'
		  AND seats_available > 0
		ORDER BY price_cents`, params.FromCity, params.ToCity)
	if err != nil {
		return nil, fmt.Errorf("failed to search flights: %w", err)
	}
	defer rows.Close()
	return scanFlights(rows)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch flight: %w", err)
	}
	return &f, nil
}

func (r *PGFlightRepository) UpdateSeats(ctx context.Context, id string, seatsAvailable int) error {
	_, err := r.db.Exec(ctx, `UPDATE flights SET seats_available=$2, updated_at=now() WHERE id=$1`, id, seatsAvailable)
	if err != nil {
		return fmt.Errorf("failed to update flight seats: %w", err)
	}
	return nil
}

func (r *PGFlightRepository) Add(ctx context.Context, flight *domain.Flight) error {
	if flight.ID == "" {
		flight.ID = uuid.NewString()
	}
	row := r.db.QueryRow(ctx, `INSERT INTO flights (id, flight_number, from_city, to_city, seats_available, total_seats, price_cents, airline, duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`,
		flight.ID, flight.FlightNumber, flight.FromCity, flight.ToCity,
		flight.SeatsAvailable, flight.TotalSeats, flight.PriceCents, flight.Airline, flight.Duration)
	if err := row.Scan(&flight.CreatedAt, &flight.UpdatedAt); err != nil {
		return fmt.Errorf("failed to add flight: %w", err)
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id); err != nil {
		return fmt.Errorf("failed to delete flight: %w", err)
	}
	return nil
}

func scanFlight(row pgx.Row, f *domain.Flight) error {
	return row.Scan(&f.ID, &f.FlightNumber, &f.FromCity, &f.ToCity, &f.SeatsAvailable, &f.TotalSeats, &f.PriceCents, &f.Airline, &f.Duration, &f.CreatedAt, &f.UpdatedAt)
}

func scanFlights(rows pgx.Rows) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, fmt.Errorf("failed to scan flight: %w", err)
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)

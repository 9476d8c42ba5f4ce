package domain

import "time"

type Flight struct {
	ID             string    `json:"id"`
	FlightNumber   string    `json:"flight_number"`
	FromCity       string    `json:"from_city"`
	ToCity         string    `json:"to_city"`
	SeatsAvailable int       `json:"seats_available"`
	TotalSeats     int       `json:"total_seats"`
	PriceCents     int64     `json:"price_cents"`
	Airline        string    `json:"airline"`
	Duration       string    `json:"duration"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SearchParams carries the flight search form.
// DepartureDate and Passengers are accepted but not applied to filtering.
// TODO: filter by departure date once flights carry a departure timestamp.
type SearchParams struct {
	FromCity      string
	ToCity        string
	DepartureDate string
	Passengers    int
}

package domain

import "errors"

var (
	// ErrDuplicateBooking is returned when a booking for the same flight and
	// email already exists and duplicate rejection is enabled.
	ErrDuplicateBooking = errors.New("duplicate booking for flight and email")

	// ErrNoSeats is returned when a flight has no seats left to book.
	ErrNoSeats = errors.New("no seats available")

	// ErrInvalidStatus is returned for a status outside the known set.
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidTransition is returned when a status change is not allowed
	// from the booking's current status.
	ErrInvalidTransition = errors.New("illegal booking status transition")
)

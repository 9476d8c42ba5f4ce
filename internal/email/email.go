package email

import (
	"context"

	"flightbook/internal/kafka"

	"github.com/rs/zerolog"
)

// Sender dispatches booking notifications. The transport is a log line for
// now; the worker owns retries by re-reading the topic.
type Sender struct {
	log zerolog.Logger
}

func NewSender(log zerolog.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.Info().
		Str("email", event.Email).
		Str("event", event.Type).
		Str("booking_id", event.BookingID).
		Str("flight_id", event.FlightID).
		Msg("sending booking notification")
	return nil
}

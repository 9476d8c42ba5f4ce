package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Consumer reads booking events from a topic and hands them, decoded, to a
// handler. A message that does not decode is logged and skipped; it would
// fail the same way on every redelivery.
type Consumer struct {
	reader *kafka.Reader
	log    zerolog.Logger
}

func NewConsumer(brokers []string, groupID, topic string, log zerolog.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		log: log,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, BookingEvent) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return fmt.Errorf("failed to read message from kafka: %w", err)
		}

		event, err := decodeBookingEvent(msg.Value)
		if err != nil {
			c.log.Warn().Err(err).Str("topic", msg.Topic).Int64("offset", msg.Offset).
				Msg("skipping undecodable booking event")
			continue
		}
		if err := handler(ctx, event); err != nil {
			return fmt.Errorf("failed to handle booking event: %w", err)
		}
	}
}

func decodeBookingEvent(data []byte) (BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return BookingEvent{}, fmt.Errorf("failed to unmarshal booking event: %w", err)
	}
	return event, nil
}

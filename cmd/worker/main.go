package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightbook/config"
	"flightbook/internal/cache"
	"flightbook/internal/email"
	"flightbook/internal/kafka"
	"flightbook/internal/logging"
	"flightbook/internal/repository"
	"flightbook/internal/service/booking"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(err)
	}
	log := logging.New(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if cfg.Storage.Backend == config.BackendPostgres {
		pool, err = pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatal().Err(err).Msg("connect postgres")
		}
		defer pool.Close()
	}

	redisClient := cache.NewRedisClient(cfg.Redis)
	defer redisClient.Close()

	store, err := repository.NewStore(cfg.Storage, pool, redisClient)
	if err != nil {
		log.Fatal().Err(err).Msg("build store")
	}

	redisCache := cache.NewRedisCache(redisClient,
		time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second,
		time.Duration(cfg.Admin.SessionTTL)*time.Minute)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	bookingService := booking.NewBookingService(
		store.Bookings,
		store.Flights,
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		log,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithDuplicateRejection(cfg.Booking.RejectDuplicates),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, log)
	defer consumer.Close()

	emailSender := email.NewSender(log)

	go func() {
		err := consumer.Consume(ctx, func(ctx context.Context, event kafka.BookingEvent) error {
			return emailSender.Send(ctx, event)
		})
		if err != nil {
			log.Warn().Err(err).Msg("consumer stopped")
		}
	}()

	reconcileTicker := time.NewTicker(time.Duration(cfg.Worker.ReconcileSweepMinutes) * time.Minute)
	defer reconcileTicker.Stop()
	cleanupTicker := time.NewTicker(time.Hour)
	defer cleanupTicker.Stop()

	for {
		select {
		case <-reconcileTicker.C:
			corrected, err := bookingService.Reconcile(ctx)
			if err != nil {
				log.Error().Err(err).Msg("reconcile seats")
				continue
			}
			if corrected > 0 {
				log.Info().Int("flights", corrected).Msg("reconciled seat counts")
			}
		case <-cleanupTicker.C:
			cutoff := time.Now().Add(-time.Duration(cfg.Worker.CleanupAfterHours) * time.Hour)
			deleted, err := store.Bookings.DeleteCancelledBefore(ctx, cutoff)
			if err != nil {
				log.Error().Err(err).Msg("cleanup cancelled bookings")
				continue
			}
			if deleted > 0 {
				log.Info().Int("bookings", deleted).Msg("removed stale cancelled bookings")
			}
		case <-ctx.Done():
			log.Info().Msg("shutting down worker")
			return
		}
	}
}

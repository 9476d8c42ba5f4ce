package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightbook/config"
	"flightbook/internal/bootstrap"
	"flightbook/internal/cache"
	"flightbook/internal/kafka"
	"flightbook/internal/logging"
	"flightbook/internal/repository"
	"flightbook/internal/service/admin"
	"flightbook/internal/service/booking"
	"flightbook/internal/service/flights"

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

	flightService := flights.NewFlightService(store.Flights, redisCache, log)
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
	adminService := admin.NewAdminService(store.Admins, redisCache, log)

	if cfg.Admin.Password != "" {
		if err := adminService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			log.Fatal().Err(err).Msg("seed admin account")
		}
	}

	if err := bootstrap.Run(ctx, cfg, log, flightService, bookingService, adminService); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

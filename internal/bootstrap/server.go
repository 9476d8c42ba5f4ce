package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"flightbook/api"
	"flightbook/config"
	"flightbook/internal/metrics"
	"flightbook/internal/service/admin"
	"flightbook/internal/service/booking"
	"flightbook/internal/service/flights"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, log zerolog.Logger,
	flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, adminSvc admin.AdminUseCase) error {

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(cfg, flightSvc, bookingSvc, adminSvc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()
	log.Info().Str("address", cfg.HTTP.Address).Msg("http server listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, adminSvc admin.AdminUseCase) *gin.Engine {
	metrics.Register()

	router := gin.New()
	router.Use(gin.Recovery(), api.Metrics())

	flightHandler := api.NewFlightHandler(flightSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	limiter := api.NewRateLimiter(cfg.Admin.LoginRPS, cfg.Admin.LoginBurst)
	adminHandler := api.NewAdminHandler(adminSvc, limiter)

	root := router.Group("/api")
	flightHandler.Register(root.Group("/flights"))
	bookingHandler.Register(root.Group("/bookings"))
	adminHandler.Register(root.Group("/admin"))

	authed := root.Group("/admin", api.AdminAuth(adminSvc))
	adminHandler.RegisterAuthed(authed)
	flightHandler.RegisterAdmin(authed.Group("/flights"))
	bookingHandler.RegisterAdmin(authed.Group("/bookings"))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
	})
	router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/openapi.json"))))

	return router
}

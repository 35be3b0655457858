package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mvetrova/flightdesk/api"
	"github.com/mvetrova/flightdesk/config"
	"github.com/mvetrova/flightdesk/internal/service/booking"
	"github.com/mvetrova/flightdesk/internal/service/flights"
	"github.com/mvetrova/flightdesk/internal/service/users"
)

// Run starts the HTTP server and blocks until the context is canceled
// or the server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, userSvc users.UserUseCase) error {
	router := gin.Default()

	flightHandler := api.NewFlightHandler(flightSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	userHandler := api.NewUserHandler(userSvc, bookingSvc)

	flightHandler.Register(router.Group("/flights"))
	bookingHandler.Register(router.Group("/bookings"))
	userHandler.Register(router.Group("/auth"))
	userHandler.RegisterBookings(router.Group("/users"))

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

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

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mvetrova/flightdesk/config"
	"github.com/mvetrova/flightdesk/internal/bootstrap"
	"github.com/mvetrova/flightdesk/internal/cache"
	"github.com/mvetrova/flightdesk/internal/fare"
	"github.com/mvetrova/flightdesk/internal/kafka"
	"github.com/mvetrova/flightdesk/internal/reference"
	"github.com/mvetrova/flightdesk/internal/repository"
	"github.com/mvetrova/flightdesk/internal/service/booking"
	"github.com/mvetrova/flightdesk/internal/service/flights"
	"github.com/mvetrova/flightdesk/internal/service/users"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := repository.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	seatRepo := repository.NewSeatRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	bookingService := booking.NewBookingService(
		bookingRepo,
		seatRepo,
		flightRepo,
		userRepo,
		calculatorFromConfig(cfg.Booking.Fare),
		reference.NewGenerator(bookingRepo, cfg.Booking.ReferenceLength, cfg.Booking.ReferenceAttempts),
		refundFromConfig(cfg.Booking.Refund),
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		time.Duration(cfg.Booking.SeatLockTTLSeconds)*time.Second,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	flightService := flights.NewFlightService(flightRepo, seatRepo, redisCache)
	userService := users.NewUserService(userRepo)

	if err := bootstrap.Run(ctx, cfg, flightService, bookingService, userService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func calculatorFromConfig(cfg config.FareConfig) *fare.Calculator {
	bands := make([]fare.SurchargeBand, 0, len(cfg.Surcharges))
	for _, b := range cfg.Surcharges {
		bands = append(bands, fare.SurchargeBand{
			FromRow: b.FromRow,
			ToRow:   b.ToRow,
			Rate:    decimal.NewFromFloat(b.Rate),
		})
	}
	return fare.NewCalculator(decimal.NewFromFloat(cfg.TaxRate), decimal.NewFromFloat(cfg.ServiceFee), bands)
}

func refundFromConfig(cfg config.RefundConfig) fare.RefundPolicy {
	policy := fare.DefaultRefundPolicy()
	if cfg.FullRefundAfterHours > 0 {
		policy.FullRefundAfter = time.Duration(cfg.FullRefundAfterHours) * time.Hour
	}
	if cfg.PartialRate > 0 {
		policy.PartialRate = decimal.NewFromFloat(cfg.PartialRate)
	}
	return policy
}

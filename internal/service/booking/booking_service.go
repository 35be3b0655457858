// Package booking implements the booking engine: it validates a
// request, allocates the seat, locks in the fare, issues the
// reference and persists the booking, rolling the seat allocation
// back whenever a later step fails.
package booking

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mvetrova/flightdesk/internal/domain"
	"github.com/mvetrova/flightdesk/internal/kafka"
	"github.com/mvetrova/flightdesk/internal/repository"
)

type BookingUseCase interface {
	Book(ctx context.Context, userID string, flightID int64, seatLabel string) (*domain.Booking, error)
	Cancel(ctx context.Context, reference string) (*CancelResult, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
}

// CancelResult reports a completed cancellation together with the
// refund owed on the locked fare. Settlement of the refund is outside
// this service.
type CancelResult struct {
	Booking *domain.Booking
	Refund  decimal.Decimal
}

type Cache interface {
	AcquireSeatLock(ctx context.Context, flightID int64, seatLabel string, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, flightID int64, seatLabel string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type FareCalculator interface {
	Compute(base decimal.Decimal, seatLabel string) (domain.FareBreakdown, error)
}

type ReferenceGenerator interface {
	Next(ctx context.Context) (string, error)
}

type RefundPolicy interface {
	Refund(total decimal.Decimal, createdAt, at time.Time) decimal.Decimal
}

type BookingService struct {
	bookings           repository.BookingRepository
	seats              repository.SeatRepository
	flights            repository.FlightRepository
	users              repository.UserRepository
	calculator         FareCalculator
	references         ReferenceGenerator
	refunds            RefundPolicy
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	seatLockTTL        time.Duration
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithClock overrides the time source; tests pin it for deterministic
// refund amounts.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	seats repository.SeatRepository,
	flights repository.FlightRepository,
	users repository.UserRepository,
	calculator FareCalculator,
	references ReferenceGenerator,
	refunds RefundPolicy,
	cache Cache,
	producer Producer,
	bookingTopic string,
	seatLockTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		seats:        seats,
		flights:      flights,
		users:        users,
		calculator:   calculator,
		references:   references,
		refunds:      refunds,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		seatLockTTL:  seatLockTTL,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Book reserves seatLabel on flightID for userID and persists a
// CONFIRMED booking with the fare locked at today's catalog price.
// The seat hold is released if any step after the reservation fails,
// so a failed booking never leaves an orphaned held seat.
func (s *BookingService) Book(ctx context.Context, userID string, flightID int64, seatLabel string) (*domain.Booking, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrUnknownUser
	}

	flight, err := s.flights.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if !flight.HasSeat(seatLabel) {
		return nil, domain.ErrInvalidSeat
	}

	// Fare and reference have no side effects, so both run before the
	// seat is touched; the only state needing rollback later is the
	// hold itself.
	breakdown, err := s.calculator.Compute(flight.BaseFare, seatLabel)
	if err != nil {
		return nil, err
	}
	reference, err := s.references.Next(ctx)
	if err != nil {
		return nil, err
	}

	locked := false
	if s.cache != nil {
		ok, err := s.cache.AcquireSeatLock(ctx, flightID, seatLabel, s.seatLockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrSeatTaken
		}
		locked = true
	}
	defer func() {
		if locked {
			_ = s.cache.ReleaseSeatLock(ctx, flightID, seatLabel)
		}
	}()

	if err := s.seats.Reserve(ctx, flightID, seatLabel, reference); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Reference: reference,
		UserID:    userID,
		FlightID:  flightID,
		SeatLabel: seatLabel,
		Fare:      breakdown,
		Status:    domain.BookingStatusConfirmed,
	}
	if err := s.bookings.Insert(ctx, booking); err != nil {
		// Ledger insert failed: give the seat back before surfacing
		// the error so no hold outlives its booking.
		if relErr := s.seats.Release(ctx, flightID, seatLabel); relErr != nil {
			log.Printf("release seat %s on flight %d after failed insert: %v", seatLabel, flightID, relErr)
		}
		return nil, err
	}

	s.publish(ctx, "booking_confirmed", booking, decimal.Zero)
	return booking, nil
}

// Cancel releases the booking's seat, flips its status to CANCELLED
// and reports the refund owed. Cancelling twice is an error, not a
// silent no-op, and leaves the inventory untouched.
func (s *BookingService) Cancel(ctx context.Context, reference string) (*CancelResult, error) {
	current, err := s.bookings.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.BookingStatusCancelled {
		return nil, domain.ErrAlreadyCancelled
	}

	if err := s.seats.Release(ctx, current.FlightID, current.SeatLabel); err != nil {
		return nil, err
	}

	updated, err := s.bookings.UpdateStatus(ctx, reference, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}

	refund := s.refunds.Refund(updated.Fare.Total, updated.CreatedAt, s.now())
	s.publish(ctx, "booking_cancelled", updated, refund)

	return &CancelResult{Booking: updated, Refund: refund}, nil
}

func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// publish is best effort: a dead broker must not fail a booking that
// is already durable.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, refund decimal.Decimal) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:      eventType,
		Reference: booking.Reference,
		UserID:    booking.UserID,
		FlightID:  booking.FlightID,
		SeatLabel: booking.SeatLabel,
		Status:    string(booking.Status),
		Total:     booking.Fare.Total.StringFixed(2),
		CreatedAt: booking.CreatedAt,
	}
	if refund.IsPositive() {
		event.Refund = refund.StringFixed(2)
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Reference, event); err != nil {
		log.Printf("publish %s for booking %s: %v", eventType, booking.Reference, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event); err != nil {
			log.Printf("publish notification for booking %s: %v", booking.Reference, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)

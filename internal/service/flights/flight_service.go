package flights

import (
	"context"
	"time"

	"github.com/mvetrova/flightdesk/internal/domain"
	"github.com/mvetrova/flightdesk/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	Search(ctx context.Context, origin, destination string, date *time.Time) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Seats(ctx context.Context, flightID int64) ([]domain.Seat, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
}

type FlightService struct {
	repo  repository.FlightRepository
	seats repository.SeatRepository
	cache FlightCache
}

func NewFlightService(repo repository.FlightRepository, seats repository.SeatRepository, cache FlightCache) *FlightService {
	return &FlightService{repo: repo, seats: seats, cache: cache}
}

// List returns the full catalog, served from the cache when warm.
// Search results are never cached: the filter space is unbounded.
func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) Search(ctx context.Context, origin, destination string, date *time.Time) ([]domain.Flight, error) {
	return s.repo.Search(ctx, origin, destination, date)
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

// Seats exposes the flight's inventory so callers can render a seat map.
func (s *FlightService) Seats(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	if _, err := s.repo.GetByID(ctx, flightID); err != nil {
		return nil, err
	}
	return s.seats.ListByFlight(ctx, flightID)
}

var _ FlightUseCase = (*FlightService)(nil)

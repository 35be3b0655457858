package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mvetrova/flightdesk/internal/domain"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Search(ctx context.Context, origin, destination string, date *time.Time) ([]domain.Flight, error) {
	args := m.Called(ctx, origin, destination, date)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

type MockSeatRepository struct {
	mock.Mock
}

func (m *MockSeatRepository) IsFree(ctx context.Context, flightID int64, label string) (bool, error) {
	args := m.Called(ctx, flightID, label)
	return args.Bool(0), args.Error(1)
}

func (m *MockSeatRepository) Reserve(ctx context.Context, flightID int64, label, reference string) error {
	args := m.Called(ctx, flightID, label, reference)
	return args.Error(0)
}

func (m *MockSeatRepository) Release(ctx context.Context, flightID int64, label string) error {
	args := m.Called(ctx, flightID, label)
	return args.Error(0)
}

func (m *MockSeatRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

type MockFlightCache struct {
	mock.Mock
}

func (m *MockFlightCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func catalog() []domain.Flight {
	return []domain.Flight{
		{ID: 1, Number: "DG101", Origin: "Delhi", Destination: "Goa", BaseFare: decimal.NewFromFloat(4500.00), TotalSeats: 30},
		{ID: 2, Number: "DG201", Origin: "Bengaluru", Destination: "Mumbai", BaseFare: decimal.NewFromFloat(3200.00), TotalSeats: 30},
	}
}

func TestFlightService_List_CacheMiss(t *testing.T) {
	repo := &MockFlightRepository{}
	seats := &MockSeatRepository{}
	cache := &MockFlightCache{}
	service := NewFlightService(repo, seats, cache)

	ctx := context.Background()
	cache.On("GetFlights", ctx).Return(nil, errors.New("cache miss")).Once()
	repo.On("List", ctx).Return(catalog(), nil).Once()
	cache.On("SetFlights", ctx, catalog()).Return(nil).Once()

	flights, err := service.List(ctx)

	require.NoError(t, err)
	assert.Len(t, flights, 2)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestFlightService_List_CacheHit(t *testing.T) {
	repo := &MockFlightRepository{}
	seats := &MockSeatRepository{}
	cache := &MockFlightCache{}
	service := NewFlightService(repo, seats, cache)

	ctx := context.Background()
	cache.On("GetFlights", ctx).Return(catalog(), nil).Once()

	flights, err := service.List(ctx)

	require.NoError(t, err)
	assert.Len(t, flights, 2)
	// A warm cache must keep the store out of the read path.
	repo.AssertNotCalled(t, "List")
}

func TestFlightService_List_NoCache(t *testing.T) {
	repo := &MockFlightRepository{}
	seats := &MockSeatRepository{}
	service := NewFlightService(repo, seats, nil)

	ctx := context.Background()
	repo.On("List", ctx).Return(catalog(), nil).Once()

	flights, err := service.List(ctx)

	require.NoError(t, err)
	assert.Len(t, flights, 2)
}

func TestFlightService_Search_BypassesCache(t *testing.T) {
	repo := &MockFlightRepository{}
	seats := &MockSeatRepository{}
	cache := &MockFlightCache{}
	service := NewFlightService(repo, seats, cache)

	ctx := context.Background()
	repo.On("Search", ctx, "delhi", "goa", (*time.Time)(nil)).Return(catalog()[:1], nil).Once()

	flights, err := service.Search(ctx, "delhi", "goa", nil)

	require.NoError(t, err)
	assert.Len(t, flights, 1)
	assert.Equal(t, "DG101", flights[0].Number)
	cache.AssertNotCalled(t, "GetFlights")
}

func TestFlightService_Seats(t *testing.T) {
	repo := &MockFlightRepository{}
	seats := &MockSeatRepository{}
	service := NewFlightService(repo, seats, nil)

	flight := catalog()[0]
	inventory := []domain.Seat{
		{FlightID: 1, Label: "1A", Status: domain.SeatStatusHeld},
		{FlightID: 1, Label: "1B", Status: domain.SeatStatusFree},
	}

	ctx := context.Background()
	repo.On("GetByID", ctx, int64(1)).Return(&flight, nil).Once()
	seats.On("ListByFlight", ctx, int64(1)).Return(inventory, nil).Once()

	got, err := service.Seats(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, inventory, got)
}

func TestFlightService_Seats_FlightNotFound(t *testing.T) {
	repo := &MockFlightRepository{}
	seats := &MockSeatRepository{}
	service := NewFlightService(repo, seats, nil)

	ctx := context.Background()
	repo.On("GetByID", ctx, int64(404)).Return(nil, domain.ErrFlightNotFound).Once()

	got, err := service.Seats(ctx, 404)

	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
	assert.Nil(t, got)
	seats.AssertNotCalled(t, "ListByFlight")
}

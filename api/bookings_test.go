package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mvetrova/flightdesk/internal/domain"
	"github.com/mvetrova/flightdesk/internal/service/booking"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Book(ctx context.Context, userID string, flightID int64, seatLabel string) (*domain.Booking, error) {
	args := m.Called(ctx, userID, flightID, seatLabel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) Cancel(ctx context.Context, reference string) (*booking.CancelResult, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.CancelResult), args.Error(1)
}

func (m *MockBookingService) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func newBookingRouter(service booking.BookingUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewBookingHandler(service).Register(router.Group("/bookings"))
	return router
}

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		Reference: "AB12CD34",
		UserID:    "u1",
		FlightID:  7,
		SeatLabel: "12A",
		Fare: domain.FareBreakdown{
			Base:      decimal.NewFromFloat(100.00),
			Surcharge: decimal.Zero,
			Tax:       decimal.NewFromFloat(10.00),
			Fee:       decimal.NewFromFloat(5.00),
			Total:     decimal.NewFromFloat(115.00),
		},
		Status:    domain.BookingStatusConfirmed,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBookingHandler_Create(t *testing.T) {
	service := &MockBookingService{}
	router := newBookingRouter(service)

	service.On("Book", mock.Anything, "u1", int64(7), "12A").Return(sampleBooking(), nil).Once()

	body := `{"user_id":"u1","flight_id":7,"seat_label":"12A"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var got bookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "AB12CD34", got.Reference)
	assert.Equal(t, "CONFIRMED", got.Status)
	assert.Equal(t, "115.00", got.Fare.Total)
	assert.Equal(t, "100.00", got.Fare.Base)
	service.AssertExpectations(t)
}

func TestBookingHandler_Create_BadRequest(t *testing.T) {
	service := &MockBookingService{}
	router := newBookingRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/bookings/", strings.NewReader(`{"user_id":"u1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "Book")
}

func TestBookingHandler_Create_SeatTaken(t *testing.T) {
	service := &MockBookingService{}
	router := newBookingRouter(service)

	service.On("Book", mock.Anything, "u1", int64(7), "12A").Return(nil, domain.ErrSeatTaken).Once()

	body := `{"user_id":"u1","flight_id":7,"seat_label":"12A"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBookingHandler_Create_InvalidSeat(t *testing.T) {
	service := &MockBookingService{}
	router := newBookingRouter(service)

	service.On("Book", mock.Anything, "u1", int64(7), "99Z").Return(nil, domain.ErrInvalidSeat).Once()

	body := `{"user_id":"u1","flight_id":7,"seat_label":"99Z"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandler_Cancel(t *testing.T) {
	service := &MockBookingService{}
	router := newBookingRouter(service)

	cancelled := sampleBooking()
	cancelled.Status = domain.BookingStatusCancelled
	service.On("Cancel", mock.Anything, "AB12CD34").Return(&booking.CancelResult{
		Booking: cancelled,
		Refund:  decimal.NewFromFloat(57.50),
	}, nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/bookings/AB12CD34", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got cancelResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "CANCELLED", got.Booking.Status)
	assert.Equal(t, "57.50", got.Refund)
}

func TestBookingHandler_Cancel_NotFound(t *testing.T) {
	service := &MockBookingService{}
	router := newBookingRouter(service)

	service.On("Cancel", mock.Anything, "NOPE1234").Return(nil, domain.ErrBookingNotFound).Once()

	req := httptest.NewRequest(http.MethodDelete, "/bookings/NOPE1234", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandler_Cancel_AlreadyCancelled(t *testing.T) {
	service := &MockBookingService{}
	router := newBookingRouter(service)

	service.On("Cancel", mock.Anything, "AB12CD34").Return(nil, domain.ErrAlreadyCancelled).Once()

	req := httptest.NewRequest(http.MethodDelete, "/bookings/AB12CD34", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mvetrova/flightdesk/internal/domain"
	"github.com/mvetrova/flightdesk/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	FlightID  int64  `json:"flight_id" binding:"required"`
	SeatLabel string `json:"seat_label" binding:"required"`
}

type fareResponse struct {
	Base      string `json:"base"`
	Surcharge string `json:"surcharge"`
	Tax       string `json:"tax"`
	Fee       string `json:"fee"`
	Total     string `json:"total"`
}

type bookingResponse struct {
	Reference string       `json:"reference"`
	UserID    string       `json:"user_id"`
	FlightID  int64        `json:"flight_id"`
	SeatLabel string       `json:"seat_label"`
	Fare      fareResponse `json:"fare"`
	Status    string       `json:"status"`
	CreatedAt string       `json:"created_at"`
}

type cancelResponse struct {
	Booking bookingResponse `json:"booking"`
	Refund  string          `json:"refund"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.DELETE("/:reference", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.Book(c.Request.Context(), req.UserID, req.FlightID, req.SeatLabel)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(b))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	result, err := h.service.Cancel(c.Request.Context(), c.Param("reference"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, cancelResponse{
		Booking: toBookingResponse(result.Booking),
		Refund:  result.Refund.StringFixed(2),
	})
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		Reference: b.Reference,
		UserID:    b.UserID,
		FlightID:  b.FlightID,
		SeatLabel: b.SeatLabel,
		Fare: fareResponse{
			Base:      b.Fare.Base.StringFixed(2),
			Surcharge: b.Fare.Surcharge.StringFixed(2),
			Tax:       b.Fare.Tax.StringFixed(2),
			Fee:       b.Fare.Fee.StringFixed(2),
			Total:     b.Fare.Total.StringFixed(2),
		},
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}

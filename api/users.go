package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mvetrova/flightdesk/internal/service/booking"
	"github.com/mvetrova/flightdesk/internal/service/users"
)

type UserHandler struct {
	users    users.UserUseCase
	bookings booking.BookingUseCase
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func NewUserHandler(users users.UserUseCase, bookings booking.BookingUseCase) *UserHandler {
	return &UserHandler{users: users, bookings: bookings}
}

func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
}

// RegisterBookings attaches the per-user booking listing.
func (h *UserHandler) RegisterBookings(router *gin.RouterGroup) {
	router.GET("/:id/bookings", h.listBookings)
}

func (h *UserHandler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userResponse{ID: user.ID, Username: user.Username})
}

func (h *UserHandler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userResponse{ID: user.ID, Username: user.Username})
}

func (h *UserHandler) listBookings(c *gin.Context) {
	bookings, err := h.bookings.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, out)
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// FareBreakdown is the fare snapshot locked into a booking at creation
// time. It is never recomputed, even if the catalog fare changes later.
type FareBreakdown struct {
	Base      decimal.Decimal
	Surcharge decimal.Decimal
	Tax       decimal.Decimal
	Fee       decimal.Decimal
	Total     decimal.Decimal
}

type Booking struct {
	Reference string
	UserID    string
	FlightID  int64
	SeatLabel string
	Fare      FareBreakdown
	Status    BookingStatus
	CreatedAt time.Time
}

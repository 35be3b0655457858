package domain

type SeatStatus string

const (
	SeatStatusFree SeatStatus = "FREE"
	SeatStatusHeld SeatStatus = "HELD"
)

// Seat is one row of the per-flight inventory. HeldBy carries the
// reference of the booking holding the seat and is nil while FREE.
type Seat struct {
	FlightID int64
	Label    string
	Status   SeatStatus
	HeldBy   *string
}

package email

import (
	"context"
	"log"

	"github.com/mvetrova/flightdesk/internal/kafka"
)

// Sender is the notification sink used by the worker. Delivery is a
// log line for now; a real mail transport slots in behind the same
// method.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	log.Printf("notify user %s: %s booking %s (flight %d seat %s)", event.UserID, event.Type, event.Reference, event.FlightID, event.SeatLabel)
	return nil
}

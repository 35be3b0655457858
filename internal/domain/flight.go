package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SeatsPerRow fixes the cabin layout: every row holds six seats
// lettered A through F.
const SeatsPerRow = 6

var seatLetters = [SeatsPerRow]byte{'A', 'B', 'C', 'D', 'E', 'F'}

type Flight struct {
	ID              int64
	Number          string
	Origin          string
	Destination     string
	DepartureTime   time.Time
	DurationMinutes int
	BaseFare        decimal.Decimal
	TotalSeats      int
	CreatedAt       time.Time
}

// SeatLabels returns every seat label of the flight's layout in cabin
// order: 1A..1F, 2A.. and so on up to TotalSeats.
func (f *Flight) SeatLabels() []string {
	labels := make([]string, 0, f.TotalSeats)
	for i := 0; i < f.TotalSeats; i++ {
		row := i/SeatsPerRow + 1
		labels = append(labels, fmt.Sprintf("%d%c", row, seatLetters[i%SeatsPerRow]))
	}
	return labels
}

// HasSeat reports whether label belongs to the flight's layout.
func (f *Flight) HasSeat(label string) bool {
	row, letter, err := ParseSeatLabel(label)
	if err != nil {
		return false
	}
	col := -1
	for i, l := range seatLetters {
		if l == letter {
			col = i
			break
		}
	}
	if col < 0 {
		return false
	}
	n := (row-1)*SeatsPerRow + col + 1
	return n <= f.TotalSeats
}

// ParseSeatLabel splits a label such as "12A" into its row number and
// seat letter.
func ParseSeatLabel(label string) (row int, letter byte, err error) {
	if len(label) < 2 {
		return 0, 0, fmt.Errorf("seat label %q too short", label)
	}
	letter = label[len(label)-1]
	if letter < 'A' || letter > 'Z' {
		return 0, 0, fmt.Errorf("seat label %q: missing seat letter", label)
	}
	if _, err := fmt.Sscanf(label[:len(label)-1], "%d", &row); err != nil || row < 1 {
		return 0, 0, fmt.Errorf("seat label %q: bad row number", label)
	}
	return row, letter, nil
}

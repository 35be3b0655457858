package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlight_SeatLabels(t *testing.T) {
	f := &Flight{TotalSeats: 8}

	labels := f.SeatLabels()

	require.Len(t, labels, 8)
	assert.Equal(t, []string{"1A", "1B", "1C", "1D", "1E", "1F", "2A", "2B"}, labels)
}

func TestFlight_HasSeat(t *testing.T) {
	f := &Flight{TotalSeats: 30} // rows 1..5

	for _, label := range []string{"1A", "3C", "5F"} {
		assert.True(t, f.HasSeat(label), label)
	}
	for _, label := range []string{"6A", "0A", "5G", "A5", "", "12"} {
		assert.False(t, f.HasSeat(label), label)
	}
}

func TestParseSeatLabel(t *testing.T) {
	row, letter, err := ParseSeatLabel("12A")
	require.NoError(t, err)
	assert.Equal(t, 12, row)
	assert.Equal(t, byte('A'), letter)

	for _, label := range []string{"", "A", "12", "x1", "0F", "-1A"} {
		_, _, err := ParseSeatLabel(label)
		assert.Error(t, err, "label %q", label)
	}
}

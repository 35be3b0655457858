// Package fare computes fare breakdowns and cancellation refunds.
// Both are pure: the calculator never reads the clock and the refund
// policy takes its evaluation time as an argument, so identical inputs
// always produce identical money amounts.
package fare

import (
	"github.com/shopspring/decimal"

	"github.com/mvetrova/flightdesk/internal/domain"
)

// SurchargeBand assigns a surcharge rate to an inclusive range of
// cabin rows. Rows outside every band carry no surcharge.
type SurchargeBand struct {
	FromRow int
	ToRow   int
	Rate    decimal.Decimal
}

// Calculator derives a fare breakdown from a base fare and a seat
// label. Tax applies to base plus surcharge; the service fee is flat.
type Calculator struct {
	taxRate    decimal.Decimal
	serviceFee decimal.Decimal
	surcharges []SurchargeBand
}

func NewCalculator(taxRate, serviceFee decimal.Decimal, surcharges []SurchargeBand) *Calculator {
	return &Calculator{taxRate: taxRate, serviceFee: serviceFee, surcharges: surcharges}
}

// Compute returns the fare breakdown for a seat. Amounts are rounded
// half-up to two decimal places and Total is always the exact sum of
// the rounded parts.
func (c *Calculator) Compute(base decimal.Decimal, seatLabel string) (domain.FareBreakdown, error) {
	row, _, err := domain.ParseSeatLabel(seatLabel)
	if err != nil {
		return domain.FareBreakdown{}, err
	}

	rate := decimal.Zero
	for _, band := range c.surcharges {
		if row >= band.FromRow && row <= band.ToRow {
			rate = band.Rate
			break
		}
	}

	b := base.Round(2)
	surcharge := base.Mul(rate).Round(2)
	tax := b.Add(surcharge).Mul(c.taxRate).Round(2)
	fee := c.serviceFee.Round(2)

	return domain.FareBreakdown{
		Base:      b,
		Surcharge: surcharge,
		Tax:       tax,
		Fee:       fee,
		Total:     b.Add(surcharge).Add(tax).Add(fee),
	}, nil
}

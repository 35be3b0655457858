package fare

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefundPolicy decides how much of a locked fare total comes back on
// cancellation. The default mirrors the historical behavior: the full
// total once FullRefundAfter has elapsed since the booking was
// created, otherwise PartialRate of it.
type RefundPolicy struct {
	FullRefundAfter time.Duration
	PartialRate     decimal.Decimal
}

func DefaultRefundPolicy() RefundPolicy {
	return RefundPolicy{
		FullRefundAfter: 48 * time.Hour,
		PartialRate:     decimal.NewFromFloat(0.5),
	}
}

// Refund computes the refund for a booking created at createdAt and
// cancelled at the explicit evaluation time at.
func (p RefundPolicy) Refund(total decimal.Decimal, createdAt, at time.Time) decimal.Decimal {
	if at.Sub(createdAt) > p.FullRefundAfter {
		return total.Round(2)
	}
	return total.Mul(p.PartialRate).Round(2)
}

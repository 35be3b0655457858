// Package reference issues booking references: fixed-length uppercase
// alphanumeric codes, unique among everything the ledger has ever
// stored.
package reference

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/mvetrova/flightdesk/internal/domain"
)

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Ledger is the slice of the booking store the generator needs to
// rule out collisions.
type Ledger interface {
	ReferenceExists(ctx context.Context, reference string) (bool, error)
}

type Generator struct {
	ledger      Ledger
	length      int
	maxAttempts int
}

// NewGenerator builds a generator producing codes of the given length.
// A length of 8 yields 36^8 combinations, far beyond what a collision
// retry budget of maxAttempts needs.
func NewGenerator(ledger Ledger, length, maxAttempts int) *Generator {
	if length <= 0 {
		length = 8
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &Generator{ledger: ledger, length: length, maxAttempts: maxAttempts}
}

// Next returns a fresh reference, retrying on the (unlikely) ledger
// collision. Running out of attempts returns ErrReferenceExhausted,
// which callers treat as a fatal configuration problem.
func (g *Generator) Next(ctx context.Context) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		candidate, err := randomCode(g.length)
		if err != nil {
			return "", fmt.Errorf("generate reference: %w", err)
		}
		exists, err := g.ledger.ReferenceExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check reference: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", domain.ErrReferenceExhausted
}

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = charset[int(buf[i])%len(charset)]
	}
	return string(buf), nil
}

// Package domain holds the core types and the sentinel errors shared
// across repositories and services. Handlers and the CLI match on
// these with errors.Is to pick a user-facing outcome; repositories
// return them unchanged.
package domain

import "errors"

var (
	ErrFlightNotFound     = errors.New("flight not found")
	ErrSeatNotFound       = errors.New("seat not found")
	ErrInvalidSeat        = errors.New("seat label not in flight layout")
	ErrSeatTaken          = errors.New("seat already taken")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrAlreadyCancelled   = errors.New("booking already cancelled")
	ErrUnknownUser        = errors.New("unknown user")
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateReference should be unreachable while the reference
	// generator checks the ledger; hitting it means inventory and
	// ledger disagree.
	ErrDuplicateReference = errors.New("duplicate booking reference")

	// ErrReferenceExhausted is fatal: the generator ran out of retry
	// attempts, which points at a misconfigured reference length.
	ErrReferenceExhausted = errors.New("reference space exhausted")
)

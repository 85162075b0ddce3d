package token

import (
	"errors"
	"fmt"
)

// Error taxonomy for the token engine. Every operation fails with exactly
// one of these, reported synchronously, with zero observable state change.
var (
	// ErrAccessDenied is returned when the caller lacks the required
	// privilege for an admin-only operation.
	ErrAccessDenied = errors.New("caller is not the administrator")

	// ErrInvalidToken is returned when a token id is outside [1, supply].
	ErrInvalidToken = errors.New("invalid token id")

	// ErrAlreadyClaimed is returned when claiming a token whose first
	// acquisition already happened.
	ErrAlreadyClaimed = errors.New("token already claimed")

	// ErrNotListed is returned when an operation needs an active sale
	// offer and none exists.
	ErrNotListed = errors.New("token is not for sale")

	// ErrAlreadyOwner is returned when a buyer already owns the token.
	ErrAlreadyOwner = errors.New("caller already owns the token")

	// ErrInsufficientFunds is returned when the supplied payment does not
	// cover the required cost or price.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidPrice is returned when listing a token at a zero price.
	ErrInvalidPrice = errors.New("sale price must be greater than zero")

	// ErrNotReady is returned when a level-up is attempted before the
	// cooldown has elapsed.
	ErrNotReady = errors.New("not ready to level up")

	// ErrMaxSupplyExceeded is returned when a mint would push the supply
	// past the configured maximum.
	ErrMaxSupplyExceeded = errors.New("maximum supply reached")

	// ErrSeedExhausted is returned when the seed generator cannot find a
	// distinct seed within its retry bound.
	ErrSeedExhausted = errors.New("seed space exhausted")
)

// ErrNotOwner is returned when an owner-gated operation is invoked by a
// caller that does not own the token. It is a flavor of ErrAccessDenied,
// so errors.Is(err, ErrAccessDenied) also holds.
var ErrNotOwner = fmt.Errorf("caller is not the owner: %w", ErrAccessDenied)

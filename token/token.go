// Package token defines the core domain types for the collectible token
// engine: identifiers, the per-token record, the error taxonomy, and the
// notification events emitted by state transitions.
//
// The engine treats tokens as records in a fixed-supply set. Each token
// carries an immutable 256-bit seed assigned at mint, a claimable flag
// cleared on first acquisition, an optional fixed-price listing, and a
// progression level advanced against a cooldown.
package token

import "github.com/holiman/uint256"

// TokenID identifies a minted token. IDs are 1-indexed and never reused.
type TokenID uint64

// Address identifies an account: an admin, a token holder, or a payment
// recipient. The zero value is no address.
type Address string

// ZeroAddress is the absence of an address.
const ZeroAddress Address = ""

// Listing is an active fixed-price sale offer. Price is always positive;
// a token with no offer has no Listing at all.
type Listing struct {
	Price *uint256.Int `json:"price"`
}

// Token is the per-token record. ID and Seed are immutable after mint.
// Level only grows, by exactly one per successful level-up, and survives
// every ownership change.
type Token struct {
	ID        TokenID      `json:"id"`
	Seed      *uint256.Int `json:"seed"`
	Claimable bool         `json:"claimable"`
	Listing   *Listing     `json:"listing,omitempty"`
	Level     uint32       `json:"level"`

	// LastProgressTick is the logical-clock value recorded at mint and on
	// every successful level-up. Cooldowns are measured from it.
	LastProgressTick uint64 `json:"lastProgressTick"`
}

// Listed reports whether the token has an active sale offer.
func (t *Token) Listed() bool {
	return t.Listing != nil
}

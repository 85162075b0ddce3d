// Package ledger defines the ownership collaborator the engine consumes.
// The engine never does its own per-id ownership bookkeeping: it reads
// ownerOf, drives transfers, and observes transfer notifications so a
// change of owner can invalidate a stale marketplace listing.
package ledger

import "github.com/relicforge/go-relics/token"

// Ledger is the authoritative owner-of-token mapping.
type Ledger interface {
	// OwnerOf returns the current owner. Fails with token.ErrInvalidToken
	// for ids that were never minted.
	OwnerOf(id token.TokenID) (token.Address, error)

	// Transfer reassigns ownership to newOwner and notifies observers.
	Transfer(id token.TokenID, newOwner token.Address) error

	// Exists reports whether the id was ever minted.
	Exists(id token.TokenID) bool
}

// Minter registers freshly minted tokens with their initial custodian.
type Minter interface {
	Mint(id token.TokenID, owner token.Address) error
}

// Observer is notified synchronously after every completed transfer,
// whether driven by the engine or initiated externally.
type Observer func(id token.TokenID, from, to token.Address)

// Book is the full collaborator surface the engine wires against.
type Book interface {
	Ledger
	Minter

	// Observe registers an observer for all future transfers.
	Observe(fn Observer)
}

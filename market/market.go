// Package market implements the peer-to-peer marketplace: flat
// fixed-price listings on already-claimed tokens, cancelable by the
// owner, bought by anyone else.
//
// Error precedence: id validity is checked before listing presence, so a
// nonexistent id always reports token.ErrInvalidToken while a valid but
// unlisted id reports token.ErrNotListed.
package market

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/relicforge/go-relics/ledger"
	"github.com/relicforge/go-relics/registry"
	"github.com/relicforge/go-relics/token"
	"github.com/relicforge/go-relics/treasury"
)

// Marketplace manages sale offers.
type Marketplace struct {
	reg   *registry.Registry
	led   ledger.Ledger
	payer treasury.Payer
}

// New creates a marketplace over the shared registry and ledger.
func New(reg *registry.Registry, led ledger.Ledger, payer treasury.Payer) *Marketplace {
	return &Marketplace{reg: reg, led: led, payer: payer}
}

// List puts id up for sale at price. Owner only; price must be positive.
func (m *Marketplace) List(id token.TokenID, price *uint256.Int, caller token.Address) (*token.Listed, error) {
	tok, err := m.reg.Get(id)
	if err != nil {
		return nil, err
	}
	owner, err := m.led.OwnerOf(id)
	if err != nil {
		return nil, err
	}
	if owner != caller {
		return nil, token.ErrNotOwner
	}
	if price == nil || price.IsZero() {
		return nil, token.ErrInvalidPrice
	}

	tok.Listing = &token.Listing{Price: price.Clone()}
	return &token.Listed{ID: id, Owner: caller, Price: price.Clone()}, nil
}

// Cancel withdraws the sale offer on id. Owner only.
func (m *Marketplace) Cancel(id token.TokenID, caller token.Address) (*token.ListingCanceled, error) {
	tok, err := m.reg.Get(id)
	if err != nil {
		return nil, err
	}
	owner, err := m.led.OwnerOf(id)
	if err != nil {
		return nil, err
	}
	if owner != caller {
		return nil, token.ErrNotOwner
	}
	if tok.Listing == nil {
		return nil, token.ErrNotListed
	}

	tok.Listing = nil
	return &token.ListingCanceled{ID: id, Owner: caller}, nil
}

// Buy purchases a listed token. The seller is paid exactly the listed
// price and any excess payment is refunded to the buyer; both transfers
// are issued only after ownership and listing state have settled.
func (m *Marketplace) Buy(id token.TokenID, payment *uint256.Int, caller token.Address) (*token.Sold, error) {
	tok, err := m.reg.Get(id)
	if err != nil {
		return nil, err
	}
	if tok.Listing == nil {
		return nil, token.ErrNotListed
	}
	seller, err := m.led.OwnerOf(id)
	if err != nil {
		return nil, err
	}
	if seller == caller {
		return nil, token.ErrAlreadyOwner
	}
	price := tok.Listing.Price.Clone()
	if payment == nil {
		payment = uint256.NewInt(0)
	}
	if payment.Lt(price) {
		return nil, token.ErrInsufficientFunds
	}
	refund := new(uint256.Int).Sub(payment, price)

	tok.Listing = nil
	if err := m.led.Transfer(id, caller); err != nil {
		return nil, fmt.Errorf("transfer token %d: %w", id, err)
	}

	if err := m.payer.Pay(seller, price); err != nil {
		return nil, fmt.Errorf("pay seller: %w", err)
	}
	if !refund.IsZero() {
		if err := m.payer.Pay(caller, refund); err != nil {
			return nil, fmt.Errorf("refund buy excess: %w", err)
		}
	}
	return &token.Sold{Seller: seller, Buyer: caller, ID: id, Price: price}, nil
}

// PriceOf returns the active listing price for id.
func (m *Marketplace) PriceOf(id token.TokenID) (*uint256.Int, error) {
	tok, err := m.reg.Get(id)
	if err != nil {
		return nil, err
	}
	if tok.Listing == nil {
		return nil, token.ErrNotListed
	}
	return tok.Listing.Price.Clone(), nil
}

// ActiveListings returns the ids currently for sale, ascending. The
// slice is a snapshot taken at call time.
func (m *Marketplace) ActiveListings() []token.TokenID {
	var ids []token.TokenID
	for _, tok := range m.reg.All() {
		if tok.Listing != nil {
			ids = append(ids, tok.ID)
		}
	}
	return ids
}

// Invalidate clears any listing on id without emitting a cancellation.
// The engine calls it for every observed ownership transfer, so a stale
// offer can never sell a token out from under its new owner.
func (m *Marketplace) Invalidate(id token.TokenID) {
	tok, err := m.reg.Get(id)
	if err != nil {
		return
	}
	tok.Listing = nil
}

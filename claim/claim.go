// Package claim implements first acquisition: converting an unclaimed
// token into an owned one against the configured claim cost.
package claim

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/relicforge/go-relics/ledger"
	"github.com/relicforge/go-relics/registry"
	"github.com/relicforge/go-relics/token"
	"github.com/relicforge/go-relics/treasury"
)

// DefaultCost is the claim fee used when none is configured: 1e17, a
// tenth of the base unit.
func DefaultCost() *uint256.Int {
	return uint256.NewInt(100_000_000_000_000_000)
}

// Market converts claimable tokens into owned ones.
type Market struct {
	reg    *registry.Registry
	led    ledger.Ledger
	tre    *treasury.Treasury
	payer  treasury.Payer
	admins token.AccessControl
	cost   *uint256.Int
}

// New creates a claim market. A nil defaultCost falls back to
// DefaultCost.
func New(reg *registry.Registry, led ledger.Ledger, tre *treasury.Treasury, payer treasury.Payer, admins token.AccessControl, defaultCost *uint256.Int) *Market {
	if defaultCost == nil {
		defaultCost = DefaultCost()
	}
	return &Market{
		reg:    reg,
		led:    led,
		tre:    tre,
		payer:  payer,
		admins: admins,
		cost:   defaultCost.Clone(),
	}
}

// Cost returns the current claim cost. May be zero.
func (m *Market) Cost() *uint256.Int {
	return m.cost.Clone()
}

// SetCost updates the claim cost. Admin only; zero is a valid cost.
func (m *Market) SetCost(caller token.Address, cost *uint256.Int) error {
	if !m.admins.IsAdmin(caller) {
		return token.ErrAccessDenied
	}
	if cost == nil {
		cost = uint256.NewInt(0)
	}
	m.cost = cost.Clone()
	return nil
}

// Claim performs first acquisition of id by caller. Exactly the claim
// cost is retained in the treasury; any excess payment is refunded. All
// internal state settles before the refund is issued.
func (m *Market) Claim(id token.TokenID, payment *uint256.Int, caller token.Address) (*token.Claimed, error) {
	tok, err := m.reg.Get(id)
	if err != nil {
		return nil, err
	}
	if !tok.Claimable {
		return nil, token.ErrAlreadyClaimed
	}
	if payment == nil {
		payment = uint256.NewInt(0)
	}
	if payment.Lt(m.cost) {
		return nil, token.ErrInsufficientFunds
	}
	refund := new(uint256.Int).Sub(payment, m.cost)

	tok.Claimable = false
	if err := m.led.Transfer(id, caller); err != nil {
		tok.Claimable = true
		return nil, fmt.Errorf("transfer token %d: %w", id, err)
	}
	m.tre.Credit(m.cost)

	if !refund.IsZero() {
		if err := m.payer.Pay(caller, refund); err != nil {
			return nil, fmt.Errorf("refund claim excess: %w", err)
		}
	}
	return &token.Claimed{ID: id, NewOwner: caller}, nil
}

package progress

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/relicforge/go-relics/clock"
	"github.com/relicforge/go-relics/ledger"
	"github.com/relicforge/go-relics/registry"
	"github.com/relicforge/go-relics/token"
	"github.com/relicforge/go-relics/treasury"
)

// DefaultCost is the level-up fee used when none is configured: 5e16,
// half the default claim cost.
func DefaultCost() *uint256.Int {
	return uint256.NewInt(50_000_000_000_000_000)
}

// Engine advances token levels.
type Engine struct {
	reg    *registry.Registry
	led    ledger.Ledger
	tre    *treasury.Treasury
	payer  treasury.Payer
	clk    clock.Clock
	admins token.AccessControl
	sched  Schedule
	cost   *uint256.Int
}

// New creates a progression engine. A nil defaultCost falls back to
// DefaultCost; a zero-value schedule falls back to DefaultSchedule.
func New(reg *registry.Registry, led ledger.Ledger, tre *treasury.Treasury, payer treasury.Payer, clk clock.Clock, admins token.AccessControl, sched Schedule, defaultCost *uint256.Int) *Engine {
	if sched.Levels() == 0 {
		sched = DefaultSchedule()
	}
	if defaultCost == nil {
		defaultCost = DefaultCost()
	}
	return &Engine{
		reg:    reg,
		led:    led,
		tre:    tre,
		payer:  payer,
		clk:    clk,
		admins: admins,
		sched:  sched,
		cost:   defaultCost.Clone(),
	}
}

// Cost returns the current level-up cost.
func (e *Engine) Cost() *uint256.Int {
	return e.cost.Clone()
}

// SetCost updates the level-up cost. Admin only; zero is accepted.
func (e *Engine) SetCost(caller token.Address, cost *uint256.Int) error {
	if !e.admins.IsAdmin(caller) {
		return token.ErrAccessDenied
	}
	if cost == nil {
		cost = uint256.NewInt(0)
	}
	e.cost = cost.Clone()
	return nil
}

// LevelOf returns the current level of id.
func (e *Engine) LevelOf(id token.TokenID) (uint32, error) {
	tok, err := e.reg.Get(id)
	if err != nil {
		return 0, err
	}
	return tok.Level, nil
}

// TicksUntilReady returns how many ticks remain before id may level up.
// Zero means eligible now.
func (e *Engine) TicksUntilReady(id token.TokenID) (uint64, error) {
	tok, err := e.reg.Get(id)
	if err != nil {
		return 0, err
	}
	ready := tok.LastProgressTick + e.sched.Cooldown(tok.Level)
	now := e.clk.Tick()
	if now >= ready {
		return 0, nil
	}
	return ready - now, nil
}

// LevelUp advances id by one level. Owner only; the cooldown for the
// current level must have elapsed. Exactly the level-up cost is retained
// in the treasury and any excess payment is refunded after state
// settles. Level and cooldown baseline belong to the token, so they are
// untouched by ownership changes.
func (e *Engine) LevelUp(id token.TokenID, payment *uint256.Int, caller token.Address) (*token.LeveledUp, error) {
	tok, err := e.reg.Get(id)
	if err != nil {
		return nil, err
	}
	owner, err := e.led.OwnerOf(id)
	if err != nil {
		return nil, err
	}
	if owner != caller {
		return nil, token.ErrNotOwner
	}
	remaining, err := e.TicksUntilReady(id)
	if err != nil {
		return nil, err
	}
	if remaining > 0 {
		return nil, token.ErrNotReady
	}
	if payment == nil {
		payment = uint256.NewInt(0)
	}
	if payment.Lt(e.cost) {
		return nil, token.ErrInsufficientFunds
	}
	refund := new(uint256.Int).Sub(payment, e.cost)

	tok.Level++
	tok.LastProgressTick = e.clk.Tick()
	e.tre.Credit(e.cost)

	if !refund.IsZero() {
		if err := e.payer.Pay(caller, refund); err != nil {
			return nil, fmt.Errorf("refund level-up excess: %w", err)
		}
	}
	return &token.LeveledUp{ID: id, NewLevel: tok.Level}, nil
}

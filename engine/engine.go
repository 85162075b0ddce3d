// Package engine wires the token components into one serially-ordered
// state machine. Every mutating operation runs to completion under a
// single mutex, all notifications are fanned out to subscribers after a
// transition's effects settle, and every observed ownership transfer
// invalidates any marketplace listing on the token.
package engine

import (
	"sync"

	"github.com/holiman/uint256"

	"github.com/relicforge/go-relics/claim"
	"github.com/relicforge/go-relics/clock"
	"github.com/relicforge/go-relics/entropy"
	"github.com/relicforge/go-relics/ledger"
	"github.com/relicforge/go-relics/market"
	"github.com/relicforge/go-relics/progress"
	"github.com/relicforge/go-relics/registry"
	"github.com/relicforge/go-relics/seed"
	"github.com/relicforge/go-relics/token"
	"github.com/relicforge/go-relics/treasury"
)

// Config carries the engine's operational parameters.
type Config struct {
	// MaxSupply caps the total token count. Zero means
	// registry.DefaultMaxSupply.
	MaxSupply uint64

	// ClaimCost and LevelUpCost are the initial fees. Nil means the
	// package defaults.
	ClaimCost   *uint256.Int
	LevelUpCost *uint256.Int

	// Cooldowns is the per-level cooldown schedule. The zero value means
	// progress.DefaultSchedule.
	Cooldowns progress.Schedule

	// Holder custodies tokens between mint and first claim.
	Holder token.Address

	// TreasuryRecipient receives administrator withdrawals.
	TreasuryRecipient token.Address

	// SeedAttempts bounds the seed collision-retry loop. Zero means
	// seed.DefaultMaxAttempts.
	SeedAttempts int
}

// Deps are the collaborators the engine consumes but does not own.
type Deps struct {
	Admins  token.AccessControl
	Clock   clock.Clock
	Ledger  ledger.Book
	Entropy entropy.Source
	Payer   treasury.Payer
}

// Subscriber receives every notification the engine emits, in emission
// order, synchronously before the emitting operation returns. The
// engine lock is released before delivery, so subscribers may call
// back into the engine.
type Subscriber func(tick uint64, ev token.Event)

// Engine is the combined token state machine.
type Engine struct {
	mu sync.Mutex

	clk      clock.Clock
	ledger   ledger.Book
	registry *registry.Registry
	claims   *claim.Market
	market   *market.Marketplace
	progress *progress.Engine
	treasury *treasury.Treasury

	subsMu sync.Mutex
	subs   []Subscriber
}

// New assembles an engine from its configuration and collaborators.
func New(cfg Config, deps Deps) *Engine {
	gen := seed.NewGenerator(deps.Entropy, cfg.SeedAttempts)
	reg := registry.New(registry.Config{
		MaxSupply: cfg.MaxSupply,
		Holder:    cfg.Holder,
	}, deps.Admins, deps.Clock, gen, deps.Ledger)
	tre := treasury.New(deps.Admins, cfg.TreasuryRecipient, deps.Payer)

	e := &Engine{
		clk:      deps.Clock,
		ledger:   deps.Ledger,
		registry: reg,
		claims:   claim.New(reg, deps.Ledger, tre, deps.Payer, deps.Admins, cfg.ClaimCost),
		market:   market.New(reg, deps.Ledger, deps.Payer),
		progress: progress.New(reg, deps.Ledger, tre, deps.Payer, deps.Clock, deps.Admins, cfg.Cooldowns, cfg.LevelUpCost),
		treasury: tre,
	}

	// Any completed transfer, engine-driven or external, kills the
	// listing before the transfer is considered done.
	deps.Ledger.Observe(func(id token.TokenID, from, to token.Address) {
		e.market.Invalidate(id)
	})
	return e
}

// Subscribe registers a notification subscriber.
func (e *Engine) Subscribe(fn Subscriber) {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	e.subs = append(e.subs, fn)
}

// notice is a notification stamped with its emission tick, waiting for
// dispatch.
type notice struct {
	tick uint64
	ev   token.Event
}

// queue stamps ev with the current tick for delivery once the engine
// lock is released.
func (e *Engine) queue(pending *[]notice, ev token.Event) {
	*pending = append(*pending, notice{tick: e.clk.Tick(), ev: ev})
}

// dispatch delivers queued notifications. It must run after the engine
// lock is released.
func (e *Engine) dispatch(pending *[]notice) {
	if len(*pending) == 0 {
		return
	}
	e.subsMu.Lock()
	subs := make([]Subscriber, len(e.subs))
	copy(subs, e.subs)
	e.subsMu.Unlock()

	for _, n := range *pending {
		for _, fn := range subs {
			fn(n.tick, n.ev)
		}
	}
}

// Mint creates count tokens and emits a Minted notification per token.
func (e *Engine) Mint(caller token.Address, count int) ([]*token.Token, error) {
	var pending []notice
	defer e.dispatch(&pending)
	e.mu.Lock()
	defer e.mu.Unlock()

	minted, err := e.registry.Mint(caller, count)
	if err != nil {
		return nil, err
	}
	for _, tok := range minted {
		e.queue(&pending, token.Minted{ID: tok.ID, Seed: tok.Seed.Clone()})
	}
	return minted, nil
}

// Claim performs first acquisition of id by caller.
func (e *Engine) Claim(id token.TokenID, payment *uint256.Int, caller token.Address) error {
	var pending []notice
	defer e.dispatch(&pending)
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, err := e.claims.Claim(id, payment, caller)
	if err != nil {
		return err
	}
	e.queue(&pending, *ev)
	return nil
}

// ClaimCost returns the current claim fee.
func (e *Engine) ClaimCost() *uint256.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.claims.Cost()
}

// SetClaimCost updates the claim fee. Admin only.
func (e *Engine) SetClaimCost(caller token.Address, cost *uint256.Int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.claims.SetCost(caller, cost)
}

// List offers id for sale at price.
func (e *Engine) List(id token.TokenID, price *uint256.Int, caller token.Address) error {
	var pending []notice
	defer e.dispatch(&pending)
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, err := e.market.List(id, price, caller)
	if err != nil {
		return err
	}
	e.queue(&pending, *ev)
	return nil
}

// Cancel withdraws the sale offer on id.
func (e *Engine) Cancel(id token.TokenID, caller token.Address) error {
	var pending []notice
	defer e.dispatch(&pending)
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, err := e.market.Cancel(id, caller)
	if err != nil {
		return err
	}
	e.queue(&pending, *ev)
	return nil
}

// Buy purchases a listed token.
func (e *Engine) Buy(id token.TokenID, payment *uint256.Int, caller token.Address) error {
	var pending []notice
	defer e.dispatch(&pending)
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, err := e.market.Buy(id, payment, caller)
	if err != nil {
		return err
	}
	e.queue(&pending, *ev)
	return nil
}

// PriceOf returns the active listing price for id.
func (e *Engine) PriceOf(id token.TokenID) (*uint256.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.market.PriceOf(id)
}

// ActiveListings returns a snapshot of the ids currently for sale.
func (e *Engine) ActiveListings() []token.TokenID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.market.ActiveListings()
}

// LevelUp advances id by one level.
func (e *Engine) LevelUp(id token.TokenID, payment *uint256.Int, caller token.Address) error {
	var pending []notice
	defer e.dispatch(&pending)
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, err := e.progress.LevelUp(id, payment, caller)
	if err != nil {
		return err
	}
	e.queue(&pending, *ev)
	return nil
}

// LevelOf returns the current level of id.
func (e *Engine) LevelOf(id token.TokenID) (uint32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progress.LevelOf(id)
}

// TicksUntilReady returns the remaining cooldown for id, zero when
// eligible.
func (e *Engine) TicksUntilReady(id token.TokenID) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progress.TicksUntilReady(id)
}

// LevelUpCost returns the current level-up fee.
func (e *Engine) LevelUpCost() *uint256.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progress.Cost()
}

// SetLevelUpCost updates the level-up fee. Admin only.
func (e *Engine) SetLevelUpCost(caller token.Address, cost *uint256.Int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progress.SetCost(caller, cost)
}

// SeedOf returns the seed assigned to id at mint.
func (e *Engine) SeedOf(id token.TokenID) (*uint256.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.SeedOf(id)
}

// IsClaimable reports whether id is still available for first
// acquisition.
func (e *Engine) IsClaimable(id token.TokenID) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.IsClaimable(id)
}

// TotalSupply returns the number of tokens minted so far.
func (e *Engine) TotalSupply() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.TotalSupply()
}

// TreasuryBalance returns the withdrawable fee balance.
func (e *Engine) TreasuryBalance() *uint256.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.treasury.Balance()
}

// Withdraw sweeps the treasury balance to the configured recipient and
// returns the amount moved. Admin only.
func (e *Engine) Withdraw(caller token.Address) (*uint256.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.treasury.Withdraw(caller)
}

// OwnerOf returns the current owner of id.
func (e *Engine) OwnerOf(id token.TokenID) (token.Address, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.OwnerOf(id)
}

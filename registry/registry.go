// Package registry owns the per-token records. It mints new tokens under
// the supply cap, assigns their unique seeds, and serves the reads every
// other component builds on.
package registry

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/relicforge/go-relics/clock"
	"github.com/relicforge/go-relics/ledger"
	"github.com/relicforge/go-relics/seed"
	"github.com/relicforge/go-relics/token"
)

// DefaultMaxSupply is the supply cap used when Config leaves it zero.
const DefaultMaxSupply = 10_000

// Config carries the registry's operational parameters.
type Config struct {
	// MaxSupply caps the total number of tokens ever minted.
	MaxSupply uint64

	// Holder is the custodial address that owns tokens between mint and
	// first claim.
	Holder token.Address
}

// Registry is the token record store.
type Registry struct {
	cfg    Config
	admins token.AccessControl
	clk    clock.Clock
	gen    *seed.Generator
	minter ledger.Minter

	tokens []*token.Token
	used   map[[32]byte]struct{}
}

// New creates an empty registry.
func New(cfg Config, admins token.AccessControl, clk clock.Clock, gen *seed.Generator, minter ledger.Minter) *Registry {
	if cfg.MaxSupply == 0 {
		cfg.MaxSupply = DefaultMaxSupply
	}
	return &Registry{
		cfg:    cfg,
		admins: admins,
		clk:    clk,
		gen:    gen,
		minter: minter,
		used:   make(map[[32]byte]struct{}),
	}
}

// Mint creates count new tokens and returns their records in id order.
// Admin only. New tokens are claimable, start at level 1 with the current
// tick as progress baseline, and are custodied by the configured holder.
// Nothing is minted if the batch would exceed the supply cap.
func (r *Registry) Mint(caller token.Address, count int) ([]*token.Token, error) {
	if !r.admins.IsAdmin(caller) {
		return nil, token.ErrAccessDenied
	}
	if count <= 0 {
		return nil, fmt.Errorf("mint count must be positive, got %d", count)
	}
	if uint64(len(r.tokens))+uint64(count) > r.cfg.MaxSupply {
		return nil, token.ErrMaxSupplyExceeded
	}

	// Stage the whole batch first. Registry state changes only after
	// every seed is drawn and every id is registered, so a failure
	// partway leaves no token behind.
	now := r.clk.Tick()
	staged := make(map[[32]byte]struct{}, count)
	inUse := func(s *uint256.Int) bool {
		if r.seedInUse(s) {
			return true
		}
		_, ok := staged[s.Bytes32()]
		return ok
	}
	minted := make([]*token.Token, 0, count)
	for i := 0; i < count; i++ {
		id := token.TokenID(len(r.tokens) + i + 1)

		s, err := r.gen.Next(id, inUse)
		if err != nil {
			return nil, fmt.Errorf("assign seed for token %d: %w", id, err)
		}
		staged[s.Bytes32()] = struct{}{}
		minted = append(minted, &token.Token{
			ID:               id,
			Seed:             s,
			Claimable:        true,
			Level:            1,
			LastProgressTick: now,
		})
	}
	for _, tok := range minted {
		if err := r.minter.Mint(tok.ID, r.cfg.Holder); err != nil {
			return nil, fmt.Errorf("register token %d: %w", tok.ID, err)
		}
	}

	r.tokens = append(r.tokens, minted...)
	for key := range staged {
		r.used[key] = struct{}{}
	}
	return minted, nil
}

func (r *Registry) seedInUse(s *uint256.Int) bool {
	_, ok := r.used[s.Bytes32()]
	return ok
}

// Get returns the mutable record for id, or token.ErrInvalidToken when id
// is outside [1, supply].
func (r *Registry) Get(id token.TokenID) (*token.Token, error) {
	if id < 1 || uint64(id) > uint64(len(r.tokens)) {
		return nil, token.ErrInvalidToken
	}
	return r.tokens[id-1], nil
}

// SeedOf returns the seed assigned to id at mint.
func (r *Registry) SeedOf(id token.TokenID) (*uint256.Int, error) {
	tok, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return tok.Seed.Clone(), nil
}

// IsClaimable reports whether id is still available for first
// acquisition.
func (r *Registry) IsClaimable(id token.TokenID) (bool, error) {
	tok, err := r.Get(id)
	if err != nil {
		return false, err
	}
	return tok.Claimable, nil
}

// TotalSupply returns the number of tokens minted so far.
func (r *Registry) TotalSupply() uint64 {
	return uint64(len(r.tokens))
}

// MaxSupply returns the supply cap.
func (r *Registry) MaxSupply() uint64 {
	return r.cfg.MaxSupply
}

// All returns the records in id order. The slice is a snapshot; the
// records are shared.
func (r *Registry) All() []*token.Token {
	out := make([]*token.Token, len(r.tokens))
	copy(out, r.tokens)
	return out
}

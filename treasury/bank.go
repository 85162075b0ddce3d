package treasury

import (
	"sync"

	"github.com/holiman/uint256"

	"github.com/relicforge/go-relics/token"
)

// MemoryBank is an in-memory Payer that credits per-account balances.
// It backs tests and the demo CLI; a production embedder supplies a Payer
// bridging to its real value-transfer mechanism.
type MemoryBank struct {
	mu       sync.Mutex
	accounts map[token.Address]*uint256.Int
}

// NewMemoryBank creates an empty bank.
func NewMemoryBank() *MemoryBank {
	return &MemoryBank{accounts: make(map[token.Address]*uint256.Int)}
}

// Pay implements Payer.
func (b *MemoryBank) Pay(to token.Address, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	current, ok := b.accounts[to]
	if !ok {
		current = uint256.NewInt(0)
	}
	b.accounts[to] = new(uint256.Int).Add(current, amount)
	return nil
}

// BalanceOf returns the accumulated payments to an address.
func (b *MemoryBank) BalanceOf(addr token.Address) *uint256.Int {
	b.mu.Lock()
	defer b.mu.Unlock()

	current, ok := b.accounts[addr]
	if !ok {
		return uint256.NewInt(0)
	}
	return current.Clone()
}

package ledger

import (
	"fmt"
	"sync"

	"github.com/relicforge/go-relics/token"
)

// Memory is the in-memory reference implementation of Book.
// Observers run synchronously inside Transfer, after the owner map is
// updated, so they always see post-transfer state.
type Memory struct {
	mu        sync.RWMutex
	owners    map[token.TokenID]token.Address
	observers []Observer
}

// NewMemory creates an empty ownership ledger.
func NewMemory() *Memory {
	return &Memory{owners: make(map[token.TokenID]token.Address)}
}

// Mint implements Minter.
func (m *Memory) Mint(id token.TokenID, owner token.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.owners[id]; ok {
		return fmt.Errorf("token %d already minted", id)
	}
	m.owners[id] = owner
	return nil
}

// OwnerOf implements Ledger.
func (m *Memory) OwnerOf(id token.TokenID) (token.Address, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owner, ok := m.owners[id]
	if !ok {
		return token.ZeroAddress, token.ErrInvalidToken
	}
	return owner, nil
}

// Exists implements Ledger.
func (m *Memory) Exists(id token.TokenID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.owners[id]
	return ok
}

// Transfer implements Ledger.
func (m *Memory) Transfer(id token.TokenID, newOwner token.Address) error {
	m.mu.Lock()
	from, ok := m.owners[id]
	if !ok {
		m.mu.Unlock()
		return token.ErrInvalidToken
	}
	m.owners[id] = newOwner
	observers := make([]Observer, len(m.observers))
	copy(observers, m.observers)
	m.mu.Unlock()

	for _, fn := range observers {
		fn(id, from, newOwner)
	}
	return nil
}

// Observe implements Book.
func (m *Memory) Observe(fn Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

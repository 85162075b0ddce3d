// Package treasury accumulates retained fees and disburses outbound
// payments. Claim and level-up fees accrue into a single balance released
// only by administrator withdrawal; sale proceeds and refunds are paid
// out directly at transaction time and never touch the balance.
package treasury

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/relicforge/go-relics/token"
)

// Payer moves value to an external recipient. Implementations must treat
// the call as an outbound transfer: the engine settles all internal state
// before invoking it, so a reentrant call observes post-state.
type Payer interface {
	Pay(to token.Address, amount *uint256.Int) error
}

// Treasury holds the withdrawable fee balance.
type Treasury struct {
	admins    token.AccessControl
	recipient token.Address
	payer     Payer
	balance   *uint256.Int
}

// New creates a treasury whose Withdraw sweeps to recipient.
func New(admins token.AccessControl, recipient token.Address, payer Payer) *Treasury {
	return &Treasury{
		admins:    admins,
		recipient: recipient,
		payer:     payer,
		balance:   uint256.NewInt(0),
	}
}

// Credit adds a retained fee to the balance.
func (t *Treasury) Credit(amount *uint256.Int) {
	if amount == nil || amount.IsZero() {
		return
	}
	t.balance = new(uint256.Int).Add(t.balance, amount)
}

// Balance returns the current withdrawable balance.
func (t *Treasury) Balance() *uint256.Int {
	return t.balance.Clone()
}

// Withdraw transfers the entire balance to the configured recipient.
// Admin only. The balance is zeroed before the outbound transfer is
// issued; per-token and listing state is untouched.
func (t *Treasury) Withdraw(caller token.Address) (*uint256.Int, error) {
	if !t.admins.IsAdmin(caller) {
		return nil, token.ErrAccessDenied
	}

	amount := t.balance
	t.balance = uint256.NewInt(0)

	if !amount.IsZero() {
		if err := t.payer.Pay(t.recipient, amount); err != nil {
			return nil, fmt.Errorf("pay withdrawal: %w", err)
		}
	}
	return amount.Clone(), nil
}

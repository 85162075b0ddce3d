package claim_test

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"

	"github.com/relicforge/go-relics/claim"
	"github.com/relicforge/go-relics/clock"
	"github.com/relicforge/go-relics/entropy"
	"github.com/relicforge/go-relics/ledger"
	"github.com/relicforge/go-relics/registry"
	"github.com/relicforge/go-relics/seed"
	"github.com/relicforge/go-relics/token"
	"github.com/relicforge/go-relics/treasury"
)

const (
	admin = token.Address("admin")
	alice = token.Address("alice")
	vault = token.Address("vault")
)

type fixture struct {
	market *claim.Market
	reg    *registry.Registry
	led    *ledger.Memory
	tre    *treasury.Treasury
	bank   *treasury.MemoryBank
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	admins := token.NewAdminSet(admin)
	clk := clock.NewManual(1)
	led := ledger.NewMemory()
	bank := treasury.NewMemoryBank()
	tre := treasury.New(admins, admin, bank)
	gen := seed.NewGenerator(entropy.NewDeterministic(1), 0)
	reg := registry.New(registry.Config{MaxSupply: 100, Holder: vault}, admins, clk, gen, led)

	if _, err := reg.Mint(admin, 2); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	return &fixture{
		market: claim.New(reg, led, tre, bank, admins, nil),
		reg:    reg,
		led:    led,
		tre:    tre,
		bank:   bank,
	}
}

func TestClaim(t *testing.T) {
	f := newFixture(t)
	cost := f.market.Cost()

	ev, err := f.market.Claim(1, cost, alice)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if ev.ID != 1 || ev.NewOwner != alice {
		t.Fatalf("unexpected event: %+v", ev)
	}

	claimable, _ := f.reg.IsClaimable(1)
	if claimable {
		t.Fatal("token should not be claimable after claim")
	}
	owner, _ := f.led.OwnerOf(1)
	if owner != alice {
		t.Fatalf("expected owner alice, got %q", owner)
	}
	if got := f.tre.Balance(); got.Cmp(cost) != 0 {
		t.Fatalf("treasury should hold exactly the cost, got %s", got.Dec())
	}
	if !f.bank.BalanceOf(alice).IsZero() {
		t.Fatal("exact payment should produce no refund")
	}
}

func TestClaimRefundsExcess(t *testing.T) {
	f := newFixture(t)
	cost := f.market.Cost()
	payment := new(uint256.Int).Mul(cost, uint256.NewInt(2))

	if _, err := f.market.Claim(1, payment, alice); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if got := f.tre.Balance(); got.Cmp(cost) != 0 {
		t.Fatalf("treasury should retain exactly the cost, got %s", got.Dec())
	}
	if got := f.bank.BalanceOf(alice); got.Cmp(cost) != 0 {
		t.Fatalf("expected refund of %s, got %s", cost.Dec(), got.Dec())
	}
}

func TestClaimInsufficientFunds(t *testing.T) {
	f := newFixture(t)
	half := new(uint256.Int).Div(f.market.Cost(), uint256.NewInt(2))

	if _, err := f.market.Claim(1, half, alice); !errors.Is(err, token.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// Zero state change on failure.
	claimable, _ := f.reg.IsClaimable(1)
	if !claimable {
		t.Fatal("failed claim should leave token claimable")
	}
	if !f.tre.Balance().IsZero() {
		t.Fatal("failed claim should not credit treasury")
	}
	owner, _ := f.led.OwnerOf(1)
	if owner != vault {
		t.Fatalf("failed claim should not move ownership, owner is %q", owner)
	}
}

// faultyLedger rejects every transfer.
type faultyLedger struct {
	*ledger.Memory
}

func (f *faultyLedger) Transfer(id token.TokenID, newOwner token.Address) error {
	return errors.New("ledger unavailable")
}

func TestClaimTransferFailure(t *testing.T) {
	admins := token.NewAdminSet(admin)
	clk := clock.NewManual(1)
	led := &faultyLedger{Memory: ledger.NewMemory()}
	bank := treasury.NewMemoryBank()
	tre := treasury.New(admins, admin, bank)
	gen := seed.NewGenerator(entropy.NewDeterministic(1), 0)
	reg := registry.New(registry.Config{MaxSupply: 100, Holder: vault}, admins, clk, gen, led.Memory)
	if _, err := reg.Mint(admin, 1); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	market := claim.New(reg, led, tre, bank, admins, uint256.NewInt(10))

	if _, err := market.Claim(1, uint256.NewInt(10), alice); err == nil {
		t.Fatal("claim should surface the transfer failure")
	}

	// The token stays claimable so a later attempt can succeed.
	claimable, err := reg.IsClaimable(1)
	if err != nil {
		t.Fatalf("IsClaimable failed: %v", err)
	}
	if !claimable {
		t.Fatal("failed transfer should leave token claimable")
	}
	if !tre.Balance().IsZero() {
		t.Fatal("failed transfer should not credit treasury")
	}
}

func TestClaimTwice(t *testing.T) {
	f := newFixture(t)
	cost := f.market.Cost()

	if _, err := f.market.Claim(1, cost, alice); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if _, err := f.market.Claim(1, cost, alice); !errors.Is(err, token.ErrAlreadyClaimed) {
		t.Fatalf("expected ErrAlreadyClaimed, got %v", err)
	}
}

func TestClaimInvalidToken(t *testing.T) {
	f := newFixture(t)

	for _, id := range []token.TokenID{0, 3} {
		if _, err := f.market.Claim(id, f.market.Cost(), alice); !errors.Is(err, token.ErrInvalidToken) {
			t.Errorf("Claim(%d): expected ErrInvalidToken, got %v", id, err)
		}
	}
}

func TestSetCost(t *testing.T) {
	f := newFixture(t)

	t.Run("NonAdminDenied", func(t *testing.T) {
		if err := f.market.SetCost(alice, uint256.NewInt(1)); !errors.Is(err, token.ErrAccessDenied) {
			t.Fatalf("expected ErrAccessDenied, got %v", err)
		}
	})

	t.Run("ZeroCost", func(t *testing.T) {
		if err := f.market.SetCost(admin, uint256.NewInt(0)); err != nil {
			t.Fatalf("SetCost(0) failed: %v", err)
		}
		if _, err := f.market.Claim(1, nil, alice); err != nil {
			t.Fatalf("free claim failed: %v", err)
		}
	})

	t.Run("RaisedCost", func(t *testing.T) {
		raised := uint256.NewInt(1_000_000)
		if err := f.market.SetCost(admin, raised); err != nil {
			t.Fatalf("SetCost failed: %v", err)
		}
		if got := f.market.Cost(); got.Cmp(raised) != 0 {
			t.Fatalf("expected cost %s, got %s", raised.Dec(), got.Dec())
		}
		if _, err := f.market.Claim(2, uint256.NewInt(0), alice); !errors.Is(err, token.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}
	})
}

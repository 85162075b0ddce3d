package market_test

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"

	"github.com/relicforge/go-relics/claim"
	"github.com/relicforge/go-relics/clock"
	"github.com/relicforge/go-relics/entropy"
	"github.com/relicforge/go-relics/ledger"
	"github.com/relicforge/go-relics/market"
	"github.com/relicforge/go-relics/registry"
	"github.com/relicforge/go-relics/seed"
	"github.com/relicforge/go-relics/token"
	"github.com/relicforge/go-relics/treasury"
)

const (
	admin = token.Address("admin")
	alice = token.Address("alice")
	bob   = token.Address("bob")
	vault = token.Address("vault")
)

type fixture struct {
	place *market.Marketplace
	reg   *registry.Registry
	led   *ledger.Memory
	bank  *treasury.MemoryBank
}

// newFixture mints `count` tokens and claims them all for alice.
func newFixture(t *testing.T, count int) *fixture {
	t.Helper()
	admins := token.NewAdminSet(admin)
	clk := clock.NewManual(1)
	led := ledger.NewMemory()
	bank := treasury.NewMemoryBank()
	tre := treasury.New(admins, admin, bank)
	gen := seed.NewGenerator(entropy.NewDeterministic(1), 0)
	reg := registry.New(registry.Config{MaxSupply: 100, Holder: vault}, admins, clk, gen, led)

	if _, err := reg.Mint(admin, count); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	claims := claim.New(reg, led, tre, bank, admins, uint256.NewInt(0))
	for i := 1; i <= count; i++ {
		if _, err := claims.Claim(token.TokenID(i), nil, alice); err != nil {
			t.Fatalf("claim %d failed: %v", i, err)
		}
	}
	return &fixture{
		place: market.New(reg, led, bank),
		reg:   reg,
		led:   led,
		bank:  bank,
	}
}

func TestListAndPrice(t *testing.T) {
	f := newFixture(t, 2)
	price := uint256.NewInt(1000)

	ev, err := f.place.List(1, price, alice)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if ev.ID != 1 || ev.Owner != alice || ev.Price.Cmp(price) != 0 {
		t.Fatalf("unexpected event: %+v", ev)
	}

	got, err := f.place.PriceOf(1)
	if err != nil {
		t.Fatalf("PriceOf failed: %v", err)
	}
	if got.Cmp(price) != 0 {
		t.Fatalf("expected price %s, got %s", price.Dec(), got.Dec())
	}

	ids := f.place.ActiveListings()
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("expected active listings [1], got %v", ids)
	}
}

func TestListValidation(t *testing.T) {
	f := newFixture(t, 1)

	t.Run("NotOwner", func(t *testing.T) {
		_, err := f.place.List(1, uint256.NewInt(1), bob)
		if !errors.Is(err, token.ErrNotOwner) {
			t.Fatalf("expected ErrNotOwner, got %v", err)
		}
		// NotOwner is an access-denied flavor.
		if !errors.Is(err, token.ErrAccessDenied) {
			t.Fatal("ErrNotOwner should match ErrAccessDenied")
		}
	})

	t.Run("ZeroPrice", func(t *testing.T) {
		if _, err := f.place.List(1, uint256.NewInt(0), alice); !errors.Is(err, token.ErrInvalidPrice) {
			t.Fatalf("expected ErrInvalidPrice, got %v", err)
		}
	})

	t.Run("InvalidToken", func(t *testing.T) {
		if _, err := f.place.List(2, uint256.NewInt(1), alice); !errors.Is(err, token.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestPriceOfPrecedence(t *testing.T) {
	f := newFixture(t, 1)

	// Nonexistent id reports the invalid id, not the missing listing.
	if _, err := f.place.PriceOf(2); !errors.Is(err, token.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	// A valid but never-listed id reports the missing listing.
	if _, err := f.place.PriceOf(1); !errors.Is(err, token.ErrNotListed) {
		t.Fatalf("expected ErrNotListed, got %v", err)
	}
}

func TestCancel(t *testing.T) {
	f := newFixture(t, 1)
	if _, err := f.place.List(1, uint256.NewInt(100), alice); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if _, err := f.place.Cancel(1, bob); !errors.Is(err, token.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	ev, err := f.place.Cancel(1, alice)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if ev.ID != 1 || ev.Owner != alice {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if len(f.place.ActiveListings()) != 0 {
		t.Fatal("cancel should clear the listing")
	}

	if _, err := f.place.Cancel(1, alice); !errors.Is(err, token.ErrNotListed) {
		t.Fatalf("expected ErrNotListed, got %v", err)
	}
}

func TestBuy(t *testing.T) {
	f := newFixture(t, 2)
	price := uint256.NewInt(10_000)
	if _, err := f.place.List(1, price, alice); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	t.Run("AlreadyOwner", func(t *testing.T) {
		if _, err := f.place.Buy(1, price, alice); !errors.Is(err, token.ErrAlreadyOwner) {
			t.Fatalf("expected ErrAlreadyOwner, got %v", err)
		}
	})

	t.Run("NotListed", func(t *testing.T) {
		if _, err := f.place.Buy(2, price, bob); !errors.Is(err, token.ErrNotListed) {
			t.Fatalf("expected ErrNotListed, got %v", err)
		}
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		if _, err := f.place.Buy(1, uint256.NewInt(9_999), bob); !errors.Is(err, token.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}
	})

	t.Run("Success", func(t *testing.T) {
		payment := new(uint256.Int).Mul(price, uint256.NewInt(2))
		ev, err := f.place.Buy(1, payment, bob)
		if err != nil {
			t.Fatalf("buy failed: %v", err)
		}
		if ev.Seller != alice || ev.Buyer != bob || ev.ID != 1 || ev.Price.Cmp(price) != 0 {
			t.Fatalf("unexpected event: %+v", ev)
		}

		owner, _ := f.led.OwnerOf(1)
		if owner != bob {
			t.Fatalf("expected owner bob, got %q", owner)
		}
		// Seller receives exactly the price, buyer the exact excess.
		if got := f.bank.BalanceOf(alice); got.Cmp(price) != 0 {
			t.Fatalf("seller should receive %s, got %s", price.Dec(), got.Dec())
		}
		if got := f.bank.BalanceOf(bob); got.Cmp(price) != 0 {
			t.Fatalf("buyer refund should be %s, got %s", price.Dec(), got.Dec())
		}
	})

	t.Run("ListingClearedAfterSale", func(t *testing.T) {
		if _, err := f.place.Buy(1, price, alice); !errors.Is(err, token.ErrNotListed) {
			t.Fatalf("expected ErrNotListed after sale, got %v", err)
		}
	})
}

func TestInvalidate(t *testing.T) {
	f := newFixture(t, 1)
	if _, err := f.place.List(1, uint256.NewInt(100), alice); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	f.place.Invalidate(1)

	if _, err := f.place.PriceOf(1); !errors.Is(err, token.ErrNotListed) {
		t.Fatalf("expected ErrNotListed after invalidation, got %v", err)
	}
	// Unknown ids are ignored.
	f.place.Invalidate(99)
}

func TestActiveListingsSnapshot(t *testing.T) {
	f := newFixture(t, 3)
	for _, id := range []token.TokenID{1, 3} {
		if _, err := f.place.List(id, uint256.NewInt(5), alice); err != nil {
			t.Fatalf("list %d failed: %v", id, err)
		}
	}

	ids := f.place.ActiveListings()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Fatalf("expected [1 3], got %v", ids)
	}

	// The snapshot is stable against later mutations.
	if _, err := f.place.Cancel(1, alice); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatal("snapshot should not track later cancellations")
	}
}

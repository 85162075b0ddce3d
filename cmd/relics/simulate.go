package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/holiman/uint256"

	"github.com/relicforge/go-relics/clock"
	"github.com/relicforge/go-relics/engine"
	"github.com/relicforge/go-relics/entropy"
	"github.com/relicforge/go-relics/journal"
	"github.com/relicforge/go-relics/ledger"
	"github.com/relicforge/go-relics/token"
	"github.com/relicforge/go-relics/treasury"
)

func simulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	mintCount := fs.Int("mint", 5, "Number of tokens to mint")
	entropySeed := fs.Uint64("entropy-seed", 0, "Deterministic entropy seed (0 = crypto/rand)")
	dbFlag := fs.String("db", "", "Journal database path (overrides RELICS_DB_PATH)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: relics simulate [options]

Run a scripted session: mint, claim, list, buy, level up, withdraw.
Every notification is recorded to the journal.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, envDB, err := loadConfig()
	if err != nil {
		return err
	}
	dbPath := envDB
	if *dbFlag != "" {
		dbPath = *dbFlag
	}

	var src entropy.Source
	if *entropySeed != 0 {
		src = entropy.NewDeterministic(*entropySeed)
	} else {
		src = entropy.NewCrypto()
	}

	var store journal.Store
	if dbPath != "" {
		store, err = journal.NewSQLiteStore(dbPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
	} else {
		store = journal.NewMemoryStore()
	}
	defer store.Close()

	const (
		admin = token.Address("admin")
		alice = token.Address("alice")
		bob   = token.Address("bob")
	)

	clk := clock.NewManual(1)
	bank := treasury.NewMemoryBank()
	eng := engine.New(cfg, engine.Deps{
		Admins:  token.NewAdminSet(admin),
		Clock:   clk,
		Ledger:  ledger.NewMemory(),
		Entropy: src,
		Payer:   bank,
	})

	recorder := journal.NewRecorder(store)
	eng.Subscribe(recorder.Record)

	slog.Info("minting", "count", *mintCount)
	if _, err := eng.Mint(admin, *mintCount); err != nil {
		return fmt.Errorf("mint: %w", err)
	}

	claimCost := eng.ClaimCost()
	slog.Info("claiming", "id", 1, "cost", claimCost.Dec())
	if err := eng.Claim(1, claimCost, alice); err != nil {
		return fmt.Errorf("claim: %w", err)
	}

	price := new(uint256.Int).Mul(claimCost, uint256.NewInt(2))
	slog.Info("listing", "id", 1, "price", price.Dec())
	if err := eng.List(1, price, alice); err != nil {
		return fmt.Errorf("list: %w", err)
	}
	if err := eng.Buy(1, price, bob); err != nil {
		return fmt.Errorf("buy: %w", err)
	}
	slog.Info("sold", "id", 1, "seller_balance", bank.BalanceOf(alice).Dec())

	wait, err := eng.TicksUntilReady(1)
	if err != nil {
		return fmt.Errorf("cooldown: %w", err)
	}
	clk.Advance(wait)
	slog.Info("cooldown elapsed", "ticks", wait, "now", clk.Tick())

	if err := eng.LevelUp(1, eng.LevelUpCost(), bob); err != nil {
		return fmt.Errorf("level up: %w", err)
	}
	level, err := eng.LevelOf(1)
	if err != nil {
		return fmt.Errorf("level of: %w", err)
	}
	slog.Info("leveled up", "id", 1, "level", level)

	withdrawn, err := eng.Withdraw(admin)
	if err != nil {
		return fmt.Errorf("withdraw: %w", err)
	}
	slog.Info("withdrew treasury", "amount", withdrawn.Dec())

	if err := recorder.Err(); err != nil {
		return fmt.Errorf("journal recording: %w", err)
	}

	entries, err := store.List(context.Background(), 0)
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}
	journal.Summarize(entries).Print(os.Stdout)
	return nil
}

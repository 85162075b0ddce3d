package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/holiman/uint256"

	"github.com/relicforge/go-relics/engine"
	"github.com/relicforge/go-relics/token"
)

type envConfig struct {
	MaxSupply   uint64 `env:"RELICS_MAX_SUPPLY" envDefault:"10000"`
	ClaimCost   string `env:"RELICS_CLAIM_COST" envDefault:"100000000000000000"`
	LevelUpCost string `env:"RELICS_LEVELUP_COST" envDefault:"50000000000000000"`
	DBPath      string `env:"RELICS_DB_PATH"`
}

// loadConfig reads the environment and translates it into an engine
// configuration.
func loadConfig() (engine.Config, string, error) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return engine.Config{}, "", fmt.Errorf("parse environment: %w", err)
	}

	claimCost, err := uint256.FromDecimal(ec.ClaimCost)
	if err != nil {
		return engine.Config{}, "", fmt.Errorf("RELICS_CLAIM_COST: %w", err)
	}
	levelUpCost, err := uint256.FromDecimal(ec.LevelUpCost)
	if err != nil {
		return engine.Config{}, "", fmt.Errorf("RELICS_LEVELUP_COST: %w", err)
	}

	cfg := engine.Config{
		MaxSupply:         ec.MaxSupply,
		ClaimCost:         claimCost,
		LevelUpCost:       levelUpCost,
		Holder:            token.Address("vault"),
		TreasuryRecipient: token.Address("admin"),
	}
	return cfg, ec.DBPath, nil
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/bjsim/internal/config"
)

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name  string
		cli   CLI
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "no flags keeps config",
			cli:  CLI{},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.DefaultConfig(), cfg)
			},
		},
		{
			name: "simulation flags",
			cli:  CLI{Rounds: 1000, Seed: 7, Workers: 4},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 1000, cfg.Simulation.Rounds)
				assert.Equal(t, int64(7), cfg.Simulation.Seed)
				assert.Equal(t, 4, cfg.Simulation.Workers)
			},
		},
		{
			name: "shoe and table flags",
			cli:  CLI{Decks: 2, BetSpread: 8, CountSystem: "hilo", TripleSeven: true},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 2, cfg.Shoe.Decks)
				assert.Equal(t, "hilo", cfg.Shoe.CountSystem)
				assert.InDelta(t, 8.0, cfg.Table.BetSpread, 1e-9)
				assert.True(t, cfg.Table.TripleSeven)
			},
		},
		{
			name: "strategy file",
			cli:  CLI{Strategy: "/tmp/strategy.toml"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "/tmp/strategy.toml", cfg.StrategyPath())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			applyOverrides(cfg, &tt.cli)
			tt.check(t, cfg)
		})
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/bjsim/internal/deck"
	"github.com/lox/bjsim/internal/game"
	"github.com/lox/bjsim/internal/simulator"
	"github.com/lox/bjsim/internal/strategy"
)

// Default values for omitted settings
const (
	DefaultRounds      = 200000
	DefaultWorkers     = 1
	DefaultDecks       = 6
	DefaultCountSystem = "default"
	DefaultPlayers     = 3
	DefaultBaseStake   = 300
	DefaultBetSpread   = 1.0
	DefaultThreshold   = 3
	MaxPlayers         = 7
)

// Config represents the complete simulation configuration
type Config struct {
	Simulation SimulationSettings
	Shoe       ShoeSettings
	Table      TableSettings
	Strategy   StrategySettings
	Counts     []CountOverride

	// dir is the directory of the loaded file; relative strategy paths are
	// resolved against it
	dir string
}

// SimulationSettings controls how many rounds are played and how
type SimulationSettings struct {
	Rounds  int   `hcl:"rounds,optional"`
	Seed    int64 `hcl:"seed,optional"`
	Workers int   `hcl:"workers,optional"`
}

// ShoeSettings describes the shoe every worker deals from
type ShoeSettings struct {
	Decks       int    `hcl:"decks,optional"`
	BufferSize  int    `hcl:"buffer_size,optional"`
	CountSystem string `hcl:"count_system,optional"`
}

// TableSettings are the seats, stakes and house rules
type TableSettings struct {
	Players          int     `hcl:"players,optional"`
	BaseStake        float64 `hcl:"base_stake,optional"`
	BetSpread        float64 `hcl:"bet_spread,optional"`
	CountThreshold   *int    `hcl:"count_threshold,optional"`
	TripleSeven      bool    `hcl:"triple_seven,optional"`
	DealerHitsSoft17 bool    `hcl:"dealer_hits_soft_17,optional"`
}

// StrategySettings points at a strategy file. An empty file means the
// built-in basic strategy.
type StrategySettings struct {
	File string `hcl:"file,optional"`
}

// CountOverride replaces the count increment of a single rank
type CountOverride struct {
	Rank  string `hcl:"rank,label"`
	Value int    `hcl:"value"`
}

// fileConfig mirrors the HCL layout, where every block is optional
type fileConfig struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Shoe       *ShoeSettings       `hcl:"shoe,block"`
	Table      *TableSettings      `hcl:"table,block"`
	Strategy   *StrategySettings   `hcl:"strategy,block"`
	Counts     []CountOverride     `hcl:"count,block"`
}

// DefaultConfig returns default simulation configuration
func DefaultConfig() *Config {
	threshold := DefaultThreshold
	return &Config{
		Simulation: SimulationSettings{
			Rounds:  DefaultRounds,
			Workers: DefaultWorkers,
		},
		Shoe: ShoeSettings{
			Decks:       DefaultDecks,
			BufferSize:  deck.DefaultBufferSize,
			CountSystem: DefaultCountSystem,
		},
		Table: TableSettings{
			Players:        DefaultPlayers,
			BaseStake:      DefaultBaseStake,
			BetSpread:      DefaultBetSpread,
			CountThreshold: &threshold,
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(src, filename)
	if err != nil {
		return nil, err
	}
	cfg.dir = filepath.Dir(filename)
	return cfg, nil
}

// Parse decodes HCL source and applies defaults for missing values
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := &Config{Counts: raw.Counts}
	if raw.Simulation != nil {
		cfg.Simulation = *raw.Simulation
	}
	if raw.Shoe != nil {
		cfg.Shoe = *raw.Shoe
	}
	if raw.Table != nil {
		cfg.Table = *raw.Table
	}
	if raw.Strategy != nil {
		cfg.Strategy = *raw.Strategy
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Simulation.Rounds == 0 {
		c.Simulation.Rounds = DefaultRounds
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = DefaultWorkers
	}

	if c.Shoe.Decks == 0 {
		c.Shoe.Decks = DefaultDecks
	}
	if c.Shoe.BufferSize == 0 {
		c.Shoe.BufferSize = deck.DefaultBufferSize
	}
	if c.Shoe.CountSystem == "" {
		c.Shoe.CountSystem = DefaultCountSystem
	}

	if c.Table.Players == 0 {
		c.Table.Players = DefaultPlayers
	}
	if c.Table.BaseStake == 0 {
		c.Table.BaseStake = DefaultBaseStake
	}
	if c.Table.BetSpread == 0 {
		c.Table.BetSpread = DefaultBetSpread
	}
	if c.Table.CountThreshold == nil {
		threshold := DefaultThreshold
		c.Table.CountThreshold = &threshold
	}
}

// Validate validates the simulation configuration
func (c *Config) Validate() error {
	if c.Simulation.Rounds < 1 {
		return fmt.Errorf("invalid rounds: %d", c.Simulation.Rounds)
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("invalid workers: %d", c.Simulation.Workers)
	}

	if c.Shoe.Decks < 1 {
		return fmt.Errorf("shoe: decks must be positive, got %d", c.Shoe.Decks)
	}
	if c.Shoe.BufferSize < 0 {
		return fmt.Errorf("shoe: buffer size must not be negative, got %d", c.Shoe.BufferSize)
	}

	if c.Table.Players < 1 || c.Table.Players > MaxPlayers {
		return fmt.Errorf("table: players must be between 1 and %d", MaxPlayers)
	}
	if c.Table.BaseStake <= 0 {
		return errors.New("table: base stake must be positive")
	}
	if c.Table.BetSpread <= 0 {
		return errors.New("table: bet spread must be positive")
	}

	if _, err := c.CountSystem(); err != nil {
		return err
	}
	return nil
}

// Rules returns the table rules
func (c *Config) Rules() game.Rules {
	threshold := DefaultThreshold
	if c.Table.CountThreshold != nil {
		threshold = *c.Table.CountThreshold
	}
	return game.Rules{
		Players:          c.Table.Players,
		BaseStake:        c.Table.BaseStake,
		BetSpread:        c.Table.BetSpread,
		CountThreshold:   threshold,
		TripleSeven:      c.Table.TripleSeven,
		DealerHitsSoft17: c.Table.DealerHitsSoft17,
	}
}

// CountSystem returns the named count system with any per-rank overrides
// applied. Overriding a ten-valued rank by its short form "T" sets only Ten.
func (c *Config) CountSystem() (deck.CountSystem, error) {
	cs, err := deck.LookupCountSystem(c.Shoe.CountSystem)
	if err != nil {
		return nil, fmt.Errorf("shoe: %w", err)
	}

	seen := make(map[deck.Rank]bool, len(c.Counts))
	for _, o := range c.Counts {
		rank, err := deck.ParseRank(o.Rank)
		if err != nil {
			return nil, fmt.Errorf("count %q: %w", o.Rank, err)
		}
		if seen[rank] {
			return nil, fmt.Errorf("count %q: %s is overridden twice", o.Rank, rank.Name())
		}
		seen[rank] = true
		cs[rank] = o.Value
	}
	return cs, nil
}

// StrategyPath returns the strategy file path, resolved against the config
// file's directory when relative. It is empty for the built-in strategy.
func (c *Config) StrategyPath() string {
	path := c.Strategy.File
	if path == "" || filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}

// Tables loads the configured strategy
func (c *Config) Tables() (*strategy.Tables, error) {
	path := c.StrategyPath()
	if path == "" {
		return strategy.Default(), nil
	}
	return strategy.LoadFile(path)
}

// SimulatorConfig assembles everything the simulator needs. Logger, clock and
// progress reporting are left for the caller.
func (c *Config) SimulatorConfig() (simulator.Config, error) {
	if err := c.Validate(); err != nil {
		return simulator.Config{}, err
	}
	tables, err := c.Tables()
	if err != nil {
		return simulator.Config{}, err
	}
	cs, err := c.CountSystem()
	if err != nil {
		return simulator.Config{}, err
	}
	return simulator.Config{
		Rounds:      c.Simulation.Rounds,
		Seed:        c.Simulation.Seed,
		Workers:     c.Simulation.Workers,
		Decks:       c.Shoe.Decks,
		BufferSize:  c.Shoe.BufferSize,
		CountSystem: cs,
		Rules:       c.Rules(),
		Tables:      tables,
	}, nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/mattn/go-isatty"
	"github.com/sanity-io/litter"

	"github.com/lox/bjsim/internal/config"
	"github.com/lox/bjsim/internal/progress"
	"github.com/lox/bjsim/internal/report"
	"github.com/lox/bjsim/internal/simulator"
)

type CLI struct {
	Config      string  `short:"c" long:"config" default:"bjsim.hcl" help:"Path to HCL configuration file"`
	Strategy    string  `short:"s" help:"Strategy file, .hcl or .toml (overrides config)" type:"existingfile"`
	Rounds      int     `short:"n" help:"Number of rounds to play (overrides config)"`
	Seed        int64   `help:"RNG seed (overrides config, 0 for random)"`
	Workers     int     `short:"w" help:"Independent shoes played in parallel (overrides config)"`
	Decks       int     `short:"d" help:"Decks in the shoe (overrides config)"`
	BetSpread   float64 `help:"Stake multiplier when the count is favourable (overrides config)"`
	CountSystem string  `help:"Running count system: default, hilo or omega2 (overrides config)"`
	TripleSeven bool    `help:"Pay a non-split 7-7-7 as blackjack"`
	Progress    bool    `short:"p" help:"Show a progress bar on a terminal"`
	Verbose     bool    `short:"v" help:"Narrate every round at debug level"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bjsim"),
		kong.Description("Monte-Carlo blackjack simulator with card counting and bet spreading."),
	)

	level := log.InfoLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})

	cfg, err := config.Load(cli.Config)
	ctx.FatalIfErrorf(err, "loading config")

	applyOverrides(cfg, &cli)
	if cfg.Simulation.Seed == 0 {
		cfg.Simulation.Seed = time.Now().UnixNano()
	}
	logger.Debug("Resolved configuration", "config", litter.Sdump(cfg))

	simConfig, err := cfg.SimulatorConfig()
	ctx.FatalIfErrorf(err)
	simConfig.Logger = logger
	simConfig.Clock = quartz.NewReal()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var bar *progress.Bar
	if cli.Progress && !cli.Verbose && isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progress.New(os.Stderr, simConfig.Rounds, stop)
		simConfig.OnProgress = bar.Update
		bar.Start()
	}

	result, err := simulator.New(simConfig).Run(runCtx)
	if bar != nil {
		bar.Finish()
	}
	ctx.FatalIfErrorf(err)

	title := fmt.Sprintf("%d rounds, %d decks, seed %d", simConfig.Rounds, simConfig.Decks, simConfig.Seed)
	err = report.Write(os.Stdout, result, report.WithTitle(title))
	ctx.FatalIfErrorf(err)
}

// applyOverrides copies every flag that was set onto the loaded config
func applyOverrides(cfg *config.Config, cli *CLI) {
	if cli.Strategy != "" {
		cfg.Strategy.File = cli.Strategy
	}
	if cli.Rounds != 0 {
		cfg.Simulation.Rounds = cli.Rounds
	}
	if cli.Seed != 0 {
		cfg.Simulation.Seed = cli.Seed
	}
	if cli.Workers != 0 {
		cfg.Simulation.Workers = cli.Workers
	}
	if cli.Decks != 0 {
		cfg.Shoe.Decks = cli.Decks
	}
	if cli.BetSpread != 0 {
		cfg.Table.BetSpread = cli.BetSpread
	}
	if cli.CountSystem != "" {
		cfg.Shoe.CountSystem = cli.CountSystem
	}
	if cli.TripleSeven {
		cfg.Table.TripleSeven = true
	}
}

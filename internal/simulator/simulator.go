package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lox/bjsim/internal/deck"
	"github.com/lox/bjsim/internal/game"
	"github.com/lox/bjsim/internal/randutil"
	"github.com/lox/bjsim/internal/statistics"
	"github.com/lox/bjsim/internal/strategy"
)

// progressInterval is how many rounds a worker plays between progress reports
const progressInterval = 1000

// Config holds configuration for running simulations
type Config struct {
	Rounds      int
	Seed        int64 // worker 0 deals from randutil.New(Seed)
	Workers     int
	Decks       int
	BufferSize  int
	CountSystem deck.CountSystem
	Rules       game.Rules
	Tables      *strategy.Tables
	Logger      *log.Logger
	Clock       quartz.Clock

	// OnProgress receives the number of rounds finished so far. It is called
	// from worker goroutines and must be safe for concurrent use.
	OnProgress func(done, total int)
}

// Result is the outcome of a simulation run
type Result struct {
	RunID   uuid.UUID
	Stats   *statistics.Statistics
	Workers int
	Elapsed time.Duration
}

// Simulator plays blackjack rounds and accumulates their results
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Decks == 0 {
		config.Decks = 6
	}
	if config.BufferSize == 0 {
		config.BufferSize = deck.DefaultBufferSize
	}
	if config.CountSystem == nil {
		config.CountSystem = deck.DefaultCount
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	return &Simulator{config: config}
}

// Validate checks the configuration before any round is played
func (s *Simulator) Validate() error {
	c := s.config
	if c.Rounds < 1 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	if c.Decks < 1 {
		return fmt.Errorf("decks must be positive, got %d", c.Decks)
	}
	if c.BufferSize < 0 {
		return fmt.Errorf("buffer size must not be negative, got %d", c.BufferSize)
	}
	if c.Tables == nil {
		return errors.New("strategy tables are required")
	}
	if c.Rules.Players < 1 {
		return fmt.Errorf("players must be positive, got %d", c.Rules.Players)
	}
	if c.Rules.BaseStake <= 0 {
		return fmt.Errorf("base stake must be positive, got %v", c.Rules.BaseStake)
	}
	return c.CountSystem.Validate()
}

// Run plays the configured number of rounds. With a single worker every round
// is dealt from one shoe in sequence. With more workers the rounds are split
// between independent games, each with its own shoe, and the per-worker
// statistics are merged in worker order so a fixed seed and worker count
// always give the same result.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.New()
	start := s.config.Clock.Now()
	logger := s.config.Logger.With("run", runID.String())

	workers := min(s.config.Workers, s.config.Rounds)
	perWorker := s.config.Rounds / workers
	remainder := s.config.Rounds % workers

	logger.Info("Starting simulation",
		"rounds", s.config.Rounds,
		"workers", workers,
		"decks", s.config.Decks,
		"players", s.config.Rules.Players,
		"seed", s.config.Seed)

	results := make([]*statistics.Statistics, workers)
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		rounds := perWorker
		if w < remainder {
			rounds++
		}
		g.Go(func() error {
			stats, err := s.runWorker(ctx, w, rounds, &done, logger)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			results[w] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Merge(r)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := s.config.Clock.Since(start)
	logger.Info("Simulation finished",
		"rounds", stats.Rounds,
		"hands", stats.Hands,
		"edge", fmt.Sprintf("%.3f%%", stats.Edge()),
		"elapsed", elapsed)

	return &Result{
		RunID:   runID,
		Stats:   stats,
		Workers: workers,
		Elapsed: elapsed,
	}, nil
}

// runWorker plays rounds on a fresh shoe seeded for this worker
func (s *Simulator) runWorker(ctx context.Context, worker, rounds int, done *atomic.Int64, logger *log.Logger) (*statistics.Statistics, error) {
	rng := randutil.New(randutil.WorkerSeed(s.config.Seed, worker))
	shoe := deck.NewShoe(rng, s.config.Decks,
		deck.WithBufferSize(s.config.BufferSize),
		deck.WithCountSystem(s.config.CountSystem),
	)

	var opts []game.GameOption
	if s.config.Logger.GetLevel() <= log.DebugLevel {
		bus := game.NewEventBus()
		bus.Subscribe(game.NewLogSubscriber(logger.With("worker", worker)))
		opts = append(opts, game.WithEventBus(bus))
	}
	g := game.NewGame(shoe, s.config.Tables, s.config.Rules, opts...)

	stats := &statistics.Statistics{}
	reported := 0
	for i := 1; i <= rounds; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := g.PlayRound()
		if err != nil {
			return nil, err
		}
		stats.Add(toStatistics(result))

		if i%progressInterval == 0 || i == rounds {
			total := done.Add(int64(i - reported))
			reported = i
			if s.config.OnProgress != nil {
				s.config.OnProgress(int(total), s.config.Rounds)
			}
		}
	}
	return stats, nil
}

func toStatistics(r game.RoundResult) statistics.RoundResult {
	outcomes := make(map[string]int, len(r.Outcomes))
	for outcome, n := range r.Outcomes {
		outcomes[string(outcome)] = n
	}
	return statistics.RoundResult{
		Money:    r.Money,
		Bet:      r.Bet,
		Hands:    r.Hands,
		Outcomes: outcomes,
	}
}

// RunSimulation is a convenience function for running a simulation with the
// default strategy and rules
func RunSimulation(ctx context.Context, rounds int, seed int64, logger *log.Logger) (*Result, error) {
	config := Config{
		Rounds: rounds,
		Seed:   seed,
		Rules:  game.DefaultRules(),
		Tables: strategy.Default(),
		Logger: logger,
	}
	return New(config).Run(ctx)
}

package battle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"battlesim/internal/battle/core"
)

// PlayerFactory builds fresh collaborators for each battle in a batch, so no
// bot state leaks between matches. Factories must be safe for concurrent
// calls when the runner is parallel.
type PlayerFactory struct {
	Name        string
	NewSetup    func() BoardSetup
	NewStrategy func() Strategy
}

// RunnerConfig describes a batch of battles between two player factories
type RunnerConfig struct {
	// Battles is the number of matches to run, 1 when zero
	Battles int
	// Parallelism is the number of concurrent matches, sequential when <= 1
	Parallelism int
	// Width and Height are forwarded to every match
	Width  int
	Height int
	// Catalog is forwarded to every match; nil means the standard fleet
	Catalog *core.Catalog
	// MaxMoves is forwarded to every match
	MaxMoves int
	// StrategyTimeout is forwarded to every match
	StrategyTimeout time.Duration
	// Players holds player 1 at index 0 and player 2 at index 1
	Players [2]PlayerFactory
	// OnMatch, when set, is called with every match before it runs, so
	// callers can attach event subscribers
	OnMatch func(index int, m *Match)
	// Logger defaults to the global logger
	Logger *zerolog.Logger
}

// Stats summarizes a finished batch
type Stats struct {
	Battles     int
	Player1Wins int
	Player2Wins int
	Draws       int
	Aborts      int
	TotalMoves  int
}

// AvgMoves returns the mean match length in moves
func (s Stats) AvgMoves() float64 {
	if s.Battles == 0 {
		return 0
	}
	return float64(s.TotalMoves) / float64(s.Battles)
}

func (s *Stats) record(out Outcome) {
	s.Battles++
	s.TotalMoves += out.Moves
	switch {
	case out.Aborted:
		s.Aborts++
	case out.Draw:
		s.Draws++
	case out.Winner == core.Player1:
		s.Player1Wins++
	case out.Winner == core.Player2:
		s.Player2Wins++
	}
}

// Runner executes batches of matches. The starting player alternates per
// battle, every match gets fresh boards and collaborators, and a single
// broken match never stops the batch.
type Runner struct {
	cfg    RunnerConfig
	logger zerolog.Logger
}

// NewRunner validates the batch config and builds a runner
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	for i, f := range cfg.Players {
		if f.NewSetup == nil || f.NewStrategy == nil {
			return nil, fmt.Errorf("player %d factory is missing collaborators", i+1)
		}
	}
	if cfg.Battles <= 0 {
		cfg.Battles = 1
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 1
	}
	if cfg.Parallelism > cfg.Battles {
		cfg.Parallelism = cfg.Battles
	}

	baseLogger := log.Logger
	if cfg.Logger != nil {
		baseLogger = *cfg.Logger
	}
	return &Runner{
		cfg:    cfg,
		logger: baseLogger.With().Str("component", "runner").Logger(),
	}, nil
}

// Run executes the configured battles and returns the aggregated stats.
// Cancelling the context stops the batch early; stats for finished battles
// are still returned along with the context error.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	r.logger.Info().
		Int("battles", r.cfg.Battles).
		Int("parallelism", r.cfg.Parallelism).
		Str("player1", r.cfg.Players[0].Name).
		Str("player2", r.cfg.Players[1].Name).
		Msg("Batch starting")

	var stats Stats
	if r.cfg.Parallelism == 1 {
		for i := 1; i <= r.cfg.Battles; i++ {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			stats.record(r.runBattle(ctx, i))
		}
		r.logBatchDone(stats)
		return stats, nil
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		indices = make(chan int)
	)
	for w := 0; w < r.cfg.Parallelism; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				out := r.runBattle(ctx, i)
				mu.Lock()
				stats.record(out)
				mu.Unlock()
			}
		}()
	}

dispatch:
	for i := 1; i <= r.cfg.Battles; i++ {
		select {
		case indices <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(indices)
	wg.Wait()

	r.logBatchDone(stats)
	return stats, ctx.Err()
}

// runBattle plays battle number index (1-based). Anything that goes wrong,
// including a panic escaping a match, becomes an aborted outcome.
func (r *Runner) runBattle(ctx context.Context, index int) (out Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().
				Int("battle", index).
				Interface("panic", rec).
				Msg("Battle crashed")
			out = Outcome{Aborted: true, Reason: fmt.Sprintf("internal error: %v", rec)}
		}
	}()

	starting := core.Player1
	if index%2 == 0 {
		starting = core.Player2
	}

	match, err := NewMatch(MatchConfig{
		Width:   r.cfg.Width,
		Height:  r.cfg.Height,
		Catalog: r.cfg.Catalog,
		Players: [2]PlayerSlot{
			{Name: r.cfg.Players[0].Name, Setup: r.cfg.Players[0].NewSetup(), Strategy: r.cfg.Players[0].NewStrategy()},
			{Name: r.cfg.Players[1].Name, Setup: r.cfg.Players[1].NewSetup(), Strategy: r.cfg.Players[1].NewStrategy()},
		},
		StartingPlayer:  starting,
		MaxMoves:        r.cfg.MaxMoves,
		StrategyTimeout: r.cfg.StrategyTimeout,
		Logger:          &r.logger,
	})
	if err != nil {
		r.logger.Error().Int("battle", index).Err(err).Msg("Failed to build match")
		return Outcome{Aborted: true, Reason: err.Error()}
	}

	if r.cfg.OnMatch != nil {
		r.cfg.OnMatch(index, match)
	}

	out = match.Run(ctx)
	r.logger.Debug().
		Int("battle", index).
		Str("match_id", match.ID()).
		Str("outcome", out.String()).
		Msg("Battle finished")
	return out
}

func (r *Runner) logBatchDone(stats Stats) {
	r.logger.Info().
		Int("battles", stats.Battles).
		Int("player1_wins", stats.Player1Wins).
		Int("player2_wins", stats.Player2Wins).
		Int("draws", stats.Draws).
		Int("aborts", stats.Aborts).
		Float64("avg_moves", stats.AvgMoves()).
		Msg("Batch finished")
}

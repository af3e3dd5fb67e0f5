// Command battle runs headless battleship matches between two bots and
// prints aggregate results. Per-battle move logs and PNG snapshots go to
// the configured output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"battlesim/internal/battle"
	"battlesim/internal/battle/core"
	"battlesim/internal/battle/events"
	"battlesim/internal/battle/events/subscribers"
	"battlesim/internal/bots"
	"battlesim/internal/config"
	"battlesim/internal/monitoring"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	count := flag.Int("count", -1, "Number of battles to run (-1 to use config default)")
	width := flag.Int("width", -1, "Board width (-1 to use config default)")
	height := flag.Int("height", -1, "Board height (-1 to use config default)")
	fleet := flag.String("fleet", "", "Comma-separated ship ids, e.g. 1,2,4 (empty to use config default)")
	seed := flag.Int64("seed", -1, "Random seed (-1 to use config default, 0 for time-based)")
	parallel := flag.Int("parallel", -1, "Concurrent battles (-1 to use config default)")
	gunner1 := flag.String("p1", "random", "Player 1 strategy (random, sweep)")
	gunner2 := flag.String("p2", "random", "Player 2 strategy (random, sweep)")
	verbose := flag.Bool("verbose", false, "Print every move to stdout")
	snapshots := flag.Bool("snapshots", false, "Write PNG board snapshots per move")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	watchConfig := flag.Bool("watch-config", false, "Reload configuration when the file changes")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}

	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *count == -1 {
		*count = cfg.Runner.Battles
	}
	if *width == -1 {
		*width = cfg.Game.Board.Width
	}
	if *height == -1 {
		*height = cfg.Game.Board.Height
	}
	if *parallel == -1 {
		*parallel = cfg.Runner.Parallelism
	}
	if *seed == -1 {
		*seed = cfg.Runner.Seed
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	// For snapshots, use config if flag not explicitly set to true
	if !*snapshots {
		*snapshots = cfg.Output.Snapshots
	}

	setupLogging(*logLevel, cfg.Logging.Format)

	if *watchConfig {
		config.WatchConfig(func() {
			log.Info().Str("file", config.ConfigFilePath()).Msg("Config file reloaded")
		})
	}

	fleetIDs := cfg.Game.Fleet
	if *fleet != "" {
		ids, err := parseFleet(*fleet)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid -fleet value")
		}
		fleetIDs = ids
	}
	catalog, err := buildCatalog(fleetIDs)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build ship catalog")
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	log.Info().
		Int("battles", *count).
		Int("width", *width).
		Int("height", *height).
		Ints("fleet", fleetIDs).
		Int64("seed", *seed).
		Int("parallelism", *parallel).
		Str("player1", *gunner1).
		Str("player2", *gunner2).
		Msg("Starting battle runner")

	// Every collaborator gets its own rand.Rand derived from the base seed,
	// so parallel battles never share a generator.
	var rngSeq int64
	baseSeed := *seed
	nextRNG := func() *rand.Rand {
		n := atomic.AddInt64(&rngSeq, 1)
		return rand.New(rand.NewSource(baseSeed + n))
	}

	p1, err := playerFactory(*gunner1, nextRNG)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid -p1 value")
	}
	p2, err := playerFactory(*gunner2, nextRNG)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid -p2 value")
	}

	// Handle shutdown signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	outDir := cfg.Output.Dir
	moveLog := cfg.Output.MoveLog
	tileSize := cfg.Output.TileSize
	debugEvents := zerolog.GlobalLevel() <= zerolog.DebugLevel

	onMatch := func(index int, m *battle.Match) {
		if *verbose {
			starting := core.Player1
			if index%2 == 0 {
				starting = core.Player2
			}
			fmt.Printf("\n=== Battle %d (%s starts) ===\n", index, starting)
			m.EventBus().SubscribeFunc(events.TypeAttackResolved, func(e events.Event) {
				if attack, ok := e.(*events.AttackResolvedEvent); ok {
					fmt.Println(subscribers.FormatMove(attack))
				}
			})
		}
		battleDir := filepath.Join(outDir, fmt.Sprintf("battle_%04d", index))
		if moveLog {
			m.EventBus().Subscribe(subscribers.NewMoveLog(
				fmt.Sprintf("move-log-%d", index),
				filepath.Join(battleDir, "battle_log.txt"),
				log.Logger))
		}
		if *snapshots {
			m.EventBus().Subscribe(subscribers.NewSnapshotWriter(
				fmt.Sprintf("snapshots-%d", index),
				battleDir,
				tileSize,
				m.Board(core.Player1),
				m.Board(core.Player2),
				log.Logger))
		}
		if debugEvents {
			m.EventBus().Subscribe(subscribers.NewLoggerSubscriber(
				fmt.Sprintf("event-log-%d", index), log.Logger, zerolog.DebugLevel))
		}
	}

	runner, err := battle.NewRunner(battle.RunnerConfig{
		Battles:         *count,
		Parallelism:     *parallel,
		Width:           *width,
		Height:          *height,
		Catalog:         catalog,
		MaxMoves:        *width * *height * cfg.Runner.MaxMoveFactor,
		StrategyTimeout: time.Duration(cfg.Runner.StrategyTimeoutMs) * time.Millisecond,
		Players:         [2]battle.PlayerFactory{p1, p2},
		OnMatch:         onMatch,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build runner")
	}

	// A healthy batch stays near the worker count; sustained growth means
	// collaborator calls are timing out without returning.
	var monitor *monitoring.GoroutineMonitor
	if *parallel > 1 {
		monitor = monitoring.NewGoroutineMonitor(10*time.Second, 50+10*(*parallel), log.Logger)
		monitor.Start()
	}

	start := time.Now()
	stats, err := runner.Run(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Batch interrupted")
	}

	if monitor != nil {
		monitor.Stop()
		metrics := monitor.Metrics()
		log.Debug().
			Int("baseline", metrics.Baseline).
			Int("peak", metrics.Peak).
			Msg("Goroutine usage")
	}

	printSummary(stats, time.Since(start))
}

func printSummary(stats battle.Stats, elapsed time.Duration) {
	fmt.Println("\n=== Overall Battle Results ===")
	fmt.Printf("Total battles: %d\n", stats.Battles)
	fmt.Printf("Player 1 wins: %d\n", stats.Player1Wins)
	fmt.Printf("Player 2 wins: %d\n", stats.Player2Wins)
	fmt.Printf("Draws: %d\n", stats.Draws)
	if stats.Aborts > 0 {
		fmt.Printf("Aborted: %d\n", stats.Aborts)
	}
	fmt.Printf("Average game length: %.2f moves\n", stats.AvgMoves())
	fmt.Printf("Elapsed: %s\n", elapsed.Round(time.Millisecond))
}

// playerFactory wires a random fleet placer and the named gunner into a
// factory the runner calls once per battle per player.
func playerFactory(gunner string, nextRNG func() *rand.Rand) (battle.PlayerFactory, error) {
	f := battle.PlayerFactory{
		Name: gunner,
		NewSetup: func() battle.BoardSetup {
			return bots.NewRandomFleet(nextRNG())
		},
	}
	switch gunner {
	case "random":
		f.NewStrategy = func() battle.Strategy { return bots.NewRandomGunner(nextRNG()) }
	case "sweep":
		f.NewStrategy = func() battle.Strategy { return bots.NewSweepGunner() }
	default:
		return battle.PlayerFactory{}, fmt.Errorf("unknown strategy %q (want random or sweep)", gunner)
	}
	return f, nil
}

func parseFleet(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid ship id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// buildCatalog selects the listed ships from the standard set.
func buildCatalog(ids []int) (*core.Catalog, error) {
	byID := make(map[core.ShipID]core.ShipType, len(core.StandardShipTypes()))
	for _, t := range core.StandardShipTypes() {
		byID[t.ID] = t
	}
	types := make([]core.ShipType, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[core.ShipID(id)]
		if !ok {
			return nil, fmt.Errorf("no ship type with id %d", id)
		}
		types = append(types, t)
	}
	return core.NewCustomCatalog(types)
}

func setupLogging(level, format string) {
	// Parse log level
	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	// Logs go to stderr so the results summary on stdout stays clean.
	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}

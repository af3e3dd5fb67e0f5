// Command viewer opens a window and plays one battle between two bots,
// drawing both boards as the moves land. Space pauses, n steps a single
// move, the arrow keys change the speed and q quits.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"battlesim/internal/battle"
	"battlesim/internal/battle/core"
	"battlesim/internal/bots"
	"battlesim/internal/config"
	"battlesim/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	width := flag.Int("width", -1, "Board width (-1 to use config default)")
	height := flag.Int("height", -1, "Board height (-1 to use config default)")
	fleet := flag.String("fleet", "", "Comma-separated ship ids (empty to use config default)")
	seed := flag.Int64("seed", 0, "Random seed (0 for time-based)")
	gunner1 := flag.String("p1", "random", "Player 1 strategy (random, sweep)")
	gunner2 := flag.String("p2", "random", "Player 2 strategy (random, sweep)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	if *width == -1 {
		*width = cfg.Game.Board.Width
	}
	if *height == -1 {
		*height = cfg.Game.Board.Height
	}

	if lvl, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

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
	// One battle on one goroutine, so both players can share a generator.
	rng := rand.New(rand.NewSource(*seed))

	slot1, err := playerSlot(*gunner1, rng)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid -p1 value")
	}
	slot2, err := playerSlot(*gunner2, rng)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid -p2 value")
	}

	log.Info().
		Int("width", *width).
		Int("height", *height).
		Ints("fleet", fleetIDs).
		Int64("seed", *seed).
		Msg("Opening battle viewer")

	match, err := battle.NewMatch(battle.MatchConfig{
		Width:           *width,
		Height:          *height,
		Catalog:         catalog,
		Players:         [2]battle.PlayerSlot{slot1, slot2},
		StartingPlayer:  core.PlayerID(cfg.Runner.StartingPlayer),
		StrategyTimeout: time.Duration(cfg.Runner.StrategyTimeoutMs) * time.Millisecond,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build match")
	}

	game, err := ui.NewViewerGame(match)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build viewer")
	}

	ebiten.SetWindowSize(ui.ScreenWidth(), ui.ScreenHeight())
	ebiten.SetWindowTitle(cfg.Viewer.Window.Title)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("Viewer exited with error")
	}
}

func playerSlot(gunner string, rng *rand.Rand) (battle.PlayerSlot, error) {
	slot := battle.PlayerSlot{
		Name:  gunner,
		Setup: bots.NewRandomFleet(rng),
	}
	switch gunner {
	case "random":
		slot.Strategy = bots.NewRandomGunner(rng)
	case "sweep":
		slot.Strategy = bots.NewSweepGunner()
	default:
		return battle.PlayerSlot{}, fmt.Errorf("unknown strategy %q (want random or sweep)", gunner)
	}
	return slot, nil
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

package subscribers

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"battlesim/internal/battle/core"
	"battlesim/internal/battle/events"
	"battlesim/internal/render"
)

const defaultSnapshotTileSize = 32

// SnapshotWriter saves PNG images of the boards as a match progresses: both
// boards before the first move (player1_initial.png, player2_initial.png)
// and the defender's board after every attack (player2_move_17.png), under
// Player1/ and Player2/ directories below dir.
type SnapshotWriter struct {
	id       string
	dir      string
	tileSize int
	boards   map[core.PlayerID]*core.Board
	logger   zerolog.Logger
}

// NewSnapshotWriter creates a snapshot subscriber for the two boards of one
// match. Board references stay live; images reflect the boards at the moment
// each event is delivered.
func NewSnapshotWriter(id, dir string, tileSize int, p1, p2 *core.Board, logger zerolog.Logger) *SnapshotWriter {
	if tileSize < 2 {
		tileSize = defaultSnapshotTileSize
	}
	return &SnapshotWriter{
		id:       id,
		dir:      dir,
		tileSize: tileSize,
		boards: map[core.PlayerID]*core.Board{
			core.Player1: p1,
			core.Player2: p2,
		},
		logger: logger.With().Str("subscriber", "snapshot_writer").Logger(),
	}
}

// ID returns the subscriber's unique identifier
func (sw *SnapshotWriter) ID() string {
	return sw.id
}

// InterestedIn returns true for events that change what a board looks like.
func (sw *SnapshotWriter) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeMatchStarted, events.TypeAttackResolved:
		return true
	default:
		return false
	}
}

// HandleEvent writes board images for the events it subscribes to.
func (sw *SnapshotWriter) HandleEvent(event events.Event) {
	switch e := event.(type) {
	case *events.MatchStartedEvent:
		sw.save(core.Player1, "player1_initial.png")
		sw.save(core.Player2, "player2_initial.png")

	case *events.AttackResolvedEvent:
		name := fmt.Sprintf("player%d_move_%d.png", e.Defender, e.Move)
		sw.save(e.Defender, name)
	}
}

func (sw *SnapshotWriter) save(player core.PlayerID, name string) {
	board := sw.boards[player]
	if board == nil {
		return
	}

	img, err := render.BoardImage(board, sw.tileSize)
	if err != nil {
		sw.logger.Error().Err(err).Str("file", name).Msg("Failed to render board snapshot")
		return
	}

	path := filepath.Join(sw.dir, fmt.Sprintf("Player%d", player), name)
	if err := render.WritePNG(path, img); err != nil {
		sw.logger.Error().Err(err).Str("file", name).Msg("Failed to write board snapshot")
	}
}

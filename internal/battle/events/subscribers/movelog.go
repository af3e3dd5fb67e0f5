// Package subscribers contains presentation adapters that hang off the match
// event bus. None of them influence match outcomes; failures are logged and
// swallowed so a broken disk never forfeits a battle.
package subscribers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"battlesim/internal/battle/core"
	"battlesim/internal/battle/events"
)

// MoveLog accumulates a match transcript in memory and writes it to a single
// text file when the match ends:
//
//	New battle started: 10x10, ships: [1 2 3 4 5 6 7]
//	Player 1 placed 7 ships
//	Player 2 placed 7 ships
//	Move 1: Player 1 attacks (3,4) -> Miss
//	Move 2: Player 2 attacks (0,0) -> Hit
//	Move 8: Player 2 attacks (1,0) -> Hit and Sunk
//	Player 2 wins after 8 moves!
type MoveLog struct {
	id     string
	path   string
	logger zerolog.Logger

	mu    sync.Mutex
	lines []string
}

// NewMoveLog creates a transcript subscriber that flushes to path.
func NewMoveLog(id, path string, logger zerolog.Logger) *MoveLog {
	return &MoveLog{
		id:     id,
		path:   path,
		logger: logger.With().Str("subscriber", "move_log").Logger(),
	}
}

// ID returns the subscriber's unique identifier
func (ml *MoveLog) ID() string {
	return ml.id
}

// InterestedIn returns true for the events that appear in the transcript.
func (ml *MoveLog) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeMatchStarted, events.TypeFleetPlaced, events.TypeAttackResolved, events.TypeMatchEnded:
		return true
	default:
		return false
	}
}

// HandleEvent appends transcript lines and flushes on match end.
func (ml *MoveLog) HandleEvent(event events.Event) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	switch e := event.(type) {
	case *events.MatchStartedEvent:
		ml.lines = append(ml.lines, fmt.Sprintf("New battle started: %dx%d, ships: %v",
			e.BoardWidth, e.BoardHeight, e.Fleet))

	case *events.FleetPlacedEvent:
		ml.lines = append(ml.lines, fmt.Sprintf("Player %d placed %d ships", e.Player, len(e.Ships)))

	case *events.AttackResolvedEvent:
		ml.lines = append(ml.lines, FormatMove(e))

	case *events.MatchEndedEvent:
		ml.lines = append(ml.lines, FormatResult(e))
		if err := ml.flushLocked(); err != nil {
			ml.logger.Error().Err(err).Str("path", ml.path).Msg("Failed to write move log")
		}
	}
}

// Lines returns a copy of the transcript accumulated so far.
func (ml *MoveLog) Lines() []string {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	out := make([]string, len(ml.lines))
	copy(out, ml.lines)
	return out
}

// Flush writes the transcript to the configured path.
func (ml *MoveLog) Flush() error {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return ml.flushLocked()
}

func (ml *MoveLog) flushLocked() error {
	if err := os.MkdirAll(filepath.Dir(ml.path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	data := strings.Join(ml.lines, "\n") + "\n"
	if err := os.WriteFile(ml.path, []byte(data), 0644); err != nil {
		return fmt.Errorf("failed to write move log: %w", err)
	}
	return nil
}

// FormatMove renders one attack as a transcript line.
func FormatMove(e *events.AttackResolvedEvent) string {
	verdict := "Miss"
	if e.Result.Outcome.IsHit() {
		verdict = "Hit"
	}
	suffix := ""
	if e.Result.Outcome == core.OutcomeSunk {
		suffix = " and Sunk"
	}
	return fmt.Sprintf("Move %d: Player %d attacks (%d,%d) -> %s%s",
		e.Move, e.Attacker, e.Result.Coord.X, e.Result.Coord.Y, verdict, suffix)
}

// FormatResult renders the closing transcript line.
func FormatResult(e *events.MatchEndedEvent) string {
	switch {
	case e.Aborted:
		return fmt.Sprintf("Battle aborted after %d moves: %s", e.Moves, e.Reason)
	case e.Draw:
		return fmt.Sprintf("Battle ended in a draw after %d moves.", e.Moves)
	default:
		return fmt.Sprintf("Player %d wins after %d moves!", e.Winner, e.Moves)
	}
}

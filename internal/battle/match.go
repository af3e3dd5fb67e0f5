package battle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"battlesim/internal/battle/core"
	"battlesim/internal/battle/events"
	"battlesim/internal/battle/states"
)

// DefaultMaxMoveFactor bounds match length as a multiple of the board area.
// Two random gunners on a 10x10 board finish well inside it; hitting the
// limit means neither strategy is making progress and the match is a draw.
const DefaultMaxMoveFactor = 100

// MatchConfig describes one match. Zero values fall back to defaults where
// noted; both player slots are mandatory.
type MatchConfig struct {
	// ID is the match identifier; a random UUID is generated when empty
	ID string
	// Width and Height are the board dimensions, 10x10 when zero
	Width  int
	Height int
	// Catalog defaults to the standard seven-ship fleet
	Catalog *core.Catalog
	// Players holds player 1 at index 0 and player 2 at index 1
	Players [2]PlayerSlot
	// StartingPlayer defaults to player 1
	StartingPlayer core.PlayerID
	// MaxMoves defaults to Width*Height*DefaultMaxMoveFactor
	MaxMoves int
	// StrategyTimeout bounds every collaborator call; zero disables it
	StrategyTimeout time.Duration
	// EventBus receives match events; a private bus is created when nil
	EventBus *events.EventBus
	// Logger defaults to the global logger
	Logger *zerolog.Logger
}

// Match runs one battle between two players: the setup phase places and
// validates both fleets, then the players alternate attacks until a fleet
// is destroyed, a player forfeits, or the move limit is reached.
//
// All methods must be called from a single goroutine; a match has no
// internal locking beyond its state machine.
type Match struct {
	id        string
	width     int
	height    int
	catalog   *core.Catalog
	slots     [2]PlayerSlot
	boards    [2]*core.Board
	machine   *states.StateMachine
	bus       *events.EventBus
	logger    zerolog.Logger
	guard     callGuard
	validator *PlacementValidator
	resolver  *AttackResolver

	current  core.PlayerID
	moves    int
	maxMoves int
	started  time.Time
	outcome  *Outcome
}

// NewMatch validates the config and builds a match in the setup phase
func NewMatch(cfg MatchConfig) (*Match, error) {
	for i, slot := range cfg.Players {
		if slot.Setup == nil || slot.Strategy == nil {
			return nil, fmt.Errorf("player %d is missing collaborators", i+1)
		}
	}

	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
	}
	if cfg.Width == 0 && cfg.Height == 0 {
		cfg.Width, cfg.Height = 10, 10
	}
	if cfg.Catalog == nil {
		cfg.Catalog = core.NewCatalog()
	}
	if cfg.StartingPlayer == core.NoPlayer {
		cfg.StartingPlayer = core.Player1
	}
	if !cfg.StartingPlayer.IsValid() {
		return nil, fmt.Errorf("starting player %d is not a player", int(cfg.StartingPlayer))
	}
	if cfg.MaxMoves == 0 {
		cfg.MaxMoves = cfg.Width * cfg.Height * DefaultMaxMoveFactor
	}
	if cfg.EventBus == nil {
		cfg.EventBus = events.NewEventBus()
	}

	baseLogger := log.Logger
	if cfg.Logger != nil {
		baseLogger = *cfg.Logger
	}
	logger := baseLogger.With().
		Str("component", "match").
		Str("match_id", cfg.ID).
		Logger()

	var boards [2]*core.Board
	for i := range boards {
		board, err := core.NewBoard(cfg.Catalog, cfg.Width, cfg.Height)
		if err != nil {
			return nil, err
		}
		boards[i] = board
	}

	return &Match{
		id:        cfg.ID,
		width:     cfg.Width,
		height:    cfg.Height,
		catalog:   cfg.Catalog,
		slots:     cfg.Players,
		boards:    boards,
		machine:   states.NewStateMachine(cfg.ID, logger, cfg.EventBus),
		bus:       cfg.EventBus,
		logger:    logger,
		guard:     callGuard{timeout: cfg.StrategyTimeout},
		validator: NewPlacementValidator(logger),
		resolver:  NewAttackResolver(logger),
		current:   cfg.StartingPlayer,
		maxMoves:  cfg.MaxMoves,
	}, nil
}

// ID returns the match identifier
func (m *Match) ID() string { return m.id }

// EventBus returns the bus match events are published on
func (m *Match) EventBus() *events.EventBus { return m.bus }

// Phase returns the current lifecycle phase
func (m *Match) Phase() states.MatchPhase { return m.machine.CurrentPhase() }

// CurrentPlayer returns whose attack is next
func (m *Match) CurrentPlayer() core.PlayerID { return m.current }

// Moves returns the number of attacks resolved so far
func (m *Match) Moves() int { return m.moves }

// MaxMoves returns the draw limit for this match
func (m *Match) MaxMoves() int { return m.maxMoves }

// PlayerName returns the configured name of a player
func (m *Match) PlayerName(p core.PlayerID) string {
	if !p.IsValid() {
		return p.String()
	}
	return m.slots[p-1].Name
}

// Board returns a player's own board. Callers must treat it as read-only;
// all mutation goes through the match.
func (m *Match) Board(p core.PlayerID) *core.Board {
	if !p.IsValid() {
		return nil
	}
	return m.boards[p-1]
}

// Outcome returns the terminal result, and false while the match is still
// running
func (m *Match) Outcome() (Outcome, bool) {
	if m.outcome == nil {
		return Outcome{}, false
	}
	return *m.outcome, true
}

func (m *Match) slot(p core.PlayerID) PlayerSlot   { return m.slots[p-1] }
func (m *Match) board(p core.PlayerID) *core.Board { return m.boards[p-1] }

// Start runs the setup phase: both players are initialized and their fleet
// placements validated, in player order. Any rejection aborts the match
// before a single attack, attributed to the offending player, and is
// returned to the caller.
func (m *Match) Start(ctx context.Context) error {
	if phase := m.machine.CurrentPhase(); phase != states.PhaseSetup {
		if phase.IsTerminal() {
			return ErrMatchFinished
		}
		return fmt.Errorf("match already started")
	}
	m.started = time.Now()

	for _, p := range []core.PlayerID{core.Player1, core.Player2} {
		if err := m.placeFleet(ctx, p); err != nil {
			m.finishSetupFailure(p, err)
			return err
		}
	}

	m.bus.Publish(events.NewMatchStartedEvent(
		m.id, m.width, m.height, m.catalog.IDs(),
		m.slots[0].Name, m.slots[1].Name, m.current,
	))
	if err := m.machine.TransitionTo(states.PhaseInProgress, "fleets placed"); err != nil {
		return err
	}

	m.logger.Info().
		Str("player1", m.slots[0].Name).
		Str("player2", m.slots[1].Name).
		Int("starting_player", int(m.current)).
		Msg("Match started")
	return nil
}

// placeFleet initializes one player's collaborators and applies its
// placements
func (m *Match) placeFleet(ctx context.Context, p core.PlayerID) error {
	slot := m.slot(p)

	err := m.guard.do(ctx, func() error {
		slot.Setup.Initialize(m.width, m.height, m.catalog)
		slot.Strategy.Initialize(m.width, m.height, m.catalog)
		return nil
	})
	if err != nil {
		return fmt.Errorf("initializing %s: %w", p, err)
	}

	var placements []core.Placement
	err = m.guard.do(ctx, func() error {
		var produceErr error
		placements, produceErr = slot.Setup.ProducePlacements()
		return produceErr
	})
	if err != nil {
		return fmt.Errorf("producing placements for %s: %w", p, err)
	}

	if err := m.validator.Apply(m.board(p), placements); err != nil {
		return fmt.Errorf("setup for %s: %w", p, err)
	}

	m.bus.Publish(events.NewFleetPlacedEvent(m.id, p, m.board(p).PlacedShips()))
	return nil
}

// PlayTurn resolves exactly one attack by the current player. On success it
// returns the result and advances the turn; when the attack ends the match
// (win or draw) the result is returned and the match is finished. Player
// faults forfeit the match to the opponent and are returned as errors.
func (m *Match) PlayTurn(ctx context.Context) (*core.AttackResult, error) {
	switch phase := m.machine.CurrentPhase(); {
	case phase == states.PhaseSetup:
		return nil, ErrMatchNotStarted
	case phase.IsTerminal():
		return nil, ErrMatchFinished
	}

	if err := ctx.Err(); err != nil {
		m.finishAbort(err.Error())
		return nil, err
	}

	attacker := m.current
	defender := attacker.Opponent()
	slot := m.slot(attacker)

	var target core.Coordinate
	err := m.guard.do(ctx, func() error {
		var attackErr error
		target, attackErr = slot.Strategy.NextAttack()
		return attackErr
	})
	if err != nil {
		return nil, m.playerFault(attacker, fmt.Errorf("next attack: %w", err))
	}

	// Validate before resolving so a bad coordinate never reaches the board.
	board := m.board(defender)
	if !target.IsValid(m.width, m.height) {
		return nil, m.playerFault(attacker, &InvalidMoveError{
			Player: attacker, Coord: target, Reason: core.ErrOutOfBounds,
		})
	}
	if cell, err := board.CellAt(target); err == nil && cell.IsAttacked() {
		return nil, m.playerFault(attacker, &InvalidMoveError{
			Player: attacker, Coord: target, Reason: core.ErrAlreadyAttacked,
		})
	}

	result, err := m.resolver.Resolve(board, target)
	if err != nil {
		// Pre-validation makes this unreachable; fail the attacker anyway
		// rather than crash the batch.
		return nil, m.playerFault(attacker, &InvalidMoveError{
			Player: attacker, Coord: target, Reason: err,
		})
	}

	m.moves++
	m.bus.Publish(events.NewAttackResolvedEvent(m.id, m.moves, attacker, result))
	m.logger.Debug().
		Int("move", m.moves).
		Int("attacker", int(attacker)).
		Str("target", target.String()).
		Str("outcome", result.Outcome.String()).
		Msg("Turn played")

	hit := result.Outcome.IsHit()
	sunk := result.Outcome == core.OutcomeSunk

	err = m.guard.do(ctx, func() error {
		slot.Strategy.RegisterAttackResult(target, hit, sunk)
		return nil
	})
	if err != nil {
		return &result, m.playerFault(attacker, fmt.Errorf("registering result: %w", err))
	}

	if observer, ok := m.slot(defender).Strategy.(IncomingAttackObserver); ok {
		err = m.guard.do(ctx, func() error {
			observer.ObserveIncomingAttack(target, hit, sunk)
			return nil
		})
		if err != nil {
			return &result, m.playerFault(defender, fmt.Errorf("observing attack: %w", err))
		}
	}

	switch {
	case board.IsDefeated():
		m.finishWin(attacker, "all ships sunk")
	case m.moves >= m.maxMoves:
		m.finishDraw("move limit reached")
	default:
		m.current = defender
	}
	return &result, nil
}

// Run drives the match to completion and returns its outcome. Every failure
// mode ends as an outcome; Run never panics on player misbehavior.
func (m *Match) Run(ctx context.Context) Outcome {
	if m.machine.CurrentPhase() == states.PhaseSetup {
		if err := m.Start(ctx); err != nil {
			if out, ok := m.Outcome(); ok {
				return out
			}
			m.finishAbort(err.Error())
			out, _ := m.Outcome()
			return out
		}
	}

	for m.machine.CurrentPhase() == states.PhaseInProgress {
		if _, err := m.PlayTurn(ctx); err != nil {
			break
		}
	}

	out, ok := m.Outcome()
	if !ok {
		m.finishAbort("match stopped before completion")
		out, _ = m.Outcome()
	}
	return out
}

// playerFault ends the match against the offending player. Context
// cancellation is not the player's fault and aborts instead.
func (m *Match) playerFault(p core.PlayerID, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		m.finishAbort("context cancelled")
		return err
	}

	m.logger.Warn().
		Int("player", int(p)).
		Err(err).
		Msg("Player fault ends the match")
	m.finish(Outcome{
		Winner: p.Opponent(),
		Fault:  p,
		Reason: err.Error(),
	})
	return err
}

func (m *Match) finishSetupFailure(p core.PlayerID, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		m.finishAbort("context cancelled")
		return
	}
	m.finish(Outcome{
		Aborted: true,
		Fault:   p,
		Reason:  err.Error(),
	})
}

func (m *Match) finishWin(winner core.PlayerID, reason string) {
	m.finish(Outcome{Winner: winner, Reason: reason})
}

func (m *Match) finishDraw(reason string) {
	m.finish(Outcome{Draw: true, Reason: reason})
}

func (m *Match) finishAbort(reason string) {
	m.finish(Outcome{Aborted: true, Reason: reason})
}

// finish records the outcome once and moves the machine to its terminal
// phase
func (m *Match) finish(out Outcome) {
	if m.outcome != nil {
		return
	}
	out.Moves = m.moves
	if !m.started.IsZero() {
		out.Duration = time.Since(m.started)
	}
	m.outcome = &out

	if err := m.machine.TransitionTo(states.PhaseFinished, out.Reason); err != nil {
		m.logger.Error().Err(err).Msg("Failed to finish match state machine")
	}
	m.bus.Publish(events.NewMatchEndedEvent(
		m.id, out.Winner, out.Draw, out.Aborted, out.Reason, out.Moves, out.Duration,
	))
	m.logger.Info().
		Int("winner", int(out.Winner)).
		Bool("draw", out.Draw).
		Bool("aborted", out.Aborted).
		Int("moves", out.Moves).
		Str("reason", out.Reason).
		Msg("Match finished")
}

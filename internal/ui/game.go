// Package ui drives a single match inside an ebiten window: both boards side
// by side, advancing one attack every few ticks, with pause/step/speed
// controls. Batch runs use cmd/battle instead; this viewer exists to watch
// one battle unfold.
package ui

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"battlesim/internal/battle"
	"battlesim/internal/battle/core"
	"battlesim/internal/battle/events"
	"battlesim/internal/battle/states"
	"battlesim/internal/config"
	"battlesim/internal/ui/input"
	"battlesim/internal/ui/renderer"
)

// UI configuration functions
func ScreenWidth() int {
	return config.Get().Viewer.Window.Width
}

func ScreenHeight() int {
	return config.Get().Viewer.Window.Height
}

func TileSize() int {
	return config.Get().Viewer.TileSize
}

func TurnInterval() int {
	return config.Get().Viewer.TurnInterval
}

const (
	boardMargin = 20
	labelHeight = 20

	minTurnInterval = 1
	maxTurnInterval = 120
)

// ViewerGame holds one match and the UI state needed to play it back.
type ViewerGame struct {
	match         *battle.Match
	boardRenderer *renderer.BoardRenderer
	defaultFont   font.Face
	inputHandler  *input.Handler

	turnTimer    int
	turnInterval int

	// Latest shot per defender, for the highlight outline.
	lastShot map[core.PlayerID]core.Coordinate
}

// NewViewerGame creates a new Ebitengine game instance around a match that
// has not started yet.
func NewViewerGame(match *battle.Match) (*ViewerGame, error) {
	if match == nil {
		return nil, errors.New("match is nil")
	}

	g := &ViewerGame{
		match:        match,
		defaultFont:  basicfont.Face7x13,
		inputHandler: input.NewHandler(),
		turnInterval: TurnInterval(),
		lastShot:     make(map[core.PlayerID]core.Coordinate),
	}
	g.boardRenderer = renderer.NewBoardRenderer(TileSize(), g.defaultFont)

	match.EventBus().SubscribeFunc(events.TypeAttackResolved, func(e events.Event) {
		if attack, ok := e.(*events.AttackResolvedEvent); ok {
			g.lastShot[attack.Defender] = attack.Result.Coord
		}
	})

	return g, nil
}

// Update proceeds the match state.
func (g *ViewerGame) Update() error {
	g.inputHandler.Update()

	if g.inputHandler.QuitRequested() {
		return ebiten.Termination
	}

	if delta := g.inputHandler.ConsumeIntervalDelta(); delta != 0 {
		g.turnInterval += delta
		if g.turnInterval < minTurnInterval {
			g.turnInterval = minTurnInterval
		}
		if g.turnInterval > maxTurnInterval {
			g.turnInterval = maxTurnInterval
		}
	}

	step := g.inputHandler.ConsumeStep()
	if g.inputHandler.Paused() && !step {
		return nil
	}

	switch g.match.Phase() {
	case states.PhaseFinished:
		return nil

	case states.PhaseSetup:
		// Placement runs on the first tick so the window opens immediately.
		if err := g.match.Start(context.Background()); err != nil {
			// Setup failures finish the match with an outcome; keep the
			// window open to show it.
			if g.match.Phase() == states.PhaseFinished {
				return nil
			}
			return err
		}
		return nil
	}

	g.turnTimer++
	if !step && g.turnTimer < g.turnInterval {
		return nil
	}
	g.turnTimer = 0

	if _, err := g.match.PlayTurn(context.Background()); err != nil {
		if errors.Is(err, battle.ErrMatchFinished) || g.match.Phase() == states.PhaseFinished {
			return nil
		}
		return err
	}
	return nil
}

// Draw renders both boards and the status lines.
func (g *ViewerGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 50, G: 50, B: 50, A: 255}) // Dark gray background

	b1 := g.match.Board(core.Player1)
	b2 := g.match.Board(core.Player2)

	w1, h1 := g.boardRenderer.PixelSize(b1)
	_, h2 := g.boardRenderer.PixelSize(b2)

	x1, y := boardMargin, boardMargin+labelHeight
	x2 := boardMargin*2 + w1

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Player 1: %s", g.match.PlayerName(core.Player1)), x1, boardMargin)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Player 2: %s", g.match.PlayerName(core.Player2)), x2, boardMargin)

	g.boardRenderer.Draw(screen, b1, x1, y)
	g.boardRenderer.Draw(screen, b2, x2, y)

	if shot, ok := g.lastShot[core.Player1]; ok {
		g.boardRenderer.DrawHighlight(screen, x1, y, shot)
	}
	if shot, ok := g.lastShot[core.Player2]; ok {
		g.boardRenderer.DrawHighlight(screen, x2, y, shot)
	}

	statusY := y + maxInt(h1, h2) + 10
	ebitenutil.DebugPrintAt(screen, g.statusLine(b1, b2, x1, x2, y), boardMargin, statusY)
	ebitenutil.DebugPrintAt(screen, "[space] pause  [n] step  [up/down] speed  [q] quit", boardMargin, statusY+labelHeight)
}

func (g *ViewerGame) statusLine(b1, b2 *core.Board, x1, x2, y int) string {
	var status string
	switch {
	case g.match.Phase() == states.PhaseSetup:
		status = "placing fleets"
	case g.match.Phase() == states.PhaseFinished:
		if outcome, ok := g.match.Outcome(); ok {
			status = outcome.String()
		} else {
			status = "finished"
		}
	default:
		status = fmt.Sprintf("Move %d, %s to fire (interval %d)",
			g.match.Moves()+1, g.match.CurrentPlayer(), g.turnInterval)
	}

	if g.inputHandler.Paused() {
		status = "PAUSED | " + status
	}

	if tx, ty, ok := input.CursorTile(x1, y, TileSize(), b1.Width(), b1.Height()); ok {
		status += fmt.Sprintf(" | cursor (%d,%d)", tx, ty)
	} else if tx, ty, ok := input.CursorTile(x2, y, TileSize(), b2.Width(), b2.Height()); ok {
		status += fmt.Sprintf(" | cursor (%d,%d)", tx, ty)
	}

	return status
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Layout defines the Ebitengine screen size.
func (g *ViewerGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return ScreenWidth(), ScreenHeight()
}

package bots

import (
	"errors"
	"math/rand"

	"battlesim/internal/battle"
	"battlesim/internal/battle/core"
)

var (
	_ battle.Strategy = (*RandomGunner)(nil)
	_ battle.Strategy = (*SweepGunner)(nil)
)

// ErrOutOfTargets is returned when a gunner has attacked every cell.
var ErrOutOfTargets = errors.New("no unattacked cells remain")

// RandomGunner fires at every cell exactly once, in an order shuffled at
// Initialize time. Drawing from a deck means it never repeats a coordinate.
type RandomGunner struct {
	rng  *rand.Rand
	deck []core.Coordinate
	next int
}

// NewRandomGunner creates a gunner driven by the given RNG.
func NewRandomGunner(rng *rand.Rand) *RandomGunner {
	return &RandomGunner{rng: rng}
}

// Initialize builds and shuffles the target deck.
func (g *RandomGunner) Initialize(width, height int, _ *core.Catalog) {
	g.deck = make([]core.Coordinate, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.deck = append(g.deck, core.NewCoordinate(x, y))
		}
	}
	g.rng.Shuffle(len(g.deck), func(i, j int) {
		g.deck[i], g.deck[j] = g.deck[j], g.deck[i]
	})
	g.next = 0
}

// NextAttack draws the next coordinate from the deck.
func (g *RandomGunner) NextAttack() (core.Coordinate, error) {
	if g.next >= len(g.deck) {
		return core.Coordinate{}, ErrOutOfTargets
	}
	c := g.deck[g.next]
	g.next++
	return c, nil
}

// RegisterAttackResult is a no-op; the deck already guarantees no repeats.
func (g *RandomGunner) RegisterAttackResult(_ core.Coordinate, _, _ bool) {}

// SweepGunner scans the board row by row, top-left to bottom-right. Useful as
// a deterministic baseline opponent.
type SweepGunner struct {
	width  int
	height int
	next   int
}

// NewSweepGunner creates a row-major scanning gunner.
func NewSweepGunner() *SweepGunner {
	return &SweepGunner{}
}

// Initialize records the board dimensions and restarts the scan.
func (g *SweepGunner) Initialize(width, height int, _ *core.Catalog) {
	g.width = width
	g.height = height
	g.next = 0
}

// NextAttack returns the next cell in row-major order.
func (g *SweepGunner) NextAttack() (core.Coordinate, error) {
	if g.width <= 0 || g.next >= g.width*g.height {
		return core.Coordinate{}, ErrOutOfTargets
	}
	c := core.FromIndex(g.next, g.width)
	g.next++
	return c, nil
}

// RegisterAttackResult is a no-op; the scan order never repeats a cell.
func (g *SweepGunner) RegisterAttackResult(_ core.Coordinate, _, _ bool) {}

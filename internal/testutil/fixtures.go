package testutil

import (
	"fmt"

	"battlesim/internal/battle/core"
)

// TinyCatalog returns a two-ship catalog (a 2-cell destroyer and a 3-cell
// cruiser) for fast, fully scripted matches.
func TinyCatalog() *core.Catalog {
	catalog, err := core.NewCustomCatalog([]core.ShipType{
		{ID: 1, Name: "Destroyer", Shape: core.LineShape(2)},
		{ID: 2, Name: "Cruiser", Shape: core.LineShape(3)},
	})
	if err != nil {
		panic(err)
	}
	return catalog
}

// TinyFleet returns a valid placement set for TinyCatalog on any board of at
// least 3x3: the destroyer on row 0 and the cruiser on row 2.
func TinyFleet() []core.Placement {
	return []core.Placement{
		{Ship: 1, Anchor: core.NewCoordinate(0, 0)},
		{Ship: 2, Anchor: core.NewCoordinate(0, 2)},
	}
}

// TinyFleetCells returns the cells TinyFleet occupies, in sinking-friendly
// order (whole destroyer, then whole cruiser).
func TinyFleetCells() []core.Coordinate {
	return []core.Coordinate{
		{X: 0, Y: 0}, {X: 1, Y: 0},
		{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2},
	}
}

// StandardFleet returns a known-good placement of the standard seven-ship
// catalog on a 10x10 board.
func StandardFleet() []core.Placement {
	return []core.Placement{
		{Ship: 1, Anchor: core.NewCoordinate(0, 0)},
		{Ship: 2, Anchor: core.NewCoordinate(3, 0)},
		{Ship: 3, Anchor: core.NewCoordinate(0, 2)},
		{Ship: 4, Anchor: core.NewCoordinate(5, 2)},
		{Ship: 5, Anchor: core.NewCoordinate(0, 4)},
		{Ship: 6, Anchor: core.NewCoordinate(3, 4)},
		{Ship: 7, Anchor: core.NewCoordinate(5, 7)},
	}
}

// ShotResult records one result callback delivered to a gunner
type ShotResult struct {
	Coord core.Coordinate
	Hit   bool
	Sunk  bool
}

// ScriptedSetup is a BoardSetup that returns a fixed placement list (or a
// fixed error) and records how it was initialized.
type ScriptedSetup struct {
	Placements []core.Placement
	Err        error

	Width     int
	Height    int
	Catalog   *core.Catalog
	InitCalls int
}

func (s *ScriptedSetup) Initialize(width, height int, catalog *core.Catalog) {
	s.Width = width
	s.Height = height
	s.Catalog = catalog
	s.InitCalls++
}

func (s *ScriptedSetup) ProducePlacements() ([]core.Placement, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Placements, nil
}

// ScriptedGunner is a Strategy that fires a fixed shot list in order and
// records every result callback.
type ScriptedGunner struct {
	Shots []core.Coordinate

	Results   []ShotResult
	InitCalls int
	next      int
}

func (g *ScriptedGunner) Initialize(width, height int, catalog *core.Catalog) {
	g.InitCalls++
}

func (g *ScriptedGunner) NextAttack() (core.Coordinate, error) {
	if g.next >= len(g.Shots) {
		return core.Coordinate{}, fmt.Errorf("scripted gunner is out of shots after %d", g.next)
	}
	shot := g.Shots[g.next]
	g.next++
	return shot, nil
}

func (g *ScriptedGunner) RegisterAttackResult(coord core.Coordinate, hit, sunk bool) {
	g.Results = append(g.Results, ShotResult{Coord: coord, Hit: hit, Sunk: sunk})
}

// ObservingGunner is a ScriptedGunner that also watches attacks landing on
// its own board.
type ObservingGunner struct {
	ScriptedGunner
	Observed []ShotResult
}

func (g *ObservingGunner) ObserveIncomingAttack(coord core.Coordinate, hit, sunk bool) {
	g.Observed = append(g.Observed, ShotResult{Coord: coord, Hit: hit, Sunk: sunk})
}

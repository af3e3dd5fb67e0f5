// Package bots provides reference collaborators for the battle engine: fleet
// setups and gunners built only on the public engine interfaces. They are
// consumers of the engine, never privileged, and the engine re-validates
// everything they produce.
package bots

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"battlesim/internal/battle"
	"battlesim/internal/battle/core"
)

var _ battle.BoardSetup = (*RandomFleet)(nil)

// ErrNotInitialized is returned when a collaborator is asked to act before
// Initialize was called.
var ErrNotInitialized = errors.New("collaborator not initialized")

// maxLayoutAttempts bounds how many times RandomFleet restarts a layout from
// scratch before giving up.
const maxLayoutAttempts = 100

// RandomFleet produces a legal placement for every catalog ship by trying
// shuffled anchors and rotations, largest ships first. It keeps one cell of
// water between ships, which is stricter than the engine requires. When a
// partial layout leaves no room for the next ship, the whole layout is
// discarded and the search restarts.
type RandomFleet struct {
	rng *rand.Rand

	width   int
	height  int
	catalog *core.Catalog
}

// NewRandomFleet creates a fleet setup driven by the given RNG.
func NewRandomFleet(rng *rand.Rand) *RandomFleet {
	return &RandomFleet{rng: rng}
}

// Initialize records the board dimensions and ship catalog.
func (f *RandomFleet) Initialize(width, height int, catalog *core.Catalog) {
	f.width = width
	f.height = height
	f.catalog = catalog
}

// ProducePlacements searches for a full-fleet layout.
func (f *RandomFleet) ProducePlacements() ([]core.Placement, error) {
	if f.catalog == nil {
		return nil, ErrNotInitialized
	}
	if f.catalog.TotalCells() > f.width*f.height {
		return nil, errors.New("not enough space to place all ships")
	}

	ids := f.idsLargestFirst()
	anchors := f.allAnchors()

	for attempt := 0; attempt < maxLayoutAttempts; attempt++ {
		placements, ok := f.tryLayout(ids, anchors)
		if ok {
			return placements, nil
		}
	}
	return nil, fmt.Errorf("unable to place all ships after %d layout attempts", maxLayoutAttempts)
}

// tryLayout attempts one full layout. Returns false when some ship cannot be
// placed against the cells already taken.
func (f *RandomFleet) tryLayout(ids []core.ShipID, anchors []core.Coordinate) ([]core.Placement, bool) {
	occupied := make(map[core.Coordinate]bool, f.catalog.TotalCells())
	placements := make([]core.Placement, 0, len(ids))

	for _, id := range ids {
		placement, ok := f.placeShip(id, anchors, occupied)
		if !ok {
			return nil, false
		}
		placements = append(placements, placement)
	}
	return placements, true
}

func (f *RandomFleet) placeShip(id core.ShipID, anchors []core.Coordinate, occupied map[core.Coordinate]bool) (core.Placement, bool) {
	f.rng.Shuffle(len(anchors), func(i, j int) {
		anchors[i], anchors[j] = anchors[j], anchors[i]
	})

	for _, anchor := range anchors {
		for _, rot := range core.Rotations {
			placement := core.Placement{Ship: id, Anchor: anchor, Rot: rot}
			cells, err := placement.Footprint(f.catalog)
			if err != nil {
				return core.Placement{}, false
			}
			if !f.fits(cells, occupied) {
				continue
			}
			for _, c := range cells {
				occupied[c] = true
			}
			return placement, true
		}
	}
	return core.Placement{}, false
}

// fits checks bounds, collisions, and the one-cell buffer around other ships.
func (f *RandomFleet) fits(cells []core.Coordinate, occupied map[core.Coordinate]bool) bool {
	member := make(map[core.Coordinate]bool, len(cells))
	for _, c := range cells {
		member[c] = true
	}

	for _, c := range cells {
		if !c.IsValid(f.width, f.height) {
			return false
		}
		if occupied[c] {
			return false
		}
		for _, n := range c.Neighbors() {
			if occupied[n] && !member[n] {
				return false
			}
		}
	}
	return true
}

// idsLargestFirst orders catalog ids by descending size, ties by id.
func (f *RandomFleet) idsLargestFirst() []core.ShipID {
	ids := f.catalog.IDs()
	sort.SliceStable(ids, func(i, j int) bool {
		si, _ := f.catalog.SizeOf(ids[i])
		sj, _ := f.catalog.SizeOf(ids[j])
		return si > sj
	})
	return ids
}

func (f *RandomFleet) allAnchors() []core.Coordinate {
	anchors := make([]core.Coordinate, 0, f.width*f.height)
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			anchors = append(anchors, core.NewCoordinate(x, y))
		}
	}
	return anchors
}

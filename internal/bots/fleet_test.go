package bots_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battlesim/internal/battle/core"
	"battlesim/internal/bots"
	"battlesim/internal/testutil"
)

// applyPlacements runs a produced layout through the engine's own legality
// checks.
func applyPlacements(t *testing.T, catalog *core.Catalog, width, height int, placements []core.Placement) *core.Board {
	t.Helper()
	board, err := core.NewBoard(catalog, width, height)
	require.NoError(t, err)
	for _, p := range placements {
		require.NoError(t, board.Place(p), "engine rejected %s", p)
	}
	return board
}

func TestRandomFleet_ProducesLegalFullFleet(t *testing.T) {
	catalog := core.NewCatalog()
	fleet := bots.NewRandomFleet(testutil.NewTestRNG(42))
	fleet.Initialize(10, 10, catalog)

	placements, err := fleet.ProducePlacements()
	require.NoError(t, err)
	require.Len(t, placements, catalog.Len())

	board := applyPlacements(t, catalog, 10, 10, placements)
	assert.True(t, board.HasFullFleet())
	for _, id := range catalog.IDs() {
		size, err := catalog.SizeOf(id)
		require.NoError(t, err)
		assert.Equal(t, size, board.RemainingCells(id), "ship %d", id)
	}
}

func TestRandomFleet_KeepsWaterBetweenShips(t *testing.T) {
	catalog := core.NewCatalog()

	for _, seed := range []int64{1, 7, 99} {
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			fleet := bots.NewRandomFleet(testutil.NewTestRNG(seed))
			fleet.Initialize(10, 10, catalog)

			placements, err := fleet.ProducePlacements()
			require.NoError(t, err)
			board := applyPlacements(t, catalog, 10, 10, placements)

			for y := 0; y < 10; y++ {
				for x := 0; x < 10; x++ {
					c := core.NewCoordinate(x, y)
					id := board.ShipAt(c)
					if id == core.NoShip {
						continue
					}
					for _, n := range c.Neighbors() {
						other := board.ShipAt(n)
						if other != core.NoShip && other != id {
							t.Fatalf("ships %d and %d touch at %s / %s", id, other, c, n)
						}
					}
				}
			}
		})
	}
}

func TestRandomFleet_DeterministicForSeed(t *testing.T) {
	catalog := core.NewCatalog()

	produce := func() []core.Placement {
		fleet := bots.NewRandomFleet(testutil.NewTestRNG(7))
		fleet.Initialize(10, 10, catalog)
		placements, err := fleet.ProducePlacements()
		require.NoError(t, err)
		return placements
	}

	assert.Equal(t, produce(), produce())
}

func TestRandomFleet_TightBoardStillPlaces(t *testing.T) {
	// 4x3 with the two-ship catalog leaves little room, so the layout search
	// has to restart a few times before it finds a buffered arrangement.
	fleet := bots.NewRandomFleet(testutil.NewTestRNG(3))
	fleet.Initialize(4, 3, testutil.TinyCatalog())

	placements, err := fleet.ProducePlacements()
	require.NoError(t, err)

	board := applyPlacements(t, testutil.TinyCatalog(), 4, 3, placements)
	assert.True(t, board.HasFullFleet())
}

func TestRandomFleet_Errors(t *testing.T) {
	t.Run("not initialized", func(t *testing.T) {
		fleet := bots.NewRandomFleet(testutil.NewTestRNG(1))
		_, err := fleet.ProducePlacements()
		assert.ErrorIs(t, err, bots.ErrNotInitialized)
	})

	t.Run("board too small for fleet", func(t *testing.T) {
		fleet := bots.NewRandomFleet(testutil.NewTestRNG(1))
		fleet.Initialize(2, 2, testutil.TinyCatalog())
		_, err := fleet.ProducePlacements()
		assert.ErrorContains(t, err, "not enough space")
	})

	t.Run("no buffered layout exists", func(t *testing.T) {
		// Five ship cells on a 1x5 strip fit exactly, but never with a gap.
		fleet := bots.NewRandomFleet(testutil.NewTestRNG(1))
		fleet.Initialize(1, 5, testutil.TinyCatalog())
		_, err := fleet.ProducePlacements()
		assert.ErrorContains(t, err, "unable to place all ships")
	})
}

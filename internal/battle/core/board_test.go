package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// standardFleet is a known-good placement of all seven standard ships on a
// 10x10 board, used as a fixture across board tests.
func standardFleet() []Placement {
	return []Placement{
		{Ship: 1, Anchor: Coordinate{0, 0}},
		{Ship: 2, Anchor: Coordinate{3, 0}},
		{Ship: 3, Anchor: Coordinate{0, 2}},
		{Ship: 4, Anchor: Coordinate{5, 2}},
		{Ship: 5, Anchor: Coordinate{0, 4}},
		{Ship: 6, Anchor: Coordinate{3, 4}},
		{Ship: 7, Anchor: Coordinate{5, 7}},
	}
}

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	board, err := NewBoard(NewCatalog(), 10, 10)
	require.NoError(t, err)
	return board
}

func placeFleet(t *testing.T, board *Board, fleet []Placement) {
	t.Helper()
	for _, p := range fleet {
		require.NoError(t, board.Place(p), "placing %s", p)
	}
}

// shipCells collects every coordinate covered by a placed fleet.
func shipCells(t *testing.T, fleet []Placement, catalog *Catalog) []Coordinate {
	t.Helper()
	var cells []Coordinate
	for _, p := range fleet {
		fp, err := p.Footprint(catalog)
		require.NoError(t, err)
		cells = append(cells, fp...)
	}
	return cells
}

func TestNewBoard(t *testing.T) {
	board := newTestBoard(t)

	assert.Equal(t, 10, board.Width())
	assert.Equal(t, 10, board.Height())
	assert.False(t, board.IsDefeated())
	assert.False(t, board.HasFullFleet())
	assert.Empty(t, board.PlacedShips())

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			cell, err := board.CellAt(Coordinate{x, y})
			require.NoError(t, err)
			assert.Equal(t, CellEmpty, cell)
		}
	}
}

func TestNewBoard_Invalid(t *testing.T) {
	_, err := NewBoard(nil, 10, 10)
	assert.ErrorIs(t, err, ErrBadCatalog)

	catalog := NewCatalog()
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 10}, {10, -1}} {
		_, err := NewBoard(catalog, dims[0], dims[1])
		assert.ErrorIs(t, err, ErrBadBoardSize, "%dx%d", dims[0], dims[1])
	}
}

func TestBoard_PlaceShip(t *testing.T) {
	board := newTestBoard(t)

	require.NoError(t, board.PlaceShip(2, Coordinate{3, 4}, Rot0))

	for _, c := range []Coordinate{{3, 4}, {4, 4}, {5, 4}} {
		cell, err := board.CellAt(c)
		require.NoError(t, err)
		assert.Equal(t, Cell(2), cell)
		assert.Equal(t, ShipID(2), board.ShipAt(c))
	}
	assert.Equal(t, ShipID(0), board.ShipAt(Coordinate{6, 4}))
	assert.Equal(t, []ShipID{2}, board.PlacedShips())
	assert.Equal(t, 3, board.RemainingCells(2))
}

func TestBoard_PlaceShipErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   []Placement
		attempt Placement
		wantErr error
	}{
		{
			name:    "UnknownShip",
			attempt: Placement{Ship: 8, Anchor: Coordinate{0, 0}},
			wantErr: ErrUnknownShip,
		},
		{
			name:    "AnchorOutOfBounds",
			attempt: Placement{Ship: 1, Anchor: Coordinate{-1, 0}},
			wantErr: ErrOutOfBounds,
		},
		{
			name:    "TailOutOfBounds",
			attempt: Placement{Ship: 2, Anchor: Coordinate{8, 0}},
			wantErr: ErrOutOfBounds,
		},
		{
			name:    "RotatedOutOfBounds",
			attempt: Placement{Ship: 2, Anchor: Coordinate{0, 0}, Rot: Rot180},
			wantErr: ErrOutOfBounds,
		},
		{
			name:    "Overlap",
			setup:   []Placement{{Ship: 1, Anchor: Coordinate{4, 4}}},
			attempt: Placement{Ship: 2, Anchor: Coordinate{3, 4}},
			wantErr: ErrOverlap,
		},
		{
			name:    "AlreadyPlaced",
			setup:   []Placement{{Ship: 1, Anchor: Coordinate{0, 0}}},
			attempt: Placement{Ship: 1, Anchor: Coordinate{0, 5}},
			wantErr: ErrShipAlreadyPlaced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := newTestBoard(t)
			placeFleet(t, board, tt.setup)
			before := board.Snapshot()

			err := board.Place(tt.attempt)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, board.Snapshot(), "failed placement must not change the board")
		})
	}
}

// A full standard fleet covers exactly the catalog's total cell count, with
// every other cell still water.
func TestBoard_FullFleetCellCount(t *testing.T) {
	board := newTestBoard(t)
	placeFleet(t, board, standardFleet())

	require.True(t, board.HasFullFleet())

	occupied := 0
	for _, row := range board.Snapshot() {
		for _, v := range row {
			if v != int(CellEmpty) {
				occupied++
				assert.True(t, Cell(v).IsShip(), "pristine boards hold only water and intact ships")
			}
		}
	}
	assert.Equal(t, board.Catalog().TotalCells(), occupied)
	assert.Equal(t, 27, occupied)
}

func TestBoard_AttackMiss(t *testing.T) {
	board := newTestBoard(t)
	placeFleet(t, board, standardFleet())

	result, err := board.Attack(Coordinate{9, 0})
	require.NoError(t, err)
	assert.Equal(t, OutcomeMiss, result.Outcome)
	assert.Equal(t, NoShip, result.Ship)
	assert.False(t, result.Outcome.IsHit())

	cell, err := board.CellAt(Coordinate{9, 0})
	require.NoError(t, err)
	assert.Equal(t, CellMiss, cell)
}

func TestBoard_AttackHitThenSink(t *testing.T) {
	board := newTestBoard(t)
	require.NoError(t, board.PlaceShip(2, Coordinate{3, 0}, Rot0))

	result, err := board.Attack(Coordinate{4, 0})
	require.NoError(t, err)
	assert.Equal(t, OutcomeHit, result.Outcome)
	assert.Equal(t, ShipID(2), result.Ship)
	assert.Equal(t, 2, board.RemainingCells(2))

	cell, err := board.CellAt(Coordinate{4, 0})
	require.NoError(t, err)
	assert.Equal(t, CellHit, cell)

	_, err = board.Attack(Coordinate{3, 0})
	require.NoError(t, err)

	result, err = board.Attack(Coordinate{5, 0})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSunk, result.Outcome)
	assert.Equal(t, ShipID(2), result.Ship)
	assert.Equal(t, 0, board.RemainingCells(2))

	// Sinking promotes every cell of the ship, including earlier hits.
	for _, c := range []Coordinate{{3, 0}, {4, 0}, {5, 0}} {
		cell, err := board.CellAt(c)
		require.NoError(t, err)
		assert.Equal(t, CellSunk, cell)
		assert.Equal(t, ShipID(2), board.ShipAt(c))
	}
}

func TestBoard_AttackErrors(t *testing.T) {
	board := newTestBoard(t)
	require.NoError(t, board.PlaceShip(1, Coordinate{0, 0}, Rot0))

	_, err := board.Attack(Coordinate{10, 0})
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = board.Attack(Coordinate{0, -1})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	// Repeat attacks on every attacked state are rejected.
	_, err = board.Attack(Coordinate{5, 5})
	require.NoError(t, err)
	_, err = board.Attack(Coordinate{5, 5})
	assert.ErrorIs(t, err, ErrAlreadyAttacked)

	_, err = board.Attack(Coordinate{0, 0})
	require.NoError(t, err)
	_, err = board.Attack(Coordinate{0, 0})
	assert.ErrorIs(t, err, ErrAlreadyAttacked)

	_, err = board.Attack(Coordinate{1, 0})
	require.NoError(t, err)
	for _, c := range []Coordinate{{0, 0}, {1, 0}} {
		_, err = board.Attack(c)
		assert.ErrorIs(t, err, ErrAlreadyAttacked, "sunk cell %s", c)
	}
}

// Ships sink independently of the order cells are attacked in, across ships
// and within a ship.
func TestBoard_SinkInAnyOrder(t *testing.T) {
	board := newTestBoard(t)
	require.NoError(t, board.PlaceShip(1, Coordinate{0, 0}, Rot0))
	require.NoError(t, board.PlaceShip(2, Coordinate{0, 5}, Rot0))

	order := []struct {
		coord    Coordinate
		outcome  Outcome
		ship     ShipID
		defeated bool
	}{
		{Coordinate{1, 5}, OutcomeHit, 2, false},
		{Coordinate{1, 0}, OutcomeHit, 1, false},
		{Coordinate{2, 5}, OutcomeHit, 2, false},
		{Coordinate{0, 0}, OutcomeSunk, 1, false},
		{Coordinate{0, 5}, OutcomeSunk, 2, true},
	}

	for _, step := range order {
		result, err := board.Attack(step.coord)
		require.NoError(t, err, "attacking %s", step.coord)
		assert.Equal(t, step.outcome, result.Outcome, "attacking %s", step.coord)
		assert.Equal(t, step.ship, result.Ship, "attacking %s", step.coord)
		assert.Equal(t, step.defeated, board.IsDefeated(), "after attacking %s", step.coord)
	}
}

// The board is defeated exactly when the last ship cell is attacked, never
// earlier.
func TestBoard_DefeatRequiresEveryCell(t *testing.T) {
	board := newTestBoard(t)
	fleet := standardFleet()
	placeFleet(t, board, fleet)

	cells := shipCells(t, fleet, board.Catalog())
	require.Len(t, cells, 27)

	for i, c := range cells {
		assert.False(t, board.IsDefeated(), "defeated with %d cells left", len(cells)-i)
		_, err := board.Attack(c)
		require.NoError(t, err)
	}
	assert.True(t, board.IsDefeated())
	assert.Equal(t, 0, board.ShipsAfloat())
}

func TestBoard_IsDefeatedEmptyBoard(t *testing.T) {
	board := newTestBoard(t)
	assert.False(t, board.IsDefeated(), "a board with no ships cannot be defeated")
}

func TestBoard_ShipsAfloat(t *testing.T) {
	board := newTestBoard(t)
	require.NoError(t, board.PlaceShip(1, Coordinate{0, 0}, Rot0))
	require.NoError(t, board.PlaceShip(2, Coordinate{0, 5}, Rot0))
	assert.Equal(t, 2, board.ShipsAfloat())

	for _, c := range []Coordinate{{0, 0}, {1, 0}} {
		_, err := board.Attack(c)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, board.ShipsAfloat())
	assert.False(t, board.IsDefeated())
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTripPristine(t *testing.T) {
	board := newTestBoard(t)
	placeFleet(t, board, standardFleet())

	grid := board.Snapshot()
	parsed, err := ParseSnapshot(board.Catalog(), grid)
	require.NoError(t, err)

	assert.Equal(t, grid, parsed.Snapshot())
	assert.Equal(t, board.Width(), parsed.Width())
	assert.Equal(t, board.Height(), parsed.Height())
	assert.True(t, parsed.HasFullFleet())
}

func TestSnapshot_RoundTripDamaged(t *testing.T) {
	board := newTestBoard(t)
	placeFleet(t, board, standardFleet())

	// A miss, a partial hit, and a whole sunk destroyer.
	for _, c := range []Coordinate{{9, 9}, {3, 0}, {0, 0}, {1, 0}} {
		_, err := board.Attack(c)
		require.NoError(t, err)
	}

	grid := board.Snapshot()
	parsed, err := ParseSnapshot(board.Catalog(), grid)
	require.NoError(t, err)
	assert.Equal(t, grid, parsed.Snapshot())
}

func TestSnapshot_ParsedBoardIsPlayable(t *testing.T) {
	board := newTestBoard(t)
	placeFleet(t, board, standardFleet())

	parsed, err := ParseSnapshot(board.Catalog(), board.Snapshot())
	require.NoError(t, err)

	result, err := parsed.Attack(Coordinate{0, 0})
	require.NoError(t, err)
	assert.Equal(t, OutcomeHit, result.Outcome)
	assert.Equal(t, ShipID(1), result.Ship)

	result, err = parsed.Attack(Coordinate{1, 0})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSunk, result.Outcome)
}

func TestSnapshot_Layout(t *testing.T) {
	catalog, err := NewCustomCatalog([]ShipType{{ID: 1, Name: "Destroyer", Shape: LineShape(2)}})
	require.NoError(t, err)
	board, err := NewBoard(catalog, 3, 2)
	require.NoError(t, err)
	require.NoError(t, board.PlaceShip(1, Coordinate{0, 1}, Rot0))

	_, err = board.Attack(Coordinate{2, 0})
	require.NoError(t, err)

	assert.Equal(t, [][]int{
		{0, 0, 10},
		{1, 1, 0},
	}, board.Snapshot())
}

func TestParseSnapshot_Invalid(t *testing.T) {
	catalog := NewCatalog()

	tests := []struct {
		name    string
		grid    [][]int
		wantErr error
	}{
		{
			name:    "EmptyGrid",
			grid:    nil,
			wantErr: ErrBadSnapshot,
		},
		{
			name:    "EmptyRow",
			grid:    [][]int{{}},
			wantErr: ErrBadSnapshot,
		},
		{
			name:    "RaggedRows",
			grid:    [][]int{{0, 0, 0}, {0, 0}},
			wantErr: ErrBadSnapshot,
		},
		{
			name:    "ValueTooLarge",
			grid:    [][]int{{0, 11}, {0, 0}},
			wantErr: ErrBadSnapshot,
		},
		{
			name:    "NegativeValue",
			grid:    [][]int{{0, -1}, {0, 0}},
			wantErr: ErrBadSnapshot,
		},
		{
			name:    "StrayShipFragment",
			grid:    [][]int{{1, 0, 0}, {0, 0, 0}},
			wantErr: ErrBadSnapshot,
		},
		{
			name:    "SplitShip",
			grid:    [][]int{{1, 0, 1}, {0, 0, 0}},
			wantErr: ErrBadSnapshot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSnapshot(catalog, tt.grid)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseSnapshot_ShipOutsideCatalog(t *testing.T) {
	catalog, err := NewCustomCatalog([]ShipType{{ID: 1, Name: "Destroyer", Shape: LineShape(2)}})
	require.NoError(t, err)

	_, err = ParseSnapshot(catalog, [][]int{{3, 3, 3}, {0, 0, 0}})
	assert.ErrorIs(t, err, ErrUnknownShip)
}

func TestParseSnapshot_DamagedGridKeepsIntactShips(t *testing.T) {
	catalog, err := NewCustomCatalog([]ShipType{
		{ID: 1, Name: "Destroyer", Shape: LineShape(2)},
		{ID: 2, Name: "Cruiser", Shape: LineShape(3)},
	})
	require.NoError(t, err)

	// The destroyer is half hit, so its surviving cell cannot be rebuilt as
	// a record; the untouched cruiser can.
	grid := [][]int{
		{8, 1, 0, 10},
		{2, 2, 2, 0},
	}
	parsed, err := ParseSnapshot(catalog, grid)
	require.NoError(t, err)

	assert.Equal(t, grid, parsed.Snapshot())
	assert.Equal(t, []ShipID{2}, parsed.PlacedShips())
	assert.Equal(t, 3, parsed.RemainingCells(2))
}

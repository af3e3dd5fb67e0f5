package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	catalog := NewCatalog()

	assert.Equal(t, 7, catalog.Len())
	assert.Equal(t, []ShipID{1, 2, 3, 4, 5, 6, 7}, catalog.IDs())
	assert.Equal(t, 27, catalog.TotalCells())

	sizes := map[ShipID]int{1: 2, 2: 3, 3: 4, 4: 4, 5: 4, 6: 4, 7: 6}
	for id, want := range sizes {
		size, err := catalog.SizeOf(id)
		require.NoError(t, err)
		assert.Equal(t, want, size, "ship %d", id)
	}

	typ, ok := catalog.Type(7)
	require.True(t, ok)
	assert.Equal(t, "Carrier", typ.Name)
	assert.Equal(t, 6, typ.Size())
}

func TestCatalog_UnknownShip(t *testing.T) {
	catalog := NewCatalog()

	_, err := catalog.ShapeOf(0)
	assert.ErrorIs(t, err, ErrUnknownShip)

	_, err = catalog.SizeOf(9)
	assert.ErrorIs(t, err, ErrUnknownShip)

	assert.False(t, catalog.Contains(8))
	assert.True(t, catalog.Contains(4))
}

func TestNewCustomCatalog(t *testing.T) {
	tests := []struct {
		name    string
		types   []ShipType
		wantErr bool
	}{
		{
			name: "TwoShipFleet",
			types: []ShipType{
				{ID: 1, Name: "Destroyer", Shape: LineShape(2)},
				{ID: 2, Name: "Cruiser", Shape: LineShape(3)},
			},
		},
		{
			name:  "SingleShip",
			types: []ShipType{{ID: 7, Name: "Carrier", Shape: LineShape(6)}},
		},
		{
			name:    "Empty",
			types:   nil,
			wantErr: true,
		},
		{
			name:    "IDTooLow",
			types:   []ShipType{{ID: 0, Name: "Ghost", Shape: LineShape(2)}},
			wantErr: true,
		},
		{
			name:    "IDTooHigh",
			types:   []ShipType{{ID: 8, Name: "Ghost", Shape: LineShape(2)}},
			wantErr: true,
		},
		{
			name: "DuplicateID",
			types: []ShipType{
				{ID: 3, Name: "A", Shape: LineShape(2)},
				{ID: 3, Name: "B", Shape: LineShape(3)},
			},
			wantErr: true,
		},
		{
			name:    "EmptyShape",
			types:   []ShipType{{ID: 1, Name: "Hull-less", Shape: nil}},
			wantErr: true,
		},
		{
			name:    "RepeatedOffset",
			types:   []ShipType{{ID: 1, Name: "Folded", Shape: []Offset{{0, 0}, {1, 0}, {0, 0}}}},
			wantErr: true,
		},
		{
			name:    "DisconnectedShape",
			types:   []ShipType{{ID: 1, Name: "Split", Shape: []Offset{{0, 0}, {2, 0}}}},
			wantErr: true,
		},
		{
			name:    "DiagonalOnlyShape",
			types:   []ShipType{{ID: 1, Name: "Diagonal", Shape: []Offset{{0, 0}, {1, 1}}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := NewCustomCatalog(tt.types)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadCatalog)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.types), catalog.Len())
		})
	}
}

func TestCatalog_Immutable(t *testing.T) {
	shape := LineShape(3)
	types := []ShipType{{ID: 1, Name: "Cruiser", Shape: shape}}
	catalog, err := NewCustomCatalog(types)
	require.NoError(t, err)

	// Mutating the caller's slice must not reach the catalog.
	shape[0] = Offset{99, 99}
	got, err := catalog.ShapeOf(1)
	require.NoError(t, err)
	assert.Equal(t, Offset{0, 0}, got[0])

	// Mutating a returned shape must not reach the catalog either.
	got[1] = Offset{42, 42}
	again, err := catalog.ShapeOf(1)
	require.NoError(t, err)
	assert.Equal(t, Offset{1, 0}, again[1])
}

package core

import "fmt"

// Cell is the state of a single board square. The numeric values are the
// interchange encoding used by snapshots and external tooling, so they must
// not be reordered:
//
//	0      empty water, never attacked
//	1..7   intact ship cell, the value is the ship id
//	8      hit ship cell (ship not yet fully sunk)
//	9      cell belonging to a sunk ship
//	10     attacked empty water
type Cell uint8

const (
	CellEmpty Cell = 0
	CellHit   Cell = 8
	CellSunk  Cell = 9
	CellMiss  Cell = 10
)

// IsEmpty reports whether the cell is unattacked water
func (c Cell) IsEmpty() bool {
	return c == CellEmpty
}

// IsShip reports whether the cell holds an intact ship segment
func (c Cell) IsShip() bool {
	return c >= Cell(MinShipID) && c <= Cell(MaxShipID)
}

// IsHit reports whether the cell is a hit but not yet sunk ship segment
func (c Cell) IsHit() bool {
	return c == CellHit
}

// IsSunk reports whether the cell belongs to a sunk ship
func (c Cell) IsSunk() bool {
	return c == CellSunk
}

// IsMiss reports whether the cell is attacked water
func (c Cell) IsMiss() bool {
	return c == CellMiss
}

// IsAttacked reports whether the cell has already been targeted
func (c Cell) IsAttacked() bool {
	return c == CellHit || c == CellSunk || c == CellMiss
}

// ShipID returns the id of the intact ship occupying the cell, or NoShip
func (c Cell) ShipID() ShipID {
	if c.IsShip() {
		return ShipID(c)
	}
	return NoShip
}

// CellFromInt converts an interchange value into a Cell, rejecting values
// outside the encoding
func CellFromInt(v int) (Cell, error) {
	if v < int(CellEmpty) || v > int(CellMiss) {
		return CellEmpty, fmt.Errorf("cell value %d: %w", v, ErrBadSnapshot)
	}
	return Cell(v), nil
}

// String returns a short label for logging
func (c Cell) String() string {
	switch {
	case c.IsEmpty():
		return "empty"
	case c.IsShip():
		return fmt.Sprintf("ship(%d)", int(c))
	case c.IsHit():
		return "hit"
	case c.IsSunk():
		return "sunk"
	case c.IsMiss():
		return "miss"
	default:
		return fmt.Sprintf("invalid(%d)", int(c))
	}
}

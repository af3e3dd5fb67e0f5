package core

import "fmt"

// shipRecord tracks one placed ship: the cells it covers and how many of
// them have been hit so far.
type shipRecord struct {
	cells []Coordinate
	hits  int
}

func (r *shipRecord) sunk() bool {
	return r.hits == len(r.cells)
}

// Board is one player's grid plus the fleet bookkeeping needed to resolve
// attacks. The cell grid carries the interchange encoding directly; ship
// identity for hit and sunk cells comes from the placement records, since
// the encoding collapses those states to shared values.
//
// Boards are not safe for concurrent use. Each match drives its two boards
// from a single goroutine.
type Board struct {
	width   int
	height  int
	catalog *Catalog
	cells   []Cell
	owners  []ShipID
	fleet   map[ShipID]*shipRecord
}

// NewBoard creates an empty board of the given dimensions
func NewBoard(catalog *Catalog, width, height int) (*Board, error) {
	if catalog == nil {
		return nil, fmt.Errorf("nil catalog: %w", ErrBadCatalog)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrBadBoardSize)
	}
	return &Board{
		width:   width,
		height:  height,
		catalog: catalog,
		cells:   make([]Cell, width*height),
		owners:  make([]ShipID, width*height),
		fleet:   make(map[ShipID]*shipRecord, catalog.Len()),
	}, nil
}

// Width returns the board width in cells
func (b *Board) Width() int { return b.width }

// Height returns the board height in cells
func (b *Board) Height() int { return b.height }

// Catalog returns the catalog the board was built with
func (b *Board) Catalog() *Catalog { return b.catalog }

// CellAt returns the state of the given cell
func (b *Board) CellAt(c Coordinate) (Cell, error) {
	if !c.IsValid(b.width, b.height) {
		return CellEmpty, fmt.Errorf("%s: %w", c, ErrOutOfBounds)
	}
	return b.cells[c.ToIndex(b.width)], nil
}

// ShipAt returns the id of the ship covering the cell, whatever its damage
// state, or NoShip for water
func (b *Board) ShipAt(c Coordinate) ShipID {
	if !c.IsValid(b.width, b.height) {
		return NoShip
	}
	return b.owners[c.ToIndex(b.width)]
}

// PlaceShip puts one ship from the catalog onto the board. Each ship may be
// placed once; every cell of its rotated shape must be in bounds and free.
// A failed placement leaves the board unchanged.
func (b *Board) PlaceShip(id ShipID, anchor Coordinate, rot Rotation) error {
	return b.Place(Placement{Ship: id, Anchor: anchor, Rot: rot})
}

// Place applies a placement, validating it against the current board state
func (b *Board) Place(p Placement) error {
	if !b.catalog.Contains(p.Ship) {
		return fmt.Errorf("ship %d: %w", p.Ship, ErrUnknownShip)
	}
	if _, placed := b.fleet[p.Ship]; placed {
		return fmt.Errorf("ship %d: %w", p.Ship, ErrShipAlreadyPlaced)
	}

	cells, err := p.Footprint(b.catalog)
	if err != nil {
		return err
	}
	for _, c := range cells {
		if !c.IsValid(b.width, b.height) {
			return fmt.Errorf("ship %d cell %s: %w", p.Ship, c, ErrOutOfBounds)
		}
		if b.owners[c.ToIndex(b.width)] != NoShip {
			return fmt.Errorf("ship %d cell %s: %w", p.Ship, c, ErrOverlap)
		}
	}

	for _, c := range cells {
		idx := c.ToIndex(b.width)
		b.cells[idx] = Cell(p.Ship)
		b.owners[idx] = p.Ship
	}
	b.fleet[p.Ship] = &shipRecord{cells: cells}
	return nil
}

// Attack resolves a shot at the given cell. Cell states only move forward:
// ship cells become hits, the final hit marks the whole ship sunk, water
// becomes a miss. Attacking an already attacked cell fails with
// ErrAlreadyAttacked and changes nothing.
func (b *Board) Attack(c Coordinate) (AttackResult, error) {
	if !c.IsValid(b.width, b.height) {
		return AttackResult{}, fmt.Errorf("%s: %w", c, ErrOutOfBounds)
	}

	idx := c.ToIndex(b.width)
	cell := b.cells[idx]
	switch {
	case cell.IsShip():
		id := cell.ShipID()
		rec := b.fleet[id]
		if rec == nil {
			// Unattributable fragment on a board parsed from a damaged
			// snapshot; it can be hit but never completes a sink.
			b.cells[idx] = CellHit
			return AttackResult{Coord: c, Outcome: OutcomeHit, Ship: id}, nil
		}
		rec.hits++
		if rec.sunk() {
			for _, sc := range rec.cells {
				b.cells[sc.ToIndex(b.width)] = CellSunk
			}
			return AttackResult{Coord: c, Outcome: OutcomeSunk, Ship: id}, nil
		}
		b.cells[idx] = CellHit
		return AttackResult{Coord: c, Outcome: OutcomeHit, Ship: id}, nil

	case cell.IsEmpty():
		b.cells[idx] = CellMiss
		return AttackResult{Coord: c, Outcome: OutcomeMiss, Ship: NoShip}, nil

	default:
		return AttackResult{}, fmt.Errorf("%s: %w", c, ErrAlreadyAttacked)
	}
}

// IsDefeated reports whether every placed ship has been sunk. A board with
// no ships placed is not defeated.
func (b *Board) IsDefeated() bool {
	if len(b.fleet) == 0 {
		return false
	}
	for _, rec := range b.fleet {
		if !rec.sunk() {
			return false
		}
	}
	return true
}

// PlacedShips returns the ids of all placed ships in ascending order
func (b *Board) PlacedShips() []ShipID {
	ids := make([]ShipID, 0, len(b.fleet))
	for _, id := range b.catalog.IDs() {
		if _, ok := b.fleet[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// HasFullFleet reports whether every catalog ship has been placed
func (b *Board) HasFullFleet() bool {
	return len(b.fleet) == b.catalog.Len()
}

// RemainingCells returns how many cells of the given ship are still intact.
// Unplaced and unknown ships report zero.
func (b *Board) RemainingCells(id ShipID) int {
	rec, ok := b.fleet[id]
	if !ok {
		return 0
	}
	return len(rec.cells) - rec.hits
}

// ShipsAfloat returns how many placed ships are not yet sunk
func (b *Board) ShipsAfloat() int {
	afloat := 0
	for _, rec := range b.fleet {
		if !rec.sunk() {
			afloat++
		}
	}
	return afloat
}

package core

import (
	"fmt"
	"sort"
)

// Catalog is the immutable set of ship types available to a match. Both
// players always sail the same catalog. The zero value is unusable; build
// catalogs with NewCatalog or NewCustomCatalog.
type Catalog struct {
	types map[ShipID]ShipType
	ids   []ShipID
}

// NewCatalog returns the standard seven-ship catalog
func NewCatalog() *Catalog {
	c, err := NewCustomCatalog(StandardShipTypes())
	if err != nil {
		// The standard set is validated by tests; failing here means the
		// package itself is broken.
		panic(err)
	}
	return c
}

// NewCustomCatalog builds a catalog from the given ship types. Ids must be
// unique and within [MinShipID, MaxShipID], and every shape must be a
// non-empty, orthogonally connected set of distinct offsets.
func NewCustomCatalog(types []ShipType) (*Catalog, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("no ship types: %w", ErrBadCatalog)
	}

	c := &Catalog{
		types: make(map[ShipID]ShipType, len(types)),
		ids:   make([]ShipID, 0, len(types)),
	}
	for _, t := range types {
		if !t.ID.IsValid() {
			return nil, fmt.Errorf("ship id %d out of range [%d, %d]: %w", t.ID, MinShipID, MaxShipID, ErrBadCatalog)
		}
		if _, exists := c.types[t.ID]; exists {
			return nil, fmt.Errorf("duplicate ship id %d: %w", t.ID, ErrBadCatalog)
		}
		if len(t.Shape) == 0 {
			return nil, fmt.Errorf("ship %d has an empty shape: %w", t.ID, ErrBadCatalog)
		}
		seen := make(map[Offset]bool, len(t.Shape))
		for _, o := range t.Shape {
			if seen[o] {
				return nil, fmt.Errorf("ship %d repeats offset (%d,%d): %w", t.ID, o.DX, o.DY, ErrBadCatalog)
			}
			seen[o] = true
		}
		if !connectedShape(seen) {
			return nil, fmt.Errorf("ship %d shape is not connected: %w", t.ID, ErrBadCatalog)
		}

		// Keep the catalog immutable even if the caller mutates its slice.
		cp := t
		cp.Shape = append([]Offset(nil), t.Shape...)
		c.types[t.ID] = cp
		c.ids = append(c.ids, t.ID)
	}
	sort.Slice(c.ids, func(i, j int) bool { return c.ids[i] < c.ids[j] })
	return c, nil
}

// ShapeOf returns a copy of the ship's unrotated shape
func (c *Catalog) ShapeOf(id ShipID) ([]Offset, error) {
	t, ok := c.types[id]
	if !ok {
		return nil, fmt.Errorf("ship %d: %w", id, ErrUnknownShip)
	}
	return append([]Offset(nil), t.Shape...), nil
}

// SizeOf returns the number of cells the ship occupies
func (c *Catalog) SizeOf(id ShipID) (int, error) {
	t, ok := c.types[id]
	if !ok {
		return 0, fmt.Errorf("ship %d: %w", id, ErrUnknownShip)
	}
	return t.Size(), nil
}

// Type returns the full ship type description
func (c *Catalog) Type(id ShipID) (ShipType, bool) {
	t, ok := c.types[id]
	return t, ok
}

// Contains reports whether the catalog defines the given id
func (c *Catalog) Contains(id ShipID) bool {
	_, ok := c.types[id]
	return ok
}

// IDs returns the catalog's ship ids in ascending order
func (c *Catalog) IDs() []ShipID {
	return append([]ShipID(nil), c.ids...)
}

// Len returns the number of ship types in the catalog
func (c *Catalog) Len() int {
	return len(c.ids)
}

// TotalCells returns the summed size of every ship in the catalog
func (c *Catalog) TotalCells() int {
	total := 0
	for _, t := range c.types {
		total += t.Size()
	}
	return total
}

// connectedShape checks that the offsets form a single orthogonally
// connected component, so hulls never split into detached fragments.
func connectedShape(shape map[Offset]bool) bool {
	var start Offset
	for o := range shape {
		start = o
		break
	}

	visited := map[Offset]bool{start: true}
	queue := []Offset{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range []Offset{
			{cur.DX, cur.DY - 1},
			{cur.DX + 1, cur.DY},
			{cur.DX, cur.DY + 1},
			{cur.DX - 1, cur.DY},
		} {
			if shape[n] && !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(visited) == len(shape)
}

// StandardShipTypes returns the default fleet of seven ships: three straight
// hulls and four irregular ones.
func StandardShipTypes() []ShipType {
	return []ShipType{
		{ID: 1, Name: "Destroyer", Shape: LineShape(2)},
		{ID: 2, Name: "Cruiser", Shape: LineShape(3)},
		{ID: 3, Name: "Battleship", Shape: LineShape(4)},
		{ID: 4, Name: "Submarine", Shape: []Offset{{0, 0}, {1, 0}, {2, 0}, {1, 1}}},
		{ID: 5, Name: "Frigate", Shape: []Offset{{0, 0}, {0, 1}, {0, 2}, {1, 2}}},
		{ID: 6, Name: "Corvette", Shape: []Offset{{0, 0}, {1, 0}, {1, 1}, {2, 1}}},
		{ID: 7, Name: "Carrier", Shape: []Offset{{1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}, {3, 1}}},
	}
}

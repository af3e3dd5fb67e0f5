package core

import "fmt"

// Placement positions one ship on a board: the catalog id, the board cell
// the shape's anchor maps to, and a clockwise rotation.
type Placement struct {
	Ship   ShipID
	Anchor Coordinate
	Rot    Rotation
}

// Footprint resolves the board cells the placement covers. It does not check
// bounds; boards do that when the placement is applied.
func (p Placement) Footprint(catalog *Catalog) ([]Coordinate, error) {
	shape, err := catalog.ShapeOf(p.Ship)
	if err != nil {
		return nil, err
	}
	cells := make([]Coordinate, len(shape))
	for i, o := range shape {
		rotated := p.Rot.Apply(o)
		cells[i] = p.Anchor.Add(rotated.DX, rotated.DY)
	}
	return cells, nil
}

func (p Placement) String() string {
	return fmt.Sprintf("ship %d at %s rot %s", p.Ship, p.Anchor, p.Rot)
}

package core

import "fmt"

// ShipID identifies a ship type within a catalog. Ids live in [1, 7] because
// the cell encoding stores them directly in the grid.
type ShipID int

const (
	NoShip    ShipID = 0
	MinShipID ShipID = 1
	MaxShipID ShipID = 7
)

// IsValid reports whether the id is usable in a catalog
func (id ShipID) IsValid() bool {
	return id >= MinShipID && id <= MaxShipID
}

// Offset is a cell position relative to a ship's anchor, before rotation
type Offset struct {
	DX, DY int
}

// Rotation is a clockwise ship rotation applied to shape offsets at placement
type Rotation int

const (
	Rot0 Rotation = iota
	Rot90
	Rot180
	Rot270
)

// Rotations lists all placement rotations
var Rotations = []Rotation{Rot0, Rot90, Rot180, Rot270}

// Apply rotates the offset clockwise around the anchor
func (r Rotation) Apply(o Offset) Offset {
	switch r {
	case Rot90:
		return Offset{DX: -o.DY, DY: o.DX}
	case Rot180:
		return Offset{DX: -o.DX, DY: -o.DY}
	case Rot270:
		return Offset{DX: o.DY, DY: -o.DX}
	default:
		return o
	}
}

// Degrees returns the rotation angle for logging
func (r Rotation) Degrees() int {
	return int(r) * 90
}

func (r Rotation) String() string {
	return fmt.Sprintf("%d°", r.Degrees())
}

// ShipType describes one ship of a catalog: its id, display name and shape.
// The shape is a set of offsets from the anchor cell in the unrotated frame.
type ShipType struct {
	ID    ShipID
	Name  string
	Shape []Offset
}

// Size returns the number of cells the ship occupies
func (t ShipType) Size() int {
	return len(t.Shape)
}

// LineShape returns a straight shape of the given length along the x axis
func LineShape(length int) []Offset {
	shape := make([]Offset, length)
	for i := range shape {
		shape[i] = Offset{DX: i}
	}
	return shape
}

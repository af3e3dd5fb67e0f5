package core

import "fmt"

// Coordinate represents a position on a board
type Coordinate struct {
	X, Y int
}

// NewCoordinate creates a new coordinate with the given x and y values
func NewCoordinate(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// FromIndex creates a coordinate from a board array index using row-major ordering
func FromIndex(idx, width int) Coordinate {
	return Coordinate{
		X: idx % width,
		Y: idx / width,
	}
}

// IsValid checks if the coordinate is within the given bounds
func (c Coordinate) IsValid(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

// ToIndex converts the coordinate to a board array index using row-major ordering
func (c Coordinate) ToIndex(width int) int {
	return c.Y*width + c.X
}

// Add returns a new coordinate offset by the given deltas
func (c Coordinate) Add(dx, dy int) Coordinate {
	return Coordinate{
		X: c.X + dx,
		Y: c.Y + dy,
	}
}

// Equal checks if two coordinates are equal
func (c Coordinate) Equal(other Coordinate) bool {
	return c.X == other.X && c.Y == other.Y
}

// Neighbors returns the four orthogonal neighbors of this coordinate
func (c Coordinate) Neighbors() []Coordinate {
	return []Coordinate{
		{X: c.X, Y: c.Y - 1},
		{X: c.X + 1, Y: c.Y},
		{X: c.X, Y: c.Y + 1},
		{X: c.X - 1, Y: c.Y},
	}
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

package render

import (
	"image/color"

	"battlesim/internal/battle/core"
)

// Cell colors. Intact ships share one color regardless of id; the grid
// encoding distinguishes them, the picture does not.
var (
	WaterColor = color.RGBA{255, 255, 255, 255}
	ShipColor  = color.RGBA{0, 0, 255, 255}
	HitColor   = color.RGBA{0, 255, 0, 255}
	SunkColor  = color.RGBA{0, 100, 0, 255}
	MissColor  = color.RGBA{255, 0, 0, 255}
)

// Grid line color
var GridLineColor = color.RGBA{0, 0, 0, 255}

// CellColor maps a cell state to its display color.
func CellColor(c core.Cell) color.Color {
	switch {
	case c.IsShip():
		return ShipColor
	case c.IsHit():
		return HitColor
	case c.IsSunk():
		return SunkColor
	case c.IsMiss():
		return MissColor
	default:
		return WaterColor
	}
}

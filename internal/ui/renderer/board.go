package renderer

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"battlesim/internal/battle/core"
	"battlesim/internal/render"
)

// -----------------------------------------------------------------------------
// Colour definitions
// -----------------------------------------------------------------------------

var (
	ShipTextColor = color.White
	LastShotColor = color.RGBA{255, 255, 100, 255} // Yellow highlight
)

// -----------------------------------------------------------------------------
// Renderer
// -----------------------------------------------------------------------------

// BoardRenderer draws one board at a pixel offset, using the same palette the
// PNG snapshots use. Intact ship cells carry their ship id as text.
type BoardRenderer struct {
	tileSize    int
	defaultFont font.Face
}

// NewBoardRenderer returns a renderer ready to use.
func NewBoardRenderer(tileSize int, f font.Face) *BoardRenderer {
	return &BoardRenderer{tileSize: tileSize, defaultFont: f}
}

// PixelSize returns the width and height the board covers on screen.
func (br *BoardRenderer) PixelSize(board *core.Board) (int, int) {
	if board == nil {
		return 0, 0
	}
	return board.Width() * br.tileSize, board.Height() * br.tileSize
}

// Draw renders the board with its top-left corner at (offsetX, offsetY).
func (br *BoardRenderer) Draw(screen *ebiten.Image, board *core.Board, offsetX, offsetY int) {
	if board == nil {
		return
	}

	for y := 0; y < board.Height(); y++ {
		for x := 0; x < board.Width(); x++ {
			cellState, err := board.CellAt(core.NewCoordinate(x, y))
			if err != nil {
				continue
			}

			screenX := float64(offsetX + x*br.tileSize)
			screenY := float64(offsetY + y*br.tileSize)

			// ---------------------------------------------------------------------
			// Tile background; the 1px gap lets the screen background show
			// through as grid lines
			// ---------------------------------------------------------------------
			tile := ebiten.NewImage(br.tileSize-1, br.tileSize-1)
			tile.Fill(render.CellColor(cellState))

			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(screenX, screenY)
			screen.DrawImage(tile, op)

			// ---------------------------------------------------------------------
			// Ship id on intact ship cells
			// ---------------------------------------------------------------------
			if cellState.IsShip() && br.defaultFont != nil {
				idStr := strconv.Itoa(int(cellState.ShipID()))

				b := text.BoundString(br.defaultFont, idStr)
				textW := b.Max.X - b.Min.X
				textH := b.Max.Y - b.Min.Y

				tx := int(screenX) + (br.tileSize-textW)/2
				ty := int(screenY) + (br.tileSize+textH)/2

				text.Draw(screen, idStr, br.defaultFont, tx, ty, ShipTextColor)
			}
		}
	}
}

// DrawHighlight outlines one cell; the viewer uses it to mark the latest shot.
func (br *BoardRenderer) DrawHighlight(screen *ebiten.Image, offsetX, offsetY int, c core.Coordinate) {
	screenX := float32(offsetX + c.X*br.tileSize)
	screenY := float32(offsetY + c.Y*br.tileSize)
	size := float32(br.tileSize)
	thickness := float32(3)

	// Draw four border lines
	// Top
	vector.DrawFilledRect(screen, screenX, screenY, size, thickness, LastShotColor, false)
	// Bottom
	vector.DrawFilledRect(screen, screenX, screenY+size-thickness, size, thickness, LastShotColor, false)
	// Left
	vector.DrawFilledRect(screen, screenX, screenY, thickness, size, LastShotColor, false)
	// Right
	vector.DrawFilledRect(screen, screenX+size-thickness, screenY, thickness, size, LastShotColor, false)
}

package input

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// CursorTile maps the cursor onto a board drawn at (offsetX, offsetY),
// returning false when the cursor lies outside it.
func CursorTile(offsetX, offsetY, tileSize, boardWidth, boardHeight int) (int, int, bool) {
	if tileSize <= 0 {
		return 0, 0, false
	}
	mx, my := ebiten.CursorPosition()
	if mx < offsetX || my < offsetY {
		return 0, 0, false
	}
	tx := (mx - offsetX) / tileSize
	ty := (my - offsetY) / tileSize
	if tx >= boardWidth || ty >= boardHeight {
		return 0, 0, false
	}
	return tx, ty, true
}

// Package render rasterizes boards into plain images so that batch runs can
// save move-by-move snapshots without a display. The interactive viewer under
// internal/ui draws with ebiten instead; both use the same palette.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"battlesim/internal/battle/core"
)

// ErrBadTileSize is returned when the requested tile size cannot produce a
// readable image.
var ErrBadTileSize = errors.New("tile size must be at least 2 pixels")

// BoardImage rasterizes a board, one square tile per cell with single-pixel
// grid lines between tiles and around the border.
func BoardImage(b *core.Board, tileSize int) (*image.RGBA, error) {
	if b == nil {
		return nil, errors.New("board is nil")
	}
	if tileSize < 2 {
		return nil, ErrBadTileSize
	}

	w := b.Width()*tileSize + 1
	h := b.Height()*tileSize + 1
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			cell, err := b.CellAt(core.NewCoordinate(x, y))
			if err != nil {
				return nil, err
			}
			fillTile(img, x*tileSize, y*tileSize, tileSize, cell)
		}
	}

	drawGridLines(img, b.Width(), b.Height(), tileSize)
	return img, nil
}

func fillTile(img *image.RGBA, px, py, tileSize int, cell core.Cell) {
	c := CellColor(cell)
	for dy := 0; dy < tileSize; dy++ {
		for dx := 0; dx < tileSize; dx++ {
			img.Set(px+dx, py+dy, c)
		}
	}
}

func drawGridLines(img *image.RGBA, cols, rows, tileSize int) {
	w := cols*tileSize + 1
	h := rows*tileSize + 1
	for x := 0; x <= cols; x++ {
		for py := 0; py < h; py++ {
			img.Set(x*tileSize, py, GridLineColor)
		}
	}
	for y := 0; y <= rows; y++ {
		for px := 0; px < w; px++ {
			img.Set(px, y*tileSize, GridLineColor)
		}
	}
}

// WritePNG encodes the image to path, creating parent directories as needed.
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

package core

import "fmt"

// Snapshot exports the board as the integer interchange matrix, row-major,
// one inner slice per row. The values follow the Cell encoding.
func (b *Board) Snapshot() [][]int {
	grid := make([][]int, b.height)
	for y := 0; y < b.height; y++ {
		row := make([]int, b.width)
		for x := 0; x < b.width; x++ {
			row[x] = int(b.cells[y*b.width+x])
		}
		grid[y] = row
	}
	return grid
}

// ParseSnapshot rebuilds a board from an interchange matrix. The grid must
// be rectangular, every value must be within the encoding, and every ship id
// must exist in the catalog.
//
// The cell grid is restored exactly, so Snapshot of the result reproduces
// the input. Fleet records are rebuilt for ships that are still fully
// intact; hit and sunk cells cannot be attributed to an id by the encoding,
// so a pristine grid (no attacked cells) is additionally required to carry
// only whole, connected ships. Boards parsed from damaged grids are meant
// for inspection and rendering; sink accounting only covers their whole
// ships.
func ParseSnapshot(catalog *Catalog, grid [][]int) (*Board, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, fmt.Errorf("empty grid: %w", ErrBadSnapshot)
	}
	height := len(grid)
	width := len(grid[0])

	b, err := NewBoard(catalog, width, height)
	if err != nil {
		return nil, err
	}

	damaged := false
	intact := make(map[ShipID][]Coordinate)
	for y, row := range grid {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), width, ErrBadSnapshot)
		}
		for x, v := range row {
			cell, err := CellFromInt(v)
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", x, y, err)
			}
			if cell.IsAttacked() {
				damaged = true
			}
			if id := cell.ShipID(); id != NoShip {
				if !catalog.Contains(id) {
					return nil, fmt.Errorf("cell (%d,%d) ship %d: %w", x, y, id, ErrUnknownShip)
				}
				intact[id] = append(intact[id], NewCoordinate(x, y))
			}
			b.cells[y*width+x] = cell
		}
	}

	for id, cells := range intact {
		size, err := catalog.SizeOf(id)
		if err != nil {
			return nil, err
		}
		for _, c := range cells {
			b.owners[c.ToIndex(width)] = id
		}
		if len(cells) == size && connectedCells(cells) {
			b.fleet[id] = &shipRecord{cells: cells}
			continue
		}
		if !damaged {
			return nil, fmt.Errorf("ship %d has %d stray cells: %w", id, len(cells), ErrBadSnapshot)
		}
	}
	return b, nil
}

// connectedCells reports whether the coordinates form one orthogonally
// connected group
func connectedCells(cells []Coordinate) bool {
	present := make(map[Coordinate]bool, len(cells))
	for _, c := range cells {
		present[c] = true
	}

	visited := map[Coordinate]bool{cells[0]: true}
	queue := []Coordinate{cells[0]}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Neighbors() {
			if present[n] && !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(visited) == len(cells)
}

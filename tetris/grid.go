package tetris

import "github.com/kamstrup/intmap"

// Grid owns the occupancy state of a bounded board. Occupied cells map to the
// visual of the shape that filled them; empty cells have no entry at all.
type Grid struct {
	bounds Bounds
	cells  *intmap.Map[int64, Visual]
	tiles  *TileBuffer
}

// NewGrid creates an empty grid. Mutations are recorded in tiles when it is non-nil.
func NewGrid(bounds Bounds, tiles *TileBuffer) *Grid {
	return &Grid{
		bounds: bounds,
		cells:  intmap.New[int64, Visual](bounds.Width() * bounds.Height()),
		tiles:  tiles,
	}
}

func (g *Grid) Bounds() Bounds {
	return g.bounds
}

// IsOccupied reports whether a tile was placed at c and not cleared since.
func (g *Grid) IsOccupied(c Cell) bool {
	return g.cells.Has(c.key())
}

// At returns the visual at c, or VisualNone when the cell is empty.
func (g *Grid) At(c Cell) Visual {
	v, _ := g.cells.Get(c.key())
	return v
}

// Occupied returns the number of occupied cells.
func (g *Grid) Occupied() int {
	return g.cells.Len()
}

// Place marks every cell as occupied by v. Callers guarantee the cells are in bounds.
// VisualNone cannot occupy a cell, so placing it is a no-op; use ClearCells to empty.
func (g *Grid) Place(cells []Cell, v Visual) {
	if v == VisualNone {
		return
	}
	for _, c := range cells {
		g.set(c, v)
	}
}

// ClearCells marks every cell as empty.
func (g *Grid) ClearCells(cells []Cell) {
	for _, c := range cells {
		g.set(c, VisualNone)
	}
}

// IsValidPosition reports whether every cell is inside the bounds and unoccupied.
func (g *Grid) IsValidPosition(cells []Cell) bool {
	for _, c := range cells {
		if !g.bounds.Contains(c) || g.IsOccupied(c) {
			return false
		}
	}
	return true
}

// IsRowFull reports whether every column of row is occupied.
func (g *Grid) IsRowFull(row int) bool {
	for col := g.bounds.XMin; col < g.bounds.XMax; col++ {
		if !g.IsOccupied(Cell{X: col, Y: row}) {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row, shifting the rows above each one down by
// one, and returns the number of rows removed. The scan starts at the bottom and
// re-tests the same row after a clear, so stacked and non-contiguous full rows are
// all removed in one call.
func (g *Grid) ClearFullRows() int {
	cleared := 0
	row := g.bounds.YMin
	for row < g.bounds.YMax {
		if g.IsRowFull(row) {
			g.clearRow(row)
			cleared++
		} else {
			row++
		}
	}
	return cleared
}

func (g *Grid) clearRow(row int) {
	for col := g.bounds.XMin; col < g.bounds.XMax; col++ {
		g.set(Cell{X: col, Y: row}, VisualNone)
	}

	for ; row < g.bounds.YMax; row++ {
		for col := g.bounds.XMin; col < g.bounds.XMax; col++ {
			above := g.At(Cell{X: col, Y: row + 1})
			g.set(Cell{X: col, Y: row}, above)
		}
	}
}

// ResetAll empties every cell.
func (g *Grid) ResetAll() {
	if g.tiles != nil {
		g.cells.ForEach(func(k int64, _ Visual) bool {
			g.tiles.Set(cellFromKey(k), VisualNone)
			return true
		})
	}
	g.cells.Clear()
}

// Rows returns a snapshot of the board, bottom row first.
func (g *Grid) Rows() [][]Visual {
	rows := make([][]Visual, 0, g.bounds.Height())
	for y := g.bounds.YMin; y < g.bounds.YMax; y++ {
		row := make([]Visual, 0, g.bounds.Width())
		for x := g.bounds.XMin; x < g.bounds.XMax; x++ {
			row = append(row, g.At(Cell{X: x, Y: y}))
		}
		rows = append(rows, row)
	}
	return rows
}

// set writes v at c and records the change. Writing VisualNone removes the entry.
func (g *Grid) set(c Cell, v Visual) {
	if g.At(c) == v {
		return
	}
	g.put(c, v)
	if g.tiles != nil {
		g.tiles.Set(c, v)
	}
}

// put writes v at c without recording a tile write.
func (g *Grid) put(c Cell, v Visual) {
	if v == VisualNone {
		g.cells.Del(c.key())
		return
	}
	g.cells.Put(c.key(), v)
}

package tetris

// Ghost is the landing preview of the active piece.
type Ghost struct {
	Position Cell
	Cells    [4]Cell
}

// Project computes where piece would come to rest if dropped straight down.
// The piece's own staged cells are lifted off the grid for the duration of the
// simulation and put back afterwards; no tile writes are recorded and the piece's
// timers, rotation and anchor are untouched.
func Project(grid *Grid, piece *Piece) Ghost {
	offsets := piece.Offsets()
	position := piece.Position()
	staged := piece.Cells()

	visual := VisualNone
	if piece.Shape() != nil {
		visual = piece.Shape().Visual
	}

	var lifted [4]bool
	for i, c := range staged {
		if visual != VisualNone && grid.At(c) == visual {
			grid.put(c, VisualNone)
			lifted[i] = true
		}
	}

	ghost := Ghost{Position: position, Cells: staged}
	bottom := grid.Bounds().YMin - 1
	for position.Y >= bottom {
		cells := placeCells(offsets, position)
		if !grid.IsValidPosition(cells[:]) {
			break
		}
		ghost = Ghost{Position: position, Cells: cells}
		position.Y--
	}

	for i, c := range staged {
		if lifted[i] {
			grid.put(c, visual)
		}
	}

	return ghost
}

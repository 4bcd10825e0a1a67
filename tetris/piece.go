package tetris

import (
	"math"
	"time"
)

// PieceState is the lifecycle state of the active piece.
type PieceState uint8

const (
	PieceFalling PieceState = iota
	PieceLocked
)

func (s PieceState) String() string {
	switch s {
	case PieceFalling:
		return "falling"
	case PieceLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// rotationMatrix holds cos, sin, -sin, cos of a quarter turn.
var rotationMatrix = [4]float64{0, 1, -1, 0}

// Piece is the falling piece: a shape, its rotation state, an anchor on the grid
// and the four offsets currently describing its layout relative to the anchor.
type Piece struct {
	grid *Grid

	shape    *ShapeDefinition
	rotation int
	position Cell
	cells    [4]Cell
	state    PieceState

	stepDelay time.Duration
	lockDelay time.Duration
	fallTime  time.Duration
	lockTime  time.Duration
}

// NewPiece creates a piece that moves on grid. It must be initialized before use.
func NewPiece(grid *Grid, stepDelay, lockDelay time.Duration) *Piece {
	return &Piece{
		grid:      grid,
		stepDelay: stepDelay,
		lockDelay: lockDelay,
		state:     PieceLocked,
	}
}

// Initialize resets the piece to the base layout of shape at spawn.
func (p *Piece) Initialize(shape *ShapeDefinition, spawn Cell) {
	p.shape = shape
	p.rotation = 0
	p.position = spawn
	p.cells = shape.Cells
	p.state = PieceFalling
	p.fallTime = 0
	p.lockTime = 0
}

func (p *Piece) Shape() *ShapeDefinition { return p.shape }
func (p *Piece) Rotation() int           { return p.rotation }
func (p *Piece) Position() Cell          { return p.position }
func (p *Piece) Offsets() [4]Cell        { return p.cells }
func (p *Piece) State() PieceState       { return p.state }

// LockTime returns the time accumulated towards locking since the last successful move.
func (p *Piece) LockTime() time.Duration { return p.lockTime }

// Cells returns the grid cells the piece covers.
func (p *Piece) Cells() [4]Cell {
	return placeCells(p.cells, p.position)
}

// Fits reports whether the piece's current cells form a valid position.
func (p *Piece) Fits() bool {
	cells := p.Cells()
	return p.grid.IsValidPosition(cells[:])
}

// Move translates the piece by (dx, dy) if the destination is valid, resetting the
// lock timer. It is the only way the anchor changes.
func (p *Piece) Move(dx, dy int) bool {
	return p.translate(p.cells, Cell{X: dx, Y: dy})
}

func (p *Piece) translate(offsets [4]Cell, delta Cell) bool {
	if p.state != PieceFalling {
		return false
	}

	position := p.position.Add(delta)
	cells := placeCells(offsets, position)
	if !p.grid.IsValidPosition(cells[:]) {
		return false
	}

	p.position = position
	p.cells = offsets
	p.lockTime = 0
	return true
}

// Rotate turns the piece a quarter turn clockwise (dir > 0) or counter-clockwise
// (dir < 0), trying the shape's wall kicks in order. When no candidate fits the
// piece is left exactly as it was.
func (p *Piece) Rotate(dir int) bool {
	if p.state != PieceFalling || dir == 0 {
		return false
	}
	if dir > 0 {
		dir = 1
	} else {
		dir = -1
	}

	rotation := wrap(p.rotation+dir, 4)
	rotated := rotateOffsets(p.cells, dir, p.shape.halfPivot())

	row := wallKickIndex(rotation, dir, len(p.shape.WallKicks))
	for _, kick := range p.shape.WallKicks[row] {
		if p.translate(rotated, kick) {
			p.rotation = rotation
			return true
		}
	}
	return false
}

// Elapse advances the fall and lock timers by dt.
func (p *Piece) Elapse(dt time.Duration) {
	p.fallTime += dt
	p.lockTime += dt
}

// Step applies gravity once the fall timer is due: the timer restarts, the piece
// tries to move down, and if it has not moved for at least the lock delay it
// locks. It returns the number of rows cleared and whether the piece locked.
func (p *Piece) Step() (int, bool) {
	if p.state != PieceFalling || p.fallTime < p.stepDelay {
		return 0, false
	}

	p.fallTime = 0
	p.Move(0, -1)

	if p.lockTime >= p.lockDelay {
		return p.Lock(), true
	}
	return 0, false
}

// Lock commits the piece's cells to the grid, clears full rows and ends the
// piece's active life. It returns the number of rows cleared.
func (p *Piece) Lock() int {
	if p.state != PieceFalling {
		return 0
	}

	cells := p.Cells()
	p.grid.Place(cells[:], p.shape.Visual)
	p.state = PieceLocked
	return p.grid.ClearFullRows()
}

// HardDrop moves the piece down until it rests and locks it. It returns the number
// of rows the piece fell and the number of rows cleared.
func (p *Piece) HardDrop() (dropped, cleared int) {
	if p.state != PieceFalling {
		return 0, 0
	}
	for p.Move(0, -1) {
		dropped++
	}
	return dropped, p.Lock()
}

func placeCells(offsets [4]Cell, position Cell) [4]Cell {
	var cells [4]Cell
	for i, c := range offsets {
		cells[i] = c.Add(position)
	}
	return cells
}

// rotateOffsets applies a quarter-turn rotation in direction dir to a copy of offsets.
// Half-pivot shapes rotate around (0.5, 0.5) and round up; the others round to nearest.
func rotateOffsets(offsets [4]Cell, dir int, halfPivot bool) [4]Cell {
	m := rotationMatrix
	d := float64(dir)

	var out [4]Cell
	for i, c := range offsets {
		x, y := float64(c.X), float64(c.Y)
		if halfPivot {
			x -= 0.5
			y -= 0.5
			out[i] = Cell{
				X: int(math.Ceil(x*m[0]*d + y*m[1]*d)),
				Y: int(math.Ceil(x*m[2]*d + y*m[3]*d)),
			}
			continue
		}
		out[i] = Cell{
			X: int(math.Round(x*m[0]*d + y*m[1]*d)),
			Y: int(math.Round(x*m[2]*d + y*m[3]*d)),
		}
	}
	return out
}

// wallKickIndex returns the kick row for a transition into rotation in direction dir.
func wallKickIndex(rotation, dir, rows int) int {
	index := rotation * 2
	if dir < 0 {
		index--
	}
	return wrap(index, rows)
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

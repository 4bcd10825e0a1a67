package tetris

import (
	"errors"
	"fmt"
)

// Kind identifies one of the canonical piece variants.
type Kind uint8

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

var kindNames = [...]string{"I", "O", "T", "S", "Z", "J", "L"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Visual is the display attribute written to occupied cells. VisualNone marks an empty cell.
type Visual uint8

const VisualNone Visual = 0

const (
	// KickRows is the number of rotation-state transitions in a wall-kick table.
	KickRows = 8
	// KickCandidates is the number of offsets tried per transition.
	KickCandidates = 5
)

// KickTable lists, for every rotation transition, the translations tried in order
// after a rotation. Index 0 of each row is the zero offset.
type KickTable [KickRows][KickCandidates]Cell

// ShapeDefinition is the immutable description of one piece variant.
type ShapeDefinition struct {
	Kind      Kind
	Visual    Visual
	Cells     [4]Cell
	WallKicks KickTable
}

// halfPivot reports whether the shape rotates about a half-cell offset pivot.
func (s *ShapeDefinition) halfPivot() bool {
	return s.Kind == KindI || s.Kind == KindO
}

// Catalog is the set of shapes a session spawns from, indexed by the randomizer.
type Catalog []ShapeDefinition

// ErrInvalidCatalog is returned when shape data violates the catalog preconditions.
var ErrInvalidCatalog = errors.New("invalid shape catalog")

// Validate checks the preconditions the engine relies on. It is meant to run once at startup.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: no shapes", ErrInvalidCatalog)
	}

	for i := range c {
		shape := &c[i]
		if shape.Visual == VisualNone {
			return fmt.Errorf("%w: shape %d (%s) has no visual", ErrInvalidCatalog, i, shape.Kind)
		}

		seen := make(map[Cell]bool, len(shape.Cells))
		for _, cell := range shape.Cells {
			if seen[cell] {
				return fmt.Errorf("%w: shape %d (%s) repeats cell %v", ErrInvalidCatalog, i, shape.Kind, cell)
			}
			seen[cell] = true
		}

		for row := range shape.WallKicks {
			if shape.WallKicks[row][0] != (Cell{}) {
				return fmt.Errorf("%w: shape %d (%s) kick row %d does not start with the zero offset", ErrInvalidCatalog, i, shape.Kind, row)
			}
		}
	}

	return nil
}

// Index returns the catalog index of the first shape of the given kind, or -1.
func (c Catalog) Index(kind Kind) int {
	for i := range c {
		if c[i].Kind == kind {
			return i
		}
	}
	return -1
}

var kicksI = KickTable{
	{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
	{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
}

var kicksJLOSTZ = KickTable{
	{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
}

// DefaultCatalog returns the seven canonical shapes with SRS wall-kick data.
func DefaultCatalog() Catalog {
	shape := func(kind Kind, kicks KickTable, cells ...Cell) ShapeDefinition {
		return ShapeDefinition{
			Kind:      kind,
			Visual:    Visual(kind) + 1,
			Cells:     [4]Cell(cells),
			WallKicks: kicks,
		}
	}

	return Catalog{
		shape(KindI, kicksI, Cell{-1, 1}, Cell{0, 1}, Cell{1, 1}, Cell{2, 1}),
		shape(KindO, kicksJLOSTZ, Cell{0, 1}, Cell{1, 1}, Cell{0, 0}, Cell{1, 0}),
		shape(KindT, kicksJLOSTZ, Cell{0, 1}, Cell{-1, 0}, Cell{0, 0}, Cell{1, 0}),
		shape(KindS, kicksJLOSTZ, Cell{0, 1}, Cell{1, 1}, Cell{-1, 0}, Cell{0, 0}),
		shape(KindZ, kicksJLOSTZ, Cell{-1, 1}, Cell{0, 1}, Cell{0, 0}, Cell{1, 0}),
		shape(KindJ, kicksJLOSTZ, Cell{-1, 1}, Cell{-1, 0}, Cell{0, 0}, Cell{1, 0}),
		shape(KindL, kicksJLOSTZ, Cell{1, 1}, Cell{-1, 0}, Cell{0, 0}, Cell{1, 0}),
	}
}

package tetris_test

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testStepDelay = time.Second
	testLockDelay = 500 * time.Millisecond
)

func newTestPiece(t *testing.T, kind tetris.Kind, at tetris.Cell) (*tetris.Grid, *tetris.Piece) {
	t.Helper()
	catalog := tetris.DefaultCatalog()
	idx := catalog.Index(kind)
	require.GreaterOrEqual(t, idx, 0)

	grid := newTestGrid()
	piece := tetris.NewPiece(grid, testStepDelay, testLockDelay)
	piece.Initialize(&catalog[idx], at)
	require.True(t, piece.Fits())
	return grid, piece
}

func cellSet(cells [4]tetris.Cell) map[tetris.Cell]bool {
	set := make(map[tetris.Cell]bool, len(cells))
	for _, c := range cells {
		set[c] = true
	}
	return set
}

func TestPieceInitialize(t *testing.T) {
	_, piece := newTestPiece(t, tetris.KindT, tetris.Cell{X: -1, Y: 8})

	assert.Equal(t, tetris.PieceFalling, piece.State())
	assert.Equal(t, 0, piece.Rotation())
	assert.Equal(t, tetris.Cell{X: -1, Y: 8}, piece.Position())
	assert.Equal(t, piece.Shape().Cells, piece.Offsets())
	assert.Equal(t, [4]tetris.Cell{{X: -1, Y: 9}, {X: -2, Y: 8}, {X: -1, Y: 8}, {X: 0, Y: 8}}, piece.Cells())
}

func TestPieceMove(t *testing.T) {
	grid, piece := newTestPiece(t, tetris.KindO, tetris.Cell{X: 0, Y: 0})

	assert.True(t, piece.Move(1, 0))
	assert.Equal(t, tetris.Cell{X: 1, Y: 0}, piece.Position())

	assert.True(t, piece.Move(0, -1))
	assert.Equal(t, tetris.Cell{X: 1, Y: -1}, piece.Position())

	t.Run("blocked by a tile", func(t *testing.T) {
		grid.Place([]tetris.Cell{{X: 3, Y: -1}}, 9)
		assert.False(t, piece.Move(1, 0))
		assert.Equal(t, tetris.Cell{X: 1, Y: -1}, piece.Position())
	})

	t.Run("blocked by the wall", func(t *testing.T) {
		for piece.Move(-1, 0) {
		}
		assert.Equal(t, tetris.Cell{X: -5, Y: -1}, piece.Position())
		cells := piece.Cells()
		assert.True(t, grid.IsValidPosition(cells[:]))
	})
}

func TestPieceMoveResetsLockTimer(t *testing.T) {
	_, piece := newTestPiece(t, tetris.KindO, tetris.Cell{X: 0, Y: 0})

	piece.Elapse(300 * time.Millisecond)
	assert.Equal(t, 300*time.Millisecond, piece.LockTime())

	assert.False(t, piece.Move(100, 0))
	assert.Equal(t, 300*time.Millisecond, piece.LockTime())

	assert.True(t, piece.Move(1, 0))
	assert.Equal(t, time.Duration(0), piece.LockTime())
}

func TestPieceRotationTransform(t *testing.T) {
	tests := []struct {
		kind tetris.Kind
		want [4]tetris.Cell
	}{
		{tetris.KindI, [4]tetris.Cell{{X: 1, Y: 2}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: -1}}},
		{tetris.KindT, [4]tetris.Cell{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 0}, {X: 0, Y: -1}}},
		{tetris.KindO, [4]tetris.Cell{{X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 0}}},
		{tetris.KindJ, [4]tetris.Cell{{X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}, {X: 0, Y: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			_, piece := newTestPiece(t, tt.kind, tetris.Cell{X: 0, Y: 0})
			require.True(t, piece.Rotate(1))
			assert.Equal(t, 1, piece.Rotation())
			assert.Equal(t, tt.want, piece.Offsets())
			assert.Equal(t, tetris.Cell{X: 0, Y: 0}, piece.Position())
		})
	}
}

func TestPieceRotationReversible(t *testing.T) {
	for _, shape := range tetris.DefaultCatalog() {
		t.Run(shape.Kind.String(), func(t *testing.T) {
			_, piece := newTestPiece(t, shape.Kind, tetris.Cell{X: 0, Y: 0})

			for turn := 0; turn < 4; turn++ {
				rotation, offsets, position := piece.Rotation(), piece.Offsets(), piece.Position()

				require.True(t, piece.Rotate(1))
				require.True(t, piece.Rotate(-1))
				assert.Equal(t, rotation, piece.Rotation())
				assert.Equal(t, offsets, piece.Offsets())
				assert.Equal(t, position, piece.Position())

				require.True(t, piece.Rotate(-1))
				require.True(t, piece.Rotate(1))
				assert.Equal(t, rotation, piece.Rotation())
				assert.Equal(t, offsets, piece.Offsets())

				require.True(t, piece.Rotate(1))
			}

			assert.Equal(t, 0, piece.Rotation())
			assert.Equal(t, shape.Cells, piece.Offsets())
		})
	}
}

func TestPieceORotationKeepsCells(t *testing.T) {
	_, piece := newTestPiece(t, tetris.KindO, tetris.Cell{X: 0, Y: 0})
	before := cellSet(piece.Cells())

	for i := 0; i < 4; i++ {
		require.True(t, piece.Rotate(1))
		assert.Equal(t, before, cellSet(piece.Cells()))
	}
}

func TestPieceRotationWallKick(t *testing.T) {
	// At the floor the in-place clockwise T rotation pokes below the board, so the
	// first kick that fits is (0, 2) from row 2 of the table.
	_, piece := newTestPiece(t, tetris.KindT, tetris.Cell{X: 0, Y: -10})

	require.True(t, piece.Rotate(1))
	assert.Equal(t, 1, piece.Rotation())
	assert.Equal(t, tetris.Cell{X: 0, Y: -8}, piece.Position())
}

func TestPieceRotationWallKickFallback(t *testing.T) {
	for _, kind := range []tetris.Kind{tetris.KindI, tetris.KindT, tetris.KindS, tetris.KindZ, tetris.KindJ, tetris.KindL} {
		t.Run(kind.String(), func(t *testing.T) {
			grid, piece := newTestPiece(t, kind, tetris.Cell{X: 0, Y: 0})

			own := cellSet(piece.Cells())
			b := grid.Bounds()
			for y := b.YMin; y < b.YMax; y++ {
				for x := b.XMin; x < b.XMax; x++ {
					c := tetris.Cell{X: x, Y: y}
					if !own[c] {
						grid.Place([]tetris.Cell{c}, 9)
					}
				}
			}

			rotation, offsets, position := piece.Rotation(), piece.Offsets(), piece.Position()
			for _, dir := range []int{1, -1} {
				assert.False(t, piece.Rotate(dir))
				assert.Equal(t, rotation, piece.Rotation())
				assert.Equal(t, offsets, piece.Offsets())
				assert.Equal(t, position, piece.Position())
			}
		})
	}
}

func TestPieceStep(t *testing.T) {
	_, piece := newTestPiece(t, tetris.KindT, tetris.Cell{X: -1, Y: 8})

	piece.Elapse(testStepDelay - time.Millisecond)
	_, locked := piece.Step()
	assert.False(t, locked)
	assert.Equal(t, tetris.Cell{X: -1, Y: 8}, piece.Position())

	piece.Elapse(time.Millisecond)
	_, locked = piece.Step()
	assert.False(t, locked)
	assert.Equal(t, tetris.Cell{X: -1, Y: 7}, piece.Position())

	// The timer restarted, so the next step is a full delay away.
	piece.Elapse(testStepDelay / 2)
	piece.Step()
	assert.Equal(t, tetris.Cell{X: -1, Y: 7}, piece.Position())
}

func TestPieceStepLocksAfterDelay(t *testing.T) {
	grid, piece := newTestPiece(t, tetris.KindT, tetris.Cell{X: 0, Y: -10})

	piece.Elapse(testStepDelay)
	rows, locked := piece.Step()
	assert.True(t, locked)
	assert.Equal(t, 0, rows)
	assert.Equal(t, tetris.PieceLocked, piece.State())
	assert.Equal(t, 4, grid.Occupied())

	assert.False(t, piece.Move(1, 0))
	assert.False(t, piece.Rotate(1))
}

func TestPieceStepWaitsForLockDelay(t *testing.T) {
	grid := newTestGrid()
	catalog := tetris.DefaultCatalog()
	piece := tetris.NewPiece(grid, 100*time.Millisecond, time.Second)
	piece.Initialize(&catalog[catalog.Index(tetris.KindO)], tetris.Cell{X: 0, Y: -10})

	piece.Elapse(100 * time.Millisecond)
	_, locked := piece.Step()
	assert.False(t, locked)

	for i := 0; i < 9; i++ {
		piece.Elapse(100 * time.Millisecond)
		_, locked = piece.Step()
	}
	assert.True(t, locked)
	assert.Equal(t, 4, grid.Occupied())
}

func TestPieceHardDrop(t *testing.T) {
	grid, piece := newTestPiece(t, tetris.KindI, tetris.Cell{X: -1, Y: 8})

	dropped, cleared := piece.HardDrop()
	assert.Equal(t, 19, dropped)
	assert.Equal(t, 0, cleared)
	assert.Equal(t, tetris.PieceLocked, piece.State())

	for x := -2; x <= 1; x++ {
		assert.True(t, grid.IsOccupied(tetris.Cell{X: x, Y: -10}), "x=%d", x)
	}
}

func TestPieceHardDropClearsRows(t *testing.T) {
	grid, piece := newTestPiece(t, tetris.KindI, tetris.Cell{X: -1, Y: 8})
	for _, x := range []int{-5, -4, -3, 2, 3, 4} {
		grid.Place([]tetris.Cell{{X: x, Y: -10}}, 9)
	}

	_, cleared := piece.HardDrop()
	assert.Equal(t, 1, cleared)
	assert.Equal(t, 0, grid.Occupied())
}

func TestPieceLockIsTerminal(t *testing.T) {
	grid, piece := newTestPiece(t, tetris.KindO, tetris.Cell{X: 0, Y: 0})

	piece.Lock()
	assert.Equal(t, 4, grid.Occupied())
	assert.Equal(t, 0, piece.Lock())

	dropped, cleared := piece.HardDrop()
	assert.Zero(t, dropped)
	assert.Zero(t, cleared)
	assert.False(t, piece.Move(0, -1))
}

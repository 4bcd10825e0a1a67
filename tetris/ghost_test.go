package tetris_test

import (
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

func TestProjectEmptyBoard(t *testing.T) {
	grid, piece := newTestPiece(t, tetris.KindO, tetris.Cell{X: -1, Y: 8})

	ghost := tetris.Project(grid, piece)
	assert.Equal(t, tetris.Cell{X: -1, Y: -10}, ghost.Position)
	assert.Equal(t, cellSet([4]tetris.Cell{{X: -1, Y: -9}, {X: 0, Y: -9}, {X: -1, Y: -10}, {X: 0, Y: -10}}), cellSet(ghost.Cells))

	assert.Equal(t, tetris.Cell{X: -1, Y: 8}, piece.Position())
	assert.Equal(t, tetris.PieceFalling, piece.State())
	assert.Equal(t, 0, grid.Occupied())
}

func TestProjectLandsOnStack(t *testing.T) {
	grid, piece := newTestPiece(t, tetris.KindI, tetris.Cell{X: -1, Y: 8})
	grid.Place([]tetris.Cell{{X: 0, Y: -5}}, 9)

	ghost := tetris.Project(grid, piece)
	assert.Equal(t, tetris.Cell{X: -1, Y: -5}, ghost.Position)
	for _, c := range ghost.Cells {
		assert.Equal(t, -4, c.Y)
	}
}

func TestProjectIgnoresStagedPiece(t *testing.T) {
	tiles := tetris.NewTileBuffer()
	grid := tetris.NewGrid(tetris.NewBounds(10, 20), tiles)
	catalog := tetris.DefaultCatalog()
	piece := tetris.NewPiece(grid, testStepDelay, testLockDelay)
	piece.Initialize(&catalog[catalog.Index(tetris.KindT)], tetris.Cell{X: 0, Y: 0})

	staged := piece.Cells()
	grid.Place(staged[:], piece.Shape().Visual)
	tiles.Flush(tetris.TileSinkFunc(func(tetris.Cell, tetris.Visual) {}))
	lockTime := piece.LockTime()

	ghost := tetris.Project(grid, piece)
	assert.Equal(t, tetris.Cell{X: 0, Y: -10}, ghost.Position)

	// The staged cells are back and nothing was reported to the sink.
	for _, c := range staged {
		assert.True(t, grid.IsOccupied(c))
	}
	assert.Equal(t, 4, grid.Occupied())
	assert.Zero(t, tiles.Len())
	assert.Equal(t, lockTime, piece.LockTime())
	assert.Equal(t, 0, piece.Rotation())
	assert.Equal(t, tetris.Cell{X: 0, Y: 0}, piece.Position())
}

func TestProjectAtRest(t *testing.T) {
	grid, piece := newTestPiece(t, tetris.KindT, tetris.Cell{X: 0, Y: -10})

	ghost := tetris.Project(grid, piece)
	assert.Equal(t, piece.Position(), ghost.Position)
	assert.Equal(t, piece.Cells(), ghost.Cells)
}

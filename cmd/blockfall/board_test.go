package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardMirrorsSession(t *testing.T) {
	cfg := tetris.DefaultConfig()
	cfg.Seed = 11
	board := NewBoard(cfg.Bounds())
	session, err := tetris.NewSession(cfg, tetris.WithTileSink(board))
	require.NoError(t, err)

	session.Start()
	for range 40 {
		session.Tick(cfg.StepDelay/4, []tetris.Input{tetris.InputMoveLeft})
		session.HardDrop()
	}

	grid := session.Grid()
	assert.Equal(t, grid.Occupied(), board.Occupied())
	b := grid.Bounds()
	for y := b.YMin; y < b.YMax; y++ {
		for x := b.XMin; x < b.XMax; x++ {
			c := tetris.Cell{X: x, Y: y}
			assert.Equal(t, grid.At(c), board.At(c), "cell %v", c)
		}
	}
}

func TestBoardIgnoresOutOfBounds(t *testing.T) {
	board := NewBoard(tetris.NewBounds(4, 4))
	board.SetTile(tetris.Cell{X: 10, Y: 0}, 3)
	assert.Zero(t, board.Occupied())
	assert.Equal(t, tetris.VisualNone, board.At(tetris.Cell{X: 10, Y: 0}))
}

func TestBoardScreenPos(t *testing.T) {
	board := NewBoard(tetris.NewBounds(10, 20))

	x, y := board.screenPos(tetris.Cell{X: -5, Y: 9}, 50, 50, 30)
	assert.Equal(t, float32(50), x)
	assert.Equal(t, float32(50), y)

	x, y = board.screenPos(tetris.Cell{X: 4, Y: -10}, 50, 50, 30)
	assert.Equal(t, float32(50+9*30), x)
	assert.Equal(t, float32(50+19*30), y)
}

func TestTileColor(t *testing.T) {
	assert.Equal(t, tileColors[0], tileColor(1))
	assert.Equal(t, tileColors[6], tileColor(7))
	assert.NotEqual(t, tileColors[0], tileColor(0))
}

func TestPressedInput(t *testing.T) {
	tests := []struct {
		name string
		keys []ebiten.Key
		want tetris.Input
	}{
		{"nothing", nil, tetris.InputNone},
		{"arrow left", []ebiten.Key{ebiten.KeyArrowLeft}, tetris.InputMoveLeft},
		{"d", []ebiten.Key{ebiten.KeyD}, tetris.InputMoveRight},
		{"s", []ebiten.Key{ebiten.KeyS}, tetris.InputSoftDrop},
		{"up", []ebiten.Key{ebiten.KeyArrowUp}, tetris.InputHardDrop},
		{"q", []ebiten.Key{ebiten.KeyQ}, tetris.InputRotateCCW},
		{"e", []ebiten.Key{ebiten.KeyE}, tetris.InputRotateCW},
		{"left wins over rotate", []ebiten.Key{ebiten.KeyE, ebiten.KeyA}, tetris.InputMoveLeft},
		{"unbound", []ebiten.Key{ebiten.KeySpace}, tetris.InputNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pressed := func(k ebiten.Key) bool {
				for _, want := range tt.keys {
					if k == want {
						return true
					}
				}
				return false
			}
			assert.Equal(t, tt.want, pressedInput(pressed))
		})
	}
}

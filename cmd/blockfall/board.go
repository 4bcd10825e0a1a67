package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/tetris"
)

var tileColors = []color.RGBA{
	{102, 191, 255, 255}, // I
	{255, 203, 0, 255},   // O
	{200, 122, 255, 255}, // T
	{0, 158, 47, 255},    // S
	{255, 109, 194, 255}, // Z
	{0, 121, 241, 255},   // J
	{255, 161, 0, 255},   // L
}

var (
	ghostColor  = color.RGBA{255, 255, 255, 60}
	borderColor = color.RGBA{130, 130, 130, 255}
	gapColor    = color.RGBA{0, 0, 0, 255}
)

// Board mirrors the session's tiles as they are flushed to it.
type Board struct {
	bounds tetris.Bounds
	tiles  []tetris.Visual
}

func NewBoard(bounds tetris.Bounds) *Board {
	return &Board{
		bounds: bounds,
		tiles:  make([]tetris.Visual, bounds.Width()*bounds.Height()),
	}
}

func (b *Board) index(c tetris.Cell) (int, bool) {
	if !b.bounds.Contains(c) {
		return 0, false
	}
	return (c.Y-b.bounds.YMin)*b.bounds.Width() + (c.X - b.bounds.XMin), true
}

// SetTile implements tetris.TileSink.
func (b *Board) SetTile(c tetris.Cell, v tetris.Visual) {
	if i, ok := b.index(c); ok {
		b.tiles[i] = v
	}
}

func (b *Board) At(c tetris.Cell) tetris.Visual {
	if i, ok := b.index(c); ok {
		return b.tiles[i]
	}
	return tetris.VisualNone
}

func (b *Board) Occupied() int {
	n := 0
	for _, v := range b.tiles {
		if v != tetris.VisualNone {
			n++
		}
	}
	return n
}

// screenPos maps a board cell to the top-left pixel of its tile. Board rows
// grow upward, screen rows downward.
func (b *Board) screenPos(c tetris.Cell, originX, originY, cellSize float32) (float32, float32) {
	col := c.X - b.bounds.XMin
	row := b.bounds.YMax - 1 - c.Y
	return originX + float32(col)*cellSize, originY + float32(row)*cellSize
}

// Draw renders the frame, the ghost and every tile.
func (b *Board) Draw(screen *ebiten.Image, ghost *tetris.Ghost, originX, originY, cellSize float32) {
	w := float32(b.bounds.Width()) * cellSize
	h := float32(b.bounds.Height()) * cellSize
	vector.StrokeRect(screen, originX-2, originY-2, w+4, h+4, 2, borderColor, false)

	if ghost != nil {
		for _, c := range ghost.Cells {
			if b.At(c) != tetris.VisualNone {
				continue
			}
			x, y := b.screenPos(c, originX, originY, cellSize)
			vector.DrawFilledRect(screen, x, y, cellSize, cellSize, ghostColor, false)
		}
	}

	for y := b.bounds.YMin; y < b.bounds.YMax; y++ {
		for x := b.bounds.XMin; x < b.bounds.XMax; x++ {
			c := tetris.Cell{X: x, Y: y}
			v := b.At(c)
			if v == tetris.VisualNone {
				continue
			}
			sx, sy := b.screenPos(c, originX, originY, cellSize)
			vector.DrawFilledRect(screen, sx, sy, cellSize, cellSize, tileColor(v), false)
			vector.StrokeRect(screen, sx, sy, cellSize, cellSize, 1, gapColor, false)
		}
	}
}

func tileColor(v tetris.Visual) color.RGBA {
	i := int(v) - 1
	if i < 0 || i >= len(tileColors) {
		return color.RGBA{200, 200, 200, 255}
	}
	return tileColors[i]
}

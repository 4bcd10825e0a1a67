package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/tetris"
)

var tileStyles = []tcell.Style{
	tcell.StyleDefault.Foreground(tcell.ColorAqua),
	tcell.StyleDefault.Foreground(tcell.ColorYellow),
	tcell.StyleDefault.Foreground(tcell.ColorPurple),
	tcell.StyleDefault.Foreground(tcell.ColorGreen),
	tcell.StyleDefault.Foreground(tcell.ColorRed),
	tcell.StyleDefault.Foreground(tcell.ColorBlue),
	tcell.StyleDefault.Foreground(tcell.ColorOrange),
}

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	ghostStyle  = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

const (
	tileRune  = '█'
	ghostRune = '░'
	emptyRune = ' '
	// Each board cell spans two terminal columns so tiles look square.
	cellWidth = 2
)

// View draws a session onto a tcell screen. Tiles arrive through SetTile as
// the session flushes them; the ghost and side panel are redrawn every frame.
type View struct {
	screen  tcell.Screen
	bounds  tetris.Bounds
	originX int
	originY int
	ghost   []tetris.Cell
}

func NewView(screen tcell.Screen, bounds tetris.Bounds) *View {
	return &View{screen: screen, bounds: bounds, originX: 1, originY: 1}
}

// screenPos returns the terminal column and row of a cell's left half.
func (v *View) screenPos(c tetris.Cell) (int, int) {
	col := v.originX + (c.X-v.bounds.XMin)*cellWidth
	row := v.originY + (v.bounds.YMax - 1 - c.Y)
	return col, row
}

// SetTile implements tetris.TileSink.
func (v *View) SetTile(c tetris.Cell, vis tetris.Visual) {
	if !v.bounds.Contains(c) {
		return
	}
	if vis == tetris.VisualNone {
		v.put(c, emptyRune, tcell.StyleDefault)
		return
	}
	v.put(c, tileRune, tileStyle(vis))
}

func (v *View) put(c tetris.Cell, r rune, style tcell.Style) {
	x, y := v.screenPos(c)
	for i := range cellWidth {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func tileStyle(vis tetris.Visual) tcell.Style {
	i := int(vis) - 1
	if i < 0 || i >= len(tileStyles) {
		return textStyle
	}
	return tileStyles[i]
}

// DrawFrame draws the well border.
func (v *View) DrawFrame() {
	w := v.bounds.Width() * cellWidth
	h := v.bounds.Height()
	left, top := v.originX-1, v.originY-1
	right, bottom := v.originX+w, v.originY+h

	for y := top; y <= bottom; y++ {
		v.screen.SetContent(left, y, '│', nil, borderStyle)
		v.screen.SetContent(right, y, '│', nil, borderStyle)
	}
	for x := left; x <= right; x++ {
		v.screen.SetContent(x, bottom, '─', nil, borderStyle)
	}
	v.screen.SetContent(left, bottom, '└', nil, borderStyle)
	v.screen.SetContent(right, bottom, '┘', nil, borderStyle)
}

// Redraw repaints every tile from the grid, for when the screen was cleared.
func (v *View) Redraw(grid *tetris.Grid) {
	v.ghost = v.ghost[:0]
	for y := v.bounds.YMin; y < v.bounds.YMax; y++ {
		for x := v.bounds.XMin; x < v.bounds.XMax; x++ {
			c := tetris.Cell{X: x, Y: y}
			v.SetTile(c, grid.At(c))
		}
	}
}

// DrawGhost erases the previous ghost and draws the current one on empty cells.
func (v *View) DrawGhost(session *tetris.Session) {
	grid := session.Grid()
	for _, c := range v.ghost {
		if grid.At(c) == tetris.VisualNone {
			v.put(c, emptyRune, tcell.StyleDefault)
		}
	}
	v.ghost = v.ghost[:0]

	ghost, ok := session.Ghost()
	if !ok {
		return
	}
	for _, c := range ghost.Cells {
		if !v.bounds.Contains(c) || grid.At(c) != tetris.VisualNone {
			continue
		}
		v.put(c, ghostRune, ghostStyle)
		v.ghost = append(v.ghost, c)
	}
}

// DrawPanel writes stats, the preview queue and the game-over banner to the
// right of the well.
func (v *View) DrawPanel(session *tetris.Session, preview int) {
	x := v.originX + v.bounds.Width()*cellWidth + 3
	y := v.originY
	stats := session.Stats()

	lines := []string{
		fmt.Sprintf("LINES  %-6d", stats.RowsCleared),
		fmt.Sprintf("PIECES %-6d", stats.PiecesLocked),
		"",
		"NEXT",
	}
	next := session.Preview(preview)
	for _, kind := range next {
		lines = append(lines, "  "+kind.String())
	}
	for range preview - len(next) {
		lines = append(lines, "")
	}
	lines = append(lines, "")
	if session.State() == tetris.SessionOver {
		lines = append(lines, "GAME OVER", "R to restart")
	} else {
		lines = append(lines, "", "")
	}
	lines = append(lines, "", "ESC to quit")

	for i, line := range lines {
		v.drawText(x, y+i, fmt.Sprintf("%-14s", line))
	}
}

func (v *View) drawText(x, y int, s string) {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, textStyle)
	}
}

package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

// SessionWindow inspects a live session: lifecycle, counters, the active
// piece, the upcoming shapes and an ASCII dump of the board.
type SessionWindow struct {
	Session *tetris.Session
	// Driver, when set, exposes a pause toggle.
	Driver  *loop.SessionSystem
	Preview int
}

func NewSessionWindow(session *tetris.Session, driver *loop.SessionSystem) *SessionWindow {
	return &SessionWindow{Session: session, Driver: driver, Preview: 5}
}

func (sw *SessionWindow) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 310), imgui.CondOnce)

	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	for _, line := range Describe(sw.Session, sw.Preview) {
		imgui.Text(line)
	}

	imgui.Separator()
	if sw.Driver != nil {
		imgui.Checkbox("Paused", &sw.Driver.Paused)
		imgui.SameLine()
	}
	if imgui.Button("Restart") {
		sw.Session.Restart()
	}

	if imgui.TreeNodeStr("Board") {
		for _, line := range BoardLines(sw.Session.Grid()) {
			imgui.Text(line)
		}
		imgui.TreePop()
	}

	imgui.End()
}

// Describe summarizes a session as display lines.
func Describe(session *tetris.Session, preview int) []string {
	stats := session.Stats()
	lines := []string{
		fmt.Sprintf("ID: %s", session.ID()),
		fmt.Sprintf("State: %s", session.State()),
		fmt.Sprintf("Ticks: %d", stats.Ticks),
		fmt.Sprintf("Pieces: %d spawned, %d locked", stats.PiecesSpawned, stats.PiecesLocked),
		fmt.Sprintf("Rows Cleared: %d", stats.RowsCleared),
		fmt.Sprintf("Occupied: %d", session.Grid().Occupied()),
	}

	piece := session.Piece()
	if session.State() == tetris.SessionRunning && piece.State() == tetris.PieceFalling {
		lines = append(lines,
			fmt.Sprintf("Piece: %s rot %d at (%d, %d)", piece.Shape().Kind, piece.Rotation(), piece.Position().X, piece.Position().Y),
			fmt.Sprintf("Lock Timer: %s", piece.LockTime()),
		)
		if ghost, ok := session.Ghost(); ok {
			lines = append(lines, fmt.Sprintf("Ghost: (%d, %d)", ghost.Position.X, ghost.Position.Y))
		}
	}

	if preview > 0 {
		kinds := session.Preview(preview)
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = k.String()
		}
		lines = append(lines, "Next: "+strings.Join(names, " "))
	}
	return lines
}

// BoardLines renders the grid top row first, '#' for occupied cells.
func BoardLines(grid *tetris.Grid) []string {
	rows := grid.Rows()
	lines := make([]string, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		var b strings.Builder
		for _, v := range rows[i] {
			if v == tetris.VisualNone {
				b.WriteByte('.')
			} else {
				b.WriteByte('#')
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}

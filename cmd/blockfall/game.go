package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

const (
	ScreenWidth  = 500
	ScreenHeight = 700
	CellSize     = 30
	BoardOffset  = 50
	PreviewCount = 5
)

// Game implements ebiten.Game on top of a loop.Scheduler.
type Game struct {
	session   *tetris.Session
	scheduler *loop.Scheduler
	board     *Board
	dt        float64

	// Set only when the debug overlay is enabled.
	imgui *debugui_ebiten.ImguiBackend
	ui    *debugui.System
	perf  *debugui.PerformanceWindow
	timer *debugui.FrameTimer
}

func NewGame(session *tetris.Session, board *Board, tickRate int) *Game {
	g := &Game{
		session:   session,
		scheduler: loop.NewScheduler(session),
		board:     board,
		dt:        1.0 / float64(tickRate),
	}
	return g
}

// EnableDebug adds the imgui overlay. It must be called before the systems
// are registered so that keyboard capture is respected.
func (g *Game) EnableDebug(backend *debugui_ebiten.ImguiBackend, driver *loop.SessionSystem) {
	g.imgui = backend
	g.ui = &debugui.System{}
	g.perf = debugui.NewPerformanceWindow(g.scheduler, 120)
	g.timer = debugui.NewFrameTimer()
	g.ui.Add(debugui.NewSessionWindow(g.session, driver).Render)
	g.ui.Add(g.perf.Render)
}

// RegisterSystems wires input, simulation and restart handling.
func (g *Game) RegisterSystems(driver *loop.SessionSystem) {
	g.scheduler.Register(&loop.InputSystem{Poll: g.pollInput})
	g.scheduler.Register(driver)
	g.scheduler.Register(&loop.RestartSystem{Requested: g.restartRequested})
	if g.ui != nil {
		g.scheduler.Register(g.ui)
	}
}

func (g *Game) keyboardCaptured() bool {
	return g.ui != nil && g.ui.State.WantCaptureKeyboard
}

func (g *Game) pollInput() []tetris.Input {
	if g.keyboardCaptured() {
		return nil
	}
	return pollKeyboard()
}

func (g *Game) restartRequested() bool {
	return !g.keyboardCaptured() && inpututil.IsKeyJustPressed(ebiten.KeyR)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.imgui == nil {
		g.scheduler.Once(g.dt)
		return nil
	}

	g.perf.Record(g.timer.GetDeltaTime())
	g.imgui.Frame(func() {
		g.scheduler.Once(g.dt)
	})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	var ghost *tetris.Ghost
	if gh, ok := g.session.Ghost(); ok {
		ghost = &gh
	}
	g.board.Draw(screen, ghost, BoardOffset, BoardOffset, CellSize)
	g.drawHUD(screen)

	if g.imgui != nil {
		g.imgui.Overlay(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	bounds := g.session.Grid().Bounds()
	textX := BoardOffset + bounds.Width()*CellSize + 20
	stats := g.session.Stats()

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("LINES\n%d", stats.RowsCleared), textX, BoardOffset)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("PIECES\n%d", stats.PiecesLocked), textX, BoardOffset+40)

	next := g.session.Preview(PreviewCount)
	names := make([]string, len(next))
	for i, kind := range next {
		names[i] = kind.String()
	}
	ebitenutil.DebugPrintAt(screen, "NEXT\n"+strings.Join(names, "\n"), textX, BoardOffset+80)

	if g.session.State() == tetris.SessionOver {
		midY := BoardOffset + bounds.Height()*CellSize/2
		ebitenutil.DebugPrintAt(screen, "GAME OVER", BoardOffset+20, midY-10)
		ebitenutil.DebugPrintAt(screen, "Press R to restart", BoardOffset+10, midY+10)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return ScreenWidth, ScreenHeight
}

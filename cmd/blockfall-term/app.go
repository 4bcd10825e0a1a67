package main

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
	"github.com/sirupsen/logrus"
)

const previewCount = 5

// App couples a session to a terminal. Key events arrive on the event
// goroutine and are handed to the scheduler through a buffered channel.
type App struct {
	screen    tcell.Screen
	session   *tetris.Session
	view      *View
	scheduler *loop.Scheduler
	log       *logrus.Entry

	inputs  chan tetris.Input
	restart atomic.Bool
	resized atomic.Bool
	quit    func()
}

func NewApp(screen tcell.Screen, cfg tetris.Config, log *logrus.Entry) (*App, error) {
	app := &App{
		screen: screen,
		view:   NewView(screen, cfg.Bounds()),
		log:    log,
		inputs: make(chan tetris.Input, 16),
		quit:   func() {},
	}

	session, err := tetris.NewSession(cfg,
		tetris.WithTileSink(app.view),
		tetris.WithLogger(log),
		tetris.WithGameOverHandler(app.gameOver),
	)
	if err != nil {
		return nil, err
	}
	app.session = session

	app.scheduler = loop.NewScheduler(session)
	app.scheduler.SetLogger(log)
	app.scheduler.Register(&loop.InputSystem{Poll: app.pollInput})
	app.scheduler.Register(&loop.SessionSystem{})
	app.scheduler.Register(&loop.RestartSystem{Requested: func() bool { return app.restart.Swap(false) }})
	app.scheduler.Register(loop.SystemFunc(app.render))
	return app, nil
}

func (a *App) gameOver(id uuid.UUID, stats tetris.Stats) {
	a.log.WithFields(logrus.Fields{
		"session": id,
		"locked":  stats.PiecesLocked,
		"rows":    stats.RowsCleared,
	}).Info("game over")
}

// Start clears the screen and begins the session.
func (a *App) Start() {
	a.screen.Clear()
	a.view.DrawFrame()
	a.session.Start()
	a.view.DrawPanel(a.session, previewCount)
	a.screen.Show()
}

// Run pumps terminal events and drives the scheduler at the given interval
// until ctx is done or the player quits.
func (a *App) Run(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.quit = cancel

	events := make(chan tcell.Event, 64)
	stop := make(chan struct{})
	defer close(stop)
	go a.screen.ChannelEvents(events, stop)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				a.HandleEvent(ev)
			}
		}
	}()

	a.scheduler.Run(ctx, interval)
}

// HandleEvent processes one terminal event. Safe to call from the event goroutine.
func (a *App) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		cmd, input := translateKey(ev)
		switch cmd {
		case commandQuit:
			a.quit()
		case commandRestart:
			a.restart.Store(true)
		case commandInput:
			select {
			case a.inputs <- input:
			default:
			}
		}
	case *tcell.EventResize:
		a.resized.Store(true)
	}
}

// pollInput hands at most one queued input to each frame.
func (a *App) pollInput() []tetris.Input {
	select {
	case input := <-a.inputs:
		return []tetris.Input{input}
	default:
		return nil
	}
}

func (a *App) render(frame *loop.Frame) {
	if a.resized.Swap(false) {
		a.screen.Clear()
		a.view.DrawFrame()
		a.view.Redraw(a.session.Grid())
		a.screen.Sync()
	}
	a.view.DrawGhost(a.session)
	a.view.DrawPanel(a.session, previewCount)
	a.screen.Show()
}

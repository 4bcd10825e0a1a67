// Command blockfall plays a falling-block game in an Ebiten window.
package main

import (
	"flag"
	"os"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/config"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
	"github.com/sirupsen/logrus"
)

func main() {
	debug := flag.Bool("debug", false, "Show the Dear ImGui inspector overlay.")

	cfg, err := config.Load(config.EnvFile())
	if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("invalid config")
	}

	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		logrus.WithError(err).Fatal("configuring logger")
	}
	log := logrus.NewEntry(logger).WithField("frontend", "ebiten")

	engine := cfg.Engine()
	board := NewBoard(engine.Bounds())
	session, err := tetris.NewSession(engine,
		tetris.WithTileSink(board),
		tetris.WithLogger(log),
		tetris.WithGameOverHandler(func(id uuid.UUID, stats tetris.Stats) {
			log.WithFields(logrus.Fields{
				"session": id,
				"locked":  stats.PiecesLocked,
				"rows":    stats.RowsCleared,
			}).Info("game over, press R to restart")
		}),
	)
	if err != nil {
		log.WithError(err).Fatal("creating session")
	}

	game := NewGame(session, board, cfg.TickRate)
	game.scheduler.SetLogger(log)
	driver := &loop.SessionSystem{}

	if *debug {
		game.EnableDebug(debugui_ebiten.NewImguiBackend("blockfall (debug)", 1280, 720), driver)
	} else {
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
		ebiten.SetWindowTitle("blockfall")
	}
	ebiten.SetTPS(cfg.TickRate)
	game.RegisterSystems(driver)

	log.WithField("seed", engine.Seed).Info("starting")
	session.Start()

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Fatal("game exited")
	}
}

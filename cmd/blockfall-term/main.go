// Command blockfall-term plays a falling-block game in the terminal.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/config"
	"github.com/sirupsen/logrus"
)

func main() {
	logFile := flag.String("log-file", "", "Append logs to this file. Logs are discarded when empty.")

	cfg, err := config.Load(config.EnvFile())
	if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("invalid config")
	}

	var out io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logrus.WithError(err).Fatal("opening log file")
		}
		defer f.Close()
		out = f
	}
	logger, err := cfg.Logger(out)
	if err != nil {
		logrus.WithError(err).Fatal("configuring logger")
	}
	log := logrus.NewEntry(logger).WithField("frontend", "tcell")

	screen, err := tcell.NewScreen()
	if err != nil {
		log.WithError(err).Fatal("creating screen")
	}
	if err := screen.Init(); err != nil {
		log.WithError(err).Fatal("initializing screen")
	}
	defer screen.Fini()
	screen.HideCursor()

	engine := cfg.Engine()
	app, err := NewApp(screen, engine, log)
	if err != nil {
		screen.Fini()
		log.WithError(err).Fatal("creating session")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.WithField("seed", engine.Seed).Info("starting")
	app.Start()
	app.Run(ctx, cfg.TickInterval())
	log.WithField("stats", app.session.Stats()).Info("exiting")
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
	"github.com/sirupsen/logrus"
)

type workerOptions struct {
	InputRate float64
	TickRate  int
	// MaxFrames stops the worker early when positive.
	MaxFrames int64
}

// WorkerResult summarizes one autoplayed session across all of its restarts.
type WorkerResult struct {
	Worker     int
	Seed       uint64
	Games      int
	Frames     int64
	Pieces     int64
	Rows       int64
	Mismatches int
	UpdateTime Stats
	Systems    []loop.SystemStats
}

// countingSink tracks how many tiles a renderer would currently show.
type countingSink struct {
	tiles map[tetris.Cell]struct{}
}

func (s *countingSink) SetTile(c tetris.Cell, v tetris.Visual) {
	if v == tetris.VisualNone {
		delete(s.tiles, c)
		return
	}
	s.tiles[c] = struct{}{}
}

// runWorker autoplays one session with a simulated clock until ctx is done,
// restarting it after every game over.
func runWorker(ctx context.Context, id int, cfg tetris.Config, opts workerOptions, log *logrus.Entry) (WorkerResult, error) {
	result := WorkerResult{Worker: id, Seed: cfg.Seed}
	log = log.WithField("worker", id)

	var finished tetris.Stats
	sink := &countingSink{tiles: make(map[tetris.Cell]struct{})}
	session, err := tetris.NewSession(cfg,
		tetris.WithTileSink(sink),
		tetris.WithLogger(log),
		tetris.WithGameOverHandler(func(id uuid.UUID, stats tetris.Stats) {
			result.Games++
			finished.PiecesLocked += stats.PiecesLocked
			finished.RowsCleared += stats.RowsCleared
		}),
	)
	if err != nil {
		return result, fmt.Errorf("worker %d: %w", id, err)
	}

	scheduler := loop.NewScheduler(session)
	scheduler.SetLogger(log)
	scheduler.Register(NewAutoplaySystem(cfg.Seed, opts.InputRate))
	scheduler.Register(&loop.SessionSystem{})
	scheduler.Register(&loop.RestartSystem{Requested: func() bool { return true }})

	dt := 1.0 / float64(opts.TickRate)
	session.Start()

	for opts.MaxFrames <= 0 || result.Frames < opts.MaxFrames {
		if ctx.Err() != nil {
			break
		}

		start := time.Now()
		scheduler.Once(dt)
		result.UpdateTime.Samples = append(result.UpdateTime.Samples, time.Since(start))
		result.Frames++

		if len(sink.tiles) != session.Grid().Occupied() {
			result.Mismatches++
		}
	}

	// Count the game still in progress.
	current := session.Stats()
	result.Pieces = finished.PiecesLocked + current.PiecesLocked
	result.Rows = finished.RowsCleared + current.RowsCleared
	result.UpdateTime.Finalize()
	result.Systems = scheduler.GetStats().Systems

	log.WithFields(logrus.Fields{
		"games":  result.Games,
		"frames": result.Frames,
		"rows":   result.Rows,
	}).Info("worker finished")
	return result, nil
}

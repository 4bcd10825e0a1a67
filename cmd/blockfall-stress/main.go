// Command blockfall-stress autoplays sessions headlessly and prints a
// markdown report of gameplay totals and frame timings.
package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/config"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	workers := flag.Int("workers", runtime.NumCPU(), "The number of sessions to autoplay concurrently.")
	inputRate := flag.Float64("input-rate", 0.3, "Probability of a random input on each frame.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")

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
	log := logrus.NewEntry(logger)

	if *workers < 1 {
		*workers = 1
	}
	engine := cfg.Engine()
	report := &Report{
		Duration:       *duration,
		Workers:        *workers,
		InputRate:      *inputRate,
		TickRate:       cfg.TickRate,
		Engine:         engine,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.WithFields(logrus.Fields{
		"duration": *duration,
		"workers":  *workers,
		"seed":     engine.Seed,
	}).Info("starting stress test")

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	opts := workerOptions{InputRate: *inputRate, TickRate: cfg.TickRate}
	results := make([]WorkerResult, *workers)
	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for i := range *workers {
		workerCfg := engine
		workerCfg.Seed = engine.Seed + uint64(i)
		g.Go(func() error {
			result, err := runWorker(ctx, i, workerCfg, opts, log)
			results[i] = result
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("stress test failed")
	}

	report.TotalTime = time.Since(startTime)
	for _, result := range results {
		report.Add(result)
	}
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished")

	if err := report.Generate(os.Stdout); err != nil {
		log.WithError(err).Fatal("generating report")
	}

	if report.Mismatches > 0 {
		log.WithField("mismatches", report.Mismatches).Error("tile sink diverged from the grid")
		os.Exit(1)
	}
}

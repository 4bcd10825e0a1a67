package loop_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSystem struct {
	ExecuteCount int
	order        *[]string
	name         string
}

func (s *countingSystem) Execute(frame *loop.Frame) {
	s.ExecuteCount++
	if s.order != nil {
		*s.order = append(*s.order, s.name)
	}
}

func newSession(t *testing.T) *tetris.Session {
	t.Helper()
	cfg := tetris.DefaultConfig()
	cfg.Seed = 7
	session, err := tetris.NewSession(cfg)
	require.NoError(t, err)
	session.Start()
	return session
}

func TestScheduler(t *testing.T) {
	t.Run("systems run in registration order", func(t *testing.T) {
		var order []string
		scheduler := loop.NewScheduler(nil)
		scheduler.Register(&countingSystem{order: &order, name: "first"})
		scheduler.Register(&countingSystem{order: &order, name: "second"})

		scheduler.Once(0.016)
		scheduler.Once(0.016)

		assert.Equal(t, []string{"first", "second", "first", "second"}, order)
	})

	t.Run("stats", func(t *testing.T) {
		scheduler := loop.NewScheduler(nil)
		scheduler.Register(&countingSystem{})
		scheduler.Register(loop.SystemFunc(func(*loop.Frame) {}))

		stats := scheduler.GetStats()
		require.Len(t, stats.Systems, 2)
		assert.Zero(t, stats.Systems[0].Min)
		assert.Zero(t, stats.Systems[0].Share)

		for range 5 {
			scheduler.Once(0.01)
		}

		stats = scheduler.GetStats()
		assert.Equal(t, int64(5), stats.Frames)
		assert.Equal(t, int64(10), stats.Runs)
		assert.Equal(t, "countingSystem", stats.Systems[0].Name)
		assert.Equal(t, "SystemFunc", stats.Systems[1].Name)
		for _, sys := range stats.Systems {
			assert.Equal(t, int64(5), sys.Runs)
			assert.LessOrEqual(t, sys.Min, sys.Avg)
			assert.LessOrEqual(t, sys.Avg, sys.Max)
			assert.GreaterOrEqual(t, sys.Total, sys.Max)
			assert.LessOrEqual(t, sys.Last, sys.Max)
		}
		assert.Equal(t, stats.Systems[0].Total+stats.Systems[1].Total, stats.Busy)
		if stats.Busy > 0 {
			assert.InDelta(t, 1.0, stats.Systems[0].Share+stats.Systems[1].Share, 1e-9)
		}
	})

	t.Run("deferred functions run after every system", func(t *testing.T) {
		var events []string
		scheduler := loop.NewScheduler(nil)
		scheduler.Register(loop.SystemFunc(func(frame *loop.Frame) {
			frame.Defer(func() { events = append(events, "deferred") })
			events = append(events, "a")
		}))
		scheduler.Register(loop.SystemFunc(func(*loop.Frame) {
			events = append(events, "b")
		}))

		scheduler.Once(0)
		assert.Equal(t, []string{"a", "b", "deferred"}, events)

		scheduler.Once(0)
		assert.Equal(t, []string{"a", "b", "deferred", "a", "b", "deferred"}, events)
	})

	t.Run("run stops on cancellation", func(t *testing.T) {
		scheduler := loop.NewScheduler(nil)
		counter := &countingSystem{}
		scheduler.Register(counter)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		done := make(chan struct{})
		go func() {
			scheduler.Run(ctx, time.Millisecond)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("scheduler did not stop after cancellation")
		}
		assert.Positive(t, counter.ExecuteCount)
		assert.Equal(t, int64(counter.ExecuteCount), scheduler.GetStats().Frames)
	})
}

func TestFrame(t *testing.T) {
	var seen []tetris.Input
	var elapsed time.Duration
	scheduler := loop.NewScheduler(nil)
	scheduler.Register(loop.SystemFunc(func(frame *loop.Frame) {
		frame.Push(tetris.InputMoveLeft, tetris.InputNone, tetris.InputRotateCW)
	}))
	scheduler.Register(loop.SystemFunc(func(frame *loop.Frame) {
		seen = frame.Inputs
		elapsed = frame.Elapsed()
	}))

	scheduler.Once(0.5)
	assert.Equal(t, []tetris.Input{tetris.InputMoveLeft, tetris.InputRotateCW}, seen)
	assert.Equal(t, 500*time.Millisecond, elapsed)
}

func TestSessionSystem(t *testing.T) {
	t.Run("gravity", func(t *testing.T) {
		session := newSession(t)
		scheduler := loop.NewScheduler(session)
		scheduler.Register(&loop.SessionSystem{})

		start := session.Piece().Position()
		scheduler.Once(1.0)
		assert.Equal(t, start.Y-1, session.Piece().Position().Y)
		assert.Equal(t, int64(1), session.Stats().Ticks)
	})

	t.Run("paused", func(t *testing.T) {
		session := newSession(t)
		scheduler := loop.NewScheduler(session)
		scheduler.Register(&loop.SessionSystem{Paused: true})

		start := session.Piece().Position()
		scheduler.Once(5.0)
		assert.Equal(t, start, session.Piece().Position())
		assert.Zero(t, session.Stats().Ticks)
	})

	t.Run("inputs from poll", func(t *testing.T) {
		session := newSession(t)
		scheduler := loop.NewScheduler(session)
		scheduler.Register(&loop.InputSystem{Poll: func() []tetris.Input {
			return []tetris.Input{tetris.InputHardDrop}
		}})
		scheduler.Register(&loop.SessionSystem{})

		scheduler.Once(0.001)
		assert.Equal(t, int64(1), session.Stats().PiecesLocked)
		assert.Equal(t, int64(2), session.Stats().PiecesSpawned)
	})
}

func TestRestartSystem(t *testing.T) {
	session := newSession(t)
	requested := true
	scheduler := loop.NewScheduler(session)
	scheduler.Register(&loop.InputSystem{Poll: func() []tetris.Input {
		return []tetris.Input{tetris.InputHardDrop}
	}})
	scheduler.Register(&loop.SessionSystem{})
	scheduler.Register(&loop.RestartSystem{Requested: func() bool { return requested }})

	first := session.ID()

	// Restart requests are ignored while the session is still running.
	scheduler.Once(0.001)
	assert.Equal(t, first, session.ID())

	requested = false
	for i := 0; i < 500 && session.State() == tetris.SessionRunning; i++ {
		scheduler.Once(0.001)
	}
	require.Equal(t, tetris.SessionOver, session.State())

	requested = true
	scheduler.Once(0.001)
	assert.Equal(t, tetris.SessionRunning, session.State())
	assert.NotEqual(t, first, session.ID())
	assert.Equal(t, int64(1), session.Stats().PiecesSpawned)
}

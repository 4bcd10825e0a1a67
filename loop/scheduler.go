package loop

import (
	"context"
	"io"
	"reflect"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/sirupsen/logrus"
)

// SchedulerStats is a snapshot of how the scheduler has been running.
type SchedulerStats struct {
	Frames  int64
	Runs    int64
	Busy    time.Duration
	Systems []SystemStats
}

// SystemStats is the timing of one system. Share is the fraction of Busy
// spent in this system.
type SystemStats struct {
	Name  string
	Runs  int64
	Last  time.Duration
	Min   time.Duration
	Avg   time.Duration
	Max   time.Duration
	Total time.Duration
	Share float64
}

// timing accumulates execution durations for one registered system.
type timing struct {
	name  string
	runs  int64
	last  time.Duration
	min   time.Duration
	max   time.Duration
	total time.Duration
}

func (t *timing) observe(d time.Duration) {
	if t.runs == 0 || d < t.min {
		t.min = d
	}
	t.max = max(t.max, d)
	t.last = d
	t.total += d
	t.runs++
}

func (t *timing) snapshot() SystemStats {
	out := SystemStats{
		Name:  t.name,
		Runs:  t.runs,
		Last:  t.last,
		Min:   t.min,
		Max:   t.max,
		Total: t.total,
	}
	if t.runs > 0 {
		out.Avg = t.total / time.Duration(t.runs)
	}
	return out
}

// Scheduler runs its systems in registration order against one session.
type Scheduler struct {
	session *tetris.Session
	systems []System
	timings []*timing
	frames  int64
	logger  *logrus.Entry
}

// NewScheduler creates a scheduler driving the given session. The session may
// be nil for schedulers whose systems do not touch it.
func NewScheduler(session *tetris.Session) *Scheduler {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Scheduler{
		session: session,
		logger:  logrus.NewEntry(logger),
	}
}

// SetLogger replaces the scheduler's logger.
func (s *Scheduler) SetLogger(logger *logrus.Entry) {
	if logger != nil {
		s.logger = logger
	}
}

// Session returns the session handed to every frame.
func (s *Scheduler) Session() *tetris.Session { return s.session }

// Register appends a system. Systems run in the order they were registered.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)
	s.timings = append(s.timings, &timing{name: systemName(system)})
}

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	if name := systemType.Name(); name != "" {
		return name
	}
	return systemType.String()
}

// Once executes all registered systems once with the given delta time, in
// seconds, then runs the frame's deferred functions.
func (s *Scheduler) Once(dt float64) {
	frame := newFrame(dt, s.session)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		s.timings[i].observe(time.Since(start))
	}

	frame.flush()
	s.frames++
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.WithField("interval", interval).Debug("scheduler running")
	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			s.logger.WithField("frames", s.frames).Debug("scheduler stopped")
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns a snapshot of the frame count and per-system timings.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		Frames:  s.frames,
		Systems: make([]SystemStats, len(s.timings)),
	}
	for i, t := range s.timings {
		stats.Systems[i] = t.snapshot()
		stats.Runs += t.runs
		stats.Busy += t.total
	}
	if stats.Busy > 0 {
		for i := range stats.Systems {
			stats.Systems[i].Share = float64(stats.Systems[i].Total) / float64(stats.Busy)
		}
	}
	return stats
}

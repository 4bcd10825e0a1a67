package tetris

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SessionState is the lifecycle state of a session.
type SessionState uint8

const (
	SessionIdle SessionState = iota
	SessionRunning
	SessionOver
)

func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionRunning:
		return "running"
	case SessionOver:
		return "over"
	default:
		return "unknown"
	}
}

// Stats counts what happened during the current session life.
type Stats struct {
	Ticks         int64
	PiecesSpawned int64
	PiecesLocked  int64
	RowsCleared   int64
}

// GameOverFunc is called once per session life when a piece cannot spawn.
type GameOverFunc func(id uuid.UUID, stats Stats)

// Session ties the spawn, control, lock, clear and respawn cycle together. It
// owns the grid, the active piece and the randomizer. All methods must be called
// from a single goroutine.
type Session struct {
	id      uuid.UUID
	config  Config
	catalog Catalog
	state   SessionState

	grid       *Grid
	piece      *Piece
	randomizer *Randomizer
	tiles      *TileBuffer
	sink       TileSink

	staged     bool
	gameOverFn GameOverFunc
	overFired  bool
	stats      Stats

	src    rand.Source
	logger *logrus.Entry
}

// Option configures a Session.
type Option func(*Session)

// WithCatalog replaces the default shape catalog.
func WithCatalog(catalog Catalog) Option {
	return func(s *Session) { s.catalog = catalog }
}

// WithTileSink sets the receiver of cell writes. Writes are flushed at the end of
// every tick and control call.
func WithTileSink(sink TileSink) Option {
	return func(s *Session) { s.sink = sink }
}

// WithGameOverHandler sets the function called when a piece cannot spawn.
func WithGameOverHandler(fn GameOverFunc) Option {
	return func(s *Session) { s.gameOverFn = fn }
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *logrus.Entry) Option {
	return func(s *Session) { s.logger = logger }
}

// WithRandomSource overrides the seeded source derived from Config.Seed.
func WithRandomSource(src rand.Source) Option {
	return func(s *Session) { s.src = src }
}

// NewSession validates cfg and the catalog and wires a grid, piece and randomizer.
// The session is idle until Start is called.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	s := &Session{
		id:      uuid.New(),
		config:  cfg,
		catalog: DefaultCatalog(),
		sink:    discardSink{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := s.catalog.Validate(); err != nil {
		return nil, err
	}

	if s.logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		s.logger = logrus.NewEntry(discard)
	}
	if s.src == nil {
		s.src = rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)
	}

	s.tiles = NewTileBuffer()
	s.grid = NewGrid(cfg.Bounds(), s.tiles)
	s.piece = NewPiece(s.grid, cfg.StepDelay, cfg.LockDelay)
	s.randomizer = NewRandomizer(len(s.catalog), s.src)

	return s, nil
}

func (s *Session) ID() uuid.UUID           { return s.id }
func (s *Session) Config() Config          { return s.config }
func (s *Session) Catalog() Catalog        { return s.catalog }
func (s *Session) State() SessionState     { return s.state }
func (s *Session) Grid() *Grid             { return s.grid }
func (s *Session) Piece() *Piece           { return s.piece }
func (s *Session) Stats() Stats            { return s.stats }
func (s *Session) Randomizer() *Randomizer { return s.randomizer }

func (s *Session) log() *logrus.Entry {
	return s.logger.WithField("session", s.id)
}

// Start empties the grid, resets the statistics and spawns the first piece. A
// session that ended stays over; use Restart to begin a new life.
func (s *Session) Start() {
	if s.state == SessionOver {
		return
	}
	s.grid.ResetAll()
	s.stats = Stats{}
	s.staged = false
	s.state = SessionRunning
	s.log().WithFields(logrus.Fields{
		"width":  s.config.Width,
		"height": s.config.Height,
	}).Info("session started")

	s.spawnNext()
	s.flush()
}

// Restart begins a new session life with a fresh ID.
func (s *Session) Restart() {
	s.id = uuid.New()
	s.overFired = false
	s.state = SessionIdle
	s.Start()
}

// SpawnNext initializes the active piece with the next shape at the spawn cell and
// stages it on the grid. When the spawn position is blocked the session ends
// instead and false is returned. A piece still staged when SpawnNext is called
// stays on the grid as placed tiles.
func (s *Session) SpawnNext() bool {
	ok := s.spawnNext()
	s.flush()
	return ok
}

func (s *Session) spawnNext() bool {
	if s.state != SessionRunning {
		return false
	}

	shape := &s.catalog[s.randomizer.Next()]
	s.piece.Initialize(shape, s.config.Spawn)
	s.staged = false

	if !s.piece.Fits() {
		s.gameOver()
		return false
	}

	s.stats.PiecesSpawned++
	s.stage()
	s.log().WithField("shape", shape.Kind).Debug("piece spawned")
	return true
}

func (s *Session) gameOver() {
	s.grid.ResetAll()
	s.staged = false
	s.state = SessionOver

	s.log().WithFields(logrus.Fields{
		"pieces": s.stats.PiecesLocked,
		"rows":   s.stats.RowsCleared,
	}).Info("game over")

	if s.overFired {
		return
	}
	s.overFired = true
	if s.gameOverFn != nil {
		s.gameOverFn(s.id, s.stats)
	}
}

// Tick advances the session by dt. The staged piece is lifted off the grid, at
// most one discrete input (the first of inputs) is applied, gravity is stepped,
// and the piece is staged again.
func (s *Session) Tick(dt time.Duration, inputs []Input) {
	if s.state != SessionRunning {
		return
	}
	s.stats.Ticks++

	s.unstage()
	s.piece.Elapse(dt)

	locked := false
	if len(inputs) > 0 {
		_, locked = s.apply(inputs[0])
	}

	if !locked && s.state == SessionRunning {
		if rows, ok := s.piece.Step(); ok {
			s.afterLock(rows)
		}
	}

	if s.state == SessionRunning {
		s.stage()
	}
	s.flush()
}

// apply runs a single input against the unstaged piece and reports whether it
// succeeded and whether the piece locked as a result.
func (s *Session) apply(input Input) (ok, locked bool) {
	switch input {
	case InputMoveLeft:
		return s.piece.Move(-1, 0), false
	case InputMoveRight:
		return s.piece.Move(1, 0), false
	case InputSoftDrop:
		return s.piece.Move(0, -1), false
	case InputRotateCW:
		return s.piece.Rotate(1), false
	case InputRotateCCW:
		return s.piece.Rotate(-1), false
	case InputHardDrop:
		dropped, rows := s.piece.HardDrop()
		s.log().WithField("dropped", dropped).Debug("hard drop")
		s.afterLock(rows)
		return true, true
	}
	return false, false
}

func (s *Session) afterLock(rows int) {
	s.staged = false
	s.stats.PiecesLocked++
	s.stats.RowsCleared += int64(rows)

	entry := s.log().WithField("shape", s.piece.Shape().Kind)
	if rows > 0 {
		entry.WithField("rows", rows).Debug("rows cleared")
	} else {
		entry.Debug("piece locked")
	}

	s.spawnNext()
}

// control applies input outside of a tick.
func (s *Session) control(input Input) bool {
	if s.state != SessionRunning {
		return false
	}
	s.unstage()
	ok, _ := s.apply(input)
	if s.state == SessionRunning {
		s.stage()
	}
	s.flush()
	return ok
}

func (s *Session) MoveLeft() bool  { return s.control(InputMoveLeft) }
func (s *Session) MoveRight() bool { return s.control(InputMoveRight) }
func (s *Session) SoftDrop() bool  { return s.control(InputSoftDrop) }
func (s *Session) HardDrop() bool  { return s.control(InputHardDrop) }
func (s *Session) RotateCW() bool  { return s.control(InputRotateCW) }
func (s *Session) RotateCCW() bool { return s.control(InputRotateCCW) }

// Ghost returns the landing preview of the active piece. ok is false when no
// piece is falling.
func (s *Session) Ghost() (ghost Ghost, ok bool) {
	if s.state != SessionRunning || s.piece.State() != PieceFalling {
		return Ghost{}, false
	}
	return Project(s.grid, s.piece), true
}

// Preview returns the kinds of the next n pieces.
func (s *Session) Preview(n int) []Kind {
	indices := s.randomizer.Peek(n)
	kinds := make([]Kind, len(indices))
	for i, idx := range indices {
		kinds[i] = s.catalog[idx].Kind
	}
	return kinds
}

// PendingTiles returns the writes not yet flushed to the sink.
func (s *Session) PendingTiles() []TileWrite {
	return s.tiles.Pending()
}

func (s *Session) String() string {
	return fmt.Sprintf("session %s (%s)", s.id, s.state)
}

func (s *Session) stage() {
	if s.staged || s.piece.State() != PieceFalling {
		return
	}
	cells := s.piece.Cells()
	s.grid.Place(cells[:], s.piece.Shape().Visual)
	s.staged = true
}

func (s *Session) unstage() {
	if !s.staged {
		return
	}
	cells := s.piece.Cells()
	s.grid.ClearCells(cells[:])
	s.staged = false
}

func (s *Session) flush() {
	s.tiles.Flush(s.sink)
}

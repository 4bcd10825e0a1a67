package tetris

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the rules parameters of a session.
type Config struct {
	Width     int
	Height    int
	Spawn     Cell
	StepDelay time.Duration
	LockDelay time.Duration
	Seed      uint64
}

// DefaultConfig returns a 10x20 board spawning at (-1, 8) with a one second
// gravity step and a half second lock delay.
func DefaultConfig() Config {
	return Config{
		Width:     10,
		Height:    20,
		Spawn:     Cell{X: -1, Y: 8},
		StepDelay: time.Second,
		LockDelay: 500 * time.Millisecond,
	}
}

// ErrInvalidConfig is returned for configurations no session can run with.
var ErrInvalidConfig = errors.New("invalid session config")

// Bounds returns the board bounds described by the config.
func (c Config) Bounds() Bounds {
	return NewBounds(c.Width, c.Height)
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: board size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.StepDelay <= 0 {
		return fmt.Errorf("%w: step delay %s", ErrInvalidConfig, c.StepDelay)
	}
	if c.LockDelay < 0 {
		return fmt.Errorf("%w: lock delay %s", ErrInvalidConfig, c.LockDelay)
	}
	if !c.Bounds().Contains(c.Spawn) {
		return fmt.Errorf("%w: spawn %v outside board", ErrInvalidConfig, c.Spawn)
	}
	return nil
}

// Package config loads frontend and engine settings from defaults, an optional
// .env file, BLOCKFALL_* environment variables and command-line flags, in that
// order of increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/plus3/blockfall/tetris"
	"github.com/sirupsen/logrus"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "BLOCKFALL_"

// DefaultEnvFile is read when BLOCKFALL_ENV_FILE is unset.
const DefaultEnvFile = ".env"

// EnvFile returns the dotenv path named by BLOCKFALL_ENV_FILE, or DefaultEnvFile.
func EnvFile() string {
	if path, ok := os.LookupEnv(EnvPrefix + "ENV_FILE"); ok {
		return path
	}
	return DefaultEnvFile
}

// Config holds every tunable a frontend needs.
type Config struct {
	Width     int
	Height    int
	SpawnX    int
	SpawnY    int
	StepDelay time.Duration
	LockDelay time.Duration
	TickRate  int
	// Seed drives the shape randomizer. Zero picks a time-based seed.
	Seed      uint64
	LogLevel  string
	LogFormat string
}

// Default returns the classic 10x20 configuration.
func Default() Config {
	engine := tetris.DefaultConfig()
	return Config{
		Width:     engine.Width,
		Height:    engine.Height,
		SpawnX:    engine.Spawn.X,
		SpawnY:    engine.Spawn.Y,
		StepDelay: engine.StepDelay,
		LockDelay: engine.LockDelay,
		TickRate:  60,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load returns the defaults overlaid with the .env file at path, if it exists,
// and then with the process environment. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	file := map[string]string{}
	if path != "" {
		values, err := godotenv.Read(path)
		switch {
		case err == nil:
			file = values
		case errors.Is(err, fs.ErrNotExist):
		default:
			return cfg, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}

	if err := cfg.apply(lookup); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) apply(lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"WIDTH":     &c.Width,
		"HEIGHT":    &c.Height,
		"SPAWN_X":   &c.SpawnX,
		"SPAWN_Y":   &c.SpawnY,
		"TICK_RATE": &c.TickRate,
	}
	for name, dst := range ints {
		if v, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = n
		}
	}

	durations := map[string]*time.Duration{
		"STEP_DELAY": &c.StepDelay,
		"LOCK_DELAY": &c.LockDelay,
	}
	for name, dst := range durations {
		if v, ok := lookup(EnvPrefix + name); ok {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = d
		}
	}

	if v, ok := lookup(EnvPrefix + "SEED"); ok {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", EnvPrefix, err)
		}
		c.Seed = seed
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok {
		c.LogFormat = strings.TrimSpace(v)
	}
	return nil
}

// RegisterFlags binds the configuration to flags, using the current
// values as defaults.
func (c *Config) RegisterFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.Width, "width", c.Width, "Board width in cells.")
	flags.IntVar(&c.Height, "height", c.Height, "Board height in cells.")
	flags.IntVar(&c.SpawnX, "spawn-x", c.SpawnX, "Spawn column, relative to the board center.")
	flags.IntVar(&c.SpawnY, "spawn-y", c.SpawnY, "Spawn row, relative to the board center.")
	flags.DurationVar(&c.StepDelay, "step-delay", c.StepDelay, "Time between gravity steps.")
	flags.DurationVar(&c.LockDelay, "lock-delay", c.LockDelay, "Time a resting piece waits before locking.")
	flags.IntVar(&c.TickRate, "tick-rate", c.TickRate, "Simulation ticks per second.")
	flags.Uint64Var(&c.Seed, "seed", c.Seed, "Randomizer seed; 0 picks one from the clock.")
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (trace, debug, info, warn, error).")
	flags.StringVar(&c.LogFormat, "log-format", c.LogFormat, "Log format (text or json).")
}

// Validate reports the first problem with the configuration.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick rate must be positive, got %d", tetris.ErrInvalidConfig, c.TickRate)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", tetris.ErrInvalidConfig, err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", tetris.ErrInvalidConfig, c.LogFormat)
	}
	return c.engine(c.Seed).Validate()
}

// Engine converts the configuration into engine settings. A zero seed is
// replaced with one derived from the current time.
func (c Config) Engine() tetris.Config {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return c.engine(seed)
}

func (c Config) engine(seed uint64) tetris.Config {
	return tetris.Config{
		Width:     c.Width,
		Height:    c.Height,
		Spawn:     tetris.Cell{X: c.SpawnX, Y: c.SpawnY},
		StepDelay: c.StepDelay,
		LockDelay: c.LockDelay,
		Seed:      seed,
	}
}

// TickInterval is the wall-clock time between simulation ticks.
func (c Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// Logger builds a logrus logger writing to out at the configured level and format.
func (c Config) Logger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}

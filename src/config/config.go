package config

import (
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"

	"gridlife/src/universe"
)

//ErrInvalidConfig is the cause of every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

//Config holds the configuration of the simulation
//values are read from the environment first and may be overridden by the command line flags
type Config struct {
	Rows     int           `env:"LIFE_ROWS" envDefault:"40"`
	Cols     int           `env:"LIFE_COLS" envDefault:"40"`
	Interval time.Duration `env:"LIFE_INTERVAL" envDefault:"100ms"`
	MaxSteps int           `env:"LIFE_MAX_STEPS" envDefault:"0"`
	Engine   string        `env:"LIFE_ENGINE" envDefault:"base"`
	Workers  int           `env:"LIFE_WORKERS" envDefault:"0"`
	Glyph    string        `env:"LIFE_GLYPH" envDefault:"X"`
	Color    bool          `env:"LIFE_COLOR" envDefault:"false"`
	Pattern  string        `env:"LIFE_PATTERN"`
}

//Load parses the process environment
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return c, errors.Wrap(err, "[Load] failed to parse environment")
	}
	return c, nil
}

//LoadFrom parses the given environment instead of the process one
func LoadFrom(environ map[string]string) (Config, error) {
	var c Config
	if err := env.ParseWithOptions(&c, env.Options{Environment: environ}); err != nil {
		return c, errors.Wrap(err, "[LoadFrom] failed to parse environment")
	}
	return c, nil
}

//Validate checks the configuration values
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] dimension must be positive, got %d x %d", c.Rows, c.Cols)
	}
	if c.Interval < 0 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative interval %v", c.Interval)
	}
	if c.MaxSteps < 0 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative max steps %d", c.MaxSteps)
	}
	if c.Workers < 0 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative workers %d", c.Workers)
	}
	if _, ok := universe.Engines[c.Engine]; !ok {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] unknown engine %q, expected one of [%s]", c.Engine, strings.Join(EngineNames(), "|"))
	}
	r, size := utf8.DecodeRuneInString(c.Glyph)
	if size == 0 || size != len(c.Glyph) || r == utf8.RuneError || !unicode.IsPrint(r) || unicode.IsSpace(r) {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] glyph must be one printable character, got %q", c.Glyph)
	}
	return nil
}

//UniverseOptions projects the configuration to the universe options
func (c Config) UniverseOptions() universe.Options {
	return universe.Options{
		Rows:     c.Rows,
		Cols:     c.Cols,
		Interval: c.Interval,
		MaxSteps: c.MaxSteps,
		Workers:  c.Workers,
	}
}

//NewEngine creates the configured engine
func (c Config) NewEngine() (universe.Engine, error) {
	newEngine, ok := universe.Engines[c.Engine]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidConfig, "[NewEngine] unknown engine %q", c.Engine)
	}
	return newEngine(c.UniverseOptions()), nil
}

//EngineNames returns the sorted names of the registered engines
func EngineNames() []string {
	names := make([]string, 0, len(universe.Engines))
	for k := range universe.Engines {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

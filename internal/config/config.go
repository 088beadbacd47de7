// Package config provides typed configuration: defaults, TOML file
// loading, environment overrides, and live reload.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of the environment variables that override file
// settings.
const EnvPrefix = "RECTMODE_"

// Config holds the runtime settings.
type Config struct {
	// FastStep is the multiple applied by the fast shift commands.
	FastStep int `toml:"fast_step"`

	// FillWidth is the default reflow width when a fill command carries
	// no count.
	FillWidth int `toml:"fill_width"`

	// LogLevel is the minimum level emitted ("debug", "info", "warn",
	// "error").
	LogLevel string `toml:"log_level"`

	// Calc configures the matrix exchange.
	Calc CalcConfig `toml:"calc"`
}

// CalcConfig configures how matrices are requested from the machine.
type CalcConfig struct {
	// Precision is the significant-digit precision of printed values.
	Precision int `toml:"precision"`

	// NoBrackets requests bracket-free printing.
	NoBrackets bool `toml:"no_brackets"`

	// ExpandVectors requests full vectors instead of ellipsis
	// abbreviation.
	ExpandVectors bool `toml:"expand_vectors"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		FastStep:  5,
		FillWidth: 70,
		LogLevel:  "info",
		Calc: CalcConfig{
			Precision:     12,
			NoBrackets:    true,
			ExpandVectors: true,
		},
	}
}

// Load reads the configuration: defaults, then the TOML file at path if it
// exists, then environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays RECTMODE_* environment variables onto the config.
// Unparseable numeric values are ignored.
func (c *Config) applyEnv() {
	if v, ok := envInt("FAST_STEP"); ok {
		c.FastStep = v
	}
	if v, ok := envInt("FILL_WIDTH"); ok {
		c.FillWidth = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := envInt("CALC_PRECISION"); ok {
		c.Calc.Precision = v
	}
	if v, ok := envBool("CALC_NO_BRACKETS"); ok {
		c.Calc.NoBrackets = v
	}
	if v, ok := envBool("CALC_EXPAND_VECTORS"); ok {
		c.Calc.ExpandVectors = v
	}
}

func envInt(name string) (int, bool) {
	s, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envBool(name string) (bool, bool) {
	s, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, false
	}
	return v, true
}

// validate rejects settings the commands cannot run with.
func (c *Config) validate() error {
	if c.FastStep <= 0 {
		return fmt.Errorf("fast_step must be positive, got %d", c.FastStep)
	}
	if c.FillWidth <= 0 {
		return fmt.Errorf("fill_width must be positive, got %d", c.FillWidth)
	}
	if c.Calc.Precision <= 0 {
		return fmt.Errorf("calc.precision must be positive, got %d", c.Calc.Precision)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

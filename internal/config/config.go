// Package config loads pluto command settings from a TOML or YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable that points at a config file.
const EnvVar = "PLUTO_CONFIG"

// DefaultMaxDepth is the call depth bound used when none is configured.
const DefaultMaxDepth = 1000

// Config holds settings shared by the run and repl commands; command line
// flags override them.
type Config struct {
	// Trace logs every evaluation step.
	Trace bool `toml:"trace" yaml:"trace"`

	// TraceFile receives trace records instead of stderr.
	TraceFile string `toml:"trace_file" yaml:"trace_file"`

	// Timeout bounds a whole program run; zero means unbounded.
	Timeout Duration `toml:"timeout" yaml:"timeout"`

	MaxDepth  int `toml:"max_depth" yaml:"max_depth"`
	StepLimit int `toml:"step_limit" yaml:"step_limit"`

	// Seed fixes the random() source; zero seeds from the clock.
	Seed int64 `toml:"seed" yaml:"seed"`

	// History is the repl line history file.
	History string `toml:"history" yaml:"history"`
}

// Duration wraps time.Duration so that it reads as a Go duration string.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a scalar duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %v: duration must be a scalar", value.Line)
	}
	if err := d.UnmarshalText([]byte(value.Value)); err != nil {
		return fmt.Errorf("line %v: %w", value.Line, err)
	}
	return nil
}

// Default returns a Config with every default applied.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load reads the config file at path, picking YAML for .yaml and .yml
// names and TOML otherwise.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %v: %w", path, err)
		}
	default:
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %v: %w", path, err)
		}
	}

	cfg.applyDefaults()
	cfg.TraceFile = os.ExpandEnv(cfg.TraceFile)
	cfg.History = os.ExpandEnv(cfg.History)
	return &cfg, nil
}

// LoadDefault loads the file named by $PLUTO_CONFIG, else the first of
// ./pluto.toml, ./pluto.yaml and ~/.config/pluto/config.toml that exists;
// with none of them it returns Default().
func LoadDefault() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	for _, p := range defaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

func defaultPaths() []string {
	paths := []string{"./pluto.toml", "./pluto.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "pluto", "config.toml"))
	}
	return paths
}

func (c *Config) applyDefaults() {
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.History == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.History = filepath.Join(home, ".pluto_history")
		}
	}
}

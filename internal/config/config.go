package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all editor settings.
type Config struct {
	Editor      EditorConfig      `toml:"editor" yaml:"editor"`
	History     HistoryConfig     `toml:"history" yaml:"history"`
	Composition CompositionConfig `toml:"composition" yaml:"composition"`
	Logging     LoggingConfig     `toml:"logging" yaml:"logging"`
	Metrics     MetricsConfig     `toml:"metrics" yaml:"metrics"`
}

// EditorConfig configures the edit engine.
type EditorConfig struct {
	// MaxDepth is the deepest block nesting reachable by indenting.
	MaxDepth int `toml:"max_depth" yaml:"max_depth"`
	// ReadOnly rejects every edit.
	ReadOnly bool `toml:"read_only" yaml:"read_only"`
	// Validate checks the structure of every produced content.
	Validate bool `toml:"validate" yaml:"validate"`
}

// HistoryConfig configures undo.
type HistoryConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
	// MaxUndo bounds the undo stack. Zero selects the default bound.
	MaxUndo int `toml:"max_undo" yaml:"max_undo"`
}

// CompositionConfig configures IME composition handling.
type CompositionConfig struct {
	// Timeout commits a session that received no events for this long.
	Timeout Duration `toml:"timeout" yaml:"timeout"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
	// Address is the listen address of the metrics endpoint. Empty
	// disables the endpoint while still collecting.
	Address string `toml:"address" yaml:"address"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			MaxDepth: 4,
		},
		History: HistoryConfig{
			Enabled: true,
			MaxUndo: 0,
		},
		Composition: CompositionConfig{
			Timeout: Duration(1500 * time.Millisecond),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks settings for consistency. It returns all violations
// joined.
func (c *Config) Validate() error {
	var errs validationErrors
	if c.Editor.MaxDepth < 0 {
		errs.add("editor.max_depth", "must not be negative", c.Editor.MaxDepth, ErrCodeOutOfRange)
	}
	if c.History.MaxUndo < 0 {
		errs.add("history.max_undo", "must not be negative", c.History.MaxUndo, ErrCodeOutOfRange)
	}
	if c.Composition.Timeout <= 0 {
		errs.add("composition.timeout", "must be positive", c.Composition.Timeout, ErrCodeOutOfRange)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs.add("logging.level", "must be debug, info, warn or error", c.Logging.Level, ErrCodeInvalidEnum)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs.add("logging.format", "must be text or json", c.Logging.Format, ErrCodeInvalidEnum)
	}
	return errs.err()
}

// Duration is a time.Duration written as a string such as "1500ms".
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// String returns the duration in time.Duration notation.
func (d Duration) String() string { return time.Duration(d).String() }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	return d.UnmarshalText([]byte(node.Value))
}

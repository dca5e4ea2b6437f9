package config

import (
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "INKWELL_"

// LookupFunc reads an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

type envBinding struct {
	name string
	set  func(c *Config, v string) error
}

var envBindings = []envBinding{
	{"LOG_LEVEL", func(c *Config, v string) error { c.Logging.Level = v; return nil }},
	{"LOG_FORMAT", func(c *Config, v string) error { c.Logging.Format = strings.ToLower(v); return nil }},
	{"MAX_DEPTH", intSetter(func(c *Config) *int { return &c.Editor.MaxDepth })},
	{"READ_ONLY", boolSetter(func(c *Config) *bool { return &c.Editor.ReadOnly })},
	{"VALIDATE", boolSetter(func(c *Config) *bool { return &c.Editor.Validate })},
	{"UNDO", boolSetter(func(c *Config) *bool { return &c.History.Enabled })},
	{"MAX_UNDO", intSetter(func(c *Config) *int { return &c.History.MaxUndo })},
	{"COMPOSITION_TIMEOUT", func(c *Config, v string) error { return c.Composition.Timeout.UnmarshalText([]byte(v)) }},
	{"METRICS", boolSetter(func(c *Config) *bool { return &c.Metrics.Enabled })},
	{"METRICS_ADDR", func(c *Config, v string) error { c.Metrics.Address = v; return nil }},
}

// ApplyEnv overrides cfg with the INKWELL_* variables found by lookup.
// Empty values are treated as set.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	for _, b := range envBindings {
		name := EnvPrefix + b.name
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := b.set(cfg, strings.TrimSpace(v)); err != nil {
			return &ParseError{Path: name, Message: err.Error(), Err: err}
		}
	}
	return nil
}

// EnvNames returns the variables ApplyEnv reads.
func EnvNames() []string {
	names := make([]string, len(envBindings))
	for i, b := range envBindings {
		names[i] = EnvPrefix + b.name
	}
	return names
}

func intSetter(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

// boolSetter accepts the spellings true/yes/on/1 and false/no/off/0.
func boolSetter(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		switch strings.ToLower(v) {
		case "true", "yes", "on", "1":
			*field(c) = true
		case "false", "no", "off", "0":
			*field(c) = false
		default:
			return &strconv.NumError{Func: "ParseBool", Num: v, Err: strconv.ErrSyntax}
		}
		return nil
	}
}

package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dshills/modemap/internal/builder"
	"github.com/dshills/modemap/internal/expand"
	"github.com/dshills/modemap/internal/log"
)

// Sink kinds.
const (
	SinkScript = "script"
	SinkTable  = "table"
	SinkRecord = "record"
	SinkJSON   = "json"
)

// Config is the complete modemap configuration.
type Config struct {
	Log        LogConfig    `toml:"log" yaml:"log"`
	Sink       SinkConfig   `toml:"sink" yaml:"sink"`
	Codes      expand.Codes `toml:"codes" yaml:"codes"`
	Defaults   Defaults     `toml:"defaults" yaml:"defaults"`
	Mappings   []Mapping    `toml:"mapping" yaml:"mapping"`
	Menus      []Menu       `toml:"menu" yaml:"menu"`
	Directives []string     `toml:"directives" yaml:"directives"`
	Scripts    []string     `toml:"scripts" yaml:"scripts"`

	// path is the file the configuration was read from.
	path string
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	// File receives log output; empty means stderr.
	File string `toml:"file" yaml:"file"`
}

// SinkConfig selects where generated commands go.
type SinkConfig struct {
	// Kind is one of "script", "json", "table" or "record".
	Kind string `toml:"kind" yaml:"kind"`
	// Output is the script or json destination; empty or "-" means
	// stdout.
	Output string `toml:"output" yaml:"output"`
}

// Defaults are the descriptors used when an entry names none.
type Defaults struct {
	MapDescriptor  string `toml:"map_descriptor" yaml:"map_descriptor"`
	MenuDescriptor string `toml:"menu_descriptor" yaml:"menu_descriptor"`
}

// Mapping declares one CreateMapping call. LHS is a string or a list of
// strings.
type Mapping struct {
	LHS        any    `toml:"lhs" yaml:"lhs"`
	RHS        string `toml:"rhs" yaml:"rhs"`
	Descriptor string `toml:"descriptor" yaml:"descriptor"`
}

// Keys returns the mapping's lhs values.
func (m Mapping) Keys() ([]string, error) {
	return stringList(m.LHS)
}

// Menu declares one CreateMenuItem call. Help is a string, or a list of
// key sequences that are also bound to the rhs.
type Menu struct {
	Location   string `toml:"location" yaml:"location"`
	RHS        string `toml:"rhs" yaml:"rhs"`
	Label      string `toml:"label" yaml:"label"`
	Priority   string `toml:"priority" yaml:"priority"`
	Help       any    `toml:"help" yaml:"help"`
	Descriptor string `toml:"descriptor" yaml:"descriptor"`
}

// Item converts the entry into a builder.MenuItem.
func (m Menu) Item() (builder.MenuItem, error) {
	item := builder.MenuItem{
		Location:   m.Location,
		RHS:        m.RHS,
		Label:      m.Label,
		Priority:   m.Priority,
		Descriptor: m.Descriptor,
	}
	switch h := m.Help.(type) {
	case nil:
	case string:
		item.Help = builder.HelpText(h)
	default:
		list, err := stringList(h)
		if err != nil {
			return builder.MenuItem{}, err
		}
		item.Help = builder.HelpList(list...)
	}
	return item, nil
}

// stringList accepts a string or a list of strings.
func stringList(v any) ([]string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{x}, nil
	case []string:
		return x, nil
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: list item %v is %T, want string", ErrInvalidValue, item, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T, want string or list of strings", ErrInvalidValue, v)
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:   LogConfig{Level: "info"},
		Sink:  SinkConfig{Kind: SinkScript},
		Codes: expand.DefaultCodes(),
		Defaults: Defaults{
			MapDescriptor:  builder.DefaultMapDescriptor,
			MenuDescriptor: builder.DefaultMenuDescriptor,
		},
	}
}

// Path returns the file the configuration was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Resolve returns p relative to the configuration file's directory.
// Absolute paths and configurations without a file are returned as is.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.path), p)
}

// Validate checks the configuration. All problems are reported together;
// each is a *ValidationError.
func (c *Config) Validate() error {
	var errs []error
	add := func(path, msg string, value any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		add("log.level", err.Error(), c.Log.Level)
	}

	switch c.Sink.Kind {
	case SinkScript, SinkJSON, SinkTable, SinkRecord:
	default:
		add("sink.kind", "must be script, json, table or record", c.Sink.Kind)
	}

	for i, m := range c.Mappings {
		path := fmt.Sprintf("mapping[%d]", i)
		keys, err := m.Keys()
		switch {
		case err != nil:
			add(path+".lhs", err.Error(), m.LHS)
		case len(keys) == 0:
			add(path+".lhs", "is required", m.LHS)
		}
		for _, k := range keys {
			if k == "" {
				add(path+".lhs", "contains an empty key sequence", m.LHS)
				break
			}
		}
		if m.RHS == "" {
			add(path+".rhs", "is required", m.RHS)
		}
	}

	for i, m := range c.Menus {
		path := fmt.Sprintf("menu[%d]", i)
		if m.RHS == "" {
			add(path+".rhs", "is required", m.RHS)
		}
		if _, err := m.Item(); err != nil {
			add(path+".help", err.Error(), m.Help)
		}
	}

	for i, s := range c.Scripts {
		if s == "" {
			add(fmt.Sprintf("scripts[%d]", i), "is empty", s)
		}
	}

	return errors.Join(errs...)
}

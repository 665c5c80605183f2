package config

import (
	"os"
	"sort"
)

// EnvPrefix is the prefix of modemap environment variables.
const EnvPrefix = "MODEMAP_"

// EnvLoader applies environment variable overrides to a Config.
type EnvLoader struct {
	prefix  string
	mapping map[string]func(*Config, string)
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates an env loader with the default mapping. The prefix
// should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(),
		lookup:  os.LookupEnv,
	}
}

// defaultEnvMapping maps variable names without the prefix to setters.
func defaultEnvMapping() map[string]func(*Config, string) {
	return map[string]func(*Config, string){
		"LOG_LEVEL": func(c *Config, v string) { c.Log.Level = v },
		"LOG_FILE":  func(c *Config, v string) { c.Log.File = v },
		"SINK":      func(c *Config, v string) { c.Sink.Kind = v },
		"OUTPUT":    func(c *Config, v string) { c.Sink.Output = v },
	}
}

// Variables returns the full names of the variables the loader reads.
func (l *EnvLoader) Variables() []string {
	names := make([]string, 0, len(l.mapping))
	for name := range l.mapping {
		names = append(names, l.prefix+name)
	}
	sort.Strings(names)
	return names
}

// Apply sets every mapped field whose variable is present. Empty values
// are treated as set.
func (l *EnvLoader) Apply(cfg *Config) {
	for name, set := range l.mapping {
		if val, ok := l.lookup(l.prefix + name); ok {
			set(cfg, val)
		}
	}
}

// Package app wires configuration, sinks, the builders, the directive
// surface and the Lua runtime together.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/modemap/internal/builder"
	"github.com/dshills/modemap/internal/command"
	"github.com/dshills/modemap/internal/config"
	"github.com/dshills/modemap/internal/directive"
	"github.com/dshills/modemap/internal/expand"
	"github.com/dshills/modemap/internal/log"
	"github.com/dshills/modemap/internal/lua"
	"github.com/dshills/modemap/internal/sink"
)

// App applies a configuration to a sink.
type App struct {
	mu sync.Mutex

	cfg    *config.Config
	logger *log.Logger

	// out receives script output; closeOut closes it when owned.
	out      io.Writer
	closeOut func() error

	host     *sink.Host
	recorder *sink.Recorder
	extra    command.Sink

	closed bool
}

// Option configures an App.
type Option func(*App)

// WithOutput sends script output to w instead of sink.output.
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		a.out = w
	}
}

// WithSink also sends every command to s.
func WithSink(s command.Sink) Option {
	return func(a *App) {
		a.extra = s
	}
}

// New creates an app for cfg. A nil logger discards output.
func New(cfg *config.Config, logger *log.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{
		cfg:      cfg,
		logger:   log.OrNop(logger).WithComponent("app"),
		host:     sink.NewHost(nil, nil),
		recorder: sink.NewRecorder(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.out == nil && (cfg.Sink.Kind == config.SinkScript || cfg.Sink.Kind == config.SinkJSON) {
		out, closeOut, err := openOutput(cfg.Sink.Output)
		if err != nil {
			return nil, err
		}
		a.out, a.closeOut = out, closeOut
	}
	return a, nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening output %s: %w", path, err)
	}
	return f, f.Close, nil
}

// Config returns the active configuration.
func (a *App) Config() *config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

// Host returns the host model filled by the "table" sink.
func (a *App) Host() *sink.Host {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.host
}

// Recorder returns the recorder filled by the "record" sink.
func (a *App) Recorder() *sink.Recorder {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.recorder
}

// Session is one run against the sink: its builder, directive runner and
// a logger carrying the run id.
type Session struct {
	ID      uuid.UUID
	Builder *builder.Builder
	Runner  *directive.Runner
	Logger  *log.Logger

	ctx context.Context
	cfg *config.Config
}

// newSession builds a session whose table and record sinks write to host
// and rec.
func (a *App) newSession(ctx context.Context, cfg *config.Config, host *sink.Host, rec *sink.Recorder) *Session {
	id := uuid.New()
	logger := a.logger.WithField("run", id.String())

	var target command.Sink
	switch cfg.Sink.Kind {
	case config.SinkTable:
		target = host
	case config.SinkRecord:
		target = rec
	case config.SinkJSON:
		target = sink.NewJSONLines(a.out, id)
	default:
		target = sink.NewScript(a.out, sink.WithRunID(id))
	}
	if a.extra != nil {
		target = sink.Multi(target, a.extra)
	}

	b := builder.New(
		expand.New(cfg.Codes),
		sink.NewLogging(target, logger),
		builder.WithDefaultDescriptors(cfg.Defaults.MapDescriptor, cfg.Defaults.MenuDescriptor),
	)
	return &Session{
		ID:      id,
		Builder: b,
		Runner:  directive.NewRunner(b),
		Logger:  logger,
		ctx:     ctx,
		cfg:     cfg,
	}
}

// RunScripts runs Lua files in one sandboxed state with the modemap
// module bound to the session's builder. Relative paths are resolved
// against the configuration file.
func (s *Session) RunScripts(paths ...string) error {
	state := lua.NewState(lua.WithOutput(os.Stderr))
	defer state.Close()
	lua.NewModule(s.Builder).Register(state)

	for _, p := range paths {
		path := s.cfg.Resolve(p)
		s.Logger.Debug("script %s", path)
		if err := state.DoFile(s.ctx, path); err != nil {
			return &OperationError{Op: "script", Target: path, Err: err}
		}
	}
	return nil
}

// Do runs fn in a new session. With the table or record sink the session
// starts from empty state.
func (a *App) Do(ctx context.Context, fn func(*Session) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	a.host.Reset()
	a.recorder.Reset()
	return fn(a.newSession(ctx, a.cfg, a.host, a.recorder))
}

// Apply runs the configured mappings, menus, directives and scripts in
// that order and stops at the first error. Commands already sent stay
// applied.
func (a *App) Apply(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	a.host.Reset()
	a.recorder.Reset()
	return a.apply(ctx, a.cfg, a.host, a.recorder)
}

func (a *App) apply(ctx context.Context, cfg *config.Config, host *sink.Host, rec *sink.Recorder) error {
	s := a.newSession(ctx, cfg, host, rec)
	s.Logger.Info("apply %s", describe(cfg))

	for i, m := range cfg.Mappings {
		keys, err := m.Keys()
		if err == nil {
			err = s.Builder.CreateMapping(keys, m.RHS, m.Descriptor)
		}
		if err != nil {
			return &OperationError{Op: "mapping", Target: strconv.Itoa(i), Err: err}
		}
	}

	for i, m := range cfg.Menus {
		item, err := m.Item()
		if err == nil {
			err = s.Builder.CreateMenuItem(item)
		}
		if err != nil {
			return &OperationError{Op: "menu", Target: strconv.Itoa(i), Err: err}
		}
	}

	for i, line := range cfg.Directives {
		if err := s.Runner.Run(line); err != nil {
			return &OperationError{Op: "directive", Target: strconv.Itoa(i), Err: err}
		}
	}

	if err := s.RunScripts(cfg.Scripts...); err != nil {
		return err
	}

	s.Logger.Info("applied")
	return nil
}

func describe(cfg *config.Config) string {
	src := cfg.Path()
	if src == "" {
		src = "defaults"
	}
	return fmt.Sprintf("%s: %d mappings, %d menus, %d directives, %d scripts",
		src, len(cfg.Mappings), len(cfg.Menus), len(cfg.Directives), len(cfg.Scripts))
}

// Watch re-applies the configuration file at path after each change
// until ctx is done. A reload is applied to a fresh host model and
// recorder, which replace the current ones only when it succeeds. A
// reload that fails to load or apply is logged and the previous
// configuration, host model and recorder stay active. Script, json and
// WithSink output already written by a failed reload is not taken back.
func (a *App) Watch(ctx context.Context, path string, opts ...config.WatcherOption) error {
	opts = append([]config.WatcherOption{config.WithWatcherLogger(a.logger)}, opts...)
	w, err := config.NewWatcher(path, opts...)
	if err != nil {
		return err
	}

	a.logger.Info("watching %s", w.Path())
	err = w.Run(ctx, func(cfg *config.Config, err error) {
		if err != nil {
			return
		}
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.closed {
			return
		}
		host, rec := sink.NewHost(nil, nil), sink.NewRecorder()
		if err := a.apply(ctx, cfg, host, rec); err != nil {
			a.logger.Error("reapply %s: %v", w.Path(), err)
			return
		}
		a.cfg, a.host, a.recorder = cfg, host, rec
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close releases the output file, if the app opened one.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true
	if a.closeOut != nil {
		return a.closeOut()
	}
	return nil
}

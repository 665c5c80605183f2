package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"
	"github.com/spf13/cobra"

	"github.com/dshills/modemap/internal/app"
	"github.com/dshills/modemap/internal/config"
	"github.com/dshills/modemap/internal/log"
	"github.com/dshills/modemap/internal/mode"
)

// globals holds the persistent flags.
type globals struct {
	configPath string
	logLevel   string
	sinkKind   string
	output     string
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "modemap",
		Short: "Expand multi-mode key mappings and menus into host commands",
		Long: `modemap expands one mapping or menu declaration into the native
commands of every editor mode it names, wrapping the right-hand side so it
runs from Visual, Insert, Command-line and Operator-pending mode.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "",
		"config file (.toml, .yaml or .yml)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "",
		"log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&g.sinkKind, "sink", "",
		"where commands go: script, json, table or record")
	root.PersistentFlags().StringVarP(&g.output, "output", "o", "",
		"script or json output file (default stdout)")

	root.AddCommand(
		newExpandCmd(g),
		newMapCmd(g),
		newMenuCmd(g),
		newDirectiveCmd(g),
		newSourceCmd(g),
		newReplayCmd(g),
		newCatalogueCmd(),
		newLuaCmd(g),
		newApplyCmd(g),
		newWatchCmd(g),
		newVersionCmd(),
	)
	return root
}

// load reads the configuration and applies flag overrides on top of the
// file and environment.
func (g *globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.sinkKind != "" {
		cfg.Sink.Kind = g.sinkKind
	}
	if g.output != "" {
		cfg.Sink.Output = g.output
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// open loads the configuration and builds the app. Script output that
// would go to stdout goes to the command's output instead.
func (g *globals) open(cmd *cobra.Command) (*app.App, func(), error) {
	cfg, err := g.load()
	if err != nil {
		return nil, nil, err
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	logger, closeLog, err := log.Open(cfg.Log.File, level)
	if err != nil {
		return nil, nil, err
	}

	var opts []app.Option
	if cfg.Sink.Output == "" || cfg.Sink.Output == "-" {
		opts = append(opts, app.WithOutput(cmd.OutOrStdout()))
	}
	a, err := app.New(cfg, logger, opts...)
	if err != nil {
		_ = closeLog()
		return nil, nil, err
	}

	cleanup := func() {
		if err := a.Close(); err != nil {
			logger.Error("closing output: %v", err)
		}
		_ = closeLog()
	}
	return a, cleanup, nil
}

// session runs fn in one app session and prints what the table and record
// sinks collected.
func (g *globals) session(cmd *cobra.Command, fn func(*app.Session) error) error {
	a, cleanup, err := g.open(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := a.Do(cmdContext(cmd), fn); err != nil {
		return err
	}
	return report(cmd.OutOrStdout(), a)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// report prints the host model for the table sink and the primitives for
// the record sink. The script sink has already written its output.
func report(w io.Writer, a *app.App) error {
	switch a.Config().Sink.Kind {
	case config.SinkTable:
		return reportHost(w, a)
	case config.SinkRecord:
		for _, line := range a.Recorder().Strings() {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func reportHost(w io.Writer, a *app.App) error {
	table := a.Host().Keymap()
	for _, m := range mode.All.Modes() {
		for _, e := range table.All(m) {
			marker := " "
			if !e.Recursive {
				marker = "*"
			}
			if _, err := fmt.Fprintf(w, "%c  %s %s %s\n", m.Letter(), pad(e.LHS, 12), marker, e.RHS); err != nil {
				return err
			}
		}
	}

	menus := a.Host().Menus()
	for _, m := range menus.Modes() {
		if _, err := fmt.Fprintf(w, "--- %s menus ---\n", m); err != nil {
			return err
		}
		if err := menus.Render(w, m); err != nil {
			return err
		}
	}
	return nil
}

// pad right-pads s with spaces to width display columns.
func pad(s string, width int) string {
	if n := uniseg.StringWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

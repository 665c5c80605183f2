package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/modemap/internal/app"
	"github.com/dshills/modemap/internal/config"
)

func newLuaCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "lua FILE...",
		Short: "Run Lua scripts against the modemap module",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := make([]string, len(args))
			for i, p := range args {
				abs, err := filepath.Abs(p)
				if err != nil {
					return err
				}
				paths[i] = abs
			}
			return g.session(cmd, func(s *app.Session) error {
				return s.RunScripts(paths...)
			})
		},
	}
}

func newApplyCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Apply the mappings, menus, directives and scripts in the config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.Apply(cmdContext(cmd)); err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), a)
		},
	}
}

func newWatchCmd(g *globals) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Apply the config and apply it again whenever the file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if g.configPath == "" {
				return fmt.Errorf("watch needs --config")
			}
			a, cleanup, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmdContext(cmd)
			if err := a.Apply(ctx); err != nil {
				return err
			}
			return a.Watch(ctx, g.configPath, config.WithDebounce(debounce))
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", config.DefaultDebounce,
		"wait this long after a change before reloading")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "modemap %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", date)
		},
	}
}

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/modemap/internal/app"
	"github.com/dshills/modemap/internal/directive"
	"github.com/dshills/modemap/internal/sink"
)

func newDirectiveCmd(g *globals) *cobra.Command {
	var (
		modeDesc string
		priority string
		bind     bool
		binding  bool
	)

	cmd := &cobra.Command{
		Use:   "directive ARGS...",
		Short: "Parse one directive argument string and create the entry",
		Long: `directive parses the arguments of a menu directive:

  [count] [<special>...] path ['label'] ['help'] rhs

With --map the arguments are parsed as a mapping instead:

  [<special>...] lhs rhs`,
		Example: `  modemap directive --mode nnoremenu "10 &File.Save 'Save file' 'Ctrl-S' :w<CR>"
  modemap directive --map --mode nvnoremap '<silent> Q gq'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line := strings.Join(args, " ")
			return g.session(cmd, func(s *app.Session) error {
				p := s.Runner.Parser()
				if binding {
					return p.Bind(line, modeDesc)
				}
				return p.Dispatch(line, modeDesc, priority, bind)
			})
		},
	}

	cmd.Flags().StringVarP(&modeDesc, "mode", "m", "",
		"descriptor the entry is created with (default from config)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "",
		"menu priority (default the line's count)")
	cmd.Flags().BoolVarP(&bind, "bind", "b", false,
		"map the help key sequence to the rhs")
	cmd.Flags().BoolVar(&binding, "map", false,
		"parse the arguments as a mapping")
	cmd.MarkFlagsMutuallyExclusive("map", "bind")
	cmd.MarkFlagsMutuallyExclusive("map", "priority")
	return cmd
}

func newSourceCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "source FILE",
		Short: "Run a file of directive command lines",
		Long: `source runs one directive command per line, for example
"NVINoremap <C-S> :w<CR>". Blank lines and lines starting with " or # are
skipped. FILE "-" reads standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}
			return g.session(cmd, func(s *app.Session) error {
				if err := s.Runner.RunScript(r); err != nil {
					return fmt.Errorf("%s: %w", args[0], err)
				}
				return nil
			})
		},
	}
}

func newReplayCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "replay FILE",
		Short: "Send commands recorded by the json sink to the configured sink",
		Example: `  modemap --sink json -o run.jsonl apply
  modemap --sink table replay run.jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}
			return g.session(cmd, func(s *app.Session) error {
				n, err := sink.Replay(r, s.Builder.Sink())
				if err != nil {
					return fmt.Errorf("%s: %w", args[0], err)
				}
				s.Logger.Info("replayed %d commands", n)
				return nil
			})
		},
	}
}

func newCatalogueCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:     "catalogue",
		Aliases: []string{"catalog"},
		Short:   "List the directive commands",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, d := range directive.Catalogue() {
				if kind != "" && !strings.EqualFold(d.Kind.String(), kind) {
					continue
				}
				fmt.Fprintf(w, "%s %s\n", pad(d.Name, 16), d.Descriptor())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "",
		"only list one kind: map, menu or menumap")
	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/modemap/internal/app"
	"github.com/dshills/modemap/internal/builder"
)

func newMapCmd(g *globals) *cobra.Command {
	var (
		descriptor string
		also       []string
	)

	cmd := &cobra.Command{
		Use:   "map LHS RHS",
		Short: "Create a mapping in every mode the descriptor names",
		Example: `  modemap map -d nvinoremap '<C-S>' ':w<CR>'
  modemap map --also '<F2>' '<C-S>' ':w<CR>'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lhs := append([]string{args[0]}, also...)
			return g.session(cmd, func(s *app.Session) error {
				return s.Builder.CreateMapping(lhs, args[1], descriptor)
			})
		},
	}

	cmd.Flags().StringVarP(&descriptor, "descriptor", "d", "",
		"mapping descriptor (default from config)")
	cmd.Flags().StringArrayVar(&also, "also", nil,
		"additional lhs mapped to the same rhs")
	return cmd
}

func newMenuCmd(g *globals) *cobra.Command {
	var (
		item builder.MenuItem
		help string
		bind []string
	)

	cmd := &cobra.Command{
		Use:   "menu LOCATION RHS",
		Short: "Create a menu entry in every mode the descriptor names",
		Example: `  modemap menu '&File' ':w<CR>' --label Save --priority 10
  modemap menu '&File' ':w<CR>' --bind '<C-S>' -d nvinoremenu`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			item.Location, item.RHS = args[0], args[1]
			switch {
			case len(bind) > 0:
				item.Help = builder.HelpList(bind...)
			case help != "":
				item.Help = builder.HelpText(help)
			}
			return g.session(cmd, func(s *app.Session) error {
				return s.Builder.CreateMenuItem(item)
			})
		},
	}

	cmd.Flags().StringVarP(&item.Descriptor, "descriptor", "d", "",
		"menu descriptor (default from config)")
	cmd.Flags().StringVarP(&item.Label, "label", "l", "",
		"entry label (default derived from rhs)")
	cmd.Flags().StringVarP(&item.Priority, "priority", "p", "",
		"menu priority, for example 10 or .20")
	cmd.Flags().StringVar(&help, "help", "",
		"hint shown next to the entry")
	cmd.Flags().StringArrayVar(&bind, "bind", nil,
		"key sequence shown as the hint and mapped to rhs")
	cmd.MarkFlagsMutuallyExclusive("help", "bind")
	return cmd
}

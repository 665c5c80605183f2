package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/modemap/internal/expand"
)

func newExpandCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "expand LHS RHS DESCRIPTOR",
		Short: "Print the native commands for one mapping or menu",
		Example: `  modemap expand '<C-S>' ':w<CR>' nvinoremap
  modemap expand '10 &File.Save' ':w<CR>' nnoremenu`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			for _, p := range expand.New(cfg.Codes).Expand(args[0], args[1], args[2]) {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

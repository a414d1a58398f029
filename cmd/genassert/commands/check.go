package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/genassert/internal/app"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [scenario files...]",
		Short: "Run the scenarios in the given files",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{"scenarios.yaml"}
			}
			parallelism, _ := cmd.Flags().GetInt("parallelism")

			return c.app.Check(cmd.Context(), paths, app.CheckOptions{
				Parallelism: parallelism,
			})
		},
	}
	cmd.Flags().IntP("parallelism", "p", 0, "Maximum concurrent scenarios (0 means one per CPU)")
	return cmd
}

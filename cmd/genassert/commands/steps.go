package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) newStepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "steps [scenario file]",
		Short: "Run each scenario twice and print the step breakdown of the second run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "scenarios.yaml"
			if len(args) > 0 {
				path = args[0]
			}

			reports, err := c.app.StepReports(cmd.Context(), path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, r := range reports {
				if i > 0 {
					_, _ = fmt.Fprintln(out)
				}
				_, _ = fmt.Fprintf(out, "=== %s ===\n%s\n", r.Scenario, r.Report)
			}
			return nil
		},
	}
}

func (c *CLI) newPipelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pipeline [generator]",
		Short: "Print the declared pipeline of a registered generator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := c.app.Steps(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, info := range infos {
				tag := ""
				if info.Infrastructure {
					tag = " (infrastructure)"
				}
				if len(info.Inputs) == 0 {
					_, _ = fmt.Fprintf(out, "%s%s\n", info.Name, tag)
					continue
				}
				_, _ = fmt.Fprintf(out, "%s%s <- %s\n", info.Name, tag, strings.Join(info.Inputs, ", "))
			}
			return nil
		},
	}
}

func (c *CLI) newGeneratorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generators",
		Short: "List the registered generators",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for _, name := range c.app.Generators() {
				_, _ = fmt.Fprintln(out, name)
			}
		},
	}
}

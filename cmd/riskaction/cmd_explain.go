package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"riskaction/internal/artifact"
	"riskaction/internal/report"
	"riskaction/internal/risk"
)

func newExplainCmd(opts *rootOptions) *cobra.Command {
	var markdown bool
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Show how every rule evaluates an artifact read from stdin",
		Long: `Evaluates every rule against the artifact on stdin without stopping at the
first failure and prints one table row per rule. Rule errors are reported in
the table; only an undecodable document makes the command fail.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := artifact.Decode(cmd.InOrStdin())
			if err != nil {
				return err
			}
			mode := report.ASCII
			if markdown {
				mode = report.Markdown
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.Traces(risk.Explain(a, opts.rules), mode))
			return nil
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render a Markdown table")
	return cmd
}

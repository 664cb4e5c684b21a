package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"riskaction/internal/batch"
	"riskaction/internal/postaction"
)

func newBatchCmd(opts *rootOptions) *cobra.Command {
	var parallel int
	cmd := &cobra.Command{
		Use:   "batch FILE...",
		Short: "Evaluate several artifact files concurrently",
		Long: `Evaluates each artifact file and prints one line per file, in argument order:
{"file":"<path>","values":[...]}. The first failing file aborts the batch and
nothing is printed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if parallel < 1 {
				return fmt.Errorf("--parallel must be at least 1, got %d", parallel)
			}
			results, err := batch.Run(cmd.Context(), postaction.New(opts.rules), batch.Config{
				Files:    args,
				Parallel: parallel,
			})
			if err != nil {
				return err
			}
			return batch.Write(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().IntVar(&parallel, "parallel", batch.DefaultParallel, "Number of files evaluated at once")
	return cmd
}

// riskaction is a tracker post action: it reads an artifact document on
// stdin, computes the risk and residual risk levels from the severity and
// probability select boxes, and writes the field bindings to apply on stdout.
//
// Usage:
//
//	riskaction < artifact.json
//	riskaction explain [--markdown] < artifact.json
//	riskaction batch [--parallel=N] FILE...
//	riskaction serve
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"riskaction/internal/logging"
	"riskaction/internal/postaction"
	"riskaction/internal/risk"
	"riskaction/internal/ruleset"
)

// version is set at build time via -ldflags.
var version = "dev"

type rootOptions struct {
	rulesPath string
	logLevel  string
	logFormat string

	rules []risk.Rule
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "riskaction",
		Short: "Compute risk levels for a tracker artifact",
		Long: `Reads one artifact document (current changeset and tracker definition) on stdin
and writes {"values":[...]} on stdout: the risk and residual risk level fields
to bind, computed as severity x probability.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       version,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return postaction.New(opts.rules).Run(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.rulesPath, "rules", "", "Rule set file (YAML/JSON); default is risk + residual risk")
	f.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	f.StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")

	cmd.AddCommand(newExplainCmd(opts))
	cmd.AddCommand(newBatchCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	return cmd
}

func (o *rootOptions) setup(stderr io.Writer) error {
	level, err := logging.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}
	if err := logging.Init(level, o.logFormat, stderr); err != nil {
		return err
	}

	rs := ruleset.Default()
	if o.rulesPath != "" {
		if rs, err = ruleset.LoadFromPath(o.rulesPath); err != nil {
			return err
		}
		logging.New("config").Debug("rule set loaded", "path", o.rulesPath, "rules", len(rs.Rules))
	}
	o.rules = rs.Rules
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "riskaction: %v\n", err)
		os.Exit(1)
	}
}

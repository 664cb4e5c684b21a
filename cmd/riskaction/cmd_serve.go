package main

import (
	"context"

	"github.com/spf13/cobra"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"riskaction/internal/logging"
	mcpserver "riskaction/internal/mcp"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Long: `Starts an MCP server over stdin/stdout exposing the compute_risk tool, which
takes an artifact document and returns the same {"values":[...]} document as
the default command.

The server exits when its parent process goes away.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv := mcpserver.NewServer(version, opts.rules)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			mcpserver.WatchParent(ctx, cancel)

			logging.New("mcp").Info("starting riskaction MCP server over stdio", "rules", len(opts.rules))
			return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
		},
	}
}

package mcp

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"riskaction/internal/artifact"
	"riskaction/internal/logging"
	"riskaction/internal/postaction"
	"riskaction/internal/risk"
)

// Server wraps the MCP SDK server and exposes the risk rules as a tool.
type Server struct {
	MCPServer *sdkmcp.Server
	Rules     []risk.Rule

	log *slog.Logger
}

// NewServer creates an MCP server that evaluates rules on request.
func NewServer(version string, rules []risk.Rule) *Server {
	s := &Server{
		MCPServer: sdkmcp.NewServer(
			&sdkmcp.Implementation{Name: "riskaction", Version: version},
			nil,
		),
		Rules: rules,
		log:   logging.New("mcp"),
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "compute_risk",
		Description: "Compute risk and residual risk bindings for a tracker artifact. Returns the field values to apply.",
	}, s.handleComputeRisk)
}

type computeRiskInput struct {
	Artifact string `json:"artifact" jsonschema:"artifact JSON document (id, current changeset, tracker)"`
}

type computeRiskOutput struct {
	Values []artifact.FieldValueBinding `json:"values"`
}

func (s *Server) handleComputeRisk(_ context.Context, _ *sdkmcp.CallToolRequest, input computeRiskInput) (*sdkmcp.CallToolResult, computeRiskOutput, error) {
	a, err := artifact.Parse([]byte(input.Artifact))
	if err != nil {
		return nil, computeRiskOutput{}, err
	}
	bindings, err := postaction.New(s.Rules).Evaluate(a)
	if err != nil {
		s.log.Warn("compute_risk failed", "artifact_id", a.ID, "error", err)
		return nil, computeRiskOutput{}, fmt.Errorf("artifact %d: %w", a.ID, err)
	}
	s.log.Info("compute_risk", "artifact_id", a.ID, "bindings", len(bindings))
	return nil, computeRiskOutput{Values: postaction.NewResponse(bindings).Values}, nil
}

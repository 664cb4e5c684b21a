package mcp_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	mcpserver "riskaction/internal/mcp"
	"riskaction/internal/risk"
)

const scenario = `{"id":5,"current":{"id":6,"values":[
  {"type":"sb","field_id":1,"label":"Severity","values":[{"id":11,"label":"2","color":null,"tlp_color":null}],"bind_value_ids":[11]},
  {"type":"sb","field_id":2,"label":"Probability","values":[{"id":21,"label":"3","color":null,"tlp_color":null}],"bind_value_ids":[21]}
]},"tracker":{"id":7,"fields":[%s]}}`

const riskField = `{"field_id":42,"label":"Risk","values":[{"id":7,"label":"5"},{"id":8,"label":"6"}]}`

func connectInMemory(t *testing.T, ctx context.Context, srv *mcpserver.Server) *sdkmcp.ClientSession {
	t.Helper()
	t1, t2 := sdkmcp.NewInMemoryTransports()
	if _, err := srv.MCPServer.Connect(ctx, t1, nil); err != nil {
		t.Fatalf("server.Connect: %v", err)
	}
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, t2, nil)
	if err != nil {
		t.Fatalf("client.Connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func callTool(t *testing.T, ctx context.Context, session *sdkmcp.ClientSession, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "compute_risk",
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	return res
}

func textOf(t *testing.T, res *sdkmcp.CallToolResult) string {
	t.Helper()
	for _, c := range res.Content {
		if tc, ok := c.(*sdkmcp.TextContent); ok {
			return tc.Text
		}
	}
	t.Fatal("no text content in tool result")
	return ""
}

func TestComputeRisk_Binds(t *testing.T) {
	ctx := context.Background()
	session := connectInMemory(t, ctx, mcpserver.NewServer("test", risk.DefaultRules()))

	res := callTool(t, ctx, session, map[string]any{"artifact": strings.Replace(scenario, "%s", riskField, 1)})
	if res.IsError {
		t.Fatalf("tool returned error: %s", textOf(t, res))
	}

	var got struct {
		Values []struct {
			FieldID      int64   `json:"field_id"`
			BindValueIDs []int64 `json:"bind_value_ids"`
		} `json:"values"`
	}
	if err := json.Unmarshal([]byte(textOf(t, res)), &got); err != nil {
		t.Fatalf("unmarshal tool result: %v", err)
	}
	if len(got.Values) != 1 || got.Values[0].FieldID != 42 {
		t.Fatalf("unexpected values: %+v", got.Values)
	}
	if diff := cmp.Diff([]int64{8}, got.Values[0].BindValueIDs); diff != "" {
		t.Errorf("bind_value_ids mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeRisk_Errors(t *testing.T) {
	ctx := context.Background()
	session := connectInMemory(t, ctx, mcpserver.NewServer("test", risk.DefaultRules()))

	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{name: "missing risk field", doc: strings.Replace(scenario, "%s", "", 1), wantMsg: "cannot find field Risk"},
		{name: "malformed", doc: `{"id":`, wantMsg: "decode artifact"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, ctx, session, map[string]any{"artifact": tt.doc})
			if !res.IsError {
				t.Fatalf("expected tool error, got %s", textOf(t, res))
			}
			if msg := textOf(t, res); !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("error %q does not contain %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestListTools(t *testing.T) {
	ctx := context.Background()
	session := connectInMemory(t, ctx, mcpserver.NewServer("test", risk.DefaultRules()))

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	if diff := cmp.Diff([]string{"compute_risk"}, names); diff != "" {
		t.Errorf("tools mismatch (-want +got):\n%s", diff)
	}
}

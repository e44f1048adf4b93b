package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgegate-io/edgegate/internal/edgegate/dispatch"
	"github.com/edgegate-io/edgegate/internal/edgegate/exchange"
)

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = "resource_action"
	req.Params.Arguments = args
	result, err := handler(context.Background(), req)
	require.NoError(t, err, "tool handlers must report failures via the result")
	require.NotNil(t, result)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestResourceActionToolSchema(t *testing.T) {
	tool := NewResourceActionTool()
	assert.Equal(t, "resource_action", tool.Name)
	for _, prop := range []string{"action", "target", "policyType", "name", "data"} {
		assert.Contains(t, tool.InputSchema.Properties, prop)
	}
	assert.ElementsMatch(t, []string{"action", "target"}, tool.InputSchema.Required)
}

func TestResourceActionHandlerSuccess(t *testing.T) {
	tc := exchange.NewTestClient()
	tc.Responses["ListServices"] = []byte(`{"services":{"web":{}}}`)
	handler := resourceActionHandler(dispatch.NewDispatcher(tc))

	result := callTool(t, handler, map[string]any{"action": "list", "target": "service"})
	assert.False(t, result.IsError)

	var out dispatch.Outcome
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	assert.True(t, out.Success)
	assert.JSONEq(t, `{"services":{"web":{}}}`, string(out.Data))
}

func TestResourceActionHandlerFailureEnvelope(t *testing.T) {
	tc := exchange.NewTestClient()
	handler := resourceActionHandler(dispatch.NewDispatcher(tc))

	// validation failures keep the same envelope shape, marked as errors
	result := callTool(t, handler, map[string]any{"action": "details", "target": "node"})
	assert.True(t, result.IsError)

	var out dispatch.Outcome
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	assert.False(t, out.Success)
	assert.Contains(t, out.Message, "name is required")
	assert.Equal(t, 0, tc.CallCount())
}

func TestResourceActionHandlerBadArguments(t *testing.T) {
	handler := resourceActionHandler(dispatch.NewDispatcher(exchange.NewTestClient()))
	result := callTool(t, handler, map[string]any{"action": 7})
	assert.True(t, result.IsError)
}

func TestExchangeVersionHandler(t *testing.T) {
	tc := exchange.NewTestClient()
	tc.Responses["Version"] = []byte(`2.110.1`)
	handler := exchangeVersionHandler(tc)

	req := mcp.CallToolRequest{}
	req.Params.Name = "exchange_version"
	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "2.110.1", resultText(t, result))
	assert.Equal(t, []string{"Version"}, tc.Calls())
}

func TestProtocolHandlerConstruction(t *testing.T) {
	tc := exchange.NewTestClient()
	srv := NewProtocolHandler(dispatch.NewDispatcher(tc), tc)
	require.NotNil(t, srv)

	// tools/list over the wire codec reports both tools
	raw := json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	rsp := srv.HandleMessage(context.Background(), raw)
	data, err := json.Marshal(rsp)
	require.NoError(t, err)
	assert.Contains(t, string(data), "resource_action")
	assert.Contains(t, string(data), "exchange_version")
}

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgegate-io/edgegate/internal/edgegate/dispatch"
)

type rpcErrorBody struct {
	JSONRPC string `json:"jsonrpc"`
	Error   struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeRPCError(t *testing.T, body []byte) rpcErrorBody {
	t.Helper()
	var e rpcErrorBody
	require.NoError(t, json.Unmarshal(body, &e))
	return e
}

func TestInitiation(t *testing.T) {
	s, _ := newTestServer(t)

	rsp := postMCP(s, "", initializeBody())
	require.Equal(t, http.StatusOK, rsp.Code)

	sid := rsp.Header().Get(SessionHeader)
	assert.Len(t, sid, 64)
	assert.Contains(t, rsp.Body.String(), "protocolVersion")
	assert.Contains(t, rsp.Body.String(), "edgegate-mcp-server")

	// two initiations produce distinct sessions
	rsp2 := postMCP(s, "", initializeBody())
	require.Equal(t, http.StatusOK, rsp2.Code)
	assert.NotEqual(t, sid, rsp2.Header().Get(SessionHeader))
}

func TestSessionlessNonInitiationRejected(t *testing.T) {
	s, _ := newTestServer(t)

	rsp := postMCP(s, "", `{"jsonrpc":"2.0","id":7,"method":"tools/list"}`)
	require.Equal(t, http.StatusBadRequest, rsp.Code)
	e := decodeRPCError(t, rsp.Body.Bytes())
	assert.Equal(t, -32000, e.Error.Code)
	assert.Contains(t, e.Error.Message, "no valid session")

	// not even valid JSON-RPC
	rsp = postMCP(s, "", `{"hello":"world"}`)
	require.Equal(t, http.StatusBadRequest, rsp.Code)
	assert.Equal(t, -32000, decodeRPCError(t, rsp.Body.Bytes()).Error.Code)
}

func TestUnknownSessionRejected(t *testing.T) {
	s, _ := newTestServer(t)

	rsp := postMCP(s, "deadbeef", `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	require.Equal(t, http.StatusBadRequest, rsp.Code)
	assert.Equal(t, -32000, decodeRPCError(t, rsp.Body.Bytes()).Error.Code)
}

func TestBoundSessionToolCall(t *testing.T) {
	s, tc := newTestServer(t)
	tc.Responses["ListDeploymentPolicies"] = []byte(`{"policies":[]}`)
	sid := initSession(t, s)

	rsp := postMCP(s, sid, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	require.Equal(t, http.StatusOK, rsp.Code)
	assert.Contains(t, rsp.Body.String(), "resource_action")
	assert.Contains(t, rsp.Body.String(), "exchange_version")

	rsp = postMCP(s, sid, `{
		"jsonrpc": "2.0",
		"id": 3,
		"method": "tools/call",
		"params": {"name": "resource_action", "arguments": {"action": "list", "target": "policy"}}
	}`)
	require.Equal(t, http.StatusOK, rsp.Code)

	var call struct {
		Result struct {
			IsError bool `json:"isError"`
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rsp.Body.Bytes(), &call))
	assert.False(t, call.Result.IsError)
	require.NotEmpty(t, call.Result.Content)

	var out dispatch.Outcome
	require.NoError(t, json.Unmarshal([]byte(call.Result.Content[0].Text), &out))
	assert.True(t, out.Success)
	assert.JSONEq(t, `{"policies":[]}`, string(out.Data))
	assert.Equal(t, []string{"ListDeploymentPolicies"}, tc.Calls())
}

func TestNotificationAccepted(t *testing.T) {
	s, _ := newTestServer(t)
	sid := initSession(t, s)

	rsp := postMCP(s, sid, `{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	assert.Equal(t, http.StatusAccepted, rsp.Code)
	assert.Empty(t, rsp.Body.String())
}

func TestGetRequiresSession(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
	rsp := executeRequest(s, req)
	require.Equal(t, http.StatusBadRequest, rsp.Code)
	assert.Equal(t, -32000, decodeRPCError(t, rsp.Body.Bytes()).Error.Code)

	// with a live session the verb is known but streaming is not offered
	sid := initSession(t, s)
	req = httptest.NewRequest(http.MethodGet, "/mcp", nil)
	req.Header.Set(SessionHeader, sid)
	rsp = executeRequest(s, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rsp.Code)
}

func TestDeleteTerminatesSession(t *testing.T) {
	s, _ := newTestServer(t)

	// termination requires a live session
	req := httptest.NewRequest(http.MethodDelete, "/mcp", nil)
	rsp := executeRequest(s, req)
	require.Equal(t, http.StatusBadRequest, rsp.Code)

	sid := initSession(t, s)
	req = httptest.NewRequest(http.MethodDelete, "/mcp", nil)
	req.Header.Set(SessionHeader, sid)
	rsp = executeRequest(s, req)
	require.Equal(t, http.StatusOK, rsp.Code)

	// a closed session's id no longer resolves; the client must re-initiate
	rsp = postMCP(s, sid, `{"jsonrpc":"2.0","id":4,"method":"tools/list"}`)
	require.Equal(t, http.StatusBadRequest, rsp.Code)
	assert.Equal(t, -32000, decodeRPCError(t, rsp.Body.Bytes()).Error.Code)

	// double delete is an unknown-session error, not a crash
	req = httptest.NewRequest(http.MethodDelete, "/mcp", nil)
	req.Header.Set(SessionHeader, sid)
	rsp = executeRequest(s, req)
	assert.Equal(t, http.StatusBadRequest, rsp.Code)
}

func TestUnsupportedVerb(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPut, "/mcp", nil)
	rsp := executeRequest(s, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rsp.Code)
	assert.Equal(t, "POST", rsp.Header().Get("Allow"))
}

// Forwarding is response-transparent: the body returned through a bound
// session is exactly the handler's response for that message.
func TestForwardingTransparency(t *testing.T) {
	s, _ := newTestServer(t)
	sid := initSession(t, s)

	rsp := postMCP(s, sid, `{"jsonrpc":"2.0","id":9,"method":"tools/list"}`)
	require.Equal(t, http.StatusOK, rsp.Code)

	sess, ok := s.registry.Lookup(sid)
	require.True(t, ok)
	direct := sess.Transport.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":9,"method":"tools/list"}`))
	directJSON, err := json.Marshal(direct)
	require.NoError(t, err)
	assert.JSONEq(t, string(directJSON), rsp.Body.String())
}

package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/edgegate-io/edgegate/internal/edgegate/config"
	"github.com/edgegate-io/edgegate/internal/edgegate/exchange"
)

func newTestServer(t *testing.T) (*GateServer, *exchange.TestClient) {
	t.Helper()
	config.TestInit(t)
	tc := exchange.NewTestClient()
	s, err := CreateServerWithExchange(tc)
	require.NoError(t, err, "create new server")
	s.MountHandlers()
	return s, tc
}

func executeRequest(s *GateServer, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func initializeBody() string {
	return fmt.Sprintf(`{
		"jsonrpc": "2.0",
		"id": 1,
		"method": "initialize",
		"params": {
			"protocolVersion": %q,
			"capabilities": {},
			"clientInfo": {"name": "edgegate-test", "version": "0.0.0"}
		}
	}`, mcp.LATEST_PROTOCOL_VERSION)
}

func postMCP(s *GateServer, sessionID string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}
	return executeRequest(s, req)
}

// initSession initiates a new session and returns its identifier.
func initSession(t *testing.T, s *GateServer) string {
	t.Helper()
	rsp := postMCP(s, "", initializeBody())
	require.Equal(t, http.StatusOK, rsp.Code, "initiation should succeed: %s", rsp.Body.String())
	sid := rsp.Header().Get(SessionHeader)
	require.NotEmpty(t, sid, "initiation must return a session id")
	return sid
}

package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/edgegate-io/edgegate/internal/common/httpx"
	"github.com/edgegate-io/edgegate/internal/edgegate/tools"
)

// Version is the current version of the edgegate server.
// The version follows semantic versioning (MAJOR.MINOR.PATCH).
const Version = "0.1.0"

// GetVersionRsp represents the response for version information.
type GetVersionRsp struct {
	ServerVersion string `json:"serverVersion"` // server version string
	McpVersion    string `json:"mcpVersion"`    // MCP server version string
}

// getVersion handles version information requests.
func (s *GateServer) getVersion(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("GetVersion")
	rsp := &GetVersionRsp{
		ServerVersion: "Edgegate Server: " + Version,
		McpVersion:    tools.ServerVersion,
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, rsp)
}

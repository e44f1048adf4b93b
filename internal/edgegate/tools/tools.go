// Package tools defines the MCP tools exposed to each session and
// constructs the per-session protocol handler that serves them.
package tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/edgegate-io/edgegate/internal/edgegate/dispatch"
	"github.com/edgegate-io/edgegate/internal/edgegate/exchange"
)

const serverName = "edgegate-mcp-server"

// ServerVersion is the MCP server version advertised at initialization.
const ServerVersion = "0.1.0"

// NewProtocolHandler builds the protocol handler for one session with all
// edgegate tools registered. Each session gets its own handler instance;
// the dispatcher and exchange client behind it are shared.
func NewProtocolHandler(d *dispatch.Dispatcher, ex exchange.Reader) *mcpserver.MCPServer {
	srv := mcpserver.NewMCPServer(
		serverName,
		ServerVersion,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithInstructions("Manage edge computing resources: list, inspect, create, and delete services, nodes, and policies in the configured organization."),
	)
	srv.AddTool(NewResourceActionTool(), resourceActionHandler(d))
	srv.AddTool(NewExchangeVersionTool(), exchangeVersionHandler(ex))
	return srv
}

// NewResourceActionTool declares the generic resource action tool. The
// schema mirrors the dispatcher's request type: five actions over three
// targets, with an optional policy type to disambiguate policy endpoints.
func NewResourceActionTool() mcp.Tool {
	return mcp.NewTool("resource_action",
		mcp.WithDescription("Perform an action on an edge computing resource. Actions: list, details, create, delete, status. Targets: service, node, policy. When the target is a policy, policyType selects the policy kind."),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("The operation to perform"),
			mcp.Enum("list", "details", "create", "delete", "status"),
		),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("The resource category the action applies to"),
			mcp.Enum("service", "node", "policy"),
		),
		mcp.WithString("policyType",
			mcp.Description("Policy kind when the target is a policy"),
			mcp.Enum("node", "service", "deployment"),
		),
		mcp.WithString("name",
			mcp.Description("Name of the specific resource instance. Required for details, create, delete, and status; omit for list."),
		),
		mcp.WithObject("data",
			mcp.Description("Resource definition payload. Required for create."),
		),
	)
}

// resourceActionHandler adapts the dispatcher to the MCP tool interface.
// The dispatcher's envelope is returned as JSON text on success and failure
// alike; IsError marks failed envelopes for the assistant.
func resourceActionHandler(d *dispatch.Dispatcher) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		log.Ctx(ctx).Info().Any("arguments", args).Msg("resource_action call")

		r, aerr := dispatch.DecodeRequest(args)
		if aerr != nil {
			return mcp.NewToolResultError(aerr.ErrorAll()), nil
		}

		out := d.Handle(ctx, r)
		payload, err := json.Marshal(out)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("unable to encode outcome")
			return mcp.NewToolResultError("unable to encode result"), nil
		}
		result := mcp.NewToolResultText(string(payload))
		result.IsError = !out.Success
		return result, nil
	}
}

// NewExchangeVersionTool declares the exchange version probe.
func NewExchangeVersionTool() mcp.Tool {
	return mcp.NewTool("exchange_version",
		mcp.WithDescription("Return the version of the remote edge exchange API."),
	)
}

func exchangeVersionHandler(ex exchange.Reader) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := ex.Version(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(body)), nil
	}
}

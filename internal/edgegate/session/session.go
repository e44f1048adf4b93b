// Package session manages durable MCP sessions: the binding between a
// client-visible session identifier and the server-side protocol
// handler/transport pair that outlives a single HTTP request.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Session binds a session identifier to its protocol handler and transport.
// The binding is fixed for the session's lifetime; closing the transport is
// the only way a session ends.
type Session struct {
	ID        string
	Handler   *mcpserver.MCPServer
	Transport *Transport
}

// Transport carries protocol messages between the HTTP layer and one
// session's protocol handler. It remembers the headers present at
// initiation for credential/context propagation and notifies the registry
// exactly once when closed.
type Transport struct {
	id        string
	handler   *mcpserver.MCPServer
	headers   http.Header
	onClose   func(id string)
	closeOnce sync.Once
}

// NewTransport creates a transport bound to the given session id and
// protocol handler. onClose runs exactly once when the transport closes;
// it may be nil.
func NewTransport(id string, handler *mcpserver.MCPServer, headers http.Header, onClose func(id string)) *Transport {
	return &Transport{
		id:      id,
		handler: handler,
		headers: headers.Clone(),
		onClose: onClose,
	}
}

// SessionID returns the session identifier this transport is bound to.
func (t *Transport) SessionID() string {
	return t.id
}

// InitiationHeaders returns the headers captured at session initiation.
func (t *Transport) InitiationHeaders() http.Header {
	return t.headers
}

// HandleMessage forwards a raw JSON-RPC message to the protocol handler and
// returns its response. A nil response means the message was a notification.
func (t *Transport) HandleMessage(ctx context.Context, raw json.RawMessage) mcp.JSONRPCMessage {
	return t.handler.HandleMessage(ctx, raw)
}

// Close tears the transport down. Subsequent calls are no-ops; an in-flight
// message is unaffected.
func (t *Transport) Close() {
	t.closeOnce.Do(func() {
		if t.onClose != nil {
			t.onClose(t.id)
		}
	})
}

// NewSessionID generates a collision-resistant, cryptographically
// unpredictable session identifier (64 hex characters). Identifier
// unpredictability is a correctness requirement: session ids are the only
// credential binding a client to its session.
func NewSessionID() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		panic("unable to generate session id")
	}
	return hex.EncodeToString(bytes)
}

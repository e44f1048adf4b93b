// Package jsonrpc provides minimal JSON-RPC 2.0 message handling for the
// edgegate request router. The MCP protocol layer has its own full codec;
// this package only covers what the router needs: peeking at inbound
// requests and constructing protocol-level error responses.
package jsonrpc

import (
	"encoding/json"
	"errors"
)

// Version specifies the JSON-RPC protocol version.
const Version = "2.0"

// Request represents a JSON-RPC 2.0 request or notification. ID is kept raw
// because callers may use string or numeric identifiers; it is absent for
// notifications.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents a JSON-RPC 2.0 response. Either Result or Error is
// set, never both.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *ErrorObject    `json:"error,omitempty"`
}

// ErrorObject represents a JSON-RPC 2.0 error object.
type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Standard JSON-RPC 2.0 error codes, plus the implementation-defined code
// used for session routing failures.
const (
	ErrCodeParseError     = -32700 // invalid JSON was received
	ErrCodeInvalidRequest = -32600 // the JSON sent is not a valid Request object
	ErrCodeMethodNotFound = -32601 // the method does not exist
	ErrCodeInvalidParams  = -32602 // invalid method parameter(s)
	ErrCodeInternalError  = -32603 // internal JSON-RPC error
	ErrCodeNoValidSession = -32000 // request is not bound to a live session
)

// ParseRequest unmarshals a JSON-RPC request or notification. Returns an
// error if the payload is not a valid request object.
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	if req.JSONRPC != Version || req.Method == "" {
		return nil, errors.New("invalid JSON-RPC request")
	}
	return &req, nil
}

// NewErrorResponse constructs a JSON-RPC error response. A nil id is
// rendered as JSON null, matching protocol-level errors for requests whose
// id could not be read.
func NewErrorResponse(id json.RawMessage, code int, message string) *Response {
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	return &Response{
		JSONRPC: Version,
		ID:      id,
		Error: &ErrorObject{
			Code:    code,
			Message: message,
		},
	}
}

package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"

	"github.com/edgegate-io/edgegate/internal/common/httpx"
	"github.com/edgegate-io/edgegate/internal/common/jsonrpc"
	"github.com/edgegate-io/edgegate/internal/edgegate/session"
	"github.com/edgegate-io/edgegate/internal/edgegate/tools"
)

// SessionHeader carries the session identifier on every request after
// initiation.
const SessionHeader = "Mcp-Session-Id"

// handleMCPPost is the primary protocol endpoint. A request either belongs
// to a live session (header present and known), initiates a new session
// (no header, initialize body), or is rejected with a protocol error.
func (s *GateServer) handleMCPPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeRPCError(ctx, w, nil, jsonrpc.ErrCodeParseError, "unable to read request body", http.StatusBadRequest)
		return
	}

	if sid := r.Header.Get(SessionHeader); sid != "" {
		sess, ok := s.registry.Lookup(sid)
		if !ok {
			log.Ctx(ctx).Info().Str("session_id", sid).Msg("request for unknown session")
			writeRPCError(ctx, w, nil, jsonrpc.ErrCodeNoValidSession, "Bad Request: no valid session ID provided", http.StatusBadRequest)
			return
		}
		s.forward(w, r, sess, body)
		return
	}

	req, perr := jsonrpc.ParseRequest(body)
	if perr != nil {
		writeRPCError(ctx, w, nil, jsonrpc.ErrCodeNoValidSession, "Bad Request: no valid session ID provided", http.StatusBadRequest)
		return
	}
	if req.Method != string(mcp.MethodInitialize) {
		log.Ctx(ctx).Info().Str("method", req.Method).Msg("sessionless request is not an initiation")
		writeRPCError(ctx, w, req.ID, jsonrpc.ErrCodeNoValidSession, "Bad Request: no valid session ID provided", http.StatusBadRequest)
		return
	}

	s.initiate(w, r, body)
}

// initiate creates and registers a new session, then serves the initialize
// message through it. The session is fully constructed before registration;
// Create converges racing registrations onto a single entry.
func (s *GateServer) initiate(w http.ResponseWriter, r *http.Request, body []byte) {
	ctx := r.Context()

	id := session.NewSessionID()
	handler := tools.NewProtocolHandler(s.dispatcher, s.exchange)
	transport := session.NewTransport(id, handler, r.Header, s.registry.Remove)

	sess, err := s.registry.Create(id, handler, transport)
	if err != nil {
		httpx.SendError(w, err)
		return
	}
	log.Ctx(ctx).Info().Str("session_id", sess.ID).Msg("session initiated")

	w.Header().Set(SessionHeader, sess.ID)
	s.forward(w, r, sess, body)
}

// forward hands the raw message to the session's transport and writes the
// handler's response verbatim. A nil response means the message was a
// notification and is acknowledged with 202.
func (s *GateServer) forward(w http.ResponseWriter, r *http.Request, sess *session.Session, body []byte) {
	rsp := sess.Transport.HandleMessage(r.Context(), json.RawMessage(body))
	if rsp == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, rsp)
}

// handleMCPGet is the session-scoped notification channel. A standalone
// server-to-client stream is not offered; the session requirement still
// applies so probing without a session is indistinguishable from POST.
func (s *GateServer) handleMCPGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireSession(w, r); !ok {
		return
	}
	w.Header().Set("Allow", "POST, DELETE")
	writeRPCError(r.Context(), w, nil, jsonrpc.ErrCodeInvalidRequest, "notification streaming not supported", http.StatusMethodNotAllowed)
}

// handleMCPDelete terminates a session explicitly. Closing the transport
// removes the registry entry; a client must re-initiate afterwards.
func (s *GateServer) handleMCPDelete(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	sess.Transport.Close()
	log.Ctx(r.Context()).Info().Str("session_id", sess.ID).Msg("session terminated")
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, map[string]string{
		"status": "session terminated",
	})
}

// requireSession resolves the session header to a live session, writing the
// protocol rejection when it is absent or unknown.
func (s *GateServer) requireSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sid := r.Header.Get(SessionHeader)
	if sid == "" {
		writeRPCError(r.Context(), w, nil, jsonrpc.ErrCodeNoValidSession, "Bad Request: no valid session ID provided", http.StatusBadRequest)
		return nil, false
	}
	sess, ok := s.registry.Lookup(sid)
	if !ok {
		writeRPCError(r.Context(), w, nil, jsonrpc.ErrCodeNoValidSession, "Bad Request: no valid session ID provided", http.StatusBadRequest)
		return nil, false
	}
	return sess, true
}

func writeRPCError(ctx context.Context, w http.ResponseWriter, id json.RawMessage, code int, message string, status int) {
	rsp := jsonrpc.NewErrorResponse(id, code, message)
	httpx.SendJsonRsp(ctx, w, status, rsp)
}

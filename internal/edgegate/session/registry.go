package session

import (
	"sync"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/edgegate-io/edgegate/internal/common/apperrors"
)

// Registry maps session identifiers to live sessions. It is an injected
// object rather than process-global state so tests can run isolated
// registries. Access is safe under concurrent request handling; entries are
// fully constructed before they become visible.
type Registry struct {
	sessions sync.Map // map[string]*Session
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Lookup returns the session bound to id, or false when absent.
func (r *Registry) Lookup(id string) (*Session, bool) {
	val, ok := r.sessions.Load(id)
	if !ok {
		return nil, false
	}
	return val.(*Session), true
}

// Create registers a session binding id to the handler/transport pair.
// Registration is idempotent: when the explicit-assignment path races with
// a transport-ready callback for the same id, both converge on the entry
// stored first and exactly one session object ever exists per identifier.
func (r *Registry) Create(id string, handler *mcpserver.MCPServer, transport *Transport) (*Session, apperrors.Error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	s := &Session{
		ID:        id,
		Handler:   handler,
		Transport: transport,
	}
	actual, _ := r.sessions.LoadOrStore(id, s)
	return actual.(*Session), nil
}

// Remove deletes the registry entry for id. In-flight requests holding the
// session are unaffected; only the lookup path is cut off.
func (r *Registry) Remove(id string) {
	r.sessions.Delete(id)
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	n := 0
	r.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

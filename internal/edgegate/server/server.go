// Package server provides the HTTP server for edgegate. It mounts the MCP
// protocol endpoint with its session routing, plus health and version
// endpoints, and wires logging, panic recovery, timeout, and CORS
// middleware.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/edgegate-io/edgegate/internal/common/httpx"
	"github.com/edgegate-io/edgegate/internal/common/middleware"
	"github.com/edgegate-io/edgegate/internal/edgegate/config"
	"github.com/edgegate-io/edgegate/internal/edgegate/dispatch"
	"github.com/edgegate-io/edgegate/internal/edgegate/exchange"
	"github.com/edgegate-io/edgegate/internal/edgegate/session"
)

// requestTimeout bounds a single MCP request, including the outbound
// exchange call it may trigger.
const requestTimeout = 60 * time.Second

// GateServer is the main HTTP server. It owns the session registry and the
// dispatcher shared by every session.
type GateServer struct {
	Router *chi.Mux // HTTP router for request handling

	registry   *session.Registry
	dispatcher *dispatch.Dispatcher
	exchange   exchange.Reader
}

// CreateNewServer creates a server backed by the configured exchange.
func CreateNewServer() (*GateServer, error) {
	ex := exchange.NewClient(&config.Config().Exchange)
	return CreateServerWithExchange(ex)
}

// CreateServerWithExchange creates a server with an explicit exchange
// reader. Tests use this to substitute a recording client.
func CreateServerWithExchange(ex exchange.Reader) (*GateServer, error) {
	s := &GateServer{
		registry:   session.NewRegistry(),
		dispatcher: dispatch.NewDispatcher(ex),
		exchange:   ex,
	}
	s.Router = chi.NewRouter()
	return s, nil
}

// MountHandlers sets up all HTTP routes and middleware.
func (s *GateServer) MountHandlers() {
	s.Router.Use(middleware.RequestLogger)
	s.Router.Use(middleware.PanicHandler)
	s.Router.Use(middleware.SetTimeout(requestTimeout))
	if config.Config().HandleCORS {
		s.Router.Use(s.HandleCORS)
	}

	s.Router.Route("/mcp", func(r chi.Router) {
		r.Post("/", s.handleMCPPost)
		r.Get("/", s.handleMCPGet)
		r.Delete("/", s.handleMCPDelete)
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Allow", "POST")
			httpx.ErrMethodNotAllowed().Send(w)
		})
	})

	s.Router.Get("/health", s.getHealth)
	s.Router.Get("/version", s.getVersion)
}

// getHealth handles health check requests from process supervisors and
// container health checks.
func (s *GateServer) getHealth(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("health check")
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

// HandleCORS provides CORS middleware for cross-origin requests.
func (s *GateServer) HandleCORS(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", SessionHeader},
		ExposedHeaders:   []string{SessionHeader, middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})(next)
}

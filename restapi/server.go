// Package restapi implements the HTTP/REST facade bridging the gateway
// connection to plain JSON requests: actuator enumeration and control,
// version/network/clock queries, and controller-copy pairing.
package restapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/veluxklf/klf200d/gateway"
)

// Server owns the HTTP listener and routes every request to a gateway.Client
// method, matching the teacher's own "mux built once in a constructor,
// handlers as methods on *Server" shape.
type Server struct {
	httpServer *http.Server
	gw         *gateway.Client
	logger     *slog.Logger
}

// New builds a Server listening on addr, backed by gw.
func New(addr string, gw *gateway.Client, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{gw: gw, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /actuator/", s.handleListActuators)
	mux.HandleFunc("GET /actuator/{id}/", s.handleListActuators)
	mux.HandleFunc("POST /actuator/{id}/", s.handleSendCommand)
	mux.HandleFunc("GET /version/", s.handleVersion)
	mux.HandleFunc("GET /network_setup/", s.handleNetworkSetup)
	mux.HandleFunc("GET /clock/", s.handleGetClock)
	mux.HandleFunc("POST /clock/", s.handleSetClock)
	mux.HandleFunc("POST /config/controller_copy/", s.handleControllerCopy)
	mux.HandleFunc("GET /", s.handleNotFound)
	mux.HandleFunc("POST /", s.handleNotFound)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Serve blocks until the listener fails or Shutdown is called, returning
// http.ErrServerClosed in the latter case.
func (s *Server) Serve() error {
	s.logger.Info("restapi: listening", "address", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the server's routed http.Handler, for tests that want to
// drive it with httptest.NewServer instead of a real listener.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// handleNotFound backs the catch-all "GET /" and "POST /" patterns. Requests
// with any other method match no pattern, so ServeMux answers them with 405
// and an Allow header; this handler only fires for unregistered paths.
func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encode response")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, _ string) {
	writeJSON(w, status, map[string]string{"status": "error"})
}

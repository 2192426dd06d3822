package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"zenumljpg/src/services/auth"
	"zenumljpg/src/services/diagram"
)

// HealthCheck is a named dependency probe run by the healthz endpoint.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Server is the HTTP boundary of the API.
type Server struct {
	logger         *slog.Logger
	server         *http.Server
	mux            *http.ServeMux
	port           int
	diagramService *diagram.DiagramService
	authService    *auth.AuthService
	tokens         *auth.TokenIssuer
	healthChecks   []HealthCheck
}

func NewServer(
	logger *slog.Logger,
	port int,
	diagramService *diagram.DiagramService,
	authService *auth.AuthService,
	tokens *auth.TokenIssuer,
	healthChecks []HealthCheck,
) *Server {
	server := &Server{
		mux:            http.NewServeMux(),
		port:           port,
		logger:         logger,
		diagramService: diagramService,
		authService:    authService,
		tokens:         tokens,
		healthChecks:   healthChecks,
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      server.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	server.mux.Handle("POST /diagram/convert", server.requireAuth(http.HandlerFunc(server.ConvertDiagram)))
	server.mux.HandleFunc("GET /diagram/view/{diagramId}", server.ViewDiagram)
	server.mux.HandleFunc("GET /diagram/export/jpg/{diagramId}", server.ExportDiagramJPG)
	server.mux.HandleFunc("GET /diagram/download/{filename}", server.DownloadDiagram)
	server.mux.HandleFunc("POST /auth/register", server.RegisterUser)
	server.mux.HandleFunc("POST /auth/login", server.LoginUser)
	server.mux.HandleFunc("GET /healthz", server.Health)

	return server
}

// Handler exposes the routing table; tests drive it through httptest.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Start() error {
	s.logger.Info("Server started", "port", s.port)

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{}
	healthy := true

	for _, check := range s.healthChecks {
		if err := check.Check(r.Context()); err != nil {
			s.logger.Warn("Health check failed", "dependency", check.Name, "error", err)
			status[check.Name] = err.Error()
			healthy = false
			continue
		}
		status[check.Name] = "ok"
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}

	s.writeJSON(w, code, status)
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to write JSON response", "error", err)
	}
}

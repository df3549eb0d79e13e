// README: API gateway; wires handlers and middleware over the planner services.
package http

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"tripplanner/internal/infra"
	"tripplanner/internal/modules/session"
	"tripplanner/internal/service"
)

type ServerDeps struct {
	Runner   *service.Runner
	Sessions *session.Service
	// Verifier nil leaves /api unauthenticated; sessions are then anonymous.
	Verifier infra.TokenVerifier
	Logger   *zap.Logger

	RateLimitPerMinute int
	RateLimitBurst     int
	// OperationTimeout bounds a research/plan/tips request end to end.
	OperationTimeout time.Duration
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Server{deps: deps}
}

// Routes builds the gin engine serving the API.
func (s *Server) Routes() http.Handler {
	return NewRouter(s.deps)
}


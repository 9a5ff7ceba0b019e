// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz               liveness and build version
//	POST /v1/layout             graph → layout document
//	POST /v1/render/{format}    graph → artifact (svg, png, pdf, json, dot)
//	POST /v1/visualize/{format} layout document → artifact
//
// Request bodies are JSON: {"graph": {...}, "options": {...}} for layout and
// render, {"layout": {...}, "options": {...}} for visualize. Options use the
// same names as the config file. Errors are returned as
// {"error": {"code": "...", "message": "..."}, "request_id": "..."} with a
// status derived from the error code.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/leveling/pkg/observability"
	"github.com/matzehuels/leveling/pkg/pipeline"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// DefaultMaxBodyBytes limits request bodies.
const DefaultMaxBodyBytes = 8 << 20

// Server serves the pipeline API. It is safe for concurrent use.
type Server struct {
	runner       *pipeline.Runner
	logger       *log.Logger
	maxBodyBytes int64

	// Graph size limits copied into every request's options. Zero keeps
	// the pipeline defaults.
	maxNodes, maxEdges int
}

// New creates a server running layouts on runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner:       runner,
		logger:       logger.WithPrefix("http"),
		maxBodyBytes: DefaultMaxBodyBytes,
	}
}

// SetGraphLimits bounds the node and edge counts of request graphs.
func (s *Server) SetGraphLimits(maxNodes, maxEdges int) {
	s.maxNodes, s.maxEdges = maxNodes, maxEdges
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handle(s.health))
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handle(s.layout))
		r.Post("/render/{format}", s.handle(s.render))
		r.Post("/visualize/{format}", s.handle(s.visualize))
	})
	r.NotFound(s.handle(notFound))
	r.MethodNotAllowed(methodNotAllowed)
	return r
}

// =============================================================================
// Middleware
// =============================================================================

type ctxKey int

const requestIDKey ctxKey = 0

// requestID reuses the caller's X-Request-ID or assigns a new one, and
// echoes it on the response.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// RequestIDFromContext returns the ID assigned by the request ID middleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// observe reports every request to the server hooks, keyed by route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.Server()
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}

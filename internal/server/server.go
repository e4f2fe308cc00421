// Package server implements the HTTP diff service: canonicalization and
// graph comparison over JSON, for CI jobs that want the comparison
// without linking the library.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/grapheq/grapheq/pkg/cache"
	"github.com/grapheq/grapheq/pkg/canonical"
	"github.com/grapheq/grapheq/pkg/gdl"
	"github.com/grapheq/grapheq/pkg/graph"
	"github.com/grapheq/grapheq/pkg/graphjson"
	"github.com/grapheq/grapheq/pkg/observability"
)

// DefaultCacheTTL bounds how long computed canonical forms are kept.
// Forms never go stale (canonicalization is pure), so this only limits
// storage.
const DefaultCacheTTL = 24 * time.Hour

// Server hosts the diff service endpoints.
type Server struct {
	cache  cache.Cache
	logger *log.Logger
	ttl    time.Duration
}

// New creates a Server. A nil cache disables caching; a nil logger
// falls back to the default logger.
func New(c cache.Cache, logger *log.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cache: c, logger: logger, ttl: DefaultCacheTTL}
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/canonical", s.handleCanonical)
	r.Post("/v1/diff", s.handleDiff)

	return r
}

// =============================================================================
// Request/Response Types
// =============================================================================

// GraphInput carries one graph in either representation. Exactly one of
// the fields must be set.
type GraphInput struct {
	// GDL is a graph description (see pkg/gdl).
	GDL string `json:"gdl,omitempty"`

	// Graph is a JSON graph (see pkg/graphjson).
	Graph json.RawMessage `json:"graph,omitempty"`
}

// CanonicalRequest is the body of POST /v1/canonical.
type CanonicalRequest struct {
	GraphInput
}

// CanonicalResponse is the reply to POST /v1/canonical.
type CanonicalResponse struct {
	Canonical string `json:"canonical"`
	Cached    bool   `json:"cached"`
}

// DiffRequest is the body of POST /v1/diff.
type DiffRequest struct {
	Left  GraphInput `json:"left"`
	Right GraphInput `json:"right"`
}

// DiffResponse is the reply to POST /v1/diff.
type DiffResponse struct {
	Equal          bool   `json:"equal"`
	LeftCanonical  string `json:"left_canonical"`
	RightCanonical string `json:"right_canonical"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCanonical(w http.ResponseWriter, r *http.Request) {
	var req CanonicalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}

	form, cached, err := s.canonicalForm(r, req.GraphInput)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, CanonicalResponse{Canonical: form, Cached: cached})
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}

	left, _, err := s.canonicalForm(r, req.Left)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "left graph: " + err.Error()})
		return
	}
	right, _, err := s.canonicalForm(r, req.Right)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "right graph: " + err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, DiffResponse{
		Equal:          left == right,
		LeftCanonical:  left,
		RightCanonical: right,
	})
}

// canonicalForm parses one graph input and computes (or recalls) its
// canonical form. The cache key is the hash of the raw input payload.
func (s *Server) canonicalForm(r *http.Request, in GraphInput) (string, bool, error) {
	payload, err := inputPayload(in)
	if err != nil {
		return "", false, err
	}

	form, cached, err := cache.Cached(r.Context(), s.cache, cache.CanonicalKey(payload), s.ttl, func() ([]byte, error) {
		g, err := parseInput(in)
		if err != nil {
			return nil, err
		}
		observability.Canonical().OnCanonicalizeStart(r.Context())
		start := time.Now()
		out, err := canonical.Canonicalize(g)
		observability.Canonical().OnCanonicalizeComplete(r.Context(), g.NodeCount(), time.Since(start), err)
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	})
	if err != nil {
		return "", false, err
	}
	return string(form), cached, nil
}

func inputPayload(in GraphInput) ([]byte, error) {
	switch {
	case in.GDL != "" && in.Graph != nil:
		return nil, errors.New("provide either gdl or graph, not both")
	case in.GDL != "":
		return []byte("gdl\x00" + in.GDL), nil
	case in.Graph != nil:
		return append([]byte("json\x00"), in.Graph...), nil
	default:
		return nil, errors.New("missing graph: provide gdl or graph")
	}
}

func parseInput(in GraphInput) (*graph.Memory, error) {
	if in.GDL != "" {
		g, err := gdl.Parse(in.GDL)
		if err != nil {
			return nil, fmt.Errorf("parse gdl: %w", err)
		}
		return g, nil
	}
	g, err := graphjson.Unmarshal(in.Graph)
	if err != nil {
		return nil, fmt.Errorf("parse graph: %w", err)
	}
	return g, nil
}

// =============================================================================
// Middleware & Helpers
// =============================================================================

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

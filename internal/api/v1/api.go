// Package v1 implements the native REST API.
package v1

import (
	"encoding/json"
	"net/http"
)

// Config holds API server configuration.
type Config struct {
	Version string
	// Provider names the recommendation source ("gemini" or "static").
	Provider string
}

// Server is the v1 API server.
type Server struct {
	deps ServerDeps
	cfg  Config
}

// New creates a new v1 API server.
func New(deps ServerDeps, cfg Config) (*Server, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	return &Server{deps: deps, cfg: cfg}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Recommendations
	mux.HandleFunc("POST /api/v1/recommendations", s.recommendations)

	// Lookups
	mux.HandleFunc("GET /api/v1/metadata", s.getMetadata)
	mux.HandleFunc("GET /api/v1/search", s.requireSearcher(s.search))

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Status:   "ok",
		Version:  s.cfg.Version,
		Provider: s.cfg.Provider,
		Search:   s.deps.Searcher != nil,
	}
	if s.deps.Cache != nil {
		if n, err := s.deps.Cache.Count(r.Context()); err == nil {
			resp.CacheEntries = &n
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

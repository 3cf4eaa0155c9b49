package v1

import "net/http"

// requireSearcher wraps a handler and returns 503 if the artwork searcher is
// not configured.
func (s *Server) requireSearcher(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Searcher == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Searcher not configured")
			return
		}
		next(w, r)
	}
}

package v1

import (
	"errors"
	"net/http"

	"github.com/vmunix/reelpick/internal/metadata"
	"github.com/vmunix/reelpick/internal/tmdb"
)

func (s *Server) getMetadata(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, "MISSING_TITLE", "title is required")
		return
	}
	year := r.URL.Query().Get("year")

	movie, err := s.deps.Fetcher.Fetch(r.Context(), title, year)
	if err != nil {
		if errors.Is(err, metadata.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "No metadata found")
			return
		}
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, metadataResponse{Movie: movie})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, "MISSING_TITLE", "title is required")
		return
	}
	year := r.URL.Query().Get("year")

	result, err := s.deps.Searcher.Search(r.Context(), title, year)
	if err != nil {
		if errors.Is(err, tmdb.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "No results")
			return
		}
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Result: result})
}

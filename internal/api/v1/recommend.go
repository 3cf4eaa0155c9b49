package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vmunix/reelpick/internal/recommend"
)

func (s *Server) recommendations(w http.ResponseWriter, r *http.Request) {
	var req recommend.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "MISSING_QUERY", "query is required")
		return
	}

	sse, err := newSSEWriter(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "STREAMING_UNSUPPORTED", err.Error())
		return
	}

	// The run outlives a dropped client: in-flight metadata fetches still
	// land in the shared cache, so a retry of the same query is warm.
	ctx := context.WithoutCancel(r.Context())
	updates := s.deps.Recommender.Run(ctx, req)

	// The updates channel must be drained to completion either way.
	clientGone := false
	for u := range updates {
		if clientGone {
			continue
		}

		var werr error
		switch {
		case u.Err != nil:
			werr = sse.writeError(u.Err.Error())
		case u.Final:
			werr = sse.writeEvent("complete", u.Snapshot)
		default:
			werr = sse.writeEvent("snapshot", u.Snapshot)
		}
		if werr != nil {
			s.deps.Logger.Debug("client disconnected mid-stream", "error", werr)
			clientGone = true
		}
	}
}

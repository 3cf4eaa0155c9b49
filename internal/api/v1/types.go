package v1

import (
	"github.com/vmunix/reelpick/internal/omdb"
	"github.com/vmunix/reelpick/internal/tmdb"
)

// statusResponse is the response for GET /status.
type statusResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version,omitempty"`
	Provider     string `json:"provider,omitempty"`
	Search       bool   `json:"search"`
	CacheEntries *int64 `json:"cache_entries,omitempty"`
}

// metadataResponse is the API representation of a metadata lookup.
type metadataResponse struct {
	Movie *omdb.Movie `json:"movie"`
}

// searchResponse is the API representation of an artwork lookup.
type searchResponse struct {
	Result *tmdb.Result `json:"result"`
}

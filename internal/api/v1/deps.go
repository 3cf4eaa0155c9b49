package v1

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vmunix/reelpick/internal/omdb"
	"github.com/vmunix/reelpick/internal/recommend"
	"github.com/vmunix/reelpick/internal/tmdb"
)

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// Recommender runs a recommendation pipeline and streams snapshot updates.
type Recommender interface {
	Run(ctx context.Context, req recommend.Request) <-chan recommend.Update
}

// MetadataFetcher resolves a single title to its metadata record.
type MetadataFetcher interface {
	Fetch(ctx context.Context, name, year string) (*omdb.Movie, error)
}

// Searcher looks up a title in the artwork catalog.
type Searcher interface {
	Search(ctx context.Context, title, year string) (*tmdb.Result, error)
}

// CacheStats reports cache occupancy for the status endpoint.
type CacheStats interface {
	Count(ctx context.Context) (int64, error)
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required
	Recommender Recommender
	Fetcher     MetadataFetcher

	// Optional
	Searcher Searcher
	Cache    CacheStats
	Logger   *slog.Logger
}

func (d *ServerDeps) validate() error {
	if d.Recommender == nil {
		return errors.Join(ErrMissingDependency, errors.New("recommender is required"))
	}
	if d.Fetcher == nil {
		return errors.Join(ErrMissingDependency, errors.New("metadata fetcher is required"))
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return nil
}

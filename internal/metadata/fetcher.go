package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/vmunix/reelpick/internal/omdb"
	"github.com/vmunix/reelpick/pkg/title"
)

// ErrNotFound is returned when no metadata exists for a title.
var ErrNotFound = omdb.ErrNotFound

const keyPrefix = "metadata:"

// posterSizeRegex matches the downgrade size suffix Amazon embeds in OMDb
// poster URLs, e.g. "._V1_SX300".
var posterSizeRegex = regexp.MustCompile(`\._V1_SX\d+`)

// cachedLookup is the envelope written to the cache. A definitive miss is
// cached so repeat lookups for known-absent titles are free; errors are never
// cached so a later run may retry.
type cachedLookup struct {
	NotFound bool        `json:"not_found,omitempty"`
	Movie    *omdb.Movie `json:"movie,omitempty"`
}

// Fetcher provides cached access to OMDb metadata.
type Fetcher struct {
	client       *omdb.Client
	cache        *Cache
	posterSuffix string
	log          *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithPosterSuffix sets the size suffix substituted into poster URLs in place
// of the API's downgraded one. Empty (the default) requests the full-size
// image.
func WithPosterSuffix(suffix string) FetcherOption {
	return func(f *Fetcher) {
		f.posterSuffix = suffix
	}
}

// NewFetcher creates a new metadata fetcher.
func NewFetcher(client *omdb.Client, cache *Cache, log *slog.Logger, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client: client,
		cache:  cache,
		log:    log,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch resolves metadata for a title and release year (cached).
// Returns ErrNotFound for a definitive miss; any other error is a lookup
// failure the caller may retry on a later run.
func (f *Fetcher) Fetch(ctx context.Context, name, year string) (*omdb.Movie, error) {
	key := keyPrefix + name + ":" + year

	// Check cache first. A cached not-found outcome short-circuits too.
	if data, ok := f.cache.Get(ctx, key); ok {
		var cached cachedLookup
		if err := json.Unmarshal(data, &cached); err == nil {
			if f.log != nil {
				f.log.Debug("cache hit", "title", name, "year", year, "not_found", cached.NotFound)
			}
			if cached.NotFound {
				return nil, ErrNotFound
			}
			return cached.Movie, nil
		}
		// If unmarshal fails, treat as cache miss and fetch fresh data
		if f.log != nil {
			f.log.Warn("failed to unmarshal cached lookup", "title", name, "year", year)
		}
	}

	if f.log != nil {
		f.log.Debug("cache miss, calling API", "title", name, "year", year)
	}

	movie, err := f.client.ByTitle(ctx, name, year)
	if errors.Is(err, omdb.ErrNotFound) {
		movie, err = f.searchFallback(ctx, name, year)
	}
	if errors.Is(err, omdb.ErrNotFound) {
		f.store(ctx, key, cachedLookup{NotFound: true})
		return nil, ErrNotFound
	}
	if err != nil {
		// Lookup failures are not cached.
		return nil, err
	}

	movie.Poster = f.normalizePoster(movie.Poster)

	f.store(ctx, key, cachedLookup{Movie: movie})
	return movie, nil
}

// searchFallback handles titles the exact lookup misses, usually because the
// model's phrasing differs from OMDb's canonical title. It fuzzy-matches the
// search results and refetches the best candidate by IMDb ID.
func (f *Fetcher) searchFallback(ctx context.Context, name, year string) (*omdb.Movie, error) {
	results, err := f.client.Search(ctx, name)
	if err != nil {
		// Includes ErrNotFound when the search itself comes up empty.
		return nil, err
	}

	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Title
	}

	match := title.Match(name, names)
	if match.Confidence < title.ConfidenceMedium {
		return nil, omdb.ErrNotFound
	}

	best := results[match.Index]
	if !yearAgrees(best.Year, year) {
		return nil, omdb.ErrNotFound
	}

	if f.log != nil {
		f.log.Debug("fuzzy matched title",
			"wanted", name,
			"matched", best.Title,
			"score", match.Score,
			"confidence", match.Confidence.String())
	}

	return f.client.ByID(ctx, best.IMDBID)
}

func (f *Fetcher) normalizePoster(poster string) string {
	// The API uses "N/A" as its absent sentinel; callers want an unset field.
	if poster == "" || poster == "N/A" {
		return ""
	}
	return posterSizeRegex.ReplaceAllString(poster, f.posterSuffix)
}

func (f *Fetcher) store(ctx context.Context, key string, lookup cachedLookup) {
	data, err := json.Marshal(lookup)
	if err != nil {
		// Log but don't fail the operation
		if f.log != nil {
			f.log.Warn("failed to marshal lookup for cache", "key", key, "error", err)
		}
		return
	}
	if err := f.cache.Set(ctx, key, data); err != nil {
		if f.log != nil {
			f.log.Warn("failed to cache lookup", "key", key, "error", err)
		}
	}
}

// yearAgrees reports whether a search-result year matches the requested year,
// allowing one year of slack for regional release differences. Series years
// like "2008-2013" compare by their first year.
func yearAgrees(got, want string) bool {
	if want == "" || got == "" {
		return true
	}
	if len(got) > 4 {
		got = got[:4]
	}
	g, err := strconv.Atoi(got)
	if err != nil {
		return true
	}
	w, err := strconv.Atoi(want)
	if err != nil {
		return true
	}
	diff := g - w
	return diff >= -1 && diff <= 1
}

package recommend

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"strconv"
	"sync"

	"github.com/vmunix/reelpick/internal/metadata"
	"github.com/vmunix/reelpick/internal/omdb"
)

//go:generate mockgen -destination=mocks/mock_recommend.go -package=mocks github.com/vmunix/reelpick/internal/recommend Provider,MetadataFetcher

// DefaultCount is the number of recommendations requested from the model when
// the caller doesn't say.
const DefaultCount = 9

// updateBuffer sizes the updates channel. Snapshot cadence is bounded by the
// model's token rate, so the buffer only needs to absorb a slow consumer
// briefly.
const updateBuffer = 64

// Provider streams candidate recommendations for a query. Each yielded chunk
// is the cumulative list so far, possibly containing repeats of earlier chunks
// and not-yet-complete entries. A yielded error terminates the stream.
type Provider interface {
	Recommend(ctx context.Context, req Request) iter.Seq2[[]Candidate, error]
}

// MetadataFetcher resolves enrichment metadata for a title and release year.
type MetadataFetcher interface {
	Fetch(ctx context.Context, name, year string) (*omdb.Movie, error)
}

// Request is one recommendation query. Previous and Clicked carry
// search-refinement context so the model avoids repeating itself.
type Request struct {
	Query    string      `json:"query"`
	Count    int         `json:"count,omitempty"`
	Previous []Candidate `json:"previous,omitempty"`
	Clicked  []string    `json:"clicked,omitempty"`
}

// Update is one tick of a pipeline run: a snapshot, the terminal snapshot
// (Final set), or a fatal stream error (Err set, no snapshot).
type Update struct {
	Snapshot Snapshot
	Final    bool
	Err      error
}

// Pipeline drives one recommendation run per Run call: it consumes the
// provider stream, deduplicates candidates, fans out metadata fetches, and
// emits merged snapshots.
type Pipeline struct {
	provider     Provider
	fetcher      MetadataFetcher
	log          *slog.Logger
	defaultCount int
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithDefaultCount sets the recommendation count used when a request omits
// one. Values below 1 leave DefaultCount in place.
func WithDefaultCount(n int) PipelineOption {
	return func(p *Pipeline) {
		if n > 0 {
			p.defaultCount = n
		}
	}
}

// NewPipeline creates a pipeline over the given provider and fetcher.
func NewPipeline(provider Provider, fetcher MetadataFetcher, log *slog.Logger, opts ...PipelineOption) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	p := &Pipeline{
		provider:     provider,
		fetcher:      fetcher,
		log:          log,
		defaultCount: DefaultCount,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run starts a pipeline run and returns its update channel. The channel is
// closed after the terminal update (Final or Err). The run holds no state
// beyond the channel; each query gets a fresh run.
//
// The run does not stop when the consumer loses interest: in-flight metadata
// fetches complete and populate the shared cache regardless.
func (p *Pipeline) Run(ctx context.Context, req Request) <-chan Update {
	updates := make(chan Update, updateBuffer)
	go p.run(ctx, req, updates)
	return updates
}

func (p *Pipeline) run(ctx context.Context, req Request, updates chan<- Update) {
	defer close(updates)

	if req.Count <= 0 {
		req.Count = p.defaultCount
	}

	seen := make(map[string]struct{})
	table := newStateTable()
	var order []Candidate
	var wg sync.WaitGroup

	p.log.Info("pipeline run starting", "query", req.Query, "count", req.Count)

	// Streaming: one sequential consumption loop; all ordering is defined here.
	for chunk, err := range p.provider.Recommend(ctx, req) {
		if err != nil {
			p.log.Error("model stream failed", "error", err)
			// Settle in-flight fetches so their cache writes land, then
			// surface the failure. No terminal snapshot on a stream error.
			wg.Wait()
			updates <- Update{Err: err}
			return
		}

		fresh := dedupe(chunk, seen)
		for _, c := range fresh {
			table.markPending(c.Key())
			order = append(order, c)
			p.spawnFetch(ctx, c, table, &wg)
		}

		updates <- Update{Snapshot: merge(order, table)}
	}

	// Draining: every fetch launched above settles before the terminal
	// snapshot; no new ones are launched.
	wg.Wait()

	p.log.Info("pipeline run finished", "candidates", len(order))
	updates <- Update{Snapshot: merge(order, table), Final: true}
}

// spawnFetch launches the enrichment lookup for a first-seen candidate.
// Fan-out is unbounded; the external API's own throughput limits are the
// effective ceiling, so the core applies no admission control.
func (p *Pipeline) spawnFetch(ctx context.Context, c Candidate, table *stateTable, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		movie, err := p.fetcher.Fetch(ctx, c.Title, strconv.Itoa(c.Year))
		if err != nil {
			if errors.Is(err, metadata.ErrNotFound) {
				p.log.Debug("no metadata for title", "title", c.Title, "year", c.Year)
			} else {
				p.log.Warn("metadata fetch failed", "title", c.Title, "year", c.Year, "error", err)
			}
			table.fail(c.Key())
			return
		}
		table.resolve(c.Key(), movie)
	}()
}

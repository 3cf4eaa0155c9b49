package recommend_test

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/reelpick/internal/metadata"
	"github.com/vmunix/reelpick/internal/omdb"
	"github.com/vmunix/reelpick/internal/recommend"
	"github.com/vmunix/reelpick/internal/recommend/mocks"
)

func candidate(name string, year int) recommend.Candidate {
	return recommend.Candidate{
		Title:       name,
		Year:        year,
		Genre:       "Drama",
		Description: "A film.",
	}
}

// chunkSeq builds a provider stream from fixed cumulative chunks.
func chunkSeq(chunks ...[]recommend.Candidate) iter.Seq2[[]recommend.Candidate, error] {
	return func(yield func([]recommend.Candidate, error) bool) {
		for _, chunk := range chunks {
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

// collect drains a run's update channel.
func collect(t *testing.T, ch <-chan recommend.Update) []recommend.Update {
	t.Helper()
	var updates []recommend.Update
	for u := range ch {
		updates = append(updates, u)
	}
	require.NotEmpty(t, updates)
	return updates
}

func TestPipeline_TwoChunkScenario(t *testing.T) {
	ctrl := gomock.NewController(t)

	a := candidate("A", 2000)
	b := candidate("B", 2010)

	provider := mocks.NewMockProvider(ctrl)
	provider.EXPECT().
		Recommend(gomock.Any(), gomock.Any()).
		Return(chunkSeq(
			[]recommend.Candidate{a},
			[]recommend.Candidate{a, b},
		))

	fetcher := mocks.NewMockMetadataFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), "A", "2000").Return(&omdb.Movie{Title: "A"}, nil)
	fetcher.EXPECT().Fetch(gomock.Any(), "B", "2010").Return(&omdb.Movie{Title: "B"}, nil)

	p := recommend.NewPipeline(provider, fetcher, nil)
	updates := collect(t, p.Run(context.Background(), recommend.Request{Query: "heist movies"}))

	// One snapshot per chunk plus the terminal one.
	require.Len(t, updates, 3)

	assert.Equal(t, []string{a.Key()}, updates[0].Snapshot.Keys())
	assert.Equal(t, []string{a.Key(), b.Key()}, updates[1].Snapshot.Keys())

	final := updates[2]
	assert.True(t, final.Final)
	require.Len(t, final.Snapshot, 2)
	for _, entry := range final.Snapshot {
		assert.False(t, entry.Pending)
		assert.NotNil(t, entry.Metadata)
	}
}

func TestPipeline_Monotonicity(t *testing.T) {
	ctrl := gomock.NewController(t)

	var cands []recommend.Candidate
	for i := 0; i < 6; i++ {
		cands = append(cands, candidate(fmt.Sprintf("Movie %c", 'A'+i), 2000+i))
	}
	provider := &recommend.StaticProvider{Candidates: cands, ChunkSize: 2}

	fetcher := mocks.NewMockMetadataFetcher(ctrl)
	fetcher.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, name, _ string) (*omdb.Movie, error) {
			return &omdb.Movie{Title: name}, nil
		}).
		Times(len(cands))

	p := recommend.NewPipeline(provider, fetcher, nil)
	updates := collect(t, p.Run(context.Background(), recommend.Request{Query: "anything"}))

	prev := map[string]struct{}{}
	for _, u := range updates {
		require.NoError(t, u.Err)
		keys := map[string]struct{}{}
		for _, k := range u.Snapshot.Keys() {
			keys[k] = struct{}{}
		}
		for k := range prev {
			_, ok := keys[k]
			assert.True(t, ok, "key %s vanished before finalization", k)
		}
		prev = keys
	}

	final := updates[len(updates)-1]
	assert.True(t, final.Final)
	assert.Len(t, final.Snapshot, len(cands))
}

func TestPipeline_FailedCandidateVanishes(t *testing.T) {
	ctrl := gomock.NewController(t)

	a := candidate("A", 2000)
	ghost := candidate("Ghost Movie", 1999)

	provider := mocks.NewMockProvider(ctrl)
	provider.EXPECT().
		Recommend(gomock.Any(), gomock.Any()).
		Return(chunkSeq([]recommend.Candidate{a, ghost}))

	release := make(chan struct{})
	fetcher := mocks.NewMockMetadataFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), "A", "2000").Return(&omdb.Movie{Title: "A"}, nil)
	fetcher.EXPECT().
		Fetch(gomock.Any(), "Ghost Movie", "1999").
		DoAndReturn(func(context.Context, string, string) (*omdb.Movie, error) {
			// Hold the lookup open until the first snapshot is observed, so
			// the pending entry is deterministically visible.
			<-release
			return nil, metadata.ErrNotFound
		})

	p := recommend.NewPipeline(provider, fetcher, nil)
	ch := p.Run(context.Background(), recommend.Request{Query: "ghosts"})

	first := <-ch
	require.NoError(t, first.Err)
	assert.Contains(t, first.Snapshot.Keys(), ghost.Key(), "unresolved candidate shown as pending")
	close(release)

	var final recommend.Update
	for u := range ch {
		final = u
	}
	require.True(t, final.Final)
	assert.Equal(t, []string{a.Key()}, final.Snapshot.Keys(), "failed enrichment drops out silently")
}

func TestPipeline_StreamError(t *testing.T) {
	ctrl := gomock.NewController(t)

	a := candidate("A", 2000)
	streamErr := errors.New("model stream: connection reset")

	provider := mocks.NewMockProvider(ctrl)
	provider.EXPECT().
		Recommend(gomock.Any(), gomock.Any()).
		Return(func(yield func([]recommend.Candidate, error) bool) {
			if !yield([]recommend.Candidate{a}, nil) {
				return
			}
			yield(nil, streamErr)
		})

	fetcher := mocks.NewMockMetadataFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), "A", "2000").Return(&omdb.Movie{Title: "A"}, nil)

	p := recommend.NewPipeline(provider, fetcher, nil)
	updates := collect(t, p.Run(context.Background(), recommend.Request{Query: "boom"}))

	last := updates[len(updates)-1]
	assert.ErrorIs(t, last.Err, streamErr)
	assert.False(t, last.Final, "no terminal snapshot on a stream error")
	assert.Nil(t, last.Snapshot)
}

func TestPipeline_InvalidCandidateNeverAppears(t *testing.T) {
	ctrl := gomock.NewController(t)

	good := candidate("Good", 2000)
	bad := recommend.Candidate{Title: "", Year: 1500, Genre: "?", Description: "?"}

	provider := mocks.NewMockProvider(ctrl)
	provider.EXPECT().
		Recommend(gomock.Any(), gomock.Any()).
		Return(chunkSeq([]recommend.Candidate{bad, good}))

	fetcher := mocks.NewMockMetadataFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), "Good", "2000").Return(&omdb.Movie{Title: "Good"}, nil)

	p := recommend.NewPipeline(provider, fetcher, nil)
	updates := collect(t, p.Run(context.Background(), recommend.Request{Query: "q"}))

	for _, u := range updates {
		for _, entry := range u.Snapshot {
			assert.NotEmpty(t, entry.Title)
			assert.NotEqual(t, 1500, entry.Year)
		}
	}
}

func TestPipeline_ConfiguredDefaultCount(t *testing.T) {
	ctrl := gomock.NewController(t)

	a := candidate("A", 2000)

	var gotCount int
	provider := mocks.NewMockProvider(ctrl)
	provider.EXPECT().
		Recommend(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req recommend.Request) iter.Seq2[[]recommend.Candidate, error] {
			gotCount = req.Count
			return chunkSeq([]recommend.Candidate{a})
		})

	fetcher := mocks.NewMockMetadataFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), "A", "2000").Return(&omdb.Movie{Title: "A"}, nil)

	p := recommend.NewPipeline(provider, fetcher, nil, recommend.WithDefaultCount(5))
	collect(t, p.Run(context.Background(), recommend.Request{Query: "short list"}))

	assert.Equal(t, 5, gotCount, "configured count applied when the request omits one")
}

func TestPipeline_RequestCountWins(t *testing.T) {
	ctrl := gomock.NewController(t)

	a := candidate("A", 2000)

	var gotCount int
	provider := mocks.NewMockProvider(ctrl)
	provider.EXPECT().
		Recommend(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req recommend.Request) iter.Seq2[[]recommend.Candidate, error] {
			gotCount = req.Count
			return chunkSeq([]recommend.Candidate{a})
		})

	fetcher := mocks.NewMockMetadataFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), "A", "2000").Return(&omdb.Movie{Title: "A"}, nil)

	p := recommend.NewPipeline(provider, fetcher, nil, recommend.WithDefaultCount(5))
	collect(t, p.Run(context.Background(), recommend.Request{Query: "exactly three", Count: 3}))

	assert.Equal(t, 3, gotCount, "an explicit request count overrides the configured default")
}

func TestPipeline_CannedFallbackList(t *testing.T) {
	ctrl := gomock.NewController(t)

	names := []string{
		"The Room", "Troll 2", "Birdemic", "Plan 9 from Outer Space",
		"Samurai Cop", "Miami Connection", "The Wicker Man", "Sharknado",
		"Battlefield Earth", "Cats", "Gigli", "Manos: The Hands of Fate",
	}
	var canned []recommend.Candidate
	for i, n := range names {
		canned = append(canned, candidate(n, 1990+i))
	}
	provider := &recommend.StaticProvider{Candidates: canned, ChunkSize: 5}

	fetcher := mocks.NewMockMetadataFetcher(ctrl)
	fetcher.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, name, _ string) (*omdb.Movie, error) {
			return &omdb.Movie{Title: name}, nil
		}).
		Times(len(canned))

	p := recommend.NewPipeline(provider, fetcher, nil)
	updates := collect(t, p.Run(context.Background(), recommend.Request{Query: "a nonsensical joke input"}))

	final := updates[len(updates)-1]
	require.True(t, final.Final)
	require.Len(t, final.Snapshot, 12)
	for i, entry := range final.Snapshot {
		assert.Equal(t, names[i], entry.Title, "configured order preserved")
	}
}

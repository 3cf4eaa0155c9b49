package recommend

import (
	"context"
	"iter"
)

// StaticProvider serves a fixed candidate list, re-emitting the growing list
// chunk by chunk the way the streaming model does. It backs deployments with
// no model configured and the pipeline tests.
type StaticProvider struct {
	Candidates []Candidate
	// ChunkSize is how many candidates each tick adds. Defaults to 3.
	ChunkSize int
}

// Recommend ignores the query and streams the configured list.
func (s *StaticProvider) Recommend(ctx context.Context, req Request) iter.Seq2[[]Candidate, error] {
	return func(yield func([]Candidate, error) bool) {
		step := s.ChunkSize
		if step <= 0 {
			step = 3
		}
		for end := step; ; end += step {
			if end > len(s.Candidates) {
				end = len(s.Candidates)
			}
			if ctx.Err() != nil {
				yield(nil, ctx.Err())
				return
			}
			if !yield(s.Candidates[:end], nil) {
				return
			}
			if end >= len(s.Candidates) {
				return
			}
		}
	}
}

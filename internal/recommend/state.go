package recommend

import (
	"sync"

	"github.com/vmunix/reelpick/internal/omdb"
)

type enrichState int

const (
	statePending enrichState = iota
	stateResolved
	stateFailed
)

type enrichment struct {
	state enrichState
	movie *omdb.Movie
}

// stateTable tracks per-candidate enrichment state for one pipeline run.
// Deduplication guarantees exactly one fetch goroutine per key, so writes
// never race each other; the lock covers concurrent reads by the merger.
type stateTable struct {
	mu      sync.RWMutex
	entries map[string]enrichment
}

func newStateTable() *stateTable {
	return &stateTable{entries: make(map[string]enrichment)}
}

func (t *stateTable) markPending(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.entries[key]; ok {
		return
	}
	t.entries[key] = enrichment{state: statePending}
}

// resolve transitions a pending entry to resolved. Transitions happen exactly
// once; a settled entry is never re-entered.
func (t *stateTable) resolve(key string, movie *omdb.Movie) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[key]; !ok || e.state != statePending {
		return
	}
	t.entries[key] = enrichment{state: stateResolved, movie: movie}
}

func (t *stateTable) fail(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[key]; !ok || e.state != statePending {
		return
	}
	t.entries[key] = enrichment{state: stateFailed}
}

func (t *stateTable) get(key string) (enrichment, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[key]
	return e, ok
}

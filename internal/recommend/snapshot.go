package recommend

import "github.com/vmunix/reelpick/internal/omdb"

// Entry is one recommendation in a snapshot, with whatever metadata is known
// so far. Pending entries render as a loading affordance downstream.
type Entry struct {
	Candidate
	Metadata *omdb.Movie `json:"metadata,omitempty"`
	Pending  bool        `json:"pending,omitempty"`
}

// Snapshot is one complete, consistent view of the growing result list, in
// first-seen order. Once a candidate appears it stays in every later snapshot
// of the run, except that failed enrichments drop out.
type Snapshot []Entry

// Keys returns the identity keys present in the snapshot.
func (s Snapshot) Keys() []string {
	keys := make([]string, len(s))
	for i, e := range s {
		keys[i] = e.Key()
	}
	return keys
}

// merge combines the first-seen candidate order with the current enrichment
// state. Failed candidates are excluded entirely; the consumer sees them
// vanish rather than an error card.
func merge(order []Candidate, table *stateTable) Snapshot {
	snapshot := make(Snapshot, 0, len(order))
	for _, c := range order {
		e, ok := table.get(c.Key())
		if !ok {
			snapshot = append(snapshot, Entry{Candidate: c, Pending: true})
			continue
		}
		switch e.state {
		case statePending:
			snapshot = append(snapshot, Entry{Candidate: c, Pending: true})
		case stateResolved:
			snapshot = append(snapshot, Entry{Candidate: c, Metadata: e.movie})
		case stateFailed:
			// excluded
		}
	}
	return snapshot
}

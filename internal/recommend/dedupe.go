package recommend

// dedupe filters a raw chunk down to schema-valid candidates not yet seen in
// this run, preserving first-appearance order. The producer re-emits the whole
// growing list on every tick, so most of each chunk is usually old news.
// Invalid candidates are dropped silently, never surfaced as errors.
func dedupe(chunk []Candidate, seen map[string]struct{}) []Candidate {
	var fresh []Candidate
	for _, c := range chunk {
		if !c.Valid() {
			continue
		}
		key := c.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		fresh = append(fresh, c)
	}
	return fresh
}

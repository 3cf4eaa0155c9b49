package gemini

import (
	"encoding/json"
	"strings"

	"github.com/vmunix/reelpick/internal/recommend"
)

// parsePartial extracts the complete candidate objects from a possibly
// truncated JSON array. The model streams the array token by token, so at any
// point the buffer may end mid-object; everything before the cut is returned
// and the trailing fragment is ignored until a later tick completes it.
func parsePartial(raw string) []recommend.Candidate {
	s := strings.TrimSpace(raw)

	// Some models wrap structured output in markdown fences despite the
	// response MIME type.
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	dec := json.NewDecoder(strings.NewReader(s))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil
	}

	var out []recommend.Candidate
	for dec.More() {
		var c recommend.Candidate
		if err := dec.Decode(&c); err != nil {
			// Truncated trailing object.
			break
		}
		out = append(out, c)
	}
	return out
}

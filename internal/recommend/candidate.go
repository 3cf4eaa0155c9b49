// Package recommend implements the streaming recommendation pipeline: an LLM
// provider produces a growing list of candidate titles, each first-seen
// candidate gets an asynchronous metadata lookup, and consumers observe the
// combined result as a monotonically growing sequence of snapshots.
package recommend

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vmunix/reelpick/pkg/title"
)

// Candidate is a single model-proposed recommendation before enrichment.
type Candidate struct {
	Title       string `json:"title" validate:"required"`
	Year        int    `json:"year" validate:"gte=1800,notfuture"`
	Genre       string `json:"genre" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// Key returns the candidate's identity key. Candidates are deduplicated by
// normalized title plus year so two works sharing a title stay distinct.
func (c Candidate) Key() string {
	return title.Key(c.Title, c.Year)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// The model occasionally invents future release years.
	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(time.Now().Year())
	})
	return v
}

// Valid reports whether a streamed candidate is schema-complete. Partially
// streamed objects fail until their trailing fields arrive, which is what
// keeps half-parsed entries out of the pipeline.
func (c Candidate) Valid() bool {
	return validate.Struct(c) == nil
}

package config

import (
	"fmt"
	"strings"
)

// ConfigError collects everything wrong with a config file in one pass, so
// an operator fixing reelpick.toml sees all unresolved variables and
// validation failures at once rather than one per restart.
type ConfigError struct {
	Path    string   // file the config was loaded from
	Missing []string // environment variables that could not be resolved
	Errors  []string // validation failures, one per field
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "missing environment variables: %s", strings.Join(e.Missing, ", "))
	}
	if len(e.Errors) > 0 {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("validation failed:")
		for _, err := range e.Errors {
			fmt.Fprintf(&b, "\n  - %s", err)
		}
	}
	return b.String()
}

// HasErrors reports whether anything was collected.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}

package config

import (
	"fmt"
	"time"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if c.OMDB.APIKey == "" {
		errs = append(errs, "omdb.api_key: required")
	}

	if c.TMDB != nil {
		if c.TMDB.APIKey == "" {
			errs = append(errs, "tmdb.api_key: required when tmdb is configured")
		}
		if c.TMDB.CacheTTL != "" {
			if _, err := time.ParseDuration(c.TMDB.CacheTTL); err != nil {
				errs = append(errs, fmt.Sprintf("tmdb.cache_ttl: invalid duration %q", c.TMDB.CacheTTL))
			}
		}
	}

	if c.Gemini != nil && c.Gemini.APIKey == "" {
		errs = append(errs, "gemini.api_key: required when gemini is configured")
	}

	// Without a model there must be a canned list to serve.
	if c.Gemini == nil && len(c.Recommend.Fallback) == 0 {
		errs = append(errs, "recommend.fallback: required when gemini is not configured")
	}
	for i, f := range c.Recommend.Fallback {
		if f.Title == "" {
			errs = append(errs, fmt.Sprintf("recommend.fallback[%d].title: required", i))
		}
		if f.Year < 1800 {
			errs = append(errs, fmt.Sprintf("recommend.fallback[%d].year: required", i))
		}
		if f.Genre == "" {
			errs = append(errs, fmt.Sprintf("recommend.fallback[%d].genre: required", i))
		}
		if f.Description == "" {
			errs = append(errs, fmt.Sprintf("recommend.fallback[%d].description: required", i))
		}
	}

	if c.Recommend.Count < 0 {
		errs = append(errs, fmt.Sprintf("recommend.count: must be positive, got %d", c.Recommend.Count))
	}

	return errs
}

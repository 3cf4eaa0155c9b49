// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	OMDB      OMDBConfig      `toml:"omdb"`
	TMDB      *TMDBConfig     `toml:"tmdb"`
	Gemini    *GeminiConfig   `toml:"gemini"`
	Recommend RecommendConfig `toml:"recommend"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type OMDBConfig struct {
	APIKey string `toml:"api_key"`
	// PosterSuffix replaces the size token in OMDb poster URLs.
	PosterSuffix string `toml:"poster_suffix"`
}

type TMDBConfig struct {
	APIKey   string `toml:"api_key"`
	CacheTTL string `toml:"cache_ttl"`
}

type GeminiConfig struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
}

type RecommendConfig struct {
	Count int `toml:"count"`
	// Fallback entries feed the static provider when no Gemini key is set.
	Fallback []FallbackMovie `toml:"fallback"`
}

type FallbackMovie struct {
	Title       string `toml:"title"`
	Year        int    `toml:"year"`
	Genre       string `toml:"genre"`
	Description string `toml:"description"`
}

// Load reads, substitutes, parses, and validates the configuration file.
// Missing environment variables and validation failures are aggregated into
// a single *ConfigError so the operator sees everything at once.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()

	cerr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cerr.HasErrors() {
		return nil, cerr
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 7979
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/reelpick.db"
	}
	if c.Gemini != nil && c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash"
	}
	if c.Recommend.Count == 0 {
		c.Recommend.Count = 9
	}
}

// substituteEnvVars replaces ${VAR}, ${VAR:-default}, and ${VAR:?message}
// references with environment variable values. Unresolvable references are
// left in place and reported in the returned slice.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) (string, []string) {
	var missing []string

	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		expr := match[2 : len(match)-1] // strip ${ and }

		name := expr
		var defaultVal, errMsg string
		var hasDefault, hasErrMsg bool

		if i := strings.Index(expr, ":-"); i >= 0 {
			name, defaultVal = expr[:i], expr[i+2:]
			hasDefault = true
		} else if i := strings.Index(expr, ":?"); i >= 0 {
			name, errMsg = expr[:i], expr[i+2:]
			hasErrMsg = true
		}

		if value := os.Getenv(name); value != "" {
			return value
		}

		switch {
		case hasDefault:
			return defaultVal
		case hasErrMsg:
			missing = append(missing, fmt.Sprintf("%s: %s", name, errMsg))
			return match
		default:
			if _, ok := os.LookupEnv(name); ok {
				return "" // set but empty counts as resolved
			}
			missing = append(missing, name)
			return match
		}
	})

	return result, missing
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 8080

[omdb]
api_key = "abc123"

[gemini]
api_key = "g-key"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Gemini.Model != "gemini-2.0-flash" {
		t.Errorf("expected default model, got %q", cfg.Gemini.Model)
	}
	if cfg.Recommend.Count != 9 {
		t.Errorf("expected default count 9, got %d", cfg.Recommend.Count)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[omdb]
api_key = "abc123"

[[recommend.fallback]]
title = "Heat"
year = 1995
genre = "Crime"
description = "Cat and mouse in LA."
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected default host, got %q", cfg.Server.Host)
	}
	if cfg.Server.Port != 7979 {
		t.Errorf("expected default port 7979, got %d", cfg.Server.Port)
	}
	if cfg.Database.Path != "./data/reelpick.db" {
		t.Errorf("expected default db path, got %q", cfg.Database.Path)
	}
}

func TestLoad_MissingEnvVar(t *testing.T) {
	os.Unsetenv("REELPICK_MISSING_KEY")
	path := writeConfig(t, `
[omdb]
api_key = "${REELPICK_MISSING_KEY}"

[[recommend.fallback]]
title = "Heat"
year = 1995
genre = "Crime"
description = "Cat and mouse in LA."
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for missing env var")
	}
	if !strings.Contains(err.Error(), "REELPICK_MISSING_KEY") {
		t.Errorf("expected REELPICK_MISSING_KEY in error, got %v", err)
	}
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("REELPICK_TEST_OMDB_KEY", "secret")
	path := writeConfig(t, `
[omdb]
api_key = "${REELPICK_TEST_OMDB_KEY}"

[[recommend.fallback]]
title = "Heat"
year = 1995
genre = "Crime"
description = "Cat and mouse in LA."
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OMDB.APIKey != "secret" {
		t.Errorf("expected substituted key, got %q", cfg.OMDB.APIKey)
	}
}

func TestLoad_ValidationError(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 99999

[gemini]
api_key = "g-key"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "server.port") {
		t.Errorf("expected server.port error, got %v", msg)
	}
	if !strings.Contains(msg, "omdb.api_key") {
		t.Errorf("expected omdb.api_key error, got %v", msg)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

// Package metadata provides cached enrichment lookups against the OMDb API.
package metadata

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Cache provides SQLite-backed caching for metadata lookups.
// Entries have no expiry: a cached record or not-found outcome stays valid
// until the database is reconfigured, and the cache is shared across runs
// and processes.
type Cache struct {
	db *sql.DB
}

// NewCache creates a new metadata cache.
func NewCache(db *sql.DB) *Cache {
	return &Cache{db: db}
}

// Get retrieves a cached value by key.
// Returns nil, false if not found.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	var value string

	err := c.db.QueryRowContext(ctx,
		"SELECT value FROM metadata_cache WHERE key = ?", key,
	).Scan(&value)

	if err != nil {
		return nil, false
	}

	return []byte(value), true
}

// Set stores a value. Concurrent writers for the same key are idempotent,
// last write wins.
func (c *Cache) Set(ctx context.Context, key string, value []byte) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO metadata_cache (key, value, created_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, created_at = excluded.created_at`,
		key, string(value), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached value.
func (c *Cache) Delete(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM metadata_cache WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// Count returns the number of cached entries.
func (c *Cache) Count(ctx context.Context) (int64, error) {
	var n int64
	err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM metadata_cache").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("cache count: %w", err)
	}
	return n, nil
}

package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.themoviedb.org"
const defaultCacheTTL = 24 * time.Hour

// ErrNotFound is returned when neither movie nor TV search yields a result.
var ErrNotFound = errors.New("no TMDB results")

// Client is a TMDB search client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *cache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithCacheTTL sets the cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newCache(ttl)
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: newCache(defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search looks up a title by name and optional release year, trying movies
// first and falling back to TV shows, and returns the top result.
func (c *Client) Search(ctx context.Context, title, year string) (*Result, error) {
	key := "search:" + title + ":" + year

	if result, ok := c.cache.get(key); ok {
		if result == nil {
			return nil, ErrNotFound
		}
		return result, nil
	}

	result, err := c.searchMovie(ctx, title, year)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result, err = c.searchTV(ctx, title, year)
		if err != nil {
			return nil, err
		}
	}

	// Cache the outcome either way so repeat misses stay cheap.
	c.cache.set(key, result)

	if result == nil {
		return nil, ErrNotFound
	}
	return result, nil
}

func (c *Client) searchMovie(ctx context.Context, title, year string) (*Result, error) {
	params := url.Values{}
	params.Set("query", title)
	params.Set("include_adult", "false")
	params.Set("language", "en-US")
	params.Set("page", "1")
	if year != "" {
		params.Set("year", year)
	}

	var resp searchResponse[movieResult]
	if err := c.get(ctx, "/3/search/movie", params, &resp); err != nil {
		return nil, fmt.Errorf("movie search: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	return resp.Results[0].unified(), nil
}

func (c *Client) searchTV(ctx context.Context, title, year string) (*Result, error) {
	params := url.Values{}
	params.Set("query", title)
	params.Set("include_adult", "false")
	params.Set("language", "en-US")
	params.Set("page", "1")
	if year != "" {
		params.Set("first_air_date_year", year)
	}

	var resp searchResponse[tvResult]
	if err := c.get(ctx, "/3/search/tv", params, &resp); err != nil {
		return nil, fmt.Errorf("tv search: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	return resp.Results[0].unified(), nil
}

// get issues the request and retries exactly once on a transport error or
// non-2xx status.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("api_key", c.apiKey)
	url := c.baseURL + path + "?" + params.Encode()

	body, err := c.doOnce(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		body, err = c.doOnce(ctx, url)
		if err != nil {
			return fmt.Errorf("after retry: %w", err)
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) doOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TMDB API error: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

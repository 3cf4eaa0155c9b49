package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://www.omdbapi.com"

// ErrNotFound is returned when a title doesn't exist in OMDb.
var ErrNotFound = errors.New("title not found")

// Client is an OMDb API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new OMDb client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ByTitle fetches metadata by exact title and release year.
func (c *Client) ByTitle(ctx context.Context, title, year string) (*Movie, error) {
	params := url.Values{}
	params.Set("t", title)
	if year != "" {
		params.Set("y", year)
	}
	return c.getMovie(ctx, params)
}

// ByID fetches metadata by IMDb ID (e.g. "tt0133093").
func (c *Client) ByID(ctx context.Context, imdbID string) (*Movie, error) {
	params := url.Values{}
	params.Set("i", imdbID)
	return c.getMovie(ctx, params)
}

// Search performs a title search and returns up to one page of results.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("s", query)

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.Response == "False" {
		if isNotFound(resp.Error) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("OMDb API error: %s", resp.Error)
	}
	return resp.Search, nil
}

func (c *Client) getMovie(ctx context.Context, params url.Values) (*Movie, error) {
	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Movie
		envelope
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.Response == "False" {
		if isNotFound(resp.Error) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("OMDb API error: %s", resp.Error)
	}
	return &resp.Movie, nil
}

// get issues the request and retries exactly once with identical parameters on
// a transport error or non-2xx status.
func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("apikey", c.apiKey)
	url := c.baseURL + "/?" + params.Encode()

	body, err := c.doOnce(ctx, url)
	if err == nil {
		return body, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	body, retryErr := c.doOnce(ctx, url)
	if retryErr != nil {
		return nil, fmt.Errorf("after retry: %w", retryErr)
	}
	return body, nil
}

func (c *Client) doOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OMDb API error: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// isNotFound reports whether an OMDb error string is a definitive miss rather
// than a request failure.
func isNotFound(apiErr string) bool {
	switch {
	case strings.Contains(apiErr, "not found"):
		return true
	case strings.Contains(apiErr, "Incorrect IMDb ID"):
		return true
	default:
		return false
	}
}

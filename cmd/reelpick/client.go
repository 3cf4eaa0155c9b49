package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client wraps HTTP calls to the reelpick server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new reelpick API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

// API response types (mirror server types)

type StatusResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	Provider     string `json:"provider"`
	Search       bool   `json:"search"`
	CacheEntries *int64 `json:"cache_entries,omitempty"`
}

type MovieResponse struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	IMDBRating string `json:"imdbRating"`
	IMDBID     string `json:"imdbID"`
}

type MetadataResponse struct {
	Movie *MovieResponse `json:"movie"`
}

type ArtworkResult struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ReleaseDate string `json:"release_date"`
	PosterURL   string `json:"poster_url"`
}

type SearchResponse struct {
	Result *ArtworkResult `json:"result"`
}

type EntryResponse struct {
	Title       string         `json:"title"`
	Year        int            `json:"year"`
	Genre       string         `json:"genre"`
	Description string         `json:"description"`
	Metadata    *MovieResponse `json:"metadata,omitempty"`
	Pending     bool           `json:"pending,omitempty"`
}

type RecommendRequest struct {
	Query string `json:"query"`
	Count int    `json:"count,omitempty"`
}

// Status fetches server health.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Metadata looks up a single title.
func (c *Client) Metadata(title, year string) (*MetadataResponse, error) {
	q := url.Values{"title": {title}}
	if year != "" {
		q.Set("year", year)
	}
	var resp MetadataResponse
	if err := c.get("/api/v1/metadata?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Search looks up artwork for a title.
func (c *Client) Search(title, year string) (*SearchResponse, error) {
	q := url.Values{"title": {title}}
	if year != "" {
		q.Set("year", year)
	}
	var resp SearchResponse
	if err := c.get("/api/v1/search?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Recommend streams recommendation snapshots, invoking onEvent for each
// server-sent event until the stream ends.
func (c *Client) Recommend(req RecommendRequest, onEvent func(event, data string) error) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/v1/recommendations", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	// Streaming: no client-side timeout.
	hc := &http.Client{}
	resp, err := hc.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var event, data string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		case line == "":
			if event != "" {
				if err := onEvent(event, data); err != nil {
					return err
				}
			}
			event, data = "", ""
		}
	}
	return scanner.Err()
}

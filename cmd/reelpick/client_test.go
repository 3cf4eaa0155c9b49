package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientStatus_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/status" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		n := int64(42)
		_ = json.NewEncoder(w).Encode(StatusResponse{Status: "ok", Version: "1.0", CacheEntries: &n})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Status()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected ok, got %q", resp.Status)
	}
	if resp.CacheEntries == nil || *resp.CacheEntries != 42 {
		t.Errorf("expected 42 cache entries, got %v", resp.CacheEntries)
	}
}

func TestClientMetadata_QueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("title"); got != "Heat" {
			t.Errorf("expected title Heat, got %q", got)
		}
		if got := r.URL.Query().Get("year"); got != "1995" {
			t.Errorf("expected year 1995, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(MetadataResponse{Movie: &MovieResponse{Title: "Heat"}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Metadata("Heat", "1995")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Movie == nil || resp.Movie.Title != "Heat" {
		t.Errorf("unexpected movie: %+v", resp.Movie)
	}
}

func TestClientMetadata_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": "No metadata found", "code": "NOT_FOUND"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Metadata("Nope", "")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestClientRecommend_Stream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		var req RecommendRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Query != "heist movies" {
			t.Errorf("unexpected query: %q", req.Query)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "event: snapshot\n")
		fmt.Fprint(w, `data: [{"title": "Heat", "year": 1995, "genre": "Crime", "description": "x", "pending": true}]`+"\n\n")
		fmt.Fprint(w, "event: complete\n")
		fmt.Fprint(w, `data: [{"title": "Heat", "year": 1995, "genre": "Crime", "description": "x", "metadata": {"Title": "Heat", "imdbRating": "8.3"}}]`+"\n\n")
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	var events []string
	var final []EntryResponse
	err := client.Recommend(RecommendRequest{Query: "heist movies"}, func(event, data string) error {
		events = append(events, event)
		if event == "complete" {
			return json.Unmarshal([]byte(data), &final)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events) != 2 || events[0] != "snapshot" || events[1] != "complete" {
		t.Errorf("unexpected events: %v", events)
	}
	if len(final) != 1 || final[0].Metadata == nil || final[0].Metadata.IMDBRating != "8.3" {
		t.Errorf("unexpected final: %+v", final)
	}
}

func TestClientRecommend_ErrorEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "event: error\n")
		fmt.Fprint(w, `data: {"error": "model unavailable"}`+"\n\n")
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.Recommend(RecommendRequest{Query: "q"}, func(event, data string) error {
		if event == "error" {
			return fmt.Errorf("stream error: %s", data)
		}
		return nil
	})
	if err == nil {
		t.Fatal("expected error from error event")
	}
}

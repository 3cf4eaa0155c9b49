// Package gemini implements the recommendation provider on the Gemini API,
// streaming a structured JSON array of candidates.
package gemini

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/vmunix/reelpick/internal/recommend"
)

// Config holds Gemini provider settings.
type Config struct {
	APIKey string
	Model  string

	// BaseURL overrides the Gemini API base URL. Useful for proxies/testing.
	BaseURL string
}

// Provider streams movie recommendations from a Gemini model.
type Provider struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

// New creates a Gemini-backed provider.
func New(ctx context.Context, cfg Config, log *slog.Logger) (*Provider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = "gemini-2.0-flash"
	}

	cc := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSpace(cfg.BaseURL)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	if log == nil {
		log = slog.Default()
	}
	return &Provider{
		client: client,
		model:  strings.TrimSpace(cfg.Model),
		log:    log,
	}, nil
}

// candidateSchema constrains the model output to an array of candidate
// objects so the partial parser only ever sees the expected shape.
var candidateSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":       {Type: genai.TypeString},
			"year":        {Type: genai.TypeInteger},
			"genre":       {Type: genai.TypeString},
			"description": {Type: genai.TypeString},
		},
		Required: []string{"title", "year", "genre", "description"},
	},
}

// Recommend starts a structured streaming generation and yields the parsed
// prefix of the output array on every model tick. Chunks are cumulative; the
// pipeline's deduplication absorbs the repeats.
func (p *Provider) Recommend(ctx context.Context, req recommend.Request) iter.Seq2[[]recommend.Candidate, error] {
	return func(yield func([]recommend.Candidate, error) bool) {
		count := req.Count
		if count <= 0 {
			count = recommend.DefaultCount
		}

		config := &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt(count), genai.RoleUser),
			CandidateCount:    1,
			ResponseMIMEType:  "application/json",
			ResponseSchema:    candidateSchema,
		}

		p.log.Debug("starting generation", "model", p.model, "count", count, "previous", len(req.Previous))

		var buf strings.Builder
		for resp, err := range p.client.Models.GenerateContentStream(ctx, p.model, buildMessages(req), config) {
			if err != nil {
				yield(nil, fmt.Errorf("gemini stream: %w", err))
				return
			}
			buf.WriteString(resp.Text())
			if !yield(parsePartial(buf.String()), nil) {
				return
			}
		}
	}
}

func systemPrompt(count int) string {
	return fmt.Sprintf(`You are a knowledgeable movie recommender. Based on the user's query,
recommend exactly %d movies that match their preferences.
Format your answer as a JSON array with objects containing:
- title: the movie title
- year: the release year
- genre: the primary genre
- description: a brief description (under 100 words)

Only respond with the JSON array, nothing else.`, count)
}

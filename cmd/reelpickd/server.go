package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	v1 "github.com/vmunix/reelpick/internal/api/v1"
	"github.com/vmunix/reelpick/internal/config"
	"github.com/vmunix/reelpick/internal/gemini"
	"github.com/vmunix/reelpick/internal/metadata"
	"github.com/vmunix/reelpick/internal/migrations"
	"github.com/vmunix/reelpick/internal/omdb"
	"github.com/vmunix/reelpick/internal/recommend"
	"github.com/vmunix/reelpick/internal/tmdb"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

// Flush forwards to the underlying writer so SSE streaming works through
// the logging wrapper.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func runServer(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === Metadata ===
	omdbClient := omdb.NewClient(cfg.OMDB.APIKey)
	cache := metadata.NewCache(db)

	var fetcherOpts []metadata.FetcherOption
	if cfg.OMDB.PosterSuffix != "" {
		fetcherOpts = append(fetcherOpts, metadata.WithPosterSuffix(cfg.OMDB.PosterSuffix))
	}
	fetcher := metadata.NewFetcher(omdbClient, cache, logger.With("component", "metadata"), fetcherOpts...)

	// === Artwork search (optional) ===
	var searcher v1.Searcher
	if cfg.TMDB != nil {
		var tmdbOpts []tmdb.Option
		if cfg.TMDB.CacheTTL != "" {
			ttl, err := time.ParseDuration(cfg.TMDB.CacheTTL)
			if err != nil {
				return fmt.Errorf("tmdb cache_ttl: %w", err)
			}
			tmdbOpts = append(tmdbOpts, tmdb.WithCacheTTL(ttl))
		}
		searcher = tmdb.NewClient(cfg.TMDB.APIKey, tmdbOpts...)
	}

	// === Recommendation provider ===
	var provider recommend.Provider
	providerName := "static"
	if cfg.Gemini != nil {
		providerName = "gemini"
		provider, err = gemini.New(ctx, gemini.Config{
			APIKey:  cfg.Gemini.APIKey,
			Model:   cfg.Gemini.Model,
			BaseURL: cfg.Gemini.BaseURL,
		}, logger.With("component", "gemini"))
		if err != nil {
			return fmt.Errorf("gemini: %w", err)
		}
	} else {
		canned := make([]recommend.Candidate, len(cfg.Recommend.Fallback))
		for i, f := range cfg.Recommend.Fallback {
			canned[i] = recommend.Candidate{
				Title:       f.Title,
				Year:        f.Year,
				Genre:       f.Genre,
				Description: f.Description,
			}
		}
		provider = &recommend.StaticProvider{Candidates: canned}
	}

	pipeline := recommend.NewPipeline(provider, fetcher, logger.With("component", "recommend"),
		recommend.WithDefaultCount(cfg.Recommend.Count))

	// === HTTP Setup ===
	mux := http.NewServeMux()

	apiV1, err := v1.New(v1.ServerDeps{
		Recommender: pipeline,
		Fetcher:     fetcher,
		Searcher:    searcher,
		Cache:       cache,
		Logger:      logger.With("component", "api"),
	}, v1.Config{Version: version, Provider: providerName})
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	apiV1.RegisterRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"database", cfg.Database.Path,
		"gemini", cfg.Gemini != nil,
		"tmdb", cfg.TMDB != nil,
		"log_level", cfg.Server.LogLevel,
	)

	srv := &http.Server{Addr: addr, Handler: logRequests(mux, logger)}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [flags] <query>...",
	Short: "Get movie recommendations for a free-text query",
	Long: `Get movie recommendations for a free-text query.

The server streams results as they resolve; the list grows and
fills in ratings until the run completes.

Examples:
  reelpick recommend "slow burn sci-fi like Arrival"
  reelpick recommend --count 5 "90s heist movies"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecommendCmd,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.Flags().Int("count", 0, "Number of recommendations (server default if 0)")
}

func runRecommendCmd(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	count, _ := cmd.Flags().GetInt("count")

	client := NewClient(serverURL)

	var final []EntryResponse
	err := client.Recommend(RecommendRequest{Query: query, Count: count}, func(event, data string) error {
		switch event {
		case "snapshot":
			var snap []EntryResponse
			if err := json.Unmarshal([]byte(data), &snap); err != nil {
				return fmt.Errorf("bad snapshot: %w", err)
			}
			if !jsonOutput {
				printProgress(snap)
			}
			return nil
		case "complete":
			if err := json.Unmarshal([]byte(data), &final); err != nil {
				return fmt.Errorf("bad snapshot: %w", err)
			}
			return nil
		case "error":
			var e struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal([]byte(data), &e)
			return errors.New(e.Error)
		default:
			return nil
		}
	})
	if err != nil {
		return fmt.Errorf("recommend failed: %w", err)
	}
	if final == nil {
		return errors.New("stream ended without a final result")
	}

	if jsonOutput {
		printJSON(final)
		return nil
	}

	printRecommendations(query, final)
	return nil
}

func printProgress(snap []EntryResponse) {
	resolved := 0
	for _, e := range snap {
		if e.Metadata != nil {
			resolved++
		}
	}
	fmt.Printf("\r%d candidates, %d resolved...", len(snap), resolved)
}

func printRecommendations(query string, entries []EntryResponse) {
	fmt.Printf("\rFound %d recommendations for %q:\n\n", len(entries), query)
	fmt.Printf("  # │ %-36s │ %4s │ %-16s │ %4s\n", "TITLE", "YEAR", "GENRE", "IMDB")
	fmt.Println("────┼──────────────────────────────────────┼──────┼──────────────────┼──────")

	for i, e := range entries {
		title := e.Title
		if len(title) > 36 {
			title = title[:33] + "..."
		}
		genre := e.Genre
		if len(genre) > 16 {
			genre = genre[:13] + "..."
		}
		rating := "-"
		if e.Metadata != nil && e.Metadata.IMDBRating != "" {
			rating = e.Metadata.IMDBRating
		}
		fmt.Printf(" %2d │ %-36s │ %4d │ %-16s │ %4s\n", i+1, title, e.Year, genre, rating)
	}
}

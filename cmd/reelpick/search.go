package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [flags] <title>...",
	Short: "Look up artwork and overview for a title",
	Long: `Look up artwork and overview for a title.

Examples:
  reelpick search "Heat"
  reelpick search --year 1995 "Heat"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().String("year", "", "Release year")
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")
	year, _ := cmd.Flags().GetString("year")

	client := NewClient(serverURL)
	resp, err := client.Search(title, year)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	r := resp.Result
	if r == nil {
		fmt.Println("No results")
		return nil
	}

	fmt.Printf("%s", r.Title)
	if r.ReleaseDate != "" {
		fmt.Printf(" (%s)", r.ReleaseDate)
	}
	fmt.Println()
	if r.PosterURL != "" {
		fmt.Printf("  Poster: %s\n", r.PosterURL)
	}
	if r.Description != "" {
		fmt.Printf("\n%s\n", r.Description)
	}
	return nil
}

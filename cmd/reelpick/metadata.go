package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var metadataCmd = &cobra.Command{
	Use:   "metadata [flags] <title>...",
	Short: "Look up metadata for a single title",
	Long: `Look up metadata for a single title.

Examples:
  reelpick metadata "Heat"
  reelpick metadata --year 1995 "Heat"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMetadataCmd,
}

func init() {
	rootCmd.AddCommand(metadataCmd)
	metadataCmd.Flags().String("year", "", "Release year")
}

func runMetadataCmd(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")
	year, _ := cmd.Flags().GetString("year")

	client := NewClient(serverURL)
	resp, err := client.Metadata(title, year)
	if err != nil {
		return fmt.Errorf("metadata lookup failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	m := resp.Movie
	if m == nil {
		fmt.Println("No metadata found")
		return nil
	}

	fmt.Printf("%s (%s)\n", m.Title, m.Year)
	if m.Genre != "" {
		fmt.Printf("  Genre:    %s\n", m.Genre)
	}
	if m.Director != "" {
		fmt.Printf("  Director: %s\n", m.Director)
	}
	if m.Actors != "" {
		fmt.Printf("  Cast:     %s\n", m.Actors)
	}
	if m.Runtime != "" {
		fmt.Printf("  Runtime:  %s\n", m.Runtime)
	}
	if m.IMDBRating != "" {
		fmt.Printf("  IMDb:     %s (%s)\n", m.IMDBRating, m.IMDBID)
	}
	if m.Plot != "" {
		fmt.Printf("\n%s\n", m.Plot)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status",
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	resp, err := client.Status()
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	fmt.Printf("Server:  %s\n", serverURL)
	fmt.Printf("Status:  %s\n", resp.Status)
	if resp.Version != "" {
		fmt.Printf("Version: %s\n", resp.Version)
	}
	if resp.Provider != "" {
		fmt.Printf("Model:   %s\n", resp.Provider)
	}
	fmt.Printf("Search:  %v\n", resp.Search)
	if resp.CacheEntries != nil {
		fmt.Printf("Cache:   %d entries\n", *resp.CacheEntries)
	}
	return nil
}

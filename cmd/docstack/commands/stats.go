// ABOUTME: CLI command to show corpus statistics
// ABOUTME: Reports document and chunk counts plus the store location
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show corpus statistics",
		Long: `Show the number of documents and chunks in the corpus.

Examples:
  docstack stats
  docstack stats --format json`,
		RunE: runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, ix, err := openIndex()
	if err != nil {
		return err
	}

	stats := ix.Stats()

	if outputFormat == "json" {
		response := map[string]interface{}{
			"document_count": stats.DocumentCount,
			"chunk_count":    stats.ChunkCount,
			"store_path":     cfg.StorePath,
		}
		jsonData, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Documents: %d\n", stats.DocumentCount)
	fmt.Fprintf(cmd.OutOrStdout(), "Chunks:    %d\n", stats.ChunkCount)
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "Store:     %s\n", cfg.StorePath)
	}

	return nil
}

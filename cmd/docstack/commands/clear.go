// ABOUTME: CLI command to clear the entire corpus
// ABOUTME: Removes every document and chunk after confirmation
package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var clearYes bool

// NewClearCmd creates the clear command
func NewClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every document from the corpus",
		Long: `Remove every document and chunk from the corpus.

This cannot be undone. Prompts for confirmation unless --yes is given.

Examples:
  docstack clear
  docstack clear --yes`,
		RunE: runClear,
	}

	cmd.Flags().BoolVar(&clearYes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func runClear(cmd *cobra.Command, args []string) error {
	_, ix, err := openIndex()
	if err != nil {
		return err
	}

	stats := ix.Stats()
	if stats.DocumentCount == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Corpus is already empty\n")
		}
		return nil
	}

	if !clearYes {
		fmt.Fprintf(cmd.OutOrStdout(), "Remove %d document(s) and %d chunk(s)? [y/N] ",
			stats.DocumentCount, stats.ChunkCount)
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading confirmation: %w", err)
		}
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			fmt.Fprintf(cmd.OutOrStdout(), "Aborted\n")
			return nil
		}
	}

	ix.Clear()
	if err := ix.Persist(); err != nil {
		return fmt.Errorf("persisting index: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %d document(s), %d chunk(s)\n",
			stats.DocumentCount, stats.ChunkCount)
	}
	return nil
}

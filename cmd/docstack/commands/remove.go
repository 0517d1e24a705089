// ABOUTME: CLI command to remove one document from the corpus
// ABOUTME: Deletes the document and all of its chunks by document id
package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docstack/docstack/internal/index"
)

// NewRemoveCmd creates the remove command
func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <doc-id>",
		Short: "Remove a document from the corpus",
		Long: `Remove a document and all of its chunks from the corpus.

Use 'docstack list' to find document ids.

Examples:
  docstack remove 3a7bd3e2360a3d29`,
		Args: cobra.ExactArgs(1),
		RunE: runRemove,
	}

	return cmd
}

func runRemove(cmd *cobra.Command, args []string) error {
	docID := args[0]

	_, ix, err := openIndex()
	if err != nil {
		return err
	}

	if err := ix.RemoveDocument(docID); err != nil {
		if errors.Is(err, index.ErrUnknownDocument) {
			return fmt.Errorf("no document with id %s", docID)
		}
		return fmt.Errorf("removing document: %w", err)
	}

	if err := ix.Persist(); err != nil {
		return fmt.Errorf("persisting index: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %s\n", docID)
	}
	return nil
}

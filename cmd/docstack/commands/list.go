// ABOUTME: CLI command to list ingested documents
// ABOUTME: Shows documents in ingestion order as a table or JSON
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ingested documents",
		Long: `List all ingested documents in ingestion order.

Shows each document's id, name, page count, chunk count, and when it
was ingested.

Examples:
  docstack list
  docstack list --format json`,
		RunE: runList,
	}

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	_, ix, err := openIndex()
	if err != nil {
		return err
	}

	docs := ix.Documents()

	if len(docs) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No documents ingested\n")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "NAME\tPAGES\tCHUNKS\tINGESTED\tDOC ID\n")
	fmt.Fprintf(w, "----\t-----\t------\t--------\t------\n")

	for _, doc := range docs {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
			truncate(doc.Name, 40),
			doc.PageCount,
			doc.ChunkCount,
			formatTime(doc.IngestedAt),
			doc.DocID)
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d document(s)\n", len(docs))
	}

	return nil
}

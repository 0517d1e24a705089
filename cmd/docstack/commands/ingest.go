// ABOUTME: CLI command to ingest PDF files into the corpus
// ABOUTME: Accepts file arguments or a directory to scan recursively
package commands

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var (
	ingestDir  string
	ingestKeep bool
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [files...]",
		Short: "Ingest PDF files into the corpus",
		Long: `Ingest one or more PDF files into the corpus.

Each file is chunked, embedded, and added to the local vector index.
Files whose content is already in the corpus are skipped; a failed
file never aborts the rest of the batch.

Examples:
  docstack ingest report.pdf
  docstack ingest a.pdf b.pdf c.pdf
  docstack ingest --dir ./papers
  docstack ingest --dir ./papers --keep`,
		RunE: runIngest,
	}

	cmd.Flags().StringVar(&ingestDir, "dir", "", "Ingest every .pdf under this directory (recursive)")
	cmd.Flags().BoolVar(&ingestKeep, "keep", false, "Copy ingested files into the PDF storage directory")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	paths := append([]string{}, args...)

	if ingestDir != "" {
		found, err := findPDFs(ingestDir)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", ingestDir, err)
		}
		paths = append(paths, found...)
	}

	if len(paths) == 0 {
		return fmt.Errorf("no PDF files given; pass file arguments or --dir")
	}

	st, err := openStack()
	if err != nil {
		return err
	}

	report := st.ingestor.IngestBatch(paths)

	if ingestKeep {
		if err := keepIngested(st.cfg.PDFDir, paths, report.IngestedNames()); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "Warning: copying to PDF storage: %v\n", err)
		}
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	for _, doc := range report.Ingested {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s (%d pages, %d chunks)\n", doc.Name, doc.PageCount, doc.ChunkCount)
		}
	}
	for _, name := range report.Skipped {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "- %s (already processed)\n", name)
		}
	}
	for _, failure := range report.Failures {
		fmt.Fprintf(cmd.OutOrStdout(), "✗ %s: %s\n", failure.Name, failure.Reason)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", report.Summary())
	}

	if len(report.Failures) > 0 {
		return fmt.Errorf("%d file(s) failed to ingest", len(report.Failures))
	}
	return nil
}

// findPDFs walks dir and returns every .pdf file, sorted for a stable
// ingestion order.
func findPDFs(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// keepIngested copies newly ingested files into the PDF storage
// directory so the corpus stays reproducible from one place.
func keepIngested(dir string, paths, ingested []string) error {
	if len(ingested) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	wanted := make(map[string]bool, len(ingested))
	for _, name := range ingested {
		wanted[name] = true
	}

	for _, path := range paths {
		name := filepath.Base(path)
		if !wanted[name] {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return err
		}
	}
	return nil
}

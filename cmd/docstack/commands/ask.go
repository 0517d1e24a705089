// ABOUTME: CLI command to ask a question of the corpus
// ABOUTME: Prints the generated answer with its cited sources
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docstack/docstack/internal/core"
)

var askTopK int

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question of the ingested documents",
		Long: `Ask a question and get an answer grounded in the ingested PDFs.

The answer cites the documents and pages it was derived from. When the
corpus is empty a fixed response is returned without calling the
completion service.

Examples:
  docstack ask "What is the refund policy?"
  docstack ask --top-k 8 "Summarize the architecture"
  docstack ask --format json "Who signed the contract?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().IntVar(&askTopK, "top-k", 0, "Number of chunks to retrieve (default from config)")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))

	st, err := openStack()
	if err != nil {
		return err
	}

	if askTopK != 0 {
		if err := validatePositiveInt(askTopK, "top-k"); err != nil {
			return err
		}
		st.engine = core.NewEngine(st.client, st.index, st.client, askTopK, st.cfg.MaxContextChars)
	}

	answer, err := st.engine.Answer(question)
	if errors.Is(err, core.ErrEmptyQuery) {
		return fmt.Errorf("question must not be empty")
	}
	if err != nil {
		// Show what retrieval found even when generation failed.
		if answer != nil && len(answer.Sources) > 0 && !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Retrieved %d source(s) but generation failed.\n", len(answer.Sources))
			printSources(cmd, answer.Sources)
		}
		return err
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", answer.Text)
	if len(answer.Sources) > 0 && !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nSources:\n")
		printSources(cmd, answer.Sources)
	}

	return nil
}

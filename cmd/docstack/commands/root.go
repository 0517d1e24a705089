// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Defines verbose/quiet/format flags shared by all subcommands
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██████╗  ██████╗  ██████╗███████╗████████╗ █████╗  ██████╗██╗  ██╗
██╔══██╗██╔═══██╗██╔════╝██╔════╝╚══██╔══╝██╔══██╗██╔════╝██║ ██╔╝
██║  ██║██║   ██║██║     ███████╗   ██║   ███████║██║     █████╔╝
██║  ██║██║   ██║██║     ╚════██║   ██║   ██╔══██║██║     ██╔═██╗
██████╔╝╚██████╔╝╚██████╗███████║   ██║   ██║  ██║╚██████╗██║  ██╗
╚═════╝  ╚═════╝  ╚═════╝╚══════╝   ╚═╝   ╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docstack",
		Short: "Ask questions of your PDF documents",
		Long: banner + `
docstack ingests PDF documents into a local vector index and answers
questions about them, citing the documents and pages each answer is
grounded on.

Documents are identified by content, so re-ingesting the same file is
a no-op. The index persists on disk between runs.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, text, json)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewRemoveCmd())
	cmd.AddCommand(NewClearCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

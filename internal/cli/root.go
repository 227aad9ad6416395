// Package cli provides the Cobra command structure for md2docx.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/md2docx/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root md2docx command with all subcommands.
// Run without a subcommand it converts the current directory with the
// convert defaults.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	defaults := &convertFlags{jobs: 1}

	rootCmd := &cobra.Command{
		Use:   "md2docx",
		Short: "Convert Markdown documents to Word (.docx) files",
		Long: `md2docx converts Markdown documents into Word (.docx) files.

Headings, paragraphs, emphasis, inline code, images, bulleted and ordered
lists, fenced code blocks and GFM tables are mapped onto Word styles. Images
that cannot be read are replaced by a visible placeholder so every document
still converts.`,
		Args: cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logging.Default()))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd, nil, defaults)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

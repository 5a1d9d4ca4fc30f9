// Package cli provides the Cobra command structure for textkit.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/textkit/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root textkit command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "textkit",
		Short: "Inspect and normalize text file encodings, line endings, and syntax",
		Long: `textkit inspects plain-text files the way a careful text editor does.

It detects each file's character encoding (byte-order marks, encoding
declarations, extended attributes, and a candidate list), finds the major
line ending and every line ending that disagrees with it, and matches the
file against syntax definitions to count highlights and build an outline.
Files can be converted to another encoding or line ending with optional
backups, and watched so their line ending tables stay current as they change.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newHighlightCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newRestoreCommand())
	rootCmd.AddCommand(newSyntaxCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

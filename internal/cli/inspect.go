package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/textkit/pkg/runner"
)

type inspectFlags struct {
	batchFlags

	highlight bool
	noDetails bool
	exitZero  bool
}

func newInspectCommand() *cobra.Command {
	flags := &inspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect [paths...]",
		Short: "Report encodings, line endings, and syntaxes of text files",
		Long:  inspectLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, flags)
		},
	}

	addBatchFlags(cmd, &flags.batchFlags)
	cmd.Flags().BoolVar(&flags.highlight, "highlight", false, "count syntax highlights and outline items")
	cmd.Flags().BoolVar(&flags.noDetails, "no-details", false, "do not list each inconsistent line ending")
	cmd.Flags().BoolVar(&flags.exitZero, "exit-zero", false, "exit 0 even when line endings are mixed")

	return cmd
}

const inspectLongDescription = `Inspect text files and report how they are stored.

For every file textkit reports the detected encoding (and whether it has
a byte-order mark), the major line ending, each line ending that differs
from it, the line count, and the matched syntax. Binary files, hidden
directories, and vendored directories are skipped when walking.

Exits with status 1 when a file mixes line endings, unless the file opts
out through its extended attributes or --exit-zero is given.

Examples:
  textkit inspect                       # Inspect the current directory
  textkit inspect docs/ scripts/run.sh  # Inspect specific paths
  textkit inspect --ext txt,md          # Only walk .txt and .md files
  textkit inspect --highlight           # Also count syntax highlights
  textkit inspect --format json         # Output as JSON for CI
  textkit inspect --encoding shift_jis  # Read files as Shift_JIS`

func runInspect(cmd *cobra.Command, args []string, flags *inspectFlags) error {
	sess, err := newSession(cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}

	var opts []runner.InspectorOption
	if flags.highlight {
		opts = append(opts, runner.WithHighlights())
	}

	batch := &batchRun{
		session:   sess,
		flags:     &flags.batchFlags,
		inspector: opts,
		details:   !flags.noDetails,
	}

	result, err := batch.execute(cmd, args)
	if err != nil {
		return err
	}

	return errorForExitCode(ExitCodeFromResult(result, !flags.exitZero))
}

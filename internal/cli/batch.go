package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/textkit/internal/logging"
	"github.com/yaklabco/textkit/pkg/config"
	"github.com/yaklabco/textkit/pkg/reporter"
	"github.com/yaklabco/textkit/pkg/runner"
)

// batchFlags are the file selection and output flags shared by inspect and convert.
type batchFlags struct {
	format          string
	jobs            int
	encoding        string
	ignore          []string
	extensions      []string
	includeVendored bool
	followSymlinks  bool
	showClean       bool
	compact         bool
}

func addBatchFlags(cmd *cobra.Command, flags *batchFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, table, json, summary (default from config)")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.encoding, "encoding", "", "read files with this encoding instead of detecting it")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "only walk files with these extensions")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false, "walk vendored directories such as node_modules")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
	cmd.Flags().BoolVar(&flags.showClean, "show-clean", false, "list files without findings in text output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
}

// cliConfig converts explicitly set flags to a configuration overlay.
func (f *batchFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if cmd.Flags().Changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if cmd.Flags().Changed("ext") {
		cfg.Extensions = f.extensions
	}
	return cfg
}

// batchRun discovers and inspects the files named by args, then reports them.
type batchRun struct {
	session   *session
	flags     *batchFlags
	inspector []runner.InspectorOption
	details   bool
}

func (b *batchRun) execute(cmd *cobra.Command, args []string) (*runner.Result, error) {
	ctx := b.session.ctx
	logger := logging.FromContext(ctx)
	cfg := b.session.config()

	loadOpts, err := runner.LoadOptionsFromConfig(cfg, b.flags.encoding, b.session.syntaxes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	runOpts := runner.OptionsFromConfig(cfg, args)
	runOpts.WorkingDir = b.session.workDir
	runOpts.IncludeVendored = b.flags.includeVendored
	runOpts.FollowSymlinks = b.flags.followSymlinks

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	inspector := runner.NewInspector(loadOpts, b.inspector...)
	result, err := runner.New(inspector).Run(ctx, runOpts)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}

	logger.Debug("run finished",
		logging.FieldFilesInspected, result.Stats.FilesInspected,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldFilesConverted, result.Stats.FilesConverted,
	)

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:              cmd.OutOrStdout(),
		ErrorWriter:         cmd.ErrOrStderr(),
		Format:              format,
		Color:               b.session.color,
		ShowInconsistencies: b.details,
		ShowClean:           b.flags.showClean,
		ShowSummary:         true,
		Compact:             b.flags.compact,
		WorkingDir:          b.session.workDir,
	})
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return nil, fmt.Errorf("report results: %w", err)
	}

	return result, nil
}

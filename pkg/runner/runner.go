package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/textkit/internal/logging"
)

// Runner inspects many files concurrently with one Inspector.
type Runner struct {
	Inspector *Inspector
}

// New creates a new Runner with the given inspector.
func New(inspector *Inspector) *Runner {
	return &Runner{Inspector: inspector}
}

// Run discovers files under opts.Paths and inspects them on opts.Jobs
// workers. Outcomes are reported in discovery order. A failing file is
// recorded in its outcome and does not stop the run; cancellation does.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	outcomes := make([]*FileOutcome, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcome := &FileOutcome{Path: path}
			outcome.Report, outcome.Error = r.Inspector.InspectFile(groupCtx, path)
			if outcome.Error != nil {
				outcome.Report = nil
			}
			outcomes[i] = outcome
			return nil
		})
	}
	_ = group.Wait()

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	logger.Debug("run complete",
		logging.FieldFilesInspected, result.Stats.FilesInspected,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldFilesConverted, result.Stats.FilesConverted,
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

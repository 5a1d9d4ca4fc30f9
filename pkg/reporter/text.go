package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/textkit/internal/ui/pretty"
	"github.com/yaklabco/textkit/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to inspect."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("report: %w", ctx.Err())
		default:
		}

		r.writeFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return inconsistentTotal(result), nil
}

func (r *TextReporter) writeFile(file runner.FileOutcome) {
	path := r.opts.displayPath(file.Path)

	if file.Error != nil {
		fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error))
		return
	}

	report := file.Report
	if report == nil {
		return
	}

	notable := report.HasInconsistency() || report.Conversion != nil || len(report.Highlights) > 0
	if !notable && !r.opts.ShowClean {
		return
	}

	header := *report
	header.Path = path
	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(&header))

	if r.opts.ShowInconsistencies {
		for _, inc := range report.Inconsistent {
			fmt.Fprint(r.bw, r.styles.FormatInconsistency(path, inc, report.LineEnding))
		}
	}

	fmt.Fprint(r.bw, r.styles.FormatConversion(report.Conversion))

	if len(report.Highlights) > 0 || report.OutlineItems > 0 {
		fmt.Fprintf(r.bw, "  %s %s", r.styles.Dim.Render("highlights:"), r.styles.FormatHighlightCounts(report.Highlights))
		if report.OutlineItems > 0 {
			fmt.Fprint(r.bw, r.styles.Dim.Render(fmt.Sprintf("; %d outline items", report.OutlineItems)))
		}
		fmt.Fprintln(r.bw)
	}

	if notable {
		fmt.Fprintln(r.bw)
	}
}

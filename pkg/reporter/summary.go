package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/textkit/internal/ui/pretty"
	"github.com/yaklabco/textkit/pkg/runner"
)

// Table layout constants for summary output.
const (
	tableWidth        = 80
	valueColWidth     = 30
	fileColWidth      = 56
	numColWidth       = 7
	percentColWidth   = 8
	eolColWidth       = 8
	maxFilePathLength = 54
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryReporter formats results as aggregated tables.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || result.Stats.FilesInspected == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No files inspected"))
		if result != nil && result.Stats.FilesErrored > 0 {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
		}
		return inconsistentTotal(result), nil
	}

	total := result.Stats.FilesInspected
	r.renderCountTable("Encodings", result.Stats.ByEncoding, total)
	r.renderCountTable("Line Endings", result.Stats.ByLineEnding, total)
	r.renderCountTable("Syntaxes", result.Stats.BySyntax, total)
	r.renderMixedTable(result.Files)

	fmt.Fprint(r.bw, r.styles.Bold.Render("Total: ")+r.styles.FormatSummaryOneLine(result.Stats))

	return inconsistentTotal(result), nil
}

func (r *SummaryReporter) renderCountTable(title string, counts map[string]int, total int) {
	if len(counts) == 0 {
		return
	}

	fmt.Fprintln(r.bw, r.styles.Bold.Render(title))
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
	fmt.Fprintf(r.bw, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("Value", valueColWidth)),
		r.styles.TableHeader.Render(padLeft("Files", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Share", percentColWidth)),
	)
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, entry := range pretty.SortedCounts(counts) {
		share := fmt.Sprintf("%.1f%%", float64(entry.Value)*100/float64(total))
		fmt.Fprintf(r.bw, "%s %s %s\n",
			padRight(entry.Key, valueColWidth),
			padLeft(strconv.Itoa(entry.Value), numColWidth),
			padLeft(share, percentColWidth),
		)
	}
	fmt.Fprintln(r.bw)
}

func (r *SummaryReporter) renderMixedTable(files []runner.FileOutcome) {
	mixed := lo.Filter(files, func(file runner.FileOutcome, _ int) bool {
		return file.Report.HasInconsistency()
	})
	if len(mixed) == 0 {
		return
	}

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Files With Mixed Line Endings"))
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
	fmt.Fprintf(r.bw, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Major", eolColWidth)),
		r.styles.TableHeader.Render(padLeft("Mixed", numColWidth)),
	)
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, file := range mixed {
		path := r.opts.displayPath(file.Path)
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		fmt.Fprintf(r.bw, "%s %s %s\n",
			r.styles.TableMixedRow.Render(padRight(path, fileColWidth)),
			padLeft(file.Report.LineEnding.Name(), eolColWidth),
			padLeft(strconv.Itoa(len(file.Report.Inconsistent)), numColWidth),
		)
	}
	fmt.Fprintln(r.bw)
}

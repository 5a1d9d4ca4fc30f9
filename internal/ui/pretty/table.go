package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/textkit/pkg/runner"
)

// Table formatting constants.
const (
	convertedSymbol     = "+"
	tablePadding        = 2
	tableColumnCount    = 6 // FILE, ENCODING, EOL, LINES, SYNTAX, MIXED
	convertedColumnSize = 3
	minFileWidth        = 20
	minEncodingWidth    = 8
	minEOLWidth         = 4
	minLinesWidth       = 5
	minSyntaxWidth      = 8
	minMixedWidth       = 5
	heavySeparator      = "="
	defaultTermWidth    = 100
)

// RowStatus classifies a table row for styling.
type RowStatus int

// Row statuses.
const (
	RowClean RowStatus = iota
	RowMixed
	RowFailed
)

// TableRow represents a single file in the inspection table.
type TableRow struct {
	File       string
	Encoding   string
	LineEnding string
	Lines      string
	Syntax     string
	Mixed      string
	Status     RowStatus
	Converted  bool
}

// OutcomeToTableRow converts a runner outcome to a table row.
func OutcomeToTableRow(outcome runner.FileOutcome) TableRow {
	if outcome.Error != nil || outcome.Report == nil {
		return TableRow{File: outcome.Path, Encoding: "error", Status: RowFailed}
	}

	report := outcome.Report
	row := TableRow{
		File:       outcome.Path,
		Encoding:   report.Encoding.String(),
		LineEnding: report.LineEnding.Name(),
		Lines:      strconv.Itoa(report.LineCount),
		Syntax:     report.Syntax,
		Mixed:      "-",
		Converted:  report.Conversion != nil,
	}
	if report.HasInconsistency() {
		row.Mixed = strconv.Itoa(len(report.Inconsistent))
		row.Status = RowMixed
	}
	return row
}

// TableFormatter formats inspection results as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FormatTable formats runner results as a styled table with one row per file.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(result.Files))
	for _, outcome := range result.Files {
		rows = append(rows, OutcomeToTableRow(outcome))
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

type columnWidths struct {
	file     int
	encoding int
	eol      int
	lines    int
	syntax   int
	mixed    int
}

func (w columnWidths) total() int {
	return w.file + w.encoding + w.eol + w.lines + w.syntax + w.mixed +
		(tablePadding * tableColumnCount) + convertedColumnSize
}

// calculateColumnWidths determines column widths based on content.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		file:     minFileWidth,
		encoding: minEncodingWidth,
		eol:      minEOLWidth,
		lines:    minLinesWidth,
		syntax:   minSyntaxWidth,
		mixed:    minMixedWidth,
	}

	for _, row := range rows {
		widths.file = max(widths.file, len(row.File))
		widths.encoding = max(widths.encoding, len(row.Encoding))
		widths.eol = max(widths.eol, len(row.LineEnding))
		widths.lines = max(widths.lines, len(row.Lines))
		widths.syntax = max(widths.syntax, len(row.Syntax))
		widths.mixed = max(widths.mixed, len(row.Mixed))
	}

	// File paths give way first when the terminal is narrow.
	if total := widths.total(); total > t.termWidth {
		widths.file = max(minFileWidth, widths.file-(total-t.termWidth))
	}

	return widths
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %*s  %-*s  %*s   ",
		widths.file, "FILE",
		widths.encoding, "ENCODING",
		widths.eol, "EOL",
		widths.lines, "LINES",
		widths.syntax, "SYNTAX",
		widths.mixed, "MIXED",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, widths.total()))
}

// formatRow formats a single table row with status-based styling.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	converted := " "
	if row.Converted {
		converted = t.styles.TableConverted.Render(convertedSymbol)
	}

	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %*s  %-*s  %*s  %s",
		widths.file, truncateFilePath(row.File, widths.file),
		widths.encoding, truncateString(row.Encoding, widths.encoding),
		widths.eol, row.LineEnding,
		widths.lines, row.Lines,
		widths.syntax, truncateString(row.Syntax, widths.syntax),
		widths.mixed, row.Mixed,
		converted,
	)

	return t.rowStyle(row.Status).Render(content)
}

func (t *TableFormatter) rowStyle(status RowStatus) lipgloss.Style {
	switch status {
	case RowFailed:
		return t.styles.TableErrorRow
	case RowMixed:
		return t.styles.TableMixedRow
	default:
		return lipgloss.NewStyle()
	}
}

// formatLegend formats the legend explaining the table symbols and colors.
func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(
			fmt.Sprintf(" Legend: MIXED = inconsistent line endings | %s = converted", convertedSymbol),
		)
	}

	mixedSample := t.styles.TableMixedRow.Render(" mixed ")
	errorSample := t.styles.TableErrorRow.Render(" failed ")
	convertedSample := t.styles.TableConverted.Render(convertedSymbol)

	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s = inconsistent line endings  %s = not inspected  %s = converted",
			mixedSample, errorSample, convertedSample),
	)
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats) string {
	parts := []string{fmt.Sprintf("%d files inspected", stats.FilesInspected)}

	if stats.FilesInconsistent > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d mixed", stats.FilesInconsistent)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	if stats.FilesConverted > 0 {
		parts = append(parts, t.styles.TableConverted.Render(fmt.Sprintf("%d converted", stats.FilesConverted)))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}

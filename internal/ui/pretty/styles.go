// Package pretty renders textkit reports, tables, and summaries with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds one lipgloss style per element of textkit's reports.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Encoding   lipgloss.Style
	LineEnding lipgloss.Style
	Syntax     lipgloss.Style
	SourceLine lipgloss.Style
	Marker     lipgloss.Style

	Keyword lipgloss.Style
	Command lipgloss.Style
	Literal lipgloss.Style
	Comment lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableMixedRow  lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableConverted lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns the color palette, or plain styles when color is off.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return plainStyles()
	}

	return &Styles{
		Error:   fg("9").Bold(true),
		Warning: fg("11").Bold(true),
		Info:    fg("12").Bold(true),

		FilePath:   bold(),
		Location:   fg("8"),
		Encoding:   fg("14"),
		LineEnding: fg("13"),
		Syntax:     fg("10"),
		SourceLine: fg("7"),
		Marker:     fg("11"),

		Keyword: fg("13").Bold(true),
		Command: fg("12"),
		Literal: fg("9"),
		Comment: fg("8").Italic(true),

		SummaryTitle: bold(),
		SummaryValue: lipgloss.NewStyle(),
		Success:      fg("10").Bold(true),
		Failure:      fg("9").Bold(true),

		TableHeader:    fg("7").Bold(true),
		TableMixedRow:  fg("11"),
		TableErrorRow:  fg("9"),
		TableConverted: fg("10"),
		TableLegend:    fg("8").Italic(true),
		TableSeparator: fg("8"),

		Dim:  fg("8"),
		Bold: bold(),
	}
}

func fg(ansi string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ansi))
}

func bold() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

func plainStyles() *Styles {
	p := lipgloss.NewStyle()
	return &Styles{
		Error: p, Warning: p, Info: p,
		FilePath: p, Location: p, Encoding: p, LineEnding: p, Syntax: p, SourceLine: p, Marker: p,
		Keyword: p, Command: p, Literal: p, Comment: p,
		SummaryTitle: p, SummaryValue: p, Success: p, Failure: p,
		TableHeader: p, TableMixedRow: p, TableErrorRow: p, TableConverted: p, TableLegend: p, TableSeparator: p,
		Dim: p, Bold: p,
	}
}

// IsColorEnabled resolves a color mode ("auto", "always", "never") for writer.
// Auto enables color for terminals unless NO_COLOR is set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

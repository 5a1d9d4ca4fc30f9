package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/textkit/pkg/lineending"
	"github.com/yaklabco/textkit/pkg/runner"
	"github.com/yaklabco/textkit/pkg/syntax"
)

// FormatFileHeader formats the one-line description of an inspected file.
// Example: "main.go  UTF-8  LF  12 lines  Go".
func (s *Styles) FormatFileHeader(report *runner.FileReport) string {
	parts := []string{
		s.FilePath.Render(report.Path),
		s.Encoding.Render(report.Encoding.String()),
		s.LineEnding.Render(report.LineEnding.Name()),
		s.Dim.Render(pluralize(report.LineCount, "line", "lines")),
	}
	if report.Syntax != "" {
		parts = append(parts, s.Syntax.Render(report.Syntax))
	}
	if report.AllowsInconsistency {
		parts = append(parts, s.Dim.Render("(mixed endings allowed)"))
	}
	return strings.Join(parts, "  ")
}

// FormatInconsistency formats one line ending that differs from the file's major one.
func (s *Styles) FormatInconsistency(path string, inc runner.InconsistentEnding, major lineending.Kind) string {
	location := s.FilePath.Render(path) + s.Location.Render(fmt.Sprintf(":%d", inc.Line))
	return fmt.Sprintf("  %s  %s  inconsistent line ending %s (expected %s)\n",
		location,
		s.Warning.Render("warning"),
		s.LineEnding.Render(inc.Kind.Name()),
		major.Name(),
	)
}

// FormatConversion describes a rewrite. Dry runs read "would convert".
func (s *Styles) FormatConversion(conv *runner.Conversion) string {
	if conv == nil {
		return ""
	}

	verb := s.Success.Render("converted")
	if !conv.Written {
		verb = s.Info.Render("would convert")
	}

	line := fmt.Sprintf("  %s %s %s -> %s %s",
		verb,
		conv.FromEncoding, conv.FromLineEnding.Name(),
		conv.ToEncoding, conv.ToLineEnding.Name(),
	)
	if conv.BackupCreated {
		line += s.Dim.Render(" (backup created)")
	}
	return line + "\n"
}

// FormatFileError formats a file that could not be inspected.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n",
		s.FilePath.Render(path),
		s.Error.Render(fmt.Sprintf("error: %v", err)),
	)
}

// FormatHighlightCounts lists highlight counts in drawing order.
// Example: "keywords 4, strings 2, comments 1".
func (s *Styles) FormatHighlightCounts(counts map[syntax.Type]int) string {
	var parts []string
	for _, typ := range syntax.AllTypes {
		if n := counts[typ]; n > 0 {
			parts = append(parts, s.TypeStyle(typ).Render(string(typ))+" "+s.SummaryValue.Render(fmt.Sprint(n)))
		}
	}
	return strings.Join(parts, ", ")
}

// FormatHighlightRange formats a highlighted range and the text it covers.
func (s *Styles) FormatHighlightRange(typ syntax.Type, location, text string) string {
	return fmt.Sprintf("  %-10s  %s  %s\n",
		s.TypeStyle(typ).Render(string(typ)),
		s.Location.Render(location),
		s.SourceLine.Render(quoteSnippet(text)),
	)
}

// FormatSourceContext formats a source line with a marker under the given column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Marker.Render("^") + "\n")
	}

	return builder.String()
}

// TypeStyle returns the style used for a highlight type.
func (s *Styles) TypeStyle(typ syntax.Type) lipgloss.Style {
	switch typ {
	case syntax.Keywords, syntax.Types, syntax.Attributes:
		return s.Keyword
	case syntax.Commands, syntax.Variables:
		return s.Command
	case syntax.Values, syntax.Numbers, syntax.Strings, syntax.Characters:
		return s.Literal
	case syntax.Comments:
		return s.Comment
	default:
		return s.SummaryValue
	}
}

const maxSnippetLength = 40

// quoteSnippet quotes text for single-line display, shortening long ranges.
func quoteSnippet(text string) string {
	runes := []rune(text)
	if len(runes) > maxSnippetLength {
		text = string(runes[:maxSnippetLength-3]) + "..."
	}
	return fmt.Sprintf("%q", text)
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

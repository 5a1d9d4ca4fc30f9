package pretty

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/textkit/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "7 inconsistent line endings in 2 files, 3 converted (12 files inspected)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	inspected := s.Dim.Render(fmt.Sprintf(" (%s inspected)", pluralize(stats.FilesInspected, wordFile, wordFiles)))

	var parts []string

	if stats.InconsistentTotal == 0 {
		parts = append(parts, s.Success.Render("No inconsistent line endings"))
	} else {
		endingWord := "inconsistent line endings"
		if stats.InconsistentTotal == 1 {
			endingWord = "inconsistent line ending"
		}
		parts = append(parts, fmt.Sprintf("%s in %s",
			s.Warning.Render(fmt.Sprintf("%d %s", stats.InconsistentTotal, endingWord)),
			pluralize(stats.FilesInconsistent, wordFile, wordFiles),
		))
	}

	if stats.FilesConverted > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d converted", stats.FilesConverted)))
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + inspected + "\n"
}

// FormatSummary formats run statistics as a summary block with
// per-encoding, per-line-ending, and per-syntax breakdowns.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files inspected:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesInspected)) + "\n")

	if stats.FilesInconsistent > 0 {
		builder.WriteString("  Mixed line endings:  " +
			s.Warning.Render(strconv.Itoa(stats.FilesInconsistent)) + "\n")
	}

	if stats.FilesConverted > 0 {
		builder.WriteString("  Files converted:     " +
			s.Success.Render(strconv.Itoa(stats.FilesConverted)) + "\n")
	}

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:        " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	s.writeBreakdown(&builder, "Encodings", stats.ByEncoding)
	s.writeBreakdown(&builder, "Line endings", stats.ByLineEnding)
	s.writeBreakdown(&builder, "Syntaxes", stats.BySyntax)

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Inspection failed for some files"))
	case stats.FilesInconsistent > 0:
		builder.WriteString(s.Warning.Render("Inspection found mixed line endings"))
	default:
		builder.WriteString(s.Success.Render("All files consistent"))
	}
	builder.WriteString("\n")

	return builder.String()
}

func (s *Styles) writeBreakdown(builder *strings.Builder, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	builder.WriteString("\n  " + s.Bold.Render(title) + "\n")
	for _, entry := range SortedCounts(counts) {
		fmt.Fprintf(builder, "    %-18s %s\n", entry.Key, s.SummaryValue.Render(strconv.Itoa(entry.Value)))
	}
}

// SortedCounts orders count map entries by descending count, then by key.
func SortedCounts(counts map[string]int) []lo.Entry[string, int] {
	entries := lo.Entries(counts)
	slices.SortFunc(entries, func(a, b lo.Entry[string, int]) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return entries
}

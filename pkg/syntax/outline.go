package syntax

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/yaklabco/textkit/pkg/highlight"
	"github.com/yaklabco/textkit/pkg/lineending"
	"github.com/yaklabco/textkit/pkg/textrange"
)

// SeparatorTitle is the template that turns an outline match into a separator.
const SeparatorTitle = "-"

// lineNumberToken in a template is replaced by the 1-based line of the match.
const lineNumberToken = "$LN"

// OutlineItem is one entry of a document outline.
type OutlineItem struct {
	Title     string          `json:"title"`
	Range     textrange.Range `json:"range"`
	Bold      bool            `json:"bold,omitempty"`
	Italic    bool            `json:"italic,omitempty"`
	Underline bool            `json:"underline,omitempty"`
}

// IsSeparator reports whether the item is a separator.
func (i OutlineItem) IsSeparator() bool {
	return i.Title == SeparatorTitle
}

type outlineExtractor struct {
	re      *regexp2.Regexp
	outline Outline
}

// Outline extracts outline items from the whole text, sorted by location.
func (p *Parser) Outline(ctx context.Context, text []rune) ([]OutlineItem, error) {
	if len(p.outlines) == 0 || len(text) == 0 {
		return nil, nil
	}

	var (
		items []OutlineItem
		table *lineending.Table
	)

	for _, extractor := range p.outlines {
		match, err := extractor.re.FindRunesMatch(text)

		for ; err == nil && match != nil; match, err = extractor.re.FindNextMatch(match) {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("outline: %w: %w", highlight.ErrCancelled, ctx.Err())
			default:
			}

			if match.Length == 0 {
				continue
			}

			item := OutlineItem{
				Range:     textrange.New(match.Index, match.Length),
				Bold:      extractor.outline.Bold,
				Italic:    extractor.outline.Italic,
				Underline: extractor.outline.Underline,
			}

			switch template := extractor.outline.Template; {
			case template == SeparatorTitle:
				item.Title = SeparatorTitle
			case template == "":
				item.Title = cleanTitle(match.String())
			default:
				if table == nil && strings.Contains(template, lineNumberToken) {
					table = lineending.New(lineending.Runes(text), lineending.LF)
				}

				item.Title = cleanTitle(expandTemplate(template, match, table))
			}

			items = append(items, item)
		}

		if err != nil {
			return nil, fmt.Errorf("outline: %w", &highlight.RegexError{Pattern: extractor.outline.Pattern, Err: err})
		}
	}

	slices.SortStableFunc(items, func(a, b OutlineItem) int {
		return cmp.Compare(a.Range.Location, b.Range.Location)
	})

	return items, nil
}

// expandTemplate replaces $LN with the line number and $0..$99 with the
// corresponding groups. A backslash escapes the next character.
func expandTemplate(template string, match *regexp2.Match, table *lineending.Table) string {
	var out strings.Builder

	runes := []rune(template)

	for i := 0; i < len(runes); i++ {
		c := runes[i]

		if c == '\\' && i+1 < len(runes) {
			i++
			out.WriteRune(runes[i])

			continue
		}

		if c != '$' {
			out.WriteRune(c)

			continue
		}

		rest := string(runes[i:])
		if table != nil && strings.HasPrefix(rest, lineNumberToken) {
			out.WriteString(strconv.Itoa(table.LineNumber(match.Index)))
			i += len(lineNumberToken) - 1

			continue
		}

		end := i + 1
		for end < len(runes) && end-i <= 2 && '0' <= runes[end] && runes[end] <= '9' {
			end++
		}

		if end == i+1 {
			out.WriteRune(c)

			continue
		}

		number, _ := strconv.Atoi(string(runes[i+1 : end]))
		if group := match.GroupByNumber(number); group != nil {
			out.WriteString(group.String())
		}

		i = end - 1
	}

	return out.String()
}

// cleanTitle trims the title and folds line breaks into spaces.
func cleanTitle(title string) string {
	title = lineending.Replace(strings.TrimSpace(title), lineending.LF)

	return strings.ReplaceAll(title, "\n", " ")
}

package highlight

import (
	"context"

	"github.com/yaklabco/textkit/pkg/textrange"
)

// BeginEndStringExtractor matches literal begin/end delimiter pairs such as
// quotes or block comments. Escaped delimiters are skipped.
type BeginEndStringExtractor struct {
	begin      []rune
	end        []rune
	ignoreCase bool
}

// NewBeginEndStringExtractor returns an extractor for the begin/end pair.
func NewBeginEndStringExtractor(begin, end string, ignoreCase bool) *BeginEndStringExtractor {
	return &BeginEndStringExtractor{begin: []rune(begin), end: []rune(end), ignoreCase: ignoreCase}
}

// Ranges implements Extractor.
//
// Scanning resumes after each matched end delimiter. A begin delimiter
// without an end before the range boundary is dropped and ends the scan.
func (x *BeginEndStringExtractor) Ranges(ctx context.Context, text []rune, within textrange.Range) ([]textrange.Range, error) {
	if len(x.begin) == 0 || len(x.end) == 0 {
		return nil, nil
	}

	within = within.Clamp(len(text))
	upper := within.End()

	var ranges []textrange.Range

	cursor := within.Location
	for cursor < upper {
		if err := checkCancelled(ctx); err != nil {
			return nil, err
		}

		start := indexOf(text, x.begin, cursor, upper, x.ignoreCase)
		if start == textrange.NotFound {
			break
		}

		cursor = start + len(x.begin)
		if IsEscaped(text, start) {
			continue
		}

		closed := false

		for cursor < upper {
			endStart := indexOf(text, x.end, cursor, upper, x.ignoreCase)
			if endStart == textrange.NotFound {
				break
			}

			cursor = endStart + len(x.end)
			if IsEscaped(text, endStart) {
				continue
			}

			ranges = append(ranges, textrange.Between(start, cursor))
			closed = true

			break
		}

		if !closed {
			break
		}
	}

	return ranges, nil
}

// StringExtractor matches every unescaped occurrence of a literal string.
type StringExtractor struct {
	needle     []rune
	ignoreCase bool
}

// NewStringExtractor returns an extractor for a single literal string.
func NewStringExtractor(needle string, ignoreCase bool) *StringExtractor {
	return &StringExtractor{needle: []rune(needle), ignoreCase: ignoreCase}
}

// Ranges implements Extractor.
func (x *StringExtractor) Ranges(ctx context.Context, text []rune, within textrange.Range) ([]textrange.Range, error) {
	if len(x.needle) == 0 {
		return nil, nil
	}

	within = within.Clamp(len(text))
	upper := within.End()

	var ranges []textrange.Range

	for cursor := within.Location; cursor < upper; {
		if err := checkCancelled(ctx); err != nil {
			return nil, err
		}

		start := indexOf(text, x.needle, cursor, upper, x.ignoreCase)
		if start == textrange.NotFound {
			break
		}

		cursor = start + len(x.needle)
		if IsEscaped(text, start) {
			continue
		}

		ranges = append(ranges, textrange.New(start, len(x.needle)))
	}

	return ranges, nil
}

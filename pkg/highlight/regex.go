package highlight

import (
	"context"

	"github.com/dlclark/regexp2"

	"github.com/yaklabco/textkit/pkg/textrange"
)

func compile(pattern string, ignoreCase bool) (*regexp2.Regexp, error) {
	options := regexp2.RegexOptions(regexp2.Multiline)
	if ignoreCase {
		options |= regexp2.IgnoreCase
	}

	re, err := regexp2.Compile(pattern, options)
	if err != nil {
		return nil, &RegexError{Pattern: pattern, Err: err}
	}

	return re, nil
}

// RegexExtractor matches every occurrence of a pattern.
//
// ^ and $ match at line boundaries. The search sees the whole text, so
// anchors and lookaround are not fooled by the range edges. A match that
// runs past the range end is cut at the range end.
type RegexExtractor struct {
	re *regexp2.Regexp
}

// NewRegexExtractor compiles pattern.
func NewRegexExtractor(pattern string, ignoreCase bool) (*RegexExtractor, error) {
	re, err := compile(pattern, ignoreCase)
	if err != nil {
		return nil, err
	}

	return &RegexExtractor{re: re}, nil
}

// Ranges implements Extractor. Empty matches are not reported.
func (x *RegexExtractor) Ranges(ctx context.Context, text []rune, within textrange.Range) ([]textrange.Range, error) {
	within = within.Clamp(len(text))

	var ranges []textrange.Range

	err := eachMatch(ctx, x.re, text, within, func(match textrange.Range) bool {
		if !match.IsEmpty() {
			ranges = append(ranges, match)
		}

		return true
	})
	if err != nil {
		return nil, err
	}

	return ranges, nil
}

// BeginEndRegexExtractor matches a begin pattern followed by an end pattern.
//
// Each begin match is paired independently with the first end match that
// starts at or after it, cut at the range end, so pairs may overlap.
// Begin matches without an end contribute nothing.
type BeginEndRegexExtractor struct {
	begin *regexp2.Regexp
	end   *regexp2.Regexp
}

// NewBeginEndRegexExtractor compiles both patterns.
func NewBeginEndRegexExtractor(begin, end string, ignoreCase bool) (*BeginEndRegexExtractor, error) {
	beginRe, err := compile(begin, ignoreCase)
	if err != nil {
		return nil, err
	}

	endRe, err := compile(end, ignoreCase)
	if err != nil {
		return nil, err
	}

	return &BeginEndRegexExtractor{begin: beginRe, end: endRe}, nil
}

// Ranges implements Extractor.
func (x *BeginEndRegexExtractor) Ranges(ctx context.Context, text []rune, within textrange.Range) ([]textrange.Range, error) {
	within = within.Clamp(len(text))

	var begins []textrange.Range

	err := eachMatch(ctx, x.begin, text, within, func(match textrange.Range) bool {
		if !match.IsEmpty() {
			begins = append(begins, match)
		}

		return true
	})
	if err != nil {
		return nil, err
	}

	var ranges []textrange.Range

	for _, begin := range begins {
		if err := checkCancelled(ctx); err != nil {
			return nil, err
		}

		var (
			end   textrange.Range
			found bool
		)

		search := textrange.Between(begin.End(), within.End())

		err := eachMatch(ctx, x.end, text, search, func(match textrange.Range) bool {
			end, found = match, true

			return false
		})
		if err != nil {
			return nil, err
		}

		if found {
			ranges = append(ranges, begin.Union(end))
		}
	}

	return ranges, nil
}

// eachMatch calls yield for every match of re that starts inside within,
// until yield returns false. Matching sees the text on both sides of the
// range, but a match running past within.End() is found again with the
// text cut at the range end, so it is reported truncated.
func eachMatch(
	ctx context.Context,
	re *regexp2.Regexp,
	text []rune,
	within textrange.Range,
	yield func(textrange.Range) bool,
) error {
	upper := within.End()
	truncated := false

	match, err := re.FindRunesMatchStartingAt(text, within.Location)

	for ; err == nil && match != nil; match, err = re.FindNextMatch(match) {
		if cancelErr := checkCancelled(ctx); cancelErr != nil {
			return cancelErr
		}

		found := textrange.New(match.Index, match.Length)
		if found.Location > upper || (found.Location == upper && !found.IsEmpty()) {
			return nil
		}

		if found.End() > upper && !truncated {
			// Later matches continue over the cut text.
			truncated = true
			match, err = re.FindRunesMatchStartingAt(text[:upper], found.Location)
			if err != nil || match == nil {
				break
			}
			found = textrange.New(match.Index, match.Length)
		}

		if !yield(found) {
			return nil
		}
	}

	if err != nil {
		return &RegexError{Pattern: re.String(), Err: err}
	}

	return nil
}

package highlight

import (
	"context"
	"unicode"

	"github.com/yaklabco/textkit/pkg/textrange"
)

// maxEscapeLookback bounds how many preceding backslashes are counted.
const maxEscapeLookback = 8

// Extractor finds the ranges a term matches inside a bounded range of text.
type Extractor interface {
	// Ranges returns the matches inside within, in ascending order.
	// It fails with an error matching ErrCancelled when ctx is done.
	Ranges(ctx context.Context, text []rune, within textrange.Range) ([]textrange.Range, error)
}

// NewExtractor builds the extractor for term.
//
// Regular expressions are compiled here, so a bad pattern surfaces as a
// *RegexError before any text is scanned. A literal word becomes a
// single-string extractor; use NewWordExtractor to match many words at once.
func NewExtractor(term Term) (Extractor, error) {
	switch term.Variant() {
	case RegexPair:
		return NewBeginEndRegexExtractor(term.Begin, term.End, term.IgnoreCase)
	case RegexSingle:
		return NewRegexExtractor(term.Begin, term.IgnoreCase)
	case LiteralPair:
		return NewBeginEndStringExtractor(term.Begin, term.End, term.IgnoreCase), nil
	default:
		return NewStringExtractor(term.Begin, term.IgnoreCase), nil
	}
}

// IsEscaped reports whether the character at index is preceded by an odd
// number of backslashes. At most eight preceding characters are examined.
func IsEscaped(text []rune, index int) bool {
	count := 0

	for pos := index - 1; pos >= 0 && index-pos <= maxEscapeLookback; pos-- {
		if text[pos] != '\\' {
			break
		}

		count++
	}

	return count%2 == 1
}

// indexOf returns the first position at or after from where needle occurs
// and ends no later than upper, or textrange.NotFound.
func indexOf(text []rune, needle []rune, from, upper int, ignoreCase bool) int {
	if len(needle) == 0 {
		return textrange.NotFound
	}

	for pos := from; pos+len(needle) <= upper; pos++ {
		if hasPrefixAt(text, needle, pos, ignoreCase) {
			return pos
		}
	}

	return textrange.NotFound
}

func hasPrefixAt(text []rune, needle []rune, pos int, ignoreCase bool) bool {
	for i, want := range needle {
		got := text[pos+i]
		if got == want {
			continue
		}

		if !ignoreCase || unicode.ToLower(got) != unicode.ToLower(want) {
			return false
		}
	}

	return true
}

package lineending

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/transform"

	"github.com/yaklabco/textkit/pkg/textrange"
)

// Replace converts every line ending in text to kind.
func Replace(text string, kind Kind) string {
	return replaceWith(text, kind.String())
}

// Remove deletes every line ending in text.
func Remove(text string) string {
	return replaceWith(text, "")
}

func replaceWith(text, replacement string) string {
	var builder strings.Builder
	builder.Grow(len(text))

	for index := 0; index < len(text); {
		c, size := utf8.DecodeRuneInString(text[index:])
		if !isNewlineRune(c) {
			builder.WriteString(text[index : index+size])
			index += size

			continue
		}

		if c == runeCR && index+1 < len(text) && text[index+1] == '\n' {
			size++
		}

		builder.WriteString(replacement)
		index += size
	}

	return builder.String()
}

// ConvertRange maps r, a range in text, to the equivalent range after every
// line ending in text has been converted to kind.
func ConvertRange(text []rune, kind Kind, r textrange.Range) textrange.Range {
	occurrences := ScanAll(Runes(text))

	shift := func(index int) int {
		delta := 0

		for _, occ := range occurrences {
			if occ.Range.End() > index {
				break
			}

			delta += kind.Length() - occ.Kind.Length()
		}

		return index + delta
	}

	return textrange.Between(shift(r.Location), shift(r.End()))
}

// Normalizer is a transform.Transformer that rewrites every line ending in a
// UTF-8 stream to a single kind.
type Normalizer struct {
	replacement []byte
	prevCR      bool
}

var _ transform.Transformer = (*Normalizer)(nil)

// NewNormalizer returns a transformer converting line endings to kind.
func NewNormalizer(kind Kind) *Normalizer {
	return &Normalizer{replacement: []byte(kind.String())}
}

// Reset implements transform.Transformer.
func (n *Normalizer) Reset() {
	n.prevCR = false
}

// Transform implements transform.Transformer.
func (n *Normalizer) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nDst, nSrc int

	for nSrc < len(src) {
		c := src[nSrc]

		if c == '\n' && n.prevCR {
			// Second half of a CRLF already written.
			n.prevCR = false
			nSrc++

			continue
		}

		n.prevCR = false

		size := 1
		isEnding := false

		switch {
		case c == '\r':
			isEnding = true
			n.prevCR = true
		case c == '\n':
			isEnding = true
		case c >= utf8.RuneSelf:
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}

			var r rune
			r, size = utf8.DecodeRune(src[nSrc:])
			isEnding = r == runeNEL || r == runeLS || r == runePS
		}

		out := src[nSrc : nSrc+size]
		if isEnding {
			out = n.replacement
		}

		if nDst+len(out) > len(dst) {
			n.prevCR = false

			return nDst, nSrc, transform.ErrShortDst
		}

		nDst += copy(dst[nDst:], out)
		nSrc += size
	}

	return nDst, nSrc, nil
}

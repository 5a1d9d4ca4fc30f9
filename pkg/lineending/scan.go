package lineending

import (
	"unicode/utf8"

	"github.com/yaklabco/textkit/pkg/textrange"
)

// Buffer is read-only character access to a text the host owns.
type Buffer interface {
	// Len returns the number of characters.
	Len() int
	// At returns the character at index.
	At(index int) rune
}

// Runes adapts a rune slice to Buffer.
type Runes []rune

// Len implements Buffer.
func (r Runes) Len() int { return len(r) }

// At implements Buffer.
func (r Runes) At(index int) rune { return r[index] }

// Occurrence is one line ending found in a buffer.
type Occurrence struct {
	Kind  Kind            `json:"kind"`
	Range textrange.Range `json:"range"`
}

// isNewlineRune reports whether c can start a line ending.
func isNewlineRune(c rune) bool {
	switch c {
	case runeLF, runeCR, runeNEL, runeLS, runePS:
		return true
	default:
		return false
	}
}

// isCROrLF reports whether c is one of the characters that can join into CRLF.
func isCROrLF(c rune) bool {
	return c == runeCR || c == runeLF
}

// ScanAll returns every line ending in buf.
func ScanAll(buf Buffer) []Occurrence {
	return Scan(buf, textrange.New(0, buf.Len()))
}

// Scan returns the line endings inside within, in ascending order.
// A CR at the last position of within is reported as CR even if the next
// character outside the range is LF.
func Scan(buf Buffer, within textrange.Range) []Occurrence {
	within = within.Clamp(buf.Len())

	var found []Occurrence

	upper := within.End()
	for index := within.Location; index < upper; index++ {
		kind, ok := kindAt(buf, index, upper)
		if !ok {
			continue
		}

		found = append(found, Occurrence{Kind: kind, Range: textrange.New(index, kind.Length())})
		index += kind.Length() - 1
	}

	return found
}

// kindAt classifies the line ending starting at index, looking no further than upper.
func kindAt(buf Buffer, index, upper int) (Kind, bool) {
	switch buf.At(index) {
	case runeLF:
		return LF, true
	case runeCR:
		if index+1 < upper && buf.At(index+1) == runeLF {
			return CRLF, true
		}

		return CR, true
	case runeNEL:
		return NEL, true
	case runeLS:
		return LineSeparator, true
	case runePS:
		return ParagraphSeparator, true
	default:
		return LF, false
	}
}

// Detect returns the kind of the first line ending in text.
func Detect(text string) (Kind, bool) {
	for index := 0; index < len(text); {
		c, size := utf8.DecodeRuneInString(text[index:])
		switch c {
		case runeLF:
			return LF, true
		case runeCR:
			if index+1 < len(text) && text[index+1] == '\n' {
				return CRLF, true
			}

			return CR, true
		case runeNEL:
			return NEL, true
		case runeLS:
			return LineSeparator, true
		case runePS:
			return ParagraphSeparator, true
		}

		index += size
	}

	return LF, false
}

package highlight

import (
	"context"
	"strings"
	"unicode"

	"github.com/yaklabco/textkit/pkg/textrange"
)

// WordExtractor matches whole words from a fixed vocabulary.
//
// A word is a maximal run of word characters: ASCII letters, digits,
// underscore, and any non-space character used by the vocabulary itself.
type WordExtractor struct {
	words     map[string]struct{}
	foldWords map[string]struct{}
	wordRunes map[rune]struct{}
}

// NewWordExtractor returns an extractor for the given case-sensitive and
// case-insensitive words. Surrounding whitespace in each word is ignored.
func NewWordExtractor(words, ignoreCaseWords []string) *WordExtractor {
	x := &WordExtractor{
		words:     make(map[string]struct{}, len(words)),
		foldWords: make(map[string]struct{}, len(ignoreCaseWords)),
		wordRunes: make(map[rune]struct{}),
	}

	for _, word := range words {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}

		x.words[word] = struct{}{}
		x.addRunes(word)
	}

	for _, word := range ignoreCaseWords {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}

		x.foldWords[strings.ToLower(word)] = struct{}{}
		x.addRunes(strings.ToLower(word))
		x.addRunes(strings.ToUpper(word))
	}

	return x
}

func (x *WordExtractor) addRunes(word string) {
	for _, c := range word {
		if !unicode.IsSpace(c) {
			x.wordRunes[c] = struct{}{}
		}
	}
}

func (x *WordExtractor) isWordRune(c rune) bool {
	if c < unicode.MaxASCII && (c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')) {
		return true
	}

	_, ok := x.wordRunes[c]

	return ok
}

// IsEmpty reports whether the extractor has no words.
func (x *WordExtractor) IsEmpty() bool {
	return len(x.words) == 0 && len(x.foldWords) == 0
}

// Ranges implements Extractor.
func (x *WordExtractor) Ranges(ctx context.Context, text []rune, within textrange.Range) ([]textrange.Range, error) {
	if x.IsEmpty() {
		return nil, nil
	}

	within = within.Clamp(len(text))
	upper := within.End()

	var ranges []textrange.Range

	for cursor := within.Location; cursor < upper; {
		if err := checkCancelled(ctx); err != nil {
			return nil, err
		}

		for cursor < upper && !x.isWordRune(text[cursor]) {
			cursor++
		}

		start := cursor
		for cursor < upper && x.isWordRune(text[cursor]) {
			cursor++
		}

		if start == cursor {
			break
		}

		word := string(text[start:cursor])
		if x.matches(word) {
			ranges = append(ranges, textrange.Between(start, cursor))
		}
	}

	return ranges, nil
}

func (x *WordExtractor) matches(word string) bool {
	if _, ok := x.words[word]; ok {
		return true
	}

	_, ok := x.foldWords[strings.ToLower(word)]

	return ok
}

package fileencoding

import (
	"regexp"
	"strings"
)

// declarationPattern matches the common charset declaration styles:
// XML encoding=, HTML charset=, CSS @charset, and the Python, Ruby, Emacs
// and Vim coding: / coding= comments.
//
//nolint:gochecknoglobals // Compiled once.
var declarationPattern = regexp.MustCompile(
	`(?:@charset|\b(?:charset=|encoding=|encoding:|fileencoding=|coding:|coding=)) *["']? *([-_.a-zA-Z0-9]+)`)

// ScanDeclaration looks for an encoding declaration within the first
// maxLength characters of text.
//
// A declared "Shift_JIS" resolves to whichever of ShiftJIS and
// ShiftJISX0213 comes first in candidates, since both share the name.
func ScanDeclaration(text string, maxLength int, candidates []Encoding) (Encoding, bool) {
	if text == "" || maxLength <= 0 {
		return Invalid, false
	}

	head := prefixRunes(text, maxLength)

	match := declarationPattern.FindStringSubmatch(head)
	if match == nil {
		return Invalid, false
	}

	name := match[1]

	if strings.EqualFold(name, "Shift_JIS") {
		for _, enc := range candidates {
			if enc == ShiftJIS || enc == ShiftJISX0213 {
				return enc, true
			}
		}

		return Invalid, false
	}

	return ByIANAName(name)
}

func prefixRunes(text string, count int) string {
	seen := 0
	for index := range text {
		if seen == count {
			return text[:index]
		}
		seen++
	}

	return text
}

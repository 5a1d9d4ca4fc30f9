package watch

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/yaklabco/textkit/pkg/textrange"
)

// Change is the single window that differs between two revisions of a text.
type Change struct {
	// Edited is the changed range in the new text.
	Edited textrange.Range `json:"edited"`

	// Delta is the new length minus the old length.
	Delta int `json:"delta"`

	// Inserted and Deleted count the characters added and removed inside
	// the window.
	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`
}

// Diff computes the change from before to after. The window spans from
// the end of the common prefix to the start of the common suffix. It
// reports false when the texts are equal.
func Diff(before, after []rune) (Change, bool) {
	dmp := diffmatchpatch.New()

	prefix := dmp.DiffCommonPrefix(string(before), string(after))
	if prefix == len(before) && prefix == len(after) {
		return Change{}, false
	}

	suffix := dmp.DiffCommonSuffix(string(before[prefix:]), string(after[prefix:]))

	change := Change{
		Edited: textrange.Between(prefix, len(after)-suffix),
		Delta:  len(after) - len(before),
	}

	for _, d := range dmp.DiffMainRunes(before[prefix:len(before)-suffix], after[prefix:len(after)-suffix], false) {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			change.Inserted += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			change.Deleted += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffEqual:
		}
	}

	return change, true
}

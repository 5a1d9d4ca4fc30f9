package lineending

import "github.com/yaklabco/textkit/pkg/textrange"

// LineStartIndex returns the index of the first character of the line containing index.
func (t *Table) LineStartIndex(index int) int {
	line := t.LineNumber(index)
	if line == 1 {
		return 0
	}

	return t.occurrences[line-2].Range.End()
}

// LineRange returns the range of the line containing index, including its line ending.
func (t *Table) LineRange(index int) textrange.Range {
	line := t.LineNumber(index)
	start := t.LineStartIndex(index)

	if line-1 < len(t.occurrences) {
		return textrange.Between(start, t.occurrences[line-1].Range.End())
	}

	return textrange.Between(start, t.length)
}

// LineContentsRange returns the range of the lines touched by r, excluding
// the trailing line ending of the last line.
func (t *Table) LineContentsRange(r textrange.Range) textrange.Range {
	start := t.LineStartIndex(r.Location)

	last := r.Location
	if r.Length > 0 {
		last = r.End() - 1
	}

	line := t.LineNumber(last)
	if line-1 < len(t.occurrences) {
		return textrange.Between(start, t.occurrences[line-1].Range.Location)
	}

	return textrange.Between(start, t.length)
}

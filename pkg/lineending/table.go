package lineending

import (
	"sort"

	"github.com/yaklabco/textkit/pkg/textrange"
)

// Table tracks the line endings of an open buffer.
//
// The occurrence list stays sorted by location and is patched in place by
// ApplyEdit, so line lookups are binary searches over a single slice.
// A Table is not safe for concurrent use; the host must serialise edits
// and queries.
type Table struct {
	base         Kind
	length       int
	occurrences  []Occurrence
	inconsistent []Occurrence
}

// New scans buf in full and returns a table treating base as the consistent kind.
func New(buf Buffer, base Kind) *Table {
	occurrences := ScanAll(buf)

	return &Table{
		base:         base,
		length:       buf.Len(),
		occurrences:  occurrences,
		inconsistent: filterInconsistent(occurrences, base),
	}
}

// Base returns the kind treated as consistent.
func (t *Table) Base() Kind {
	return t.base
}

// SetBase changes the consistent kind and rebuilds the inconsistent subset.
func (t *Table) SetBase(base Kind) {
	if base == t.base {
		return
	}

	t.base = base
	t.inconsistent = filterInconsistent(t.occurrences, base)
}

// Len returns the buffer length the table currently describes.
func (t *Table) Len() int {
	return t.length
}

// Occurrences returns a copy of all line endings in order.
func (t *Table) Occurrences() []Occurrence {
	return append([]Occurrence(nil), t.occurrences...)
}

// Inconsistent returns a copy of the line endings whose kind differs from the base.
func (t *Table) Inconsistent() []Occurrence {
	return append([]Occurrence(nil), t.inconsistent...)
}

// HasInconsistency reports whether any line ending differs from the base.
func (t *Table) HasInconsistency() bool {
	return len(t.inconsistent) > 0
}

// LineCount returns the number of lines, which is one more than the number of line endings.
func (t *Table) LineCount() int {
	return len(t.occurrences) + 1
}

// LineNumber returns the 1-based line number of the character at index.
func (t *Table) LineNumber(index int) int {
	pos := sort.Search(len(t.occurrences), func(i int) bool {
		return t.occurrences[i].Range.End() > index
	})

	return pos + 1
}

// IsInconsistentEnding reports whether an inconsistent line ending starts at index.
func (t *Table) IsInconsistentEnding(index int) bool {
	pos := sort.Search(len(t.inconsistent), func(i int) bool {
		return t.inconsistent[i].Range.Location >= index
	})

	return pos < len(t.inconsistent) && t.inconsistent[pos].Range.Location == index
}

// MajorEnding returns the most frequent kind.
// On a tie the kind whose first occurrence comes earliest wins.
// It returns false when the buffer has no line endings.
func (t *Table) MajorEnding() (Kind, bool) {
	return majorEnding(t.occurrences)
}

func majorEnding(occurrences []Occurrence) (Kind, bool) {
	if len(occurrences) == 0 {
		return LF, false
	}

	var (
		counts [len(kindInfo)]int
		first  [len(kindInfo)]int
	)

	for i := range first {
		first[i] = -1
	}

	for _, occ := range occurrences {
		if first[occ.Kind] < 0 {
			first[occ.Kind] = occ.Range.Location
		}

		counts[occ.Kind]++
	}

	best := Kind(-1)
	for _, kind := range Kinds {
		if counts[kind] == 0 {
			continue
		}

		if best < 0 || counts[kind] > counts[best] ||
			(counts[kind] == counts[best] && first[kind] < first[best]) {
			best = kind
		}
	}

	return best, true
}

// ApplyEdit patches the table after the host changed buf.
//
// edited is the range of the new characters in the edited buffer and delta
// is the change in buffer length. Only a window around edited, widened over
// neighbouring CR and LF characters so that split or joined CRLF pairs are
// classified correctly, is rescanned.
func (t *Table) ApplyEdit(buf Buffer, edited textrange.Range, delta int) {
	t.length = buf.Len()

	window := expandWindow(buf, edited.Clamp(t.length))

	// Bounds of the same window before the edit.
	oldLower := window.Location
	oldUpper := window.End() - delta

	fresh := Scan(buf, window)

	t.occurrences = splice(t.occurrences, oldLower, oldUpper, delta, fresh)
	t.inconsistent = splice(t.inconsistent, oldLower, oldUpper, delta, filterInconsistent(fresh, t.base))
}

// Rescan replaces the table contents with a full scan of buf.
func (t *Table) Rescan(buf Buffer) {
	t.length = buf.Len()
	t.occurrences = ScanAll(buf)
	t.inconsistent = filterInconsistent(t.occurrences, t.base)
}

// expandWindow widens r while the neighbouring characters are CR or LF.
func expandWindow(buf Buffer, r textrange.Range) textrange.Range {
	lower := r.Location
	for lower > 0 && isCROrLF(buf.At(lower-1)) {
		lower--
	}

	upper := r.End()
	for upper < buf.Len() && isCROrLF(buf.At(upper)) {
		upper++
	}

	return textrange.Between(lower, upper)
}

// splice drops the entries overlapping [oldLower, oldUpper), shifts the
// entries after it by delta, and inserts fresh in between.
func splice(list []Occurrence, oldLower, oldUpper, delta int, fresh []Occurrence) []Occurrence {
	start := sort.Search(len(list), func(i int) bool {
		return list[i].Range.End() > oldLower
	})
	end := sort.Search(len(list), func(i int) bool {
		return list[i].Range.Location >= oldUpper
	})
	end = max(end, start)

	tail := list[end:]

	result := make([]Occurrence, 0, start+len(fresh)+len(tail))
	result = append(result, list[:start]...)
	result = append(result, fresh...)

	for _, occ := range tail {
		occ.Range = occ.Range.Shifted(delta)
		result = append(result, occ)
	}

	return result
}

func filterInconsistent(occurrences []Occurrence, base Kind) []Occurrence {
	var inconsistent []Occurrence

	for _, occ := range occurrences {
		if occ.Kind != base {
			inconsistent = append(inconsistent, occ)
		}
	}

	return inconsistent
}

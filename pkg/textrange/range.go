// Package textrange defines half-open character ranges shared by the
// line-ending, highlighting, and syntax packages.
//
// Locations and lengths count Unicode code points, not bytes.
package textrange

import "fmt"

// NotFound is the location reported for a range that matched nothing.
const NotFound = -1

// Range is a half-open interval [Location, Location+Length).
type Range struct {
	Location int `json:"location"`
	Length   int `json:"length"`
}

// New returns the range [location, location+length).
func New(location, length int) Range {
	return Range{Location: location, Length: length}
}

// Between returns the range spanning lower to upper.
// If upper is less than lower the result is empty at lower.
func Between(lower, upper int) Range {
	if upper < lower {
		upper = lower
	}

	return Range{Location: lower, Length: upper - lower}
}

// End returns the exclusive upper bound.
func (r Range) End() int {
	return r.Location + r.Length
}

// IsEmpty reports whether the range covers no characters.
func (r Range) IsEmpty() bool {
	return r.Length == 0
}

// Contains reports whether index lies inside the range.
func (r Range) Contains(index int) bool {
	return index >= r.Location && index < r.End()
}

// Overlaps reports whether the two ranges share at least one character.
func (r Range) Overlaps(other Range) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}

	return r.Location < other.End() && other.Location < r.End()
}

// Union returns the smallest range covering both r and other.
func (r Range) Union(other Range) Range {
	return Between(min(r.Location, other.Location), max(r.End(), other.End()))
}

// Shifted returns the range moved by delta characters.
func (r Range) Shifted(delta int) Range {
	return Range{Location: r.Location + delta, Length: r.Length}
}

// Clamp limits the range to [0, length).
func (r Range) Clamp(length int) Range {
	lower := min(max(r.Location, 0), length)
	upper := min(max(r.End(), lower), length)

	return Between(lower, upper)
}

// String formats the range as {location, length}.
func (r Range) String() string {
	return fmt.Sprintf("{%d, %d}", r.Location, r.Length)
}

package textrange_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/textkit/pkg/textrange"
)

func TestRange_Basics(t *testing.T) {
	t.Parallel()

	r := textrange.New(3, 4)

	assert.Equal(t, 7, r.End())
	assert.False(t, r.IsEmpty())
	assert.True(t, r.Contains(3))
	assert.True(t, r.Contains(6))
	assert.False(t, r.Contains(7))
	assert.Equal(t, "{3, 4}", r.String())
}

func TestBetween(t *testing.T) {
	t.Parallel()

	assert.Equal(t, textrange.New(2, 3), textrange.Between(2, 5))
	assert.Equal(t, textrange.New(5, 0), textrange.Between(5, 2))
}

func TestRange_Overlaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		a, b  textrange.Range
		wants bool
	}{
		{name: "disjoint", a: textrange.New(0, 2), b: textrange.New(2, 2), wants: false},
		{name: "nested", a: textrange.New(0, 10), b: textrange.New(2, 2), wants: true},
		{name: "partial", a: textrange.New(0, 3), b: textrange.New(2, 2), wants: true},
		{name: "empty", a: textrange.New(1, 0), b: textrange.New(0, 3), wants: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wants, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.wants, tc.b.Overlaps(tc.a))
		})
	}
}

func TestRange_UnionShiftClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, textrange.New(1, 9), textrange.New(1, 2).Union(textrange.New(6, 4)))
	assert.Equal(t, textrange.New(5, 2), textrange.New(3, 2).Shifted(2))
	assert.Equal(t, textrange.New(0, 4), textrange.New(-2, 10).Clamp(4))
	assert.Equal(t, textrange.New(4, 0), textrange.New(8, 2).Clamp(4))
}

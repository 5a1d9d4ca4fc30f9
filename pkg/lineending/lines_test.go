package lineending_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/textkit/pkg/lineending"
	"github.com/yaklabco/textkit/pkg/textrange"
)

func TestTable_LineRanges(t *testing.T) {
	t.Parallel()

	// "ab\r\ncd\nef"
	//  0 1 2 3 4 5 6 7 8
	table := lineending.New(lineending.Runes("ab\r\ncd\nef"), lineending.LF)

	assert.Equal(t, 0, table.LineStartIndex(1))
	assert.Equal(t, 4, table.LineStartIndex(5))
	assert.Equal(t, 7, table.LineStartIndex(8))

	assert.Equal(t, textrange.New(0, 4), table.LineRange(0))
	assert.Equal(t, textrange.New(4, 3), table.LineRange(6))
	assert.Equal(t, textrange.New(7, 2), table.LineRange(8))
	assert.Equal(t, textrange.New(7, 2), table.LineRange(9))

	assert.Equal(t, textrange.New(0, 2), table.LineContentsRange(textrange.New(1, 0)))
	assert.Equal(t, textrange.New(0, 6), table.LineContentsRange(textrange.New(1, 4)))
	assert.Equal(t, textrange.New(4, 2), table.LineContentsRange(textrange.New(4, 3)))
	assert.Equal(t, textrange.New(4, 5), table.LineContentsRange(textrange.New(5, 3)))
}

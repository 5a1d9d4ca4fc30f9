package fileencoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/textkit/pkg/fileencoding"
)

func TestParseXattr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value    string
		expected fileencoding.Encoding
		found    bool
	}{
		{value: "UTF-8;134217984", expected: fileencoding.UTF8, found: true},
		{value: "SHIFT_JIS;1576", expected: fileencoding.ShiftJISX0213, found: true},
		{value: "Shift_JIS", expected: fileencoding.ShiftJIS, found: true},
		{value: "EUC-JP;2336\x00", expected: fileencoding.EUCJP, found: true},
		{value: "UTF-8;not-a-number", found: false},
		{value: "", found: false},
		{value: "klingon", found: false},
	}

	for _, tc := range tests {
		enc, found := fileencoding.ParseXattr([]byte(tc.value))
		assert.Equal(t, tc.found, found, "value %q", tc.value)

		if tc.found {
			assert.Equal(t, tc.expected, enc, "value %q", tc.value)
		}
	}
}

func TestXattrValue(t *testing.T) {
	t.Parallel()

	value, ok := fileencoding.XattrValue(fileencoding.UTF8)
	require.True(t, ok)
	assert.Equal(t, "UTF-8;134217984", string(value))

	for _, enc := range fileencoding.All() {
		value, ok := fileencoding.XattrValue(enc)
		require.True(t, ok)

		parsed, found := fileencoding.ParseXattr(value)
		require.True(t, found, string(value))
		assert.Equal(t, enc, parsed)
	}

	_, ok = fileencoding.XattrValue(fileencoding.Invalid)
	assert.False(t, ok)
}

package lineending_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/transform"

	"github.com/yaklabco/textkit/pkg/lineending"
	"github.com/yaklabco/textkit/pkg/textrange"
)

const mixed = "a\nb\r\nc\rd\u0085e\u2028f\u2029g"

func TestReplace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a\nb\nc\nd\ne\nf\ng", lineending.Replace(mixed, lineending.LF))
	assert.Equal(t, "a\r\nb\r\nc\r\nd\r\ne\r\nf\r\ng", lineending.Replace(mixed, lineending.CRLF))
	assert.Equal(t, "abcdefg", lineending.Remove(mixed))
	assert.Equal(t, "", lineending.Replace("", lineending.CR))
}

func TestConvertRange(t *testing.T) {
	t.Parallel()

	text := []rune("a\r\nb\r\nc")

	// "b" moves from 3 to 2 once CRLF becomes LF.
	assert.Equal(t, textrange.New(2, 1), lineending.ConvertRange(text, lineending.LF, textrange.New(3, 1)))
	assert.Equal(t, textrange.New(0, 5), lineending.ConvertRange(text, lineending.LF, textrange.New(0, 7)))

	assert.Equal(t,
		textrange.New(3, 1),
		lineending.ConvertRange([]rune("a\nb\nc"), lineending.CRLF, textrange.New(2, 1)))
}

func TestNormalizer(t *testing.T) {
	t.Parallel()

	out, _, err := transform.String(lineending.NewNormalizer(lineending.LF), mixed)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\nd\ne\nf\ng", out)

	out, _, err = transform.String(lineending.NewNormalizer(lineending.CRLF), "x\ny\rz")
	require.NoError(t, err)
	assert.Equal(t, "x\r\ny\r\nz", out)
}

// oneByteReader forces the transformer to see CRLF and multi-byte runes split across calls.
type oneByteReader struct {
	r io.Reader
}

func (o oneByteReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	return o.r.Read(p[:1])
}

func TestNormalizer_SplitInput(t *testing.T) {
	t.Parallel()

	reader := transform.NewReader(oneByteReader{strings.NewReader(mixed + "\r\n")}, lineending.NewNormalizer(lineending.CR))

	out, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "a\rb\rc\rd\re\rf\rg\r", string(out))
}

package pretty_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/textkit/internal/ui/pretty"
)

func TestNewStyles_PlainLeavesTextUntouched(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for _, style := range []interface{ Render(...string) string }{
		styles.Error, styles.Keyword, styles.Comment, styles.TableMixedRow, styles.Bold, styles.Dim,
	} {
		assert.Equal(t, "CRLF", style.Render("CRLF"))
	}
}

func TestNewStyles_ColorKeepsText(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	for _, style := range []interface{ Render(...string) string }{
		styles.Error, styles.Warning, styles.Info,
		styles.FilePath, styles.Location, styles.Encoding, styles.LineEnding, styles.Syntax,
		styles.SourceLine, styles.Marker,
		styles.Keyword, styles.Command, styles.Literal, styles.Comment,
		styles.SummaryTitle, styles.SummaryValue, styles.Success, styles.Failure,
		styles.TableHeader, styles.TableMixedRow, styles.TableErrorRow, styles.TableConverted,
		styles.TableLegend, styles.TableSeparator,
		styles.Dim, styles.Bold,
	} {
		assert.Contains(t, style.Render("x"), "x")
	}
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	tests := []struct {
		name   string
		mode   string
		writer io.Writer
		want   bool
	}{
		{name: "always on a buffer", mode: "always", writer: &bytes.Buffer{}, want: true},
		{name: "never on stdout", mode: "never", writer: os.Stdout, want: false},
		{name: "auto on a buffer", mode: "auto", writer: &bytes.Buffer{}, want: false},
		{name: "empty mode is auto", mode: "", writer: &bytes.Buffer{}, want: false},
		{name: "unknown mode is auto", mode: "sometimes", writer: &bytes.Buffer{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, tt.writer))
		})
	}
}

func TestIsColorEnabled_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout))
}

package pretty_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/textkit/internal/ui/pretty"
	"github.com/yaklabco/textkit/pkg/fileencoding"
	"github.com/yaklabco/textkit/pkg/lineending"
	"github.com/yaklabco/textkit/pkg/runner"
	"github.com/yaklabco/textkit/pkg/syntax"
)

func sampleReport() *runner.FileReport {
	return &runner.FileReport{
		Path:       "src/main.go",
		Encoding:   fileencoding.FileEncoding{Encoding: fileencoding.UTF8, HasBOM: true},
		LineEnding: lineending.CRLF,
		LineCount:  12,
		Syntax:     "Go",
	}
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	result := styles.FormatFileHeader(sampleReport())

	assert.Equal(t, "src/main.go  UTF-8 with BOM  CRLF  12 lines  Go", result)
}

func TestFormatFileHeader_SingleLineWithoutSyntax(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	report := &runner.FileReport{
		Path:                "notes.txt",
		Encoding:            fileencoding.FileEncoding{Encoding: fileencoding.UTF8},
		LineEnding:          lineending.LF,
		LineCount:           1,
		AllowsInconsistency: true,
	}

	result := styles.FormatFileHeader(report)

	assert.Contains(t, result, "1 line")
	assert.NotContains(t, result, "1 lines")
	assert.Contains(t, result, "(mixed endings allowed)")
}

func TestFormatInconsistency(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	inc := runner.InconsistentEnding{Line: 3, Location: 7, Kind: lineending.LF}

	result := styles.FormatInconsistency("mixed.txt", inc, lineending.CRLF)

	assert.Equal(t, "  mixed.txt:3  warning  inconsistent line ending LF (expected CRLF)\n", result)
}

func TestFormatConversion(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	conv := &runner.Conversion{
		FromEncoding:   fileencoding.FileEncoding{Encoding: fileencoding.UTF8},
		ToEncoding:     fileencoding.FileEncoding{Encoding: fileencoding.UTF8},
		FromLineEnding: lineending.CRLF,
		ToLineEnding:   lineending.LF,
	}

	planned := styles.FormatConversion(conv)
	assert.Contains(t, planned, "would convert UTF-8 CRLF -> UTF-8 LF")

	conv.Written = true
	conv.BackupCreated = true
	written := styles.FormatConversion(conv)
	assert.Contains(t, written, "converted UTF-8 CRLF -> UTF-8 LF")
	assert.Contains(t, written, "(backup created)")

	assert.Empty(t, styles.FormatConversion(nil))
}

func TestFormatFileError(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	result := styles.FormatFileError("broken.txt", errors.New("permission denied"))

	assert.Equal(t, "broken.txt: error: permission denied\n", result)
}

func TestFormatHighlightCounts(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	counts := map[syntax.Type]int{
		syntax.Comments: 1,
		syntax.Keywords: 4,
		syntax.Strings:  2,
		syntax.Numbers:  0,
	}

	result := styles.FormatHighlightCounts(counts)

	assert.Equal(t, "keywords 4, strings 2, comments 1", result)
}

func TestFormatHighlightRange(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	result := styles.FormatHighlightRange(syntax.Keywords, "1:1-1:8", "package")
	assert.Contains(t, result, "keywords")
	assert.Contains(t, result, "1:1-1:8")
	assert.Contains(t, result, `"package"`)

	long := styles.FormatHighlightRange(syntax.Comments, "2:1", strings.Repeat("x", 100))
	assert.Contains(t, long, "...")
	assert.NotContains(t, long, strings.Repeat("x", 41))
}

func TestFormatSourceContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	result := styles.FormatSourceContext("let x = 1", 5)

	lines := strings.Split(strings.TrimSuffix(result, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, strings.Repeat(" ", 8)+"let x = 1", lines[0])
	assert.Equal(t, strings.Repeat(" ", 12)+"^", lines[1])
}

func TestTypeStyle_CoversAllTypes(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	for _, typ := range syntax.AllTypes {
		assert.Equal(t, "x", styles.TypeStyle(typ).Render("x"), string(typ))
	}
}

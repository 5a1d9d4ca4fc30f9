package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/textkit/pkg/fileencoding"
	"github.com/yaklabco/textkit/pkg/lineending"
	"github.com/yaklabco/textkit/pkg/reporter"
	"github.com/yaklabco/textkit/pkg/runner"
	"github.com/yaklabco/textkit/pkg/syntax"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "case insensitive", input: " JSON ", want: reporter.FormatJSON},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, reporter.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format reporter.Format
		want   bool
	}{
		{reporter.FormatText, true},
		{reporter.FormatTable, true},
		{reporter.FormatJSON, true},
		{reporter.FormatSummary, true},
		{reporter.Format("sarif"), false},
		{reporter.Format(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, reporter.IsValid(tt.format))
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "table reporter", format: reporter.FormatTable},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "summary reporter", format: reporter.FormatSummary},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{
				Writer: &buf,
				Format: tt.format,
				Color:  "never",
			})
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, rep)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()

	assert.NotNil(t, opts.Writer)
	assert.NotNil(t, opts.ErrorWriter)
	assert.Equal(t, reporter.FormatText, opts.Format)
	assert.Equal(t, "auto", opts.Color)
	assert.True(t, opts.ShowInconsistencies)
	assert.True(t, opts.ShowSummary)
	assert.False(t, opts.ShowClean)
	assert.False(t, opts.Compact)
}

func TestTextReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), "No files to inspect")
}

func TestTextReporter_WithInconsistencies(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:              &buf,
		Color:               "never",
		ShowInconsistencies: true,
		ShowSummary:         true,
	})

	count, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	output := buf.String()
	assert.Contains(t, output, "mixed.txt  UTF-8  CRLF  5 lines")
	assert.Contains(t, output, "mixed.txt:3  warning  inconsistent line ending LF (expected CRLF)")
	assert.Contains(t, output, "mixed.txt:5  warning  inconsistent line ending CR (expected CRLF)")
	assert.Contains(t, output, "broken.txt: error: permission denied")
	assert.Contains(t, output, "highlights: keywords 2")
	assert.Contains(t, output, "1 outline items")
	assert.NotContains(t, output, "plain.txt")
	assert.Contains(t, output, "2 inconsistent line endings in 1 file")
}

func TestTextReporter_ShowClean(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowClean: true})

	_, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "plain.txt  UTF-8  LF  1 line")
}

func TestTextReporter_HidesInconsistencyLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})

	_, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "mixed.txt")
	assert.NotContains(t, buf.String(), "inconsistent line ending LF")
}

func TestTextReporter_RelativePaths(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: filepath.Join(root, "sub", "gone.txt"), Error: errors.New("missing")},
		},
		Stats: runner.Stats{FilesErrored: 1},
	}

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", WorkingDir: root})

	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), filepath.Join("sub", "gone.txt")+": error: missing")
	assert.NotContains(t, buf.String(), root)
}

func TestTextReporter_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})

	_, err := rep.Report(ctx, createTestResult())
	require.ErrorIs(t, err, context.Canceled)
}

func TestTableReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTableReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	output := buf.String()
	assert.Contains(t, output, "FILE")
	assert.Contains(t, output, "mixed.txt")
	assert.Contains(t, output, "plain.txt")
	assert.Contains(t, output, "2 files inspected | 1 mixed | 1 failed")
	assert.Contains(t, output, "textkit convert")
}

func TestTableReporter_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTableReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), "No files to inspect")
}

func TestJSONReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	var output map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "1.0.0", output["version"])
	assert.Empty(t, output["files"])
}

func TestJSONReporter_WithResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	count, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var output struct {
		Files []struct {
			Path       string `json:"path"`
			Error      string `json:"error"`
			LineEnding string `json:"lineEnding"`
			Encoding   struct {
				Encoding string `json:"encoding"`
				HasBOM   bool   `json:"hasBOM"`
			} `json:"encoding"`
			Inconsistent []struct {
				Line int    `json:"line"`
				Kind string `json:"kind"`
			} `json:"inconsistent"`
			Highlights map[string]int `json:"highlights"`
		} `json:"files"`
		Summary struct {
			FilesInspected    int            `json:"filesInspected"`
			FilesErrored      int            `json:"filesErrored"`
			InconsistentTotal int            `json:"inconsistentTotal"`
			ByLineEnding      map[string]int `json:"byLineEnding"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	require.Len(t, output.Files, 3)

	assert.Equal(t, "broken.txt", output.Files[0].Path)
	assert.Equal(t, "permission denied", output.Files[0].Error)

	mixed := output.Files[1]
	assert.Equal(t, "mixed.txt", mixed.Path)
	assert.Equal(t, "CRLF", mixed.LineEnding)
	assert.Equal(t, "UTF-8", mixed.Encoding.Encoding)
	require.Len(t, mixed.Inconsistent, 2)
	assert.Equal(t, 3, mixed.Inconsistent[0].Line)
	assert.Equal(t, "LF", mixed.Inconsistent[0].Kind)
	assert.Equal(t, 2, mixed.Highlights["keywords"])

	assert.Empty(t, output.Files[2].Inconsistent)

	assert.Equal(t, 2, output.Summary.FilesInspected)
	assert.Equal(t, 1, output.Summary.FilesErrored)
	assert.Equal(t, 2, output.Summary.InconsistentTotal)
	assert.Equal(t, map[string]int{"CRLF": 1, "LF": 1}, output.Summary.ByLineEnding)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true})

	_, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewSummaryReporter(reporter.Options{Writer: &buf, Color: "never"})

	count, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	output := buf.String()
	assert.Contains(t, output, "Encodings")
	assert.Contains(t, output, "Line Endings")
	assert.Contains(t, output, "50.0%")
	assert.Contains(t, output, "Syntaxes")
	assert.Contains(t, output, "100.0%")
	assert.Contains(t, output, "Files With Mixed Line Endings")
	assert.Contains(t, output, "Total: ")
	assert.Contains(t, output, "1 failed")
}

func TestSummaryReporter_NothingInspected(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewSummaryReporter(reporter.Options{Writer: &buf, Color: "never"})

	_, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No files inspected")
}

// createTestResult creates a result with one mixed file, one clean file, and one failure.
func createTestResult() *runner.Result {
	utf8 := fileencoding.FileEncoding{Encoding: fileencoding.UTF8}

	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "broken.txt", Error: errors.New("permission denied")},
			{
				Path: "mixed.txt",
				Report: &runner.FileReport{
					Path:       "mixed.txt",
					Encoding:   utf8,
					LineEnding: lineending.CRLF,
					LineCount:  5,
					Inconsistent: []runner.InconsistentEnding{
						{Line: 3, Location: 7, Kind: lineending.LF},
						{Line: 5, Location: 12, Kind: lineending.CR},
					},
					Syntax:       "Shell",
					SyntaxMatch:  syntax.MatchExtension,
					Highlights:   map[syntax.Type]int{syntax.Keywords: 2},
					OutlineItems: 1,
				},
			},
			{
				Path: "plain.txt",
				Report: &runner.FileReport{
					Path:       "plain.txt",
					Encoding:   utf8,
					LineEnding: lineending.LF,
					LineCount:  1,
				},
			},
		},
		Stats: runner.Stats{
			FilesDiscovered:   3,
			FilesInspected:    2,
			FilesErrored:      1,
			FilesInconsistent: 1,
			InconsistentTotal: 2,
			ByEncoding:        map[string]int{"UTF-8": 2},
			ByLineEnding:      map[string]int{"CRLF": 1, "LF": 1},
			BySyntax:          map[string]int{"Shell": 1},
		},
	}
}

package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/yaklabco/textkit/pkg/runner"
)

// jsonSchemaVersion identifies the layout of JSONOutput.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	*runner.FileReport

	Path  string `json:"path"`
	Error string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesInspected    int            `json:"filesInspected"`
	FilesErrored      int            `json:"filesErrored"`
	FilesInconsistent int            `json:"filesInconsistent"`
	InconsistentTotal int            `json:"inconsistentTotal"`
	FilesConverted    int            `json:"filesConverted"`
	ByEncoding        map[string]int `json:"byEncoding"`
	ByLineEnding      map[string]int `json:"byLineEnding"`
	BySyntax          map[string]int `json:"bySyntax"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.InconsistentTotal, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			ByEncoding:   make(map[string]int),
			ByLineEnding: make(map[string]int),
			BySyntax:     make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		entry := JSONFileResult{
			FileReport: file.Report,
			Path:       r.opts.displayPath(file.Path),
		}
		if file.Error != nil {
			entry.Error = file.Error.Error()
		}
		output.Files = append(output.Files, entry)
	}

	stats := result.Stats
	output.Summary.FilesInspected = stats.FilesInspected
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.FilesInconsistent = stats.FilesInconsistent
	output.Summary.InconsistentTotal = stats.InconsistentTotal
	output.Summary.FilesConverted = stats.FilesConverted
	maps.Copy(output.Summary.ByEncoding, stats.ByEncoding)
	maps.Copy(output.Summary.ByLineEnding, stats.ByLineEnding)
	maps.Copy(output.Summary.BySyntax, stats.BySyntax)

	return output
}

package runner

// FileOutcome wraps a FileReport with resolved path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Report is nil if the file encountered an error during processing.
	Report *FileReport

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesInspected  int
	FilesErrored    int

	// FilesInconsistent is the number of files mixing line endings.
	FilesInconsistent int

	// InconsistentTotal is the number of inconsistent line endings across all files.
	InconsistentTotal int

	// FilesConverted counts files rewritten (or planned, in dry-run mode).
	FilesConverted int

	// ByEncoding, ByLineEnding, and BySyntax count inspected files per value.
	ByEncoding   map[string]int
	ByLineEnding map[string]int
	BySyntax     map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any file could not be processed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasIssues reports whether any file mixes line endings.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesInconsistent > 0
}

func newStats() Stats {
	return Stats{
		ByEncoding:   make(map[string]int),
		ByLineEnding: make(map[string]int),
		BySyntax:     make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	report := outcome.Report
	if report == nil {
		return
	}

	r.Stats.FilesInspected++
	r.Stats.ByEncoding[report.Encoding.String()]++
	r.Stats.ByLineEnding[report.LineEnding.Name()]++
	if report.Syntax != "" {
		r.Stats.BySyntax[report.Syntax]++
	}

	if report.HasInconsistency() {
		r.Stats.FilesInconsistent++
		r.Stats.InconsistentTotal += len(report.Inconsistent)
	}

	if report.Conversion != nil {
		r.Stats.FilesConverted++
	}
}

package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOp         = "op"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Document fields.
	FieldEncoding     = "encoding"
	FieldLineEnding   = "line_ending"
	FieldLines        = "lines"
	FieldInconsistent = "inconsistent"
	FieldSyntax       = "syntax"
	FieldMatch        = "match"
	FieldBackup       = "backup"

	// Configuration fields.
	FieldJobs   = "jobs"
	FieldFormat = "format"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesInspected  = "files_inspected"
	FieldFilesFailed     = "files_failed"
	FieldFilesConverted  = "files_converted"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)

package cli

import (
	"errors"

	"github.com/yaklabco/textkit/internal/configloader"
	"github.com/yaklabco/textkit/pkg/runner"
)

// Exit codes for textkit.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssuesFound indicates inspection found mixed line endings.
	ExitIssuesFound = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration or syntax definition errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates files that could not be read, decoded, or written.
	ExitIOError = 74
)

// Sentinel errors that select an exit code.
var (
	// ErrIssuesFound is returned when files mix line endings.
	ErrIssuesFound = errors.New("inconsistent line endings found")

	// ErrFilesFailed is returned when some files could not be processed.
	ErrFilesFailed = errors.New("some files could not be processed")

	// ErrInvalidSyntax is returned when a syntax definition fails validation.
	ErrInvalidSyntax = errors.New("invalid syntax definition")

	// ErrInvalidUsage is returned for bad flag values.
	ErrInvalidUsage = errors.New("invalid usage")
)

// ExitCodeFromResult determines the exit code for a run. Files that opt
// out of line ending checks never count as issues.
func ExitCodeFromResult(result *runner.Result, failOnMixed bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() {
		return ExitIOError
	}

	if failOnMixed && countReportable(result) > 0 {
		return ExitIssuesFound
	}

	return ExitSuccess
}

// countReportable counts files mixing line endings without opting out.
func countReportable(result *runner.Result) int {
	var count int
	for _, file := range result.Files {
		if file.Report.HasInconsistency() && !file.Report.AllowsInconsistency {
			count++
		}
	}
	return count
}

// errorForExitCode maps an exit code back to the sentinel that produces it.
func errorForExitCode(code int) error {
	switch code {
	case ExitIssuesFound:
		return ErrIssuesFound
	case ExitIOError:
		return ErrFilesFailed
	default:
		return nil
	}
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if _, ok := configloader.AsValidationError(err); ok {
		return ExitConfigError
	}

	switch {
	case errors.Is(err, ErrIssuesFound):
		return ExitIssuesFound
	case errors.Is(err, ErrFilesFailed):
		return ExitIOError
	case errors.Is(err, ErrInvalidSyntax), errors.Is(err, errConfig):
		return ExitConfigError
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}

// IsSilent reports whether err only signals an exit code and needs no log
// line. Wrapped sentinels carry a message and are not silent.
func IsSilent(err error) bool {
	//nolint:errorlint // Only the bare sentinels are silent.
	return err == ErrIssuesFound || err == ErrFilesFailed
}

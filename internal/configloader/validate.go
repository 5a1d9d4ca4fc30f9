package configloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/lo"

	"github.com/yaklabco/textkit/pkg/config"
	"github.com/yaklabco/textkit/pkg/fileencoding"
	"github.com/yaklabco/textkit/pkg/fsutil"
	"github.com/yaklabco/textkit/pkg/lineending"
)

// ValidationError is one problem found in a configuration.
type ValidationError struct {
	Field    string // key path such as "encodings[1]"
	Value    any
	Message  string
	FilePath string // config file, when known
	Line     int    // line within FilePath, when known
}

func (e *ValidationError) Error() string {
	location := e.FilePath
	if location != "" && e.Line > 0 {
		location = fmt.Sprintf("%s:%d", location, e.Line)
	}

	parts := lo.Compact([]string{location, e.Field, e.Message})
	return strings.Join(parts, ": ")
}

// rootField returns the top-level key of the field path ("encodings[1]" -> "encodings").
func (e *ValidationError) rootField() string {
	root, _, _ := strings.Cut(e.Field, ".")
	root, _, _ = strings.Cut(root, "[")
	return root
}

// ValidationResult separates fatal errors from warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether no errors were found.
func (r *ValidationResult) Valid() bool { return len(r.Errors) == 0 }

// HasWarnings reports whether any warnings were found.
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// AllMessages returns errors then warnings, each prefixed with its severity.
func (r *ValidationResult) AllMessages() []string {
	prefixed := func(prefix string) func(ValidationError, int) string {
		return func(e ValidationError, _ int) string { return prefix + e.Error() }
	}
	return append(lo.Map(r.Errors, prefixed("error: ")), lo.Map(r.Warnings, prefixed("warning: "))...)
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	knownFormats = []config.OutputFormat{
		config.FormatText, config.FormatTable, config.FormatJSON, config.FormatSummary,
	}
	knownBackupModes = []fsutil.BackupMode{fsutil.BackupModeSidecar, fsutil.BackupModeNone}
)

// Validate checks every field of cfg. A nil config is valid.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	validateEncodings(cfg.Encodings, result)

	if cfg.LineEnding != "" {
		if _, err := lineending.ParseKind(cfg.LineEnding); err != nil {
			result.fail("line_ending", cfg.LineEnding,
				"invalid line ending %q; must be one of: LF, CR, CRLF, NEL, LS, PS", cfg.LineEnding)
		}
	}
	if cfg.Format != "" && !lo.Contains(knownFormats, cfg.Format) {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, table, json, summary", cfg.Format)
	}
	if cfg.Color != "" && !cfg.Color.IsValid() {
		result.fail("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if mode := fsutil.BackupMode(cfg.Backups.Mode); mode != "" && !lo.Contains(knownBackupModes, mode) {
		result.fail("backups.mode", cfg.Backups.Mode, "invalid backup mode %q; must be one of: sidecar, none", mode)
	}

	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(filepath.ToSlash(pattern), '/'); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	for i, dir := range cfg.SyntaxDirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			result.warn(fmt.Sprintf("syntax_dirs[%d]", i), dir, "syntax directory %q not found; it will be skipped", dir)
		}
	}

	return result
}

// validateEncodings requires every candidate to resolve and warns when two
// names resolve to the same encoding.
func validateEncodings(names []string, result *ValidationResult) {
	resolved := make([]fileencoding.Encoding, 0, len(names))
	for i, name := range names {
		enc, ok := fileencoding.Lookup(name)
		if !ok {
			result.fail(fmt.Sprintf("encodings[%d]", i), name, "unknown encoding %q", name)
			continue
		}
		resolved = append(resolved, enc)
	}

	for _, enc := range lo.FindDuplicates(resolved) {
		result.warn("encodings", enc.String(), "encoding %s is listed more than once; later entries are ignored", enc)
	}
}

// ValidateWithFile validates cfg and attributes every finding to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for _, list := range [][]ValidationError{result.Errors, result.Warnings} {
		for i := range list {
			list[i].FilePath = filePath
		}
	}
	return result
}

package reporter

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/textkit/pkg/config"
)

// Format selects a reporter. It shares its values with config.OutputFormat.
type Format = config.OutputFormat

// Output formats.
const (
	FormatText    = config.FormatText
	FormatTable   = config.FormatTable
	FormatJSON    = config.FormatJSON
	FormatSummary = config.FormatSummary
)

// ErrUnknownFormat is returned for format names no reporter handles.
var ErrUnknownFormat = errors.New("unknown format")

// Formats lists every format in the order shown to users.
//
//nolint:gochecknoglobals // Read-only lookup table.
var Formats = []Format{FormatText, FormatTable, FormatJSON, FormatSummary}

// ParseFormat resolves a format name, ignoring case. The empty name is text.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FormatText, nil
	}

	format := Format(name)
	if !IsValid(format) {
		return "", fmt.Errorf("%w %q; valid formats: %s", ErrUnknownFormat, name, formatNames())
	}
	return format, nil
}

// IsValid reports whether a reporter exists for format.
func IsValid(format Format) bool {
	return slices.Contains(Formats, format)
}

func formatNames() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

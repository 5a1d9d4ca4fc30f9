// Package config defines core configuration types for textkit.
// These types are plain data structures; discovery and merging live in internal/configloader.
package config

import (
	"fmt"
	"strings"

	"github.com/yaklabco/textkit/pkg/fileencoding"
	"github.com/yaklabco/textkit/pkg/lineending"
)

// BackupsConfig controls backup behavior when rewriting files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// OutputFormat specifies the output format for inspection reports.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// ColorMode controls styled terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is one of the known modes.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for textkit.
type Config struct {
	// Encodings is the candidate list for automatic encoding detection,
	// tried in order. Names are canonical names or IANA aliases.
	Encodings []string `yaml:"encodings"`

	// ReferToEncodingTag enables the in-content declaration override
	// (e.g. "charset=", "coding:"). Nil means enabled.
	ReferToEncodingTag *bool `yaml:"refer_to_encoding_tag"`

	// LineEnding is the base line ending used for files without any.
	LineEnding string `yaml:"line_ending"`

	// SyntaxDirs lists directories of extra syntax definitions (*.yml).
	SyntaxDirs []string `yaml:"syntax_dirs"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore"`

	// Extensions restricts directory discovery to these file extensions.
	// Empty means every non-binary file.
	Extensions []string `yaml:"extensions"`

	// Backups configures backup behavior when converting.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Color controls styled output.
	Color ColorMode `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		LineEnding: lineending.LF.Name(),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
		Color:  ColorAuto,
	}
}

// EncodingCandidates resolves Encodings to the detection candidate list.
// An empty list yields fileencoding.DefaultCandidates.
func (c *Config) EncodingCandidates() ([]fileencoding.Encoding, error) {
	if c == nil || len(c.Encodings) == 0 {
		return fileencoding.DefaultCandidates(), nil
	}

	candidates := make([]fileencoding.Encoding, 0, len(c.Encodings))
	for _, name := range c.Encodings {
		enc, ok := fileencoding.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", fileencoding.ErrUnknownEncoding, name)
		}
		candidates = append(candidates, enc)
	}

	return candidates, nil
}

// DefaultLineEnding resolves LineEnding, falling back to LF when unset.
func (c *Config) DefaultLineEnding() (lineending.Kind, error) {
	if c == nil || strings.TrimSpace(c.LineEnding) == "" {
		return lineending.LF, nil
	}

	kind, err := lineending.ParseKind(c.LineEnding)
	if err != nil {
		return lineending.LF, fmt.Errorf("line_ending: %w", err)
	}

	return kind, nil
}

// RefersToEncodingTag reports whether in-content declarations are honored.
func (c *Config) RefersToEncodingTag() bool {
	if c == nil || c.ReferToEncodingTag == nil {
		return true
	}

	return *c.ReferToEncodingTag
}

// DetectionOptions builds the automatic detection options for this config.
func (c *Config) DetectionOptions() (fileencoding.Options, error) {
	candidates, err := c.EncodingCandidates()
	if err != nil {
		return fileencoding.Options{}, err
	}

	return fileencoding.Options{
		Candidates:         candidates,
		ReferToDeclaration: c.RefersToEncodingTag(),
	}, nil
}

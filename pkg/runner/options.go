// Package runner provides multi-file inspection and conversion orchestration.
package runner

import (
	"fmt"
	"strings"

	"github.com/yaklabco/textkit/pkg/config"
	"github.com/yaklabco/textkit/pkg/document"
	"github.com/yaklabco/textkit/pkg/fileencoding"
	"github.com/yaklabco/textkit/pkg/fsutil"
	"github.com/yaklabco/textkit/pkg/syntax"
)

// Options controls multi-file processing behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions restricts directory walks to these extensions (case-insensitive,
	// leading dot optional). Empty means every file that is not binary.
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// IncludeVendored walks vendored dependency directories (vendor/, node_modules/, ...).
	IncludeVendored bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int
}

// OptionsFromConfig fills the discovery fields from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths}
	if cfg == nil {
		return opts
	}

	opts.Extensions = cfg.Extensions
	opts.ExcludeGlobs = cfg.Ignore
	opts.Jobs = cfg.Jobs
	return opts
}

// BackupFromConfig converts the configured backup settings.
func BackupFromConfig(cfg *config.Config) fsutil.BackupConfig {
	backup := fsutil.DefaultBackupConfig()
	if cfg == nil {
		return backup
	}

	backup.Enabled = cfg.Backups.Enabled
	if cfg.Backups.Mode != "" {
		backup.Mode = fsutil.BackupMode(cfg.Backups.Mode)
	}
	return backup
}

// LoadOptionsFromConfig builds document load options from a resolved
// configuration. A non-empty forced encoding selects a specific strategy.
func LoadOptionsFromConfig(cfg *config.Config, forced string, syntaxes *syntax.Registry) (document.LoadOptions, error) {
	opts := document.DefaultLoadOptions()
	opts.Syntaxes = syntaxes

	if cfg != nil {
		detection, err := cfg.DetectionOptions()
		if err != nil {
			return opts, fmt.Errorf("encodings: %w", err)
		}
		opts.Strategy = fileencoding.Automatic(detection)

		opts.DefaultLineEnding, err = cfg.DefaultLineEnding()
		if err != nil {
			return opts, err
		}
	}

	if forced != "" {
		enc, ok := fileencoding.Lookup(forced)
		if !ok {
			return opts, fmt.Errorf("%w: %q", fileencoding.ErrUnknownEncoding, forced)
		}
		opts.Strategy = fileencoding.Specific(enc)
	}

	return opts, nil
}

// normalizedExtensions returns the extensions lowercased with a leading dot.
func (o Options) normalizedExtensions() []string {
	exts := make([]string, 0, len(o.Extensions))
	for _, ext := range o.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return exts
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

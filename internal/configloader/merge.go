package configloader

import "github.com/yaklabco/textkit/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointers: override overwrites base if non-nil
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.LineEnding != "" {
		result.LineEnding = override.LineEnding
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.ReferToEncodingTag != nil {
		refer := *override.ReferToEncodingTag
		result.ReferToEncodingTag = &refer
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	// Only "true" is detectable on a plain bool; use mode "none" to turn backups off.
	if override.Backups.Enabled {
		result.Backups.Enabled = override.Backups.Enabled
	}

	if override.Encodings != nil {
		result.Encodings = override.Encodings
	}
	if override.SyntaxDirs != nil {
		result.SyntaxDirs = override.SyntaxDirs
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}

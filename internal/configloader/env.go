package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/textkit/pkg/config"
)

// envVarPrefix is the prefix for all textkit environment variables.
const envVarPrefix = "TEXTKIT_"

// envVar binds one TEXTKIT_ variable to the config field it overrides.
type envVar struct {
	suffix      string
	field       string
	description string
	apply       func(cfg *config.Config, value string) error
}

func stringVar(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}
}

func listVar(set func(*config.Config, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, splitList(value))
		return nil
	}
}

func boolVar(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%q is not a boolean (expected true/false/1/0)", value)
		}
		set(cfg, parsed)
		return nil
	}
}

// envMappings lists the supported variables in documentation order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = []envVar{
	{"ENCODINGS", "encodings", "Comma-separated encoding candidates, tried in order",
		listVar(func(c *config.Config, v []string) { c.Encodings = v })},
	{"REFER_TO_ENCODING_TAG", "refer_to_encoding_tag", "Honor in-file encoding declarations: true or false",
		boolVar(func(c *config.Config, v bool) { c.ReferToEncodingTag = &v })},
	{"LINE_ENDING", "line_ending", "Default line ending: LF, CR, CRLF, NEL, LS, or PS",
		stringVar(func(c *config.Config, v string) { c.LineEnding = v })},
	{"SYNTAX_DIRS", "syntax_dirs", "Comma-separated syntax definition directories",
		listVar(func(c *config.Config, v []string) { c.SyntaxDirs = v })},
	{"IGNORE", "ignore", "Comma-separated list of ignore patterns",
		listVar(func(c *config.Config, v []string) { c.Ignore = v })},
	{"EXTENSIONS", "extensions", "Comma-separated file extensions to inspect",
		listVar(func(c *config.Config, v []string) { c.Extensions = v })},
	{"JOBS", "jobs", "Number of parallel workers (0 = auto)",
		func(c *config.Config, value string) error {
			jobs, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%q is not an integer", value)
			}
			c.Jobs = jobs
			return nil
		}},
	{"FORMAT", "format", "Output format: text, table, json, or summary",
		stringVar(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) })},
	{"COLOR", "color", "Styled output: auto, always, or never",
		stringVar(func(c *config.Config, v string) { c.Color = config.ColorMode(v) })},
	{"BACKUPS_ENABLED", "backups.enabled", "Create backups when converting: true or false",
		boolVar(func(c *config.Config, v bool) { c.Backups.Enabled = v })},
	{"BACKUPS_MODE", "backups.mode", "Backup mode: sidecar or none",
		stringVar(func(c *config.Config, v string) { c.Backups.Mode = v })},
}

// LoadFromEnv applies the non-empty TEXTKIT_ variables to cfg.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, variable := range envMappings {
		name := envVarPrefix + variable.suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := variable.apply(cfg, value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	return nil
}

// splitList splits a comma-separated value, dropping blank elements.
func splitList(value string) []string {
	return lo.FilterMap(strings.Split(value, ","), func(part string, _ int) (string, bool) {
		part = strings.TrimSpace(part)
		return part, part != ""
	})
}

// GetEnvVarName returns the variable overriding field, or "".
func GetEnvVarName(field string) string {
	variable, ok := lo.Find(envMappings, func(v envVar) bool { return v.field == field })
	if !ok {
		return ""
	}
	return envVarPrefix + variable.suffix
}

// ListEnvVars maps every supported variable to its description.
func ListEnvVars() map[string]string {
	return lo.SliceToMap(envMappings, func(v envVar) (string, string) {
		return envVarPrefix + v.suffix, v.description
	})
}

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yaklabco/textkit/pkg/fileencoding"
	"github.com/yaklabco/textkit/pkg/lineending"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full lists every supported encoding and line ending in comments.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Candidate encodings for automatic detection, tried in order.
# Leave empty to use the built-in list.
# encodings:
#   - UTF-8
#   - Shift_JIS
#   - EUC-JP

# Honor in-file declarations such as "charset=" or "coding:".
refer_to_encoding_tag: true

# Line ending assumed for files that have none: LF, CR, CRLF, NEL, LS, PS
line_ending: LF

# Extra syntax definition directories (*.yml)
# syntax_dirs:
#   - ~/.config/textkit/syntaxes

# File extensions inspected when walking directories (empty = all text files)
# extensions:
#   - txt
#   - go

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# Backup configuration for convert
backups:
  enabled: true
  mode: sidecar
`)

	if opts.Full {
		writeEncodingList(&buf)
		writeLineEndingList(&buf)
	}

	return buf.Bytes(), nil
}

func writeEncodingList(buf *bytes.Buffer) {
	buf.WriteString("\n# Supported encodings:\n")
	for _, enc := range fileencoding.All() {
		fmt.Fprintf(buf, "#   %s\n", wrapComment(fmt.Sprintf("%s (%s)", enc.String(), enc.Label()), commentWrapWidth))
	}
}

func writeLineEndingList(buf *bytes.Buffer) {
	buf.WriteString("\n# Supported line endings:\n")
	for _, kind := range lineending.Kinds {
		fmt.Fprintf(buf, "#   %-4s %s\n", kind.Name(), kind.Label())
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n#   ")
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	cfg := NewConfig()
	encodings := make([]string, 0, len(fileencoding.DefaultCandidates()))
	for _, enc := range fileencoding.DefaultCandidates() {
		encodings = append(encodings, enc.String())
	}

	doc := map[string]any{
		"encodings":             encodings,
		"refer_to_encoding_tag": true,
		"line_ending":           cfg.LineEnding,
		"syntax_dirs":           []string{},
		"extensions":            []string{},
		"ignore":                []string{"vendor/**", "node_modules/**"},
		"backups": map[string]any{
			"enabled": cfg.Backups.Enabled,
			"mode":    cfg.Backups.Mode,
		},
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# textkit configuration
# See: https://github.com/yaklabco/textkit`
}

// Package cli provides the Cobra command structure for textkit.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/yaklabco/textkit/internal/ui/pretty"
)

// exampleIndent marks example lines in long descriptions.
const exampleIndent = "  textkit "

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable }}
  {{ command .UseLine }}{{ end }}
{{- if .HasAvailableSubCommands }}
  {{ command .CommandPath }} [command]{{ end }}

{{- if gt (len .Aliases) 0 }}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end }}

{{- if .HasExample }}

{{ heading "Examples:" }}
{{ examples .Example }}
{{- end }}

{{- if .HasAvailableSubCommands }}

{{ heading "Commands:" }}{{ range .Commands }}{{ if (or .IsAvailableCommand (eq .Name "help")) }}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{ end }}{{ end }}
{{- end }}

{{- if .HasAvailableLocalFlags }}

{{ heading "Flags:" }}
{{ flags .LocalFlags.FlagUsages }}
{{- end }}

{{- if .HasAvailableInheritedFlags }}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags.FlagUsages }}
{{- end }}

{{- if .HasAvailableSubCommands }}

Run "{{ command (print .CommandPath " [command] --help") }}" for details on a command.
{{- end }}
`

const helpTemplate = `{{ with (or .Long .Short) }}{{ describe . }}

{{ end }}` + usageTemplate

// HelpFormatter renders Cobra help with the report styles.
type HelpFormatter struct {
	styles *pretty.Styles
}

// NewHelpFormatter creates a help formatter for writer in the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))}
}

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":    h.styles.SummaryTitle.Render,
		"command":    h.styles.Command.Render,
		"subcommand": h.styles.Syntax.Render,
		"dim":        h.styles.Dim.Render,
		"join":       strings.Join,
		"rpad":       rpad,
		"flags":      h.flagUsages,
		"examples":   h.styles.Dim.Render,
		"describe":   h.describe,
	}
}

// ApplyToCommand installs the styled templates on cmd. Subcommands inherit
// them. The --color flag, when present, is resolved against the command's
// output writer each time help is shown.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := h.forCommand(c).render(c, usageTemplate); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := h.forCommand(c).render(c, helpTemplate); err != nil {
			c.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) forCommand(c *cobra.Command) *HelpFormatter {
	flag := c.Flags().Lookup("color")
	if flag == nil {
		return h
	}
	return NewHelpFormatter(flag.Value.String(), c.OutOrStdout())
}

func (h *HelpFormatter) render(c *cobra.Command, text string) error {
	tmpl, err := template.New(c.Name()).Funcs(h.funcs()).Parse(text)
	if err != nil {
		return err
	}
	return tmpl.Execute(c.OutOrStdout(), c)
}

// describe styles the example lines of a long description: the invocation
// as a command and the trailing note, separated by two or more spaces, dimmed.
func (h *HelpFormatter) describe(text string) string {
	lines := strings.Split(strings.TrimRight(text, " \t\n"), "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		lines[i] = line
		if !strings.HasPrefix(line, exampleIndent) {
			continue
		}

		rest := strings.TrimPrefix(line, "  ")
		invocation, note, found := strings.Cut(rest, "  ")
		if !found {
			lines[i] = "  " + h.styles.Command.Render(rest)
			continue
		}

		remark := strings.TrimLeft(note, " ")
		gap := note[:len(note)-len(remark)]
		lines[i] = "  " + h.styles.Command.Render(invocation) + "  " + gap + h.styles.Dim.Render(remark)
	}
	return strings.Join(lines, "\n")
}

// flagUsages colors the flag names in pflag's usage listing. pflag
// separates the flag column from the description with at least two spaces
// and pads it so descriptions line up; the padding is kept as is.
func (h *HelpFormatter) flagUsages(usages string) string {
	lines := strings.Split(strings.TrimRight(usages, "\n"), "\n")
	for i, line := range lines {
		body := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(body)]

		column, description, found := strings.Cut(body, "  ")
		if !found {
			continue
		}

		tokens := strings.Fields(column)
		for j, token := range tokens {
			name := strings.TrimSuffix(token, ",")
			if strings.HasPrefix(name, "-") {
				tokens[j] = h.styles.Keyword.Render(name) + token[len(name):]
			} else {
				tokens[j] = h.styles.Dim.Render(token)
			}
		}

		lines[i] = indent + strings.Join(tokens, " ") + "  " + description
	}
	return strings.Join(lines, "\n")
}

func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

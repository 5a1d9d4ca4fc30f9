package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/textkit/internal/ui/pretty"
	"github.com/yaklabco/textkit/pkg/config"
	"github.com/yaklabco/textkit/pkg/syntax"
)

func newSyntaxCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "syntax",
		Short: "List, show, and validate syntax definitions",
		Long: `Work with syntax definitions.

Bundled definitions are always available. Definitions in the user syntax
directory and in the directories listed under syntax_dirs in the
configuration override bundled ones with the same name.`,
	}

	cmd.AddCommand(newSyntaxListCommand())
	cmd.AddCommand(newSyntaxShowCommand())
	cmd.AddCommand(newSyntaxValidateCommand())

	return cmd
}

type syntaxListEntry struct {
	Name         string      `json:"name"`
	Kind         syntax.Kind `json:"kind"`
	Extensions   []string    `json:"extensions,omitempty"`
	Filenames    []string    `json:"filenames,omitempty"`
	Interpreters []string    `json:"interpreters,omitempty"`
}

func newSyntaxListCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available syntaxes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := newSession(cmd, &config.Config{})
			if err != nil {
				return err
			}

			entries := lo.Map(sess.syntaxes.Definitions(), func(def *syntax.Definition, _ int) syntaxListEntry {
				return syntaxListEntry{
					Name:         def.Name,
					Kind:         def.Kind,
					Extensions:   values(def.Extensions),
					Filenames:    values(def.Filenames),
					Interpreters: values(def.Interpreters),
				}
			})

			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(entries); err != nil {
					return fmt.Errorf("encode syntaxes: %w", err)
				}
				return nil
			}

			styles := pretty.NewStyles(pretty.IsColorEnabled(sess.color, cmd.OutOrStdout()))
			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush()

			for _, entry := range entries {
				matches := append(lo.Map(entry.Extensions, func(ext string, _ int) string { return "." + ext }), entry.Filenames...)
				fmt.Fprintf(out, "%-20s %-8s %s\n",
					styles.Syntax.Render(entry.Name),
					string(entry.Kind),
					styles.Dim.Render(strings.Join(matches, " ")),
				)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return cmd
}

func newSyntaxShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a syntax definition as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(cmd, &config.Config{})
			if err != nil {
				return err
			}

			def, ok := sess.syntaxes.Get(args[0])
			if !ok {
				return fmt.Errorf("%w: unknown syntax %q", ErrInvalidUsage, args[0])
			}

			data, err := def.Marshal()
			if err != nil {
				return fmt.Errorf("marshal syntax: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newSyntaxValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [files...]",
		Short: "Check syntax definitions for invalid patterns",
		Long: `Check syntax definitions for duplicated words, empty or invalid
regular expressions, and incomplete block comment delimiters.

Without arguments every loaded definition is checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSyntaxValidate(cmd, args)
		},
	}
}

func runSyntaxValidate(cmd *cobra.Command, paths []string) error {
	sess, err := newSession(cmd, &config.Config{})
	if err != nil {
		return err
	}

	defs := sess.syntaxes.Definitions()
	if len(paths) > 0 {
		defs = make([]*syntax.Definition, 0, len(paths))
		for _, path := range paths {
			def, err := syntax.LoadFile(sess.ctx, path)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidSyntax, err)
			}
			defs = append(defs, def)
		}
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(sess.color, cmd.OutOrStdout()))
	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	invalid := 0
	for _, def := range defs {
		problems := def.Validate()
		if len(problems) == 0 {
			fmt.Fprintf(out, "%s  %s\n", styles.Syntax.Render(def.Name), styles.Success.Render("ok"))
			continue
		}

		invalid++
		fmt.Fprintf(out, "%s  %s\n", styles.Syntax.Render(def.Name),
			styles.Failure.Render(fmt.Sprintf("%d problems", len(problems))))
		for _, problem := range problems {
			fmt.Fprintf(out, "  %s  %s\n", styles.Error.Render(string(problem.Code)), problem.Error())
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d definitions", ErrInvalidSyntax, invalid, len(defs))
	}
	return nil
}

func values(list []syntax.KeyString) []string {
	return lo.Map(list, func(k syntax.KeyString, _ int) string { return k.Value })
}

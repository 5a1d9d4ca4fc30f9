package cli

import (
	"bufio"
	"cmp"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/textkit/internal/ui/pretty"
	"github.com/yaklabco/textkit/pkg/config"
	"github.com/yaklabco/textkit/pkg/document"
	"github.com/yaklabco/textkit/pkg/runner"
	"github.com/yaklabco/textkit/pkg/syntax"
	"github.com/yaklabco/textkit/pkg/textrange"
)

type highlightFlags struct {
	syntaxName string
	types      []string
	outline    bool
	encoding   string
}

func newHighlightCommand() *cobra.Command {
	flags := &highlightFlags{}

	cmd := &cobra.Command{
		Use:   "highlight <file>",
		Short: "Print the syntax highlight ranges of a file",
		Long: `Parse a file with its syntax definition and print every highlighted range.

The syntax is picked from the file name, interpreter line, or content
unless --syntax names one. Positions are printed as line:column, counted
in characters.

Examples:
  textkit highlight main.go
  textkit highlight --type comments,strings script.sh
  textkit highlight --outline notes.md
  textkit highlight --syntax Shell build`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHighlight(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.syntaxName, "syntax", "", "syntax to use instead of detecting one")
	cmd.Flags().StringSliceVar(&flags.types, "type", nil, "only print these highlight types")
	cmd.Flags().BoolVar(&flags.outline, "outline", false, "print the outline instead of highlights")
	cmd.Flags().StringVar(&flags.encoding, "encoding", "", "read the file with this encoding")

	return cmd
}

type highlightEntry struct {
	typ syntax.Type
	rng textrange.Range
}

func runHighlight(cmd *cobra.Command, path string, flags *highlightFlags) error {
	sess, err := newSession(cmd, &config.Config{})
	if err != nil {
		return err
	}
	ctx := sess.ctx

	types, err := parseTypes(flags.types)
	if err != nil {
		return err
	}

	loadOpts, err := runner.LoadOptionsFromConfig(sess.config(), flags.encoding, sess.syntaxes)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	doc, err := document.Load(ctx, path, loadOpts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFilesFailed, err)
	}

	def := doc.Syntax
	if flags.syntaxName != "" {
		named, ok := sess.syntaxes.Get(flags.syntaxName)
		if !ok {
			return fmt.Errorf("%w: unknown syntax %q", ErrInvalidUsage, flags.syntaxName)
		}
		def = named
	}
	if def == nil {
		return fmt.Errorf("%w: no syntax matches %s; use --syntax", ErrInvalidUsage, path)
	}

	parser, err := syntax.NewParser(def, syntax.WithConcurrency(sess.config().Jobs))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSyntax, err)
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(sess.color, cmd.OutOrStdout()))
	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	runes := doc.Runes()

	fmt.Fprintf(out, "%s  %s\n", styles.FilePath.Render(path), styles.Syntax.Render(def.Name))

	if flags.outline {
		items, err := parser.Outline(ctx, runes)
		if err != nil {
			return fmt.Errorf("outline: %w", err)
		}
		for _, item := range items {
			if item.IsSeparator() {
				fmt.Fprintln(out, styles.Dim.Render("  ---"))
				continue
			}
			fmt.Fprintf(out, "  %s  %s\n", styles.Location.Render(position(doc, item.Range.Location)), item.Title)
		}
		return nil
	}

	highlights, err := parser.Parse(ctx, runes, textrange.New(0, len(runes)))
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	var entries []highlightEntry
	for typ, ranges := range highlights {
		if len(types) > 0 && !slices.Contains(types, typ) {
			continue
		}
		entries = append(entries, lo.Map(ranges, func(rng textrange.Range, _ int) highlightEntry {
			return highlightEntry{typ: typ, rng: rng}
		})...)
	}
	slices.SortFunc(entries, func(a, b highlightEntry) int {
		return cmp.Or(
			cmp.Compare(a.rng.Location, b.rng.Location),
			cmp.Compare(slices.Index(syntax.AllTypes, a.typ), slices.Index(syntax.AllTypes, b.typ)),
		)
	})

	for _, entry := range entries {
		text := string(runes[entry.rng.Location:entry.rng.End()])
		fmt.Fprint(out, styles.FormatHighlightRange(entry.typ, position(doc, entry.rng.Location), text))
	}

	return nil
}

// position formats a character index as 1-based line:column.
func position(doc *document.Document, index int) string {
	line := doc.Lines.LineNumber(index)
	column := index - doc.Lines.LineStartIndex(index) + 1
	return fmt.Sprintf("%d:%d", line, column)
}

func parseTypes(names []string) ([]syntax.Type, error) {
	types := make([]syntax.Type, 0, len(names))
	for _, name := range names {
		typ := syntax.Type(name)
		if !typ.IsValid() {
			return nil, fmt.Errorf("%w: unknown highlight type %q", ErrInvalidUsage, name)
		}
		types = append(types, typ)
	}
	return types, nil
}

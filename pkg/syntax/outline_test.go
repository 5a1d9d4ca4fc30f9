package syntax_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/textkit/pkg/syntax"
	"github.com/yaklabco/textkit/pkg/textrange"
)

func TestParser_Outline(t *testing.T) {
	t.Parallel()

	registry, err := syntax.Builtin(context.Background())
	require.NoError(t, err)

	def, ok := registry.Get("go")
	require.True(t, ok)

	parser, err := syntax.NewParser(def)
	require.NoError(t, err)

	text := []rune("package main\n\nfunc Foo() {}\n\ntype Bar struct{}\n\nfunc (b *Bar) Baz() {}\n")

	items, err := parser.Outline(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, []syntax.OutlineItem{
		{Title: "Foo", Range: textrange.New(14, 8), Bold: true},
		{Title: "Bar", Range: textrange.New(29, 8), Italic: true},
		{Title: "Baz", Range: textrange.New(48, 17), Bold: true},
	}, items)
}

func TestParser_OutlineTemplates(t *testing.T) {
	t.Parallel()

	text := []rune("# a\n## b\ntext\n## c\n---\n")

	tests := []struct {
		name     string
		outline  syntax.Outline
		expected []string
	}{
		{
			name:     "group substitution",
			outline:  syntax.Outline{Pattern: `^## (.+)$`, Template: "$1"},
			expected: []string{"b", "c"},
		},
		{
			name:     "line numbers",
			outline:  syntax.Outline{Pattern: `^## (.+)$`, Template: "$LN: $1"},
			expected: []string{"2: b", "4: c"},
		},
		{
			name:     "escaped dollar",
			outline:  syntax.Outline{Pattern: `^## (.+)$`, Template: `\$1 $1`},
			expected: []string{"$1 b", "$1 c"},
		},
		{
			name:     "missing group",
			outline:  syntax.Outline{Pattern: `^## (.+)$`, Template: "[$7]"},
			expected: []string{"[]", "[]"},
		},
		{
			name:     "no template uses the match",
			outline:  syntax.Outline{Pattern: `^## .+$`},
			expected: []string{"## b", "## c"},
		},
		{
			name:     "ignore case",
			outline:  syntax.Outline{Pattern: `^TEXT$`, IgnoreCase: true},
			expected: []string{"text"},
		},
		{
			name:     "separator",
			outline:  syntax.Outline{Pattern: `^---$`, Template: syntax.SeparatorTitle},
			expected: []string{"-"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parser, err := syntax.NewParser(&syntax.Definition{Name: "Outline", Outlines: []syntax.Outline{tt.outline}})
			require.NoError(t, err)

			items, err := parser.Outline(context.Background(), text)
			require.NoError(t, err)

			titles := make([]string, 0, len(items))
			for _, item := range items {
				titles = append(titles, item.Title)
			}

			assert.Equal(t, tt.expected, titles)
		})
	}
}

func TestParser_OutlineFoldsLineBreaks(t *testing.T) {
	t.Parallel()

	parser, err := syntax.NewParser(&syntax.Definition{
		Name:     "Multi",
		Outlines: []syntax.Outline{{Pattern: `<h>[^<]*</h>`}},
	})
	require.NoError(t, err)

	items, err := parser.Outline(context.Background(), []rune("<h>one\r\ntwo</h>"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "<h>one two</h>", items[0].Title)
	assert.False(t, items[0].IsSeparator())
}

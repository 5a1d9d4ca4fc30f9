// Package syntax loads syntax definition files and runs their highlight
// terms over text.
//
// A definition is a YAML document listing lexical terms per highlight type
// (keywords, strings, comments and so on) together with comment
// delimiters, outline patterns, completion words, and the file names,
// extensions, and interpreters it applies to.
package syntax

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/textkit/pkg/fsutil"
	"github.com/yaklabco/textkit/pkg/highlight"
)

// Kind is the broad category of a syntax.
type Kind string

// Syntax kinds.
const (
	KindGeneral Kind = "general"
	KindCode    Kind = "code"
)

// Type is a highlight category.
type Type string

// Highlight types, in drawing order.
const (
	Keywords   Type = "keywords"
	Commands   Type = "commands"
	Types      Type = "types"
	Attributes Type = "attributes"
	Variables  Type = "variables"
	Values     Type = "values"
	Numbers    Type = "numbers"
	Strings    Type = "strings"
	Characters Type = "characters"
	Comments   Type = "comments"
)

// AllTypes lists every highlight type in drawing order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var AllTypes = []Type{
	Keywords, Commands, Types, Attributes, Variables,
	Values, Numbers, Strings, Characters, Comments,
}

// IsValid reports whether t is a known highlight type.
func (t Type) IsValid() bool {
	return slices.Contains(AllTypes, t)
}

// Highlight is a term with an optional human description.
type Highlight struct {
	highlight.Term `yaml:",inline"`

	Description string `yaml:"description,omitempty"`
}

// CommentDelimiters holds the inline and block comment delimiters.
type CommentDelimiters struct {
	Inline     string `yaml:"inlineDelimiter,omitempty"`
	BlockBegin string `yaml:"beginDelimiter,omitempty"`
	BlockEnd   string `yaml:"endDelimiter,omitempty"`
}

// IsEmpty reports whether no delimiter is set.
func (c CommentDelimiters) IsEmpty() bool {
	return c.Inline == "" && c.BlockBegin == "" && c.BlockEnd == ""
}

// HasBlock reports whether both block delimiters are set.
func (c CommentDelimiters) HasBlock() bool {
	return c.BlockBegin != "" && c.BlockEnd != ""
}

// Outline is a pattern whose matches become outline items.
type Outline struct {
	Pattern     string `yaml:"beginString"`
	Template    string `yaml:"keyString,omitempty"`
	IgnoreCase  bool   `yaml:"ignoreCase,omitempty"`
	Bold        bool   `yaml:"bold,omitempty"`
	Italic      bool   `yaml:"italic,omitempty"`
	Underline   bool   `yaml:"underline,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// KeyString is a single string entry.
type KeyString struct {
	Value string `yaml:"keyString"`
}

// Metadata describes the definition file itself.
type Metadata struct {
	Version         string `yaml:"version,omitempty"`
	LastModified    string `yaml:"lastModified,omitempty"`
	DistributionURL string `yaml:"distributionURL,omitempty"`
	Author          string `yaml:"author,omitempty"`
	License         string `yaml:"license,omitempty"`
	Description     string `yaml:"description,omitempty"`
}

// Definition is a parsed syntax definition file.
type Definition struct {
	// Name is the syntax name, taken from the file name when loaded from disk.
	Name string `yaml:"-"`

	Kind Kind `yaml:"kind,omitempty"`

	Keywords   []Highlight `yaml:"keywords,omitempty"`
	Commands   []Highlight `yaml:"commands,omitempty"`
	Types      []Highlight `yaml:"types,omitempty"`
	Attributes []Highlight `yaml:"attributes,omitempty"`
	Variables  []Highlight `yaml:"variables,omitempty"`
	Values     []Highlight `yaml:"values,omitempty"`
	Numbers    []Highlight `yaml:"numbers,omitempty"`
	Strings    []Highlight `yaml:"strings,omitempty"`
	Characters []Highlight `yaml:"characters,omitempty"`
	Comments   []Highlight `yaml:"comments,omitempty"`

	CommentDelimiters CommentDelimiters `yaml:"commentDelimiters,omitempty"`
	Outlines          []Outline         `yaml:"outlines,omitempty"`
	Completions       []KeyString       `yaml:"completions,omitempty"`
	Filenames         []KeyString       `yaml:"filenames,omitempty"`
	Extensions        []KeyString       `yaml:"extensions,omitempty"`
	Interpreters      []KeyString       `yaml:"interpreters,omitempty"`
	Metadata          Metadata          `yaml:"metadata,omitempty"`
}

// ErrEmptyName is returned when a definition has no name.
var ErrEmptyName = errors.New("syntax name is empty")

// Parse decodes a YAML definition. An empty document yields an empty
// definition of kind general.
func Parse(name string, data []byte) (*Definition, error) {
	def := &Definition{Name: name}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(def); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse syntax %q: %w", name, err)
	}

	if def.Kind == "" {
		def.Kind = KindGeneral
	}

	return def, nil
}

// LoadFile reads and parses the definition at path. The syntax name is the
// file name without its extension.
func LoadFile(ctx context.Context, path string) (*Definition, error) {
	data, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load syntax: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return Parse(name, data)
}

// Marshal encodes the definition as YAML.
func (d *Definition) Marshal() ([]byte, error) {
	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(d); err != nil {
		return nil, fmt.Errorf("encode syntax %q: %w", d.Name, err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode syntax %q: %w", d.Name, err)
	}

	return buf.Bytes(), nil
}

// Highlights returns the terms registered for t.
func (d *Definition) Highlights(t Type) []Highlight {
	switch t {
	case Keywords:
		return d.Keywords
	case Commands:
		return d.Commands
	case Types:
		return d.Types
	case Attributes:
		return d.Attributes
	case Variables:
		return d.Variables
	case Values:
		return d.Values
	case Numbers:
		return d.Numbers
	case Strings:
		return d.Strings
	case Characters:
		return d.Characters
	case Comments:
		return d.Comments
	default:
		return nil
	}
}

// Sanitize drops terms with an empty begin string and sorts each type's
// terms and the key string lists case-insensitively.
func (d *Definition) Sanitize() {
	for _, t := range AllTypes {
		list := d.highlightsRef(t)
		*list = slices.DeleteFunc(*list, func(h Highlight) bool { return h.Begin == "" })
		slices.SortStableFunc(*list, compareHighlights)
	}

	for _, list := range []*[]KeyString{&d.Completions, &d.Filenames, &d.Extensions, &d.Interpreters} {
		*list = slices.DeleteFunc(*list, func(k KeyString) bool { return k.Value == "" })
		slices.SortStableFunc(*list, func(a, b KeyString) int {
			return cmp.Compare(strings.ToLower(a.Value), strings.ToLower(b.Value))
		})
	}
}

func (d *Definition) highlightsRef(t Type) *[]Highlight {
	switch t {
	case Keywords:
		return &d.Keywords
	case Commands:
		return &d.Commands
	case Types:
		return &d.Types
	case Attributes:
		return &d.Attributes
	case Variables:
		return &d.Variables
	case Values:
		return &d.Values
	case Numbers:
		return &d.Numbers
	case Strings:
		return &d.Strings
	case Characters:
		return &d.Characters
	default:
		return &d.Comments
	}
}

func compareHighlights(a, b Highlight) int {
	if c := cmp.Compare(strings.ToLower(a.Begin), strings.ToLower(b.Begin)); c != 0 {
		return c
	}

	return cmp.Compare(strings.ToLower(a.End), strings.ToLower(b.End))
}

// CompletionWords returns the completion list. When none is declared, the
// literal single words of every type are used instead.
func (d *Definition) CompletionWords() []string {
	if len(d.Completions) > 0 {
		return keyStrings(d.Completions)
	}

	var words []string

	seen := make(map[string]struct{})

	for _, t := range AllTypes {
		for _, h := range d.Highlights(t) {
			if h.Variant() != highlight.LiteralWord {
				continue
			}

			word := strings.TrimSpace(h.Begin)
			if word == "" {
				continue
			}

			if _, ok := seen[word]; ok {
				continue
			}

			seen[word] = struct{}{}
			words = append(words, word)
		}
	}

	slices.SortFunc(words, func(a, b string) int {
		return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
	})

	return words
}

func keyStrings(list []KeyString) []string {
	values := make([]string, 0, len(list))
	for _, k := range list {
		values = append(values, k.Value)
	}

	return values
}

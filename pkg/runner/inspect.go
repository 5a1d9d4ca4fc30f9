package runner

import (
	"context"
	"fmt"
	"sync"

	"github.com/yaklabco/textkit/internal/logging"
	"github.com/yaklabco/textkit/pkg/document"
	"github.com/yaklabco/textkit/pkg/fileencoding"
	"github.com/yaklabco/textkit/pkg/fsutil"
	"github.com/yaklabco/textkit/pkg/lineending"
	"github.com/yaklabco/textkit/pkg/syntax"
	"github.com/yaklabco/textkit/pkg/textrange"
)

// InconsistentEnding is a line ending that differs from the file's major one.
type InconsistentEnding struct {
	// Line is the 1-based line the ending terminates.
	Line int `json:"line"`

	// Location is the character index of the ending.
	Location int `json:"location"`

	Kind lineending.Kind `json:"kind"`
}

// Conversion describes a rewrite performed (or planned, in dry-run mode).
type Conversion struct {
	FromEncoding   fileencoding.FileEncoding `json:"fromEncoding"`
	ToEncoding     fileencoding.FileEncoding `json:"toEncoding"`
	FromLineEnding lineending.Kind           `json:"fromLineEnding"`
	ToLineEnding   lineending.Kind           `json:"toLineEnding"`
	Written        bool                      `json:"written"`
	BackupCreated  bool                      `json:"backupCreated"`
}

// FileReport is the inspection result for one file.
type FileReport struct {
	Path         string                    `json:"path"`
	Size         int64                     `json:"size"`
	Encoding     fileencoding.FileEncoding `json:"encoding"`
	LineEnding   lineending.Kind           `json:"lineEnding"`
	LineCount    int                       `json:"lineCount"`
	Inconsistent []InconsistentEnding      `json:"inconsistent,omitempty"`

	// AllowsInconsistency is set when the file opts out of line ending checks.
	AllowsInconsistency bool `json:"allowsInconsistency,omitempty"`

	Syntax      string             `json:"syntax,omitempty"`
	SyntaxMatch syntax.MatchReason `json:"syntaxMatch,omitempty"`

	// Highlights counts highlighted ranges per type when highlighting is enabled.
	Highlights   map[syntax.Type]int `json:"highlights,omitempty"`
	OutlineItems int                 `json:"outlineItems,omitempty"`

	Conversion *Conversion `json:"conversion,omitempty"`
}

// HasInconsistency reports whether the file mixes line endings.
func (r *FileReport) HasInconsistency() bool {
	return r != nil && len(r.Inconsistent) > 0
}

// ConvertOptions selects the target of a conversion. Nil fields keep the
// file's current value.
type ConvertOptions struct {
	Encoding   *fileencoding.FileEncoding
	LineEnding *lineending.Kind
	Backup     fsutil.BackupConfig

	// DryRun reports the planned conversion without writing.
	DryRun bool
}

// Inspector loads a file and describes its encoding, line endings, and syntax.
type Inspector struct {
	load      document.LoadOptions
	highlight bool
	convert   *ConvertOptions

	mu      sync.Mutex
	parsers map[string]*syntax.Parser
}

// InspectorOption configures an Inspector.
type InspectorOption func(*Inspector)

// WithHighlights counts syntax highlight ranges and outline items for files
// with a matched syntax.
func WithHighlights() InspectorOption {
	return func(i *Inspector) {
		i.highlight = true
	}
}

// WithConversion rewrites files whose encoding or line endings differ from the target.
func WithConversion(opts ConvertOptions) InspectorOption {
	return func(i *Inspector) {
		i.convert = &opts
	}
}

// NewInspector creates an Inspector that loads files with load.
func NewInspector(load document.LoadOptions, opts ...InspectorOption) *Inspector {
	inspector := &Inspector{
		load:    load,
		parsers: make(map[string]*syntax.Parser),
	}
	for _, opt := range opts {
		opt(inspector)
	}
	return inspector
}

// InspectFile loads path and builds its report.
func (i *Inspector) InspectFile(ctx context.Context, path string) (*FileReport, error) {
	doc, err := document.Load(ctx, path, i.load)
	if err != nil {
		return nil, err
	}

	report := &FileReport{
		Path:                path,
		Size:                doc.Attributes.Size,
		Encoding:            doc.Encoding,
		LineEnding:          doc.LineEnding,
		LineCount:           doc.Lines.LineCount(),
		AllowsInconsistency: doc.Attributes.AllowsInconsistentLineEndings,
		SyntaxMatch:         doc.SyntaxMatch,
	}

	for _, occurrence := range doc.InconsistentLineEndings() {
		report.Inconsistent = append(report.Inconsistent, InconsistentEnding{
			Line:     doc.Lines.LineNumber(occurrence.Range.Location),
			Location: occurrence.Range.Location,
			Kind:     occurrence.Kind,
		})
	}

	if doc.Syntax != nil {
		report.Syntax = doc.Syntax.Name
		if i.highlight {
			if err := i.countHighlights(ctx, doc, report); err != nil {
				return nil, err
			}
		}
	}

	if i.convert != nil {
		conversion, err := i.convertDocument(ctx, doc)
		if err != nil {
			return nil, err
		}
		report.Conversion = conversion
	}

	return report, nil
}

func (i *Inspector) countHighlights(ctx context.Context, doc *document.Document, report *FileReport) error {
	parser, err := i.parser(doc.Syntax)
	if err != nil {
		return err
	}

	runes := doc.Runes()
	highlights, err := parser.Parse(ctx, runes, textrange.New(0, len(runes)))
	if err != nil {
		return err
	}

	report.Highlights = make(map[syntax.Type]int, len(highlights))
	for kind, ranges := range highlights {
		report.Highlights[kind] = len(ranges)
	}

	outline, err := parser.Outline(ctx, runes)
	if err != nil {
		return err
	}
	report.OutlineItems = len(outline)

	return nil
}

// parser returns a cached parser for the definition.
func (i *Inspector) parser(def *syntax.Definition) (*syntax.Parser, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if parser, ok := i.parsers[def.Name]; ok {
		return parser, nil
	}

	// Files are already processed concurrently, so extract sequentially.
	parser, err := syntax.NewParser(def, syntax.WithConcurrency(1))
	if err != nil {
		return nil, err
	}
	i.parsers[def.Name] = parser
	return parser, nil
}

// convertDocument rewrites doc when its encoding or line endings differ from
// the target. It returns nil when the file already conforms.
func (i *Inspector) convertDocument(ctx context.Context, doc *document.Document) (*Conversion, error) {
	conversion := &Conversion{
		FromEncoding:   doc.Encoding,
		ToEncoding:     doc.Encoding,
		FromLineEnding: doc.LineEnding,
		ToLineEnding:   doc.LineEnding,
	}
	if i.convert.Encoding != nil {
		conversion.ToEncoding = *i.convert.Encoding
	}
	if i.convert.LineEnding != nil {
		conversion.ToLineEnding = *i.convert.LineEnding
	}

	lineEndingChanges := i.convert.LineEnding != nil &&
		(conversion.ToLineEnding != doc.LineEnding || doc.Lines.HasInconsistency())
	encodingChanges := conversion.ToEncoding != doc.Encoding

	if !lineEndingChanges && !encodingChanges {
		return nil, nil //nolint:nilnil // Nothing to convert.
	}

	if i.convert.DryRun {
		return conversion, nil
	}

	result, err := doc.Save(ctx, doc.Text(), document.SaveOptions{
		Encoding:      i.convert.Encoding,
		LineEnding:    i.convert.LineEnding,
		Backup:        i.convert.Backup,
		CheckModified: true,
	})
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}

	conversion.Written = true
	conversion.BackupCreated = result.BackupCreated

	logging.FromContext(ctx).Debug("converted",
		logging.FieldPath, doc.Path,
		logging.FieldEncoding, conversion.ToEncoding.String(),
		logging.FieldLineEnding, conversion.ToLineEnding.Name(),
		logging.FieldBackup, result.BackupCreated,
	)

	return conversion, nil
}

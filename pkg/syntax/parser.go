package syntax

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dlclark/regexp2"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/textkit/pkg/highlight"
	"github.com/yaklabco/textkit/pkg/textrange"
)

// inlineCommentTail matches the rest of a line after an inline comment delimiter.
const inlineCommentTail = `[^\r\n\u0085\u2028\u2029]*`

// Highlights maps each highlight type to its matched ranges.
type Highlights map[Type][]textrange.Range

// Parser runs the terms of a definition over text.
//
// A Parser is immutable after construction and safe for concurrent use.
type Parser struct {
	name       string
	extractors map[Type][]highlight.Extractor
	outlines   []outlineExtractor
	limit      int
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithConcurrency bounds the number of highlight types extracted at once.
// Zero or negative means unbounded.
func WithConcurrency(n int) ParserOption {
	return func(p *Parser) {
		p.limit = n
	}
}

// NewParser compiles every term in d. Literal single words of a type are
// grouped into one word extractor. Comment delimiters contribute to the
// comments type.
//
// All compile failures are reported together.
func NewParser(d *Definition, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		name:       d.Name,
		extractors: make(map[Type][]highlight.Extractor, len(AllTypes)),
	}

	for _, opt := range opts {
		opt(p)
	}

	var errs []error

	for _, t := range AllTypes {
		extractors, err := buildExtractors(d.Highlights(t))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t, err))
		}

		if len(extractors) > 0 {
			p.extractors[t] = extractors
		}
	}

	comments, err := commentExtractors(d.CommentDelimiters)
	if err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", Comments, err))
	}

	p.extractors[Comments] = append(p.extractors[Comments], comments...)
	if len(p.extractors[Comments]) == 0 {
		delete(p.extractors, Comments)
	}

	for _, outline := range d.Outlines {
		if outline.Pattern == "" {
			continue
		}

		re, err := compileOutline(outline)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ScopeOutlines, err))

			continue
		}

		p.outlines = append(p.outlines, outlineExtractor{re: re, outline: outline})
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("syntax %q: %w", d.Name, errors.Join(errs...))
	}

	return p, nil
}

func buildExtractors(highlights []Highlight) ([]highlight.Extractor, error) {
	var (
		extractors      []highlight.Extractor
		words           []string
		ignoreCaseWords []string
		errs            []error
	)

	for _, h := range highlights {
		if h.Begin == "" {
			continue
		}

		if h.Variant() == highlight.LiteralWord {
			if h.IgnoreCase {
				ignoreCaseWords = append(ignoreCaseWords, h.Begin)
			} else {
				words = append(words, h.Begin)
			}

			continue
		}

		extractor, err := highlight.NewExtractor(h.Term)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		extractors = append(extractors, extractor)
	}

	if wordExtractor := highlight.NewWordExtractor(words, ignoreCaseWords); !wordExtractor.IsEmpty() {
		extractors = append(extractors, wordExtractor)
	}

	return extractors, errors.Join(errs...)
}

func commentExtractors(delimiters CommentDelimiters) ([]highlight.Extractor, error) {
	var extractors []highlight.Extractor

	if delimiters.Inline != "" {
		extractor, err := highlight.NewRegexExtractor(regexp2.Escape(delimiters.Inline)+inlineCommentTail, false)
		if err != nil {
			return nil, err
		}

		extractors = append(extractors, extractor)
	}

	if delimiters.HasBlock() {
		extractors = append(extractors,
			highlight.NewBeginEndStringExtractor(delimiters.BlockBegin, delimiters.BlockEnd, false))
	}

	return extractors, nil
}

// Name returns the syntax name.
func (p *Parser) Name() string {
	return p.name
}

// HasHighlights reports whether the parser has any highlight extractor.
func (p *Parser) HasHighlights() bool {
	return len(p.extractors) > 0
}

// Parse extracts the highlights of every type inside within. Types are
// processed concurrently. Each type's ranges are sorted by location and
// overlapping ranges are merged. The first failure cancels the rest.
func (p *Parser) Parse(ctx context.Context, text []rune, within textrange.Range) (Highlights, error) {
	within = within.Clamp(len(text))

	group, groupCtx := errgroup.WithContext(ctx)
	if p.limit > 0 {
		group.SetLimit(p.limit)
	}

	results := make([][]textrange.Range, len(AllTypes))

	for i, t := range AllTypes {
		extractors := p.extractors[t]
		if len(extractors) == 0 {
			continue
		}

		group.Go(func() error {
			var ranges []textrange.Range

			for _, extractor := range extractors {
				found, err := extractor.Ranges(groupCtx, text, within)
				if err != nil {
					return fmt.Errorf("extract %s: %w", t, err)
				}

				ranges = append(ranges, found...)
			}

			results[i] = mergeRanges(ranges)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("parse %q: %w", p.name, err)
	}

	highlights := make(Highlights, len(AllTypes))

	for i, t := range AllTypes {
		if len(results[i]) > 0 {
			highlights[t] = results[i]
		}
	}

	return highlights, nil
}

// mergeRanges sorts ranges by location and unions overlapping ones.
func mergeRanges(ranges []textrange.Range) []textrange.Range {
	if len(ranges) == 0 {
		return nil
	}

	slices.SortFunc(ranges, func(a, b textrange.Range) int {
		if c := cmp.Compare(a.Location, b.Location); c != 0 {
			return c
		}

		return cmp.Compare(a.Length, b.Length)
	})

	merged := []textrange.Range{ranges[0]}

	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.Location < last.End() {
			*last = last.Union(r)

			continue
		}

		merged = append(merged, r)
	}

	return merged
}

package document

import (
	"context"
	"fmt"

	"github.com/yaklabco/textkit/pkg/fileencoding"
	"github.com/yaklabco/textkit/pkg/fsutil"
	"github.com/yaklabco/textkit/pkg/lineending"
	"github.com/yaklabco/textkit/pkg/textrange"
)

// Revision is the content of a document's file read after load.
type Revision struct {
	Text     string
	Encoding fileencoding.FileEncoding
	Info     *fsutil.FileInfo
}

// ReadRevision re-reads the document file. The current encoding is tried
// first; when it no longer applies the content is detected again using
// opts. The document itself is not modified.
func (d *Document) ReadRevision(ctx context.Context, opts LoadOptions) (*Revision, error) {
	content, info, err := fsutil.ReadFile(ctx, d.Path)
	if err != nil {
		return nil, categorizeError(err)
	}

	text, used, err := fileencoding.Decode(content, fileencoding.Specific(d.Encoding.Encoding))
	if err != nil {
		strategy := opts.Strategy
		if !strategy.IsAutomatic() {
			strategy = DefaultLoadOptions().Strategy
		}

		text, used, err = fileencoding.Decode(content, withHint(strategy, d.Attributes.XattrEncoding))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailure, d.Path, err)
		}
	}

	return &Revision{Text: text, Encoding: used, Info: info}, nil
}

// ApplyEdit replaces the document text with text, where edited is the
// changed range in the new text and delta the change in length. The line
// table is updated incrementally.
func (d *Document) ApplyEdit(text string, edited textrange.Range, delta int) {
	d.text = text
	d.runes = []rune(text)
	d.Lines.ApplyEdit(lineending.Runes(d.runes), edited, delta)
}

// Adopt records rev as the document's on-disk state after its text has
// been brought up to date.
func (d *Document) Adopt(rev *Revision) {
	d.Encoding = rev.Encoding
	d.Info = rev.Info

	if rev.Info != nil {
		d.Attributes.Size = rev.Info.Size
		d.Attributes.ModTime = rev.Info.ModTime
		d.Attributes.Mode = rev.Info.Mode
	}
}

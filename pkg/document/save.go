package document

import (
	"context"
	"fmt"

	"github.com/yaklabco/textkit/internal/logging"
	"github.com/yaklabco/textkit/pkg/fileencoding"
	"github.com/yaklabco/textkit/pkg/fsutil"
	"github.com/yaklabco/textkit/pkg/lineending"
)

// SaveOptions controls how a document is written.
type SaveOptions struct {
	// Encoding overrides the document encoding when set.
	Encoding *fileencoding.FileEncoding

	// LineEnding converts every line ending in the text when set.
	LineEnding *lineending.Kind

	// Backup configures a sidecar copy of the previous content.
	Backup fsutil.BackupConfig

	// CheckModified refuses to overwrite a file changed since load.
	CheckModified bool

	// SkipXattrs leaves extended attributes untouched.
	SkipXattrs bool
}

// SaveResult describes a completed save.
type SaveResult struct {
	BytesWritten  int
	BackupCreated bool
	XattrsWritten bool
}

// Save encodes text and writes it atomically to the document path. On
// success the document reflects the saved text.
func (d *Document) Save(ctx context.Context, text string, opts SaveOptions) (*SaveResult, error) {
	logger := logging.FromContext(ctx)

	lineEnding := d.LineEnding
	if opts.LineEnding != nil {
		lineEnding = *opts.LineEnding
		text = lineending.Replace(text, lineEnding)
	}

	encoding := d.Encoding
	if opts.Encoding != nil {
		encoding = *opts.Encoding
	}

	text = fileencoding.ConvertYenSign(text, encoding.Encoding)

	data, err := fileencoding.Encode(text, encoding)
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", d.Path, err)
	}

	if opts.CheckModified && d.Info != nil {
		modified, err := fsutil.CheckModified(ctx, d.Info)
		if err != nil {
			return nil, fmt.Errorf("check modified: %w", err)
		}

		if modified {
			return nil, fmt.Errorf("%w: %s", ErrModified, d.Path)
		}
	}

	result := &SaveResult{BytesWritten: len(data)}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, d.Path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}

		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, d.Path, data, d.Attributes.Mode.Perm()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	if !opts.SkipXattrs {
		if err := writeXattrs(d.Path, encoding.Encoding, d.Attributes); err != nil {
			logger.Debug("extended attributes not written", logging.FieldPath, d.Path, logging.FieldError, err)
		} else {
			result.XattrsWritten = true
			d.Attributes.XattrEncoding = encoding.Encoding
		}
	}

	_, info, err := fsutil.ReadFile(ctx, d.Path)
	if err != nil {
		return nil, categorizeError(err)
	}

	d.Info = info
	d.Attributes.Size = info.Size
	d.Attributes.ModTime = info.ModTime
	d.Attributes.Mode = info.Mode
	d.Encoding = encoding
	d.text = text
	d.runes = []rune(text)
	d.Lines = lineending.New(lineending.Runes(d.runes), lineEnding)
	d.LineEnding = lineEnding

	logger.Debug("document saved",
		logging.FieldPath, d.Path,
		logging.FieldEncoding, encoding.String(),
		logging.FieldLineEnding, lineEnding.Name(),
	)

	return result, nil
}

// Package document loads text files into memory and writes them back,
// carrying their encoding, line ending, and extended attributes through
// the round trip.
package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/yaklabco/textkit/internal/logging"
	"github.com/yaklabco/textkit/pkg/fileencoding"
	"github.com/yaklabco/textkit/pkg/fsutil"
	"github.com/yaklabco/textkit/pkg/lineending"
	"github.com/yaklabco/textkit/pkg/syntax"
)

// Extended attribute names.
const (
	XattrEncoding               = fileencoding.XattrName
	XattrVerticalText           = "com.coteditor.VerticalText"
	XattrAllowInconsistentLines = "com.coteditor.AllowLineEndingInconsistency"
)

// Load error categories.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrDecodeFailure indicates the content could not be decoded.
	ErrDecodeFailure = errors.New("decode failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")

	// ErrModified indicates the file changed on disk since it was loaded.
	ErrModified = errors.New("file modified since load")
)

// Attributes are file system facts about a document.
type Attributes struct {
	Size    int64
	ModTime time.Time
	Mode    os.FileMode

	// UID and GID are -1 when the platform does not report an owner.
	UID int
	GID int

	// XattrEncoding is the encoding recorded in the extended attributes,
	// or fileencoding.Invalid when there is none.
	XattrEncoding fileencoding.Encoding

	IsVerticalText                bool
	AllowsInconsistentLineEndings bool
}

// LoadOptions controls how a document is read.
type LoadOptions struct {
	// Strategy selects the encoding. An automatic strategy receives the
	// encoding extended attribute as its hint.
	Strategy fileencoding.Strategy

	// DefaultLineEnding is used when the text has no line endings.
	DefaultLineEnding lineending.Kind

	// Syntaxes, when set, is used to pick a syntax for the document.
	Syntaxes *syntax.Registry
}

// DefaultLoadOptions detects among the default candidates, honours
// encoding declarations, and falls back to LF.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Strategy: fileencoding.Automatic(fileencoding.Options{
			Candidates:         fileencoding.DefaultCandidates(),
			ReferToDeclaration: true,
		}),
		DefaultLineEnding: lineending.LF,
	}
}

// Document is a decoded text file.
type Document struct {
	// Path is the file path the document was loaded from.
	Path string

	// Info is the file state at load time, used to detect external edits.
	Info *fsutil.FileInfo

	Attributes Attributes

	// Encoding is the encoding the content was decoded with.
	Encoding fileencoding.FileEncoding

	// LineEnding is the major line ending, or the default when there is none.
	LineEnding lineending.Kind

	// Lines indexes the line endings of the text.
	Lines *lineending.Table

	// Syntax is the matched syntax, or nil.
	Syntax      *syntax.Definition
	SyntaxMatch syntax.MatchReason

	text  string
	runes []rune
}

// Text returns the decoded content.
func (d *Document) Text() string {
	return d.text
}

// Runes returns the decoded content as runes. Callers must not modify it.
func (d *Document) Runes() []rune {
	return d.runes
}

// Load reads the file at path and decodes it.
func Load(ctx context.Context, path string, opts LoadOptions) (*Document, error) {
	logger := logging.FromContext(ctx)

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	attrs := Attributes{
		Size:    info.Size,
		ModTime: info.ModTime,
		Mode:    info.Mode,
		UID:     -1,
		GID:     -1,
	}

	if uid, gid, ok := fileOwner(path); ok {
		attrs.UID, attrs.GID = uid, gid
	}

	if err := readXattrs(path, &attrs); err != nil {
		logger.Debug("extended attributes unavailable", logging.FieldPath, path, logging.FieldError, err)
	}

	doc, err := decode(ctx, path, content, attrs, opts)
	if err != nil {
		return nil, err
	}

	doc.Info = info

	logger.Debug("document loaded",
		logging.FieldPath, path,
		logging.FieldEncoding, doc.Encoding.String(),
		logging.FieldLineEnding, doc.LineEnding.Name(),
	)

	return doc, nil
}

// FromBytes decodes in-memory content as if it had been read from path.
// No file system access is made.
func FromBytes(ctx context.Context, path string, content []byte, opts LoadOptions) (*Document, error) {
	return decode(ctx, path, content, Attributes{Size: int64(len(content)), UID: -1, GID: -1}, opts)
}

func decode(ctx context.Context, path string, content []byte, attrs Attributes, opts LoadOptions) (*Document, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load cancelled: %w", ctx.Err())
	default:
	}

	text, used, err := fileencoding.Decode(content, withHint(opts.Strategy, attrs.XattrEncoding))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailure, path, err)
	}

	runes := []rune(text)
	buf := lineending.Runes(runes)

	base := opts.DefaultLineEnding
	if !base.IsValid() {
		base = lineending.LF
	}

	table := lineending.New(buf, base)
	if major, ok := table.MajorEnding(); ok {
		base = major
		table.SetBase(major)
	}

	doc := &Document{
		Path:       path,
		Attributes: attrs,
		Encoding:   used,
		LineEnding: base,
		Lines:      table,
		text:       text,
		runes:      runes,
	}

	if opts.Syntaxes != nil {
		def, reason, err := opts.Syntaxes.Match(path, content)
		if err == nil {
			doc.Syntax, doc.SyntaxMatch = def, reason
		}
	}

	return doc, nil
}

// withHint fills in the default candidates and the extended attribute
// hint of an automatic strategy. Specific strategies are returned as is.
func withHint(strategy fileencoding.Strategy, hint fileencoding.Encoding) fileencoding.Strategy {
	if !strategy.IsAutomatic() {
		return strategy
	}

	options := strategy.Options()
	if len(options.Candidates) == 0 {
		options.Candidates = fileencoding.DefaultCandidates()
	}

	options.XattrEncoding = hint

	return fileencoding.Automatic(options)
}

// InconsistentLineEndings returns the line endings that differ from the
// document's line ending, or nil when the file allows inconsistency.
func (d *Document) InconsistentLineEndings() []lineending.Occurrence {
	if d.Attributes.AllowsInconsistentLineEndings {
		return nil
	}

	return d.Lines.Inconsistent()
}

// categorizeError wraps file system errors with a load category.
func categorizeError(err error) error {
	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

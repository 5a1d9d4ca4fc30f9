// Package watch follows text files on disk and keeps their line ending
// tables current as they change, updating each table incrementally from
// the edited window instead of rescanning the file.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/textkit/internal/logging"
	"github.com/yaklabco/textkit/pkg/document"
	"github.com/yaklabco/textkit/pkg/lineending"
)

// ErrClosed is returned by a closed watcher.
var ErrClosed = errors.New("watcher closed")

// Update reports a change to a watched file.
type Update struct {
	Path string `json:"path"`

	// Change is the edit since the previous revision.
	Change Change `json:"change"`

	// EncodingChanged is set when the file no longer decodes with its
	// previous encoding.
	EncodingChanged bool `json:"encodingChanged,omitempty"`

	// Removed is set when the file disappeared.
	Removed bool `json:"removed,omitempty"`

	LineEnding   lineending.Kind         `json:"lineEnding"`
	LineCount    int                     `json:"lineCount"`
	Inconsistent []lineending.Occurrence `json:"inconsistent,omitempty"`

	Err error `json:"-"`
}

// Options configures a Watcher.
type Options struct {
	// Load controls how files are decoded.
	Load document.LoadOptions
}

// Watcher tracks a set of files.
type Watcher struct {
	mu     sync.Mutex
	fsw    *fsnotify.Watcher
	opts   Options
	docs   map[string]*document.Document
	dirs   map[string]bool
	closed bool
}

// New creates a watcher.
func New(opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	return &Watcher{
		fsw:  fsw,
		opts: opts,
		docs: make(map[string]*document.Document),
		dirs: make(map[string]bool),
	}, nil
}

// Add loads path and starts following it. The parent directory is
// watched so that files replaced by rename are still seen.
func (w *Watcher) Add(ctx context.Context, path string) (*document.Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	doc, err := document.Load(ctx, absPath, w.opts.Load)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrClosed
	}

	dir := filepath.Dir(absPath)
	if !w.dirs[dir] {
		if err := w.fsw.Add(dir); err != nil {
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}

		w.dirs[dir] = true
	}

	w.docs[absPath] = doc

	return doc, nil
}

// Document returns the tracked document for path.
func (w *Watcher) Document(path string) (*document.Document, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	doc, ok := w.docs[absPath]

	return doc, ok
}

// Refresh re-reads a tracked file and applies the difference to its
// document. It reports false when the file is untracked or unchanged.
func (w *Watcher) Refresh(ctx context.Context, path string) (Update, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return Update{}, false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	doc, ok := w.docs[absPath]
	if !ok {
		return Update{}, false
	}

	rev, err := doc.ReadRevision(ctx, w.opts.Load)
	if errors.Is(err, document.ErrFileNotFound) {
		return Update{Path: absPath, Removed: true}, true
	}

	if err != nil {
		return Update{Path: absPath, Err: err}, true
	}

	change, changed := Diff(doc.Runes(), []rune(rev.Text))
	encodingChanged := rev.Encoding != doc.Encoding

	if changed {
		doc.ApplyEdit(rev.Text, change.Edited, change.Delta)
	}

	doc.Adopt(rev)

	if !changed && !encodingChanged {
		return Update{}, false
	}

	return Update{
		Path:            absPath,
		Change:          change,
		EncodingChanged: encodingChanged,
		LineEnding:      doc.LineEnding,
		LineCount:       doc.Lines.LineCount(),
		Inconsistent:    doc.InconsistentLineEndings(),
	}, true
}

// Run delivers updates until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, updates chan<- Update) error {
	logger := logging.FromContext(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}

			if !relevant(event) {
				continue
			}

			update, ok := w.Refresh(ctx, event.Name)
			if !ok {
				continue
			}

			logger.Debug("file changed", logging.FieldPath, update.Path, logging.FieldOp, event.Op.String())

			select {
			case updates <- update:
			case <-ctx.Done():
				return nil
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}

			logger.Warn("watch error", logging.FieldError, err)

			select {
			case updates <- Update{Err: err}:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) ||
		event.Has(fsnotify.Remove)
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}

	w.closed = true

	if err := w.fsw.Close(); err != nil {
		return fmt.Errorf("close watcher: %w", err)
	}

	return nil
}

package syntax

import (
	"cmp"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/yaklabco/textkit/pkg/langdetect"
)

//go:embed builtin/*.yml
var builtinFS embed.FS

// ErrNotFound is returned when no syntax matches.
var ErrNotFound = errors.New("syntax not found")

// MatchReason tells how a syntax was chosen for a file.
type MatchReason string

// Match reasons, in the order they are tried.
const (
	MatchNone        MatchReason = ""
	MatchFilename    MatchReason = "filename"
	MatchExtension   MatchReason = "extension"
	MatchInterpreter MatchReason = "interpreter"
	MatchDetected    MatchReason = "detected"
)

// Registry holds syntax definitions by name.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]*Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{definitions: make(map[string]*Definition)}
}

// Builtin returns a registry holding the bundled definitions.
func Builtin(ctx context.Context) (*Registry, error) {
	registry := NewRegistry()

	if _, err := registry.LoadFS(ctx, builtinFS, "builtin"); err != nil {
		return nil, err
	}

	return registry, nil
}

// Register adds def, replacing any definition with the same name. Names
// compare case-insensitively.
func (r *Registry) Register(def *Definition) error {
	if strings.TrimSpace(def.Name) == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.definitions[strings.ToLower(def.Name)] = def

	return nil
}

// LoadDir registers every .yml and .yaml file in dir. Files that fail to
// load are skipped and reported together; the count is of files loaded.
func (r *Registry) LoadDir(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read syntax dir: %w", err)
	}

	var (
		loaded int
		errs   []error
	)

	for _, entry := range entries {
		if entry.IsDir() || !isDefinitionFile(entry.Name()) {
			continue
		}

		def, err := LoadFile(ctx, filepath.Join(dir, entry.Name()))
		if err != nil {
			if ctx.Err() != nil {
				return loaded, fmt.Errorf("load syntax dir: %w", ctx.Err())
			}

			errs = append(errs, err)

			continue
		}

		if err := r.Register(def); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", entry.Name(), err))

			continue
		}

		loaded++
	}

	return loaded, errors.Join(errs...)
}

// LoadFS registers every definition file in dir of fsys.
func (r *Registry) LoadFS(ctx context.Context, fsys fs.FS, dir string) (int, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return 0, fmt.Errorf("read syntax dir: %w", err)
	}

	var (
		loaded int
		errs   []error
	)

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return loaded, fmt.Errorf("load syntax dir: %w", ctx.Err())
		default:
		}

		if entry.IsDir() || !isDefinitionFile(entry.Name()) {
			continue
		}

		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			errs = append(errs, fmt.Errorf("read syntax: %w", err))

			continue
		}

		def, err := Parse(strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())), data)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		if err := r.Register(def); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", entry.Name(), err))

			continue
		}

		loaded++
	}

	return loaded, errors.Join(errs...)
}

func isDefinitionFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))

	return ext == ".yml" || ext == ".yaml"
}

// Get returns the definition named name, ignoring case.
func (r *Registry) Get(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.definitions[strings.ToLower(name)]

	return def, ok
}

// Len returns the number of definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.definitions)
}

// Names returns the definition names sorted case-insensitively.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := lo.MapToSlice(r.definitions, func(_ string, def *Definition) string { return def.Name })
	slices.SortFunc(names, func(a, b string) int {
		return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
	})

	return names
}

// Definitions returns every definition sorted by name.
func (r *Registry) Definitions() []*Definition {
	names := r.Names()
	defs := make([]*Definition, 0, len(names))

	for _, name := range names {
		if def, ok := r.Get(name); ok {
			defs = append(defs, def)
		}
	}

	return defs
}

// Match picks the syntax for a file. It tries exact file names, then
// extensions, then the shebang interpreter, and finally language
// detection on the content, restricted to the registered names.
func (r *Registry) Match(filename string, content []byte) (*Definition, MatchReason, error) {
	defs := r.Definitions()
	base := filepath.Base(filename)

	if filename != "" {
		for _, def := range defs {
			if lo.ContainsBy(def.Filenames, func(k KeyString) bool { return k.Value == base }) {
				return def, MatchFilename, nil
			}
		}

		if ext := strings.TrimPrefix(filepath.Ext(base), "."); ext != "" {
			for _, def := range defs {
				if lo.ContainsBy(def.Extensions, func(k KeyString) bool { return strings.EqualFold(k.Value, ext) }) {
					return def, MatchExtension, nil
				}
			}
		}
	}

	if interpreter := langdetect.Interpreter(content); interpreter != "" {
		for _, def := range defs {
			if lo.ContainsBy(def.Interpreters, func(k KeyString) bool { return k.Value == interpreter }) {
				return def, MatchInterpreter, nil
			}
		}
	}

	if detected := langdetect.Detect(filename, content, r.Names()); detected.Found() {
		if def, ok := r.Get(detected.Language); ok {
			return def, MatchDetected, nil
		}
	}

	return nil, MatchNone, fmt.Errorf("%w: %s", ErrNotFound, filename)
}

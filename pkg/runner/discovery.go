package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/textkit/pkg/fileencoding"
	"github.com/yaklabco/textkit/pkg/langdetect"
)

// sniffSize is the number of leading bytes inspected to reject binary files.
const sniffSize = 8000

// ErrInvalidGlob indicates an include or exclude pattern that does not compile.
var ErrInvalidGlob = errors.New("invalid glob pattern")

// matcher holds the compiled include and exclude patterns of a walk.
type matcher struct {
	workDir    string
	extensions []string
	include    []glob.Glob
	exclude    []glob.Glob
}

func newMatcher(workDir string, opts Options) (*matcher, error) {
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	return &matcher{
		workDir:    workDir,
		extensions: opts.normalizedExtensions(),
		include:    include,
		exclude:    exclude,
	}, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		compiled, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidGlob, pattern, err)
		}
		globs = append(globs, compiled)
	}
	return globs, nil
}

// rel returns path relative to the working directory, slash-separated.
func (m *matcher) rel(path string) string {
	relPath, err := filepath.Rel(m.workDir, path)
	if err != nil {
		relPath = path
	}
	return filepath.ToSlash(relPath)
}

// matchAny reports whether relPath matches any glob. Patterns may target the
// full relative path, a directory prefix ("vendor/**"), any depth ("**/tmp"),
// or the base name alone ("*.min.js").
func matchAny(globs []glob.Glob, relPath string) bool {
	candidates := []string{relPath, "/" + relPath, relPath + "/", pathBase(relPath)}
	for _, g := range globs {
		for _, candidate := range candidates {
			if g.Match(candidate) {
				return true
			}
		}
	}
	return false
}

func pathBase(relPath string) string {
	if idx := strings.LastIndexByte(relPath, '/'); idx >= 0 {
		return relPath[idx+1:]
	}
	return relPath
}

func (m *matcher) excluded(path string) bool {
	return matchAny(m.exclude, m.rel(path))
}

// matchesFile checks a file against extensions and include/exclude patterns.
func (m *matcher) matchesFile(path string) bool {
	if len(m.extensions) > 0 && !slices.Contains(m.extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}

	relPath := m.rel(path)
	if matchAny(m.exclude, relPath) {
		return false
	}

	if len(m.include) > 0 && !matchAny(m.include, relPath) {
		return false
	}

	return true
}

// Discover finds text files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
// Files named explicitly are always returned when they match the patterns;
// files found by walking must additionally not look binary.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	match, err := newMatcher(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if match.matchesFile(absPath) {
				add(absPath)
			}
			continue
		}

		discovered, err := walkDirectory(ctx, absPath, match, opts)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	slices.Sort(files)

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walkDirectory recursively walks a directory and returns matching text files.
func walkDirectory(ctx context.Context, root string, match *matcher, opts Options) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || match.excluded(path) {
				return filepath.SkipDir
			}
			if !opts.IncludeVendored && langdetect.IsVendored(match.rel(path)+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Intentionally skip broken symlinks
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Intentionally skip inaccessible symlink targets
			}
			if info.IsDir() {
				if !opts.FollowSymlinks {
					return nil
				}
				// Walk the target; WalkDir uses Lstat on its root.
				subFiles, err := walkDirectory(ctx, realPath, match, opts)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if match.matchesFile(path) && !looksBinary(path) {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// looksBinary sniffs the head of a file. Files opening with a byte-order mark
// are text even when they contain NUL bytes. Unreadable files are kept so the
// inspection reports the error.
func looksBinary(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	head := make([]byte, sniffSize)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false
	}

	head = head[:n]
	if _, ok := fileencoding.SniffBOM(head); ok {
		return false
	}

	return langdetect.IsBinary(head)
}

package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/textkit/pkg/runner"
)

// writeTree creates files relative to dir.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// relFiles returns discovered paths relative to dir, slash-separated.
func relFiles(t *testing.T, dir string, files []string) []string {
	t.Helper()

	rel := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel
}

func sampleTree(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.txt":                 "alpha\n",
		"b.go":                  "package b\n",
		"notes/c.md":            "# c\n",
		"notes/drafts/d.txt":    "delta\n",
		".hidden/e.txt":         "hidden\n",
		".f.txt":                "hidden file\n",
		"image.dat":             "\x00\x01\x02binary",
		"utf16.txt":             "\xff\xfeh\x00i\x00",
		"node_modules/pkg/i.js": "module.exports = 1;\n",
	})
	return dir
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := sampleTree(t)

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"a.txt",
		"b.go",
		"notes/c.md",
		"notes/drafts/d.txt",
		"utf16.txt",
	}, relFiles(t, dir, files))
}

func TestDiscover_SingleFileIsAlwaysIncluded(t *testing.T) {
	t.Parallel()

	dir := sampleTree(t)
	target := filepath.Join(dir, "image.dat")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{target},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{target}, files)
}

func TestDiscover_Extensions(t *testing.T) {
	t.Parallel()

	dir := sampleTree(t)

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{"TXT", ".go"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.go", "notes/drafts/d.txt", "utf16.txt"}, relFiles(t, dir, files))
}

func TestDiscover_Globs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{
			name:    "directory prefix",
			exclude: []string{"notes/**"},
			want:    []string{"a.txt", "b.go", "utf16.txt"},
		},
		{
			name:    "base name",
			exclude: []string{"*.go", "utf16.*"},
			want:    []string{"a.txt", "notes/c.md", "notes/drafts/d.txt"},
		},
		{
			name:    "any depth",
			exclude: []string{"**/drafts"},
			want:    []string{"a.txt", "b.go", "notes/c.md", "utf16.txt"},
		},
		{
			name:    "include only",
			include: []string{"notes/*"},
			want:    []string{"notes/c.md"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := sampleTree(t)
			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir:   dir,
				IncludeGlobs: testCase.include,
				ExcludeGlobs: testCase.exclude,
			})
			require.NoError(t, err)
			assert.Equal(t, testCase.want, relFiles(t, dir, files))
		})
	}
}

func TestDiscover_InvalidGlob(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"[abc"},
	})
	require.ErrorIs(t, err, runner.ErrInvalidGlob)
}

func TestDiscover_Vendored(t *testing.T) {
	t.Parallel()

	dir := sampleTree(t)

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:      dir,
		Extensions:      []string{"js"},
		IncludeVendored: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"node_modules/pkg/i.js"}, relFiles(t, dir, files))
}

func TestDiscover_Deduplication(t *testing.T) {
	t.Parallel()

	dir := sampleTree(t)

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"notes", "notes/c.md", filepath.Join(dir, "notes")},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes/c.md", "notes/drafts/d.txt"}, relFiles(t, dir, files))
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat missing")
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: sampleTree(t)})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, outside, map[string]string{"linked.txt": "linked\n"})
	writeTree(t, dir, map[string]string{"own.txt": "own\n"})

	if err := os.Symlink(outside, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"own.txt"}, relFiles(t, dir, files))

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Contains(t, files, filepath.Join(outside, "linked.txt"))
}

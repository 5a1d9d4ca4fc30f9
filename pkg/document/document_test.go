package document_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/textkit/pkg/document"
	"github.com/yaklabco/textkit/pkg/fileencoding"
	"github.com/yaklabco/textkit/pkg/fsutil"
	"github.com/yaklabco/textkit/pkg/lineending"
	"github.com/yaklabco/textkit/pkg/syntax"
	"github.com/yaklabco/textkit/pkg/textrange"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	return path
}

func TestFromBytes(t *testing.T) {
	t.Parallel()

	doc, err := document.FromBytes(context.Background(), "notes.txt", []byte("a\r\nb\r\nc\n"), document.DefaultLoadOptions())
	require.NoError(t, err)

	assert.Equal(t, "a\r\nb\r\nc\n", doc.Text())
	assert.Len(t, doc.Runes(), 8)
	assert.Equal(t, fileencoding.FileEncoding{Encoding: fileencoding.UTF8}, doc.Encoding)
	assert.Equal(t, lineending.CRLF, doc.LineEnding)
	assert.Equal(t, lineending.CRLF, doc.Lines.Base())
	assert.Equal(t, []lineending.Occurrence{
		{Kind: lineending.LF, Range: textrange.New(7, 1)},
	}, doc.InconsistentLineEndings())
	assert.Equal(t, 4, doc.Lines.LineCount())
	assert.Nil(t, doc.Syntax)
}

func TestFromBytes_DefaultLineEnding(t *testing.T) {
	t.Parallel()

	opts := document.DefaultLoadOptions()
	opts.DefaultLineEnding = lineending.CR

	doc, err := document.FromBytes(context.Background(), "one-line.txt", []byte("no newline"), opts)
	require.NoError(t, err)

	assert.Equal(t, lineending.CR, doc.LineEnding)
	assert.Empty(t, doc.InconsistentLineEndings())
}

func TestFromBytes_SpecificEncodingFailure(t *testing.T) {
	t.Parallel()

	opts := document.DefaultLoadOptions()
	opts.Strategy = fileencoding.Specific(fileencoding.UTF8)

	_, err := document.FromBytes(context.Background(), "bad.txt", []byte{0xff, 0xfe, 0xfd}, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, document.ErrDecodeFailure)
	assert.ErrorIs(t, err, fileencoding.ErrDecodeFailure)
}

func TestFromBytes_MatchesSyntax(t *testing.T) {
	t.Parallel()

	registry, err := syntax.Builtin(context.Background())
	require.NoError(t, err)

	opts := document.DefaultLoadOptions()
	opts.Syntaxes = registry

	doc, err := document.FromBytes(context.Background(), "/src/main.go", []byte("package main\n"), opts)
	require.NoError(t, err)

	require.NotNil(t, doc.Syntax)
	assert.Equal(t, "Go", doc.Syntax.Name)
	assert.Equal(t, syntax.MatchExtension, doc.SyntaxMatch)
}

func TestFromBytes_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := document.FromBytes(ctx, "x.txt", []byte("x"), document.DefaultLoadOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad_NotFound(t *testing.T) {
	t.Parallel()

	_, err := document.Load(context.Background(), filepath.Join(t.TempDir(), "missing.txt"), document.DefaultLoadOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, document.ErrFileNotFound)
}

func TestLoadAndSave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	utf16 := fileencoding.FileEncoding{Encoding: fileencoding.UTF16LE, HasBOM: true}

	original, err := fileencoding.Encode("héllo\r\nworld\r\n", utf16)
	require.NoError(t, err)

	path := writeFile(t, "utf16.txt", original)

	doc, err := document.Load(ctx, path, document.DefaultLoadOptions())
	require.NoError(t, err)

	assert.Equal(t, utf16, doc.Encoding)
	assert.Equal(t, lineending.CRLF, doc.LineEnding)
	assert.Equal(t, "héllo\r\nworld\r\n", doc.Text())
	assert.Equal(t, int64(len(original)), doc.Attributes.Size)

	lf := lineending.LF

	result, err := doc.Save(ctx, "bye\r\nnow\r\n", document.SaveOptions{LineEnding: &lf, CheckModified: true})
	require.NoError(t, err)

	want, err := fileencoding.Encode("bye\nnow\n", utf16)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, len(want), result.BytesWritten)

	assert.Equal(t, "bye\nnow\n", doc.Text())
	assert.Equal(t, lineending.LF, doc.LineEnding)
	assert.Equal(t, 3, doc.Lines.LineCount())
	assert.Equal(t, int64(len(want)), doc.Attributes.Size)
}

func TestSave_DetectsExternalModification(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeFile(t, "race.txt", []byte("first\n"))

	doc, err := document.Load(ctx, path, document.DefaultLoadOptions())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("changed elsewhere\n"), 0o600))

	_, err = doc.Save(ctx, "mine\n", document.SaveOptions{CheckModified: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, document.ErrModified)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "changed elsewhere\n", string(got))
}

func TestSave_Backup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeFile(t, "backup.txt", []byte("old\n"))

	doc, err := document.Load(ctx, path, document.DefaultLoadOptions())
	require.NoError(t, err)

	result, err := doc.Save(ctx, "new\n", document.SaveOptions{
		Backup: fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar},
	})
	require.NoError(t, err)
	assert.True(t, result.BackupCreated)

	backup, err := os.ReadFile(fsutil.BackupPath(path, fsutil.BackupModeSidecar))
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(backup))
}

func TestSave_UnrepresentableText(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeFile(t, "latin.txt", []byte("plain\n"))

	doc, err := document.Load(ctx, path, document.DefaultLoadOptions())
	require.NoError(t, err)

	latin1 := fileencoding.FileEncoding{Encoding: fileencoding.ISOLatin1}

	_, err = doc.Save(ctx, "日本語\n", document.SaveOptions{Encoding: &latin1})
	require.Error(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "plain\n", string(got))
	assert.Equal(t, "plain\n", doc.Text())
}

func TestXattrs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeFile(t, "latin1.txt", []byte("caf\xe9\n"))

	err := document.SetFlag(path, document.XattrAllowInconsistentLines, true)
	if errors.Is(err, document.ErrXattrUnsupported) {
		t.Skip("extended attributes not supported here")
	}

	require.NoError(t, err)

	opts := document.DefaultLoadOptions()
	opts.Strategy = fileencoding.Specific(fileencoding.ISOLatin1)

	doc, err := document.Load(ctx, path, opts)
	require.NoError(t, err)
	assert.True(t, doc.Attributes.AllowsInconsistentLineEndings)
	assert.False(t, doc.Attributes.IsVerticalText)
	assert.Nil(t, doc.InconsistentLineEndings())

	result, err := doc.Save(ctx, "café\r\n", document.SaveOptions{})
	require.NoError(t, err)
	require.True(t, result.XattrsWritten)

	reloaded, err := document.Load(ctx, path, document.DefaultLoadOptions())
	require.NoError(t, err)

	assert.Equal(t, fileencoding.ISOLatin1, reloaded.Attributes.XattrEncoding)
	assert.Equal(t, fileencoding.ISOLatin1, reloaded.Encoding.Encoding)
	assert.Equal(t, "café\r\n", reloaded.Text())
	assert.True(t, reloaded.Attributes.AllowsInconsistentLineEndings)
}

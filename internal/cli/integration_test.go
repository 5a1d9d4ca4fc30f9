package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/textkit/internal/cli"
	"github.com/yaklabco/textkit/pkg/fsutil"
)

// mixedEndings has CRLF as its major line ending and a stray LF on line 3.
const mixedEndings = "a\r\nb\r\nc\nd\r\n"

const goSource = "package main\n\nfunc main() {\n\treturn\n}\n"

// setupWorkspace writes files into a temp directory along with a config file
// so tests do not pick up configuration from the surrounding repository.
func setupWorkspace(t *testing.T, files map[string]string) (string, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfgFile := filepath.Join(dir, "textkit-test.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("line_ending: LF\n"), 0o644))

	return dir, cfgFile
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--color", "never"))

	err := cmd.Execute()
	return stdout.String() + stderr.String(), err
}

func TestIntegration_InspectReportsMixedEndings(t *testing.T) {
	t.Parallel()

	dir, cfg := setupWorkspace(t, map[string]string{"mixed.txt": mixedEndings})

	output, err := execute(t, "inspect", "--config", cfg, filepath.Join(dir, "mixed.txt"))

	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Equal(t, cli.ExitIssuesFound, cli.ExitCode(err))
	assert.Contains(t, output, "mixed.txt:3")
	assert.Contains(t, output, "inconsistent line ending LF (expected CRLF)")
}

func TestIntegration_InspectExitZero(t *testing.T) {
	t.Parallel()

	dir, cfg := setupWorkspace(t, map[string]string{"mixed.txt": mixedEndings})

	output, err := execute(t, "inspect", "--config", cfg, "--exit-zero", filepath.Join(dir, "mixed.txt"))

	require.NoError(t, err)
	assert.Contains(t, output, "1 inconsistent line ending")
}

func TestIntegration_InspectCleanDirectory(t *testing.T) {
	t.Parallel()

	dir, cfg := setupWorkspace(t, map[string]string{
		"notes.txt":   "one\ntwo\n",
		"src/main.go": goSource,
	})

	output, err := execute(t, "inspect", "--config", cfg, dir)

	require.NoError(t, err)
	assert.Contains(t, output, "No inconsistent line endings")
}

func TestIntegration_InspectJSON(t *testing.T) {
	t.Parallel()

	dir, cfg := setupWorkspace(t, map[string]string{"src/main.go": goSource})

	output, err := execute(t, "inspect", "--config", cfg, "--format", "json", "--highlight", filepath.Join(dir, "src", "main.go"))
	require.NoError(t, err)

	var decoded struct {
		Files []struct {
			LineEnding string         `json:"lineEnding"`
			LineCount  int            `json:"lineCount"`
			Syntax     string         `json:"syntax"`
			Highlights map[string]int `json:"highlights"`
		} `json:"files"`
		Summary struct {
			FilesInspected int `json:"filesInspected"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))

	require.Len(t, decoded.Files, 1)
	assert.Equal(t, "LF", decoded.Files[0].LineEnding)
	assert.Equal(t, 6, decoded.Files[0].LineCount)
	assert.Equal(t, "Go", decoded.Files[0].Syntax)
	assert.Positive(t, decoded.Files[0].Highlights["keywords"])
	assert.Equal(t, 1, decoded.Summary.FilesInspected)
}

func TestIntegration_InspectInvalidFormat(t *testing.T) {
	t.Parallel()

	dir, cfg := setupWorkspace(t, map[string]string{"notes.txt": "x\n"})

	_, err := execute(t, "inspect", "--config", cfg, "--format", "xml", dir)

	require.Error(t, err)
	assert.NotEqual(t, cli.ExitSuccess, cli.ExitCode(err))
}

func TestIntegration_ConvertLineEndings(t *testing.T) {
	t.Parallel()

	dir, cfg := setupWorkspace(t, map[string]string{"mixed.txt": mixedEndings})
	path := filepath.Join(dir, "mixed.txt")

	output, err := execute(t, "convert", "--config", cfg, "--line-ending", "LF", "--no-backup", path)
	require.NoError(t, err)
	assert.Contains(t, output, "converted")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\nd\n", string(content))
	assert.False(t, fsutil.BackupExists(path, fsutil.BackupModeSidecar))
}

func TestIntegration_ConvertDryRun(t *testing.T) {
	t.Parallel()

	dir, cfg := setupWorkspace(t, map[string]string{"mixed.txt": mixedEndings})
	path := filepath.Join(dir, "mixed.txt")

	output, err := execute(t, "convert", "--config", cfg, "--line-ending", "CRLF", "--dry-run", path)
	require.NoError(t, err)
	assert.Contains(t, output, "would convert")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, mixedEndings, string(content))
}

func TestIntegration_ConvertRequiresTarget(t *testing.T) {
	t.Parallel()

	dir, cfg := setupWorkspace(t, map[string]string{"mixed.txt": mixedEndings})

	_, err := execute(t, "convert", "--config", cfg, dir)

	require.ErrorIs(t, err, cli.ErrInvalidUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_ConvertThenRestore(t *testing.T) {
	t.Parallel()

	dir, cfg := setupWorkspace(t, map[string]string{"mixed.txt": mixedEndings})
	path := filepath.Join(dir, "mixed.txt")

	_, err := execute(t, "convert", "--config", cfg, "--line-ending", "LF", path)
	require.NoError(t, err)
	require.True(t, fsutil.BackupExists(path, fsutil.BackupModeSidecar))

	output, err := execute(t, "restore", "--config", cfg, path)
	require.NoError(t, err)
	assert.Contains(t, output, "restored")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, mixedEndings, string(content))
	assert.False(t, fsutil.BackupExists(path, fsutil.BackupModeSidecar))
}

func TestIntegration_RestoreWithoutBackup(t *testing.T) {
	t.Parallel()

	dir, cfg := setupWorkspace(t, map[string]string{"notes.txt": "x\n"})

	_, err := execute(t, "restore", "--config", cfg, filepath.Join(dir, "notes.txt"))

	require.ErrorIs(t, err, cli.ErrFilesFailed)
}

func TestIntegration_Highlight(t *testing.T) {
	t.Parallel()

	dir, cfg := setupWorkspace(t, map[string]string{"main.go": goSource})

	output, err := execute(t, "highlight", "--config", cfg, "--type", "keywords", filepath.Join(dir, "main.go"))

	require.NoError(t, err)
	assert.Contains(t, output, "Go")
	assert.Contains(t, output, `1:1  "package"`)
	assert.Contains(t, output, `3:1  "func"`)
	assert.Contains(t, output, `4:2  "return"`)
	assert.NotContains(t, output, "comments")
}

func TestIntegration_HighlightOutline(t *testing.T) {
	t.Parallel()

	dir, cfg := setupWorkspace(t, map[string]string{"main.go": goSource})

	output, err := execute(t, "highlight", "--config", cfg, "--outline", filepath.Join(dir, "main.go"))

	require.NoError(t, err)
	assert.Contains(t, output, "3:1  main")
}

func TestIntegration_HighlightUnknownType(t *testing.T) {
	t.Parallel()

	dir, cfg := setupWorkspace(t, map[string]string{"main.go": goSource})

	_, err := execute(t, "highlight", "--config", cfg, "--type", "colors", filepath.Join(dir, "main.go"))

	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

func TestIntegration_SyntaxList(t *testing.T) {
	t.Parallel()

	_, cfg := setupWorkspace(t, nil)

	output, err := execute(t, "syntax", "list", "--config", cfg)

	require.NoError(t, err)
	assert.Contains(t, output, "Go")
	assert.Contains(t, output, "Shell")
	assert.Contains(t, output, ".go")
}

func TestIntegration_SyntaxValidate(t *testing.T) {
	t.Parallel()

	dir, cfg := setupWorkspace(t, map[string]string{
		"Good.yml": "kind: general\nkeywords:\n  - beginString: alpha\n",
		"Bad.yml":  "kind: general\nnumbers:\n  - beginString: '('\n    regularExpression: true\n",
	})

	output, err := execute(t, "syntax", "validate", "--config", cfg, filepath.Join(dir, "Good.yml"))
	require.NoError(t, err)
	assert.Contains(t, output, "ok")

	output, err = execute(t, "syntax", "validate", "--config", cfg, filepath.Join(dir, "Bad.yml"))
	require.ErrorIs(t, err, cli.ErrInvalidSyntax)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
	assert.Contains(t, output, "regularExpression")
}

func TestIntegration_SyntaxShow(t *testing.T) {
	t.Parallel()

	_, cfg := setupWorkspace(t, nil)

	output, err := execute(t, "syntax", "show", "--config", cfg, "Go")

	require.NoError(t, err)
	assert.Contains(t, output, "beginString: func")
}

func TestIntegration_ConfigShow(t *testing.T) {
	t.Parallel()

	_, cfg := setupWorkspace(t, nil)

	output, err := execute(t, "config", "show", "--config", cfg)

	require.NoError(t, err)
	assert.Contains(t, output, "loaded from "+cfg)
	assert.Contains(t, output, "line_ending: LF")
}

func TestIntegration_ConfigEnv(t *testing.T) {
	t.Parallel()

	output, err := execute(t, "config", "env")

	require.NoError(t, err)
	assert.Contains(t, output, "TEXTKIT_FORMAT")
	assert.Contains(t, output, "TEXTKIT_LINE_ENDING")
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("line_ending: SOMETIMES\n"), 0o644))

	_, err := execute(t, "inspect", "--config", cfgFile, dir)

	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	output := filepath.Join(dir, ".textkit.yml")

	_, err := execute(t, "init", "--output", output)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "line_ending: LF")

	_, err = execute(t, "init", "--output", output)
	require.ErrorIs(t, err, cli.ErrInvalidUsage)

	_, err = execute(t, "init", "--output", output, "--force", "--format", "json")
	require.NoError(t, err)

	content, err = os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, json.Valid(content))
}

func TestIntegration_InitRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "init", "--output", filepath.Join(t.TempDir(), "x.toml"), "--format", "toml")

	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

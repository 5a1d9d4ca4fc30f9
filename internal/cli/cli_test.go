package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/textkit/internal/cli"
	"github.com/yaklabco/textkit/internal/configloader"
	"github.com/yaklabco/textkit/pkg/runner"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	require.NotNil(t, cmd)
	assert.Equal(t, "textkit", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{
		"inspect", "convert", "highlight", "watch", "restore",
		"syntax", "config", "init", "version",
	} {
		subCmd, _, err := cmd.Find([]string{name})
		if !assert.NoError(t, err, "subcommand %q", name) {
			continue
		}
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command string
		flags   []string
	}{
		{
			command: "inspect",
			flags: []string{
				"format", "jobs", "encoding", "ignore", "ext", "highlight",
				"show-clean", "no-details", "compact", "exit-zero",
				"include-vendored", "follow-symlinks",
			},
		},
		{
			command: "convert",
			flags:   []string{"line-ending", "to-encoding", "with-bom", "dry-run", "no-backup", "encoding", "format", "ext"},
		},
		{
			command: "highlight",
			flags:   []string{"syntax", "type", "outline", "encoding"},
		},
		{
			command: "watch",
			flags:   []string{"encoding", "json"},
		},
		{
			command: "init",
			flags:   []string{"force", "full", "format", "output"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testInfo())
			subCmd, _, err := cmd.Find([]string{tt.command})
			require.NoError(t, err)

			for _, name := range tt.flags {
				assert.NotNil(t, subCmd.Flags().Lookup(name), "flag --%s on %s", name, tt.command)
			}
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "global flag --%s", name)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2024-01-01"})
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1.2.3")
}

func TestInspectCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	inspectCmd, _, err := cmd.Find([]string{"inspect"})
	require.NoError(t, err)

	assert.NoError(t, inspectCmd.Args(inspectCmd, []string{"a.txt", "b.txt", "docs/"}))
	assert.NoError(t, inspectCmd.Args(inspectCmd, nil))
}

func TestHighlightCommandRequiresOneFile(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	highlightCmd, _, err := cmd.Find([]string{"highlight"})
	require.NoError(t, err)

	require.Error(t, highlightCmd.Args(highlightCmd, nil))
	require.Error(t, highlightCmd.Args(highlightCmd, []string{"a", "b"}))
	assert.NoError(t, highlightCmd.Args(highlightCmd, []string{"a"}))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "issues", err: cli.ErrIssuesFound, want: cli.ExitIssuesFound},
		{name: "files failed", err: cli.ErrFilesFailed, want: cli.ExitIOError},
		{name: "wrapped files failed", err: fmt.Errorf("%w: boom", cli.ErrFilesFailed), want: cli.ExitIOError},
		{name: "invalid syntax", err: fmt.Errorf("%w: 1 of 2", cli.ErrInvalidSyntax), want: cli.ExitConfigError},
		{name: "invalid usage", err: fmt.Errorf("%w: bad flag", cli.ErrInvalidUsage), want: cli.ExitInvalidUsage},
		{name: "config validation", err: &configloader.ValidationError{Field: "format", Message: "bad"}, want: cli.ExitConfigError},
		{name: "unknown", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

func TestIsSilent(t *testing.T) {
	t.Parallel()

	assert.True(t, cli.IsSilent(cli.ErrIssuesFound))
	assert.True(t, cli.IsSilent(cli.ErrFilesFailed))
	assert.False(t, cli.IsSilent(fmt.Errorf("%w: a.txt", cli.ErrFilesFailed)))
	assert.False(t, cli.IsSilent(errors.New("boom")))
	assert.False(t, cli.IsSilent(nil))
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	mixed := &runner.FileReport{
		Path:         "mixed.txt",
		Inconsistent: []runner.InconsistentEnding{{Line: 2}},
	}
	allowed := &runner.FileReport{
		Path:                "allowed.txt",
		Inconsistent:        []runner.InconsistentEnding{{Line: 2}},
		AllowsInconsistency: true,
	}

	tests := []struct {
		name        string
		result      *runner.Result
		failOnMixed bool
		want        int
	}{
		{name: "nil result", result: nil, failOnMixed: true, want: cli.ExitSuccess},
		{
			name:        "mixed fails",
			result:      &runner.Result{Files: []runner.FileOutcome{{Path: "mixed.txt", Report: mixed}}},
			failOnMixed: true,
			want:        cli.ExitIssuesFound,
		},
		{
			name:        "mixed ignored",
			result:      &runner.Result{Files: []runner.FileOutcome{{Path: "mixed.txt", Report: mixed}}},
			failOnMixed: false,
			want:        cli.ExitSuccess,
		},
		{
			name:        "opted out",
			result:      &runner.Result{Files: []runner.FileOutcome{{Path: "allowed.txt", Report: allowed}}},
			failOnMixed: true,
			want:        cli.ExitSuccess,
		},
		{
			name: "failure wins",
			result: &runner.Result{
				Files: []runner.FileOutcome{
					{Path: "mixed.txt", Report: mixed},
					{Path: "broken.txt", Error: errors.New("boom")},
				},
				Stats: runner.Stats{FilesErrored: 1},
			},
			failOnMixed: true,
			want:        cli.ExitIOError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromResult(tt.result, tt.failOnMixed))
		})
	}
}

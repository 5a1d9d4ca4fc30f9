package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/samber/lo"
)

// ConfigPaths lists the configuration sources found for a run. Empty fields
// mean the source does not exist.
type ConfigPaths struct {
	System        string // /etc/textkit/config.yaml or %ProgramData%\textkit
	User          string // $XDG_CONFIG_HOME/textkit/config.yaml
	Project       string // nearest .textkit.yml above the working directory
	Explicit      string // --config
	UserSyntaxDir string // $XDG_CONFIG_HOME/textkit/syntaxes
}

// projectConfigFiles are checked in this order in each directory.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".textkit.yml",
	".textkit.yaml",
	"textkit.yml",
	"textkit.yaml",
	".textkit.json",
}

//nolint:gochecknoglobals // Read-only lookup table.
var dirConfigFiles = []string{"config.yaml", "config.yml"}

//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

const syntaxDirName = "syntaxes"

// DiscoverPaths locates the system, user, and project configuration files
// and the user syntax directory. Missing sources are not errors.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	paths := &ConfigPaths{
		System:  firstFile(systemConfigDir(), dirConfigFiles),
		Project: project,
	}

	if dir := UserConfigDir(); dir != "" {
		paths.User = firstFile(dir, dirConfigFiles)
		if syntaxDir := filepath.Join(dir, syntaxDirName); isDir(syntaxDir) {
			paths.UserSyntaxDir = syntaxDir
		}
	}

	return paths, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/textkit"
	}
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return filepath.Join(programData, "textkit")
}

// UserConfigDir returns $XDG_CONFIG_HOME/textkit, falling back to ~/.config/textkit.
// It returns "" when no home directory is known.
func UserConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "textkit")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "textkit")
}

// FindProjectConfig walks upward from startDir and returns the first project
// config file, or "". The walk ends at a VCS root, the home directory, or the
// file system root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}

		if found := firstFile(dir, projectConfigFiles); found != "" {
			return found, nil
		}

		stop := dir == home || lo.SomeBy(vcsRootMarkers, func(marker string) bool {
			return isDir(filepath.Join(dir, marker))
		})
		parent := filepath.Dir(dir)
		if stop || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first of names that exists as a file in dir.
func firstFile(dir string, names []string) string {
	path, _ := lo.Find(lo.Map(names, func(name string, _ int) string {
		return filepath.Join(dir, name)
	}), isFile)
	return path
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

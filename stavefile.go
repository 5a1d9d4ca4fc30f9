//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary  = "bin/textkit"
	mainPkg = "./cmd/textkit"
)

// Default target builds the binary.
var Default = Build

// Aliases for frequently used targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"fmt": Lint.Fmt,
	"dog": Bench.Dogfood,
	"sv":  Syntax.Validate,
}

type (
	Test   st.Namespace
	Lint   st.Namespace
	CI     st.Namespace
	Bench  st.Namespace
	Syntax st.Namespace
)

// Build compiles bin/textkit when any source changed.
func Build() error {
	stale, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !stale {
		fmt.Println(binary, "is up to date")
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, mainPkg)
}

// Check formats, lints, and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install runs go install with version information.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Uninstall deletes the installed binary if present.
func Uninstall() error {
	path := filepath.Join(installDir(), "textkit")
	if runtime.GOOS == "windows" {
		path += ".exe"
	}
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Println("textkit is not installed in", installDir())
		return nil
	}
	return err
}

// Coverage writes coverage.html from a full test run.
func Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs the race-enabled suite with coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "-race", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Verbose prints every test as it runs.
func (Test) Verbose() error {
	return gotestsum("standard-verbose", "-race")
}

// Short skips the slower integration tests.
func (Test) Short() error {
	return gotestsum("dots", "-short")
}

// Default runs golangci-lint and applies fixes.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt rewrites Go files with gofmt.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", "cmd", "internal", "pkg")
}

// Gate is the pipeline run on every pull request.
func (CI) Gate() error {
	st.SerialDeps(CI.Fmt, CI.Vet, CI.Lint, Build, Test.Default, CI.Tidy, CI.Cross)
	return nil
}

// Fmt fails when a file needs formatting.
func (CI) Fmt() error {
	out, err := sh.Output("gofmt", "-l", "cmd", "internal", "pkg")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("needs gofmt:\n%s", out)
	}
	return nil
}

// Vet runs go vet.
func (CI) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Lint runs golangci-lint without fixes.
func (CI) Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Tidy fails when go mod tidy would change go.mod or go.sum.
func (CI) Tidy() error {
	before, err := snapshot("go.mod", "go.sum")
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := snapshot("go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !bytes.Equal(before, after) {
		return errors.New("go.mod or go.sum is not tidy")
	}
	return nil
}

// Cross builds the release platforms. The watcher and xattr code differ
// per OS, so each one is compiled.
func (CI) Cross() error {
	for _, platform := range []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64",
		"freebsd/amd64",
	} {
		goos, goarch, _ := strings.Cut(platform, "/")
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("%s: %w", platform, err)
		}
	}
	return nil
}

// Default runs every benchmark.
func (Bench) Default() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./...")
}

// Parser runs the syntax, line ending, and highlight benchmarks.
func (Bench) Parser() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem",
		"./pkg/syntax/...", "./pkg/lineending/...", "./pkg/highlight/...")
}

// Dogfood inspects this repository with a fresh build.
func (Bench) Dogfood() error {
	st.Deps(Build)
	start := time.Now()
	err := sh.RunV(binary, "inspect", "--format", "summary", "--highlight", "--exit-zero", ".")
	fmt.Println("took", time.Since(start).Round(time.Millisecond))
	return err
}

// Validate checks the embedded syntax definitions.
func (Syntax) Validate() error {
	st.Deps(Build)
	return sh.RunV(binary, "syntax", "validate")
}

// List prints the embedded syntax definitions.
func (Syntax) List() error {
	st.Deps(Build)
	return sh.RunV(binary, "syntax", "list")
}

func gotestsum(format string, testArgs ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	args := []string{"tool", "gotestsum", "-f", format, "--", "-p", procs, "-parallel", procs}
	args = append(args, testArgs...)
	args = append(args, "./...")
	return sh.RunV("go", args...)
}

func snapshot(paths ...string) ([]byte, error) {
	var buf bytes.Buffer
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

func git(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func ldflags() string {
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339),
	)
}

func installDir() string {
	if gobin := os.Getenv("GOBIN"); gobin != "" {
		return gobin
	}
	if gopath := os.Getenv("GOPATH"); gopath != "" {
		return filepath.Join(gopath, "bin")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "go", "bin")
}

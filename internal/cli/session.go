package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/textkit/internal/configloader"
	"github.com/yaklabco/textkit/internal/logging"
	"github.com/yaklabco/textkit/pkg/config"
	"github.com/yaklabco/textkit/pkg/syntax"
)

// errConfig wraps failures to load configuration or syntax definitions.
var errConfig = errors.New("failed to load configuration")

// session is the resolved state shared by commands that read files.
type session struct {
	ctx      context.Context
	workDir  string
	color    string
	loaded   *configloader.LoadResult
	syntaxes *syntax.Registry
}

// config returns the merged configuration.
func (s *session) config() *config.Config {
	return s.loaded.Config
}

// newSession loads configuration with cli applied on top, then builds the
// syntax registry from the bundled definitions and the configured directories.
func newSession(cmd *cobra.Command, cli *config.Config) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.With(logging.WithLogger(ctx, logging.Default()), logging.FieldOp, cmd.Name())
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = string(config.ColorAuto)
	}
	if cli != nil {
		cli.Color = config.ColorMode(colorMode)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, errors.Join(errConfig, err)
	}

	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if len(loaded.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loaded.LoadedFrom)
	}

	registry, err := loadSyntaxes(ctx, loaded.SyntaxDirs())
	if err != nil {
		return nil, errors.Join(errConfig, err)
	}

	return &session{
		ctx:      ctx,
		workDir:  workDir,
		color:    colorMode,
		loaded:   loaded,
		syntaxes: registry,
	}, nil
}

// loadSyntaxes returns the bundled definitions overlaid with those in dirs.
// Missing directories are skipped; broken definition files are logged.
func loadSyntaxes(ctx context.Context, dirs []string) (*syntax.Registry, error) {
	logger := logging.FromContext(ctx)

	registry, err := syntax.Builtin(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bundled syntaxes: %w", err)
	}

	for _, dir := range dirs {
		if _, statErr := os.Stat(dir); statErr != nil {
			logger.Debug("skipping syntax directory", logging.FieldPath, dir, logging.FieldError, statErr)
			continue
		}

		loaded, err := registry.LoadDir(ctx, dir)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("load syntaxes: %w", ctx.Err())
			}
			logger.Warn("some syntax definitions could not be loaded", logging.FieldPath, dir, logging.FieldError, err)
		}
		logger.Debug("loaded syntax directory", logging.FieldPath, dir, "count", loaded)
	}

	return registry, nil
}

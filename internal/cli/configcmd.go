package cli

import (
	"bufio"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/textkit/internal/configloader"
	"github.com/yaklabco/textkit/pkg/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Inspect how textkit is configured.

Configuration is merged from, in increasing precedence: built-in
defaults, /etc/textkit/config.yaml, the user config directory, the
nearest .textkit.yml above the working directory, TEXTKIT_* environment
variables, and command line flags.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigPathCommand())
	cmd.AddCommand(newConfigEnvCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := newSession(cmd, &config.Config{})
			if err != nil {
				return err
			}

			header := "# Effective textkit configuration"
			if len(sess.loaded.LoadedFrom) == 0 {
				header += "\n# (built-in defaults, no configuration files found)"
			}
			for _, path := range sess.loaded.LoadedFrom {
				header += "\n# loaded from " + path
			}

			data, err := sess.config().ToYAMLWithHeader(header)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file locations that were searched",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := newSession(cmd, &config.Config{})
			if err != nil {
				return err
			}

			paths := sess.loaded.Paths
			if paths == nil {
				paths = &configloader.ConfigPaths{}
			}

			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush()

			for _, entry := range []struct{ label, path string }{
				{"system", paths.System},
				{"user", paths.User},
				{"project", paths.Project},
				{"explicit", paths.Explicit},
				{"syntaxes", paths.UserSyntaxDir},
			} {
				path := entry.path
				if path == "" {
					path = "-"
				}
				fmt.Fprintf(out, "%-9s %s\n", entry.label, path)
			}
			return nil
		},
	}
}

func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the supported environment variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vars := configloader.ListEnvVars()
			names := lo.Keys(vars)
			slices.Sort(names)

			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush()

			for _, name := range names {
				fmt.Fprintf(out, "%-28s %s\n", name, vars[name])
			}
			return nil
		},
	}
}

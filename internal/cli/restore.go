package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/textkit/internal/logging"
	"github.com/yaklabco/textkit/pkg/config"
	"github.com/yaklabco/textkit/pkg/fsutil"
	"github.com/yaklabco/textkit/pkg/runner"
)

func newRestoreCommand() *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:   "restore <files...>",
		Short: "Restore files from the backups kept by convert",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(cmd, &config.Config{})
			if err != nil {
				return err
			}
			logger := logging.FromContext(sess.ctx)
			mode := runner.BackupFromConfig(sess.config()).Mode

			missing := 0
			for _, path := range args {
				restored, err := fsutil.RestoreBackup(sess.ctx, path, mode)
				if err != nil {
					return fmt.Errorf("%w: %s: %w", ErrFilesFailed, path, err)
				}
				if !restored {
					missing++
					logger.Warn("no backup found", logging.FieldPath, path)
					continue
				}

				fmt.Fprintf(cmd.OutOrStdout(), "restored %s\n", path)

				if keep {
					continue
				}
				if _, err := fsutil.RemoveBackup(path, mode); err != nil {
					logger.Warn("could not remove backup", logging.FieldPath, path, logging.FieldError, err)
				}
			}

			if missing > 0 {
				return fmt.Errorf("%w: %d files had no backup", ErrFilesFailed, missing)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&keep, "keep", false, "keep the backup file after restoring")

	return cmd
}

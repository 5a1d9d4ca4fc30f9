package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/textkit/internal/logging"
	"github.com/yaklabco/textkit/internal/ui/pretty"
	"github.com/yaklabco/textkit/pkg/config"
	"github.com/yaklabco/textkit/pkg/runner"
	"github.com/yaklabco/textkit/pkg/watch"
)

type watchFlags struct {
	encoding string
	json     bool
}

func newWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch <files...>",
		Short: "Follow files and report line ending changes as they happen",
		Long: `Follow files on disk and report each change.

Every time a watched file is written, textkit reports the edited range,
the major line ending, the line count, and any inconsistent line endings.
Files replaced by rename (as many editors save) are followed. Press
Ctrl-C to stop.

Examples:
  textkit watch notes.txt
  textkit watch --json *.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.encoding, "encoding", "", "read files with this encoding")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print updates as JSON lines")

	return cmd
}

func runWatch(cmd *cobra.Command, paths []string, flags *watchFlags) error {
	sess, err := newSession(cmd, &config.Config{})
	if err != nil {
		return err
	}
	logger := logging.FromContext(sess.ctx)

	loadOpts, err := runner.LoadOptionsFromConfig(sess.config(), flags.encoding, sess.syntaxes)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	watcher, err := watch.New(watch.Options{Load: loadOpts})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFilesFailed, err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Debug("close watcher", logging.FieldError, closeErr)
		}
	}()

	styles := pretty.NewStyles(pretty.IsColorEnabled(sess.color, cmd.OutOrStdout()))
	out := cmd.OutOrStdout()

	for _, path := range paths {
		doc, err := watcher.Add(sess.ctx, path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFilesFailed, err)
		}
		if !flags.json {
			fmt.Fprintf(out, "watching %s  %s  %s  %d lines\n",
				styles.FilePath.Render(path),
				styles.Encoding.Render(doc.Encoding.String()),
				styles.LineEnding.Render(doc.LineEnding.Name()),
				doc.Lines.LineCount(),
			)
		}
	}

	ctx, stop := signal.NotifyContext(sess.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	updates := make(chan watch.Update)
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer close(updates)
		return watcher.Run(groupCtx, updates)
	})

	group.Go(func() error {
		for update := range updates {
			if err := printUpdate(out, styles, update, flags.json); err != nil {
				return err
			}
		}
		return nil
	})

	if err := group.Wait(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("watch: %w", err)
	}

	return nil
}

func printUpdate(out io.Writer, styles *pretty.Styles, update watch.Update, asJSON bool) error {
	if asJSON {
		payload := struct {
			watch.Update

			Error string `json:"error,omitempty"`
		}{Update: update}
		if update.Err != nil {
			payload.Error = update.Err.Error()
		}
		if err := json.NewEncoder(out).Encode(payload); err != nil {
			return fmt.Errorf("encode update: %w", err)
		}
		return nil
	}

	var line string
	switch {
	case update.Err != nil && update.Path == "":
		line = styles.Error.Render("watch error: " + update.Err.Error())
	case update.Err != nil:
		line = strings.TrimSuffix(styles.FormatFileError(update.Path, update.Err), "\n")
	case update.Removed:
		line = fmt.Sprintf("%s  %s", styles.FilePath.Render(update.Path), styles.Dim.Render("removed"))
	default:
		line = fmt.Sprintf("%s  %s  %d lines  edited %s (%+d)",
			styles.FilePath.Render(update.Path),
			styles.LineEnding.Render(update.LineEnding.Name()),
			update.LineCount,
			styles.Location.Render(update.Change.Edited.String()),
			update.Change.Delta,
		)
		if update.EncodingChanged {
			line += "  " + styles.Warning.Render("encoding changed")
		}
		if n := len(update.Inconsistent); n > 0 {
			line += "  " + styles.Warning.Render(fmt.Sprintf("%d inconsistent", n))
		}
	}

	if _, err := io.WriteString(out, line+"\n"); err != nil {
		return fmt.Errorf("write update: %w", err)
	}
	return nil
}

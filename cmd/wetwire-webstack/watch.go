package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// newWatchCmd creates the "watch" subcommand for rebuilding on changes.
func newWatchCmd(root *rootOptions) *cobra.Command {
	var opts watchOptions

	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Rebuild the template when the stack description changes",
		Long: `Watch monitors the stack description and rebuilds the template on every
change. Rapid successive writes are debounced into a single rebuild. A build
that fails leaves the previous output file untouched.

Examples:
    wetwire-webstack watch -o template.json
    wetwire-webstack watch stack.yaml -f yaml -o template.yaml
    wetwire-webstack watch --debounce 1s`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			opts.path = stackFile(args)
			return runWatch(ctx, cmd.OutOrStdout(), opts, root.logger(cmd.ErrOrStderr()))
		},
	}

	cmd.Flags().DurationVar(&opts.debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", "json", "Output format for build: json or yaml")
	cmd.Flags().StringVarP(&opts.outputFile, "output", "o", "", "Output file for build (default: summary only)")

	return cmd
}

type watchOptions struct {
	path         string
	debounce     time.Duration
	outputFormat string
	outputFile   string
}

// runWatch watches the directory of the stack description, since editors
// often replace a file instead of writing it in place.
func runWatch(ctx context.Context, w io.Writer, opts watchOptions, logger *slog.Logger) error {
	target, err := filepath.Abs(opts.path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}
	fmt.Fprintf(w, "Watching: %s\n", target)

	rebuild(w, opts, logger)

	var debounceTimer *time.Timer
	rebuildChan := make(chan struct{}, 1)

	fmt.Fprintln(w, "\nWatching for changes... (Ctrl+C to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRelevant(event, target) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(opts.debounce, func() {
				select {
				case rebuildChan <- struct{}{}:
				default:
				}
			})

		case <-rebuildChan:
			fmt.Fprintf(w, "\n[%s] Change detected, rebuilding...\n", time.Now().Format("15:04:05"))
			rebuild(w, opts, logger)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)

		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			fmt.Fprintln(w, "\nStopping watch...")
			return nil
		}
	}
}

func isRelevant(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// rebuild builds once and reports the outcome. Errors are reported, not
// returned, so the watch keeps running.
func rebuild(w io.Writer, opts watchOptions, logger *slog.Logger) {
	tmpl, err := buildTemplate(opts.path, logger)
	if err != nil {
		logger.Error("build failed", "error", err)
		return
	}

	data, err := encode(tmpl, opts.outputFormat)
	if err != nil {
		logger.Error("encoding failed", "error", err)
		return
	}

	if opts.outputFile == "" {
		fmt.Fprintf(w, "Build successful: %d resources\n", len(tmpl.Resources))
		return
	}

	if err := os.WriteFile(opts.outputFile, data, 0644); err != nil {
		logger.Error("failed to write output", "path", opts.outputFile, "error", err)
		return
	}
	fmt.Fprintf(w, "Build successful, wrote %s\n", opts.outputFile)
}

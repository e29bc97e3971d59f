package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/jot"
	jotlifecycle "github.com/aretw0/jot/pkg/adapters/lifecycle"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow changes made to the notes by other processes",
	Long: `Watch reloads the notes whenever their file changes on disk and prints
a line per change. It never writes. Stop it with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withStore(func(store *jot.Store) error {
			return follow(ctx, cmd, store)
		}, jot.WithReadOnly(true), jot.WithWatcherErrorHandler(func(err error) {
			slog.Error("watcher failed", "error", err)
		}))
	},
}

// follow reloads and prints one line per external change until ctx is done.
func follow(ctx context.Context, cmd *cobra.Command, store *jot.Store) error {
	changes, err := store.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch notes: %w", err)
	}

	source := jotlifecycle.NewSource(store, changes)
	if err := source.Start(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %d notes. Press Ctrl+C to stop.\n", store.Len())
	for change := range source.Events() {
		fmt.Fprintln(out, change)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

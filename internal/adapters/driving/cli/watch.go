package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/adapters/driving/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a directory and ingest new PDFs",
	Long: `Watches a directory and automatically ingests any PDF file
created in it. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := setupServices(ctx); err != nil {
		return err
	}

	err := watcher.New(ingestService).Run(ctx, args[0])
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

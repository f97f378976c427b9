package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mkravets/sayright/internal/client"
	"github.com/mkravets/sayright/internal/config"
	"github.com/mkravets/sayright/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "sayright",
	Short: "sayright pronunciation practice CLI",
	Long: "Command-line client for the sayright practice service.\n" +
		"Manages favorites, tags, and settings, synchronized with the user's\n" +
		"remote document when logged in and mirrored locally otherwise.",
	SilenceUsage: true,
}

// runWithApp assembles the client runtime for a single command invocation:
// config, file-backed logger (so structured logs do not interleave with
// command output), restored session, and a clean shutdown afterwards.
func runWithApp(cmd *cobra.Command, run func(ctx context.Context, app *client.App) error) error {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return err
	}

	log := logger.NewFileLogger("sayright-client", filepath.Join(os.TempDir(), "sayright-client.log"))

	app, err := client.NewApp(cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()
	if err = app.Start(ctx); err != nil {
		return err
	}

	return run(ctx, app)
}

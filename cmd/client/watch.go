package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mkravets/sayright/internal/client"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stay connected and mirror remote changes until interrupted",
	Long: "Keeps the live subscription and the periodic refresh job running so\n" +
		"the local mirror follows the remote document. Stops on Ctrl-C.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runWithApp(cmd, func(ctx context.Context, app *client.App) error {
			if app.UID() == "" {
				return fmt.Errorf("watch requires a logged-in session")
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Printf("watching as %s, %d favorites, %d tags\n",
				app.UID(), len(app.Favorites.Items()), len(app.Tags.Items()))

			<-ctx.Done()
			fmt.Println("stopped")
			return nil
		})
	},
}

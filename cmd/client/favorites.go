package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkravets/sayright/internal/client"
	"github.com/mkravets/sayright/internal/syncer"
	"github.com/mkravets/sayright/internal/validators"
	"github.com/mkravets/sayright/models"
)

var favoriteTagIDs string

func init() {
	favoritesAddCmd.Flags().StringVar(&favoriteTagIDs, "tags", "", "Comma-separated tag IDs to attach")

	favoritesCmd.AddCommand(favoritesAddCmd, favoritesListCmd, favoritesRmCmd)
	rootCmd.AddCommand(favoritesCmd)
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage saved practice sentences",
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <sentence>",
	Short: "Save a practice sentence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, app *client.App) error {
			// id assigned up front so the confirmation does not depend on
			// re-reading the live array
			favorite := models.Favorite{
				ID:        syncer.NewRecordID(),
				Text:      args[0],
				TagIDs:    splitIDs(favoriteTagIDs),
				CreatedAt: time.Now().UnixMilli(),
			}
			if err := validators.NewRecordValidator().Validate(ctx, favorite); err != nil {
				return err
			}
			if err := app.Favorites.Patch(ctx, syncer.Add(favorite)); err != nil {
				return err
			}

			fmt.Printf("added %s\n", favorite.ID)
			return nil
		})
	},
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sentences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runWithApp(cmd, func(_ context.Context, app *client.App) error {
			for _, item := range app.Favorites.Items() {
				line := fmt.Sprintf("%s\t%s", item.ID, item.Text)
				if len(item.TagIDs) > 0 {
					line += "\t[" + strings.Join(item.TagIDs, ",") + "]"
				}
				fmt.Println(line)
			}
			return nil
		})
	},
}

var favoritesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a saved sentence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, app *client.App) error {
			return app.Favorites.Patch(ctx, syncer.Delete[models.Favorite](args[0]))
		})
	},
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

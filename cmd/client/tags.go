package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkravets/sayright/internal/client"
	"github.com/mkravets/sayright/internal/syncer"
	"github.com/mkravets/sayright/internal/validators"
	"github.com/mkravets/sayright/models"
)

var tagColor string

func init() {
	tagsAddCmd.Flags().StringVar(&tagColor, "color", "", "Display color in #RRGGBB form")

	tagsCmd.AddCommand(tagsAddCmd, tagsListCmd, tagsRmCmd)
	rootCmd.AddCommand(tagsCmd)
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage tags that group favorites",
}

var tagsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, app *client.App) error {
			tag := models.Tag{ID: syncer.NewRecordID(), Name: args[0], Color: tagColor}
			if err := validators.NewRecordValidator().Validate(ctx, tag); err != nil {
				return err
			}
			if err := app.Tags.Patch(ctx, syncer.Add(tag)); err != nil {
				return err
			}

			fmt.Printf("added %s\n", tag.ID)
			return nil
		})
	},
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runWithApp(cmd, func(_ context.Context, app *client.App) error {
			for _, tag := range app.Tags.Items() {
				if tag.Color != "" {
					fmt.Printf("%s\t%s\t%s\n", tag.ID, tag.Name, tag.Color)
				} else {
					fmt.Printf("%s\t%s\n", tag.ID, tag.Name)
				}
			}
			return nil
		})
	},
}

var tagsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, app *client.App) error {
			return app.Tags.Patch(ctx, syncer.Delete[models.Tag](args[0]))
		})
	},
}

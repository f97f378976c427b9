package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkravets/sayright/internal/client"
	"github.com/mkravets/sayright/internal/validators"
)

var (
	settingsDailyGoal    int
	settingsPlaybackRate float64
	settingsShowPhonemes bool
	settingsLocale       string
)

func init() {
	settingsSetCmd.Flags().IntVar(&settingsDailyGoal, "daily-goal", 0, "Practice sentences per day")
	settingsSetCmd.Flags().Float64Var(&settingsPlaybackRate, "playback-rate", 0, "Reference audio playback speed (1.0 = normal)")
	settingsSetCmd.Flags().BoolVar(&settingsShowPhonemes, "show-phonemes", false, "Show the per-phoneme score breakdown")
	settingsSetCmd.Flags().StringVar(&settingsLocale, "locale", "", "UI locale tag, e.g. en-US")

	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change user preferences",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runWithApp(cmd, func(_ context.Context, app *client.App) error {
			current := app.Settings().Current()
			fmt.Printf("daily goal:     %d\n", current.DailyGoal)
			fmt.Printf("playback rate:  %.2f\n", current.PlaybackRate)
			fmt.Printf("show phonemes:  %t\n", current.ShowPhonemes)
			fmt.Printf("locale:         %s\n", current.Locale)
			return nil
		})
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings; only the flags given are applied",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runWithApp(cmd, func(ctx context.Context, app *client.App) error {
			binding := app.Settings()
			settings := binding.Current()

			if cmd.Flags().Changed("daily-goal") {
				settings.DailyGoal = settingsDailyGoal
			}
			if cmd.Flags().Changed("playback-rate") {
				settings.PlaybackRate = settingsPlaybackRate
			}
			if cmd.Flags().Changed("show-phonemes") {
				settings.ShowPhonemes = settingsShowPhonemes
			}
			if cmd.Flags().Changed("locale") {
				settings.Locale = settingsLocale
			}

			if err := validators.NewRecordValidator().Validate(ctx, settings); err != nil {
				return err
			}
			return binding.Save(ctx, settings)
		})
	},
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Kravets

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkravets/sayright/internal/client"
	"github.com/mkravets/sayright/models"
)

var practiceText string

func init() {
	practiceCmd.Flags().StringVar(&practiceText, "text", "", "Reference sentence the recording is scored against")
	_ = practiceCmd.MarkFlagRequired("text")

	rootCmd.AddCommand(practiceCmd, refreshCmd)
}

var practiceCmd = &cobra.Command{
	Use:   "practice <recording.wav>",
	Short: "Score a recorded utterance against a reference sentence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, app *client.App) error {
			audio, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read recording: %w", err)
			}

			result, err := app.Speech.Assess(ctx, practiceText, audio)
			if err != nil {
				return err
			}

			printAssessment(result, app.Settings().Current().ShowPhonemes)
			return nil
		})
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Pull the latest remote state into all collections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runWithApp(cmd, func(ctx context.Context, app *client.App) error {
			if err := app.Favorites.Refresh(ctx); err != nil {
				return err
			}
			if err := app.Tags.Refresh(ctx); err != nil {
				return err
			}
			return app.Settings().Refresh(ctx)
		})
	},
}

func printAssessment(result models.Assessment, showPhonemes bool) {
	fmt.Printf("pronunciation: %5.1f\n", result.PronunciationScore)
	fmt.Printf("accuracy:      %5.1f\n", result.AccuracyScore)
	fmt.Printf("fluency:       %5.1f\n", result.FluencyScore)
	fmt.Printf("completeness:  %5.1f\n", result.CompletenessScore)

	for _, word := range result.Words {
		if word.ErrorType != "" && word.ErrorType != models.WordErrorNone {
			fmt.Printf("  %-20s %5.1f  %s\n", word.Word, word.AccuracyScore, word.ErrorType)
		} else {
			fmt.Printf("  %-20s %5.1f\n", word.Word, word.AccuracyScore)
		}
		if !showPhonemes {
			continue
		}
		for _, phoneme := range word.Phonemes {
			fmt.Printf("    /%s/ %5.1f\n", phoneme.Phoneme, phoneme.AccuracyScore)
		}
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Kravets

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkravets/sayright/internal/client"
)

var authPassword string

func init() {
	for _, cmd := range []*cobra.Command{registerCmd, loginCmd} {
		cmd.Flags().StringVar(&authPassword, "password", "", "Account password")
		_ = cmd.MarkFlagRequired("password")
	}

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
}

var registerCmd = &cobra.Command{
	Use:   "register <login>",
	Short: "Create an account and log in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, app *client.App) error {
			if err := app.Register(ctx, args[0], authPassword); err != nil {
				return err
			}
			fmt.Printf("registered as %s (uid %s)\n", args[0], app.UID())
			return nil
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <login>",
	Short: "Log in to an existing account",
	Long: "Log in and switch collections to the account's remote document.\n" +
		"Remote data supersedes anything saved while anonymous; the two are not merged.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, app *client.App) error {
			if err := app.Login(ctx, args[0], authPassword); err != nil {
				return err
			}
			fmt.Printf("logged in as %s (uid %s)\n", args[0], app.UID())
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored session and return to anonymous mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runWithApp(cmd, func(ctx context.Context, app *client.App) error {
			if err := app.Logout(ctx); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the current identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runWithApp(cmd, func(_ context.Context, app *client.App) error {
			if uid := app.UID(); uid != "" {
				fmt.Println(uid)
			} else {
				fmt.Println("anonymous")
			}
			return nil
		})
	},
}

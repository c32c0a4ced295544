package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/learnhub/internal/client"
	"github.com/user/learnhub/internal/repository"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("LEARNHUB_PASSWORD")
			}
			email = strings.TrimSpace(email)
			if email == "" || password == "" {
				return errors.New("--email and --password (or LEARNHUB_PASSWORD) are required")
			}

			session, err := ctx.client().Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			path, err := ctx.sessionPath()
			if err != nil {
				return err
			}
			if err := session.Save(path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", session.User.Name, session.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (env LEARNHUB_PASSWORD)")
	return cmd
}

func newLogoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the stored token and remove the session file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ctx.sessionPath()
			if err != nil {
				return err
			}
			session, err := client.LoadSession(path)
			if err != nil {
				return err
			}
			if !session.Authenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}

			logoutErr := ctx.client().Logout(cmd.Context(), session)
			if err := client.RemoveSession(path); err != nil {
				return err
			}
			if logoutErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Server logout failed: %v\n", logoutErr)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash suitable for users.password_hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := repository.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

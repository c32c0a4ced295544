package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

const defaultServerURL = "http://localhost:8080"

func newRootCommand() *cobra.Command {
	var serverFlag string
	var sessionFlag string
	var timeoutFlag time.Duration

	ctx := newCommandContext(&serverFlag, &sessionFlag, &timeoutFlag)

	rootCmd := &cobra.Command{
		Use:           "learnctl",
		Short:         "Command line client for the learning platform API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	server := os.Getenv("LEARNHUB_URL")
	if server == "" {
		server = defaultServerURL
	}
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", server, "API base URL (env LEARNHUB_URL)")
	rootCmd.PersistentFlags().StringVar(&sessionFlag, "session", "", "Session file path (default ~/.config/learnhub/session.toml)")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 15*time.Second, "Request timeout")

	rootCmd.AddCommand(newLoginCommand(ctx))
	rootCmd.AddCommand(newLogoutCommand(ctx))
	rootCmd.AddCommand(newDashboardCommand(ctx))
	rootCmd.AddCommand(newCoursesCommand(ctx))
	rootCmd.AddCommand(newVideosCommand(ctx))
	rootCmd.AddCommand(newProgressCommand(ctx))
	rootCmd.AddCommand(newHashPasswordCommand())

	return rootCmd
}

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/templui/studytrack/cmd/study/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "study",
		Short:        "Track study goals and activities",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.LoginCmd())
	rootCmd.AddCommand(cmd.LogoutCmd())
	rootCmd.AddCommand(cmd.GoalsCmd())
	rootCmd.AddCommand(cmd.ActivitiesCmd())
	rootCmd.AddCommand(cmd.StatsCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

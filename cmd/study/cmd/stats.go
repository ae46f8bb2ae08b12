package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/templui/studytrack/internal/theme"
)

func StatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize goal and activity progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(w *workspace) error {
				err := w.goals.Fetch(cmd.Context())
				if err != nil {
					return err
				}
				err = w.activities.Fetch(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(w.out, theme.Stats(w.goals.Stats(), w.activities.Stats()))
				return nil
			})
		},
	}
}

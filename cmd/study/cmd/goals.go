package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/templui/studytrack/internal/model"
	"github.com/templui/studytrack/internal/syncstore"
	"github.com/templui/studytrack/internal/theme"
)

func GoalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goals",
		Aliases: []string{"goal"},
		Short:   "Manage study goals",
	}

	cmd.AddCommand(goalsListCmd())
	cmd.AddCommand(goalsAddCmd())
	cmd.AddCommand(goalsEditCmd())
	cmd.AddCommand(goalsToggleCmd())
	cmd.AddCommand(goalsRemoveCmd())

	return cmd
}

func goalsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals, open ones first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(w *workspace) error {
				err := w.goals.Fetch(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(w.out, theme.Goals(w.goals.Goals()))
				return nil
			})
		},
	}
}

func goalsAddCmd() *cobra.Command {
	var title, description, target string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			targetDate, err := parseTarget(target)
			if err != nil {
				return err
			}

			return run(cmd, func(w *workspace) error {
				err := w.goals.Save(cmd.Context(), model.Goal{
					Title:       title,
					Description: description,
					TargetDate:  targetDate,
				}, false, "")
				if err != nil {
					return err
				}
				fmt.Fprint(w.out, theme.Goals(w.goals.Goals()))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "goal title")
	cmd.Flags().StringVar(&description, "description", "", "goal description")
	cmd.Flags().StringVar(&target, "target", "", "target date (yyyy-mm-dd)")

	return cmd
}

func goalsEditCmd() *cobra.Command {
	var title, description, target string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title, description or target date of a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targetDate, err := parseTarget(target)
			if err != nil {
				return err
			}

			return run(cmd, func(w *workspace) error {
				goal, err := findGoal(w, cmd, args[0])
				if err != nil {
					return err
				}

				w.goals.RequestEdit(goal)
				w.goals.EditForm(func(form *syncstore.GoalForm) {
					if cmd.Flags().Changed("title") {
						form.Title = title
					}
					if cmd.Flags().Changed("description") {
						form.Description = description
					}
					if cmd.Flags().Changed("target") {
						form.TargetDate = targetDate
					}
				})

				err = w.goals.SaveForm(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(w.out, theme.Goals(w.goals.Goals()))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&target, "target", "", "new target date (yyyy-mm-dd)")

	return cmd
}

func goalsToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a goal completed, or reopen it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(w *workspace) error {
				err := w.goals.Fetch(cmd.Context())
				if err != nil {
					return err
				}
				err = w.goals.ToggleCompleted(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(w.out, theme.Goals(w.goals.Goals()))
				return nil
			})
		},
	}
}

func goalsRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a goal",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(w *workspace) error {
				goal, err := findGoal(w, cmd, args[0])
				if err != nil {
					return err
				}

				ok, err := confirm(fmt.Sprintf("Delete goal %q?", goal.Title), yes)
				if err != nil || !ok {
					return err
				}

				err = w.goals.Delete(cmd.Context(), goal.ID)
				if err != nil {
					return err
				}
				fmt.Fprint(w.out, theme.Goals(w.goals.Goals()))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	return cmd
}

func findGoal(w *workspace, cmd *cobra.Command, id string) (model.Goal, error) {
	err := w.goals.Fetch(cmd.Context())
	if err != nil {
		return model.Goal{}, err
	}
	for _, g := range w.goals.Goals() {
		if g.ID == id {
			return g, nil
		}
	}
	return model.Goal{}, fmt.Errorf("%w: %s", syncstore.ErrGoalNotFound, id)
}

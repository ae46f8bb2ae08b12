package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/templui/studytrack/internal/model"
	"github.com/templui/studytrack/internal/syncstore"
	"github.com/templui/studytrack/internal/theme"
)

func ActivitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activities",
		Aliases: []string{"activity"},
		Short:   "Manage study activities",
	}

	cmd.AddCommand(activitiesListCmd())
	cmd.AddCommand(activitiesAddCmd())
	cmd.AddCommand(activitiesEditCmd())
	cmd.AddCommand(activitiesStatusCmd())
	cmd.AddCommand(activitiesRemoveCmd())

	return cmd
}

type activityFlags struct {
	title, description, subject, target, icon, color string
}

func (f *activityFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "activity title")
	cmd.Flags().StringVar(&f.description, "description", "", "activity description")
	cmd.Flags().StringVar(&f.subject, "subject", "", "subject, e.g. Math")
	cmd.Flags().StringVar(&f.target, "target", "", "target date (yyyy-mm-dd)")
	cmd.Flags().StringVar(&f.icon, "icon", "", "icon name (default "+model.DefaultActivityIcon+")")
	cmd.Flags().StringVar(&f.color, "color", "", "hex color (default "+model.DefaultActivityColor+")")
}

func activitiesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List activities, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(w *workspace) error {
				err := w.activities.Fetch(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(w.out, theme.Activities(w.activities.Activities()))
				return nil
			})
		},
	}
}

func activitiesAddCmd() *cobra.Command {
	var f activityFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an activity, starting in progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			targetDate, err := parseTarget(f.target)
			if err != nil {
				return err
			}

			return run(cmd, func(w *workspace) error {
				err := w.activities.Save(cmd.Context(), model.Activity{
					Title:       f.title,
					Description: f.description,
					Subject:     f.subject,
					TargetDate:  targetDate,
					Icon:        f.icon,
					Color:       f.color,
				}, false, "")
				if err != nil {
					return err
				}
				fmt.Fprint(w.out, theme.Activities(w.activities.Activities()))
				return nil
			})
		},
	}
	f.register(cmd)

	return cmd
}

func activitiesEditCmd() *cobra.Command {
	var f activityFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the details of an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targetDate, err := parseTarget(f.target)
			if err != nil {
				return err
			}

			return run(cmd, func(w *workspace) error {
				activity, err := findActivity(w, cmd, args[0])
				if err != nil {
					return err
				}

				changed := cmd.Flags().Changed
				w.activities.RequestEdit(activity)
				w.activities.EditForm(func(form *syncstore.ActivityForm) {
					if changed("title") {
						form.Title = f.title
					}
					if changed("description") {
						form.Description = f.description
					}
					if changed("subject") {
						form.Subject = f.subject
					}
					if changed("target") {
						form.TargetDate = targetDate
					}
					if changed("icon") {
						form.Icon = f.icon
					}
					if changed("color") {
						form.Color = f.color
					}
				})

				err = w.activities.SaveForm(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(w.out, theme.Activities(w.activities.Activities()))
				return nil
			})
		},
	}
	f.register(cmd)

	return cmd
}

func activitiesStatusCmd() *cobra.Command {
	statuses := make([]string, 0, len(model.ActivityStatuses))
	for _, s := range model.ActivityStatuses {
		statuses = append(statuses, string(s))
	}

	return &cobra.Command{
		Use:       "status <id> <" + strings.Join(statuses, "|") + ">",
		Short:     "Move an activity to another status",
		Args:      cobra.ExactArgs(2),
		ValidArgs: statuses,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(w *workspace) error {
				err := w.activities.Fetch(cmd.Context())
				if err != nil {
					return err
				}
				err = w.activities.UpdateStatus(cmd.Context(), args[0], model.ActivityStatus(args[1]))
				if err != nil {
					return err
				}
				fmt.Fprint(w.out, theme.Activities(w.activities.Activities()))
				return nil
			})
		},
	}
}

func activitiesRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete an activity",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(w *workspace) error {
				activity, err := findActivity(w, cmd, args[0])
				if err != nil {
					return err
				}

				ok, err := confirm(fmt.Sprintf("Delete activity %q?", activity.Title), yes)
				if err != nil || !ok {
					return err
				}

				err = w.activities.Delete(cmd.Context(), activity.ID)
				if err != nil {
					return err
				}
				fmt.Fprint(w.out, theme.Activities(w.activities.Activities()))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	return cmd
}

func findActivity(w *workspace, cmd *cobra.Command, id string) (model.Activity, error) {
	err := w.activities.Fetch(cmd.Context())
	if err != nil {
		return model.Activity{}, err
	}
	for _, a := range w.activities.Activities() {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Activity{}, fmt.Errorf("%w: %s", syncstore.ErrActivityNotFound, id)
}

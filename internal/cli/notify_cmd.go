package cli

import (
	"fmt"
	"time"

	"github.com/simibol/planpoint/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newNotifyCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notify",
		Aliases: []string{"notifications"},
		Short:   "Show, dismiss and snooze session reminders",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List open notifications",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				resp, err := a.Notifications.List(cmd.Context(), a.now())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatNotifications(resp))
				return nil
			},
		},
		&cobra.Command{
			Use:   "dismiss NOTIFICATION_ID",
			Short: "Hide a notification for good",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.Notifications.Dismiss(cmd.Context(), args[0], a.now()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Dismissed %s.\n", args[0])
				return nil
			},
		},
		newNotifySnoozeCmd(a),
	)

	return cmd
}

func newNotifySnoozeCmd(a *App) *cobra.Command {
	var forDur time.Duration
	var until string

	cmd := &cobra.Command{
		Use:   "snooze NOTIFICATION_ID",
		Short: "Hide a notification until a later time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := a.now()
			var end time.Time
			switch {
			case until != "" && cmd.Flags().Changed("for"):
				return fmt.Errorf("use either --for or --until, not both")
			case until != "":
				t, err := parseLocalTime(until, a.location())
				if err != nil {
					return err
				}
				end = t
			case !cmd.Flags().Changed("for") && a.interactive():
				d, err := a.pickSnooze()
				if err != nil {
					return err
				}
				end = now.Add(d)
			default:
				end = now.Add(forDur)
			}
			if !end.After(now) {
				return fmt.Errorf("snooze must end in the future")
			}
			if err := a.Notifications.Snooze(cmd.Context(), args[0], end); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Snoozed %s until %s.\n", args[0], end.Format("Mon 02 Jan 15:04"))
			return nil
		},
	}

	cmd.Flags().DurationVar(&forDur, "for", time.Hour, "Snooze length, e.g. 30m or 2h")
	cmd.Flags().StringVar(&until, "until", "", "Snooze until a local time (YYYY-MM-DD HH:MM)")
	return cmd
}

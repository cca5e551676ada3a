package cli

import (
	"fmt"
	"log/slog"

	"github.com/simibol/planpoint/internal/app"
	"github.com/simibol/planpoint/internal/cli/formatter"
	"github.com/simibol/planpoint/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"session", "s"},
		Short:   "List scheduled sessions and update their status",
	}

	cmd.AddCommand(
		newSessionsListCmd(a),
		newSessionStatusCmd(a, "done", "Mark a session completed", domain.SessionCompleted),
		newSessionStatusCmd(a, "start", "Mark a session in progress", domain.SessionInProgress),
		newSessionStatusCmd(a, "reopen", "Return a session to planned", domain.SessionPlanned),
		newSessionStatusCmd(a, "todo", "Park a session as todo", domain.SessionTodo),
	)

	return cmd
}

func newSessionsListCmd(a *App) *cobra.Command {
	var noCatchUp bool
	from := newDayValue(a.location())
	to := newDayValue(a.location())
	statuses := &statusListValue{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions, moving overdue ones forward first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if !noCatchUp {
				resp, err := a.Reschedule.AutoCatchUp(ctx, a.now())
				if err != nil {
					// A failed catch-up leaves the stored plan untouched.
					slog.Warn("auto catch-up failed", slog.String("error", err.Error()))
				} else if resp.Moved > 0 {
					fmt.Fprintf(out, "%s\n\n", formatter.StyleYellow.Render(
						fmt.Sprintf("Moved %d overdue sessions forward.", resp.Moved)))
				}
			}

			sessions, err := a.Sessions.List(ctx, app.SessionListRequest{
				From:     from.Ptr(),
				To:       to.Ptr(),
				Statuses: statuses.statuses,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatSessions(sessions, a.today()))
			return nil
		},
	}

	cmd.Flags().Var(from, "from", "First day to include (YYYY-MM-DD)")
	cmd.Flags().Var(to, "to", "Last day to include (YYYY-MM-DD)")
	cmd.Flags().Var(statuses, "status", "Only these statuses (repeatable or comma-separated)")
	cmd.Flags().BoolVar(&noCatchUp, "no-catch-up", false, "Do not move overdue sessions before listing")

	return cmd
}

func newSessionStatusCmd(a *App, use, short string, status domain.SessionStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " SESSION_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSessionID(ctx, a, args[0])
			if err != nil {
				return err
			}
			s, err := a.Sessions.SetStatus(ctx, id, status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s\n",
				formatter.StatusPill(s.Status), formatter.TruncID(s.ID),
				domain.CoalesceStr(s.SubtaskTitle, s.MilestoneTitle))
			return nil
		},
	}
}

func newMilestonesCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "milestones",
		Aliases: []string{"milestone", "m"},
		Short:   "Inspect and remove imported milestones",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List imported milestones",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				milestones, err := a.Milestones.List(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMilestones(milestones, a.today()))
				return nil
			},
		},
		newMilestoneDeleteCmd(a),
	)

	return cmd
}

func newMilestoneDeleteCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete MILESTONE_ID",
		Short: "Delete a milestone and its scheduled sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveMilestoneID(ctx, a, args[0])
			if err != nil {
				return err
			}
			if !yes {
				if !a.interactive() {
					return fmt.Errorf("deleting milestone %s removes its sessions; rerun with --yes", id)
				}
				ok, err := a.confirm("Delete this milestone and its sessions?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted.")
					return nil
				}
			}
			removed, err := a.Milestones.Delete(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted milestone %s and %d sessions.\n", id, removed)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/simibol/planpoint/internal/app"
	"github.com/simibol/planpoint/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import assessments, milestones, busy blocks and preferences from YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.Import.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d assessments, %d milestones, %d busy blocks.\n",
				res.Assessments, res.Milestones, res.BusyBlocks)
			if res.PreferencesUpdated {
				fmt.Fprintln(out, formatter.Dim("Preferences updated."))
			}
			return nil
		},
	}
}

func newPlanCmd(a *App) *cobra.Command {
	var apply, yes, freshIDs bool
	start := newDayValue(a.location())

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview or apply a fresh plan from the imported milestones",
		Long: "Generates study sessions for every milestone. Without --apply the plan is\n" +
			"only previewed; with --apply it replaces all stored sessions.",
		Args: cobra.NoArgs,
	}
	prefs := addPreferenceFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		req := app.NewPlanRequest()
		req.Start = start.Ptr()
		req.FreshIDs = freshIDs
		req.Preferences = prefs()

		if !apply {
			resp, err := a.Plan.Preview(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(resp, a.today()))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Run with --apply to save this plan."))
			return nil
		}

		if !yes {
			existing, err := a.Sessions.List(ctx, app.SessionListRequest{})
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				if !a.interactive() {
					return fmt.Errorf("applying replaces %d stored sessions; rerun with --yes", len(existing))
				}
				ok, err := a.confirm(fmt.Sprintf("Replace %d stored sessions with a new plan?", len(existing)))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Plan not applied.")
					return nil
				}
			}
		}

		resp, err := a.Plan.Apply(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(resp, a.today()))
		return nil
	}

	cmd.Flags().Var(start, "start", "First day to plan (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&apply, "apply", false, "Save the plan, replacing all stored sessions")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the replace confirmation")
	cmd.Flags().BoolVar(&freshIDs, "fresh-ids", false, "Give every session a new random id")

	return cmd
}

func newRescheduleCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:       "reschedule overdue|rollover",
		Short:     "Move overdue sessions forward or roll this week's unfinished sessions into next week",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(app.RescheduleOverdue), string(app.RescheduleRollover)},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := app.ParseRescheduleMode(args[0])
			if err != nil {
				return err
			}
			resp, err := a.Reschedule.Reschedule(cmd.Context(), app.RescheduleRequest{Mode: mode})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReschedule(resp))
			return nil
		},
	}
}

func newWeeklyCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "weekly",
		Short: "Show planned versus completed hours per week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.Progress.Weekly(cmd.Context(), a.now())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeekly(resp))
			return nil
		},
	}
}

func newServeCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Serve == nil {
				return fmt.Errorf("the HTTP server is not configured")
			}
			return a.Serve(cmd.Context())
		},
	}
}

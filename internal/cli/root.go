package cli

import (
	"context"
	"time"

	"github.com/simibol/planpoint/internal/app"
	"github.com/simibol/planpoint/internal/domain"
	"github.com/spf13/cobra"
)

// App holds the use cases and terminal hooks the CLI commands run against.
type App struct {
	Plan          app.PlanUseCase
	Reschedule    app.RescheduleUseCase
	Sessions      app.SessionUseCase
	Milestones    app.MilestoneUseCase
	Notifications app.NotificationUseCase
	Progress      app.ProgressUseCase
	Import        app.ImportUseCase

	// Serve runs the HTTP API until ctx is cancelled. Nil disables "serve".
	Serve func(ctx context.Context) error

	// Confirm asks a yes/no question. Defaults to a huh prompt.
	Confirm func(title string) (bool, error)
	// PickSnooze asks for a snooze length. Defaults to a huh select.
	PickSnooze func() (time.Duration, error)
	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	Clock    func() time.Time
	Location *time.Location
}

func (a *App) now() time.Time {
	loc := a.location()
	if a.Clock != nil {
		return a.Clock().In(loc)
	}
	return time.Now().In(loc)
}

func (a *App) location() *time.Location {
	if a.Location != nil {
		return a.Location
	}
	return time.Local
}

func (a *App) today() time.Time {
	return domain.DayOf(a.now(), a.location())
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(title string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title)
	}
	return huhConfirm(title)
}

func (a *App) pickSnooze() (time.Duration, error) {
	if a.PickSnooze != nil {
		return a.PickSnooze()
	}
	return huhSnoozeSelect()
}

// NewRootCmd creates the top-level "planpoint" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "planpoint",
		Short:         "Study planner that turns milestones into scheduled sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newImportCmd(app),
		newPlanCmd(app),
		newRescheduleCmd(app),
		newSessionsCmd(app),
		newMilestonesCmd(app),
		newNotifyCmd(app),
		newWeeklyCmd(app),
		newServeCmd(app),
	)

	return root
}

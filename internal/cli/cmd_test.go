package cli

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/simibol/planpoint/internal/app"
	"github.com/simibol/planpoint/internal/domain"
	"github.com/simibol/planpoint/internal/repository"
	"github.com/simibol/planpoint/internal/service"
	"github.com/simibol/planpoint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monday is 2025-06-16, a Monday.
var monday = testutil.Day(2025, 6, 16)

const importYAML = `
assessments:
  - title: Essay
    due_date: "2025-06-27"
    weight: 30
milestones:
  - assessment_title: Essay
    title: Outline
    estimate_hours: 2
  - assessment_title: Essay
    title: Draft
    estimate_hours: 5
    target_date: "2025-06-24"
busy_blocks:
  - title: Lecture
    start: "2025-06-17T10:00"
    end: "2025-06-17T12:00"
`

type cliFixture struct {
	app    *App
	db     *sql.DB
	stores service.Stores
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T, now time.Time) *cliFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	stores := service.NewSQLiteStores(database, time.UTC)
	uow := testutil.NewTestUoW(database)
	settings := service.Settings{Location: time.UTC, Clock: func() time.Time { return now }}

	return &cliFixture{
		db:     database,
		stores: stores,
		app: &App{
			Plan:          service.NewPlannerService(stores, uow, settings),
			Reschedule:    service.NewRescheduleService(stores, uow, settings),
			Sessions:      service.NewSessionService(stores.Sessions, uow, settings),
			Milestones:    service.NewMilestoneService(stores.Milestones, uow, settings),
			Notifications: service.NewNotificationService(stores.Sessions, repository.NewSQLiteNotificationStateRepo(database), settings),
			Progress:      service.NewProgressService(stores.Sessions, settings),
			Import:        service.NewImportService(uow, settings),
			Clock:         func() time.Time { return now },
			Location:      time.UTC,
			// Serve, Confirm and IsInteractive left nil: non-interactive.
		},
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(a)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func importFixture(t *testing.T, a *App) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(importYAML), 0o600))
	out, err := executeCmd(t, a, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 assessments, 2 milestones, 1 busy blocks.")
}

func storedSessions(t *testing.T, f *cliFixture) []domain.PlannedSession {
	t.Helper()
	out, err := f.stores.Sessions.List(context.Background(), repository.SessionFilter{})
	require.NoError(t, err)
	return out
}

func TestPlanCmd_PreviewDoesNotPersist(t *testing.T) {
	f := testApp(t, monday.Add(8*time.Hour))
	importFixture(t, f.app)

	out, err := executeCmd(t, f.app, "plan")
	require.NoError(t, err)
	assert.Contains(t, out, "PLAN PREVIEW")
	assert.Contains(t, out, "Outline")
	assert.Contains(t, out, "Run with --apply")
	assert.Empty(t, storedSessions(t, f))
}

func TestPlanCmd_NoMilestones(t *testing.T) {
	f := testApp(t, monday.Add(8*time.Hour))

	_, err := executeCmd(t, f.app, "plan")
	require.Error(t, err)
	var pe *app.PlanError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, app.PlanErrNoMilestones, pe.Code)
}

func TestPlanCmd_ApplyRequiresConfirmationOverExistingPlan(t *testing.T) {
	f := testApp(t, monday.Add(8*time.Hour))
	importFixture(t, f.app)

	out, err := executeCmd(t, f.app, "plan", "--apply")
	require.NoError(t, err, "first apply has nothing to replace")
	assert.Contains(t, out, "PLAN APPLIED")
	first := storedSessions(t, f)
	require.NotEmpty(t, first)

	_, err = executeCmd(t, f.app, "plan", "--apply")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rerun with --yes")

	asked := ""
	f.app.IsInteractive = func() bool { return true }
	f.app.Confirm = func(title string) (bool, error) {
		asked = title
		return false, nil
	}
	out, err = executeCmd(t, f.app, "plan", "--apply")
	require.NoError(t, err)
	assert.Contains(t, out, "Plan not applied.")
	assert.Contains(t, asked, "Replace")

	out, err = executeCmd(t, f.app, "plan", "--apply", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "replaced")
	assert.Len(t, storedSessions(t, f), len(first))
}

func TestPlanCmd_PreferenceFlagsOverrideForRun(t *testing.T) {
	f := testApp(t, monday.Add(8*time.Hour))
	importFixture(t, f.app)

	_, err := executeCmd(t, f.app, "plan", "--apply", "--cap", "1", "--max-session", "60")
	require.NoError(t, err)
	for _, s := range storedSessions(t, f) {
		assert.LessOrEqual(t, s.DurationMin, 60)
	}
}

func TestPlanCmd_InvalidStartFlag(t *testing.T) {
	f := testApp(t, monday.Add(8*time.Hour))

	_, err := executeCmd(t, f.app, "plan", "--start", "16/06/2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestSessionsCmd_DoneByPrefix(t *testing.T) {
	f := testApp(t, monday.Add(8*time.Hour))
	importFixture(t, f.app)
	_, err := executeCmd(t, f.app, "plan", "--apply")
	require.NoError(t, err)

	target := storedSessions(t, f)[0]
	out, err := executeCmd(t, f.app, "sessions", "done", target.ID[:13])
	require.NoError(t, err)
	assert.Contains(t, out, "Done")

	got, err := f.stores.Sessions.GetByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, got.Status)

	out, err = executeCmd(t, f.app, "sessions", "list", "--status", "done")
	require.NoError(t, err)
	assert.Contains(t, out, "✔ Done")
	assert.NotContains(t, out, "○ Planned")
}

func TestSessionsCmd_StartCompletedIsRejected(t *testing.T) {
	f := testApp(t, monday.Add(8*time.Hour))
	s := testutil.NewTestSession("sess-1", monday.Add(9*time.Hour), 60, testutil.WithStatus(domain.SessionCompleted))
	require.NoError(t, f.stores.Sessions.UpsertMany(context.Background(), []domain.PlannedSession{*s}))

	_, err := executeCmd(t, f.app, "sessions", "start", "sess-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSessionsCmd_ListCatchesUpOverdue(t *testing.T) {
	now := monday.Add(13 * time.Hour)
	f := testApp(t, now)
	ctx := context.Background()
	overdue := testutil.NewTestSession("late-1", monday.Add(9*time.Hour), 60,
		testutil.WithMilestone("Essay", "Outline"), testutil.WithSessionDue(monday.AddDate(0, 0, 10)))
	require.NoError(t, f.stores.Sessions.UpsertMany(ctx, []domain.PlannedSession{*overdue}))

	out, err := executeCmd(t, f.app, "sessions", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Moved 1 overdue sessions forward.")

	got, err := f.stores.Sessions.GetByID(ctx, "late-1")
	require.NoError(t, err)
	assert.False(t, got.Start.Before(now))

	out, err = executeCmd(t, f.app, "sessions", "list", "--no-catch-up")
	require.NoError(t, err)
	assert.NotContains(t, out, "Moved")
}

func TestSessionsCmd_ListRejectsUnknownStatus(t *testing.T) {
	f := testApp(t, monday.Add(8*time.Hour))

	_, err := executeCmd(t, f.app, "sessions", "list", "--status", "paused")
	require.Error(t, err)
}

func TestMilestonesCmd_DeleteCascades(t *testing.T) {
	f := testApp(t, monday.Add(8*time.Hour))
	importFixture(t, f.app)
	_, err := executeCmd(t, f.app, "plan", "--apply")
	require.NoError(t, err)

	milestones, err := f.stores.Milestones.List(context.Background())
	require.NoError(t, err)
	var outline domain.Milestone
	for _, m := range milestones {
		if m.Title == "Outline" {
			outline = m
		}
	}
	require.NotEmpty(t, outline.ID)

	out, err := executeCmd(t, f.app, "milestones", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Outline")

	_, err = executeCmd(t, f.app, "milestones", "delete", outline.ID)
	require.Error(t, err, "non-interactive delete needs --yes")

	out, err = executeCmd(t, f.app, "milestones", "delete", outline.ID, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted milestone")

	for _, s := range storedSessions(t, f) {
		assert.NotEqual(t, "Outline", s.MilestoneTitle)
	}
}

func TestRescheduleCmd(t *testing.T) {
	f := testApp(t, monday.Add(8*time.Hour))

	out, err := executeCmd(t, f.app, "reschedule", "overdue")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to move.")

	_, err = executeCmd(t, f.app, "reschedule", "sideways")
	require.Error(t, err)
	var pe *app.PlanError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, app.PlanErrInvalidRange, pe.Code)
}

func TestNotifyCmd(t *testing.T) {
	now := monday.Add(11 * time.Hour)
	f := testApp(t, now)
	s := testutil.NewTestSession("sess-1", monday.Add(9*time.Hour), 30)
	require.NoError(t, f.stores.Sessions.UpsertMany(context.Background(), []domain.PlannedSession{*s}))

	out, err := executeCmd(t, f.app, "notify", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "sess-1:overdue")

	out, err = executeCmd(t, f.app, "notify", "snooze", "sess-1:overdue", "--for", "2h")
	require.NoError(t, err)
	assert.Contains(t, out, "Snoozed sess-1:overdue until Mon 16 Jun 13:00.")

	out, err = executeCmd(t, f.app, "notify", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "sess-1:overdue")

	_, err = executeCmd(t, f.app, "notify", "snooze", "sess-1:overdue", "--for", "1h", "--until", "2025-06-17 09:00")
	require.Error(t, err)

	_, err = executeCmd(t, f.app, "notify", "snooze", "sess-1:overdue", "--until", "2025-06-16 09:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "future")

	f.app.IsInteractive = func() bool { return true }
	f.app.PickSnooze = func() (time.Duration, error) { return 15 * time.Minute, nil }
	out, err = executeCmd(t, f.app, "notify", "snooze", "sess-1:due-now")
	require.NoError(t, err)
	assert.Contains(t, out, "until Mon 16 Jun 11:15.")

	_, err = executeCmd(t, f.app, "notify", "dismiss", "not-an-id")
	require.ErrorIs(t, err, service.ErrInvalidNotificationID)

	_, err = executeCmd(t, f.app, "notify", "dismiss", "sess-1:overdue")
	require.NoError(t, err)
}

func TestWeeklyCmd(t *testing.T) {
	f := testApp(t, monday.Add(8*time.Hour))

	out, err := executeCmd(t, f.app, "weekly")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-W25", "current week is listed even with no sessions")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "Total: 0h of 0h")

	importFixture(t, f.app)
	_, err = executeCmd(t, f.app, "plan", "--apply")
	require.NoError(t, err)

	out, err = executeCmd(t, f.app, "weekly")
	require.NoError(t, err)
	assert.Contains(t, out, "WEEKLY PROGRESS")
}

func TestServeCmd(t *testing.T) {
	f := testApp(t, monday)

	_, err := executeCmd(t, f.app, "serve")
	require.Error(t, err)

	called := false
	f.app.Serve = func(ctx context.Context) error {
		called = true
		return nil
	}
	_, err = executeCmd(t, f.app, "serve")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestResolveID(t *testing.T) {
	ids := []string{"abc123", "abd456", "abc"}

	got, err := resolveID("session", "abc", ids)
	require.NoError(t, err)
	assert.Equal(t, "abc", got, "exact match beats prefix")

	got, err = resolveID("session", "abd", ids)
	require.NoError(t, err)
	assert.Equal(t, "abd456", got)

	_, err = resolveID("session", "ab", ids)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matches 3 sessions")

	_, err = resolveID("session", "zzz", ids)
	require.Error(t, err)

	_, err = resolveID("session", "  ", ids)
	require.Error(t, err)
}

func TestFlagValues(t *testing.T) {
	d := newDayValue(time.UTC)
	require.NoError(t, d.Set("2025-06-16"))
	assert.Equal(t, monday, *d.Ptr())
	assert.Equal(t, "2025-06-16", d.String())
	assert.Error(t, d.Set("June 16"))

	var st statusListValue
	require.NoError(t, st.Set("done, todo"))
	require.NoError(t, st.Set("started"))
	assert.Equal(t, []domain.SessionStatus{domain.SessionCompleted, domain.SessionTodo, domain.SessionInProgress}, st.statuses)

	got, err := parseLocalTime("2025-06-16 09:30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, monday.Add(9*time.Hour+30*time.Minute), got)
	_, err = parseLocalTime("tomorrow", time.UTC)
	assert.Error(t, err)
	assert.True(t, strings.Contains(d.Type(), "date"))
}

package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/simibol/planpoint/internal/app"
	"github.com/simibol/planpoint/internal/domain"
	"github.com/simibol/planpoint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlannerService_PreviewDoesNotPersist(t *testing.T) {
	f := newFixture(t)
	f.seedMilestone(t, "Essay", "Draft", 3, testutil.Day(2025, 6, 27))
	now := at(monday, 8, 0)
	svc := NewPlannerService(f.stores, testutil.NewTestUoW(f.db), fixedSettings(now))

	resp, err := svc.Preview(context.Background(), app.NewPlanRequest())
	require.NoError(t, err)

	assert.False(t, resp.Applied)
	assert.True(t, resp.GeneratedAt.Equal(now))
	assert.Equal(t, 180, totalMinutes(resp.Result.Sessions))
	assert.Empty(t, resp.Result.Unplaced)
	for _, s := range resp.Result.Sessions {
		assert.False(t, s.Start.Before(now), "session %s starts before now", s.ID)
		assert.Equal(t, "Essay", s.AssessmentTitle)
	}
	assert.Empty(t, f.sessions(t))
}

func TestPlannerService_ApplyReplacesStoredPlan(t *testing.T) {
	f := newFixture(t)
	f.seedMilestone(t, "Essay", "Draft", 3, testutil.Day(2025, 6, 27))
	f.seedSessions(t, testutil.NewTestSession("stale", at(monday, 14, 0), 60))
	svc := NewPlannerService(f.stores, testutil.NewTestUoW(f.db), fixedSettings(at(monday, 8, 0)))

	resp, err := svc.Apply(context.Background(), app.NewPlanRequest())
	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Equal(t, 1, resp.Replaced)

	stored := f.sessions(t)
	require.Len(t, stored, len(resp.Result.Sessions))
	for _, s := range stored {
		assert.NotEqual(t, "stale", s.ID)
		assert.Equal(t, resp.Result.Version, s.Version)
	}
}

func TestPlannerService_ApplyIsDeterministicWithoutFreshIDs(t *testing.T) {
	f := newFixture(t)
	f.seedMilestone(t, "Essay", "Draft", 3, testutil.Day(2025, 6, 27))
	svc := NewPlannerService(f.stores, testutil.NewTestUoW(f.db), fixedSettings(at(monday, 8, 0)))
	ctx := context.Background()

	first, err := svc.Apply(ctx, app.NewPlanRequest())
	require.NoError(t, err)
	second, err := svc.Apply(ctx, app.NewPlanRequest())
	require.NoError(t, err)

	require.Equal(t, len(first.Result.Sessions), len(second.Result.Sessions))
	for i := range first.Result.Sessions {
		assert.Equal(t, first.Result.Sessions[i].ID, second.Result.Sessions[i].ID)
	}
	assert.Equal(t, len(first.Result.Sessions), second.Replaced)
}

func TestPlannerService_RequestPreferencesOverrideStored(t *testing.T) {
	f := newFixture(t)
	f.seedMilestone(t, "Essay", "Draft", 3, testutil.Day(2025, 6, 27))
	require.NoError(t, f.stores.Preferences.Save(context.Background(), domain.PreferencesInput{
		MaxSessionMinutes: domain.Ptr(90),
	}))
	svc := NewPlannerService(f.stores, testutil.NewTestUoW(f.db), fixedSettings(at(monday, 8, 0)))

	req := app.NewPlanRequest()
	req.Preferences.MaxSessionMinutes = domain.Ptr(60)
	resp, err := svc.Preview(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Result.Sessions, 3)
	for _, s := range resp.Result.Sessions {
		assert.LessOrEqual(t, s.DurationMin, 60)
	}
}

func TestPlannerService_NoMilestones(t *testing.T) {
	f := newFixture(t)
	svc := NewPlannerService(f.stores, testutil.NewTestUoW(f.db), fixedSettings(at(monday, 8, 0)))

	_, err := svc.Preview(context.Background(), app.NewPlanRequest())

	var planErr *app.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, app.PlanErrNoMilestones, planErr.Code)
}

func TestPlannerService_StartBeforeTodayIsInvalid(t *testing.T) {
	f := newFixture(t)
	f.seedMilestone(t, "Essay", "Draft", 3, testutil.Day(2025, 6, 27))
	svc := NewPlannerService(f.stores, testutil.NewTestUoW(f.db), fixedSettings(at(monday, 8, 0)))

	req := app.NewPlanRequest()
	req.Start = domain.Ptr(monday.AddDate(0, 0, -1))
	_, err := svc.Apply(context.Background(), req)

	var planErr *app.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, app.PlanErrInvalidRange, planErr.Code)
	assert.Empty(t, f.sessions(t))
}

func TestPlannerService_ApplyRollsBackOnWriteFailure(t *testing.T) {
	f := newFixture(t)
	f.seedMilestone(t, "Essay", "Draft", 3, testutil.Day(2025, 6, 27))
	f.seedSessions(t, testutil.NewTestSession("kept", at(monday, 14, 0), 60))
	boom := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: f.db, FailOn: 2, Err: boom}
	svc := NewPlannerService(f.stores, uow, fixedSettings(at(monday, 8, 0)))

	_, err := svc.Apply(context.Background(), app.NewPlanRequest())
	require.ErrorIs(t, err, boom)

	stored := f.sessions(t)
	require.Len(t, stored, 1)
	assert.Equal(t, "kept", stored[0].ID)
}

func TestPlannerService_ApplyReportsCorruptStoredPlan(t *testing.T) {
	f := newFixture(t)
	f.seedMilestone(t, "Essay", "Draft", 3, testutil.Day(2025, 6, 27))
	f.seedSessions(t, testutil.NewTestSession("odd", at(monday, 14, 0), 60))
	_, err := f.db.Exec(`UPDATE planned_sessions SET status = 'mystery' WHERE id = 'odd'`)
	require.NoError(t, err)
	svc := NewPlannerService(f.stores, testutil.NewTestUoW(f.db), fixedSettings(at(monday, 8, 0)))

	_, err = svc.Apply(context.Background(), app.NewPlanRequest())

	var planErr *app.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, app.PlanErrDataIntegrity, planErr.Code)
}

func TestPlannerService_ObserverReceivesOutcome(t *testing.T) {
	f := newFixture(t)
	f.seedMilestone(t, "Essay", "Draft", 3, testutil.Day(2025, 6, 27))
	obs := &recordingObserver{}
	svc := NewPlannerService(f.stores, testutil.NewTestUoW(f.db), fixedSettings(at(monday, 8, 0)), obs)

	resp, err := svc.Apply(context.Background(), app.NewPlanRequest())
	require.NoError(t, err)

	ev := obs.last(t)
	assert.Equal(t, "plan-apply", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, len(resp.Result.Sessions), ev.Fields["sessions"])
	assert.Equal(t, 0, ev.Fields["replaced"])
}

func TestLogUseCaseObserver_WritesStructuredEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	f := newFixture(t)
	svc := NewPlannerService(f.stores, testutil.NewTestUoW(f.db), fixedSettings(at(monday, 8, 0)), NewLogUseCaseObserver(logger))

	_, err := svc.Preview(context.Background(), app.NewPlanRequest())
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"service_use_case"`)
	assert.Contains(t, out, `"use_case":"plan-preview"`)
	assert.Contains(t, out, `"success":false`)
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, "NO_MILESTONES")
}

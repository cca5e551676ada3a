package service

import (
	"context"
	"testing"

	"github.com/simibol/planpoint/internal/app"
	"github.com/simibol/planpoint/internal/domain"
	"github.com/simibol/planpoint/internal/repository"
	"github.com/simibol/planpoint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_ListFiltersByDayAndStatus(t *testing.T) {
	f := newFixture(t)
	f.seedSessions(t,
		testutil.NewTestSession("mon", at(monday, 9, 0), 60),
		testutil.NewTestSession("tue", at(monday.AddDate(0, 0, 1), 9, 0), 60),
		testutil.NewTestSession("tue-done", at(monday.AddDate(0, 0, 1), 11, 0), 60, testutil.WithStatus(domain.SessionCompleted)),
		testutil.NewTestSession("wed", at(monday.AddDate(0, 0, 2), 9, 0), 60),
	)
	svc := NewSessionService(f.stores.Sessions, testutil.NewTestUoW(f.db), fixedSettings(at(monday, 8, 0)))

	tue := at(monday.AddDate(0, 0, 1), 15, 0)
	got, err := svc.List(context.Background(), app.SessionListRequest{
		From:     &tue,
		To:       &tue,
		Statuses: []domain.SessionStatus{domain.SessionPlanned},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tue", got[0].ID)
}

func TestSessionService_ListRejectsInvertedRange(t *testing.T) {
	f := newFixture(t)
	svc := NewSessionService(f.stores.Sessions, testutil.NewTestUoW(f.db), fixedSettings(at(monday, 8, 0)))

	from := monday.AddDate(0, 0, 3)
	to := monday
	_, err := svc.List(context.Background(), app.SessionListRequest{From: &from, To: &to})

	var planErr *app.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, app.PlanErrInvalidRange, planErr.Code)
}

func TestSessionService_SetStatusPersists(t *testing.T) {
	f := newFixture(t)
	f.seedSessions(t, testutil.NewTestSession("s1", at(monday, 9, 0), 60))
	now := at(monday, 10, 5)
	svc := NewSessionService(f.stores.Sessions, testutil.NewTestUoW(f.db), fixedSettings(now))
	ctx := context.Background()

	got, err := svc.SetStatus(ctx, "s1", domain.SessionCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, got.Status)

	stored, err := f.stores.Sessions.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, stored.Status)
	assert.True(t, stored.UpdatedAt.Equal(now))

	got, err = svc.SetStatus(ctx, "s1", domain.SessionPlanned)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionPlanned, got.Status)
}

func TestSessionService_SetStatusRejectsInvalidTransition(t *testing.T) {
	f := newFixture(t)
	f.seedSessions(t, testutil.NewTestSession("s1", at(monday, 9, 0), 60, testutil.WithStatus(domain.SessionCompleted)))
	svc := NewSessionService(f.stores.Sessions, testutil.NewTestUoW(f.db), fixedSettings(at(monday, 10, 0)))

	_, err := svc.SetStatus(context.Background(), "s1", domain.SessionInProgress)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	stored, err := f.stores.Sessions.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, stored.Status)
}

func TestSessionService_SetStatusUnknownSession(t *testing.T) {
	f := newFixture(t)
	svc := NewSessionService(f.stores.Sessions, testutil.NewTestUoW(f.db), fixedSettings(at(monday, 10, 0)))

	_, err := svc.SetStatus(context.Background(), "ghost", domain.SessionCompleted)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

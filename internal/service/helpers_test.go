package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/simibol/planpoint/internal/domain"
	"github.com/simibol/planpoint/internal/repository"
	"github.com/simibol/planpoint/internal/testutil"
	"github.com/stretchr/testify/require"
)

// monday is 2025-06-16, a Monday.
var monday = testutil.Day(2025, 6, 16)

func at(d time.Time, h, m int) time.Time {
	return d.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func fixedSettings(now time.Time) Settings {
	return Settings{Location: time.UTC, Clock: func() time.Time { return now }}
}

type fixture struct {
	db     *sql.DB
	stores Stores
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &fixture{db: database, stores: NewSQLiteStores(database, time.UTC)}
}

func (f *fixture) seedMilestone(t *testing.T, assessment, title string, hours float64, due time.Time) *domain.Milestone {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.stores.Assessments.Upsert(ctx, testutil.NewTestAssessment(assessment, due)))
	m := testutil.NewTestMilestone(assessment, title, hours, testutil.WithAssessmentDue(due))
	require.NoError(t, f.stores.Milestones.Upsert(ctx, m))
	return m
}

func (f *fixture) seedSessions(t *testing.T, sessions ...*domain.PlannedSession) {
	t.Helper()
	batch := make([]domain.PlannedSession, len(sessions))
	for i, s := range sessions {
		batch[i] = *s
	}
	require.NoError(t, f.stores.Sessions.UpsertMany(context.Background(), batch))
}

func (f *fixture) sessions(t *testing.T) []domain.PlannedSession {
	t.Helper()
	out, err := f.stores.Sessions.List(context.Background(), repository.SessionFilter{})
	require.NoError(t, err)
	return out
}

func totalMinutes(sessions []domain.PlannedSession) int {
	n := 0
	for _, s := range sessions {
		n += s.DurationMin
	}
	return n
}

// recordingObserver keeps every event it sees.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last(t *testing.T) UseCaseEvent {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.events)
	return o.events[len(o.events)-1]
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/simibol/planpoint/internal/domain"
	"github.com/simibol/planpoint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessmentRepo_UpsertByTitle(t *testing.T) {
	repo := NewSQLiteAssessmentRepo(testutil.NewTestDB(t), time.UTC)
	ctx := context.Background()

	essay := testutil.NewTestAssessment("Essay", testutil.Day(2025, 6, 27), testutil.WithWeight(30))
	require.NoError(t, repo.Upsert(ctx, essay))

	again := testutil.NewTestAssessment("Essay", testutil.Day(2025, 6, 30), testutil.WithWeight(40))
	require.NoError(t, repo.Upsert(ctx, again))

	got, err := repo.GetByTitle(ctx, "Essay")
	require.NoError(t, err)
	assert.Equal(t, essay.ID, got.ID, "existing row keeps its id")
	assert.True(t, got.DueDate.Equal(testutil.Day(2025, 6, 30)))
	assert.Equal(t, 40.0, got.Weight)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAssessmentRepo_ListOrdersByDueDate(t *testing.T) {
	repo := NewSQLiteAssessmentRepo(testutil.NewTestDB(t), time.UTC)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestAssessment("Undated", time.Time{})))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestAssessment("Exam", testutil.Day(2025, 7, 4))))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestAssessment("Essay", testutil.Day(2025, 6, 27))))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Essay", all[0].Title)
	assert.Equal(t, "Exam", all[1].Title)
	assert.Equal(t, "Undated", all[2].Title)
	assert.True(t, all[2].DueDate.IsZero())
}

func TestAssessmentRepo_NotFound(t *testing.T) {
	repo := NewSQLiteAssessmentRepo(testutil.NewTestDB(t), time.UTC)
	ctx := context.Background()

	_, err := repo.GetByTitle(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "nope"), ErrNotFound)
}

func TestMilestoneRepo_RoundTripAndUpsert(t *testing.T) {
	repo := NewSQLiteMilestoneRepo(testutil.NewTestDB(t), time.UTC)
	ctx := context.Background()

	target := testutil.Day(2025, 6, 20)
	m := testutil.NewTestMilestone("Essay", "Outline", 3,
		testutil.WithTargetDate(target),
		testutil.WithAssessmentDue(testutil.Day(2025, 6, 27)),
	)
	require.NoError(t, repo.Upsert(ctx, m))

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Outline", got.Title)
	assert.Equal(t, 3.0, got.EstimateHours)
	require.NotNil(t, got.TargetDate)
	assert.True(t, got.TargetDate.Equal(target))
	assert.True(t, got.AssessmentDueDate.Equal(testutil.Day(2025, 6, 27)))

	revised := testutil.NewTestMilestone("Essay", "Outline", 5)
	require.NoError(t, repo.Upsert(ctx, revised))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, m.ID, all[0].ID)
	assert.Equal(t, 5.0, all[0].EstimateHours)
	assert.Nil(t, all[0].TargetDate)
}

func TestMilestoneRepo_SameTitleUnderDifferentAssessments(t *testing.T) {
	repo := NewSQLiteMilestoneRepo(testutil.NewTestDB(t), time.UTC)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestMilestone("Essay", "Draft", 2)))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestMilestone("Report", "Draft", 4)))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMilestoneRepo_Delete(t *testing.T) {
	repo := NewSQLiteMilestoneRepo(testutil.NewTestDB(t), time.UTC)
	ctx := context.Background()

	m := testutil.NewTestMilestone("Essay", "Draft", 2)
	require.NoError(t, repo.Upsert(ctx, m))
	require.NoError(t, repo.Delete(ctx, m.ID))

	_, err := repo.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, m.ID), ErrNotFound)
}

func TestBusyBlockRepo_ListBetween(t *testing.T) {
	repo := NewSQLiteBusyBlockRepo(testutil.NewTestDB(t), time.UTC)
	ctx := context.Background()

	blocks := []domain.BusyBlock{
		{ID: "lecture", Title: "Lecture", Start: at(monday, 10, 0), End: at(monday, 12, 0)},
		{ID: "shift", Title: "Shift", Start: at(monday.AddDate(0, 0, 2), 13, 0), End: at(monday.AddDate(0, 0, 2), 17, 0)},
		{ID: "overnight", Title: "Travel", Start: at(monday.AddDate(0, 0, -1), 22, 0), End: at(monday, 2, 0)},
	}
	for i := range blocks {
		require.NoError(t, repo.Upsert(ctx, &blocks[i]))
	}

	got, err := repo.ListBetween(ctx, monday, monday.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "overnight", got[0].ID, "overlapping the window counts")
	assert.Equal(t, "lecture", got[1].ID)
	assert.True(t, got[1].Start.Equal(at(monday, 10, 0)))

	all, err := repo.ListBetween(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, repo.Delete(ctx, "shift"))
	assert.ErrorIs(t, repo.Delete(ctx, "shift"), ErrNotFound)
}

func TestPreferencesRepo_DefaultRowIsEmpty(t *testing.T) {
	repo := NewSQLitePreferencesRepo(testutil.NewTestDB(t))

	p, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.PreferencesInput{}, p)
}

func TestPreferencesRepo_SaveKeepsAbsentFields(t *testing.T) {
	repo := NewSQLitePreferencesRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	in := domain.PreferencesInput{
		DailyCapHours: domain.Ptr(2.5),
		AllowWeekends: domain.Ptr(true),
		StartHour:     domain.Ptr(8),
	}
	require.NoError(t, repo.Save(ctx, in))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, got)
	assert.Nil(t, got.MinSessionMinutes)
}

func TestPreferencesRepo_NotFoundWhenRowDeleted(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePreferencesRepo(database)
	ctx := context.Background()

	_, err := database.ExecContext(ctx, `DELETE FROM planner_preferences`)
	require.NoError(t, err)

	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

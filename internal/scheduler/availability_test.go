package scheduler

import (
	"testing"
	"time"

	"github.com/simibol/planpoint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildOne(t *testing.T, in AvailabilityInput) DayAvailability {
	t.Helper()
	if in.To.IsZero() {
		in.To = in.From
	}
	if in.Prefs == (domain.PlannerPreferences{}) {
		in.Prefs = defaultPrefs()
	}
	days := BuildAvailability(in)
	require.Len(t, days, 1)
	return days[0]
}

func TestBuildAvailability_FreeWeekday(t *testing.T) {
	d := buildOne(t, AvailabilityInput{From: monday})
	assert.False(t, d.IsWeekend)
	assert.Equal(t, []Slot{{Start: 540, End: 1080}}, d.Slots)
	assert.Equal(t, 240, d.CapacityMin, "capped at the daily cap")
}

func TestBuildAvailability_WeekendDisallowed(t *testing.T) {
	saturday := day(2025, 6, 21)
	d := buildOne(t, AvailabilityInput{From: saturday})
	assert.True(t, d.IsWeekend)
	assert.Empty(t, d.Slots)
	assert.Zero(t, d.CapacityMin)

	prefs := defaultPrefs()
	prefs.AllowWeekends = true
	d = buildOne(t, AvailabilityInput{From: saturday, Prefs: prefs})
	assert.Equal(t, 240, d.CapacityMin)
}

func TestBuildAvailability_BusyBlockSplitsSlot(t *testing.T) {
	d := buildOne(t, AvailabilityInput{
		From: monday,
		Busy: []domain.BusyBlock{{ID: "lunch", Start: at(monday, 12, 0), End: at(monday, 13, 0)}},
	})
	assert.Equal(t, []Slot{{Start: 540, End: 720}, {Start: 780, End: 1080}}, d.Slots)
}

func TestBuildAvailability_BusyBlockTrimsEdges(t *testing.T) {
	d := buildOne(t, AvailabilityInput{
		From: monday,
		Busy: []domain.BusyBlock{
			{ID: "early", Start: at(monday, 7, 0), End: at(monday, 10, 30)},
			{ID: "late", Start: at(monday, 16, 0), End: at(monday, 20, 0)},
		},
	})
	assert.Equal(t, []Slot{{Start: 630, End: 960}}, d.Slots)
}

func TestBuildAvailability_FullDayBusyHasNoCapacity(t *testing.T) {
	d := buildOne(t, AvailabilityInput{
		From: monday,
		Busy: []domain.BusyBlock{{ID: "conf", Start: at(monday, 8, 0), End: at(monday, 19, 0)}},
	})
	assert.Empty(t, d.Slots)
	assert.Zero(t, d.CapacityMin)
}

func TestBuildAvailability_CapacityLimitedByFreeTime(t *testing.T) {
	d := buildOne(t, AvailabilityInput{
		From: monday,
		Busy: []domain.BusyBlock{{ID: "lab", Start: at(monday, 9, 0), End: at(monday, 16, 0)}},
	})
	assert.Equal(t, []Slot{{Start: 960, End: 1080}}, d.Slots)
	assert.Equal(t, 120, d.CapacityMin)
}

func TestBuildAvailability_BlockAcrossMidnight(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	days := BuildAvailability(AvailabilityInput{
		From:  monday,
		To:    tuesday,
		Prefs: defaultPrefs(),
		Busy:  []domain.BusyBlock{{ID: "trip", Start: at(monday, 17, 0), End: at(tuesday, 10, 0)}},
	})
	require.Len(t, days, 2)
	assert.Equal(t, []Slot{{Start: 540, End: 1020}}, days[0].Slots)
	assert.Equal(t, []Slot{{Start: 600, End: 1080}}, days[1].Slots)
}

func TestBuildAvailability_PartialMinutesRoundOutward(t *testing.T) {
	d := buildOne(t, AvailabilityInput{
		From: monday,
		Busy: []domain.BusyBlock{{
			ID:    "call",
			Start: at(monday, 12, 0).Add(30 * time.Second),
			End:   at(monday, 12, 30).Add(10 * time.Second),
		}},
	})
	assert.Equal(t, []Slot{{Start: 540, End: 720}, {Start: 751, End: 1080}}, d.Slots)
}

func TestBuildAvailability_ReservedSessionsTakeTimeAndHours(t *testing.T) {
	d := buildOne(t, AvailabilityInput{
		From: monday,
		Reserved: []domain.PlannedSession{{
			ID:          "kept",
			Date:        monday,
			Start:       at(monday, 9, 0),
			End:         at(monday, 10, 45),
			DurationMin: 105,
		}},
	})
	assert.Equal(t, []Slot{{Start: 645, End: 1080}}, d.Slots)
	assert.Equal(t, 135, d.CapacityMin)
}

func TestBuildAvailability_NotBeforeBlocksElapsedTime(t *testing.T) {
	d := buildOne(t, AvailabilityInput{From: monday, NotBefore: at(monday, 14, 30)})
	assert.Equal(t, []Slot{{Start: 870, End: 1080}}, d.Slots)
	assert.Equal(t, 210, d.CapacityMin)
}

func TestBuildAvailability_Location(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	localMonday := time.Date(2025, 6, 16, 0, 0, 0, 0, loc)
	// 02:00-04:00 UTC is 12:00-14:00 in UTC+10.
	d := buildOne(t, AvailabilityInput{
		From:     localMonday,
		Location: loc,
		Busy: []domain.BusyBlock{{
			ID:    "seminar",
			Start: time.Date(2025, 6, 16, 2, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 6, 16, 4, 0, 0, 0, time.UTC),
		}},
	})
	assert.Equal(t, []Slot{{Start: 540, End: 720}, {Start: 840, End: 1080}}, d.Slots)
}

func TestBuildAvailability_DSTDayUsesWallClock(t *testing.T) {
	loc := sydney(t)
	sunday := time.Date(2025, 10, 5, 0, 0, 0, 0, loc)
	prefs := defaultPrefs()
	prefs.AllowWeekends = true

	d := buildOne(t, AvailabilityInput{
		From:     sunday,
		Prefs:    prefs,
		Location: loc,
		Busy: []domain.BusyBlock{{
			ID:    "tutorial",
			Start: time.Date(2025, 10, 5, 9, 0, 0, 0, loc),
			End:   time.Date(2025, 10, 5, 11, 0, 0, 0, loc),
		}},
		NotBefore: time.Date(2025, 10, 5, 8, 30, 0, 0, loc),
	})
	assert.Equal(t, []Slot{{Start: 660, End: 1080}}, d.Slots)

	d = buildOne(t, AvailabilityInput{
		From:     sunday,
		Prefs:    prefs,
		Location: loc,
		Reserved: []domain.PlannedSession{{
			ID:          "kept",
			Date:        sunday,
			Start:       time.Date(2025, 10, 5, 14, 0, 0, 0, loc),
			End:         time.Date(2025, 10, 5, 15, 0, 0, 0, loc),
			DurationMin: 60,
		}},
	})
	assert.Equal(t, []Slot{{Start: 540, End: 840}, {Start: 900, End: 1080}}, d.Slots)
}

func TestPlanMilestones_DSTDayAvoidsBusyBlock(t *testing.T) {
	loc := sydney(t)
	sunday := time.Date(2025, 10, 5, 0, 0, 0, 0, loc)
	busy := domain.BusyBlock{
		ID:    "tutorial",
		Start: time.Date(2025, 10, 5, 9, 0, 0, 0, loc),
		End:   time.Date(2025, 10, 5, 11, 0, 0, 0, loc),
	}

	result := PlanMilestones(
		[]domain.Milestone{milestone("Essay", "Outline", 1, sunday)},
		nil,
		domain.PreferencesInput{AllowWeekends: domain.Ptr(true)},
		PlanOptions{Start: sunday, Now: sunday, Version: 1, Location: loc, BusyBlocks: []domain.BusyBlock{busy}},
	)

	require.Len(t, result.Sessions, 1)
	s := result.Sessions[0]
	assert.Equal(t, time.Date(2025, 10, 5, 11, 0, 0, 0, loc), s.Start)
	assert.False(t, s.Start.Before(busy.End) && busy.Start.Before(s.End), "session overlaps the busy block")
}

func TestSubtractIntervals_DropsEmpty(t *testing.T) {
	got := subtractIntervals([]Slot{{Start: 0, End: 100}}, []Slot{{Start: 0, End: 50}, {Start: 50, End: 100}})
	assert.Empty(t, got)
}

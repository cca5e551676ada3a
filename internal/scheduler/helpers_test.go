package scheduler

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/simibol/planpoint/internal/domain"
)

// 2025-06-16 is a Monday.
var (
	monday  = day(2025, 6, 16)
	testNow = monday.Add(8 * time.Hour)
)

// sydney moves its clocks forward from 02:00 to 03:00 on 2025-10-05.
func sydney(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Sydney")
	if err != nil {
		t.Fatalf("loading Australia/Sydney: %v", err)
	}
	return loc
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(d time.Time, hour, minute int) time.Time {
	return d.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func defaultPrefs() domain.PlannerPreferences {
	return NormalizePreferences(domain.PreferencesInput{})
}

func milestone(assessment, title string, hours float64, due time.Time) domain.Milestone {
	return domain.Milestone{
		Title:             title,
		EstimateHours:     hours,
		AssessmentTitle:   assessment,
		AssessmentDueDate: due,
	}
}

func planOpts() PlanOptions {
	return PlanOptions{Start: monday, Now: testNow, Version: 1}
}

func sessionsOn(result domain.PlanResult, d time.Time) []domain.PlannedSession {
	var out []domain.PlannedSession
	for _, s := range result.Sessions {
		if domain.SameDay(s.Date, d) {
			out = append(out, s)
		}
	}
	return out
}

func warningFor(result domain.PlanResult, sessionID string) *domain.PlanWarning {
	for i := range result.Warnings {
		if result.Warnings[i].SessionID == sessionID {
			return &result.Warnings[i]
		}
	}
	return nil
}

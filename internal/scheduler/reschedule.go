package scheduler

import (
	"sort"
	"time"

	"github.com/simibol/planpoint/internal/domain"
)

type RescheduleOptions struct {
	Start      time.Time
	Now        time.Time
	BusyBlocks []domain.BusyBlock

	// Reserved are sessions that stay where they are. Their time is blocked
	// and their hours count against the daily cap.
	Reserved  []domain.PlannedSession
	NotBefore time.Time

	// Assessments supply weights; missing titles fall back to the default.
	Assessments []domain.Assessment
	Weights     *ScoringWeights
	Version     int64
	Location    *time.Location
}

// RescheduleSessions re-places a subset of existing sessions from a new start
// date. Completed sessions are never moved. Results keep their ids and record
// the date they were first rolled from.
func RescheduleSessions(sessions []domain.PlannedSession, prefsIn domain.PreferencesInput, opts RescheduleOptions) domain.PlanResult {
	plan := PlanOptions{
		Start:      opts.Start,
		Now:        opts.Now,
		BusyBlocks: opts.BusyBlocks,
		Weights:    opts.Weights,
		Version:    opts.Version,
		Location:   opts.Location,
		Reserved:   opts.Reserved,
		NotBefore:  opts.NotBefore,
	}
	plan.normalize()
	prefs := NormalizePreferences(prefsIn)

	weights := make(map[string]float64, len(opts.Assessments))
	for i := range opts.Assessments {
		weights[opts.Assessments[i].Title] = opts.Assessments[i].EffectiveWeight()
	}

	var pending []domain.PlannedSession
	for _, s := range sessions {
		if s.IsCompleted() {
			continue
		}
		pending = append(pending, s)
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Start.Before(pending[j].Start)
	})

	perMilestone := make(map[string]int)
	for _, s := range pending {
		perMilestone[s.AssessmentTitle+"\x00"+s.MilestoneTitle]++
	}

	seen := make(map[string]int)
	subtasks := make([]Subtask, 0, len(pending))
	for _, s := range pending {
		key := s.AssessmentTitle + "\x00" + s.MilestoneTitle
		order := seen[key]
		seen[key]++

		weight, ok := weights[s.AssessmentTitle]
		if !ok {
			weight = domain.DefaultAssessmentWeight
		}

		rolledFrom := s.Date
		if s.RolledFromDate != nil {
			rolledFrom = *s.RolledFromDate
		}

		var due time.Time
		if !s.AssessmentDueDate.IsZero() {
			due = domain.DayOf(s.AssessmentDueDate, plan.Location)
		}

		subtasks = append(subtasks, Subtask{
			ID:                s.ID,
			AssessmentTitle:   s.AssessmentTitle,
			AssessmentDueDate: s.AssessmentDueDate,
			MilestoneTitle:    s.MilestoneTitle,
			SubtaskTitle:      s.SubtaskTitle,
			DurationMin:       s.DurationMin,
			Order:             order,
			DueDate:           due,
			WeightScore:       weight + chunkBonus(perMilestone[key]),
			Notes:             s.Notes,
			Status:            s.Status,
			BlockedBy:         s.BlockedBy,
			RolledFromDate:    &rolledFrom,
			CreatedAt:         s.CreatedAt,
		})
	}

	return allocateOver(subtasks, prefs, plan)
}

// SelectOverdue returns unfinished sessions whose end has already passed.
func SelectOverdue(sessions []domain.PlannedSession, now time.Time) []domain.PlannedSession {
	var out []domain.PlannedSession
	for _, s := range sessions {
		if s.IsCompleted() || s.End.After(now) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// SelectWeekRollover returns unfinished sessions scheduled in the Monday
// week containing now.
func SelectWeekRollover(sessions []domain.PlannedSession, now time.Time, loc *time.Location) []domain.PlannedSession {
	weekStart := domain.WeekStart(domain.DayOf(now, loc))
	weekEnd := weekStart.AddDate(0, 0, 7)
	var out []domain.PlannedSession
	for _, s := range sessions {
		if s.IsCompleted() {
			continue
		}
		day := domain.DayOf(s.Date, loc)
		if day.Before(weekStart) || !day.Before(weekEnd) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// NextWeekStart returns the Monday after the week containing now.
func NextWeekStart(now time.Time, loc *time.Location) time.Time {
	return domain.WeekStart(domain.DayOf(now, loc)).AddDate(0, 0, 7)
}

// ExcludeSessions returns the sessions that do not share an id with moved.
func ExcludeSessions(sessions []domain.PlannedSession, moved []domain.PlannedSession) []domain.PlannedSession {
	skip := make(map[string]bool, len(moved))
	for _, s := range moved {
		skip[s.ID] = true
	}
	var out []domain.PlannedSession
	for _, s := range sessions {
		if !skip[s.ID] {
			out = append(out, s)
		}
	}
	return out
}

package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/simibol/planpoint/internal/domain"
)

// AllocateInput carries everything one greedy allocation pass needs. Subtasks
// must already have ids.
type AllocateInput struct {
	Subtasks []Subtask
	Days     []DayAvailability
	Start    time.Time
	Prefs    domain.PlannerPreferences
	Weights  ScoringWeights
	Version  int64
	Now      time.Time
	Location *time.Location
}

type dayState struct {
	avail     DayAvailability
	workedMin int
	slots     []Slot
	load      map[string]int
	sessions  []domain.PlannedSession
}

type candidate struct {
	idx   int
	score float64
}

// Allocate places subtasks greedily, in canonical order, on the best-scoring
// day that still has room. Subtasks that fit nowhere become at-risk
// placeholders in Unplaced.
func Allocate(in AllocateInput) domain.PlanResult {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	start := domain.DayOf(in.Start, loc)

	subtasks := append([]Subtask(nil), in.Subtasks...)
	SortSubtasks(subtasks)

	days := make([]*dayState, 0, len(in.Days))
	for _, d := range in.Days {
		days = append(days, &dayState{
			avail: d,
			slots: append([]Slot(nil), d.Slots...),
			load:  make(map[string]int),
		})
	}

	result := domain.PlanResult{Version: in.Version}
	lastByMilestone := make(map[string]string)

	for _, st := range subtasks {
		due := st.DueDate
		if due.IsZero() {
			due = start
		}

		primary, fallback := candidate{idx: -1}, candidate{idx: -1}
		sawRoom := false
		for i, d := range days {
			if d.avail.CapacityMin <= 0 || d.avail.Date.Before(start) {
				continue
			}
			if d.workedMin+st.DurationMin > d.avail.CapacityMin {
				continue
			}
			if firstFit(d.slots, st.DurationMin) < 0 {
				sawRoom = true
				continue
			}

			daysUntil := domain.DaysBetween(d.avail.Date, due)
			score := ScoreDay(DayScoreInput{
				WorkedMin:      d.workedMin,
				CapacityMin:    d.avail.CapacityMin,
				AssessmentLoad: d.load[st.AssessmentTitle],
				DaysUntilDue:   daysUntil,
				WeightScore:    st.WeightScore,
			}, in.Weights)

			// Strict less-than keeps the earliest day on ties.
			if daysUntil >= 0 {
				if primary.idx < 0 || score < primary.score {
					primary = candidate{idx: i, score: score}
				}
			} else if fallback.idx < 0 || score < fallback.score {
				fallback = candidate{idx: i, score: score}
			}
		}

		chosen := primary.idx
		if chosen < 0 {
			chosen = fallback.idx
		}

		var session domain.PlannedSession
		placed := false
		if chosen >= 0 {
			session, placed = place(days[chosen], st, in.Prefs)
		}

		if st.Order > 0 {
			if prev, ok := lastByMilestone[st.milestoneKey()]; ok {
				st.BlockedBy = prev
			}
		}

		if !placed {
			session = placeholder(st, due, loc)
			stampSession(&session, st, in)
			session.RiskLevel = domain.RiskAtRisk
			result.Unplaced = append(result.Unplaced, session)
			result.Warnings = append(result.Warnings, unplacedWarning(&session, due, sawRoom))
			lastByMilestone[st.milestoneKey()] = session.ID
			continue
		}

		stampSession(&session, st, in)
		session.RiskLevel = ClassifyRisk(true, session.Date, due)
		if w := riskWarning(session.RiskLevel, &session, due); w != nil {
			result.Warnings = append(result.Warnings, *w)
		}
		days[chosen].sessions = append(days[chosen].sessions, session)
		result.Sessions = append(result.Sessions, session)
		lastByMilestone[st.milestoneKey()] = session.ID
	}

	for _, d := range days {
		sort.SliceStable(d.sessions, func(i, j int) bool {
			return d.sessions[i].Start.Before(d.sessions[j].Start)
		})
		result.Days = append(result.Days, domain.DaySummary{
			Date:        d.avail.Date,
			IsWeekend:   d.avail.IsWeekend,
			CapacityMin: d.avail.CapacityMin,
			TotalMin:    d.workedMin,
			Sessions:    d.sessions,
		})
	}
	return result
}

// firstFit returns the index of the first slot that can hold minutes, or -1.
func firstFit(slots []Slot, minutes int) int {
	for i, s := range slots {
		if s.Len() >= minutes {
			return i
		}
	}
	return -1
}

// place books the subtask into the day's first fitting slot and updates the
// day's counters. A focus break is reserved after the session unless the day
// is now full.
func place(d *dayState, st Subtask, prefs domain.PlannerPreferences) (domain.PlannedSession, bool) {
	i := firstFit(d.slots, st.DurationMin)
	if i < 0 {
		return domain.PlannedSession{}, false
	}
	startMin := d.slots[i].Start
	endMin := startMin + st.DurationMin

	d.workedMin += st.DurationMin
	d.load[st.AssessmentTitle]++

	next := endMin
	if d.workedMin < d.avail.CapacityMin {
		next += prefs.FocusBlockMinutes
	}
	if next >= d.slots[i].End {
		d.slots = append(d.slots[:i], d.slots[i+1:]...)
	} else {
		d.slots[i].Start = next
	}

	return domain.PlannedSession{
		Date:        d.avail.Date,
		Start:       domain.AtMinute(d.avail.Date, startMin),
		End:         domain.AtMinute(d.avail.Date, endMin),
		DurationMin: st.DurationMin,
	}, true
}

func placeholder(st Subtask, due time.Time, loc *time.Location) domain.PlannedSession {
	day := domain.DayOf(due, loc)
	return domain.PlannedSession{
		Date:        day,
		Start:       domain.AtMinute(day, 9*60),
		End:         domain.AtMinute(day, 10*60),
		DurationMin: st.DurationMin,
	}
}

// stampSession copies the subtask's identity and run metadata onto a session.
func stampSession(s *domain.PlannedSession, st Subtask, in AllocateInput) {
	s.ID = st.ID
	s.AssessmentTitle = st.AssessmentTitle
	s.AssessmentDueDate = st.AssessmentDueDate
	s.MilestoneTitle = st.MilestoneTitle
	s.SubtaskTitle = st.SubtaskTitle
	s.Notes = st.Notes
	s.Status = st.Status
	if s.Status == "" {
		s.Status = domain.SessionPlanned
	}
	s.Version = in.Version
	s.BlockedBy = st.BlockedBy
	s.RolledFromDate = st.RolledFromDate
	s.CreatedAt = st.CreatedAt
	if s.CreatedAt.IsZero() {
		s.CreatedAt = in.Now
	}
	s.UpdatedAt = in.Now
}

func unplacedWarning(s *domain.PlannedSession, due time.Time, conflict bool) domain.PlanWarning {
	if conflict {
		return domain.PlanWarning{
			Type:      domain.WarningConflict,
			Message:   fmt.Sprintf("Could not place %s", s.SubtaskTitle),
			Detail:    fmt.Sprintf("Busy blocks left no free slot of %d minutes before %s, although daily capacity remained.", s.DurationMin, due.Format(domain.DateLayout)),
			SessionID: s.ID,
		}
	}
	return domain.PlanWarning{
		Type:      domain.WarningCapacity,
		Message:   fmt.Sprintf("Could not place %s", s.SubtaskTitle),
		Detail:    fmt.Sprintf("No day had %d free minutes of capacity around %s.", s.DurationMin, due.Format(domain.DateLayout)),
		SessionID: s.ID,
	}
}

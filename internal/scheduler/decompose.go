package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/simibol/planpoint/internal/domain"
)

// Subtask is one session-sized chunk of a milestone. It only lives for the
// duration of a planning run.
type Subtask struct {
	ID                string
	AssessmentTitle   string
	AssessmentDueDate time.Time
	MilestoneTitle    string
	SubtaskTitle      string
	DurationMin       int
	Order             int
	DueDate           time.Time
	WeightScore       float64
	Notes             string

	// Carried over when a placed session is turned back into a subtask.
	Status         domain.SessionStatus
	BlockedBy      string
	RolledFromDate *time.Time
	CreatedAt      time.Time
}

func (s *Subtask) milestoneKey() string {
	return s.AssessmentTitle + "\x00" + s.MilestoneTitle
}

// SplitMinutes cuts total into session lengths within [minMin, maxMin]. When
// less than half a minimum session would be left over, the remainder is folded
// into the last chunk instead of becoming a degenerate trailing session.
func SplitMinutes(total, minMin, maxMin int) []int {
	if total <= 0 {
		return nil
	}
	var chunks []int
	remaining := total
	for remaining > 0 {
		slice := clamp(remaining, minMin, maxMin)
		left := remaining - slice
		if 2*left < minMin {
			chunks = append(chunks, slice+left)
			break
		}
		chunks = append(chunks, slice)
		remaining = left
	}
	return chunks
}

// Decompose splits a milestone into ordered subtasks. Ids are left empty; the
// caller decides whether they are derived or drawn from an IDSource.
func Decompose(m domain.Milestone, weight float64, prefs domain.PlannerPreferences, loc *time.Location) []Subtask {
	hours := math.Max(m.EstimateHours, 1)
	total := int(math.Round(hours * 60))
	chunks := SplitMinutes(total, prefs.MinSessionMinutes, prefs.MaxSessionMinutes)
	if weight <= 0 {
		weight = domain.DefaultAssessmentWeight
	}
	weightScore := weight + chunkBonus(len(chunks))

	due := subtaskDueDate(m, loc)
	var assessmentDue time.Time
	if !m.AssessmentDueDate.IsZero() {
		assessmentDue = domain.DayOf(m.AssessmentDueDate, loc)
	}
	out := make([]Subtask, 0, len(chunks))
	for i, minutes := range chunks {
		title := m.Title
		if len(chunks) > 1 {
			title = fmt.Sprintf("%s (part %d/%d)", m.Title, i+1, len(chunks))
		}
		out = append(out, Subtask{
			AssessmentTitle:   m.AssessmentTitle,
			AssessmentDueDate: assessmentDue,
			MilestoneTitle:    m.Title,
			SubtaskTitle:      title,
			DurationMin:       minutes,
			Order:             i,
			DueDate:           due,
			WeightScore:       weightScore,
			Notes:             fmt.Sprintf("Session %d of %d for %s", i+1, len(chunks), domain.CoalesceStr(m.AssessmentTitle, m.Title)),
			Status:            domain.SessionPlanned,
		})
	}
	return out
}

// chunkBonus shrinks as a milestone is split into more sessions, so heavily
// split milestones do not crowd out everything else.
func chunkBonus(chunks int) float64 {
	if chunks <= 0 {
		return 0
	}
	return 10 / float64(chunks)
}

// subtaskDueDate prefers the milestone's own target date, never later than the
// assessment deadline it feeds into.
func subtaskDueDate(m domain.Milestone, loc *time.Location) time.Time {
	due := m.AssessmentDueDate
	if m.TargetDate != nil && (due.IsZero() || m.TargetDate.Before(due)) {
		due = *m.TargetDate
	}
	if due.IsZero() {
		return time.Time{}
	}
	return domain.DayOf(due, loc)
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

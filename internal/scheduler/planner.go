package scheduler

import (
	"time"

	"github.com/simibol/planpoint/internal/domain"
)

// horizonPadDays extends the planning horizon past the latest due date so
// late work still has somewhere to land.
const horizonPadDays = 7

type PlanOptions struct {
	Start      time.Time
	Now        time.Time
	BusyBlocks []domain.BusyBlock

	// FreshIDs draws ids from IDs instead of deriving them from the
	// milestone, so repeated runs produce distinct sessions.
	FreshIDs bool
	IDs      IDSource

	Weights  *ScoringWeights
	Version  int64 // zero means Now in Unix milliseconds
	Location *time.Location

	// Reserved and NotBefore are passed through to the availability
	// calculator.
	Reserved  []domain.PlannedSession
	NotBefore time.Time
}

func (o *PlanOptions) normalize() {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.Start.IsZero() {
		o.Start = o.Now
	}
	if o.Version == 0 {
		o.Version = o.Now.UnixMilli()
	}
	if o.IDs == nil {
		o.IDs = UUIDSource{}
	}
}

func (o *PlanOptions) weights() ScoringWeights {
	if o.Weights != nil {
		return *o.Weights
	}
	return DefaultWeights()
}

// PlanMilestones builds a complete plan from scratch. With default options
// session ids are derived from each chunk's identity, so planning the same
// inputs twice yields the same sessions.
func PlanMilestones(milestones []domain.Milestone, assessments []domain.Assessment, prefsIn domain.PreferencesInput, opts PlanOptions) domain.PlanResult {
	opts.normalize()
	prefs := NormalizePreferences(prefsIn)

	byTitle := make(map[string]*domain.Assessment, len(assessments))
	for i := range assessments {
		byTitle[assessments[i].Title] = &assessments[i]
	}

	var subtasks []Subtask
	for _, m := range milestones {
		a := byTitle[m.AssessmentTitle]
		if m.AssessmentDueDate.IsZero() && a != nil {
			m.AssessmentDueDate = a.DueDate
		}
		for _, st := range Decompose(m, a.EffectiveWeight(), prefs, opts.Location) {
			if opts.FreshIDs {
				st.ID = opts.IDs.NewID()
			} else {
				st.ID = StableSubtaskID(st.AssessmentTitle, st.MilestoneTitle, st.Order)
			}
			st.CreatedAt = opts.Now
			subtasks = append(subtasks, st)
		}
	}

	return allocateOver(subtasks, prefs, opts)
}

// allocateOver builds availability for the horizon the subtasks need and runs
// the allocator over it.
func allocateOver(subtasks []Subtask, prefs domain.PlannerPreferences, opts PlanOptions) domain.PlanResult {
	start := domain.DayOf(opts.Start, opts.Location)
	if len(subtasks) == 0 {
		return domain.PlanResult{Version: opts.Version}
	}

	latest := start
	for i := range subtasks {
		if subtasks[i].DueDate.IsZero() {
			subtasks[i].DueDate = start
		}
		if subtasks[i].DueDate.After(latest) {
			latest = subtasks[i].DueDate
		}
	}
	end := latest.AddDate(0, 0, horizonPadDays)

	days := BuildAvailability(AvailabilityInput{
		From:      start,
		To:        end,
		Prefs:     prefs,
		Busy:      opts.BusyBlocks,
		Location:  opts.Location,
		Reserved:  opts.Reserved,
		NotBefore: opts.NotBefore,
	})

	return Allocate(AllocateInput{
		Subtasks: subtasks,
		Days:     days,
		Start:    start,
		Prefs:    prefs,
		Weights:  opts.weights(),
		Version:  opts.Version,
		Now:      opts.Now,
		Location: opts.Location,
	})
}

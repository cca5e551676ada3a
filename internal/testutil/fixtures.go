package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/simibol/planpoint/internal/domain"
)

// Day returns UTC midnight of the given date.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Assessment options
type AssessmentOption func(*domain.Assessment)

func WithWeight(w float64) AssessmentOption {
	return func(a *domain.Assessment) {
		a.Weight = w
	}
}

func NewTestAssessment(title string, due time.Time, opts ...AssessmentOption) *domain.Assessment {
	now := time.Now().UTC().Truncate(time.Second)
	a := &domain.Assessment{
		ID:        uuid.New().String(),
		Title:     title,
		DueDate:   due,
		Weight:    domain.DefaultAssessmentWeight,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Milestone options
type MilestoneOption func(*domain.Milestone)

func WithTargetDate(d time.Time) MilestoneOption {
	return func(m *domain.Milestone) {
		m.TargetDate = &d
	}
}

func WithAssessmentDue(d time.Time) MilestoneOption {
	return func(m *domain.Milestone) {
		m.AssessmentDueDate = d
	}
}

func NewTestMilestone(assessmentTitle, title string, hours float64, opts ...MilestoneOption) *domain.Milestone {
	now := time.Now().UTC().Truncate(time.Second)
	m := &domain.Milestone{
		ID:              uuid.New().String(),
		Title:           title,
		EstimateHours:   hours,
		AssessmentTitle: assessmentTitle,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Session options
type SessionOption func(*domain.PlannedSession)

func WithStatus(s domain.SessionStatus) SessionOption {
	return func(ps *domain.PlannedSession) {
		ps.Status = s
	}
}

func WithRisk(r domain.RiskLevel) SessionOption {
	return func(ps *domain.PlannedSession) {
		ps.RiskLevel = r
	}
}

func WithMilestone(assessmentTitle, milestoneTitle string) SessionOption {
	return func(ps *domain.PlannedSession) {
		ps.AssessmentTitle = assessmentTitle
		ps.MilestoneTitle = milestoneTitle
		ps.SubtaskTitle = milestoneTitle
	}
}

func WithSessionDue(d time.Time) SessionOption {
	return func(ps *domain.PlannedSession) {
		ps.AssessmentDueDate = d
	}
}

func WithRolledFrom(d time.Time) SessionOption {
	return func(ps *domain.PlannedSession) {
		ps.RolledFromDate = &d
	}
}

func WithBlockedBy(id string) SessionOption {
	return func(ps *domain.PlannedSession) {
		ps.BlockedBy = id
	}
}

// NewTestSession builds a planned session starting at start in start's location.
func NewTestSession(id string, start time.Time, minutes int, opts ...SessionOption) *domain.PlannedSession {
	s := &domain.PlannedSession{
		ID:              id,
		AssessmentTitle: "Essay",
		MilestoneTitle:  "Draft",
		SubtaskTitle:    "Draft",
		Date:            domain.DayOf(start, start.Location()),
		Start:           start,
		End:             start.Add(time.Duration(minutes) * time.Minute),
		DurationMin:     minutes,
		Status:          domain.SessionPlanned,
		RiskLevel:       domain.RiskOnTrack,
		Version:         1,
		CreatedAt:       start.Add(-24 * time.Hour),
		UpdatedAt:       start.Add(-24 * time.Hour),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

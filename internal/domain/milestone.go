package domain

import "time"

// DefaultAssessmentWeight is used when an assessment has no weight recorded.
const DefaultAssessmentWeight = 10.0

type Assessment struct {
	ID        string
	Title     string
	DueDate   time.Time
	Weight    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveWeight returns Weight, or the default when unset.
func (a *Assessment) EffectiveWeight() float64 {
	if a == nil || a.Weight <= 0 {
		return DefaultAssessmentWeight
	}
	return a.Weight
}

type Milestone struct {
	ID                string
	Title             string
	EstimateHours     float64
	TargetDate        *time.Time
	AssessmentTitle   string
	AssessmentDueDate time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type BusyBlock struct {
	ID    string
	Title string
	Start time.Time
	End   time.Time
}

package scheduler

import "math"

// ScoringWeights tunes how the allocator ranks candidate days. Lower scores
// win, so every term except Priority is a penalty.
type ScoringWeights struct {
	Utilisation    float64 `yaml:"utilisation" json:"utilisation"`
	AssessmentLoad float64 `yaml:"assessment_load" json:"assessment_load"`
	DueProximity   float64 `yaml:"due_proximity" json:"due_proximity"`
	Priority       float64 `yaml:"priority" json:"priority"`
	LatePenalty    float64 `yaml:"late_penalty" json:"late_penalty"`
}

func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		Utilisation:    10,
		AssessmentLoad: 4,
		DueProximity:   1,
		Priority:       0.01,
		LatePenalty:    2,
	}
}

type DayScoreInput struct {
	WorkedMin      int
	CapacityMin    int
	AssessmentLoad int // sessions of the same assessment already on the day
	DaysUntilDue   int // negative once the day is past the due date
	WeightScore    float64
}

// ScoreDay ranks one candidate day for a subtask.
func ScoreDay(in DayScoreInput, w ScoringWeights) float64 {
	utilisation := math.Inf(1)
	if in.CapacityMin > 0 {
		utilisation = float64(in.WorkedMin) / float64(in.CapacityMin)
	}

	due := float64(in.DaysUntilDue) * w.DueProximity
	if in.DaysUntilDue < 0 {
		due = w.LatePenalty * math.Abs(float64(in.DaysUntilDue))
	}

	return utilisation*w.Utilisation +
		float64(in.AssessmentLoad)*w.AssessmentLoad +
		due -
		in.WeightScore*w.Priority
}

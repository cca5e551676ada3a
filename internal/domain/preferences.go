package domain

const (
	DefaultDailyCapHours     = 4.0
	DefaultMinSessionMinutes = 45
	DefaultMaxSessionMinutes = 105
	DefaultFocusBlockMinutes = 15
	DefaultAllowWeekends     = false
	DefaultStartHour         = 9
	DefaultEndHour           = 18
)

// PlannerPreferences is the resolved configuration the scheduler works with.
type PlannerPreferences struct {
	DailyCapHours     float64
	MinSessionMinutes int
	MaxSessionMinutes int
	FocusBlockMinutes int
	AllowWeekends     bool
	StartHour         int
	EndHour           int
}

// PreferencesInput is a stored or user-supplied preferences document.
// Nil fields are absent and take their defaults on normalization.
type PreferencesInput struct {
	DailyCapHours     *float64 `json:"daily_cap_hours,omitempty" yaml:"daily_cap_hours,omitempty"`
	MinSessionMinutes *int     `json:"min_session_minutes,omitempty" yaml:"min_session_minutes,omitempty"`
	MaxSessionMinutes *int     `json:"max_session_minutes,omitempty" yaml:"max_session_minutes,omitempty"`
	FocusBlockMinutes *int     `json:"focus_block_minutes,omitempty" yaml:"focus_block_minutes,omitempty"`
	AllowWeekends     *bool    `json:"allow_weekends,omitempty" yaml:"allow_weekends,omitempty"`
	StartHour         *int     `json:"start_hour,omitempty" yaml:"start_hour,omitempty"`
	EndHour           *int     `json:"end_hour,omitempty" yaml:"end_hour,omitempty"`
}

// Merge returns a copy of p with every field that is set in override replaced.
func (p PreferencesInput) Merge(override PreferencesInput) PreferencesInput {
	out := p
	if override.DailyCapHours != nil {
		out.DailyCapHours = override.DailyCapHours
	}
	if override.MinSessionMinutes != nil {
		out.MinSessionMinutes = override.MinSessionMinutes
	}
	if override.MaxSessionMinutes != nil {
		out.MaxSessionMinutes = override.MaxSessionMinutes
	}
	if override.FocusBlockMinutes != nil {
		out.FocusBlockMinutes = override.FocusBlockMinutes
	}
	if override.AllowWeekends != nil {
		out.AllowWeekends = override.AllowWeekends
	}
	if override.StartHour != nil {
		out.StartHour = override.StartHour
	}
	if override.EndHour != nil {
		out.EndHour = override.EndHour
	}
	return out
}

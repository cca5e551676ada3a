package scheduler

import (
	"math"

	"github.com/simibol/planpoint/internal/domain"
)

// NormalizePreferences resolves a preferences document, filling defaults for
// absent fields and clamping values the allocator cannot work with.
func NormalizePreferences(in domain.PreferencesInput) domain.PlannerPreferences {
	p := domain.PlannerPreferences{
		DailyCapHours:     domain.ValueOr(domain.DefaultDailyCapHours, in.DailyCapHours),
		MinSessionMinutes: domain.ValueOr(domain.DefaultMinSessionMinutes, in.MinSessionMinutes),
		MaxSessionMinutes: domain.ValueOr(domain.DefaultMaxSessionMinutes, in.MaxSessionMinutes),
		FocusBlockMinutes: domain.ValueOr(domain.DefaultFocusBlockMinutes, in.FocusBlockMinutes),
		AllowWeekends:     domain.ValueOr(domain.DefaultAllowWeekends, in.AllowWeekends),
		StartHour:         domain.ValueOr(domain.DefaultStartHour, in.StartHour),
		EndHour:           domain.ValueOr(domain.DefaultEndHour, in.EndHour),
	}

	if p.DailyCapHours < 0 || math.IsNaN(p.DailyCapHours) {
		p.DailyCapHours = 0
	}
	if p.MinSessionMinutes < 1 {
		p.MinSessionMinutes = 1
	}
	if p.MaxSessionMinutes < p.MinSessionMinutes {
		p.MaxSessionMinutes = p.MinSessionMinutes
	}
	if p.FocusBlockMinutes < 0 {
		p.FocusBlockMinutes = 0
	}
	if p.StartHour < 0 || p.StartHour > 23 || p.EndHour > 24 || p.EndHour <= p.StartHour {
		p.StartHour = domain.DefaultStartHour
		p.EndHour = domain.DefaultEndHour
	}
	return p
}

// dailyCapMinutes converts the daily cap to whole minutes.
func dailyCapMinutes(p domain.PlannerPreferences) int {
	return int(math.Round(p.DailyCapHours * 60))
}

package importer

import (
	"fmt"
	"math"
	"time"

	"github.com/simibol/planpoint/internal/domain"
)

// localTimeLayout is accepted for busy blocks alongside RFC3339.
const localTimeLayout = "2006-01-02T15:04"

// ValidateImportSchema checks the data file before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	titles := make(map[string]bool)
	errs = append(errs, validateAssessments(schema.Assessments, titles)...)
	errs = append(errs, validateMilestones(schema.Milestones)...)
	errs = append(errs, validateBusyBlocks(schema.BusyBlocks)...)
	errs = append(errs, validatePreferences(schema.Preferences)...)

	return errs
}

func validateAssessments(items []AssessmentImport, titles map[string]bool) []error {
	var errs []error
	for i, a := range items {
		prefix := fmt.Sprintf("assessments[%d]", i)

		if a.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		} else if titles[a.Title] {
			errs = append(errs, fmt.Errorf("%s.title: duplicate title %q", prefix, a.Title))
		} else {
			titles[a.Title] = true
		}

		if a.DueDate == "" {
			errs = append(errs, fmt.Errorf("%s.due_date is required", prefix))
		} else if _, err := time.Parse(domain.DateLayout, a.DueDate); err != nil {
			errs = append(errs, fmt.Errorf("%s.due_date: invalid date format %q (expected YYYY-MM-DD)", prefix, a.DueDate))
		}

		if a.Weight != nil && (*a.Weight < 0 || math.IsNaN(*a.Weight)) {
			errs = append(errs, fmt.Errorf("%s.weight must not be negative", prefix))
		}
	}
	return errs
}

// validateMilestones accepts milestones whose assessment is not in the file;
// it may already be stored.
func validateMilestones(items []MilestoneImport) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, m := range items {
		prefix := fmt.Sprintf("milestones[%d]", i)

		if m.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if m.AssessmentTitle == "" {
			errs = append(errs, fmt.Errorf("%s.assessment_title is required", prefix))
		}
		key := m.AssessmentTitle + "\x00" + m.Title
		if m.Title != "" && seen[key] {
			errs = append(errs, fmt.Errorf("%s: duplicate milestone %q under %q", prefix, m.Title, m.AssessmentTitle))
		}
		seen[key] = true

		if m.EstimateHours < 0 || math.IsNaN(m.EstimateHours) {
			errs = append(errs, fmt.Errorf("%s.estimate_hours must not be negative", prefix))
		}
		if m.TargetDate != nil {
			if _, err := time.Parse(domain.DateLayout, *m.TargetDate); err != nil {
				errs = append(errs, fmt.Errorf("%s.target_date: invalid date format %q (expected YYYY-MM-DD)", prefix, *m.TargetDate))
			}
		}
	}
	return errs
}

func validateBusyBlocks(items []BusyBlockImport) []error {
	var errs []error
	ids := make(map[string]bool)
	for i, b := range items {
		prefix := fmt.Sprintf("busy_blocks[%d]", i)

		if b.ID != "" {
			if ids[b.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, b.ID))
			}
			ids[b.ID] = true
		}

		start, startErr := parseBlockTime(b.Start, time.UTC)
		if startErr != nil {
			errs = append(errs, fmt.Errorf("%s.start: invalid time %q", prefix, b.Start))
		}
		end, endErr := parseBlockTime(b.End, time.UTC)
		if endErr != nil {
			errs = append(errs, fmt.Errorf("%s.end: invalid time %q", prefix, b.End))
		}
		if startErr == nil && endErr == nil && !end.After(start) {
			errs = append(errs, fmt.Errorf("%s: end %q must be after start %q", prefix, b.End, b.Start))
		}
	}
	return errs
}

func validatePreferences(p *domain.PreferencesInput) []error {
	if p == nil {
		return nil
	}
	var errs []error

	if p.DailyCapHours != nil && (*p.DailyCapHours < 0 || *p.DailyCapHours > 24) {
		errs = append(errs, fmt.Errorf("preferences.daily_cap_hours must be between 0 and 24"))
	}
	if p.MinSessionMinutes != nil && *p.MinSessionMinutes <= 0 {
		errs = append(errs, fmt.Errorf("preferences.min_session_minutes must be positive"))
	}
	if p.MaxSessionMinutes != nil && *p.MaxSessionMinutes <= 0 {
		errs = append(errs, fmt.Errorf("preferences.max_session_minutes must be positive"))
	}
	if p.MinSessionMinutes != nil && p.MaxSessionMinutes != nil && *p.MinSessionMinutes > *p.MaxSessionMinutes {
		errs = append(errs, fmt.Errorf("preferences: min_session_minutes (%d) must be <= max_session_minutes (%d)",
			*p.MinSessionMinutes, *p.MaxSessionMinutes))
	}
	if p.FocusBlockMinutes != nil && *p.FocusBlockMinutes < 0 {
		errs = append(errs, fmt.Errorf("preferences.focus_block_minutes must not be negative"))
	}
	if p.StartHour != nil && (*p.StartHour < 0 || *p.StartHour > 23) {
		errs = append(errs, fmt.Errorf("preferences.start_hour must be between 0 and 23"))
	}
	if p.EndHour != nil && (*p.EndHour < 1 || *p.EndHour > 24) {
		errs = append(errs, fmt.Errorf("preferences.end_hour must be between 1 and 24"))
	}
	if p.StartHour != nil && p.EndHour != nil && *p.EndHour <= *p.StartHour {
		errs = append(errs, fmt.Errorf("preferences: end_hour (%d) must be after start_hour (%d)", *p.EndHour, *p.StartHour))
	}
	return errs
}

// parseBlockTime accepts RFC3339 or a zone-less local time in loc.
func parseBlockTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	return time.ParseInLocation(localTimeLayout, s, loc)
}

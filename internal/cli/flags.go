package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/simibol/planpoint/internal/domain"
	"github.com/spf13/pflag"
)

// dayValue is a pflag.Value holding an optional YYYY-MM-DD day in a
// fixed location.
type dayValue struct {
	loc *time.Location
	day *time.Time
}

var _ pflag.Value = (*dayValue)(nil)

func newDayValue(loc *time.Location) *dayValue {
	return &dayValue{loc: loc}
}

func (v *dayValue) String() string {
	if v.day == nil {
		return ""
	}
	return v.day.Format(domain.DateLayout)
}

func (v *dayValue) Set(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		v.day = nil
		return nil
	}
	t, err := time.ParseInLocation(domain.DateLayout, s, v.loc)
	if err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	v.day = &t
	return nil
}

func (v *dayValue) Type() string { return "date" }

// Ptr returns the parsed day or nil when the flag was not given.
func (v *dayValue) Ptr() *time.Time { return v.day }

// statusListValue collects repeated or comma-separated --status values.
type statusListValue struct {
	statuses []domain.SessionStatus
}

var _ pflag.Value = (*statusListValue)(nil)

func (v *statusListValue) String() string {
	parts := make([]string, len(v.statuses))
	for i, s := range v.statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

func (v *statusListValue) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		st, err := domain.ParseSessionStatus(part)
		if err != nil {
			return err
		}
		v.statuses = append(v.statuses, st)
	}
	return nil
}

func (v *statusListValue) Type() string { return "status" }

// parseLocalTime accepts "YYYY-MM-DD HH:MM", "YYYY-MM-DDTHH:MM" or RFC 3339.
func parseLocalTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q: use YYYY-MM-DD HH:MM", s)
}

// addPreferenceFlags registers per-run planner preference overrides.
// Only flags the user actually set are copied into the result.
func addPreferenceFlags(fs *pflag.FlagSet) func() domain.PreferencesInput {
	capHours := fs.Float64("cap", 0, "Daily study cap in hours for this run")
	minMin := fs.Int("min-session", 0, "Minimum session length in minutes")
	maxMin := fs.Int("max-session", 0, "Maximum session length in minutes")
	weekends := fs.Bool("weekends", false, "Allow sessions on weekends")
	startHour := fs.Int("start-hour", 0, "First working hour (0-23)")
	endHour := fs.Int("end-hour", 0, "End of the working day (1-24)")

	return func() domain.PreferencesInput {
		var p domain.PreferencesInput
		if fs.Changed("cap") {
			p.DailyCapHours = capHours
		}
		if fs.Changed("min-session") {
			p.MinSessionMinutes = minMin
		}
		if fs.Changed("max-session") {
			p.MaxSessionMinutes = maxMin
		}
		if fs.Changed("weekends") {
			p.AllowWeekends = weekends
		}
		if fs.Changed("start-hour") {
			p.StartHour = startHour
		}
		if fs.Changed("end-hour") {
			p.EndHour = endHour
		}
		return p
	}
}

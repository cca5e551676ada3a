package scheduler

import (
	"sort"
	"time"

	"github.com/simibol/planpoint/internal/domain"
)

const minutesPerDay = 24 * 60

// Slot is a free interval of a day, in minutes after local midnight, [Start, End).
type Slot struct {
	Start int
	End   int
}

func (s Slot) Len() int { return s.End - s.Start }

// DayAvailability is the free time of one calendar day.
type DayAvailability struct {
	Date        time.Time
	IsWeekend   bool
	CapacityMin int
	Slots       []Slot
}

// AvailabilityInput describes a horizon and what already occupies it.
type AvailabilityInput struct {
	From     time.Time
	To       time.Time
	Prefs    domain.PlannerPreferences
	Busy     []domain.BusyBlock
	Location *time.Location

	// Reserved sessions stay where they are; their time and hours are taken.
	Reserved []domain.PlannedSession
	// NotBefore blocks everything earlier than this instant (zero means no limit).
	NotBefore time.Time
}

// BuildAvailability computes free slots and capacity for each day from From
// to To inclusive.
func BuildAvailability(in AvailabilityInput) []DayAvailability {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	from := domain.DayOf(in.From, loc)
	to := domain.DayOf(in.To, loc)

	ranges := make([]timeRange, 0, len(in.Busy)+len(in.Reserved)+1)
	for _, b := range in.Busy {
		ranges = append(ranges, timeRange{start: b.Start, end: b.End})
	}
	reservedMin := make(map[string]int)
	for _, s := range in.Reserved {
		ranges = append(ranges, timeRange{start: s.Start, end: s.End})
		reservedMin[domain.DayOf(s.Date, loc).Format(domain.DateLayout)] += s.DurationMin
	}
	if !in.NotBefore.IsZero() {
		ranges = append(ranges, timeRange{start: domain.DayOf(in.NotBefore, loc), end: in.NotBefore})
	}
	busy := busyByDay(ranges, loc)

	capMin := dailyCapMinutes(in.Prefs)
	window := Slot{Start: in.Prefs.StartHour * 60, End: in.Prefs.EndHour * 60}

	var days []DayAvailability
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		key := day.Format(domain.DateLayout)
		da := DayAvailability{Date: day, IsWeekend: domain.IsWeekend(day)}
		if da.IsWeekend && !in.Prefs.AllowWeekends {
			days = append(days, da)
			continue
		}

		slots := subtractIntervals([]Slot{window}, busy[key])
		free := 0
		for _, s := range slots {
			free += s.Len()
		}
		da.Slots = slots
		if len(slots) > 0 {
			da.CapacityMin = max(0, min(capMin-reservedMin[key], free))
		}
		days = append(days, da)
	}
	return days
}

type timeRange struct {
	start time.Time
	end   time.Time
}

// busyByDay clips each range to calendar-day boundaries and groups the
// resulting minute intervals by date, sorted by start. Minutes are wall-clock
// minutes, matching domain.AtMinute, so DST days line up with placement.
func busyByDay(ranges []timeRange, loc *time.Location) map[string][]Slot {
	out := make(map[string][]Slot)
	for _, r := range ranges {
		if !r.end.After(r.start) {
			continue
		}
		for day := domain.DayOf(r.start, loc); day.Before(r.end); day = day.AddDate(0, 0, 1) {
			next := day.AddDate(0, 0, 1)
			s := r.start
			if s.Before(day) {
				s = day
			}
			e := r.end
			if e.After(next) {
				e = next
			}
			startMin := wallMinute(s, loc, false)
			endMin := minutesPerDay
			if e.Before(next) {
				endMin = wallMinute(e, loc, true)
			}
			if endMin <= startMin {
				continue
			}
			key := day.Format(domain.DateLayout)
			out[key] = append(out[key], Slot{Start: startMin, End: endMin})
		}
	}
	for key := range out {
		sort.Slice(out[key], func(i, j int) bool {
			a, b := out[key][i], out[key][j]
			if a.Start != b.Start {
				return a.Start < b.Start
			}
			return a.End < b.End
		})
	}
	return out
}

// wallMinute returns the local wall-clock minute of t, rounding any leftover
// seconds up when ceil is set.
func wallMinute(t time.Time, loc *time.Location, ceil bool) int {
	lt := t.In(loc)
	m := lt.Hour()*60 + lt.Minute()
	if ceil && (lt.Second() > 0 || lt.Nanosecond() > 0) {
		m++
	}
	return min(m, minutesPerDay)
}

// subtractIntervals removes every busy interval from the free slots. A slot
// hit in the middle splits in two, a covered slot disappears, and a partially
// covered slot is trimmed. Slots under one minute are dropped.
func subtractIntervals(free []Slot, busy []Slot) []Slot {
	slots := append([]Slot(nil), free...)
	for _, b := range busy {
		next := slots[:0:0]
		for _, s := range slots {
			if b.End <= s.Start || b.Start >= s.End {
				next = append(next, s)
				continue
			}
			if b.Start > s.Start {
				next = append(next, Slot{Start: s.Start, End: b.Start})
			}
			if b.End < s.End {
				next = append(next, Slot{Start: b.End, End: s.End})
			}
		}
		slots = next
	}
	out := slots[:0]
	for _, s := range slots {
		if s.Len() >= 1 {
			out = append(out, s)
		}
	}
	return out
}

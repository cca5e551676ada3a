package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/simibol/planpoint/internal/domain"
)

const (
	onTrackRatio = 0.85
	behindRatio  = 0.55
)

// ProgressFor maps a completed/planned ratio onto a status. An empty week
// counts as fully done.
func ProgressFor(plannedMin, completedMin int) domain.ProgressStatus {
	ratio := 1.0
	if plannedMin > 0 {
		ratio = float64(completedMin) / float64(plannedMin)
	}
	switch {
	case ratio >= onTrackRatio:
		return domain.ProgressOnTrack
	case ratio >= behindRatio:
		return domain.ProgressBehind
	default:
		return domain.ProgressAtRisk
	}
}

type weekBucket struct {
	start        time.Time
	plannedMin   int
	completedMin int
}

// BuildWeeklySummaries buckets sessions into Monday weeks. The week holding
// now is always present, even when empty.
func BuildWeeklySummaries(sessions []domain.PlannedSession, now time.Time, loc *time.Location) []domain.WeeklyProgress {
	if loc == nil {
		loc = time.UTC
	}
	buckets := make(map[string]*weekBucket)
	bucketFor := func(day time.Time) *weekBucket {
		start := domain.WeekStart(domain.DayOf(day, loc))
		key := start.Format(domain.DateLayout)
		b, ok := buckets[key]
		if !ok {
			b = &weekBucket{start: start}
			buckets[key] = b
		}
		return b
	}

	bucketFor(now)
	for _, s := range sessions {
		b := bucketFor(s.Date)
		b.plannedMin += s.DurationMin
		if s.IsCompleted() {
			b.completedMin += s.DurationMin
		}
	}

	out := make([]domain.WeeklyProgress, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.WeeklyProgress{
			WeekLabel:      weekLabel(b.start),
			StartDate:      b.start,
			EndDate:        b.start.AddDate(0, 0, 6),
			PlannedHours:   float64(b.plannedMin) / 60,
			CompletedHours: float64(b.completedMin) / 60,
			Status:         ProgressFor(b.plannedMin, b.completedMin),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out
}

func weekLabel(monday time.Time) string {
	year, week := monday.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

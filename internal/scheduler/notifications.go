package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/simibol/planpoint/internal/domain"
)

// dismissCooldown is how long a dismissal keeps a reason quiet. Overdue
// reminders ignore dismissals entirely.
var dismissCooldown = map[domain.NotificationReason]time.Duration{
	domain.ReasonHeadsUp: 24 * time.Hour,
	domain.ReasonDueSoon: 12 * time.Hour,
	domain.ReasonDueNow:  6 * time.Hour,
}

// ClassifyReminder maps the time until a session starts onto a reminder
// reason. ok is false when the session is too far out to mention.
func ClassifyReminder(start, now time.Time) (domain.NotificationReason, domain.NotificationSeverity, bool) {
	diff := start.Sub(now)
	switch {
	case diff < -time.Hour:
		return domain.ReasonOverdue, domain.SeverityUrgent, true
	case diff <= 0:
		return domain.ReasonDueNow, domain.SeverityUrgent, true
	case diff <= 24*time.Hour:
		return domain.ReasonDueSoon, domain.SeverityWarning, true
	case diff <= 72*time.Hour:
		return domain.ReasonHeadsUp, domain.SeverityInfo, true
	}
	return "", "", false
}

// GenerateNotifications derives reminders for unfinished sessions, dropping
// those the user has snoozed or recently dismissed.
func GenerateNotifications(sessions []domain.PlannedSession, states []domain.NotificationState, now time.Time) []domain.NotificationItem {
	byID := make(map[string]domain.NotificationState, len(states))
	for _, st := range states {
		byID[st.ID] = st
	}

	var items []domain.NotificationItem
	for _, s := range sessions {
		if s.IsCompleted() {
			continue
		}
		reason, severity, ok := ClassifyReminder(s.Start, now)
		if !ok {
			continue
		}
		id := domain.NotificationID(s.ID, reason)
		if st, found := byID[id]; found && suppressed(st, reason, now) {
			continue
		}
		items = append(items, domain.NotificationItem{
			ID:        id,
			SessionID: s.ID,
			Reason:    reason,
			Severity:  severity,
			Title:     domain.CoalesceStr(s.SubtaskTitle, s.MilestoneTitle),
			Message:   reminderMessage(reason, s, now),
			DueAt:     s.Start,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() < b.Severity.Rank()
		}
		if !a.DueAt.Equal(b.DueAt) {
			return a.DueAt.Before(b.DueAt)
		}
		return a.ID < b.ID
	})
	return items
}

func suppressed(st domain.NotificationState, reason domain.NotificationReason, now time.Time) bool {
	if st.SnoozedUntil != nil && st.SnoozedUntil.After(now) {
		return true
	}
	if st.DismissedAt == nil {
		return false
	}
	cooldown, ok := dismissCooldown[reason]
	if !ok {
		return false
	}
	return now.Sub(*st.DismissedAt) < cooldown
}

func reminderMessage(reason domain.NotificationReason, s domain.PlannedSession, now time.Time) string {
	label := domain.CoalesceStr(s.AssessmentTitle, s.MilestoneTitle)
	switch reason {
	case domain.ReasonOverdue:
		return fmt.Sprintf("%s was scheduled %s ago and is not done", label, roundDuration(now.Sub(s.Start)))
	case domain.ReasonDueNow:
		return fmt.Sprintf("%s starts now", label)
	case domain.ReasonDueSoon:
		return fmt.Sprintf("%s starts in %s", label, roundDuration(s.Start.Sub(now)))
	default:
		return fmt.Sprintf("%s is coming up on %s", label, s.Start.Format("Mon Jan 2 15:04"))
	}
}

func roundDuration(d time.Duration) string {
	if d >= time.Hour {
		return d.Round(time.Hour).String()
	}
	return d.Round(time.Minute).String()
}

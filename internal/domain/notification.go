package domain

import "time"

type NotificationItem struct {
	ID        string
	SessionID string
	Reason    NotificationReason
	Severity  NotificationSeverity
	Title     string
	Message   string
	DueAt     time.Time
}

// NotificationState records the user's suppression of one notification.
type NotificationState struct {
	ID           string
	DismissedAt  *time.Time
	SnoozedUntil *time.Time
}

// NotificationID builds the state key for a session/reason pair.
func NotificationID(sessionID string, reason NotificationReason) string {
	return sessionID + ":" + string(reason)
}

type WeeklyProgress struct {
	WeekLabel      string
	StartDate      time.Time
	EndDate        time.Time
	PlannedHours   float64
	CompletedHours float64
	Status         ProgressStatus
}

package app

import (
	"time"

	"github.com/simibol/planpoint/internal/domain"
)

type SessionListRequest struct {
	From     *time.Time
	To       *time.Time
	Statuses []domain.SessionStatus
}

type NotificationsResponse struct {
	GeneratedAt time.Time
	Items       []domain.NotificationItem
}

type WeeklyResponse struct {
	GeneratedAt time.Time
	Weeks       []domain.WeeklyProgress
}

// ImportResult holds the outcome of a data-file import.
type ImportResult struct {
	Assessments        int
	Milestones         int
	BusyBlocks         int
	PreferencesUpdated bool
}

package formatter

import (
	"testing"
	"time"

	"github.com/simibol/planpoint/internal/app"
	"github.com/simibol/planpoint/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatNotifications(t *testing.T) {
	now := time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC)
	resp := &app.NotificationsResponse{
		GeneratedAt: now,
		Items: []domain.NotificationItem{
			{ID: "s1:overdue", Severity: domain.SeverityUrgent, Title: "Overdue: Draft", Message: "Draft ended 2h ago.", DueAt: now.Add(-2 * time.Hour)},
			{ID: "s2:due-soon", Severity: domain.SeverityInfo, Title: "Up next: Outline", Message: "Starts soon.", DueAt: now.Add(45 * time.Minute)},
		},
	}

	out := stripANSI(FormatNotifications(resp))
	assert.Contains(t, out, "NOTIFICATIONS (2)")
	assert.Contains(t, out, "▲ urgent")
	assert.Contains(t, out, "Overdue: Draft")
	assert.Contains(t, out, "s1:overdue · 2h ago")
	assert.Contains(t, out, "s2:due-soon · in 45m")
}

func TestFormatNotifications_Empty(t *testing.T) {
	out := stripANSI(FormatNotifications(&app.NotificationsResponse{}))
	assert.Contains(t, out, "all caught up")
}

func TestFormatWeekly(t *testing.T) {
	start := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	resp := &app.WeeklyResponse{Weeks: []domain.WeeklyProgress{
		{WeekLabel: "2026-W07", StartDate: start, EndDate: start.AddDate(0, 0, 6), PlannedHours: 10, CompletedHours: 9, Status: domain.ProgressOnTrack},
		{WeekLabel: "2026-W08", StartDate: start.AddDate(0, 0, 7), EndDate: start.AddDate(0, 0, 13), PlannedHours: 8, CompletedHours: 2, Status: domain.ProgressAtRisk},
	}}

	out := stripANSI(FormatWeekly(resp))
	assert.Contains(t, out, "WEEKLY PROGRESS")
	assert.Contains(t, out, "2026-W07")
	assert.Contains(t, out, "09 Feb – 15 Feb")
	assert.Contains(t, out, "on track")
	assert.Contains(t, out, "at risk")
	assert.Contains(t, out, " 90%")
	assert.Contains(t, out, "Total: 11h of 18h")
}

func TestFormatWeekly_EmptyWeekIsComplete(t *testing.T) {
	start := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	resp := &app.WeeklyResponse{Weeks: []domain.WeeklyProgress{
		{WeekLabel: "2026-W07", StartDate: start, EndDate: start.AddDate(0, 0, 6), Status: domain.ProgressOnTrack},
	}}

	out := stripANSI(FormatWeekly(resp))
	assert.Contains(t, out, "100%")
	assert.NotContains(t, out, " 0%")
	assert.Contains(t, out, "on track")
	assert.Contains(t, out, "Total: 0h of 0h")
}

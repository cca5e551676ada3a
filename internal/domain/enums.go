package domain

import (
	"fmt"
	"strings"
)

type SessionStatus string

const (
	SessionPlanned    SessionStatus = "planned"
	SessionInProgress SessionStatus = "in-progress"
	SessionCompleted  SessionStatus = "completed"
	SessionTodo       SessionStatus = "todo"
)

// sessionStatusAliases maps stored spellings, including legacy ones, onto
// the closed status set.
var sessionStatusAliases = map[string]SessionStatus{
	"":            SessionPlanned,
	"planned":     SessionPlanned,
	"pending":     SessionPlanned,
	"scheduled":   SessionPlanned,
	"in-progress": SessionInProgress,
	"in_progress": SessionInProgress,
	"inprogress":  SessionInProgress,
	"active":      SessionInProgress,
	"started":     SessionInProgress,
	"completed":   SessionCompleted,
	"complete":    SessionCompleted,
	"done":        SessionCompleted,
	"todo":        SessionTodo,
	"to-do":       SessionTodo,
}

// ParseSessionStatus normalizes a stored status string.
func ParseSessionStatus(s string) (SessionStatus, error) {
	if st, ok := sessionStatusAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st, nil
	}
	return "", fmt.Errorf("session status %q: %w", s, ErrUnknownEnum)
}

type RiskLevel string

const (
	RiskOnTrack RiskLevel = "on-track"
	RiskWarning RiskLevel = "warning"
	RiskLate    RiskLevel = "late"
	RiskAtRisk  RiskLevel = "at-risk"
)

var riskLevelAliases = map[string]RiskLevel{
	"":         RiskOnTrack,
	"on-track": RiskOnTrack,
	"on_track": RiskOnTrack,
	"ontrack":  RiskOnTrack,
	"warning":  RiskWarning,
	"warn":     RiskWarning,
	"late":     RiskLate,
	"at-risk":  RiskAtRisk,
	"at_risk":  RiskAtRisk,
	"atrisk":   RiskAtRisk,
	"critical": RiskAtRisk,
}

// ParseRiskLevel normalizes a stored risk string.
func ParseRiskLevel(s string) (RiskLevel, error) {
	if r, ok := riskLevelAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return r, nil
	}
	return "", fmt.Errorf("risk level %q: %w", s, ErrUnknownEnum)
}

type WarningType string

const (
	WarningCapacity WarningType = "capacity"
	WarningDeadline WarningType = "deadline"
	WarningConflict WarningType = "conflict"
	WarningInfo     WarningType = "info"
)

type NotificationSeverity string

const (
	SeverityUrgent  NotificationSeverity = "urgent"
	SeverityWarning NotificationSeverity = "warning"
	SeverityInfo    NotificationSeverity = "info"
)

// Rank orders severities for display; lower is more pressing.
func (s NotificationSeverity) Rank() int {
	switch s {
	case SeverityUrgent:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

type NotificationReason string

const (
	ReasonOverdue NotificationReason = "overdue"
	ReasonDueNow  NotificationReason = "due-now"
	ReasonDueSoon NotificationReason = "due-soon"
	ReasonHeadsUp NotificationReason = "heads-up"
)

type ProgressStatus string

const (
	ProgressOnTrack ProgressStatus = "on-track"
	ProgressBehind  ProgressStatus = "behind"
	ProgressAtRisk  ProgressStatus = "at-risk"
)
